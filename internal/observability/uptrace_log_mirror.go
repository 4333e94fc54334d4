package observability

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/sports-intel/internal/platform/logging"
	otellog "go.opentelemetry.io/otel/log"
	otelglobal "go.opentelemetry.io/otel/log/global"
	"go.uber.org/zap/zapcore"
)

const logMirrorInstrumentation = "sports-intel/internal/platform/logging"

var statsType = reflect.TypeOf(map[string]float64(nil))

// mirrorKeys renames the service's log fields to OpenTelemetry attribute names.
var mirrorKeys = map[string]string{
	"sport":         "sports_intel.sport",
	"provider":      "sports_intel.provider",
	"resource":      "sports_intel.resource",
	"cache_key":     "sports_intel.cache_key",
	"cache_backend": "sports_intel.cache_backend",
	"kind":          "sports_intel.query_kind",
	"http_method":   "http.request.method",
	"http_path":     "url.path",
	"http_status":   "http.response.status_code",
	"client_ip":     "client.address",
	"error":         "exception.message",
}

func newUptraceLogMirror(serviceVersion string) logging.MirrorFunc {
	otelLogger := otelglobal.Logger(logMirrorInstrumentation, otellog.WithInstrumentationVersion(serviceVersion))

	return func(ctx context.Context, level logging.Level, msg string, args ...any) {
		if ctx == nil {
			ctx = context.Background()
		}
		if skipMirror(msg, args) {
			return
		}

		severity := otelSeverity(level)
		if !otelLogger.Enabled(ctx, otellog.EnabledParameters{Severity: severity, EventName: msg}) {
			return
		}

		var record otellog.Record
		record.SetTimestamp(time.Now().UTC())
		record.SetSeverity(severity)
		record.SetSeverityText(level.CapitalString())
		record.SetEventName(msg)
		record.SetBody(otellog.StringValue(msg))
		record.AddAttributes(mirrorAttributes(args)...)
		otelLogger.Emit(ctx, record)
	}
}

// skipMirror drops successful request logs for health checks and API docs.
func skipMirror(msg string, args []any) bool {
	if msg != "http_request" {
		return false
	}
	var path string
	status := 0
	for i := 0; i+1 < len(args); i += 2 {
		switch args[i] {
		case "http_path":
			path, _ = args[i+1].(string)
		case "http_status":
			status, _ = args[i+1].(int)
		}
	}
	if status >= 400 {
		return false
	}
	return path == "/healthz" || path == "/openapi.yaml" || path == "/docs" || strings.HasPrefix(path, "/docs/")
}

func mirrorAttributes(args []any) []otellog.KeyValue {
	attrs := make([]otellog.KeyValue, 0, (len(args)+1)/2)
	for i := 0; i < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok || strings.TrimSpace(key) == "" {
			key = "arg_" + strconv.Itoa(i/2)
		}
		if renamed, ok := mirrorKeys[key]; ok {
			key = renamed
		}
		if i+1 == len(args) {
			attrs = append(attrs, otellog.Empty(key))
			continue
		}
		attrs = append(attrs, otellog.KeyValue{Key: key, Value: mirrorValue(args[i+1])})
	}
	return attrs
}

func otelSeverity(level zapcore.Level) otellog.Severity {
	switch level {
	case zapcore.DebugLevel:
		return otellog.SeverityDebug
	case zapcore.InfoLevel:
		return otellog.SeverityInfo
	case zapcore.WarnLevel:
		return otellog.SeverityWarn
	case zapcore.ErrorLevel:
		return otellog.SeverityError
	default:
		if level < zapcore.DebugLevel {
			return otellog.SeverityTrace
		}
		return otellog.SeverityFatal
	}
}

// mirrorValue covers the value types the service logs. Anything else is sent as JSON.
func mirrorValue(value any) otellog.Value {
	switch v := value.(type) {
	case nil:
		return otellog.Value{}
	case string:
		return otellog.StringValue(v)
	case bool:
		return otellog.BoolValue(v)
	case int:
		return otellog.IntValue(v)
	case int64:
		return otellog.Int64Value(v)
	case float64:
		return otellog.Float64Value(v)
	case time.Duration:
		return otellog.StringValue(v.String())
	case time.Time:
		return otellog.StringValue(v.UTC().Format(time.RFC3339Nano))
	case error:
		return otellog.StringValue(v.Error())
	case fmt.Stringer:
		return otellog.StringValue(v.String())
	case []string:
		items := make([]otellog.Value, len(v))
		for i, s := range v {
			items[i] = otellog.StringValue(s)
		}
		return otellog.SliceValue(items...)
	case map[string]float64:
		return statsValue(v)
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.String:
		return otellog.StringValue(rv.String())
	case reflect.Int8, reflect.Int16, reflect.Int32:
		return otellog.Int64Value(rv.Int())
	case reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return otellog.Int64Value(int64(rv.Uint()))
	case reflect.Map:
		if rv.Type().ConvertibleTo(statsType) {
			return statsValue(rv.Convert(statsType).Interface().(map[string]float64))
		}
	}

	if encoded, err := sonic.MarshalString(value); err == nil {
		return otellog.StringValue(encoded)
	}
	return otellog.StringValue(fmt.Sprint(value))
}

// statsValue emits a stat bundle as a map with sorted keys.
func statsValue(stats map[string]float64) otellog.Value {
	keys := make([]string, 0, len(stats))
	for k := range stats {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	kvs := make([]otellog.KeyValue, 0, len(keys))
	for _, k := range keys {
		kvs = append(kvs, otellog.Float64(k, stats[k]))
	}
	return otellog.MapValue(kvs...)
}
