package provider

import (
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
)

// Record is one decoded JSON object from a provider payload.
type Record map[string]any

// String returns the first non-empty value among keys, formatting numbers without exponent.
func (r Record) String(keys ...string) string {
	for _, key := range keys {
		switch v := r[key].(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		case int64:
			return strconv.FormatInt(v, 10)
		case int:
			return strconv.Itoa(v)
		case bool:
			return strconv.FormatBool(v)
		}
	}
	return ""
}

func (r Record) Float(keys ...string) (float64, bool) {
	for _, key := range keys {
		switch v := r[key].(type) {
		case float64:
			return v, true
		case int64:
			return float64(v), true
		case int:
			return float64(v), true
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
				return f, true
			}
		}
	}
	return 0, false
}

func (r Record) Bool(key string) bool {
	switch v := r[key].(type) {
	case bool:
		return v
	case string:
		b, _ := strconv.ParseBool(strings.TrimSpace(v))
		return b
	case float64:
		return v != 0
	}
	return false
}

// Record returns a nested object, unwrapping a {"data": {...}} relation.
func (r Record) Record(key string) Record {
	obj, ok := r[key].(map[string]any)
	if !ok {
		return nil
	}
	if data, ok := obj["data"].(map[string]any); ok {
		return data
	}
	return obj
}

// Records returns a nested list of objects, unwrapping a {"data": [...]} relation.
func (r Record) Records(key string) []Record {
	raw := r[key]
	if obj, ok := raw.(map[string]any); ok {
		raw = obj["data"]
	}
	items, ok := raw.([]any)
	if !ok {
		return nil
	}
	return toRecords(items)
}

// Time parses the first value among keys using the common provider layouts.
func (r Record) Time(keys ...string) (time.Time, bool) {
	for _, key := range keys {
		if t, ok := ParseTime(r.String(key)); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTime parses provider timestamps into UTC. Values without a zone are read as UTC.
func ParseTime(raw string) (time.Time, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func toRecords(items []any) []Record {
	out := make([]Record, 0, len(items))
	for _, item := range items {
		if obj, ok := item.(map[string]any); ok {
			out = append(out, obj)
		}
	}
	return out
}

// DecodeRecords unwraps the first present envelope key. A bare list is accepted as well;
// a null envelope value means no records.
func DecodeRecords(raw []byte, envelopeKeys ...string) ([]Record, error) {
	var payload any
	if err := sonic.Unmarshal(raw, &payload); err != nil {
		return nil, err
	}

	switch v := payload.(type) {
	case []any:
		return toRecords(v), nil
	case map[string]any:
		for _, key := range envelopeKeys {
			value, ok := v[key]
			if !ok {
				continue
			}
			switch inner := value.(type) {
			case nil:
				return []Record{}, nil
			case []any:
				return toRecords(inner), nil
			case map[string]any:
				return []Record{inner}, nil
			default:
				return nil, errEnvelope{key: key, detail: "unexpected value type"}
			}
		}
		return nil, errEnvelope{detail: "no envelope key among " + strings.Join(envelopeKeys, ",")}
	default:
		return nil, errEnvelope{detail: "payload is neither an object nor a list"}
	}
}

type errEnvelope struct {
	key    string
	detail string
}

func (e errEnvelope) Error() string {
	if e.key != "" {
		return "envelope " + e.key + ": " + e.detail
	}
	return "envelope: " + e.detail
}
