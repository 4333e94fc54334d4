package provider

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/riskibarqy/sports-intel/internal/platform/logging"
	"github.com/riskibarqy/sports-intel/internal/platform/resilience"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/semaphore"
)

const maxResponseBytes = 6 << 20

type AuthMode string

const (
	AuthNone   AuthMode = "none"
	AuthQuery  AuthMode = "query"
	AuthPath   AuthMode = "path"
	AuthHeader AuthMode = "header"
	AuthBearer AuthMode = "bearer"
)

// Tuning holds the per-client politeness and retry settings.
type Tuning struct {
	Timeout        time.Duration
	RateLimitDelay time.Duration
	MaxConcurrent  int
	MaxRetries     int
	BaseBackoff    time.Duration
	MaxJitter      time.Duration
}

func DefaultTuning() Tuning {
	return Tuning{
		Timeout:        30 * time.Second,
		RateLimitDelay: time.Second,
		MaxConcurrent:  5,
		MaxRetries:     3,
		BaseBackoff:    time.Second,
		MaxJitter:      500 * time.Millisecond,
	}
}

type Config struct {
	Name    string
	BaseURL string

	Auth AuthMode
	// AuthParam is the query parameter or header name carrying APIKey.
	AuthParam string
	APIKey    string

	Tuning

	HTTPClient     *http.Client
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client performs rate-limited, retried GET requests against one provider.
// The throttle, concurrency gate and breaker are owned by the instance.
type Client struct {
	name       string
	baseURL    string
	auth       AuthMode
	authParam  string
	apiKey     string
	maxRetries int

	httpClient *http.Client
	logger     *logging.Logger
	throttle   *resilience.Throttle
	gate       *semaphore.Weighted
	backoff    resilience.Backoff
	breaker    *resilience.CircuitBreaker
	flight     resilience.SingleFlight[[]byte]
}

func New(cfg Config) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	name := strings.TrimSpace(cfg.Name)
	if name == "" {
		name = "provider"
	}

	tuning := cfg.Tuning
	if tuning.Timeout <= 0 {
		tuning.Timeout = DefaultTuning().Timeout
	}
	if tuning.MaxConcurrent <= 0 {
		tuning.MaxConcurrent = DefaultTuning().MaxConcurrent
	}
	if tuning.MaxRetries < 0 {
		tuning.MaxRetries = 0
	}

	var httpClient http.Client
	if cfg.HTTPClient != nil {
		httpClient = *cfg.HTTPClient
	} else {
		httpClient.Transport = otelhttp.NewTransport(http.DefaultTransport)
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = tuning.Timeout
	}

	auth := cfg.Auth
	if auth == "" {
		auth = AuthNone
	}

	breaker := resilience.NewCircuitBreaker(cfg.CircuitBreaker, resilience.OnStateChange(func(from, to resilience.CircuitState) {
		logger.Warn("provider circuit breaker state changed", "provider", name, "from", from, "to", to)
	}))

	return &Client{
		name:       name,
		baseURL:    strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		auth:       auth,
		authParam:  strings.TrimSpace(cfg.AuthParam),
		apiKey:     strings.TrimSpace(cfg.APIKey),
		maxRetries: tuning.MaxRetries,
		httpClient: &httpClient,
		logger:     logger.With("provider", name),
		throttle:   resilience.NewThrottle(tuning.RateLimitDelay),
		gate:       semaphore.NewWeighted(int64(tuning.MaxConcurrent)),
		backoff:    resilience.NewBackoff(tuning.BaseBackoff, tuning.MaxJitter),
		breaker:    breaker,
	}
}

func (c *Client) Name() string {
	return c.name
}

// Fetch GETs endpoint and returns the raw body. Errors are always *Failure.
func (c *Client) Fetch(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	fullURL := c.buildURL(endpoint, params)
	redacted := c.redact(fullURL)

	if err := c.breaker.Allow(); err != nil {
		f := &Failure{Kind: KindUnknown, Provider: c.name, Endpoint: redacted, Detail: "circuit breaker open"}
		c.logger.WarnContext(ctx, "provider circuit breaker rejected request", "endpoint", redacted, "state", c.breaker.State())
		return nil, f
	}

	raw, err, _ := c.flight.Do(fullURL, func() ([]byte, error) {
		body, reqErr := c.execute(ctx, fullURL, redacted)
		c.breaker.Record(IsTransient(reqErr))
		return body, reqErr
	})
	if err != nil {
		return nil, err
	}
	return raw, nil
}

// FetchRecords fetches endpoint and unwraps the first matching envelope key into records.
func (c *Client) FetchRecords(ctx context.Context, endpoint string, params url.Values, envelopeKeys ...string) ([]Record, error) {
	raw, err := c.Fetch(ctx, endpoint, params)
	if err != nil {
		return nil, err
	}

	records, err := DecodeRecords(raw, envelopeKeys...)
	if err != nil {
		f := &Failure{
			Kind:     KindMalformedResponse,
			Provider: c.name,
			Endpoint: c.redact(c.buildURL(endpoint, params)),
			Detail:   fmt.Sprintf("%v (body=%s)", err, abbreviate(raw)),
		}
		c.logger.WarnContext(ctx, "provider response malformed", "endpoint", f.Endpoint, "error", err)
		return nil, f
	}
	return records, nil
}

func (c *Client) execute(ctx context.Context, fullURL, redacted string) ([]byte, error) {
	var (
		last    *Failure
		attempt int
	)
	for attempt = 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			if err := resilience.Sleep(ctx, c.backoff.Delay(attempt-1)); err != nil {
				return nil, c.fail(ctx, contextFailure(err), redacted, attempt)
			}
		}

		body, f := c.attempt(ctx, fullURL)
		if f == nil {
			return body, nil
		}
		last = f
		if f.Kind != KindRateLimited && f.Kind != KindTimeout {
			return nil, c.fail(ctx, f, redacted, attempt+1)
		}
		if ctx.Err() != nil {
			return nil, c.fail(ctx, f, redacted, attempt+1)
		}
		c.logger.DebugContext(ctx, "provider request retrying", "endpoint", redacted, "kind", f.Kind, "attempt", attempt+1)
	}
	return nil, c.fail(ctx, last, redacted, attempt)
}

func (c *Client) attempt(ctx context.Context, fullURL string) ([]byte, *Failure) {
	if err := c.gate.Acquire(ctx, 1); err != nil {
		return nil, contextFailure(err)
	}
	defer c.gate.Release(1)

	if err := c.throttle.Wait(ctx); err != nil {
		return nil, contextFailure(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, &Failure{Kind: KindUnknown, Detail: "build request: " + c.sanitize(err.Error())}
	}
	req.Header.Set("Accept", "application/json")
	switch c.auth {
	case AuthHeader:
		req.Header.Set(c.authParam, c.apiKey)
	case AuthBearer:
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, &Failure{Kind: KindTimeout, Detail: c.sanitize(err.Error())}
		}
		return nil, &Failure{Kind: KindUnknown, Detail: "send request: " + c.sanitize(err.Error())}
	}
	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	_ = resp.Body.Close()

	switch code := resp.StatusCode; {
	case code >= 200 && code < 300:
		if readErr != nil {
			if isTimeout(readErr) {
				return nil, &Failure{Kind: KindTimeout, Status: code, Detail: "read response body"}
			}
			return nil, &Failure{Kind: KindUnknown, Status: code, Detail: "read response body: " + readErr.Error()}
		}
		return raw, nil
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return nil, &Failure{Kind: KindUnauthorized, Status: code, Detail: abbreviate(raw)}
	case code == http.StatusTooManyRequests:
		return nil, &Failure{Kind: KindRateLimited, Status: code, Detail: abbreviate(raw)}
	default:
		return nil, &Failure{Kind: KindServerError, Status: code, Detail: abbreviate(raw)}
	}
}

func (c *Client) fail(ctx context.Context, f *Failure, redacted string, attempts int) error {
	if f == nil {
		f = &Failure{Kind: KindUnknown, Detail: "request failed"}
	}
	f.Provider = c.name
	f.Endpoint = redacted
	f.Attempts = attempts
	c.logger.WarnContext(ctx, "provider request failed",
		"endpoint", redacted,
		"kind", f.Kind,
		"status", f.Status,
		"attempts", attempts,
		"detail", f.Detail,
	)
	return mark(f)
}

func (c *Client) buildURL(endpoint string, params url.Values) string {
	var b strings.Builder
	b.WriteString(c.baseURL)
	if c.auth == AuthPath && c.apiKey != "" {
		b.WriteString("/" + url.PathEscape(c.apiKey))
	}
	if endpoint = strings.TrimLeft(strings.TrimSpace(endpoint), "/"); endpoint != "" {
		b.WriteString("/" + endpoint)
	}

	query := url.Values{}
	for key, values := range params {
		query[key] = append([]string(nil), values...)
	}
	if c.auth == AuthQuery && c.authParam != "" {
		query.Set(c.authParam, c.apiKey)
	}
	if encoded := query.Encode(); encoded != "" {
		b.WriteString("?" + encoded)
	}
	return b.String()
}

var secretParamRegex = regexp.MustCompile(`(?i)(api_token|api_key|apikey|key|token)=[^&\s"']+`)

func (c *Client) redact(rawURL string) string {
	return c.sanitize(rawURL)
}

func (c *Client) sanitize(value string) string {
	value = strings.TrimSpace(value)
	if c.apiKey != "" {
		value = strings.ReplaceAll(value, c.apiKey, "REDACTED")
		if escaped := url.PathEscape(c.apiKey); escaped != c.apiKey {
			value = strings.ReplaceAll(value, escaped, "REDACTED")
		}
	}
	return secretParamRegex.ReplaceAllString(value, "$1=REDACTED")
}

func contextFailure(err error) *Failure {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return &Failure{Kind: KindTimeout, Detail: err.Error()}
	}
	return &Failure{Kind: KindUnknown, Detail: err.Error()}
}

func isTimeout(err error) bool {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return stderrors.As(err, &netErr) && netErr.Timeout()
}

func abbreviate(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
