// Package transport is the excluded-boundary HTTP client: it attaches a
// prepared canonical query and signature headers to a request, sends it,
// and hands the raw response body back to the normalization pipeline.
// Endpoint routing, pagination, and reconnect policy live with callers.
package transport

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
	"resty.dev/v3"
)

// Config holds transport client settings.
type Config struct {
	// BaseURL is the exchange API root.
	BaseURL string `json:"base_url" validate:"required,url"`
	// Timeout is the maximum duration of one request.
	Timeout time.Duration `json:"timeout" validate:"min=1ms"`
	// RequestsPerSecond caps the outbound request rate.
	RequestsPerSecond int `json:"requests_per_second" validate:"min=1"`
	// Burst allows short bursts above the sustained rate.
	Burst int `json:"burst" validate:"min=1"`
}

// DefaultConfig returns a Config with a 10s timeout and a 20 req/s limit.
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL:           baseURL,
		Timeout:           10 * time.Second,
		RequestsPerSecond: 20,
		Burst:             50,
	}
}

var validate = validator.New()

// Usage reports the rate-limit weight the exchange attributed to a
// response. It is returned alongside every response and owned by the
// caller; the client keeps no hidden usage state.
type Usage struct {
	// UsedWeight is the request weight consumed in the current window,
	// as reported by the exchange's rate-limit headers. Zero when the
	// exchange reported none.
	UsedWeight int
}

// Response is a completed HTTP exchange: status, raw body bytes for the
// normalization pipeline, and the rate-limit usage of the call.
type Response struct {
	StatusCode int
	Body       []byte
	Usage      Usage
}

// usedWeightHeaders are checked in order for the consumed request weight.
var usedWeightHeaders = []string{
	"X-MBX-USED-WEIGHT-1M",
	"X-MBX-USED-WEIGHT",
	"X-Bapi-Limit-Status",
}

// Client is a rate-limited HTTP client over resty. It performs no
// signing, no JSON decoding beyond byte passthrough, and no retries of
// business errors.
type Client struct {
	http    *resty.Client
	limiter *rate.Limiter
	logger  zerolog.Logger
}

// NewClient creates a transport client. The configuration is validated;
// an invalid configuration is a startup error.
func NewClient(cfg Config, logger zerolog.Logger) (*Client, error) {
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("transport config: %w", err)
	}

	http := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout)
	http.AddContentTypeEncoder("json", func(w io.Writer, v any) error {
		return sonic.ConfigDefault.NewEncoder(w).Encode(v)
	})
	http.AddContentTypeDecoder("json", func(r io.Reader, v any) error {
		return sonic.ConfigDefault.NewDecoder(r).Decode(v)
	})

	return &Client{
		http:    http,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		logger:  logger,
	}, nil
}

// Do sends one request. The query is the prepared canonical query string
// (signature included for query-style exchanges); headers carry the API
// key and any signature headers. Do blocks on the rate limiter until the
// request may be sent or the context is cancelled.
func (c *Client) Do(ctx context.Context, method, path, query string, headers map[string]string) (*Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req := c.http.R().SetContext(ctx)
	for k, v := range headers {
		req.SetHeader(k, v)
	}
	// The query is appended verbatim. Re-encoding through a values map
	// would reorder the pairs and break the signature over them.
	target := path
	if query != "" {
		target = path + "?" + query
	}

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Msg("http request")

	resp, err := req.Execute(method, target)
	if err != nil {
		return nil, fmt.Errorf("execute %s %s: %w", method, path, err)
	}

	usage := Usage{}
	for _, h := range usedWeightHeaders {
		if v := resp.Header().Get(h); v != "" {
			if w, err := strconv.Atoi(v); err == nil {
				usage.UsedWeight = w
				break
			}
		}
	}

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode()).
		Int("used_weight", usage.UsedWeight).
		Msg("http response")

	return &Response{
		StatusCode: resp.StatusCode(),
		Body:       resp.Bytes(),
		Usage:      usage,
	}, nil
}

// Close releases the underlying HTTP client resources.
func (c *Client) Close() error {
	return c.http.Close()
}
