package fetcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// ErrUnavailable is returned once every attempt for a request has failed.
// Callers treat it as "source unavailable" and carry on with empty data.
var ErrUnavailable = errors.New("source unavailable")

const (
	DefaultRetries   = 3
	DefaultBackoff   = time.Second
	DefaultTimeout   = 10 * time.Second
	DefaultUserAgent = "lead-enricher/1.0"

	// DefaultMaxTextBytes caps how much of a page GetText reads.
	DefaultMaxTextBytes = 4 << 20
)

// Request describes a single GET.
type Request struct {
	URL     string
	Params  url.Values
	Headers map[string]string
}

// SleepFunc pauses between attempts.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Fetcher performs GET requests with linear backoff between attempts.
type Fetcher struct {
	client    *http.Client
	userAgent string
	retries   int
	backoff   time.Duration
	timeout   time.Duration
	maxText   int64
	sleep     SleepFunc
	logger    *slog.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(f *Fetcher) {
		if client != nil {
			f.client = client
		}
	}
}

// WithUserAgent sets the default User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// WithRetries sets the total number of attempts per request.
func WithRetries(n int) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.retries = n
		}
	}
}

// WithBackoff sets the base backoff; attempt i waits backoff*(i+1).
func WithBackoff(d time.Duration) Option {
	return func(f *Fetcher) {
		if d >= 0 {
			f.backoff = d
		}
	}
}

// WithTimeout bounds each individual attempt.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		if d > 0 {
			f.timeout = d
		}
	}
}

// WithMaxTextBytes caps the body GetText reads; the rest is dropped.
func WithMaxTextBytes(n int64) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.maxText = n
		}
	}
}

// WithSleep replaces the pause between attempts (tests use a no-op).
func WithSleep(fn SleepFunc) Option {
	return func(f *Fetcher) {
		if fn != nil {
			f.sleep = fn
		}
	}
}

// WithLogger sets the logger for attempt failures.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// NewFetcher builds a Fetcher with the package defaults, then applies opts.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		client:    &http.Client{},
		userAgent: DefaultUserAgent,
		retries:   DefaultRetries,
		backoff:   DefaultBackoff,
		timeout:   DefaultTimeout,
		maxText:   DefaultMaxTextBytes,
		sleep:     SleepWithContext,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// GetJSON fetches req and returns the response body once it parses as JSON.
// An unparseable body counts as a failed attempt.
func (f *Fetcher) GetJSON(ctx context.Context, req Request) (json.RawMessage, error) {
	body, err := f.do(ctx, req, 0, func(b []byte) error {
		if !json.Valid(b) {
			return errors.New("response is not valid JSON")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}

// GetText fetches req and returns the response body as a string, truncated
// to the configured maximum.
func (f *Fetcher) GetText(ctx context.Context, req Request) (string, error) {
	body, err := f.do(ctx, req, f.maxText, nil)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// do runs up to f.retries attempts. limit bounds the bytes read from each
// body; 0 reads it all.
func (f *Fetcher) do(ctx context.Context, req Request, limit int64, check func([]byte) error) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt < f.retries; attempt++ {
		body, err := f.attempt(ctx, req, limit)
		if err == nil && check != nil {
			err = check(body)
		}
		if err == nil {
			return body, nil
		}
		lastErr = err
		f.logger.Debug("request attempt failed", "url", req.URL, "attempt", attempt+1, "error", err)

		if sleepErr := f.sleep(ctx, f.backoff*time.Duration(attempt+1)); sleepErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnavailable, sleepErr)
		}
	}
	f.logger.Warn("giving up on request", "url", req.URL, "attempts", f.retries, "error", lastErr)
	return nil, fmt.Errorf("%w: %s after %d attempts: %w", ErrUnavailable, req.URL, f.retries, lastErr)
}

func (f *Fetcher) attempt(ctx context.Context, req Request, limit int64) ([]byte, error) {
	endpoint, err := url.Parse(req.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse url: %w", err)
	}
	if len(req.Params) > 0 {
		query := endpoint.Query()
		for k, vs := range req.Params {
			for _, v := range vs {
				query.Add(k, v)
			}
		}
		endpoint.RawQuery = query.Encode()
	}

	attemptCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("User-Agent", f.userAgent)
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := f.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to make HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("rate limited, status code: %d", resp.StatusCode)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var r io.Reader = resp.Body
	if limit > 0 {
		r = io.LimitReader(resp.Body, limit)
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}

// SleepWithContext blocks for d, returning early if the context is cancelled.
func SleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
