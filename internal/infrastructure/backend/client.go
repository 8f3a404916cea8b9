// Package backend is the HTTP client for the library REST API.
package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/bookshelf/storefront/internal/core/ports"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	defaultTimeout = 10 * time.Second
	maxErrorBody   = 64 << 10
)

// Config captures how to reach the backend.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// RateLimit caps outbound requests per second; zero disables the limiter.
	RateLimit float64
	Burst     int
}

// Observer receives one call per completed round trip. Status is 0 when the
// request never produced a response.
type Observer func(method, route string, status int, elapsed time.Duration)

// Client talks JSON to the library backend. Timeouts are the transport's;
// failed calls are never retried.
type Client struct {
	baseURL  string
	http     *http.Client
	limiter  *rate.Limiter
	observer Observer
	log      zerolog.Logger
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient swaps the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithObserver installs a round-trip observer.
func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

func New(cfg Config, log zerolog.Logger, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
	if cfg.RateLimit > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend root the client targets.
func (c *Client) BaseURL() string { return c.baseURL }

// Ping checks that the backend answers at all. Any HTTP response counts.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/library/books", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("backend ping: %w", err)
	}
	_ = resp.Body.Close()
	return nil
}

// call describes one request. Route is the path template used for metrics.
type call struct {
	method string
	route  string
	path   string
	token  string
	in     any
	out    any
}

func (c *Client) do(ctx context.Context, cl call) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("backend %s %s: %w", cl.method, cl.path, err)
		}
	}

	var body io.Reader
	if cl.in != nil {
		payload, err := json.Marshal(cl.in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", cl.method, cl.path, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, c.baseURL+cl.path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if cl.in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cl.token != "" {
		req.Header.Set("Authorization", "Bearer "+cl.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(cl, 0, time.Since(start))
		return fmt.Errorf("backend %s %s: %w", cl.method, cl.path, err)
	}
	defer resp.Body.Close()
	c.observe(cl, resp.StatusCode, time.Since(start))

	c.log.Debug().
		Str("method", cl.method).
		Str("path", cl.path).
		Int("status", resp.StatusCode).
		Str("request_id", req.Header.Get("X-Request-ID")).
		Msg("backend call")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(cl.method, cl.path, resp)
	}

	if cl.out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s %s: %w", cl.method, cl.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, cl.out); err != nil {
		return fmt.Errorf("decode %s %s: %w", cl.method, cl.path, err)
	}
	return nil
}

func (c *Client) observe(cl call, status int, elapsed time.Duration) {
	if c.observer != nil {
		c.observer(cl.method, cl.route, status, elapsed)
	}
}

var _ ports.LibraryBackend = (*Client)(nil)
