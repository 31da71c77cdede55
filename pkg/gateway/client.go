// Package gateway translates operator actions into single HTTP calls against
// the Astrology Booklet backend and wraps each result as one Outcome. It is a
// thin adapter: no retries, no queuing, no state beyond the injected Config.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultTimeout applies when a dispatch carries no explicit timeout.
const DefaultTimeout = 30 * time.Second

// RequestIDHeader carries the per-dispatch trace ID.
const RequestIDHeader = "X-Request-ID"

var supportedMethods = map[string]bool{
	http.MethodGet:    true,
	http.MethodPost:   true,
	http.MethodPut:    true,
	http.MethodDelete: true,
}

// Config carries the connection settings for dispatches. Commands resolve a
// fresh Config per invocation so a corrected base URL or token takes effect
// immediately.
type Config struct {
	// BaseURL is the backend base URL, e.g. "http://localhost:8010".
	BaseURL string

	// Token is the optional bearer token. Empty means unauthenticated.
	Token string
}

// Client dispatches catalog actions against one backend.
type Client struct {
	cfg        Config
	httpClient *http.Client
	userAgent  string
	log        *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. The client's own
// Timeout field is ignored; dispatch timeouts come from the action table.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithUserAgent sets the User-Agent header for outgoing requests.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithLogger sets the logger for dispatch diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// New creates a Client for the given configuration.
func New(cfg Config, opts ...Option) *Client {
	c := &Client{
		cfg:        cfg,
		httpClient: &http.Client{},
		log:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Config returns the configuration the client was built with.
func (c *Client) Config() Config {
	return c.cfg
}

// BuildHeaders returns the standard JSON headers. The Authorization header is
// added only when requireAuth is set and a token is configured; a missing
// token is not an error here, the backend rejects if it insists on auth.
func (c *Client) BuildHeaders(requireAuth bool) http.Header {
	h := http.Header{}
	h.Set("Accept", "application/json")
	h.Set("Content-Type", "application/json")
	if requireAuth && c.cfg.Token != "" {
		h.Set("Authorization", "Bearer "+c.cfg.Token)
	}
	return h
}

// RequestOptions carries the per-dispatch request settings.
type RequestOptions struct {
	// Headers are set on the request as given.
	Headers http.Header

	// Body, when non-nil, is marshaled as the JSON request body.
	Body any

	// Timeout bounds the whole call. Zero means DefaultTimeout.
	Timeout time.Duration

	// TraceID overrides the generated trace ID. Callers that record the
	// dispatch elsewhere set it so both sides share one ID.
	TraceID string
}

// Dispatch performs one HTTP call and returns exactly one Outcome. Transport
// failures are classified and returned as outcomes, never as panics or
// errors; an unsupported method short-circuits with no network I/O.
func (c *Client) Dispatch(ctx context.Context, method, rawURL string, opts RequestOptions) Outcome {
	method = normalizeMethod(method)
	if !supportedMethods[method] {
		return configErrorOutcome(fmt.Sprintf("Unsupported method: %s", method))
	}

	traceID := opts.TraceID
	if traceID == "" {
		traceID = uuid.NewString()
	}

	var bodyReader io.Reader
	if opts.Body != nil {
		enc, err := json.Marshal(opts.Body)
		if err != nil {
			return failureOutcome(traceID, Failure{
				Kind:    FailureConfig,
				Message: fmt.Sprintf("cannot encode request body: %v", err),
				Err:     err,
			})
		}
		bodyReader = bytes.NewReader(enc)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, rawURL, bodyReader)
	if err != nil {
		return failureOutcome(traceID, Failure{
			Kind:    FailureRequest,
			Message: fmt.Sprintf("Request failed: %v", err),
			Err:     err,
		})
	}

	for key, values := range opts.Headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	req.Header.Set(RequestIDHeader, traceID)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		f := c.classifyTransport(err)
		c.log.Debug("dispatch failed",
			"method", method,
			"url", rawURL,
			"kind", f.Kind,
			"trace_id", traceID,
			"error", err)
		return failureOutcome(traceID, f)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		f := c.classifyTransport(err)
		return failureOutcome(traceID, f)
	}

	c.log.Debug("dispatch completed",
		"method", method,
		"url", rawURL,
		"status", resp.StatusCode,
		"bytes", len(raw),
		"duration", time.Since(start),
		"trace_id", traceID)

	return responseOutcome(traceID, resp.StatusCode, raw)
}

// Do resolves a catalog action and dispatches it. Unknown actions and missing
// path parameters become config-error outcomes without network I/O.
func (c *Client) Do(ctx context.Context, id ActionID, p Params) Outcome {
	action, ok := Lookup(id)
	if !ok {
		return configErrorOutcome(fmt.Sprintf("Unknown action: %s", id))
	}

	u, err := action.BuildURL(c.cfg.BaseURL, p)
	if err != nil {
		return configErrorOutcome(err.Error())
	}

	return c.Dispatch(ctx, action.Method, u, RequestOptions{
		Headers: c.BuildHeaders(action.RequiresAuth),
		Body:    p.Body,
		Timeout: action.Timeout,
		TraceID: p.TraceID,
	})
}

func normalizeMethod(method string) string {
	return strings.ToUpper(strings.TrimSpace(method))
}

// classifyTransport maps a client error onto the error taxonomy: timeouts,
// connection failures (refused, unreachable, DNS), and everything else.
func (c *Client) classifyTransport(err error) Failure {
	if errors.Is(err, context.DeadlineExceeded) {
		return Failure{Kind: FailureTimeout, Message: "Request timed out", Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return Failure{Kind: FailureTimeout, Message: "Request timed out", Err: err}
	}

	if isConnectionError(err) {
		return Failure{
			Kind:    FailureConnection,
			Message: fmt.Sprintf("Connection failed. Is the backend running at %s?", c.cfg.BaseURL),
			Err:     err,
		}
	}

	return Failure{Kind: FailureRequest, Message: fmt.Sprintf("Request failed: %v", err), Err: err}
}

func isConnectionError(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		// Dial-phase failures cover refused and unreachable hosts.
		return opErr.Op == "dial"
	}
	return false
}
