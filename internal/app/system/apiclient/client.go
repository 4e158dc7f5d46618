// Package apiclient talks to the restaurant backend over JSON/HTTP.
//
// Calls share one circuit breaker per Client. Only transport failures count
// against it; any HTTP answer, including 4xx and 5xx, means the backend is
// reachable. Idempotent reads get one retry on transport failure.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/felixgeelhaar/fortify/circuitbreaker"
	"github.com/felixgeelhaar/fortify/retry"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// DefaultBaseURL is used when no backend address is configured.
const DefaultBaseURL = "http://localhost:5000"

const maxBody = 4 << 20

// Config configures a Client.
type Config struct {
	BaseURL         string
	Timeout         time.Duration // per request; default 10s
	BreakerFailures int           // consecutive transport failures before opening; default 5
	BreakerCooldown time.Duration // time open before a trial request; default 30s
	Transport       http.RoundTripper
}

// Client is safe for concurrent use. WithToken returns a view sharing the
// breaker and transport.
type Client struct {
	base      string
	timeout   time.Duration
	transport http.RoundTripper
	http      *http.Client
	breaker   circuitbreaker.CircuitBreaker[*reply]
	retrier   retry.Retry[*reply]
	log       *zap.Logger
}

type reply struct {
	status      int
	contentType string
	body        []byte
}

// New builds a Client. The base URL must be absolute http(s).
func New(cfg Config, logger *zap.Logger) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	u, err := url.Parse(base)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid backend base URL %q", cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	failures := cfg.BreakerFailures
	if failures <= 0 {
		failures = 5
	}
	cooldown := cfg.BreakerCooldown
	if cooldown <= 0 {
		cooldown = 30 * time.Second
	}

	c := &Client{
		base:      base,
		timeout:   timeout,
		transport: cfg.Transport,
		http:      &http.Client{Timeout: timeout, Transport: cfg.Transport},
		log:       logger,
	}

	c.breaker = circuitbreaker.New[*reply](circuitbreaker.Config{
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     cooldown,
		ReadyToTrip: func(counts circuitbreaker.Counts) bool {
			return int(counts.ConsecutiveFailures) >= failures
		},
		OnStateChange: func(from, to circuitbreaker.State) {
			logger.Warn("backend circuit breaker state change",
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})

	c.retrier = retry.New[*reply](retry.Config{
		MaxAttempts:   2,
		InitialDelay:  100 * time.Millisecond,
		MaxDelay:      time.Second,
		Multiplier:    2.0,
		BackoffPolicy: retry.BackoffExponential,
		Jitter:        true,
		IsRetryable: func(err error) bool {
			return err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
		},
	})

	return c, nil
}

// BaseURL is the backend address requests go to.
func (c *Client) BaseURL() string { return c.base }

// BreakerState reads the circuit breaker's current state.
func (c *Client) BreakerState() string {
	return c.breaker.State().String()
}

// WithToken returns a Client that sends token as a bearer credential.
// An empty token returns c unchanged.
func (c *Client) WithToken(token string) *Client {
	if token == "" {
		return c
	}
	cp := *c
	cp.http = &http.Client{
		Timeout: c.timeout,
		Transport: &oauth2.Transport{
			Base:   c.transport,
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}),
		},
	}
	return &cp
}

// call describes one backend request.
type call struct {
	op         string
	method     string
	path       string
	query      url.Values
	in         any
	out        any
	strictJSON bool // reject non-JSON bodies even on error statuses
}

func (c *Client) do(ctx context.Context, cl call) error {
	var payload []byte
	if cl.in != nil {
		b, err := json.Marshal(cl.in)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", cl.op, err)
		}
		payload = b
	}

	target := c.base + cl.path
	if len(cl.query) > 0 {
		target += "?" + cl.query.Encode()
	}
	reqID := uuid.NewString()

	send := func(ctx context.Context) (*reply, error) {
		var body io.Reader
		if payload != nil {
			body = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, cl.method, target, body)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("X-Request-ID", reqID)
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
		if err != nil {
			return nil, err
		}
		return &reply{status: resp.StatusCode, contentType: resp.Header.Get("Content-Type"), body: data}, nil
	}

	attempt := send
	if cl.method == http.MethodGet {
		attempt = func(ctx context.Context) (*reply, error) {
			return c.retrier.Do(ctx, send)
		}
	}

	start := time.Now()
	rep, err := c.breaker.Execute(ctx, attempt)
	if err != nil {
		c.log.Warn("backend call failed",
			zap.String("op", cl.op),
			zap.String("method", cl.method),
			zap.String("path", cl.path),
			zap.String("request_id", reqID),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return &NetworkError{Op: cl.op, Err: err}
	}

	c.log.Debug("backend call",
		zap.String("op", cl.op),
		zap.String("method", cl.method),
		zap.String("path", cl.path),
		zap.String("request_id", reqID),
		zap.Int("status", rep.status),
		zap.Duration("elapsed", time.Since(start)))

	return rep.decode(cl)
}

func (r *reply) decode(cl call) error {
	isJSON := jsonContent(r.contentType)
	if cl.strictJSON && !isJSON {
		return fmt.Errorf("%w: %s expected JSON but received %q (status %d)",
			ErrUnexpectedContent, cl.op, r.contentType, r.status)
	}

	if r.status < 200 || r.status > 299 {
		apiErr := &APIError{StatusCode: r.status}
		var msg struct {
			Message string `json:"message"`
		}
		if len(r.body) > 0 && json.Unmarshal(r.body, &msg) == nil {
			apiErr.Message = strings.TrimSpace(msg.Message)
		}
		return apiErr
	}

	if cl.out == nil {
		return nil
	}
	if err := json.Unmarshal(r.body, cl.out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrUnexpectedContent, cl.op, err)
	}
	return nil
}

func jsonContent(ct string) bool {
	if ct == "" {
		return false
	}
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return strings.Contains(ct, "application/json")
	}
	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}

func idPath(prefix, id string, suffix ...string) string {
	p := prefix + "/" + url.PathEscape(id)
	for _, s := range suffix {
		p += "/" + s
	}
	return p
}

// Ping checks that the backend answers HTTP at all. The breaker is
// bypassed so health reports the live state.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Op: "ping", Err: err}
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	resp.Body.Close()
	return nil
}
