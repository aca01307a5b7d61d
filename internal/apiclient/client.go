package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/geocoder89/bankportal/internal/apiclient"

// maxErrorBody caps how much of an error response is kept for messages.
const maxErrorBody = 64 << 10

// TokenSource yields the bearer token for the session bound to ctx, or "".
type TokenSource interface {
	Token(ctx context.Context) string
}

// InvalidationListener hears about every 401 on an authenticated call.
type InvalidationListener interface {
	SessionInvalidated(ctx context.Context)
}

type Metrics interface {
	ObserveBackend(op, class string, d time.Duration)
}

type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Tokens     TokenSource
	Listener   InvalidationListener
	Metrics    Metrics
	Logger     *slog.Logger
}

type Client struct {
	baseURL  string
	timeout  time.Duration
	http     *http.Client
	tokens   TokenSource
	listener InvalidationListener
	metrics  Metrics
	log      *slog.Logger
	tracer   trace.Tracer
}

func New(cfg Config) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}

	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		timeout:  cfg.Timeout,
		http:     hc,
		tokens:   cfg.Tokens,
		listener: cfg.Listener,
		metrics:  cfg.Metrics,
		log:      log,
		tracer:   otel.Tracer(tracerName),
	}
}

// call describes one backend round trip. public calls carry no bearer token
// and never count as session invalidation.
type call struct {
	op     string
	method string
	path   string
	body   any
	out    any
	public bool
}

func (c *Client) do(ctx context.Context, cl call) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	ctx, span := c.tracer.Start(ctx, "backend "+cl.op, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	span.SetAttributes(
		attribute.String("http.request.method", cl.method),
		attribute.String("url.path", cl.path),
	)

	req, err := c.newRequest(ctx, cl)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "build request")
		return err
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	elapsed := time.Since(start)

	if err != nil {
		c.observe(cl.op, "transport", elapsed)
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport")
		c.log.WarnContext(ctx, "backend_call_failed", "op", cl.op, "method", cl.method, "path", cl.path, "err", err)
		return fmt.Errorf("%w: %s %s: %v", ErrTransport, cl.method, cl.path, err)
	}
	defer resp.Body.Close()

	class := statusClass(resp.StatusCode)
	c.observe(cl.op, class, elapsed)
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	c.log.DebugContext(ctx, "backend_call", "op", cl.op, "method", cl.method, "path", cl.path, "status", resp.StatusCode, "latency_ms", elapsed.Milliseconds())

	if resp.StatusCode == http.StatusUnauthorized && !cl.public {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
		span.SetStatus(codes.Error, "unauthorized")

		if c.listener != nil {
			c.listener.SessionInvalidated(context.WithoutCancel(ctx))
		}
		return ErrUnauthorized
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		span.SetStatus(codes.Error, resp.Status)

		return &APIError{
			Op:      cl.op,
			Status:  resp.StatusCode,
			Message: messageFromBody(body),
			Body:    body,
		}
	}

	if cl.out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(cl.out); err != nil {
		span.RecordError(err)
		return fmt.Errorf("%s: decode response: %w", cl.op, err)
	}

	return nil
}

func (c *Client) newRequest(ctx context.Context, cl call) (*http.Request, error) {
	var body io.Reader

	if cl.body != nil {
		b, err := json.Marshal(cl.body)
		if err != nil {
			return nil, fmt.Errorf("%s: encode request: %w", cl.op, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, c.baseURL+cl.path, body)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", cl.op, err)
	}

	req.Header.Set("Accept", "application/json")
	if cl.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if !cl.public && c.tokens != nil {
		if token := c.tokens.Token(ctx); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	return req, nil
}

func (c *Client) observe(op, class string, d time.Duration) {
	if c.metrics != nil {
		c.metrics.ObserveBackend(op, class, d)
	}
}
