package backend

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

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Surachart01/KMS/internal/domain"
	"github.com/Surachart01/KMS/internal/platform/metrics"
)

const (
	opListKeys = "list_keys"
	opBorrow   = "borrow"
	opReturn   = "return"

	// DefaultTimeout bounds every request; the client never retries.
	DefaultTimeout = 10 * time.Second

	placeholderToken = "your_bearer_token_here"
	maxResponseBody  = 1 << 20
	outcomeOK        = "ok"

	tracerName = "github.com/Surachart01/KMS/internal/backend"
)

// Client is a stateless wrapper over the hardware REST API.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithTracerProvider replaces the global tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Client) {
		c.tracer = tp.Tracer(tracerName)
	}
}

func New(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: DefaultTimeout},
		logger:  slog.Default(),
		tracer:  otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.metrics == nil {
		c.metrics = metrics.Nop()
	}
	return c
}

// IsConfigured reports whether a real API token is set.
func (c *Client) IsConfigured() bool {
	return c.token != "" && c.token != placeholderToken
}

// ListKeys fetches the current key/slot snapshot.
func (c *Client) ListKeys(ctx context.Context) ([]domain.SlotRef, error) {
	res, err := c.do(ctx, opListKeys, http.MethodGet, "/keys", nil, http.StatusOK)
	if err != nil {
		return nil, err
	}

	var dtos []keyDTO
	payload := res.env.Data
	if trimmed := bytes.TrimSpace(res.body); len(trimmed) > 0 && trimmed[0] == '[' {
		payload = trimmed
	}
	if len(payload) > 0 && string(payload) != "null" {
		if err := json.Unmarshal(payload, &dtos); err != nil {
			c.logger.Error("malformed key list", "error", err)
			return nil, newError(CategoryFailure, opListKeys, "malformed key list", err)
		}
	}

	keys := make([]domain.SlotRef, 0, len(dtos))
	for _, dto := range dtos {
		keys = append(keys, dto.toDomain())
	}
	return keys, nil
}

// Borrow asks the backend to check out roomCode for studentCode. An empty
// reason is omitted from the request.
func (c *Client) Borrow(ctx context.Context, studentCode, roomCode, reason string) (*domain.BorrowReceipt, error) {
	body := borrowRequest{StudentCode: studentCode, RoomCode: roomCode, Reason: reason}
	res, err := c.do(ctx, opBorrow, http.MethodPost, "/borrow", body, http.StatusOK, http.StatusCreated)
	if err != nil {
		return nil, err
	}

	receipt := &domain.BorrowReceipt{RoomCode: roomCode, Message: res.env.Message}
	var data borrowDataDTO
	if len(res.env.Data) > 0 && json.Unmarshal(res.env.Data, &data) == nil {
		receipt.SlotNumber = data.KeySlotNumber
		key := data.Key
		if key == nil && data.Booking != nil {
			key = data.Booking.Key
		}
		if key != nil {
			if receipt.SlotNumber == 0 {
				receipt.SlotNumber = key.SlotNumber
			}
			if key.RoomCode != "" {
				receipt.RoomCode = key.RoomCode
			}
		}
	}
	return receipt, nil
}

// ReturnKey records the return of whatever key studentCode holds.
func (c *Client) ReturnKey(ctx context.Context, studentCode string) (*domain.ReturnReceipt, error) {
	res, err := c.do(ctx, opReturn, http.MethodPost, "/return", returnRequest{StudentCode: studentCode}, http.StatusOK)
	if err != nil {
		return nil, err
	}

	receipt := &domain.ReturnReceipt{Message: res.env.Message}
	var data returnDataDTO
	if len(res.env.Data) > 0 && json.Unmarshal(res.env.Data, &data) == nil {
		late := data.lateness
		key := data.Key
		if data.Booking != nil {
			if late.LateMinutes == nil {
				late = data.Booking.lateness
			}
			if key == nil {
				key = data.Booking.Key
			}
		}
		if late.LateMinutes != nil {
			receipt.LateMinutes = *late.LateMinutes
		}
		if late.PenaltyScore != nil {
			receipt.PenaltyScore = *late.PenaltyScore
		}
		receipt.SlotNumber = data.KeySlotNumber
		if key != nil {
			receipt.RoomCode = key.RoomCode
			if receipt.SlotNumber == 0 {
				receipt.SlotNumber = key.SlotNumber
			}
		}
	}
	return receipt, nil
}

type response struct {
	status int
	body   []byte
	env    envelope
}

// do performs one request and converts every non-success outcome into an
// *Error. The span is ended before returning.
func (c *Client) do(ctx context.Context, op, method, path string, payload any, okStatus ...int) (*response, error) {
	ctx, span := c.tracer.Start(ctx, "backend."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("kms.operation", op)))
	defer span.End()

	if !c.IsConfigured() {
		return nil, c.fail(span, newError(CategoryUnauthorized, op, ErrNotConfigured.Error(), ErrNotConfigured))
	}

	var reader io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, c.fail(span, newError(CategoryFailure, op, "encode request", err))
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, c.fail(span, newError(CategoryFailure, op, "build request", err))
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if id := RequestIDFromContext(ctx); id != "" {
		req.Header.Set("X-Request-ID", id)
	}

	c.logger.Info("backend request", "operation", op, "method", method, "url", req.URL.String())
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, c.fail(span, classifyTransport(op, err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, c.fail(span, classifyTransport(op, err))
	}
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	c.logger.Info("backend response", "operation", op, "status", resp.StatusCode)

	res := &response{status: resp.StatusCode, body: body}
	_ = json.Unmarshal(body, &res.env)

	for _, s := range okStatus {
		if resp.StatusCode == s {
			span.SetAttributes(attribute.String("kms.outcome", outcomeOK))
			c.metrics.ObserveBackend(op, outcomeOK)
			return res, nil
		}
	}
	return nil, c.fail(span, classifyResponse(op, resp.StatusCode, res.env, body))
}

func (c *Client) fail(span trace.Span, e *Error) error {
	span.RecordError(e)
	span.SetStatus(codes.Error, string(e.Category))
	span.SetAttributes(attribute.String("kms.outcome", string(e.Category)))
	c.metrics.ObserveBackend(e.Operation, string(e.Category))
	c.logger.Error("backend call failed", "operation", e.Operation, "category", e.Category,
		"status", e.StatusCode, "error", e)
	return e
}

func classifyResponse(op string, status int, env envelope, body []byte) *Error {
	message := env.Message
	if message == "" {
		message = strings.TrimSpace(string(body))
	}
	if message == "" {
		message = fmt.Sprintf("Error: %d", status)
	}

	var e *Error
	switch {
	case env.ErrorCode == ErrorCodeRequireReason:
		e = newError(CategoryReasonRequired, op, message, nil)
	case status == http.StatusUnauthorized:
		e = newError(CategoryUnauthorized, op, message, nil)
	case status == http.StatusForbidden:
		e = newError(CategoryForbidden, op, message, nil)
	default:
		e = newError(CategoryFailure, op, message, nil)
	}
	e.StatusCode = status
	e.Code = env.ErrorCode
	return e
}

func classifyTransport(op string, err error) *Error {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		return newError(CategoryTimeout, op, "request timed out", err)
	case errors.Is(err, context.Canceled):
		return newError(CategoryFailure, op, "request cancelled", err)
	default:
		return newError(CategoryConnectionFailed, op, "unable to reach the server", err)
	}
}

type requestIDKey struct{}

// ContextWithRequestID tags outgoing requests with an X-Request-ID header.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the ID set by ContextWithRequestID, or "".
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
