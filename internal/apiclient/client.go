package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Abdurahmanit/GroupProject/lostpets/internal/imageurl"
	"github.com/Abdurahmanit/GroupProject/lostpets/internal/platform/logger"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const maxResponseBytes = 10 << 20

// Recorder receives one observation per finished API call.
type Recorder interface {
	ObserveAPIRequest(endpoint string, status int, elapsed time.Duration)
}

type tokenCtxKey struct{}

// WithToken attaches a bearer token to every call made with ctx.
func WithToken(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, tokenCtxKey{}, token)
}

func tokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(tokenCtxKey{}).(string)
	return token
}

// Client is a thin wrapper over the listings/auth REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	resolver   *imageurl.Resolver
	logger     *logger.Logger
	recorder   Recorder
	tracer     trace.Tracer
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithRecorder(r Recorder) Option {
	return func(c *Client) { c.recorder = r }
}

// New builds a client. timeout <= 0 keeps the platform default (no deadline).
func New(baseURL string, timeout time.Duration, resolver *imageurl.Resolver, log *logger.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: max(timeout, 0)},
		resolver:   resolver,
		logger:     log.Named("APIClient"),
		tracer:     otel.Tracer("lostpets/apiclient"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Resolver exposes the image resolver the client maps listings through.
func (c *Client) Resolver() *imageurl.Resolver {
	return c.resolver
}

type requestBody interface {
	encode() (io.Reader, string, error)
}

type jsonBody struct{ v any }

func (b jsonBody) encode() (io.Reader, string, error) {
	data, err := json.Marshal(b.v)
	if err != nil {
		return nil, "", err
	}
	return bytes.NewReader(data), "application/json", nil
}

type multipartBody struct {
	fields [][2]string
	files  map[string]fileField
}

type fileField struct {
	name string
	data []byte
}

// encode lets the multipart writer pick the boundary; the content type it
// returns already carries it.
func (b multipartBody) encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, kv := range b.fields {
		if err := w.WriteField(kv[0], kv[1]); err != nil {
			return nil, "", err
		}
	}
	for field, f := range b.files {
		part, err := w.CreateFormFile(field, f.name)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(f.data); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

// do performs one request. out, when non-nil, receives the raw JSON body.
func (c *Client) do(ctx context.Context, endpoint, method, path string, query url.Values, body requestBody, out *json.RawMessage) error {
	ctx, span := c.tracer.Start(ctx, "api."+endpoint, trace.WithAttributes(
		attribute.String("http.method", method),
		attribute.String("http.path", path),
	))
	defer span.End()

	started := time.Now()
	status := 0
	defer func() {
		if c.recorder != nil {
			c.recorder.ObserveAPIRequest(endpoint, status, time.Since(started))
		}
	}()

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var (
		reader      io.Reader
		contentType string
	)
	if body != nil {
		var err error
		reader, contentType, err = body.encode()
		if err != nil {
			span.RecordError(err)
			return &Error{Message: fmt.Sprintf("failed to encode request: %v", err), Err: err}
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		span.RecordError(err)
		return &Error{Message: fmt.Sprintf("failed to build request: %v", err), Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := tokenFrom(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	c.logger.Debug("API request", zap.String("endpoint", endpoint), zap.String("method", method), zap.String("path", path), zap.String("request_id", requestID))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("API request failed", zap.String("endpoint", endpoint), zap.String("request_id", requestID), zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "network error")
		return &Error{Message: fmt.Sprintf("network error: %v", err), Err: err}
	}
	defer resp.Body.Close()
	status = resp.StatusCode
	span.SetAttributes(attribute.Int("http.status_code", status))

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		span.RecordError(err)
		return &Error{Status: status, Message: fmt.Sprintf("failed to read response: %v", err), Err: err}
	}

	if status < 200 || status > 299 {
		msg, fields := decodeError(data)
		if msg == "" {
			msg = fmt.Sprintf("HTTP %d", status)
		}
		c.logger.Info("API request rejected", zap.String("endpoint", endpoint), zap.Int("status", status), zap.String("message", msg), zap.String("request_id", requestID))
		span.SetStatus(codes.Error, msg)
		return &Error{Status: status, Message: msg, Fields: fields}
	}

	if out != nil {
		*out = json.RawMessage(data)
	}
	return nil
}
