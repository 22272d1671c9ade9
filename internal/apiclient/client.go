// Package apiclient issues bounded-latency calls to the analysis backend and
// folds every failure mode into an *apperr.RequestError carrying one
// user-visible message.
package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/imroc/req/v3"

	"github.com/tbckr/lookupkit/internal/apperr"
)

// DefaultTimeout bounds a call when neither the client nor the request sets one.
const DefaultTimeout = 10 * time.Second

// User-visible messages for failures that carry no backend text.
const (
	MsgTimeout        = "Request timeout. Please try again."
	MsgRequestFailed  = "Request failed"
	MsgCancelled      = "Request cancelled"
	msgInvalidPayload = "Invalid response from server"
)

// Config is injected at construction; nothing is read from the environment per call.
type Config struct {
	// BaseURL is the backend root, e.g. "https://api.example.com".
	BaseURL string
	// Timeout is the default per-call bound. Zero means DefaultTimeout.
	Timeout time.Duration
}

// Request describes one backend call.
type Request struct {
	Method string
	// Path is appended to Config.BaseURL.
	Path string
	// Body is JSON-encoded when non-nil.
	Body any
	// Timeout overrides Config.Timeout when positive.
	Timeout time.Duration
}

// Client performs backend calls. It is safe for concurrent use.
type Client struct {
	http    *req.Client
	baseURL string
	timeout time.Duration
	logger  *slog.Logger
}

// New creates a Client on top of an already configured transport.
func New(client *req.Client, cfg Config, logger *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		http:    client,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		timeout: timeout,
		logger:  logger,
	}
}

// Timeout returns the default per-call bound.
func (c *Client) Timeout() time.Duration { return c.timeout }

// Get is shorthand for a GET Do.
func (c *Client) Get(ctx context.Context, path string) (json.RawMessage, error) {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path})
}

// Post is shorthand for a POST Do with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body})
}

// Do issues exactly one request and returns the response body verbatim on 2xx.
//
// The request is bound to a context that expires after the timeout; on expiry
// the in-flight transport operation is cancelled and an ErrTimeout error is
// returned. Every error returned is an *apperr.RequestError.
func (c *Client) Do(ctx context.Context, r Request) (json.RawMessage, error) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = c.timeout
	}
	method := r.Method
	if method == "" {
		method = http.MethodGet
	}

	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	rq := c.http.R().SetContext(callCtx)
	if r.Body != nil {
		rq.SetBodyJsonMarshal(r.Body)
	}

	start := time.Now()
	resp, err := rq.Send(method, c.url(r.Path))
	if err != nil {
		reqErr := classifyTransport(ctx, callCtx, err)
		c.logger.Debug("api request failed",
			"method", method,
			"path", r.Path,
			"kind", apperr.KindName(reqErr),
			"duration", time.Since(start),
			"error", err,
		)
		return nil, reqErr
	}

	body, err := resp.ToBytes()
	if err != nil {
		return nil, classifyTransport(ctx, callCtx, err)
	}

	c.logger.Debug("api request",
		"method", method,
		"path", r.Path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if !resp.IsSuccessState() {
		return nil, applicationError(resp.StatusCode, body)
	}

	if !json.Valid(body) {
		return nil, &apperr.RequestError{
			Kind:    apperr.ErrMalformedResponse,
			Message: msgInvalidPayload,
			Status:  resp.StatusCode,
			Err:     fmt.Errorf("response body is not valid JSON (%d bytes)", len(body)),
		}
	}
	return json.RawMessage(body), nil
}

func (c *Client) url(path string) string {
	if path == "" {
		return c.baseURL
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}

// classifyTransport maps an error raised before a full response was read.
// parent is the caller's context, call the derived timeout context.
func classifyTransport(parent, call context.Context, err error) *apperr.RequestError {
	if errors.Is(parent.Err(), context.Canceled) {
		return &apperr.RequestError{Kind: apperr.ErrTransport, Message: MsgCancelled, Err: err}
	}
	if errors.Is(call.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return &apperr.RequestError{Kind: apperr.ErrTimeout, Message: MsgTimeout, Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &apperr.RequestError{Kind: apperr.ErrTimeout, Message: MsgTimeout, Err: err}
	}
	return &apperr.RequestError{Kind: apperr.ErrTransport, Message: err.Error(), Err: err}
}

// applicationError builds the error for a non-2xx response. The message comes
// from detail.message, then message, then MsgRequestFailed. A body that is not
// JSON is reported as ErrMalformedResponse with the parse error.
func applicationError(status int, body []byte) *apperr.RequestError {
	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return &apperr.RequestError{
			Kind:    apperr.ErrMalformedResponse,
			Message: fmt.Sprintf("%s (HTTP %d): %v", msgInvalidPayload, status, err),
			Status:  status,
			Err:     err,
		}
	}
	msg := errorMessage(decoded)
	if msg == "" {
		msg = MsgRequestFailed
	}
	return &apperr.RequestError{Kind: apperr.ErrApplication, Message: msg, Status: status}
}

func errorMessage(decoded any) string {
	obj, ok := decoded.(map[string]any)
	if !ok {
		return ""
	}
	if detail, ok := obj["detail"].(map[string]any); ok {
		if msg, ok := detail["message"].(string); ok && msg != "" {
			return msg
		}
	}
	if msg, ok := obj["message"].(string); ok && msg != "" {
		return msg
	}
	return ""
}
