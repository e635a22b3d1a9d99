// Package transport issues JSON requests against the remote catalog service
// and surfaces HTTP and network failures as *Error values.
package transport

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

// HeaderRequestID carries a per-request correlation identifier.
const HeaderRequestID = "X-Request-ID"

// Client is the request-issuing boundary consumed by the access systems.
// Request bodies are pre-encoded JSON documents; responses are returned undecoded.
type Client interface {
	Get(ctx context.Context, path string) ([]byte, error)
	Post(ctx context.Context, path string, body []byte) ([]byte, error)
	Put(ctx context.Context, path string, body []byte) ([]byte, error)
	Delete(ctx context.Context, path string) error
}

type client struct {
	http    *resty.Client
	logger  *slog.Logger
	maxSize int64
}

// New creates a Client for the configured base URL. cfg must be finalized.
func New(cfg *Config, logger *slog.Logger) Client {
	r := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.TimeoutDuration()).
		SetHeader("Accept", "application/json").
		SetResponseBodyLimit(int(cfg.MaxResponseSizeBytes()))

	if cfg.Token != "" {
		r.SetAuthToken(cfg.Token)
	}

	return &client{
		http:    r,
		logger:  logger.With("system", "transport"),
		maxSize: cfg.MaxResponseSizeBytes(),
	}
}

func (c *client) Get(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

func (c *client) Post(ctx context.Context, path string, body []byte) ([]byte, error) {
	return c.do(ctx, http.MethodPost, path, body)
}

func (c *client) Put(ctx context.Context, path string, body []byte) ([]byte, error) {
	return c.do(ctx, http.MethodPut, path, body)
}

func (c *client) Delete(ctx context.Context, path string) error {
	_, err := c.do(ctx, http.MethodDelete, path, nil)
	return err
}

func (c *client) do(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	id := uuid.NewString()

	req := c.http.R().
		SetContext(ctx).
		SetHeader(HeaderRequestID, id)

	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if errors.Is(err, resty.ErrResponseBodyTooLarge) {
		status := 0
		if resp != nil {
			status = resp.StatusCode()
		}
		return nil, &Error{
			Method:  method,
			Path:    path,
			Status:  status,
			Message: fmt.Sprintf("response body exceeds limit of %d bytes", c.maxSize),
		}
	}
	if err != nil {
		c.logger.Debug("request failed", "method", method, "path", path, "request_id", id, "error", err)
		return nil, &Error{Method: method, Path: path, Message: err.Error()}
	}

	data := resp.Body()
	c.logger.Debug(
		"request complete",
		"method", method,
		"path", path,
		"request_id", id,
		"status", resp.StatusCode(),
		"bytes", len(data),
	)

	if resp.IsError() {
		return nil, &Error{
			Method:  method,
			Path:    path,
			Status:  resp.StatusCode(),
			Message: errorMessage(resp.StatusCode(), data),
		}
	}

	return data, nil
}

func errorMessage(status int, body []byte) string {
	if gjson.ValidBytes(body) {
		doc := gjson.ParseBytes(body)
		for _, key := range []string{"error", "message", "detail"} {
			if v := doc.Get(key); v.Exists() && v.Type == gjson.String && v.String() != "" {
				return v.String()
			}
		}
	}
	if s := strings.TrimSpace(string(body)); s != "" && len(s) <= 512 {
		return s
	}
	return http.StatusText(status)
}
