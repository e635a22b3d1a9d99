// Package evaluations forwards evaluation runs to the remote service.
// Request and response bodies pass through unmodified.
package evaluations

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/agent-lab-client/internal/endpoints"
	"github.com/JaimeStill/agent-lab-client/pkg/transport"
	"github.com/tidwall/gjson"
)

// ErrInvalidRequest indicates the run request is not a JSON object.
var ErrInvalidRequest = errors.New("evaluation request must be a JSON object")

// System defines the interface for evaluation execution.
type System interface {
	// Run submits request and returns the raw response body.
	Run(ctx context.Context, request json.RawMessage) (json.RawMessage, error)
}

type system struct {
	http   transport.Client
	path   string
	logger *slog.Logger
}

// New creates an evaluations system posting to the versioned run path.
func New(client transport.Client, paths endpoints.Endpoints, logger *slog.Logger) System {
	return &system{
		http:   client,
		path:   paths.Evaluations,
		logger: logger.With("system", "evaluation"),
	}
}

func (s *system) Run(ctx context.Context, request json.RawMessage) (json.RawMessage, error) {
	if !gjson.ValidBytes(request) || !gjson.ParseBytes(request).IsObject() {
		return nil, ErrInvalidRequest
	}

	raw, err := s.http.Post(ctx, s.path, request)
	if err != nil {
		return nil, fmt.Errorf("run evaluation: %w", err)
	}

	s.logger.Info("evaluation run complete", "bytes", len(raw))
	return raw, nil
}

// MapHTTPStatus maps evaluation and transport errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrInvalidRequest) {
		return http.StatusBadRequest
	}
	if status := transport.StatusOf(err); status >= 400 && status < 500 {
		return status
	}
	if errors.Is(err, transport.ErrTransport) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
