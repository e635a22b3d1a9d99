package models

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/agent-lab-client/pkg/transport"
)

// Domain errors for model operations.
var (
	ErrNotFound         = errors.New("model not found")
	ErrIDRequired       = errors.New("model id required")
	ErrNameRequired     = errors.New("model name required")
	ErrProviderRequired = errors.New("model provider id required")
)

// MapHTTPStatus maps domain and transport errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrIDRequired) || errors.Is(err, ErrNameRequired) || errors.Is(err, ErrProviderRequired) {
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
