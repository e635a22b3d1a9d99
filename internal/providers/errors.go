package providers

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/agent-lab-client/pkg/transport"
)

// Domain errors for the providers system.
var (
	// ErrNotFound indicates the requested provider could not be resolved.
	ErrNotFound = errors.New("provider not found")

	// ErrIDRequired indicates an operation was called without a provider id.
	ErrIDRequired = errors.New("provider id required")

	// ErrNameRequired indicates a provider was created without a name.
	ErrNameRequired = errors.New("provider name required")
)

// MapHTTPStatus maps domain and transport errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrIDRequired) || errors.Is(err, ErrNameRequired) {
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
