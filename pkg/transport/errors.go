package transport

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrTransport matches every *Error via errors.Is.
var ErrTransport = errors.New("transport failure")

// Error describes a failed request. Status is zero when no HTTP response was received.
type Error struct {
	Method  string
	Path    string
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s %s: %s", e.Method, e.Path, e.Message)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, e.Message)
}

func (e *Error) Is(target error) bool {
	return target == ErrTransport
}

// NotFound reports whether the request failed with HTTP 404.
func (e *Error) NotFound() bool {
	return e.Status == http.StatusNotFound
}

// StatusOf returns the HTTP status carried by err, or zero.
func StatusOf(err error) int {
	var te *Error
	if errors.As(err, &te) {
		return te.Status
	}
	return 0
}
