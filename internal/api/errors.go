package api

import (
	"errors"
	"fmt"
)

// ErrUnauthorized is returned when the backend rejects a request because
// no valid session credential accompanied it (HTTP 401).
var ErrUnauthorized = errors.New("authentication required")

// ErrConflict is returned when the backend reports a duplicate resource
// name on project create/update (HTTP 409).
var ErrConflict = errors.New("duplicate resource name")

// StatusError is returned for any other non-2xx response.
type StatusError struct {
	StatusCode int
	Method     string
	Path       string
	Body       string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf(
		"unexpected status %d on %s %s: %s",
		e.StatusCode, e.Method, e.Path, e.Body,
	)
}
