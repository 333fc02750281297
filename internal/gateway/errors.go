package gateway

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthorized = errors.New("credential rejected by backend")
	ErrNotFound     = errors.New("resource not found")
)

// APIError is a backend rejection carried back to the caller with the
// backend's own message, e.g. "Seats already booked". It is distinct from
// a transport failure: the request completed and the backend said no.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend returned status %d", e.StatusCode)
}

// AsAPIError unwraps an APIError when the error chain holds one.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
