package gobec

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnexpectedBody indicates a response whose JSON shape is not usable.
var ErrUnexpectedBody = errors.New("gobec: unexpected response body")

// APIError represents a non-2xx response from the gob.ec API.
type APIError struct {
	StatusCode int
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gobec: API error %d %s (URL: %s)",
		e.StatusCode, http.StatusText(e.StatusCode), e.URL)
}

// IsNotFound checks if the error is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}
	return false
}

// IsServerError checks if the error is a 5xx from the API.
func IsServerError(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500
	}
	return false
}
