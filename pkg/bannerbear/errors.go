package bannerbear

import (
	"errors"
	"fmt"
	"net/http"
)

// maxErrorBody caps how much of a failed response body is kept on HTTPError.
const maxErrorBody = 4096

// HTTPError is returned when the API answered with a status outside 2xx.
type HTTPError struct {
	StatusCode int
	Method     string
	Path       string
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("bannerbear API returned status %d for %s %s", e.StatusCode, e.Method, e.Path)
	}
	return fmt.Sprintf("bannerbear API returned status %d for %s %s: %s", e.StatusCode, e.Method, e.Path, e.Body)
}

// TransportError is returned when no response was obtained at all
// (DNS, connection, TLS, timeout or cancellation).
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("failed to call bannerbear API %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status carried by err, or 0 if err is not an HTTPError.
func StatusCode(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}
	return 0
}

// IsNotFound reports whether err is an HTTP 404 from the API.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// IsTransport reports whether err happened before a response was received.
func IsTransport(err error) bool {
	var transportErr *TransportError
	return errors.As(err, &transportErr)
}
