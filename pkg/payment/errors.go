package payment

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrTransport covers timeouts, refused connections and DNS failures.
	ErrTransport = errors.New("payment: upstream request failed")
	// ErrMalformedResponse is returned when a 2xx body cannot be decoded.
	ErrMalformedResponse = errors.New("payment: malformed upstream response")
)

// UpstreamError is a non-2xx answer from a provider.
type UpstreamError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: upstream status %d: %s", e.Op, e.StatusCode, e.Body)
}

// HTTPStatus is the status to relay to our own caller: the provider's if it is an error status, 500 otherwise.
func (e *UpstreamError) HTTPStatus() int {
	if e.StatusCode >= http.StatusBadRequest && e.StatusCode <= 599 {
		return e.StatusCode
	}
	return http.StatusInternalServerError
}
