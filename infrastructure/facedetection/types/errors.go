package types

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// APIError is a non-2xx answer from the detection provider.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("face detection provider returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("face detection provider returned status %d: %s", e.StatusCode, e.Message)
}

// IsTimeout reports whether err is a transient timeout: a context deadline,
// a network timeout or an HTTP 408 from the provider.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusRequestTimeout
}
