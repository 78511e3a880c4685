package misticpay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var ErrMissingCredentials = errors.New("misticpay client id and client secret are required")

// APIError means the gateway answered with a non-2xx status.
type APIError struct {
	StatusCode int
	Body       json.RawMessage
}

func (e *APIError) Error() string {
	return fmt.Sprintf("misticpay responded with status %d: %s", e.StatusCode, e.Body)
}

// TransportError means no response was received from the gateway.
type TransportError struct {
	Err     error
	Timeout bool
}

func newTransportError(err error) *TransportError {
	return &TransportError{Err: err, Timeout: isTimeout(err)}
}

func (e *TransportError) Error() string {
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var timeoutErr interface{ Timeout() bool }
	return errors.As(err, &timeoutErr) && timeoutErr.Timeout()
}
