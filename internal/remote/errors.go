package remote

import (
	"errors"
	"fmt"
)

// TransportError covers everything that prevented a usable answer: connection
// failures, canceled contexts and undecodable bodies.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("remote %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// RejectedError is a non-2xx answer from the remote store.
type RejectedError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *RejectedError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "operation rejected"
	}
	return fmt.Sprintf("remote %s: %s (status=%d)", e.Op, msg, e.StatusCode)
}

// AsTransportError attempts to unwrap an error into a TransportError.
func AsTransportError(err error) (*TransportError, bool) {
	var tErr *TransportError
	if errors.As(err, &tErr) {
		return tErr, true
	}
	return nil, false
}

// AsRejectedError attempts to unwrap an error into a RejectedError.
func AsRejectedError(err error) (*RejectedError, bool) {
	var rErr *RejectedError
	if errors.As(err, &rErr) {
		return rErr, true
	}
	return nil, false
}
