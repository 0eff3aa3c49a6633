package domain

import (
	"errors"
	"fmt"
)

// Common domain errors
var (
	// ErrFileNotReady means the remote task has not produced a file
	// artifact yet, so there is no identity to request a share for.
	ErrFileNotReady = errors.New("file identity not available")

	// ErrRequestInFlight means a share request is already outstanding
	// for this workflow instance.
	ErrRequestInFlight = errors.New("share request already in progress")
)

// RequestFailure describes a failed remote share call in transport-neutral
// terms. StatusCode 0 means no response was received at all.
type RequestFailure struct {
	StatusCode    int
	ServerMessage string
	Err           error
}

// Error returns the error message
func (e *RequestFailure) Error() string {
	switch {
	case e.StatusCode == 0 && e.Err != nil:
		return fmt.Sprintf("share request failed: %v", e.Err)
	case e.ServerMessage != "":
		return fmt.Sprintf("share request failed with status %d: %s", e.StatusCode, e.ServerMessage)
	default:
		return fmt.Sprintf("share request failed with status %d", e.StatusCode)
	}
}

// Unwrap returns the underlying error
func (e *RequestFailure) Unwrap() error {
	return e.Err
}

// NoResponse returns true when the failure was a transport-level one,
// with no HTTP response received
func (e *RequestFailure) NoResponse() bool {
	return e.StatusCode == 0
}

// AsRequestFailure extracts a RequestFailure from an error chain
func AsRequestFailure(err error) (*RequestFailure, bool) {
	var rf *RequestFailure
	if errors.As(err, &rf) {
		return rf, true
	}
	return nil, false
}
