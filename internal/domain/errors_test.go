package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestRequestFailure_Error(t *testing.T) {
	tests := []struct {
		name    string
		failure *RequestFailure
		want    string
	}{
		{
			name:    "transport failure",
			failure: &RequestFailure{Err: errors.New("connection refused")},
			want:    "share request failed: connection refused",
		},
		{
			name:    "status with server message",
			failure: &RequestFailure{StatusCode: 500, ServerMessage: "internal failure"},
			want:    "share request failed with status 500: internal failure",
		},
		{
			name:    "status only",
			failure: &RequestFailure{StatusCode: 403},
			want:    "share request failed with status 403",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.failure.Error(); got != tt.want {
				t.Errorf("Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRequestFailure_Unwrap(t *testing.T) {
	underlying := errors.New("connection reset")
	failure := &RequestFailure{Err: underlying}

	if !errors.Is(failure, underlying) {
		t.Error("RequestFailure should unwrap to the underlying error")
	}

	noErr := &RequestFailure{StatusCode: 500}
	if got := noErr.Unwrap(); got != nil {
		t.Errorf("Unwrap() with no underlying error = %v, want nil", got)
	}
}

func TestRequestFailure_NoResponse(t *testing.T) {
	tests := []struct {
		name    string
		failure *RequestFailure
		want    bool
	}{
		{
			name:    "transport failure has no response",
			failure: &RequestFailure{Err: errors.New("dial timeout")},
			want:    true,
		},
		{
			name:    "status code means a response arrived",
			failure: &RequestFailure{StatusCode: 500},
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.failure.NoResponse(); got != tt.want {
				t.Errorf("NoResponse() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAsRequestFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "direct failure",
			err:  &RequestFailure{StatusCode: 500},
			want: true,
		},
		{
			name: "wrapped failure",
			err:  fmt.Errorf("wrapped: %w", &RequestFailure{StatusCode: 500}),
			want: true,
		},
		{
			name: "regular error",
			err:  errors.New("regular error"),
			want: false,
		},
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			failure, ok := AsRequestFailure(tt.err)
			if ok != tt.want {
				t.Errorf("AsRequestFailure() ok = %v, want %v", ok, tt.want)
			}
			if ok && failure == nil {
				t.Error("AsRequestFailure() returned ok with nil failure")
			}
		})
	}
}
