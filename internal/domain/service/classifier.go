package service

import (
	"net/http"
	"strings"

	"github.com/vertextoedge/file-share-agent/internal/domain"
)

// FailureKind is a user-facing category for a failed share request
type FailureKind int

// Failure categories, from most to least specific
const (
	FailureUnknown FailureKind = iota
	FailurePrecondition
	FailureNetwork
	FailureForbidden
	FailureServerUnavailable
	FailureTimeout
	FailureNotFound
	FailureServerMessage
)

// String returns the category name for logging
func (k FailureKind) String() string {
	switch k {
	case FailurePrecondition:
		return "precondition"
	case FailureNetwork:
		return "network"
	case FailureForbidden:
		return "forbidden"
	case FailureServerUnavailable:
		return "server_unavailable"
	case FailureTimeout:
		return "timeout"
	case FailureNotFound:
		return "not_found"
	case FailureServerMessage:
		return "server_message"
	default:
		return "unknown"
	}
}

// User-facing messages for each failure category
const (
	MsgFileNotReady      = "File ID not available. Task may not be completed yet."
	MsgNetwork           = "Unable to connect. Please check your internet connection."
	MsgForbidden         = "You don't have permission to share this file."
	MsgServerUnavailable = "Server is temporarily unavailable. Please try again later."
	MsgTimeout           = "Request timed out. Please try again."
	MsgNotFound          = "File not found. It may have been deleted."
	MsgUnknown           = "Failed to create share link. Please try again."
)

// Classification is the user-facing interpretation of a failed share
// request: a stable category plus the message shown to the user.
// Transport and server internals never leak through it, with one
// deliberate exception: a server-supplied error string that matches no
// known category is passed through verbatim, trusting the backend to
// keep that field user-appropriate.
type Classification struct {
	Kind    FailureKind
	Message string
}

// ClassifyFailure maps a failed remote call onto exactly one user-facing
// classification. First match wins: transport failures before status codes,
// status codes before server message inspection. Pure function.
func ClassifyFailure(f *domain.RequestFailure) Classification {
	if f == nil || f.NoResponse() {
		return Classification{Kind: FailureNetwork, Message: MsgNetwork}
	}

	if f.StatusCode == http.StatusUnauthorized || f.StatusCode == http.StatusForbidden {
		return Classification{Kind: FailureForbidden, Message: MsgForbidden}
	}

	if f.StatusCode >= http.StatusInternalServerError {
		return Classification{Kind: FailureServerUnavailable, Message: MsgServerUnavailable}
	}

	if msg := f.ServerMessage; msg != "" {
		lower := strings.ToLower(msg)
		switch {
		case strings.Contains(lower, "timeout"):
			return Classification{Kind: FailureTimeout, Message: MsgTimeout}
		case strings.Contains(lower, "not found"):
			return Classification{Kind: FailureNotFound, Message: MsgNotFound}
		default:
			return Classification{Kind: FailureServerMessage, Message: msg}
		}
	}

	return Classification{Kind: FailureUnknown, Message: MsgUnknown}
}
