package port

import "context"

// ShareResult is the backend's response to a share creation request
type ShareResult struct {
	ShareURL   string `json:"share_url"`
	PassCode   string `json:"pass_code,omitempty"`
	IsExisting bool   `json:"is_existing,omitempty"`
	ShareID    string `json:"share_id,omitempty"`
}

// ShareClient defines the interface for the backend share API
type ShareClient interface {
	// CreateShare requests a public share link for a remote file.
	// The backend either creates a new share or returns an existing
	// one with IsExisting set. Failures are returned as
	// *domain.RequestFailure.
	CreateShare(ctx context.Context, fileID string) (*ShareResult, error)
}
