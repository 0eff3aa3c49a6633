package shareapi

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/vertextoedge/file-share-agent/internal/domain"
	"github.com/vertextoedge/file-share-agent/internal/port"
)

// Client is an HTTP client for the backend share API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Ensure Client implements port.ShareClient
var _ port.ShareClient = (*Client)(nil)

// createShareRequest is the body of a share creation request
type createShareRequest struct {
	ID string `json:"id"`
}

// errorResponse is the body the backend returns on failures
type errorResponse struct {
	Error string `json:"error"`
}

// NewClient creates a new share API client
func NewClient(baseURL string, timeout time.Duration, skipTLSVerify bool) *Client {
	transport := &http.Transport{
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: skipTLSVerify,
		},
	}

	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
	}
}

// SetTimeout sets the HTTP client timeout
func (c *Client) SetTimeout(timeout time.Duration) {
	c.httpClient.Timeout = timeout
}

// CreateShare requests a public share link for a remote file.
// The backend creates a new share, or returns the existing one with
// is_existing set. All failures come back as *domain.RequestFailure:
// StatusCode 0 when no response was received, otherwise the HTTP status
// plus whatever error string the backend supplied.
func (c *Client) CreateShare(ctx context.Context, fileID string) (*port.ShareResult, error) {
	body, err := json.Marshal(createShareRequest{ID: fileID})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/share", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.RequestFailure{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp errorResponse
		// A body that is not the expected error shape still classifies
		// by status code alone.
		json.NewDecoder(resp.Body).Decode(&errResp)
		return nil, &domain.RequestFailure{
			StatusCode:    resp.StatusCode,
			ServerMessage: errResp.Error,
		}
	}

	var result port.ShareResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &domain.RequestFailure{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("failed to decode response: %w", err),
		}
	}

	return &result, nil
}
