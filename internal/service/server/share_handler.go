package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vertextoedge/file-share-agent/internal/domain"
	"go.uber.org/zap"
)

// ShareWorkflow is the part of the orchestrator the UI shell consumes
type ShareWorkflow interface {
	RequestShare(ctx context.Context, fileID, fileName string) (domain.ShareRequestState, error)
	Retry(ctx context.Context) (domain.ShareRequestState, error)
	State() domain.ShareRequestState
	CachedShare(fileID string) *domain.ShareRecord
	SharedLinks() []domain.ShareRecord
}

// ShareHandler exposes the share workflow over HTTP
type ShareHandler struct {
	workflow ShareWorkflow
	logger   *zap.Logger
}

// NewShareHandler creates a new ShareHandler
func NewShareHandler(workflow ShareWorkflow, logger *zap.Logger) *ShareHandler {
	return &ShareHandler{
		workflow: workflow,
		logger:   logger,
	}
}

// requestShareBody is the body of a share trigger request
type requestShareBody struct {
	FileID   string `json:"file_id"`
	FileName string `json:"file_name"`
}

// stateResponse is the display-ready view of the workflow state
type stateResponse struct {
	Status       string          `json:"status"`
	Result       *resultResponse `json:"result,omitempty"`
	ErrorMessage string          `json:"error_message,omitempty"`
	CanRetry     bool            `json:"can_retry"`
	Cached       *recordResponse `json:"cached,omitempty"`
}

type resultResponse struct {
	ShareURL   string `json:"share_url"`
	PassCode   string `json:"pass_code,omitempty"`
	IsExisting bool   `json:"is_existing"`
}

// recordResponse is the display-ready view of a persisted share record
type recordResponse struct {
	ID           string `json:"id"`
	FileName     string `json:"file_name"`
	ShareURL     string `json:"share_url"`
	PassCode     string `json:"pass_code,omitempty"`
	CreatedAt    int64  `json:"created_at"`
	SourceFileID string `json:"source_file_id"`
}

// HandleRequestShare triggers a share request for a file
func (h *ShareHandler) HandleRequestShare(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var body requestShareBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	state, err := h.workflow.RequestShare(r.Context(), body.FileID, body.FileName)
	h.writeState(w, state, err)
}

// HandleRetry repeats the last share request
func (h *ShareHandler) HandleRetry(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	state, err := h.workflow.Retry(r.Context())
	h.writeState(w, state, err)
}

// HandleState returns the current workflow state. When a file_id query
// parameter is supplied, a previously issued share record for that file
// is included so the shell can surface the link without a new request.
func (h *ShareHandler) HandleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	resp := newStateResponse(h.workflow.State())
	if fileID := r.URL.Query().Get("file_id"); fileID != "" {
		if rec := h.workflow.CachedShare(fileID); rec != nil {
			cached := newRecordResponse(*rec)
			resp.Cached = &cached
		}
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// HandleList returns the persisted share records, newest first
func (h *ShareHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	records := h.workflow.SharedLinks()
	resp := make([]recordResponse, 0, len(records))
	for _, rec := range records {
		resp = append(resp, newRecordResponse(rec))
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// newRecordResponse converts a share record into its display form
func newRecordResponse(rec domain.ShareRecord) recordResponse {
	return recordResponse{
		ID:           rec.ID,
		FileName:     rec.FileName,
		ShareURL:     rec.ShareURL,
		PassCode:     rec.PassCode,
		CreatedAt:    rec.CreatedAt,
		SourceFileID: rec.SourceFileID,
	}
}

// writeState renders a workflow state snapshot. Rejected invocations
// (not ready, request outstanding) map to HTTP statuses the shell can
// distinguish; the state body is returned either way.
func (h *ShareHandler) writeState(w http.ResponseWriter, state domain.ShareRequestState, err error) {
	status := http.StatusOK
	switch {
	case errors.Is(err, domain.ErrRequestInFlight):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrFileNotReady):
		status = http.StatusPreconditionFailed
	}

	h.writeJSON(w, status, newStateResponse(state))
}

// newStateResponse converts a workflow state into its display form
func newStateResponse(state domain.ShareRequestState) stateResponse {
	resp := stateResponse{
		Status:       state.Status,
		ErrorMessage: state.ErrorMessage,
		CanRetry:     state.Status == domain.StatusFailed,
	}
	if state.Result != nil {
		resp.Result = &resultResponse{
			ShareURL:   state.Result.ShareURL,
			PassCode:   state.Result.PassCode,
			IsExisting: state.Result.IsExisting,
		}
	}
	return resp
}

// writeJSON writes a JSON response
func (h *ShareHandler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode response", zap.Error(err))
	}
}
