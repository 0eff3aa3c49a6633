package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/vertextoedge/file-share-agent/internal/domain"
	"go.uber.org/zap"
)

// mockWorkflow implements ShareWorkflow for testing
type mockWorkflow struct {
	state   domain.ShareRequestState
	err     error
	records []domain.ShareRecord
	cached  *domain.ShareRecord

	gotFileID   string
	gotFileName string
	retried     bool
}

func (m *mockWorkflow) RequestShare(ctx context.Context, fileID, fileName string) (domain.ShareRequestState, error) {
	m.gotFileID = fileID
	m.gotFileName = fileName
	return m.state, m.err
}

func (m *mockWorkflow) Retry(ctx context.Context) (domain.ShareRequestState, error) {
	m.retried = true
	return m.state, m.err
}

func (m *mockWorkflow) State() domain.ShareRequestState {
	return m.state
}

func (m *mockWorkflow) CachedShare(fileID string) *domain.ShareRecord {
	m.gotFileID = fileID
	return m.cached
}

func (m *mockWorkflow) SharedLinks() []domain.ShareRecord {
	return m.records
}

func TestShareHandler_HandleRequestShare(t *testing.T) {
	workflow := &mockWorkflow{
		state: domain.ShareRequestState{
			Status: domain.StatusSucceeded,
			Result: &domain.ShareResult{ShareURL: "https://x/y", PassCode: "4821"},
		},
	}
	h := NewShareHandler(workflow, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/share",
		strings.NewReader(`{"file_id":"file-1","file_name":"report.pdf"}`))
	rec := httptest.NewRecorder()

	h.HandleRequestShare(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if workflow.gotFileID != "file-1" || workflow.gotFileName != "report.pdf" {
		t.Errorf("workflow got (%q, %q), want (file-1, report.pdf)", workflow.gotFileID, workflow.gotFileName)
	}

	var resp stateResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != domain.StatusSucceeded {
		t.Errorf("Status = %q, want %q", resp.Status, domain.StatusSucceeded)
	}
	if resp.Result == nil || resp.Result.ShareURL != "https://x/y" {
		t.Errorf("Result = %+v, want ShareURL https://x/y", resp.Result)
	}
	if resp.CanRetry {
		t.Error("CanRetry = true for succeeded state, want false")
	}
}

func TestShareHandler_HandleRequestShare_NotReady(t *testing.T) {
	workflow := &mockWorkflow{
		state: domain.ShareRequestState{
			Status:       domain.StatusIdle,
			ErrorMessage: "File ID not available. Task may not be completed yet.",
		},
		err: domain.ErrFileNotReady,
	}
	h := NewShareHandler(workflow, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/share", strings.NewReader(`{"file_id":""}`))
	rec := httptest.NewRecorder()

	h.HandleRequestShare(rec, req)

	if rec.Code != http.StatusPreconditionFailed {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusPreconditionFailed)
	}
}

func TestShareHandler_HandleRequestShare_InFlight(t *testing.T) {
	workflow := &mockWorkflow{
		state: domain.ShareRequestState{Status: domain.StatusLoading},
		err:   domain.ErrRequestInFlight,
	}
	h := NewShareHandler(workflow, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/share", strings.NewReader(`{"file_id":"file-1"}`))
	rec := httptest.NewRecorder()

	h.HandleRequestShare(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusConflict)
	}
}

func TestShareHandler_HandleRetry(t *testing.T) {
	workflow := &mockWorkflow{
		state: domain.ShareRequestState{
			Status:       domain.StatusFailed,
			ErrorMessage: "Server is temporarily unavailable. Please try again later.",
		},
	}
	h := NewShareHandler(workflow, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/share/retry", nil)
	rec := httptest.NewRecorder()

	h.HandleRetry(rec, req)

	if !workflow.retried {
		t.Error("retry was not forwarded to the workflow")
	}

	var resp stateResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.CanRetry {
		t.Error("CanRetry = false for failed state, want true")
	}
	if resp.ErrorMessage == "" {
		t.Error("ErrorMessage missing for failed state")
	}
}

func TestShareHandler_HandleState_IncludesCachedRecord(t *testing.T) {
	workflow := &mockWorkflow{
		state:  domain.ShareRequestState{Status: domain.StatusIdle},
		cached: &domain.ShareRecord{ID: "s1", FileName: "a.txt", ShareURL: "https://x/a", CreatedAt: 1000, SourceFileID: "file-a"},
	}
	h := NewShareHandler(workflow, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/share/state?file_id=file-a", nil)
	rec := httptest.NewRecorder()

	h.HandleState(rec, req)

	var resp stateResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if workflow.gotFileID != "file-a" {
		t.Errorf("cached lookup used file_id %q, want file-a", workflow.gotFileID)
	}
	if resp.Cached == nil || resp.Cached.ShareURL != "https://x/a" {
		t.Errorf("Cached = %+v, want record with ShareURL https://x/a", resp.Cached)
	}
}

func TestShareHandler_HandleState_NoCachedRecord(t *testing.T) {
	workflow := &mockWorkflow{
		state: domain.ShareRequestState{Status: domain.StatusIdle},
	}
	h := NewShareHandler(workflow, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/share/state", nil)
	rec := httptest.NewRecorder()

	h.HandleState(rec, req)

	var resp stateResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Cached != nil {
		t.Errorf("Cached = %+v, want nil without file_id", resp.Cached)
	}
	if resp.Status != domain.StatusIdle {
		t.Errorf("Status = %q, want %q", resp.Status, domain.StatusIdle)
	}
}

func TestShareHandler_HandleList(t *testing.T) {
	workflow := &mockWorkflow{
		records: []domain.ShareRecord{
			{ID: "s2", FileName: "b.txt", ShareURL: "https://x/b", CreatedAt: 2000, SourceFileID: "file-b"},
			{ID: "s1", FileName: "a.txt", ShareURL: "https://x/a", PassCode: "1234", CreatedAt: 1000, SourceFileID: "file-a"},
		},
	}
	h := NewShareHandler(workflow, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/shares", nil)
	rec := httptest.NewRecorder()

	h.HandleList(rec, req)

	var resp []recordResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("got %d records, want 2", len(resp))
	}
	if resp[0].ID != "s2" || resp[1].ID != "s1" {
		t.Errorf("order = [%s, %s], want newest first [s2, s1]", resp[0].ID, resp[1].ID)
	}
	if resp[1].PassCode != "1234" {
		t.Errorf("PassCode = %q, want 1234", resp[1].PassCode)
	}
}

func TestShareHandler_MethodNotAllowed(t *testing.T) {
	h := NewShareHandler(&mockWorkflow{}, zap.NewNop())

	tests := []struct {
		name    string
		method  string
		handler http.HandlerFunc
	}{
		{"state rejects POST", http.MethodPost, h.HandleState},
		{"list rejects POST", http.MethodPost, h.HandleList},
		{"request rejects GET", http.MethodGet, h.HandleRequestShare},
		{"retry rejects GET", http.MethodGet, h.HandleRetry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/", nil)
			rec := httptest.NewRecorder()

			tt.handler(rec, req)

			if rec.Code != http.StatusMethodNotAllowed {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
			}
		})
	}
}
