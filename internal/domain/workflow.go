package domain

// Request status constants
const (
	StatusIdle      = "idle"
	StatusLoading   = "loading"
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// ShareResult is the outcome of a successful share request
type ShareResult struct {
	ShareURL   string
	PassCode   string // empty when the share is not access-restricted
	IsExisting bool   // true when the backend returned a previously issued share
}

// ShareRequestState is the transient, in-memory state of one file's
// share workflow. It is created fresh per session and never persisted.
type ShareRequestState struct {
	Status       string
	Result       *ShareResult // set iff Status == StatusSucceeded
	ErrorMessage string       // set iff Status == StatusFailed, or for the not-ready precondition
}

// NewShareRequestState returns the initial workflow state
func NewShareRequestState() ShareRequestState {
	return ShareRequestState{Status: StatusIdle}
}

// IsLoading returns true while a remote call is outstanding
func (s *ShareRequestState) IsLoading() bool {
	return s.Status == StatusLoading
}

// Succeeded returns true once a share link is available
func (s *ShareRequestState) Succeeded() bool {
	return s.Status == StatusSucceeded
}
