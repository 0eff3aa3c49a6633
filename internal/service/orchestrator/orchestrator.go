package orchestrator

import (
	"context"
	"sync"
	"time"

	"github.com/vertextoedge/file-share-agent/internal/domain"
	"github.com/vertextoedge/file-share-agent/internal/domain/service"
	"github.com/vertextoedge/file-share-agent/internal/port"
	"go.uber.org/zap"
)

// Orchestrator drives the share request workflow for one file:
// Idle → Loading → Succeeded or Failed, with Failed → Loading on retry
// and Succeeded → Loading on refresh. It issues exactly one remote call
// per request, persists newly issued shares, and absorbs every remote
// failure into a classified user-facing message.
type Orchestrator struct {
	client port.ShareClient
	shares port.ShareRepository
	logger *zap.Logger
	now    func() time.Time

	mu       sync.Mutex
	state    domain.ShareRequestState
	fileID   string
	fileName string
}

// New creates a new Orchestrator
func New(client port.ShareClient, shares port.ShareRepository, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		client: client,
		shares: shares,
		logger: logger,
		now:    time.Now,
		state:  domain.NewShareRequestState(),
	}
}

// State returns a snapshot of the current workflow state
func (o *Orchestrator) State() domain.ShareRequestState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.snapshotLocked()
}

// snapshotLocked copies the state so callers never observe later mutations.
// Caller must hold mu.
func (o *Orchestrator) snapshotLocked() domain.ShareRequestState {
	snap := o.state
	if o.state.Result != nil {
		result := *o.state.Result
		snap.Result = &result
	}
	return snap
}

// RequestShare requests a public share link for the given file.
//
// An empty fileID means the originating task has not produced a file
// artifact yet: the workflow stays Idle with a not-ready message and no
// remote call is made. A call while another request is outstanding is
// rejected with ErrRequestInFlight, leaving the outstanding request
// untouched.
//
// Remote failures do not surface as errors; they land in the returned
// state as a classified message, and the caller may retry indefinitely.
func (o *Orchestrator) RequestShare(ctx context.Context, fileID, fileName string) (domain.ShareRequestState, error) {
	o.mu.Lock()

	if o.state.IsLoading() {
		snap := o.snapshotLocked()
		o.mu.Unlock()
		return snap, domain.ErrRequestInFlight
	}

	if fileID == "" {
		o.state = domain.ShareRequestState{
			Status:       domain.StatusIdle,
			ErrorMessage: service.MsgFileNotReady,
		}
		snap := o.snapshotLocked()
		o.mu.Unlock()
		return snap, domain.ErrFileNotReady
	}

	o.fileID = fileID
	o.fileName = fileName
	o.state = domain.ShareRequestState{Status: domain.StatusLoading}
	o.mu.Unlock()

	result, err := o.client.CreateShare(ctx, fileID)
	if err != nil {
		return o.fail(fileID, err), nil
	}

	return o.succeed(fileID, fileName, result), nil
}

// Retry re-runs the last share request with the same arguments.
// Retries are unlimited and fully independent; there is no backoff.
func (o *Orchestrator) Retry(ctx context.Context) (domain.ShareRequestState, error) {
	o.mu.Lock()
	fileID, fileName := o.fileID, o.fileName
	o.mu.Unlock()

	return o.RequestShare(ctx, fileID, fileName)
}

// CachedShare returns the persisted record for a file if one was issued
// in this or an earlier session, without touching the backend. Returns
// nil when no record exists or the store cannot be read.
func (o *Orchestrator) CachedShare(fileID string) *domain.ShareRecord {
	if fileID == "" {
		return nil
	}
	record, err := o.shares.GetShareBySourceFile(fileID)
	if err != nil {
		o.logger.Warn("failed to look up cached share",
			zap.String("file_id", fileID),
			zap.Error(err))
		return nil
	}
	return record
}

// SharedLinks returns the persisted share records, newest first.
// Storage trouble degrades to an empty list rather than failing the
// caller; the record history is best-effort by design.
func (o *Orchestrator) SharedLinks() []domain.ShareRecord {
	records, err := o.shares.ListShares()
	if err != nil {
		o.logger.Warn("failed to load share records", zap.Error(err))
		return nil
	}
	return records
}

// succeed records a successful result and persists the share record
// unless the backend reported it as already existing
func (o *Orchestrator) succeed(fileID, fileName string, result *port.ShareResult) domain.ShareRequestState {
	if !result.IsExisting {
		record := domain.NewShareRecord(result.ShareID, fileName, result.ShareURL, result.PassCode, fileID, o.now())
		inserted, err := o.shares.AppendShare(record)
		if err != nil {
			// The link was issued; losing the local record only costs
			// recovery across sessions.
			o.logger.Warn("failed to persist share record",
				zap.String("file_id", fileID),
				zap.Error(err))
		} else if !inserted {
			o.logger.Debug("share record already present, skipping append",
				zap.String("file_id", fileID))
		}
	}

	o.logger.Info("share link ready",
		zap.String("file_id", fileID),
		zap.Bool("is_existing", result.IsExisting))

	o.mu.Lock()
	defer o.mu.Unlock()
	o.state = domain.ShareRequestState{
		Status: domain.StatusSucceeded,
		Result: &domain.ShareResult{
			ShareURL:   result.ShareURL,
			PassCode:   result.PassCode,
			IsExisting: result.IsExisting,
		},
	}
	return o.snapshotLocked()
}

// fail classifies the remote failure and records the user-facing message
func (o *Orchestrator) fail(fileID string, err error) domain.ShareRequestState {
	failure, ok := domain.AsRequestFailure(err)
	if !ok {
		failure = &domain.RequestFailure{Err: err}
	}

	classification := service.ClassifyFailure(failure)
	o.logger.Warn("share request failed",
		zap.String("file_id", fileID),
		zap.Int("status_code", failure.StatusCode),
		zap.String("kind", classification.Kind.String()),
		zap.Error(err))

	o.mu.Lock()
	defer o.mu.Unlock()
	o.state = domain.ShareRequestState{
		Status:       domain.StatusFailed,
		ErrorMessage: classification.Message,
	}
	return o.snapshotLocked()
}
