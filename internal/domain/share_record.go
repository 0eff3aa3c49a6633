package domain

import (
	"fmt"
	"time"
)

// DefaultFileName is used as the display label when the source file name is unknown
const DefaultFileName = "Unknown File"

// ShareRecord represents one issued share link, persisted locally so an
// already-created link can be recovered across sessions
type ShareRecord struct {
	ID           string
	FileName     string
	ShareURL     string
	PassCode     string // empty when the share is not access-restricted
	CreatedAt    int64  // milliseconds since epoch
	SourceFileID string // identity of the remote file; deduplication key
}

// NewShareRecord builds a record for a freshly issued share.
// shareID may be empty, in which case a locally generated fallback ID is used.
// fileName may be empty, in which case the default display label is used.
func NewShareRecord(shareID, fileName, shareURL, passCode, sourceFileID string, now time.Time) ShareRecord {
	if shareID == "" {
		shareID = FallbackShareID(now)
	}
	if fileName == "" {
		fileName = DefaultFileName
	}
	return ShareRecord{
		ID:           shareID,
		FileName:     fileName,
		ShareURL:     shareURL,
		PassCode:     passCode,
		CreatedAt:    now.UnixMilli(),
		SourceFileID: sourceFileID,
	}
}

// FallbackShareID generates a local share ID for responses that
// carry no server-issued one
func FallbackShareID(now time.Time) string {
	return fmt.Sprintf("share-%d", now.UnixMilli())
}

// HasPassCode returns true if the share is access-restricted
func (r *ShareRecord) HasPassCode() bool {
	return r.PassCode != ""
}

// CreatedTime returns the creation timestamp as time.Time
func (r *ShareRecord) CreatedTime() time.Time {
	return time.UnixMilli(r.CreatedAt)
}
