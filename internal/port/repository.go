package port

import (
	"github.com/vertextoedge/file-share-agent/internal/domain"
)

// ShareRepository defines the interface for share record persistence
type ShareRepository interface {
	// ListShares returns all persisted share records, newest first
	ListShares() ([]domain.ShareRecord, error)

	// AppendShare inserts a record unless one already exists for the
	// same source file. Returns true if the record was inserted,
	// false if an existing record made the call a no-op.
	AppendShare(record domain.ShareRecord) (bool, error)

	// GetShareBySourceFile retrieves the record for a source file,
	// or nil if none exists
	GetShareBySourceFile(sourceFileID string) (*domain.ShareRecord, error)

	// CountShares returns the number of persisted share records
	CountShares() (int, error)
}

// Store is the full persistence interface, including lifecycle operations
type Store interface {
	ShareRepository

	// Ping checks storage connectivity
	Ping() error

	// Close releases the underlying storage
	Close() error
}
