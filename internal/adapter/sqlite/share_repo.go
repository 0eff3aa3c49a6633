package sqlite

import (
	"database/sql"

	"github.com/vertextoedge/file-share-agent/internal/domain"
)

// ListShares returns all share records in reverse insertion order (newest first)
func (s *Store) ListShares() ([]domain.ShareRecord, error) {
	query := `
		SELECT share_id, file_name, share_url, pass_code, created_at, source_file_id
		FROM shares
		ORDER BY id DESC
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.ShareRecord
	for rows.Next() {
		var rec domain.ShareRecord
		var passCode sql.NullString

		if err := rows.Scan(&rec.ID, &rec.FileName, &rec.ShareURL, &passCode,
			&rec.CreatedAt, &rec.SourceFileID); err != nil {
			return nil, err
		}

		if passCode.Valid {
			rec.PassCode = passCode.String
		}

		records = append(records, rec)
	}

	return records, rows.Err()
}

// AppendShare inserts a record unless one already exists for the same
// source file. INSERT OR IGNORE against the UNIQUE source_file_id index
// makes the check-and-insert atomic, so concurrent appenders cannot
// create a second record for the same file. Returns true when inserted.
func (s *Store) AppendShare(record domain.ShareRecord) (bool, error) {
	query := `
		INSERT OR IGNORE INTO shares (share_id, file_name, share_url, pass_code, created_at, source_file_id)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	var passCode sql.NullString
	if record.PassCode != "" {
		passCode = sql.NullString{String: record.PassCode, Valid: true}
	}

	result, err := s.db.Exec(query,
		record.ID, record.FileName, record.ShareURL, passCode,
		record.CreatedAt, record.SourceFileID)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

// GetShareBySourceFile retrieves the share record for a source file,
// or nil if none exists
func (s *Store) GetShareBySourceFile(sourceFileID string) (*domain.ShareRecord, error) {
	query := `
		SELECT share_id, file_name, share_url, pass_code, created_at, source_file_id
		FROM shares
		WHERE source_file_id = ?
	`

	rec := &domain.ShareRecord{}
	var passCode sql.NullString

	err := s.db.QueryRow(query, sourceFileID).Scan(
		&rec.ID, &rec.FileName, &rec.ShareURL, &passCode,
		&rec.CreatedAt, &rec.SourceFileID,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if passCode.Valid {
		rec.PassCode = passCode.String
	}

	return rec, nil
}

// CountShares returns the number of persisted share records
func (s *Store) CountShares() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM shares").Scan(&count)
	return count, err
}
