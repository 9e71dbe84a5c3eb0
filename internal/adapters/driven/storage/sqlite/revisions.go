package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lectern-labs/lectern-cli/internal/core/domain"
	"github.com/lectern-labs/lectern-cli/internal/core/ports/driven"
)

// revisionStore implements driven.RevisionStore.
type revisionStore struct {
	q querier
}

var _ driven.RevisionStore = (*revisionStore)(nil)

// Insert stores a new revision. Revisions are immutable: there is no
// update path.
func (s *revisionStore) Insert(ctx context.Context, rev *domain.DocumentRevision) error {
	if rev.CreatedAt.IsZero() {
		rev.CreatedAt = time.Now().UTC()
	}

	_, err := s.q.ExecContext(ctx, `
		INSERT INTO document_revisions (id, document_id, revision_number,
			source_size, source_mtime_ns, source_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, rev.ID, rev.DocumentID, rev.Number,
		rev.Fingerprint.SizeBytes, rev.Fingerprint.ModTime.UTC().UnixNano(), rev.Fingerprint.ContentHash,
		rev.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("inserting revision: %w", err)
	}
	return nil
}

// Get retrieves a revision by ID.
func (s *revisionStore) Get(ctx context.Context, id string) (*domain.DocumentRevision, error) {
	row := s.q.QueryRowContext(ctx, `
		SELECT id, document_id, revision_number, source_size, source_mtime_ns, source_hash, created_at
		FROM document_revisions WHERE id = ?
	`, id)

	rev, err := scanRevisionFields(row.Scan)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	return rev, err
}

// MaxNumber returns the highest revision number for a document, or 0.
func (s *revisionStore) MaxNumber(ctx context.Context, documentID string) (int64, error) {
	var max int64
	err := s.q.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(revision_number), 0)
		FROM document_revisions WHERE document_id = ?
	`, documentID).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("querying max revision number: %w", err)
	}
	return max, nil
}

// ListByDocument returns all revisions in ascending number order.
func (s *revisionStore) ListByDocument(ctx context.Context, documentID string) ([]domain.DocumentRevision, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT id, document_id, revision_number, source_size, source_mtime_ns, source_hash, created_at
		FROM document_revisions WHERE document_id = ?
		ORDER BY revision_number
	`, documentID)
	if err != nil {
		return nil, fmt.Errorf("querying revisions: %w", err)
	}
	defer rows.Close()

	var revs []domain.DocumentRevision //nolint:prealloc // size unknown from query
	for rows.Next() {
		rev, err := scanRevisionFields(rows.Scan)
		if err != nil {
			return nil, err
		}
		revs = append(revs, *rev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating revisions: %w", err)
	}
	return revs, nil
}

// scanRevisionFields scans revision columns through any Scan func.
func scanRevisionFields(scan func(dest ...any) error) (*domain.DocumentRevision, error) {
	var rev domain.DocumentRevision
	var mtimeNS int64

	if err := scan(&rev.ID, &rev.DocumentID, &rev.Number,
		&rev.Fingerprint.SizeBytes, &mtimeNS, &rev.Fingerprint.ContentHash,
		&rev.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning revision: %w", err)
	}

	rev.Fingerprint.ModTime = time.Unix(0, mtimeNS).UTC()
	return &rev, nil
}
