package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lectern-labs/lectern-cli/internal/core/domain"
	"github.com/lectern-labs/lectern-cli/internal/core/ports/driven"
)

// provocationStore implements driven.ProvocationStore.
type provocationStore struct {
	q querier
}

var _ driven.ProvocationStore = (*provocationStore)(nil)

// Insert stores a new active provocation. The partial unique index on
// active rows makes a second active insert for the same (document,
// section, revision) triple fail; that surfaces as ErrConflict.
func (s *provocationStore) Insert(ctx context.Context, p *domain.Provocation) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	p.Active = true

	_, err := s.q.ExecContext(ctx, `
		INSERT INTO provocations
			(id, document_id, section_id, revision_id, request_id, style, content, active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, 1, ?)
	`, p.ID, p.DocumentID, p.SectionID, p.RevisionID, p.RequestID, string(p.Style), p.Content, p.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: active provocation already exists for section %s",
				domain.ErrConflict, p.SectionID)
		}
		return fmt.Errorf("inserting provocation: %w", err)
	}
	return nil
}

// ListActiveByDocument returns active provocations for a document.
func (s *provocationStore) ListActiveByDocument(
	ctx context.Context,
	documentID string,
) ([]domain.Provocation, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT id, document_id, section_id, revision_id, request_id, style, content,
			active, created_at, deactivated_at
		FROM provocations
		WHERE document_id = ? AND active = 1
		ORDER BY created_at, id
	`, documentID)
	if err != nil {
		return nil, fmt.Errorf("querying provocations: %w", err)
	}
	defer rows.Close()

	var provocations []domain.Provocation //nolint:prealloc // size unknown from query
	for rows.Next() {
		var p domain.Provocation
		var style string
		var deactivatedAt sql.NullTime
		if err := rows.Scan(&p.ID, &p.DocumentID, &p.SectionID, &p.RevisionID,
			&p.RequestID, &style, &p.Content, &p.Active, &p.CreatedAt, &deactivatedAt); err != nil {
			return nil, fmt.Errorf("scanning provocation: %w", err)
		}
		p.Style = domain.ProvocationStyle(style)
		if deactivatedAt.Valid {
			p.DeactivatedAt = &deactivatedAt.Time
		}
		provocations = append(provocations, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating provocations: %w", err)
	}
	return provocations, nil
}

// DeactivateSuperseded deactivates every active provocation of the
// document whose revision is not keepRevisionID. Rows are retained.
func (s *provocationStore) DeactivateSuperseded(
	ctx context.Context,
	documentID, keepRevisionID string,
	at time.Time,
) (int64, error) {
	res, err := s.q.ExecContext(ctx, `
		UPDATE provocations
		SET active = 0, deactivated_at = ?
		WHERE document_id = ? AND active = 1 AND revision_id != ?
	`, at.UTC(), documentID, keepRevisionID)
	if err != nil {
		return 0, fmt.Errorf("deactivating provocations: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("checking deactivated rows: %w", err)
	}
	return n, nil
}
