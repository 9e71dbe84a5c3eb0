package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lectern-labs/lectern-cli/internal/core/domain"
	"github.com/lectern-labs/lectern-cli/internal/core/ports/driven"
)

// sectionStore implements driven.SectionStore.
type sectionStore struct {
	q querier
}

var _ driven.SectionStore = (*sectionStore)(nil)

// InsertBatch stores the full section set of one revision.
func (s *sectionStore) InsertBatch(ctx context.Context, sections []domain.Section) error {
	for i := range sections {
		sec := &sections[i]
		_, err := s.q.ExecContext(ctx, `
			INSERT INTO sections (id, revision_id, anchor_key, heading, order_index, content, word_count)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, sec.ID, sec.RevisionID, sec.AnchorKey, sec.Heading, sec.OrderIndex, sec.Content, sec.WordCount)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: duplicate anchor key %q in revision %s",
					domain.ErrConflict, sec.AnchorKey, sec.RevisionID)
			}
			return fmt.Errorf("inserting section: %w", err)
		}
	}
	return nil
}

// Get retrieves a section by ID.
func (s *sectionStore) Get(ctx context.Context, id string) (*domain.Section, error) {
	row := s.q.QueryRowContext(ctx, `
		SELECT id, revision_id, anchor_key, heading, order_index, content, word_count
		FROM sections WHERE id = ?
	`, id)

	var sec domain.Section
	if err := row.Scan(&sec.ID, &sec.RevisionID, &sec.AnchorKey, &sec.Heading,
		&sec.OrderIndex, &sec.Content, &sec.WordCount); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning section: %w", err)
	}
	return &sec, nil
}

// ListByRevision returns a revision's sections in reading order.
func (s *sectionStore) ListByRevision(ctx context.Context, revisionID string) ([]domain.Section, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT id, revision_id, anchor_key, heading, order_index, content, word_count
		FROM sections WHERE revision_id = ?
		ORDER BY order_index
	`, revisionID)
	if err != nil {
		return nil, fmt.Errorf("querying sections: %w", err)
	}
	defer rows.Close()

	var sections []domain.Section //nolint:prealloc // size unknown from query
	for rows.Next() {
		var sec domain.Section
		if err := rows.Scan(&sec.ID, &sec.RevisionID, &sec.AnchorKey, &sec.Heading,
			&sec.OrderIndex, &sec.Content, &sec.WordCount); err != nil {
			return nil, fmt.Errorf("scanning section: %w", err)
		}
		sections = append(sections, sec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sections: %w", err)
	}
	return sections, nil
}
