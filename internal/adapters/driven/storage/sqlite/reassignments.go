package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lectern-labs/lectern-cli/internal/core/domain"
	"github.com/lectern-labs/lectern-cli/internal/core/ports/driven"
)

// reassignmentStore implements driven.ReassignmentStore.
type reassignmentStore struct {
	q querier
}

var _ driven.ReassignmentStore = (*reassignmentStore)(nil)

const queueColumns = `id, note_id, document_id, old_revision_id, old_section_id,
	old_anchor_key, old_heading, status, created_at, resolved_at`

// UpsertOpen inserts an open entry for a note. The queue keeps one row
// per note: if a previous (resolved) entry exists, it is reopened with
// the new old-location snapshot.
func (s *reassignmentStore) UpsertOpen(ctx context.Context, entry *domain.ReassignmentEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	entry.Status = domain.QueueOpen
	entry.ResolvedAt = nil

	_, err := s.q.ExecContext(ctx, `
		INSERT INTO note_reassignment_queue
			(id, note_id, document_id, old_revision_id, old_section_id,
			 old_anchor_key, old_heading, status, created_at, resolved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, 'open', ?, NULL)
		ON CONFLICT(note_id) DO UPDATE SET
			old_revision_id = excluded.old_revision_id,
			old_section_id = excluded.old_section_id,
			old_anchor_key = excluded.old_anchor_key,
			old_heading = excluded.old_heading,
			status = 'open',
			created_at = excluded.created_at,
			resolved_at = NULL
	`, entry.ID, entry.NoteID, entry.DocumentID, entry.OldRevisionID, entry.OldSectionID,
		entry.OldAnchorKey, entry.OldHeading, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("upserting queue entry: %w", err)
	}
	return nil
}

// GetOpenByNote returns the open entry for a note, or ErrNotFound.
func (s *reassignmentStore) GetOpenByNote(ctx context.Context, noteID string) (*domain.ReassignmentEntry, error) {
	row := s.q.QueryRowContext(ctx, `
		SELECT `+queueColumns+`
		FROM note_reassignment_queue
		WHERE note_id = ? AND status = 'open'
	`, noteID)

	entry, err := scanQueueFields(row.Scan)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	return entry, err
}

// ListOpenByDocument returns open entries for a document, oldest first.
func (s *reassignmentStore) ListOpenByDocument(
	ctx context.Context,
	documentID string,
) ([]domain.ReassignmentEntry, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT `+queueColumns+`
		FROM note_reassignment_queue
		WHERE document_id = ? AND status = 'open'
		ORDER BY created_at, id
	`, documentID)
	if err != nil {
		return nil, fmt.Errorf("querying queue entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.ReassignmentEntry //nolint:prealloc // size unknown from query
	for rows.Next() {
		entry, err := scanQueueFields(rows.Scan)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating queue entries: %w", err)
	}
	return entries, nil
}

// MarkResolved transitions an open entry to resolved.
func (s *reassignmentStore) MarkResolved(ctx context.Context, entryID string, at time.Time) error {
	res, err := s.q.ExecContext(ctx, `
		UPDATE note_reassignment_queue
		SET status = 'resolved', resolved_at = ?
		WHERE id = ? AND status = 'open'
	`, at.UTC(), entryID)
	if err != nil {
		return fmt.Errorf("resolving queue entry: %w", err)
	}
	return requireOneRow(res, "queue entry")
}

// scanQueueFields scans queue columns through any Scan func.
func scanQueueFields(scan func(dest ...any) error) (*domain.ReassignmentEntry, error) {
	var entry domain.ReassignmentEntry
	var status string
	var resolvedAt sql.NullTime

	if err := scan(&entry.ID, &entry.NoteID, &entry.DocumentID, &entry.OldRevisionID,
		&entry.OldSectionID, &entry.OldAnchorKey, &entry.OldHeading,
		&status, &entry.CreatedAt, &resolvedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning queue entry: %w", err)
	}

	entry.Status = domain.QueueStatus(status)
	if resolvedAt.Valid {
		entry.ResolvedAt = &resolvedAt.Time
	}
	return &entry, nil
}
