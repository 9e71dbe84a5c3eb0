package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lectern-labs/lectern-cli/internal/core/domain"
	"github.com/lectern-labs/lectern-cli/internal/core/ports/driven"
)

// noteStore implements driven.NoteStore.
type noteStore struct {
	q querier
}

var _ driven.NoteStore = (*noteStore)(nil)

const noteColumns = `id, document_id, section_id, content, paragraph_index,
	start_offset, end_offset, excerpt, created_at, updated_at`

// Insert stores a new note.
func (s *noteStore) Insert(ctx context.Context, note *domain.Note) error {
	now := time.Now().UTC()
	if note.CreatedAt.IsZero() {
		note.CreatedAt = now
	}
	note.UpdatedAt = now

	_, err := s.q.ExecContext(ctx, `
		INSERT INTO notes (id, document_id, section_id, content, paragraph_index,
			start_offset, end_offset, excerpt, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, note.ID, note.DocumentID, note.SectionID, note.Content, note.ParagraphIndex,
		note.StartOffset, note.EndOffset, note.Excerpt, note.CreatedAt, note.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("inserting note: %w", err)
	}
	return nil
}

// Get retrieves a note by ID.
func (s *noteStore) Get(ctx context.Context, id string) (*domain.Note, error) {
	row := s.q.QueryRowContext(ctx, `
		SELECT `+noteColumns+`
		FROM notes WHERE id = ?
	`, id)

	note, err := scanNoteFields(row.Scan)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	return note, err
}

// ListByDocument returns all notes for a document, oldest first.
func (s *noteStore) ListByDocument(ctx context.Context, documentID string) ([]domain.Note, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT `+noteColumns+`
		FROM notes WHERE document_id = ?
		ORDER BY created_at, id
	`, documentID)
	if err != nil {
		return nil, fmt.Errorf("querying notes: %w", err)
	}
	defer rows.Close()

	return collectNotes(rows)
}

// ListAttachedToRevision returns notes whose section belongs to the
// given revision.
func (s *noteStore) ListAttachedToRevision(
	ctx context.Context,
	documentID, revisionID string,
) ([]domain.Note, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT n.id, n.document_id, n.section_id, n.content, n.paragraph_index,
			n.start_offset, n.end_offset, n.excerpt, n.created_at, n.updated_at
		FROM notes n
		JOIN sections s ON s.id = n.section_id
		WHERE n.document_id = ? AND s.revision_id = ?
		ORDER BY n.created_at, n.id
	`, documentID, revisionID)
	if err != nil {
		return nil, fmt.Errorf("querying attached notes: %w", err)
	}
	defer rows.Close()

	return collectNotes(rows)
}

// SetSection updates a note's section assignment; nil unassigns.
func (s *noteStore) SetSection(ctx context.Context, noteID string, sectionID *string) error {
	res, err := s.q.ExecContext(ctx, `
		UPDATE notes SET section_id = ?, updated_at = ? WHERE id = ?
	`, sectionID, time.Now().UTC(), noteID)
	if err != nil {
		return fmt.Errorf("updating note section: %w", err)
	}
	return requireOneRow(res, "note")
}

// UpdateContent replaces the note text.
func (s *noteStore) UpdateContent(ctx context.Context, noteID, content string) error {
	res, err := s.q.ExecContext(ctx, `
		UPDATE notes SET content = ?, updated_at = ? WHERE id = ?
	`, content, time.Now().UTC(), noteID)
	if err != nil {
		return fmt.Errorf("updating note content: %w", err)
	}
	return requireOneRow(res, "note")
}

// Delete removes a note.
func (s *noteStore) Delete(ctx context.Context, noteID string) error {
	res, err := s.q.ExecContext(ctx, "DELETE FROM notes WHERE id = ?", noteID)
	if err != nil {
		return fmt.Errorf("deleting note: %w", err)
	}
	return requireOneRow(res, "note")
}

// collectNotes scans all rows into notes.
func collectNotes(rows *sql.Rows) ([]domain.Note, error) {
	var notes []domain.Note //nolint:prealloc // size unknown from query
	for rows.Next() {
		note, err := scanNoteFields(rows.Scan)
		if err != nil {
			return nil, err
		}
		notes = append(notes, *note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating notes: %w", err)
	}
	return notes, nil
}

// scanNoteFields scans note columns through any Scan func.
func scanNoteFields(scan func(dest ...any) error) (*domain.Note, error) {
	var note domain.Note
	var sectionID sql.NullString

	if err := scan(&note.ID, &note.DocumentID, &sectionID, &note.Content, &note.ParagraphIndex,
		&note.StartOffset, &note.EndOffset, &note.Excerpt, &note.CreatedAt, &note.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning note: %w", err)
	}

	if sectionID.Valid {
		note.SectionID = &sectionID.String
	}
	return &note, nil
}
