package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/lectern-labs/lectern-cli/internal/core/domain"
	"github.com/lectern-labs/lectern-cli/internal/core/ports/driven"
	"github.com/lectern-labs/lectern-cli/internal/core/ports/driving"
)

// Ensure NoteService implements the interface.
var _ driving.NoteService = (*NoteService)(nil)

// NoteService manages user notes.
type NoteService struct {
	store driven.WorkspaceStore
}

// NewNoteService creates a new note service.
func NewNoteService(store driven.WorkspaceStore) *NoteService {
	return &NoteService{store: store}
}

// Add creates a note attached to a section of the document's current
// revision. Notes are never created unassigned: a note only loses its
// section through reconciliation, which queues it at the same time.
func (s *NoteService) Add(ctx context.Context, n driving.NewNote) (*domain.Note, error) {
	if strings.TrimSpace(n.Content) == "" {
		return nil, fmt.Errorf("%w: note content is required", domain.ErrInvalidInput)
	}
	if n.SectionID == "" {
		return nil, fmt.Errorf("%w: a section is required", domain.ErrInvalidInput)
	}

	doc, err := s.store.Documents().Get(ctx, n.DocumentID)
	if err != nil {
		return nil, err
	}
	section, err := s.store.Sections().Get(ctx, n.SectionID)
	if err != nil {
		return nil, err
	}
	if doc.CurrentRevisionID == nil || section.RevisionID != *doc.CurrentRevisionID {
		return nil, fmt.Errorf("%w: section %s does not belong to the current revision",
			domain.ErrConflict, n.SectionID)
	}

	note := &domain.Note{
		ID:             uuid.NewString(),
		DocumentID:     doc.ID,
		SectionID:      &section.ID,
		Content:        n.Content,
		ParagraphIndex: n.ParagraphIndex,
		StartOffset:    n.StartOffset,
		EndOffset:      n.EndOffset,
		Excerpt:        n.Excerpt,
	}

	if err := s.store.Notes().Insert(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// Get retrieves a note by ID.
func (s *NoteService) Get(ctx context.Context, noteID string) (*domain.Note, error) {
	return s.store.Notes().Get(ctx, noteID)
}

// List returns all notes for a document, oldest first.
func (s *NoteService) List(ctx context.Context, documentID string) ([]domain.Note, error) {
	return s.store.Notes().ListByDocument(ctx, documentID)
}

// SetContent replaces the note text immediately.
func (s *NoteService) SetContent(ctx context.Context, noteID, content string) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("%w: note content is required", domain.ErrInvalidInput)
	}
	return s.store.Notes().UpdateContent(ctx, noteID, content)
}

// Delete removes a note.
func (s *NoteService) Delete(ctx context.Context, noteID string) error {
	return s.store.Notes().Delete(ctx, noteID)
}
