package services

import (
	"context"
	"fmt"
	"time"

	"github.com/lectern-labs/lectern-cli/internal/core/domain"
	"github.com/lectern-labs/lectern-cli/internal/core/ports/driven"
	"github.com/lectern-labs/lectern-cli/internal/core/ports/driving"
	"github.com/lectern-labs/lectern-cli/internal/logger"
)

// Ensure ReassignmentService implements the interface.
var _ driving.ReassignmentService = (*ReassignmentService)(nil)

// ReassignmentService is the read/resolve API over the queue the
// reconciler fills. Entries persist until the user resolves them; there
// is no automatic expiry.
type ReassignmentService struct {
	store driven.WorkspaceStore
}

// NewReassignmentService creates a new reassignment service.
func NewReassignmentService(store driven.WorkspaceStore) *ReassignmentService {
	return &ReassignmentService{store: store}
}

// ListOpen returns the open queue for a document, oldest first, each
// entry paired with its note.
func (s *ReassignmentService) ListOpen(ctx context.Context, documentID string) ([]driving.QueuedNote, error) {
	entries, err := s.store.Reassignments().ListOpenByDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}

	queued := make([]driving.QueuedNote, 0, len(entries))
	for _, entry := range entries {
		note, err := s.store.Notes().Get(ctx, entry.NoteID)
		if err != nil {
			return nil, fmt.Errorf("loading note %s for queue entry %s: %w", entry.NoteID, entry.ID, err)
		}
		queued = append(queued, driving.QueuedNote{Entry: entry, Note: *note})
	}
	return queued, nil
}

// Reassign attaches the queued note to targetSectionID and resolves the
// entry atomically.
func (s *ReassignmentService) Reassign(ctx context.Context, documentID, noteID, targetSectionID string) error {
	err := s.store.InTransaction(ctx, func(tx driven.WorkspaceStore) error {
		entry, err := s.openEntry(ctx, tx, documentID, noteID)
		if err != nil {
			return err
		}

		doc, err := tx.Documents().Get(ctx, documentID)
		if err != nil {
			return err
		}
		target, err := tx.Sections().Get(ctx, targetSectionID)
		if err != nil {
			return err
		}
		if doc.CurrentRevisionID == nil || target.RevisionID != *doc.CurrentRevisionID {
			return fmt.Errorf("%w: section %s does not belong to the current revision",
				domain.ErrConflict, targetSectionID)
		}

		if err := tx.Notes().SetSection(ctx, noteID, &target.ID); err != nil {
			return err
		}
		return tx.Reassignments().MarkResolved(ctx, entry.ID, time.Now().UTC())
	})
	if err != nil {
		return err
	}

	logger.Info("reassigned note %s to section %s", noteID, targetSectionID)
	return nil
}

// SkipForNow validates that an open entry exists for the note and
// leaves it queued. Idempotent.
func (s *ReassignmentService) SkipForNow(ctx context.Context, documentID, noteID string) error {
	_, err := s.openEntry(ctx, s.store, documentID, noteID)
	return err
}

// openEntry loads the open queue entry for a note and verifies it
// belongs to the given document.
func (s *ReassignmentService) openEntry(
	ctx context.Context,
	store driven.WorkspaceStore,
	documentID, noteID string,
) (*domain.ReassignmentEntry, error) {
	entry, err := store.Reassignments().GetOpenByNote(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if entry.DocumentID != documentID {
		return nil, fmt.Errorf("%w: no open queue entry for note %s in document %s",
			domain.ErrNotFound, noteID, documentID)
	}
	return entry, nil
}
