package driving

import (
	"context"

	"github.com/lectern-labs/lectern-cli/internal/core/domain"
)

// QueuedNote pairs an open reassignment entry with its note, so the
// shell can render both the note text and where it used to live.
type QueuedNote struct {
	Entry domain.ReassignmentEntry
	Note  domain.Note
}

// ReassignmentService is the read/resolve API over the queue produced
// by the reconciler.
type ReassignmentService interface {
	// ListOpen returns the open queue for a document, oldest first.
	ListOpen(ctx context.Context, documentID string) ([]QueuedNote, error)

	// Reassign attaches the queued note to targetSectionID and marks
	// the entry resolved, atomically. The target must belong to the
	// document's current revision (ErrConflict otherwise); an open
	// entry must exist for the note (ErrNotFound otherwise).
	Reassign(ctx context.Context, documentID, noteID, targetSectionID string) error

	// SkipForNow validates that an open entry exists for the note and
	// performs no mutation; the note stays queued indefinitely.
	SkipForNow(ctx context.Context, documentID, noteID string) error
}
