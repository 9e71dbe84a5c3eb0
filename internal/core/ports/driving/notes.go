package driving

import (
	"context"

	"github.com/lectern-labs/lectern-cli/internal/core/domain"
)

// NewNote carries the fields for note creation. SectionID is
// required: a note is only ever unassigned as a result of
// reconciliation, which queues it for reassignment at the same time.
type NewNote struct {
	DocumentID     string
	SectionID      string
	Content        string
	ParagraphIndex int
	StartOffset    int
	EndOffset      int
	Excerpt        string
}

// NoteService manages user notes.
type NoteService interface {
	// Add creates a note. SectionID must name a section of the
	// document's current revision.
	Add(ctx context.Context, n NewNote) (*domain.Note, error)

	// Get retrieves a note by ID.
	Get(ctx context.Context, noteID string) (*domain.Note, error)

	// List returns all notes for a document, oldest first.
	List(ctx context.Context, documentID string) ([]domain.Note, error)

	// SetContent replaces the note text immediately, bypassing the
	// autosave debounce.
	SetContent(ctx context.Context, noteID, content string) error

	// Delete removes a note.
	Delete(ctx context.Context, noteID string) error
}

// AutosaveController coalesces note content writes. Each note debounces
// independently; only the most recently queued draft survives.
type AutosaveController interface {
	// Queue records the latest draft for a note and restarts its
	// debounce timer.
	Queue(noteID, content string)

	// Flush persists the pending draft for one note immediately.
	Flush(ctx context.Context, noteID string) error

	// FlushAll persists every pending draft.
	FlushAll(ctx context.Context) error

	// Close cancels all pending timers without flushing. Callers must
	// flush explicitly if persistence on exit is required.
	Close()
}
