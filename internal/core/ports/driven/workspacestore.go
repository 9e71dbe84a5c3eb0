package driven

import (
	"context"
	"time"

	"github.com/lectern-labs/lectern-cli/internal/core/domain"
)

// DocumentStore persists documents.
type DocumentStore interface {
	// Insert stores a new document.
	Insert(ctx context.Context, doc *domain.Document) error

	// Get retrieves a document by ID.
	Get(ctx context.Context, id string) (*domain.Document, error)

	// List returns all documents in the workspace, oldest first.
	List(ctx context.Context) ([]domain.Document, error)

	// UpdateSourcePath updates source_path without touching the
	// revision pointer or fingerprint (the locate operation).
	UpdateSourcePath(ctx context.Context, id, path string) error

	// SetCurrentRevision points the document at a new revision and
	// adopts that revision's fingerprint.
	SetCurrentRevision(ctx context.Context, id, revisionID string, fp domain.Fingerprint) error

	// Delete removes a document; revisions, sections, notes, queue
	// entries and provocations cascade.
	Delete(ctx context.Context, id string) error
}

// RevisionStore persists immutable document revisions.
type RevisionStore interface {
	// Insert stores a new revision.
	Insert(ctx context.Context, rev *domain.DocumentRevision) error

	// Get retrieves a revision by ID.
	Get(ctx context.Context, id string) (*domain.DocumentRevision, error)

	// MaxNumber returns the highest revision number for a document,
	// or 0 when none exist.
	MaxNumber(ctx context.Context, documentID string) (int64, error)

	// ListByDocument returns all revisions for a document in
	// ascending number order.
	ListByDocument(ctx context.Context, documentID string) ([]domain.DocumentRevision, error)
}

// SectionStore persists revision sections.
type SectionStore interface {
	// InsertBatch stores the full section set of one revision.
	InsertBatch(ctx context.Context, sections []domain.Section) error

	// Get retrieves a section by ID.
	Get(ctx context.Context, id string) (*domain.Section, error)

	// ListByRevision returns a revision's sections in reading order.
	ListByRevision(ctx context.Context, revisionID string) ([]domain.Section, error)
}

// NoteStore persists user notes.
type NoteStore interface {
	// Insert stores a new note.
	Insert(ctx context.Context, note *domain.Note) error

	// Get retrieves a note by ID.
	Get(ctx context.Context, id string) (*domain.Note, error)

	// ListByDocument returns all notes for a document, oldest first.
	ListByDocument(ctx context.Context, documentID string) ([]domain.Note, error)

	// ListAttachedToRevision returns notes whose section belongs to
	// the given revision.
	ListAttachedToRevision(ctx context.Context, documentID, revisionID string) ([]domain.Note, error)

	// SetSection updates a note's section assignment; nil unassigns.
	SetSection(ctx context.Context, noteID string, sectionID *string) error

	// UpdateContent replaces the note text.
	UpdateContent(ctx context.Context, noteID, content string) error

	// Delete removes a note.
	Delete(ctx context.Context, noteID string) error
}

// ReassignmentStore persists the note reassignment queue.
type ReassignmentStore interface {
	// UpsertOpen inserts an open entry for a note, replacing any
	// previous (resolved) entry for the same note.
	UpsertOpen(ctx context.Context, entry *domain.ReassignmentEntry) error

	// GetOpenByNote returns the open entry for a note, or ErrNotFound.
	GetOpenByNote(ctx context.Context, noteID string) (*domain.ReassignmentEntry, error)

	// ListOpenByDocument returns open entries for a document, oldest first.
	ListOpenByDocument(ctx context.Context, documentID string) ([]domain.ReassignmentEntry, error)

	// MarkResolved transitions an entry from open to resolved.
	MarkResolved(ctx context.Context, entryID string, at time.Time) error
}

// ProvocationStore persists AI provocations.
type ProvocationStore interface {
	// Insert stores a new active provocation. Returns ErrConflict if
	// an active row already exists for the same (document, section,
	// revision) triple.
	Insert(ctx context.Context, p *domain.Provocation) error

	// ListActiveByDocument returns active provocations for a document.
	ListActiveByDocument(ctx context.Context, documentID string) ([]domain.Provocation, error)

	// DeactivateSuperseded deactivates every active provocation of the
	// document whose revision is not keepRevisionID. Returns the
	// number of rows deactivated.
	DeactivateSuperseded(ctx context.Context, documentID, keepRevisionID string, at time.Time) (int64, error)
}

// WorkspaceStore is transactional access to one workspace's relational
// store file. The sub-store accessors outside a transaction auto-commit
// per statement; InTransaction yields a view of the same interfaces
// bound to a single transaction that commits when fn returns nil and
// rolls back otherwise.
type WorkspaceStore interface {
	Documents() DocumentStore
	Revisions() RevisionStore
	Sections() SectionStore
	Notes() NoteStore
	Reassignments() ReassignmentStore
	Provocations() ProvocationStore

	// InTransaction runs fn against a transaction-bound store view.
	// Concurrent readers observe either the fully-old or fully-new
	// state, never an intermediate one.
	InTransaction(ctx context.Context, fn func(tx WorkspaceStore) error) error
}
