package driving

import "context"

// ReimportResult reports what a reimport did. No partial success is
// ever reported: either the whole revision swap committed, or nothing
// changed.
type ReimportResult struct {
	// DocumentID is the reimported document.
	DocumentID string

	// Changed is false when the source bytes were hash-identical to
	// the adopted fingerprint and the reimport was a no-op.
	Changed bool

	// RevisionID and RevisionNumber identify the new revision when
	// Changed is true.
	RevisionID     string
	RevisionNumber int64

	// SectionCount is the number of sections in the new revision.
	SectionCount int

	// NotesRemapped counts notes moved to the new revision by exact
	// anchor match.
	NotesRemapped int

	// NotesQueued counts notes that lost their section and gained an
	// open reassignment entry.
	NotesQueued int

	// ProvocationsInvalidated counts provocations deactivated because
	// their revision was superseded.
	ProvocationsInvalidated int64
}

// ReimportService reconciles a document against the current bytes at
// its source path.
type ReimportService interface {
	// Reimport fingerprints the source, and if the content changed,
	// atomically creates a new revision, remaps or queues notes, and
	// invalidates stale provocations. Safe to invoke idempotently: a
	// byte-identical reimport is a reported no-op.
	Reimport(ctx context.Context, documentID string) (*ReimportResult, error)
}
