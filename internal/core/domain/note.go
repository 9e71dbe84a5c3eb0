package domain

import "time"

// Note is user-authored text anchored to a document and, optionally,
// a section of the document's current revision. A note with a nil
// SectionID is unassigned and has a corresponding open reassignment
// entry; that pairing is enforced by the reconciler, not the schema.
type Note struct {
	// ID is the unique identifier for the note.
	ID string

	// DocumentID links to the parent Document.
	DocumentID string

	// SectionID links to a section of the current revision, or nil
	// when the note is unassigned.
	SectionID *string

	// Content is the note text.
	Content string

	// ParagraphIndex is the ordinal of the paragraph the note was
	// attached to, for exact-anchor re-evaluation.
	ParagraphIndex int

	// StartOffset and EndOffset are character offsets of the anchored
	// span within the section content.
	StartOffset int
	EndOffset   int

	// Excerpt is a short quote of the text the note was attached to.
	Excerpt string

	// CreatedAt is when the note was created.
	CreatedAt time.Time

	// UpdatedAt is when the note content or assignment last changed.
	UpdatedAt time.Time
}

// QueueStatus is the lifecycle state of a reassignment entry.
type QueueStatus string

const (
	// QueueOpen marks an entry awaiting a user decision.
	QueueOpen QueueStatus = "open"

	// QueueResolved marks an entry whose note has been reassigned.
	QueueResolved QueueStatus = "resolved"
)

// ReassignmentEntry records a note that survived a reimport but lost
// its section. It snapshots the old location so the shell can render
// "this note used to live under X". At most one entry exists per note.
type ReassignmentEntry struct {
	// ID is the unique identifier for the entry.
	ID string

	// NoteID links to the orphaned note. Unique across the queue.
	NoteID string

	// DocumentID links to the parent Document.
	DocumentID string

	// OldRevisionID is the revision the note was attached to before
	// the reimport. Historical pointer, not a live foreign key.
	OldRevisionID string

	// OldSectionID is the section the note was attached to.
	OldSectionID string

	// OldAnchorKey is the anchor key of that section.
	OldAnchorKey string

	// OldHeading is the heading of that section.
	OldHeading string

	// Status is open until the user resolves the entry. Entries have
	// no automatic expiry.
	Status QueueStatus

	// CreatedAt is when the entry was queued.
	CreatedAt time.Time

	// ResolvedAt is when the entry was resolved, or nil while open.
	ResolvedAt *time.Time
}
