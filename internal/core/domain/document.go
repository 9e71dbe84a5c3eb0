package domain

import "time"

// Fingerprint captures the identity of one set of source bytes.
// Two fingerprints are equal iff all three fields match. The content
// hash is authoritative for change detection: mtime and size can drift
// without the bytes changing.
type Fingerprint struct {
	// SizeBytes is the file size at fingerprinting time.
	SizeBytes int64

	// ModTime is the file modification time at fingerprinting time.
	ModTime time.Time

	// ContentHash is the SHA-256 hex digest of the full file bytes.
	ContentHash string
}

// Equal reports whether all three fields match.
func (f Fingerprint) Equal(other Fingerprint) bool {
	return f.SizeBytes == other.SizeBytes &&
		f.ModTime.Equal(other.ModTime) &&
		f.ContentHash == other.ContentHash
}

// SameContent reports whether the content hashes match, ignoring
// size and mtime drift.
func (f Fingerprint) SameContent(other Fingerprint) bool {
	return f.ContentHash != "" && f.ContentHash == other.ContentHash
}

// Document identifies one logical reading item in the workspace.
// The fingerprint always describes the currently adopted source bytes,
// the ones that produced the current revision.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// Title is the human-readable title.
	Title string

	// SourcePath is the path of the source file on disk.
	// Updated by the locate operation without changing the revision.
	SourcePath string

	// Fingerprint describes the currently adopted source bytes.
	Fingerprint Fingerprint

	// CurrentRevisionID points at the revision readers see.
	// Nil only transiently, before the first revision is committed.
	CurrentRevisionID *string

	// CreatedAt is when the document was imported.
	CreatedAt time.Time

	// UpdatedAt is when the document row was last mutated.
	UpdatedAt time.Time
}

// DocumentRevision is an immutable snapshot of a document's sectioned
// content. Revision numbers are gapless and strictly increasing per
// document; the first revision is 1.
type DocumentRevision struct {
	// ID is the unique identifier for the revision.
	ID string

	// DocumentID links to the parent Document.
	DocumentID string

	// Number is the monotonically increasing revision number.
	Number int64

	// Fingerprint describes the bytes that produced this revision.
	Fingerprint Fingerprint

	// CreatedAt is when the revision was committed.
	CreatedAt time.Time
}

// Section is an addressable unit of one revision. Sections are
// immutable once created; a reimport creates an entirely new set for
// the new revision rather than editing existing rows.
type Section struct {
	// ID is the unique identifier for the section.
	ID string

	// RevisionID links to the owning DocumentRevision.
	RevisionID string

	// AnchorKey is the slug+ordinal key, unique within the revision.
	// It is the sole basis for cross-revision note remapping.
	AnchorKey string

	// Heading is the heading text as extracted from the source.
	Heading string

	// OrderIndex defines reading order within the revision.
	OrderIndex int

	// Content is the extracted section text.
	Content string

	// WordCount is the Unicode word-token count of Content.
	WordCount int
}

// SourceSection is the sectioner output contract: one (heading, content)
// pair in final reading order, already format-normalised.
type SourceSection struct {
	Heading string
	Content string
}
