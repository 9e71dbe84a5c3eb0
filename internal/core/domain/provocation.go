package domain

import "time"

// ProvocationStyle selects the register of a generated provocation.
type ProvocationStyle string

const (
	StyleSocratic  ProvocationStyle = "socratic"
	StyleCounter   ProvocationStyle = "counter"
	StyleSynthesis ProvocationStyle = "synthesis"
)

// Valid reports whether the style is one of the known values.
func (s ProvocationStyle) Valid() bool {
	switch s {
	case StyleSocratic, StyleCounter, StyleSynthesis:
		return true
	}
	return false
}

// Provocation is an AI-generated artifact scoped to a document, a
// specific section, and a specific revision. It is only ever valid for
// the exact (section, revision) it was generated against: the
// reconciler deactivates it when that revision is superseded. At most
// one active provocation exists per (document, section, revision).
type Provocation struct {
	// ID is the unique identifier for the provocation.
	ID string

	// DocumentID links to the parent Document.
	DocumentID string

	// SectionID links to the section it was generated against.
	SectionID string

	// RevisionID links to the revision it was generated against.
	RevisionID string

	// RequestID is the generating AI request id, for traceability.
	RequestID string

	// Style is the generation style that was requested.
	Style ProvocationStyle

	// Content is the generated text.
	Content string

	// Active is cleared by revision-scoped invalidation. Inactive
	// rows are retained, not deleted.
	Active bool

	// CreatedAt is when the provocation was recorded.
	CreatedAt time.Time

	// DeactivatedAt is when it was invalidated, or nil while active.
	DeactivatedAt *time.Time
}
