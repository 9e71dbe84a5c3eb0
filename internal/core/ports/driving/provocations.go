package driving

import (
	"context"

	"github.com/lectern-labs/lectern-cli/internal/core/domain"
)

// NewProvocation carries the fields the AI flow records after a
// generation request completes.
type NewProvocation struct {
	DocumentID string
	SectionID  string
	RequestID  string
	Style      domain.ProvocationStyle
	Content    string
}

// ProvocationService records and reads AI provocations. Generation
// itself happens in an external flow; this core only persists the
// result and invalidates it when its revision is superseded.
type ProvocationService interface {
	// Record stores an active provocation against the section's
	// revision, which must be the document's current revision.
	// Returns ErrConflict when an active provocation already exists
	// for the (document, section, revision) triple.
	Record(ctx context.Context, p NewProvocation) (*domain.Provocation, error)

	// ListActive returns the document's active provocations.
	ListActive(ctx context.Context, documentID string) ([]domain.Provocation, error)
}
