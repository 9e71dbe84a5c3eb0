package driven

import (
	"context"

	"github.com/lectern-labs/lectern-cli/internal/core/domain"
)

// Sectioner produces ordered (heading, content) pairs from raw
// document bytes. Implementations are format-specific; the output is
// already in final reading order.
type Sectioner interface {
	// Section extracts the ordered section sequence from content.
	Section(ctx context.Context, content []byte) ([]domain.SourceSection, error)
}

// SectionerRegistry selects a sectioner for a source path.
type SectionerRegistry interface {
	// ForPath returns the sectioner responsible for the file at path,
	// chosen by extension.
	ForPath(path string) (Sectioner, error)
}
