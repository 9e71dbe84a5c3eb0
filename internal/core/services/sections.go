package services

import (
	"github.com/google/uuid"

	"github.com/lectern-labs/lectern-cli/internal/anchoring"
	"github.com/lectern-labs/lectern-cli/internal/core/domain"
)

// buildSections turns sectioner output into section rows for one
// revision: anchor keys assigned in order by a single anchor builder,
// order index preserved, word counts computed.
func buildSections(revisionID string, src []domain.SourceSection) []domain.Section {
	b := anchoring.NewBuilder()
	sections := make([]domain.Section, len(src))
	for i, s := range src {
		sections[i] = domain.Section{
			ID:         uuid.NewString(),
			RevisionID: revisionID,
			AnchorKey:  b.Key(s.Heading),
			Heading:    s.Heading,
			OrderIndex: i,
			Content:    s.Content,
			WordCount:  domain.CountWords(s.Content),
		}
	}
	return sections
}
