package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/lectern-labs/lectern-cli/internal/core/domain"
	"github.com/lectern-labs/lectern-cli/internal/core/ports/driven"
	"github.com/lectern-labs/lectern-cli/internal/core/ports/driving"
)

// Ensure ProvocationService implements the interface.
var _ driving.ProvocationService = (*ProvocationService)(nil)

// ProvocationService records and reads AI provocations. Generation
// happens in an external flow; this service persists the result bound
// to the exact (section, revision) it was generated against.
type ProvocationService struct {
	store driven.WorkspaceStore
}

// NewProvocationService creates a new provocation service.
func NewProvocationService(store driven.WorkspaceStore) *ProvocationService {
	return &ProvocationService{store: store}
}

// Record stores an active provocation against the section's revision,
// which must be the document's current revision.
func (s *ProvocationService) Record(ctx context.Context, p driving.NewProvocation) (*domain.Provocation, error) {
	if !p.Style.Valid() {
		return nil, fmt.Errorf("%w: unknown provocation style %q", domain.ErrInvalidInput, p.Style)
	}
	if strings.TrimSpace(p.Content) == "" {
		return nil, fmt.Errorf("%w: provocation content is required", domain.ErrInvalidInput)
	}

	doc, err := s.store.Documents().Get(ctx, p.DocumentID)
	if err != nil {
		return nil, err
	}
	section, err := s.store.Sections().Get(ctx, p.SectionID)
	if err != nil {
		return nil, err
	}
	if doc.CurrentRevisionID == nil || section.RevisionID != *doc.CurrentRevisionID {
		return nil, fmt.Errorf("%w: section %s does not belong to the current revision",
			domain.ErrConflict, p.SectionID)
	}

	provocation := &domain.Provocation{
		ID:         uuid.NewString(),
		DocumentID: doc.ID,
		SectionID:  section.ID,
		RevisionID: section.RevisionID,
		RequestID:  p.RequestID,
		Style:      p.Style,
		Content:    p.Content,
	}
	if err := s.store.Provocations().Insert(ctx, provocation); err != nil {
		return nil, err
	}
	return provocation, nil
}

// ListActive returns the document's active provocations.
func (s *ProvocationService) ListActive(ctx context.Context, documentID string) ([]domain.Provocation, error) {
	return s.store.Provocations().ListActiveByDocument(ctx, documentID)
}
