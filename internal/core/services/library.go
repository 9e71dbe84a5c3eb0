package services

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/lectern-labs/lectern-cli/internal/core/domain"
	"github.com/lectern-labs/lectern-cli/internal/core/ports/driven"
	"github.com/lectern-labs/lectern-cli/internal/core/ports/driving"
	"github.com/lectern-labs/lectern-cli/internal/logger"
)

// Ensure LibraryService implements the interface.
var _ driving.LibraryService = (*LibraryService)(nil)

// LibraryService manages the workspace's reading items.
type LibraryService struct {
	store      driven.WorkspaceStore
	source     driven.SourceReader
	sectioners driven.SectionerRegistry
}

// NewLibraryService creates a new library service.
func NewLibraryService(
	store driven.WorkspaceStore,
	source driven.SourceReader,
	sectioners driven.SectionerRegistry,
) *LibraryService {
	return &LibraryService{
		store:      store,
		source:     source,
		sectioners: sectioners,
	}
}

// Import ingests the file at path as a new document and commits its
// first revision in one transaction.
func (s *LibraryService) Import(ctx context.Context, path, title string) (*domain.Document, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: path is required", domain.ErrInvalidInput)
	}
	if title == "" {
		title = filepath.Base(path)
	}

	sectioner, err := s.sectioners.ForPath(path)
	if err != nil {
		return nil, err
	}

	content, fp, err := s.source.Read(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("reading source %s: %w", path, err)
	}

	srcSections, err := sectioner.Section(ctx, content)
	if err != nil {
		return nil, fmt.Errorf("sectioning %s: %w", path, err)
	}

	doc := &domain.Document{
		ID:          uuid.NewString(),
		Title:       title,
		SourcePath:  path,
		Fingerprint: fp,
	}
	rev := &domain.DocumentRevision{
		ID:          uuid.NewString(),
		DocumentID:  doc.ID,
		Number:      1,
		Fingerprint: fp,
	}
	sections := buildSections(rev.ID, srcSections)

	err = s.store.InTransaction(ctx, func(tx driven.WorkspaceStore) error {
		if err := tx.Documents().Insert(ctx, doc); err != nil {
			return err
		}
		if err := tx.Revisions().Insert(ctx, rev); err != nil {
			return err
		}
		if err := tx.Sections().InsertBatch(ctx, sections); err != nil {
			return err
		}
		return tx.Documents().SetCurrentRevision(ctx, doc.ID, rev.ID, fp)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("imported %s as document %s with %d sections", path, doc.ID, len(sections))
	doc.CurrentRevisionID = &rev.ID
	return doc, nil
}

// Get retrieves a document by ID.
func (s *LibraryService) Get(ctx context.Context, documentID string) (*domain.Document, error) {
	return s.store.Documents().Get(ctx, documentID)
}

// List returns all documents, oldest first.
func (s *LibraryService) List(ctx context.Context) ([]domain.Document, error) {
	return s.store.Documents().List(ctx)
}

// Locate updates a document's source path after the file moved. The
// revision pointer and fingerprint are untouched.
func (s *LibraryService) Locate(ctx context.Context, documentID, newPath string) error {
	if newPath == "" {
		return fmt.Errorf("%w: new path is required", domain.ErrInvalidInput)
	}
	if _, err := s.source.Fingerprint(ctx, newPath); err != nil {
		return fmt.Errorf("checking new path %s: %w", newPath, err)
	}
	return s.store.Documents().UpdateSourcePath(ctx, documentID, newPath)
}

// Sections returns the sections of the document's current revision.
func (s *LibraryService) Sections(ctx context.Context, documentID string) ([]domain.Section, error) {
	doc, err := s.store.Documents().Get(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc.CurrentRevisionID == nil {
		return nil, fmt.Errorf("%w: document %s has no committed revision", domain.ErrInternal, documentID)
	}
	return s.store.Sections().ListByRevision(ctx, *doc.CurrentRevisionID)
}

// Remove deletes a document and everything attached to it.
func (s *LibraryService) Remove(ctx context.Context, documentID string) error {
	if err := s.store.Documents().Delete(ctx, documentID); err != nil {
		return err
	}
	logger.Info("removed document %s", documentID)
	return nil
}
