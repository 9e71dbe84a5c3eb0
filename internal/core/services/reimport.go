package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lectern-labs/lectern-cli/internal/core/domain"
	"github.com/lectern-labs/lectern-cli/internal/core/ports/driven"
	"github.com/lectern-labs/lectern-cli/internal/core/ports/driving"
	"github.com/lectern-labs/lectern-cli/internal/logger"
)

// Ensure ReimportService implements the interface.
var _ driving.ReimportService = (*ReimportService)(nil)

// ReimportService reconciles a document against the current bytes at
// its source path. The whole revision swap runs in one transaction:
// concurrent readers see either the old revision or the new one, never
// a half-migrated state.
type ReimportService struct {
	store      driven.WorkspaceStore
	source     driven.SourceReader
	sectioners driven.SectionerRegistry
}

// NewReimportService creates a new reimport service.
func NewReimportService(
	store driven.WorkspaceStore,
	source driven.SourceReader,
	sectioners driven.SectionerRegistry,
) *ReimportService {
	return &ReimportService{
		store:      store,
		source:     source,
		sectioners: sectioners,
	}
}

// Reimport fingerprints the source and, when the content hash changed,
// commits a new revision: sections are rebuilt, notes are remapped by
// exact anchor-key match or queued for reassignment, and provocations
// of superseded revisions are deactivated.
func (s *ReimportService) Reimport(ctx context.Context, documentID string) (*driving.ReimportResult, error) {
	doc, err := s.store.Documents().Get(ctx, documentID)
	if err != nil {
		return nil, err
	}

	content, fp, err := s.source.Read(ctx, doc.SourcePath)
	if err != nil {
		return nil, fmt.Errorf("reading source %s: %w", doc.SourcePath, err)
	}

	// Hash is authoritative: mtime or size drift alone is not a change.
	if fp.SameContent(doc.Fingerprint) {
		logger.Debug("document %s unchanged (hash %s), skipping reimport", doc.ID, fp.ContentHash)
		return &driving.ReimportResult{DocumentID: doc.ID, Changed: false}, nil
	}

	sectioner, err := s.sectioners.ForPath(doc.SourcePath)
	if err != nil {
		return nil, err
	}
	srcSections, err := sectioner.Section(ctx, content)
	if err != nil {
		return nil, fmt.Errorf("sectioning %s: %w", doc.SourcePath, err)
	}

	result := &driving.ReimportResult{DocumentID: doc.ID, Changed: true}

	err = s.store.InTransaction(ctx, func(tx driven.WorkspaceStore) error {
		maxNumber, err := tx.Revisions().MaxNumber(ctx, doc.ID)
		if err != nil {
			return err
		}

		rev := &domain.DocumentRevision{
			ID:          uuid.NewString(),
			DocumentID:  doc.ID,
			Number:      maxNumber + 1,
			Fingerprint: fp,
		}
		if err := tx.Revisions().Insert(ctx, rev); err != nil {
			return err
		}

		sections := buildSections(rev.ID, srcSections)
		if err := tx.Sections().InsertBatch(ctx, sections); err != nil {
			return err
		}

		if doc.CurrentRevisionID != nil {
			remapped, queued, err := s.migrateNotes(ctx, tx, doc, rev, sections)
			if err != nil {
				return err
			}
			result.NotesRemapped = remapped
			result.NotesQueued = queued
		}

		invalidated, err := tx.Provocations().DeactivateSuperseded(ctx, doc.ID, rev.ID, time.Now().UTC())
		if err != nil {
			return err
		}
		result.ProvocationsInvalidated = invalidated

		if err := tx.Documents().SetCurrentRevision(ctx, doc.ID, rev.ID, fp); err != nil {
			return err
		}

		result.RevisionID = rev.ID
		result.RevisionNumber = rev.Number
		result.SectionCount = len(sections)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("reimported document %s: revision %d, %d sections, %d notes remapped, %d queued, %d provocations invalidated",
		doc.ID, result.RevisionNumber, result.SectionCount,
		result.NotesRemapped, result.NotesQueued, result.ProvocationsInvalidated)
	return result, nil
}

// migrateNotes moves every note attached to the outgoing revision onto
// the new revision. The match decision is anchor-key equality only:
// heading text, content similarity and position play no part. Notes
// whose anchor key is absent from the new revision are unassigned and
// queued with a snapshot of their old location.
func (s *ReimportService) migrateNotes(
	ctx context.Context,
	tx driven.WorkspaceStore,
	doc *domain.Document,
	newRev *domain.DocumentRevision,
	newSections []domain.Section,
) (remapped, queued int, err error) {
	oldSections, err := tx.Sections().ListByRevision(ctx, *doc.CurrentRevisionID)
	if err != nil {
		return 0, 0, err
	}
	oldByID := make(map[string]domain.Section, len(oldSections))
	for _, sec := range oldSections {
		oldByID[sec.ID] = sec
	}
	newByAnchor := make(map[string]domain.Section, len(newSections))
	for _, sec := range newSections {
		newByAnchor[sec.AnchorKey] = sec
	}

	notes, err := tx.Notes().ListAttachedToRevision(ctx, doc.ID, *doc.CurrentRevisionID)
	if err != nil {
		return 0, 0, err
	}

	for _, note := range notes {
		oldSec, ok := oldByID[*note.SectionID]
		if !ok {
			return 0, 0, fmt.Errorf("%w: note %s references unknown section %s",
				domain.ErrInternal, note.ID, *note.SectionID)
		}

		if newSec, ok := newByAnchor[oldSec.AnchorKey]; ok {
			if err := tx.Notes().SetSection(ctx, note.ID, &newSec.ID); err != nil {
				return 0, 0, err
			}
			remapped++
			continue
		}

		if err := tx.Notes().SetSection(ctx, note.ID, nil); err != nil {
			return 0, 0, err
		}
		entry := &domain.ReassignmentEntry{
			ID:            uuid.NewString(),
			NoteID:        note.ID,
			DocumentID:    doc.ID,
			OldRevisionID: *doc.CurrentRevisionID,
			OldSectionID:  oldSec.ID,
			OldAnchorKey:  oldSec.AnchorKey,
			OldHeading:    oldSec.Heading,
		}
		if err := tx.Reassignments().UpsertOpen(ctx, entry); err != nil {
			return 0, 0, err
		}
		queued++
	}

	return remapped, queued, nil
}
