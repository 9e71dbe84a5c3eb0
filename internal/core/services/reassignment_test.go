package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lectern-labs/lectern-cli/internal/core/domain"
	"github.com/lectern-labs/lectern-cli/internal/core/ports/driving"
)

// queueOneNote imports, attaches a note to the conclusion, and reimports
// without that heading so the note lands in the queue.
func queueOneNote(t *testing.T, env *testEnv) (doc *domain.Document, note *domain.Note, oldSection domain.Section) {
	t.Helper()
	ctx := context.Background()

	doc = importBook(t, env)
	sections, err := env.library.Sections(ctx, doc.ID)
	require.NoError(t, err)
	oldSection = sectionByAnchor(t, sections, "conclusion#1")

	note, err = env.notes.Add(ctx, driving.NewNote{
		DocumentID: doc.ID,
		SectionID:  oldSection.ID,
		Content:    "needs a second look",
	})
	require.NoError(t, err)

	env.source.set(bookPath, `# Introduction
Opening thoughts on the subject.

# Argument
The central claim, stated plainly.
`, time.Date(2026, 2, 6, 9, 0, 0, 0, time.UTC))

	result, err := env.reimport.Reimport(ctx, doc.ID)
	require.NoError(t, err)
	require.Equal(t, 1, result.NotesQueued)

	return doc, note, oldSection
}

func TestReassignResolvesQueueEntry(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	doc, note, _ := queueOneNote(t, env)

	sections, err := env.library.Sections(ctx, doc.ID)
	require.NoError(t, err)
	target := sectionByAnchor(t, sections, "argument#1")

	require.NoError(t, env.reassign.Reassign(ctx, doc.ID, note.ID, target.ID))

	got, err := env.notes.Get(ctx, note.ID)
	require.NoError(t, err)
	require.NotNil(t, got.SectionID)
	assert.Equal(t, target.ID, *got.SectionID)

	open, err := env.reassign.ListOpen(ctx, doc.ID)
	require.NoError(t, err)
	assert.Empty(t, open)

	// Resolving twice is an error: the entry is gone.
	err = env.reassign.Reassign(ctx, doc.ID, note.ID, target.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReassignRejectsStaleSection(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	doc, note, oldSection := queueOneNote(t, env)

	// The old section still exists as a row, but it belongs to the
	// superseded revision.
	err := env.reassign.Reassign(ctx, doc.ID, note.ID, oldSection.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	// The note stays queued and unassigned.
	got, err := env.notes.Get(ctx, note.ID)
	require.NoError(t, err)
	assert.Nil(t, got.SectionID)

	open, err := env.reassign.ListOpen(ctx, doc.ID)
	require.NoError(t, err)
	assert.Len(t, open, 1)
}

func TestReassignUnqueuedNote(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	doc := importBook(t, env)
	sections, err := env.library.Sections(ctx, doc.ID)
	require.NoError(t, err)

	note, err := env.notes.Add(ctx, driving.NewNote{
		DocumentID: doc.ID,
		SectionID:  sections[0].ID,
		Content:    "happily attached",
	})
	require.NoError(t, err)

	err = env.reassign.Reassign(ctx, doc.ID, note.ID, sections[1].ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSkipForNowLeavesEntryOpen(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	doc, note, _ := queueOneNote(t, env)

	// Idempotent: skipping any number of times changes nothing.
	require.NoError(t, env.reassign.SkipForNow(ctx, doc.ID, note.ID))
	require.NoError(t, env.reassign.SkipForNow(ctx, doc.ID, note.ID))

	open, err := env.reassign.ListOpen(ctx, doc.ID)
	require.NoError(t, err)
	assert.Len(t, open, 1)

	err = env.reassign.SkipForNow(ctx, doc.ID, "unknown-note")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
