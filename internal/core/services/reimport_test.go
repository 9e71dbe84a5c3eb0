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

const bookPath = "/books/essay.md"

const bookV1 = `# Introduction
Opening thoughts on the subject.

# Argument
The central claim, stated plainly.

# Conclusion
Where this leaves us.
`

func importBook(t *testing.T, env *testEnv) *domain.Document {
	t.Helper()
	env.source.set(bookPath, bookV1, time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC))
	doc, err := env.library.Import(context.Background(), bookPath, "Essay")
	require.NoError(t, err)
	return doc
}

func sectionByAnchor(t *testing.T, sections []domain.Section, anchor string) domain.Section {
	t.Helper()
	for _, s := range sections {
		if s.AnchorKey == anchor {
			return s
		}
	}
	t.Fatalf("no section with anchor %q", anchor)
	return domain.Section{}
}

func TestImportCreatesFirstRevision(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	doc := importBook(t, env)
	require.NotNil(t, doc.CurrentRevisionID)

	rev, err := env.store.Revisions().Get(ctx, *doc.CurrentRevisionID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rev.Number)

	sections, err := env.library.Sections(ctx, doc.ID)
	require.NoError(t, err)
	require.Len(t, sections, 3)
	assert.Equal(t, "introduction#1", sections[0].AnchorKey)
	assert.Equal(t, "argument#1", sections[1].AnchorKey)
	assert.Equal(t, "conclusion#1", sections[2].AnchorKey)
	assert.Equal(t, []int{0, 1, 2}, []int{sections[0].OrderIndex, sections[1].OrderIndex, sections[2].OrderIndex})
	assert.Equal(t, 5, sections[0].WordCount)
}

func TestImportDefaultsTitleToFileName(t *testing.T) {
	env := setupTestEnv(t)
	env.source.set(bookPath, bookV1, time.Now())

	doc, err := env.library.Import(context.Background(), bookPath, "")
	require.NoError(t, err)
	assert.Equal(t, "essay.md", doc.Title)
}

func TestReimportUnchangedContentIsNoOp(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	doc := importBook(t, env)

	// mtime drift without byte changes must not create a revision.
	env.source.touch(bookPath, time.Date(2026, 2, 2, 9, 0, 0, 0, time.UTC))

	result, err := env.reimport.Reimport(ctx, doc.ID)
	require.NoError(t, err)
	assert.False(t, result.Changed)

	revs, err := env.store.Revisions().ListByDocument(ctx, doc.ID)
	require.NoError(t, err)
	assert.Len(t, revs, 1)
}

func TestReimportRemapsNotesByAnchor(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	doc := importBook(t, env)
	sections, err := env.library.Sections(ctx, doc.ID)
	require.NoError(t, err)
	argument := sectionByAnchor(t, sections, "argument#1")

	note, err := env.notes.Add(ctx, driving.NewNote{
		DocumentID: doc.ID,
		SectionID:  argument.ID,
		Content:    "the claim needs a source",
		Excerpt:    "central claim",
	})
	require.NoError(t, err)

	// New bytes, same headings: the note should follow its anchor.
	env.source.set(bookPath, `# Introduction
Rewritten opening.

# Argument
The claim, now with evidence.

# Conclusion
A stronger close.
`, time.Date(2026, 2, 3, 9, 0, 0, 0, time.UTC))

	result, err := env.reimport.Reimport(ctx, doc.ID)
	require.NoError(t, err)
	assert.True(t, result.Changed)
	assert.Equal(t, int64(2), result.RevisionNumber)
	assert.Equal(t, 3, result.SectionCount)
	assert.Equal(t, 1, result.NotesRemapped)
	assert.Zero(t, result.NotesQueued)

	got, err := env.notes.Get(ctx, note.ID)
	require.NoError(t, err)
	require.NotNil(t, got.SectionID)
	assert.NotEqual(t, argument.ID, *got.SectionID)

	newSection, err := env.store.Sections().Get(ctx, *got.SectionID)
	require.NoError(t, err)
	assert.Equal(t, "argument#1", newSection.AnchorKey)
	assert.Equal(t, result.RevisionID, newSection.RevisionID)

	// The old revision's sections are immutable and still present.
	oldSections, err := env.store.Sections().ListByRevision(ctx, argument.RevisionID)
	require.NoError(t, err)
	assert.Len(t, oldSections, 3)
}

func TestReimportQueuesNotesWithoutAnchorMatch(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	doc := importBook(t, env)
	sections, err := env.library.Sections(ctx, doc.ID)
	require.NoError(t, err)
	conclusion := sectionByAnchor(t, sections, "conclusion#1")

	note, err := env.notes.Add(ctx, driving.NewNote{
		DocumentID: doc.ID,
		SectionID:  conclusion.ID,
		Content:    "disagree with the ending",
	})
	require.NoError(t, err)

	// The conclusion heading disappears in the new revision.
	env.source.set(bookPath, `# Introduction
Opening thoughts on the subject.

# Argument
The central claim, restated.
`, time.Date(2026, 2, 4, 9, 0, 0, 0, time.UTC))

	result, err := env.reimport.Reimport(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.NotesQueued)
	assert.Equal(t, 0, result.NotesRemapped)

	got, err := env.notes.Get(ctx, note.ID)
	require.NoError(t, err)
	assert.Nil(t, got.SectionID)

	queued, err := env.reassign.ListOpen(ctx, doc.ID)
	require.NoError(t, err)
	require.Len(t, queued, 1)
	assert.Equal(t, note.ID, queued[0].Note.ID)
	assert.Equal(t, "conclusion#1", queued[0].Entry.OldAnchorKey)
	assert.Equal(t, "Conclusion", queued[0].Entry.OldHeading)
	assert.Equal(t, conclusion.RevisionID, queued[0].Entry.OldRevisionID)
	assert.Equal(t, conclusion.ID, queued[0].Entry.OldSectionID)
}

func TestReimportInvalidatesProvocations(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	doc := importBook(t, env)
	sections, err := env.library.Sections(ctx, doc.ID)
	require.NoError(t, err)

	_, err = env.provoke.Record(ctx, driving.NewProvocation{
		DocumentID: doc.ID,
		SectionID:  sections[0].ID,
		RequestID:  "req-1",
		Style:      domain.StyleSocratic,
		Content:    "What assumption does the opening smuggle in?",
	})
	require.NoError(t, err)

	env.source.set(bookPath, bookV1+"\nAn appended afterword line.\n",
		time.Date(2026, 2, 5, 9, 0, 0, 0, time.UTC))

	result, err := env.reimport.Reimport(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.ProvocationsInvalidated)

	active, err := env.provoke.ListActive(ctx, doc.ID)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestReimportMissingSourceFails(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	doc := importBook(t, env)
	delete(env.source.files, bookPath)

	_, err := env.reimport.Reimport(ctx, doc.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// No mutation happened.
	revs, err := env.store.Revisions().ListByDocument(ctx, doc.ID)
	require.NoError(t, err)
	assert.Len(t, revs, 1)
}

func TestReimportUnknownDocument(t *testing.T) {
	env := setupTestEnv(t)

	_, err := env.reimport.Reimport(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReimportRepeatedHeadingsKeepOrdinals(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	env.source.set(bookPath, `# Notes
First batch.

# Notes
Second batch.
`, time.Now())
	doc, err := env.library.Import(ctx, bookPath, "Notebook")
	require.NoError(t, err)

	sections, err := env.library.Sections(ctx, doc.ID)
	require.NoError(t, err)
	require.Len(t, sections, 2)
	assert.Equal(t, "notes#1", sections[0].AnchorKey)
	assert.Equal(t, "notes#2", sections[1].AnchorKey)

	note, err := env.notes.Add(ctx, driving.NewNote{
		DocumentID: doc.ID,
		SectionID:  sections[1].ID,
		Content:    "on the second batch",
	})
	require.NoError(t, err)

	// Both headings survive; the note must land on notes#2 again.
	env.source.set(bookPath, `# Notes
First batch, expanded.

# Notes
Second batch, expanded.
`, time.Now())
	result, err := env.reimport.Reimport(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.NotesRemapped)

	got, err := env.notes.Get(ctx, note.ID)
	require.NoError(t, err)
	require.NotNil(t, got.SectionID)

	landed, err := env.store.Sections().Get(ctx, *got.SectionID)
	require.NoError(t, err)
	assert.Equal(t, "notes#2", landed.AnchorKey)
}
