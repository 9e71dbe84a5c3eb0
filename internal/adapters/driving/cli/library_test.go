package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lectern-labs/lectern-cli/internal/core/domain"
	"github.com/lectern-labs/lectern-cli/internal/core/ports/driving"
)

// fakeLibrary is a canned LibraryService for command tests.
type fakeLibrary struct {
	docs     []domain.Document
	sections []domain.Section
	imported *domain.Document
	removed  []string
}

var _ driving.LibraryService = (*fakeLibrary)(nil)

func (f *fakeLibrary) Import(_ context.Context, path, title string) (*domain.Document, error) {
	doc := &domain.Document{ID: "doc-new", Title: title, SourcePath: path}
	if title == "" {
		doc.Title = path
	}
	f.imported = doc
	return doc, nil
}

func (f *fakeLibrary) Get(_ context.Context, documentID string) (*domain.Document, error) {
	for i := range f.docs {
		if f.docs[i].ID == documentID {
			return &f.docs[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeLibrary) List(context.Context) ([]domain.Document, error) {
	return f.docs, nil
}

func (f *fakeLibrary) Locate(context.Context, string, string) error {
	return nil
}

func (f *fakeLibrary) Sections(context.Context, string) ([]domain.Section, error) {
	return f.sections, nil
}

func (f *fakeLibrary) Remove(_ context.Context, documentID string) error {
	f.removed = append(f.removed, documentID)
	return nil
}

func execute(t *testing.T, args ...string) string {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	require.NoError(t, rootCmd.Execute())
	return buf.String()
}

func TestLibraryListEmpty(t *testing.T) {
	original := libraryService
	libraryService = &fakeLibrary{}
	defer func() { libraryService = original }()

	out := execute(t, "library", "list")
	assert.Contains(t, out, "The library is empty")
}

func TestLibraryListShowsDocuments(t *testing.T) {
	original := libraryService
	libraryService = &fakeLibrary{docs: []domain.Document{
		{ID: "doc-1", Title: "Essay", SourcePath: "/books/essay.md"},
	}}
	defer func() { libraryService = original }()

	out := execute(t, "library", "list")
	assert.Contains(t, out, "doc-1")
	assert.Contains(t, out, "Essay")
	assert.Contains(t, out, "Total: 1 documents")
}

func TestLibrarySectionsOutput(t *testing.T) {
	original := libraryService
	libraryService = &fakeLibrary{sections: []domain.Section{
		{ID: "sec-1", AnchorKey: "introduction#1", Heading: "Introduction", OrderIndex: 0, WordCount: 42},
	}}
	defer func() { libraryService = original }()

	out := execute(t, "library", "sections", "doc-1")
	assert.Contains(t, out, "introduction#1")
	assert.Contains(t, out, "42 words")
}

func TestLibraryCommandsRequireService(t *testing.T) {
	original := libraryService
	libraryService = nil
	defer func() { libraryService = original }()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"library", "list"})
	defer rootCmd.SetArgs(nil)

	assert.Error(t, rootCmd.Execute())
}
