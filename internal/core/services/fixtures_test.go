package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lectern-labs/lectern-cli/internal/adapters/driven/storage/sqlite"
	"github.com/lectern-labs/lectern-cli/internal/core/domain"
	"github.com/lectern-labs/lectern-cli/internal/core/ports/driven"
)

// fakeSource serves in-memory files keyed by path.
type fakeSource struct {
	files  map[string][]byte
	mtimes map[string]time.Time
}

var _ driven.SourceReader = (*fakeSource)(nil)

func newFakeSource() *fakeSource {
	return &fakeSource{
		files:  make(map[string][]byte),
		mtimes: make(map[string]time.Time),
	}
}

func (f *fakeSource) set(path, content string, mtime time.Time) {
	f.files[path] = []byte(content)
	f.mtimes[path] = mtime
}

// touch bumps the mtime without changing the bytes.
func (f *fakeSource) touch(path string, mtime time.Time) {
	f.mtimes[path] = mtime
}

func (f *fakeSource) Fingerprint(_ context.Context, path string) (domain.Fingerprint, error) {
	content, ok := f.files[path]
	if !ok {
		return domain.Fingerprint{}, domain.ErrNotFound
	}
	sum := sha256.Sum256(content)
	return domain.Fingerprint{
		SizeBytes:   int64(len(content)),
		ModTime:     f.mtimes[path],
		ContentHash: hex.EncodeToString(sum[:]),
	}, nil
}

func (f *fakeSource) Read(ctx context.Context, path string) ([]byte, domain.Fingerprint, error) {
	fp, err := f.Fingerprint(ctx, path)
	if err != nil {
		return nil, domain.Fingerprint{}, err
	}
	return f.files[path], fp, nil
}

// headingSectioner splits content on lines starting with "# ". Text
// before the first heading becomes a section with an empty heading.
type headingSectioner struct{}

var _ driven.Sectioner = (*headingSectioner)(nil)

func (headingSectioner) Section(_ context.Context, content []byte) ([]domain.SourceSection, error) {
	var sections []domain.SourceSection
	var current *domain.SourceSection

	for _, line := range strings.Split(string(content), "\n") {
		if heading, ok := strings.CutPrefix(line, "# "); ok {
			if current != nil {
				current.Content = strings.TrimSpace(current.Content)
				sections = append(sections, *current)
			}
			current = &domain.SourceSection{Heading: heading}
			continue
		}
		if current == nil {
			if strings.TrimSpace(line) == "" {
				continue
			}
			current = &domain.SourceSection{}
		}
		current.Content += line + "\n"
	}
	if current != nil {
		current.Content = strings.TrimSpace(current.Content)
		sections = append(sections, *current)
	}
	return sections, nil
}

// singleSectionerRegistry serves one sectioner for every path.
type singleSectionerRegistry struct {
	sectioner driven.Sectioner
}

var _ driven.SectionerRegistry = (*singleSectionerRegistry)(nil)

func (r *singleSectionerRegistry) ForPath(string) (driven.Sectioner, error) {
	return r.sectioner, nil
}

// testEnv bundles a real store with fake source plumbing and all the
// services under test.
type testEnv struct {
	store    *sqlite.Store
	source   *fakeSource
	library  *LibraryService
	reimport *ReimportService
	reassign *ReassignmentService
	notes    *NoteService
	provoke  *ProvocationService
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store, err := sqlite.NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	source := newFakeSource()
	registry := &singleSectionerRegistry{sectioner: headingSectioner{}}

	return &testEnv{
		store:    store,
		source:   source,
		library:  NewLibraryService(store, source, registry),
		reimport: NewReimportService(store, source, registry),
		reassign: NewReassignmentService(store),
		notes:    NewNoteService(store),
		provoke:  NewProvocationService(store),
	}
}
