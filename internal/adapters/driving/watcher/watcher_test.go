package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lectern-labs/lectern-cli/internal/core/ports/driving"
)

// recordingReimport counts Reimport calls per document.
type recordingReimport struct {
	mu    sync.Mutex
	calls map[string]int
}

func (r *recordingReimport) Reimport(_ context.Context, documentID string) (*driving.ReimportResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.calls == nil {
		r.calls = make(map[string]int)
	}
	r.calls[documentID]++
	return &driving.ReimportResult{DocumentID: documentID, Changed: true, RevisionNumber: 2}, nil
}

func (r *recordingReimport) count(documentID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[documentID]
}

func TestWatcherTriggersReimportOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	require.NoError(t, os.WriteFile(path, []byte("# One\n"), 0600))

	reimport := &recordingReimport{}
	w, err := New(reimport, 20*time.Millisecond)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.Add(path, "doc-1"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx) //nolint:errcheck

	require.NoError(t, os.WriteFile(path, []byte("# One\nmore\n"), 0600))

	require.Eventually(t, func() bool {
		return reimport.count("doc-1") >= 1
	}, 3*time.Second, 20*time.Millisecond)
}

func TestWatcherIgnoresUnregisteredFiles(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, "watched.md")
	other := filepath.Join(dir, "other.md")
	require.NoError(t, os.WriteFile(watched, []byte("a"), 0600))

	reimport := &recordingReimport{}
	w, err := New(reimport, 20*time.Millisecond)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.Add(watched, "doc-1"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx) //nolint:errcheck

	require.NoError(t, os.WriteFile(other, []byte("b"), 0600))

	time.Sleep(200 * time.Millisecond)
	require.Zero(t, reimport.count("doc-1"))
}
