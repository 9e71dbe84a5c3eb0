package services

import (
	"context"
	"sync"
	"time"

	"github.com/lectern-labs/lectern-cli/internal/core/ports/driven"
	"github.com/lectern-labs/lectern-cli/internal/core/ports/driving"
	"github.com/lectern-labs/lectern-cli/internal/logger"
)

// DefaultAutosaveDelay is the debounce window for note drafts.
const DefaultAutosaveDelay = 2 * time.Second

// Ensure Autosave implements the interface.
var _ driving.AutosaveController = (*Autosave)(nil)

// Autosave coalesces note content writes. Each note debounces
// independently: queueing a draft restarts that note's timer, and only
// the most recently queued draft is ever persisted (last-write-wins).
type Autosave struct {
	store driven.WorkspaceStore
	delay time.Duration

	mu      sync.Mutex
	pending map[string]*draft
	closed  bool
}

// draft is the latest queued content for one note plus its timer.
type draft struct {
	content string
	timer   *time.Timer
}

// NewAutosave creates an autosave controller. A non-positive delay
// falls back to DefaultAutosaveDelay.
func NewAutosave(store driven.WorkspaceStore, delay time.Duration) *Autosave {
	if delay <= 0 {
		delay = DefaultAutosaveDelay
	}
	return &Autosave{
		store:   store,
		delay:   delay,
		pending: make(map[string]*draft),
	}
}

// Queue records the latest draft for a note and restarts its debounce
// timer. An earlier pending draft for the same note is overwritten
// without being persisted.
func (a *Autosave) Queue(noteID, content string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return
	}

	if d, ok := a.pending[noteID]; ok {
		d.timer.Stop()
		d.content = content
		d.timer = a.startTimer(noteID)
		return
	}
	a.pending[noteID] = &draft{
		content: content,
		timer:   a.startTimer(noteID),
	}
}

// startTimer arms the debounce timer for one note. Callers hold a.mu.
func (a *Autosave) startTimer(noteID string) *time.Timer {
	return time.AfterFunc(a.delay, func() {
		if err := a.Flush(context.Background(), noteID); err != nil {
			logger.Warn("autosave of note %s failed: %v", noteID, err)
		}
	})
}

// Flush persists the pending draft for one note immediately. A no-op
// when nothing is pending, so the timer path and an explicit flush can
// race without double-saving.
func (a *Autosave) Flush(ctx context.Context, noteID string) error {
	a.mu.Lock()
	d, ok := a.pending[noteID]
	if ok {
		d.timer.Stop()
		delete(a.pending, noteID)
	}
	a.mu.Unlock()

	if !ok {
		return nil
	}
	return a.store.Notes().UpdateContent(ctx, noteID, d.content)
}

// FlushAll persists every pending draft.
func (a *Autosave) FlushAll(ctx context.Context) error {
	a.mu.Lock()
	ids := make([]string, 0, len(a.pending))
	for id := range a.pending {
		ids = append(ids, id)
	}
	a.mu.Unlock()

	for _, id := range ids {
		if err := a.Flush(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// Close cancels all pending timers without flushing. Callers must
// flush explicitly if persistence on exit is required.
func (a *Autosave) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()

	for id, d := range a.pending {
		d.timer.Stop()
		delete(a.pending, id)
	}
	a.closed = true
}
