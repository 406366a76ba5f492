// Package workspace owns the in-memory CV document for a session. Every
// mutation replaces the whole document and schedules a debounced save.
package workspace

import (
	"context"
	"sync"
	"time"

	"github.com/fadcv/fadcv/internal/autosave"
	"github.com/fadcv/fadcv/internal/storage"
	"github.com/fadcv/fadcv/pkg/models"
)

// Workspace is the single writer of the CV document
type Workspace struct {
	store *storage.Store
	saver *autosave.Debouncer

	mu  sync.Mutex
	doc models.Document
}

// Open loads the stored document (or the default one) into a new workspace
func Open(ctx context.Context, store *storage.Store, delay time.Duration) *Workspace {
	return &Workspace{
		store: store,
		saver: autosave.New(store, delay),
		doc:   store.Load(ctx),
	}
}

// Document returns a snapshot of the current document
func (w *Workspace) Document() models.Document {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.doc.Clone()
}

// Update applies fn to a snapshot of the document. When fn succeeds its
// result replaces the document and a save is scheduled; on error the
// document is left unchanged.
func (w *Workspace) Update(fn func(models.Document) (models.Document, error)) (models.Document, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	next, err := fn(w.doc.Clone())
	if err != nil {
		return w.doc.Clone(), err
	}
	w.doc = next.Normalize(storage.GenerateID)
	w.saver.Schedule(w.doc.Clone())
	return w.doc.Clone(), nil
}

// Replace swaps in an entire document, e.g. one imported from a file
func (w *Workspace) Replace(doc models.Document) models.Document {
	next, _ := w.Update(func(models.Document) (models.Document, error) { return doc, nil })
	return next
}

// Reset discards the document and purges persisted storage
func (w *Workspace) Reset(ctx context.Context) models.Document {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.saver.Cancel()
	w.store.Clear(ctx)
	w.doc = models.Default()
	return w.doc.Clone()
}

// SaveStatus returns the autosave indicator
func (w *Workspace) SaveStatus() autosave.Status {
	return w.saver.Status()
}

// Flush writes any pending change immediately
func (w *Workspace) Flush() bool {
	return w.saver.Flush()
}

// Close flushes the pending save. It reports false only when a pending
// write failed.
func (w *Workspace) Close() bool {
	if !w.saver.Pending() {
		return true
	}
	return w.saver.Flush()
}
