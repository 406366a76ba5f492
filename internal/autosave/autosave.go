// Package autosave debounces document writes: every change reschedules a
// single pending save, so a burst of edits results in one write once the
// document has been quiet for the configured delay.
package autosave

import (
	"context"
	"sync"
	"time"

	"github.com/fadcv/fadcv/pkg/models"
)

// DefaultDelay is the quiescence window before a pending save fires
const DefaultDelay = 600 * time.Millisecond

// Status mirrors the editor's save indicator
type Status int

const (
	// Idle means nothing has been written since the indicator was cleared.
	Idle Status = iota
	// Saving means a save is scheduled or a write did not succeed.
	Saving
	// Saved means the most recent scheduled document was written.
	Saved
)

func (s Status) String() string {
	switch s {
	case Saving:
		return "saving"
	case Saved:
		return "saved"
	default:
		return "idle"
	}
}

// Saver writes a document. It reports whether the write succeeded.
type Saver interface {
	Save(ctx context.Context, doc models.Document) bool
}

// SaverFunc adapts a function to Saver
type SaverFunc func(ctx context.Context, doc models.Document) bool

func (f SaverFunc) Save(ctx context.Context, doc models.Document) bool { return f(ctx, doc) }

// Debouncer schedules trailing-edge saves
type Debouncer struct {
	saver Saver
	delay time.Duration

	// writeMu serializes writes against Cancel
	writeMu sync.Mutex

	mu      sync.Mutex
	timer   *time.Timer
	gen     uint64
	epoch   uint64
	pending *models.Document
	status  Status
}

// New returns a Debouncer writing through saver. A non-positive delay uses
// DefaultDelay.
func New(saver Saver, delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer{saver: saver, delay: delay}
}

// Schedule cancels any pending save and schedules doc to be written after
// the debounce delay.
func (d *Debouncer) Schedule(doc models.Document) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()
	d.gen++
	gen := d.gen
	d.pending = &doc
	d.status = Saving
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen) })
}

// Cancel drops the pending save, if any. A write already in progress is
// waited for, and a write that has not reached the store yet is discarded,
// so nothing older than the cancellation lands after Cancel returns.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	d.stopLocked()
	d.gen++
	d.epoch++
	d.pending = nil
	d.status = Idle
	d.mu.Unlock()

	d.writeMu.Lock()
	d.writeMu.Unlock()
}

// Flush writes the pending document immediately. It reports false when
// there was nothing to write or the write failed.
func (d *Debouncer) Flush() bool {
	d.mu.Lock()
	d.stopLocked()
	d.gen++
	gen, epoch := d.gen, d.epoch
	doc := d.pending
	d.pending = nil
	d.mu.Unlock()

	if doc == nil {
		return false
	}
	return d.write(*doc, gen, epoch)
}

// Pending reports whether a save is scheduled
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}

// Status returns the current save indicator
func (d *Debouncer) Status() Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.status
}

func (d *Debouncer) stopLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || d.pending == nil {
		// superseded after the timer already fired
		d.mu.Unlock()
		return
	}
	doc := *d.pending
	epoch := d.epoch
	d.pending = nil
	d.timer = nil
	d.mu.Unlock()

	d.write(doc, gen, epoch)
}

func (d *Debouncer) write(doc models.Document, gen, epoch uint64) bool {
	d.writeMu.Lock()
	defer d.writeMu.Unlock()

	d.mu.Lock()
	cancelled := epoch != d.epoch
	d.mu.Unlock()
	if cancelled {
		return false
	}

	ok := d.saver.Save(context.Background(), doc)

	d.mu.Lock()
	defer d.mu.Unlock()
	// a newer Schedule owns the indicator now
	if ok && gen == d.gen && d.pending == nil {
		d.status = Saved
	}
	return ok
}
