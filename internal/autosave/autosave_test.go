package autosave

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/fadcv/fadcv/pkg/models"
)

type recordingSaver struct {
	mu     sync.Mutex
	writes []models.Document
	fail   bool
}

func (r *recordingSaver) Save(_ context.Context, doc models.Document) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes = append(r.writes, doc)
	return !r.fail
}

func (r *recordingSaver) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.writes)
}

func (r *recordingSaver) last() models.Document {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writes[len(r.writes)-1]
}

func named(name string) models.Document {
	d := models.Default()
	d.PersonalInfo.FullName = name
	return d
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestBurstProducesSingleWrite(t *testing.T) {
	saver := &recordingSaver{}
	d := New(saver, 30*time.Millisecond)

	for _, name := range []string{"A", "Ad", "Ada"} {
		d.Schedule(named(name))
	}
	if d.Status() != Saving {
		t.Errorf("status = %v, want saving", d.Status())
	}

	waitFor(t, func() bool { return saver.count() > 0 })
	time.Sleep(60 * time.Millisecond)

	if saver.count() != 1 {
		t.Fatalf("expected exactly one write, got %d", saver.count())
	}
	if got := saver.last().PersonalInfo.FullName; got != "Ada" {
		t.Errorf("wrote %q, want the last scheduled document", got)
	}
	waitFor(t, func() bool { return d.Status() == Saved })
}

func TestSeparateWindowsWriteSeparately(t *testing.T) {
	saver := &recordingSaver{}
	d := New(saver, 20*time.Millisecond)

	d.Schedule(named("one"))
	waitFor(t, func() bool { return saver.count() == 1 })
	d.Schedule(named("two"))
	waitFor(t, func() bool { return saver.count() == 2 })
}

func TestCancelDropsPendingSave(t *testing.T) {
	saver := &recordingSaver{}
	d := New(saver, 20*time.Millisecond)

	d.Schedule(named("x"))
	d.Cancel()
	time.Sleep(60 * time.Millisecond)

	if saver.count() != 0 {
		t.Errorf("cancelled save was written %d times", saver.count())
	}
	if d.Pending() || d.Status() != Idle {
		t.Errorf("pending=%v status=%v after cancel", d.Pending(), d.Status())
	}
}

// blockingSaver holds every Save until release is closed
type blockingSaver struct {
	recordingSaver
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (b *blockingSaver) Save(ctx context.Context, doc models.Document) bool {
	b.once.Do(func() { close(b.entered) })
	<-b.release
	return b.recordingSaver.Save(ctx, doc)
}

func TestCancelWaitsForInFlightWrite(t *testing.T) {
	saver := &blockingSaver{entered: make(chan struct{}), release: make(chan struct{})}
	d := New(saver, 5*time.Millisecond)

	d.Schedule(named("stale"))
	<-saver.entered

	done := make(chan struct{})
	go func() {
		d.Cancel()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("Cancel returned while a write was in progress")
	case <-time.After(30 * time.Millisecond):
	}

	close(saver.release)
	<-done
	if saver.count() != 1 {
		t.Errorf("in-flight write count = %d, want 1", saver.count())
	}
	if d.Status() != Idle {
		t.Errorf("status = %v after cancel, want idle", d.Status())
	}
}

func TestFlushWritesImmediately(t *testing.T) {
	saver := &recordingSaver{}
	d := New(saver, time.Hour)

	if d.Flush() {
		t.Error("Flush with nothing pending should report false")
	}

	d.Schedule(named("now"))
	if !d.Flush() {
		t.Fatal("Flush reported failure")
	}
	if saver.count() != 1 || d.Pending() {
		t.Errorf("count=%d pending=%v after flush", saver.count(), d.Pending())
	}
	if d.Status() != Saved {
		t.Errorf("status = %v, want saved", d.Status())
	}
}

func TestFailedSaveKeepsSavingStatus(t *testing.T) {
	saver := &recordingSaver{fail: true}
	d := New(saver, 10*time.Millisecond)

	d.Schedule(named("x"))
	waitFor(t, func() bool { return saver.count() == 1 })
	time.Sleep(10 * time.Millisecond)

	if d.Status() != Saving {
		t.Errorf("status = %v, a failed write must not confirm", d.Status())
	}
}

func TestStatusString(t *testing.T) {
	tests := map[Status]string{Idle: "idle", Saving: "saving", Saved: "saved"}
	for s, want := range tests {
		if s.String() != want {
			t.Errorf("%d.String() = %q, want %q", s, s.String(), want)
		}
	}
}
