package workspace

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/fadcv/fadcv/internal/autosave"
	"github.com/fadcv/fadcv/internal/database"
	"github.com/fadcv/fadcv/internal/storage"
	"github.com/fadcv/fadcv/pkg/models"
	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
)

// newTestStore returns a store backed by a temporary sqlite database
func newTestStore(t *testing.T) *storage.Store {
	t.Helper()
	db, err := database.Open(t.TempDir())
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	log := logrus.New()
	log.SetOutput(io.Discard)
	return storage.New(database.NewKV(db), log)
}

func TestUpdatePersistsAfterFlush(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	ws := Open(ctx, store, time.Hour)

	doc, err := ws.Update(func(d models.Document) (models.Document, error) {
		d.PersonalInfo.FullName = "Ada Lovelace"
		d.Skill = append(d.Skill, models.Skill{Name: "Go", Level: 11, Category: "Magic"})
		return d, nil
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if doc.Skill[0].ID == "" || doc.Skill[0].Level != models.MaxSkillLevel || doc.Skill[0].Category != models.CategoryOther {
		t.Errorf("update was not normalized: %+v", doc.Skill[0])
	}
	if ws.SaveStatus() != autosave.Saving {
		t.Errorf("status = %v, want saving", ws.SaveStatus())
	}

	if !ws.Flush() {
		t.Fatal("Flush reported failure")
	}
	if ws.SaveStatus() != autosave.Saved {
		t.Errorf("status = %v, want saved", ws.SaveStatus())
	}
	if diff := cmp.Diff(doc, store.Load(ctx)); diff != "" {
		t.Errorf("stored document mismatch (-want +got):\n%s", diff)
	}
}

func TestUpdateErrorLeavesDocument(t *testing.T) {
	ws := Open(context.Background(), newTestStore(t), time.Hour)
	before := ws.Document()

	boom := errors.New("boom")
	_, err := ws.Update(func(d models.Document) (models.Document, error) {
		d.PersonalInfo.FullName = "half applied"
		return d, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Update error = %v, want boom", err)
	}
	if diff := cmp.Diff(before, ws.Document()); diff != "" {
		t.Errorf("document changed after failed update (-want +got):\n%s", diff)
	}
	if ws.SaveStatus() != autosave.Idle {
		t.Errorf("failed update should not schedule a save, status = %v", ws.SaveStatus())
	}
}

func TestDocumentIsSnapshot(t *testing.T) {
	ws := Open(context.Background(), newTestStore(t), time.Hour)

	snap := ws.Document()
	snap.SectionOrder[0].Visible = false
	if !ws.Document().SectionOrder[0].Visible {
		t.Error("mutating a snapshot changed the workspace")
	}
}

func TestResetPurgesStorage(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	ws := Open(ctx, store, time.Hour)

	ws.Update(func(d models.Document) (models.Document, error) {
		d.Summary.Text = "saved"
		return d, nil
	})
	ws.Flush()

	ws.Update(func(d models.Document) (models.Document, error) {
		d.Summary.Text = "pending"
		return d, nil
	})
	got := ws.Reset(ctx)

	if diff := cmp.Diff(models.Default(), got); diff != "" {
		t.Errorf("Reset should return the default document (-want +got):\n%s", diff)
	}
	if ws.Flush() {
		t.Error("pending save survived Reset")
	}
	if diff := cmp.Diff(models.Default(), store.Load(ctx)); diff != "" {
		t.Errorf("storage not purged (-want +got):\n%s", diff)
	}
}

func TestReopenLoadsSavedDocument(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	ws := Open(ctx, store, 10*time.Millisecond)
	ws.Replace(func() models.Document {
		d := models.Default()
		d.Settings.Template = models.TemplateCreative
		return d
	}())

	deadline := time.Now().Add(2 * time.Second)
	for ws.SaveStatus() != autosave.Saved {
		if time.Now().After(deadline) {
			t.Fatal("debounced save never completed")
		}
		time.Sleep(5 * time.Millisecond)
	}

	if got := Open(ctx, store, time.Hour).Document().Settings.Template; got != models.TemplateCreative {
		t.Errorf("reopened template = %q, want creative", got)
	}
}

// gatedBlobs blocks the first Set until release is closed
type gatedBlobs struct {
	mu      sync.Mutex
	data    map[string]string
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (g *gatedBlobs) Get(_ context.Context, key string) (string, bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	v, ok := g.data[key]
	return v, ok, nil
}

func (g *gatedBlobs) Set(_ context.Context, key, value string) error {
	g.once.Do(func() { close(g.entered) })
	<-g.release
	g.mu.Lock()
	defer g.mu.Unlock()
	g.data[key] = value
	return nil
}

func (g *gatedBlobs) Delete(_ context.Context, key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.data, key)
	return nil
}

func TestResetDuringSaveStaysCleared(t *testing.T) {
	ctx := context.Background()
	blobs := &gatedBlobs{data: map[string]string{}, entered: make(chan struct{}), release: make(chan struct{})}
	log := logrus.New()
	log.SetOutput(io.Discard)
	store := storage.New(blobs, log)
	ws := Open(ctx, store, 5*time.Millisecond)

	ws.Update(func(d models.Document) (models.Document, error) {
		d.PersonalInfo.FullName = "Stale Name"
		return d, nil
	})
	<-blobs.entered

	done := make(chan struct{})
	go func() {
		ws.Reset(ctx)
		close(done)
	}()
	select {
	case <-done:
		t.Fatal("Reset returned before the running save finished")
	case <-time.After(30 * time.Millisecond):
	}

	close(blobs.release)
	<-done

	if got := store.Load(ctx).PersonalInfo.FullName; got != "" {
		t.Errorf("persisted fullName after Reset = %q, want empty", got)
	}
	if got := ws.Document().PersonalInfo.FullName; got != "" {
		t.Errorf("in-memory fullName after Reset = %q, want empty", got)
	}
}
