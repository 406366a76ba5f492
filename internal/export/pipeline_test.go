package export

import (
	"context"
	"errors"
	"image"
	"image/color"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fadcv/fadcv/pkg/models"
	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
)

type fakeNode struct {
	mu       sync.Mutex
	pins     int
	unpins   int
	closed   int
	pinWidth int
	img      image.Image
	rastErr  error
	block    chan struct{}
}

func (n *fakeNode) Pin(_ context.Context, width int) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pins++
	n.pinWidth = width
	return nil
}

func (n *fakeNode) Unpin(context.Context) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.unpins++
	return nil
}

func (n *fakeNode) Rasterize(context.Context, float64) (image.Image, error) {
	if n.block != nil {
		<-n.block
	}
	if n.rastErr != nil {
		return nil, n.rastErr
	}
	return n.img, nil
}

func (n *fakeNode) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.closed++
	return nil
}

type fakeSurface struct {
	node    *fakeNode
	openErr error
	html    string
}

func (s *fakeSurface) Open(_ context.Context, html, targetID string) (Node, error) {
	s.html = html
	if s.openErr != nil {
		return nil, s.openErr
	}
	if !strings.Contains(html, `id="`+targetID+`"`) {
		return nil, ErrRenderTargetMissing
	}
	return s.node, nil
}

type fakeAssembler struct {
	layout Layout
	title  string
	err    error
}

func (a *fakeAssembler) Assemble(_ image.Image, layout Layout, title string) ([]byte, error) {
	a.layout, a.title = layout, title
	if a.err != nil {
		return nil, a.err
	}
	return []byte("%PDF-fake"), nil
}

func solid(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 220, A: 255})
		}
	}
	return img
}

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestPipeline(s Surface, a Assembler) *Pipeline {
	return New(s, a, WithLogger(quietLogger()), WithTimeout(10*time.Second))
}

type capture struct {
	name string
	data []byte
}

func (c *capture) deliver(_ context.Context, name string, pdf []byte) (string, error) {
	c.name, c.data = name, pdf
	return "memory", nil
}

func TestExportSuccess(t *testing.T) {
	node := &fakeNode{img: solid(1400, 4333)}
	asm := &fakeAssembler{}
	p := newTestPipeline(&fakeSurface{node: node}, asm)

	doc := models.Default()
	doc.PersonalInfo.FullName = "Ada Lovelace"

	var out capture
	res, err := p.Export(context.Background(), doc, DeliverFunc(out.deliver))
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if res.Name != "CV - Ada Lovelace.pdf" || out.name != res.Name {
		t.Errorf("file name = %q / %q", res.Name, out.name)
	}
	if res.Pages != 3 || asm.layout.Pages() != 3 {
		t.Errorf("expected 3 pages, got %d", res.Pages)
	}
	if asm.title != "CV - Ada Lovelace" {
		t.Errorf("title = %q", asm.title)
	}
	if node.pins != 1 || node.unpins != 1 || node.closed != 1 {
		t.Errorf("pin/unpin/close = %d/%d/%d, want 1/1/1", node.pins, node.unpins, node.closed)
	}
	if node.pinWidth != 794 {
		t.Errorf("pinned width = %d, want 794", node.pinWidth)
	}
	if p.State() != Idle {
		t.Errorf("state = %v after export", p.State())
	}
}

func TestExportReportsStages(t *testing.T) {
	p := newTestPipeline(&fakeSurface{node: &fakeNode{img: solid(1400, 100)}}, &fakeAssembler{})

	var stages []Stage
	ctx := WithProgress(context.Background(), func(s Stage) { stages = append(stages, s) })
	var out capture
	if _, err := p.Export(ctx, models.Default(), DeliverFunc(out.deliver)); err != nil {
		t.Fatalf("Export: %v", err)
	}

	want := []Stage{StageRender, StageCapture, StageAssemble, StageDeliver}
	if diff := cmp.Diff(want, stages); diff != "" {
		t.Errorf("stages mismatch (-want +got):\n%s", diff)
	}
}

func TestExportRasterizeFailureRestoresNode(t *testing.T) {
	node := &fakeNode{rastErr: errors.New("canvas tainted")}
	p := newTestPipeline(&fakeSurface{node: node}, &fakeAssembler{})

	var out capture
	_, err := p.Export(context.Background(), models.Default(), DeliverFunc(out.deliver))
	if !errors.Is(err, ErrRasterize) {
		t.Fatalf("error = %v, want ErrRasterize", err)
	}
	if node.unpins != 1 || node.closed != 1 {
		t.Errorf("unpin/close = %d/%d, want exactly once each", node.unpins, node.closed)
	}
	if out.data != nil {
		t.Error("nothing should be delivered on failure")
	}
	if p.State() != Idle {
		t.Errorf("state = %v, want idle so the user can retry", p.State())
	}

	// immediate retry works
	node.rastErr = nil
	node.img = solid(10, 10)
	if _, err := p.Export(context.Background(), models.Default(), DeliverFunc(out.deliver)); err != nil {
		t.Errorf("retry failed: %v", err)
	}
}

func TestExportErrors(t *testing.T) {
	tests := []struct {
		name    string
		surface *fakeSurface
		asm     *fakeAssembler
		deliver DeliverFunc
		want    error
	}{
		{
			name:    "render target missing",
			surface: &fakeSurface{openErr: ErrRenderTargetMissing},
			asm:     &fakeAssembler{},
			want:    ErrRenderTargetMissing,
		},
		{
			name:    "browser failed to start",
			surface: &fakeSurface{openErr: errors.New("exec: chrome not found")},
			asm:     &fakeAssembler{},
			want:    ErrRasterize,
		},
		{
			name:    "empty capture",
			surface: &fakeSurface{node: &fakeNode{img: image.NewRGBA(image.Rect(0, 0, 0, 0))}},
			asm:     &fakeAssembler{},
			want:    ErrRasterize,
		},
		{
			name:    "assembly",
			surface: &fakeSurface{node: &fakeNode{img: solid(4, 4)}},
			asm:     &fakeAssembler{err: errors.New("out of memory")},
			want:    ErrAssemble,
		},
		{
			name:    "delivery",
			surface: &fakeSurface{node: &fakeNode{img: solid(4, 4)}},
			asm:     &fakeAssembler{},
			deliver: func(context.Context, string, []byte) (string, error) { return "", errors.New("disk full") },
			want:    ErrDeliver,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPipeline(tt.surface, tt.asm)
			dst := tt.deliver
			if dst == nil {
				dst = func(context.Context, string, []byte) (string, error) { return "memory", nil }
			}
			if _, err := p.Export(context.Background(), models.Default(), dst); !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
			if p.State() != Idle {
				t.Errorf("state = %v after failure", p.State())
			}
		})
	}
}

func TestExportRejectsConcurrentCall(t *testing.T) {
	node := &fakeNode{img: solid(4, 4), block: make(chan struct{})}
	p := newTestPipeline(&fakeSurface{node: node}, &fakeAssembler{})

	var calls int
	var mu sync.Mutex
	dst := DeliverFunc(func(context.Context, string, []byte) (string, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		return "memory", nil
	})

	done := make(chan error, 1)
	go func() {
		_, err := p.Export(context.Background(), models.Default(), dst)
		done <- err
	}()

	deadline := time.Now().Add(2 * time.Second)
	for p.State() != Exporting {
		if time.Now().After(deadline) {
			t.Fatal("first export never started")
		}
		time.Sleep(time.Millisecond)
	}

	if _, err := p.Export(context.Background(), models.Default(), dst); !errors.Is(err, ErrExportInProgress) {
		t.Errorf("second call error = %v, want ErrExportInProgress", err)
	}

	close(node.block)
	if err := <-done; err != nil {
		t.Fatalf("first export: %v", err)
	}
	if calls != 1 {
		t.Errorf("delivered %d times, want 1", calls)
	}
}

func TestExportIgnoresCallerCancellation(t *testing.T) {
	node := &fakeNode{img: solid(4, 4)}
	p := newTestPipeline(&fakeSurface{node: node}, &fakeAssembler{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.Export(ctx, models.Default(), DeliverFunc(func(ctx context.Context, _ string, _ []byte) (string, error) {
		return "memory", ctx.Err()
	})); err != nil {
		t.Errorf("export should not observe caller cancellation: %v", err)
	}
}

func TestExportRendersOffscreen(t *testing.T) {
	s := &fakeSurface{node: &fakeNode{img: solid(4, 4)}}
	p := newTestPipeline(s, &fakeAssembler{})

	if _, err := p.Export(context.Background(), models.Default(), DeliverFunc(func(context.Context, string, []byte) (string, error) {
		return "memory", nil
	})); err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !strings.Contains(s.html, "left: -10000px") {
		t.Error("export should load the page with the CV offscreen")
	}
}

func TestTitle(t *testing.T) {
	doc := models.Default()
	if got := Title(doc); got != "CV-FadCV" {
		t.Errorf("Title(empty) = %q", got)
	}
	doc.PersonalInfo.FullName = "  Grace Hopper "
	if got := Title(doc); got != "CV - Grace Hopper" {
		t.Errorf("Title = %q", got)
	}
}

func TestDirDeliverer(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	path, err := DirDeliverer{Dir: dir}.Deliver(context.Background(), "CV - A/B.pdf", []byte("%PDF-x"))
	if err != nil {
		t.Fatalf("Deliver: %v", err)
	}
	if filepath.Base(path) != "CV - A-B.pdf" {
		t.Errorf("path = %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "%PDF-x" {
		t.Errorf("file content = %q, %v", data, err)
	}
}

func TestPDFAssembler(t *testing.T) {
	img := solid(140, 433)
	pdf, err := PDFAssembler{Creator: "fadcv"}.Assemble(img, Paginate(140, 433), "CV - Test")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if !strings.HasPrefix(string(pdf), "%PDF-") {
		t.Fatal("output is not a PDF")
	}
	if !strings.Contains(string(pdf), "/Count 3") {
		t.Error("expected a three page document")
	}

	if _, err := (PDFAssembler{}).Assemble(img, Layout{}, "x"); err == nil {
		t.Error("empty layout should fail")
	}
}

// chromeAvailable reports whether a Chrome/Chromium executable is in PATH.
func chromeAvailable() bool {
	for _, name := range []string{
		"chromium-browser", "chromium", "google-chrome",
		"google-chrome-stable", "chrome",
	} {
		if _, err := exec.LookPath(name); err == nil {
			return true
		}
	}
	return false
}

func skipIfNoChrome(t *testing.T) {
	t.Helper()
	if !chromeAvailable() {
		t.Skip("skipping: Chrome/Chromium not found in PATH")
	}
}

func TestChromeExport(t *testing.T) {
	skipIfNoChrome(t)

	p := New(NewChromeSurface(WithNoSandbox(), WithChromeLogger(quietLogger())), PDFAssembler{},
		WithLogger(quietLogger()), WithTimeout(time.Minute))

	doc := models.Default()
	doc.PersonalInfo.FullName = "Ada Lovelace"
	doc.Summary.Text = "First programmer."

	res, err := p.Export(context.Background(), doc, DirDeliverer{Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	data, err := os.ReadFile(res.Location)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.HasPrefix(string(data), "%PDF-") {
		t.Error("export is not a PDF")
	}
	if res.Pages < 1 {
		t.Errorf("pages = %d", res.Pages)
	}
}

func TestChromeRenderTargetMissing(t *testing.T) {
	skipIfNoChrome(t)

	s := NewChromeSurface(WithNoSandbox(), WithChromeLogger(quietLogger()))
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	_, err := s.Open(ctx, "<html><body><p>nothing here</p></body></html>", "cv-preview")
	if !errors.Is(err, ErrRenderTargetMissing) {
		t.Errorf("error = %v, want ErrRenderTargetMissing", err)
	}
}
