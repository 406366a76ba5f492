// Package export turns a CV document into a paginated A4 PDF: the document
// is rendered to HTML, the CV element is pinned to a fixed 794px layout,
// rasterized at 2x, sliced onto A4 pages and handed to a Deliverer.
package export

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/fadcv/fadcv/internal/render"
	"github.com/fadcv/fadcv/pkg/models"
	"github.com/sirupsen/logrus"
)

// Scale is the device pixel ratio used for rasterization
const Scale = 2

// State of the pipeline
type State int

const (
	Idle State = iota
	Exporting
)

func (s State) String() string {
	if s == Exporting {
		return "exporting"
	}
	return "idle"
}

// Surface loads rendered HTML and returns the element to capture
type Surface interface {
	// Open loads html and locates the element with id targetID. It returns
	// ErrRenderTargetMissing when there is no such element.
	Open(ctx context.Context, html, targetID string) (Node, error)
}

// Node is a located render target
type Node interface {
	// Pin fixes the node at the top-left corner with the given CSS width.
	Pin(ctx context.Context, width int) error
	// Unpin moves the node back offscreen.
	Unpin(ctx context.Context) error
	Rasterize(ctx context.Context, scale float64) (image.Image, error)
	Close() error
}

// Assembler builds a PDF from the capture and its page layout
type Assembler interface {
	Assemble(img image.Image, layout Layout, title string) ([]byte, error)
}

// Deliverer hands the finished file to the user. It returns where the file
// went (a path, a URL, "download").
type Deliverer interface {
	Deliver(ctx context.Context, name string, pdf []byte) (string, error)
}

// DeliverFunc adapts a function to Deliverer
type DeliverFunc func(ctx context.Context, name string, pdf []byte) (string, error)

func (f DeliverFunc) Deliver(ctx context.Context, name string, pdf []byte) (string, error) {
	return f(ctx, name, pdf)
}

// Result describes a finished export
type Result struct {
	Name     string
	Location string
	Pages    int
	Size     int
}

// Stage is a step of an export, reported to a progress function
type Stage int

const (
	StageRender Stage = iota
	StageCapture
	StageAssemble
	StageDeliver
)

func (s Stage) String() string {
	switch s {
	case StageCapture:
		return "capturing"
	case StageAssemble:
		return "assembling"
	case StageDeliver:
		return "delivering"
	default:
		return "rendering"
	}
}

type progressKey struct{}

// WithProgress returns a context that makes Export call fn as each stage
// starts. fn runs on the exporting goroutine.
func WithProgress(ctx context.Context, fn func(Stage)) context.Context {
	return context.WithValue(ctx, progressKey{}, fn)
}

func progressFrom(ctx context.Context) func(Stage) {
	if fn, ok := ctx.Value(progressKey{}).(func(Stage)); ok && fn != nil {
		return fn
	}
	return func(Stage) {}
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithTimeout bounds a whole export. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(p *Pipeline) { p.timeout = d }
}

// WithLogger sets the pipeline logger
func WithLogger(log logrus.FieldLogger) Option {
	return func(p *Pipeline) { p.log = log }
}

// Pipeline runs at most one export at a time
type Pipeline struct {
	surface   Surface
	assembler Assembler
	timeout   time.Duration
	log       logrus.FieldLogger

	mu    sync.Mutex
	state State
}

// New returns an idle pipeline
func New(surface Surface, assembler Assembler, opts ...Option) *Pipeline {
	p := &Pipeline{
		surface:   surface,
		assembler: assembler,
		log:       logrus.StandardLogger(),
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// State returns the current pipeline state
func (p *Pipeline) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Pipeline) begin() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == Exporting {
		return false
	}
	p.state = Exporting
	return true
}

func (p *Pipeline) end() {
	p.mu.Lock()
	p.state = Idle
	p.mu.Unlock()
}

// Export renders doc and delivers it as "<title>.pdf". A call made while
// another export runs returns ErrExportInProgress. Cancelling ctx does not
// stop an export that has started; only the pipeline timeout does.
func (p *Pipeline) Export(ctx context.Context, doc models.Document, dst Deliverer) (*Result, error) {
	if !p.begin() {
		return nil, ErrExportInProgress
	}
	defer p.end()

	progress := progressFrom(ctx)
	ctx = context.WithoutCancel(ctx)
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	title := Title(doc)
	log := p.log.WithField("title", title)
	start := time.Now()

	progress(StageRender)
	html, err := render.Render(doc, render.Options{Offscreen: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRasterize, err)
	}

	progress(StageCapture)
	img, err := p.capture(ctx, html, log)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	layout := Paginate(b.Dx(), b.Dy())
	if layout.Pages() == 0 {
		return nil, fmt.Errorf("%w: empty capture", ErrRasterize)
	}

	progress(StageAssemble)
	pdf, err := p.assembler.Assemble(img, layout, title)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssemble, err)
	}

	progress(StageDeliver)
	name := title + ".pdf"
	loc, err := dst.Deliver(ctx, name, pdf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeliver, err)
	}

	log.WithFields(logrus.Fields{
		"pages":    layout.Pages(),
		"bytes":    len(pdf),
		"location": loc,
		"elapsed":  time.Since(start).Round(time.Millisecond),
	}).Info("export finished")

	return &Result{Name: name, Location: loc, Pages: layout.Pages(), Size: len(pdf)}, nil
}

// capture pins the render target, rasterizes it and always moves it back,
// whether or not rasterization succeeded.
func (p *Pipeline) capture(ctx context.Context, html string, log logrus.FieldLogger) (image.Image, error) {
	node, err := p.surface.Open(ctx, html, render.RootID)
	if err != nil {
		if errors.Is(err, ErrRenderTargetMissing) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrRasterize, err)
	}
	defer func() {
		if err := node.Close(); err != nil {
			log.WithError(err).Warn("closing render surface")
		}
	}()

	unpin := sync.OnceFunc(func() {
		if err := node.Unpin(context.WithoutCancel(ctx)); err != nil {
			log.WithError(err).Warn("restoring render target")
		}
	})
	defer unpin()

	if err := node.Pin(ctx, render.PageWidth); err != nil {
		if errors.Is(err, ErrRenderTargetMissing) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrRasterize, err)
	}
	img, err := node.Rasterize(ctx, Scale)
	unpin()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRasterize, err)
	}
	return img, nil
}
