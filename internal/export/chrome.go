package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/sirupsen/logrus"
)

type chromeConfig struct {
	chromePath   string
	noSandbox    bool
	autoDownload bool
	log          logrus.FieldLogger
}

// ChromeOption configures a ChromeSurface
type ChromeOption func(*chromeConfig)

// WithChromePath sets the Chrome or Chromium executable. By default the
// standard install locations are searched.
func WithChromePath(path string) ChromeOption {
	return func(c *chromeConfig) { c.chromePath = path }
}

// WithNoSandbox disables the Chrome sandbox, needed when running as root
func WithNoSandbox() ChromeOption {
	return func(c *chromeConfig) { c.noSandbox = true }
}

// WithAutoDownload fetches a Chromium build into the rod cache when no
// executable path is configured.
func WithAutoDownload() ChromeOption {
	return func(c *chromeConfig) { c.autoDownload = true }
}

// WithChromeLogger receives browser protocol errors
func WithChromeLogger(log logrus.FieldLogger) ChromeOption {
	return func(c *chromeConfig) { c.log = log }
}

// ChromeSurface renders pages in headless Chrome. Each Open starts its own
// browser, torn down by Node.Close.
type ChromeSurface struct {
	cfg chromeConfig
}

// NewChromeSurface returns a surface with the given options
func NewChromeSurface(opts ...ChromeOption) *ChromeSurface {
	cfg := chromeConfig{log: logrus.StandardLogger()}
	for _, o := range opts {
		o(&cfg)
	}
	return &ChromeSurface{cfg: cfg}
}

func (s *ChromeSurface) execPath() (string, error) {
	if s.cfg.chromePath != "" || !s.cfg.autoDownload {
		return s.cfg.chromePath, nil
	}
	path, err := launcher.NewBrowser().Get()
	if err != nil {
		return "", fmt.Errorf("downloading browser: %w", err)
	}
	return path, nil
}

// browserContext starts a headless browser bound to parent
func (s *ChromeSurface) browserContext(parent context.Context) (context.Context, context.CancelFunc, error) {
	path, err := s.execPath()
	if err != nil {
		return nil, nil, err
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("hide-scrollbars", true),
	)
	if path != "" {
		opts = append(opts, chromedp.ExecPath(path))
	}
	if s.cfg.noSandbox {
		opts = append(opts, chromedp.Flag("no-sandbox", true))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(parent, opts...)
	ctx, cancel := chromedp.NewContext(allocCtx, chromedp.WithErrorf(func(format string, v ...interface{}) {
		msg := fmt.Sprintf(format, v...)
		// protocol drift between cdproto and the installed browser
		if strings.Contains(msg, "could not unmarshal event") {
			return
		}
		s.cfg.log.Debug(msg)
	}))
	return ctx, func() {
		cancel()
		allocCancel()
	}, nil
}

// Open loads html from a temporary file and checks that targetID exists
func (s *ChromeSurface) Open(ctx context.Context, html, targetID string) (Node, error) {
	f, err := os.CreateTemp("", "fadcv-*.html")
	if err != nil {
		return nil, fmt.Errorf("creating temp file: %w", err)
	}
	name := f.Name()
	if _, err := f.WriteString(html); err != nil {
		f.Close()
		os.Remove(name)
		return nil, fmt.Errorf("writing temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(name)
		return nil, fmt.Errorf("closing temp file: %w", err)
	}
	abs, err := filepath.Abs(name)
	if err != nil {
		os.Remove(name)
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	tabCtx, cancel, err := s.browserContext(ctx)
	if err != nil {
		os.Remove(name)
		return nil, err
	}
	n := &chromeNode{ctx: tabCtx, cancel: cancel, file: name, id: jsString(targetID)}

	var found bool
	if err := chromedp.Run(tabCtx,
		chromedp.EmulateViewport(1280, 1024),
		chromedp.Navigate("file://"+abs),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Evaluate(fmt.Sprintf(`document.getElementById(%s) !== null`, n.id), &found),
	); err != nil {
		n.Close()
		return nil, fmt.Errorf("loading page: %w", err)
	}
	if !found {
		n.Close()
		return nil, fmt.Errorf("%w: #%s", ErrRenderTargetMissing, targetID)
	}
	return n, nil
}

// chromeNode is the render target inside a browser tab. Calls run in the
// tab context; the ctx arguments only carry cancellation checks.
type chromeNode struct {
	ctx    context.Context
	cancel context.CancelFunc
	file   string
	id     string // JS string literal
}

func (n *chromeNode) style(js string) error {
	var ok bool
	expr := fmt.Sprintf(`(function(){var el=document.getElementById(%s);if(!el)return false;%s;return true;})()`, n.id, js)
	if err := chromedp.Run(n.ctx, chromedp.Evaluate(expr, &ok)); err != nil {
		return err
	}
	if !ok {
		return ErrRenderTargetMissing
	}
	return nil
}

func (n *chromeNode) Pin(ctx context.Context, width int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return n.style(fmt.Sprintf(
		`el.style.position='fixed';el.style.left='0px';el.style.top='0px';el.style.zIndex='-999';el.style.width='%dpx'`,
		width))
}

func (n *chromeNode) Unpin(context.Context) error {
	return n.style(`el.style.left='-10000px';el.style.position='absolute';el.style.zIndex=''`)
}

func (n *chromeNode) Rasterize(ctx context.Context, scale float64) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var size []float64
	expr := fmt.Sprintf(`(function(){var el=document.getElementById(%s);var r=el.getBoundingClientRect();return [r.width, Math.max(r.height, el.scrollHeight)];})()`, n.id)
	if err := chromedp.Run(n.ctx, chromedp.Evaluate(expr, &size)); err != nil {
		return nil, err
	}
	if len(size) != 2 || size[0] <= 0 || size[1] <= 0 {
		return nil, fmt.Errorf("render target has no size")
	}
	w, h := size[0], size[1]

	var buf []byte
	err := chromedp.Run(n.ctx,
		chromedp.EmulateViewport(int64(w), int64(h)),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			buf, err = page.CaptureScreenshot().
				WithFormat(page.CaptureScreenshotFormatPng).
				WithCaptureBeyondViewport(true).
				WithClip(&page.Viewport{X: 0, Y: 0, Width: w, Height: h, Scale: scale}).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, err
	}
	img, err := png.Decode(bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("decode screenshot: %w", err)
	}
	return img, nil
}

func (n *chromeNode) Close() error {
	n.cancel()
	return os.Remove(n.file)
}

func jsString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
