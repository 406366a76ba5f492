package export

import "errors"

var (
	// ErrExportInProgress is returned when Export is called while another
	// export runs. The running export is not affected.
	ErrExportInProgress = errors.New("export: export already in progress")

	// ErrRenderTargetMissing is returned when the rendered page has no
	// element to capture.
	ErrRenderTargetMissing = errors.New("export: render target missing")

	ErrRasterize = errors.New("export: rasterization failed")
	ErrAssemble  = errors.New("export: pdf assembly failed")
	ErrDeliver   = errors.New("export: delivery failed")
)
