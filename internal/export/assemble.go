package export

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/image/draw"
)

// JPEGQuality is the quality of the raster embedded in the PDF
const JPEGQuality = 95

// PDFAssembler builds A4 portrait PDFs with gofpdf
type PDFAssembler struct {
	Creator string
}

// Assemble embeds img once and places it on every page of layout
func (a PDFAssembler) Assemble(img image.Image, layout Layout, title string) ([]byte, error) {
	if layout.Pages() == 0 {
		return nil, fmt.Errorf("no pages to assemble")
	}
	raster, err := encodeJPEG(img)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(title, true)
	if a.Creator != "" {
		pdf.SetCreator(a.Creator, true)
	}

	opt := gofpdf.ImageOptions{ImageType: "JPG"}
	pdf.RegisterImageOptionsReader("cv", opt, bytes.NewReader(raster))
	for _, p := range layout.Placements {
		pdf.AddPage()
		pdf.ImageOptions("cv", p.X, p.Y, p.Width, p.Height, false, opt, 0, "")
	}
	if err := pdf.Error(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// encodeJPEG flattens img onto white and encodes it
func encodeJPEG(img image.Image) ([]byte, error) {
	b := img.Bounds()
	flat := image.NewRGBA(b)
	draw.Draw(flat, b, image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(flat, b, img, b.Min, draw.Over)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, flat, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("encode raster: %w", err)
	}
	return buf.Bytes(), nil
}
