// Package photo prepares profile pictures: the image is scaled down and
// stored inline as a JPEG data URL.
package photo

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	_ "image/png"
	"io"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// MaxSide is the longest side of a stored photo in pixels
const MaxSide = 240

// MaxPixels bounds the decoded size of an input image
const MaxPixels = 50_000_000

// MaxFileSize bounds the size of an input file in bytes
const MaxFileSize = 32 << 20

const quality = 85

// ErrTooLarge is returned for files or images over the size limits
var ErrTooLarge = errors.New("photo: image too large")

// DataURL decodes a JPEG, PNG or WebP image, fits it within MaxSide and
// returns it as a base64 JPEG data URL. Dimensions are checked from the
// header before any pixel data is decoded.
func DataURL(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxFileSize+1))
	if err != nil {
		return "", fmt.Errorf("read photo: %w", err)
	}
	if len(data) > MaxFileSize {
		return "", fmt.Errorf("%w: file exceeds %d MB", ErrTooLarge, MaxFileSize>>20)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decode photo: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return "", fmt.Errorf("%w: %dx%d", ErrTooLarge, cfg.Width, cfg.Height)
	}

	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decode photo: %w", err)
	}
	thumb := Fit(src, MaxSide)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: quality}); err != nil {
		return "", fmt.Errorf("encode %s photo: %w", format, err)
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// Fit scales img so its longest side is at most max, keeping the aspect
// ratio, and flattens transparency onto white.
func Fit(img image.Image, max int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w > max || h > max {
		if w >= h {
			w, h = max, h*max/w
		} else {
			w, h = w*max/h, max
		}
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
