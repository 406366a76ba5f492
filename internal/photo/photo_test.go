package photo

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"strings"
	"testing"
)

func TestFit(t *testing.T) {
	tests := []struct {
		w, h, wantW, wantH int
	}{
		{480, 240, 240, 120},
		{300, 600, 120, 240},
		{100, 50, 100, 50},
		{10000, 1, 240, 1},
	}
	for _, tt := range tests {
		got := Fit(image.NewRGBA(image.Rect(0, 0, tt.w, tt.h)), MaxSide).Bounds()
		if got.Dx() != tt.wantW || got.Dy() != tt.wantH {
			t.Errorf("Fit(%dx%d) = %dx%d, want %dx%d", tt.w, tt.h, got.Dx(), got.Dy(), tt.wantW, tt.wantH)
		}
	}
}

func TestDataURL(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 600, 400))
	for y := 0; y < 400; y++ {
		for x := 0; x < 600; x++ {
			src.Set(x, y, color.NRGBA{B: 200, A: 255})
		}
	}
	var in bytes.Buffer
	if err := png.Encode(&in, src); err != nil {
		t.Fatal(err)
	}

	url, err := DataURL(&in)
	if err != nil {
		t.Fatalf("DataURL: %v", err)
	}
	const prefix = "data:image/jpeg;base64,"
	if !strings.HasPrefix(url, prefix) {
		t.Fatalf("unexpected prefix: %.40s", url)
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(url, prefix))
	if err != nil {
		t.Fatalf("payload is not base64: %v", err)
	}
	img, err := jpeg.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("payload is not a JPEG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 240 || b.Dy() != 160 {
		t.Errorf("stored photo is %dx%d, want 240x160", b.Dx(), b.Dy())
	}
}

func TestDataURLRejectsGarbage(t *testing.T) {
	if _, err := DataURL(strings.NewReader("not an image")); err == nil {
		t.Error("expected a decode error")
	}
}

// pngHeader returns a PNG signature and IHDR chunk declaring w x h RGB
// pixels, with no image data behind it.
func pngHeader(w, h uint32) []byte {
	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")

	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:], w)
	binary.BigEndian.PutUint32(ihdr[4:], h)
	ihdr[8], ihdr[9] = 8, 2

	binary.Write(&buf, binary.BigEndian, uint32(len(ihdr)))
	chunk := append([]byte("IHDR"), ihdr...)
	buf.Write(chunk)
	binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(chunk))
	return buf.Bytes()
}

func TestDataURLRejectsOversizedImage(t *testing.T) {
	_, err := DataURL(bytes.NewReader(pngHeader(60000, 60000)))
	if !errors.Is(err, ErrTooLarge) {
		t.Errorf("error = %v, want ErrTooLarge", err)
	}
}

func TestDataURLRejectsOversizedFile(t *testing.T) {
	_, err := DataURL(io.LimitReader(zeros{}, MaxFileSize+1))
	if !errors.Is(err, ErrTooLarge) {
		t.Errorf("error = %v, want ErrTooLarge", err)
	}
}

type zeros struct{}

func (zeros) Read(p []byte) (int, error) {
	clear(p)
	return len(p), nil
}
