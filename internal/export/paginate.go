package export

import "math"

// A4 page size in millimetres
const (
	PageWidthMM  = 210.0
	PageHeightMM = 297.0
)

// overflowTolerance absorbs float noise when the image is an exact
// multiple of the page height.
const overflowTolerance = 1e-6

// Placement positions the captured image on one page, in millimetres
type Placement struct {
	Page   int
	X, Y   float64
	Width  float64
	Height float64
}

// Layout is the page plan of one export
type Layout struct {
	ImageHeight float64
	Placements  []Placement
}

// Pages returns the number of pages of the layout
func (l Layout) Pages() int { return len(l.Placements) }

// Paginate fits an image of pxWidth x pxHeight to the A4 page width and
// slices it across as many pages as its scaled height needs. Every page
// carries the whole image shifted up by one page height per page, so page
// k shows the band [297k, 297(k+1)) mm of the capture.
func Paginate(pxWidth, pxHeight int) Layout {
	if pxWidth <= 0 || pxHeight <= 0 {
		return Layout{}
	}
	h := PageWidthMM * float64(pxHeight) / float64(pxWidth)
	l := Layout{ImageHeight: h}

	pages := 1
	if h > PageHeightMM+overflowTolerance {
		pages = int(math.Ceil(h/PageHeightMM - overflowTolerance))
	}
	for k := 0; k < pages; k++ {
		l.Placements = append(l.Placements, Placement{
			Page:   k,
			X:      0,
			Y:      -PageHeightMM * float64(k),
			Width:  PageWidthMM,
			Height: h,
		})
	}
	return l
}
