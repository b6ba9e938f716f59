// Package doc defines the document source consumed by the viewer: a page
// count, per-page natural sizes in points, per-page word lists in reading
// order, and on-demand rasterization at a zoom factor. Implementations are
// expected to be cheap to query for geometry and lazy about everything else.
package doc

import (
	"errors"
	"fmt"
	"image"
)

// Error kinds. Callers test with errors.Is; every error returned by this
// package wraps exactly one of these.
var (
	// ErrOpen means the document could not be opened at all.
	ErrOpen = errors.New("cannot open document")
	// ErrExtract means word extraction failed for one page.
	ErrExtract = errors.New("word extraction failed")
	// ErrRender means rasterization failed for one page.
	ErrRender = errors.New("render failed")
)

// Rect is an axis-aligned box in page points. X0,Y0 is the top-left corner;
// X1,Y1 the bottom-right. Coordinates are independent of zoom.
type Rect struct {
	X0, Y0, X1, Y1 float64
}

// Dx returns the width of the box.
func (r Rect) Dx() float64 { return r.X1 - r.X0 }

// Dy returns the height of the box.
func (r Rect) Dy() float64 { return r.Y1 - r.Y0 }

// Contains reports whether the point (x, y) lies inside the box,
// boundaries included.
func (r Rect) Contains(x, y float64) bool {
	return r.X0 <= x && x <= r.X1 && r.Y0 <= y && y <= r.Y1
}

// Center returns the center point of the box.
func (r Rect) Center() (x, y float64) {
	return (r.X0 + r.X1) / 2, (r.Y0 + r.Y1) / 2
}

// Size is a page's natural (unzoomed) extent in points.
type Size struct {
	W, H float64
}

// Word is one extracted word: its bounding box in page points, its text, and
// its position in reading order. Words are immutable once extracted.
type Word struct {
	Box     Rect
	Text    string
	Ordinal int
}

// Document is an open document handle. All page indices are zero-based and
// must be in [0, PageCount()). Implementations need not be safe for
// concurrent use; the viewer calls them from a single goroutine.
type Document interface {
	// PageCount returns the number of pages.
	PageCount() int

	// NaturalSize returns page i's unzoomed size in points.
	NaturalSize(i int) Size

	// Words returns page i's words in reading order. An error wraps
	// ErrExtract and degrades that page to "selection unavailable";
	// it must not affect other pages.
	Words(i int) ([]Word, error)

	// Rasterize renders page i at the given zoom factor. The returned
	// image is owned by the caller. An error wraps ErrRender.
	Rasterize(i int, zoom float64) (*image.RGBA, error)

	// Close releases any resources held by the document.
	Close() error
}

// Open opens the document at path. The only on-disk format understood here
// is a page directory (see OpenDir); anything else is an open error.
func Open(path string) (Document, error) {
	d, err := OpenDir(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpen, err)
	}
	return d, nil
}
