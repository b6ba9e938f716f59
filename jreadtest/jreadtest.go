// Package jreadtest provides headless test doubles for the viewer: a
// scriptable surface, a recording clipboard, and an in-memory document
// source with fault injection and call counting.
package jreadtest

import (
	"fmt"
	"image"
	"image/color"

	"github.com/justread/justread/doc"
)

// Surface is a scriptable display surface. Tests set the viewport geometry
// directly and inspect the scroll positions the viewer requested.
type Surface struct {
	Height int
	Offset int

	// ScrollCalls records every ScrollTo in order.
	ScrollCalls []int
}

// NewSurface returns a surface with the given viewport height, scrolled to
// the top.
func NewSurface(height int) *Surface {
	return &Surface{Height: height}
}

func (s *Surface) ViewportHeight() int { return s.Height }
func (s *Surface) ScrollOffset() int   { return s.Offset }

// ScrollTo records the request and moves the surface there.
func (s *Surface) ScrollTo(offset int) {
	s.ScrollCalls = append(s.ScrollCalls, offset)
	s.Offset = offset
}

// Clipboard records copied text.
type Clipboard struct {
	Texts []string
	Err   error // returned from WriteText when non-nil
}

func (c *Clipboard) WriteText(text string) error {
	if c.Err != nil {
		return c.Err
	}
	c.Texts = append(c.Texts, text)
	return nil
}

// Last returns the most recently copied text, or "".
func (c *Clipboard) Last() string {
	if len(c.Texts) == 0 {
		return ""
	}
	return c.Texts[len(c.Texts)-1]
}

// Page describes one page of a test document.
type Page struct {
	Size  doc.Size
	Words []doc.Word

	// FailWords and FailRender make the corresponding operation fail.
	FailWords  bool
	FailRender bool

	// Fill is the solid color Rasterize paints; zero value is white.
	Fill color.RGBA
}

// Document is an in-memory document source. It counts Rasterize and Words
// calls per page so tests can assert scheduling behavior.
type Document struct {
	Pages []Page

	RasterizeCalls []int // per page
	WordsCalls     []int // per page
	Closed         bool
}

// NewDocument builds a test document from page descriptions.
func NewDocument(pages ...Page) *Document {
	return &Document{
		Pages:          pages,
		RasterizeCalls: make([]int, len(pages)),
		WordsCalls:     make([]int, len(pages)),
	}
}

// Words builds a word list from texts laid out left to right on one line,
// 50 points wide with 10-point gaps, 20 points tall. Convenient for
// selection tests that only care about ordering.
func Words(texts ...string) []doc.Word {
	words := make([]doc.Word, len(texts))
	for i, t := range texts {
		x := float64(i) * 60
		words[i] = doc.Word{
			Box:     doc.Rect{X0: x, Y0: 0, X1: x + 50, Y1: 20},
			Text:    t,
			Ordinal: i,
		}
	}
	return words
}

func (d *Document) PageCount() int { return len(d.Pages) }

func (d *Document) NaturalSize(i int) doc.Size { return d.Pages[i].Size }

func (d *Document) Words(i int) ([]doc.Word, error) {
	d.WordsCalls[i]++
	if d.Pages[i].FailWords {
		return nil, fmt.Errorf("%w: page %d", doc.ErrExtract, i)
	}
	return d.Pages[i].Words, nil
}

func (d *Document) Rasterize(i int, zoom float64) (*image.RGBA, error) {
	d.RasterizeCalls[i]++
	if d.Pages[i].FailRender {
		return nil, fmt.Errorf("%w: page %d", doc.ErrRender, i)
	}
	p := d.Pages[i]
	w := int(p.Size.W * zoom)
	h := int(p.Size.H * zoom)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	fill := p.Fill
	if fill == (color.RGBA{}) {
		fill = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
	for n := 0; n < len(img.Pix); n += 4 {
		img.Pix[n+0] = fill.R
		img.Pix[n+1] = fill.G
		img.Pix[n+2] = fill.B
		img.Pix[n+3] = fill.A
	}
	return img, nil
}

// TotalRasterizes returns the total Rasterize call count across pages.
func (d *Document) TotalRasterizes() int {
	total := 0
	for _, n := range d.RasterizeCalls {
		total += n
	}
	return total
}

func (d *Document) Close() error {
	d.Closed = true
	return nil
}
