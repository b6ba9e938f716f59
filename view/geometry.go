package view

import (
	"image"

	"github.com/justread/justread/doc"
)

// pageGap is the vertical spacing between pages in the stack, in device
// pixels. It does not scale with zoom.
const pageGap = 20

// PageEntry is the registry record for one page: its natural size, its
// current device-pixel geometry in the stack, and the lazily loaded
// resources tied to it. Exactly one entry exists per page index; the slice
// is rebuilt wholesale when a document is opened.
type PageEntry struct {
	index    int
	natural  doc.Size
	geom     image.Rectangle // position in the content stack, device pixels
	rendered bool
	img      *image.RGBA

	// Word index, loaded at most once on first need.
	words       []doc.Word
	wordsLoaded bool
	wordsFailed bool
}

// Index returns the page index.
func (e *PageEntry) Index() int { return e.index }

// Geom returns the entry's current stack geometry in device pixels.
func (e *PageEntry) Geom() image.Rectangle { return e.geom }

// Rendered reports whether a bitmap is resident for this page.
func (e *PageEntry) Rendered() bool { return e.rendered }

// buildEntries creates one entry per page of d, laid out at the given zoom.
func buildEntries(d doc.Document, zoom float64) []*PageEntry {
	entries := make([]*PageEntry, d.PageCount())
	for i := range entries {
		entries[i] = &PageEntry{index: i, natural: d.NaturalSize(i)}
	}
	layoutEntries(entries, zoom)
	return entries
}

// layoutEntries recomputes every entry's geometry from naturalSize × zoom.
// This is the cheap geometry-only pass run on zoom changes; it never touches
// bitmaps or rendered flags.
func layoutEntries(entries []*PageEntry, zoom float64) {
	y := 0
	for _, e := range entries {
		w := int(e.natural.W * zoom)
		h := int(e.natural.H * zoom)
		e.geom = image.Rect(0, y, w, y+h)
		y += h + pageGap
	}
}

// contentHeight returns the total stack height in device pixels.
func contentHeight(entries []*PageEntry) int {
	if len(entries) == 0 {
		return 0
	}
	return entries[len(entries)-1].geom.Max.Y
}
