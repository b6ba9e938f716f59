package view

import (
	"image"
	"math"
	"strings"

	"github.com/justread/justread/doc"
)

// Word-index hit testing and the selection state machine. Selection state is
// a pair of indices into the focused page's word list: anchor is the fixed
// end, caret the moving end. Both are -1 when no selection exists; the two
// are never mixed. Only the focused page has live selection state.

// hitThreshold is the largest Manhattan distance, in page points, at which
// the nearest-word fallback still accepts a match.
const hitThreshold = 100

// Vertical stride for Up/Down caret movement. True line layout is not
// modeled; ten words approximates one line.
const verticalStride = 10

// Auto-scroll margins around the caret, in device pixels.
const (
	caretMarginAbove = 20
	caretMarginBelow = 50
)

// wordsFor returns page e's word index, extracting it on first use. A page
// whose extraction fails stays without words: selection is unavailable
// there, rendering is unaffected, and the failure is not retried.
func (v *Viewer) wordsFor(e *PageEntry) []doc.Word {
	if e.wordsLoaded || e.wordsFailed {
		return e.words
	}
	words, err := v.doc.Words(e.index)
	if err != nil {
		v.warnf("page %d: %v", e.index, err)
		e.wordsFailed = true
		return nil
	}
	e.words = words
	e.wordsLoaded = true
	return e.words
}

// hitWord resolves a point in page-point coordinates to a word index, or -1.
// Exact containment wins, scanned in reading order. Otherwise the word whose
// box center is nearest by Manhattan distance is taken, provided it is
// strictly closer than the threshold; ties keep the first-encountered
// minimum because the scan uses strict less-than.
func hitWord(words []doc.Word, x, y float64) int {
	for i, w := range words {
		if w.Box.Contains(x, y) {
			return i
		}
	}

	closest := -1
	minDist := math.Inf(1)
	for i, w := range words {
		cx, cy := w.Box.Center()
		d := math.Abs(cx-x) + math.Abs(cy-y)
		if d < minDist {
			minDist = d
			closest = i
		}
	}
	if minDist < hitThreshold {
		return closest
	}
	return -1
}

// pointerDown handles a primary-button press at a page-local device pixel
// position. Pressing a different page moves focus there and discards the
// old page's selection.
func (v *Viewer) pointerDown(page int, pos image.Point, shift bool) {
	if v.doc == nil || page < 0 || page >= len(v.entries) {
		return
	}
	if page != v.focusPage {
		v.focusPage = page
		v.anchor, v.caret = -1, -1
	}
	v.focused = true

	words := v.wordsFor(v.entries[page])
	idx := hitWord(words, float64(pos.X)/v.zoom, float64(pos.Y)/v.zoom)
	if idx == -1 {
		return
	}

	if shift && v.anchor != -1 {
		v.caret = idx
	} else {
		v.anchor = idx
		v.caret = idx
	}
	v.showCaret()
}

// pointerDrag extends the selection toward the word under the pointer while
// the button is held. The anchor never moves during a drag.
func (v *Viewer) pointerDrag(page int, pos image.Point) {
	if v.doc == nil || page != v.focusPage || v.focusPage == -1 {
		return
	}
	words := v.wordsFor(v.entries[page])
	idx := hitWord(words, float64(pos.X)/v.zoom, float64(pos.Y)/v.zoom)
	if idx == -1 || idx == v.caret {
		return
	}
	v.caret = idx
	v.showCaret()
}

// keyPress handles caret navigation and the copy chord on the focused page.
// Without shift the anchor snaps to the caret, collapsing the selection;
// with shift only the caret moves, which is the keyboard's only way to build
// a range.
func (v *Viewer) keyPress(key Key, shift bool) {
	if v.doc == nil || v.focusPage == -1 {
		return
	}
	if key == KeyCopy {
		if err := v.CopySelection(); err != nil {
			v.warnf("copy: %v", err)
		}
		return
	}

	words := v.wordsFor(v.entries[v.focusPage])
	n := len(words)
	if n == 0 {
		return
	}

	idx := v.caret
	switch key {
	case KeyLeft:
		idx = max(0, v.caret-1)
	case KeyRight:
		idx = min(n-1, v.caret+1)
	case KeyUp:
		idx = max(0, v.caret-verticalStride)
	case KeyDown:
		idx = min(n-1, v.caret+verticalStride)
	default:
		return
	}
	if idx == v.caret {
		return
	}

	v.caret = idx
	if !shift || v.anchor == -1 {
		v.anchor = idx
	}
	v.showCaret()
	v.scrollCaretIntoView()
}

// showCaret makes the caret visible and restarts the blink phase so the
// cursor never disappears right after a navigation.
func (v *Viewer) showCaret() {
	v.caretVisible = true
	v.blink.Restart()
}

// scrollCaretIntoView nudges the surface by the minimal amount that brings
// the caret back inside the viewport, with a small margin. The follow-up
// visibility pass runs synchronously: going through the debounce here would
// let the timer fight the adjustment.
func (v *Viewer) scrollCaretIntoView() {
	words := v.entries[v.focusPage].words
	if v.caret < 0 || v.caret >= len(words) {
		return
	}
	y := v.entries[v.focusPage].geom.Min.Y + int(words[v.caret].Box.Y0*v.zoom)

	scroll := v.surface.ScrollOffset()
	vh := v.surface.ViewportHeight()
	switch {
	case y < scroll:
		v.surface.ScrollTo(y - caretMarginAbove)
	case y > scroll+vh:
		v.surface.ScrollTo(y - vh + caretMarginBelow)
	default:
		return
	}
	v.updateVisibility()
}

// SelectedText returns the current selection joined by single spaces in
// reading order, and whether a selection exists at all.
func (v *Viewer) SelectedText() (string, bool) {
	if v.focusPage == -1 || v.anchor == -1 || v.caret == -1 {
		return "", false
	}
	words := v.entries[v.focusPage].words
	lo, hi := v.anchor, v.caret
	if lo > hi {
		lo, hi = hi, lo
	}
	parts := make([]string, 0, hi-lo+1)
	for _, w := range words[lo : hi+1] {
		parts = append(parts, w.Text)
	}
	return strings.Join(parts, " "), true
}

// CopySelection exports the selection to the clipboard sink. With no
// selection it does nothing and reports no error.
func (v *Viewer) CopySelection() error {
	text, ok := v.SelectedText()
	if !ok {
		return nil
	}
	return v.clip.WriteText(text)
}

// blurSelection hides the caret and stops blinking when focus leaves.
// The anchor and caret stay put; the selection survives invisibly.
func (v *Viewer) blurSelection() {
	v.focused = false
	v.blink.Stop()
	v.caretVisible = false
}

// focusSelection restores the caret when focus returns.
func (v *Viewer) focusSelection() {
	v.focused = true
	if v.caret != -1 {
		v.showCaret()
	}
}

// blinkTick toggles caret visibility. Ticks arriving after focus left are
// ignored.
func (v *Viewer) blinkTick() {
	if v.focused && v.caret != -1 {
		v.caretVisible = !v.caretVisible
	}
}
