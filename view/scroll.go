package view

import "image"

// wheelLines is the number of nominal lines scrolled per wheel event.
const wheelLines = 3

// wheelLineHeight is the nominal line height used for wheel steps, in device
// pixels. Pages have no font, so the step is fixed.
const wheelLineHeight = 40

// wheel scrolls the surface by a fixed pixel step, clamped to the content
// range, and arms the debounce like any other scroll.
func (v *Viewer) wheel(up bool) {
	if v.doc == nil {
		return
	}
	step := wheelLines * wheelLineHeight
	offset := v.surface.ScrollOffset()
	if up {
		offset -= step
	} else {
		offset += step
	}

	maxOffset := contentHeight(v.entries) - v.surface.ViewportHeight()
	if maxOffset < 0 {
		maxOffset = 0
	}
	if offset < 0 {
		offset = 0
	}
	if offset > maxOffset {
		offset = maxOffset
	}

	v.surface.ScrollTo(offset)
	v.debounce.Arm()
}

// ThumbRect computes the scrollbar thumb for a bar occupying barRect. The
// thumb height is proportional to the visible share of the content and its
// position to the scroll offset; it fills the bar when everything fits and
// never shrinks below 10 pixels.
func (v *Viewer) ThumbRect(barRect image.Rectangle) image.Rectangle {
	total := contentHeight(v.entries)
	vh := v.surface.ViewportHeight()
	if total <= vh || total == 0 {
		return barRect
	}

	barH := barRect.Dy()
	thumbH := barH * vh / total
	if thumbH < 10 {
		thumbH = 10
	}

	scrollable := total - vh
	pos := float64(v.surface.ScrollOffset()) / float64(scrollable)
	if pos < 0 {
		pos = 0
	}
	if pos > 1 {
		pos = 1
	}
	top := barRect.Min.Y + int(float64(barH-thumbH)*pos)

	return image.Rect(barRect.Min.X, top, barRect.Max.X, top+thumbH)
}
