// Package display abstracts the scrollable surface the viewer lives on and
// the clipboard it copies selections to. The interfaces are deliberately
// narrow so the viewer core can be driven by a mock in tests and by a real
// window in the application.
package display

import "github.com/atotto/clipboard"

// Surface is the scrollable viewport that hosts the page stack. The viewer
// reads the current window geometry at event-handling time (never from stale
// event payloads) and writes scroll adjustments back through ScrollTo.
type Surface interface {
	// ViewportHeight returns the visible height in device pixels.
	ViewportHeight() int

	// ScrollOffset returns the current vertical scroll position.
	ScrollOffset() int

	// ScrollTo sets the vertical scroll position. Implementations clamp
	// to their own valid range.
	ScrollTo(offset int)
}

// Clipboard is the sink for copied selection text.
type Clipboard interface {
	WriteText(text string) error
}

// System is the process clipboard.
type System struct{}

// WriteText places text on the system clipboard.
func (System) WriteText(text string) error {
	return clipboard.WriteAll(text)
}
