package view

import "image"

// EventKind tags the input events the viewer consumes. Every state
// transition in the viewer happens inside Step in response to one of these;
// there is no callback graph.
type EventKind int

const (
	// EvScroll reports that the surface scrolled. The payload carries no
	// position: the visibility pass reads the surface when it runs.
	EvScroll EventKind = iota
	// EvResize reports a viewport geometry change.
	EvResize
	// EvWheel is a scroll-wheel step. Up is the direction.
	EvWheel
	// EvZoom requests a zoom change by Delta.
	EvZoom
	// EvMode requests a display filter mode change.
	EvMode
	// EvPointerDown is a primary-button press on a page, in page-local
	// device pixels.
	EvPointerDown
	// EvPointerMove is pointer motion with the primary button held.
	EvPointerMove
	// EvKey is a key press on the focused page.
	EvKey
	// EvFocus reports that input focus returned to the viewer.
	EvFocus
	// EvBlur reports that input focus left the viewer.
	EvBlur
	// EvDebounceFire is the scroll debounce timer firing.
	EvDebounceFire
	// EvBlinkTick is the caret blink timer firing.
	EvBlinkTick
)

// Key identifies the keys the viewer handles.
type Key int

const (
	KeyLeft Key = iota
	KeyRight
	KeyUp
	KeyDown
	KeyCopy
)

// Event is one tagged input event. Only the fields relevant to Kind are
// meaningful.
type Event struct {
	Kind  EventKind
	Page  int         // EvPointerDown, EvPointerMove
	Pos   image.Point // page-local device pixels
	Key   Key         // EvKey
	Shift bool        // EvPointerDown, EvKey
	Up    bool        // EvWheel
	Delta float64     // EvZoom
	Mode  Mode        // EvMode
}
