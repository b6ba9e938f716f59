// Package view implements the viewer core: the page geometry registry, the
// visibility-driven render/evict scheduler, the page image cache, display
// filters, the zoom controller, and the word-granular selection machine.
//
// A Viewer owns all of this state and mutates it only inside Step, which
// consumes tagged input events on a single goroutine. Timers deliver their
// fires as events through the same channel the application drains, so the
// core needs no locking.
package view

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"time"

	"github.com/sanity-io/litter"

	"github.com/justread/justread/display"
	"github.com/justread/justread/doc"
	"github.com/justread/justread/internal/sched"
)

// DebounceDelay is how long a scroll burst must quiesce before a visibility
// pass runs. Resize and zoom bypass the debounce entirely.
const DebounceDelay = 50 * time.Millisecond

// BlinkPeriod is the caret blink toggle period.
const BlinkPeriod = 500 * time.Millisecond

// Selection overlay and caret colors.
var (
	SelectionColor = color.RGBA{R: 0, G: 120, B: 215, A: 80}
	CaretColor     = color.RGBA{R: 0xff, G: 0x33, B: 0x33, A: 0xff}
)

// Viewer is the top-level viewer context. Create one with New, hand it a
// document with OpenDocument or Load, and drive it by calling Step with
// input events from a single goroutine.
type Viewer struct {
	surface display.Surface
	clip    display.Clipboard
	warnf   func(format string, args ...interface{})

	doc     doc.Document
	entries []*PageEntry
	zoom    float64
	mode    Mode

	debounce *sched.Debounce
	blink    *sched.Blinker
	events   chan Event

	// Selection state for the focused page; -1 means none. The anchor
	// and caret are both -1 or both valid indices into that page's words.
	focusPage    int
	anchor       int
	caret        int
	caretVisible bool
	focused      bool
}

// Option configures a Viewer.
type Option func(*Viewer)

// WithClipboard sets the clipboard sink. The default is the system
// clipboard.
func WithClipboard(c display.Clipboard) Option {
	return func(v *Viewer) { v.clip = c }
}

// WithWarnf sets the sink for non-fatal per-page failures. The default is
// log.Printf.
func WithWarnf(fn func(format string, args ...interface{})) Option {
	return func(v *Viewer) { v.warnf = fn }
}

// New creates a Viewer on the given surface with no document loaded.
func New(surface display.Surface, opts ...Option) *Viewer {
	v := &Viewer{
		surface:   surface,
		clip:      display.System{},
		warnf:     log.Printf,
		zoom:      1.0,
		focusPage: -1,
		anchor:    -1,
		caret:     -1,
		events:    make(chan Event, 32),
	}
	for _, opt := range opts {
		opt(v)
	}
	v.debounce = sched.NewDebounce(DebounceDelay, func() {
		v.postEvent(Event{Kind: EvDebounceFire})
	})
	v.blink = sched.NewBlinker(BlinkPeriod, func() {
		v.postEvent(Event{Kind: EvBlinkTick})
	})
	return v
}

// Events returns the channel timer fires arrive on. The owner of the event
// loop drains it and feeds each event to Step.
func (v *Viewer) Events() <-chan Event { return v.events }

// postEvent delivers a timer fire without ever blocking the timer
// goroutine. A full queue drops the event; both timers refire.
func (v *Viewer) postEvent(e Event) {
	select {
	case v.events <- e:
	default:
	}
}

// Step is the single state-transition function. All viewer state mutation
// happens here, on the caller's goroutine.
func (v *Viewer) Step(e Event) {
	switch e.Kind {
	case EvScroll:
		// Never recompute during a scroll burst; the pass reads the
		// surface when the timer fires, so stale positions cannot
		// drive rendering.
		v.debounce.Arm()
	case EvResize:
		v.updateVisibility()
	case EvWheel:
		v.wheel(e.Up)
	case EvZoom:
		v.ZoomBy(e.Delta)
	case EvMode:
		v.SetMode(e.Mode)
	case EvPointerDown:
		v.pointerDown(e.Page, e.Pos, e.Shift)
	case EvPointerMove:
		v.pointerDrag(e.Page, e.Pos)
	case EvKey:
		v.keyPress(e.Key, e.Shift)
	case EvFocus:
		v.focusSelection()
	case EvBlur:
		v.blurSelection()
	case EvDebounceFire:
		v.updateVisibility()
	case EvBlinkTick:
		v.blinkTick()
	}
}

// OpenDocument opens the document at path and makes it current. On failure
// the previous document, registry, and selection are left untouched.
func (v *Viewer) OpenDocument(path string) error {
	d, err := doc.Open(path)
	if err != nil {
		return err
	}
	v.Load(d)
	return nil
}

// Load adopts an already-open document, replacing the current one. Zoom
// resets to 1.0, the registry is rebuilt with placeholders only, selection
// state is discarded, and one synchronous visibility pass renders the
// initial window. The display mode is preserved.
func (v *Viewer) Load(d doc.Document) {
	if v.doc != nil {
		v.doc.Close()
	}
	v.doc = d
	v.zoom = 1.0
	v.entries = buildEntries(d, v.zoom)
	v.focusPage = -1
	v.anchor, v.caret = -1, -1
	v.caretVisible = false
	v.blink.Stop()
	v.updateVisibility()
}

// SetMode switches the display filter. Rendered pages re-rasterize in place;
// unrendered pages only change placeholder color. Geometry never changes.
func (v *Viewer) SetMode(m Mode) {
	v.mode = m
	if v.doc != nil {
		v.refilterRendered()
	}
}

// Mode returns the active display filter mode.
func (v *Viewer) Mode() Mode { return v.mode }

// PageCount returns the number of pages in the current document.
func (v *Viewer) PageCount() int { return len(v.entries) }

// ContentHeight returns the total stack height in device pixels.
func (v *Viewer) ContentHeight() int { return contentHeight(v.entries) }

// CaretLine is the caret's vertical segment in page-local device pixels.
type CaretLine struct {
	X, Y0, Y1 int
}

// Visual is everything the surface needs to draw one page: its stack
// geometry, either a bitmap or a placeholder color, and the selection
// overlay for the focused page.
type Visual struct {
	Geom        image.Rectangle
	Bitmap      *image.RGBA // nil when the placeholder should show
	Placeholder color.RGBA
	Selection   []image.Rectangle // page-local device pixels
	Caret       *CaretLine
}

// CurrentVisual returns the drawable state of page i.
func (v *Viewer) CurrentVisual(i int) Visual {
	e := v.entries[i]
	vis := Visual{
		Geom:        e.geom,
		Placeholder: PlaceholderColor(v.mode),
	}
	if e.rendered {
		vis.Bitmap = e.img
	}
	if i != v.focusPage || v.caret == -1 {
		return vis
	}

	words := e.words
	if v.anchor != -1 && v.anchor != v.caret {
		lo, hi := v.anchor, v.caret
		if lo > hi {
			lo, hi = hi, lo
		}
		for _, w := range words[lo : hi+1] {
			x := int(w.Box.X0 * v.zoom)
			y := int(w.Box.Y0 * v.zoom)
			vis.Selection = append(vis.Selection, image.Rect(
				x, y,
				x+int(w.Box.Dx()*v.zoom),
				y+int(w.Box.Dy()*v.zoom),
			))
		}
	}
	if v.caretVisible && v.caret < len(words) {
		w := words[v.caret]
		vis.Caret = &CaretLine{
			X:  int(w.Box.X0 * v.zoom),
			Y0: int(w.Box.Y0 * v.zoom),
			Y1: int(w.Box.Y1 * v.zoom),
		}
	}
	return vis
}

// Close tears the viewer down: timers stop and the document is released.
func (v *Viewer) Close() error {
	v.debounce.Cancel()
	v.blink.Stop()
	if v.doc != nil {
		err := v.doc.Close()
		v.doc = nil
		return err
	}
	return nil
}

// Dump renders the viewer state for debugging.
func (v *Viewer) Dump() string {
	type pageState struct {
		Index    int
		Geom     string
		Rendered bool
		Words    int
	}
	type state struct {
		Zoom      float64
		Mode      string
		FocusPage int
		Anchor    int
		Caret     int
		Pages     []pageState
	}
	s := state{
		Zoom:      v.zoom,
		Mode:      v.mode.String(),
		FocusPage: v.focusPage,
		Anchor:    v.anchor,
		Caret:     v.caret,
	}
	for _, e := range v.entries {
		s.Pages = append(s.Pages, pageState{
			Index:    e.index,
			Geom:     fmt.Sprint(e.geom),
			Rendered: e.rendered,
			Words:    len(e.words),
		})
	}
	return litter.Sdump(s)
}
