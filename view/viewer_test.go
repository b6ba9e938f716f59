package view_test

import (
	"fmt"
	"image"
	"strings"
	"testing"

	"github.com/justread/justread/doc"
	"github.com/justread/justread/jreadtest"
	"github.com/justread/justread/view"
)

// newViewer builds a viewer on the given surface and document, with a
// recording clipboard and warnings collected instead of logged.
func newViewer(t *testing.T, surf *jreadtest.Surface, d *jreadtest.Document) (*view.Viewer, *jreadtest.Clipboard, *[]string) {
	t.Helper()
	clip := &jreadtest.Clipboard{}
	var warnings []string
	v := view.New(surf,
		view.WithClipboard(clip),
		view.WithWarnf(func(format string, args ...interface{}) {
			warnings = append(warnings, fmt.Sprintf(format, args...))
		}),
	)
	t.Cleanup(func() { v.Close() })
	v.Load(d)
	return v, clip, &warnings
}

// uniformDoc builds n square pages of the given side length in points.
func uniformDoc(n int, side float64) *jreadtest.Document {
	pages := make([]jreadtest.Page, n)
	for i := range pages {
		pages[i] = jreadtest.Page{Size: doc.Size{W: side, H: side}}
	}
	return jreadtest.NewDocument(pages...)
}

// renderedSet returns the indices of pages currently holding bitmaps.
func renderedSet(v *view.Viewer) []int {
	var set []int
	for i := 0; i < v.PageCount(); i++ {
		if v.CurrentVisual(i).Bitmap != nil {
			set = append(set, i)
		}
	}
	return set
}

func pt(x, y int) image.Point { return image.Pt(x, y) }

func eqInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestLoadLaysOutPages(t *testing.T) {
	surf := jreadtest.NewSurface(100)
	v, _, _ := newViewer(t, surf, uniformDoc(3, 100))

	if got := v.PageCount(); got != 3 {
		t.Fatalf("PageCount = %d, want 3", got)
	}
	// Pages stack with a 20px gap: tops at 0, 120, 240.
	for i, wantTop := range []int{0, 120, 240} {
		geom := v.CurrentVisual(i).Geom
		if geom.Min.Y != wantTop || geom.Dy() != 100 {
			t.Errorf("page %d geom = %v, want top %d height 100", i, geom, wantTop)
		}
	}
	if got := v.ContentHeight(); got != 340 {
		t.Errorf("ContentHeight = %d, want 340", got)
	}
}

func TestLoadRendersInitialWindow(t *testing.T) {
	surf := jreadtest.NewSurface(100)
	d := uniformDoc(5, 100)
	v, _, _ := newViewer(t, surf, d)

	// Window [-100, 200] at scroll 0: pages 0 and 1 only.
	if got := renderedSet(v); !eqInts(got, []int{0, 1}) {
		t.Errorf("rendered after load = %v, want [0 1]", got)
	}
	if got := d.TotalRasterizes(); got != 2 {
		t.Errorf("rasterize calls = %d, want 2", got)
	}
}

func TestLoadResetsZoomAndSelectionKeepsMode(t *testing.T) {
	surf := jreadtest.NewSurface(100)
	first := uniformDoc(2, 100)
	v, clip, _ := newViewer(t, surf, first)

	v.SetMode(view.ModeNight)
	v.ZoomBy(0.4)
	v.Step(view.Event{Kind: view.EvPointerDown, Page: 0, Pos: pt(10, 10)})

	second := jreadtest.NewDocument(jreadtest.Page{
		Size:  doc.Size{W: 100, H: 100},
		Words: jreadtest.Words("solo"),
	})
	v.Load(second)

	if !first.Closed {
		t.Error("previous document was not closed")
	}
	if got := v.Zoom(); got != 1.0 {
		t.Errorf("Zoom after Load = %g, want 1.0", got)
	}
	if got := v.Mode(); got != view.ModeNight {
		t.Errorf("Mode after Load = %v, want night", got)
	}
	if _, ok := v.SelectedText(); ok {
		t.Error("selection survived Load")
	}
	if got := clip.Last(); got != "" {
		t.Errorf("clipboard = %q, want empty", got)
	}
}

func TestOpenDocumentFailureLeavesStateUntouched(t *testing.T) {
	surf := jreadtest.NewSurface(100)
	d := jreadtest.NewDocument(jreadtest.Page{
		Size:  doc.Size{W: 100, H: 100},
		Words: jreadtest.Words("keep", "me"),
	})
	v, _, _ := newViewer(t, surf, d)
	v.Step(view.Event{Kind: view.EvPointerDown, Page: 0, Pos: pt(10, 10)})

	if err := v.OpenDocument(t.TempDir()); err == nil {
		t.Fatal("OpenDocument on an empty directory should fail")
	}

	if d.Closed {
		t.Error("failed open closed the current document")
	}
	if got := v.PageCount(); got != 1 {
		t.Errorf("PageCount = %d, want 1", got)
	}
	if text, ok := v.SelectedText(); !ok || text != "keep" {
		t.Errorf("selection after failed open = %q, %v; want %q, true", text, ok, "keep")
	}
}

func TestScrollDefersUntilDebounceFires(t *testing.T) {
	surf := jreadtest.NewSurface(100)
	d := uniformDoc(5, 100)
	v, _, _ := newViewer(t, surf, d)
	settled := d.TotalRasterizes()

	// A scroll burst alone must not render anything.
	for _, off := range []int{60, 120, 240} {
		surf.Offset = off
		v.Step(view.Event{Kind: view.EvScroll})
	}
	if got := d.TotalRasterizes(); got != settled {
		t.Fatalf("rasterize calls during burst = %d, want %d", got, settled)
	}

	// The fire reads the surface as it is now, not as it was when the
	// burst started: offset 240 gives window [140, 440], pages 1..3.
	v.Step(view.Event{Kind: view.EvDebounceFire})
	if got := renderedSet(v); !eqInts(got, []int{1, 2, 3}) {
		t.Errorf("rendered after fire = %v, want [1 2 3]", got)
	}
}

func TestVisibilityPassIsIdempotent(t *testing.T) {
	surf := jreadtest.NewSurface(100)
	d := uniformDoc(5, 100)
	v, _, _ := newViewer(t, surf, d)
	settled := d.TotalRasterizes()

	// Re-running a settled pass renders nothing and evicts nothing.
	for i := 0; i < 3; i++ {
		v.Step(view.Event{Kind: view.EvDebounceFire})
	}
	if got := d.TotalRasterizes(); got != settled {
		t.Errorf("rasterize calls after settled re-runs = %d, want %d", got, settled)
	}
	if got := renderedSet(v); !eqInts(got, []int{0, 1}) {
		t.Errorf("rendered = %v, want [0 1]", got)
	}
}

func TestScrollEvictsPagesLeavingWindow(t *testing.T) {
	surf := jreadtest.NewSurface(100)
	d := uniformDoc(5, 100)
	v, _, _ := newViewer(t, surf, d)

	surf.Offset = 240
	v.Step(view.Event{Kind: view.EvDebounceFire})
	if got := renderedSet(v); !eqInts(got, []int{1, 2, 3}) {
		t.Fatalf("rendered = %v, want [1 2 3]", got)
	}
	if v.CurrentVisual(0).Bitmap != nil {
		t.Error("page 0 kept its bitmap after leaving the window")
	}

	// Scrolling back re-renders it.
	surf.Offset = 0
	v.Step(view.Event{Kind: view.EvDebounceFire})
	if v.CurrentVisual(0).Bitmap == nil {
		t.Error("page 0 not re-rendered after returning")
	}
}

func TestRenderFailureRetriesNextPass(t *testing.T) {
	surf := jreadtest.NewSurface(100)
	d := jreadtest.NewDocument(
		jreadtest.Page{Size: doc.Size{W: 100, H: 100}, FailRender: true},
		jreadtest.Page{Size: doc.Size{W: 100, H: 100}},
	)
	v, _, warnings := newViewer(t, surf, d)

	if v.CurrentVisual(0).Bitmap != nil {
		t.Fatal("failed page should stay at its placeholder")
	}
	if v.CurrentVisual(1).Bitmap == nil {
		t.Fatal("failure on page 0 must not affect page 1")
	}
	if len(*warnings) == 0 || !strings.Contains((*warnings)[0], "page 0") {
		t.Errorf("warnings = %v, want a page 0 render warning", *warnings)
	}

	// The page heals once rasterization starts succeeding.
	d.Pages[0].FailRender = false
	v.Step(view.Event{Kind: view.EvDebounceFire})
	if v.CurrentVisual(0).Bitmap == nil {
		t.Error("page 0 not retried after the failure cleared")
	}
}

func TestResizeRunsSynchronously(t *testing.T) {
	surf := jreadtest.NewSurface(100)
	d := uniformDoc(5, 100)
	v, _, _ := newViewer(t, surf, d)

	// Growing the viewport widens the window immediately, no debounce.
	surf.Height = 300
	v.Step(view.Event{Kind: view.EvResize})
	if got := renderedSet(v); !eqInts(got, []int{0, 1, 2, 3, 4}) {
		t.Errorf("rendered after resize = %v, want all pages", got)
	}
}

func TestDumpMentionsState(t *testing.T) {
	surf := jreadtest.NewSurface(100)
	v, _, _ := newViewer(t, surf, uniformDoc(2, 100))
	v.SetMode(view.ModeInverted)

	dump := v.Dump()
	for _, want := range []string{"inverted", "Zoom", "Pages"} {
		if !strings.Contains(dump, want) {
			t.Errorf("Dump() missing %q:\n%s", want, dump)
		}
	}
}
