package view_test

import (
	"testing"

	"github.com/justread/justread/jreadtest"
	"github.com/justread/justread/view"
)

func TestZoomRelayout(t *testing.T) {
	surf := jreadtest.NewSurface(100)
	v, _, _ := newViewer(t, surf, uniformDoc(3, 100))

	if !v.ZoomBy(view.ZoomStep) {
		t.Fatal("ZoomBy(+0.2) rejected")
	}
	if got := v.Zoom(); got != 1.2 {
		t.Fatalf("Zoom = %g, want 1.2", got)
	}
	// Heights scale, the gap does not: tops at 0, 140, 280.
	for i, wantTop := range []int{0, 140, 280} {
		geom := v.CurrentVisual(i).Geom
		if geom.Min.Y != wantTop || geom.Dy() != 120 {
			t.Errorf("page %d geom = %v, want top %d height 120", i, geom, wantTop)
		}
	}
}

func TestZoomStepsRoundTrip(t *testing.T) {
	surf := jreadtest.NewSurface(100)
	v, _, _ := newViewer(t, surf, uniformDoc(1, 100))

	for i := 0; i < 3; i++ {
		if !v.ZoomBy(-view.ZoomStep) {
			t.Fatalf("step %d down rejected at zoom %g", i, v.Zoom())
		}
	}
	if got := v.Zoom(); got != 0.4 {
		t.Fatalf("Zoom after 3 steps down = %g, want exactly 0.4", got)
	}
	for i := 0; i < 3; i++ {
		if !v.ZoomBy(view.ZoomStep) {
			t.Fatalf("step %d up rejected at zoom %g", i, v.Zoom())
		}
	}
	if got := v.Zoom(); got != 1.0 {
		t.Errorf("Zoom after round trip = %g, want exactly 1.0", got)
	}
}

func TestZoomFloorRejects(t *testing.T) {
	surf := jreadtest.NewSurface(100)
	v, _, _ := newViewer(t, surf, uniformDoc(1, 100))

	for v.Zoom() > view.ZoomFloor {
		v.ZoomBy(-view.ZoomStep)
	}
	geomBefore := v.CurrentVisual(0).Geom

	// Below the floor the delta is rejected outright, not clamped.
	if v.ZoomBy(-view.ZoomStep) {
		t.Fatal("ZoomBy below the floor was accepted")
	}
	if got := v.Zoom(); got != view.ZoomFloor {
		t.Errorf("Zoom = %g, want unchanged %g", got, view.ZoomFloor)
	}
	if got := v.CurrentVisual(0).Geom; got != geomBefore {
		t.Errorf("geometry changed on a rejected zoom: %v -> %v", geomBefore, got)
	}
}

func TestZoomInvalidatesBitmaps(t *testing.T) {
	surf := jreadtest.NewSurface(100)
	d := uniformDoc(5, 100)
	v, _, _ := newViewer(t, surf, d)

	v.ZoomBy(view.ZoomStep)

	// Old-zoom bitmaps are never rescaled: visible pages re-rasterized
	// at 1.2, everything else stays a placeholder.
	for _, i := range renderedSet(v) {
		b := v.CurrentVisual(i).Bitmap.Bounds()
		if b.Dy() != 120 {
			t.Errorf("page %d bitmap height = %d, want 120", i, b.Dy())
		}
	}
}

func TestZoomRasterizesOnlyVisiblePages(t *testing.T) {
	surf := jreadtest.NewSurface(100)
	d := uniformDoc(50, 100)
	v, _, _ := newViewer(t, surf, d)
	settled := d.TotalRasterizes()

	v.ZoomBy(view.ZoomStep)

	// The relayout walks all 50 pages but rasterization stays bounded by
	// the inclusion window.
	extra := d.TotalRasterizes() - settled
	if extra > 4 {
		t.Errorf("zoom rasterized %d pages, want at most 4", extra)
	}
	for i := 10; i < 50; i++ {
		if d.RasterizeCalls[i] != 0 {
			t.Errorf("far page %d was rasterized", i)
		}
	}
}

func TestZoomEventSteps(t *testing.T) {
	surf := jreadtest.NewSurface(100)
	v, _, _ := newViewer(t, surf, uniformDoc(1, 100))

	v.Step(view.Event{Kind: view.EvZoom, Delta: view.ZoomStep})
	if got := v.Zoom(); got != 1.2 {
		t.Errorf("Zoom after EvZoom = %g, want 1.2", got)
	}
}
