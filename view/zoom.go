package view

import "math"

// ZoomFloor is the smallest accepted zoom factor. There is no ceiling.
const ZoomFloor = 0.4

// ZoomStep is the conventional zoom increment used by the application.
const ZoomStep = 0.2

// ZoomBy applies a zoom delta and reports whether it was accepted. A delta
// that would take the factor below the floor is rejected outright rather
// than clamped. An accepted change runs the geometry-only relayout over all
// pages, drops every bitmap (a bitmap at the old zoom is invalid at any new
// zoom and is never rescaled), and runs one synchronous visibility pass, so
// rasterization cost stays proportional to the visible page count.
func (v *Viewer) ZoomBy(delta float64) bool {
	// Quantize to the step grid so repeated steps round-trip exactly.
	nz := math.Round((v.zoom+delta)*100) / 100
	if nz < ZoomFloor || nz == v.zoom {
		return false
	}
	v.zoom = nz
	if v.doc == nil {
		return true
	}
	layoutEntries(v.entries, v.zoom)
	for _, e := range v.entries {
		e.img = nil
		e.rendered = false
	}
	v.updateVisibility()
	return true
}

// Zoom returns the current zoom factor.
func (v *Viewer) Zoom() float64 { return v.zoom }
