package view

// The page image cache: at most one bitmap is resident per rendered page.
// Rendering rasterizes through the document source at the current zoom and
// applies the active display filter; eviction releases the bitmap and lets
// the placeholder show through. Neither touches geometry.

// renderPage rasterizes e's page and installs the filtered bitmap. A
// rasterization failure leaves the page at its placeholder; the next
// visibility pass that still finds it visible retries.
func (v *Viewer) renderPage(e *PageEntry) {
	raw, err := v.doc.Rasterize(e.index, v.zoom)
	if err != nil {
		v.warnf("page %d: %v", e.index, err)
		return
	}
	e.img = ApplyFilter(raw, v.mode)
	e.rendered = true
}

// evictPage drops e's bitmap and restores the placeholder.
func (v *Viewer) evictPage(e *PageEntry) {
	e.img = nil
	e.rendered = false
}

// refilterRendered re-renders every currently rendered page under the active
// mode. Cost is bounded by the rendered (visible) page count, never the page
// count: unrendered pages only change placeholder color, which is derived at
// draw time. Filters operate on the raw rasterized bitmap, so this goes back
// to the document source rather than re-filtering a cached copy.
func (v *Viewer) refilterRendered() {
	for _, e := range v.entries {
		if !e.rendered {
			continue
		}
		raw, err := v.doc.Rasterize(e.index, v.zoom)
		if err != nil {
			v.warnf("page %d: %v", e.index, err)
			v.evictPage(e)
			continue
		}
		e.img = ApplyFilter(raw, v.mode)
	}
}
