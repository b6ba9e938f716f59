package view

// The visibility scheduler: decides, from the surface geometry read at call
// time, which pages carry bitmaps and which revert to placeholders. Pages
// are prefetched one viewport above the window and two below, biasing toward
// forward scroll.

// visibleWindow returns the inclusion window [scroll−vh, scroll+2·vh] for
// the current surface state.
func (v *Viewer) visibleWindow() (minY, maxY int) {
	scroll := v.surface.ScrollOffset()
	vh := v.surface.ViewportHeight()
	return scroll - vh, scroll + 2*vh
}

// updateVisibility runs one render/evict pass over the registry. It is
// idempotent: a settled pass re-run with unchanged inputs performs no
// renders and no evictions, guarded by each entry's rendered flag.
func (v *Viewer) updateVisibility() {
	if v.doc == nil {
		return
	}
	minY, maxY := v.visibleWindow()
	for _, e := range v.entries {
		visible := e.geom.Max.Y > minY && e.geom.Min.Y < maxY
		switch {
		case visible && !e.rendered:
			v.renderPage(e)
		case !visible && e.rendered:
			v.evictPage(e)
		}
	}
}
