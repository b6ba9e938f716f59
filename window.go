package main

import (
	"image"
	"image/color"

	draw "github.com/ktye/duitdraw"

	"github.com/justread/justread/view"
)

// window is the duitdraw-backed display surface: one OS window whose full
// client area is the viewport onto the page stack. It owns the scroll
// offset and translates duitdraw mouse/keyboard traffic into viewer events.
type window struct {
	d        *draw.Display
	mousectl *draw.Mousectl
	kbdctl   *draw.Keyboardctl
	errch    chan error

	offset  int // vertical scroll position in content pixels
	content int // total content height, provided by the viewer

	// Allocated solid-color images, rebuilt lazily per color.
	solids map[color.RGBA]*draw.Image

	// Per-page bitmap cache; invalidated when the viewer's bitmap
	// pointer changes.
	pageImages  map[int]*draw.Image
	pageBitmaps map[int]*image.RGBA
}

const scrollbarWidth = 12

func newWindow(label string) (*window, error) {
	errch := make(chan error)
	d, err := draw.Init(errch, "", label, "900x700")
	if err != nil {
		return nil, err
	}
	return &window{
		d:           d,
		mousectl:    d.InitMouse(),
		kbdctl:      d.InitKeyboard(),
		errch:       errch,
		solids:      make(map[color.RGBA]*draw.Image),
		pageImages:  make(map[int]*draw.Image),
		pageBitmaps: make(map[int]*image.RGBA),
	}, nil
}

// ViewportHeight implements display.Surface.
func (w *window) ViewportHeight() int {
	return w.d.ScreenImage.R.Dy()
}

// ScrollOffset implements display.Surface.
func (w *window) ScrollOffset() int { return w.offset }

// ScrollTo implements display.Surface, clamping to the content range.
func (w *window) ScrollTo(offset int) {
	maxOffset := w.content - w.ViewportHeight()
	if maxOffset < 0 {
		maxOffset = 0
	}
	if offset < 0 {
		offset = 0
	}
	if offset > maxOffset {
		offset = maxOffset
	}
	w.offset = offset
}

// run is the single event goroutine: it multiplexes mouse, keyboard,
// resize, and viewer timer events into Step calls and repaints after each.
func (w *window) run(v *view.Viewer) {
	w.content = v.ContentHeight()
	w.repaint(v)

	var lastButtons int
	for {
		select {
		case err := <-w.errch:
			fatal(err)

		case <-w.mousectl.Resize:
			if err := w.d.Attach(draw.Refmesg); err != nil {
				fatal(err)
			}
			w.invalidateImages()
			w.ScrollTo(w.offset) // re-clamp to the new viewport
			v.Step(view.Event{Kind: view.EvResize})
			w.repaint(v)

		case m := <-w.mousectl.C:
			w.mouse(v, m, lastButtons)
			lastButtons = m.Buttons
			w.repaint(v)

		case r := <-w.kbdctl.C:
			if w.key(v, r) {
				return
			}
			w.repaint(v)

		case e := <-v.Events():
			v.Step(e)
			w.repaint(v)
		}
	}
}

// mouse translates one mouse event. Wheel steps scroll; B1 press and drag
// drive selection on the page under the pointer.
func (w *window) mouse(v *view.Viewer, m draw.Mouse, lastButtons int) {
	switch {
	case m.Buttons&8 != 0:
		// Wheel with B2 held zooms instead of scrolling.
		if m.Buttons&2 != 0 {
			v.Step(view.Event{Kind: view.EvZoom, Delta: view.ZoomStep})
			w.invalidateImages()
		} else {
			v.Step(view.Event{Kind: view.EvWheel, Up: true})
		}
	case m.Buttons&16 != 0:
		if m.Buttons&2 != 0 {
			v.Step(view.Event{Kind: view.EvZoom, Delta: -view.ZoomStep})
			w.invalidateImages()
		} else {
			v.Step(view.Event{Kind: view.EvWheel, Up: false})
		}
	case m.Buttons&1 != 0:
		page, pos, ok := w.pageAt(v, m.Point)
		if !ok {
			return
		}
		kind := view.EvPointerDown
		if lastButtons&1 != 0 {
			kind = view.EvPointerMove
		}
		v.Step(view.Event{Kind: kind, Page: page, Pos: pos})
	}
	w.content = v.ContentHeight()
}

// key translates one keyboard rune; it reports whether the app should exit.
func (w *window) key(v *view.Viewer, r rune) bool {
	switch r {
	case 'q', draw.KeyEscape:
		return true
	case draw.KeyLeft, 'h':
		v.Step(view.Event{Kind: view.EvKey, Key: view.KeyLeft})
	case draw.KeyRight, 'l':
		v.Step(view.Event{Kind: view.EvKey, Key: view.KeyRight})
	case draw.KeyUp, 'k':
		v.Step(view.Event{Kind: view.EvKey, Key: view.KeyUp})
	case draw.KeyDown, 'j':
		v.Step(view.Event{Kind: view.EvKey, Key: view.KeyDown})
	// The rune stream carries no modifier state, so shifted letters
	// stand in for shift-arrows.
	case 'H':
		v.Step(view.Event{Kind: view.EvKey, Key: view.KeyLeft, Shift: true})
	case 'L':
		v.Step(view.Event{Kind: view.EvKey, Key: view.KeyRight, Shift: true})
	case 'K':
		v.Step(view.Event{Kind: view.EvKey, Key: view.KeyUp, Shift: true})
	case 'J':
		v.Step(view.Event{Kind: view.EvKey, Key: view.KeyDown, Shift: true})
	case 0x03, 'c': // ^C
		v.Step(view.Event{Kind: view.EvKey, Key: view.KeyCopy})
	case 'p':
		plumbSelection(v)
	case '+', '=':
		v.Step(view.Event{Kind: view.EvZoom, Delta: view.ZoomStep})
		w.content = v.ContentHeight()
		w.invalidateImages()
	case '-':
		v.Step(view.Event{Kind: view.EvZoom, Delta: -view.ZoomStep})
		w.content = v.ContentHeight()
		w.invalidateImages()
	case '1':
		v.Step(view.Event{Kind: view.EvMode, Mode: view.ModeNormal})
	case '2':
		v.Step(view.Event{Kind: view.EvMode, Mode: view.ModeInverted})
	case '3':
		v.Step(view.Event{Kind: view.EvMode, Mode: view.ModeNight})
	case 'D':
		warnf("%s", v.Dump())
	}
	return false
}

// pageAt maps a screen point to (page index, page-local device pixels).
func (w *window) pageAt(v *view.Viewer, pt image.Point) (int, image.Point, bool) {
	screen := w.d.ScreenImage.R
	contentY := pt.Y - screen.Min.Y + w.offset
	for i := 0; i < v.PageCount(); i++ {
		geom := v.CurrentVisual(i).Geom
		if contentY < geom.Min.Y || contentY >= geom.Max.Y {
			continue
		}
		xoff := w.centerOffset(geom.Dx())
		localX := pt.X - screen.Min.X - scrollbarWidth - xoff
		if localX < 0 || localX >= geom.Dx() {
			return 0, image.Point{}, false
		}
		return i, image.Pt(localX, contentY-geom.Min.Y), true
	}
	return 0, image.Point{}, false
}

// centerOffset centers a page of width pw in the area right of the
// scrollbar.
func (w *window) centerOffset(pw int) int {
	avail := w.d.ScreenImage.R.Dx() - scrollbarWidth
	if avail <= pw {
		return 0
	}
	return (avail - pw) / 2
}

// repaint redraws the whole window from the viewer's pull-model visuals.
func (w *window) repaint(v *view.Viewer) {
	screen := w.d.ScreenImage
	r := screen.R

	screen.Draw(r, w.solid(color.RGBA{R: 0x55, G: 0x55, B: 0x55, A: 0xff}), nil, image.ZP)

	barRect := image.Rect(r.Min.X, r.Min.Y, r.Min.X+scrollbarWidth, r.Max.Y)
	screen.Draw(barRect, w.solid(color.RGBA{R: 0x99, G: 0x99, B: 0x99, A: 0xff}), nil, image.ZP)
	thumb := v.ThumbRect(image.Rect(0, 0, scrollbarWidth, r.Dy()))
	screen.Draw(thumb.Add(r.Min), w.solid(color.RGBA{R: 0x44, G: 0x44, B: 0x44, A: 0xff}), nil, image.ZP)

	for i := 0; i < v.PageCount(); i++ {
		w.paintPage(v, i)
	}
	w.d.Flush()
}

// paintPage draws page i if it intersects the viewport: placeholder or
// bitmap, then the selection overlay and caret.
func (w *window) paintPage(v *view.Viewer, i int) {
	screen := w.d.ScreenImage
	r := screen.R
	vis := v.CurrentVisual(i)

	if vis.Geom.Max.Y <= w.offset || vis.Geom.Min.Y >= w.offset+r.Dy() {
		return
	}
	origin := image.Pt(
		r.Min.X+scrollbarWidth+w.centerOffset(vis.Geom.Dx()),
		r.Min.Y+vis.Geom.Min.Y-w.offset,
	)
	pageRect := image.Rectangle{Min: origin, Max: origin.Add(vis.Geom.Size())}

	if vis.Bitmap == nil {
		screen.Draw(pageRect, w.solid(vis.Placeholder), nil, image.ZP)
	} else {
		img := w.pageImage(i, vis.Bitmap)
		if img != nil {
			screen.Draw(pageRect, img, nil, image.ZP)
		}
	}

	sel := w.solid(view.SelectionColor)
	for _, sr := range vis.Selection {
		screen.Draw(sr.Add(origin), sel, nil, image.ZP)
	}
	if vis.Caret != nil {
		cr := image.Rect(vis.Caret.X, vis.Caret.Y0, vis.Caret.X+2, vis.Caret.Y1)
		screen.Draw(cr.Add(origin), w.solid(view.CaretColor), nil, image.ZP)
	}
}

// pageImage loads the viewer's RGBA bitmap into a display image, reusing
// the cached one while the bitmap pointer is unchanged.
func (w *window) pageImage(i int, bm *image.RGBA) *draw.Image {
	if w.pageBitmaps[i] == bm {
		return w.pageImages[i]
	}
	if old := w.pageImages[i]; old != nil {
		old.Free()
	}
	img, err := w.d.AllocImage(bm.Bounds(), draw.ABGR32, false, draw.White)
	if err != nil {
		warnf("alloc page image: %v", err)
		return nil
	}
	if _, err := img.Load(bm.Bounds(), bm.Pix); err != nil {
		warnf("load page image: %v", err)
		img.Free()
		return nil
	}
	w.pageImages[i] = img
	w.pageBitmaps[i] = bm
	return img
}

// invalidateImages drops all cached display images (zoom or window change).
func (w *window) invalidateImages() {
	for i, img := range w.pageImages {
		if img != nil {
			img.Free()
		}
		delete(w.pageImages, i)
		delete(w.pageBitmaps, i)
	}
}

// solid returns a 1×1 replicated image of the given color.
func (w *window) solid(c color.RGBA) *draw.Image {
	if img, ok := w.solids[c]; ok {
		return img
	}
	val := draw.Color(uint32(c.R)<<24 | uint32(c.G)<<16 | uint32(c.B)<<8 | uint32(c.A))
	img, err := w.d.AllocImage(image.Rect(0, 0, 1, 1), draw.MakePix(draw.CRed, 8, draw.CGreen, 8, draw.CBlue, 8, draw.CAlpha, 8), true, val)
	if err != nil {
		fatal(err)
	}
	w.solids[c] = img
	return img
}
