package view

import (
	"image"
	"image/color"
)

// Mode selects the display filter applied to rendered pages and the
// placeholder color of unrendered ones.
type Mode int

const (
	ModeNormal Mode = iota
	ModeInverted
	ModeNight
)

// String returns the mode name used in flags and dumps.
func (m Mode) String() string {
	switch m {
	case ModeInverted:
		return "inverted"
	case ModeNight:
		return "night"
	}
	return "normal"
}

// ParseMode maps a mode name to a Mode. Unknown names fall back to normal.
func ParseMode(s string) Mode {
	switch s {
	case "inverted":
		return ModeInverted
	case "night":
		return ModeNight
	}
	return ModeNormal
}

// Night overlay: a warm tint multiply-composited over the page.
var nightOverlay = color.RGBA{R: 255, G: 140, B: 0, A: 80}

// ApplyFilter returns the filtered form of a freshly rasterized page. It is
// a pure function of the raw bitmap: the filter is applied once at render
// time and a mode change re-rasterizes rather than re-filtering a cached
// clean copy. ModeNormal returns src unchanged.
func ApplyFilter(src *image.RGBA, m Mode) *image.RGBA {
	switch m {
	case ModeInverted:
		return invert(src)
	case ModeNight:
		return multiplyOver(src, nightOverlay)
	}
	return src
}

// invert flips every color channel, leaving alpha alone.
func invert(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	for i := 0; i+3 < len(dst.Pix); i += 4 {
		dst.Pix[i+0] = 255 - dst.Pix[i+0]
		dst.Pix[i+1] = 255 - dst.Pix[i+1]
		dst.Pix[i+2] = 255 - dst.Pix[i+2]
	}
	return dst
}

// multiplyOver composites ov over src in multiply mode at ov's alpha:
// each channel moves from src toward src*ov/255 by alpha/255.
func multiplyOver(src *image.RGBA, ov color.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	a := uint32(ov.A)
	ch := [3]uint32{uint32(ov.R), uint32(ov.G), uint32(ov.B)}
	for i := 0; i+3 < len(dst.Pix); i += 4 {
		for c := 0; c < 3; c++ {
			s := uint32(dst.Pix[i+c])
			mult := s * ch[c] / 255
			dst.Pix[i+c] = uint8((s*(255-a) + mult*a) / 255)
		}
	}
	return dst
}

// PlaceholderColor returns the solid fill for unrendered pages in mode m.
func PlaceholderColor(m Mode) color.RGBA {
	switch m {
	case ModeInverted:
		return color.RGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
	case ModeNight:
		return color.RGBA{R: 0x4d, G: 0x40, B: 0x30, A: 0xff}
	}
	return color.RGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}
}
