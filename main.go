// Jread is a page viewer for directory documents: a directory of page-NNN.png
// images with optional page-NNN.words sidecars carrying word boxes. Pages
// are virtualized — only those near the viewport hold bitmaps — and words
// can be selected with the mouse or keyboard and copied or plumbed.
//
// Usage:
//
//	jread [-zoom f] [-mode normal|inverted|night] [-dump] docdir
//
// Keys: arrows move the caret (H/J/K/L extend), ^C or c copies, p plumbs
// the selection, +/- zoom, 1/2/3 switch modes, D dumps state, q quits.
package main

import (
	"flag"
	"fmt"
	"os"

	"9fans.net/go/plan9"
	"9fans.net/go/plumb"

	"github.com/justread/justread/view"
)

var (
	startZoom = flag.Float64("zoom", 1.0, "initial zoom factor")
	startMode = flag.String("mode", "normal", "display mode: normal, inverted or night")
	dumpState = flag.Bool("dump", false, "dump viewer state to stderr after loading")
)

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: jread [flags] docdir")
		flag.PrintDefaults()
		os.Exit(2)
	}

	win, err := newWindow("jread")
	if err != nil {
		fatal(fmt.Errorf("open window: %w", err))
	}

	v := view.New(win, view.WithWarnf(warnf))
	v.SetMode(view.ParseMode(*startMode))
	if err := v.OpenDocument(flag.Arg(0)); err != nil {
		fatal(err)
	}
	if *startZoom != 1.0 {
		v.ZoomBy(*startZoom - 1.0)
	}
	if *dumpState {
		fmt.Fprintln(os.Stderr, v.Dump())
	}

	win.run(v)
}

// plumbSelection sends the current selection to the plumber as a text
// message. A missing plumber degrades to a warning, never an error.
func plumbSelection(v *view.Viewer) {
	text, ok := v.SelectedText()
	if !ok {
		return
	}
	fid, err := plumb.Open("send", plan9.OWRITE)
	if err != nil {
		warnf("plumber not running")
		return
	}
	defer fid.Close()

	wd, _ := os.Getwd()
	pm := &plumb.Message{
		Src:  "jread",
		Dst:  "",
		Dir:  wd,
		Type: "text",
		Data: []byte(text),
	}
	if err := pm.Send(fid); err != nil {
		warnf("plumb failed: %v", err)
	}
}

func warnf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "jread: "+format+"\n", args...)
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "jread:", err)
	os.Exit(1)
}
