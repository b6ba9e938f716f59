package doc

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sort"

	xdraw "golang.org/x/image/draw"
)

// dirDocument is a document backed by a directory of page images. Each page
// is a file named page-NNN.png; its pixel bounds are its natural size, with
// one point per pixel at zoom 1.0. An optional page-NNN.words sidecar
// carries the word list in the ParseWords format.
type dirDocument struct {
	dir   string
	pages []dirPage
}

type dirPage struct {
	imagePath string
	wordsPath string // empty if no sidecar exists
	size      Size
}

// OpenDir opens a page-directory document. It fails if the directory cannot
// be read, contains no pages, or any page image has an unreadable header.
// Word sidecars are not touched until first use.
func OpenDir(dir string) (Document, error) {
	names, err := filepath.Glob(filepath.Join(dir, "page-*.png"))
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no pages in %s", dir)
	}
	sort.Strings(names)

	d := &dirDocument{dir: dir}
	for _, name := range names {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		cfg, err := png.DecodeConfig(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %v", name, err)
		}

		wordsPath := name[:len(name)-len(".png")] + ".words"
		if _, err := os.Stat(wordsPath); err != nil {
			wordsPath = ""
		}

		d.pages = append(d.pages, dirPage{
			imagePath: name,
			wordsPath: wordsPath,
			size:      Size{W: float64(cfg.Width), H: float64(cfg.Height)},
		})
	}
	return d, nil
}

func (d *dirDocument) PageCount() int { return len(d.pages) }

func (d *dirDocument) NaturalSize(i int) Size { return d.pages[i].size }

// Words reads and parses page i's sidecar. A page without a sidecar has no
// words; a sidecar that cannot be read or parsed is an extraction error.
func (d *dirDocument) Words(i int) ([]Word, error) {
	p := d.pages[i]
	if p.wordsPath == "" {
		return nil, nil
	}
	data, err := os.ReadFile(p.wordsPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtract, err)
	}
	words, err := ParseWords(string(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrExtract, p.wordsPath, err)
	}
	return words, nil
}

// Rasterize decodes the page image and scales it to the zoom factor. The
// base image is decoded fresh on every call; caching rendered bitmaps is the
// viewer's job, not the document's.
func (d *dirDocument) Rasterize(i int, zoom float64) (*image.RGBA, error) {
	p := d.pages[i]
	f, err := os.Open(p.imagePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	src, err := png.Decode(f)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRender, p.imagePath, err)
	}

	w := int(p.size.W * zoom)
	h := int(p.size.H * zoom)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst, nil
}

func (d *dirDocument) Close() error { return nil }
