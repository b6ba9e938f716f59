package doc

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseWords parses a word-sidecar file. Each non-blank line describes one
// word in reading order:
//
//	x0 y0 x1 y1 text...
//
// Coordinates are page points. Everything after the fourth field, joined by
// single spaces, is the word text. Blank lines and lines starting with '#'
// are skipped. Ordinals are assigned in line order.
func ParseWords(data string) ([]Word, error) {
	lines := strings.Split(data, "\n")
	words := make([]Word, 0, len(lines))

	for n, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 5 {
			return nil, fmt.Errorf("line %d: need x0 y0 x1 y1 text", n+1)
		}

		var coord [4]float64
		for i := 0; i < 4; i++ {
			v, err := strconv.ParseFloat(fields[i], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad coordinate: %q", n+1, fields[i])
			}
			coord[i] = v
		}

		box := Rect{X0: coord[0], Y0: coord[1], X1: coord[2], Y1: coord[3]}
		if box.Dx() < 0 || box.Dy() < 0 {
			return nil, fmt.Errorf("line %d: inverted box %v", n+1, box)
		}

		words = append(words, Word{
			Box:     box,
			Text:    strings.Join(fields[4:], " "),
			Ordinal: len(words),
		})
	}

	return words, nil
}
