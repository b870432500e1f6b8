package bubble_adapter

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// cellMetrics measures text in terminal cells. One cell is one advance unit
// and one row is one height unit, so all engine geometry comes out in
// character-grid coordinates.
type cellMetrics struct{}

// Advance returns the cell width of a single grapheme cluster. Control
// characters and other zero-width input report unmeasurable so the engine's
// fallback advance applies.
func (cellMetrics) Advance(grapheme string) (float64, bool) {
	if grapheme == "" {
		return 0, true
	}
	w := runewidth.StringWidth(grapheme)
	if w <= 0 {
		return 0, false
	}
	return float64(w), true
}

// LineHeight is one terminal row.
func (cellMetrics) LineHeight() float64 {
	return 1
}

// cellWidth returns the total cell width of a string, walking grapheme
// clusters the same way the wrap simulator does.
func cellWidth(s string) int {
	w := 0
	rest := s
	for len(rest) > 0 {
		var g string
		g, rest, _, _ = uniseg.FirstGraphemeClusterInString(rest, -1)
		w += runewidth.StringWidth(g)
	}
	return w
}
