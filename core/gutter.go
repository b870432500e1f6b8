package core

import "strconv"

// GutterLabel positions one line-number glyph run. Y is relative to the
// document top, in the same space as ViewportRange.FirstY.
type GutterLabel struct {
	Line int
	Y    float64
	Text string
}

// Gutter computes line-number gutter geometry. Width follows the host
// application's formula: digit count of the line total times the digit
// advance, plus one digit advance of right margin, plus fixed padding. The
// width is memoized and recomputed only when the total crosses a
// power-of-ten boundary or the font generation changes.
type Gutter struct {
	cache   *LayoutCache
	padding float64

	digitAdvance float64
	digits       int
	width        float64
	fontGen      uint64
	measured     bool
}

// NewGutter builds a gutter over the given layout cache. padding is the
// fixed pixel padding added around the digits.
func NewGutter(cache *LayoutCache, padding float64) *Gutter {
	return &Gutter{cache: cache, padding: padding}
}

// Width returns the current gutter width in pixels. Non-decreasing while
// the document only grows; changes only at decade boundaries of the total
// line count.
func (g *Gutter) Width() float64 {
	total := g.cache.doc.LineCount()
	d := digitCount(total)
	if !g.measured || g.fontGen != g.cache.fontGen {
		g.digitAdvance = g.cache.ms.advance("0")
		g.fontGen = g.cache.fontGen
		g.measured = true
		g.digits = 0
	}
	if d != g.digits {
		g.digits = d
		g.width = float64(d)*g.digitAdvance + g.digitAdvance + g.padding
	}
	return g.width
}

// Render emits exactly one label per logical line in the visible range,
// positioned at the y of that line's first visual segment. Wrapped
// continuation rows get no label; that is what distinguishes logical-line
// numbering from visual-row numbering.
func (g *Gutter) Render(vr ViewportRange) []GutterLabel {
	total := g.cache.doc.LineCount()
	if total == 0 || vr.Last < vr.First {
		return nil
	}
	labels := make([]GutterLabel, 0, vr.Last-vr.First+1)
	y := vr.FirstY
	for line := vr.First; line <= vr.Last && line < total; line++ {
		labels = append(labels, GutterLabel{
			Line: line,
			Y:    y,
			Text: strconv.Itoa(line + 1),
		})
		y += g.cache.LineHeight(line)
	}
	return labels
}

func digitCount(n int) int {
	if n < 1 {
		n = 1
	}
	d := 1
	for n >= 10 {
		n /= 10
		d++
	}
	return d
}
