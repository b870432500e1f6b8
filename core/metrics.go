package core

import "github.com/rivo/uniseg"

// Metrics reads glyph and row measurements from the host text widget's font.
// It is a pure query interface; implementations hold no layout state.
type Metrics interface {
	// Advance returns the horizontal advance of a single grapheme cluster.
	// ok is false when the glyph cannot be measured (unsupported codepoint);
	// the caller substitutes a configured fallback advance.
	Advance(grapheme string) (advance float64, ok bool)
	// LineHeight returns the height of one visual row.
	LineHeight() float64
}

// measurer wraps Metrics with the tab and fallback policy from Config. All
// width computation in the package goes through it so every component
// measures text identically.
type measurer struct {
	m        Metrics
	tabWidth int
	fallback float64
}

func newMeasurer(m Metrics, cfg Config) measurer {
	tw := cfg.TabWidth
	if tw < 1 {
		tw = 1
	}
	return measurer{m: m, tabWidth: tw, fallback: cfg.FallbackAdvance}
}

func (ms measurer) lineHeight() float64 {
	return ms.m.LineHeight()
}

// advance measures one grapheme cluster. Tabs use a fixed advance of
// tabWidth space widths; the host widget renders them the same way.
func (ms measurer) advance(gr string) float64 {
	if gr == "\t" {
		w, ok := ms.m.Advance(" ")
		if !ok {
			w = ms.fallback
		}
		return w * float64(ms.tabWidth)
	}
	w, ok := ms.m.Advance(gr)
	if !ok {
		return ms.fallback
	}
	return w
}

// textWidth measures a string as the sum of its grapheme advances.
func (ms measurer) textWidth(s string) float64 {
	var w float64
	state := -1
	for len(s) > 0 {
		var gr string
		gr, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		w += ms.advance(gr)
	}
	return w
}
