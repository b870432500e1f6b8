package core

// Document is the read-only view of the host widget's text buffer.
// The augmentation layer never mutates it; edits arrive as notifications
// (LinesChanged, LinesInserted, LinesDeleted on the LayoutCache).
type Document interface {
	// Line returns the raw text of the 0-based logical line, without the
	// trailing newline.
	Line(i int) string
	// LineCount returns the number of logical lines. An empty document has
	// one empty line.
	LineCount() int
	// Revision is a monotonic counter bumped by the host on every mutation.
	Revision() uint64
}

// VisualSegment is one rendered row produced by wrapping a logical line.
// Byte offsets are relative to the start of the logical line. Segments of a
// line are contiguous: segment i+1 starts where segment i ends, and the last
// segment ends at the line's byte length.
type VisualSegment struct {
	Line      int
	Index     int
	ByteStart int
	ByteEnd   int
	Width     float64
	Height    float64
}

// ViewportRange is the contiguous range of logical lines needing layout or
// render work this frame. It is recomputed every frame and never cached.
type ViewportRange struct {
	First int
	Last  int
	// ScrollOffset is the vertical pixel offset of the panel top within the
	// full document layout.
	ScrollOffset float64
	// FirstY is the y position of line First's top edge, relative to the
	// document top (not the panel).
	FirstY float64
}

// MatchSpan is one search match in document-wide byte coordinates,
// half-open [Start, End). Spans are produced by the search feature in
// document order and consumed read-only here.
type MatchSpan struct {
	Start int
	End   int
}

// HighlightRect is one overlay rectangle in panel-local pixel coordinates.
// A match spanning several visual segments yields one rect per segment,
// each clipped to that segment's bounds.
type HighlightRect struct {
	Line    int
	Segment int
	X0, X1  float64
	Y0, Y1  float64
}

// Geometry describes the host widget's chrome around the text area. The
// highlighter offsets its rectangles by these values so they align with the
// rendered text regardless of padding, border, or scrollbar.
type Geometry struct {
	PaddingLeft  float64
	PaddingRight float64
	PaddingTop   float64
	Border       float64
	// ScrollbarWidth is the width of the vertical scrollbar when one is
	// shown, zero otherwise. It narrows the usable content area on the
	// right; highlight rectangles are clipped against it.
	ScrollbarWidth float64
}

// contentLeft is the x position where the host renders the first glyph.
func (g Geometry) contentLeft() float64 {
	return g.PaddingLeft + g.Border
}

// contentTop is the y position of the first text row.
func (g Geometry) contentTop() float64 {
	return g.PaddingTop + g.Border
}

// contentRight returns the right clip edge for a panel of the given width.
func (g Geometry) contentRight(panelWidth float64) float64 {
	return panelWidth - g.PaddingRight - g.Border - g.ScrollbarWidth
}

// Config carries the layout knobs shared by the core components.
type Config struct {
	// TabWidth is the number of space advances a tab occupies. Tabs use a
	// fixed advance, not elastic stops.
	TabWidth int
	// FallbackAdvance substitutes for glyphs the metrics source cannot
	// measure. Zero disables the fallback (unmeasured glyphs then occupy
	// no width).
	FallbackAdvance float64
	// OverscanLines is the number of extra lines laid out above and below
	// the strictly visible range to avoid popping during fast scroll.
	OverscanLines int
	// MaxCachedLines bounds the number of resident layout cache entries.
	// Zero means unbounded.
	MaxCachedLines int
}

// DefaultConfig matches the host widget defaults observed in restpad.
func DefaultConfig() Config {
	return Config{
		TabWidth:        4,
		FallbackAdvance: 0,
		OverscanLines:   1,
	}
}
