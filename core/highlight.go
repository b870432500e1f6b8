package core

import (
	"log"
	"math"
	"sort"
)

// Highlighter converts search match spans into overlay rectangles aligned
// with the host widget's rendered text. It reads segment geometry from the
// layout cache and corrects final coordinates for the host's content
// padding, border, and vertical scrollbar.
type Highlighter struct {
	cache *LayoutCache
	geo   Geometry
}

// NewHighlighter builds a highlighter over the given layout cache.
func NewHighlighter(cache *LayoutCache, geo Geometry) *Highlighter {
	return &Highlighter{cache: cache, geo: geo}
}

// SetGeometry replaces the chrome correction values, e.g. when the host
// shows or hides its scrollbar.
func (h *Highlighter) SetGeometry(geo Geometry) {
	h.geo = geo
}

// Highlight maps each match span onto the visual segments it touches within
// the visible range and returns one clipped rectangle per segment, in
// panel-local pixel coordinates. Matches entirely outside the range are
// skipped without any geometry work; since spans arrive in document order
// the scan stops at the first span past the visible bytes.
//
// A span crossing line boundaries never produces a rectangle spanning
// multiple rows: every rectangle is clipped to a single visual segment. A
// fully covered empty line yields one zero-width rectangle marking the
// covered newline.
func (h *Highlighter) Highlight(matches []MatchSpan, vr ViewportRange) []HighlightRect {
	doc := h.cache.doc
	total := doc.LineCount()
	if total == 0 || len(matches) == 0 || vr.Last < vr.First {
		return nil
	}
	lastLine := clampInt(vr.Last, 0, total-1)
	firstLine := clampInt(vr.First, 0, lastLine)

	// Document-wide byte offsets of line starts, up to the end of the
	// visible range. Each newline counts one byte.
	offsets := make([]int, lastLine+1)
	off := 0
	for i := 0; i <= lastLine; i++ {
		offsets[i] = off
		off += len(doc.Line(i)) + 1
	}
	visStart := offsets[firstLine]
	visEnd := off

	// Top y of each visible line, document-relative.
	tops := make([]float64, lastLine-firstLine+1)
	y := vr.FirstY
	for i := firstLine; i <= lastLine; i++ {
		tops[i-firstLine] = y
		y += h.cache.LineHeight(i)
	}

	left := h.geo.contentLeft()
	top := h.geo.contentTop()
	clipRight := math.Inf(1)
	if w := h.cache.width; w > 0 {
		clipRight = left + w - h.geo.ScrollbarWidth
	}

	var rects []HighlightRect
	for _, sp := range matches {
		if sp.End <= sp.Start {
			if sp.End < sp.Start {
				log.Printf("editview: %v: [%d,%d)", ErrInvalidSpan, sp.Start, sp.End)
			}
			continue
		}
		if sp.End <= visStart {
			continue
		}
		if sp.Start >= visEnd {
			break
		}

		startLine := sort.Search(lastLine+1, func(i int) bool { return offsets[i] > sp.Start }) - 1
		startLine = clampInt(startLine, firstLine, lastLine)

		for line := startLine; line <= lastLine; line++ {
			lineStart := offsets[line]
			if sp.End <= lineStart {
				break
			}
			text := doc.Line(line)
			subStart := clampInt(sp.Start-lineStart, 0, len(text))
			subEnd := clampInt(sp.End-lineStart, 0, len(text))
			coversNewline := sp.End > lineStart+len(text)

			segs, _ := h.cache.GetOrCompute(line)
			segY := tops[line-firstLine]
			for _, seg := range segs {
				os := max(subStart, seg.ByteStart)
				oe := min(subEnd, seg.ByteEnd)
				emptyCovered := seg.ByteStart == seg.ByteEnd && coversNewline
				if os < oe || emptyCovered {
					x0 := left + h.cache.ms.textWidth(text[seg.ByteStart:os])
					x1 := x0 + h.cache.ms.textWidth(text[os:oe])
					x0 = math.Min(x0, clipRight)
					x1 = math.Min(x1, clipRight)
					y0 := top + segY - vr.ScrollOffset
					rects = append(rects, HighlightRect{
						Line:    line,
						Segment: seg.Index,
						X0:      x0,
						X1:      x1,
						Y0:      y0,
						Y1:      y0 + seg.Height,
					})
				}
				segY += seg.Height
			}
		}
	}
	return rects
}
