package core

import (
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// wrapEpsilon absorbs floating-point noise in cumulative advance sums so a
// token measuring exactly the panel width is not pushed to the next row.
const wrapEpsilon = 1e-6

// Wrap computes the ordered visual segments of one logical line at the
// given panel width. It replicates the host widget's greedy word wrap:
// whitespace-delimited tokens are accumulated until the next token would
// exceed the width, the break lands before that token, and a single token
// wider than the panel is force-broken at the last grapheme boundary that
// fits. Trailing whitespace at a break point stays attached to the segment
// before the break; it is never carried to the next segment.
//
// Wrap is a pure function: identical inputs always produce identical
// segment sequences. The returned segments carry Line 0; callers placing
// them in a document set the line index themselves.
func Wrap(text string, panelWidth float64, m Metrics, cfg Config) []VisualSegment {
	return wrapLine(text, panelWidth, newMeasurer(m, cfg))
}

type wrapToken struct {
	byteStart int
	byteEnd   int
	width     float64
	space     bool
}

func wrapLine(text string, width float64, ms measurer) []VisualSegment {
	lineHeight := ms.lineHeight()
	if text == "" {
		return []VisualSegment{{Height: lineHeight}}
	}
	if width <= 0 {
		return []VisualSegment{{
			ByteEnd: len(text),
			Width:   ms.textWidth(text),
			Height:  lineHeight,
		}}
	}

	var segs []VisualSegment
	segStart := 0
	segWidth := 0.0
	hasContent := false

	flush := func(end int) {
		segs = append(segs, VisualSegment{
			Index:     len(segs),
			ByteStart: segStart,
			ByteEnd:   end,
			Width:     segWidth,
			Height:    lineHeight,
		})
		segStart = end
		segWidth = 0
		hasContent = false
	}

	for _, tok := range wrapTokens(text, ms) {
		if tok.space {
			// Whitespace always attaches to the open segment, even when it
			// overhangs the panel edge; the host lets it hang the same way.
			segWidth += tok.width
			continue
		}

		if hasContent && segWidth+tok.width > width+wrapEpsilon {
			flush(tok.byteStart)
		}

		if tok.width <= width+wrapEpsilon {
			segWidth += tok.width
			hasContent = true
			continue
		}

		// Token alone exceeds the panel width: force-break it at grapheme
		// boundaries, packing each row up to the last grapheme that fits
		// and always taking at least one grapheme per row.
		rest := text[tok.byteStart:tok.byteEnd]
		off := tok.byteStart
		state := -1
		for len(rest) > 0 {
			gr, tail, _, nextState := uniseg.FirstGraphemeClusterInString(rest, state)
			gw := ms.advance(gr)
			if hasContent && segWidth+gw > width+wrapEpsilon {
				flush(off)
			}
			segWidth += gw
			hasContent = true
			off += len(gr)
			rest = tail
			state = nextState
		}
	}

	if segStart < len(text) || len(segs) == 0 {
		flush(len(text))
	}
	return segs
}

// wrapTokens splits a line into maximal runs of whitespace and
// non-whitespace grapheme clusters, measuring each run once.
func wrapTokens(text string, ms measurer) []wrapToken {
	var toks []wrapToken
	rest := text
	off := 0
	state := -1
	for len(rest) > 0 {
		gr, tail, _, nextState := uniseg.FirstGraphemeClusterInString(rest, state)
		space := isSpaceGrapheme(gr)
		gw := ms.advance(gr)

		if n := len(toks); n > 0 && toks[n-1].space == space {
			toks[n-1].byteEnd += len(gr)
			toks[n-1].width += gw
		} else {
			toks = append(toks, wrapToken{
				byteStart: off,
				byteEnd:   off + len(gr),
				width:     gw,
				space:     space,
			})
		}

		off += len(gr)
		rest = tail
		state = nextState
	}
	return toks
}

func isSpaceGrapheme(gr string) bool {
	r, _ := utf8.DecodeRuneInString(gr)
	return unicode.IsSpace(r)
}
