package core

// VisibleRange determines the minimal contiguous range of logical lines
// whose rendered rows intersect the panel, walking line heights from the
// document top. The walk accumulates per-line heights rather than doing
// index arithmetic because wrapped lines occupy several visual rows each.
// The configured overscan margin extends the range by whole lines above and
// below to avoid popping during fast scroll.
//
// The result is a per-frame decision from current state; it is never cached
// across frames.
func (c *LayoutCache) VisibleRange(scrollOffset, panelHeight float64) ViewportRange {
	total := c.doc.LineCount()
	if total == 0 || panelHeight <= 0 {
		return ViewportRange{}
	}
	if scrollOffset < 0 {
		scrollOffset = 0
	}

	// Walk to the scroll anchor: the first line whose bottom edge sits
	// below the panel top.
	y := 0.0
	first := 0
	for first < total {
		h := c.LineHeight(first)
		if y+h > scrollOffset {
			break
		}
		y += h
		first++
	}
	if first == total {
		// Scrolled past the end; pin to the final line.
		first = total - 1
		y -= c.LineHeight(first)
	}
	firstY := y

	// Accumulate until the panel bottom is covered.
	last := first
	for line := first; line < total; line++ {
		y += c.LineHeight(line)
		last = line
		if y >= scrollOffset+panelHeight {
			break
		}
	}

	for i := 0; i < c.cfg.OverscanLines && first > 0; i++ {
		first--
		firstY -= c.LineHeight(first)
	}
	last = clampInt(last+c.cfg.OverscanLines, last, total-1)

	return ViewportRange{
		First:        first,
		Last:         last,
		ScrollOffset: scrollOffset,
		FirstY:       firstY,
	}
}

// TotalHeight lays out every line and returns the document's full pixel
// height. Useful for scrollbar sizing; O(n) on first call, O(n) cache hits
// afterwards.
func (c *LayoutCache) TotalHeight() float64 {
	var h float64
	for i := 0; i < c.doc.LineCount(); i++ {
		h += c.LineHeight(i)
	}
	return h
}
