package core

import "log"

// LayoutCache memoizes per-line wrap results and heights. Entries are held
// in an arena indexed by logical line, and staleness is structural: an entry
// is served only while its recorded (panel width, font generation) match the
// cache's current values and the line has not been edited since the entry
// was computed. Edits invalidate single entries; line inserts and deletes
// re-key subsequent entries by shifting their index without recomputation;
// width and font changes invalidate everything at once through the
// generation check.
//
// The cache is mutated only from the UI thread's frame cycle, so it carries
// no locking.
type LayoutCache struct {
	doc Document
	ms  measurer
	cfg Config

	width   float64
	fontGen uint64

	entries  []*cacheEntry
	resident int
	tick     uint64
}

type cacheEntry struct {
	revision uint64
	width    float64
	fontGen  uint64
	segments []VisualSegment
	height   float64
	lastUse  uint64
}

// NewLayoutCache builds an empty cache over the host document.
func NewLayoutCache(doc Document, m Metrics, cfg Config) *LayoutCache {
	return &LayoutCache{
		doc: doc,
		ms:  newMeasurer(m, cfg),
		cfg: cfg,
	}
}

// SetPanelWidth records the current wrap width. Entries computed at another
// width become structurally stale; nothing is recomputed until asked for.
func (c *LayoutCache) SetPanelWidth(w float64) {
	c.width = w
}

// PanelWidth returns the wrap width layouts are currently computed at.
func (c *LayoutCache) PanelWidth() float64 {
	return c.width
}

// SetMetrics swaps the measurement source and bumps the font generation,
// invalidating every resident entry.
func (c *LayoutCache) SetMetrics(m Metrics) {
	c.ms = newMeasurer(m, c.cfg)
	c.fontGen++
}

// BumpFontGeneration invalidates all entries after an in-place font or
// metric change the cache cannot observe directly.
func (c *LayoutCache) BumpFontGeneration() {
	c.fontGen++
}

// FontGeneration returns the current font generation counter.
func (c *LayoutCache) FontGeneration() uint64 {
	return c.fontGen
}

// LinesChanged invalidates the entries for the inclusive line range
// [first, last] after an in-place edit. A range beyond the current document
// length is a host contract violation: it is logged and clamped, and the
// surviving portion is invalidated defensively.
func (c *LayoutCache) LinesChanged(first, last int) {
	total := c.doc.LineCount()
	if first < 0 || last >= total || last < first {
		log.Printf("editview: %v: lines %d-%d of %d; invalidating defensively", ErrLineOutOfRange, first, last, total)
		first = clampInt(first, 0, total-1)
		last = clampInt(last, first, total-1)
	}
	c.syncLen()
	for i := first; i <= last && i < len(c.entries); i++ {
		c.drop(i)
	}
}

// LinesInserted re-keys entries at index >= at by shifting them up count
// positions. Their content is unchanged, so nothing is recomputed; only the
// line index recorded in their segments moves.
func (c *LayoutCache) LinesInserted(at, count int) {
	if count <= 0 {
		return
	}
	if at < 0 || at > len(c.entries) {
		log.Printf("editview: %v: insert at %d of %d; dropping cache", ErrLineOutOfRange, at, len(c.entries))
		c.clear()
		return
	}
	blank := make([]*cacheEntry, count)
	c.entries = append(c.entries[:at], append(blank, c.entries[at:]...)...)
	c.rekeyFrom(at + count)
}

// LinesDeleted drops the entries for the removed lines and re-keys the rest
// down, again without recomputation.
func (c *LayoutCache) LinesDeleted(at, count int) {
	if count <= 0 {
		return
	}
	if at < 0 || at+count > len(c.entries) {
		log.Printf("editview: %v: delete %d at %d of %d; dropping cache", ErrLineOutOfRange, count, at, len(c.entries))
		c.clear()
		return
	}
	for i := at; i < at+count; i++ {
		c.drop(i)
	}
	c.entries = append(c.entries[:at], c.entries[at+count:]...)
	c.rekeyFrom(at)
}

// GetOrCompute returns the visual segments and total height of a logical
// line, serving a valid entry in O(1) and otherwise invoking the wrap
// simulator and storing the result under the current key.
func (c *LayoutCache) GetOrCompute(line int) ([]VisualSegment, float64) {
	total := c.doc.LineCount()
	if line < 0 || line >= total {
		log.Printf("editview: %v: layout request for line %d of %d", ErrLineOutOfRange, line, total)
		return nil, 0
	}
	c.syncLen()
	c.tick++

	if e := c.entries[line]; e != nil && e.width == c.width && e.fontGen == c.fontGen {
		e.lastUse = c.tick
		return e.segments, e.height
	}

	segs := wrapLine(c.doc.Line(line), c.width, c.ms)
	var height float64
	for i := range segs {
		segs[i].Line = line
		height += segs[i].Height
	}

	if c.entries[line] == nil {
		c.resident++
	}
	c.entries[line] = &cacheEntry{
		revision: c.doc.Revision(),
		width:    c.width,
		fontGen:  c.fontGen,
		segments: segs,
		height:   height,
		lastUse:  c.tick,
	}
	c.evict()
	return segs, height
}

// LineHeight returns the layout height of a single logical line.
func (c *LayoutCache) LineHeight(line int) float64 {
	_, h := c.GetOrCompute(line)
	return h
}

// Resident returns the number of entries currently held, for tests and
// memory accounting.
func (c *LayoutCache) Resident() int {
	return c.resident
}

func (c *LayoutCache) syncLen() {
	total := c.doc.LineCount()
	switch {
	case len(c.entries) < total:
		c.entries = append(c.entries, make([]*cacheEntry, total-len(c.entries))...)
	case len(c.entries) > total:
		for i := total; i < len(c.entries); i++ {
			c.drop(i)
		}
		c.entries = c.entries[:total]
	}
}

func (c *LayoutCache) drop(i int) {
	if c.entries[i] != nil {
		c.entries[i] = nil
		c.resident--
	}
}

func (c *LayoutCache) clear() {
	c.entries = nil
	c.resident = 0
}

// rekeyFrom rewrites the line index recorded in shifted entries. This is the
// bulk re-key pass after an insert or delete; segment geometry is untouched.
func (c *LayoutCache) rekeyFrom(at int) {
	for i := at; i < len(c.entries); i++ {
		e := c.entries[i]
		if e == nil {
			continue
		}
		for j := range e.segments {
			e.segments[j].Line = i
		}
	}
}

// evict enforces the optional LRU bound on resident entries.
func (c *LayoutCache) evict() {
	maxLines := c.cfg.MaxCachedLines
	if maxLines <= 0 || c.resident <= maxLines {
		return
	}
	for c.resident > maxLines {
		oldest := -1
		var oldestUse uint64
		for i, e := range c.entries {
			if e == nil {
				continue
			}
			if oldest == -1 || e.lastUse < oldestUse {
				oldest = i
				oldestUse = e.lastUse
			}
		}
		if oldest == -1 {
			return
		}
		c.drop(oldest)
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
