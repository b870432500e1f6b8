package core

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(doc Document, widthChars int) *LayoutCache {
	c := NewLayoutCache(doc, newFakeMetrics(8, 20), DefaultConfig())
	c.SetPanelWidth(float64(widthChars) * 8)
	return c
}

func TestCacheHitServesStoredValueWithoutRecompute(t *testing.T) {
	doc := newCountingDoc([]string{"one two three four five six"})
	c := newTestCache(doc, 10)

	segs1, h1 := c.GetOrCompute(0)
	segs2, h2 := c.GetOrCompute(0)

	assert.Equal(t, segs1, segs2)
	assert.Equal(t, h1, h2)
	assert.Equal(t, 1, doc.reads[0], "second request must be a cache hit")
}

func TestCacheEditInvalidatesOnlyTouchedLine(t *testing.T) {
	doc := newCountingDoc(repeatLines(150, "some words that may wrap here"))
	c := newTestCache(doc, 12)

	for i := 0; i < 150; i++ {
		c.GetOrCompute(i)
	}

	doc.edit(75, "edited content on line seventy-five")
	c.LinesChanged(75, 75)

	for i := 0; i < 150; i++ {
		c.GetOrCompute(i)
	}
	for i := 0; i < 150; i++ {
		want := 1
		if i == 75 {
			want = 2
		}
		require.Equal(t, want, doc.reads[i], "line %d", i)
	}
}

func TestCacheMatchesFreshRecomputationAfterUnrelatedEdits(t *testing.T) {
	doc := &fakeDoc{lines: repeatLines(20, "the quick brown fox jumps over")}
	c := newTestCache(doc, 9)
	m := newFakeMetrics(8, 20)

	for i := 0; i < 20; i++ {
		c.GetOrCompute(i)
	}
	for _, i := range []int{3, 11, 17} {
		doc.edit(i, fmt.Sprintf("edit number %d with different text", i))
		c.LinesChanged(i, i)
	}

	for i := 0; i < 20; i++ {
		got, _ := c.GetOrCompute(i)
		want := Wrap(doc.Line(i), 9*8, m, DefaultConfig())
		for j := range want {
			want[j].Line = i
		}
		require.Equal(t, want, got, "line %d", i)
	}
}

func TestCachePanelWidthChangeInvalidatesEverything(t *testing.T) {
	doc := newCountingDoc(repeatLines(10, "resize me until the wrap points move"))
	c := newTestCache(doc, 50)

	for i := 0; i < 10; i++ {
		c.GetOrCompute(i)
	}
	c.SetPanelWidth(25 * 8)
	for i := 0; i < 10; i++ {
		c.GetOrCompute(i)
	}
	for i := 0; i < 10; i++ {
		assert.Equal(t, 2, doc.reads[i], "line %d must be recomputed at the new width", i)
	}
}

func TestCacheFontGenerationBumpInvalidatesEverything(t *testing.T) {
	doc := newCountingDoc(repeatLines(5, "font change moves every wrap point"))
	c := newTestCache(doc, 10)

	for i := 0; i < 5; i++ {
		c.GetOrCompute(i)
	}
	c.BumpFontGeneration()
	for i := 0; i < 5; i++ {
		c.GetOrCompute(i)
	}
	for i := 0; i < 5; i++ {
		assert.Equal(t, 2, doc.reads[i], "line %d", i)
	}
}

func TestCacheInsertShiftsEntriesWithoutRecompute(t *testing.T) {
	lines := make([]string, 6)
	for i := range lines {
		lines[i] = fmt.Sprintf("line number %d content", i)
	}
	doc := newCountingDoc(lines)
	c := newTestCache(doc, 40)

	for i := 0; i < 6; i++ {
		c.GetOrCompute(i)
	}

	doc.insert(2, "freshly inserted line")
	c.LinesInserted(2, 1)

	// Shifted entries keep their layouts and report their new index.
	segs, _ := c.GetOrCompute(5)
	require.NotEmpty(t, segs)
	assert.Equal(t, 5, segs[0].Line)
	assert.Equal(t, "line number 4 content", doc.Line(5))
	assert.Equal(t, 1, doc.reads[4], "old line 4 must not be recomputed after the shift")

	// Only the inserted line itself needs a computation.
	c.GetOrCompute(2)
	assert.Equal(t, 2, doc.reads[2], "one read before insert, one for the new line")
}

func TestCacheDeleteShiftsEntriesWithoutRecompute(t *testing.T) {
	lines := make([]string, 6)
	for i := range lines {
		lines[i] = fmt.Sprintf("line number %d content", i)
	}
	doc := newCountingDoc(lines)
	c := newTestCache(doc, 40)

	for i := 0; i < 6; i++ {
		c.GetOrCompute(i)
	}

	doc.remove(1)
	c.LinesDeleted(1, 1)

	segs, _ := c.GetOrCompute(1)
	require.NotEmpty(t, segs)
	assert.Equal(t, 1, segs[0].Line)
	assert.Equal(t, "line number 2 content", doc.Line(1))
	assert.Equal(t, 1, doc.reads[2], "shifted entry must be served from cache")
}

func TestCacheOutOfRangeChangeIsAbsorbed(t *testing.T) {
	doc := &fakeDoc{lines: repeatLines(3, "short")}
	c := newTestCache(doc, 40)
	for i := 0; i < 3; i++ {
		c.GetOrCompute(i)
	}

	// Host reports an edit past the end of the document: logged, clamped,
	// and the surviving region invalidated. Must not panic or error.
	c.LinesChanged(2, 10)
	segs, h := c.GetOrCompute(2)
	assert.NotEmpty(t, segs)
	assert.Greater(t, h, 0.0)

	_, h = c.GetOrCompute(99)
	assert.Equal(t, 0.0, h)
}

func TestCacheLRUBoundEvictsLeastRecentlyUsed(t *testing.T) {
	doc := &fakeDoc{lines: repeatLines(40, "text")}
	cfg := DefaultConfig()
	cfg.MaxCachedLines = 10
	c := NewLayoutCache(doc, newFakeMetrics(8, 20), cfg)
	c.SetPanelWidth(320)

	for i := 0; i < 40; i++ {
		c.GetOrCompute(i)
	}
	assert.LessOrEqual(t, c.Resident(), 10)

	// The most recently used lines survive.
	countingDoc := newCountingDoc(repeatLines(40, "text"))
	c2 := NewLayoutCache(countingDoc, newFakeMetrics(8, 20), cfg)
	c2.SetPanelWidth(320)
	for i := 0; i < 40; i++ {
		c2.GetOrCompute(i)
	}
	c2.GetOrCompute(39)
	assert.Equal(t, 1, countingDoc.reads[39])
}
