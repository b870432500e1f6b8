package bubble_adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCellMetricsAdvance(t *testing.T) {
	m := cellMetrics{}

	w, ok := m.Advance("a")
	assert.True(t, ok)
	assert.Equal(t, 1.0, w)

	w, ok = m.Advance("界")
	assert.True(t, ok)
	assert.Equal(t, 2.0, w, "CJK glyphs occupy two cells")

	_, ok = m.Advance("\x01")
	assert.False(t, ok, "control characters are unmeasurable")
}

func TestCellMetricsLineHeightIsOneRow(t *testing.T) {
	assert.Equal(t, 1.0, cellMetrics{}.LineHeight())
}

func TestCellWidthWalksGraphemes(t *testing.T) {
	assert.Equal(t, 3, cellWidth("a界"))
	assert.Equal(t, 1, cellWidth("é"), "combining accent stays one cell")
	assert.Equal(t, 0, cellWidth(""))
}
