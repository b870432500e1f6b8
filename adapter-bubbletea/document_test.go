package bubble_adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentAlwaysHasOneLine(t *testing.T) {
	d := NewDocument("")
	assert.Equal(t, 1, d.LineCount())
	assert.Equal(t, "", d.Line(0))

	require.NoError(t, d.RemoveLine(0))
	assert.Equal(t, 1, d.LineCount())
}

func TestDocumentRevisionBumpsOnEveryMutation(t *testing.T) {
	d := NewDocument("one\ntwo")
	rev := d.Revision()

	require.NoError(t, d.SetLine(0, "ONE"))
	assert.Greater(t, d.Revision(), rev)

	rev = d.Revision()
	require.NoError(t, d.InsertLine(1, "mid"))
	assert.Greater(t, d.Revision(), rev)

	rev = d.Revision()
	require.NoError(t, d.RemoveLine(1))
	assert.Greater(t, d.Revision(), rev)
}

func TestDocumentSplitAndJoin(t *testing.T) {
	d := NewDocument("hello world")
	require.NoError(t, d.SplitLine(0, 5))
	assert.Equal(t, []string{"hello", " world"}, []string{d.Line(0), d.Line(1)})

	require.NoError(t, d.JoinLines(0))
	assert.Equal(t, "hello world", d.Content())
}

func TestDocumentRejectsOutOfRangeEdits(t *testing.T) {
	d := NewDocument("only")
	assert.Error(t, d.SetLine(5, "x"))
	assert.Error(t, d.InsertLine(-1, "x"))
	assert.Error(t, d.RemoveLine(1))
	assert.Error(t, d.SplitLine(0, 99))
	assert.Error(t, d.JoinLines(0))
}

func TestDocumentUndoRedoRoundTrip(t *testing.T) {
	d := NewDocument("alpha")
	require.NoError(t, d.SetLine(0, "beta"))
	require.NoError(t, d.SetLine(0, "gamma"))

	assert.True(t, d.Undo())
	assert.Equal(t, "beta", d.Content())
	assert.True(t, d.Undo())
	assert.Equal(t, "alpha", d.Content())
	assert.False(t, d.Undo(), "history exhausted")

	assert.True(t, d.Redo())
	assert.Equal(t, "beta", d.Content())
	assert.True(t, d.Redo())
	assert.Equal(t, "gamma", d.Content())
	assert.False(t, d.Redo())
}

func TestDocumentNewEditInvalidatesRedoBranch(t *testing.T) {
	d := NewDocument("a")
	require.NoError(t, d.SetLine(0, "b"))
	require.True(t, d.Undo())
	require.True(t, d.CanRedo())

	require.NoError(t, d.SetLine(0, "c"))
	assert.False(t, d.CanRedo())
}

func TestDocumentUndoBumpsRevision(t *testing.T) {
	// The layout cache keys on revision monotonicity; undo must never reuse
	// an older revision number.
	d := NewDocument("a")
	require.NoError(t, d.SetLine(0, "b"))
	rev := d.Revision()
	require.True(t, d.Undo())
	assert.Greater(t, d.Revision(), rev)
}

func TestDocumentResetClearsHistory(t *testing.T) {
	d := NewDocument("a")
	require.NoError(t, d.SetLine(0, "b"))
	d.Reset("fresh\r\nstart")

	assert.Equal(t, 2, d.LineCount())
	assert.Equal(t, "fresh", d.Line(0))
	assert.False(t, d.CanUndo())
}

func TestDocumentByteOffset(t *testing.T) {
	d := NewDocument("ab\ncde\nf")
	assert.Equal(t, 0, d.ByteOffset(0, 0))
	assert.Equal(t, 3, d.ByteOffset(1, 0))
	assert.Equal(t, 5, d.ByteOffset(1, 2))
	assert.Equal(t, 7, d.ByteOffset(2, 0))
}
