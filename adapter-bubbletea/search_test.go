package bubble_adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/restpad/editview/core"
)

func TestFindMatchesReturnsDocumentWideByteOffsets(t *testing.T) {
	doc := NewDocument("Hello\nworld hello")
	spans := FindMatches(doc, "hello")

	assert.Equal(t, []core.MatchSpan{
		{Start: 0, End: 5},
		{Start: 12, End: 17},
	}, spans)
}

func TestFindMatchesIsCaseInsensitive(t *testing.T) {
	doc := NewDocument("FOO foo Foo")
	spans := FindMatches(doc, "foo")
	assert.Len(t, spans, 3)
}

func TestFindMatchesAreNonOverlapping(t *testing.T) {
	doc := NewDocument("aaa")
	spans := FindMatches(doc, "aa")
	assert.Equal(t, []core.MatchSpan{{Start: 0, End: 2}}, spans)
}

func TestFindMatchesEmptyQuery(t *testing.T) {
	doc := NewDocument("anything")
	assert.Nil(t, FindMatches(doc, ""))
}

func TestFindMatchesKeepsOriginalOffsetsPastWideFolds(t *testing.T) {
	// Lowercasing U+0130 changes its encoded length; offsets must still be
	// byte positions in the original line, not in a folded copy.
	doc := NewDocument("İ test")
	spans := FindMatches(doc, "test")

	assert.Equal(t, []core.MatchSpan{{Start: 3, End: 7}}, spans)
	assert.Equal(t, "test", doc.Line(0)[spans[0].Start:spans[0].End])
}

func TestFindMatchesFoldsNonASCIIUppercase(t *testing.T) {
	doc := NewDocument("İstanbul and ÄPFEL")

	spans := FindMatches(doc, "istanbul")
	assert.Equal(t, []core.MatchSpan{{Start: 0, End: 9}}, spans, "match length follows the original bytes")

	spans = FindMatches(doc, "äpfel")
	assert.Len(t, spans, 1)
	assert.Equal(t, "ÄPFEL", doc.Line(0)[spans[0].Start:spans[0].End])
}

func TestFindMatchesOrderedAcrossLines(t *testing.T) {
	doc := NewDocument("x\nx\nx")
	spans := FindMatches(doc, "x")
	assert.Equal(t, []core.MatchSpan{
		{Start: 0, End: 1},
		{Start: 2, End: 3},
		{Start: 4, End: 5},
	}, spans)
}
