package bubble_adapter

import (
	"unicode"
	"unicode/utf8"

	"github.com/restpad/editview/core"
)

// FindMatches scans the document for case-insensitive literal occurrences of
// query and returns them as document-wide byte spans in document order, the
// coordinate space the search highlighter consumes. An empty query matches
// nothing.
//
// Folding is rune-wise over the original text, so spans always carry the
// original line's byte offsets even where lowercasing would change a rune's
// encoded length (e.g. U+0130).
func FindMatches(doc core.Document, query string) []core.MatchSpan {
	if query == "" {
		return nil
	}
	needle := []rune(query)
	for i, r := range needle {
		needle[i] = unicode.ToLower(r)
	}

	var spans []core.MatchSpan
	lineStart := 0
	for i := 0; i < doc.LineCount(); i++ {
		line := doc.Line(i)

		pos := 0
		for pos < len(line) {
			if n, ok := foldedPrefixLen(line[pos:], needle); ok {
				spans = append(spans, core.MatchSpan{
					Start: lineStart + pos,
					End:   lineStart + pos + n,
				})
				pos += n
				continue
			}
			_, size := utf8.DecodeRuneInString(line[pos:])
			pos += size
		}

		lineStart += len(line) + 1
	}
	return spans
}

// foldedPrefixLen reports whether s starts with needle under rune-wise
// lowercase folding, returning the byte length of the matched prefix of s.
func foldedPrefixLen(s string, needle []rune) (int, bool) {
	n := 0
	for _, want := range needle {
		r, size := utf8.DecodeRuneInString(s[n:])
		if size == 0 || unicode.ToLower(r) != want {
			return 0, false
		}
		n += size
	}
	return n, true
}
