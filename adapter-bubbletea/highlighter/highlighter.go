// Package highlighter provides chroma-backed syntax colouring for the text
// shown in the editor pane, with a per-line token cache so edits only
// re-tokenize what changed.
package highlighter

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
)

// Highlighter tokenizes document content and styles the tokens. It is used
// from the UI frame cycle only and carries no locking.
type Highlighter struct {
	lexer      chroma.Lexer
	style      *chroma.Style
	tokens     map[int][]chroma.Token
	styleCache map[chroma.TokenType]lipgloss.Style
}

// TokenSpan is one token's byte range within its logical line.
type TokenSpan struct {
	Token chroma.Token
	Start int
	End   int
}

// New builds a highlighter for the given chroma language and style names.
// Unknown names fall back to plain text and the default style.
func New(language, theme string) *Highlighter {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	return &Highlighter{
		lexer:      lexer,
		style:      styles.Get(theme),
		tokens:     make(map[int][]chroma.Token),
		styleCache: make(map[chroma.TokenType]lipgloss.Style),
	}
}

// Invalidate clears all cached tokens, for whole-document changes such as
// undo or a content reset.
func (h *Highlighter) Invalidate() {
	h.tokens = make(map[int][]chroma.Token)
}

// InvalidateLine drops the cached tokens of one logical line. Multi-line
// constructs may still render stale until the next full tokenize; the cache
// trades that for not re-lexing the document on every keystroke.
func (h *Highlighter) InvalidateLine(line int) {
	delete(h.tokens, line)
}

// Tokenize lexes the whole document and rebuilds the per-line cache. Tokens
// spanning newlines are split so each cached slice covers exactly one line.
func (h *Highlighter) Tokenize(lines []string) {
	h.tokens = make(map[int][]chroma.Token)

	content := strings.Join(lines, "\n")
	if content == "" {
		return
	}

	it, err := h.lexer.Tokenise(nil, content)
	if err != nil {
		// Cache empty slices so a broken lex is not retried every frame.
		for i := range lines {
			h.tokens[i] = []chroma.Token{}
		}
		return
	}

	line := 0
	h.tokens[line] = []chroma.Token{}
	for _, tok := range it.Tokens() {
		value := tok.Value
		for strings.Contains(value, "\n") {
			before, after, _ := strings.Cut(value, "\n")
			if before != "" {
				h.tokens[line] = append(h.tokens[line], chroma.Token{Type: tok.Type, Value: before})
			}
			line++
			h.tokens[line] = []chroma.Token{}
			value = after
		}
		if value != "" {
			h.tokens[line] = append(h.tokens[line], chroma.Token{Type: tok.Type, Value: value})
		}
	}
}

// LineTokens returns the tokens of one logical line, lexing the document
// first if the cache is cold or the line was invalidated.
func (h *Highlighter) LineTokens(line int, lines []string) []chroma.Token {
	if _, ok := h.tokens[line]; !ok {
		h.Tokenize(lines)
	}
	return h.tokens[line]
}

// LineSpans returns the tokens of one logical line annotated with their byte
// ranges, for clipping against wrapped visual segments.
func (h *Highlighter) LineSpans(line int, lines []string) []TokenSpan {
	tokens := h.LineTokens(line, lines)
	spans := make([]TokenSpan, 0, len(tokens))
	at := 0
	for _, tok := range tokens {
		spans = append(spans, TokenSpan{
			Token: tok,
			Start: at,
			End:   at + len(tok.Value),
		})
		at += len(tok.Value)
	}
	return spans
}

// Style converts a chroma token type into a lipgloss style, memoized per
// type.
func (h *Highlighter) Style(tokenType chroma.TokenType) lipgloss.Style {
	if s, ok := h.styleCache[tokenType]; ok {
		return s
	}

	entry := h.style.Get(tokenType)

	s := lipgloss.NewStyle()
	if entry.Colour.IsSet() {
		s = s.Foreground(lipgloss.Color(entry.Colour.String()))
	}
	if entry.Bold == chroma.Yes {
		s = s.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		s = s.Italic(true)
	}
	if entry.Underline == chroma.Yes {
		s = s.Underline(true)
	}

	h.styleCache[tokenType] = s
	return s
}
