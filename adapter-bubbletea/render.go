package bubble_adapter

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/chroma/v2"
	"github.com/charmbracelet/lipgloss"
	"github.com/rivo/uniseg"

	"github.com/restpad/editview/core"
)

// render rebuilds the viewport content from the engine's visible range. The
// engine works in cell coordinates here: one advance unit is one terminal
// column and one height unit is one row.
func (m *Model) render() {
	gutterWidth := int(m.gutter.Width())
	textWidth := max(1, m.viewport.Width-gutterWidth)
	m.cache.SetPanelWidth(float64(textWidth))
	m.marks.SetGeometry(core.Geometry{PaddingLeft: float64(gutterWidth)})
	m.clampScroll()

	vr := m.cache.VisibleRange(float64(m.scrollRow), float64(m.viewport.Height))
	rects := m.marks.Highlight(m.matches, vr)

	labels := make(map[int]string)
	for _, l := range m.gutter.Render(vr) {
		labels[l.Line] = l.Text
	}

	var rows []string
	total := m.doc.LineCount()
	for line := vr.First; line <= vr.Last && line < total; line++ {
		segs, _ := m.cache.GetOrCompute(line)
		for i, seg := range segs {
			prefix := strings.Repeat(" ", gutterWidth)
			if i == 0 {
				prefix = m.theme.GutterStyle.Render(fmt.Sprintf("%*s ", gutterWidth-1, labels[line]))
			}
			isLast := i == len(segs)-1
			rows = append(rows, prefix+m.renderSegment(seg, isLast, rects, gutterWidth))
		}
	}

	// The range starts at vr.FirstY because of overscan; drop the rows above
	// the panel top and cut the slice to the panel height.
	skip := m.scrollRow - int(vr.FirstY)
	if skip < 0 {
		skip = 0
	}
	if skip >= len(rows) {
		rows = nil
	} else {
		rows = rows[skip:]
	}
	if len(rows) > m.viewport.Height {
		rows = rows[:m.viewport.Height]
	}
	m.viewport.SetContent(strings.Join(rows, "\n"))
}

// styleKind orders the styling layers: the cursor wins over a search match,
// which wins over syntax colouring.
type styleKind int

const (
	stylePlain styleKind = iota
	styleSyntax
	styleMatch
	styleCursor
)

type styleClass struct {
	kind  styleKind
	token chroma.TokenType
}

// renderSegment styles one visual row of a logical line. Search-match cell
// ranges come from the engine's highlight rectangles; syntax token ranges
// from the chroma cache; the cursor cell is reversed when focused.
func (m *Model) renderSegment(seg core.VisualSegment, isLast bool, rects []core.HighlightRect, gutterWidth int) string {
	text := m.doc.Line(seg.Line)[seg.ByteStart:seg.ByteEnd]

	type cellRange struct{ from, to int }
	var matchCells []cellRange
	covered := false
	for _, r := range rects {
		if r.Line != seg.Line || r.Segment != seg.Index {
			continue
		}
		from := int(r.X0) - gutterWidth
		to := int(r.X1) - gutterWidth
		if from == to {
			covered = true
			continue
		}
		matchCells = append(matchCells, cellRange{from, to})
	}

	var spans []TokenRange
	if m.syntax != nil {
		spans = m.lineTokenRanges(seg.Line)
	}

	cursorByte := -1
	if m.focused && seg.Line == m.cursor.line {
		if m.cursor.col >= seg.ByteStart && m.cursor.col < seg.ByteEnd {
			cursorByte = m.cursor.col
		}
	}

	var out strings.Builder
	var run strings.Builder
	var runClass styleClass
	haveRun := false

	flush := func() {
		if !haveRun {
			return
		}
		out.WriteString(m.styleFor(runClass).Render(run.String()))
		run.Reset()
		haveRun = false
	}

	rest := text
	byteAt := seg.ByteStart
	cellAt := 0
	for len(rest) > 0 {
		var g string
		g, rest, _, _ = uniseg.FirstGraphemeClusterInString(rest, -1)

		// Tabs are expanded to the engine's fixed advance so the emitted
		// cells line up with the wrap simulator's measurements; a raw tab
		// byte would be expanded elastically by the terminal.
		display := g
		width := cellWidth(g)
		if g == "\t" {
			display = strings.Repeat(" ", m.tabWidth)
			width = m.tabWidth
		}

		class := styleClass{kind: stylePlain}
		for _, span := range spans {
			if byteAt >= span.Start && byteAt < span.End {
				class = styleClass{kind: styleSyntax, token: span.Token}
				break
			}
		}
		for _, mc := range matchCells {
			if cellAt >= mc.from && cellAt < mc.to {
				class = styleClass{kind: styleMatch}
				break
			}
		}
		if byteAt == cursorByte {
			class = styleClass{kind: styleCursor}
		}

		if !haveRun || class != runClass {
			flush()
			runClass = class
			haveRun = true
		}
		run.WriteString(display)

		byteAt += len(g)
		cellAt += width
	}
	flush()

	// A fully covered empty line still shows its newline is matched, and a
	// cursor past the last glyph needs a cell to sit on.
	if text == "" && covered {
		out.WriteString(m.theme.MatchStyle.Render(" "))
	} else if isLast && m.focused && seg.Line == m.cursor.line && m.cursor.col == seg.ByteEnd {
		out.WriteString(m.theme.CursorStyle.Render(" "))
	}

	return out.String()
}

func (m *Model) styleFor(class styleClass) lipgloss.Style {
	switch class.kind {
	case styleCursor:
		return m.theme.CursorStyle
	case styleMatch:
		return m.theme.MatchStyle
	case styleSyntax:
		return m.syntax.Style(class.token)
	default:
		return lipgloss.NewStyle()
	}
}

// TokenRange aliases the highlighter's byte-annotated token span.
type TokenRange struct {
	Token chroma.TokenType
	Start int
	End   int
}

func (m *Model) lineTokenRanges(line int) []TokenRange {
	lines := make([]string, m.doc.LineCount())
	for i := range lines {
		lines[i] = m.doc.Line(i)
	}
	spans := m.syntax.LineSpans(line, lines)
	out := make([]TokenRange, len(spans))
	for i, s := range spans {
		out[i] = TokenRange{Token: s.Token.Type, Start: s.Start, End: s.End}
	}
	return out
}

// cursorRow returns the cursor's visual row counted from the document top.
func (m *Model) cursorRow() int {
	row := 0
	for i := 0; i < m.cursor.line && i < m.doc.LineCount(); i++ {
		row += int(m.cache.LineHeight(i))
	}
	segs, _ := m.cache.GetOrCompute(m.cursor.line)
	for i, seg := range segs {
		if m.cursor.col >= seg.ByteEnd && i != len(segs)-1 {
			row++
			continue
		}
		break
	}
	return row
}

// ensureCursorVisible scrolls the minimum distance that brings the cursor's
// visual row into the panel.
func (m *Model) ensureCursorVisible() {
	row := m.cursorRow()
	if row < m.scrollRow {
		m.scrollRow = row
	}
	if row >= m.scrollRow+m.viewport.Height {
		m.scrollRow = row - m.viewport.Height + 1
	}
	m.clampScroll()
}

func (m *Model) scrollBy(delta int) {
	m.scrollRow += delta
	m.clampScroll()
}

func (m *Model) clampScroll() {
	maxRow := int(m.cache.TotalHeight()) - m.viewport.Height
	m.scrollRow = clamp(m.scrollRow, 0, max(0, maxRow))
}

// prevRuneStart returns the byte index of the rune preceding col.
func prevRuneStart(s string, col int) int {
	_, size := utf8.DecodeLastRuneInString(s[:col])
	return col - size
}

// nextRuneEnd returns the byte index just past the rune starting at col.
func nextRuneEnd(s string, col int) int {
	_, size := utf8.DecodeRuneInString(s[col:])
	return col + size
}

// clampToRuneBoundary clamps col into the line and snaps it back to the
// start of the rune it lands inside.
func clampToRuneBoundary(s string, col int) int {
	if col >= len(s) {
		return len(s)
	}
	if col < 0 {
		return 0
	}
	for col > 0 && !utf8.RuneStart(s[col]) {
		col--
	}
	return col
}
