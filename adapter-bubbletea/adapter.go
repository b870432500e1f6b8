// Package bubble_adapter hosts the layout engine inside a Bubble Tea
// program. It owns a line document, feeds every edit to the engine's layout
// cache, and renders the wrapped, culled, highlighted slice through a
// bubbles viewport.
package bubble_adapter

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/restpad/editview/adapter-bubbletea/highlighter"
	"github.com/restpad/editview/core"
)

// Theme collects the lipgloss styles used by the adapter's chrome.
type Theme struct {
	GutterStyle     lipgloss.Style
	MatchStyle      lipgloss.Style
	CursorStyle     lipgloss.Style
	StatusLineStyle lipgloss.Style
	FindPromptStyle lipgloss.Style
	MessageStyle    lipgloss.Style
	ErrorStyle      lipgloss.Style
}

var DefaultTheme = Theme{
	GutterStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	MatchStyle:      lipgloss.NewStyle().Background(lipgloss.Color("220")).Foreground(lipgloss.Color("0")),
	CursorStyle:     lipgloss.NewStyle().Reverse(true),
	StatusLineStyle: lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("255")),
	FindPromptStyle: lipgloss.NewStyle().Background(lipgloss.Color("235")).Foreground(lipgloss.Color("255")),
	MessageStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	ErrorStyle:      lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
}

// ContentChangedMsg is emitted after every document mutation, for hosts that
// autosave or re-run dependent work. It mirrors the engine's change channel.
type ContentChangedMsg core.ContentChange

type messageMsg string

type errMsg error

type clearMsg struct{}

type cursorPos struct {
	line int
	col  int // byte offset within the line
}

// actionBox records which intercepted action fired during the current key
// dispatch. It is shared by pointer across Model copies.
type actionBox struct {
	action core.Action
}

// Model is the Bubble Tea component wrapping the layout engine.
type Model struct {
	doc      *Document
	cache    *core.LayoutCache
	gutter   *core.Gutter
	marks    *core.Highlighter
	keys     *core.Interceptor
	notifier *core.Notifier
	pending  *actionBox

	keymap KeyMap
	syntax *highlighter.Highlighter

	viewport viewport.Model
	theme    Theme
	width    int
	height   int
	tabWidth int

	cursor    cursorPos
	scrollRow int // first visible visual row, in rows from document top

	finding bool
	query   string
	matches []core.MatchSpan

	message string
	err     error
	focused bool
}

// New builds an adapter sized to the given terminal area. Two rows are
// reserved for the status and find lines.
func New(width, height int) Model {
	doc := NewDocument("")
	cfg := core.DefaultConfig()
	cache := core.NewLayoutCache(doc, cellMetrics{}, cfg)

	box := &actionBox{}
	keys := core.NewInterceptor()
	keys.Bind(core.KeyEvent{Rune: 'c', Modifiers: core.ModCtrl}, core.ActionCopy)
	for _, a := range []core.Action{core.ActionUndo, core.ActionRedo, core.ActionFind, core.ActionCopy} {
		action := a
		keys.Handle(action, func() { box.action = action })
	}

	m := Model{
		doc:      doc,
		cache:    cache,
		gutter:   core.NewGutter(cache, 1),
		marks:    core.NewHighlighter(cache, core.Geometry{}),
		keys:     keys,
		notifier: core.NewNotifier(16),
		pending:  box,
		keymap:   DefaultKeyMap(),
		viewport: viewport.New(width, max(1, height-2)),
		theme:    DefaultTheme,
		tabWidth: cfg.TabWidth,
	}
	m.SetSize(width, height)
	return m
}

// SetSize resizes the adapter to a new terminal area.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = max(1, height-2)
	m.ensureCursorVisible()
}

// SetContent replaces the document, resetting undo history and scroll state.
func (m *Model) SetContent(content string) {
	m.doc.Reset(content)
	m.cursor = cursorPos{}
	m.scrollRow = 0
	m.afterBulkChange()
}

// Content returns the current document text.
func (m *Model) Content() string {
	return m.doc.Content()
}

// Doc exposes the underlying document, mainly for host-driven persistence.
func (m *Model) Doc() *Document {
	return m.doc
}

// WithTheme replaces the adapter's styles.
func (m *Model) WithTheme(theme Theme) {
	m.theme = theme
}

// SetLanguage enables chroma syntax highlighting with the given language and
// style names.
func (m *Model) SetLanguage(language, theme string) {
	m.syntax = highlighter.New(language, theme)
}

// Bind adds or replaces an interception chord.
func (m *Model) Bind(chord core.KeyEvent, action core.Action) {
	m.keys.Bind(chord, action)
}

// Focus directs keyboard input to the editor.
func (m *Model) Focus() { m.focused = true }

// Blur stops the editor from handling keys.
func (m *Model) Blur() { m.focused = false }

// IsFocused reports whether the editor handles keys.
func (m *Model) IsFocused() bool { return m.focused }

// Matches returns the spans of the active search, in document order.
func (m *Model) Matches() []core.MatchSpan {
	return m.matches
}

// Query returns the active search query.
func (m *Model) Query() string {
	return m.query
}

func (m Model) Init() tea.Cmd {
	return m.listenForChanges()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)

	case tea.KeyMsg:
		if !m.focused {
			break
		}
		if m.finding {
			m.updateFindBar(msg)
			break
		}

		ev := convertKey(msg)
		m.pending.action = core.ActionNone
		if m.keys.Intercept(ev) == core.Consumed {
			if cmd := m.runAction(m.pending.action); cmd != nil {
				cmds = append(cmds, cmd)
			}
		} else {
			m.applyKey(ev)
		}

	case ContentChangedMsg:
		cmds = append(cmds, m.listenForChanges())

	case messageMsg:
		m.message = string(msg)
		m.err = nil
		cmds = append(cmds, dispatchClearMsg())

	case errMsg:
		m.message = ""
		m.err = msg
		cmds = append(cmds, dispatchClearMsg())

	case clearMsg:
		m.message = ""
		m.err = nil

	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.scrollBy(-3)
		case tea.MouseButtonWheelDown:
			m.scrollBy(3)
		}
	}

	// The viewport is a render surface only: scrolling is owned by
	// scrollRow, so key and mouse input never reach it.
	m.viewport.YOffset = 0

	m.render()
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	// Render from current state so the view is correct even when no message
	// has passed through Update since the last mutation.
	m.render()
	status := m.statusLine()
	bottom := m.bottomLine()
	return lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), status, bottom)
}

// runAction executes one consumed interception action.
func (m *Model) runAction(action core.Action) tea.Cmd {
	switch action {
	case core.ActionUndo:
		if m.doc.Undo() {
			m.afterBulkChange()
		}
	case core.ActionRedo:
		if m.doc.Redo() {
			m.afterBulkChange()
		}
	case core.ActionFind:
		m.finding = true
	case core.ActionCopy:
		line := m.doc.Line(m.cursor.line)
		if err := clipboard.WriteAll(line); err != nil {
			return func() tea.Msg { return errMsg(err) }
		}
		return func() tea.Msg { return messageMsg("line copied") }
	}
	return nil
}

// updateFindBar edits the search query while the find bar is open.
func (m *Model) updateFindBar(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyEsc:
		m.finding = false
		m.query = ""
		m.matches = nil
	case tea.KeyEnter:
		m.finding = false
	case tea.KeyBackspace:
		if m.query != "" {
			runes := []rune(m.query)
			m.query = string(runes[:len(runes)-1])
		}
		m.matches = FindMatches(m.doc, m.query)
	case tea.KeyRunes:
		m.query += string(msg.Runes)
		m.matches = FindMatches(m.doc, m.query)
	case tea.KeySpace:
		m.query += " "
		m.matches = FindMatches(m.doc, m.query)
	}
}

// applyKey performs the host-side editing for a forwarded key event.
func (m *Model) applyKey(ev core.KeyEvent) {
	switch {
	case ev.Rune != 0 && ev.Key != core.KeyEscape && ev.Modifiers&core.ModCtrl == 0:
		m.insertText(string(ev.Rune))
	case ev.Key == core.KeyEnter:
		m.breakLine()
	case ev.Key == core.KeyBackspace:
		m.deleteBackward()
	case ev.Key == core.KeyDelete:
		m.deleteForward()
	case ev.Key == core.KeyUp:
		m.moveCursorVertically(-1)
	case ev.Key == core.KeyDown:
		m.moveCursorVertically(1)
	case ev.Key == core.KeyLeft:
		m.moveCursorHorizontally(-1)
	case ev.Key == core.KeyRight:
		m.moveCursorHorizontally(1)
	case ev.Key == core.KeyHome:
		m.cursor.col = 0
	case ev.Key == core.KeyEnd:
		m.cursor.col = len(m.doc.Line(m.cursor.line))
	case ev.Key == core.KeyPageUp:
		m.moveCursorVertically(-m.viewport.Height)
	case ev.Key == core.KeyPageDown:
		m.moveCursorVertically(m.viewport.Height)
	}
	m.ensureCursorVisible()
}

func (m *Model) insertText(text string) {
	line := m.doc.Line(m.cursor.line)
	col := m.cursor.col
	if err := m.doc.SetLine(m.cursor.line, line[:col]+text+line[col:]); err != nil {
		return
	}
	m.cursor.col += len(text)
	m.afterLineEdit(m.cursor.line)
}

func (m *Model) breakLine() {
	if err := m.doc.SplitLine(m.cursor.line, m.cursor.col); err != nil {
		return
	}
	m.cache.LinesInserted(m.cursor.line+1, 1)
	m.cache.LinesChanged(m.cursor.line, m.cursor.line+1)
	m.cursor.line++
	m.cursor.col = 0
	m.afterStructuralEdit(m.cursor.line - 1)
}

func (m *Model) deleteBackward() {
	if m.cursor.col > 0 {
		line := m.doc.Line(m.cursor.line)
		start := prevRuneStart(line, m.cursor.col)
		if err := m.doc.SetLine(m.cursor.line, line[:start]+line[m.cursor.col:]); err != nil {
			return
		}
		m.cursor.col = start
		m.afterLineEdit(m.cursor.line)
		return
	}
	if m.cursor.line == 0 {
		return
	}
	prevLen := len(m.doc.Line(m.cursor.line - 1))
	if err := m.doc.JoinLines(m.cursor.line - 1); err != nil {
		return
	}
	m.cache.LinesDeleted(m.cursor.line, 1)
	m.cache.LinesChanged(m.cursor.line-1, m.cursor.line-1)
	m.cursor.line--
	m.cursor.col = prevLen
	m.afterStructuralEdit(m.cursor.line)
}

func (m *Model) deleteForward() {
	line := m.doc.Line(m.cursor.line)
	if m.cursor.col < len(line) {
		end := nextRuneEnd(line, m.cursor.col)
		if err := m.doc.SetLine(m.cursor.line, line[:m.cursor.col]+line[end:]); err != nil {
			return
		}
		m.afterLineEdit(m.cursor.line)
		return
	}
	if m.cursor.line+1 >= m.doc.LineCount() {
		return
	}
	if err := m.doc.JoinLines(m.cursor.line); err != nil {
		return
	}
	m.cache.LinesDeleted(m.cursor.line+1, 1)
	m.cache.LinesChanged(m.cursor.line, m.cursor.line)
	m.afterStructuralEdit(m.cursor.line)
}

func (m *Model) moveCursorVertically(delta int) {
	m.cursor.line = clamp(m.cursor.line+delta, 0, m.doc.LineCount()-1)
	m.cursor.col = clampToRuneBoundary(m.doc.Line(m.cursor.line), m.cursor.col)
}

func (m *Model) moveCursorHorizontally(delta int) {
	line := m.doc.Line(m.cursor.line)
	if delta < 0 {
		if m.cursor.col > 0 {
			m.cursor.col = prevRuneStart(line, m.cursor.col)
		} else if m.cursor.line > 0 {
			m.cursor.line--
			m.cursor.col = len(m.doc.Line(m.cursor.line))
		}
		return
	}
	if m.cursor.col < len(line) {
		m.cursor.col = nextRuneEnd(line, m.cursor.col)
	} else if m.cursor.line+1 < m.doc.LineCount() {
		m.cursor.line++
		m.cursor.col = 0
	}
}

// afterLineEdit reports an in-place edit of one line to the engine and
// downstream consumers.
func (m *Model) afterLineEdit(line int) {
	m.cache.LinesChanged(line, line)
	if m.syntax != nil {
		m.syntax.InvalidateLine(line)
	}
	m.refreshMatches()
	m.notifier.Notify(core.ContentChange{FirstLine: line, LastLine: line, Revision: m.doc.Revision()})
}

// afterStructuralEdit follows a line split or join, where the cache has
// already been re-keyed by the caller.
func (m *Model) afterStructuralEdit(firstLine int) {
	if m.syntax != nil {
		m.syntax.Invalidate()
	}
	m.refreshMatches()
	m.notifier.Notify(core.ContentChange{
		FirstLine: firstLine,
		LastLine:  m.doc.LineCount() - 1,
		Revision:  m.doc.Revision(),
	})
	m.ensureCursorVisible()
}

// afterBulkChange follows undo, redo, or a content reset: everything may
// have moved, so the whole cache is invalidated.
func (m *Model) afterBulkChange() {
	last := m.doc.LineCount() - 1
	m.cache.LinesChanged(0, last)
	if m.syntax != nil {
		m.syntax.Invalidate()
	}
	m.cursor.line = clamp(m.cursor.line, 0, last)
	m.cursor.col = clampToRuneBoundary(m.doc.Line(m.cursor.line), m.cursor.col)
	m.refreshMatches()
	m.notifier.Notify(core.ContentChange{FirstLine: 0, LastLine: last, Revision: m.doc.Revision()})
	m.ensureCursorVisible()
}

func (m *Model) refreshMatches() {
	if m.query == "" {
		m.matches = nil
		return
	}
	m.matches = FindMatches(m.doc, m.query)
}

// listenForChanges forwards the engine's change channel into the Bubble Tea
// message loop.
func (m Model) listenForChanges() tea.Cmd {
	ch := m.notifier.Changes()
	return func() tea.Msg {
		return ContentChangedMsg(<-ch)
	}
}

func dispatchClearMsg() tea.Cmd {
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return clearMsg{}
	})
}

func (m *Model) statusLine() string {
	pos := fmt.Sprintf(" %d:%d ", m.cursor.line+1, m.cursor.col+1)
	info := ""
	if len(m.matches) > 0 {
		info = fmt.Sprintf("%d matches ", len(m.matches))
	}
	if m.doc.CanUndo() {
		info += "[+] "
	}

	gap := m.width - lipgloss.Width(pos) - lipgloss.Width(info)
	return m.theme.StatusLineStyle.Render(pos + strings.Repeat(" ", max(0, gap)) + info)
}

func (m *Model) bottomLine() string {
	var line string
	switch {
	case m.err != nil:
		line = m.theme.ErrorStyle.Render(m.err.Error())
	case m.message != "":
		line = m.theme.MessageStyle.Render(m.message)
	case m.finding:
		line = m.theme.FindPromptStyle.Render("/" + m.query)
	default:
		var parts []string
		for _, b := range m.keymap.ShortHelp() {
			h := b.Help()
			parts = append(parts, h.Key+" "+h.Desc)
		}
		line = m.theme.GutterStyle.Render(strings.Join(parts, "  "))
	}
	gap := m.width - lipgloss.Width(line)
	if gap > 0 {
		line += strings.Repeat(" ", gap)
	}
	return lipgloss.NewStyle().MaxWidth(m.width).Render(line)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
