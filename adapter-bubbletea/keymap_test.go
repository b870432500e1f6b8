package bubble_adapter

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/restpad/editview/core"
)

func TestConvertKeyUnfoldsCtrlChords(t *testing.T) {
	assert.Equal(t,
		core.KeyEvent{Rune: 'z', Modifiers: core.ModCtrl},
		convertKey(tea.KeyMsg{Type: tea.KeyCtrlZ}))
	assert.Equal(t,
		core.KeyEvent{Rune: 'y', Modifiers: core.ModCtrl},
		convertKey(tea.KeyMsg{Type: tea.KeyCtrlY}))
	assert.Equal(t,
		core.KeyEvent{Rune: 'f', Modifiers: core.ModCtrl},
		convertKey(tea.KeyMsg{Type: tea.KeyCtrlF}))
}

func TestConvertKeyRunesAndAlt(t *testing.T) {
	ev := convertKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	assert.Equal(t, core.KeyEvent{Rune: 'x'}, ev)

	ev = convertKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}, Alt: true})
	assert.Equal(t, core.KeyEvent{Rune: 'x', Modifiers: core.ModAlt}, ev)
}

func TestConvertKeySpecialKeys(t *testing.T) {
	assert.Equal(t, core.KeyEnter, convertKey(tea.KeyMsg{Type: tea.KeyEnter}).Key)
	assert.Equal(t, core.KeyEscape, convertKey(tea.KeyMsg{Type: tea.KeyEsc}).Key)
	assert.Equal(t, core.KeyPageDown, convertKey(tea.KeyMsg{Type: tea.KeyPgDown}).Key)

	tab := convertKey(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, core.KeyTab, tab.Key)
	assert.Equal(t, '\t', tab.Rune)
}

func TestDefaultKeyMapHelp(t *testing.T) {
	k := DefaultKeyMap()
	assert.Len(t, k.ShortHelp(), 4)
	assert.Len(t, k.FullHelp(), 2)
}
