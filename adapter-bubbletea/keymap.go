package bubble_adapter

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/restpad/editview/core"
)

// KeyMap describes the chords the adapter intercepts before the text area
// sees them. The bindings exist for help output; matching happens in the
// engine's chord table.
type KeyMap struct {
	Undo key.Binding
	Redo key.Binding
	Find key.Binding
	Copy key.Binding
}

// DefaultKeyMap mirrors the engine's preloaded interception table.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Undo: key.NewBinding(
			key.WithKeys("ctrl+z"),
			key.WithHelp("ctrl+z", "undo"),
		),
		Redo: key.NewBinding(
			key.WithKeys("ctrl+y", "ctrl+shift+z"),
			key.WithHelp("ctrl+y", "redo"),
		),
		Find: key.NewBinding(
			key.WithKeys("ctrl+f"),
			key.WithHelp("ctrl+f", "find"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "copy line"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Undo, k.Redo, k.Find, k.Copy}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Undo, k.Redo}, {k.Find, k.Copy}}
}

// convertKey translates a Bubble Tea key message into an engine key event.
// Terminals deliver ctrl chords as dedicated key types, so those unfold back
// into rune-plus-modifier form here.
func convertKey(msg tea.KeyMsg) core.KeyEvent {
	ev := core.KeyEvent{}

	if msg.Alt {
		ev.Modifiers |= core.ModAlt
	}

	switch msg.Type {
	case tea.KeyRunes:
		if len(msg.Runes) > 0 {
			ev.Rune = msg.Runes[0]
		}
	case tea.KeyEnter:
		ev.Key = core.KeyEnter
	case tea.KeySpace:
		ev.Key = core.KeySpace
		ev.Rune = ' '
	case tea.KeyEsc:
		ev.Key = core.KeyEscape
	case tea.KeyBackspace:
		ev.Key = core.KeyBackspace
	case tea.KeyTab:
		ev.Key = core.KeyTab
		ev.Rune = '\t'
	case tea.KeyUp:
		ev.Key = core.KeyUp
	case tea.KeyDown:
		ev.Key = core.KeyDown
	case tea.KeyLeft:
		ev.Key = core.KeyLeft
	case tea.KeyRight:
		ev.Key = core.KeyRight
	case tea.KeyHome:
		ev.Key = core.KeyHome
	case tea.KeyEnd:
		ev.Key = core.KeyEnd
	case tea.KeyDelete:
		ev.Key = core.KeyDelete
	case tea.KeyPgUp:
		ev.Key = core.KeyPageUp
	case tea.KeyPgDown:
		ev.Key = core.KeyPageDown
	case tea.KeyCtrlZ:
		ev.Rune = 'z'
		ev.Modifiers |= core.ModCtrl
	case tea.KeyCtrlY:
		ev.Rune = 'y'
		ev.Modifiers |= core.ModCtrl
	case tea.KeyCtrlF:
		ev.Rune = 'f'
		ev.Modifiers |= core.ModCtrl
	case tea.KeyCtrlC:
		ev.Rune = 'c'
		ev.Modifiers |= core.ModCtrl
	}

	return ev
}
