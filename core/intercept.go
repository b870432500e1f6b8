package core

import (
	"fmt"
	"strings"
)

// KeyCode represents non-character keys.
type KeyCode int

const (
	KeyUnknown KeyCode = iota
	KeyEnter
	KeyTab
	KeyBackspace
	KeyEscape
	KeySpace

	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown

	KeyDelete
	KeyInsert
)

// KeyModifiers represents modifier keys held during a keystroke.
type KeyModifiers uint8

const (
	ModNone KeyModifiers = 0
	ModCtrl KeyModifiers = 1 << iota
	ModAlt
	ModShift
)

// KeyEvent represents one keyboard chord: a rune or key code plus the
// modifier set. Equality of the whole struct is chord identity.
type KeyEvent struct {
	Rune      rune
	Key       KeyCode
	Modifiers KeyModifiers
}

// String returns a readable chord description, e.g. "Ctrl+Shift+z".
func (k KeyEvent) String() string {
	var parts []string
	if k.Modifiers&ModCtrl != 0 {
		parts = append(parts, "Ctrl")
	}
	if k.Modifiers&ModAlt != 0 {
		parts = append(parts, "Alt")
	}
	if k.Modifiers&ModShift != 0 {
		parts = append(parts, "Shift")
	}

	if k.Rune != 0 {
		parts = append(parts, string(k.Rune))
	} else {
		switch k.Key {
		case KeyEnter:
			parts = append(parts, "Enter")
		case KeyTab:
			parts = append(parts, "Tab")
		case KeyBackspace:
			parts = append(parts, "Backspace")
		case KeyEscape:
			parts = append(parts, "Escape")
		case KeySpace:
			parts = append(parts, "Space")
		case KeyUp:
			parts = append(parts, "Up")
		case KeyDown:
			parts = append(parts, "Down")
		case KeyLeft:
			parts = append(parts, "Left")
		case KeyRight:
			parts = append(parts, "Right")
		case KeyHome:
			parts = append(parts, "Home")
		case KeyEnd:
			parts = append(parts, "End")
		case KeyPageUp:
			parts = append(parts, "PageUp")
		case KeyPageDown:
			parts = append(parts, "PageDown")
		case KeyDelete:
			parts = append(parts, "Delete")
		case KeyInsert:
			parts = append(parts, "Insert")
		case KeyUnknown:
			parts = append(parts, "Unknown")
		default:
			parts = append(parts, fmt.Sprintf("SpecialKey(%d)", k.Key))
		}
	}

	return strings.Join(parts, "+")
}

// Action names an internal command bound to an intercepted chord.
type Action int

const (
	ActionNone Action = iota
	ActionUndo
	ActionRedo
	ActionFind
	ActionCopy
)

// Result tells the caller what to do with a key event after interception.
type Result int

const (
	// Forward delivers the event to the host widget unmodified.
	Forward Result = iota
	// Consumed means the interceptor ran a bound action; the host widget
	// must never see the event.
	Consumed
)

type binding struct {
	chord  KeyEvent
	action Action
}

// Interceptor is a priority filter sitting upstream of all host widget
// input. It holds an ordered chord table; a key event either exactly
// matches one entry and is consumed, or falls through entirely. There are
// no partial or ambiguous matches, and an interception rule always wins
// over any host default binding for the same chord.
type Interceptor struct {
	bindings []binding
	handlers map[Action]func()
}

// NewInterceptor returns an interceptor preloaded with the standard table:
// Ctrl+Z undo, Ctrl+Y and Ctrl+Shift+Z redo, Ctrl+F find.
func NewInterceptor() *Interceptor {
	it := &Interceptor{handlers: make(map[Action]func())}
	it.Bind(KeyEvent{Rune: 'z', Modifiers: ModCtrl}, ActionUndo)
	it.Bind(KeyEvent{Rune: 'y', Modifiers: ModCtrl}, ActionRedo)
	it.Bind(KeyEvent{Rune: 'z', Modifiers: ModCtrl | ModShift}, ActionRedo)
	it.Bind(KeyEvent{Rune: 'f', Modifiers: ModCtrl}, ActionFind)
	return it
}

// Bind appends a chord to the table, or rebinds it when the exact chord is
// already present. Earlier entries keep precedence.
func (it *Interceptor) Bind(chord KeyEvent, action Action) {
	for i := range it.bindings {
		if it.bindings[i].chord == chord {
			it.bindings[i].action = action
			return
		}
	}
	it.bindings = append(it.bindings, binding{chord: chord, action: action})
}

// Handle registers the function executed when a chord bound to action is
// consumed. A chord whose action has no handler is still consumed.
func (it *Interceptor) Handle(action Action, fn func()) {
	it.handlers[action] = fn
}

// Intercept inspects one key event. On an exact table match it executes the
// bound action and returns Consumed; otherwise it returns Forward and the
// host widget processes the event normally.
func (it *Interceptor) Intercept(ev KeyEvent) Result {
	for _, b := range it.bindings {
		if b.chord == ev {
			if fn := it.handlers[b.action]; fn != nil {
				fn()
			}
			return Consumed
		}
	}
	return Forward
}
