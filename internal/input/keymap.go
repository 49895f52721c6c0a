// internal/input/keymap.go
package input

import (
	"github.com/gdamore/tcell/v2"
)

// Keymap maps tcell special keys to editor actions.
type Keymap map[tcell.Key]Action

// InputProcessor translates tcell events into ActionEvents.
type InputProcessor struct {
	keymap Keymap
}

// NewInputProcessor creates a processor with the default keybindings:
// arrows move the cursor, Ctrl-Q quits.
func NewInputProcessor() *InputProcessor {
	p := &InputProcessor{keymap: make(Keymap)}
	p.keymap[tcell.KeyUp] = ActionMoveUp
	p.keymap[tcell.KeyDown] = ActionMoveDown
	p.keymap[tcell.KeyLeft] = ActionMoveLeft
	p.keymap[tcell.KeyRight] = ActionMoveRight
	p.keymap[tcell.KeyCtrlQ] = ActionQuit
	return p
}

// ProcessEvent takes a tcell key event and returns the corresponding
// ActionEvent. Any event that doesn't match an arrow key, Ctrl-Q, or a
// plain printable rune resolves to ActionUnknown and is ignored by the
// caller.
func (p *InputProcessor) ProcessEvent(ev *tcell.EventKey) ActionEvent {
	key := ev.Key()

	if action, ok := p.keymap[key]; ok {
		return ActionEvent{Action: action}
	}

	if key == tcell.KeyRune && ev.Modifiers() == tcell.ModNone {
		return ActionEvent{Action: ActionInsertRune, Rune: ev.Rune()}
	}

	return ActionEvent{Action: ActionUnknown}
}
