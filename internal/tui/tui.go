// internal/tui/tui.go
package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// defaultStyle is the style the screen is cleared with. The core spec
// has no concept of themes; this front end renders plain text.
var defaultStyle = tcell.StyleDefault

// TUI manages the terminal screen using tcell: entering/restoring raw
// mode and the alternate screen, and drawing document content to it.
type TUI struct {
	screen tcell.Screen
}

// New creates and initializes a new TUI instance, entering raw terminal
// mode and the alternate screen.
func New() (*TUI, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create tcell screen: %w", err)
	}
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize tcell screen: %w", err)
	}
	s.SetStyle(defaultStyle)

	return &TUI{screen: s}, nil
}

// Close restores the terminal to its original mode. Safe to call more
// than once; callers should defer it immediately after New succeeds so
// it runs on every exit path, including a panic.
func (t *TUI) Close() {
	if t.screen != nil {
		t.screen.Fini()
	}
}

// PollEvent retrieves the next terminal event, blocking until one
// arrives.
func (t *TUI) PollEvent() tcell.Event {
	return t.screen.PollEvent()
}

// Clear fills the entire screen with the default style.
func (t *TUI) Clear() {
	width, height := t.screen.Size()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			t.screen.SetContent(x, y, ' ', nil, defaultStyle)
		}
	}
}

// Show makes pending screen changes visible.
func (t *TUI) Show() {
	t.screen.Show()
}

// Size returns the terminal's width and height in cells.
func (t *TUI) Size() (int, int) {
	return t.screen.Size()
}

// ShowCursor places the terminal cursor at (x, y).
func (t *TUI) ShowCursor(x, y int) {
	t.screen.ShowCursor(x, y)
}

// Sync forces a full repaint, used after a terminal resize event.
func (t *TUI) Sync() {
	t.screen.Sync()
}
