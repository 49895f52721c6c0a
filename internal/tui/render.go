// internal/tui/render.go
package tui

import (
	"github.com/go-drift/drift/internal/document"
)

// DrawDocument renders the document's lines starting at topLine (1-based)
// down to the screen height, then places the terminal cursor at
// (cursorLine, cursorCol) translated into screen coordinates. It does not
// interpret tabs or wide characters; columns map one cell per byte.
func (t *TUI) DrawDocument(doc *document.Document, topLine, cursorLine, cursorCol int) {
	t.Clear()

	_, height := t.Size()
	lines := doc.GetLines(topLine, topLine+height)

	for row, line := range lines {
		for col, b := range []byte(line) {
			t.screen.SetContent(col, row, rune(b), nil, defaultStyle)
		}
	}

	screenRow := cursorLine - topLine
	if screenRow < 0 {
		screenRow = 0
	}
	t.ShowCursor(cursorCol, screenRow)
	t.Show()
}
