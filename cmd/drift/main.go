// cmd/drift/main.go
package main

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/go-drift/drift/internal/config"
	"github.com/go-drift/drift/internal/document"
	"github.com/go-drift/drift/internal/input"
	"github.com/go-drift/drift/internal/logger"
	"github.com/go-drift/drift/internal/tui"
)

func main() {
	flags := &config.Flags{}
	args := flags.ParseFlags()

	cfg, err := config.LoadConfig(*flags.ConfigFilePath, flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "WARN: failed to load config: %v\n", err)
	}

	logger.Init(cfg.Logger)
	logger.EnableFilterDebug(*flags.DebugLog)
	logger.Infof("Starting drift editor...")

	var filePath string
	if len(args) > 0 {
		filePath = args[0]
	}

	doc := openDocument(filePath)

	tuiManager, err := tui.New()
	if err != nil {
		logger.Errorf("TUI initialization failed: %v", err)
		os.Exit(1)
	}
	defer tuiManager.Close()

	if err := run(tuiManager, doc); err != nil {
		tuiManager.Close()
		logger.Errorf("Application exited with error: %v", err)
		os.Exit(1)
	}

	logger.Infof("drift editor finished.")
}

// openDocument loads filePath if given, reporting and falling back to an
// empty document on failure.
func openDocument(filePath string) *document.Document {
	if filePath == "" {
		logger.Infof("No file specified, starting empty.")
		return document.New()
	}

	doc, err := document.Load(filePath)
	if err != nil {
		logger.Errorf("Failed to load %q: %v. Starting with an empty document.", filePath, err)
		return document.New()
	}
	return doc
}

// cursor is the minimal (line, column) state this front end tracks; the
// piece table itself has no notion of a cursor.
type cursor struct {
	line int
	col  int
}

func run(t *tui.TUI, doc *document.Document) error {
	proc := input.NewInputProcessor()
	cur := cursor{line: 1, col: 0}
	topLine := 1

	for {
		_, height := t.Size()
		if cur.line < topLine {
			topLine = cur.line
		} else if cur.line >= topLine+height {
			topLine = cur.line - height + 1
		}

		t.DrawDocument(doc, topLine, cur.line, cur.col)

		ev := t.PollEvent()
		switch e := ev.(type) {
		case *tcell.EventResize:
			t.Sync()
		case *tcell.EventKey:
			action := proc.ProcessEvent(e)
			switch action.Action {
			case input.ActionQuit:
				return nil
			case input.ActionMoveUp:
				if cur.line > 1 {
					cur.line--
					cur.col = clampColumn(doc, cur.line, cur.col)
				}
			case input.ActionMoveDown:
				if cur.line < doc.LineCount() {
					cur.line++
					cur.col = clampColumn(doc, cur.line, cur.col)
				}
			case input.ActionMoveLeft:
				if cur.col > 0 {
					cur.col--
				}
			case input.ActionMoveRight:
				cur.col = clampColumn(doc, cur.line, cur.col+1)
			case input.ActionInsertRune:
				doc.Insert(cur.line, cur.col, []byte(string(action.Rune)))
				cur.col++
			}
		}
	}
}

// clampColumn keeps col within [0, len(line)] bytes for the given line.
func clampColumn(doc *document.Document, line, col int) int {
	lines := doc.GetLines(line, line+1)
	if len(lines) == 0 {
		return 0
	}
	if max := len(lines[0]); col > max {
		return max
	}
	if col < 0 {
		return 0
	}
	return col
}
