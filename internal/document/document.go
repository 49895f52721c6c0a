// Package document provides the facade that sits directly on the
// piece-table buffer: loading and saving files, line-range queries, and
// (line, column) to byte-offset translation.
package document

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-drift/drift/internal/logger"
	"github.com/go-drift/drift/internal/piecetable"
)

// IOError wraps a failure from a file-system collaborator with the path
// that was being accessed.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("document: io error on %q: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Document is the facade over a PieceTable: it tracks the backing file
// path and exposes the operations the rest of the editor needs without
// exposing span-level detail.
type Document struct {
	buffer *piecetable.PieceTable
	path   string
	name   string
}

// New returns an empty document with no backing path.
func New() *Document {
	return &Document{buffer: piecetable.New(nil)}
}

// Load reads path's bytes verbatim (no decoding or replacement of invalid
// UTF-8) and constructs a piece table with them as the original buffer.
// Returns an *IOError on read failure.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}

	doc := &Document{
		buffer: piecetable.New(data),
		path:   path,
		name:   filepath.Base(path),
	}

	if doc.buffer.DocLen() != len(data) {
		logger.ErrorTagf("document", "loaded %d bytes from %q but buffer reports doc_len=%d", len(data), path, doc.buffer.DocLen())
	}

	logger.InfoTagf("document", "loaded %d bytes from %q", len(data), path)
	return doc, nil
}

// Save materializes the document's text and writes it to the stored
// path. No-op when the path is unset. Returns an *IOError on write
// failure.
func (d *Document) Save() error {
	if d.path == "" {
		return nil
	}
	if err := os.WriteFile(d.path, d.buffer.Text(), 0644); err != nil {
		return &IOError{Path: d.path, Err: err}
	}
	logger.InfoTagf("document", "saved %d bytes to %q", d.buffer.DocLen(), d.path)
	return nil
}

// Path returns the document's backing file path, or "" if unset.
func (d *Document) Path() string { return d.path }

// Name returns the document's file name, or "" if unset.
func (d *Document) Name() string { return d.name }

// Len returns the document's byte length.
func (d *Document) Len() int { return d.buffer.DocLen() }

// LineCount returns the document's line count.
func (d *Document) LineCount() int { return d.buffer.LineCount() }

// GetLines returns the content of each line in [start, end), in order.
// Lines past the end of the document are silently omitted.
func (d *Document) GetLines(start, end int) []string {
	var out []string
	for line := start; line < end; line++ {
		if content, ok := d.buffer.LineContent(line); ok {
			out = append(out, content)
		}
	}
	logger.DebugTagf("document", "fetched %d lines from range [%d,%d)", len(out), start, end)
	return out
}

// Insert translates (line, column) to a byte position and inserts
// character there. Silently no-ops when the coordinates don't resolve to
// a valid position.
func (d *Document) Insert(line, column int, character []byte) {
	pos, ok := d.buffer.GetDocPos(line, column)
	if !ok {
		logger.WarnTagf("document", "insert at line %d col %d ignored: position does not resolve", line, column)
		return
	}
	if err := d.buffer.Insert(pos, character); err != nil {
		logger.WarnTagf("document", "insert at byte %d failed: %v", pos, err)
	}
}

// Buffer exposes the underlying piece table for callers (e.g. the
// terminal front end) that need direct byte-offset operations.
func (d *Document) Buffer() *piecetable.PieceTable { return d.buffer }
