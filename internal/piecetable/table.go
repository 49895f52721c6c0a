package piecetable

import (
	"github.com/go-drift/drift/internal/logger"
)

// PieceTable is an ordered sequence of spans whose concatenation, in
// order, forms the logical document. It owns two append-only byte
// containers: original (fixed at construction) and add (grows with every
// inserted byte). Deleting text only removes spans; the bytes they
// described remain in their buffer, unreferenced.
//
// A PieceTable has a single writer; concurrent mutation is not supported.
type PieceTable struct {
	original []byte
	add      []byte
	spans    []*Span
}

// New constructs a PieceTable. When initial is non-empty its bytes become
// the fixed original buffer, covered by a single Original span; an empty
// or nil initial leaves the table with no spans.
func New(initial []byte) *PieceTable {
	pt := &PieceTable{}
	if len(initial) == 0 {
		return pt
	}
	pt.original = append([]byte(nil), initial...)
	pt.spans = append(pt.spans, newSpan(Original, 0, len(pt.original), pt.original))
	return pt
}

func (pt *PieceTable) bufferFor(tag BufferTag) []byte {
	if tag == Original {
		return pt.original
	}
	return pt.add
}

// bytesOf returns the byte slice a span references. It never copies.
func (pt *PieceTable) bytesOf(s *Span) []byte {
	buf := pt.bufferFor(s.buffer)
	if s.start < 0 || s.End() > len(buf) {
		invariantViolation("span [%d,%d) exceeds %s buffer of length %d", s.start, s.End(), s.buffer, len(buf))
	}
	return buf[s.start:s.End()]
}

// createSpan builds a span over the existing range [start, start+length)
// of the buffer named by tag. It never appends bytes: new text is written
// to the add buffer by addToBuffer first, and splits rebuild spans over
// ranges that are already there.
func (pt *PieceTable) createSpan(tag BufferTag, start, length int) *Span {
	return newSpan(tag, start, length, pt.bufferFor(tag))
}

// addToBuffer appends text to the add buffer and returns the offset at
// which it was written.
func (pt *PieceTable) addToBuffer(text []byte) int {
	pos := len(pt.add)
	pt.add = append(pt.add, text...)
	return pos
}

// Append adds text to the end of the document. No-op when text is empty.
func (pt *PieceTable) Append(text []byte) {
	if len(text) == 0 {
		return
	}
	pos := pt.addToBuffer(text)
	pt.spans = append(pt.spans, pt.createSpan(Add, pos, len(text)))
	logger.DebugTagf("piecetable", "appended %d bytes", len(text))
}

// Prepend adds text to the start of the document. No-op when text is
// empty.
func (pt *PieceTable) Prepend(text []byte) {
	if len(text) == 0 {
		return
	}
	pos := pt.addToBuffer(text)
	newSpans := make([]*Span, 0, len(pt.spans)+1)
	newSpans = append(newSpans, pt.createSpan(Add, pos, len(text)))
	pt.spans = append(newSpans, pt.spans...)
	logger.DebugTagf("piecetable", "prepended %d bytes", len(text))
}

// DocLen returns the logical document length in bytes.
func (pt *PieceTable) DocLen() int {
	total := 0
	for _, s := range pt.spans {
		total += s.length
	}
	return total
}

// locate finds the span covering byte position pos: the span whose
// document-relative range [start, start+length) contains pos. It is used
// by Insert, which treats a position at a span's start boundary as owned
// by that span (producing the empty elided left part described in the
// package's insert algorithm).
func (pt *PieceTable) locate(pos int) (index int, docStart int, ok bool) {
	cur := 0
	for i, s := range pt.spans {
		end := cur + s.length
		if pos >= cur && pos < end {
			return i, cur, true
		}
		cur = end
	}
	return 0, 0, false
}

// locateEnd finds the span that an exclusive range-end position belongs
// to for delete purposes: when pos falls exactly on a span boundary, the
// span to the left (ending at pos) is preferred, so a delete range peels
// cleanly off existing span edges instead of reaching into the next
// span's first byte.
func (pt *PieceTable) locateEnd(pos int) (index int, docStart int, ok bool) {
	cur := 0
	for i, s := range pt.spans {
		end := cur + s.length
		if pos > cur && pos <= end {
			return i, cur, true
		}
		cur = end
	}
	return 0, 0, false
}

// Insert inserts text at byte_pos. Returns ErrOutOfRange when byte_pos
// exceeds DocLen(); the table is left unchanged in that case.
func (pt *PieceTable) Insert(pos int, text []byte) error {
	docLen := pt.DocLen()
	if pos > docLen || pos < 0 {
		logger.WarnTagf("piecetable", "insert at %d rejected: doc length is %d", pos, docLen)
		return ErrOutOfRange
	}
	if len(text) == 0 {
		return nil
	}
	if pos == 0 {
		pt.Prepend(text)
		return nil
	}
	if pos == docLen {
		pt.Append(text)
		return nil
	}

	idx, start, ok := pt.locate(pos)
	if !ok {
		invariantViolation("locate(%d) failed inside bounds 0..%d", pos, docLen)
	}
	host := pt.spans[idx]
	local := pos - start

	addPos := pt.addToBuffer(text)
	inserted := pt.createSpan(Add, addPos, len(text))

	if local == 0 {
		// Position sits on the host's own start boundary: insert the new
		// span directly before it, eliding the empty left part.
		pt.spans = insertSpanAt(pt.spans, idx, inserted)
		logger.DebugTagf("piecetable", "inserted %d bytes at span boundary (span %d)", len(text), idx)
		return nil
	}

	left := pt.createSpan(host.buffer, host.start, local)
	right := pt.createSpan(host.buffer, host.start+local, host.length-local)

	replacement := []*Span{left, inserted, right}
	pt.spans = replaceSpanAt(pt.spans, idx, replacement)
	logger.DebugTagf("piecetable", "split span %d to insert %d bytes at offset %d", idx, len(text), local)
	return nil
}

// Delete removes the half-open byte range [start, end). Returns
// ErrOutOfRange when start > end or end > DocLen(); start == end is a
// silent no-op.
func (pt *PieceTable) Delete(start, end int) error {
	docLen := pt.DocLen()
	if start < 0 || start > end || end > docLen {
		logger.WarnTagf("piecetable", "delete [%d,%d) rejected: doc length is %d", start, end, docLen)
		return ErrOutOfRange
	}
	if start == end {
		return nil
	}

	p1idx, p1start, ok1 := pt.locate(start)
	p2idx, p2start, ok2 := pt.locateEnd(end)
	if !ok1 || !ok2 {
		invariantViolation("delete range [%d,%d) could not be located in doc of length %d", start, end, docLen)
	}

	if p1idx == p2idx {
		host := pt.spans[p1idx]
		localStart := start - p1start
		localEnd := end - p1start

		var replacement []*Span
		if localStart > 0 {
			replacement = append(replacement, pt.createSpan(host.buffer, host.start, localStart))
		}
		if localEnd < host.length {
			replacement = append(replacement, pt.createSpan(host.buffer, host.start+localEnd, host.length-localEnd))
		}
		pt.spans = replaceSpanAt(pt.spans, p1idx, replacement)
		logger.DebugTagf("piecetable", "deleted [%d,%d) within span %d", start, end, p1idx)
		return nil
	}

	p1 := pt.spans[p1idx]
	p2 := pt.spans[p2idx]
	p1LocalStart := start - p1start
	p2LocalEnd := end - p2start

	var newP1 *Span
	if p1LocalStart > 0 {
		newP1 = pt.createSpan(p1.buffer, p1.start, p1LocalStart)
	}
	var newP2 *Span
	if p2LocalEnd < p2.length {
		newP2 = pt.createSpan(p2.buffer, p2.start+p2LocalEnd, p2.length-p2LocalEnd)
	}

	next := make([]*Span, 0, len(pt.spans))
	next = append(next, pt.spans[:p1idx]...)
	if newP1 != nil {
		next = append(next, newP1)
	}
	if newP2 != nil {
		next = append(next, newP2)
	}
	next = append(next, pt.spans[p2idx+1:]...)
	pt.spans = next
	logger.DebugTagf("piecetable", "deleted [%d,%d) spanning spans %d..%d", start, end, p1idx, p2idx)
	return nil
}

// Text concatenates every span's bytes in order. O(DocLen()).
func (pt *PieceTable) Text() []byte {
	out := make([]byte, 0, pt.DocLen())
	for _, s := range pt.spans {
		out = append(out, pt.bytesOf(s)...)
	}
	return out
}

// slice returns the logical document's bytes in [start, end), walking
// only the spans that overlap the range.
func (pt *PieceTable) slice(start, end int) []byte {
	if end <= start {
		return []byte{}
	}
	out := make([]byte, 0, end-start)
	cur := 0
	for _, s := range pt.spans {
		spanStart := cur
		spanEnd := cur + s.length
		cur = spanEnd
		if spanEnd <= start || spanStart >= end {
			continue
		}
		lo := start
		if spanStart > lo {
			lo = spanStart
		}
		hi := end
		if spanEnd < hi {
			hi = spanEnd
		}
		b := pt.bytesOf(s)
		out = append(out, b[lo-spanStart:hi-spanStart]...)
	}
	return out
}

// LineCount returns 1 plus the total number of newline bytes across the
// document; an empty table reports 1.
func (pt *PieceTable) LineCount() int {
	count := 1
	for _, s := range pt.spans {
		count += len(s.newlines)
	}
	return count
}

// nthNewlinePos returns the absolute document position of the n-th
// newline byte (1-indexed: n=1 is the first newline).
func (pt *PieceTable) nthNewlinePos(n int) (int, bool) {
	count := 0
	docOffset := 0
	for _, s := range pt.spans {
		for _, r := range s.newlines {
			count++
			if count == n {
				return docOffset + r, true
			}
		}
		docOffset += s.length
	}
	return 0, false
}

// lineBounds returns the [start, end) byte range of the given 1-based
// line, excluding its terminating newline.
func (pt *PieceTable) lineBounds(line int) (start, end int, ok bool) {
	if len(pt.spans) == 0 {
		return 0, 0, false
	}
	total := pt.LineCount()
	if line < 1 || line > total {
		return 0, 0, false
	}
	if line > 1 {
		pos, found := pt.nthNewlinePos(line - 1)
		if !found {
			invariantViolation("line %d reported within line count %d but preceding newline not found", line, total)
		}
		start = pos + 1
	}
	if pos, found := pt.nthNewlinePos(line); found {
		end = pos
	} else {
		end = pt.DocLen()
	}
	return start, end, true
}

// LineContent returns the 1-based line's bytes, as a string, never
// including the terminating newline. ok is false when the table is empty
// or line exceeds LineCount().
func (pt *PieceTable) LineContent(line int) (content string, ok bool) {
	start, end, ok := pt.lineBounds(line)
	if !ok {
		return "", false
	}
	return string(pt.slice(start, end)), true
}

// GetDocPos translates a 1-based line and 0-based column to a byte
// offset. ok is false when line is out of range or column exceeds that
// line's length.
func (pt *PieceTable) GetDocPos(line, column int) (pos int, ok bool) {
	if len(pt.spans) == 0 {
		// An empty table still has one line, of length 0.
		if line == 1 && column == 0 {
			return 0, true
		}
		return 0, false
	}
	start, end, ok := pt.lineBounds(line)
	if !ok {
		return 0, false
	}
	lineLen := end - start
	if column < 0 || column > lineLen {
		return 0, false
	}
	return start + column, true
}

// insertSpanAt inserts s into spans at index i, shifting the rest right.
func insertSpanAt(spans []*Span, i int, s *Span) []*Span {
	out := make([]*Span, 0, len(spans)+1)
	out = append(out, spans[:i]...)
	out = append(out, s)
	out = append(out, spans[i:]...)
	return out
}

// replaceSpanAt replaces the span at index i with zero or more spans.
func replaceSpanAt(spans []*Span, i int, replacement []*Span) []*Span {
	out := make([]*Span, 0, len(spans)-1+len(replacement))
	out = append(out, spans[:i]...)
	out = append(out, replacement...)
	out = append(out, spans[i+1:]...)
	return out
}
