// Package piecetable implements a piece-table text buffer: an in-memory
// document represented as an ordered sequence of fragments ("pieces")
// drawn from an immutable original buffer and an append-only add buffer.
// It indexes text by char position, byte position and (optionally) line
// number, and is built for editors where edits are frequent and usually
// local.
package piecetable

import (
	"github.com/oligo/piecetable/internal/charutil"
	"golang.org/x/exp/slices"
)

// insertCursor remembers where the previous insertion landed, so that a
// directly-following insertion can extend that piece in place instead of
// splicing in a new one (the contiguous-insert fast path, WithContiguousInserts).
type insertCursor struct {
	// charPos is the char position immediately after the previous insertion.
	charPos int
	// pieceIdx is the index of the piece that insertion created or extended.
	pieceIdx int
}

// PieceTable is an editable, in-memory document: an ordered list of pieces
// referencing an immutable original buffer and an append-only add buffer.
// It is not safe for concurrent use: callers must serialize every mutation
// with respect to all readers, including outstanding Slices.
type PieceTable struct {
	pieces  []piece
	buffers *buffers
	cfg     config

	lenBytes int
	lenChars int
	lenLines int

	lastInsert *insertCursor

	// version is bumped on every mutation; Slice stamps it at creation and
	// panics on use if it no longer matches, standing in for the borrow
	// checker the original Rust source relies on.
	version uint64
}

// New creates a PieceTable whose initial contents are initial.
func New(initial string, opts ...Option) *PieceTable {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	initialBytes := []byte(initial)
	bufs := newBuffers(initialBytes, cfg.lines, cfg.unicodeLineBreaks)

	p := piece{
		buffer:         Original,
		start:          0,
		lenBytes:       len(initialBytes),
		lenChars:       charutil.Count(initialBytes),
		firstLineBreak: -1,
	}
	if len(bufs.original.lineBreaks) > 0 {
		p.firstLineBreak = 0
	}

	return &PieceTable{
		pieces:   []piece{p},
		buffers:  bufs,
		cfg:      cfg,
		lenBytes: len(initialBytes),
		lenChars: charutil.Count(initialBytes),
		lenLines: 1 + len(bufs.original.lineBreaks),
	}
}

// LenBytes returns the total number of bytes in the document.
func (pt *PieceTable) LenBytes() int { return pt.lenBytes }

// LenChars returns the total number of chars (Unicode scalar values) in
// the document.
func (pt *PieceTable) LenChars() int { return pt.lenChars }

// LenLines returns the number of lines in the document. An empty document
// has exactly one (empty) line. Only meaningful with WithLines; without
// it, this always returns 1.
func (pt *PieceTable) LenLines() int { return pt.lenLines }

// Text allocates and returns the full document contents.
func (pt *PieceTable) Text() string {
	buf := make([]byte, 0, pt.lenBytes)
	for _, p := range pt.pieces {
		start, end := p.byteRange()
		buf = append(buf, pt.buffers.at(p.buffer)[start:end]...)
	}
	return string(buf)
}

// Iter calls yield once per piece, in order, with that piece's text as a
// newly allocated string (a copy of the buffer bytes, not a view of them). It stops early if yield returns false. Concatenating every
// yielded string reproduces Text().
func (pt *PieceTable) Iter(yield func(string) bool) {
	for _, p := range pt.pieces {
		start, end := p.byteRange()
		if !yield(string(pt.buffers.at(p.buffer)[start:end])) {
			return
		}
	}
}

// Insert inserts text at char position charIdx. Inserting an empty string
// leaves the table unchanged.
//
// Panics if charIdx is greater than LenChars(), or if the insertion point
// falls between the CR and LF of an existing CRLF pair.
func (pt *PieceTable) Insert(charIdx int, text string) {
	if charIdx < 0 || charIdx > pt.lenChars {
		panic("piecetable: index out of bounds")
	}
	if len(text) == 0 {
		return
	}

	textBytes := []byte(text)
	c := charutil.Count(textBytes)
	b := len(textBytes)

	if pt.cfg.contiguousInserts && pt.lastInsert != nil && pt.lastInsert.charPos == charIdx {
		pt.extendPiece(textBytes, pt.lastInsert.pieceIdx)
		pt.lenChars += c
		pt.lenBytes += b
		pt.lastInsert.charPos += c
		pt.version++
		return
	}

	pi, rci := pt.pieceAtChar(charIdx)

	var newPieceIdx int
	switch {
	case len(pt.pieces) == 0:
		newPieceIdx = pt.insertPiece(0, textBytes)
	case rci == 0:
		newPieceIdx = pt.insertPiece(pi, textBytes)
	case rci == pt.pieces[pi].lenChars:
		newPieceIdx = pt.insertPiece(pi+1, textBytes)
	default:
		newPieceIdx = pt.splitPieceAndInsert(pi, rci, textBytes)
	}

	pt.lenChars += c
	pt.lenBytes += b

	if pt.cfg.contiguousInserts {
		pt.lastInsert = &insertCursor{charPos: charIdx + c, pieceIdx: newPieceIdx}
	} else {
		pt.lastInsert = nil
	}
	pt.version++
}

// Remove deletes the text in the given char range. Ranges with start >= end
// after bound normalization are a no-op.
func (pt *PieceTable) Remove(r Range) {
	start, end := r.simplify(pt.lenChars)
	if start >= end {
		return
	}

	if pt.lastInsert != nil && pt.lastInsert.charPos >= start {
		pt.lastInsert = nil
	}

	startPieceIdx, startCharIdx := pt.pieceAtChar(start)
	endPieceIdx, endCharIdx := pt.pieceAtChar(end)

	if startPieceIdx == endPieceIdx {
		pt.removeWithinPiece(startPieceIdx, startCharIdx, endCharIdx)
	} else {
		pt.trimPieceStart(endPieceIdx, endCharIdx)
		pt.removePieces(startPieceIdx+1, endPieceIdx)
		pt.trimPieceEnd(startPieceIdx, startCharIdx)
	}
	pt.version++
}

// Line returns a Slice over the contents of line lineIdx (0-indexed),
// excluding the terminating line-break bytes. Without WithLines the
// document is a single line, so Line(0) covers all of it.
//
// Panics if lineIdx >= LenLines().
func (pt *PieceTable) Line(lineIdx int) Slice {
	if lineIdx < 0 || lineIdx >= pt.lenLines {
		panic("piecetable: line index out of bounds")
	}

	start := position{0, 0}
	if lineIdx > 0 {
		target := lineIdx - 1
		pt.walkLineBreaks(func(ordinal, pi, startInPiece, lenBytes int) bool {
			if ordinal != target {
				return false
			}
			start = position{pi, startInPiece + lenBytes}
			return true
		})
	}

	var end position
	if lineIdx == pt.lenLines-1 {
		if last := len(pt.pieces) - 1; last >= 0 {
			end = position{last, pt.pieces[last].lenBytes}
		} else {
			end = position{0, 0}
		}
	} else {
		target := lineIdx
		pt.walkLineBreaks(func(ordinal, pi, startInPiece, _ int) bool {
			if ordinal != target {
				return false
			}
			end = position{pi, startInPiece}
			return true
		})
	}

	return newSlice(start, end, pt)
}

// walkLineBreaks visits every line break in document order, numbering them
// 0, 1, 2, ... and reporting each one's piece index, byte offset relative
// to that piece's start, and byte length. It stops as soon as fn returns
// true.
func (pt *PieceTable) walkLineBreaks(fn func(ordinal, pieceIdx, startInPiece, lenBytes int) bool) {
	ordinal := 0
	for pi, p := range pt.pieces {
		if p.firstLineBreak < 0 {
			continue
		}
		reg := pt.buffers.lineBreaksOf(p.buffer)
		pieceStart, pieceEnd := p.byteRange()
		for idx := p.firstLineBreak; idx < len(reg); idx++ {
			lb := reg[idx]
			if lb.byteOffset >= pieceEnd {
				break
			}
			if fn(ordinal, pi, lb.byteOffset-pieceStart, lb.kind.LenBytes()) {
				return
			}
			ordinal++
		}
	}
}

// pieceAtChar locates the piece containing char position ci, returning its
// index and ci's offset relative to that piece's start.
func (pt *PieceTable) pieceAtChar(ci int) (pieceIdx, relativeCharIdx int) {
	if ci > pt.lenChars {
		panic("piecetable: index out of bounds")
	}
	if ci == 0 || len(pt.pieces) == 0 {
		return 0, 0
	}

	charOffset := 0
	for i, p := range pt.pieces {
		charOffset += p.lenChars
		if charOffset >= ci {
			return i, ci - (charOffset - p.lenChars)
		}
	}

	panic("piecetable: index out of bounds")
}

// insertPiece creates a new add-piece for text and splices it in at index,
// returning the new piece's index.
func (pt *PieceTable) insertPiece(index int, text []byte) int {
	start, firstLB, addedLB := pt.buffers.appendToAdd(text)
	pt.lenLines += addedLB

	p := piece{
		buffer:         Add,
		start:          start,
		lenBytes:       len(text),
		lenChars:       charutil.Count(text),
		firstLineBreak: firstLB,
	}
	pt.pieces = slices.Insert(pt.pieces, index, p)
	return index
}

// extendPiece implements the contiguous-insert fast path: text is appended
// to the add buffer and pieces[pieceIdx] is grown in place, on the
// assumption (debug precondition) that it is an add-piece whose byte range
// ends exactly at the current end of the add buffer.
func (pt *PieceTable) extendPiece(text []byte, pieceIdx int) {
	p := &pt.pieces[pieceIdx]
	_, firstLB, addedLB := pt.buffers.appendToAdd(text)
	pt.lenLines += addedLB

	p.lenBytes += len(text)
	p.lenChars += charutil.Count(text)
	if p.firstLineBreak < 0 && firstLB >= 0 {
		p.firstLineBreak = firstLB
	}
}

// splitPieceAndInsert splits pieces[pieceIdx] at relative char index
// charIdx, keeping the leading part at pieceIdx and splicing
// [newAddPiece, after] right behind it, and returns the new add-piece's
// index.
func (pt *PieceTable) splitPieceAndInsert(pieceIdx, charIdx int, text []byte) int {
	p := &pt.pieces[pieceIdx]

	pieceText := pt.buffers.at(p.buffer)[p.start : p.start+p.lenBytes]
	byteIdx := charutil.ToByteIndex(pieceText, charIdx)

	if byteIdx > 0 && byteIdx < len(pieceText) &&
		pieceText[byteIdx-1] == '\r' && pieceText[byteIdx] == '\n' {
		panic("piecetable: inserting inside a CRLF sequence is invalid")
	}

	after := piece{
		buffer:         p.buffer,
		start:          p.start + byteIdx,
		lenBytes:       p.lenBytes - byteIdx,
		lenChars:       p.lenChars - charIdx,
		firstLineBreak: pt.buffers.firstLineBreakIn(p.buffer, p.start+byteIdx, p.lenBytes-byteIdx),
	}

	p.lenBytes = byteIdx
	p.lenChars = charIdx
	p.firstLineBreak = pt.buffers.firstLineBreakIn(p.buffer, p.start, p.lenBytes)

	newIdx := pt.insertPiece(pieceIdx+1, text)
	pt.pieces = slices.Insert(pt.pieces, pieceIdx+2, after)
	return newIdx
}

// removeWithinPiece removes the char range [startCharIdx, endCharIdx) that
// lies entirely inside pieces[pieceIdx].
func (pt *PieceTable) removeWithinPiece(pieceIdx, startCharIdx, endCharIdx int) {
	p := &pt.pieces[pieceIdx]

	if startCharIdx == 0 && endCharIdx == p.lenChars {
		pt.lenBytes -= p.lenBytes
		pt.lenChars -= p.lenChars
		pt.lenLines -= pt.buffers.lineBreaksCountInRange(p.buffer, p.start, p.start+p.lenBytes)
		pt.pieces = slices.Delete(pt.pieces, pieceIdx, pieceIdx+1)
		return
	}

	text := pt.buffers.at(p.buffer)[p.start : p.start+p.lenBytes]
	startOffset := charutil.ToByteIndex(text, startCharIdx)
	endOffset := charutil.ToByteIndex(text, endCharIdx)

	origStart, origLenBytes, origLenChars := p.start, p.lenBytes, p.lenChars
	removedLineBreaks := pt.buffers.lineBreaksCountInRange(p.buffer, p.start+startOffset, p.start+endOffset)

	// The removed range produces up to two surviving siblings: "before"
	// (everything up to startCharIdx) and "after" (everything from
	// endCharIdx on). Whichever of the two is non-empty occupies pieceIdx
	// in place; if both are non-empty, "after" is spliced in right after
	// the shrunk "before".
	switch {
	case startCharIdx == 0:
		// No "before" survives; the piece becomes "after" in place.
		p.start = origStart + endOffset
		p.lenBytes = origLenBytes - endOffset
		p.lenChars = origLenChars - endCharIdx
		p.firstLineBreak = pt.buffers.firstLineBreakIn(p.buffer, p.start, p.lenBytes)
	case endCharIdx == origLenChars:
		// No "after" survives; the piece becomes "before" in place.
		p.lenBytes = startOffset
		p.lenChars = startCharIdx
		p.firstLineBreak = pt.buffers.firstLineBreakIn(p.buffer, p.start, p.lenBytes)
	default:
		after := piece{
			buffer:         p.buffer,
			start:          origStart + endOffset,
			lenBytes:       origLenBytes - endOffset,
			lenChars:       origLenChars - endCharIdx,
			firstLineBreak: pt.buffers.firstLineBreakIn(p.buffer, origStart+endOffset, origLenBytes-endOffset),
		}
		p.lenBytes = startOffset
		p.lenChars = startCharIdx
		p.firstLineBreak = pt.buffers.firstLineBreakIn(p.buffer, p.start, p.lenBytes)
		pt.pieces = slices.Insert(pt.pieces, pieceIdx+1, after)
	}

	pt.lenBytes -= endOffset - startOffset
	pt.lenChars -= endCharIdx - startCharIdx
	pt.lenLines -= removedLineBreaks
}

// trimPieceEnd shortens pieces[pieceIdx] to its first startCharIdx chars,
// dropping it entirely if startCharIdx == 0.
func (pt *PieceTable) trimPieceEnd(pieceIdx, startCharIdx int) {
	p := &pt.pieces[pieceIdx]

	if startCharIdx == 0 {
		pt.lenBytes -= p.lenBytes
		pt.lenChars -= p.lenChars
		pt.lenLines -= pt.buffers.lineBreaksCountInRange(p.buffer, p.start, p.start+p.lenBytes)
		pt.pieces = slices.Delete(pt.pieces, pieceIdx, pieceIdx+1)
		return
	}
	if startCharIdx >= p.lenChars {
		return
	}

	text := pt.buffers.at(p.buffer)[p.start : p.start+p.lenBytes]
	byteIdx := charutil.ToByteIndex(text, startCharIdx)

	origLenBytes, origLenChars := p.lenBytes, p.lenChars
	removedLineBreaks := pt.buffers.lineBreaksCountInRange(p.buffer, p.start+byteIdx, p.start+origLenBytes)

	p.lenBytes = byteIdx
	p.lenChars = startCharIdx
	p.firstLineBreak = pt.buffers.firstLineBreakIn(p.buffer, p.start, p.lenBytes)

	pt.lenChars -= origLenChars - startCharIdx
	pt.lenBytes -= origLenBytes - byteIdx
	pt.lenLines -= removedLineBreaks
}

// trimPieceStart shortens pieces[pieceIdx] by dropping its first
// endCharIdx chars, dropping it entirely if endCharIdx == its length.
func (pt *PieceTable) trimPieceStart(pieceIdx, endCharIdx int) {
	p := &pt.pieces[pieceIdx]

	if endCharIdx == p.lenChars {
		pt.lenBytes -= p.lenBytes
		pt.lenChars -= p.lenChars
		pt.lenLines -= pt.buffers.lineBreaksCountInRange(p.buffer, p.start, p.start+p.lenBytes)
		pt.pieces = slices.Delete(pt.pieces, pieceIdx, pieceIdx+1)
		return
	}
	if endCharIdx <= 0 {
		return
	}

	text := pt.buffers.at(p.buffer)[p.start : p.start+p.lenBytes]
	byteIdx := charutil.ToByteIndex(text, endCharIdx)

	origLenBytes, origLenChars := p.lenBytes, p.lenChars
	removedLineBreaks := pt.buffers.lineBreaksCountInRange(p.buffer, p.start, p.start+byteIdx)

	p.start += byteIdx
	p.lenBytes = origLenBytes - byteIdx
	p.lenChars = origLenChars - endCharIdx
	p.firstLineBreak = pt.buffers.firstLineBreakIn(p.buffer, p.start, p.lenBytes)

	pt.lenChars -= endCharIdx
	pt.lenBytes -= byteIdx
	pt.lenLines -= removedLineBreaks
}

// removePieces drops the whole pieces in [lo, hi), adjusting aggregates.
func (pt *PieceTable) removePieces(lo, hi int) {
	if lo >= hi {
		return
	}
	for i := lo; i < hi; i++ {
		p := pt.pieces[i]
		pt.lenChars -= p.lenChars
		pt.lenBytes -= p.lenBytes
		pt.lenLines -= pt.buffers.lineBreaksCountInRange(p.buffer, p.start, p.start+p.lenBytes)
	}
	pt.pieces = slices.Delete(pt.pieces, lo, hi)
}
