package piecetable

// BufferKind selects one of the two byte stores a Piece can reference.
type BufferKind uint8

const (
	// Original is the immutable, borrowed buffer holding the document's
	// initial contents.
	Original BufferKind = iota
	// Add is the append-only buffer that inserted text is copied into.
	Add
)

// buffer is a byte store plus its line-break registry.
type buffer struct {
	content    []byte
	lineBreaks []lineBreak
}

// buffers holds the original/add pair a PieceTable reads and writes.
type buffers struct {
	original buffer
	add      buffer

	lines             bool
	unicodeLineBreaks bool
}

// newBuffers records initial as the original buffer's contents, scans it for
// line breaks (if enabled), and sets up an empty add buffer.
func newBuffers(initial []byte, lines, unicodeLineBreaks bool) *buffers {
	b := &buffers{
		original:          buffer{content: initial},
		lines:             lines,
		unicodeLineBreaks: unicodeLineBreaks,
	}
	if lines {
		scanLineBreaks(initial, &b.original.lineBreaks, 0, unicodeLineBreaks)
	}
	return b
}

// at returns the byte slice for the given buffer kind.
func (b *buffers) at(kind BufferKind) []byte {
	if kind == Original {
		return b.original.content
	}
	return b.add.content
}

// lineBreaksOf returns the line-break registry for the given buffer kind.
func (b *buffers) lineBreaksOf(kind BufferKind) []lineBreak {
	if kind == Original {
		return b.original.lineBreaks
	}
	return b.add.lineBreaks
}

// appendToAdd appends text to the add buffer, scanning it for line breaks
// (if enabled) with a base offset equal to the add buffer's prior length.
// It returns the byte offset text was written at, the index of the first
// line-break entry the scan produced (-1 if none), and how many entries
// were produced in total.
//
// Per spec.md §4.1, the scanner must never split a Crlf across two scan
// invocations: if the byte already at the end of the add buffer is 0x0D and
// text starts with 0x0A, scanning text alone would register a lone Lf where
// a Crlf actually straddles the boundary. Rather than silently mis-register
// that entry, this is disallowed the same way splitPieceAndInsert disallows
// inserting between an existing CR and LF.
func (b *buffers) appendToAdd(text []byte) (start, firstLineBreak, addedLineBreaks int) {
	start = len(b.add.content)
	firstLineBreak = -1
	if b.lines {
		if start > 0 && len(text) > 0 && b.add.content[start-1] == '\r' && text[0] == '\n' {
			panic("piecetable: inserting inside a CRLF sequence is invalid")
		}
		prevRegLen := len(b.add.lineBreaks)
		addedLineBreaks = scanLineBreaks(text, &b.add.lineBreaks, start, b.unicodeLineBreaks)
		if addedLineBreaks > 0 {
			firstLineBreak = prevRegLen
		}
	}
	b.add.content = append(b.add.content, text...)
	return start, firstLineBreak, addedLineBreaks
}

// lineBreaksCountInRange counts kind's registry entries whose byte offset
// falls within [start, end).
func (b *buffers) lineBreaksCountInRange(kind BufferKind, start, end int) int {
	count := 0
	for _, lb := range b.lineBreaksOf(kind) {
		if lb.byteOffset >= start && lb.byteOffset < end {
			count++
		}
	}
	return count
}

// firstLineBreakIn returns the smallest index into kind's registry whose
// byte offset falls within [start, start+lenBytes), or -1 if none does.
func (b *buffers) firstLineBreakIn(kind BufferKind, start, lenBytes int) int {
	reg := b.lineBreaksOf(kind)
	end := start + lenBytes
	// Registry entries are appended in increasing offset order as text is
	// scanned, so a linear scan suffices; pieces only ever shrink towards
	// their own buffer's already-scanned range.
	for i, lb := range reg {
		if lb.byteOffset >= start && lb.byteOffset < end {
			return i
		}
		if lb.byteOffset >= end {
			break
		}
	}
	return -1
}
