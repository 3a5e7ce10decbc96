package piecetable

import "testing"

func TestFirstLineBreakOnInitialPiece(t *testing.T) {
	pt := New("012\r\n567", WithLines())

	idx := pt.pieces[0].firstLineBreak
	if idx < 0 {
		t.Fatalf("expected the initial piece to have a firstLineBreak, got none")
	}

	lb := pt.buffers.original.lineBreaks[idx]
	if lb.kind != Crlf {
		t.Fatalf("kind = %v, want Crlf", lb.kind)
	}
	if pt.buffers.original.content[lb.byteOffset] != '\r' {
		t.Errorf("byte at offset = %q, want '\\r'", pt.buffers.original.content[lb.byteOffset])
	}
	if pt.buffers.original.content[lb.byteOffset+1] != '\n' {
		t.Errorf("byte after offset = %q, want '\\n'", pt.buffers.original.content[lb.byteOffset+1])
	}
}

func TestByteRange(t *testing.T) {
	p := piece{start: 3, lenBytes: 4}
	start, end := p.byteRange()
	if start != 3 || end != 7 {
		t.Fatalf("byteRange() = (%d, %d), want (3, 7)", start, end)
	}
}

func TestRemoveWithinPieceInteriorSplitProducesTwoPieces(t *testing.T) {
	pt := New("0123456789")
	// [3, 7) lies strictly inside the single initial piece, touching
	// neither edge, so removal must leave two siblings behind rather
	// than collapsing the piece to the removed range itself.
	pt.Remove(Chars(3, 7))
	if got := pt.Text(); got != "012789" {
		t.Fatalf("Text() = %q, want %q", got, "012789")
	}
	if len(pt.pieces) != 2 {
		t.Fatalf("piece count = %d, want 2", len(pt.pieces))
	}
	if got := string(pt.buffers.at(pt.pieces[0].buffer)[pt.pieces[0].start : pt.pieces[0].start+pt.pieces[0].lenBytes]); got != "012" {
		t.Fatalf("before piece = %q, want %q", got, "012")
	}
	if got := string(pt.buffers.at(pt.pieces[1].buffer)[pt.pieces[1].start : pt.pieces[1].start+pt.pieces[1].lenBytes]); got != "789" {
		t.Fatalf("after piece = %q, want %q", got, "789")
	}
}

func TestFirstLineBreakClearedWhenShortenedPastIt(t *testing.T) {
	pt := New("ab\ncd", WithLines())
	// Trim the piece so the line break at index 2 falls outside the
	// remaining range; firstLineBreak must be recomputed, not just
	// reused stale (spec.md §9, second open question).
	pt.Remove(CharsFrom(2))
	if pt.pieces[0].firstLineBreak != -1 {
		t.Fatalf("firstLineBreak = %d, want -1 after trimming past the break", pt.pieces[0].firstLineBreak)
	}
}
