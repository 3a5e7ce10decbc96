package piecetable

// position is a (piece index, byte index within that piece's buffer range)
// pair, the same representation the original crate's slice.rs uses.
type position struct {
	pieceIdx int
	byteIdx  int
}

// Slice is a read-only view of a PieceTable sub-range, borrowed from the
// table that produced it; it holds only positions, not text. It is invalidated by any subsequent
// mutation of that table; using a Slice after the table has been mutated
// is a usage error (see PieceTable.version).
type Slice struct {
	start position // inclusive
	end   position // exclusive
	table *PieceTable
	// version is stamped from table.version at creation time; Iter panics
	// if the table has since been mutated.
	version uint64
}

// newSlice builds a Slice over [start, end) of table's current piece list.
func newSlice(start, end position, table *PieceTable) Slice {
	return Slice{start: start, end: end, table: table, version: table.version}
}

// Iter yields the substrings making up the slice, one per piece spanned,
// in order. Substrings that would be empty are suppressed. The sequence is
// finite and restartable. Every string it yields is a newly allocated copy
// of bytes from one of the table's buffers, not a view of them.
func (s Slice) Iter(yield func(string) bool) {
	if s.version != s.table.version {
		panic("piecetable: Slice used after the table it was derived from was mutated")
	}

	if len(s.table.pieces) == 0 {
		return
	}

	if s.start.pieceIdx == s.end.pieceIdx {
		p := s.table.pieces[s.start.pieceIdx]
		buf := s.table.buffers.at(p.buffer)
		sub := buf[p.start+s.start.byteIdx : p.start+s.end.byteIdx]
		if len(sub) > 0 {
			yield(string(sub))
		}
		return
	}

	first := s.table.pieces[s.start.pieceIdx]
	buf := s.table.buffers.at(first.buffer)
	_, end := first.byteRange()
	sub := buf[first.start+s.start.byteIdx : end]
	if len(sub) > 0 {
		if !yield(string(sub)) {
			return
		}
	}

	for i := s.start.pieceIdx + 1; i < s.end.pieceIdx; i++ {
		p := s.table.pieces[i]
		buf := s.table.buffers.at(p.buffer)
		start, end := p.byteRange()
		sub := buf[start:end]
		if len(sub) > 0 {
			if !yield(string(sub)) {
				return
			}
		}
	}

	last := s.table.pieces[s.end.pieceIdx]
	buf = s.table.buffers.at(last.buffer)
	sub = buf[last.start : last.start+s.end.byteIdx]
	if len(sub) > 0 {
		yield(string(sub))
	}
}

// String concatenates the slice's chunks into an owned string.
func (s Slice) String() string {
	var sb []byte
	s.Iter(func(chunk string) bool {
		sb = append(sb, chunk...)
		return true
	})
	return string(sb)
}
