package piecetable

// Option configures optional features of a PieceTable. The three features
// described by spec.md §6 are independent and default to off, matching the
// Rust source's default Cargo feature set.
type Option func(*config)

type config struct {
	lines             bool
	unicodeLineBreaks bool
	contiguousInserts bool
}

// WithLines enables the line-break registry, LenLines, and Line.
func WithLines() Option {
	return func(c *config) { c.lines = true }
}

// WithUnicodeLineBreaks extends the recognized line-break set beyond
// {Lf, Crlf} to also include Vt, Ff, Cr, Nel, Ls and Ps. It has no effect
// unless WithLines is also supplied.
func WithUnicodeLineBreaks() Option {
	return func(c *config) { c.unicodeLineBreaks = true }
}

// WithContiguousInserts enables the last-insert fast path: an insertion
// whose char position immediately follows the previous insertion extends
// the previous add-piece in place instead of allocating a new one.
func WithContiguousInserts() Option {
	return func(c *config) { c.contiguousInserts = true }
}
