// Package charutil translates between char (Unicode scalar value) indices
// and byte indices over UTF-8 text, the Go stand-in for the Rust source's
// str_indices crate (str_indices::chars::count / to_byte_idx).
package charutil

import "unicode/utf8"

// Count returns the number of Unicode scalar values in text.
func Count(text []byte) int {
	return utf8.RuneCount(text)
}

// ToByteIndex returns the byte offset of the charIdx-th scalar value in
// text. charIdx may equal Count(text), in which case len(text) is
// returned.
func ToByteIndex(text []byte, charIdx int) int {
	if charIdx <= 0 {
		return 0
	}
	i := 0
	n := 0
	for i < len(text) {
		if n == charIdx {
			return i
		}
		_, size := utf8.DecodeRune(text[i:])
		i += size
		n++
	}
	return i
}
