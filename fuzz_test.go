package piecetable

import (
	"testing"
	"unicode/utf8"
)

// FuzzInsertRemove exercises spec.md §8's universal invariant 1: after any
// legal sequence of inserts and removes, Text() must equal the concatenation
// of Iter(), LenBytes() must equal len(Text()), and LenChars() must equal
// the scalar-value count of Text().
func FuzzInsertRemove(f *testing.F) {
	f.Add("hello world", 3, "XY", 1, 4)
	f.Add("", 0, "a\nb\r\nc", 0, 0)
	f.Add("1234⑤", 2, "⑥⑦", 0, 3)

	f.Fuzz(func(t *testing.T, seed string, insertAt int, insertText string, removeStart, removeEnd int) {
		if !utf8.ValidString(seed) || !utf8.ValidString(insertText) {
			return
		}

		pt := New(seed, WithLines(), WithContiguousInserts())

		n := pt.LenChars()
		if n == 0 {
			insertAt = 0
		} else {
			insertAt = ((insertAt % (n + 1)) + (n + 1)) % (n + 1)
		}
		pt.Insert(insertAt, insertText)

		n = pt.LenChars()
		if n > 0 {
			a := ((removeStart % n) + n) % n
			b := ((removeEnd % n) + n) % n
			pt.Remove(Chars(a, b))
		}

		text := pt.Text()
		if got := collect(pt); got != text {
			t.Fatalf("Iter() concatenation = %q, want Text() = %q", got, text)
		}
		if pt.LenBytes() != len(text) {
			t.Fatalf("LenBytes() = %d, want len(Text()) = %d", pt.LenBytes(), len(text))
		}
		if got := utf8.RuneCountInString(text); pt.LenChars() != got {
			t.Fatalf("LenChars() = %d, want rune count %d", pt.LenChars(), got)
		}
	})
}

// FuzzNewRoundTrip exercises invariant 2: New(s).Text() == s for any valid
// UTF-8 string.
func FuzzNewRoundTrip(f *testing.F) {
	f.Add("")
	f.Add("plain ascii")
	f.Add("line1\nline2\r\nline3")
	f.Add("1234⑤")

	f.Fuzz(func(t *testing.T, s string) {
		if !utf8.ValidString(s) {
			return
		}
		pt := New(s)
		if got := pt.Text(); got != s {
			t.Fatalf("New(%q).Text() = %q", s, got)
		}
	})
}

// FuzzContiguousInsertsMatchNonFastPath exercises invariant 7: appending
// chars one at a time at the running end position must produce the same
// text with and without the fast path enabled, and strictly fewer pieces
// with it on, for any non-trivial run.
func FuzzContiguousInsertsMatchNonFastPath(f *testing.F) {
	f.Add("seed", "abcde")
	f.Add("", "xyz")

	f.Fuzz(func(t *testing.T, seed, appended string) {
		if !utf8.ValidString(seed) || !utf8.ValidString(appended) {
			return
		}
		runes := []rune(appended)
		if len(runes) < 2 {
			return
		}

		fast := New(seed, WithContiguousInserts())
		slow := New(seed)
		pos := utf8.RuneCountInString(seed)
		for _, r := range runes {
			s := string(r)
			fast.Insert(pos, s)
			slow.Insert(pos, s)
			pos++
		}

		if fast.Text() != slow.Text() {
			t.Fatalf("fast-path text %q != non-fast-path text %q", fast.Text(), slow.Text())
		}
		if len(fast.pieces) >= len(slow.pieces) {
			t.Fatalf("fast-path piece count %d not smaller than non-fast-path %d", len(fast.pieces), len(slow.pieces))
		}
	})
}
