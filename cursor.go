// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package plainwire

import (
	"unicode"

	"go4.org/mem"
)

// A Cursor is a read-only view of the unconsumed remainder of an input.
// The zero Cursor is empty and exhausted.
//
// Cursor values are immutable: methods that consume input return a new
// Cursor and leave the receiver unchanged. No method copies the input text
// unless its documentation says so.
type Cursor struct {
	src mem.RO // the complete input
	pos int    // offset of the first unconsumed byte
}

// NewCursor constructs a Cursor positioned at the start of text.
func NewCursor(text string) Cursor { return Cursor{src: mem.S(text)} }

// Rest returns a view of the unconsumed input.
func (c Cursor) Rest() mem.RO { return c.src.SliceFrom(c.pos) }

// Len reports the number of unconsumed bytes.
func (c Cursor) Len() int { return c.src.Len() - c.pos }

// Done reports whether the input is exhausted.
func (c Cursor) Done() bool { return c.pos >= c.src.Len() }

// Offset reports the byte offset of c in the complete input.
func (c Cursor) Offset() int { return c.pos }

// Peek returns the next unconsumed byte. It reports false if the input is
// exhausted.
func (c Cursor) Peek() (byte, bool) {
	if c.Done() {
		return 0, false
	}
	return c.src.At(c.pos), true
}

// Advance returns a cursor n bytes past c. Advancing past the end of the
// input yields an exhausted cursor.
func (c Cursor) Advance(n int) Cursor {
	c.pos = min(c.pos+n, c.src.Len())
	return c
}

// SkipSpace returns a cursor positioned at the first non-space rune at or
// after c. Space is as defined by unicode.IsSpace.
func (c Cursor) SkipSpace() Cursor {
	for !c.Done() {
		r, n := mem.DecodeRune(c.Rest())
		if n == 0 || !unicode.IsSpace(r) {
			break
		}
		c.pos += n
	}
	return c
}

// HasPrefix reports whether the unconsumed input begins with s.
func (c Cursor) HasPrefix(s string) bool { return mem.HasPrefix(c.Rest(), mem.S(s)) }

// IndexByte returns the offset relative to c of the first instance of b in
// the unconsumed input, or -1.
func (c Cursor) IndexByte(b byte) int { return mem.IndexByte(c.Rest(), b) }

// Take returns a view of the next n bytes of input and a cursor positioned
// after them. If fewer than n bytes remain, all of them are taken.
func (c Cursor) Take(n int) (mem.RO, Cursor) {
	next := c.Advance(n)
	return c.src.Slice(c.pos, next.pos), next
}

// TakeWhile consumes bytes matching f and returns a view of them along with a
// cursor positioned at the first byte not matching f. The boolean reports
// whether such a byte was found (false means the input ran out first).
func (c Cursor) TakeWhile(f func(byte) bool) (mem.RO, Cursor, bool) {
	end := c.pos
	for end < c.src.Len() && f(c.src.At(end)) {
		end++
	}
	next := Cursor{src: c.src, pos: end}
	return c.src.Slice(c.pos, end), next, !next.Done()
}

// Through returns the span of input from c up to end. The cursors must share
// the same input.
func (c Cursor) Through(end Cursor) Span { return Span{Pos: c.pos, End: end.pos} }

// LineCol reports the line and column of c in the complete input.
func (c Cursor) LineCol() LineCol {
	lc := LineCol{Line: 1}
	for i := 0; i < c.pos; i++ {
		if c.src.At(i) == '\n' {
			lc.Line++
			lc.Column = 0
		} else {
			lc.Column++
		}
	}
	return lc
}

// String returns a copy of the unconsumed input.
func (c Cursor) String() string { return c.Rest().StringCopy() }

// Errorf returns a *SyntaxError of the given kind located at c.
func (c Cursor) Errorf(kind ErrorKind, msg string, args ...any) error {
	return newSyntaxError(kind, c, msg, args...)
}
