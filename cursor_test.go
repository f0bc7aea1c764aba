// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package plainwire_test

import (
	"errors"
	"testing"

	"github.com/creachadair/plainwire"
	"github.com/google/go-cmp/cmp"
)

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func TestCursor(t *testing.T) {
	c := plainwire.NewCursor(`  {"a": 12}`)
	if c.Done() || c.Len() != 11 || c.Offset() != 0 {
		t.Fatalf("NewCursor: got done=%v len=%d offset=%d", c.Done(), c.Len(), c.Offset())
	}

	s := c.SkipSpace()
	if b, ok := s.Peek(); !ok || b != '{' {
		t.Errorf("Peek after SkipSpace: got %q, %v; want '{', true", b, ok)
	}
	if s.Offset() != 2 {
		t.Errorf("Offset after SkipSpace: got %d, want 2", s.Offset())
	}
	if c.Offset() != 0 {
		t.Errorf("SkipSpace modified its receiver: offset %d", c.Offset())
	}

	if !s.HasPrefix(`{"a"`) || s.HasPrefix("a") {
		t.Error("HasPrefix did not match the unconsumed input")
	}
	if got := s.IndexByte(':'); got != 4 {
		t.Errorf("IndexByte(':'): got %d, want 4", got)
	}
	if got := s.IndexByte('x'); got != -1 {
		t.Errorf("IndexByte('x'): got %d, want -1", got)
	}

	head, next := s.Take(5)
	if got := head.StringCopy(); got != `{"a":` {
		t.Errorf("Take(5): got %q", got)
	}
	next = next.SkipSpace()
	num, after, found := next.TakeWhile(isDigit)
	if got := num.StringCopy(); got != "12" || !found {
		t.Errorf("TakeWhile: got %q, %v; want 12, true", got, found)
	}
	if got := after.String(); got != "}" {
		t.Errorf("Rest after TakeWhile: got %q, want }", got)
	}
	if sp := next.Through(after); sp.Pos != 8 || sp.End != 10 || sp.Len() != 2 {
		t.Errorf("Through: got %v, want 8-10", sp)
	}

	end := after.Advance(100)
	if !end.Done() || end.Len() != 0 || end.Offset() != 11 {
		t.Errorf("Advance past end: got done=%v len=%d offset=%d", end.Done(), end.Len(), end.Offset())
	}
	if b, ok := end.Peek(); ok {
		t.Errorf("Peek at end: got %q, true", b)
	}
	if rest, _, found := end.TakeWhile(isDigit); rest.Len() != 0 || found {
		t.Errorf("TakeWhile at end: got %q, %v", rest.StringCopy(), found)
	}

	var zero plainwire.Cursor
	if !zero.Done() || zero.String() != "" {
		t.Error("Zero cursor is not exhausted")
	}
}

func TestSkipSpace(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"", 0},
		{"x", 0},
		{" \t\r\n x", 5},
		{"\u00a0\u2003y", 5},
		{"   ", 3},
		{"\xff ", 0},
	}
	for _, tc := range tests {
		got := plainwire.NewCursor(tc.input).SkipSpace().Offset()
		if got != tc.want {
			t.Errorf("SkipSpace(%q): got offset %d, want %d", tc.input, got, tc.want)
		}
	}
}

func TestLineCol(t *testing.T) {
	const input = "{\n  \"a\":\n\t1\n}"
	tests := []struct {
		offset int
		want   plainwire.LineCol
	}{
		{0, plainwire.LineCol{Line: 1, Column: 0}},
		{1, plainwire.LineCol{Line: 1, Column: 1}},
		{2, plainwire.LineCol{Line: 2, Column: 0}},
		{4, plainwire.LineCol{Line: 2, Column: 2}},
		{10, plainwire.LineCol{Line: 3, Column: 1}},
		{12, plainwire.LineCol{Line: 4, Column: 0}},
	}
	for _, tc := range tests {
		got := plainwire.NewCursor(input).Advance(tc.offset).LineCol()
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("LineCol at %d: (-want, +got)\n%s", tc.offset, diff)
		}
	}
}

func TestErrors(t *testing.T) {
	c := plainwire.NewCursor("{\n  x").Advance(4)
	err := c.Errorf(plainwire.UnexpectedToken, "got %q", "x")

	var serr *plainwire.SyntaxError
	if !errors.As(err, &serr) {
		t.Fatalf("Errorf: got %T, want *SyntaxError", err)
	}
	want := &plainwire.SyntaxError{
		Kind:     plainwire.UnexpectedToken,
		Offset:   4,
		Location: plainwire.LineCol{Line: 2, Column: 2},
		Message:  `got "x"`,
	}
	if diff := cmp.Diff(want, serr); diff != "" {
		t.Errorf("Errorf: (-want, +got)\n%s", diff)
	}
	if got, want := err.Error(), `at 2:2: unexpected token: got "x"`; got != want {
		t.Errorf("Error: got %q, want %q", got, want)
	}
	if !errors.Is(err, plainwire.UnexpectedToken) {
		t.Error("errors.Is did not match the error kind")
	}
	if errors.Is(err, plainwire.MissingToken) {
		t.Error("errors.Is matched the wrong kind")
	}

	bare := plainwire.NewCursor("").Errorf(plainwire.EmptyInput, "")
	if got, want := bare.Error(), "at 1:0: empty input"; got != want {
		t.Errorf("Error: got %q, want %q", got, want)
	}
}

func TestErrorKind(t *testing.T) {
	tests := []struct {
		kind plainwire.ErrorKind
		want string
	}{
		{plainwire.UnexpectedToken, "unexpected token"},
		{plainwire.InvalidSyntax, "invalid syntax"},
		{plainwire.MissingToken, "missing token"},
		{plainwire.EmptyInput, "empty input"},
		{plainwire.UnsupportedConstruct, "unsupported construct"},
		{0, "unknown error"},
		{99, "unknown error"},
	}
	for _, tc := range tests {
		if got := tc.kind.Error(); got != tc.want {
			t.Errorf("Kind %d: got %q, want %q", tc.kind, got, tc.want)
		}
	}
}
