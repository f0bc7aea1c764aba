// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package plainwire implements the lexical layer of a small JSON value parser,
// shared by the packages that build on it.
//
// The toolkit has two independent halves. The ast package parses JSON text
// into an in-memory value tree, and the http1 package parses and serializes
// HTTP/1.x messages. Neither depends on the other; a handler may feed a
// request body to the JSON parser, but the HTTP codec never does so itself.
//
// # Cursors
//
// A Cursor is an immutable view of the unconsumed remainder of an input.
// Parsing functions take a Cursor and return the value they consumed along
// with a new Cursor for what remains:
//
//	c := plainwire.NewCursor(text).SkipSpace()
//	if ch, ok := c.Peek(); ok && ch == '{' {
//	   c = c.Advance(1)
//	}
//
// Advancing a cursor does not copy the input.
//
// # Errors
//
// Syntax errors have concrete type *SyntaxError. Each carries an ErrorKind,
// which is itself an error, so that callers can test the category of a
// failure with errors.Is:
//
//	if errors.Is(err, plainwire.EmptyInput) {
//	   log.Print("Nothing to parse")
//	}
//
// The parsers are pure functions of their input. They hold no shared state
// and are safe to call concurrently.
package plainwire
