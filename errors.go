// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package plainwire

import "fmt"

// ErrorKind classifies a syntax error. An ErrorKind is itself an error, and a
// *SyntaxError unwraps to its kind, so errors.Is can be used to test for a
// particular category of failure.
type ErrorKind byte

// Constants defining the valid ErrorKind values.
const (
	UnexpectedToken      ErrorKind = iota + 1 // a token not permitted here
	InvalidSyntax                             // a malformed token
	MissingToken                              // a required token is absent
	EmptyInput                                // the input ran out
	UnsupportedConstruct                      // valid JSON the parser declines to handle
)

var kindStr = [...]string{
	0:                    "unknown error",
	UnexpectedToken:      "unexpected token",
	InvalidSyntax:        "invalid syntax",
	MissingToken:         "missing token",
	EmptyInput:           "empty input",
	UnsupportedConstruct: "unsupported construct",
}

func (k ErrorKind) String() string {
	if int(k) >= len(kindStr) {
		return kindStr[0]
	}
	return kindStr[k]
}

// Error satisfies the error interface.
func (k ErrorKind) Error() string { return k.String() }

// SyntaxError is the concrete type of errors reported by the JSON parser.
type SyntaxError struct {
	Kind     ErrorKind
	Offset   int     // byte offset in the input where the error was detected
	Location LineCol // line and column corresponding to Offset
	Message  string
}

func newSyntaxError(kind ErrorKind, at Cursor, msg string, args ...any) *SyntaxError {
	return &SyntaxError{
		Kind:     kind,
		Offset:   at.Offset(),
		Location: at.LineCol(),
		Message:  fmt.Sprintf(msg, args...),
	}
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	if s.Message == "" {
		return fmt.Sprintf("at %s: %v", s.Location, s.Kind)
	}
	return fmt.Sprintf("at %s: %v: %s", s.Location, s.Kind, s.Message)
}

// Unwrap supports error wrapping.
func (s *SyntaxError) Unwrap() error { return s.Kind }
