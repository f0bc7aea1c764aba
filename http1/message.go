// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package http1

import (
	"iter"
	"strings"
	"unicode"
)

// A phase is a state of the line-oriented message parser. Phases advance in
// order and never go back.
type phase int

const (
	phaseStart   phase = iota // expecting the request or status line
	phaseHeaders              // reading header lines
	phaseBody                 // accumulating body lines until end of input
)

// message is the part of a parsed message shared by requests and responses.
type message struct {
	headers Headers
	body    strings.Builder
	hasBody bool
}

// parseMessage runs the parser over text. The first line is passed to start,
// and an error from start aborts the parse.
func parseMessage(text string, start func(line string) error) (*message, error) {
	msg := &message{headers: make(Headers)}
	state := phaseStart
	for line := range lines(strings.TrimLeftFunc(text, unicode.IsSpace)) {
		switch state {
		case phaseStart:
			if err := start(line); err != nil {
				return nil, err
			}
			state = phaseHeaders

		case phaseHeaders:
			if line == "" {
				state = phaseBody
				continue
			}
			name, value, ok := strings.Cut(line, ":")
			name = strings.TrimSpace(name)
			if !ok || name == "" {
				return nil, errorf(InvalidHeader, "%q", line)
			}
			msg.headers.Add(name, strings.TrimSpace(value)) // last duplicate wins

		case phaseBody:
			if msg.hasBody {
				msg.body.WriteString("\r\n")
			}
			msg.body.WriteString(line)
			msg.hasBody = true
		}
	}
	if state == phaseStart {
		return nil, errorf(InvalidRequest, "empty message")
	}
	return msg, nil
}

// lines yields the lines of text without their terminators. A line ends at
// "\n" or "\r\n", and a terminator at the end of text does not begin a new
// line.
func lines(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for line := range strings.Lines(text) {
			if s, ok := strings.CutSuffix(line, "\n"); ok {
				line = strings.TrimSuffix(s, "\r")
			}
			if !yield(line) {
				return
			}
		}
	}
}

// writeMessage writes the header block and optional body shared by requests
// and responses to sb. Headers are written in name order.
func writeMessage(sb *strings.Builder, h Headers, body string, hasBody bool) {
	for _, name := range h.Names() {
		sb.WriteString(name)
		sb.WriteString(": ")
		sb.WriteString(h[name].Value())
		sb.WriteString("\r\n")
	}
	sb.WriteString("\r\n")
	if hasBody {
		sb.WriteString(body)
	}
}
