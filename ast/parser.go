// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"io"

	"github.com/creachadair/plainwire"
	"go4.org/mem"
)

// Parse parses text as a single JSON object or array. Text following the
// first complete value is ignored.
//
// The accepted grammar is a restricted subset of JSON:
//
//   - The top-level value must be an object or an array.
//   - An array may not directly contain another array.
//   - Strings end at the first following double quote; escapes are not
//     interpreted.
//   - There is no null constant.
//   - A number is any run of the characters 0-9, "-", and "."; it is a
//     Decimal if it contains a ".", otherwise an Integer.
//
// Errors have concrete type *plainwire.SyntaxError. Nesting depth is not
// limited; see ParseLimit.
func Parse(text string) (Value, error) { return ParseLimit(text, 0) }

// ParseLimit behaves as Parse, but reports an UnsupportedConstruct error if
// objects and arrays are nested more than maxDepth levels deep. If maxDepth
// ≤ 0, no limit is enforced.
func ParseLimit(text string, maxDepth int) (Value, error) {
	p := parser{maxDepth: maxDepth}
	c := plainwire.NewCursor(text).SkipSpace()
	ch, ok := c.Peek()
	if !ok {
		return nil, c.Errorf(plainwire.EmptyInput, "no input")
	}
	switch ch {
	case '{':
		v, _, err := p.parseObject(c)
		return v, err
	case '[':
		v, _, err := p.parseArray(c)
		return v, err
	default:
		return nil, c.Errorf(plainwire.UnexpectedToken, "%q at top level", ch)
	}
}

// ParseReader reads all of r and parses the result as Parse does.
func ParseReader(r io.Reader) (Value, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(string(data))
}

type parser struct {
	maxDepth int
	depth    int
}

func (p *parser) enter(c plainwire.Cursor) error {
	p.depth++
	if p.maxDepth > 0 && p.depth > p.maxDepth {
		return c.Errorf(plainwire.UnsupportedConstruct, "nesting exceeds depth %d", p.maxDepth)
	}
	return nil
}

func (p *parser) leave() { p.depth-- }

// parseObject consumes an object and its members.
// Precondition: c is positioned at "{".
func (p *parser) parseObject(c plainwire.Cursor) (Object, plainwire.Cursor, error) {
	if err := p.enter(c); err != nil {
		return nil, c, err
	}
	defer p.leave()

	obj := make(Object)
	c = c.Advance(1).SkipSpace()
	for {
		ch, ok := c.Peek()
		if !ok {
			return nil, c, c.Errorf(plainwire.EmptyInput, `expected "}" or key`)
		} else if ch == '}' {
			return obj, c.Advance(1), nil
		}

		key, next, err := parseString(c)
		if err != nil {
			return nil, next, err
		}

		// The colon must follow the key directly.
		c = next
		if ch, ok := c.Peek(); !ok || ch != ':' {
			return nil, c, c.Errorf(plainwire.MissingToken, `expected ":" after key %q`, key)
		}
		c = c.Advance(1).SkipSpace()

		val, next, err := p.parseValue(c, true)
		if err != nil {
			return nil, next, err
		}
		obj[string(key)] = val // last duplicate wins

		c = next.SkipSpace()
		ch, ok = c.Peek()
		switch {
		case !ok:
			return nil, c, c.Errorf(plainwire.EmptyInput, `expected "," or "}" in object`)
		case ch == ',':
			c = c.Advance(1).SkipSpace()
		case ch == '}':
			return obj, c.Advance(1), nil
		default:
			return nil, c, c.Errorf(plainwire.UnexpectedToken, `expected "," or "}" in object, got %q`, ch)
		}
	}
}

// parseArray consumes an array and its elements.
// Precondition: c is positioned at "[".
func (p *parser) parseArray(c plainwire.Cursor) (Array, plainwire.Cursor, error) {
	if err := p.enter(c); err != nil {
		return nil, c, err
	}
	defer p.leave()

	arr := Array{}
	c = c.Advance(1).SkipSpace()
	for {
		ch, ok := c.Peek()
		if !ok {
			return nil, c, c.Errorf(plainwire.EmptyInput, `expected "]" or value`)
		} else if ch == ']' {
			return arr, c.Advance(1), nil
		}

		val, next, err := p.parseValue(c, false)
		if err != nil {
			return nil, next, err
		}
		arr = append(arr, val)

		c = next.SkipSpace()
		ch, ok = c.Peek()
		switch {
		case !ok:
			return nil, c, c.Errorf(plainwire.EmptyInput, `expected "," or "]" in array`)
		case ch == ',':
			c = c.Advance(1).SkipSpace()
		case ch == ']':
			return arr, c.Advance(1), nil
		default:
			return nil, c, c.Errorf(plainwire.UnexpectedToken, `expected "," or "]" in array, got %q`, ch)
		}
	}
}

// parseValue dispatches on the next byte of c to consume a single value.
// Arrays are permitted only if allowArray is true.
func (p *parser) parseValue(c plainwire.Cursor, allowArray bool) (Value, plainwire.Cursor, error) {
	ch, ok := c.Peek()
	if !ok {
		return nil, c, c.Errorf(plainwire.EmptyInput, "expected value")
	}
	switch {
	case ch == '{':
		obj, next, err := p.parseObject(c)
		if err != nil {
			return nil, next, err
		}
		return obj, next, nil
	case ch == '[':
		if !allowArray {
			return nil, c, c.Errorf(plainwire.UnsupportedConstruct, "nested arrays are not supported")
		}
		arr, next, err := p.parseArray(c)
		if err != nil {
			return nil, next, err
		}
		return arr, next, nil
	case ch == '"':
		s, next, err := parseString(c)
		if err != nil {
			return nil, next, err
		}
		return s, next, nil
	case ch == 't' || ch == 'f':
		b, next, err := parseBool(c)
		if err != nil {
			return nil, next, err
		}
		return b, next, nil
	case isDigit(ch) || ch == '-':
		return parseNumber(c)
	default:
		return nil, c, c.Errorf(plainwire.UnexpectedToken, "%q does not begin a value", ch)
	}
}

// parseString consumes a quoted string. The string ends at the first double
// quote after the opening one; backslashes have no special meaning.
func parseString(c plainwire.Cursor) (String, plainwire.Cursor, error) {
	if ch, ok := c.Peek(); !ok {
		return "", c, c.Errorf(plainwire.EmptyInput, "expected string")
	} else if ch != '"' {
		return "", c, c.Errorf(plainwire.InvalidSyntax, "string must start with a quote, got %q", ch)
	}
	body := c.Advance(1)
	end := body.IndexByte('"')
	if end < 0 {
		return "", c, c.Errorf(plainwire.MissingToken, "missing closing quote for string")
	}
	text, next := body.Take(end)
	return String(text.StringCopy()), next.Advance(1), nil
}

// parseBool consumes one of the constants true or false.
func parseBool(c plainwire.Cursor) (Bool, plainwire.Cursor, error) {
	for _, lit := range [...]Bool{true, false} {
		want := lit.JSON()
		if ch, _ := c.Peek(); ch != want[0] {
			continue
		}
		if c.Len() < len(want) || !c.HasPrefix(want) {
			return false, c, c.Errorf(plainwire.InvalidSyntax, "invalid Boolean, want %q", want)
		}
		return lit, c.Advance(len(want)), nil
	}
	ch, _ := c.Peek()
	return false, c, c.Errorf(plainwire.UnexpectedToken, "expected Boolean, got %q", ch)
}

// parseNumber consumes a run of number characters and classifies it as an
// Integer or a Decimal. The run must be terminated by some other character;
// reaching the end of input is an EmptyInput error.
func parseNumber(c plainwire.Cursor) (Value, plainwire.Cursor, error) {
	tok, next, ok := c.TakeWhile(isNumRune)
	if tok.Len() == 0 {
		return nil, c, c.Errorf(plainwire.InvalidSyntax, "invalid number")
	} else if !ok {
		return nil, next, next.Errorf(plainwire.EmptyInput, "input ends inside number %q", tok.StringCopy())
	}
	if mem.IndexByte(tok, '.') >= 0 {
		f, err := mem.ParseFloat(tok, 64)
		if err != nil {
			return nil, c, c.Errorf(plainwire.InvalidSyntax, "invalid number %q", tok.StringCopy())
		}
		return Decimal(f), next, nil
	}
	z, err := mem.ParseInt(tok, 10, 64)
	if err != nil {
		return nil, c, c.Errorf(plainwire.InvalidSyntax, "invalid number %q", tok.StringCopy())
	}
	return Integer(z), next, nil
}

func isDigit(ch byte) bool   { return '0' <= ch && ch <= '9' }
func isNumRune(ch byte) bool { return isDigit(ch) || ch == '-' || ch == '.' }
