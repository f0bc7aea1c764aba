// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package ast defines an in-memory representation of JSON values,
// and a parser that constructs values from JSON source.
package ast

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// A Value is an arbitrary JSON value. The concrete type is one of Object,
// Array, String, Integer, Decimal, or Bool.
type Value interface {
	// JSON renders the value as JSON text. Parse accepts the result provided
	// no String within the value contains a double quote, since strings are
	// not escaped.
	JSON() string

	isValue()
}

// An Object is a collection of key-value members. Keys are unique; member
// order is not significant.
type Object map[string]Value

// JSON satisfies the Value interface. Members are rendered in key order.
func (o Object) JSON() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, key := range slices.Sorted(maps.Keys(o)) {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(String(key).JSON())
		sb.WriteByte(':')
		sb.WriteString(o[key].JSON())
	}
	sb.WriteByte('}')
	return sb.String()
}

// Find returns the value of the member of o with the given key, or nil.
func (o Object) Find(key string) Value { return o[key] }

// Len reports the number of members in o.
func (o Object) Len() int { return len(o) }

// An Array is a sequence of values.
type Array []Value

// JSON satisfies the Value interface.
func (a Array) JSON() string {
	ss := make([]string, len(a))
	for i, v := range a {
		ss[i] = v.JSON()
	}
	return "[" + strings.Join(ss, ",") + "]"
}

// Len reports the number of elements in a.
func (a Array) Len() int { return len(a) }

// A String is a string value. Strings are stored without their enclosing
// quotation marks and are not unescaped.
type String string

// JSON satisfies the Value interface. The text is quoted but not escaped,
// so the result reads back as the same string only if s contains no '"'.
func (s String) JSON() string { return `"` + string(s) + `"` }

// Len reports the length of s in bytes.
func (s String) Len() int { return len(s) }

// An Integer is a number with no fractional part.
type Integer int64

// JSON satisfies the Value interface.
func (z Integer) JSON() string { return strconv.FormatInt(int64(z), 10) }

// A Decimal is a number with a fractional part.
type Decimal float64

// JSON satisfies the Value interface. The result always includes a decimal
// point, so that it parses back as a Decimal.
func (d Decimal) JSON() string {
	s := strconv.FormatFloat(float64(d), 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// A Bool is a Boolean constant, true or false.
type Bool bool

// JSON satisfies the Value interface.
func (b Bool) JSON() string { return strconv.FormatBool(bool(b)) }

func (Object) isValue()  {}
func (Array) isValue()   {}
func (String) isValue()  {}
func (Integer) isValue() {}
func (Decimal) isValue() {}
func (Bool) isValue()    {}

// ToValue converts a Go value into a Value. It panics if v cannot be
// converted. Strings, Booleans, integers, and floating-point numbers map to
// the corresponding scalar; a []Value or []any maps to an Array; and a
// map[string]Value or map[string]any maps to an Object. A Value is returned
// unchanged.
func ToValue(v any) Value {
	switch t := v.(type) {
	case Value:
		return t
	case string:
		return String(t)
	case bool:
		return Bool(t)
	case int:
		return Integer(t)
	case int32:
		return Integer(t)
	case int64:
		return Integer(t)
	case uint:
		return Integer(t)
	case float32:
		return Decimal(t)
	case float64:
		return Decimal(t)
	case []Value:
		return Array(t)
	case []any:
		a := make(Array, len(t))
		for i, elt := range t {
			a[i] = ToValue(elt)
		}
		return a
	case map[string]Value:
		return Object(t)
	case map[string]any:
		o := make(Object, len(t))
		for key, elt := range t {
			o[key] = ToValue(elt)
		}
		return o
	default:
		panic(fmt.Sprintf("cannot convert %T to a value", v))
	}
}
