// Package decode projects parsed JSON values onto Go types.
//
// The getters in this package look up a value by path (as for cursor.Down)
// and return the zero value of their result type if the path does not
// resolve or the value found has the wrong type. Use them to implement the
// Decoder interface for a struct type:
//
//	func (p *Person) DecodeValue(v ast.Value) error {
//	   p.Name = decode.String(v, "name")
//	   p.Age = decode.Int(v, "age")
//	   return nil
//	}
package decode

import (
	"fmt"

	"github.com/creachadair/plainwire/ast"
	"github.com/creachadair/plainwire/ast/cursor"
)

// A Decoder is a type that can populate itself from a JSON value.
type Decoder interface {
	DecodeValue(ast.Value) error
}

// Into decodes v into d. It reports an error without calling d if v is not
// an object.
func Into(v ast.Value, d Decoder) error {
	if _, ok := v.(ast.Object); !ok {
		return fmt.Errorf("decode: expected a JSON object, got %T", v)
	}
	return d.DecodeValue(v)
}

// Text parses text and decodes the result into d.
func Text(text string, d Decoder) error {
	v, err := ast.Parse(text)
	if err != nil {
		return err
	}
	return Into(v, d)
}

// String returns the string at path in v, or "".
func String(v ast.Value, path ...any) string {
	s, _ := cursor.Path[ast.String](v, path...)
	return string(s)
}

// Int returns the integer at path in v, or 0.
func Int(v ast.Value, path ...any) int64 {
	z, _ := cursor.Path[ast.Integer](v, path...)
	return int64(z)
}

// Float returns the number at path in v, or 0. Both integer and decimal
// values are accepted.
func Float(v ast.Value, path ...any) float64 {
	switch t := find(v, path).(type) {
	case ast.Decimal:
		return float64(t)
	case ast.Integer:
		return float64(t)
	}
	return 0
}

// Bool returns the Boolean at path in v, or false.
func Bool(v ast.Value, path ...any) bool {
	b, _ := cursor.Path[ast.Bool](v, path...)
	return bool(b)
}

// Strings returns the string elements of the array at path in v. Elements
// that are not strings are skipped. It returns nil if path does not resolve
// to an array.
func Strings(v ast.Value, path ...any) []string {
	arr, err := cursor.Path[ast.Array](v, path...)
	if err != nil {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, elt := range arr {
		if s, ok := elt.(ast.String); ok {
			out = append(out, string(s))
		}
	}
	return out
}

// Object returns the object at path in v, or nil.
func Object(v ast.Value, path ...any) ast.Object {
	obj, _ := cursor.Path[ast.Object](v, path...)
	return obj
}

// Field decodes the object at path in v into d. If path does not resolve, d
// is decoded from an empty object so that it takes its zero values.
func Field(v ast.Value, d Decoder, path ...any) error {
	obj := Object(v, path...)
	if obj == nil {
		obj = ast.Object{}
	}
	return d.DecodeValue(obj)
}

func find(v ast.Value, path []any) ast.Value {
	c := cursor.New(v).Down(path...)
	if c.Err() != nil {
		return nil
	}
	return c.Value()
}
