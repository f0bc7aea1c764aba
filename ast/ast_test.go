// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast_test

import (
	"testing"

	"github.com/creachadair/mds/mtest"
	"github.com/creachadair/plainwire/ast"
	"github.com/google/go-cmp/cmp"
)

func TestString(t *testing.T) {
	tests := []struct {
		input ast.Value
		want  string
	}{
		{ast.Bool(false), "false"},
		{ast.Bool(true), "true"},

		{ast.String(""), `""`},
		{ast.String("a \t b"), "\"a \t b\""},

		{ast.Decimal(-0.00239), `-0.00239`},
		{ast.Decimal(3), `3.0`},

		{ast.Integer(0), `0`},
		{ast.Integer(15), `15`},
		{ast.Integer(-25), `-25`},

		{ast.Array{}, `[]`},
		{ast.Array{ast.Bool(false)}, `[false]`},
		{ast.Array{ast.Bool(true), ast.Integer(199)}, `[true,199]`},
		{ast.Array{
			ast.String("free"),
			ast.String("your"),
			ast.String("mind"),
		}, `["free","your","mind"]`},

		{ast.Object{}, `{}`},
		{ast.Object{
			"name":  ast.String("Dennis"),
			"age":   ast.Integer(37),
			"isOld": ast.Bool(false),
		}, `{"age":37,"isOld":false,"name":"Dennis"}`},

		{ast.Object{
			"values": ast.Array{ast.Integer(5), ast.Integer(10), ast.Bool(true)},
			"page": ast.Object{
				"token": ast.String("xyz-pdq-zvm"),
				"count": ast.Integer(100),
			},
		}, `{"page":{"count":100,"token":"xyz-pdq-zvm"},"values":[5,10,true]}`},
	}
	for _, test := range tests {
		got := test.input.JSON()
		if got != test.want {
			t.Errorf("Input: %+v\nGot:  %s\nWant: %s", test.input, got, test.want)
		}
	}
}

func TestToValue(t *testing.T) {
	got := ast.ToValue(map[string]any{
		"s": "text",
		"n": 25,
		"f": 2.5,
		"b": true,
		"a": []any{"x", 1},
		"v": ast.Integer(3),
	})
	want := ast.Object{
		"s": ast.String("text"),
		"n": ast.Integer(25),
		"f": ast.Decimal(2.5),
		"b": ast.Bool(true),
		"a": ast.Array{ast.String("x"), ast.Integer(1)},
		"v": ast.Integer(3),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ToValue: (-want, +got)\n%s", diff)
	}

	mtest.MustPanic(t, func() { ast.ToValue(struct{}{}) })
}

func TestLen(t *testing.T) {
	v, err := ast.Parse(`{"a": [1, 2, 3], "b": "four", "c": {}}`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	obj := v.(ast.Object)
	for key, want := range map[string]int{"a": 3, "b": 4, "c": 0} {
		ln, ok := obj.Find(key).(interface{ Len() int })
		if !ok {
			t.Errorf("Key %q: %T has no length", key, obj.Find(key))
		} else if got := ln.Len(); got != want {
			t.Errorf("Key %q: length %d, want %d", key, got, want)
		}
	}
	if got := obj.Len(); got != 3 {
		t.Errorf("Object length: got %d, want 3", got)
	}
}
