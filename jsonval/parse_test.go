// Copyright 2024 The Moonburn Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, input string) Value {

	v, err := Parse("test.json", []byte(input))
	require.NoError(t, err)
	return v
}

func member(t *testing.T, v Value, key string) Value {

	obj, err := v.Object()
	require.NoError(t, err)
	m, ok := obj.Get(key)
	require.True(t, ok, "missing member %q", key)
	return m
}

func TestParseRoundtrip(t *testing.T) {

	input := `{"key1":{}, "ababab":42, "asdf2":[5,"a2",9],
		"nest1":{"nest2":3.14,"nest3":"aaa","nest4":"abc"}}`
	v := mustParse(t, input)

	key1, err := member(t, v, "key1").Object()
	require.NoError(t, err)
	assert.Equal(t, 0, key1.Len())

	n, err := member(t, v, "ababab").StrictInt()
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)

	arr, err := member(t, v, "asdf2").Array()
	require.NoError(t, err)
	require.Len(t, arr, 3)

	first, err := arr[0].StrictInt()
	require.NoError(t, err)
	assert.Equal(t, int64(5), first)

	second, err := arr[1].Str()
	require.NoError(t, err)
	assert.Equal(t, "a2", second)

	third, err := arr[2].StrictInt()
	require.NoError(t, err)
	assert.Equal(t, int64(9), third)

	nest2, err := member(t, member(t, v, "nest1"), "nest2").StrictFloat()
	require.NoError(t, err)
	assert.InDelta(t, 3.14, nest2, 1e-9)

	nest3, err := member(t, member(t, v, "nest1"), "nest3").Str()
	require.NoError(t, err)
	assert.Equal(t, "aaa", nest3)
}

func TestParseNumbers(t *testing.T) {

	tests := []struct {
		input   string
		isFloat bool
		i       int64
		f       float64
	}{
		{"42", false, 42, 42},
		{"-7", false, -7, -7},
		{"0", false, 0, 0},
		{"017", false, 15, 15},     // leading zero selects octal
		{"-010", false, -8, -8},    // octal with sign
		{"3.5", true, 0, 3.5},
		{"-2.25", true, 0, -2.25},
		{"0.5", true, 0, 0.5},      // bare zero stays decimal
		{"1e3", true, 0, 1000},
		{"15e-1", true, 0, 1.5},
		{"2E+2", true, 0, 200},
		{"1.5e2", true, 0, 150},
	}

	for _, test := range tests {
		v := mustParse(t, test.input)
		n, err := v.Num()
		require.NoError(t, err, test.input)
		assert.Equal(t, test.isFloat, n.IsFloat(), test.input)
		if test.isFloat {
			assert.InDelta(t, test.f, n.AsFloat(), 1e-9, test.input)
		} else {
			assert.Equal(t, test.i, n.AsInt(), test.input)
		}
	}
}

func TestStrictAccessors(t *testing.T) {

	v := mustParse(t, `{"i":3, "f":3.5}`)

	_, err := member(t, v, "i").StrictFloat()
	assert.Error(t, err)
	_, err = member(t, v, "f").StrictInt()
	assert.Error(t, err)

	// Converting accessors cross over.
	f, err := member(t, v, "i").AsFloat()
	require.NoError(t, err)
	assert.Equal(t, 3.0, f)
	i, err := member(t, v, "f").AsInt()
	require.NoError(t, err)
	assert.Equal(t, int64(3), i)
}

func TestParseStringEscapes(t *testing.T) {

	v := mustParse(t, `"a\"b\\c\/d\ne\tf"`)
	s, err := v.Str()
	require.NoError(t, err)
	assert.Equal(t, "a\"b\\c/d\ne\tf", s)

	// \u escapes are consumed as two raw bytes.
	v = mustParse(t, `"\u4142"`)
	s, err = v.Str()
	require.NoError(t, err)
	assert.Equal(t, "AB", s)
}

func TestParseKeywords(t *testing.T) {

	v := mustParse(t, `{"a":true, "b":false, "c":null}`)

	b, err := member(t, v, "a").BoolVal()
	require.NoError(t, err)
	assert.True(t, b)
	b, err = member(t, v, "b").BoolVal()
	require.NoError(t, err)
	assert.False(t, b)
	assert.True(t, member(t, v, "c").IsNull())
}

func TestDuplicateKeysLastWins(t *testing.T) {

	v := mustParse(t, `{"k":1, "k":2}`)
	n, err := member(t, v, "k").StrictInt()
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestParseErrors(t *testing.T) {

	tests := []string{
		``,
		`{`,
		`[1,]`,
		`[,1]`,
		`{"a" 1}`,
		`{"a":1,}`,
		`"unterminated`,
		`{"a":@}`,
		`tru`,
	}
	for _, input := range tests {
		_, err := Parse("bad.json", []byte(input))
		assert.Error(t, err, "input %q", input)
	}
}

func TestErrorLocation(t *testing.T) {

	_, err := Parse("f.json", []byte("{\n  \"a\": @\n}"))
	require.Error(t, err)
	perr, ok := err.(*ParseError)
	require.True(t, ok)
	assert.Equal(t, "f.json", perr.Loc.File)
	assert.Equal(t, 2, perr.Loc.Line)
	assert.Equal(t, 8, perr.Loc.Col)
}

func TestTypeMismatchAccessors(t *testing.T) {

	v := mustParse(t, `[1]`)
	_, err := v.Object()
	assert.Error(t, err)
	_, err = v.Str()
	assert.Error(t, err)
	_, err = v.Num()
	assert.Error(t, err)

	arr, err := v.Array()
	require.NoError(t, err)
	assert.Len(t, arr, 1)
}
