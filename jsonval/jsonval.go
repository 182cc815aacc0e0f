// Copyright 2024 The Moonburn Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package jsonval implements the JSON value tree consumed by the glTF
// loader. Every value carries the source location it was parsed from
// so that structural errors in an asset can point back at the file.
package jsonval

import (
	"fmt"
)

// Location is a position in a parsed input: file name, 1-based line
// and 1-based column.
type Location struct {
	File string
	Line int
	Col  int
}

func (l Location) String() string {

	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Col)
}

// ParseError is a syntactic or type error tagged with the source
// location where it was detected.
type ParseError struct {
	Loc Location
	Msg string
}

func (e *ParseError) Error() string {

	return fmt.Sprintf("%s: %s", e.Loc, e.Msg)
}

func errAt(loc Location, format string, v ...interface{}) *ParseError {

	return &ParseError{Loc: loc, Msg: fmt.Sprintf(format, v...)}
}

// Kind tags the variant held by a Value.
type Kind uint8

const (
	Null Kind = iota
	Bool
	NumberKind
	StringKind
	ArrayKind
	ObjectKind
)

// Number is a JSON numeric literal, either a signed 64 bit integer or
// a 64 bit float depending on the form of the literal.
type Number struct {
	loc     Location
	isFloat bool
	i       int64
	f       float64
}

// IsFloat reports whether the literal parsed as a float.
func (n Number) IsFloat() bool {

	return n.isFloat
}

// AsInt returns the number as an integer, truncating a float.
func (n Number) AsInt() int64 {

	if n.isFloat {
		return int64(n.f)
	}
	return n.i
}

// AsFloat returns the number as a float, converting an integer.
func (n Number) AsFloat() float64 {

	if n.isFloat {
		return n.f
	}
	return float64(n.i)
}

// StrictInt returns the integer value, failing if the literal was a float.
func (n Number) StrictInt() (int64, error) {

	if n.isFloat {
		return 0, errAt(n.loc, "expected an int, not a float")
	}
	return n.i, nil
}

// StrictFloat returns the float value, failing if the literal was an integer.
func (n Number) StrictFloat() (float64, error) {

	if !n.isFloat {
		return 0, errAt(n.loc, "expected a float, not an int")
	}
	return n.f, nil
}

// Object is a JSON object. Duplicate keys resolve to the last
// occurrence; key order is not preserved.
type Object struct {
	loc     Location
	members map[string]Value
}

// Loc returns the object's source location.
func (o *Object) Loc() Location {

	return o.loc
}

// Get returns the member for key and whether it is present.
func (o *Object) Get(key string) (Value, bool) {

	v, ok := o.members[key]
	return v, ok
}

// Len returns the number of members.
func (o *Object) Len() int {

	return len(o.members)
}

// Value is one node of a parsed JSON tree: a tagged variant over
// null, bool, string, number, array and object.
type Value struct {
	loc  Location
	kind Kind
	b    bool
	str  string
	num  Number
	arr  []Value
	obj  *Object
}

// Loc returns the value's source location.
func (v Value) Loc() Location {

	return v.loc
}

// Kind returns the variant tag of this value.
func (v Value) Kind() Kind {

	return v.kind
}

// IsNull reports whether the value is the JSON null.
func (v Value) IsNull() bool {

	return v.kind == Null
}

// Object returns the object held by this value.
func (v Value) Object() (*Object, error) {

	if v.kind != ObjectKind {
		return nil, errAt(v.loc, "expected an object")
	}
	return v.obj, nil
}

// Array returns the array held by this value.
func (v Value) Array() ([]Value, error) {

	if v.kind != ArrayKind {
		return nil, errAt(v.loc, "expected an array")
	}
	return v.arr, nil
}

// Str returns the string held by this value.
func (v Value) Str() (string, error) {

	if v.kind != StringKind {
		return "", errAt(v.loc, "expected a string")
	}
	return v.str, nil
}

// BoolVal returns the boolean held by this value.
func (v Value) BoolVal() (bool, error) {

	if v.kind != Bool {
		return false, errAt(v.loc, "expected a boolean")
	}
	return v.b, nil
}

// Num returns the number held by this value.
func (v Value) Num() (Number, error) {

	if v.kind != NumberKind {
		return Number{}, errAt(v.loc, "expected a number")
	}
	return v.num, nil
}

// AsInt returns the value as an integer, converting a float literal.
func (v Value) AsInt() (int64, error) {

	n, err := v.Num()
	if err != nil {
		return 0, err
	}
	return n.AsInt(), nil
}

// AsFloat returns the value as a float, converting an integer literal.
func (v Value) AsFloat() (float64, error) {

	n, err := v.Num()
	if err != nil {
		return 0, err
	}
	return n.AsFloat(), nil
}

// StrictInt returns the value as an integer, failing on a float literal.
func (v Value) StrictInt() (int64, error) {

	n, err := v.Num()
	if err != nil {
		return 0, err
	}
	return n.StrictInt()
}

// StrictFloat returns the value as a float, failing on an integer literal.
func (v Value) StrictFloat() (float64, error) {

	n, err := v.Num()
	if err != nil {
		return 0, err
	}
	return n.StrictFloat()
}
