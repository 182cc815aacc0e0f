// Copyright 2024 The Moonburn Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gltf

import (
	"errors"
	"fmt"

	"github.com/PlayerLegend/moonburn-engine/jsonval"
)

// ErrGLBMalformed tags all GLB container framing failures: bad
// magic, truncation, wrong chunk type.
var ErrGLBMalformed = errors.New("malformed GLB")

// ParseError is a structural error in the glTF document: a missing
// required field, an out-of-range index, an unknown enum code or a
// wrong JSON type. It carries the JSON source location when one is
// available.
type ParseError struct {
	Loc jsonval.Location
	Msg string
}

func (e *ParseError) Error() string {

	if e.Loc.Line == 0 {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Loc, e.Msg)
}

func parseErrorAt(loc jsonval.Location, format string, v ...interface{}) *ParseError {

	return &ParseError{Loc: loc, Msg: fmt.Sprintf(format, v...)}
}

// TypeMismatchError reports an accessor extraction whose requested
// element shape disagrees with the accessor's declared type, or a
// numeric conversion with no defined rule.
type TypeMismatchError struct {
	Msg string
}

func (e *TypeMismatchError) Error() string {

	return e.Msg
}

func typeMismatch(format string, v ...interface{}) *TypeMismatchError {

	return &TypeMismatchError{Msg: fmt.Sprintf(format, v...)}
}
