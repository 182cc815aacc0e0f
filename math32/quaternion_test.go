// Copyright 2024 The Moonburn Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuaternionMultiply(t *testing.T) {

	// Two quarter turns about Z compose into a half turn.
	quarter := NewQuaternion(0, 0, 0.70710678, 0.70710678)
	half := NewQuaternion(0, 0, 0, 1).MultiplyQuaternions(quarter, quarter)

	assert.InDelta(t, 0, half.X, 1e-5)
	assert.InDelta(t, 0, half.Y, 1e-5)
	assert.InDelta(t, 1, half.Z, 1e-5)
	assert.InDelta(t, 0, half.W, 1e-5)
}

func TestVector4Slerp(t *testing.T) {

	a := NewVector4(0, 0, 0, 1)
	b := NewVector4(0, 0, 0.70710678, 0.70710678)

	v := a.Clone().Slerp(b, 0.5)
	assert.InDelta(t, 0.38268343, v.Z, 1e-5)
	assert.InDelta(t, 0.92387953, v.W, 1e-5)

	// The result stays a unit quaternion.
	assert.InDelta(t, 1, v.Length(), 1e-5)

	// Coincident inputs return the first operand unchanged.
	same := a.Clone().Slerp(a.Clone(), 0.25)
	assert.True(t, same.Equals(a))
}

func TestVector4SlerpNoShortestArcFlip(t *testing.T) {

	// Nearly antipodal keys interpolate the long way: the inputs
	// are taken as given, with no sign flip.
	a := NewVector4(0, 0, 0, 1)
	b := NewVector4(0, 0, 0.70710678, -0.70710678)

	v := a.Clone().Slerp(b, 0.5)
	// The halfway point of the long arc lies 67.5 degrees from a.
	assert.InDelta(t, 0.92387953, v.Z, 1e-4)
	assert.InDelta(t, 0.38268343, v.W, 1e-4)
}
