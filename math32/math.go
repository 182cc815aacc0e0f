// Copyright 2024 The Moonburn Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package math32 implements basic math functions which operate
// directly on float32 numbers without casting and contains
// types of common entities used in 3D Graphics such as vectors,
// matrices, quaternions and others.
package math32

import (
	"math"
)

const Pi = math.Pi

// Epsilon is the tolerance below which two float32 values
// are considered equal by the animation and pose code.
const Epsilon = 0.0001

func Abs(v float32) float32 {

	return float32(math.Abs(float64(v)))
}

func Acos(v float32) float32 {

	return float32(math.Acos(float64(v)))
}

func Cos(v float32) float32 {

	return float32(math.Cos(float64(v)))
}

func Sin(v float32) float32 {

	return float32(math.Sin(float64(v)))
}

func Sqrt(v float32) float32 {

	return float32(math.Sqrt(float64(v)))
}

// Round rounds half away from zero.
func Round(v float32) float32 {

	return float32(math.Round(float64(v)))
}

// Clamp clamps x to the provided closed interval [a, b]
func Clamp(x, a, b float32) float32 {

	if x < a {
		return a
	}
	if x > b {
		return b
	}
	return x
}
