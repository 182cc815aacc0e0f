// Copyright 2024 The Moonburn Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

// CubicSplineVec3 is one cubic spline keyframe for a Vector3 valued
// curve: the in tangent, the value and the out tangent, in the order
// they appear in a CUBICSPLINE animation output stream.
type CubicSplineVec3 struct {
	InTangent  Vector3
	Value      Vector3
	OutTangent Vector3
}

// CubicSplineVec4 is one cubic spline keyframe for a Vector4 valued curve.
type CubicSplineVec4 struct {
	InTangent  Vector4
	Value      Vector4
	OutTangent Vector4
}

// HermiteVec3 evaluates the cubic Hermite combination of the spline
// keys s0 and s1 with the specified basis function values.
func HermiteVec3(s0, s1 *CubicSplineVec3, h00, h10, h01, h11 float32) Vector3 {

	var r Vector3
	r.X = s0.Value.X*h00 + s0.OutTangent.X*h10 + s1.Value.X*h01 + s1.InTangent.X*h11
	r.Y = s0.Value.Y*h00 + s0.OutTangent.Y*h10 + s1.Value.Y*h01 + s1.InTangent.Y*h11
	r.Z = s0.Value.Z*h00 + s0.OutTangent.Z*h10 + s1.Value.Z*h01 + s1.InTangent.Z*h11
	return r
}

// HermiteVec4 evaluates the cubic Hermite combination of the spline
// keys s0 and s1 with the specified basis function values.
func HermiteVec4(s0, s1 *CubicSplineVec4, h00, h10, h01, h11 float32) Vector4 {

	var r Vector4
	r.X = s0.Value.X*h00 + s0.OutTangent.X*h10 + s1.Value.X*h01 + s1.InTangent.X*h11
	r.Y = s0.Value.Y*h00 + s0.OutTangent.Y*h10 + s1.Value.Y*h01 + s1.InTangent.Y*h11
	r.Z = s0.Value.Z*h00 + s0.OutTangent.Z*h10 + s1.Value.Z*h01 + s1.InTangent.Z*h11
	r.W = s0.Value.W*h00 + s0.OutTangent.W*h10 + s1.Value.W*h01 + s1.InTangent.W*h11
	return r
}
