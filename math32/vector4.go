// Copyright 2024 The Moonburn Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

// Vector4 is a vector with X, Y, Z and W components.
// When used to hold a rotation the components are interpreted as a
// quaternion in the order (x, y, z, w) with w the real part.
type Vector4 struct {
	X float32
	Y float32
	Z float32
	W float32
}

// NewVector4 creates and returns a pointer to a new Vector4.
func NewVector4(x, y, z, w float32) *Vector4 {

	return &Vector4{X: x, Y: y, Z: z, W: w}
}

// Set sets this vector X, Y, Z and W components.
// Returns the pointer to this updated vector.
func (v *Vector4) Set(x, y, z, w float32) *Vector4 {

	v.X = x
	v.Y = y
	v.Z = z
	v.W = w
	return v
}

// Copy copies other vector to this one.
// Returns the pointer to this updated vector.
func (v *Vector4) Copy(other *Vector4) *Vector4 {

	v.X = other.X
	v.Y = other.Y
	v.Z = other.Z
	v.W = other.W
	return v
}

// Add adds other vector to this one.
// Returns the pointer to this updated vector.
func (v *Vector4) Add(other *Vector4) *Vector4 {

	v.X += other.X
	v.Y += other.Y
	v.Z += other.Z
	v.W += other.W
	return v
}

// AddVectors adds vectors a and b to this one.
// Returns the pointer to this updated vector.
func (v *Vector4) AddVectors(a, b *Vector4) *Vector4 {

	v.X = a.X + b.X
	v.Y = a.Y + b.Y
	v.Z = a.Z + b.Z
	v.W = a.W + b.W
	return v
}

// MultiplyScalar multiplies each component of this vector by the specified scalar.
// Returns the pointer to this updated vector.
func (v *Vector4) MultiplyScalar(s float32) *Vector4 {

	v.X *= s
	v.Y *= s
	v.Z *= s
	v.W *= s
	return v
}

// Dot returns the dot product of this vector with other.
// None of the vectors are changed.
func (v *Vector4) Dot(other *Vector4) float32 {

	return v.X*other.X + v.Y*other.Y + v.Z*other.Z + v.W*other.W
}

// Length returns the length of this vector.
func (v *Vector4) Length() float32 {

	return Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z + v.W*v.W)
}

// Slerp sets this vector to the spherical linear interpolation at t
// between this vector and other, both interpreted as unit quaternions.
// Uses the angle-sum formulation with the angle obtained from
// Acos(dot); the inputs are interpolated as given, without a
// shortest-arc sign flip.
// Returns the pointer to this updated vector.
func (v *Vector4) Slerp(other *Vector4, t float32) *Vector4 {

	theta := Acos(Clamp(v.Dot(other), -1, 1))
	if Abs(theta) < Epsilon {
		return v
	}

	sinTheta := Sin(theta)
	sa := Sin((1-t)*theta) / sinTheta
	sb := Sin(t*theta) / sinTheta

	v.X = sa*v.X + sb*other.X
	v.Y = sa*v.Y + sb*other.Y
	v.Z = sa*v.Z + sb*other.Z
	v.W = sa*v.W + sb*other.W
	return v
}

// Lerp sets each of this vector's components to the linear interpolated value of
// alpha between itself and the corresponding other component.
// Returns the pointer to this updated vector.
func (v *Vector4) Lerp(other *Vector4, alpha float32) *Vector4 {

	v.X += (other.X - v.X) * alpha
	v.Y += (other.Y - v.Y) * alpha
	v.Z += (other.Z - v.Z) * alpha
	v.W += (other.W - v.W) * alpha
	return v
}

// Equals returns if this vector is equal to other.
func (v *Vector4) Equals(other *Vector4) bool {

	return (other.X == v.X) && (other.Y == v.Y) && (other.Z == v.Z) && (other.W == v.W)
}

// AlmostEquals returns whether the vector is almost equal to another vector within the specified tolerance.
func (v *Vector4) AlmostEquals(other *Vector4, tolerance float32) bool {

	return Abs(v.X-other.X) < tolerance &&
		Abs(v.Y-other.Y) < tolerance &&
		Abs(v.Z-other.Z) < tolerance &&
		Abs(v.W-other.W) < tolerance
}

// FromArray sets this vector's components from the specified array and offset.
// Returns the pointer to this updated vector.
func (v *Vector4) FromArray(array []float32, offset int) *Vector4 {

	v.X = array[offset]
	v.Y = array[offset+1]
	v.Z = array[offset+2]
	v.W = array[offset+3]
	return v
}

// ToArray copies this vector's components to array starting at offset.
// Returns the array.
func (v *Vector4) ToArray(array []float32, offset int) []float32 {

	array[offset] = v.X
	array[offset+1] = v.Y
	array[offset+2] = v.Z
	array[offset+3] = v.W
	return array
}

// Clone returns a copy of this vector
func (v *Vector4) Clone() *Vector4 {

	return NewVector4(v.X, v.Y, v.Z, v.W)
}
