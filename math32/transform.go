// Copyright 2024 The Moonburn Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

// Transform holds a decomposed TRS transformation: a translation,
// a rotation quaternion stored as a Vector4 (x, y, z, w) and a scale.
type Transform struct {
	Translation Vector3
	Rotation    Vector4
	Scale       Vector3
}

// NewTransform creates and returns a pointer to a new identity Transform.
func NewTransform() *Transform {

	t := new(Transform)
	t.Identity()
	return t
}

// Identity resets this transform to the identity transformation.
// Returns pointer to this updated transform.
func (t *Transform) Identity() *Transform {

	t.Translation.Zero()
	t.Rotation.Set(0, 0, 0, 1)
	t.Scale.Set(1, 1, 1)
	return t
}

// Matrix4 computes and returns the transformation matrix composed of
// this transform's translation, rotation and scale, applied in
// scale, rotation, translation order.
func (t *Transform) Matrix4() Matrix4 {

	var q Quaternion
	q.SetFromVector4(&t.Rotation)
	var m Matrix4
	m.Compose(&t.Translation, &q, &t.Scale)
	return m
}
