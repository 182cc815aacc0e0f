// Copyright 2024 The Moonburn Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package skel evaluates skeletal animation. An Armature is the
// bone tree and rest pose derived from a glTF skin; an Animation is
// a set of interpolating samplers grouped by their shared time axes;
// a Pose blends any number of weighted animation frames into a flat
// palette of bone matrices.
package skel

import (
	"fmt"
)

// BoneIndex identifies one bone of an armature.
type BoneIndex uint8

// MaxBones is the reserved "no bone" sentinel, which also bounds the
// number of bones an armature can hold.
const MaxBones BoneIndex = 255

// Error is an armature or animation structural failure: a joint
// count mismatch, an unsupported sampler output shape, a missing
// bone.
type Error struct {
	Msg string
}

func (e *Error) Error() string {

	return e.Msg
}

func errf(format string, v ...interface{}) *Error {

	return &Error{Msg: fmt.Sprintf(format, v...)}
}
