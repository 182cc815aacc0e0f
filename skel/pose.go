// Copyright 2024 The Moonburn Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package skel

import (
	"github.com/PlayerLegend/moonburn-engine/loader/gltf"
	"github.com/PlayerLegend/moonburn-engine/math32"
)

type accum3 struct {
	value  math32.Vector3
	weight float32
}

type accum4 struct {
	value  math32.Vector4
	weight float32
}

// Pose blends weighted animation frames over an armature into a
// palette of world-space bone matrices. A pose is owned by one
// evaluating goroutine; concurrent Accumulate calls on the same pose
// are undefined.
type Pose struct {
	armature    *Armature
	translation []accum3
	rotation    []accum4
	scale       []accum3
	output      []math32.Matrix4
	valid       bool
}

// NewPose creates a pose over the specified armature, initialized to
// the rest pose.
func NewPose(armature *Armature) *Pose {

	p := &Pose{
		armature:    armature,
		translation: make([]accum3, len(armature.Bones)),
		rotation:    make([]accum4, len(armature.Bones)),
		scale:       make([]accum3, len(armature.Bones)),
	}
	p.Start()
	return p
}

// Armature returns the armature this pose evaluates over.
func (p *Pose) Armature() *Armature {

	return p.armature
}

// Start resets every accumulator to the armature's default transform
// with zero weight. Idempotent.
func (p *Pose) Start() {

	for i := range p.armature.Bones {
		def := &p.armature.DefaultTransforms[i]
		p.translation[i] = accum3{value: def.Translation}
		p.rotation[i] = accum4{value: def.Rotation}
		p.scale[i] = accum3{value: def.Scale}
	}
	p.valid = false
}

func (p *Pose) accumulateTranslation(bone BoneIndex, value math32.Vector3, weight float32) {

	acc := &p.translation[bone]
	if acc.weight < math32.Epsilon {
		acc.value = value
		acc.weight = weight
		return
	}
	acc.value.Lerp(&value, weight/(weight+acc.weight))
	acc.weight += weight
}

func (p *Pose) accumulateRotation(bone BoneIndex, value math32.Vector4, weight float32) {

	acc := &p.rotation[bone]
	if acc.weight < math32.Epsilon {
		acc.value = value
		acc.weight = weight
		return
	}
	acc.value.Slerp(&value, weight/(weight+acc.weight))
	acc.weight += weight
}

func (p *Pose) accumulateScale(bone BoneIndex, value math32.Vector3, weight float32) {

	acc := &p.scale[bone]
	if acc.weight < math32.Epsilon {
		acc.value = value
		acc.weight = weight
		return
	}
	acc.value.Lerp(&value, weight/(weight+acc.weight))
	acc.weight += weight
}

// Accumulate folds the animation sampled at time into the pose with
// the specified weight, over the whole armature.
func (p *Pose) Accumulate(anim *Animation, time, weight float32) error {

	return p.AccumulateSubtree(p.armature.RootName, anim, time, weight)
}

// AccumulateSubtree folds the animation sampled at time into the
// pose with the specified weight, restricted to the subtree rooted
// at the named bone. The armature's root name selects every bone.
// Channels targeting names outside the subtree are ignored.
func (p *Pose) AccumulateSubtree(rootName string, anim *Animation, time, weight float32) error {

	p.valid = false

	var roots []BoneIndex
	if bi, ok := p.armature.BoneNames[rootName]; ok {
		roots = append(roots, bi)
	} else if rootName == p.armature.RootName {
		for i := range p.armature.Bones {
			if p.armature.Bones[i].Parent == MaxBones {
				roots = append(roots, BoneIndex(i))
			}
		}
	} else {
		return errf("bone %q is not in the armature", rootName)
	}

	// The frame parameters are derived once per distinct time axis
	// and shared by every channel the axis drives.
	for _, ax := range anim.axes {
		params := NewParams(ax.input, time)
		for _, root := range roots {
			p.accumulateSubtreeAxis(ax, params, root, weight)
		}
	}
	return nil
}

// accumulateSubtreeAxis walks the bone subtree in first-child /
// next-sibling order and folds the axis channels of each visited
// bone into its accumulators.
func (p *Pose) accumulateSubtreeAxis(ax *axis, params Params, bone BoneIndex, weight float32) {

	for _, ch := range ax.bones[p.armature.Bones[bone].Name] {
		switch ch.path {
		case gltf.PathTranslation:
			p.accumulateTranslation(bone, ch.sampler.evalVec3(params), weight)
		case gltf.PathRotation:
			p.accumulateRotation(bone, ch.sampler.evalVec4(params), weight)
		case gltf.PathScale:
			p.accumulateScale(bone, ch.sampler.evalVec3(params), weight)
		}
	}

	for c := p.armature.Bones[bone].Child; c != MaxBones; c = p.armature.Bones[c].Peer {
		p.accumulateSubtreeAxis(ax, params, c, weight)
	}
}

// Finalize converts the accumulated TRS values into world-space bone
// matrices multiplied by the inverse bind matrices. The result is
// memoized until the next Start or Accumulate.
func (p *Pose) Finalize() []math32.Matrix4 {

	if p.valid {
		return p.output
	}

	count := len(p.armature.Bones)
	locals := make([]math32.Matrix4, count)
	for i := 0; i < count; i++ {
		transform := math32.Transform{
			Translation: p.translation[i].value,
			Rotation:    p.rotation[i].value,
			Scale:       p.scale[i].value,
		}
		locals[i] = transform.Matrix4()
	}

	// Compose world transforms in pre-order so every parent is
	// final before its children.
	world := make([]math32.Matrix4, count)
	var walk func(bone BoneIndex, parent *math32.Matrix4)
	walk = func(bone BoneIndex, parent *math32.Matrix4) {
		if parent == nil {
			world[bone] = locals[bone]
		} else {
			world[bone].MultiplyMatrices(parent, &locals[bone])
		}
		for c := p.armature.Bones[bone].Child; c != MaxBones; c = p.armature.Bones[c].Peer {
			walk(c, &world[bone])
		}
	}
	for i := 0; i < count; i++ {
		if p.armature.Bones[i].Parent == MaxBones {
			walk(BoneIndex(i), nil)
		}
	}

	p.output = make([]math32.Matrix4, count)
	for i := 0; i < count; i++ {
		p.output[i].MultiplyMatrices(&world[i], &p.armature.InverseBindMatrices[i])
	}
	p.valid = true
	return p.output
}

// Palette returns the finalized bone matrices flattened row-major,
// ready for upload to an RGBA32F skinning texture of 4 x bone count
// texels where each bone occupies four adjacent texels.
func (p *Pose) Palette() math32.ArrayF32 {

	matrices := p.Finalize()
	arr := math32.NewArrayF32(len(matrices)*16, len(matrices)*16)
	for i := range matrices {
		matrices[i].ToArrayRowMajor(arr, i*16)
	}
	return arr
}
