// Copyright 2024 The Moonburn Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package skel

import (
	"github.com/PlayerLegend/moonburn-engine/loader/gltf"
	"github.com/PlayerLegend/moonburn-engine/math32"
)

// Bone is one node of the bone tree in first-child / next-sibling
// form. MaxBones in any field means "none".
type Bone struct {
	Name   string
	Child  BoneIndex
	Peer   BoneIndex
	Parent BoneIndex
}

// Armature is the bone tree and rest pose derived from a glTF skin.
type Armature struct {
	Bones               []Bone
	BoneNames           map[string]BoneIndex
	RootName            string
	DefaultTransforms   []math32.Transform
	InverseBindMatrices []math32.Matrix4
}

// NewArmature derives an armature from the specified skin.
func NewArmature(skin *gltf.Skin) (*Armature, error) {

	count := len(skin.Joints)
	if count == 0 {
		return nil, errf("skin %q has no joints", skin.Name)
	}
	if count > int(MaxBones) {
		return nil, errf("skin %q has %d joints, limit is %d", skin.Name, count, MaxBones)
	}

	a := &Armature{
		Bones:             make([]Bone, count),
		BoneNames:         make(map[string]BoneIndex, count),
		DefaultTransforms: make([]math32.Transform, count),
	}

	if skin.InverseBindMatrices != nil {
		matrices, err := skin.InverseBindMatrices.Mat4s()
		if err != nil {
			return nil, err
		}
		a.InverseBindMatrices = matrices
	} else {
		a.InverseBindMatrices = make([]math32.Matrix4, count)
		for i := range a.InverseBindMatrices {
			a.InverseBindMatrices[i].Identity()
		}
	}
	if len(a.InverseBindMatrices) != count {
		return nil, errf("skin %q joint count %d does not match inverse bind matrix count %d",
			skin.Name, count, len(a.InverseBindMatrices))
	}

	jointIndex := make(map[*gltf.Node]BoneIndex, count)
	for i, joint := range skin.Joints {
		jointIndex[joint] = BoneIndex(i)
		a.Bones[i] = Bone{Name: joint.Name, Child: MaxBones, Peer: MaxBones, Parent: MaxBones}
		a.BoneNames[joint.Name] = BoneIndex(i)
		a.DefaultTransforms[i] = joint.Transform
	}

	// Link each joint's glTF children that are themselves joints.
	// A child already holding a parent would make the traversal
	// revisit bones, so it is rejected up front.
	for i, joint := range skin.Joints {
		for _, childNode := range joint.Children {
			ci, ok := jointIndex[childNode]
			if !ok {
				continue
			}
			child := &a.Bones[ci]
			if child.Parent != MaxBones {
				return nil, errf("joint %q already has a parent", child.Name)
			}
			child.Peer = a.Bones[i].Child
			child.Parent = BoneIndex(i)
			a.Bones[i].Child = ci
		}
	}

	// The armature root is the outermost ancestor of the first joint.
	root := skin.Joints[0]
	for root.Parent != nil {
		root = root.Parent
	}
	a.RootName = root.Name

	log.Debug("armature %q: %d bones, root %q", skin.Name, count, a.RootName)
	return a, nil
}
