// Copyright 2024 The Moonburn Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package skel

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PlayerLegend/moonburn-engine/loader/gltf"
	"github.com/PlayerLegend/moonburn-engine/math32"
)

// floatAccessor builds an accessor over the specified flat float32
// values with the derived sizes the parser would compute.
func floatAccessor(values []float32, at gltf.AttributeType) *gltf.Accessor {

	data := make([]byte, 0, len(values)*4)
	for _, v := range values {
		data = binary.LittleEndian.AppendUint32(data, math.Float32bits(v))
	}
	buffer := &gltf.Buffer{ByteLength: len(data), Data: data}
	view := &gltf.BufferView{Buffer: buffer, ByteLength: len(data)}

	a := &gltf.Accessor{
		BufferView:    view,
		ComponentType: gltf.FLOAT,
		Type:          at,
		Count:         len(values) / at.Components(),
	}
	a.ComponentSize = 4
	a.Components = at.Components()
	a.AttributeSize = a.ComponentSize * a.Components
	a.Stride = a.AttributeSize
	return a
}

// chainSkin builds the three-bone chain A -> B -> C with identity
// transforms and implicit identity inverse bind matrices.
func chainSkin() *gltf.Skin {

	a := &gltf.Node{Name: "A"}
	b := &gltf.Node{Name: "B"}
	c := &gltf.Node{Name: "C"}
	a.Transform.Identity()
	b.Transform.Identity()
	c.Transform.Identity()
	a.Children = []*gltf.Node{b}
	b.Parent = a
	b.Children = []*gltf.Node{c}
	c.Parent = b

	return &gltf.Skin{Name: "Chain", Joints: []*gltf.Node{a, b, c}}
}

func TestNewArmature(t *testing.T) {

	armature, err := NewArmature(chainSkin())
	require.NoError(t, err)

	require.Len(t, armature.Bones, 3)
	assert.Equal(t, "A", armature.RootName)
	assert.Equal(t, BoneIndex(0), armature.BoneNames["A"])
	assert.Equal(t, BoneIndex(1), armature.BoneNames["B"])
	assert.Equal(t, BoneIndex(2), armature.BoneNames["C"])

	// First-child / next-sibling links of a linear chain.
	assert.Equal(t, BoneIndex(1), armature.Bones[0].Child)
	assert.Equal(t, MaxBones, armature.Bones[0].Parent)
	assert.Equal(t, BoneIndex(2), armature.Bones[1].Child)
	assert.Equal(t, BoneIndex(0), armature.Bones[1].Parent)
	assert.Equal(t, MaxBones, armature.Bones[2].Child)
	assert.Equal(t, BoneIndex(1), armature.Bones[2].Parent)
	assert.Equal(t, MaxBones, armature.Bones[1].Peer)

	require.Len(t, armature.InverseBindMatrices, 3)
	identity := math32.NewMatrix4()
	for i := range armature.InverseBindMatrices {
		assert.Equal(t, *identity, armature.InverseBindMatrices[i], "bone %d", i)
	}
}

func TestNewArmatureSiblings(t *testing.T) {

	root := &gltf.Node{Name: "Root"}
	left := &gltf.Node{Name: "Left"}
	right := &gltf.Node{Name: "Right"}
	for _, n := range []*gltf.Node{root, left, right} {
		n.Transform.Identity()
	}
	root.Children = []*gltf.Node{left, right}
	left.Parent = root
	right.Parent = root

	armature, err := NewArmature(&gltf.Skin{Joints: []*gltf.Node{root, left, right}})
	require.NoError(t, err)

	// Children are pushed front-first, so the last linked child
	// heads the list and peers point at earlier siblings.
	assert.Equal(t, BoneIndex(2), armature.Bones[0].Child)
	assert.Equal(t, BoneIndex(1), armature.Bones[2].Peer)
	assert.Equal(t, MaxBones, armature.Bones[1].Peer)
	assert.Equal(t, BoneIndex(0), armature.Bones[1].Parent)
	assert.Equal(t, BoneIndex(0), armature.Bones[2].Parent)
}

func TestNewArmatureInverseBindMatrices(t *testing.T) {

	skin := chainSkin()

	// A full set of inverse bind matrices is copied through.
	matrices := make([]float32, 3*16)
	identity := math32.NewMatrix4()
	for i := 0; i < 3; i++ {
		identity.ToArray(matrices, i*16)
	}
	skin.InverseBindMatrices = floatAccessor(matrices, gltf.MAT4)
	_, err := NewArmature(skin)
	require.NoError(t, err)

	// A mismatched count fails.
	skin.InverseBindMatrices = floatAccessor(matrices[:32], gltf.MAT4)
	_, err = NewArmature(skin)
	require.Error(t, err)
	var serr *Error
	assert.ErrorAs(t, err, &serr)
}

func TestNewArmatureNoJoints(t *testing.T) {

	_, err := NewArmature(&gltf.Skin{Name: "empty"})
	assert.Error(t, err)
}

func TestNewArmatureIgnoresNonJointChildren(t *testing.T) {

	skin := chainSkin()
	// Attach a mesh node to a joint; it is not part of the skin.
	mesh := &gltf.Node{Name: "MeshNode"}
	mesh.Transform.Identity()
	skin.Joints[2].Children = append(skin.Joints[2].Children, mesh)

	armature, err := NewArmature(skin)
	require.NoError(t, err)
	assert.Equal(t, MaxBones, armature.Bones[2].Child)
}
