// Copyright 2024 The Moonburn Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gltf loads glTF/GLB assets into a strongly typed document
// graph. Cross-references between entities are resolved to pointers
// during construction, so a parsed document never exposes raw
// indices. The accessor decoder converts strided buffer regions into
// typed vertex and animation streams on demand.
package gltf

import (
	"github.com/PlayerLegend/moonburn-engine/math32"
	"github.com/PlayerLegend/moonburn-engine/pixmap"
)

// ComponentType is the numeric encoding of one accessor component.
type ComponentType uint16

// Possible componentType values.
const (
	BYTE           ComponentType = 5120
	UNSIGNED_BYTE  ComponentType = 5121
	SHORT          ComponentType = 5122
	UNSIGNED_SHORT ComponentType = 5123
	UNSIGNED_INT   ComponentType = 5125
	FLOAT          ComponentType = 5126
)

// Size returns the size in bytes of one component of this type.
func (ct ComponentType) Size() int {

	switch ct {
	case BYTE, UNSIGNED_BYTE:
		return 1
	case SHORT, UNSIGNED_SHORT:
		return 2
	case UNSIGNED_INT, FLOAT:
		return 4
	}
	return 0
}

// Signed reports whether the component type is a signed integer.
func (ct ComponentType) Signed() bool {

	return ct == BYTE || ct == SHORT
}

// AttributeType is the shape of one accessor attribute.
type AttributeType string

// Attribute element types.
const (
	SCALAR = AttributeType("SCALAR")
	VEC2   = AttributeType("VEC2")
	VEC3   = AttributeType("VEC3")
	VEC4   = AttributeType("VEC4")
	MAT2   = AttributeType("MAT2")
	MAT3   = AttributeType("MAT3")
	MAT4   = AttributeType("MAT4")
)

// typeSizes maps an attribute element type to the number of components it contains.
var typeSizes = map[AttributeType]int{
	SCALAR: 1,
	VEC2:   2,
	VEC3:   3,
	VEC4:   4,
	MAT2:   4,
	MAT3:   9,
	MAT4:   16,
}

// Components returns the number of components per attribute of this
// type, or 0 for an unknown type.
func (at AttributeType) Components() int {

	return typeSizes[at]
}

// BufferViewTarget is the GPU buffer binding hint of a buffer view.
type BufferViewTarget uint16

// OpenGL array types.
const (
	TARGET_UNSET         BufferViewTarget = 0
	ARRAY_BUFFER         BufferViewTarget = 34962 // For vertex attributes
	ELEMENT_ARRAY_BUFFER BufferViewTarget = 34963 // For indices
)

// Texture filtering modes.
const (
	NEAREST                = 9728
	LINEAR                 = 9729
	NEAREST_MIPMAP_NEAREST = 9984
	LINEAR_MIPMAP_NEAREST  = 9985
	NEAREST_MIPMAP_LINEAR  = 9986
	LINEAR_MIPMAP_LINEAR   = 9987
)

// Texture sampling modes.
const (
	CLAMP_TO_EDGE   = 33071
	MIRRORED_REPEAT = 33648
	REPEAT          = 10497
)

// Primitive types.
const (
	POINTS         = 0
	LINES          = 1
	LINE_LOOP      = 2
	LINE_STRIP     = 3
	TRIANGLES      = 4
	TRIANGLE_STRIP = 5
	TRIANGLE_FAN   = 6
)

// Interpolation is an animation sampler interpolation algorithm.
type Interpolation string

const (
	InterpolationStep        = Interpolation("STEP")
	InterpolationLinear      = Interpolation("LINEAR")
	InterpolationCubicSpline = Interpolation("CUBICSPLINE")
)

// ChannelPath is the node TRS property an animation channel drives.
type ChannelPath string

const (
	PathTranslation = ChannelPath("translation")
	PathRotation    = ChannelPath("rotation")
	PathScale       = ChannelPath("scale")
)

// AlphaMode is the alpha rendering mode of a material.
type AlphaMode string

const (
	AlphaOpaque = AlphaMode("OPAQUE")
	AlphaMask   = AlphaMode("MASK")
	AlphaBlend  = AlphaMode("BLEND")
)

// Asset contains metadata about the glTF asset.
type Asset struct {
	Version   string // The glTF version this asset targets. Required.
	Generator string // Tool that generated this glTF model. Not required.
}

// Buffer owns the bytes referenced by buffer views, taken from the
// GLB BIN chunk or loaded from an external uri.
type Buffer struct {
	Name       string
	URI        string
	ByteLength int
	Data       []byte
}

// BufferView is a contiguous byte range within a buffer with an
// optional stride.
type BufferView struct {
	Name       string
	Buffer     *Buffer
	ByteOffset int
	ByteLength int
	ByteStride int // 0 means tightly packed
	Target     BufferViewTarget
}

// SparseIndices locates the element indices a sparse accessor overrides.
type SparseIndices struct {
	BufferView    *BufferView
	ByteOffset    int
	ComponentType ComponentType
}

// SparseValues locates the replacement attributes of a sparse accessor.
type SparseValues struct {
	BufferView *BufferView
	ByteOffset int
}

// Sparse is the sparse-override block of an accessor.
type Sparse struct {
	Count   int
	Indices SparseIndices
	Values  SparseValues
}

// Accessor is a typed, strided view into a buffer view, the unit of
// vertex and animation data exchange.
type Accessor struct {
	Name          string
	BufferView    *BufferView
	ByteOffset    int
	ComponentType ComponentType
	Type          AttributeType
	Count         int
	Normalized    bool
	Sparse        *Sparse

	// Derived at construction.
	ComponentSize int // bytes per component
	Components    int // components per attribute
	AttributeSize int // bytes per attribute
	Stride        int // bytes between attribute starts
}

// Image is a texture image, decoded at document construction.
type Image struct {
	Name       string
	MimeType   string
	URI        string
	BufferView *BufferView
	Contents   *pixmap.RGBA
}

// Sampler holds texture filtering and wrapping modes.
type Sampler struct {
	Name      string
	MagFilter int
	MinFilter int
	WrapS     int
	WrapT     int
}

// Texture pairs an image with a sampler.
type Texture struct {
	Name    string
	Source  *Image
	Sampler *Sampler
}

// TextureInfo is a reference from a material to a texture.
type TextureInfo struct {
	Texture  *Texture
	TexCoord int
}

// NormalTextureInfo is a material's normal map reference.
type NormalTextureInfo struct {
	TextureInfo
	Scale float32
}

// OcclusionTextureInfo is a material's occlusion map reference.
type OcclusionTextureInfo struct {
	TextureInfo
	Strength float32
}

// PBRMetallicRoughness is the metallic-roughness parameter set of a material.
type PBRMetallicRoughness struct {
	BaseColorFactor          math32.Vector4
	BaseColorTexture         *TextureInfo
	MetallicRoughnessTexture *TextureInfo
	MetallicFactor           float32
	RoughnessFactor          float32
}

// Material describes the appearance of a primitive.
type Material struct {
	Name                 string
	PBRMetallicRoughness *PBRMetallicRoughness
	NormalTexture        *NormalTextureInfo
	OcclusionTexture     *OcclusionTextureInfo
	EmissiveTexture      *TextureInfo
	EmissiveFactor       math32.Vector3
	AlphaMode            AlphaMode
	AlphaCutoff          float32
	DoubleSided          bool
}

// Attributes are the vertex streams of a primitive. A nil field
// means the attribute is not present.
type Attributes struct {
	Position  *Accessor
	Normal    *Accessor
	Tangent   *Accessor
	Texcoord0 *Accessor
	Texcoord1 *Accessor
	Color0    *Accessor
	Joints0   *Accessor
	Weights0  *Accessor
}

// MorphTarget holds the attribute deviations of one morph target.
type MorphTarget struct {
	Position *Accessor
	Normal   *Accessor
	Tangent  *Accessor
}

// Primitive is geometry to be rendered with one material.
type Primitive struct {
	Attributes Attributes
	Indices    *Accessor
	Material   *Material
	Mode       int
	Targets    []MorphTarget
}

// Mesh is a named set of primitives.
type Mesh struct {
	Name       string
	Primitives []Primitive
}

// Node is one node of the scene forest. Parent is filled in after
// all nodes are constructed; nodes listed in no children array are
// roots with a nil Parent.
type Node struct {
	Name      string
	Skin      *Skin
	Mesh      *Mesh
	Transform math32.Transform
	Children  []*Node
	Parent    *Node
}

// Skin is the joint list and inverse bind matrices of a skeleton.
type Skin struct {
	Name                string
	InverseBindMatrices *Accessor // nil means all identity
	Skeleton            *Node
	Joints              []*Node
}

// Scene lists root nodes.
type Scene struct {
	Name  string
	Nodes []*Node
}

// AnimationSampler pairs a keyframe time accessor with an output
// value accessor under an interpolation algorithm.
type AnimationSampler struct {
	Input         *Accessor
	Output        *Accessor
	Interpolation Interpolation
}

// ChannelTarget is the node and TRS property an animation channel drives.
type ChannelTarget struct {
	Node *Node // nil when the channel has no target node
	Path ChannelPath
}

// AnimationChannel routes one of the animation's samplers at a
// node's property.
type AnimationChannel struct {
	Target  ChannelTarget
	Sampler *AnimationSampler
}

// Animation is a named list of samplers and the channels that apply them.
type Animation struct {
	Name     string
	Samplers []*AnimationSampler
	Channels []AnimationChannel
}

// GLTF is the root of a parsed document. Once built the graph is
// immutable and internally self-referential; consumers share the
// whole document.
type GLTF struct {
	Asset       Asset
	Buffers     []*Buffer
	BufferViews []*BufferView
	Accessors   []*Accessor
	Images      []*Image
	Samplers    []*Sampler
	Textures    []*Texture
	Materials   []*Material
	Meshes      []*Mesh
	Nodes       []*Node
	Skins       []*Skin
	Scenes      []*Scene
	Animations  []*Animation
}
