// Copyright 2024 The Moonburn Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gltf

import (
	"encoding/binary"
	"math"

	"github.com/PlayerLegend/moonburn-engine/jsonval"
	"github.com/PlayerLegend/moonburn-engine/math32"
)

// reader resolves the bytes behind an accessor's elements, applying
// the sparse substitution before any numeric conversion.
type reader struct {
	a    *Accessor
	data []byte
	base int

	sparseData []byte
	sparseBase int
	overrides  map[int]int // element index -> ordinal in the sparse values region
}

func (a *Accessor) newReader() (*reader, error) {

	r := &reader{
		a:    a,
		data: a.BufferView.Buffer.Data,
		base: a.BufferView.ByteOffset + a.ByteOffset,
	}
	if a.Sparse == nil || a.Sparse.Count == 0 {
		return r, nil
	}

	idx := a.Sparse.Indices
	ibytes := idx.BufferView.Buffer.Data
	ibase := idx.BufferView.ByteOffset + idx.ByteOffset
	r.overrides = make(map[int]int, a.Sparse.Count)
	for k := 0; k < a.Sparse.Count; k++ {
		var e int
		switch idx.ComponentType {
		case UNSIGNED_BYTE:
			e = int(ibytes[ibase+k])
		case UNSIGNED_SHORT:
			e = int(binary.LittleEndian.Uint16(ibytes[ibase+k*2:]))
		case UNSIGNED_INT:
			e = int(binary.LittleEndian.Uint32(ibytes[ibase+k*4:]))
		}
		if e >= a.Count {
			return nil, parseErrorAt(jsonval.Location{}, "sparse index %d out of range for accessor of %d elements", e, a.Count)
		}
		r.overrides[e] = k
	}

	val := a.Sparse.Values
	r.sparseData = val.BufferView.Buffer.Data
	r.sparseBase = val.BufferView.ByteOffset + val.ByteOffset
	return r, nil
}

// component returns the raw bytes of component j of element i.
func (r *reader) component(i, j int) []byte {

	if r.overrides != nil {
		if k, ok := r.overrides[i]; ok {
			off := r.sparseBase + k*r.a.AttributeSize + j*r.a.ComponentSize
			return r.sparseData[off : off+r.a.ComponentSize]
		}
	}
	off := r.base + i*r.a.Stride + j*r.a.ComponentSize
	return r.data[off : off+r.a.ComponentSize]
}

// float reads component (i, j) as a float32, normalizing integer
// sources per the glTF normalization rules.
func (r *reader) float(i, j int) (float32, error) {

	b := r.component(i, j)

	if r.a.ComponentType == FLOAT {
		return math.Float32frombits(binary.LittleEndian.Uint32(b)), nil
	}
	if !r.a.Normalized {
		return 0, typeMismatch("accessor %q: no conversion from non-normalized component type %d to float",
			r.a.Name, r.a.ComponentType)
	}
	switch r.a.ComponentType {
	case UNSIGNED_BYTE:
		return float32(b[0]) / 255, nil
	case UNSIGNED_SHORT:
		return float32(binary.LittleEndian.Uint16(b)) / 65535, nil
	case BYTE:
		f := float32(int8(b[0])) / 127
		if f < -1 {
			f = -1
		}
		return f, nil
	case SHORT:
		f := float32(int16(binary.LittleEndian.Uint16(b))) / 32767
		if f < -1 {
			f = -1
		}
		return f, nil
	}
	return 0, typeMismatch("accessor %q: normalized component type %d has no float conversion",
		r.a.Name, r.a.ComponentType)
}

// uint reads component (i, j) as a zero-extended unsigned integer.
func (r *reader) uint(i, j int) (uint32, error) {

	if r.a.Normalized {
		return 0, typeMismatch("accessor %q: normalized values cannot be read as raw integers", r.a.Name)
	}
	b := r.component(i, j)
	switch r.a.ComponentType {
	case UNSIGNED_BYTE:
		return uint32(b[0]), nil
	case UNSIGNED_SHORT:
		return uint32(binary.LittleEndian.Uint16(b)), nil
	case UNSIGNED_INT:
		return binary.LittleEndian.Uint32(b), nil
	}
	return 0, typeMismatch("accessor %q: component type %d cannot be read as an unsigned integer",
		r.a.Name, r.a.ComponentType)
}

func (a *Accessor) checkType(want AttributeType) error {

	if a.Type != want {
		return typeMismatch("accessor %q has type %s, want %s", a.Name, a.Type, want)
	}
	return nil
}

// Floats extracts a SCALAR accessor as a float32 sequence.
func (a *Accessor) Floats() ([]float32, error) {

	if err := a.checkType(SCALAR); err != nil {
		return nil, err
	}
	r, err := a.newReader()
	if err != nil {
		return nil, err
	}
	out := make([]float32, a.Count)
	for i := range out {
		if out[i], err = r.float(i, 0); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Vec2s extracts a VEC2 accessor as a Vector2 sequence.
func (a *Accessor) Vec2s() ([]math32.Vector2, error) {

	if err := a.checkType(VEC2); err != nil {
		return nil, err
	}
	r, err := a.newReader()
	if err != nil {
		return nil, err
	}
	out := make([]math32.Vector2, a.Count)
	for i := range out {
		var c [2]float32
		for j := range c {
			if c[j], err = r.float(i, j); err != nil {
				return nil, err
			}
		}
		out[i].Set(c[0], c[1])
	}
	return out, nil
}

// Vec3s extracts a VEC3 accessor as a Vector3 sequence.
func (a *Accessor) Vec3s() ([]math32.Vector3, error) {

	if err := a.checkType(VEC3); err != nil {
		return nil, err
	}
	r, err := a.newReader()
	if err != nil {
		return nil, err
	}
	out := make([]math32.Vector3, a.Count)
	for i := range out {
		var c [3]float32
		for j := range c {
			if c[j], err = r.float(i, j); err != nil {
				return nil, err
			}
		}
		out[i].Set(c[0], c[1], c[2])
	}
	return out, nil
}

// Vec4s extracts a VEC4 accessor as a Vector4 sequence.
func (a *Accessor) Vec4s() ([]math32.Vector4, error) {

	if err := a.checkType(VEC4); err != nil {
		return nil, err
	}
	r, err := a.newReader()
	if err != nil {
		return nil, err
	}
	out := make([]math32.Vector4, a.Count)
	for i := range out {
		var c [4]float32
		for j := range c {
			if c[j], err = r.float(i, j); err != nil {
				return nil, err
			}
		}
		out[i].Set(c[0], c[1], c[2], c[3])
	}
	return out, nil
}

// Mat4s extracts a MAT4 accessor as a Matrix4 sequence. The buffer
// holds matrices in column-major order, which matches the Matrix4
// storage layout.
func (a *Accessor) Mat4s() ([]math32.Matrix4, error) {

	if err := a.checkType(MAT4); err != nil {
		return nil, err
	}
	r, err := a.newReader()
	if err != nil {
		return nil, err
	}
	out := make([]math32.Matrix4, a.Count)
	for i := range out {
		for j := 0; j < 16; j++ {
			if out[i][j], err = r.float(i, j); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// Uint16s extracts a SCALAR accessor as a uint16 sequence.
func (a *Accessor) Uint16s() ([]uint16, error) {

	if err := a.checkType(SCALAR); err != nil {
		return nil, err
	}
	r, err := a.newReader()
	if err != nil {
		return nil, err
	}
	out := make([]uint16, a.Count)
	for i := range out {
		u, err := r.uint(i, 0)
		if err != nil {
			return nil, err
		}
		if u > math.MaxUint16 {
			return nil, typeMismatch("accessor %q: value %d does not fit in 16 bits", a.Name, u)
		}
		out[i] = uint16(u)
	}
	return out, nil
}

// Uint32s extracts a SCALAR accessor as a uint32 sequence,
// zero-extending narrower unsigned sources.
func (a *Accessor) Uint32s() (math32.ArrayU32, error) {

	if err := a.checkType(SCALAR); err != nil {
		return nil, err
	}
	r, err := a.newReader()
	if err != nil {
		return nil, err
	}
	out := math32.NewArrayU32(a.Count, a.Count)
	for i := range out {
		if out[i], err = r.uint(i, 0); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// quantizeMax returns the quantization factor of an integer target
// component type, or 0 when quantization to it is undefined.
func quantizeMax(ct ComponentType) float64 {

	switch ct {
	case BYTE:
		return 127
	case UNSIGNED_BYTE:
		return 255
	case SHORT:
		return 32767
	case UNSIGNED_SHORT:
		return 65535
	}
	return 0
}

func appendComponent(out []byte, ct ComponentType, bits uint32) []byte {

	switch ct.Size() {
	case 1:
		return append(out, byte(bits))
	case 2:
		return binary.LittleEndian.AppendUint16(out, uint16(bits))
	}
	return binary.LittleEndian.AppendUint32(out, bits)
}

// Dump appends the accessor's elements to out, tightly packed and
// converted to the target component and attribute types. The
// appended size is exactly Count * targetAT components * targetCT
// size bytes. This is the only exchange format the GPU layer
// consumes from the glTF layer.
func (a *Accessor) Dump(out []byte, targetCT ComponentType, targetAT AttributeType) ([]byte, error) {

	if targetAT.Components() != a.Components {
		return nil, typeMismatch("accessor %q has type %s, cannot dump as %s", a.Name, a.Type, targetAT)
	}
	if targetCT.Size() == 0 {
		return nil, typeMismatch("unknown target component type %d", targetCT)
	}

	r, err := a.newReader()
	if err != nil {
		return nil, err
	}

	for i := 0; i < a.Count; i++ {
		for j := 0; j < a.Components; j++ {

			if targetCT == FLOAT {
				f, err := r.float(i, j)
				if err != nil {
					return nil, err
				}
				out = appendComponent(out, FLOAT, math.Float32bits(f))
				continue
			}

			if a.ComponentType == FLOAT || a.Normalized {
				// Quantize through the normalized float form.
				max := quantizeMax(targetCT)
				if max == 0 {
					return nil, typeMismatch("accessor %q: no quantization rule for target component type %d",
						a.Name, targetCT)
				}
				f, err := r.float(i, j)
				if err != nil {
					return nil, err
				}
				q := int64(math.Round(float64(f) * max))
				out = appendComponent(out, targetCT, uint32(q))
				continue
			}

			// Raw integer copy: zero-extension of unsigned sources.
			if targetCT.Signed() {
				return nil, typeMismatch("accessor %q: no conversion from unsigned component type %d to signed %d",
					a.Name, a.ComponentType, targetCT)
			}
			u, err := r.uint(i, j)
			if err != nil {
				return nil, err
			}
			if targetCT.Size() < 4 && u >= 1<<(8*targetCT.Size()) {
				return nil, typeMismatch("accessor %q: value %d does not fit target component type %d",
					a.Name, u, targetCT)
			}
			out = appendComponent(out, targetCT, u)
		}
	}
	return out, nil
}
