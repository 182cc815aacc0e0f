// Copyright 2024 The Moonburn Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gltf

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PlayerLegend/moonburn-engine/math32"
)

// makeAccessor builds a standalone accessor over the specified raw
// bytes, deriving the sizes the parser would.
func makeAccessor(data []byte, ct ComponentType, at AttributeType, count, byteStride int) *Accessor {

	buffer := &Buffer{ByteLength: len(data), Data: data}
	view := &BufferView{Buffer: buffer, ByteLength: len(data), ByteStride: byteStride}

	a := &Accessor{
		BufferView:    view,
		ComponentType: ct,
		Type:          at,
		Count:         count,
	}
	a.ComponentSize = ct.Size()
	a.Components = at.Components()
	a.AttributeSize = a.ComponentSize * a.Components
	a.Stride = byteStride
	if a.Stride == 0 {
		a.Stride = a.AttributeSize
	}
	return a
}

func floatBytes(values ...float32) []byte {

	out := make([]byte, 0, len(values)*4)
	for _, v := range values {
		out = binary.LittleEndian.AppendUint32(out, math.Float32bits(v))
	}
	return out
}

func TestFloatRoundtrip(t *testing.T) {

	values := []float32{0, 1, -1, 0.5, math.Pi, -1e-7, 3e8}
	a := makeAccessor(floatBytes(values...), FLOAT, SCALAR, len(values), 0)

	got, err := a.Floats()
	require.NoError(t, err)
	require.Len(t, got, len(values))
	for i, want := range values {
		assert.Equal(t, math.Float32bits(want), math.Float32bits(got[i]), "element %d", i)
	}
}

func TestVec3Interleaved(t *testing.T) {

	// Two vec3 positions interleaved with a vec3 normal: stride 24.
	data := floatBytes(
		1, 2, 3, 10, 10, 10,
		4, 5, 6, 20, 20, 20,
	)
	a := makeAccessor(data, FLOAT, VEC3, 2, 24)

	got, err := a.Vec3s()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, float32(1), got[0].X)
	assert.Equal(t, float32(6), got[1].Z)
}

func TestNormalizedQuantization(t *testing.T) {

	// For every v in {-max, -max/2, 0, max/2, max},
	// round(asFloat * max) recovers the original integer.
	t.Run("byte", func(t *testing.T) {
		values := []int8{-127, -63, 0, 63, 127}
		data := make([]byte, len(values))
		for i, v := range values {
			data[i] = byte(v)
		}
		a := makeAccessor(data, BYTE, SCALAR, len(values), 0)
		a.Normalized = true
		got, err := a.Floats()
		require.NoError(t, err)
		for i, want := range values {
			assert.Equal(t, float64(want), math.Round(float64(got[i])*127), "element %d", i)
		}
	})

	t.Run("ushort", func(t *testing.T) {
		values := []uint16{0, 32767, 65535}
		data := make([]byte, 0, len(values)*2)
		for _, v := range values {
			data = binary.LittleEndian.AppendUint16(data, v)
		}
		a := makeAccessor(data, UNSIGNED_SHORT, SCALAR, len(values), 0)
		a.Normalized = true
		got, err := a.Floats()
		require.NoError(t, err)
		for i, want := range values {
			assert.Equal(t, float64(want), math.Round(float64(got[i])*65535), "element %d", i)
		}
	})

	t.Run("short lower clamp", func(t *testing.T) {
		data := make([]byte, 2)
		binary.LittleEndian.PutUint16(data, uint16(0x8000)) // -32768
		a := makeAccessor(data, SHORT, SCALAR, 1, 0)
		a.Normalized = true
		got, err := a.Floats()
		require.NoError(t, err)
		assert.Equal(t, float32(-1), got[0])
	})
}

func TestEmptyAccessor(t *testing.T) {

	a := makeAccessor(nil, FLOAT, VEC3, 0, 0)
	got, err := a.Vec3s()
	require.NoError(t, err)
	assert.Empty(t, got)

	out, err := a.Dump(nil, FLOAT, VEC3)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestTypeMismatch(t *testing.T) {

	a := makeAccessor(floatBytes(1, 2, 3), FLOAT, VEC3, 1, 0)

	_, err := a.Vec2s()
	require.Error(t, err)
	var mismatch *TypeMismatchError
	assert.ErrorAs(t, err, &mismatch)

	_, err = a.Floats()
	assert.Error(t, err)

	// Non-normalized integers have no float form.
	b := makeAccessor([]byte{1, 2}, UNSIGNED_BYTE, VEC2, 1, 0)
	_, err = b.Vec2s()
	assert.Error(t, err)

	// Signed sources cannot be read as raw unsigned integers.
	c := makeAccessor([]byte{1, 2}, BYTE, SCALAR, 2, 0)
	_, err = c.Uint32s()
	assert.Error(t, err)
}

func TestIndexExtraction(t *testing.T) {

	data := make([]byte, 0, 6)
	for _, v := range []uint16{0, 1, 512} {
		data = binary.LittleEndian.AppendUint16(data, v)
	}
	a := makeAccessor(data, UNSIGNED_SHORT, SCALAR, 3, 0)

	u32, err := a.Uint32s()
	require.NoError(t, err)
	assert.Equal(t, math32.ArrayU32{0, 1, 512}, u32)

	u16, err := a.Uint16s()
	require.NoError(t, err)
	assert.Equal(t, []uint16{0, 1, 512}, u16)
}

func TestDump(t *testing.T) {

	values := []float32{0.5, -0.25, 1, 0, -1, 0.75}
	a := makeAccessor(floatBytes(values...), FLOAT, VEC3, 2, 0)

	t.Run("float passthrough", func(t *testing.T) {
		out, err := a.Dump(nil, FLOAT, VEC3)
		require.NoError(t, err)
		require.Len(t, out, 2*3*4)
		assert.Equal(t, floatBytes(values...), out)
	})

	t.Run("quantize to short", func(t *testing.T) {
		out, err := a.Dump(nil, SHORT, VEC3)
		require.NoError(t, err)
		require.Len(t, out, 2*3*2)
		first := int16(binary.LittleEndian.Uint16(out))
		assert.Equal(t, int16(16384), first) // round(0.5 * 32767)
		fifth := int16(binary.LittleEndian.Uint16(out[8:]))
		assert.Equal(t, int16(-32767), fifth)
	})

	t.Run("shape mismatch", func(t *testing.T) {
		_, err := a.Dump(nil, FLOAT, VEC2)
		require.Error(t, err)
		var mismatch *TypeMismatchError
		assert.ErrorAs(t, err, &mismatch)
	})

	t.Run("widen indices", func(t *testing.T) {
		data := []byte{3, 7}
		b := makeAccessor(data, UNSIGNED_BYTE, SCALAR, 2, 0)
		out, err := b.Dump(nil, UNSIGNED_INT, SCALAR)
		require.NoError(t, err)
		require.Len(t, out, 8)
		assert.Equal(t, uint32(3), binary.LittleEndian.Uint32(out))
		assert.Equal(t, uint32(7), binary.LittleEndian.Uint32(out[4:]))
	})
}

func makeSparse(a *Accessor, indices []uint16, values []byte) {

	ibytes := make([]byte, 0, len(indices)*2)
	for _, v := range indices {
		ibytes = binary.LittleEndian.AppendUint16(ibytes, v)
	}
	ibuf := &Buffer{ByteLength: len(ibytes), Data: ibytes}
	vbuf := &Buffer{ByteLength: len(values), Data: values}
	a.Sparse = &Sparse{
		Count: len(indices),
		Indices: SparseIndices{
			BufferView:    &BufferView{Buffer: ibuf, ByteLength: len(ibytes)},
			ComponentType: UNSIGNED_SHORT,
		},
		Values: SparseValues{
			BufferView: &BufferView{Buffer: vbuf, ByteLength: len(values)},
		},
	}
}

func TestSparseOverride(t *testing.T) {

	base := floatBytes(1, 2, 3, 4)
	a := makeAccessor(base, FLOAT, SCALAR, 4, 0)
	makeSparse(a, []uint16{1, 3}, floatBytes(20, 40))

	got, err := a.Floats()
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 20, 3, 40}, got)
}

func TestSparseFullOverride(t *testing.T) {

	base := floatBytes(1, 2, 3)
	a := makeAccessor(base, FLOAT, SCALAR, 3, 0)
	makeSparse(a, []uint16{0, 1, 2}, floatBytes(10, 20, 30))

	got, err := a.Floats()
	require.NoError(t, err)
	assert.Equal(t, []float32{10, 20, 30}, got)
}

func TestSparseIndexOutOfRange(t *testing.T) {

	base := floatBytes(1, 2)
	a := makeAccessor(base, FLOAT, SCALAR, 2, 0)
	makeSparse(a, []uint16{5}, floatBytes(9))

	_, err := a.Floats()
	assert.Error(t, err)
}
