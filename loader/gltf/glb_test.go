// Copyright 2024 The Moonburn Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gltf

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildGLB frames the specified JSON and BIN payloads into a GLB container.
func buildGLB(json, bin []byte) []byte {

	total := glbHeaderSize + glbChunkSize + len(json) + glbChunkSize + len(bin)

	out := make([]byte, 0, total)
	out = binary.LittleEndian.AppendUint32(out, GLBMagic)
	out = binary.LittleEndian.AppendUint32(out, 2)
	out = binary.LittleEndian.AppendUint32(out, uint32(total))
	out = binary.LittleEndian.AppendUint32(out, uint32(len(json)))
	out = binary.LittleEndian.AppendUint32(out, GLBJson)
	out = append(out, json...)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(bin)))
	out = binary.LittleEndian.AppendUint32(out, GLBBin)
	out = append(out, bin...)
	return out
}

func TestParseGLB(t *testing.T) {

	json := []byte(`{"asset":{"version":"2.0"}}`)
	bin := []byte{1, 2, 3, 4}
	data := buildGLB(json, bin)

	glb, err := ParseGLB(data)
	require.NoError(t, err)
	assert.Equal(t, json, glb.JSON)
	assert.Equal(t, bin, glb.Bin)
	assert.Equal(t, uint32(2), glb.Version)

	// Both views are subranges of the input.
	assert.LessOrEqual(t, len(glb.JSON)+len(glb.Bin)+24, len(data))
}

func TestParseGLBMalformed(t *testing.T) {

	json := []byte(`{}`)
	bin := []byte{1, 2, 3, 4}
	good := buildGLB(json, bin)

	corrupt := func(mutate func(data []byte) []byte) []byte {
		data := append([]byte(nil), good...)
		return mutate(data)
	}

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"short header", good[:8]},
		{"bad magic", corrupt(func(d []byte) []byte {
			binary.LittleEndian.PutUint32(d, 0xDEADBEEF)
			return d
		})},
		{"old version", corrupt(func(d []byte) []byte {
			binary.LittleEndian.PutUint32(d[4:], 1)
			return d
		})},
		{"wrong JSON chunk type", corrupt(func(d []byte) []byte {
			binary.LittleEndian.PutUint32(d[16:], GLBBin)
			return d
		})},
		{"wrong BIN chunk type", corrupt(func(d []byte) []byte {
			binary.LittleEndian.PutUint32(d[20+len(json)+4:], GLBJson)
			return d
		})},
		{"JSON length out of bounds", corrupt(func(d []byte) []byte {
			binary.LittleEndian.PutUint32(d[12:], uint32(len(d)))
			return d
		})},
		{"truncated BIN payload", good[:len(good)-2]},
	}

	for _, test := range tests {
		_, err := ParseGLB(test.data)
		require.Error(t, err, test.name)
		assert.ErrorIs(t, err, ErrGLBMalformed, test.name)
	}
}

func TestIsGLB(t *testing.T) {

	assert.True(t, IsGLB(buildGLB([]byte(`{}`), nil)))
	assert.False(t, IsGLB([]byte(`{"asset":{}}`)))
	assert.False(t, IsGLB([]byte{0x67}))
}
