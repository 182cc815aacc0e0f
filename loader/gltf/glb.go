// Copyright 2024 The Moonburn Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gltf

import (
	"encoding/binary"
	"fmt"
)

// GLB container constants. All multibyte fields are little-endian.
const (
	GLBMagic = 0x46546C67
	GLBJson  = 0x4E4F534A
	GLBBin   = 0x004E4942
)

const (
	glbHeaderSize = 12
	glbChunkSize  = 8
)

// GLB exposes the JSON and BIN payloads of a binary glTF container.
// Both views are subslices of the input passed to ParseGLB.
type GLB struct {
	Version uint32
	JSON    []byte
	Bin     []byte
}

// IsGLB reports whether data starts with the GLB magic number.
func IsGLB(data []byte) bool {

	return len(data) >= 4 && binary.LittleEndian.Uint32(data) == GLBMagic
}

// ParseGLB validates the container layout of data and returns views
// of the JSON and BIN chunk payloads.
func ParseGLB(data []byte) (*GLB, error) {

	if len(data) < glbHeaderSize {
		return nil, fmt.Errorf("%w: too small for header", ErrGLBMalformed)
	}

	magic := binary.LittleEndian.Uint32(data[0:])
	version := binary.LittleEndian.Uint32(data[4:])
	total := binary.LittleEndian.Uint32(data[8:])

	if magic != GLBMagic {
		return nil, fmt.Errorf("%w: invalid magic 0x%08X", ErrGLBMalformed, magic)
	}
	if version < 2 {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrGLBMalformed, version)
	}
	if int(total) > len(data) {
		return nil, fmt.Errorf("%w: declared length %d exceeds input size %d", ErrGLBMalformed, total, len(data))
	}

	jsonStart := glbHeaderSize
	if jsonStart+glbChunkSize > len(data) {
		return nil, fmt.Errorf("%w: too small for JSON chunk header", ErrGLBMalformed)
	}
	jsonLen := binary.LittleEndian.Uint32(data[jsonStart:])
	jsonType := binary.LittleEndian.Uint32(data[jsonStart+4:])
	if jsonType != GLBJson {
		return nil, fmt.Errorf("%w: invalid chunk type 0x%08X for JSON chunk", ErrGLBMalformed, jsonType)
	}

	jsonData := jsonStart + glbChunkSize
	binStart := jsonData + int(jsonLen)
	if binStart > len(data) {
		return nil, fmt.Errorf("%w: JSON chunk size out of bounds", ErrGLBMalformed)
	}
	if binStart+glbChunkSize > len(data) {
		return nil, fmt.Errorf("%w: BIN chunk header out of bounds", ErrGLBMalformed)
	}
	binLen := binary.LittleEndian.Uint32(data[binStart:])
	binType := binary.LittleEndian.Uint32(data[binStart+4:])
	if binType != GLBBin {
		return nil, fmt.Errorf("%w: invalid chunk type 0x%08X for BIN chunk", ErrGLBMalformed, binType)
	}

	binData := binStart + glbChunkSize
	binEnd := binData + int(binLen)
	if binEnd > len(data) {
		return nil, fmt.Errorf("%w: BIN chunk data out of bounds", ErrGLBMalformed)
	}
	if binEnd > int(total) {
		return nil, fmt.Errorf("%w: chunks exceed declared length %d", ErrGLBMalformed, total)
	}

	return &GLB{
		Version: version,
		JSON:    data[jsonData : jsonData+int(jsonLen)],
		Bin:     data[binData:binEnd],
	}, nil
}
