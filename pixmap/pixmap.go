// Copyright 2024 The Moonburn Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pixmap decodes texture images into tightly packed RGBA8 or
// RGB8 pixel arrays ready for GPU upload. No color-space conversion
// is performed; the decoded bytes are presented as-is.
package pixmap

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"golang.org/x/image/draw"

	"github.com/PlayerLegend/moonburn-engine/fsys"
)

// DecodeError wraps a failure from the underlying image decoder,
// preserving its message.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {

	return fmt.Sprintf("image decode: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {

	return e.Err
}

// RGBA is an 8 bit per channel RGBA image with a tightly packed
// pixel array of Width*Height*4 bytes.
type RGBA struct {
	Width  int
	Height int
	Pix    []uint8
}

// RGB is an 8 bit per channel RGB image with a tightly packed
// pixel array of Width*Height*3 bytes.
type RGB struct {
	Width  int
	Height int
	Pix    []uint8
}

// DecodePNG decodes the PNG image in data into an RGBA pixel array.
func DecodePNG(data []byte) (*RGBA, error) {

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Err: err}
	}

	bounds := img.Bounds()
	if n, ok := img.(*image.NRGBA); ok && bounds.Min == (image.Point{}) && n.Stride == 4*bounds.Dx() {
		return &RGBA{Width: bounds.Dx(), Height: bounds.Dy(), Pix: n.Pix[:n.Stride*bounds.Dy()]}, nil
	}
	rgba := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	return &RGBA{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Pix:    rgba.Pix,
	}, nil
}

// DecodePNGRGB decodes the PNG image in data into an RGB pixel
// array, dropping the alpha channel.
func DecodePNGRGB(data []byte) (*RGB, error) {

	rgba, err := DecodePNG(data)
	if err != nil {
		return nil, err
	}

	out := &RGB{
		Width:  rgba.Width,
		Height: rgba.Height,
		Pix:    make([]uint8, rgba.Width*rgba.Height*3),
	}
	for p := 0; p < rgba.Width*rgba.Height; p++ {
		out.Pix[p*3+0] = rgba.Pix[p*4+0]
		out.Pix[p*3+1] = rgba.Pix[p*4+1]
		out.Pix[p*3+2] = rgba.Pix[p*4+2]
	}
	return out, nil
}

// RGBACache caches decoded RGBA images by whitelisted path.
type RGBACache = fsys.Cache[*RGBA]

// NewRGBACache creates an RGBA image cache over the specified whitelist.
func NewRGBACache(wl *fsys.Whitelist) *RGBACache {

	return fsys.New(wl, func(path string) (*RGBA, error) {
		data, err := fsys.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return DecodePNG(data)
	})
}

// RGBCache caches decoded RGB images by whitelisted path.
type RGBCache = fsys.Cache[*RGB]

// NewRGBCache creates an RGB image cache over the specified whitelist.
func NewRGBCache(wl *fsys.Whitelist) *RGBCache {

	return fsys.New(wl, func(path string) (*RGB, error) {
		data, err := fsys.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return DecodePNGRGB(data)
	})
}
