// Copyright 2024 The Moonburn Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package skel

import (
	"github.com/PlayerLegend/moonburn-engine/loader/gltf"
	"github.com/PlayerLegend/moonburn-engine/math32"
)

// Params are the interpolation parameters for one time axis at one
// evaluation time, computed once and shared by every sampler that
// quotes the axis.
type Params struct {
	Index int
	Clamp bool
	T     float32
	TInv  float32

	// Hermite basis (blending) function values at T.
	H00 float32
	H10 float32
	H01 float32
	H11 float32
}

// findFrame returns the largest index i with times[i] <= t, clamped
// to the valid range, via binary search.
func findFrame(times []float32, t float32) int {

	lo := 0
	hi := len(times) - 1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if times[mid] <= t {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

// NewParams derives the interpolation parameters for the specified
// time axis and evaluation time. Times at or before the first key
// and at or past the last key clamp to that key's value.
func NewParams(times []float32, time float32) Params {

	if time <= times[0] {
		return Params{Index: 0, Clamp: true}
	}

	i := findFrame(times, time)
	if i == len(times)-1 {
		return Params{Index: i, Clamp: true}
	}

	t := (time - times[i]) / (times[i+1] - times[i])
	t2 := t * t
	t3 := t2 * t

	return Params{
		Index: i,
		T:     t,
		TInv:  1 - t,
		H00:   2*t3 - 3*t2 + 1,
		H10:   t3 - 2*t2 + t,
		H01:   -2*t3 + 3*t2,
		H11:   t3 - t2,
	}
}

// sampler is one animation output stream tagged by interpolation
// algorithm and element width. Exactly one of the value slices is
// populated, matching the tag pair.
type sampler struct {
	interp  gltf.Interpolation
	width   int
	vec3    []math32.Vector3
	vec4    []math32.Vector4
	spline3 []math32.CubicSplineVec3
	spline4 []math32.CubicSplineVec4
}

// newSampler converts a glTF animation sampler's output accessor
// into an evaluable stream, validating its shape against the number
// of keys on the input axis.
func newSampler(gs *gltf.AnimationSampler) (*sampler, error) {

	keys := gs.Input.Count
	s := &sampler{interp: gs.Interpolation}

	switch gs.Output.Type {
	case gltf.VEC3:
		s.width = 3
		values, err := gs.Output.Vec3s()
		if err != nil {
			return nil, err
		}
		if s.interp == gltf.InterpolationCubicSpline {
			if len(values) != 3*keys {
				return nil, errf("cubic spline output has %d values for %d keys", len(values), keys)
			}
			s.spline3 = make([]math32.CubicSplineVec3, keys)
			for i := range s.spline3 {
				s.spline3[i] = math32.CubicSplineVec3{
					InTangent:  values[i*3],
					Value:      values[i*3+1],
					OutTangent: values[i*3+2],
				}
			}
		} else {
			if len(values) != keys {
				return nil, errf("sampler output has %d values for %d keys", len(values), keys)
			}
			s.vec3 = values
		}

	case gltf.VEC4:
		s.width = 4
		values, err := gs.Output.Vec4s()
		if err != nil {
			return nil, err
		}
		if s.interp == gltf.InterpolationCubicSpline {
			if len(values) != 3*keys {
				return nil, errf("cubic spline output has %d values for %d keys", len(values), keys)
			}
			s.spline4 = make([]math32.CubicSplineVec4, keys)
			for i := range s.spline4 {
				s.spline4[i] = math32.CubicSplineVec4{
					InTangent:  values[i*3],
					Value:      values[i*3+1],
					OutTangent: values[i*3+2],
				}
			}
		} else {
			if len(values) != keys {
				return nil, errf("sampler output has %d values for %d keys", len(values), keys)
			}
			s.vec4 = values
		}

	default:
		return nil, errf("unsupported accessor type %s for animation sampler output", gs.Output.Type)
	}

	return s, nil
}

// evalVec3 evaluates a width-3 sampler at the specified parameters.
func (s *sampler) evalVec3(p Params) math32.Vector3 {

	switch s.interp {
	case gltf.InterpolationStep:
		return s.vec3[p.Index]

	case gltf.InterpolationCubicSpline:
		if p.Clamp {
			return s.spline3[p.Index].Value
		}
		return math32.HermiteVec3(&s.spline3[p.Index], &s.spline3[p.Index+1], p.H00, p.H10, p.H01, p.H11)
	}

	// LINEAR
	if p.Clamp {
		return s.vec3[p.Index]
	}
	var out math32.Vector3
	a := s.vec3[p.Index]
	b := s.vec3[p.Index+1]
	out.AddVectors(a.MultiplyScalar(p.TInv), b.MultiplyScalar(p.T))
	return out
}

// evalVec4 evaluates a width-4 sampler at the specified parameters.
// LINEAR width-4 streams hold unit quaternions and interpolate
// spherically.
func (s *sampler) evalVec4(p Params) math32.Vector4 {

	switch s.interp {
	case gltf.InterpolationStep:
		return s.vec4[p.Index]

	case gltf.InterpolationCubicSpline:
		if p.Clamp {
			return s.spline4[p.Index].Value
		}
		return math32.HermiteVec4(&s.spline4[p.Index], &s.spline4[p.Index+1], p.H00, p.H10, p.H01, p.H11)
	}

	// LINEAR
	if p.Clamp {
		return s.vec4[p.Index]
	}
	out := s.vec4[p.Index]
	out.Slerp(&s.vec4[p.Index+1], p.T)
	return out
}
