// Copyright 2024 The Moonburn Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package skel

import (
	"github.com/PlayerLegend/moonburn-engine/loader/gltf"
)

// channel is one evaluable animation channel: the TRS property it
// drives and the sampler producing its values.
type channel struct {
	path    gltf.ChannelPath
	sampler *sampler
}

// axis groups every channel quoting one input time accessor, so the
// keyframe search runs once per axis per evaluation.
type axis struct {
	input []float32
	bones map[string][]channel
}

// Animation is a glTF animation prepared for pose evaluation:
// decoded samplers grouped under their shared time axes and keyed by
// target bone name.
type Animation struct {
	Name string
	axes []*axis
}

// NewAnimation prepares the specified glTF animation. Channels with
// no target node are dropped; sampler outputs are validated against
// the paths that drive them.
func NewAnimation(ga *gltf.Animation) (*Animation, error) {

	a := &Animation{Name: ga.Name}

	samplerFor := make(map[*gltf.AnimationSampler]*sampler, len(ga.Samplers))
	axisFor := make(map[*gltf.Accessor]*axis)

	for _, gs := range ga.Samplers {
		s, err := newSampler(gs)
		if err != nil {
			return nil, err
		}
		samplerFor[gs] = s

		if _, ok := axisFor[gs.Input]; ok {
			continue
		}
		input, err := gs.Input.Floats()
		if err != nil {
			return nil, err
		}
		if len(input) == 0 {
			return nil, errf("animation %q: sampler has no keyframes", ga.Name)
		}
		for i := 1; i < len(input); i++ {
			if input[i] <= input[i-1] {
				return nil, errf("animation %q: keyframe times are not increasing", ga.Name)
			}
		}
		ax := &axis{input: input, bones: make(map[string][]channel)}
		axisFor[gs.Input] = ax
		a.axes = append(a.axes, ax)
	}

	for _, gc := range ga.Channels {
		if gc.Target.Node == nil {
			continue
		}
		s := samplerFor[gc.Sampler]

		switch gc.Target.Path {
		case gltf.PathTranslation, gltf.PathScale:
			if s.width != 3 {
				return nil, errf("animation %q: %s channel needs VEC3 output, sampler has width %d",
					ga.Name, gc.Target.Path, s.width)
			}
		case gltf.PathRotation:
			if s.width != 4 {
				return nil, errf("animation %q: rotation channel needs VEC4 output, sampler has width %d",
					ga.Name, s.width)
			}
		default:
			return nil, errf("animation %q: unsupported channel path %q", ga.Name, gc.Target.Path)
		}

		ax := axisFor[gc.Sampler.Input]
		name := gc.Target.Node.Name
		ax.bones[name] = append(ax.bones[name], channel{path: gc.Target.Path, sampler: s})
	}

	log.Debug("animation %q: %d samplers over %d time axes", ga.Name, len(ga.Samplers), len(a.axes))
	return a, nil
}
