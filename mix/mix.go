// SPDX-License-Identifier: EPL-2.0

package mix

import (
	"fmt"
	"math"

	"github.com/ik5/bobwave/audio"
	"github.com/ik5/bobwave/project"
	"github.com/ik5/bobwave/utils"
)

// GainFactor converts a slider volume to the amplitude factor applied to a
// layer: volume 1 is unity, each 0.1 is 2 dB.
func GainFactor(volume float64) float64 {
	return utils.DecibelsToAmplitude(utils.VolumeToDecibels(volume))
}

// maxSamples bounds the interleaved length of a mix.
const maxSamples = math.MaxInt32

type track struct {
	layer  project.Layer
	volume float64
}

// Mix overlays the layers referenced by settings, using each setting's
// visibility and volume in place of the layer's saved state.
//
// Settings naming a layer that is not in layers are ignored. When one layer
// has several settings the last one is used. Layers with no setting are not
// mixed. Overlay happens in the order of layers, whatever the order of
// settings.
//
// The layers' audio is only read.
func Mix(layers []project.Layer, settings []project.Setting) (*audio.Buffer, error) {
	overrides := make(map[project.LayerID]project.Setting, len(settings))
	for _, s := range settings {
		overrides[s.ID] = s
	}

	tracks := make([]track, 0, len(overrides))
	for _, l := range layers {
		s, ok := overrides[l.ID]
		if !ok || !s.Visible {
			continue
		}
		tracks = append(tracks, track{layer: l, volume: s.Volume})
	}

	return overlay(tracks)
}

// Saved overlays layers using their own visibility and volume.
func Saved(layers []project.Layer) (*audio.Buffer, error) {
	tracks := make([]track, 0, len(layers))
	for _, l := range layers {
		if l.Visible {
			tracks = append(tracks, track{layer: l, volume: l.Volume})
		}
	}

	return overlay(tracks)
}

func overlay(tracks []track) (*audio.Buffer, error) {
	if len(tracks) == 0 {
		return nil, ErrNoLayersSelected
	}

	layout := tracks[0].layer.Audio.Layout()
	maxFrames := maxSamples / max(layout.Channels, 1)
	frames := 0
	for _, t := range tracks {
		if got := t.layer.Audio.Layout(); got != layout {
			return nil, fmt.Errorf("%w: layer %s is %v, want %v", ErrLayoutMismatch, t.layer.ID, got, layout)
		}

		offset, n := t.layer.Offset, t.layer.Audio.Frames()
		if offset < 0 {
			return nil, fmt.Errorf("%w: layer %s: %d", project.ErrInvalidOffset, t.layer.ID, offset)
		}
		if n > maxFrames || offset > maxFrames-n {
			return nil, fmt.Errorf("%w: layer %s ends past frame %d", ErrTimelineTooLong, t.layer.ID, maxFrames)
		}
		frames = max(frames, offset+n)
	}

	out := audio.NewBuffer(layout, frames)
	for _, t := range tracks {
		gain := GainFactor(t.volume)
		src := t.layer.Audio.Data[:t.layer.Audio.Frames()*layout.Channels]
		dst := out.Data[t.layer.Offset*layout.Channels:]

		for i, v := range src {
			// Clamp the gain-adjusted layer first, then the running sum.
			scaled := utils.ClampUnit(float32(float64(v) * gain))
			dst[i] = utils.ClampUnit(dst[i] + scaled)
		}
	}

	return out, nil
}
