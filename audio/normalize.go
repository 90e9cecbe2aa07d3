// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
)

// ReadAll drains src into a Buffer in the source's own layout. A trailing
// partial frame is dropped.
func ReadAll(src Source, bufferSize int) (*Buffer, error) {
	channels := src.Channels()
	if channels <= 0 || src.SampleRate() <= 0 {
		return nil, fmt.Errorf("%w: %d Hz, %d channels", ErrInvalidLayout, src.SampleRate(), channels)
	}

	bufferSize = max(bufferSize/channels, 1) * channels
	buf := make([]float32, bufferSize)
	data := make([]float32, 0, bufferSize*4)

	empty := 0
	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			data = append(data, buf[:n]...)
			empty = 0
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}

		if n == 0 {
			empty++
			if empty > maxEmptyReads {
				return nil, ErrNoProgress
			}
		}
	}

	data = data[:len(data)/channels*channels]

	return &Buffer{
		SampleRate: src.SampleRate(),
		Channels:   channels,
		Data:       data,
	}, nil
}

// Normalize converts src to layout and collects the result.
//
// This function creates a processing pipeline:
//  1. Resamples to layout.SampleRate with cubic interpolation, skipped when
//     the rates already match
//  2. Mixes channels to layout.Channels
//  3. Reads all samples into a Buffer
func Normalize(src Source, layout Layout, bufferSize int) (*Buffer, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	if err := (Layout{SampleRate: src.SampleRate(), Channels: src.Channels()}).Validate(); err != nil {
		return nil, err
	}

	stage := src
	if src.SampleRate() != layout.SampleRate {
		stage = NewResampler(stage, layout.SampleRate)
	}
	if stage.Channels() != layout.Channels {
		stage = NewChannelMixer(stage, layout.Channels)
	}

	return ReadAll(stage, bufferSize)
}
