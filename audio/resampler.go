// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/bobwave/utils"
)

// maxEmptyReads bounds how many (0, nil) reads a source may return in a row.
const maxEmptyReads = 64

// Resampler streams from src to target sample rate using cubic interpolation.
// Works on interleaved samples; preserves channel count.
// The first output frame is the first input frame, and resampling to the
// source rate reproduces the input exactly.
type Resampler struct {
	src      Source
	srcRate  float64
	dstRate  float64
	ratio    float64 // srcRate / dstRate - how many source frames per output frame
	channels int

	// Sliding window of four source frames for cubic interpolation.
	// window[1] is the frame at the integer read position; frames past the
	// end of src are edge duplicates and flagged as not real.
	window [4][]float32
	real   [4]bool

	// Fractional read position between window[1] and window[2].
	pos    float64
	primed bool
	done   bool

	srcBuf []float32
	srcOff int
	srcLen int
	srcEOF bool

	// One-pole low-pass applied to input frames when downsampling.
	useFilter    bool
	filterAlpha  float32
	filterState  []float32
	filterPrimed bool
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	ratio := float64(src.SampleRate()) / float64(dstRate)

	useFilter := ratio > 1.0
	var filterAlpha float32
	if useFilter {
		filterAlpha = float32(1 / ratio)
	}

	r := &Resampler{
		src:         src,
		srcRate:     float64(src.SampleRate()),
		dstRate:     float64(dstRate),
		ratio:       ratio,
		channels:    channels,
		srcBuf:      make([]float32, channels*1024),
		useFilter:   useFilter,
		filterAlpha: filterAlpha,
		filterState: make([]float32, channels),
	}

	for i := range r.window {
		r.window[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return int(r.dstRate) }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	err := r.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// nextFrame copies the next source frame into dst. It reports false once
// the source is exhausted; a trailing partial frame is dropped.
func (r *Resampler) nextFrame(dst []float32) (bool, error) {
	empty := 0
	for r.srcLen-r.srcOff < r.channels {
		if r.srcEOF {
			return false, nil
		}

		left := copy(r.srcBuf, r.srcBuf[r.srcOff:r.srcLen])
		room := (len(r.srcBuf) - left) / r.channels * r.channels
		n, err := r.src.ReadSamples(r.srcBuf[left : left+room])
		r.srcOff, r.srcLen = 0, left+n

		if err == io.EOF {
			r.srcEOF = true
		} else if err != nil {
			return false, fmt.Errorf("%w", err)
		}

		if n == 0 && !r.srcEOF {
			empty++
			if empty > maxEmptyReads {
				return false, ErrNoProgress
			}
		}
	}

	frame := r.srcBuf[r.srcOff : r.srcOff+r.channels]
	r.srcOff += r.channels

	if !r.useFilter {
		copy(dst, frame)
		return true, nil
	}

	if !r.filterPrimed {
		// Start from the first frame to avoid a warm-up transient.
		copy(r.filterState, frame)
		r.filterPrimed = true
	}
	for c := range r.channels {
		v := r.filterAlpha*frame[c] + (1-r.filterAlpha)*r.filterState[c]
		r.filterState[c] = v
		dst[c] = v
	}

	return true, nil
}

func (r *Resampler) prime() error {
	ok, err := r.nextFrame(r.window[1])
	if err != nil {
		return err
	}
	if !ok {
		return io.EOF
	}

	copy(r.window[0], r.window[1])
	r.real[0], r.real[1] = false, true

	for i := 2; i < len(r.window); i++ {
		ok, err := r.nextFrame(r.window[i])
		if err != nil {
			return err
		}
		if !ok {
			copy(r.window[i], r.window[i-1])
		}
		r.real[i] = ok
	}

	return nil
}

// shift advances the window by one source frame.
func (r *Resampler) shift() error {
	first := r.window[0]
	copy(r.window[:3], r.window[1:])
	r.window[3] = first
	copy(r.real[:3], r.real[1:])

	ok, err := r.nextFrame(r.window[3])
	if err != nil {
		return err
	}
	if !ok {
		copy(r.window[3], r.window[2])
	}
	r.real[3] = ok

	return nil
}

// ReadSamples produces dst samples at r.dstRate.
// dst length should be a multiple of r.channels.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if r.done {
		return 0, io.EOF
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			r.done = true
			if err == io.EOF {
				return 0, io.EOF
			}
			return 0, err
		}
		r.primed = true
	}

	written := 0
	framesNeeded := len(dst) / r.channels

	for written < framesNeeded {
		// Past the last real frame, or between the last frame and nothing.
		if !r.real[1] || (!r.real[2] && r.pos > 0) {
			r.done = true
			break
		}

		alpha := float32(r.pos)
		out := dst[written*r.channels : (written+1)*r.channels]
		for c := range r.channels {
			out[c] = utils.CubicInterpolate(r.window[0][c], r.window[1][c], r.window[2][c], r.window[3][c], alpha)
		}

		written++
		r.pos += r.ratio

		for r.pos >= 1.0 && r.real[1] {
			r.pos -= 1.0
			if err := r.shift(); err != nil {
				return written * r.channels, err
			}
		}
	}

	if r.done {
		if written == 0 {
			return 0, io.EOF
		}
		return written * r.channels, io.EOF
	}

	return written * r.channels, nil
}
