// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"time"
)

// Layout is the sample rate and channel count a Buffer is stored in.
type Layout struct {
	SampleRate int
	Channels   int
}

// CD is 44.1 kHz stereo.
var CD = Layout{SampleRate: 44100, Channels: 2}

func (l Layout) Validate() error {
	if l.SampleRate <= 0 || l.Channels <= 0 {
		return fmt.Errorf("%w: %d Hz, %d channels", ErrInvalidLayout, l.SampleRate, l.Channels)
	}

	return nil
}

func (l Layout) String() string {
	return fmt.Sprintf("%d Hz/%dch", l.SampleRate, l.Channels)
}

// Buffer holds fully decoded interleaved PCM in [-1, 1].
type Buffer struct {
	SampleRate int
	Channels   int
	Data       []float32
}

// NewBuffer allocates a silent buffer of the given length in frames.
func NewBuffer(layout Layout, frames int) *Buffer {
	return &Buffer{
		SampleRate: layout.SampleRate,
		Channels:   layout.Channels,
		Data:       make([]float32, frames*layout.Channels),
	}
}

func (b *Buffer) Layout() Layout {
	return Layout{SampleRate: b.SampleRate, Channels: b.Channels}
}

// Frames returns the number of sample frames (samples per channel).
func (b *Buffer) Frames() int {
	if b.Channels <= 0 {
		return 0
	}

	return len(b.Data) / b.Channels
}

func (b *Buffer) Duration() time.Duration {
	if b.SampleRate <= 0 {
		return 0
	}

	return time.Duration(b.Frames()) * time.Second / time.Duration(b.SampleRate)
}

// Clone returns a deep copy.
func (b *Buffer) Clone() *Buffer {
	data := make([]float32, len(b.Data))
	copy(data, b.Data)

	return &Buffer{SampleRate: b.SampleRate, Channels: b.Channels, Data: data}
}

// Peak returns the largest absolute sample value.
func (b *Buffer) Peak() float32 {
	var peak float32
	for _, v := range b.Data {
		if v < 0 {
			v = -v
		}
		if v > peak {
			peak = v
		}
	}

	return peak
}

// BufferSource streams a Buffer as a Source. The buffer is only read.
type BufferSource struct {
	buf *Buffer
	pos int
}

func NewBufferSource(b *Buffer) *BufferSource {
	return &BufferSource{buf: b}
}

func (s *BufferSource) SampleRate() int { return s.buf.SampleRate }
func (s *BufferSource) Channels() int   { return s.buf.Channels }
func (s *BufferSource) BufSize() int    { return 4096 }
func (s *BufferSource) Close() error    { return nil }

func (s *BufferSource) ReadSamples(dst []float32) (int, error) {
	if s.pos >= len(s.buf.Data) {
		return 0, io.EOF
	}

	n := copy(dst, s.buf.Data[s.pos:])
	s.pos += n

	if s.pos >= len(s.buf.Data) {
		return n, io.EOF
	}

	return n, nil
}
