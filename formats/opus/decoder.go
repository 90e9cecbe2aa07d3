// SPDX-License-Identifier: EPL-2.0

package opus

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ik5/bobwave/audio"
	"github.com/ik5/bobwave/utils"
	"gopkg.in/hraban/opus.v2"
)

// SampleRate is the rate libopusfile always decodes at.
const SampleRate = 48000

var opusHead = []byte("OpusHead")

// opusReader is an interface for opus.Stream to allow testing
type opusReader interface {
	ReadFloat32(pcm []float32) (int, error)
	Close() error
}

type source struct {
	dec      opusReader
	channels int
	buf      []float32
}

func (s *source) SampleRate() int { return SampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) BufSize() int    { return cap(s.buf) }
func (s *source) Close() error {
	if err := s.dec.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	want := len(dst) / s.channels * s.channels
	if want == 0 {
		if len(dst) == 0 {
			return 0, nil
		}
		return 0, audio.ErrInvalidDstSize
	}

	if cap(s.buf) < want {
		s.buf = make([]float32, want)
	}
	s.buf = s.buf[:want]

	// ReadFloat32 returns samples per channel.
	frames, err := s.dec.ReadFloat32(s.buf)
	if err != nil && err != io.EOF {
		return 0, fmt.Errorf("%w", err)
	}

	n := min(frames*s.channels, want)
	for i, v := range s.buf[:n] {
		dst[i] = utils.ClampUnit(v)
	}

	if err == io.EOF || frames == 0 {
		return n, io.EOF
	}

	return n, nil
}

// Channels returns the output channel count from the OpusHead packet in
// data.
func Channels(data []byte) (int, error) {
	i := bytes.Index(data, opusHead)
	if i < 0 || len(data) < i+len(opusHead)+2 {
		return 0, ErrNotOpusStream
	}

	// OpusHead: magic, version byte, channel count byte.
	channels := int(data[i+len(opusHead)+1])
	if channels == 0 {
		return 0, ErrInvalidChannels
	}

	return channels, nil
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading opus data: %w", err)
	}

	channels, err := Channels(data)
	if err != nil {
		return nil, err
	}

	stream, err := opus.NewStream(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotOpusStream, err)
	}

	return &source{
		dec:      stream,
		channels: channels,
		buf:      make([]float32, 5760*channels),
	}, nil
}
