// SPDX-License-Identifier: EPL-2.0

package codec

import (
	"bytes"
	"fmt"

	"github.com/ik5/bobwave/audio"
	"github.com/ik5/bobwave/formats/aiff"
	"github.com/ik5/bobwave/formats/mp3"
	"github.com/ik5/bobwave/formats/opus"
	"github.com/ik5/bobwave/formats/vorbis"
	"github.com/ik5/bobwave/formats/wav"
	"github.com/ik5/bobwave/formats/webm"
	"github.com/ik5/bobwave/utils"
)

const defaultBufferSize = 8192

// Adapter turns encoded audio into canonical PCM in one fixed layout and
// back. It holds no per-call state and is safe for concurrent use.
type Adapter struct {
	layout     audio.Layout
	decoders   *audio.Registry
	bufferSize int
}

// New returns an Adapter producing PCM in layout, with decoders registered
// for every Format.
func New(layout audio.Layout) (*Adapter, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}

	reg := audio.NewRegistry()
	reg.Register(string(FormatWAV), wav.Decoder{})
	reg.Register(string(FormatMP3), mp3.Decoder{})
	reg.Register(string(FormatOgg), vorbis.Decoder{})
	reg.Register(string(FormatOpus), opus.Decoder{})
	reg.Register(string(FormatAIFF), aiff.Decoder{})
	reg.Register(string(FormatWebM), webm.Decoder{})

	return &Adapter{
		layout:     layout,
		decoders:   reg,
		bufferSize: defaultBufferSize,
	}, nil
}

// Layout is the canonical layout every decoded buffer is converted to.
func (a *Adapter) Layout() audio.Layout {
	return a.layout
}

// Register adds or replaces the decoder for f.
func (a *Adapter) Register(f Format, d audio.Decoder) {
	a.decoders.Register(string(f), d)
}

// Formats lists the formats that can be decoded.
func (a *Adapter) Formats() []Format {
	names := a.decoders.Formats()
	out := make([]Format, len(names))
	for i, n := range names {
		out[i] = Format(n)
	}

	return out
}

// Decode validates and decodes data to canonical PCM. declared is only a
// hint: when the payload's container is recognized it is decoded as that
// container, otherwise the declared decoder is tried.
//
// Every failure is a *DecodeError, which matches ErrUnsupportedOrCorrupt.
func (a *Adapter) Decode(data []byte, declared Format) (*audio.Buffer, error) {
	if len(data) == 0 {
		return nil, &DecodeError{Declared: declared, Err: ErrEmptyInput}
	}

	format := Detect(data)
	if format == FormatUnknown {
		format = declared
	}
	if format == FormatUnknown {
		return nil, &DecodeError{Declared: declared, Err: ErrUnrecognized}
	}

	dec, ok := a.decoders.Get(string(format))
	if !ok {
		return nil, &DecodeError{Format: format, Declared: declared, Err: ErrNoDecoder}
	}

	buf, err := a.decode(dec, data)
	if err != nil {
		return nil, &DecodeError{Format: format, Declared: declared, Err: err}
	}

	return buf, nil
}

func (a *Adapter) decode(dec audio.Decoder, data []byte) (buf *audio.Buffer, err error) {
	src, err := dec.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := src.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing source: %w", cerr)
		}
	}()

	buf, err = audio.Normalize(src, a.layout, a.bufferSize)
	if err != nil {
		return nil, err
	}
	if buf.Frames() == 0 {
		return nil, ErrNoAudio
	}

	for _, v := range buf.Data {
		if !utils.IsFinite(float64(v)) {
			return nil, ErrNonFiniteSample
		}
	}

	return buf, nil
}

// Encode serializes buf to target. Only FormatWAV (16-bit PCM) is
// supported. A buffer in another layout is converted to the canonical
// layout first.
func (a *Adapter) Encode(buf *audio.Buffer, target Format) ([]byte, error) {
	if target != FormatWAV {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, target)
	}

	if buf.Layout() != a.layout {
		var err error
		buf, err = audio.Normalize(audio.NewBufferSource(buf), a.layout, a.bufferSize)
		if err != nil {
			return nil, err
		}
	}

	var out bytes.Buffer
	out.Grow(44 + len(buf.Data)*2)
	if err := wav.Encode(&out, buf); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}
