// SPDX-License-Identifier: EPL-2.0

package webm

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/at-wat/ebml-go"
	mkv "github.com/at-wat/ebml-go/webm"
	"github.com/ik5/bobwave/audio"
	oggopus "github.com/ik5/bobwave/formats/opus"
	"github.com/ik5/bobwave/utils"
	"gopkg.in/hraban/opus.v2"
)

// SampleRate is the rate Opus packets are decoded at.
const SampleRate = oggopus.SampleRate

// CodecOpus is the Matroska codec id of an Opus track.
const CodecOpus = "A_OPUS"

// maxFrameSize is the longest Opus packet, 120 ms at 48 kHz.
const maxFrameSize = 5760

var opusHead = []byte("OpusHead")

// packetDecoder is an interface for opus.Decoder to allow testing
type packetDecoder interface {
	DecodeFloat32(data []byte, pcm []float32) (int, error)
}

type source struct {
	dec      packetDecoder
	channels int
	packets  [][]byte
	// skip counts values still to drop from the start of the stream.
	skip int
	pcm  []float32
	buf  []float32
}

func newSource(dec packetDecoder, channels int, packets [][]byte, preSkip int) *source {
	return &source{
		dec:      dec,
		channels: channels,
		packets:  packets,
		skip:     preSkip * channels,
		buf:      make([]float32, maxFrameSize*channels),
	}
}

func (s *source) SampleRate() int { return SampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) BufSize() int    { return cap(s.buf) }
func (s *source) Close() error    { return nil }

func (s *source) ReadSamples(dst []float32) (int, error) {
	want := len(dst) / s.channels * s.channels
	if want == 0 {
		if len(dst) == 0 {
			return 0, nil
		}
		return 0, audio.ErrInvalidDstSize
	}

	n := 0
	for n < want {
		if len(s.pcm) == 0 {
			if len(s.packets) == 0 {
				return n, io.EOF
			}
			if err := s.next(); err != nil {
				return n, err
			}
			continue
		}

		c := copy(dst[n:want], s.pcm)
		for i := n; i < n+c; i++ {
			dst[i] = utils.ClampUnit(dst[i])
		}
		s.pcm = s.pcm[c:]
		n += c
	}

	return n, nil
}

// next decodes the next packet into pcm, dropping what is left of the
// pre-skip. Empty packets mark lost data and are skipped.
func (s *source) next() error {
	pkt := s.packets[0]
	s.packets = s.packets[1:]
	if len(pkt) == 0 {
		return nil
	}

	// DecodeFloat32 returns samples per channel.
	frames, err := s.dec.DecodeFloat32(pkt, s.buf)
	if err != nil {
		return fmt.Errorf("decoding opus packet: %w", err)
	}

	s.pcm = s.buf[:min(frames*s.channels, len(s.buf))]

	drop := min(s.skip, len(s.pcm))
	s.pcm = s.pcm[drop:]
	s.skip -= drop

	return nil
}

// Decoder reads the first Opus track of a WebM file.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	var file struct {
		Header  mkv.EBMLHeader `ebml:"EBML"`
		Segment mkv.Segment    `ebml:"Segment"`
	}

	// Recorders stop mid-cluster, so a truncated tail still yields what was
	// read before it.
	err := ebml.Unmarshal(r, &file)
	truncated := errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
	if err != nil && (!truncated || len(file.Segment.Tracks.TrackEntry) == 0) {
		return nil, fmt.Errorf("%w: %w", ErrNotWebMStream, err)
	}
	if file.Header.DocType != "webm" && file.Header.DocType != "matroska" {
		return nil, fmt.Errorf("%w: doc type %q", ErrNotWebMStream, file.Header.DocType)
	}

	track, ok := opusTrack(file.Segment.Tracks.TrackEntry)
	if !ok {
		return nil, ErrNoOpusTrack
	}

	channels, err := trackChannels(track)
	if err != nil {
		return nil, err
	}

	dec, err := opus.NewDecoder(SampleRate, channels)
	if err != nil {
		return nil, fmt.Errorf("creating opus decoder: %w", err)
	}

	return newSource(dec, channels, packets(file.Segment.Cluster, track.TrackNumber), preSkip(track)), nil
}

func opusTrack(tracks []mkv.TrackEntry) (mkv.TrackEntry, bool) {
	for _, t := range tracks {
		if t.CodecID == CodecOpus {
			return t, true
		}
	}

	return mkv.TrackEntry{}, false
}

func trackChannels(t mkv.TrackEntry) (int, error) {
	channels := 0
	if t.Audio != nil {
		channels = int(t.Audio.Channels)
	}
	if channels == 0 {
		n, err := oggopus.Channels(t.CodecPrivate)
		if err != nil {
			return 0, fmt.Errorf("%w: %w", ErrInvalidChannels, err)
		}
		channels = n
	}

	if channels < 1 || channels > 2 {
		return 0, fmt.Errorf("%w: %d channels", ErrInvalidChannels, channels)
	}

	return channels, nil
}

// preSkip returns the frames to drop from the start of the track, from the
// OpusHead in CodecPrivate, or from CodecDelay when there is none.
func preSkip(t mkv.TrackEntry) int {
	// OpusHead: magic, version, channels, little-endian pre-skip.
	head := t.CodecPrivate
	if bytes.HasPrefix(head, opusHead) && len(head) >= len(opusHead)+4 {
		return int(binary.LittleEndian.Uint16(head[len(opusHead)+2:]))
	}

	// CodecDelay is in nanoseconds.
	return int(t.CodecDelay * SampleRate / 1_000_000_000)
}

// packets collects the frames of track, cluster by cluster, with simple
// blocks ahead of block groups.
func packets(clusters []mkv.Cluster, track uint64) [][]byte {
	var out [][]byte
	for _, c := range clusters {
		for _, b := range c.SimpleBlock {
			if b.TrackNumber == track {
				out = append(out, b.Data...)
			}
		}
		for _, g := range c.BlockGroup {
			if g.Block.TrackNumber == track {
				out = append(out, g.Block.Data...)
			}
		}
	}

	return out
}
