// SPDX-License-Identifier: EPL-2.0

// Package webmtest builds WebM files holding Opus audio, laid out the way
// browser recorders write them. Encoding needs libopus, so it is kept apart
// from package audiotest.
package webmtest

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/at-wat/ebml-go"
	mkv "github.com/at-wat/ebml-go/webm"
	"gopkg.in/hraban/opus.v2"
)

const (
	// SampleRate is the Opus coding rate.
	SampleRate = 48000

	// FrameSize is the length of every packet written, 20 ms.
	FrameSize = 960

	packetsPerCluster = 25
)

// Header is the EBML header of a WebM file.
var Header = mkv.EBMLHeader{
	EBMLVersion:        1,
	EBMLReadVersion:    1,
	EBMLMaxIDLength:    4,
	EBMLMaxSizeLength:  8,
	DocType:            "webm",
	DocTypeVersion:     4,
	DocTypeReadVersion: 2,
}

// OpusHead returns an Opus identification header for CodecPrivate.
func OpusHead(channels int, preSkip uint16) []byte {
	b := append([]byte("OpusHead"), 1, byte(channels))
	b = binary.LittleEndian.AppendUint16(b, preSkip)
	b = binary.LittleEndian.AppendUint32(b, SampleRate)
	b = binary.LittleEndian.AppendUint16(b, 0)

	return append(b, 0)
}

// AudioTrack returns track 1 with the given codec.
func AudioTrack(codec string, channels int, private []byte) mkv.TrackEntry {
	return mkv.TrackEntry{
		Name:            "Audio",
		TrackNumber:     1,
		TrackUID:        1,
		CodecID:         codec,
		CodecPrivate:    private,
		TrackType:       2,
		DefaultDuration: 20_000_000,
		Audio: &mkv.Audio{
			SamplingFrequency: SampleRate,
			Channels:          uint64(channels),
		},
	}
}

// File marshals a WebM file with the given tracks, putting every packet in
// a simple block of track 1, 20 ms apart.
func File(tracks []mkv.TrackEntry, packets [][]byte) ([]byte, error) {
	var clusters []mkv.Cluster
	for i, p := range packets {
		if i%packetsPerCluster == 0 {
			clusters = append(clusters, mkv.Cluster{Timecode: uint64(i * 20)})
		}

		c := &clusters[len(clusters)-1]
		c.SimpleBlock = append(c.SimpleBlock, ebml.Block{
			TrackNumber: 1,
			Timecode:    int16(i % packetsPerCluster * 20),
			Keyframe:    true,
			Data:        [][]byte{p},
		})
	}

	file := struct {
		Header  mkv.EBMLHeader `ebml:"EBML"`
		Segment mkv.Segment    `ebml:"Segment"`
	}{
		Header: Header,
		Segment: mkv.Segment{
			Info: mkv.Info{
				TimecodeScale: 1_000_000,
				MuxingApp:     "webmtest",
				WritingApp:    "webmtest",
			},
			Tracks:  mkv.Tracks{TrackEntry: tracks},
			Cluster: clusters,
		},
	}

	var buf bytes.Buffer
	if err := ebml.Marshal(&file, &buf); err != nil {
		return nil, fmt.Errorf("marshaling webm: %w", err)
	}

	return buf.Bytes(), nil
}

// Sine encodes packets 20 ms frames of a 440 Hz sine at half scale on every
// channel and wraps them in a WebM file with one Opus track.
func Sine(channels, packets int, preSkip uint16) ([]byte, error) {
	enc, err := opus.NewEncoder(SampleRate, channels, opus.AppAudio)
	if err != nil {
		return nil, fmt.Errorf("creating opus encoder: %w", err)
	}

	pcm := make([]float32, FrameSize*channels)
	data := make([]byte, 4000)
	out := make([][]byte, 0, packets)

	for p := range packets {
		for i := range FrameSize {
			t := float64(p*FrameSize+i) / SampleRate
			v := float32(0.5 * math.Sin(2*math.Pi*440*t))
			for ch := range channels {
				pcm[i*channels+ch] = v
			}
		}

		n, err := enc.EncodeFloat32(pcm, data)
		if err != nil {
			return nil, fmt.Errorf("encoding packet %d: %w", p, err)
		}
		out = append(out, bytes.Clone(data[:n]))
	}

	return File([]mkv.TrackEntry{AudioTrack("A_OPUS", channels, OpusHead(channels, preSkip))}, out)
}
