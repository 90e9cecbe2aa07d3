// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides MP3 audio file decoding.
//
// This package uses github.com/hajimehoshi/go-mp3 to decode MPEG-1 and
// MPEG-2 Layer III streams.
//
//	source, err := mp3.Decoder{}.Decode(file)
//
// The decoder always reports 2 channels: go-mp3 upmixes mono streams to
// stereo. Samples are float32 in [-1.0, 1.0] at the stream's own sample
// rate. Use audio.Normalize to convert to a project layout.
//
// MP3 encoding is not supported.
package mp3
