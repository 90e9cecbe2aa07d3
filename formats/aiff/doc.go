// SPDX-License-Identifier: EPL-2.0

// Package aiff provides AIFF audio file decoding.
//
// This package uses github.com/go-audio/aiff to parse AIFF containers and
// supports signed integer PCM at 8, 16, 24 and 32 bits with any channel
// count.
//
//	source, err := aiff.Decoder{}.Decode(bytes.NewReader(data))
//
// go-audio needs an io.ReadSeeker; other readers are buffered in memory
// first. Samples are float32 in [-1.0, 1.0].
//
// # Errors
//
//   - ErrNotAiffFile: the input is not a FORM/AIFF file
//   - ErrUnsupportedBitDepth: a sample size the decoder cannot scale
//   - ErrUnsupportedAiffLayout: missing sample rate or channel count
package aiff
