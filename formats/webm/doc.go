// SPDX-License-Identifier: EPL-2.0

// Package webm decodes Opus audio carried in WebM (Matroska) files, the
// container browser MediaRecorder produces. The container is demuxed with
// github.com/at-wat/ebml-go and each packet is decoded with libopus through
// gopkg.in/hraban/opus.v2.
//
//	source, err := webm.Decoder{}.Decode(file)
//
// Only the first Opus track is read, and it must be mono or stereo. Output
// is always 48 kHz.
package webm
