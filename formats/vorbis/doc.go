// SPDX-License-Identifier: EPL-2.0

// Package vorbis provides Ogg Vorbis audio file decoding.
//
// This package uses github.com/jfreymuth/oggvorbis to decode Ogg Vorbis
// streams of any channel count and sample rate.
//
//	source, err := vorbis.Decoder{}.Decode(file)
//
// Samples are float32 in [-1.0, 1.0]. Values the Vorbis decoder produces
// slightly outside that range are clamped.
//
// Ogg files carrying Opus rather than Vorbis are handled by the opus
// package; the codec package tells the two apart.
package vorbis
