// SPDX-License-Identifier: EPL-2.0

// Package opus decodes Ogg Opus files through libopusfile, using
// gopkg.in/hraban/opus.v2.
//
// Opus always decodes at 48 kHz. The channel count is read from the
// stream's OpusHead packet, since libopusfile does not report it.
//
//	source, err := opus.Decoder{}.Decode(file)
//
// Building this package needs libopus and libopusfile with their
// pkg-config files.
package opus
