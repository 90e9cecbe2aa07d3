// SPDX-License-Identifier: EPL-2.0

package vorbis

import "errors"

var (
	// ErrNotVorbisStream indicates the input has no Vorbis identification header.
	ErrNotVorbisStream = errors.New("not an Ogg Vorbis stream")

	// ErrInvalidChannels indicates a header with zero channels.
	ErrInvalidChannels = errors.New("vorbis stream has no channels")
)
