// SPDX-License-Identifier: EPL-2.0

package webm

import "errors"

var (
	// ErrNotWebMStream indicates the input is not a readable WebM file.
	ErrNotWebMStream = errors.New("not a WebM stream")

	// ErrNoOpusTrack indicates a WebM file without an Opus audio track.
	ErrNoOpusTrack = errors.New("webm file has no opus track")

	// ErrInvalidChannels indicates an Opus track that is neither mono nor
	// stereo.
	ErrInvalidChannels = errors.New("opus track must be mono or stereo")
)
