// SPDX-License-Identifier: EPL-2.0

package opus

import "errors"

var (
	// ErrNotOpusStream indicates the input has no OpusHead identification header.
	ErrNotOpusStream = errors.New("not an Ogg Opus stream")

	// ErrInvalidChannels indicates an OpusHead with zero channels.
	ErrInvalidChannels = errors.New("opus stream has no channels")
)
