// SPDX-License-Identifier: EPL-2.0

package bobwave

import "errors"

var (
	// ErrInvalidMaxLayers indicates a negative layer cap in Options.
	ErrInvalidMaxLayers = errors.New("max layers must not be negative")

	// ErrInvalidMaxOffset indicates an Options.MaxOffset that is negative,
	// shorter than one frame or too long for a mix buffer.
	ErrInvalidMaxOffset = errors.New("invalid max offset")
)
