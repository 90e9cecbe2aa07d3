// SPDX-License-Identifier: EPL-2.0

package mix

import "errors"

var (
	// ErrNoLayersSelected indicates every layer was filtered out, or there
	// were none to begin with.
	ErrNoLayersSelected = errors.New("no layers selected")

	// ErrLayoutMismatch indicates selected layers with different sample
	// rates or channel counts.
	ErrLayoutMismatch = errors.New("layers have different layouts")

	// ErrTimelineTooLong indicates offsets and lengths adding up to more
	// samples than one buffer can hold.
	ErrTimelineTooLong = errors.New("mix timeline too long")
)
