// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")

	// ErrInvalidLayout is returned for a non-positive sample rate or channel count.
	ErrInvalidLayout = errors.New("invalid audio layout")

	// ErrNoProgress is returned when a source keeps returning zero samples
	// without an error.
	ErrNoProgress = errors.New("audio source made no progress")
)
