// SPDX-License-Identifier: EPL-2.0

package codec

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedOrCorrupt is matched by every DecodeError.
	ErrUnsupportedOrCorrupt = errors.New("unsupported or corrupt audio")

	// ErrUnsupportedFormat indicates an encode target with no encoder.
	ErrUnsupportedFormat = errors.New("unsupported output format")

	ErrEmptyInput      = errors.New("empty input")
	ErrUnrecognized    = errors.New("unrecognized container")
	ErrNoDecoder       = errors.New("no decoder registered")
	ErrNoAudio         = errors.New("decoded stream has no samples")
	ErrNonFiniteSample = errors.New("decoded stream has non-finite samples")
)

// DecodeError is returned by Adapter.Decode for any payload that could not be
// turned into canonical PCM.
type DecodeError struct {
	// Format is the container the adapter tried, FormatUnknown if none.
	Format Format
	// Declared is the caller's hint.
	Declared Format
	Err      error
}

func (e *DecodeError) Error() string {
	switch {
	case e.Format != FormatUnknown && e.Declared != FormatUnknown && e.Format != e.Declared:
		return fmt.Sprintf("decode %s (declared %s): %v", e.Format, e.Declared, e.Err)
	case e.Format != FormatUnknown:
		return fmt.Sprintf("decode %s: %v", e.Format, e.Err)
	case e.Declared != FormatUnknown:
		return fmt.Sprintf("decode (declared %s): %v", e.Declared, e.Err)
	default:
		return fmt.Sprintf("decode: %v", e.Err)
	}
}

func (e *DecodeError) Unwrap() []error {
	return []error{ErrUnsupportedOrCorrupt, e.Err}
}
