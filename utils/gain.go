// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// VolumeToDecibels maps a linear slider volume to a gain in dB:
// 1.0 is unity, every 0.1 step is 2 dB.
//
// This is an affine mapping, not a loudness curve. Exported mixes depend on
// it, so it must stay exactly 20 * (volume - 1).
func VolumeToDecibels(volume float64) float64 {
	return 20 * (volume - 1)
}

// DecibelsToAmplitude converts a dB gain to an amplitude factor.
func DecibelsToAmplitude(db float64) float64 {
	return math.Pow(10, db/20)
}

// IsFinite reports whether v is neither NaN nor an infinity.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
