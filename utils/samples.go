// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// int16Scale maps the int16 range onto [-1, 1). Decoding divides by it and
// encoding multiplies by it, so a 16-bit round trip is exact.
const int16Scale = 32768.0

// ClampUnit limits x to [-1, 1].
func ClampUnit(x float32) float32 {
	if x > 1 {
		return 1
	} else if x < -1 {
		return -1
	}

	return x
}

// Int16ToFloat32 converts a 16-bit PCM sample to [-1, 1).
func Int16ToFloat32(v int16) float32 {
	return float32(v) / int16Scale
}

// Float32ToInt16 converts a float sample to 16-bit PCM, clamping out of range
// input. It is the exact inverse of Int16ToFloat32.
func Float32ToInt16(x float32) int16 {
	v := math.Round(float64(x) * int16Scale)
	if v > math.MaxInt16 {
		return math.MaxInt16
	} else if v < math.MinInt16 {
		return math.MinInt16
	}

	return int16(v)
}

// IntToFloat32 normalizes a signed integer sample of the given bit depth to
// [-1, 1). Unknown depths are treated as 16-bit.
func IntToFloat32(v int, bitDepth int) float32 {
	switch bitDepth {
	case 8:
		return float32(v) / 128.0
	case 24:
		return float32(v) / 8388608.0
	case 32:
		return float32(float64(v) / 2147483648.0)
	default:
		return float32(v) / int16Scale
	}
}
