// SPDX-License-Identifier: EPL-2.0

// Package mix flattens project layers into a single buffer.
//
// Each selected layer is scaled by GainFactor(volume), where the dB gain
// is 20*(volume-1), and added into an output as long as the furthest
// offset+length among them. Samples saturate at [-1, 1] instead of
// wrapping. Mixing is deterministic: the same layers and settings always
// produce the same samples.
package mix
