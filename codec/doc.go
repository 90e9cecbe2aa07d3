// SPDX-License-Identifier: EPL-2.0

// Package codec converts between encoded audio files and canonical PCM.
//
// An Adapter is built for one target layout (sample rate and channel
// count). Decode sniffs the payload, decodes it with the matching
// formats/* decoder and converts the result to that layout, resampling and
// mixing channels as needed:
//
//	a, _ := codec.New(audio.CD)
//	buf, err := a.Decode(data, codec.ParseFormat("audio/mpeg"))
//	if errors.Is(err, codec.ErrUnsupportedOrCorrupt) {
//	    // reject the upload
//	}
//
// The declared format only matters when the container cannot be sniffed.
//
// Encode writes 16-bit PCM WAV. Decoding a 16-bit WAV already in the
// canonical layout and encoding the result reproduces its samples exactly.
package codec
