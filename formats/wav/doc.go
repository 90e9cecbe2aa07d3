// SPDX-License-Identifier: EPL-2.0

// Package wav provides WAV audio file decoding and encoding.
//
// Decoding goes through github.com/go-audio/wav, so any chunk layout is
// accepted (LIST/INFO chunks, odd-sized chunk padding, extensible format
// headers). Integer PCM at 8, 16, 24 and 32 bits is supported; float and
// compressed WAV files are rejected with ErrOnlyPCMSupported.
//
//	src, err := wav.Decoder{}.Decode(bytes.NewReader(data))
//
// The decoder returns an audio.Source producing float32 samples in
// [-1.0, 1.0].
//
// # Encoding
//
// Encode writes an audio.Buffer as 16-bit PCM with a canonical 44-byte
// header:
//
//	var out bytes.Buffer
//	err := wav.Encode(&out, buf)
//
// Decoding a 16-bit file and encoding the result reproduces the original
// samples exactly. WriteWAV16 writes raw int16 samples directly.
//
// # Error Handling
//
// Sentinel errors are returned (possibly wrapped) for rejected input:
//   - ErrNotWavFile: the input is not a RIFF/WAVE file
//   - ErrOnlyPCMSupported: float or compressed sample data
//   - ErrUnsupportedBitDepth: a bit depth other than 8, 16, 24 or 32
//   - ErrUnsupportedWavChunks: no data chunk could be found
package wav
