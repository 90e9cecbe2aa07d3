// SPDX-License-Identifier: EPL-2.0

// Package audio provides the sample-level building blocks of the engine.
//
// This package contains:
//   - Source interface for streaming decoded audio
//   - Registry for decoders keyed by container name
//   - Buffer, the fully decoded PCM form every layer is stored in
//   - Resampler for sample rate conversion
//   - ChannelMixer for channel count conversion
//   - Normalize, which turns any Source into a Buffer of a given Layout
//
// # Source Interface
//
// The Source interface is the foundation of audio processing:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Decoders and processors implement it so they can be chained:
//
//	res := audio.NewResampler(source, 44100)
//	stereo := audio.NewChannelMixer(res, 2)
//
// # Canonical Buffers
//
// Mixing works on whole buffers of one shared Layout. Normalize builds the
// pipeline and drains it:
//
//	buf, err := audio.Normalize(source, audio.CD, 4096)
//
// Samples are float32 in [-1.0, 1.0], interleaved by channel.
//
// # Error Handling
//
// Sources return io.EOF when no more data is available:
//
//	for {
//	    n, err := source.ReadSamples(buf)
//	    // use buf[:n]
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	}
package audio
