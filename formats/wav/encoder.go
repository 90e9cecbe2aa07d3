// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/ik5/bobwave/audio"
	"github.com/ik5/bobwave/utils"
)

// chunkSize is how many samples are converted per Write call.
const chunkSize = 8192

func writeHeader(w io.Writer, sampleRate, channels, dataSize int) error {
	numChannels := uint16(channels)
	bitsPerSample := uint16(16)
	blockAlign := numChannels * (bitsPerSample / 8)
	byteRate := uint32(sampleRate) * uint32(blockAlign)

	header := make([]byte, 44)

	// RIFF header (12 bytes)
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], uint32(36+dataSize))
	copy(header[8:12], "WAVE")

	// fmt chunk (24 bytes)
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], formatPCM)
	binary.LittleEndian.PutUint16(header[22:24], numChannels)
	binary.LittleEndian.PutUint32(header[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(header[28:32], byteRate)
	binary.LittleEndian.PutUint16(header[32:34], blockAlign)
	binary.LittleEndian.PutUint16(header[34:36], bitsPerSample)

	// data chunk header (8 bytes)
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], uint32(dataSize))

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

// WriteWAV16 writes interleaved 16-bit PCM samples as a WAV file.
func WriteWAV16(w io.Writer, sampleRate, channels int, samples []int16) error {
	if channels < 1 || channels > math.MaxUint16 {
		return ErrInvalidChannels
	}

	if err := writeHeader(w, sampleRate, channels, len(samples)*2); err != nil {
		return err
	}
	if len(samples) == 0 {
		return nil
	}

	buf := make([]byte, min(len(samples), chunkSize)*2)
	for i := 0; i < len(samples); i += chunkSize {
		chunk := samples[i:min(i+chunkSize, len(samples))]
		out := buf[:len(chunk)*2]

		for j, s := range chunk {
			binary.LittleEndian.PutUint16(out[j*2:], uint16(s))
		}

		if _, err := w.Write(out); err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	return nil
}

// Encode writes b as a 16-bit PCM WAV file in b's own layout. Samples
// outside [-1, 1] are clamped. Buffers decoded from 16-bit PCM are written
// back bit for bit.
func Encode(w io.Writer, b *audio.Buffer) error {
	if err := b.Layout().Validate(); err != nil {
		return err
	}
	if b.Channels > math.MaxUint16 {
		return ErrInvalidChannels
	}

	frames := b.Frames()
	data := b.Data[:frames*b.Channels]

	if err := writeHeader(w, b.SampleRate, b.Channels, len(data)*2); err != nil {
		return err
	}

	buf := make([]byte, min(len(data), chunkSize)*2)
	for i := 0; i < len(data); i += chunkSize {
		chunk := data[i:min(i+chunkSize, len(data))]
		out := buf[:len(chunk)*2]

		for j, v := range chunk {
			binary.LittleEndian.PutUint16(out[j*2:], uint16(utils.Float32ToInt16(v)))
		}

		if _, err := w.Write(out); err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	return nil
}
