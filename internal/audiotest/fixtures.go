// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"bytes"
	"encoding/binary"
	"math/bits"
)

// WAV16 builds a canonical 44-byte-header PCM 16-bit WAV file.
func WAV16(sampleRate, channels int, samples []int16) []byte {
	return WAV(sampleRate, channels, 16, 1, int16Bytes(samples))
}

// WAV builds a WAV file around already encoded sample bytes. format is the
// fmt chunk audio format tag (1 = PCM, 3 = IEEE float).
func WAV(sampleRate, channels, bitsPerSample, format int, data []byte) []byte {
	buf := new(bytes.Buffer)

	blockAlign := channels * bitsPerSample / 8
	byteRate := sampleRate * blockAlign

	buf.WriteString("RIFF")
	_ = binary.Write(buf, binary.LittleEndian, uint32(36+len(data)))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	_ = binary.Write(buf, binary.LittleEndian, uint32(16))
	_ = binary.Write(buf, binary.LittleEndian, uint16(format))
	_ = binary.Write(buf, binary.LittleEndian, uint16(channels))
	_ = binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	_ = binary.Write(buf, binary.LittleEndian, uint32(byteRate))
	_ = binary.Write(buf, binary.LittleEndian, uint16(blockAlign))
	_ = binary.Write(buf, binary.LittleEndian, uint16(bitsPerSample))

	buf.WriteString("data")
	_ = binary.Write(buf, binary.LittleEndian, uint32(len(data)))
	buf.Write(data)
	if len(data)%2 == 1 {
		buf.WriteByte(0)
	}

	return buf.Bytes()
}

// ConstantInt16 returns frames*channels copies of v.
func ConstantInt16(frames, channels int, v int16) []int16 {
	out := make([]int16, frames*channels)
	for i := range out {
		out[i] = v
	}

	return out
}

// ConstantFloat returns frames*channels copies of v.
func ConstantFloat(frames, channels int, v float32) []float32 {
	out := make([]float32, frames*channels)
	for i := range out {
		out[i] = v
	}

	return out
}

func int16Bytes(samples []int16) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(s))
	}

	return out
}

// AIFF16 builds a minimal big-endian 16-bit PCM AIFF file.
func AIFF16(sampleRate, channels int, samples []int16) []byte {
	data := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.BigEndian.PutUint16(data[i*2:], uint16(s))
	}

	buf := new(bytes.Buffer)

	buf.WriteString("FORM")
	_ = binary.Write(buf, binary.BigEndian, uint32(4+8+18+8+8+len(data)))
	buf.WriteString("AIFF")

	buf.WriteString("COMM")
	_ = binary.Write(buf, binary.BigEndian, uint32(18))
	_ = binary.Write(buf, binary.BigEndian, uint16(channels))
	_ = binary.Write(buf, binary.BigEndian, uint32(len(samples)/channels))
	_ = binary.Write(buf, binary.BigEndian, uint16(16))
	buf.Write(extended(sampleRate))

	buf.WriteString("SSND")
	_ = binary.Write(buf, binary.BigEndian, uint32(8+len(data)))
	_ = binary.Write(buf, binary.BigEndian, uint32(0)) // offset
	_ = binary.Write(buf, binary.BigEndian, uint32(0)) // block size
	buf.Write(data)

	return buf.Bytes()
}

// extended encodes a positive integer as an 80-bit IEEE 754 extended float.
func extended(v int) []byte {
	out := make([]byte, 10)
	if v <= 0 {
		return out
	}

	e := bits.Len64(uint64(v)) - 1
	binary.BigEndian.PutUint16(out[0:2], uint16(16383+e))
	binary.BigEndian.PutUint64(out[2:10], uint64(v)<<(63-e))

	return out
}
