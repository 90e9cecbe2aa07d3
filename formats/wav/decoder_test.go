// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"errors"
	"io"
	"math"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/ik5/bobwave/audio"
	"github.com/ik5/bobwave/internal/audiotest"
)

// mockPCMReader feeds fixed integer samples through the pcmReader interface.
type mockPCMReader struct {
	data []int
	pos  int
	err  error
}

func (m *mockPCMReader) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	if m.pos >= len(m.data) {
		return 0, io.EOF
	}

	n := copy(buf.Data, m.data[m.pos:])
	m.pos += n

	return n, nil
}

func TestDecoder_Decode16(t *testing.T) {
	t.Parallel()

	samples := []int16{0, 16384, -16384, 32767, -32768, 1}
	data := audiotest.WAV16(22050, 2, samples)

	src, err := Decoder{}.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	defer src.Close()

	if src.SampleRate() != 22050 {
		t.Errorf("SampleRate() = %d, want 22050", src.SampleRate())
	}
	if src.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", src.Channels())
	}

	buf, err := audio.ReadAll(src, 1024)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}

	want := []float32{0, 0.5, -0.5, 32767.0 / 32768.0, -1, 1.0 / 32768.0}
	if len(buf.Data) != len(want) {
		t.Fatalf("got %d samples, want %d", len(buf.Data), len(want))
	}
	for i := range want {
		if buf.Data[i] != want[i] {
			t.Errorf("sample %d = %v, want %v", i, buf.Data[i], want[i])
		}
	}
}

func TestDecoder_DecodeNonSeeker(t *testing.T) {
	t.Parallel()

	data := audiotest.WAV16(8000, 1, []int16{100, 200, 300})

	// io.MultiReader hides the Seek method.
	src, err := Decoder{}.Decode(io.MultiReader(bytes.NewReader(data)))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	buf, err := audio.ReadAll(src, 16)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if buf.Frames() != 3 {
		t.Errorf("Frames() = %d, want 3", buf.Frames())
	}
}

func TestDecoder_Decode8Bit(t *testing.T) {
	t.Parallel()

	data := audiotest.WAV(8000, 1, 8, formatPCM, []byte{128, 255, 0, 192})

	src, err := Decoder{}.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	buf, err := audio.ReadAll(src, 16)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}

	want := []float32{0, 127.0 / 128.0, -1, 0.5}
	if len(buf.Data) != len(want) {
		t.Fatalf("got %d samples, want %d", len(buf.Data), len(want))
	}
	for i := range want {
		if buf.Data[i] != want[i] {
			t.Errorf("sample %d = %v, want %v", i, buf.Data[i], want[i])
		}
	}
}

func TestDecoder_Decode24Bit(t *testing.T) {
	t.Parallel()

	// 0x400000 is half of full scale, 0xC00000 is its negation.
	raw := []byte{
		0x00, 0x00, 0x40,
		0x00, 0x00, 0xC0,
	}
	data := audiotest.WAV(44100, 1, 24, formatPCM, raw)

	src, err := Decoder{}.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	buf, err := audio.ReadAll(src, 16)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}

	want := []float32{0.5, -0.5}
	if len(buf.Data) != len(want) {
		t.Fatalf("got %d samples, want %d", len(buf.Data), len(want))
	}
	for i := range want {
		if math.Abs(float64(buf.Data[i]-want[i])) > 1e-6 {
			t.Errorf("sample %d = %v, want %v", i, buf.Data[i], want[i])
		}
	}
}

func TestDecoder_DecodeRejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{
			name: "float samples",
			data: audiotest.WAV(44100, 1, 32, 3, make([]byte, 16)),
			want: ErrOnlyPCMSupported,
		},
		{
			name: "not riff",
			data: []byte("this is definitely not a wave file at all"),
			want: ErrNotWavFile,
		},
		{
			name: "empty",
			data: nil,
			want: ErrNotWavFile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Decoder{}.Decode(bytes.NewReader(tt.data))
			if !errors.Is(err, tt.want) {
				t.Errorf("Decode() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	src := &source{
		dec:        &mockPCMReader{data: []int{0, 16384, -16384, 8192, -8192}},
		sampleRate: 44100,
		channels:   1,
		bitDepth:   16,
	}

	dst := make([]float32, 3)
	n, err := src.ReadSamples(dst)
	if err != nil {
		t.Fatalf("first ReadSamples() error = %v", err)
	}
	if n != 3 {
		t.Fatalf("first ReadSamples() n = %d, want 3", n)
	}
	if dst[1] != 0.5 || dst[2] != -0.5 {
		t.Errorf("first read = %v", dst)
	}

	n, err = src.ReadSamples(dst)
	if err != io.EOF {
		t.Errorf("second ReadSamples() error = %v, want io.EOF", err)
	}
	if n != 2 {
		t.Errorf("second ReadSamples() n = %d, want 2", n)
	}

	n, err = src.ReadSamples(dst)
	if n != 0 || err != io.EOF {
		t.Errorf("third ReadSamples() = (%d, %v), want (0, io.EOF)", n, err)
	}
}

func TestSource_ReadSamplesError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	src := &source{
		dec:        &mockPCMReader{err: boom},
		sampleRate: 44100,
		channels:   1,
		bitDepth:   16,
	}

	_, err := src.ReadSamples(make([]float32, 4))
	if !errors.Is(err, boom) {
		t.Errorf("ReadSamples() error = %v, want %v", err, boom)
	}
}

func TestSource_ReadSamplesEmptyDst(t *testing.T) {
	t.Parallel()

	src := &source{dec: &mockPCMReader{data: []int{1}}, sampleRate: 8000, channels: 1, bitDepth: 16}

	n, err := src.ReadSamples(nil)
	if n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = (%d, %v), want (0, nil)", n, err)
	}
}

func BenchmarkDecoder_Decode(b *testing.B) {
	data := audiotest.WAV16(44100, 2, audiotest.ConstantInt16(44100, 2, 1000))
	dst := make([]float32, 4096)

	b.ReportAllocs()
	b.ResetTimer()

	for b.Loop() {
		src, err := Decoder{}.Decode(bytes.NewReader(data))
		if err != nil {
			b.Fatal(err)
		}
		for {
			_, err := src.ReadSamples(dst)
			if err != nil {
				break
			}
		}
	}
}
