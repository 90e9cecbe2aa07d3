// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"math"
	"testing"

	"github.com/ik5/bobwave/internal/audiotest"
)

func TestReadAll(t *testing.T) {
	t.Parallel()

	buf, err := ReadAll(audiotest.NewRampSource(8000, 2, 1000, 0.001), 100)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}

	if buf.SampleRate != 8000 || buf.Channels != 2 {
		t.Errorf("layout = %v, want 8000 Hz/2ch", buf.Layout())
	}
	if buf.Frames() != 1000 {
		t.Errorf("Frames() = %d, want 1000", buf.Frames())
	}
	if buf.Data[2*999] != float32(999)*0.001 {
		t.Errorf("last frame = %v", buf.Data[2*999])
	}
}

func TestReadAll_SourceError(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSilentSource(8000, 1, 1000)
	src.FailAfter = 10

	if _, err := ReadAll(src, 4); !errors.Is(err, audiotest.ErrMockRead) {
		t.Errorf("ReadAll() error = %v, want ErrMockRead", err)
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		src        Source
		wantFrames int
	}{
		{name: "already canonical", src: audiotest.NewConstantSource(44100, 2, 4410, 0.5), wantFrames: 4410},
		{name: "mono 44.1k", src: audiotest.NewConstantSource(44100, 1, 4410, 0.5), wantFrames: 4410},
		{name: "stereo 48k", src: audiotest.NewConstantSource(48000, 2, 4800, 0.5), wantFrames: 4410},
		{name: "mono 22.05k", src: audiotest.NewConstantSource(22050, 1, 2205, 0.5), wantFrames: 4409},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			buf, err := Normalize(tt.src, CD, 4096)
			if err != nil {
				t.Fatalf("Normalize() error = %v", err)
			}
			if buf.Layout() != CD {
				t.Fatalf("layout = %v, want %v", buf.Layout(), CD)
			}
			if diff := buf.Frames() - tt.wantFrames; diff < -1 || diff > 1 {
				t.Errorf("Frames() = %d, want %d ±1", buf.Frames(), tt.wantFrames)
			}
			for i, v := range buf.Data {
				if math.Abs(float64(v-0.5)) > 1e-5 {
					t.Fatalf("sample %d = %v, want 0.5", i, v)
				}
			}
		})
	}
}

func TestNormalize_InvalidLayout(t *testing.T) {
	t.Parallel()

	_, err := Normalize(audiotest.NewSilentSource(8000, 1, 10), Layout{SampleRate: 44100}, 4096)
	if !errors.Is(err, ErrInvalidLayout) {
		t.Errorf("Normalize() error = %v, want ErrInvalidLayout", err)
	}

	_, err = Normalize(audiotest.NewSilentSource(0, 1, 10), CD, 4096)
	if !errors.Is(err, ErrInvalidLayout) {
		t.Errorf("Normalize() with zero-rate source error = %v, want ErrInvalidLayout", err)
	}
}
