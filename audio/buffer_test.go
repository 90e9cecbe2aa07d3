// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"testing"
	"time"
)

func TestLayout_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		layout  Layout
		wantErr bool
	}{
		{name: "cd", layout: CD},
		{name: "mono 8k", layout: Layout{SampleRate: 8000, Channels: 1}},
		{name: "zero rate", layout: Layout{SampleRate: 0, Channels: 2}, wantErr: true},
		{name: "zero channels", layout: Layout{SampleRate: 44100}, wantErr: true},
		{name: "negative", layout: Layout{SampleRate: -1, Channels: -1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.layout.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidLayout) {
				t.Errorf("Validate() error = %v, want ErrInvalidLayout", err)
			}
		})
	}
}

func TestBuffer_Metadata(t *testing.T) {
	t.Parallel()

	buf := NewBuffer(CD, 44100)

	if buf.Frames() != 44100 {
		t.Errorf("Frames() = %d, want 44100", buf.Frames())
	}
	if len(buf.Data) != 88200 {
		t.Errorf("len(Data) = %d, want 88200", len(buf.Data))
	}
	if buf.Duration() != time.Second {
		t.Errorf("Duration() = %v, want 1s", buf.Duration())
	}
	if buf.Layout() != CD {
		t.Errorf("Layout() = %v, want %v", buf.Layout(), CD)
	}
	if buf.Peak() != 0 {
		t.Errorf("Peak() of silence = %v, want 0", buf.Peak())
	}
}

func TestBuffer_CloneIsIndependent(t *testing.T) {
	t.Parallel()

	buf := &Buffer{SampleRate: 8000, Channels: 1, Data: []float32{0.1, -0.7, 0.3}}
	clone := buf.Clone()
	clone.Data[1] = 0

	if buf.Data[1] != -0.7 {
		t.Errorf("original mutated through clone: %v", buf.Data)
	}
	if buf.Peak() != 0.7 {
		t.Errorf("Peak() = %v, want 0.7", buf.Peak())
	}
}

func TestBufferSource_ReadsEverything(t *testing.T) {
	t.Parallel()

	buf := &Buffer{SampleRate: 8000, Channels: 2, Data: []float32{1, 2, 3, 4, 5, 6}}
	src := NewBufferSource(buf)

	dst := make([]float32, 4)
	n, err := src.ReadSamples(dst)
	if n != 4 || err != nil {
		t.Fatalf("first ReadSamples() = %d, %v; want 4, nil", n, err)
	}

	n, err = src.ReadSamples(dst)
	if n != 2 || err != io.EOF {
		t.Fatalf("second ReadSamples() = %d, %v; want 2, EOF", n, err)
	}
	if dst[0] != 5 || dst[1] != 6 {
		t.Errorf("tail = %v, want [5 6]", dst[:2])
	}

	n, err = src.ReadSamples(dst)
	if n != 0 || err != io.EOF {
		t.Errorf("exhausted ReadSamples() = %d, %v; want 0, EOF", n, err)
	}
}
