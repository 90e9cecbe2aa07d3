// SPDX-License-Identifier: EPL-2.0

package codec

import (
	"testing"

	"github.com/ik5/bobwave/internal/audiotest"
	"github.com/ik5/bobwave/internal/audiotest/webmtest"
)

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Format
	}{
		{in: "wav", want: FormatWAV},
		{in: "WAV", want: FormatWAV},
		{in: ".wav", want: FormatWAV},
		{in: "take-1.Wave", want: FormatWAV},
		{in: "audio/wav", want: FormatWAV},
		{in: "audio/x-wav", want: FormatWAV},
		{in: "audio/wave", want: FormatWAV},
		{in: "data:audio/wav;base64", want: FormatWAV},
		{in: "data:audio/wav;base64,UklGRg==", want: FormatWAV},
		{in: "mp3", want: FormatMP3},
		{in: "audio/mpeg", want: FormatMP3},
		{in: "audio/mp3", want: FormatMP3},
		{in: "ogg", want: FormatOgg},
		{in: "audio/ogg", want: FormatOgg},
		{in: "application/ogg", want: FormatOgg},
		{in: "audio/ogg; codecs=opus", want: FormatOpus},
		{in: "data:audio/ogg;codecs=opus;base64", want: FormatOpus},
		{in: "opus", want: FormatOpus},
		{in: "audio/opus", want: FormatOpus},
		{in: "aiff", want: FormatAIFF},
		{in: ".aif", want: FormatAIFF},
		{in: "audio/x-aiff", want: FormatAIFF},
		{in: "", want: FormatUnknown},
		{in: "flac", want: FormatUnknown},
		{in: "webm", want: FormatWebM},
		{in: "take-1.weba", want: FormatWebM},
		{in: "audio/webm", want: FormatWebM},
		{in: "video/webm", want: FormatWebM},
		{in: "audio/webm;codecs=opus", want: FormatWebM},
		{in: "data:audio/webm;codecs=opus;base64", want: FormatWebM},
		{in: "audio/matroska", want: FormatUnknown},
		{in: "text/plain", want: FormatUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			if got := ParseFormat(tt.in); got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// oggPage builds the first page of an Ogg stream carrying packet.
func oggPage(packet string) []byte {
	page := []byte("OggS\x00\x02")
	page = append(page, make([]byte, 20)...)
	page = append(page, 1, byte(len(packet)))
	return append(page, packet...)
}

func TestDetect(t *testing.T) {
	t.Parallel()

	webmFile, err := webmtest.File(nil, nil)
	if err != nil {
		t.Fatalf("webmtest.File() error = %v", err)
	}

	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{name: "wav", data: audiotest.WAV16(44100, 2, []int16{0, 0}), want: FormatWAV},
		{name: "aiff", data: audiotest.AIFF16(44100, 1, []int16{0, 1}), want: FormatAIFF},
		{name: "ogg vorbis", data: oggPage("\x01vorbis\x00\x00\x00\x00\x02"), want: FormatOgg},
		{name: "ogg opus", data: oggPage("OpusHead\x01\x02"), want: FormatOpus},
		{name: "webm", data: webmFile, want: FormatWebM},
		{name: "text", data: []byte("hello world, this is not audio"), want: FormatUnknown},
		{name: "empty", data: nil, want: FormatUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Detect(tt.data); got != tt.want {
				t.Errorf("Detect() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormat_Metadata(t *testing.T) {
	t.Parallel()

	if FormatWAV.MIMEType() != "audio/wav" {
		t.Errorf("MIMEType() = %q", FormatWAV.MIMEType())
	}
	if FormatWAV.Extension() != ".wav" {
		t.Errorf("Extension() = %q", FormatWAV.Extension())
	}
	if FormatWebM.MIMEType() != "audio/webm" || FormatWebM.Extension() != ".webm" {
		t.Errorf("webm = %q, %q", FormatWebM.MIMEType(), FormatWebM.Extension())
	}
	if FormatUnknown.String() != "unknown" {
		t.Errorf("String() = %q", FormatUnknown.String())
	}
}
