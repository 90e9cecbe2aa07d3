// SPDX-License-Identifier: EPL-2.0

package codec

import (
	"bytes"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Format names an audio container.
type Format string

const (
	FormatUnknown Format = ""
	FormatWAV     Format = "wav"
	FormatMP3     Format = "mp3"
	// FormatOgg is Ogg Vorbis.
	FormatOgg  Format = "ogg"
	FormatOpus Format = "opus"
	FormatAIFF Format = "aiff"
	// FormatWebM is Opus in a WebM container.
	FormatWebM Format = "webm"
)

// sniffLen bounds how far into an Ogg payload the codec headers are searched.
const sniffLen = 512

var aliases = map[string]Format{
	"wav":    FormatWAV,
	"wave":   FormatWAV,
	"mp3":    FormatMP3,
	"mpeg":   FormatMP3,
	"mpga":   FormatMP3,
	"ogg":    FormatOgg,
	"oga":    FormatOgg,
	"vorbis": FormatOgg,
	"opus":   FormatOpus,
	"aif":    FormatAIFF,
	"aiff":   FormatAIFF,
	"aifc":   FormatAIFF,
	"webm":   FormatWebM,
	"weba":   FormatWebM,
}

func (f Format) String() string {
	if f == FormatUnknown {
		return "unknown"
	}

	return string(f)
}

// MIMEType returns the media type used when serving f.
func (f Format) MIMEType() string {
	switch f {
	case FormatWAV:
		return "audio/wav"
	case FormatMP3:
		return "audio/mpeg"
	case FormatOgg:
		return "audio/ogg"
	case FormatOpus:
		return "audio/ogg; codecs=opus"
	case FormatAIFF:
		return "audio/aiff"
	case FormatWebM:
		return "audio/webm"
	default:
		return "application/octet-stream"
	}
}

// Extension returns the file extension for f, including the dot.
func (f Format) Extension() string {
	switch f {
	case FormatUnknown:
		return ""
	case FormatOpus:
		return ".opus"
	default:
		return "." + string(f)
	}
}

// ParseFormat resolves a format name, file extension, file name, MIME type
// or data URL header to a Format. Unrecognized input yields FormatUnknown.
//
//	ParseFormat("wav")                    // FormatWAV
//	ParseFormat(".MP3")                   // FormatMP3
//	ParseFormat("audio/ogg; codecs=opus") // FormatOpus
//	ParseFormat("data:audio/wav;base64")  // FormatWAV
func ParseFormat(s string) Format {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return FormatUnknown
	}

	if rest, ok := strings.CutPrefix(s, "data:"); ok {
		s, _, _ = strings.Cut(rest, ",")
		s = strings.TrimSuffix(s, ";base64")
	}

	media, params, _ := strings.Cut(s, ";")
	media = strings.TrimSpace(media)

	if strings.Contains(media, "/") {
		f := fromMIME(mimetype.Lookup(media))
		if f == FormatUnknown {
			_, sub, _ := strings.Cut(media, "/")
			f = aliases[strings.TrimPrefix(sub, "x-")]
		}
		if f == FormatOgg && strings.Contains(params, "opus") {
			return FormatOpus
		}

		return f
	}

	if ext := path.Ext(media); ext != "" {
		media = ext[1:]
	}

	return aliases[media]
}

// Detect sniffs the container of data. Ogg payloads are reported as
// FormatOpus or FormatOgg from their first codec header.
func Detect(data []byte) Format {
	f := fromMIME(mimetype.Detect(data))
	if f != FormatOgg {
		return f
	}

	return oggCodec(data)
}

func fromMIME(m *mimetype.MIME) Format {
	for ; m != nil; m = m.Parent() {
		switch {
		case m.Is("audio/wav"):
			return FormatWAV
		case m.Is("audio/mpeg"):
			return FormatMP3
		case m.Is("audio/aiff"):
			return FormatAIFF
		case m.Is("audio/ogg"), m.Is("application/ogg"):
			return FormatOgg
		case m.Is("audio/webm"), m.Is("video/webm"):
			return FormatWebM
		}
	}

	return FormatUnknown
}

func oggCodec(data []byte) Format {
	head := data[:min(len(data), sniffLen)]

	opus := bytes.Index(head, []byte("OpusHead"))
	vorbis := bytes.Index(head, []byte("\x01vorbis"))

	switch {
	case opus >= 0 && (vorbis < 0 || opus < vorbis):
		return FormatOpus
	case vorbis >= 0:
		return FormatOgg
	default:
		return FormatUnknown
	}
}
