// SPDX-License-Identifier: EPL-2.0

// Package bobwave composes multi-layer audio projects.
//
// Recordings are ingested into named projects as layers. Each layer keeps
// its audio as canonical PCM (44.1 kHz stereo by default) together with a
// volume, a visibility flag and a start offset. Exporting a project
// overlays the selected layers at their gains and encodes the mix as a WAV
// file.
//
// # Quick Start
//
//	engine, _ := bobwave.New(bobwave.Options{})
//
//	id, err := engine.Ingest("demo", data, codec.ParseFormat("audio/wav"))
//	if err != nil {
//	    // errors.Is(err, codec.ErrUnsupportedOrCorrupt)
//	    // errors.Is(err, project.ErrLayerLimit)
//	}
//
//	wavBytes, err := engine.Export("demo", []project.Setting{
//	    {ID: id, Visible: true, Volume: 1.2},
//	})
//
// Export settings apply to that export only. SaveSettings stores them on
// the layers, and ExportSaved mixes with the stored state.
//
// # Volume
//
// A layer's volume is a slider value, not an amplitude: the gain in dB is
// 20*(volume-1), so 1.0 is unity, 0.0 is -20 dB and 2.0 is +20 dB.
//
// # Supported Formats
//
// Ingest decodes:
//   - WAV (8/16/24/32-bit integer PCM) via formats/wav
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//   - Ogg Opus via formats/opus
//   - AIFF via formats/aiff
//
// The container is sniffed from the payload; the declared format is used
// only when sniffing fails.
//
// # Concurrency
//
// An Engine is safe for concurrent use. Operations on one project are
// serialized; different projects are independent. Exports read a
// consistent snapshot of the project's layers.
//
// All state is in memory and is lost when the process exits.
package bobwave
