// SPDX-License-Identifier: EPL-2.0

package bobwave_test

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ik5/bobwave"
	"github.com/ik5/bobwave/audio"
	"github.com/ik5/bobwave/codec"
	"github.com/ik5/bobwave/formats/wav"
	"github.com/ik5/bobwave/mix"
	"github.com/ik5/bobwave/project"
)

func toneWAV(level float32, frames int) []byte {
	buf := audio.NewBuffer(audio.CD, frames)
	for i := range buf.Data {
		buf.Data[i] = level
	}

	var out bytes.Buffer
	_ = wav.Encode(&out, buf)

	return out.Bytes()
}

// Example demonstrates ingesting two takes and exporting their mix.
func Example() {
	engine, err := bobwave.New(bobwave.Options{})
	if err != nil {
		fmt.Println(err)
		return
	}

	a, _ := engine.Ingest("demo", toneWAV(0.5, 44100), codec.FormatWAV)
	b, _ := engine.Ingest("demo", toneWAV(0.25, 22050), codec.FormatWAV)

	out, err := engine.Export("demo", []project.Setting{
		{ID: a, Visible: true, Volume: 1},
		{ID: b, Visible: true, Volume: 1},
	})
	if err != nil {
		fmt.Println(err)
		return
	}

	src, _ := wav.Decoder{}.Decode(bytes.NewReader(out))
	mixed, _ := audio.ReadAll(src, 4096)

	fmt.Println(mixed.Duration(), mixed.Data[0], mixed.Data[len(mixed.Data)-1])
	// Output: 1s 0.75 0.5
}

// Example_noLayersSelected shows the error returned when every layer is
// hidden.
func Example_noLayersSelected() {
	engine, _ := bobwave.New(bobwave.Options{})
	id, _ := engine.Ingest("demo", toneWAV(0.5, 100), codec.FormatWAV)

	_, err := engine.Export("demo", []project.Setting{{ID: id, Visible: false, Volume: 1}})

	fmt.Println(errors.Is(err, mix.ErrNoLayersSelected))
	// Output: true
}
