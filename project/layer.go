// SPDX-License-Identifier: EPL-2.0

package project

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ik5/bobwave/audio"
)

// DefaultVolume is the slider value for unity gain.
const DefaultVolume = 1.0

// LayerID identifies a layer. IDs are random UUIDs and never reused.
type LayerID string

func NewLayerID() LayerID {
	return LayerID(uuid.NewString())
}

// ParseLayerID validates s as a layer id and returns it in canonical form.
func ParseLayerID(s string) (LayerID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return "", fmt.Errorf("%w %q: %w", ErrInvalidLayerID, s, err)
	}

	return LayerID(u.String()), nil
}

func (id LayerID) String() string {
	return string(id)
}

// Layer is a snapshot of one ingested take. Audio is shared with the store
// and must not be modified.
type Layer struct {
	ID      LayerID
	Name    string
	Audio   *audio.Buffer
	Volume  float64
	Visible bool
	// Offset is the start position in the mix, in frames.
	Offset  int
	Created time.Time
}

// Setting is one per-layer override, used both for export and for saving
// layer state.
type Setting struct {
	ID      LayerID
	Visible bool
	Volume  float64
}

// LayerPatch lists layer fields to change. Nil fields are left alone.
type LayerPatch struct {
	Name    *string
	Volume  *float64
	Visible *bool
	Offset  *int
}

// NewLayer describes a layer to insert.
type NewLayer struct {
	Name   string
	Audio  *audio.Buffer
	Offset int
}
