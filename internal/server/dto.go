// SPDX-License-Identifier: EPL-2.0

package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/ik5/bobwave/project"
)

// flexString accepts a JSON string or number. Browser clients send layer
// ids as numbers.
type flexString string

func (s *flexString) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*s = ""
		return nil
	}

	var str string
	if err := json.Unmarshal(b, &str); err == nil {
		*s = flexString(str)
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return fmt.Errorf("expected string or number, got %s", b)
	}
	*s = flexString(num.String())

	return nil
}

// flexFloat accepts a JSON number or a numeric string. Range inputs report
// their value as a string.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	var num float64
	if err := json.Unmarshal(b, &num); err == nil {
		*f = flexFloat(num)
		return nil
	}

	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return fmt.Errorf("expected number, got %s", b)
	}

	num, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return fmt.Errorf("expected number, got %q", str)
	}
	*f = flexFloat(num)

	return nil
}

type settingRequest struct {
	ID      flexString `json:"id"`
	Visible bool       `json:"visible"`
	Volume  flexFloat  `json:"volume"`
}

type settingsRequest struct {
	Project  string           `json:"project"`
	Settings []settingRequest `json:"settings"`
}

type settingResponse struct {
	ID      project.LayerID `json:"id"`
	Visible bool            `json:"visible"`
	Volume  float64         `json:"volume"`
}

type uploadRequest struct {
	ID      flexString `json:"id"`
	Audio   string     `json:"audio"`
	Project string     `json:"project"`
}

type layerResponse struct {
	ID         project.LayerID `json:"id"`
	Name       string          `json:"name"`
	Volume     float64         `json:"volume"`
	Visible    bool            `json:"visible"`
	Offset     int             `json:"offset"`
	Frames     int             `json:"frames"`
	DurationMS int64           `json:"duration_ms"`
	CreatedAt  time.Time       `json:"created_at"`
}

type uploadResponse struct {
	layerResponse
	ClientID string `json:"client_id,omitempty"`
	Project  string `json:"project"`
}

type createProjectRequest struct {
	Name string `json:"name" binding:"required"`
}

type layerPatch struct {
	Name    *string    `json:"name"`
	Volume  *flexFloat `json:"volume"`
	Visible *bool      `json:"visible"`
	Offset  *int       `json:"offset"`
}

func (p layerPatch) toPatch() project.LayerPatch {
	patch := project.LayerPatch{Name: p.Name, Visible: p.Visible, Offset: p.Offset}
	if p.Volume != nil {
		v := float64(*p.Volume)
		patch.Volume = &v
	}

	return patch
}

func toLayerResponse(l project.Layer) layerResponse {
	return layerResponse{
		ID:         l.ID,
		Name:       l.Name,
		Volume:     l.Volume,
		Visible:    l.Visible,
		Offset:     l.Offset,
		Frames:     l.Audio.Frames(),
		DurationMS: l.Audio.Duration().Milliseconds(),
		CreatedAt:  l.Created,
	}
}

func toSettingResponses(settings []project.Setting) []settingResponse {
	out := make([]settingResponse, len(settings))
	for i, s := range settings {
		out[i] = settingResponse{ID: s.ID, Visible: s.Visible, Volume: s.Volume}
	}

	return out
}
