// SPDX-License-Identifier: EPL-2.0

package project

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/ik5/bobwave/audio"
	"github.com/ik5/bobwave/utils"
)

// DefaultMaxOffset bounds layer offsets when no StoreOption says
// otherwise: ten minutes at 48 kHz.
const DefaultMaxOffset = 10 * 60 * 48000

// Store holds the layers of one project in insertion order. All methods
// are safe for concurrent use; readers get copies, never the live slice.
type Store struct {
	name      string
	layers    []Layer
	maxOffset int
	deleted   bool

	mtx *sync.RWMutex
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithMaxOffset bounds layer offsets to frames. Non-positive values keep
// the default.
func WithMaxOffset(frames int) StoreOption {
	return func(s *Store) {
		if frames > 0 {
			s.maxOffset = frames
		}
	}
}

func NewStore(name string, opts ...StoreOption) *Store {
	s := &Store{
		name:      name,
		maxOffset: DefaultMaxOffset,
		mtx:       &sync.RWMutex{},
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Store) Name() string {
	return s.name
}

// AddLayer appends buf as a new visible layer at unity gain and offset 0.
func (s *Store) AddLayer(buf *audio.Buffer) (LayerID, error) {
	l, err := s.Insert(NewLayer{Audio: buf}, 0)
	if err != nil {
		return "", err
	}

	return l.ID, nil
}

// MaxOffset is the largest offset, in frames, a layer may start at.
func (s *Store) MaxOffset() int {
	return s.maxOffset
}

// Insert appends a new layer. When limit is positive and the store already
// holds limit layers, nothing is added and ErrLayerLimit is returned. The
// check and the append happen under one lock. A store dropped from its
// Registry accepts no new layers.
func (s *Store) Insert(nl NewLayer, limit int) (Layer, error) {
	if nl.Audio == nil {
		return Layer{}, ErrNoAudio
	}
	if err := s.checkOffset(nl.Offset); err != nil {
		return Layer{}, err
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.deleted {
		return Layer{}, fmt.Errorf("%w: %q was deleted", ErrProjectNotFound, s.name)
	}
	if limit > 0 && len(s.layers) >= limit {
		return Layer{}, fmt.Errorf("%w: %q holds %d", ErrLayerLimit, s.name, len(s.layers))
	}

	l := Layer{
		ID:      NewLayerID(),
		Name:    nl.Name,
		Audio:   nl.Audio,
		Volume:  DefaultVolume,
		Visible: true,
		Offset:  nl.Offset,
		Created: time.Now(),
	}
	s.layers = append(s.layers, l)

	return l, nil
}

// RemoveLayer deletes the layer with id.
func (s *Store) RemoveLayer(id LayerID) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	i := s.find(id)
	if i < 0 {
		return s.notFound(id)
	}
	s.layers = slices.Delete(s.layers, i, i+1)

	return nil
}

func (s *Store) SetVisibility(id LayerID, visible bool) error {
	return s.update(id, func(l *Layer) { l.Visible = visible })
}

// SetGain sets the linear slider volume of a layer; 1.0 is unity.
func (s *Store) SetGain(id LayerID, volume float64) error {
	if !utils.IsFinite(volume) {
		return fmt.Errorf("%w: %v", ErrInvalidVolume, volume)
	}

	return s.update(id, func(l *Layer) { l.Volume = volume })
}

// SetOffset moves a layer to start frames into the mix.
func (s *Store) SetOffset(id LayerID, frames int) error {
	if err := s.checkOffset(frames); err != nil {
		return err
	}

	return s.update(id, func(l *Layer) { l.Offset = frames })
}

// Patch applies every non-nil field of p to the layer under one lock and
// returns the updated layer. Nothing is changed when any field is invalid
// or the layer is gone.
func (s *Store) Patch(id LayerID, p LayerPatch) (Layer, error) {
	if p.Volume != nil && !utils.IsFinite(*p.Volume) {
		return Layer{}, fmt.Errorf("%w: %v", ErrInvalidVolume, *p.Volume)
	}
	if p.Offset != nil {
		if err := s.checkOffset(*p.Offset); err != nil {
			return Layer{}, err
		}
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	i := s.find(id)
	if i < 0 {
		return Layer{}, s.notFound(id)
	}

	l := &s.layers[i]
	if p.Name != nil {
		l.Name = *p.Name
	}
	if p.Volume != nil {
		l.Volume = *p.Volume
	}
	if p.Visible != nil {
		l.Visible = *p.Visible
	}
	if p.Offset != nil {
		l.Offset = *p.Offset
	}

	return *l, nil
}

func (s *Store) Rename(id LayerID, name string) error {
	return s.update(id, func(l *Layer) { l.Name = name })
}

// Layer returns a snapshot of one layer.
func (s *Store) Layer(id LayerID) (Layer, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	i := s.find(id)
	if i < 0 {
		return Layer{}, s.notFound(id)
	}

	return s.layers[i], nil
}

// ListLayers returns a snapshot of all layers in insertion order.
func (s *Store) ListLayers() []Layer {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	return slices.Clone(s.layers)
}

func (s *Store) Len() int {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	return len(s.layers)
}

// Settings returns the saved visibility and volume of every layer.
func (s *Store) Settings() []Setting {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	out := make([]Setting, len(s.layers))
	for i, l := range s.layers {
		out[i] = Setting{ID: l.ID, Visible: l.Visible, Volume: l.Volume}
	}

	return out
}

// ApplySettings saves visibility and volume from settings into the
// matching layers and returns how many settings matched. Settings for
// unknown ids are skipped. Volumes are validated before anything is
// written, so an invalid setting leaves the store unchanged.
func (s *Store) ApplySettings(settings []Setting) (int, error) {
	for _, st := range settings {
		if !utils.IsFinite(st.Volume) {
			return 0, fmt.Errorf("%w: layer %s: %v", ErrInvalidVolume, st.ID, st.Volume)
		}
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	applied := 0
	for _, st := range settings {
		i := s.find(st.ID)
		if i < 0 {
			continue
		}
		s.layers[i].Visible = st.Visible
		s.layers[i].Volume = st.Volume
		applied++
	}

	return applied, nil
}

func (s *Store) update(id LayerID, fn func(*Layer)) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	i := s.find(id)
	if i < 0 {
		return s.notFound(id)
	}
	fn(&s.layers[i])

	return nil
}

func (s *Store) checkOffset(frames int) error {
	if frames < 0 || frames > s.maxOffset {
		return fmt.Errorf("%w: %d not in 0..%d", ErrInvalidOffset, frames, s.maxOffset)
	}

	return nil
}

func (s *Store) markDeleted() {
	s.mtx.Lock()
	s.deleted = true
	s.mtx.Unlock()
}

// find must be called with the lock held.
func (s *Store) find(id LayerID) int {
	return slices.IndexFunc(s.layers, func(l Layer) bool { return l.ID == id })
}

func (s *Store) notFound(id LayerID) error {
	return fmt.Errorf("%w: %s in project %q", ErrLayerNotFound, id, s.name)
}
