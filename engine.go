// SPDX-License-Identifier: EPL-2.0

package bobwave

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/ik5/bobwave/audio"
	"github.com/ik5/bobwave/codec"
	"github.com/ik5/bobwave/mix"
	"github.com/ik5/bobwave/project"
	"github.com/ik5/bobwave/utils"
)

// DefaultMaxLayers is the number of layers a project may hold when Options
// does not say otherwise.
const DefaultMaxLayers = 5

// Options configures an Engine. Zero values select the defaults.
type Options struct {
	// Layout of canonical PCM. Defaults to audio.CD.
	Layout audio.Layout
	// MaxLayers caps layers per project at ingest. Zero means
	// DefaultMaxLayers and Unlimited disables the cap.
	MaxLayers int
	// ExportFormat defaults to codec.FormatWAV.
	ExportFormat codec.Format
	// MaxOffset bounds how late a layer may start. Defaults to
	// DefaultMaxOffset.
	MaxOffset time.Duration
}

// DefaultMaxOffset is the latest start of a layer when Options does not
// say otherwise.
const DefaultMaxOffset = 10 * time.Minute

// Unlimited disables the per-project layer cap.
const Unlimited = -1

// IngestRequest is one upload to turn into a layer.
type IngestRequest struct {
	Data   []byte
	Format codec.Format
	Name   string
	// Offset is the start of the layer in the mix, in frames.
	Offset int
}

// Engine is the entry point for ingesting recordings into projects and
// exporting their mix. It is safe for concurrent use.
type Engine struct {
	codec        *codec.Adapter
	projects     *project.Registry
	maxLayers    int
	maxOffset    int
	exportFormat codec.Format
}

func New(opts Options) (*Engine, error) {
	if opts.Layout == (audio.Layout{}) {
		opts.Layout = audio.CD
	}
	if opts.ExportFormat == codec.FormatUnknown {
		opts.ExportFormat = codec.FormatWAV
	}
	if opts.ExportFormat != codec.FormatWAV {
		return nil, fmt.Errorf("%w: %s", codec.ErrUnsupportedFormat, opts.ExportFormat)
	}

	switch {
	case opts.MaxLayers == 0:
		opts.MaxLayers = DefaultMaxLayers
	case opts.MaxLayers == Unlimited:
		opts.MaxLayers = 0
	case opts.MaxLayers < 0:
		return nil, fmt.Errorf("%w: %d", ErrInvalidMaxLayers, opts.MaxLayers)
	}

	if opts.MaxOffset == 0 {
		opts.MaxOffset = DefaultMaxOffset
	}
	if opts.MaxOffset < 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMaxOffset, opts.MaxOffset)
	}

	adapter, err := codec.New(opts.Layout)
	if err != nil {
		return nil, err
	}

	frames := opts.MaxOffset.Seconds() * float64(opts.Layout.SampleRate)
	if frames < 1 || frames > float64(math.MaxInt32/opts.Layout.Channels) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMaxOffset, opts.MaxOffset)
	}
	maxOffset := int(frames)

	return &Engine{
		codec:        adapter,
		projects:     project.NewRegistry(project.WithMaxOffset(maxOffset)),
		maxLayers:    opts.MaxLayers,
		maxOffset:    maxOffset,
		exportFormat: opts.ExportFormat,
	}, nil
}

func (e *Engine) Layout() audio.Layout { return e.codec.Layout() }

func (e *Engine) ExportFormat() codec.Format { return e.exportFormat }

// MaxLayers returns the per-project cap, 0 when uncapped.
func (e *Engine) MaxLayers() int { return e.maxLayers }

// MaxOffset returns the latest frame a layer may start at.
func (e *Engine) MaxOffset() int { return e.maxOffset }

// Formats lists the formats Ingest can decode.
func (e *Engine) Formats() []codec.Format { return e.codec.Formats() }

// Ingest decodes data and appends it to the project as a new layer,
// creating the project if needed.
func (e *Engine) Ingest(projectName string, data []byte, declared codec.Format) (project.LayerID, error) {
	l, err := e.IngestLayer(projectName, IngestRequest{Data: data, Format: declared})
	if err != nil {
		return "", err
	}

	return l.ID, nil
}

// IngestLayer is Ingest with a layer name and start offset. Nothing is
// created when decoding fails or the project is full.
func (e *Engine) IngestLayer(projectName string, req IngestRequest) (project.Layer, error) {
	if req.Offset < 0 || req.Offset > e.maxOffset {
		return project.Layer{}, fmt.Errorf("%w: %d not in 0..%d", project.ErrInvalidOffset, req.Offset, e.maxOffset)
	}

	// Skip decoding when the project is already full.
	if s, err := e.projects.Lookup(projectName); err == nil && e.maxLayers > 0 && s.Len() >= e.maxLayers {
		return project.Layer{}, fmt.Errorf("%w: %q holds %d", project.ErrLayerLimit, projectName, s.Len())
	}

	buf, err := e.codec.Decode(req.Data, req.Format)
	if err != nil {
		return project.Layer{}, err
	}

	store, err := e.projects.GetOrCreate(projectName)
	if err != nil {
		return project.Layer{}, err
	}

	return store.Insert(project.NewLayer{Name: req.Name, Audio: buf, Offset: req.Offset}, e.maxLayers)
}

// Export mixes the layers named in settings, using the settings'
// visibility and volume, and encodes the result. Settings are not saved.
// A project that does not exist has no layers to select.
func (e *Engine) Export(projectName string, settings []project.Setting) ([]byte, error) {
	for _, s := range settings {
		if !utils.IsFinite(s.Volume) {
			return nil, fmt.Errorf("%w: layer %s: %v", project.ErrInvalidVolume, s.ID, s.Volume)
		}
	}

	layers, err := e.snapshot(projectName)
	if err != nil {
		return nil, err
	}

	buf, err := mix.Mix(layers, settings)
	if err != nil {
		return nil, err
	}

	return e.codec.Encode(buf, e.exportFormat)
}

// ExportSaved mixes the project with each layer's saved state.
func (e *Engine) ExportSaved(projectName string) ([]byte, error) {
	layers, err := e.snapshot(projectName)
	if err != nil {
		return nil, err
	}

	buf, err := mix.Saved(layers)
	if err != nil {
		return nil, err
	}

	return e.codec.Encode(buf, e.exportFormat)
}

func (e *Engine) snapshot(projectName string) ([]project.Layer, error) {
	s, err := e.projects.Lookup(projectName)
	if errors.Is(err, project.ErrProjectNotFound) {
		return nil, fmt.Errorf("%w: %w", mix.ErrNoLayersSelected, err)
	}
	if err != nil {
		return nil, err
	}

	return s.ListLayers(), nil
}

// SaveSettings stores visibility and volume on the project's layers and
// returns how many settings matched a layer.
func (e *Engine) SaveSettings(projectName string, settings []project.Setting) (int, error) {
	s, err := e.projects.Lookup(projectName)
	if err != nil {
		return 0, err
	}

	return s.ApplySettings(settings)
}

// Layers returns a snapshot of the project's layers.
func (e *Engine) Layers(projectName string) ([]project.Layer, error) {
	s, err := e.projects.Lookup(projectName)
	if err != nil {
		return nil, err
	}

	return s.ListLayers(), nil
}

// Layer returns a snapshot of one layer.
func (e *Engine) Layer(projectName string, id project.LayerID) (project.Layer, error) {
	s, err := e.projects.Lookup(projectName)
	if err != nil {
		return project.Layer{}, err
	}

	return s.Layer(id)
}

func (e *Engine) RemoveLayer(projectName string, id project.LayerID) error {
	return e.withStore(projectName, func(s *project.Store) error { return s.RemoveLayer(id) })
}

func (e *Engine) SetVisibility(projectName string, id project.LayerID, visible bool) error {
	return e.withStore(projectName, func(s *project.Store) error { return s.SetVisibility(id, visible) })
}

func (e *Engine) SetGain(projectName string, id project.LayerID, volume float64) error {
	return e.withStore(projectName, func(s *project.Store) error { return s.SetGain(id, volume) })
}

func (e *Engine) SetOffset(projectName string, id project.LayerID, frames int) error {
	return e.withStore(projectName, func(s *project.Store) error { return s.SetOffset(id, frames) })
}

// UpdateLayer applies patch to one layer atomically and returns the result.
func (e *Engine) UpdateLayer(projectName string, id project.LayerID, patch project.LayerPatch) (project.Layer, error) {
	s, err := e.projects.Lookup(projectName)
	if err != nil {
		return project.Layer{}, err
	}

	return s.Patch(id, patch)
}

func (e *Engine) RenameLayer(projectName string, id project.LayerID, name string) error {
	return e.withStore(projectName, func(s *project.Store) error { return s.Rename(id, name) })
}

func (e *Engine) withStore(projectName string, fn func(*project.Store) error) error {
	s, err := e.projects.Lookup(projectName)
	if err != nil {
		return err
	}

	return fn(s)
}

// Projects returns the names of all projects, sorted.
func (e *Engine) Projects() []string { return e.projects.Names() }

// CreateProject makes an empty project. Creating an existing project is
// not an error.
func (e *Engine) CreateProject(name string) error {
	_, err := e.projects.GetOrCreate(name)
	return err
}

func (e *Engine) DeleteProject(name string) error { return e.projects.Delete(name) }
