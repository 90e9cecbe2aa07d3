// SPDX-License-Identifier: EPL-2.0

package server

import (
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ik5/bobwave"
	"github.com/ik5/bobwave/codec"
	"github.com/ik5/bobwave/internal/logger"
	"github.com/ik5/bobwave/mix"
	"github.com/ik5/bobwave/project"
	"github.com/ik5/bobwave/utils"
)

// Handlers contains the dependencies needed by the API handlers.
type Handlers struct {
	engine *bobwave.Engine
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(engine *bobwave.Engine) *Handlers {
	return &Handlers{engine: engine}
}

// Upload accepts a recording as a base64 data URL and stores it as a new
// layer. The client's id is kept as the layer name.
func (h *Handlers) Upload(c *gin.Context) {
	var req uploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	header, payload, ok := strings.Cut(req.Audio, ",")
	if !ok || !strings.HasPrefix(header, "data:") {
		badRequest(c, "audio must be a data URL")
		return
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		badRequest(c, "audio is not valid base64: "+err.Error())
		return
	}

	l, err := h.engine.IngestLayer(req.Project, bobwave.IngestRequest{
		Data:   data,
		Format: codec.ParseFormat(header),
		Name:   string(req.ID),
	})
	if err != nil {
		logger.Info("Upload to %q rejected: %v", req.Project, err)
		respondError(c, err)
		return
	}

	logger.Info("Project %q: added layer %s (%s)", req.Project, l.ID, l.Audio.Duration())

	c.JSON(http.StatusCreated, uploadResponse{
		layerResponse: toLayerResponse(l),
		ClientID:      string(req.ID),
		Project:       req.Project,
	})
}

// Save mixes the project with the posted settings and returns the result
// as a download.
func (h *Handlers) Save(c *gin.Context) {
	var req settingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	data, err := h.export(req.Project, req.Settings)
	if errors.Is(err, mix.ErrNoLayersSelected) {
		c.String(http.StatusBadRequest, "No layers selected!")
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	sendAudio(c, req.Project+".wave", h.engine.ExportFormat(), data)
}

// Health reports that the server is up.
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Formats describes what the engine accepts and produces.
func (h *Handlers) Formats(c *gin.Context) {
	formats := h.engine.Formats()
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = f.String()
	}

	layout := h.engine.Layout()
	c.JSON(http.StatusOK, gin.H{
		"formats":       names,
		"export_format": h.engine.ExportFormat().String(),
		"sample_rate":   layout.SampleRate,
		"channels":      layout.Channels,
		"max_layers":    h.engine.MaxLayers(),
		"max_offset":    h.engine.MaxOffset(),
	})
}

// ListProjects returns the names of all projects.
func (h *Handlers) ListProjects(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.engine.Projects()})
}

// CreateProject creates an empty project.
func (h *Handlers) CreateProject(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := h.engine.CreateProject(req.Name); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"name": req.Name})
}

// DeleteProject drops a project and its layers.
func (h *Handlers) DeleteProject(c *gin.Context) {
	name := c.Param("project")
	if err := h.engine.DeleteProject(name); err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Project %q deleted", name)
	c.Status(http.StatusNoContent)
}

// ListLayers returns a project's layers in mix order.
func (h *Handlers) ListLayers(c *gin.Context) {
	layers, err := h.engine.Layers(c.Param("project"))
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]layerResponse, len(layers))
	for i, l := range layers {
		out[i] = toLayerResponse(l)
	}

	c.JSON(http.StatusOK, gin.H{"data": out})
}

// CreateLayer stores the raw request body as a new layer. The format comes
// from the format query parameter or the Content-Type header; detection
// from the content takes precedence over both.
func (h *Handlers) CreateLayer(c *gin.Context) {
	offset := 0
	if v := c.Query("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			badRequest(c, "offset must be an integer")
			return
		}
		offset = n
	}

	declared := codec.ParseFormat(c.Query("format"))
	if declared == codec.FormatUnknown {
		declared = codec.ParseFormat(c.ContentType())
	}

	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		respondError(c, err)
		return
	}

	name := c.Param("project")
	l, err := h.engine.IngestLayer(name, bobwave.IngestRequest{
		Data:   data,
		Format: declared,
		Name:   c.Query("name"),
		Offset: offset,
	})
	if err != nil {
		logger.Info("Upload to %q rejected: %v", name, err)
		respondError(c, err)
		return
	}

	logger.Info("Project %q: added layer %s (%s)", name, l.ID, l.Audio.Duration())
	c.JSON(http.StatusCreated, toLayerResponse(l))
}

// GetLayer returns a single layer.
func (h *Handlers) GetLayer(c *gin.Context) {
	id, ok := layerIDParam(c)
	if !ok {
		return
	}

	l, err := h.engine.Layer(c.Param("project"), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toLayerResponse(l))
}

// UpdateLayer applies a partial update to a layer. All fields are checked
// before any is applied, and they are applied together.
func (h *Handlers) UpdateLayer(c *gin.Context) {
	id, ok := layerIDParam(c)
	if !ok {
		return
	}

	var req layerPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if req.Name == nil && req.Volume == nil && req.Visible == nil && req.Offset == nil {
		badRequest(c, "At least one field (name, volume, visible or offset) is required")
		return
	}

	l, err := h.engine.UpdateLayer(c.Param("project"), id, req.toPatch())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toLayerResponse(l))
}

// DeleteLayer removes a layer from its project.
func (h *Handlers) DeleteLayer(c *gin.Context) {
	id, ok := layerIDParam(c)
	if !ok {
		return
	}

	if err := h.engine.RemoveLayer(c.Param("project"), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetSettings returns the saved visibility and volume of every layer.
func (h *Handlers) GetSettings(c *gin.Context) {
	layers, err := h.engine.Layers(c.Param("project"))
	if err != nil {
		respondError(c, err)
		return
	}

	settings := make([]project.Setting, len(layers))
	for i, l := range layers {
		settings[i] = project.Setting{ID: l.ID, Visible: l.Visible, Volume: l.Volume}
	}

	c.JSON(http.StatusOK, gin.H{"data": toSettingResponses(settings)})
}

// UpdateSettings saves visibility and volume for the listed layers.
func (h *Handlers) UpdateSettings(c *gin.Context) {
	var req settingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	name := c.Param("project")
	settings, err := h.resolveSettings(name, req.Settings)
	if err != nil {
		respondError(c, err)
		return
	}

	applied, err := h.engine.SaveSettings(name, settings)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"applied": applied})
}

// Export mixes the project with the posted settings without saving them.
func (h *Handlers) Export(c *gin.Context) {
	var req settingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	name := c.Param("project")
	data, err := h.export(name, req.Settings)
	if err != nil {
		respondError(c, err)
		return
	}

	sendAudio(c, name+h.engine.ExportFormat().Extension(), h.engine.ExportFormat(), data)
}

// ExportSaved mixes the project with its saved settings.
func (h *Handlers) ExportSaved(c *gin.Context) {
	name := c.Param("project")
	data, err := h.engine.ExportSaved(name)
	if err != nil {
		respondError(c, err)
		return
	}

	sendAudio(c, name+h.engine.ExportFormat().Extension(), h.engine.ExportFormat(), data)
}

func (h *Handlers) export(name string, reqs []settingRequest) ([]byte, error) {
	settings, err := h.resolveSettings(name, reqs)
	if err != nil {
		return nil, err
	}

	data, err := h.engine.Export(name, settings)
	if err != nil {
		return nil, err
	}

	logger.Debug("Project %q: exported %d bytes from %d settings", name, len(data), len(settings))

	return data, nil
}

// resolveSettings maps request ids to layer ids. An id that is not a layer
// id is matched against layer names, the most recent layer winning, so
// clients can refer to layers by the label they uploaded them with. Ids
// that match nothing are passed through and ignored by the engine.
func (h *Handlers) resolveSettings(name string, reqs []settingRequest) ([]project.Setting, error) {
	layers, err := h.engine.Layers(name)
	if err != nil {
		layers = nil
	}

	byName := make(map[string]project.LayerID, len(layers))
	for _, l := range layers {
		if l.Name != "" {
			byName[l.Name] = l.ID
		}
	}

	settings := make([]project.Setting, 0, len(reqs))
	for _, r := range reqs {
		volume := float64(r.Volume)
		if !utils.IsFinite(volume) {
			return nil, project.ErrInvalidVolume
		}

		id, err := project.ParseLayerID(string(r.ID))
		if err != nil {
			var found bool
			if id, found = byName[string(r.ID)]; !found {
				id = project.LayerID(r.ID)
			}
		}

		settings = append(settings, project.Setting{ID: id, Visible: r.Visible, Volume: volume})
	}

	return settings, nil
}

func layerIDParam(c *gin.Context) (project.LayerID, bool) {
	id, err := project.ParseLayerID(c.Param("id"))
	if err != nil {
		badRequest(c, "Invalid layer ID")
		return "", false
	}

	return id, true
}
