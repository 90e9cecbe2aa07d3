// SPDX-License-Identifier: EPL-2.0

package server

import (
	"errors"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ik5/bobwave"
	"github.com/ik5/bobwave/codec"
	"github.com/ik5/bobwave/internal/logger"
	"github.com/ik5/bobwave/mix"
	"github.com/ik5/bobwave/project"
)

// ErrorResponse represents a standard error response format.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func abortWithError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: code, Message: message})
}

// badRequest responds with a 400 Bad Request status and error message.
func badRequest(c *gin.Context, message string) {
	abortWithError(c, http.StatusBadRequest, "bad_request", message)
}

// bindError responds to a failed request body bind.
func bindError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		respondError(c, err)
		return
	}

	badRequest(c, "Invalid request body: "+err.Error())
}

// respondError maps engine errors to HTTP statuses.
func respondError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError

	switch {
	case errors.As(err, &tooLarge):
		abortWithError(c, http.StatusRequestEntityTooLarge, "payload_too_large", err.Error())
	case errors.Is(err, codec.ErrUnsupportedOrCorrupt):
		abortWithError(c, http.StatusBadRequest, "unsupported_audio", err.Error())
	case errors.Is(err, mix.ErrNoLayersSelected):
		abortWithError(c, http.StatusBadRequest, "no_layers_selected", "No layers selected!")
	case errors.Is(err, project.ErrLayerNotFound), errors.Is(err, project.ErrProjectNotFound):
		abortWithError(c, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, project.ErrLayerLimit):
		abortWithError(c, http.StatusConflict, "layer_limit", err.Error())
	case errors.Is(err, project.ErrInvalidVolume),
		errors.Is(err, project.ErrInvalidOffset),
		errors.Is(err, project.ErrInvalidLayerID),
		errors.Is(err, project.ErrInvalidProjectName),
		errors.Is(err, mix.ErrTimelineTooLong),
		errors.Is(err, bobwave.ErrInvalidMaxLayers):
		badRequest(c, err.Error())
	default:
		logger.Error("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		abortWithError(c, http.StatusInternalServerError, "internal_server_error", "internal server error")
	}
}

// sendAudio responds with encoded audio as a file download.
func sendAudio(c *gin.Context, filename string, format codec.Format, data []byte) {
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	c.Data(http.StatusOK, format.MIMEType(), data)
}
