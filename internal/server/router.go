// SPDX-License-Identifier: EPL-2.0

// Package server exposes the engine over HTTP.
//
// The legacy /upload and /save routes keep the request shapes of the
// browser recorder. Everything else lives under /api/v1.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ik5/bobwave"
	"github.com/ik5/bobwave/internal/config"
)

// SetupRouter configures and returns the main router with all routes and
// middleware.
func SetupRouter(engine *bobwave.Engine, cfg *config.Config) *gin.Engine {
	h := NewHandlers(engine)

	// Set Gin mode based on environment
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	if !cfg.IsProduction() {
		r.Use(gin.Logger())
	}
	r.Use(bodyLimit(cfg.Server.MaxUploadBytes))

	r.GET("/healthz", h.Health)

	// Routes used by the recorder page
	r.POST("/upload", h.Upload)
	r.POST("/save", h.Save)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/formats", h.Formats)

		v1.GET("/projects", h.ListProjects)
		v1.POST("/projects", h.CreateProject)
		v1.DELETE("/projects/:project", h.DeleteProject)

		p := v1.Group("/projects/:project")
		{
			p.GET("/layers", h.ListLayers)
			p.POST("/layers", h.CreateLayer)
			p.GET("/layers/:id", h.GetLayer)
			p.PATCH("/layers/:id", h.UpdateLayer)
			p.DELETE("/layers/:id", h.DeleteLayer)

			p.GET("/settings", h.GetSettings)
			p.PUT("/settings", h.UpdateSettings)

			p.POST("/export", h.Export)
			p.GET("/export", h.ExportSaved)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		abortWithError(c, http.StatusNotFound, "not_found", "route not found")
	})

	return r
}

// bodyLimit caps request bodies at limit bytes. Reads past the limit fail
// with *http.MaxBytesError.
func bodyLimit(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limit > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		}
		c.Next()
	}
}
