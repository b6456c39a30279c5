// internal/api/router.go
package api

import (
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/textlens/TextLensHub/internal/config"
	"github.com/textlens/TextLensHub/internal/di"
	"github.com/textlens/TextLensHub/internal/services"
)

// SetupRouter configures the HTTP routes. Services are only fetched
// from the container, never created here.
func SetupRouter(cfg *config.Config) (*gin.Engine, error) {
	container := di.GetContainer()

	analysisService, ok := container.Get("analysis").(*services.AnalysisService)
	if !ok {
		return nil, fmt.Errorf("analysis service not initialized")
	}

	exportService, ok := container.Get("export").(*services.ExportService)
	if !ok {
		return nil, fmt.Errorf("export service not initialized")
	}

	statsService, ok := container.Get("stats").(*services.StatsService)
	if !ok {
		return nil, fmt.Errorf("stats service not initialized")
	}

	hub := NewActivityHub()
	analysisService.SetNotifier(hub)

	handler := NewHandler(analysisService, exportService, statsService, hub)

	if !cfg.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.Use(CORSMiddleware())
	r.Use(RequestIDMiddleware())
	r.Use(RequestLogMiddleware())

	// HTTPS redirect behind a proxy (production only).
	if !cfg.DebugMode {
		r.Use(func(c *gin.Context) {
			if c.Request.Header.Get("X-Forwarded-Proto") == "http" {
				c.Redirect(http.StatusPermanentRedirect,
					"https://"+c.Request.Host+c.Request.URL.Path)
				return
			}
			c.Next()
		})
	}

	r.Static("/static", cfg.StaticDir)
	r.LoadHTMLGlob(filepath.Join(cfg.TemplatesDir, "*.html"))

	r.GET("/", handler.IndexPage)
	r.GET("/ws/activity", handler.ActivityWebSocket)

	api := r.Group("/api")
	{
		api.POST("/analyze/:kind", handler.AnalyzeText)
		api.POST("/export/:kind", handler.ExportResult)
		api.GET("/stats", handler.GetStats)
		api.GET("/health", handler.GetHealth)
	}

	return r, nil
}
