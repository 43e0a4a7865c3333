package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/clippings/internal/kindle"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies, improving testability
// and reducing parameter count.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	parser := cfg.Parser
	if parser == nil {
		parser = kindle.NewParser()
	}

	health := NewHealthController(cfg.Health, cfg.Sync, cfg.Version)
	clippings := NewClippingsController(parser, cfg.Store, cfg.Template, cfg.Delimiter, cfg.MaxUploadSize)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	api := router.Group("/api")

	// Stateless endpoints
	api.POST("/clippings/parse", clippings.Parse)
	api.POST("/clippings/render", clippings.Render)

	// Persistence endpoints
	if cfg.Store != nil {
		api.POST("/clippings/import", clippings.Import)
		api.GET("/entries", clippings.ListEntries)
		api.GET("/imports", clippings.ListImports)
		api.GET("/imports/:id", clippings.GetImport)
	}

	if cfg.Sync != nil {
		sync := NewSyncController(cfg.Sync)
		api.GET("/sync", sync.Status)
		api.POST("/sync/run", sync.RunNow)
	}

	return router
}
