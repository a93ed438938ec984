package router

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/promptviz/backend/config"
	"github.com/promptviz/backend/internal/handler"
	"github.com/promptviz/backend/internal/middleware"
)

func Setup(
	cfg *config.Config,
	diagramHandler *handler.DiagramHandler,
	promptHandler *handler.PromptHandler,
	catalogHandler *handler.CatalogHandler,
	healthHandler *handler.HealthHandler,
	configHandler *handler.ConfigHandler,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLog())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// API 响应启用 gzip 压缩
	r.Use(gzip.Gzip(gzip.BestCompression))

	api := r.Group("/api")
	{
		healthHandler.RegisterRoutes(api)
		diagramHandler.RegisterRoutes(api)
		promptHandler.RegisterRoutes(api)
		catalogHandler.RegisterRoutes(api)
		configHandler.RegisterRoutes(api)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	return r
}
