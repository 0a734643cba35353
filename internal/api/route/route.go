package route

import (
	"net/http"

	"github.com/bassista/go_items/internal/api/middleware"
	"github.com/bassista/go_items/internal/app"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// SetupRoutes builds the main engine: middleware chain, /health, the /api group
// and a JSON catch-all 404.
func SetupRoutes(appCtx *app.App, logger *logrus.Logger) *gin.Engine {
	r := gin.New()
	// Recovery wraps Honeybadger so panics are reported before being turned into a 500.
	r.Use(gin.Recovery())
	r.Use(middleware.HoneybadgerMiddleware(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORSMiddleware(appCtx.Config.Server.CORSAllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "UP",
			"stats":   appCtx.Stats.Status().State.String(),
		})
	})

	api := r.Group("/api")
	timeout := appCtx.Config.Server.RequestTimeout

	NewItemRouter(timeout, api, appCtx.Repo, appCtx.Config.Data)
	NewStatsRouter(timeout, api, appCtx.Stats)
	NewConfigurationRouter(timeout, api, appCtx.Config)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	return r
}
