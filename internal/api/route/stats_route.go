package route

import (
	"time"

	"github.com/bassista/go_items/internal/api/controller"
	"github.com/bassista/go_items/internal/api/middleware"
	"github.com/bassista/go_items/internal/cache"
	"github.com/gin-gonic/gin"
)

func NewStatsRouter(timeout time.Duration, group *gin.RouterGroup, stats cache.StatsReader) {
	sc := controller.NewStatsController(stats)

	group.GET("stats", middleware.RequestTimeout(timeout), sc.GetStats)
}
