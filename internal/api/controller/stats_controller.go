package controller

import (
	"net/http"

	"github.com/bassista/go_items/internal/cache"
	"github.com/bassista/go_items/internal/logger"
	"github.com/gin-gonic/gin"
)

// StatsController serves the cached item stats.
type StatsController struct {
	stats cache.StatsReader
}

func NewStatsController(stats cache.StatsReader) *StatsController {
	return &StatsController{stats: stats}
}

// GetStats handles GET /stats. It never reads the data file; when no snapshot is
// available it asks for a background recompute and answers 503.
func (sc *StatsController) GetStats(c *gin.Context) {
	snap, ok := sc.stats.Get()
	if !ok {
		status := sc.stats.Status()
		logger.WithComponent("stats-controller").Debugf("stats %s (last error: %v), triggering recompute", status.State, status.LastError)
		sc.stats.TriggerRecompute()
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Stats not available. Try again later."})
		return
	}
	c.JSON(http.StatusOK, snap)
}
