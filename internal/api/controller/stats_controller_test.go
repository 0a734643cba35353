package controller

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/bassista/go_items/internal/cache"
	"github.com/bassista/go_items/internal/repository"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockStats struct {
	snap      cache.Snapshot
	ok        bool
	triggered int
}

func (m *mockStats) Get() (cache.Snapshot, bool) { return m.snap, m.ok }
func (m *mockStats) Status() cache.Status {
	if m.ok {
		return cache.Status{State: cache.StateReady}
	}
	return cache.Status{State: cache.StateAbsent, LastError: repository.ErrStoreUnavailable}
}
func (m *mockStats) TriggerRecompute() { m.triggered++ }

func statsRouter(stats cache.StatsReader) *gin.Engine {
	r := gin.New()
	r.GET("/api/stats", NewStatsController(stats).GetStats)
	return r
}

func TestGetStats_Ready(t *testing.T) {
	stats := &mockStats{snap: cache.Snapshot{Total: 2, AveragePrice: 150}, ok: true}

	w := do(statsRouter(stats), http.MethodGet, "/api/stats", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"total":2,"averagePrice":150}`, w.Body.String())
	assert.Zero(t, stats.triggered)
}

func TestGetStats_EmptyCollection(t *testing.T) {
	stats := &mockStats{snap: cache.Snapshot{}, ok: true}

	w := do(statsRouter(stats), http.MethodGet, "/api/stats", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"total":0,"averagePrice":0}`, w.Body.String())
}

func TestGetStats_AbsentTriggersRecompute(t *testing.T) {
	stats := &mockStats{}

	w := do(statsRouter(stats), http.MethodGet, "/api/stats", "")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotEmpty(t, body["error"])
	assert.Equal(t, 1, stats.triggered)
}
