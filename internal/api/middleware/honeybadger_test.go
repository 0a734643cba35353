package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
)

func TestReportable(t *testing.T) {
	assert.False(t, reportable(http.StatusOK))
	assert.False(t, reportable(http.StatusCreated))
	assert.False(t, reportable(http.StatusNotFound))
	assert.False(t, reportable(http.StatusServiceUnavailable))
	assert.True(t, reportable(http.StatusBadRequest))
	assert.True(t, reportable(http.StatusInternalServerError))
}

func TestHoneybadgerMiddleware_DisabledWithoutKey(t *testing.T) {
	t.Setenv("HONEYBADGER_API_KEY", "")
	logger, hook := test.NewNullLogger()

	r := gin.New()
	r.Use(HoneybadgerMiddleware(logger))
	r.GET("/test", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	if assert.NotNil(t, hook.LastEntry()) {
		assert.Contains(t, hook.LastEntry().Message, "Honeybadger is not active")
	}
}
