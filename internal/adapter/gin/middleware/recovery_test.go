package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRecovery_ContainsPanic(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.InfoLevel)

	r := gin.New()
	r.Use(Recovery(zap.New(core)))
	r.GET("/boom", func(c *gin.Context) {
		panic("kaboom")
	})
	r.GET("/ok", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error": "Internal server error."}`, w.Body.String())
	assert.NotContains(t, w.Body.String(), "kaboom", "fault detail must not leak to the client")

	// The fault is logged with its value before the response is written.
	entries := logs.FilterMessage("panic recovered").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "kaboom", entries[0].ContextMap()["panic"])
	assert.Equal(t, "/boom", entries[0].ContextMap()["path"])

	// The engine keeps serving after a contained fault.
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, httptest.NewRequest("GET", "/ok", nil))
	assert.Equal(t, http.StatusOK, w2.Code)
	assert.Equal(t, "ok", w2.Body.String())
}

func TestRecovery_PassesHealthyRequestsThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.InfoLevel)

	r := gin.New()
	r.Use(Recovery(zap.New(core)))
	r.GET("/ok", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/ok", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
	assert.Zero(t, logs.FilterMessage("panic recovered").Len())
}

func TestRecovery_ContainsPanicsFromLaterStages(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, _ := observer.New(zap.InfoLevel)

	faulty := func(c *gin.Context) {
		panic("stage fault")
	}

	r := gin.New()
	r.Use(Recovery(zap.New(core)), faulty)
	r.GET("/users", func(c *gin.Context) {
		c.String(http.StatusOK, "unreachable")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/users", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error": "Internal server error."}`, w.Body.String())
}
