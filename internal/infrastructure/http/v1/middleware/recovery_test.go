package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"basekit/pkg/logger"
)

func TestRecovery_PanicBecomesInternalError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	log, err := logger.New(logger.Config{Level: "error"})
	require.NoError(t, err)

	router := gin.New()
	router.Use(Recovery(log))
	router.Use(ErrorHandler())
	router.GET("/boom", func(c *gin.Context) {
		panic("kaboom: secret detail")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "kaboom", "panic details must not reach the client")
}

func TestRecovery_PassesThroughNormally(t *testing.T) {
	gin.SetMode(gin.TestMode)

	log, err := logger.New(logger.Config{Level: "error"})
	require.NoError(t, err)

	router := gin.New()
	router.Use(Recovery(log))
	router.GET("/ok", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}
