package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiterInMemory(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter := NewRateLimiter(nil, 2)

	router := gin.New()
	router.Use(limiter.Limit())
	router.POST("/generate", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/generations", func(c *gin.Context) { c.Status(http.StatusOK) })

	post := func() int {
		req := httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader("{}"))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, post())
	assert.Equal(t, http.StatusOK, post())
	assert.Equal(t, http.StatusTooManyRequests, post())

	// Reads are never limited.
	req := httptest.NewRequest(http.MethodGet, "/generations", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimiterDisabled(t *testing.T) {
	assert.Nil(t, NewRateLimiter(nil, 0))
}
