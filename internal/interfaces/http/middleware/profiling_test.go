package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestProfilingMiddleware_RunsHandler(t *testing.T) {
	tests := []struct {
		name string
		cfg  ProfilingConfig
		path string
	}{
		{"disabled", ProfilingConfig{Enabled: false}, "/api/v1/inventory/"},
		{"enabled", DefaultProfilingConfig(), "/api/v1/inventory/"},
		{"skipped path", DefaultProfilingConfig(), "/health"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			r := gin.New()
			r.Use(ProfilingWithConfig(tt.cfg))
			handler := func(c *gin.Context) {
				called = true
				c.Status(http.StatusOK)
			}
			r.GET("/api/v1/inventory/", handler)
			r.GET("/health", handler)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.True(t, called)
			assert.Equal(t, http.StatusOK, w.Code)
		})
	}
}

func TestExtractControllerFromRoute(t *testing.T) {
	tests := map[string]string{
		"/api/v1/inventory/:id":                "inventory",
		"/api/v1/integration/sync/content/:id": "integration",
		"/api/v2/batches/:id/attendance":       "batches",
		"/health":                              "health",
		"/api/v1/":                             "",
		"":                                     "",
	}
	for route, want := range tests {
		assert.Equal(t, want, extractControllerFromRoute(route), route)
	}
}

func TestIsVersionSegment(t *testing.T) {
	assert.True(t, isVersionSegment("v1"))
	assert.True(t, isVersionSegment("V12"))
	assert.False(t, isVersionSegment("v"))
	assert.False(t, isVersionSegment("video"))
	assert.False(t, isVersionSegment("inventory"))
}
