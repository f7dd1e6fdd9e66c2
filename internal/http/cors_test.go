package http

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCreateCORSMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name    string
		enabled bool
		origins string
		wantNil bool
	}{
		{name: "disabled", enabled: false, origins: "https://backoffice.example.com", wantNil: true},
		{name: "enabled without origins", enabled: true, origins: "", wantNil: true},
		{name: "enabled with only separators", enabled: true, origins: " , ,", wantNil: true},
		{name: "single origin", enabled: true, origins: "https://backoffice.example.com", wantNil: false},
		{
			name:    "several origins with whitespace",
			enabled: true,
			origins: " https://backoffice.example.com , https://enrol.example.com ",
			wantNil: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			middleware := createCORSMiddleware(tt.enabled, tt.origins, logger)
			if tt.wantNil {
				assert.Nil(t, middleware)
			} else {
				assert.NotNil(t, middleware)
			}
		})
	}
}

func TestParseOrigins(t *testing.T) {
	assert.Nil(t, parseOrigins(""))
	assert.Empty(t, parseOrigins(",,"))
	assert.Equal(t,
		[]string{"https://backoffice.example.com", "https://enrol.example.com"},
		parseOrigins(" https://backoffice.example.com ,https://enrol.example.com,"),
	)
}

func corsRouter(enabled bool) *gin.Engine {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := gin.New()
	if middleware := createCORSMiddleware(enabled, "https://backoffice.example.com", logger); middleware != nil {
		router.Use(middleware)
	}
	router.PUT("/v1/agents/:id", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/v1/agents", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

func TestCORS_Headers(t *testing.T) {
	t.Run("allowed origin receives headers", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/agents", nil)
		req.Header.Set("Origin", "https://backoffice.example.com")
		corsRouter(true).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "https://backoffice.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("disabled sends no headers", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/agents", nil)
		req.Header.Set("Origin", "https://backoffice.example.com")
		corsRouter(false).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight for profile update", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodOptions, "/v1/agents/abc", nil)
		req.Header.Set("Origin", "https://backoffice.example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodPut)
		corsRouter(true).ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPut)
	})
}
