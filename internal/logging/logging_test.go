package logging

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"gradesheets/internal/config"
)

func TestNew(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		logger, err := New(config.LogConfig{Level: "debug", Format: format})
		if err != nil {
			t.Fatalf("New(%s) failed: %v", format, err)
		}
		if !logger.Core().Enabled(zap.DebugLevel) {
			t.Fatalf("debug level not enabled for %s", format)
		}
	}

	if _, err := New(config.LogConfig{Level: "loud"}); err == nil {
		t.Fatalf("expected invalid level error")
	}
}

func TestGinMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	core, logs := observer.New(zap.InfoLevel)
	r := gin.New()
	r.Use(GinMiddleware(zap.New(core)))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/bad", func(c *gin.Context) { c.Status(http.StatusBadRequest) })

	for _, path := range []string{"/ok", "/bad"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("entries=%d, want 2", len(entries))
	}
	if entries[0].Level != zap.InfoLevel || entries[1].Level != zap.WarnLevel {
		t.Fatalf("levels=%v,%v", entries[0].Level, entries[1].Level)
	}
	if got := entries[1].ContextMap()["path"]; got != "/bad" {
		t.Fatalf("path field=%v", got)
	}
}
