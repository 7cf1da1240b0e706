package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gradesheets/internal/config"
)

func TestServer_ServesIndexAndAPI(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Data.DataDir = t.TempDir()

	s, err := NewServer(cfg, nil, "test")
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	t.Cleanup(func() { _ = s.Shutdown(context.Background()) })

	if s.History() != nil {
		t.Fatalf("history should be disabled by default")
	}

	for _, path := range []string{"/", "/anything"} {
		w := httptest.NewRecorder()
		s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Grading Sheets") {
			t.Fatalf("GET %s: status=%d", path, w.Code)
		}
	}

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/status", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status endpoint: %d body=%s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("missing CORS header, got %q", got)
	}
}

func TestServer_HistoryEnabled(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Data.DataDir = t.TempDir()
	cfg.History.Enabled = true

	s, err := NewServer(cfg, nil, "test")
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	t.Cleanup(func() { _ = s.Shutdown(context.Background()) })

	if s.History() == nil {
		t.Fatalf("history store not opened")
	}
	if _, err := os.Stat(filepath.Join(cfg.Data.DataDir, "gradesheets.db")); err != nil {
		t.Fatalf("database file not created: %v", err)
	}

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/runs", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("runs endpoint: %d", w.Code)
	}
}
