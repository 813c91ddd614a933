package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kowshikmeda/KabaddiBackend/internal/config"
	"github.com/kowshikmeda/KabaddiBackend/pkg/database"
	"github.com/kowshikmeda/KabaddiBackend/pkg/logger"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger.Init("error")

	cfg := &config.Config{
		Env:           "test",
		LogLevel:      "error",
		RedisURL:      "redis://127.0.0.1:1/0", // nothing listens; rate limits degrade
		JWTSecret:     "test-secret",
		JWTExpiration: time.Hour,
		StoragePath:   t.TempDir(),
	}

	// Handlers never reach the database in these tests; auth aborts
	// first.
	return SetupRouter(cfg, &database.DB{})
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	router := newTestRouter(t)

	requests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/matches/m1/scorecard/live"},
		{http.MethodPut, "/api/v1/matches/m1/status/start"},
		{http.MethodPut, "/api/v1/matches/m1/score"},
		{http.MethodGet, "/api/v1/users/me"},
		{http.MethodGet, "/api/v1/ws"},
	}

	for _, r := range requests {
		req := httptest.NewRequest(r.method, r.path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s without token: status = %d, want %d",
				r.method, r.path, w.Code, http.StatusUnauthorized)
		}
	}
}

func TestHealthRouteIsPublic(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("health status = %d, want %d", w.Code, http.StatusOK)
	}
}
