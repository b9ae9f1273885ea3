package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"stockmaster_backend/internal/database"
	"stockmaster_backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) (*gin.Engine, *utils.TokenManager, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()
	tokens := utils.NewTokenManager("secret", time.Hour)
	engine := New(Services{}, Options{
		Tokens:         tokens,
		Probe:          func(ctx context.Context) database.Status { return database.Status{} },
		AllowedOrigins: []string{"http://localhost:3000"},
		UploadDir:      dir,
	})
	return engine, tokens, dir
}

func TestRouter_PublicAndProtected(t *testing.T) {
	engine, tokens, _ := newTestEngine(t)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	protected := []string{
		"/api/products", "/api/categories", "/api/inventory-transactions", "/api/activity-logs",
		"/api/dashboard/stats", "/api/user-settings", "/api/profile", "/api/alerts/low-stock",
	}
	for _, path := range protected {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)

		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", "Bearer forged")
		w = httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code, path)
	}

	// a valid token gets past the middleware
	token, err := tokens.GenerateAccessToken(1, "a@b.co", "user")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/api/products/abc", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_NotFoundAndStatic(t *testing.T) {
	engine, _, dir := newTestEngine(t)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Route not found")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "profile-x.png"), []byte("img"), 0o644))
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/uploads/profile-x.png", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "img", w.Body.String())
}

func TestRouter_CORSPreflight(t *testing.T) {
	engine, _, _ := newTestEngine(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/products", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}
