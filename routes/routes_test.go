package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clubsync-api/config"
	"clubsync-api/models"
)

// A nil pool is fine here: every request below is stopped by the middleware
// chain or by payload validation before any query runs.
func testRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := &config.Config{
		JWT:  config.JWTConfig{ValidHours: 1},
		CORS: config.CORSConfig{Origin: "http://localhost:5173"},
		Rate: config.RateLimitConfig{PerSecond: 1000, Burst: 1000},
	}
	return SetupRoutes(nil, "test-secret", cfg)
}

func TestProtectedRoutesRejectAnonymous(t *testing.T) {
	router := testRouter(t)

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/entradas"},
		{http.MethodPost, "/api/pedidos"},
		{http.MethodGet, "/api/usuarios/perfil"},
		{http.MethodPut, "/api/usuarios/monedero"},
		{http.MethodPost, "/api/recompensas/canjear"},
		{http.MethodGet, "/api/recompensas/canjes"},
		{http.MethodPost, "/api/ciudades"},
		{http.MethodPut, "/api/eventos/3"},
		{http.MethodDelete, "/api/discotecas/3"},
		{http.MethodGet, "/api/admin/usuarios"},
		{http.MethodGet, "/api/admin/estadisticas/recaudacion/1"},
		{http.MethodGet, "/api/admin-discoteca/discoteca"},
	}

	for _, c := range cases {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(c.method, c.path, nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", c.method, c.path)

		var body models.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), "%s %s", c.method, c.path)
		assert.Equal(t, c.path, body.Path)
	}
}

func TestUserUpdateRouteIsPublic(t *testing.T) {
	router := testRouter(t)

	// a malformed body answers 400, proving the request got past the auth
	// layer without a token
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/usuarios/5",
		strings.NewReader("{not json")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// The public by-id routes only accept numeric ids, so fixed-path segments
// like "monedero" or "canjes" fall through to the authenticated routes
// instead of being captured as an id.
func TestPublicByIDRoutesRejectNonNumericIDs(t *testing.T) {
	router := testRouter(t)

	for _, path := range []string{"/api/ciudades/abc", "/api/recompensas/x", "/api/djs/-1"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
	}
}

func TestUnknownRouteAnswers404(t *testing.T) {
	router := testRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/no-existe", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	router := testRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
