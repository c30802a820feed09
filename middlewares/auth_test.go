package middlewares

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clubsync-api/models"
)

func TestExtractToken(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer abc.def.ghi")

	token, err := ExtractToken(r)
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)
}

func TestExtractTokenMissingHeader(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := ExtractToken(r)
	assert.Error(t, err)
}

func TestExtractTokenMalformedHeader(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Token abc")
	_, err := ExtractToken(r)
	assert.Error(t, err)
}

func TestGetPrincipalRoundTrip(t *testing.T) {
	p := &Principal{UserID: 7, Email: "ana@example.com", Role: models.RoleCliente}
	ctx := WithPrincipal(httptest.NewRequest(http.MethodGet, "/", nil).Context(), p)

	got, err := GetPrincipal(ctx)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestGetPrincipalAbsent(t *testing.T) {
	_, err := GetPrincipal(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	assert.Error(t, err)
}

func okHandler() (http.Handler, *bool) {
	called := false
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}), &called
}

func TestRequireAuthRejectsAnonymous(t *testing.T) {
	next, called := okHandler()
	rec := httptest.NewRecorder()

	RequireAuth(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/entradas", nil))

	assert.False(t, *called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var body models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusUnauthorized, body.Status)
	assert.Equal(t, "/api/entradas", body.Path)
}

func TestRequireAuthPassesPrincipal(t *testing.T) {
	next, called := okHandler()
	rec := httptest.NewRecorder()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r = r.WithContext(WithPrincipal(r.Context(), &Principal{UserID: 1, Role: models.RoleCliente}))

	RequireAuth(next).ServeHTTP(rec, r)

	assert.True(t, *called)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRole(t *testing.T) {
	cases := []struct {
		name      string
		principal *Principal
		allowed   []models.Role
		wantCode  int
	}{
		{"anonymous", nil, []models.Role{models.RoleAdmin}, http.StatusUnauthorized},
		{"wrong role", &Principal{Role: models.RoleCliente}, []models.Role{models.RoleAdmin}, http.StatusForbidden},
		{"matching role", &Principal{Role: models.RoleAdmin}, []models.Role{models.RoleAdmin}, http.StatusOK},
		{"second of two roles", &Principal{Role: models.RoleAdminDiscoteca},
			[]models.Role{models.RoleAdmin, models.RoleAdminDiscoteca}, http.StatusOK},
		{"unknown role", &Principal{Role: models.Role("ROOT")}, []models.Role{models.RoleAdmin}, http.StatusForbidden},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			next, _ := okHandler()
			rec := httptest.NewRecorder()

			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if c.principal != nil {
				r = r.WithContext(WithPrincipal(r.Context(), c.principal))
			}

			RequireRole(c.allowed...)(next).ServeHTTP(rec, r)
			assert.Equal(t, c.wantCode, rec.Code)
		})
	}
}
