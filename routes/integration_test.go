package routes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clubsync-api/config"
	"clubsync-api/db"
	"clubsync-api/models"
)

// End-to-end tests against a real database. Set TEST_DATABASE_URL to run them.
func integrationRouter(t *testing.T) (http.Handler, *pgxpool.Pool) {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, dsn, 1)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, db.InitSchema(ctx, pool))

	cfg := &config.Config{
		JWT:  config.JWTConfig{ValidHours: 1},
		CORS: config.CORSConfig{Origin: "http://localhost:5173"},
		Rate: config.RateLimitConfig{PerSecond: 1000, Burst: 1000},
	}
	return SetupRoutes(pool, "integration-secret", cfg), pool
}

func doJSON(router http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, r)
	return rec
}

// registerAndLogin creates a fresh CLIENTE account and returns its token and id.
func registerAndLogin(t *testing.T, router http.Handler, pool *pgxpool.Pool, prefix string) (string, int) {
	t.Helper()

	email := fmt.Sprintf("%s%d@example.com", prefix, time.Now().UnixNano())
	rec := doJSON(router, http.MethodPost, "/api/auth/register", "",
		fmt.Sprintf(`{"nombre":"Cliente Test","email":%q,"password":"secreta"}`, email))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(router, http.MethodPost, "/api/auth/login", "",
		fmt.Sprintf(`{"email":%q,"password":"secreta"}`, email))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var login models.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	require.NotNil(t, login.Token)

	var userID int
	require.NoError(t, pool.QueryRow(context.Background(),
		`SELECT id FROM usuarios WHERE email = $1`, email).Scan(&userID))

	return *login.Token, userID
}

func TestRegisterLoginFlow(t *testing.T) {
	router, _ := integrationRouter(t)

	email := fmt.Sprintf("cliente%d@example.com", time.Now().UnixNano())
	payload := fmt.Sprintf(`{"nombre":"Cliente Test","email":%q,"password":"secreta"}`, email)

	rec := doJSON(router, http.MethodPost, "/api/auth/register", "", payload)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var ok models.SuccessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ok))
	assert.Equal(t, "Usuario registrado exitosamente", ok.Message)

	// the same email again is rejected
	rec = doJSON(router, http.MethodPost, "/api/auth/register", "", payload)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var fail models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fail))
	assert.Equal(t, "El email ya está registrado", fail.Message)

	// correct credentials issue a token
	rec = doJSON(router, http.MethodPost, "/api/auth/login", "",
		fmt.Sprintf(`{"email":%q,"password":"secreta"}`, email))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var login models.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	require.NotNil(t, login.Token)
	require.NotNil(t, login.Role)
	assert.Equal(t, "CLIENTE", *login.Role)
	assert.NotNil(t, login.Monedero)

	// wrong password answers 401 with every field null
	rec = doJSON(router, http.MethodPost, "/api/auth/login", "",
		fmt.Sprintf(`{"email":%q,"password":"incorrecta"}`, email))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var denied models.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &denied))
	assert.Nil(t, denied.Token)
	assert.Nil(t, denied.Role)
	assert.Nil(t, denied.Monedero)

	// a client token does not open the management routes
	rec = doJSON(router, http.MethodPost, "/api/ciudades", *login.Token,
		`{"nombre":"Madrid","provincia":"Madrid","pais":"España","codigoPostal":"28001"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestPedidoLifecycle(t *testing.T) {
	router, pool := integrationRouter(t)
	ctx := context.Background()

	email := fmt.Sprintf("pedidos%d@example.com", time.Now().UnixNano())
	rec := doJSON(router, http.MethodPost, "/api/auth/register", "",
		fmt.Sprintf(`{"nombre":"Comprador","email":%q,"password":"secreta"}`, email))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(router, http.MethodPost, "/api/auth/login", "",
		fmt.Sprintf(`{"email":%q,"password":"secreta"}`, email))
	require.Equal(t, http.StatusOK, rec.Code)
	var login models.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	require.NotNil(t, login.Token)
	token := *login.Token

	var userID int
	require.NoError(t, pool.QueryRow(ctx,
		`SELECT id FROM usuarios WHERE email = $1`, email).Scan(&userID))

	rec = doJSON(router, http.MethodPost, "/api/pedidos", token,
		fmt.Sprintf(`{"precioTotal":59.90,"idUsuario":%d}`, userID))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var created models.SuccessResponseCreateUUID
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)

	// first completion stamps the purchase date
	rec = doJSON(router, http.MethodPut, "/api/pedidos/"+created.ID+"/completar", token, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var first models.Pedido
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &first))
	assert.Equal(t, models.PedidoCompletado, first.Estado)
	require.NotNil(t, first.FechaCompra)

	// completing again succeeds and keeps the original date
	rec = doJSON(router, http.MethodPut, "/api/pedidos/"+created.ID+"/completar", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var second models.Pedido
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &second))
	assert.Equal(t, models.PedidoCompletado, second.Estado)
	require.NotNil(t, second.FechaCompra)
	assert.True(t, first.FechaCompra.Equal(*second.FechaCompra))

	// delete answers 204, a second delete 404
	rec = doJSON(router, http.MethodDelete, "/api/pedidos/"+created.ID, token, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(router, http.MethodDelete, "/api/pedidos/"+created.ID, token, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCanjearRecompensa(t *testing.T) {
	router, pool := integrationRouter(t)
	ctx := context.Background()

	token, userID := registerAndLogin(t, router, pool, "canjes")

	var recompensaID int
	require.NoError(t, pool.QueryRow(ctx, `
		INSERT INTO recompensas (nombre, descripcion, puntos_necesarios, fecha_inicio, fecha_fin)
		VALUES ('Copa gratis', '', 100, now() - interval '1 hour', now() + interval '1 day')
		RETURNING id`).Scan(&recompensaID))

	// a fresh account has zero points
	rec := doJSON(router, http.MethodPost, "/api/recompensas/canjear", token,
		fmt.Sprintf(`{"idRecompensa":%d}`, recompensaID))
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

	var fail models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fail))
	assert.Equal(t, "Puntos insuficientes para canjear la recompensa", fail.Message)

	// with enough points the redemption deducts and records
	_, err := pool.Exec(ctx,
		`UPDATE usuarios SET puntos_recompensa = 250 WHERE id = $1`, userID)
	require.NoError(t, err)

	rec = doJSON(router, http.MethodPost, "/api/recompensas/canjear", token,
		fmt.Sprintf(`{"idRecompensa":%d}`, recompensaID))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var puntos int
	require.NoError(t, pool.QueryRow(ctx,
		`SELECT puntos_recompensa FROM usuarios WHERE id = $1`, userID).Scan(&puntos))
	assert.Equal(t, 150, puntos)

	var gastados int
	require.NoError(t, pool.QueryRow(ctx, `
		SELECT puntos_gastados FROM recompensa_tiene_usuario
		WHERE recompensa_id = $1 AND usuario_id = $2`,
		recompensaID, userID).Scan(&gastados))
	assert.Equal(t, 100, gastados)

	// an expired reward is rejected without touching the points
	var expiradaID int
	require.NoError(t, pool.QueryRow(ctx, `
		INSERT INTO recompensas (nombre, descripcion, puntos_necesarios, fecha_inicio, fecha_fin)
		VALUES ('Caducada', '', 10, now() - interval '2 days', now() - interval '1 day')
		RETURNING id`).Scan(&expiradaID))

	rec = doJSON(router, http.MethodPost, "/api/recompensas/canjear", token,
		fmt.Sprintf(`{"idRecompensa":%d}`, expiradaID))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fail))
	assert.Equal(t, "La recompensa no está vigente", fail.Message)

	require.NoError(t, pool.QueryRow(ctx,
		`SELECT puntos_recompensa FROM usuarios WHERE id = $1`, userID).Scan(&puntos))
	assert.Equal(t, 150, puntos)
}

func TestEntradaPrecioDerivado(t *testing.T) {
	router, pool := integrationRouter(t)
	ctx := context.Background()

	token, userID := registerAndLogin(t, router, pool, "entradas")

	var ciudadID, discotecaID, djID, eventoID, tramoID int
	require.NoError(t, pool.QueryRow(ctx, `
		INSERT INTO ciudades (nombre, provincia, pais, codigo_postal)
		VALUES ('Madrid', 'Madrid', 'España', '28001')
		RETURNING id`).Scan(&ciudadID))
	require.NoError(t, pool.QueryRow(ctx, `
		INSERT INTO discotecas (nombre, direccion, capacidad_total, ciudad_id)
		VALUES ('Sala Norte', 'Calle Mayor 1', 800, $1)
		RETURNING id`, ciudadID).Scan(&discotecaID))
	require.NoError(t, pool.QueryRow(ctx, `
		INSERT INTO djs (nombre) VALUES ('DJ Prueba') RETURNING id`).Scan(&djID))
	require.NoError(t, pool.QueryRow(ctx, `
		INSERT INTO eventos (nombre, fecha_hora, precio_base_entrada, capacidad,
		                     discoteca_id, dj_id, usuario_id)
		VALUES ('Noche Test', now() + interval '7 days', 20, 500, $1, $2, $3)
		RETURNING id`, discotecaID, djID, userID).Scan(&eventoID))
	require.NoError(t, pool.QueryRow(ctx, `
		INSERT INTO tramos_horarios (hora_inicio, hora_fin, multiplicador_precio, discoteca_id)
		VALUES ('01:00', '03:00', 1.50, $1)
		RETURNING id`, discotecaID).Scan(&tramoID))

	// no price in the payload, the server derives base price times multiplier
	rec := doJSON(router, http.MethodPost, "/api/entradas", token,
		fmt.Sprintf(`{"tipo":"general","idUsuario":%d,"idEvento":%d,"idTramoHorario":%d}`,
			userID, eventoID, tramoID))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var created models.SuccessResponseCreate
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = doJSON(router, http.MethodGet, fmt.Sprintf("/api/entradas/%d", created.ID), token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var derivada models.Entrada
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &derivada))
	assert.InDelta(t, 30.0, derivada.Precio, 0.001)

	// an explicit positive price is taken as-is
	rec = doJSON(router, http.MethodPost, "/api/entradas", token,
		fmt.Sprintf(`{"tipo":"vip","precio":12.50,"idUsuario":%d,"idEvento":%d,"idTramoHorario":%d}`,
			userID, eventoID, tramoID))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = doJSON(router, http.MethodGet, fmt.Sprintf("/api/entradas/%d", created.ID), token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var explicita models.Entrada
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &explicita))
	assert.InDelta(t, 12.50, explicita.Precio, 0.001)
}
