package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clubsync-api/models"
)

func TestWriteErrorResponseBody(t *testing.T) {
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/ciudades/42", nil)

	writeErrorResponse(rec, r, http.StatusNotFound, "Ciudad no encontrada con id 42")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusNotFound, body.Status)
	assert.Equal(t, "Not Found", body.Error)
	assert.Equal(t, "Ciudad no encontrada con id 42", body.Message)
	assert.Equal(t, "/api/ciudades/42", body.Path)
	assert.WithinDuration(t, time.Now().UTC(), body.Timestamp, time.Minute)
	assert.Empty(t, body.Errors)
}

func TestWriteNotFoundMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/djs/7", nil)

	writeNotFound(rec, r, "Dj no encontrado", 7)

	var body models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Dj no encontrado con id 7", body.Message)
}

func TestDecodeAndValidateRejectsBadJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/ciudades", strings.NewReader("{not json"))

	var req models.CiudadRequest
	ok := decodeAndValidate(rec, r, &req)

	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDecodeAndValidateCollectsFieldErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/ciudades",
		strings.NewReader(`{"nombre":"Madrid"}`))

	var req models.CiudadRequest
	ok := decodeAndValidate(rec, r, &req)

	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Datos de entrada no válidos", body.Message)
	// provincia, pais and codigoPostal are all required
	assert.Len(t, body.Errors, 3)
}

func TestDecodeAndValidateAcceptsValidPayload(t *testing.T) {
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/ciudades",
		strings.NewReader(`{"nombre":"Madrid","provincia":"Madrid","pais":"España","codigoPostal":"28001"}`))

	var req models.CiudadRequest
	assert.True(t, decodeAndValidate(rec, r, &req))
	assert.Equal(t, "Madrid", req.Nombre)
}

func TestParseIDFromURL(t *testing.T) {
	r := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/api/djs/7", nil),
		map[string]string{"id": "7"})

	id, err := parseIDFromURL(r)
	require.NoError(t, err)
	assert.Equal(t, 7, id)
}

func TestParseIDFromURLRejectsBadValues(t *testing.T) {
	for _, raw := range []string{"abc", "0", "-3", ""} {
		r := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil),
			map[string]string{"id": raw})
		_, err := parseIDFromURL(r)
		assert.Error(t, err, "value %q", raw)
	}
}

func TestParsePathInt(t *testing.T) {
	r := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil),
		map[string]string{"discotecaId": "12"})

	id, err := parsePathInt(r, "discotecaId")
	require.NoError(t, err)
	assert.Equal(t, 12, id)

	_, err = parsePathInt(r, "otroId")
	assert.Error(t, err)
}

func TestDateToRFC3339(t *testing.T) {
	got, err := dateToRFC3339("2026-08-27 23:30")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 27, 23, 30, 0, 0, time.UTC), got)

	got, err = dateToRFC3339("2026-08-27T23:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 27, 23, 30, 0, 0, time.UTC), got)

	_, err = dateToRFC3339("27/08/2026")
	assert.Error(t, err)
}
