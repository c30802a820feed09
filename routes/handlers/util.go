package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"clubsync-api/models"
)

// Shared request-payload validator.
var validate = validator.New()

// Utility function to handle JSON responses.
func writeJSONResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// Utility function for the structured error body.
func writeErrorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(models.ErrorResponse{
		Timestamp: time.Now().UTC(),
		Status:    status,
		Error:     http.StatusText(status),
		Message:   message,
		Path:      r.URL.Path,
	})
}

// writeNotFound answers 404 naming the resource type and the missing id.
// The caller provides the gendered phrase, e.g. "Ciudad no encontrada".
func writeNotFound(w http.ResponseWriter, r *http.Request, frase string, id interface{}) {
	writeErrorResponse(w, r, http.StatusNotFound,
		fmt.Sprintf("%s con id %v", frase, id))
}

// writeValidationError answers 400 carrying one message per offending field.
func writeValidationError(w http.ResponseWriter, r *http.Request, err error) {
	msgs := []string{}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			msgs = append(msgs, fmt.Sprintf("campo '%s' no supera la restricción '%s'", fe.Field(), fe.Tag()))
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(models.ErrorResponse{
		Timestamp: time.Now().UTC(),
		Status:    http.StatusBadRequest,
		Error:     http.StatusText(http.StatusBadRequest),
		Message:   "Datos de entrada no válidos",
		Path:      r.URL.Path,
		Errors:    msgs,
	})
}

// decodeAndValidate parses the JSON body into dst and runs struct validation.
// It writes the error response itself and reports whether processing may
// continue.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeErrorResponse(w, r, http.StatusBadRequest, "Cuerpo JSON no válido")
		return false
	}
	if err := validate.Struct(dst); err != nil {
		writeValidationError(w, r, err)
		return false
	}
	return true
}

// parseIDFromURL extracts the integer {id} path variable.
func parseIDFromURL(r *http.Request) (int, error) {
	vars := mux.Vars(r)
	raw, ok := vars["id"]
	if !ok {
		return 0, errors.New("id no presente en la URL")
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("id no válido: %q", raw)
	}
	return id, nil
}

// parsePathInt extracts an arbitrary integer path variable.
func parsePathInt(r *http.Request, name string) (int, error) {
	vars := mux.Vars(r)
	raw, ok := vars[name]
	if !ok {
		return 0, fmt.Errorf("%s no presente en la URL", name)
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s no válido: %q", name, raw)
	}
	return id, nil
}

// dateToRFC3339 accepts either "YYYY-MM-DD HH:MM" or RFC3339 and returns the
// parsed time.
func dateToRFC3339(date string) (time.Time, error) {
	const customDateFormat = "2006-01-02 15:04"

	parsed, err := time.Parse(customDateFormat, date)
	if err != nil {
		parsed, err = time.Parse(time.RFC3339, date)
		if err != nil {
			return time.Time{}, errors.New("formato de fecha no válido; use YYYY-MM-DD HH:MM o RFC3339")
		}
	}
	return parsed, nil
}
