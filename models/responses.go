package models

import "time"

// Standardized response for errors. Mirrors the structured error body the
// centralized handler produces: timestamp, status, label, message, path and an
// optional list of per-field messages.
type ErrorResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"  example:"404"`
	Error     string    `json:"error"   example:"Not Found"`
	Message   string    `json:"message" example:"Ciudad no encontrada con id 42"`
	Path      string    `json:"path"    example:"/api/ciudades/42"`
	Errors    []string  `json:"errors,omitempty"`
}

// Standardized response for successful operations.
type SuccessResponse struct {
	Message string `json:"message" example:"Usuario registrado exitosamente"`
}

// Standardized response for operations that create a row.
type SuccessResponseCreate struct {
	Message string `json:"message"`
	ID      int    `json:"id" example:"17"`
}

// Standardized response for operations that create a UUID-keyed row.
type SuccessResponseCreateUUID struct {
	Message string `json:"message"`
	ID      string `json:"id" example:"123e4567-e89b-12d3-a456-426614174000"`
}

// Response after a login attempt. On failure every field is null.
type LoginResponse struct {
	Token            *string  `json:"token"`
	Expires          *int64   `json:"exp"`
	Role             *string  `json:"role"`
	Monedero         *float64 `json:"monedero"`
	PuntosRecompensa *int     `json:"puntosRecompensa"`
	DiscotecaID      *int     `json:"idDiscoteca,omitempty"`
}

// Revenue aggregate for a club.
type RecaudacionResponse struct {
	DiscotecaID      int     `json:"idDiscoteca"`
	TotalEntradas    float64 `json:"totalEntradas"`
	TotalReservas    float64 `json:"totalReservas"`
	RecaudacionTotal float64 `json:"recaudacionTotal"`
	EntradasVendidas int     `json:"entradasVendidas"`
}

// Attendance aggregate for an event.
type AsistenciaResponse struct {
	EventoID         int     `json:"idEvento"`
	Capacidad        int     `json:"capacidad"`
	EntradasVendidas int     `json:"entradasVendidas"`
	Ocupacion        float64 `json:"ocupacion"`
}
