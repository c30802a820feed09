package handlers

import (
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"clubsync-api/models"
)

// GetCiudadesHandler lists all cities.
func GetCiudadesHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := pool.Query(r.Context(), `
			SELECT id, nombre, provincia, pais, codigo_postal
			FROM ciudades
			ORDER BY id ASC`)
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudieron recuperar las ciudades")
			return
		}
		defer rows.Close()

		ciudades := []models.Ciudad{}
		for rows.Next() {
			var c models.Ciudad
			if err := rows.Scan(&c.ID, &c.Nombre, &c.Provincia, &c.Pais, &c.CodigoPostal); err != nil {
				writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudieron procesar las ciudades")
				return
			}
			ciudades = append(ciudades, c)
		}
		writeJSONResponse(w, http.StatusOK, ciudades)
	}
}

// GetCiudadByIDHandler returns a single city by ID.
func GetCiudadByIDHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDFromURL(r)
		if err != nil {
			writeErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}

		var c models.Ciudad
		err = pool.QueryRow(r.Context(), `
			SELECT id, nombre, provincia, pais, codigo_postal
			FROM ciudades
			WHERE id = $1`,
			id,
		).Scan(&c.ID, &c.Nombre, &c.Provincia, &c.Pais, &c.CodigoPostal)
		if err == pgx.ErrNoRows {
			writeNotFound(w, r, "Ciudad no encontrada", id)
			return
		}
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo recuperar la ciudad")
			return
		}

		writeJSONResponse(w, http.StatusOK, c)
	}
}

// CreateCiudadHandler creates a city.
func CreateCiudadHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CiudadRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		var id int
		err := pool.QueryRow(r.Context(), `
			INSERT INTO ciudades (nombre, provincia, pais, codigo_postal)
			VALUES ($1, $2, $3, $4)
			RETURNING id`,
			req.Nombre, req.Provincia, req.Pais, req.CodigoPostal,
		).Scan(&id)
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo crear la ciudad")
			return
		}

		writeJSONResponse(w, http.StatusOK,
			models.SuccessResponseCreate{Message: "Ciudad creada exitosamente", ID: id})
	}
}

// UpdateCiudadHandler replaces a city. The path id always wins over the body.
func UpdateCiudadHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDFromURL(r)
		if err != nil {
			writeErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}

		var req models.CiudadRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		tag, err := pool.Exec(r.Context(), `
			UPDATE ciudades
			SET nombre = $1, provincia = $2, pais = $3, codigo_postal = $4
			WHERE id = $5`,
			req.Nombre, req.Provincia, req.Pais, req.CodigoPostal, id,
		)
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo actualizar la ciudad")
			return
		}
		if tag.RowsAffected() == 0 {
			writeNotFound(w, r, "Ciudad no encontrada", id)
			return
		}

		writeJSONResponse(w, http.StatusOK,
			models.SuccessResponse{Message: "Ciudad actualizada exitosamente"})
	}
}

// DeleteCiudadHandler removes a city; clubs in it cascade away.
func DeleteCiudadHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDFromURL(r)
		if err != nil {
			writeErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}

		tag, err := pool.Exec(r.Context(), `DELETE FROM ciudades WHERE id = $1`, id)
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo eliminar la ciudad")
			return
		}
		if tag.RowsAffected() == 0 {
			writeNotFound(w, r, "Ciudad no encontrada", id)
			return
		}

		writeJSONResponse(w, http.StatusNoContent, nil)
	}
}
