package handlers

import (
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"clubsync-api/models"
)

const djColumns = `id, nombre, nombre_real, biografia, genero_musical, contacto, imagen`

func scanDj(row pgx.Row, d *models.Dj) error {
	return row.Scan(&d.ID, &d.Nombre, &d.NombreReal, &d.Biografia,
		&d.GeneroMusical, &d.Contacto, &d.Imagen)
}

// GetDjsHandler lists all DJs.
func GetDjsHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := pool.Query(r.Context(), `SELECT `+djColumns+` FROM djs ORDER BY id ASC`)
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudieron recuperar los DJs")
			return
		}
		defer rows.Close()

		djs := []models.Dj{}
		for rows.Next() {
			var d models.Dj
			if err := scanDj(rows, &d); err != nil {
				writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudieron procesar los DJs")
				return
			}
			djs = append(djs, d)
		}
		writeJSONResponse(w, http.StatusOK, djs)
	}
}

// GetDjByIDHandler returns a single DJ by ID.
func GetDjByIDHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDFromURL(r)
		if err != nil {
			writeErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}

		var d models.Dj
		err = scanDj(pool.QueryRow(r.Context(),
			`SELECT `+djColumns+` FROM djs WHERE id = $1`, id), &d)
		if err == pgx.ErrNoRows {
			writeNotFound(w, r, "Dj no encontrado", id)
			return
		}
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo recuperar el DJ")
			return
		}

		writeJSONResponse(w, http.StatusOK, d)
	}
}

// CreateDjHandler creates a DJ.
func CreateDjHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.DjRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		var id int
		err := pool.QueryRow(r.Context(), `
			INSERT INTO djs (nombre, nombre_real, biografia, genero_musical, contacto, imagen)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id`,
			req.Nombre, req.NombreReal, req.Biografia, req.GeneroMusical, req.Contacto, req.Imagen,
		).Scan(&id)
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo crear el DJ")
			return
		}

		writeJSONResponse(w, http.StatusOK,
			models.SuccessResponseCreate{Message: "Dj creado exitosamente", ID: id})
	}
}

// UpdateDjHandler replaces a DJ. The path id always wins over the body.
func UpdateDjHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDFromURL(r)
		if err != nil {
			writeErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}

		var req models.DjRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		tag, err := pool.Exec(r.Context(), `
			UPDATE djs
			SET nombre = $1, nombre_real = $2, biografia = $3,
			    genero_musical = $4, contacto = $5, imagen = $6
			WHERE id = $7`,
			req.Nombre, req.NombreReal, req.Biografia, req.GeneroMusical,
			req.Contacto, req.Imagen, id,
		)
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo actualizar el DJ")
			return
		}
		if tag.RowsAffected() == 0 {
			writeNotFound(w, r, "Dj no encontrado", id)
			return
		}

		writeJSONResponse(w, http.StatusOK,
			models.SuccessResponse{Message: "Dj actualizado exitosamente"})
	}
}

// DeleteDjHandler removes a DJ; their events cascade away.
func DeleteDjHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDFromURL(r)
		if err != nil {
			writeErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}

		tag, err := pool.Exec(r.Context(), `DELETE FROM djs WHERE id = $1`, id)
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo eliminar el DJ")
			return
		}
		if tag.RowsAffected() == 0 {
			writeNotFound(w, r, "Dj no encontrado", id)
			return
		}

		writeJSONResponse(w, http.StatusNoContent, nil)
	}
}
