package handlers

import (
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"clubsync-api/models"
)

const botellaColumns = `id, nombre, tipo, tamano, precio, disponibilidad, imagen, discoteca_id`

func scanBotella(row pgx.Row, b *models.Botella) error {
	return row.Scan(&b.ID, &b.Nombre, &b.Tipo, &b.Tamano, &b.Precio,
		&b.Disponibilidad, &b.Imagen, &b.DiscotecaID)
}

func queryBotellas(w http.ResponseWriter, r *http.Request, pool *pgxpool.Pool, query string, args ...interface{}) {
	rows, err := pool.Query(r.Context(), query, args...)
	if err != nil {
		writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudieron recuperar las botellas")
		return
	}
	defer rows.Close()

	botellas := []models.Botella{}
	for rows.Next() {
		var b models.Botella
		if err := scanBotella(rows, &b); err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudieron procesar las botellas")
			return
		}
		botellas = append(botellas, b)
	}
	writeJSONResponse(w, http.StatusOK, botellas)
}

// GetBotellasHandler lists all bottle products.
func GetBotellasHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		queryBotellas(w, r, pool, `SELECT `+botellaColumns+` FROM botellas ORDER BY id ASC`)
	}
}

// GetBotellasByDiscotecaHandler lists the bottle catalogue of one club.
func GetBotellasByDiscotecaHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		discotecaID, err := parsePathInt(r, "discotecaId")
		if err != nil {
			writeErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}
		queryBotellas(w, r, pool,
			`SELECT `+botellaColumns+` FROM botellas WHERE discoteca_id = $1 ORDER BY nombre ASC`,
			discotecaID)
	}
}

// GetBotellaByIDHandler returns a single bottle product by ID.
func GetBotellaByIDHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDFromURL(r)
		if err != nil {
			writeErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}

		var b models.Botella
		err = scanBotella(pool.QueryRow(r.Context(),
			`SELECT `+botellaColumns+` FROM botellas WHERE id = $1`, id), &b)
		if err == pgx.ErrNoRows {
			writeNotFound(w, r, "Botella no encontrada", id)
			return
		}
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo recuperar la botella")
			return
		}

		writeJSONResponse(w, http.StatusOK, b)
	}
}

// CreateBotellaHandler adds a bottle product to a club's catalogue.
func CreateBotellaHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.BotellaRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		var id int
		err := pool.QueryRow(r.Context(), `
			INSERT INTO botellas (nombre, tipo, tamano, precio, disponibilidad, imagen, discoteca_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id`,
			req.Nombre, req.Tipo, req.Tamano, req.Precio, req.Disponibilidad, req.Imagen, req.DiscotecaID,
		).Scan(&id)
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo crear la botella")
			return
		}

		writeJSONResponse(w, http.StatusOK,
			models.SuccessResponseCreate{Message: "Botella creada exitosamente", ID: id})
	}
}

// UpdateBotellaHandler replaces a bottle product. The path id always wins over the body.
func UpdateBotellaHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDFromURL(r)
		if err != nil {
			writeErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}

		var req models.BotellaRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		tag, err := pool.Exec(r.Context(), `
			UPDATE botellas
			SET nombre = $1, tipo = $2, tamano = $3, precio = $4,
			    disponibilidad = $5, imagen = $6, discoteca_id = $7
			WHERE id = $8`,
			req.Nombre, req.Tipo, req.Tamano, req.Precio,
			req.Disponibilidad, req.Imagen, req.DiscotecaID, id,
		)
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo actualizar la botella")
			return
		}
		if tag.RowsAffected() == 0 {
			writeNotFound(w, r, "Botella no encontrada", id)
			return
		}

		writeJSONResponse(w, http.StatusOK,
			models.SuccessResponse{Message: "Botella actualizada exitosamente"})
	}
}

// DeleteBotellaHandler removes a bottle product.
func DeleteBotellaHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDFromURL(r)
		if err != nil {
			writeErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}

		tag, err := pool.Exec(r.Context(), `DELETE FROM botellas WHERE id = $1`, id)
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo eliminar la botella")
			return
		}
		if tag.RowsAffected() == 0 {
			writeNotFound(w, r, "Botella no encontrada", id)
			return
		}

		writeJSONResponse(w, http.StatusNoContent, nil)
	}
}
