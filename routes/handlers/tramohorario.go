package handlers

import (
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"clubsync-api/models"
)

const tramoColumns = `id, hora_inicio, hora_fin, multiplicador_precio, discoteca_id`

func scanTramo(row pgx.Row, t *models.TramoHorario) error {
	return row.Scan(&t.ID, &t.HoraInicio, &t.HoraFin, &t.MultiplicadorPrecio, &t.DiscotecaID)
}

func queryTramos(w http.ResponseWriter, r *http.Request, pool *pgxpool.Pool, query string, args ...interface{}) {
	rows, err := pool.Query(r.Context(), query, args...)
	if err != nil {
		writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudieron recuperar los tramos horarios")
		return
	}
	defer rows.Close()

	tramos := []models.TramoHorario{}
	for rows.Next() {
		var t models.TramoHorario
		if err := scanTramo(rows, &t); err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudieron procesar los tramos horarios")
			return
		}
		tramos = append(tramos, t)
	}
	writeJSONResponse(w, http.StatusOK, tramos)
}

// GetTramosHandler lists all time slots.
func GetTramosHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		queryTramos(w, r, pool, `SELECT `+tramoColumns+` FROM tramos_horarios ORDER BY id ASC`)
	}
}

// GetTramosByDiscotecaHandler lists the time slots of one club.
func GetTramosByDiscotecaHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		discotecaID, err := parsePathInt(r, "discotecaId")
		if err != nil {
			writeErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}
		queryTramos(w, r, pool,
			`SELECT `+tramoColumns+` FROM tramos_horarios WHERE discoteca_id = $1 ORDER BY hora_inicio ASC`,
			discotecaID)
	}
}

// GetTramoByIDHandler returns a single time slot by ID.
func GetTramoByIDHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDFromURL(r)
		if err != nil {
			writeErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}

		var t models.TramoHorario
		err = scanTramo(pool.QueryRow(r.Context(),
			`SELECT `+tramoColumns+` FROM tramos_horarios WHERE id = $1`, id), &t)
		if err == pgx.ErrNoRows {
			writeNotFound(w, r, "TramoHorario no encontrado", id)
			return
		}
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo recuperar el tramo horario")
			return
		}

		writeJSONResponse(w, http.StatusOK, t)
	}
}

// CreateTramoHandler creates a time slot.
func CreateTramoHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.TramoHorarioRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		var id int
		err := pool.QueryRow(r.Context(), `
			INSERT INTO tramos_horarios (hora_inicio, hora_fin, multiplicador_precio, discoteca_id)
			VALUES ($1, $2, $3, $4)
			RETURNING id`,
			req.HoraInicio, req.HoraFin, req.MultiplicadorPrecio, req.DiscotecaID,
		).Scan(&id)
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo crear el tramo horario")
			return
		}

		writeJSONResponse(w, http.StatusOK,
			models.SuccessResponseCreate{Message: "TramoHorario creado exitosamente", ID: id})
	}
}

// UpdateTramoHandler replaces a time slot. The path id always wins over the body.
func UpdateTramoHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDFromURL(r)
		if err != nil {
			writeErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}

		var req models.TramoHorarioRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		tag, err := pool.Exec(r.Context(), `
			UPDATE tramos_horarios
			SET hora_inicio = $1, hora_fin = $2, multiplicador_precio = $3, discoteca_id = $4
			WHERE id = $5`,
			req.HoraInicio, req.HoraFin, req.MultiplicadorPrecio, req.DiscotecaID, id,
		)
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo actualizar el tramo horario")
			return
		}
		if tag.RowsAffected() == 0 {
			writeNotFound(w, r, "TramoHorario no encontrado", id)
			return
		}

		writeJSONResponse(w, http.StatusOK,
			models.SuccessResponse{Message: "TramoHorario actualizado exitosamente"})
	}
}

// DeleteTramoHandler removes a time slot.
func DeleteTramoHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDFromURL(r)
		if err != nil {
			writeErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}

		tag, err := pool.Exec(r.Context(), `DELETE FROM tramos_horarios WHERE id = $1`, id)
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo eliminar el tramo horario")
			return
		}
		if tag.RowsAffected() == 0 {
			writeNotFound(w, r, "TramoHorario no encontrado", id)
			return
		}

		writeJSONResponse(w, http.StatusNoContent, nil)
	}
}
