package handlers

import (
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"clubsync-api/models"
)

const entradaColumns = `id, tipo, fecha_compra, precio, usuario_id, evento_id, tramo_horario_id`

func scanEntrada(row pgx.Row, e *models.Entrada) error {
	return row.Scan(&e.ID, &e.Tipo, &e.FechaCompra, &e.Precio,
		&e.UsuarioID, &e.EventoID, &e.TramoHorarioID)
}

func queryEntradas(w http.ResponseWriter, r *http.Request, pool *pgxpool.Pool, query string, args ...interface{}) {
	rows, err := pool.Query(r.Context(), query, args...)
	if err != nil {
		writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudieron recuperar las entradas")
		return
	}
	defer rows.Close()

	entradas := []models.Entrada{}
	for rows.Next() {
		var e models.Entrada
		if err := scanEntrada(rows, &e); err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudieron procesar las entradas")
			return
		}
		entradas = append(entradas, e)
	}
	writeJSONResponse(w, http.StatusOK, entradas)
}

// GetEntradasHandler lists all tickets.
func GetEntradasHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		queryEntradas(w, r, pool, `SELECT `+entradaColumns+` FROM entradas ORDER BY id ASC`)
	}
}

// GetEntradasByUsuarioHandler lists the tickets bought by one user.
func GetEntradasByUsuarioHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		usuarioID, err := parsePathInt(r, "usuarioId")
		if err != nil {
			writeErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}
		queryEntradas(w, r, pool,
			`SELECT `+entradaColumns+` FROM entradas WHERE usuario_id = $1 ORDER BY fecha_compra DESC`,
			usuarioID)
	}
}

// GetEntradasByEventoHandler lists the tickets sold for one event.
func GetEntradasByEventoHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventoID, err := parsePathInt(r, "eventoId")
		if err != nil {
			writeErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}
		queryEntradas(w, r, pool,
			`SELECT `+entradaColumns+` FROM entradas WHERE evento_id = $1 ORDER BY fecha_compra DESC`,
			eventoID)
	}
}

// GetEntradaByIDHandler returns a single ticket by ID.
func GetEntradaByIDHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDFromURL(r)
		if err != nil {
			writeErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}

		var e models.Entrada
		err = scanEntrada(pool.QueryRow(r.Context(),
			`SELECT `+entradaColumns+` FROM entradas WHERE id = $1`, id), &e)
		if err == pgx.ErrNoRows {
			writeNotFound(w, r, "Entrada no encontrada", id)
			return
		}
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo recuperar la entrada")
			return
		}

		writeJSONResponse(w, http.StatusOK, e)
	}
}

/*
CreateEntradaHandler creates a ticket.

When the payload carries no positive price the server derives it from the
event's base entry price and the time slot's multiplier, inside the same
transaction as the insert.
*/
func CreateEntradaHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.EntradaRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		tx, err := pool.Begin(r.Context())
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo iniciar la transacción")
			return
		}
		defer tx.Rollback(r.Context())

		precio := req.Precio
		if precio <= 0 {
			var base, multiplicador float64
			err := tx.QueryRow(r.Context(), `
				SELECT e.precio_base_entrada, t.multiplicador_precio
				FROM eventos e
				JOIN tramos_horarios t ON t.id = $2
				WHERE e.id = $1`,
				req.EventoID, req.TramoHorarioID,
			).Scan(&base, &multiplicador)
			if err == pgx.ErrNoRows {
				writeErrorResponse(w, r, http.StatusBadRequest, "Evento o tramo horario inexistente")
				return
			}
			if err != nil {
				writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo calcular el precio")
				return
			}
			precio = base * multiplicador
		}

		var id int
		err = tx.QueryRow(r.Context(), `
			INSERT INTO entradas (tipo, precio, usuario_id, evento_id, tramo_horario_id)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id`,
			req.Tipo, precio, req.UsuarioID, req.EventoID, req.TramoHorarioID,
		).Scan(&id)
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo crear la entrada")
			return
		}

		if err := tx.Commit(r.Context()); err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo confirmar la transacción")
			return
		}

		writeJSONResponse(w, http.StatusOK,
			models.SuccessResponseCreate{Message: "Entrada creada exitosamente", ID: id})
	}
}

// UpdateEntradaHandler replaces a ticket. The path id always wins over the body.
func UpdateEntradaHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDFromURL(r)
		if err != nil {
			writeErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}

		var req models.EntradaRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		tag, err := pool.Exec(r.Context(), `
			UPDATE entradas
			SET tipo = $1, precio = $2, usuario_id = $3, evento_id = $4, tramo_horario_id = $5
			WHERE id = $6`,
			req.Tipo, req.Precio, req.UsuarioID, req.EventoID, req.TramoHorarioID, id,
		)
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo actualizar la entrada")
			return
		}
		if tag.RowsAffected() == 0 {
			writeNotFound(w, r, "Entrada no encontrada", id)
			return
		}

		writeJSONResponse(w, http.StatusOK,
			models.SuccessResponse{Message: "Entrada actualizada exitosamente"})
	}
}

// DeleteEntradaHandler removes a ticket; its reservations cascade away.
func DeleteEntradaHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDFromURL(r)
		if err != nil {
			writeErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}

		tag, err := pool.Exec(r.Context(), `DELETE FROM entradas WHERE id = $1`, id)
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo eliminar la entrada")
			return
		}
		if tag.RowsAffected() == 0 {
			writeNotFound(w, r, "Entrada no encontrada", id)
			return
		}

		writeJSONResponse(w, http.StatusNoContent, nil)
	}
}
