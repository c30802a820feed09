package handlers

import (
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"clubsync-api/models"
)

// GetRecaudacionHandler aggregates the revenue of one club: ticket sales plus
// bottle reservations attached to those tickets.
func GetRecaudacionHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		discotecaID, err := parsePathInt(r, "discotecaId")
		if err != nil {
			writeErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}

		resp := models.RecaudacionResponse{DiscotecaID: discotecaID}

		err = pool.QueryRow(r.Context(), `
			SELECT COALESCE(SUM(en.precio), 0), COUNT(en.id)
			FROM entradas en
			JOIN eventos ev ON ev.id = en.evento_id
			WHERE ev.discoteca_id = $1`,
			discotecaID,
		).Scan(&resp.TotalEntradas, &resp.EntradasVendidas)
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo calcular la recaudación de entradas")
			return
		}

		err = pool.QueryRow(r.Context(), `
			SELECT COALESCE(SUM(rb.precio_total), 0)
			FROM reservas_botella rb
			JOIN entradas en ON en.id = rb.entrada_id
			JOIN eventos ev ON ev.id = en.evento_id
			WHERE ev.discoteca_id = $1`,
			discotecaID,
		).Scan(&resp.TotalReservas)
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo calcular la recaudación de reservas")
			return
		}

		resp.RecaudacionTotal = resp.TotalEntradas + resp.TotalReservas
		writeJSONResponse(w, http.StatusOK, resp)
	}
}

// GetAsistenciaHandler reports tickets sold against capacity for one event.
func GetAsistenciaHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventoID, err := parsePathInt(r, "eventoId")
		if err != nil {
			writeErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}

		resp := models.AsistenciaResponse{EventoID: eventoID}

		err = pool.QueryRow(r.Context(),
			`SELECT capacidad FROM eventos WHERE id = $1`, eventoID,
		).Scan(&resp.Capacidad)
		if err == pgx.ErrNoRows {
			writeNotFound(w, r, "Evento no encontrado", eventoID)
			return
		}
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo recuperar el evento")
			return
		}

		err = pool.QueryRow(r.Context(),
			`SELECT COUNT(id) FROM entradas WHERE evento_id = $1`, eventoID,
		).Scan(&resp.EntradasVendidas)
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo calcular la asistencia")
			return
		}

		if resp.Capacidad > 0 {
			resp.Ocupacion = float64(resp.EntradasVendidas) / float64(resp.Capacidad)
		}

		writeJSONResponse(w, http.StatusOK, resp)
	}
}
