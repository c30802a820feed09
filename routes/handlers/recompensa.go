package handlers

import (
	"net/http"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"clubsync-api/middlewares"
	"clubsync-api/models"
)

const recompensaColumns = `id, nombre, descripcion, puntos_necesarios, fecha_inicio, fecha_fin,
	botella_id, reserva_botella_id, entrada_id, evento_id`

func scanRecompensa(row pgx.Row, rec *models.Recompensa) error {
	return row.Scan(&rec.ID, &rec.Nombre, &rec.Descripcion, &rec.PuntosNecesarios,
		&rec.FechaInicio, &rec.FechaFin,
		&rec.BotellaID, &rec.ReservaBotellaID, &rec.EntradaID, &rec.EventoID)
}

// GetRecompensasHandler lists all rewards.
func GetRecompensasHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := pool.Query(r.Context(),
			`SELECT `+recompensaColumns+` FROM recompensas ORDER BY fecha_inicio ASC`)
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudieron recuperar las recompensas")
			return
		}
		defer rows.Close()

		recompensas := []models.Recompensa{}
		for rows.Next() {
			var rec models.Recompensa
			if err := scanRecompensa(rows, &rec); err != nil {
				writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudieron procesar las recompensas")
				return
			}
			recompensas = append(recompensas, rec)
		}
		writeJSONResponse(w, http.StatusOK, recompensas)
	}
}

// GetRecompensaByIDHandler returns a single reward by ID.
func GetRecompensaByIDHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDFromURL(r)
		if err != nil {
			writeErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}

		var rec models.Recompensa
		err = scanRecompensa(pool.QueryRow(r.Context(),
			`SELECT `+recompensaColumns+` FROM recompensas WHERE id = $1`, id), &rec)
		if err == pgx.ErrNoRows {
			writeNotFound(w, r, "Recompensa no encontrada", id)
			return
		}
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo recuperar la recompensa")
			return
		}

		writeJSONResponse(w, http.StatusOK, rec)
	}
}

// CreateRecompensaHandler creates a reward.
func CreateRecompensaHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.RecompensaRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		inicio, err := dateToRFC3339(req.FechaInicio)
		if err != nil {
			writeErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}
		fin, err := dateToRFC3339(req.FechaFin)
		if err != nil {
			writeErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}

		var id int
		err = pool.QueryRow(r.Context(), `
			INSERT INTO recompensas (nombre, descripcion, puntos_necesarios, fecha_inicio, fecha_fin,
			                         botella_id, reserva_botella_id, entrada_id, evento_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id`,
			req.Nombre, req.Descripcion, req.PuntosNecesarios, inicio, fin,
			req.BotellaID, req.ReservaBotellaID, req.EntradaID, req.EventoID,
		).Scan(&id)
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo crear la recompensa")
			return
		}

		writeJSONResponse(w, http.StatusOK,
			models.SuccessResponseCreate{Message: "Recompensa creada exitosamente", ID: id})
	}
}

// UpdateRecompensaHandler replaces a reward. The path id always wins over the body.
func UpdateRecompensaHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDFromURL(r)
		if err != nil {
			writeErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}

		var req models.RecompensaRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		inicio, err := dateToRFC3339(req.FechaInicio)
		if err != nil {
			writeErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}
		fin, err := dateToRFC3339(req.FechaFin)
		if err != nil {
			writeErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}

		tag, err := pool.Exec(r.Context(), `
			UPDATE recompensas
			SET nombre = $1, descripcion = $2, puntos_necesarios = $3,
			    fecha_inicio = $4, fecha_fin = $5,
			    botella_id = $6, reserva_botella_id = $7, entrada_id = $8, evento_id = $9
			WHERE id = $10`,
			req.Nombre, req.Descripcion, req.PuntosNecesarios, inicio, fin,
			req.BotellaID, req.ReservaBotellaID, req.EntradaID, req.EventoID, id,
		)
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo actualizar la recompensa")
			return
		}
		if tag.RowsAffected() == 0 {
			writeNotFound(w, r, "Recompensa no encontrada", id)
			return
		}

		writeJSONResponse(w, http.StatusOK,
			models.SuccessResponse{Message: "Recompensa actualizada exitosamente"})
	}
}

// DeleteRecompensaHandler removes a reward; its redemption records cascade away.
func DeleteRecompensaHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDFromURL(r)
		if err != nil {
			writeErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}

		tag, err := pool.Exec(r.Context(), `DELETE FROM recompensas WHERE id = $1`, id)
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo eliminar la recompensa")
			return
		}
		if tag.RowsAffected() == 0 {
			writeNotFound(w, r, "Recompensa no encontrada", id)
			return
		}

		writeJSONResponse(w, http.StatusNoContent, nil)
	}
}

/*
CanjearRecompensaHandler redeems a reward for the authenticated user.

Inside one transaction it checks that the reward exists and is inside its
validity window, deducts the points from the user with a guard against going
negative, and records the redemption. Any failed precondition answers 400.
*/
func CanjearRecompensaHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := middlewares.GetPrincipal(r.Context())
		if err != nil {
			writeErrorResponse(w, r, http.StatusUnauthorized, "Autenticación requerida")
			return
		}

		var req models.CanjeRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		tx, err := pool.Begin(r.Context())
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo iniciar la transacción")
			return
		}
		defer tx.Rollback(r.Context())

		var puntos int
		var inicio, fin time.Time
		err = tx.QueryRow(r.Context(), `
			SELECT puntos_necesarios, fecha_inicio, fecha_fin
			FROM recompensas
			WHERE id = $1`,
			req.RecompensaID,
		).Scan(&puntos, &inicio, &fin)
		if err == pgx.ErrNoRows {
			writeNotFound(w, r, "Recompensa no encontrada", req.RecompensaID)
			return
		}
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo recuperar la recompensa")
			return
		}

		now := time.Now()
		if now.Before(inicio) || now.After(fin) {
			writeErrorResponse(w, r, http.StatusBadRequest, "La recompensa no está vigente")
			return
		}

		tag, err := tx.Exec(r.Context(), `
			UPDATE usuarios
			SET puntos_recompensa = puntos_recompensa - $1
			WHERE id = $2 AND puntos_recompensa >= $1`,
			puntos, p.UserID,
		)
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudieron descontar los puntos")
			return
		}
		if tag.RowsAffected() == 0 {
			writeErrorResponse(w, r, http.StatusBadRequest, "Puntos insuficientes para canjear la recompensa")
			return
		}

		if _, err := tx.Exec(r.Context(), `
			INSERT INTO recompensa_tiene_usuario (recompensa_id, usuario_id, fecha_canjeado, puntos_gastados)
			VALUES ($1, $2, NOW(), $3)`,
			req.RecompensaID, p.UserID, puntos,
		); err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo registrar el canje")
			return
		}

		if err := tx.Commit(r.Context()); err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo confirmar la transacción")
			return
		}

		writeJSONResponse(w, http.StatusOK,
			models.SuccessResponse{Message: "Recompensa canjeada exitosamente"})
	}
}

// GetCanjesByUsuarioHandler lists the redemptions of the authenticated user.
func GetCanjesByUsuarioHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := middlewares.GetPrincipal(r.Context())
		if err != nil {
			writeErrorResponse(w, r, http.StatusUnauthorized, "Autenticación requerida")
			return
		}

		rows, err := pool.Query(r.Context(), `
			SELECT id, recompensa_id, usuario_id, fecha_canjeado, puntos_gastados
			FROM recompensa_tiene_usuario
			WHERE usuario_id = $1
			ORDER BY fecha_canjeado DESC`,
			p.UserID)
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudieron recuperar los canjes")
			return
		}
		defer rows.Close()

		canjes := []models.RecompensaTieneUsuario{}
		for rows.Next() {
			var c models.RecompensaTieneUsuario
			if err := rows.Scan(&c.ID, &c.RecompensaID, &c.UsuarioID, &c.FechaCanjeado, &c.PuntosGastados); err != nil {
				writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudieron procesar los canjes")
				return
			}
			canjes = append(canjes, c)
		}
		writeJSONResponse(w, http.StatusOK, canjes)
	}
}
