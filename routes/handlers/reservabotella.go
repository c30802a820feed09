package handlers

import (
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"clubsync-api/models"
)

const reservaColumns = `id, aforo, precio_total, tipo_reserva, entrada_id, zona_vip_id`

func scanReserva(row pgx.Row, rb *models.ReservaBotella) error {
	return row.Scan(&rb.ID, &rb.Aforo, &rb.PrecioTotal, &rb.TipoReserva,
		&rb.EntradaID, &rb.ZonaVipID)
}

func queryReservas(w http.ResponseWriter, r *http.Request, pool *pgxpool.Pool, query string, args ...interface{}) {
	rows, err := pool.Query(r.Context(), query, args...)
	if err != nil {
		writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudieron recuperar las reservas")
		return
	}
	defer rows.Close()

	reservas := []models.ReservaBotella{}
	for rows.Next() {
		var rb models.ReservaBotella
		if err := scanReserva(rows, &rb); err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudieron procesar las reservas")
			return
		}
		reservas = append(reservas, rb)
	}
	writeJSONResponse(w, http.StatusOK, reservas)
}

// GetReservasHandler lists all bottle reservations.
func GetReservasHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		queryReservas(w, r, pool, `SELECT `+reservaColumns+` FROM reservas_botella ORDER BY id ASC`)
	}
}

// GetReservasByEntradaHandler lists the reservations attached to one ticket.
func GetReservasByEntradaHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entradaID, err := parsePathInt(r, "entradaId")
		if err != nil {
			writeErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}
		queryReservas(w, r, pool,
			`SELECT `+reservaColumns+` FROM reservas_botella WHERE entrada_id = $1 ORDER BY id ASC`,
			entradaID)
	}
}

// GetReservaByIDHandler returns a single reservation by ID.
func GetReservaByIDHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDFromURL(r)
		if err != nil {
			writeErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}

		var rb models.ReservaBotella
		err = scanReserva(pool.QueryRow(r.Context(),
			`SELECT `+reservaColumns+` FROM reservas_botella WHERE id = $1`, id), &rb)
		if err == pgx.ErrNoRows {
			writeNotFound(w, r, "ReservaBotella no encontrada", id)
			return
		}
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo recuperar la reserva")
			return
		}

		writeJSONResponse(w, http.StatusOK, rb)
	}
}

/*
CreateReservaHandler creates a bottle reservation together with its bottle
detail lines. Everything happens inside one transaction so a failing detail
insert leaves no orphan reservation behind.
*/
func CreateReservaHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.ReservaBotellaRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		tx, err := pool.Begin(r.Context())
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo iniciar la transacción")
			return
		}
		defer tx.Rollback(r.Context())

		var id int
		err = tx.QueryRow(r.Context(), `
			INSERT INTO reservas_botella (aforo, precio_total, tipo_reserva, entrada_id, zona_vip_id)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id`,
			req.Aforo, req.PrecioTotal, req.TipoReserva, req.EntradaID, req.ZonaVipID,
		).Scan(&id)
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo crear la reserva")
			return
		}

		for _, det := range req.Detalles {
			if _, err := tx.Exec(r.Context(), `
				INSERT INTO detalles_reserva_botella (cantidad, precio_unidad, botella_id, reserva_botella_id)
				VALUES ($1, $2, $3, $4)`,
				det.Cantidad, det.PrecioUnidad, det.BotellaID, id,
			); err != nil {
				writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudieron crear los detalles de la reserva")
				return
			}
		}

		if err := tx.Commit(r.Context()); err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo confirmar la transacción")
			return
		}

		writeJSONResponse(w, http.StatusOK,
			models.SuccessResponseCreate{Message: "ReservaBotella creada exitosamente", ID: id})
	}
}

// UpdateReservaHandler replaces a reservation. The path id always wins over the body.
func UpdateReservaHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDFromURL(r)
		if err != nil {
			writeErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}

		var req models.ReservaBotellaRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		tag, err := pool.Exec(r.Context(), `
			UPDATE reservas_botella
			SET aforo = $1, precio_total = $2, tipo_reserva = $3, entrada_id = $4, zona_vip_id = $5
			WHERE id = $6`,
			req.Aforo, req.PrecioTotal, req.TipoReserva, req.EntradaID, req.ZonaVipID, id,
		)
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo actualizar la reserva")
			return
		}
		if tag.RowsAffected() == 0 {
			writeNotFound(w, r, "ReservaBotella no encontrada", id)
			return
		}

		writeJSONResponse(w, http.StatusOK,
			models.SuccessResponse{Message: "ReservaBotella actualizada exitosamente"})
	}
}

// DeleteReservaHandler removes a reservation; its detail lines cascade away.
func DeleteReservaHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDFromURL(r)
		if err != nil {
			writeErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}

		tag, err := pool.Exec(r.Context(), `DELETE FROM reservas_botella WHERE id = $1`, id)
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo eliminar la reserva")
			return
		}
		if tag.RowsAffected() == 0 {
			writeNotFound(w, r, "ReservaBotella no encontrada", id)
			return
		}

		writeJSONResponse(w, http.StatusNoContent, nil)
	}
}

const detalleColumns = `id, cantidad, precio_unidad, botella_id, reserva_botella_id`

func scanDetalle(row pgx.Row, d *models.DetalleReservaBotella) error {
	return row.Scan(&d.ID, &d.Cantidad, &d.PrecioUnidad, &d.BotellaID, &d.ReservaBotellaID)
}

// GetDetallesByReservaHandler lists the bottle lines of one reservation.
func GetDetallesByReservaHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reservaID, err := parsePathInt(r, "reservaId")
		if err != nil {
			writeErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}

		rows, err := pool.Query(r.Context(),
			`SELECT `+detalleColumns+` FROM detalles_reserva_botella WHERE reserva_botella_id = $1 ORDER BY id ASC`,
			reservaID)
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudieron recuperar los detalles")
			return
		}
		defer rows.Close()

		detalles := []models.DetalleReservaBotella{}
		for rows.Next() {
			var d models.DetalleReservaBotella
			if err := scanDetalle(rows, &d); err != nil {
				writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudieron procesar los detalles")
				return
			}
			detalles = append(detalles, d)
		}
		writeJSONResponse(w, http.StatusOK, detalles)
	}
}

// CreateDetalleReservaHandler appends a bottle line to an existing reservation.
func CreateDetalleReservaHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.DetalleReservaBotellaRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}
		if req.ReservaBotellaID <= 0 {
			writeErrorResponse(w, r, http.StatusBadRequest, "idReservaBotella es obligatorio")
			return
		}

		var id int
		err := pool.QueryRow(r.Context(), `
			INSERT INTO detalles_reserva_botella (cantidad, precio_unidad, botella_id, reserva_botella_id)
			VALUES ($1, $2, $3, $4)
			RETURNING id`,
			req.Cantidad, req.PrecioUnidad, req.BotellaID, req.ReservaBotellaID,
		).Scan(&id)
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo crear el detalle de la reserva")
			return
		}

		writeJSONResponse(w, http.StatusOK,
			models.SuccessResponseCreate{Message: "DetalleReservaBotella creado exitosamente", ID: id})
	}
}

// DeleteDetalleReservaHandler removes one bottle line from a reservation.
func DeleteDetalleReservaHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDFromURL(r)
		if err != nil {
			writeErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}

		tag, err := pool.Exec(r.Context(), `DELETE FROM detalles_reserva_botella WHERE id = $1`, id)
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo eliminar el detalle de la reserva")
			return
		}
		if tag.RowsAffected() == 0 {
			writeNotFound(w, r, "DetalleReservaBotella no encontrado", id)
			return
		}

		writeJSONResponse(w, http.StatusNoContent, nil)
	}
}
