package handlers

import (
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"clubsync-api/middlewares"
	"clubsync-api/models"
)

const eventoColumns = `id, nombre, fecha_hora, descripcion, precio_base_entrada,
	precio_base_reservado, capacidad, tipo_evento, estado, imagen,
	discoteca_id, dj_id, usuario_id`

func scanEvento(row pgx.Row, e *models.Evento) error {
	return row.Scan(&e.ID, &e.Nombre, &e.FechaHora, &e.Descripcion,
		&e.PrecioBaseEntrada, &e.PrecioBaseReservado, &e.Capacidad,
		&e.TipoEvento, &e.Estado, &e.Imagen,
		&e.DiscotecaID, &e.DjID, &e.UsuarioID)
}

func queryEventos(w http.ResponseWriter, r *http.Request, pool *pgxpool.Pool, query string, args ...interface{}) {
	rows, err := pool.Query(r.Context(), query, args...)
	if err != nil {
		writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudieron recuperar los eventos")
		return
	}
	defer rows.Close()

	eventos := []models.Evento{}
	for rows.Next() {
		var e models.Evento
		if err := scanEvento(rows, &e); err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudieron procesar los eventos")
			return
		}
		eventos = append(eventos, e)
	}
	writeJSONResponse(w, http.StatusOK, eventos)
}

// GetEventosHandler lists all events.
//
//	@Summary		Get all events
//	@Description	Retrieve every event ordered by date.
//	@ID				api.getEventos
//	@Tags			eventos
//	@Produce		json
//	@Success		200	{array}		models.Evento			"List of events"
//	@Failure		500	{object}	models.ErrorResponse	"Internal Server Error"
//	@Router			/eventos [get]
func GetEventosHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		queryEventos(w, r, pool,
			`SELECT `+eventoColumns+` FROM eventos ORDER BY fecha_hora ASC`)
	}
}

// GetEventosByDiscotecaHandler lists the events of one club.
//
//	@Summary		Get events by club
//	@ID				api.getEventosByDiscoteca
//	@Tags			eventos
//	@Produce		json
//	@Param			discotecaId	path		int	true	"Club ID"
//	@Success		200			{array}		models.Evento
//	@Failure		500			{object}	models.ErrorResponse
//	@Router			/eventos/discoteca/{discotecaId} [get]
func GetEventosByDiscotecaHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		discotecaID, err := parsePathInt(r, "discotecaId")
		if err != nil {
			writeErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}
		queryEventos(w, r, pool,
			`SELECT `+eventoColumns+` FROM eventos WHERE discoteca_id = $1 ORDER BY fecha_hora ASC`,
			discotecaID)
	}
}

// GetEventosActivosByDiscotecaHandler lists only the ACTIVO events of one club.
//
//	@Summary		Get active events by club
//	@ID				api.getEventosActivosByDiscoteca
//	@Tags			eventos
//	@Produce		json
//	@Param			discotecaId	path		int	true	"Club ID"
//	@Success		200			{array}		models.Evento
//	@Failure		500			{object}	models.ErrorResponse
//	@Router			/eventos/discoteca/{discotecaId}/activos [get]
func GetEventosActivosByDiscotecaHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		discotecaID, err := parsePathInt(r, "discotecaId")
		if err != nil {
			writeErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}
		queryEventos(w, r, pool,
			`SELECT `+eventoColumns+` FROM eventos
			 WHERE discoteca_id = $1 AND estado = $2
			 ORDER BY fecha_hora ASC`,
			discotecaID, models.EventoActivo)
	}
}

// GetEventosByDjHandler lists the events a DJ plays.
func GetEventosByDjHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		djID, err := parsePathInt(r, "djId")
		if err != nil {
			writeErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}
		queryEventos(w, r, pool,
			`SELECT `+eventoColumns+` FROM eventos WHERE dj_id = $1 ORDER BY fecha_hora ASC`,
			djID)
	}
}

// GetEventosAdministradosHandler lists the events of the club the
// authenticated club admin runs.
func GetEventosAdministradosHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := middlewares.GetPrincipal(r.Context())
		if err != nil {
			writeErrorResponse(w, r, http.StatusUnauthorized, "Autenticación requerida")
			return
		}
		queryEventos(w, r, pool,
			`SELECT `+eventoColumns+` FROM eventos
			 WHERE discoteca_id IN (
			 	SELECT discoteca_id FROM usuario_discoteca WHERE usuario_id = $1
			 )
			 ORDER BY fecha_hora ASC`,
			p.UserID)
	}
}

// GetEventoByIDHandler returns a single event by ID.
//
//	@Summary		Get an event by ID
//	@ID				api.getEventoByID
//	@Tags			eventos
//	@Produce		json
//	@Param			id	path		int	true	"Event ID"
//	@Success		200	{object}	models.Evento
//	@Failure		404	{object}	models.ErrorResponse
//	@Router			/eventos/{id} [get]
func GetEventoByIDHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDFromURL(r)
		if err != nil {
			writeErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}

		var e models.Evento
		err = scanEvento(pool.QueryRow(r.Context(),
			`SELECT `+eventoColumns+` FROM eventos WHERE id = $1`, id), &e)
		if err == pgx.ErrNoRows {
			writeNotFound(w, r, "Evento no encontrado", id)
			return
		}
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo recuperar el evento")
			return
		}

		writeJSONResponse(w, http.StatusOK, e)
	}
}

// CreateEventoHandler creates an event.
//
//	@Summary		Create a new event
//	@ID				api.createEvento
//	@Tags			eventos
//	@Accept			json
//	@Produce		json
//	@Param			body	body		models.EventoRequest	true	"Payload to create an event"
//	@Success		200		{object}	models.SuccessResponseCreate
//	@Failure		400		{object}	models.ErrorResponse
//	@Security		BearerAuth
//	@Router			/eventos [post]
func CreateEventoHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.EventoRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		fechaHora, err := dateToRFC3339(req.FechaHora)
		if err != nil {
			writeErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}

		estado := req.Estado
		if estado == "" {
			estado = models.EventoActivo
		}

		var id int
		err = pool.QueryRow(r.Context(), `
			INSERT INTO eventos (nombre, fecha_hora, descripcion, precio_base_entrada,
			                     precio_base_reservado, capacidad, tipo_evento, estado,
			                     imagen, discoteca_id, dj_id, usuario_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			RETURNING id`,
			req.Nombre, fechaHora, req.Descripcion, req.PrecioBaseEntrada,
			req.PrecioBaseReservado, req.Capacidad, req.TipoEvento, estado,
			req.Imagen, req.DiscotecaID, req.DjID, req.UsuarioID,
		).Scan(&id)
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo crear el evento")
			return
		}

		writeJSONResponse(w, http.StatusOK,
			models.SuccessResponseCreate{Message: "Evento creado exitosamente", ID: id})
	}
}

// UpdateEventoHandler replaces an event. The path id always wins over the body.
func UpdateEventoHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDFromURL(r)
		if err != nil {
			writeErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}

		var req models.EventoRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		fechaHora, err := dateToRFC3339(req.FechaHora)
		if err != nil {
			writeErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}

		estado := req.Estado
		if estado == "" {
			estado = models.EventoActivo
		}

		tag, err := pool.Exec(r.Context(), `
			UPDATE eventos
			SET nombre = $1, fecha_hora = $2, descripcion = $3, precio_base_entrada = $4,
			    precio_base_reservado = $5, capacidad = $6, tipo_evento = $7, estado = $8,
			    imagen = $9, discoteca_id = $10, dj_id = $11, usuario_id = $12
			WHERE id = $13`,
			req.Nombre, fechaHora, req.Descripcion, req.PrecioBaseEntrada,
			req.PrecioBaseReservado, req.Capacidad, req.TipoEvento, estado,
			req.Imagen, req.DiscotecaID, req.DjID, req.UsuarioID, id,
		)
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo actualizar el evento")
			return
		}
		if tag.RowsAffected() == 0 {
			writeNotFound(w, r, "Evento no encontrado", id)
			return
		}

		writeJSONResponse(w, http.StatusOK,
			models.SuccessResponse{Message: "Evento actualizado exitosamente"})
	}
}

// DeleteEventoHandler removes an event; its tickets cascade away.
func DeleteEventoHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDFromURL(r)
		if err != nil {
			writeErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}

		tag, err := pool.Exec(r.Context(), `DELETE FROM eventos WHERE id = $1`, id)
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo eliminar el evento")
			return
		}
		if tag.RowsAffected() == 0 {
			writeNotFound(w, r, "Evento no encontrado", id)
			return
		}

		writeJSONResponse(w, http.StatusNoContent, nil)
	}
}
