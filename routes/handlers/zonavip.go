package handlers

import (
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"clubsync-api/models"
)

const zonaColumns = `id, nombre, descripcion, aforo_maximo, estado, discoteca_id`

func scanZona(row pgx.Row, z *models.ZonaVip) error {
	return row.Scan(&z.ID, &z.Nombre, &z.Descripcion, &z.AforoMaximo, &z.Estado, &z.DiscotecaID)
}

func queryZonas(w http.ResponseWriter, r *http.Request, pool *pgxpool.Pool, query string, args ...interface{}) {
	rows, err := pool.Query(r.Context(), query, args...)
	if err != nil {
		writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudieron recuperar las zonas VIP")
		return
	}
	defer rows.Close()

	zonas := []models.ZonaVip{}
	for rows.Next() {
		var z models.ZonaVip
		if err := scanZona(rows, &z); err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudieron procesar las zonas VIP")
			return
		}
		zonas = append(zonas, z)
	}
	writeJSONResponse(w, http.StatusOK, zonas)
}

// GetZonasVipHandler lists all VIP zones.
func GetZonasVipHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		queryZonas(w, r, pool, `SELECT `+zonaColumns+` FROM zonas_vip ORDER BY id ASC`)
	}
}

// GetZonasVipByDiscotecaHandler lists the VIP zones of one club.
func GetZonasVipByDiscotecaHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		discotecaID, err := parsePathInt(r, "discotecaId")
		if err != nil {
			writeErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}
		queryZonas(w, r, pool,
			`SELECT `+zonaColumns+` FROM zonas_vip WHERE discoteca_id = $1 ORDER BY id ASC`,
			discotecaID)
	}
}

// GetZonaVipByIDHandler returns a single VIP zone by ID.
func GetZonaVipByIDHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDFromURL(r)
		if err != nil {
			writeErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}

		var z models.ZonaVip
		err = scanZona(pool.QueryRow(r.Context(),
			`SELECT `+zonaColumns+` FROM zonas_vip WHERE id = $1`, id), &z)
		if err == pgx.ErrNoRows {
			writeNotFound(w, r, "ZonaVip no encontrada", id)
			return
		}
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo recuperar la zona VIP")
			return
		}

		writeJSONResponse(w, http.StatusOK, z)
	}
}

// CreateZonaVipHandler creates a VIP zone.
func CreateZonaVipHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.ZonaVipRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		var id int
		err := pool.QueryRow(r.Context(), `
			INSERT INTO zonas_vip (nombre, descripcion, aforo_maximo, estado, discoteca_id)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id`,
			req.Nombre, req.Descripcion, req.AforoMaximo, req.Estado, req.DiscotecaID,
		).Scan(&id)
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo crear la zona VIP")
			return
		}

		writeJSONResponse(w, http.StatusOK,
			models.SuccessResponseCreate{Message: "ZonaVip creada exitosamente", ID: id})
	}
}

// UpdateZonaVipHandler replaces a VIP zone. The path id always wins over the body.
func UpdateZonaVipHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDFromURL(r)
		if err != nil {
			writeErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}

		var req models.ZonaVipRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		tag, err := pool.Exec(r.Context(), `
			UPDATE zonas_vip
			SET nombre = $1, descripcion = $2, aforo_maximo = $3, estado = $4, discoteca_id = $5
			WHERE id = $6`,
			req.Nombre, req.Descripcion, req.AforoMaximo, req.Estado, req.DiscotecaID, id,
		)
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo actualizar la zona VIP")
			return
		}
		if tag.RowsAffected() == 0 {
			writeNotFound(w, r, "ZonaVip no encontrada", id)
			return
		}

		writeJSONResponse(w, http.StatusOK,
			models.SuccessResponse{Message: "ZonaVip actualizada exitosamente"})
	}
}

// DeleteZonaVipHandler removes a VIP zone; its reservations cascade away.
func DeleteZonaVipHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDFromURL(r)
		if err != nil {
			writeErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}

		tag, err := pool.Exec(r.Context(), `DELETE FROM zonas_vip WHERE id = $1`, id)
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo eliminar la zona VIP")
			return
		}
		if tag.RowsAffected() == 0 {
			writeNotFound(w, r, "ZonaVip no encontrada", id)
			return
		}

		writeJSONResponse(w, http.StatusNoContent, nil)
	}
}
