package handlers

import (
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"clubsync-api/middlewares"
	"clubsync-api/models"
)

func scanDiscoteca(row pgx.Row, d *models.Discoteca) error {
	return row.Scan(&d.ID, &d.Nombre, &d.Direccion, &d.Descripcion,
		&d.CapacidadTotal, &d.Imagen, &d.CiudadID)
}

const discotecaColumns = `id, nombre, direccion, descripcion, capacidad_total, imagen, ciudad_id`

// GetDiscotecasHandler lists all clubs.
func GetDiscotecasHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := pool.Query(r.Context(),
			`SELECT `+discotecaColumns+` FROM discotecas ORDER BY id ASC`)
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudieron recuperar las discotecas")
			return
		}
		defer rows.Close()

		discotecas := []models.Discoteca{}
		for rows.Next() {
			var d models.Discoteca
			if err := scanDiscoteca(rows, &d); err != nil {
				writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudieron procesar las discotecas")
				return
			}
			discotecas = append(discotecas, d)
		}
		writeJSONResponse(w, http.StatusOK, discotecas)
	}
}

// GetDiscotecasByCiudadHandler lists the clubs of one city.
func GetDiscotecasByCiudadHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ciudadID, err := parsePathInt(r, "ciudadId")
		if err != nil {
			writeErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}

		rows, err := pool.Query(r.Context(),
			`SELECT `+discotecaColumns+` FROM discotecas WHERE ciudad_id = $1 ORDER BY id ASC`,
			ciudadID)
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudieron recuperar las discotecas")
			return
		}
		defer rows.Close()

		discotecas := []models.Discoteca{}
		for rows.Next() {
			var d models.Discoteca
			if err := scanDiscoteca(rows, &d); err != nil {
				writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudieron procesar las discotecas")
				return
			}
			discotecas = append(discotecas, d)
		}
		writeJSONResponse(w, http.StatusOK, discotecas)
	}
}

// GetDiscotecaByIDHandler returns a single club by ID.
func GetDiscotecaByIDHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDFromURL(r)
		if err != nil {
			writeErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}

		var d models.Discoteca
		err = scanDiscoteca(pool.QueryRow(r.Context(),
			`SELECT `+discotecaColumns+` FROM discotecas WHERE id = $1`, id), &d)
		if err == pgx.ErrNoRows {
			writeNotFound(w, r, "Discoteca no encontrada", id)
			return
		}
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo recuperar la discoteca")
			return
		}

		writeJSONResponse(w, http.StatusOK, d)
	}
}

/*
CreateDiscotecaHandler creates a club, optionally attaching an administrator
in the same transaction.
*/
func CreateDiscotecaHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.DiscotecaRequest
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
			INSERT INTO discotecas (nombre, direccion, descripcion, capacidad_total, imagen, ciudad_id)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id`,
			req.Nombre, req.Direccion, req.Descripcion, req.CapacidadTotal, req.Imagen, req.CiudadID,
		).Scan(&id)
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo crear la discoteca")
			return
		}

		if req.AdminID != nil {
			if _, err := tx.Exec(r.Context(), `
				INSERT INTO usuario_discoteca (usuario_id, discoteca_id)
				VALUES ($1, $2)
				ON CONFLICT DO NOTHING`,
				*req.AdminID, id,
			); err != nil {
				writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo asignar el administrador")
				return
			}
		}

		if err := tx.Commit(r.Context()); err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo confirmar la transacción")
			return
		}

		writeJSONResponse(w, http.StatusOK,
			models.SuccessResponseCreate{Message: "Discoteca creada exitosamente", ID: id})
	}
}

// UpdateDiscotecaHandler replaces a club. The path id always wins over the body.
func UpdateDiscotecaHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDFromURL(r)
		if err != nil {
			writeErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}

		var req models.DiscotecaRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		tag, err := pool.Exec(r.Context(), `
			UPDATE discotecas
			SET nombre = $1, direccion = $2, descripcion = $3,
			    capacidad_total = $4, imagen = $5, ciudad_id = $6
			WHERE id = $7`,
			req.Nombre, req.Direccion, req.Descripcion, req.CapacidadTotal,
			req.Imagen, req.CiudadID, id,
		)
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo actualizar la discoteca")
			return
		}
		if tag.RowsAffected() == 0 {
			writeNotFound(w, r, "Discoteca no encontrada", id)
			return
		}

		writeJSONResponse(w, http.StatusOK,
			models.SuccessResponse{Message: "Discoteca actualizada exitosamente"})
	}
}

// DeleteDiscotecaHandler removes a club and everything it owns.
func DeleteDiscotecaHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDFromURL(r)
		if err != nil {
			writeErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}

		tag, err := pool.Exec(r.Context(), `DELETE FROM discotecas WHERE id = $1`, id)
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo eliminar la discoteca")
			return
		}
		if tag.RowsAffected() == 0 {
			writeNotFound(w, r, "Discoteca no encontrada", id)
			return
		}

		writeJSONResponse(w, http.StatusNoContent, nil)
	}
}

// GetAdministradaHandler returns the club the authenticated club admin runs.
func GetAdministradaHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := middlewares.GetPrincipal(r.Context())
		if err != nil {
			writeErrorResponse(w, r, http.StatusUnauthorized, "Autenticación requerida")
			return
		}

		var d models.Discoteca
		err = scanDiscoteca(pool.QueryRow(r.Context(), `
			SELECT d.id, d.nombre, d.direccion, d.descripcion, d.capacidad_total, d.imagen, d.ciudad_id
			FROM discotecas d
			JOIN usuario_discoteca ud ON ud.discoteca_id = d.id
			WHERE ud.usuario_id = $1
			ORDER BY d.id ASC
			LIMIT 1`,
			p.UserID), &d)
		if err == pgx.ErrNoRows {
			writeErrorResponse(w, r, http.StatusNotFound, "El usuario no administra ninguna discoteca")
			return
		}
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo recuperar la discoteca administrada")
			return
		}

		writeJSONResponse(w, http.StatusOK, d)
	}
}
