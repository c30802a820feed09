package handlers

import (
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"clubsync-api/middlewares"
	"clubsync-api/models"
)

const usuarioColumns = `id, nombre, email, role, monedero, puntos_recompensa`

func scanUsuario(row pgx.Row, u *models.Usuario) error {
	return row.Scan(&u.ID, &u.Nombre, &u.Email, &u.Role, &u.Monedero, &u.PuntosRecompensa)
}

// GetUsuariosHandler lists all accounts. Password hashes never leave the database.
func GetUsuariosHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := pool.Query(r.Context(),
			`SELECT `+usuarioColumns+` FROM usuarios ORDER BY id ASC`)
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudieron recuperar los usuarios")
			return
		}
		defer rows.Close()

		usuarios := []models.Usuario{}
		for rows.Next() {
			var u models.Usuario
			if err := scanUsuario(rows, &u); err != nil {
				writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudieron procesar los usuarios")
				return
			}
			usuarios = append(usuarios, u)
		}
		writeJSONResponse(w, http.StatusOK, usuarios)
	}
}

// GetUsuarioByIDHandler returns a single account by ID.
func GetUsuarioByIDHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDFromURL(r)
		if err != nil {
			writeErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}

		var u models.Usuario
		err = scanUsuario(pool.QueryRow(r.Context(),
			`SELECT `+usuarioColumns+` FROM usuarios WHERE id = $1`, id), &u)
		if err == pgx.ErrNoRows {
			writeNotFound(w, r, "Usuario no encontrado", id)
			return
		}
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo recuperar el usuario")
			return
		}

		writeJSONResponse(w, http.StatusOK, u)
	}
}

// UpdateUsuarioHandler replaces an account. The path id always wins over the
// body; the password only changes when the payload carries one, and an empty
// role keeps CLIENTE.
func UpdateUsuarioHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDFromURL(r)
		if err != nil {
			writeErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}

		var req models.UsuarioRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		role := models.RoleCliente
		if req.Role != "" {
			role, err = models.ParseRole(req.Role)
			if err != nil {
				writeErrorResponse(w, r, http.StatusBadRequest, "Rol no válido")
				return
			}
		}

		var tagRows int64
		if req.Password != "" {
			hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
			if err != nil {
				writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo procesar la contraseña")
				return
			}
			tag, err := pool.Exec(r.Context(), `
				UPDATE usuarios
				SET nombre = $1, email = $2, password_hash = $3, role = $4,
				    monedero = $5, puntos_recompensa = $6
				WHERE id = $7`,
				req.Nombre, req.Email, string(hash), role,
				req.Monedero, req.PuntosRecompensa, id,
			)
			if err != nil {
				writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo actualizar el usuario")
				return
			}
			tagRows = tag.RowsAffected()
		} else {
			tag, err := pool.Exec(r.Context(), `
				UPDATE usuarios
				SET nombre = $1, email = $2, role = $3, monedero = $4, puntos_recompensa = $5
				WHERE id = $6`,
				req.Nombre, req.Email, role, req.Monedero, req.PuntosRecompensa, id,
			)
			if err != nil {
				writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo actualizar el usuario")
				return
			}
			tagRows = tag.RowsAffected()
		}

		if tagRows == 0 {
			writeNotFound(w, r, "Usuario no encontrado", id)
			return
		}

		writeJSONResponse(w, http.StatusOK,
			models.SuccessResponse{Message: "Usuario actualizado exitosamente"})
	}
}

// DeleteUsuarioHandler removes an account and everything it owns.
func DeleteUsuarioHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDFromURL(r)
		if err != nil {
			writeErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}

		tag, err := pool.Exec(r.Context(), `DELETE FROM usuarios WHERE id = $1`, id)
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo eliminar el usuario")
			return
		}
		if tag.RowsAffected() == 0 {
			writeNotFound(w, r, "Usuario no encontrado", id)
			return
		}

		writeJSONResponse(w, http.StatusNoContent, nil)
	}
}

// GetPerfilHandler returns the account of the authenticated user.
func GetPerfilHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := middlewares.GetPrincipal(r.Context())
		if err != nil {
			writeErrorResponse(w, r, http.StatusUnauthorized, "Autenticación requerida")
			return
		}

		var u models.Usuario
		err = scanUsuario(pool.QueryRow(r.Context(),
			`SELECT `+usuarioColumns+` FROM usuarios WHERE id = $1`, p.UserID), &u)
		if err == pgx.ErrNoRows {
			writeNotFound(w, r, "Usuario no encontrado", p.UserID)
			return
		}
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo recuperar el perfil")
			return
		}

		writeJSONResponse(w, http.StatusOK, u)
	}
}

// RecargarMonederoHandler tops up the wallet of the authenticated user and
// returns the updated account.
func RecargarMonederoHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := middlewares.GetPrincipal(r.Context())
		if err != nil {
			writeErrorResponse(w, r, http.StatusUnauthorized, "Autenticación requerida")
			return
		}

		var req models.MonederoRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		var u models.Usuario
		err = scanUsuario(pool.QueryRow(r.Context(), `
			UPDATE usuarios
			SET monedero = monedero + $1
			WHERE id = $2
			RETURNING `+usuarioColumns,
			req.Cantidad, p.UserID), &u)
		if err == pgx.ErrNoRows {
			writeNotFound(w, r, "Usuario no encontrado", p.UserID)
			return
		}
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo recargar el monedero")
			return
		}

		writeJSONResponse(w, http.StatusOK, u)
	}
}
