package handlers

import (
	"net/http"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"clubsync-api/middlewares"
	"clubsync-api/models"
)

// LoginHandler authenticates by email and password and returns a JWT.
//
//	@Summary		Log in
//	@Description	Check credentials, issue a signed token and return the account summary.
//	@ID				api.login
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		models.LoginRequest		true	"Credentials"
//	@Success		200		{object}	models.LoginResponse	"Token and account summary"
//	@Failure		401		{object}	models.LoginResponse	"All-null fields"
//	@Router			/auth/login [post]
func LoginHandler(pool *pgxpool.Pool, jwtSecret string, validHours int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		var userID int
		var hash, roleStr string
		var monedero float64
		var puntos int
		err := pool.QueryRow(r.Context(), `
			SELECT id, password_hash, role, monedero, puntos_recompensa
			FROM usuarios
			WHERE email = $1`,
			req.Email,
		).Scan(&userID, &hash, &roleStr, &monedero, &puntos)
		if err != nil {
			// wrong credentials answer with the same null-field body either way
			writeJSONResponse(w, http.StatusUnauthorized, models.LoginResponse{})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil {
			writeJSONResponse(w, http.StatusUnauthorized, models.LoginResponse{})
			return
		}

		role, err := models.ParseRole(roleStr)
		if err != nil {
			log.Error().Str("email", req.Email).Str("role", roleStr).Msg("stored role outside the closed set")
			writeJSONResponse(w, http.StatusUnauthorized, models.LoginResponse{})
			return
		}

		tokenString, expires, err := middlewares.GenerateJWT(req.Email, role, jwtSecret, validHours)
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo generar el token")
			return
		}

		roleOut := string(role)
		resp := models.LoginResponse{
			Token:            &tokenString,
			Expires:          &expires,
			Role:             &roleOut,
			Monedero:         &monedero,
			PuntosRecompensa: &puntos,
		}

		// club admins also learn which club they administer
		if role == models.RoleAdminDiscoteca {
			var discotecaID int
			err := pool.QueryRow(r.Context(), `
				SELECT discoteca_id
				FROM usuario_discoteca
				WHERE usuario_id = $1
				ORDER BY discoteca_id ASC
				LIMIT 1`,
				userID,
			).Scan(&discotecaID)
			if err == nil {
				resp.DiscotecaID = &discotecaID
			} else if err != pgx.ErrNoRows {
				log.Error().Err(err).Int("user_id", userID).Msg("failed to resolve administered club")
			}
		}

		w.Header().Set("Authorization", "Bearer "+tokenString)
		writeJSONResponse(w, http.StatusOK, resp)
	}
}

// RegisterHandler creates a client account.
//
//	@Summary		Register
//	@Description	Create a CLIENTE account with zero wallet and points.
//	@ID				api.register
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		models.RegisterRequest	true	"Account data"
//	@Success		200		{object}	models.SuccessResponse	"Usuario registrado exitosamente"
//	@Failure		400		{object}	models.ErrorResponse	"Duplicate email or bad input"
//	@Router			/auth/register [post]
func RegisterHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.RegisterRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		var exists bool
		err := pool.QueryRow(r.Context(),
			`SELECT EXISTS (SELECT 1 FROM usuarios WHERE email = $1)`, req.Email,
		).Scan(&exists)
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo comprobar el email")
			return
		}
		if exists {
			writeErrorResponse(w, r, http.StatusBadRequest, "El email ya está registrado")
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo procesar la contraseña")
			return
		}

		_, err = pool.Exec(r.Context(), `
			INSERT INTO usuarios (nombre, email, password_hash, role, monedero, puntos_recompensa)
			VALUES ($1, $2, $3, $4, 0, 0)`,
			req.Nombre, req.Email, string(hash), models.RoleCliente,
		)
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo registrar el usuario")
			return
		}

		writeJSONResponse(w, http.StatusOK,
			models.SuccessResponse{Message: "Usuario registrado exitosamente"})
	}
}

// LogoutHandler invalidates the presented token until its natural expiry.
func LogoutHandler(pool *pgxpool.Pool, jwtSecret string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenString, err := middlewares.ExtractToken(r)
		if err != nil {
			writeErrorResponse(w, r, http.StatusUnauthorized, "No hay sesión iniciada")
			return
		}

		claims, err := middlewares.GetValidatedClaims(tokenString, jwtSecret)
		if err != nil {
			writeErrorResponse(w, r, http.StatusUnauthorized, "Token no válido")
			return
		}

		expiration, ok := claims["exp"].(float64)
		if !ok {
			writeErrorResponse(w, r, http.StatusUnauthorized, "Expiración de token no válida")
			return
		}

		_, err = pool.Exec(r.Context(),
			`INSERT INTO token_blacklist (token, expires_at) VALUES ($1, $2)
			 ON CONFLICT (token) DO NOTHING`,
			tokenString, time.Unix(int64(expiration), 0),
		)
		if err != nil {
			writeErrorResponse(w, r, http.StatusInternalServerError, "No se pudo invalidar el token")
			return
		}

		writeJSONResponse(w, http.StatusOK,
			models.SuccessResponse{Message: "Sesión cerrada exitosamente"})
	}
}
