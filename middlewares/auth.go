package middlewares

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"clubsync-api/models"
)

// context key type
type contextKey string

const principalKey contextKey = "principal"

// Principal is the authenticated identity bound to a request. It replaces the
// raw claims map so downstream code matches on the closed Role type.
type Principal struct {
	UserID int
	Email  string
	Role   models.Role
}

// ExtractToken pulls the bearer token out of the Authorization header.
func ExtractToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", errors.New("missing Authorization header")
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		return "", errors.New("malformed Authorization header")
	}

	return tokenString, nil
}

/*
Identify resolves the caller's identity for every request.

No Authorization header means the request proceeds unauthenticated; a present
but invalid token (malformed, expired, bad signature, blacklisted) is treated
identically, only logged. A valid token loads the user row named by the
subject claim and binds a Principal to the request context.
*/
func Identify(pool *pgxpool.Pool, jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, err := ExtractToken(r)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			// check if the token is in the blacklist
			var blacklisted bool
			err = pool.QueryRow(r.Context(),
				`SELECT EXISTS (SELECT 1 FROM token_blacklist WHERE token = $1)`,
				tokenString,
			).Scan(&blacklisted)
			if err != nil || blacklisted {
				log.Debug().Str("path", r.URL.Path).Msg("blacklisted or uncheckable token, proceeding unauthenticated")
				next.ServeHTTP(w, r)
				return
			}

			claims, err := GetValidatedClaims(tokenString, jwtSecret)
			if err != nil {
				log.Debug().Err(err).Str("path", r.URL.Path).Msg("invalid token, proceeding unauthenticated")
				next.ServeHTTP(w, r)
				return
			}

			email, ok := claims["sub"].(string)
			if !ok || email == "" {
				next.ServeHTTP(w, r)
				return
			}

			var p Principal
			var roleStr string
			err = pool.QueryRow(r.Context(),
				`SELECT id, email, role FROM usuarios WHERE email = $1`,
				email,
			).Scan(&p.UserID, &p.Email, &roleStr)
			if err != nil {
				log.Debug().Str("email", email).Msg("token subject has no user row, proceeding unauthenticated")
				next.ServeHTTP(w, r)
				return
			}

			role, err := models.ParseRole(roleStr)
			if err != nil {
				log.Warn().Str("email", email).Str("role", roleStr).Msg("user row carries unknown role")
				next.ServeHTTP(w, r)
				return
			}
			p.Role = role

			ctx := context.WithValue(r.Context(), principalKey, &p)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetPrincipal retrieves the authenticated identity from the request context.
func GetPrincipal(ctx context.Context) (*Principal, error) {
	p, ok := ctx.Value(principalKey).(*Principal)
	if !ok || p == nil {
		return nil, errors.New("no authenticated principal in context")
	}
	return p, nil
}

// WithPrincipal binds an identity to the context. Exposed for tests.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// RequireAuth rejects requests that carry no authenticated principal.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := GetPrincipal(r.Context()); err != nil {
			writeAuthError(w, r, http.StatusUnauthorized, "Autenticación requerida")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole gates a subtree to the given roles. Missing identity is 401,
// a role outside the allow-list is 403.
func RequireRole(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, err := GetPrincipal(r.Context())
			if err != nil {
				writeAuthError(w, r, http.StatusUnauthorized, "Autenticación requerida")
				return
			}

			if !p.Role.Valid() {
				writeAuthError(w, r, http.StatusForbidden, "Permisos insuficientes")
				return
			}
			for _, role := range roles {
				if p.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			writeAuthError(w, r, http.StatusForbidden, "Permisos insuficientes")
		})
	}
}

func writeAuthError(w http.ResponseWriter, r *http.Request, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(models.ErrorResponse{
		Timestamp: time.Now().UTC(),
		Status:    status,
		Error:     http.StatusText(status),
		Message:   message,
		Path:      r.URL.Path,
	})
}

// String implements fmt.Stringer for log fields.
func (p *Principal) String() string {
	return fmt.Sprintf("%d<%s>", p.UserID, p.Role)
}
