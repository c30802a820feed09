package middlewares

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"clubsync-api/models"
)

// Create a random 32-byte secret and encode it in Base64.
func generateRandomSecret() (string, error) {
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return "", fmt.Errorf("failed to generate random secret: %w", err)
	}
	return base64.StdEncoding.EncodeToString(secret), nil
}

// GenerateJWT creates a signed token for the given account. The user's email
// rides in the subject claim; issued-at and expiry are always stamped.
func GenerateJWT(email string, role models.Role, secret string, validHours int) (string, int64, error) {
	if validHours <= 0 {
		validHours = 24
	}
	now := time.Now()
	expirationTime := now.Add(time.Duration(validHours) * time.Hour).Unix()

	claims := jwt.MapClaims{
		"sub":  email,
		"role": string(role),
		"iat":  now.Unix(),
		"exp":  expirationTime,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", 0, fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, expirationTime, nil
}

// ValidateJWT parses a token string and verifies signature and expiry.
func ValidateJWT(tokenString string, secret string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// validate the signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(secret), nil
	})
}

// GetValidatedClaims parses and validates the token, returning its claims.
// Malformed, expired and badly signed tokens all collapse to a single error.
func GetValidatedClaims(tokenString, jwtSecret string) (jwt.MapClaims, error) {
	token, err := ValidateJWT(tokenString, jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("invalid or expired token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}

// InitJWTSecret returns the configured secret or generates one as fallback.
func InitJWTSecret(configured string) string {
	if configured != "" {
		return configured
	}

	randomSecret, err := generateRandomSecret()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to generate random JWT secret")
	}

	log.Warn().Msg("JWT_SECRET not set; generated a random secret, tokens will not survive restarts")
	return randomSecret
}
