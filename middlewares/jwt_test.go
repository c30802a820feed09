package middlewares

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clubsync-api/models"
)

const testSecret = "unit-test-secret"

func TestGenerateAndValidateJWT(t *testing.T) {
	tokenString, expires, err := GenerateJWT("ana@example.com", models.RoleCliente, testSecret, 1)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)
	assert.Greater(t, expires, time.Now().Unix())

	claims, err := GetValidatedClaims(tokenString, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", claims["sub"])
	assert.Equal(t, "CLIENTE", claims["role"])
}

func TestValidateJWTWrongSecret(t *testing.T) {
	tokenString, _, err := GenerateJWT("ana@example.com", models.RoleCliente, testSecret, 1)
	require.NoError(t, err)

	_, err = GetValidatedClaims(tokenString, "another-secret")
	assert.Error(t, err)
}

func TestValidateJWTExpired(t *testing.T) {
	claims := jwt.MapClaims{
		"sub": "ana@example.com",
		"exp": time.Now().Add(-time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = GetValidatedClaims(tokenString, testSecret)
	assert.Error(t, err)
}

func TestValidateJWTRejectsNonHMAC(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "x"})
	tokenString, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = GetValidatedClaims(tokenString, testSecret)
	assert.Error(t, err)
}

func TestInitJWTSecret(t *testing.T) {
	assert.Equal(t, "configured", InitJWTSecret("configured"))

	generated := InitJWTSecret("")
	assert.NotEmpty(t, generated)
	assert.NotEqual(t, generated, InitJWTSecret(""))
}
