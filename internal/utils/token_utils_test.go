package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	token, err := GenerateJWT("owner-1", "secret", time.Hour, "budget-tracker")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := ParseOwnerToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "owner-1", claims.Subject)
	assert.Equal(t, "budget-tracker", claims.Issuer)
}

func TestParseJWT_WrongSecret(t *testing.T) {
	token, err := GenerateJWT("owner-1", "secret", time.Hour, "budget-tracker")
	require.NoError(t, err)

	_, err = ParseOwnerToken(token, "another-secret")
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestParseJWT_Expired(t *testing.T) {
	token, err := GenerateJWT("owner-1", "secret", -time.Minute, "budget-tracker")
	require.NoError(t, err)

	_, err = ParseOwnerToken(token, "secret")
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestGenerateJWT_RequiresUser(t *testing.T) {
	_, err := GenerateJWT("", "secret", time.Hour, "budget-tracker")
	assert.Error(t, err)
}

func TestGenerateSigningSecret(t *testing.T) {
	a, err := GenerateSigningSecret(32)
	require.NoError(t, err)
	b, err := GenerateSigningSecret(32)
	require.NoError(t, err)

	assert.Len(t, a, 43) // 32 bytes, unpadded base64
	assert.NotEqual(t, a, b)

	_, err = GenerateSigningSecret(8)
	assert.Error(t, err)
}

func TestParseOwnerToken_RejectsUnsignedToken(t *testing.T) {
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "owner-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ParseOwnerToken(unsigned, "secret")
	assert.ErrorIs(t, err, jwt.ErrSignatureInvalid)
}
