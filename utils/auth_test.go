package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, CheckPasswordHash("correct horse battery staple", hash))
	assert.False(t, CheckPasswordHash("wrong password", hash))
}

func TestAccessTokenRoundTrip(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "test-access-secret")

	token, err := GenerateAccessToken("user-123", "admin", "EMP-01")
	require.NoError(t, err)

	claims, err := ParseToken(token, "ACCESS_TOKEN_SECRET")
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims["sub"])
	assert.Equal(t, "admin", claims["role"])
	assert.Equal(t, "EMP-01", claims["employeeId"])
}

func TestRefreshTokenRejectedAsAccessToken(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "test-access-secret")
	t.Setenv("REFRESH_TOKEN_SECRET", "test-refresh-secret")

	refresh, err := GenerateRefreshToken("user-123")
	require.NoError(t, err)

	_, err = ParseToken(refresh, "ACCESS_TOKEN_SECRET")
	assert.Error(t, err)
}

func TestTokenGenerationRequiresSecret(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "")
	_, err := GenerateAccessToken("user-123", "admin", "EMP-01")
	assert.Error(t, err)
}

func TestValidatePhone(t *testing.T) {
	assert.True(t, ValidatePhone("+919876543210"))
	assert.True(t, ValidatePhone("98765 43210"))
	assert.False(t, ValidatePhone("not-a-number"))
	assert.False(t, ValidatePhone("0"))
}
