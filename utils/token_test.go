package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"luxe-commerce/config"
)

func setTestConfig(t *testing.T) {
	t.Helper()
	config.AppConfig = &config.Config{
		JWTSecret: "test-secret",
		JWTExpiry: "1h",
	}
}

func TestTokenRoundTrip(t *testing.T) {
	setTestConfig(t)

	token, err := GenerateToken(42, "user@example.com", "customer")
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, "customer", claims.Role)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	setTestConfig(t)
	token, err := GenerateToken(42, "user@example.com", "customer")
	require.NoError(t, err)

	config.AppConfig.JWTSecret = "rotated-secret"
	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestReceiptTokenRoundTrip(t *testing.T) {
	setTestConfig(t)

	token, err := GenerateReceiptToken("42/7/abc.jpg", time.Hour)
	require.NoError(t, err)

	path, err := ValidateReceiptToken(token)
	require.NoError(t, err)
	assert.Equal(t, "42/7/abc.jpg", path)
}

func TestReceiptTokenExpires(t *testing.T) {
	setTestConfig(t)

	token, err := GenerateReceiptToken("42/7/abc.jpg", -time.Minute)
	require.NoError(t, err)

	_, err = ValidateReceiptToken(token)
	assert.Error(t, err)
}

func TestReceiptTokenRejectsAuthToken(t *testing.T) {
	setTestConfig(t)

	// An auth token must not grant receipt access even though both are
	// signed with the same secret.
	token, err := GenerateToken(42, "user@example.com", "customer")
	require.NoError(t, err)

	_, err = ValidateReceiptToken(token)
	assert.Error(t, err)
}
