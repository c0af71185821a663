package security

import (
	"Mingle/internal/api/config"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupConfig(t *testing.T) {
	t.Helper()
	config.Cfg = &config.Config{
		JWT: config.JWTConfig{Secret: "test-secret", ExpireHours: 24},
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	setupConfig(t)

	token, err := GenerateToken(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.EqualValues(t, 42, claims.UserID)
}

func TestValidateTokenRejectsTampered(t *testing.T) {
	setupConfig(t)

	token, err := GenerateToken(42)
	require.NoError(t, err)

	_, err = ValidateToken(token + "x")
	assert.Error(t, err)

	_, err = ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	setupConfig(t)
	token, err := GenerateToken(42)
	require.NoError(t, err)

	config.Cfg.JWT.Secret = "another-secret"
	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestExtractSignature(t *testing.T) {
	setupConfig(t)

	token, err := GenerateToken(42)
	require.NoError(t, err)

	signature, err := ExtractSignature(token)
	require.NoError(t, err)
	parts := strings.Split(token, ".")
	assert.Equal(t, parts[2], signature)

	_, err = ExtractSignature("only.two")
	assert.Error(t, err)
}
