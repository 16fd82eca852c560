package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/your-org/storefront/internal/config"
)

func testConfig() *config.Config {
	cfg := config.FromEnv()
	cfg.JWT.Secret = "0123456789abcdef0123456789abcdef"
	cfg.JWT.AccessTokenExpiry = time.Hour
	cfg.JWT.RefreshTokenExpiry = 24 * time.Hour
	cfg.Security.BcryptCost = bcrypt.MinCost
	return cfg
}

func TestJWT_RoundTrip(t *testing.T) {
	m := NewJWTManager(testConfig())

	access, err := m.GenerateAccessToken("u-1", "ada@example.com")
	require.NoError(t, err)
	claims, err := m.ValidateAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, "user:u-1", claims.Subject)

	_, err = m.ValidateRefreshToken(access)
	assert.Error(t, err, "access token is not a refresh token")

	refresh, err := m.GenerateRefreshToken("u-1", "ada@example.com")
	require.NoError(t, err)
	_, err = m.ValidateRefreshToken(refresh)
	assert.NoError(t, err)
}

func TestJWT_Expired(t *testing.T) {
	m := NewJWTManager(testConfig())
	issued := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return issued }

	token, err := m.GenerateAccessToken("u-1", "ada@example.com")
	require.NoError(t, err)

	m.now = func() time.Time { return issued.Add(2 * time.Hour) }
	_, err = m.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestJWT_WrongSecret(t *testing.T) {
	token, err := NewJWTManager(testConfig()).GenerateAccessToken("u-1", "a@b.c")
	require.NoError(t, err)

	other := testConfig()
	other.JWT.Secret = "ffffffffffffffffffffffffffffffff"
	_, err = NewJWTManager(other).ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	assert.Equal(t, "abc", ExtractTokenFromHeader("Bearer abc"))
	assert.Equal(t, "", ExtractTokenFromHeader("Basic abc"))
	assert.Equal(t, "", ExtractTokenFromHeader("Bearer "))
}

func TestPassword_HashAndVerify(t *testing.T) {
	p := NewPasswordManager(testConfig())

	hash, err := p.HashPassword("Fresh#Mart92")
	require.NoError(t, err)
	assert.NoError(t, p.VerifyPassword("Fresh#Mart92", hash))
	assert.Error(t, p.VerifyPassword("fresh#mart92", hash))
}

func TestPassword_Validate(t *testing.T) {
	p := NewPasswordManager(testConfig())

	tests := map[string]string{
		"short":      "Ab1",
		"no upper":   "fresh#mart92",
		"no lower":   "FRESH#MART92",
		"no number":  "Fresh#Market",
		"sequential": "Fresh#Mart123",
		"letters":    "Abcfresh#92",
		"common":     "MyPassword92",
	}
	for name, pw := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, p.ValidatePassword(pw))
		})
	}
}
