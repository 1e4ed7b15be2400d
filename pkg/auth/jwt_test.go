package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/config"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain"
)

func testManager() *JWTManager {
	return NewJWTManager(config.JWTConfig{
		Secret:          "test-secret-that-is-long-enough-123456",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: time.Hour,
		Issuer:          "psiklinik-test",
	})
}

func TestTokenRoundTrip(t *testing.T) {
	m := testManager()
	in := &domain.Claims{UserID: "usr_005", Email: "zeynep@psiklinik.com", Role: domain.RolePsychologist}

	pair, err := m.GenerateTokenPair(in)
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)

	got, err := m.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, in, got)

	_, err = m.ValidateAccessToken(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenTypeMismatch)

	got, err = m.ValidateRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "usr_005", got.UserID)
}

func TestExpiredToken(t *testing.T) {
	m := testManager()
	issued := time.Now().Add(-time.Hour)
	m.now = func() time.Time { return issued }

	pair, err := m.GenerateTokenPair(&domain.Claims{UserID: "usr_001", Role: domain.RoleAdmin})
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestForeignSignatureRejected(t *testing.T) {
	pair, err := testManager().GenerateTokenPair(&domain.Claims{UserID: "usr_001", Role: domain.RoleAdmin})
	require.NoError(t, err)

	other := NewJWTManager(config.JWTConfig{
		Secret: "a-completely-different-secret-value-xyz", Issuer: "psiklinik-test",
		AccessTokenTTL: time.Minute, RefreshTokenTTL: time.Minute,
	})
	_, err = other.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = other.ValidateAccessToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
