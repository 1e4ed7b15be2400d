package service

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/config"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/repository/memory"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/pkg/auth"
)

func newAuthService(t *testing.T, h *harness) *AuthService {
	t.Helper()
	jwtm := auth.NewJWTManager(config.JWTConfig{
		Secret:          "test-secret-test-secret-test-secret",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: time.Hour,
		Issuer:          "psiklinik-test",
	})
	svc := NewAuthService(h.repos.Users, jwtm, bcrypt.MinCost, h.deps)

	var accounts []Account
	for _, u := range memory.DemoUsers() {
		accounts = append(accounts, Account{User: u.User, Password: u.Password})
	}
	require.NoError(t, svc.Provision(accounts...))
	return svc
}

func TestAuthLogin(t *testing.T) {
	h := newHarness(t, testNow)
	svc := newAuthService(t, h)
	ctx := context.Background()

	res, err := svc.Login(ctx, " Zeynep@psiklinik.com ", "zeynep123", "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, "usr_005", res.User.ID)
	assert.Equal(t, domain.RolePsychologist, res.User.Role)
	assert.Contains(t, res.Permissions, domain.PermFinanceView)
	assert.Contains(t, res.Modules, "therapy_plans")
	assert.Equal(t, "Bearer", res.Tokens.TokenType)
	require.NotNil(t, res.User.LastLoginAt)
	assert.NotEmpty(t, res.User.PasswordHash)

	h.requireAudited(t, domain.ActionLogin, "users", "usr_005")
	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.LoginAttemptsTotal.WithLabelValues("success")))

	pair, err := svc.RefreshToken(ctx, res.Tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)

	_, err = svc.RefreshToken(ctx, res.Tokens.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidCredentials, "access tokens cannot refresh")

	me, err := svc.Me(ctx, "usr_005")
	require.NoError(t, err)
	assert.Equal(t, "zeynep@psiklinik.com", me.User.Email)
}

func TestAuthLoginFailures(t *testing.T) {
	h := newHarness(t, testNow)
	svc := newAuthService(t, h)
	ctx := context.Background()

	_, err := svc.Login(ctx, "nobody@psiklinik.com", "x", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	for range domain.MaxFailedLogins {
		_, err = svc.Login(ctx, "elif@psiklinik.com", "wrong", "")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	}

	// Locked even with the right password.
	_, err = svc.Login(ctx, "elif@psiklinik.com", "elif123", "")
	assert.ErrorIs(t, err, ErrAccountLocked)

	assert.Equal(t, float64(domain.MaxFailedLogins),
		testutil.ToFloat64(h.metrics.LoginAttemptsTotal.WithLabelValues("invalid_password")))
	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.LoginAttemptsTotal.WithLabelValues("locked")))
}

func TestAuthLockExpires(t *testing.T) {
	now := testNow
	h := newHarness(t, testNow)
	h.deps.Now = func() time.Time { return now }
	svc := newAuthService(t, h)
	ctx := context.Background()

	for range domain.MaxFailedLogins {
		_, _ = svc.Login(ctx, "merve@psiklinik.com", "wrong", "")
	}
	_, err := svc.Login(ctx, "merve@psiklinik.com", "merve123", "")
	require.ErrorIs(t, err, ErrAccountLocked)

	now = now.Add(domain.LoginLockDuration + time.Second)
	_, err = svc.Login(ctx, "merve@psiklinik.com", "merve123", "")
	assert.NoError(t, err)
}

func TestAuthListUsers(t *testing.T) {
	h := newHarness(t, testNow)
	svc := newAuthService(t, h)
	assert.Len(t, svc.ListUsers(context.Background()), 5)
}
