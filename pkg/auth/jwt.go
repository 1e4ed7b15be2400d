package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/config"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain"
)

var (
	ErrTokenExpired      = errors.New("token has expired")
	ErrTokenInvalid      = errors.New("token is invalid")
	ErrTokenTypeMismatch = errors.New("wrong token type")
)

// kind separates access from refresh tokens; a refresh token never
// authenticates an API call.
type kind string

const (
	kindAccess  kind = "access"
	kindRefresh kind = "refresh"
)

// clockSkew is how far NotBefore is backdated.
const clockSkew = 10 * time.Second

type sessionClaims struct {
	jwt.RegisteredClaims
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
	Kind  kind        `json:"token_type"`
}

// JWTManager signs and verifies HS256 session tokens for staff users.
type JWTManager struct {
	key    []byte
	issuer string
	ttl    map[kind]time.Duration
	now    func() time.Time
}

func NewJWTManager(cfg config.JWTConfig) *JWTManager {
	return &JWTManager{
		key:    []byte(cfg.Secret),
		issuer: cfg.Issuer,
		ttl: map[kind]time.Duration{
			kindAccess:  cfg.AccessTokenTTL,
			kindRefresh: cfg.RefreshTokenTTL,
		},
		now: time.Now,
	}
}

// GenerateTokenPair issues a fresh access and refresh token for the same
// identity. ExpiresAt reports the access token's expiry.
func (m *JWTManager) GenerateTokenPair(claims *domain.Claims) (*domain.TokenPair, error) {
	access, expiresAt, err := m.sign(claims, kindAccess)
	if err != nil {
		return nil, fmt.Errorf("signing access token: %w", err)
	}
	refresh, _, err := m.sign(claims, kindRefresh)
	if err != nil {
		return nil, fmt.Errorf("signing refresh token: %w", err)
	}
	return &domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    expiresAt,
		TokenType:    "Bearer",
	}, nil
}

func (m *JWTManager) ValidateAccessToken(token string) (*domain.Claims, error) {
	return m.verify(token, kindAccess)
}

func (m *JWTManager) ValidateRefreshToken(token string) (*domain.Claims, error) {
	return m.verify(token, kindRefresh)
}

func (m *JWTManager) sign(c *domain.Claims, k kind) (string, time.Time, error) {
	issued := m.now()
	expires := issued.Add(m.ttl[k])

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    m.issuer,
			Subject:   c.UserID,
			IssuedAt:  jwt.NewNumericDate(issued),
			NotBefore: jwt.NewNumericDate(issued.Add(-clockSkew)),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
		Email: c.Email,
		Role:  c.Role,
		Kind:  k,
	})
	signed, err := tok.SignedString(m.key)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expires, nil
}

func (m *JWTManager) keyFunc(t *jwt.Token) (any, error) {
	if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
	}
	return m.key, nil
}

func (m *JWTManager) verify(raw string, want kind) (*domain.Claims, error) {
	var sc sessionClaims
	_, err := jwt.ParseWithClaims(raw, &sc, m.keyFunc,
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrTokenExpired
	case err != nil:
		return nil, ErrTokenInvalid
	case sc.Kind != want:
		return nil, ErrTokenTypeMismatch
	case sc.Subject == "" || !sc.Role.IsValid():
		return nil, ErrTokenInvalid
	}
	return &domain.Claims{UserID: sc.Subject, Email: sc.Email, Role: sc.Role}, nil
}
