package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/pkg/auth"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountLocked      = errors.New("account is temporarily locked due to multiple failed login attempts")
	ErrAccountInactive    = errors.New("account is inactive")
)

type UserRepository interface {
	Seed(users ...domain.User)
	GetByEmail(ctx context.Context, email string) (domain.User, bool)
	GetByID(ctx context.Context, id string) (domain.User, bool)
	List(ctx context.Context) []domain.User
	UpdateLoginAttempt(ctx context.Context, id string, success bool, now time.Time) (domain.User, bool)
}

// Account is a staff user together with the plain-text password it is
// provisioned with.
type Account struct {
	User     domain.User
	Password string
}

// Profile is what the dashboard needs to render for a signed-in user.
type Profile struct {
	User        domain.User         `json:"user"`
	Permissions []domain.Permission `json:"permissions"`
	Modules     []string            `json:"modules"`
}

func profileOf(u domain.User) Profile {
	return Profile{User: u, Permissions: u.Permissions(), Modules: domain.RoleModules(u.Role)}
}

type LoginResult struct {
	Profile
	Tokens *domain.TokenPair `json:"tokens"`
}

type AuthService struct {
	userRepo   UserRepository
	jwtManager *auth.JWTManager
	bcryptCost int
	deps       Deps
}

func NewAuthService(userRepo UserRepository, jwtManager *auth.JWTManager, bcryptCost int, deps Deps) *AuthService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{userRepo: userRepo, jwtManager: jwtManager, bcryptCost: bcryptCost, deps: deps}
}

func (s *AuthService) now() time.Time {
	if s.deps.Now == nil {
		return time.Now()
	}
	return s.deps.Now()
}

// Provision hashes each account's password and stores the users. Existing
// users with the same id are replaced.
func (s *AuthService) Provision(accounts ...Account) error {
	users := make([]domain.User, 0, len(accounts))
	for _, a := range accounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(a.Password), s.bcryptCost)
		if err != nil {
			return fmt.Errorf("hashing password for %s: %w", a.User.Email, err)
		}
		u := a.User
		u.PasswordHash = string(hash)
		users = append(users, u)
	}
	s.userRepo.Seed(users...)
	s.deps.Log.Info("staff accounts provisioned", zap.Int("count", len(users)))
	return nil
}

func (s *AuthService) Login(ctx context.Context, email, password, ip string) (*LoginResult, error) {
	user, ok := s.userRepo.GetByEmail(ctx, email)
	if !ok {
		// Spend a bcrypt round anyway so response time does not reveal
		// whether the email exists.
		_, _ = bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
		s.countLogin("unknown_user")
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		s.countLogin("inactive")
		return nil, ErrAccountInactive
	}

	now := s.now()
	if user.IsLocked(now) {
		s.countLogin("locked")
		return nil, ErrAccountLocked
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.userRepo.UpdateLoginAttempt(ctx, user.ID, false, now)
		s.countLogin("invalid_password")
		s.deps.Log.Warn("failed login attempt",
			zap.String("email", email),
			zap.String("ip", ip),
		)
		return nil, ErrInvalidCredentials
	}

	user, _ = s.userRepo.UpdateLoginAttempt(ctx, user.ID, true, now)

	pair, err := s.jwtManager.GenerateTokenPair(&domain.Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	})
	if err != nil {
		s.deps.Log.Error("failed to generate token pair", zap.Error(err))
		return nil, fmt.Errorf("generating tokens: %w", err)
	}

	s.countLogin("success")
	s.deps.Audit.LogAsync(ctx, AuditEntry{
		Actor:        Actor{UserID: user.ID, Role: user.Role, IP: ip},
		Action:       domain.ActionLogin,
		ResourceType: "users",
		ResourceID:   user.ID,
	})
	s.deps.Log.Info("user logged in",
		zap.String("user_id", user.ID),
		zap.String("ip", ip),
	)

	return &LoginResult{Profile: profileOf(user), Tokens: pair}, nil
}

// RefreshToken issues a new token pair given a valid refresh token.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	// Re-validate user is still active
	user, ok := s.userRepo.GetByID(ctx, claims.UserID)
	if !ok || !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	return s.jwtManager.GenerateTokenPair(&domain.Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	})
}

func (s *AuthService) Me(ctx context.Context, userID string) (Profile, error) {
	user, ok := s.userRepo.GetByID(ctx, userID)
	if !ok {
		return Profile{}, ErrInvalidCredentials
	}
	return profileOf(user), nil
}

func (s *AuthService) ListUsers(ctx context.Context) []domain.User {
	return s.userRepo.List(ctx)
}

func (s *AuthService) countLogin(outcome string) {
	if s.deps.Metrics != nil {
		s.deps.Metrics.LoginAttemptsTotal.WithLabelValues(outcome).Inc()
	}
}
