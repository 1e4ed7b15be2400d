package memory

import (
	"context"
	"strings"
	"time"

	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/store"
)

// UserRepository holds staff accounts. Accounts are provisioned at start-up;
// there is no create or delete.
type UserRepository struct {
	s *store.Store[domain.User]
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		s: store.New("users",
			store.WithIndex("email", func(u domain.User) string { return normalizeEmail(u.Email) }),
		),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *UserRepository) Seed(users ...domain.User) {
	r.s.Load(users...)
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (domain.User, bool) {
	matches := r.s.Lookup("email", normalizeEmail(email))
	if len(matches) == 0 {
		return domain.User{}, false
	}
	return matches[0], true
}

func (r *UserRepository) GetByID(_ context.Context, id string) (domain.User, bool) {
	return r.s.Get(id)
}

func (r *UserRepository) List(_ context.Context) []domain.User {
	return r.s.All()
}

func (r *UserRepository) UpdateLoginAttempt(_ context.Context, id string, success bool, now time.Time) (domain.User, bool) {
	return r.s.Update(id, func(u *domain.User) { u.RecordLogin(success, now) })
}
