package service

import (
	"errors"
	"fmt"

	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain"
)

var (
	ErrForbidden = errors.New("forbidden: insufficient permissions")
	// ErrNotFound is matched by every resource-specific not-found error the
	// services return.
	ErrNotFound = errors.New("not found")
)

type notFoundError struct {
	err error
	id  string
}

func (e *notFoundError) Error() string { return fmt.Sprintf("%s: %s", e.err, e.id) }

func (e *notFoundError) Unwrap() []error { return []error{e.err, ErrNotFound} }

func notFound(err error, id string) error {
	return &notFoundError{err: err, id: id}
}

// Actor identifies who is calling a service, for audit and logging.
type Actor struct {
	UserID    string
	Role      domain.Role
	IP        string
	RequestID string
}

// SystemActor is used for background work such as the overdue sweeper.
var SystemActor = Actor{UserID: "system"}

type AuditEntry struct {
	Actor        Actor
	Action       domain.AuditAction
	ResourceType string
	ResourceID   string
	Changes      any
}
