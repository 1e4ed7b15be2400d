package notification

import (
	"errors"
	"time"

	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain"
)

var ErrNotificationNotFound = errors.New("notification not found")

type Type string

const (
	TypeInfo    Type = "info"
	TypeWarning Type = "warning"
	TypeError   Type = "error"
	TypeSuccess Type = "success"
)

func (t Type) IsValid() bool {
	switch t {
	case TypeInfo, TypeWarning, TypeError, TypeSuccess:
		return true
	}
	return false
}

type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      Type      `json:"type"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
	UserID    string    `json:"userId"`
}

func (n Notification) Identifier() string { return n.ID }

type CreateNotificationInput struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Type    Type   `json:"type"`
	UserID  string `json:"userId"`
}

func (in CreateNotificationInput) Validate() error {
	var v domain.Validator
	v.Required(in.Title, "title")
	v.Check(in.Type.IsValid(), "type is invalid")
	return v.Err()
}

// Build stamps the creation time and starts the notification unread.
func (in CreateNotificationInput) Build(id string, now time.Time) Notification {
	return Notification{
		ID:        id,
		Title:     in.Title,
		Message:   in.Message,
		Type:      in.Type,
		Read:      false,
		CreatedAt: now.UTC(),
		UserID:    in.UserID,
	}
}

type UpdateNotificationInput struct {
	Title   *string `json:"title,omitempty"`
	Message *string `json:"message,omitempty"`
	Type    *Type   `json:"type,omitempty"`
	Read    *bool   `json:"read,omitempty"`
}

func (in UpdateNotificationInput) Validate() error {
	var v domain.Validator
	if in.Title != nil {
		v.Required(*in.Title, "title")
	}
	if in.Type != nil {
		v.Check(in.Type.IsValid(), "type is invalid")
	}
	return v.Err()
}

func (in UpdateNotificationInput) Apply(n *Notification, _ time.Time) {
	if in.Title != nil {
		n.Title = *in.Title
	}
	if in.Message != nil {
		n.Message = *in.Message
	}
	if in.Type != nil {
		n.Type = *in.Type
	}
	if in.Read != nil {
		n.Read = *in.Read
	}
}

type Repository interface {
	domain.Repository[Notification, CreateNotificationInput, UpdateNotificationInput]

	GetUnread() []Notification
	MarkAsRead(id string) (Notification, bool)
	// MarkAllAsRead returns how many notifications flipped to read.
	MarkAllAsRead() int
}
