package service

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain/notification"
)

type NotificationResource = ResourceService[
	notification.Notification,
	notification.CreateNotificationInput,
	notification.UpdateNotificationInput,
]

// NotificationService serves the dashboard bell. Listing is newest first.
type NotificationService struct {
	*NotificationResource

	repo notification.Repository
	deps Deps
}

func NewNotificationService(repo notification.Repository, deps Deps) *NotificationService {
	return &NotificationService{
		NotificationResource: NewResourceService("notifications", repo, notification.ErrNotificationNotFound, deps),
		repo:                 repo,
		deps:                 deps,
	}
}

func (s *NotificationService) Unread(ctx context.Context) []notification.Notification {
	_, span := s.start(ctx, "Unread")
	defer span.End()
	return s.repo.GetUnread()
}

func (s *NotificationService) MarkAsRead(ctx context.Context, actor Actor, id string) (notification.Notification, error) {
	ctx, span := s.start(ctx, "MarkAsRead", attribute.String("id", id))
	defer span.End()

	n, ok := s.repo.MarkAsRead(id)
	if !ok {
		err := notFound(notification.ErrNotificationNotFound, id)
		recordErr(span, err)
		return n, err
	}
	s.deps.Audit.LogAsync(ctx, AuditEntry{
		Actor: actor, Action: domain.ActionUpdate, ResourceType: s.Resource(), ResourceID: id,
		Changes: map[string]bool{"read": true},
	})
	return n, nil
}

// MarkAllAsRead returns how many notifications changed.
func (s *NotificationService) MarkAllAsRead(ctx context.Context, actor Actor) int {
	ctx, span := s.start(ctx, "MarkAllAsRead")
	defer span.End()

	n := s.repo.MarkAllAsRead()
	span.SetAttributes(attribute.Int("changed", n))
	if n > 0 {
		s.deps.Audit.LogAsync(ctx, AuditEntry{
			Actor: actor, Action: domain.ActionUpdate, ResourceType: s.Resource(),
			Changes: map[string]int{"markedRead": n},
		})
	}
	return n
}

// Notify raises a notification on behalf of the system. Failures are only
// logged.
func (s *NotificationService) Notify(ctx context.Context, in notification.CreateNotificationInput) {
	if _, err := s.Create(ctx, SystemActor, in); err != nil {
		s.deps.Log.Warn("notification not raised", zap.String("title", in.Title), zap.Error(err))
	}
}
