package memory

import (
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain/notification"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/store"
)

type notificationTable = table[notification.Notification, notification.CreateNotificationInput, notification.UpdateNotificationInput]

// NotificationRepository keeps the newest notification first.
type NotificationRepository struct {
	*notificationTable
}

var _ notification.Repository = (*NotificationRepository)(nil)

func NewNotificationRepository(opts Options) *NotificationRepository {
	s := store.New("notifications",
		store.WithIDs[notification.Notification](opts.ids("ntf_")),
		store.Prepend[notification.Notification](),
	)
	return &NotificationRepository{notificationTable: &notificationTable{s: s, now: opts.clock()}}
}

func (r *NotificationRepository) GetUnread() []notification.Notification {
	return r.s.Filter(func(n notification.Notification) bool { return !n.Read })
}

func (r *NotificationRepository) MarkAsRead(id string) (notification.Notification, bool) {
	return r.s.Update(id, func(n *notification.Notification) { n.Read = true })
}

func (r *NotificationRepository) MarkAllAsRead() int {
	changed := r.s.UpdateWhere(
		func(n notification.Notification) bool { return !n.Read },
		func(n *notification.Notification) { n.Read = true },
	)
	return len(changed)
}
