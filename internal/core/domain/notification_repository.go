package domain

import "context"

// NotificationRepository is the abstraction for any kind of database
// intended to persist Notifications.
type NotificationRepository interface {
	// AddNotification persists a new notification.
	AddNotification(ctx context.Context, notification *Notification) error
	// GetNotification returns the notification with the given id, or nil if
	// not found.
	GetNotification(ctx context.Context, notificationId string) (*Notification, error)
	// GetNotificationsForUser returns all the notifications addressed to the
	// given user, newest first.
	GetNotificationsForUser(ctx context.Context, userId string) ([]*Notification, error)
	// CountUnreadForUser returns the number of unread notifications of the
	// given user.
	CountUnreadForUser(ctx context.Context, userId string) (int, error)
	// UpdateNotification commits the changes made by updateFn to the
	// notification in a transactional way.
	UpdateNotification(
		ctx context.Context,
		notificationId string,
		updateFn func(n *Notification) (*Notification, error),
	) error
}
