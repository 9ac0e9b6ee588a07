package application

import (
	"context"

	"github.com/peerdex-network/peerdex-engine/internal/core/domain"
	"github.com/peerdex-network/peerdex-engine/internal/core/ports"
)

// NotificationService is the fan-out target of the order engine. Every call
// to Notify creates one record; consumers deduplicate by comparing unread
// counts, not record identities. Suppression of self-notifications happens
// at the call site, never in here.
type NotificationService interface {
	Notify(
		ctx context.Context,
		recipientId, notificationType, message, orderId string,
	) (*domain.Notification, error)
	MarkRead(ctx context.Context, notificationId string) error
	ListForUser(ctx context.Context, userId string) ([]*domain.Notification, error)
	CountUnreadForUser(ctx context.Context, userId string) (int, error)
}

type notificationService struct {
	repoManager ports.RepoManager
}

// NewNotificationService returns a NotificationService backed by the given
// storage.
func NewNotificationService(repoManager ports.RepoManager) NotificationService {
	return &notificationService{repoManager}
}

func (s *notificationService) Notify(
	ctx context.Context,
	recipientId, notificationType, message, orderId string,
) (*domain.Notification, error) {
	notification, err := domain.NewNotification(
		recipientId, notificationType, message, orderId,
	)
	if err != nil {
		return nil, err
	}

	if err := s.repoManager.NotificationRepository().AddNotification(
		ctx, notification,
	); err != nil {
		return nil, err
	}
	return notification, nil
}

// MarkRead flips the read flag of a notification. Re-invoking it on an
// already read notification is a no-op and never errors.
func (s *notificationService) MarkRead(
	ctx context.Context, notificationId string,
) error {
	notification, err := s.repoManager.NotificationRepository().GetNotification(
		ctx, notificationId,
	)
	if err != nil {
		return err
	}
	if notification == nil {
		return ErrNotificationNotFound
	}
	if notification.Read {
		return nil
	}

	return s.repoManager.NotificationRepository().UpdateNotification(
		ctx, notificationId,
		func(n *domain.Notification) (*domain.Notification, error) {
			n.MarkRead()
			return n, nil
		},
	)
}

func (s *notificationService) ListForUser(
	ctx context.Context, userId string,
) ([]*domain.Notification, error) {
	return s.repoManager.NotificationRepository().GetNotificationsForUser(ctx, userId)
}

func (s *notificationService) CountUnreadForUser(
	ctx context.Context, userId string,
) (int, error) {
	return s.repoManager.NotificationRepository().CountUnreadForUser(ctx, userId)
}
