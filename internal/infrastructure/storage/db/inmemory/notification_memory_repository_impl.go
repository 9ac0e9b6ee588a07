package inmemory

import (
	"context"
	"errors"

	"github.com/peerdex-network/peerdex-engine/internal/core/domain"
)

type notificationRepositoryImpl struct {
	store *notificationInmemoryStore
}

func newNotificationRepositoryImpl(
	store *notificationInmemoryStore,
) domain.NotificationRepository {
	return &notificationRepositoryImpl{store}
}

func (r *notificationRepositoryImpl) AddNotification(
	_ context.Context, notification *domain.Notification,
) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	if _, ok := r.store.notifications[notification.Id]; ok {
		return nil
	}
	r.store.notifications[notification.Id] = *notification
	r.store.notificationsByRecipient[notification.RecipientId] = append(
		r.store.notificationsByRecipient[notification.RecipientId],
		notification.Id,
	)
	return nil
}

func (r *notificationRepositoryImpl) GetNotification(
	_ context.Context, notificationId string,
) (*domain.Notification, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	return r.getNotification(notificationId), nil
}

func (r *notificationRepositoryImpl) GetNotificationsForUser(
	_ context.Context, userId string,
) ([]*domain.Notification, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	ids := r.store.notificationsByRecipient[userId]
	// newest first
	notifications := make([]*domain.Notification, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		notification := r.store.notifications[ids[i]]
		notifications = append(notifications, &notification)
	}
	return notifications, nil
}

func (r *notificationRepositoryImpl) CountUnreadForUser(
	_ context.Context, userId string,
) (int, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	count := 0
	for _, id := range r.store.notificationsByRecipient[userId] {
		if !r.store.notifications[id].Read {
			count++
		}
	}
	return count, nil
}

func (r *notificationRepositoryImpl) UpdateNotification(
	_ context.Context,
	notificationId string,
	updateFn func(n *domain.Notification) (*domain.Notification, error),
) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	currentNotification := r.getNotification(notificationId)
	if currentNotification == nil {
		return errors.New("notification not found")
	}

	updatedNotification, err := updateFn(currentNotification)
	if err != nil {
		return err
	}

	r.store.notifications[notificationId] = *updatedNotification
	return nil
}

func (r *notificationRepositoryImpl) getNotification(
	notificationId string,
) *domain.Notification {
	notification, ok := r.store.notifications[notificationId]
	if !ok {
		return nil
	}
	return &notification
}
