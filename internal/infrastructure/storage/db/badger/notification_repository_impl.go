package dbbadger

import (
	"context"
	"errors"
	"sort"

	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"

	"github.com/peerdex-network/peerdex-engine/internal/core/domain"
)

type notificationRepositoryImpl struct {
	db *repoManager
}

func newNotificationRepositoryImpl(db *repoManager) domain.NotificationRepository {
	return notificationRepositoryImpl{db}
}

func (r notificationRepositoryImpl) AddNotification(
	ctx context.Context, notification *domain.Notification,
) error {
	var err error
	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		err = r.db.store.TxInsert(tx, notification.Id, notification)
	} else {
		err = r.db.store.Insert(notification.Id, notification)
	}
	if err != nil {
		if err != badgerhold.ErrKeyExists {
			return err
		}
	}
	return nil
}

func (r notificationRepositoryImpl) GetNotification(
	ctx context.Context, notificationId string,
) (*domain.Notification, error) {
	var notification domain.Notification
	var err error
	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		err = r.db.store.TxGet(tx, notificationId, &notification)
	} else {
		err = r.db.store.Get(notificationId, &notification)
	}
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}

	return &notification, nil
}

func (r notificationRepositoryImpl) GetNotificationsForUser(
	ctx context.Context, userId string,
) ([]*domain.Notification, error) {
	notifications, err := r.findNotifications(
		ctx, badgerhold.Where("RecipientId").Eq(userId),
	)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(notifications, func(i, j int) bool {
		if notifications[i].CreatedAt != notifications[j].CreatedAt {
			return notifications[i].CreatedAt > notifications[j].CreatedAt
		}
		return notifications[i].Id > notifications[j].Id
	})

	list := make([]*domain.Notification, 0, len(notifications))
	for i := range notifications {
		list = append(list, &notifications[i])
	}
	return list, nil
}

func (r notificationRepositoryImpl) CountUnreadForUser(
	ctx context.Context, userId string,
) (int, error) {
	notifications, err := r.findNotifications(
		ctx,
		badgerhold.Where("RecipientId").Eq(userId).And("Read").Eq(false),
	)
	if err != nil {
		return 0, err
	}
	return len(notifications), nil
}

func (r notificationRepositoryImpl) UpdateNotification(
	ctx context.Context,
	notificationId string,
	updateFn func(n *domain.Notification) (*domain.Notification, error),
) error {
	return r.db.runInTransaction(ctx, func(ctx context.Context) error {
		currentNotification, err := r.GetNotification(ctx, notificationId)
		if err != nil {
			return err
		}
		if currentNotification == nil {
			return errors.New("notification not found")
		}

		updatedNotification, err := updateFn(currentNotification)
		if err != nil {
			return err
		}

		tx := ctx.Value("tx").(*badger.Txn)
		return r.db.store.TxUpdate(tx, notificationId, *updatedNotification)
	})
}

func (r notificationRepositoryImpl) findNotifications(
	ctx context.Context, query *badgerhold.Query,
) ([]domain.Notification, error) {
	var notifications []domain.Notification
	var err error
	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		err = r.db.store.TxFind(tx, &notifications, query)
	} else {
		err = r.db.store.Find(&notifications, query)
	}

	return notifications, err
}
