package application_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/peerdex-network/peerdex-engine/internal/core/application"
	"github.com/peerdex-network/peerdex-engine/internal/core/domain"
)

func TestNotify(t *testing.T) {
	t.Parallel()

	svc := newTestServices()

	notification, err := svc.notificationSvc.Notify(
		ctx, "user-1", domain.NotificationTypeNewOrder, "New order", "order-1",
	)
	require.NoError(t, err)
	require.NotEmpty(t, notification.Id)
	require.False(t, notification.Read)

	// every call creates one record, duplicates included
	_, err = svc.notificationSvc.Notify(
		ctx, "user-1", domain.NotificationTypeNewOrder, "New order", "order-1",
	)
	require.NoError(t, err)

	list, err := svc.notificationSvc.ListForUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, list, 2)

	unread, err := svc.notificationSvc.CountUnreadForUser(ctx, "user-1")
	require.NoError(t, err)
	require.Equal(t, 2, unread)
}

func TestFailingNotify(t *testing.T) {
	t.Parallel()

	svc := newTestServices()

	notification, err := svc.notificationSvc.Notify(
		ctx, "", domain.NotificationTypeNewOrder, "New order", "order-1",
	)
	require.ErrorIs(t, err, domain.ErrNotificationMissingRecipient)
	require.Nil(t, notification)
}

func TestMarkReadIsIdempotent(t *testing.T) {
	t.Parallel()

	svc := newTestServices()
	notification, err := svc.notificationSvc.Notify(
		ctx, "user-1", domain.NotificationTypeNewOrder, "New order", "order-1",
	)
	require.NoError(t, err)

	require.NoError(t, svc.notificationSvc.MarkRead(ctx, notification.Id))
	require.NoError(t, svc.notificationSvc.MarkRead(ctx, notification.Id))

	unread, err := svc.notificationSvc.CountUnreadForUser(ctx, "user-1")
	require.NoError(t, err)
	require.Zero(t, unread)
}

func TestFailingMarkRead(t *testing.T) {
	t.Parallel()

	svc := newTestServices()
	err := svc.notificationSvc.MarkRead(ctx, "missing")
	require.ErrorIs(t, err, application.ErrNotificationNotFound)
}

func TestListForUserNewestFirst(t *testing.T) {
	t.Parallel()

	svc := newTestServices()
	first, err := svc.notificationSvc.Notify(
		ctx, "user-1", domain.NotificationTypeNewOrder, "first", "order-1",
	)
	require.NoError(t, err)
	second, err := svc.notificationSvc.Notify(
		ctx, "user-1", domain.NotificationTypeOrderPaid, "second", "order-1",
	)
	require.NoError(t, err)

	list, err := svc.notificationSvc.ListForUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, second.Id, list[0].Id)
	require.Equal(t, first.Id, list[1].Id)
}
