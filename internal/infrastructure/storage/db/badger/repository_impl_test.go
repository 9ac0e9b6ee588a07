package dbbadger

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/peerdex-network/peerdex-engine/internal/core/domain"
	"github.com/peerdex-network/peerdex-engine/internal/core/ports"
)

var ctx = context.Background()

func newTestManager(t *testing.T) (ports.RepoManager, ports.PriceStore) {
	repoManager, priceStore, err := NewRepoManager(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(repoManager.Close)
	return repoManager, priceStore
}

func newTestOffer(t *testing.T) *domain.Offer {
	offer, err := domain.NewOffer(
		"owner-1", "alice", domain.TradeTypeSell, "BTC", "USD",
		decimal.NewFromInt(50000),
		domain.Limits{Min: decimal.NewFromInt(100), Max: decimal.NewFromInt(1000)},
		decimal.NewFromFloat(0.5),
		[]string{"bank transfer"}, nil, "",
	)
	require.NoError(t, err)
	return offer
}

func TestOfferRoundTrip(t *testing.T) {
	repoManager, _ := newTestManager(t)
	repo := repoManager.OfferRepository()

	offer := newTestOffer(t)
	require.NoError(t, repo.AddOffer(ctx, offer))

	stored, err := repo.GetOffer(ctx, offer.Id)
	require.NoError(t, err)
	require.Equal(t, offer.Id, stored.Id)
	require.True(t, stored.Price.Equal(offer.Price))

	missing, err := repo.GetOffer(ctx, "missing")
	require.NoError(t, err)
	require.Nil(t, missing)

	err = repo.UpdateOffer(ctx, offer.Id,
		func(o *domain.Offer) (*domain.Offer, error) {
			o.Deactivate()
			return o, nil
		},
	)
	require.NoError(t, err)

	stored, err = repo.GetOffer(ctx, offer.Id)
	require.NoError(t, err)
	require.False(t, stored.Active)

	all, err := repo.GetAllOffers(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	owned, err := repo.GetOffersForOwner(ctx, "owner-1")
	require.NoError(t, err)
	require.Len(t, owned, 1)
}

func TestOrderRoundTrip(t *testing.T) {
	repoManager, _ := newTestManager(t)
	repo := repoManager.OrderRepository()

	offer := newTestOffer(t)
	order := domain.NewOrder(
		offer, "taker-1",
		decimal.NewFromInt(500), decimal.NewFromFloat(0.01),
		"bank transfer", 15*time.Minute,
	)
	require.NoError(t, repo.AddOrder(ctx, order))

	stored, err := repo.GetOrder(ctx, order.Id)
	require.NoError(t, err)
	require.True(t, stored.IsPending())

	// visible from both sides of the trade
	buyerOrders, err := repo.GetOrdersForUser(ctx, "taker-1")
	require.NoError(t, err)
	require.Len(t, buyerOrders, 1)
	sellerOrders, err := repo.GetOrdersForUser(ctx, "owner-1")
	require.NoError(t, err)
	require.Len(t, sellerOrders, 1)

	err = repo.UpdateOrder(ctx, order.Id,
		func(o *domain.Order) (*domain.Order, error) {
			if err := o.MarkPaid("taker-1"); err != nil {
				return nil, err
			}
			return o, nil
		},
	)
	require.NoError(t, err)

	stored, err = repo.GetOrder(ctx, order.Id)
	require.NoError(t, err)
	require.True(t, stored.IsAwaitingRelease())
}

func TestUpdateOfferSerializesConcurrentReservations(t *testing.T) {
	repoManager, _ := newTestManager(t)
	repo := repoManager.OfferRepository()

	offer := newTestOffer(t)
	require.NoError(t, repo.AddOffer(ctx, offer))

	// two reservations racing for the last units of the same offer: only one
	// can win, the other must re-read the drained availability and fail.
	amount := decimal.NewFromFloat(0.4)
	reserve := func() error {
		return repo.UpdateOffer(ctx, offer.Id,
			func(o *domain.Offer) (*domain.Offer, error) {
				// widen the window between read and commit
				time.Sleep(200 * time.Millisecond)
				if err := o.Reserve(amount); err != nil {
					return nil, err
				}
				return o, nil
			},
		)
	}

	errChan := make(chan error, 2)
	go func() { errChan <- reserve() }()
	go func() { errChan <- reserve() }()

	failures := 0
	for i := 0; i < 2; i++ {
		if err := <-errChan; err != nil {
			require.ErrorIs(t, err, domain.ErrOfferInsufficientLiquidity)
			failures++
		}
	}
	require.Equal(t, 1, failures)

	stored, err := repo.GetOffer(ctx, offer.Id)
	require.NoError(t, err)
	require.True(t, stored.AvailableAmount.Equal(decimal.NewFromFloat(0.1)))
}

func TestGetOrdersNewestFirst(t *testing.T) {
	repoManager, _ := newTestManager(t)
	repo := repoManager.OrderRepository()

	offer := newTestOffer(t)
	base := time.Now().UnixMilli()
	// the first two fall within the same wall-clock second
	for _, offset := range []int64{400, 0, 5000} {
		order := domain.NewOrder(
			offer, "taker-1",
			decimal.NewFromInt(500), decimal.NewFromFloat(0.01),
			"bank transfer", 15*time.Minute,
		)
		order.CreatedAt = base + offset
		require.NoError(t, repo.AddOrder(ctx, order))
	}

	orders, err := repo.GetOrdersForUser(ctx, "taker-1")
	require.NoError(t, err)
	require.Len(t, orders, 3)
	require.Equal(t, base+5000, orders[0].CreatedAt)
	require.Equal(t, base+400, orders[1].CreatedAt)
	require.Equal(t, base, orders[2].CreatedAt)

	forOffer, err := repo.GetOrdersForOffer(ctx, offer.Id)
	require.NoError(t, err)
	require.Len(t, forOffer, 3)
	require.Equal(t, base+5000, forOffer[0].CreatedAt)
}

func TestChatRoundTrip(t *testing.T) {
	repoManager, _ := newTestManager(t)
	repo := repoManager.ChatRepository()

	// inserted out of order, read back sorted by timestamp
	second, err := domain.NewChatMessage("order-1", "system", "second", 2000)
	require.NoError(t, err)
	first, err := domain.NewChatMessage("order-1", "system", "first", 1000)
	require.NoError(t, err)
	other, err := domain.NewChatMessage("order-2", "system", "other", 1500)
	require.NoError(t, err)

	for _, message := range []*domain.ChatMessage{second, first, other} {
		require.NoError(t, repo.AddMessage(ctx, message))
	}

	messages, err := repo.GetMessages(ctx, "order-1")
	require.NoError(t, err)
	require.Len(t, messages, 2)
	require.Equal(t, "first", messages[0].Text)
	require.Equal(t, "second", messages[1].Text)

	count, err := repo.CountMessages(ctx, "order-1")
	require.NoError(t, err)
	require.Equal(t, 2, count)
}

func TestNotificationRoundTrip(t *testing.T) {
	repoManager, _ := newTestManager(t)
	repo := repoManager.NotificationRepository()

	notification, err := domain.NewNotification(
		"user-1", domain.NotificationTypeNewOrder, "New order", "order-1",
	)
	require.NoError(t, err)
	require.NoError(t, repo.AddNotification(ctx, notification))

	unread, err := repo.CountUnreadForUser(ctx, "user-1")
	require.NoError(t, err)
	require.Equal(t, 1, unread)

	err = repo.UpdateNotification(ctx, notification.Id,
		func(n *domain.Notification) (*domain.Notification, error) {
			n.MarkRead()
			return n, nil
		},
	)
	require.NoError(t, err)

	unread, err = repo.CountUnreadForUser(ctx, "user-1")
	require.NoError(t, err)
	require.Zero(t, unread)

	list, err := repo.GetNotificationsForUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.True(t, list[0].Read)
}

func TestPriceStoreRoundTrip(t *testing.T) {
	_, priceStore := newTestManager(t)

	require.NoError(t, priceStore.UpdatePrices(ctx, map[string]decimal.Decimal{
		"BTC": decimal.RequireFromString("50000.12345678"),
	}))

	prices, err := priceStore.GetPrices(ctx)
	require.NoError(t, err)
	require.True(t,
		prices["BTC"].Equal(decimal.RequireFromString("50000.12345678")),
	)
}

func TestRunTransactionRollsBackOnError(t *testing.T) {
	repoManager, _ := newTestManager(t)
	offer := newTestOffer(t)

	_, err := repoManager.RunTransaction(ctx, false,
		func(ctx context.Context) (interface{}, error) {
			if err := repoManager.OfferRepository().AddOffer(ctx, offer); err != nil {
				return nil, err
			}
			return nil, domain.ErrOfferInactive
		},
	)
	require.Error(t, err)

	stored, err := repoManager.OfferRepository().GetOffer(ctx, offer.Id)
	require.NoError(t, err)
	require.Nil(t, stored)
}
