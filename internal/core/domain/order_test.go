package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/peerdex-network/peerdex-engine/internal/core/domain"
)

const (
	buyerId  = "buyer-1"
	sellerId = "seller-1"
)

func TestNewOrder(t *testing.T) {
	tests := []struct {
		name       string
		offerType  string
		wantType   string
		wantBuyer  string
		wantSeller string
	}{
		{
			name:       "taker_buys_from_sell_offer",
			offerType:  domain.TradeTypeSell,
			wantType:   domain.TradeTypeBuy,
			wantBuyer:  "taker-1",
			wantSeller: "owner-1",
		},
		{
			name:       "taker_sells_to_buy_offer",
			offerType:  domain.TradeTypeBuy,
			wantType:   domain.TradeTypeSell,
			wantBuyer:  "owner-1",
			wantSeller: "taker-1",
		},
	}

	for i := range tests {
		tt := tests[i]

		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			offer := newTestOffer(tt.offerType)
			offer.OwnerId = "owner-1"

			order := domain.NewOrder(
				offer, "taker-1",
				decimal.NewFromInt(500), decimal.NewFromFloat(0.01),
				"bank transfer", 15*time.Minute,
			)

			require.NotEmpty(t, order.Id)
			require.Equal(t, tt.wantType, order.Type)
			require.Equal(t, tt.wantBuyer, order.BuyerId)
			require.Equal(t, tt.wantSeller, order.SellerId)
			require.True(t, order.IsPending())
			require.Len(t, order.ReferenceNumber, 10)
			require.Greater(t, order.PaymentDeadline, order.CreatedAt)
		})
	}
}

func TestNewOrderFreezesPaymentDetails(t *testing.T) {
	t.Parallel()

	offer := newTestOffer(domain.TradeTypeSell)
	offer.PaymentDetails = map[string]string{"iban": "DE00 1234"}

	order := domain.NewOrder(
		offer, "taker-1",
		decimal.NewFromInt(500), decimal.NewFromFloat(0.01),
		"bank transfer", 15*time.Minute,
	)

	offer.PaymentDetails["iban"] = "changed"
	require.Equal(t, "DE00 1234", order.PaymentDetails["iban"])
	require.True(t, order.HasPaymentDetails())
}

func TestOrderTransitions(t *testing.T) {
	tests := []struct {
		name       string
		order      *domain.Order
		actor      string
		newStatus  int
		wantStatus int
	}{
		{
			name:       "buyer_marks_paid",
			order:      newPendingOrder(),
			actor:      buyerId,
			newStatus:  domain.OrderStatusCodeAwaitingRelease,
			wantStatus: domain.OrderStatusCodeAwaitingRelease,
		},
		{
			name:       "seller_releases",
			order:      newAwaitingReleaseOrder(),
			actor:      sellerId,
			newStatus:  domain.OrderStatusCodeCompleted,
			wantStatus: domain.OrderStatusCodeCompleted,
		},
		{
			name:       "buyer_cancels_pending",
			order:      newPendingOrder(),
			actor:      buyerId,
			newStatus:  domain.OrderStatusCodeCancelled,
			wantStatus: domain.OrderStatusCodeCancelled,
		},
		{
			name:       "seller_cancels_pending",
			order:      newPendingOrder(),
			actor:      sellerId,
			newStatus:  domain.OrderStatusCodeCancelled,
			wantStatus: domain.OrderStatusCodeCancelled,
		},
		{
			name:       "buyer_disputes_pending",
			order:      newPendingOrder(),
			actor:      buyerId,
			newStatus:  domain.OrderStatusCodeDisputeOpened,
			wantStatus: domain.OrderStatusCodeDisputeOpened,
		},
		{
			name:       "seller_disputes_awaiting_release",
			order:      newAwaitingReleaseOrder(),
			actor:      sellerId,
			newStatus:  domain.OrderStatusCodeDisputeOpened,
			wantStatus: domain.OrderStatusCodeDisputeOpened,
		},
	}

	for i := range tests {
		tt := tests[i]

		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.order.UpdateStatus(tt.actor, tt.newStatus)
			require.NoError(t, err)
			require.Equal(t, tt.wantStatus, tt.order.Status.Code)
		})
	}
}

func TestFailingOrderTransitions(t *testing.T) {
	tests := []struct {
		name        string
		order       *domain.Order
		actor       string
		newStatus   int
		expectedErr error
	}{
		{
			name:        "seller_cannot_mark_paid",
			order:       newPendingOrder(),
			actor:       sellerId,
			newStatus:   domain.OrderStatusCodeAwaitingRelease,
			expectedErr: domain.ErrOrderOnlyBuyerCanMarkPaid,
		},
		{
			name:        "buyer_cannot_release",
			order:       newAwaitingReleaseOrder(),
			actor:       buyerId,
			newStatus:   domain.OrderStatusCodeCompleted,
			expectedErr: domain.ErrOrderOnlySellerCanRelease,
		},
		{
			name:        "stranger_cannot_cancel",
			order:       newPendingOrder(),
			actor:       "someone-else",
			newStatus:   domain.OrderStatusCodeCancelled,
			expectedErr: domain.ErrOrderNotParticipant,
		},
		{
			name:        "cannot_complete_pending",
			order:       newPendingOrder(),
			actor:       sellerId,
			newStatus:   domain.OrderStatusCodeCompleted,
			expectedErr: domain.ErrOrderIllegalTransition,
		},
		{
			name:        "cannot_cancel_awaiting_release",
			order:       newAwaitingReleaseOrder(),
			actor:       buyerId,
			newStatus:   domain.OrderStatusCodeCancelled,
			expectedErr: domain.ErrOrderIllegalTransition,
		},
		{
			name:        "cannot_leave_completed",
			order:       newCompletedOrder(),
			actor:       buyerId,
			newStatus:   domain.OrderStatusCodeDisputeOpened,
			expectedErr: domain.ErrOrderIsTerminal,
		},
		{
			name:        "cannot_leave_cancelled",
			order:       newCancelledOrder(),
			actor:       buyerId,
			newStatus:   domain.OrderStatusCodeAwaitingRelease,
			expectedErr: domain.ErrOrderIsTerminal,
		},
		{
			name:        "cannot_leave_disputed",
			order:       newDisputedOrder(),
			actor:       sellerId,
			newStatus:   domain.OrderStatusCodeCompleted,
			expectedErr: domain.ErrOrderIsTerminal,
		},
		{
			name:        "cannot_return_to_pending",
			order:       newAwaitingReleaseOrder(),
			actor:       buyerId,
			newStatus:   domain.OrderStatusCodePending,
			expectedErr: domain.ErrOrderIllegalTransition,
		},
	}

	for i := range tests {
		tt := tests[i]

		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			statusBefore := tt.order.Status.Code
			err := tt.order.UpdateStatus(tt.actor, tt.newStatus)
			require.ErrorIs(t, err, tt.expectedErr)
			require.Equal(t, statusBefore, tt.order.Status.Code)
		})
	}
}

func TestOrderIsTerminal(t *testing.T) {
	t.Parallel()

	require.False(t, newPendingOrder().IsTerminal())
	require.False(t, newAwaitingReleaseOrder().IsTerminal())
	require.True(t, newCompletedOrder().IsTerminal())
	require.True(t, newCancelledOrder().IsTerminal())
	require.True(t, newDisputedOrder().IsTerminal())
}

func TestOrderCounterpartyOf(t *testing.T) {
	t.Parallel()

	order := newPendingOrder()
	require.Equal(t, sellerId, order.CounterpartyOf(buyerId))
	require.Equal(t, buyerId, order.CounterpartyOf(sellerId))
}

func newPendingOrder() *domain.Order {
	offer := newTestOffer(domain.TradeTypeSell)
	offer.OwnerId = sellerId
	return domain.NewOrder(
		offer, buyerId,
		decimal.NewFromInt(500), decimal.NewFromFloat(0.01),
		"bank transfer", 15*time.Minute,
	)
}

func newAwaitingReleaseOrder() *domain.Order {
	order := newPendingOrder()
	if err := order.MarkPaid(buyerId); err != nil {
		panic(err)
	}
	return order
}

func newCompletedOrder() *domain.Order {
	order := newAwaitingReleaseOrder()
	if err := order.Release(sellerId); err != nil {
		panic(err)
	}
	return order
}

func newCancelledOrder() *domain.Order {
	order := newPendingOrder()
	if err := order.Cancel(sellerId); err != nil {
		panic(err)
	}
	return order
}

func newDisputedOrder() *domain.Order {
	order := newPendingOrder()
	if err := order.OpenDispute(buyerId); err != nil {
		panic(err)
	}
	return order
}
