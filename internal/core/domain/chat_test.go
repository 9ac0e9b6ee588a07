package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/peerdex-network/peerdex-engine/internal/core/domain"
)

func TestNewChatMessage(t *testing.T) {
	t.Parallel()

	message, err := domain.NewChatMessage("order-1", buyerId, "hello", 1000)
	require.NoError(t, err)
	require.NotEmpty(t, message.Id)
	require.Equal(t, "order-1", message.OrderId)
	require.Equal(t, int64(1000), message.Timestamp)
}

func TestFailingNewChatMessage(t *testing.T) {
	tests := []struct {
		name        string
		sender      string
		text        string
		expectedErr error
	}{
		{
			name:        "missing_sender",
			text:        "hello",
			expectedErr: domain.ErrChatMissingSender,
		},
		{
			name:        "empty_text",
			sender:      buyerId,
			expectedErr: domain.ErrChatEmptyMessage,
		},
		{
			name:        "blank_text",
			sender:      buyerId,
			text:        "   ",
			expectedErr: domain.ErrChatEmptyMessage,
		},
	}

	for i := range tests {
		tt := tests[i]

		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			message, err := domain.NewChatMessage("order-1", tt.sender, tt.text, 1000)
			require.ErrorIs(t, err, tt.expectedErr)
			require.Nil(t, message)
		})
	}
}

func TestSeedMessageTexts(t *testing.T) {
	tests := []struct {
		name         string
		order        *domain.Order
		wantMessages int
	}{
		{
			name:         "buy_order",
			order:        newPendingOrder(),
			wantMessages: 3,
		},
		{
			name: "sell_order",
			order: func() *domain.Order {
				offer := newTestOffer(domain.TradeTypeBuy)
				offer.OwnerId = buyerId
				return domain.NewOrder(
					offer, sellerId,
					decimal.NewFromInt(500), decimal.NewFromFloat(0.01),
					"bank transfer", 15*time.Minute,
				)
			}(),
			wantMessages: 2,
		},
	}

	for i := range tests {
		tt := tests[i]

		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			texts := domain.SeedMessageTexts(tt.order)
			require.Len(t, texts, tt.wantMessages)

			// identical orders seed identical texts
			require.Equal(t, texts, domain.SeedMessageTexts(tt.order))
		})
	}
}

func TestSeedMessageTextsIncludeStatus(t *testing.T) {
	t.Parallel()

	order := newAwaitingReleaseOrder()
	texts := domain.SeedMessageTexts(order)
	require.Len(t, texts, 4)
	require.Equal(t, domain.TransitionMessageText(order), texts[len(texts)-1])
}

func TestTransitionMessageText(t *testing.T) {
	t.Parallel()

	require.Empty(t, domain.TransitionMessageText(newPendingOrder()))
	require.NotEmpty(t, domain.TransitionMessageText(newAwaitingReleaseOrder()))
	require.NotEmpty(t, domain.TransitionMessageText(newCompletedOrder()))
	require.NotEmpty(t, domain.TransitionMessageText(newCancelledOrder()))
	require.NotEmpty(t, domain.TransitionMessageText(newDisputedOrder()))
}
