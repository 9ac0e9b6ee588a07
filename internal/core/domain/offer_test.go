package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/peerdex-network/peerdex-engine/internal/core/domain"
)

func TestNewOffer(t *testing.T) {
	t.Parallel()

	offer, err := domain.NewOffer(
		"owner-1", "alice", domain.TradeTypeSell, "btc", "usd",
		decimal.NewFromInt(50000),
		domain.Limits{Min: decimal.NewFromInt(100), Max: decimal.NewFromInt(1000)},
		decimal.NewFromFloat(0.5),
		[]string{"bank transfer"}, map[string]string{"iban": "DE00 1234"},
		"weekdays only",
	)
	require.NoError(t, err)
	require.NotEmpty(t, offer.Id)
	require.Equal(t, "BTC", offer.CryptoSymbol)
	require.Equal(t, "USD", offer.FiatCurrency)
	require.True(t, offer.Active)
	require.NotEmpty(t, offer.CreatedAt)
}

func TestFailingNewOffer(t *testing.T) {
	price := decimal.NewFromInt(50000)
	limits := domain.Limits{
		Min: decimal.NewFromInt(100), Max: decimal.NewFromInt(1000),
	}
	amount := decimal.NewFromFloat(0.5)
	methods := []string{"bank transfer"}

	tests := []struct {
		name        string
		ownerId     string
		offerType   string
		crypto      string
		fiat        string
		price       decimal.Decimal
		limits      domain.Limits
		amount      decimal.Decimal
		methods     []string
		expectedErr error
	}{
		{
			name:        "missing_owner",
			offerType:   domain.TradeTypeSell,
			crypto:      "BTC",
			fiat:        "USD",
			price:       price,
			limits:      limits,
			amount:      amount,
			methods:     methods,
			expectedErr: domain.ErrOfferMissingOwner,
		},
		{
			name:        "invalid_type",
			ownerId:     "owner-1",
			offerType:   "lend",
			crypto:      "BTC",
			fiat:        "USD",
			price:       price,
			limits:      limits,
			amount:      amount,
			methods:     methods,
			expectedErr: domain.ErrOfferInvalidType,
		},
		{
			name:        "missing_assets",
			ownerId:     "owner-1",
			offerType:   domain.TradeTypeSell,
			fiat:        "USD",
			price:       price,
			limits:      limits,
			amount:      amount,
			methods:     methods,
			expectedErr: domain.ErrOfferMissingAssets,
		},
		{
			name:        "zero_price",
			ownerId:     "owner-1",
			offerType:   domain.TradeTypeSell,
			crypto:      "BTC",
			fiat:        "USD",
			price:       decimal.Zero,
			limits:      limits,
			amount:      amount,
			methods:     methods,
			expectedErr: domain.ErrOfferInvalidPrice,
		},
		{
			name:      "inverted_limits",
			ownerId:   "owner-1",
			offerType: domain.TradeTypeSell,
			crypto:    "BTC",
			fiat:      "USD",
			price:     price,
			limits: domain.Limits{
				Min: decimal.NewFromInt(1000), Max: decimal.NewFromInt(100),
			},
			amount:      amount,
			methods:     methods,
			expectedErr: domain.ErrOfferInvalidLimits,
		},
		{
			name:        "negative_amount",
			ownerId:     "owner-1",
			offerType:   domain.TradeTypeSell,
			crypto:      "BTC",
			fiat:        "USD",
			price:       price,
			limits:      limits,
			amount:      decimal.NewFromInt(-1),
			methods:     methods,
			expectedErr: domain.ErrOfferInvalidAmount,
		},
		{
			name:        "no_payment_methods",
			ownerId:     "owner-1",
			offerType:   domain.TradeTypeSell,
			crypto:      "BTC",
			fiat:        "USD",
			price:       price,
			limits:      limits,
			amount:      amount,
			expectedErr: domain.ErrOfferNoPaymentMethods,
		},
	}

	for i := range tests {
		tt := tests[i]

		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			offer, err := domain.NewOffer(
				tt.ownerId, "alice", tt.offerType, tt.crypto, tt.fiat,
				tt.price, tt.limits, tt.amount, tt.methods, nil, "",
			)
			require.ErrorIs(t, err, tt.expectedErr)
			require.Nil(t, offer)
		})
	}
}

func TestOfferEdit(t *testing.T) {
	t.Parallel()

	offer := newTestOffer(domain.TradeTypeSell)
	newPrice := decimal.NewFromInt(51000)
	newTerms := "weekends too"

	err := offer.Edit(domain.OfferPatch{Price: &newPrice, Terms: &newTerms})
	require.NoError(t, err)
	require.True(t, offer.Price.Equal(newPrice))
	require.Equal(t, newTerms, offer.Terms)
	// untouched fields survive
	require.Equal(t, []string{"bank transfer"}, offer.PaymentMethods)
}

func TestFailingOfferEdit(t *testing.T) {
	t.Parallel()

	offer := newTestOffer(domain.TradeTypeSell)
	offer.Deactivate()

	newPrice := decimal.NewFromInt(51000)
	err := offer.Edit(domain.OfferPatch{Price: &newPrice})
	require.ErrorIs(t, err, domain.ErrOfferInactive)
}

func TestOfferReserve(t *testing.T) {
	t.Parallel()

	offer := newTestOffer(domain.TradeTypeSell)

	err := offer.Reserve(decimal.NewFromFloat(0.01))
	require.NoError(t, err)
	require.True(t, offer.AvailableAmount.Equal(decimal.NewFromFloat(0.49)))

	err = offer.Reserve(decimal.NewFromFloat(0.5))
	require.ErrorIs(t, err, domain.ErrOfferInsufficientLiquidity)
	require.True(t, offer.AvailableAmount.Equal(decimal.NewFromFloat(0.49)))
}

func TestOfferAcceptsPaymentMethod(t *testing.T) {
	t.Parallel()

	offer := newTestOffer(domain.TradeTypeSell)
	require.True(t, offer.AcceptsPaymentMethod("Bank Transfer"))
	require.False(t, offer.AcceptsPaymentMethod("cash"))
}

func newTestOffer(offerType string) *domain.Offer {
	offer, err := domain.NewOffer(
		"owner-1", "alice", offerType, "BTC", "USD",
		decimal.NewFromInt(50000),
		domain.Limits{Min: decimal.NewFromInt(100), Max: decimal.NewFromInt(1000)},
		decimal.NewFromFloat(0.5),
		[]string{"bank transfer"}, nil, "",
	)
	if err != nil {
		panic(err)
	}
	return offer
}
