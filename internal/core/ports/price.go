package ports

import (
	"context"

	"github.com/shopspring/decimal"
)

// PriceSource is the external spot-price provider. Implementations fetch a
// fresh asset->price snapshot; failures are expected and must be retryable.
type PriceSource interface {
	FetchPrices(ctx context.Context) (map[string]decimal.Decimal, error)
}

// PriceStore is the cache the price feeder refreshes and the engine reads.
// Readers must tolerate staleness, no freshness guarantee is given.
type PriceStore interface {
	UpdatePrices(ctx context.Context, prices map[string]decimal.Decimal) error
	GetPrices(ctx context.Context) (map[string]decimal.Decimal, error)
}
