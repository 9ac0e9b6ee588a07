package application

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/peerdex-network/peerdex-engine/internal/core/ports"
)

// PriceService exposes the read-only spot price snapshot. The cache is
// refreshed out-of-band by the price feeder, callers must tolerate staleness.
type PriceService interface {
	GetCurrentPrices(ctx context.Context) (map[string]decimal.Decimal, error)
}

type priceService struct {
	priceStore ports.PriceStore
}

// NewPriceService returns a PriceService reading from the given cache.
func NewPriceService(priceStore ports.PriceStore) PriceService {
	return &priceService{priceStore}
}

func (s *priceService) GetCurrentPrices(
	ctx context.Context,
) (map[string]decimal.Decimal, error) {
	return s.priceStore.GetPrices(ctx)
}
