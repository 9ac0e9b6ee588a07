package inmemory

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/peerdex-network/peerdex-engine/internal/core/ports"
)

type priceStore struct {
	locker *sync.RWMutex
	prices map[string]decimal.Decimal
}

// NewPriceStore returns an in-memory price cache.
func NewPriceStore() ports.PriceStore {
	return &priceStore{
		locker: &sync.RWMutex{},
		prices: map[string]decimal.Decimal{},
	}
}

func (s *priceStore) UpdatePrices(
	_ context.Context, prices map[string]decimal.Decimal,
) error {
	s.locker.Lock()
	defer s.locker.Unlock()

	for symbol, price := range prices {
		s.prices[symbol] = price
	}
	return nil
}

func (s *priceStore) GetPrices(
	_ context.Context,
) (map[string]decimal.Decimal, error) {
	s.locker.RLock()
	defer s.locker.RUnlock()

	snapshot := make(map[string]decimal.Decimal, len(s.prices))
	for symbol, price := range s.prices {
		snapshot[symbol] = price
	}
	return snapshot, nil
}
