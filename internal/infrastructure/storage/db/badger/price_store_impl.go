package dbbadger

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/timshannon/badgerhold/v4"

	"github.com/peerdex-network/peerdex-engine/internal/core/ports"
)

// SpotPrice is the persisted shape of one price cache entry. Prices are
// stored as strings to survive the JSON codec without precision loss.
type SpotPrice struct {
	Symbol string
	Price  string
}

type priceStoreImpl struct {
	db *repoManager
}

func newPriceStoreImpl(db *repoManager) ports.PriceStore {
	return priceStoreImpl{db}
}

func (s priceStoreImpl) UpdatePrices(
	_ context.Context, prices map[string]decimal.Decimal,
) error {
	for symbol, price := range prices {
		entry := SpotPrice{Symbol: symbol, Price: price.String()}
		if err := s.db.priceStore.Upsert(symbol, entry); err != nil {
			return err
		}
	}
	return nil
}

func (s priceStoreImpl) GetPrices(
	_ context.Context,
) (map[string]decimal.Decimal, error) {
	var entries []SpotPrice
	if err := s.db.priceStore.Find(
		&entries, badgerhold.Where("Symbol").Ne(""),
	); err != nil {
		return nil, err
	}

	prices := make(map[string]decimal.Decimal, len(entries))
	for _, entry := range entries {
		price, err := decimal.NewFromString(entry.Price)
		if err != nil {
			continue
		}
		prices[entry.Symbol] = price
	}
	return prices, nil
}
