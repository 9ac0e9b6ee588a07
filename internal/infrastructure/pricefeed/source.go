package pricefeed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/peerdex-network/peerdex-engine/internal/core/ports"
)

// HTTPSource fetches the spot prices from a JSON endpoint returning a flat
// symbol->price object, e.g. {"BTC": 50000.12, "ETH": 3000.5}.
type HTTPSource struct {
	endpoint string
	client   *http.Client
}

// NewHTTPSource returns a source reading from the given endpoint.
func NewHTTPSource(endpoint string, requestTimeout time.Duration) *HTTPSource {
	return &HTTPSource{
		endpoint: endpoint,
		client:   &http.Client{Timeout: requestTimeout},
	}
}

func (s *HTTPSource) FetchPrices(
	ctx context.Context,
) (map[string]decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("price endpoint returned status %d", resp.StatusCode)
	}

	var payload map[string]float64
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding price payload: %w", err)
	}

	prices := make(map[string]decimal.Decimal, len(payload))
	for symbol, price := range payload {
		prices[strings.ToUpper(symbol)] = decimal.NewFromFloat(price)
	}
	return prices, nil
}

// StaticSource serves a fixed snapshot, used by tests and dev runs without
// network access.
type StaticSource struct {
	prices map[string]decimal.Decimal
}

// NewStaticSource returns a source always serving the given snapshot.
func NewStaticSource(prices map[string]decimal.Decimal) *StaticSource {
	return &StaticSource{prices}
}

func (s *StaticSource) FetchPrices(
	_ context.Context,
) (map[string]decimal.Decimal, error) {
	snapshot := make(map[string]decimal.Decimal, len(s.prices))
	for symbol, price := range s.prices {
		snapshot[symbol] = price
	}
	return snapshot, nil
}

var _ ports.PriceSource = (*HTTPSource)(nil)
var _ ports.PriceSource = (*StaticSource)(nil)
