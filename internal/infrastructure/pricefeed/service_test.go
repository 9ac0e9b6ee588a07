package pricefeed_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/peerdex-network/peerdex-engine/internal/infrastructure/pricefeed"
	"github.com/peerdex-network/peerdex-engine/internal/infrastructure/storage/db/inmemory"
)

var ctx = context.Background()

func TestHTTPSourceFetchPrices(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"btc": 50000.12, "ETH": 3000.5}`))
		},
	))
	defer server.Close()

	source := pricefeed.NewHTTPSource(server.URL, time.Second)
	prices, err := source.FetchPrices(ctx)
	require.NoError(t, err)
	require.Len(t, prices, 2)
	require.True(t, prices["BTC"].Equal(decimal.NewFromFloat(50000.12)))
	require.True(t, prices["ETH"].Equal(decimal.NewFromFloat(3000.5)))
}

func TestFailingHTTPSourceFetchPrices(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		},
	))
	defer server.Close()

	source := pricefeed.NewHTTPSource(server.URL, time.Second)
	prices, err := source.FetchPrices(ctx)
	require.Error(t, err)
	require.Nil(t, prices)
}

func TestServiceRefreshesStore(t *testing.T) {
	t.Parallel()

	store := inmemory.NewPriceStore()
	source := pricefeed.NewStaticSource(map[string]decimal.Decimal{
		"BTC": decimal.NewFromInt(50000),
	})

	feeder := pricefeed.NewService(source, store, 10*time.Millisecond)
	feeder.Start()
	defer feeder.Stop()

	require.Eventually(t, func() bool {
		prices, err := store.GetPrices(ctx)
		if err != nil {
			return false
		}
		price, ok := prices["BTC"]
		return ok && price.Equal(decimal.NewFromInt(50000))
	}, time.Second, 10*time.Millisecond)
}

func TestServiceKeepsStalePricesOnFailure(t *testing.T) {
	t.Parallel()

	store := inmemory.NewPriceStore()
	require.NoError(t, store.UpdatePrices(ctx, map[string]decimal.Decimal{
		"BTC": decimal.NewFromInt(49000),
	}))

	var failing http.HandlerFunc = func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}
	server := httptest.NewServer(failing)
	defer server.Close()

	feeder := pricefeed.NewService(
		pricefeed.NewHTTPSource(server.URL, time.Second), store, 10*time.Millisecond,
	)
	feeder.Start()
	defer feeder.Stop()

	time.Sleep(100 * time.Millisecond)

	prices, err := store.GetPrices(ctx)
	require.NoError(t, err)
	require.True(t, prices["BTC"].Equal(decimal.NewFromInt(49000)))
}
