// Package pricefeed keeps the spot price cache fresh. It periodically pulls
// a snapshot from the configured source and writes it to the price store the
// engine reads from. A failed refresh is logged and skipped, the cache keeps
// serving the previous snapshot.
package pricefeed

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"github.com/peerdex-network/peerdex-engine/internal/core/ports"
)

var (
	// MaxNumOfFailingRequests ...
	MaxNumOfFailingRequests = 10
	// FailingRatio ...
	FailingRatio = 0.6
)

// Service refreshes the price store from the source on a fixed interval.
type Service struct {
	source   ports.PriceSource
	store    ports.PriceStore
	interval time.Duration
	breaker  *gobreaker.CircuitBreaker
	stopChan chan int
}

// NewService returns a stopped feeder refreshing on the given interval.
func NewService(
	source ports.PriceSource, store ports.PriceStore, interval time.Duration,
) *Service {
	return &Service{
		source:   source,
		store:    store,
		interval: interval,
		breaker:  newCircuitBreaker(),
		stopChan: make(chan int, 1),
	}
}

// Start runs an immediate refresh and then keeps refreshing on the interval
// until Stop is called.
func (s *Service) Start() {
	go func() {
		s.refresh()

		ticker := time.NewTicker(s.interval)
		for {
			select {
			case <-ticker.C:
				s.refresh()
			case <-s.stopChan:
				ticker.Stop()
				return
			}
		}
	}()
}

// Stop tears the feeder down.
func (s *Service) Stop() {
	s.stopChan <- 1
}

func (s *Service) refresh() {
	res, err := s.breaker.Execute(func() (interface{}, error) {
		return s.source.FetchPrices(context.Background())
	})
	if err != nil {
		log.WithError(err).Warn("price feed refresh failed, keeping stale prices")
		return
	}

	prices := res.(map[string]decimal.Decimal)
	if err := s.store.UpdatePrices(context.Background(), prices); err != nil {
		log.WithError(err).Warn("could not update price store")
		return
	}
	log.Debugf("price feed refreshed %d symbols", len(prices))
}

// newCircuitBreaker returns a *gobreaker.CircuitBreaker with a
// state-changing function that activates if the overall number of failing
// requests have reached a tweakable MaxNumOfFailingRequests cap and the
// failing ratio has met the FailingRatio.
func newCircuitBreaker() *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name: "pricefeed",
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return int(counts.Requests) > MaxNumOfFailingRequests &&
				ratio >= FailingRatio
		},
	})
}
