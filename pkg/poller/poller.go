package poller

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Event are emitted through a channel during observation.
type Event interface {
	Type() string
}

// QuitEvent is the last event emitted by a stopped poller.
type QuitEvent struct{}

// Type implements the Event interface.
func (q QuitEvent) Type() string { return "quit" }

// Observable represents a concern that is re-fetched on a fixed interval,
// e.g. the orders of a user or the chat log of an order. Each observable
// declares its own cadence.
type Observable interface {
	Observe(
		ctx context.Context,
		eventChan chan Event,
		errChan chan error,
		observableStatus *ObservableStatus,
		rateLimiter *rate.Limiter,
	)
	Key() string
	Interval() time.Duration
}

// Service is the interface for the interval poller.
type Service interface {
	Start()
	Stop()
	AddObservable(observable Observable)
	RemoveObservable(observable Observable)
	EventChannel() chan Event
}
