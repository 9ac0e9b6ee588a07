package poller_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/peerdex-network/peerdex-engine/pkg/poller"
)

type tickEvent struct{}

func (tickEvent) Type() string { return "tick" }

type countingObservable struct {
	key      string
	interval time.Duration
	observed int32
}

func (o *countingObservable) Observe(
	ctx context.Context,
	eventChan chan poller.Event,
	errChan chan error,
	observableStatus *poller.ObservableStatus,
	rateLimiter *rate.Limiter,
) {
	observableStatus.Set(poller.Waiting)
	if err := rateLimiter.Wait(ctx); err != nil {
		errChan <- err
		return
	}
	atomic.AddInt32(&o.observed, 1)
	observableStatus.Set(poller.Processed)

	eventChan <- tickEvent{}
}

func (o *countingObservable) Key() string { return o.key }

func (o *countingObservable) Interval() time.Duration { return o.interval }

func TestPollerObservesOnInterval(t *testing.T) {
	t.Parallel()

	svc := poller.NewService(poller.Opts{
		ErrorHandler: func(err error) { t.Logf("poll error: %v", err) },
	})
	go svc.Start()

	obs := &countingObservable{key: "test", interval: 20 * time.Millisecond}
	svc.AddObservable(obs)

	event := <-svc.EventChannel()
	require.Equal(t, "tick", event.Type())

	svc.RemoveObservable(obs)
	time.Sleep(50 * time.Millisecond)
	observedAfterRemove := atomic.LoadInt32(&obs.observed)
	require.GreaterOrEqual(t, observedAfterRemove, int32(1))

	time.Sleep(100 * time.Millisecond)
	require.Equal(t, observedAfterRemove, atomic.LoadInt32(&obs.observed))
}

func TestPollerIgnoresDuplicateKeys(t *testing.T) {
	t.Parallel()

	svc := poller.NewService(poller.Opts{
		ErrorHandler: func(err error) { t.Logf("poll error: %v", err) },
	})
	go svc.Start()
	defer svc.Stop()

	first := &countingObservable{key: "dup", interval: 20 * time.Millisecond}
	second := &countingObservable{key: "dup", interval: 20 * time.Millisecond}
	svc.AddObservable(first)
	svc.AddObservable(second)

	<-svc.EventChannel()
	time.Sleep(50 * time.Millisecond)
	require.Zero(t, atomic.LoadInt32(&second.observed))
}

func TestPollerStopEmitsQuitEvent(t *testing.T) {
	t.Parallel()

	svc := poller.NewService(poller.Opts{
		ErrorHandler: func(err error) { t.Logf("poll error: %v", err) },
	})
	go svc.Start()
	svc.Stop()

	for event := range svc.EventChannel() {
		if _, ok := event.(poller.QuitEvent); ok {
			return
		}
	}
	t.Fatal("no quit event received")
}
