package poller

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"golang.org/x/time/rate"
)

const (
	New       Status = "NEW"
	Waiting   Status = "WAITING"
	Processed Status = "PROCESSED"
)

type Status string

// ObservableStatus guards an observable against overlapping fetches: a tick
// is skipped while the previous fetch is still waiting on the store.
type ObservableStatus struct {
	sync.RWMutex
	status Status
}

func NewObservableStatus() *ObservableStatus {
	return &ObservableStatus{
		status: New,
	}
}

func (o *ObservableStatus) Get() Status {
	o.RLock()
	defer o.RUnlock()
	return o.status
}

func (o *ObservableStatus) Set(status Status) {
	o.Lock()
	defer o.Unlock()
	o.status = status
}

type observableHandler struct {
	observable       Observable
	wg               *sync.WaitGroup
	ticker           *time.Ticker
	eventChan        chan Event
	errChan          chan error
	stopChan         chan int
	observableStatus *ObservableStatus
	rateLimiter      *rate.Limiter
}

func newObservableHandler(
	observable Observable,
	wg *sync.WaitGroup,
	eventChan chan Event,
	errChan chan error,
	rateLimiter *rate.Limiter,
) *observableHandler {
	ticker := time.NewTicker(observable.Interval())
	stopChan := make(chan int, 1)

	return &observableHandler{
		observable,
		wg,
		ticker,
		eventChan,
		errChan,
		stopChan,
		NewObservableStatus(),
		rateLimiter,
	}
}

func (oh *observableHandler) start() {
	oh.logAction("start")
	oh.wg.Add(1)
	for {
		select {
		case <-oh.ticker.C:
			if oh.observableStatus.Get() != Waiting {
				oh.observable.Observe(
					context.Background(),
					oh.eventChan,
					oh.errChan,
					oh.observableStatus,
					oh.rateLimiter,
				)
			}
		case <-oh.stopChan:
			oh.ticker.Stop()
			close(oh.stopChan)
			return
		}
	}
}

func (oh *observableHandler) stop() {
	oh.logAction("stop")
	oh.stopChan <- 1
	oh.wg.Done()
}

func (oh *observableHandler) logAction(action string) {
	log.Debugf("%s observing: %v", action, oh.observable.Key())
}
