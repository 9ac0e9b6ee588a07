package poller

import (
	"sync"

	"golang.org/x/time/rate"
)

const (
	eventQueueMaxSize = 100
	errorQueueMaxSize = 10
)

type storePoller struct {
	errChan      chan error
	eventChan    chan Event
	observables  map[string]*observableHandler
	errorHandler func(err error)
	rateLimiter  *rate.Limiter
	mutex        *sync.RWMutex
	wg           *sync.WaitGroup
}

// Opts defines the parameters needed for creating a poller service with
// NewService.
type Opts struct {
	ErrorHandler      func(err error)
	RequestsPerSecond int
	TokenBurst        int
}

// NewService returns a poller that re-fetches each added Observable on its
// own cadence. Use Start and Stop methods to manage it.
func NewService(opts Opts) Service {
	rps := opts.RequestsPerSecond
	if rps <= 0 {
		rps = 10
	}
	burst := opts.TokenBurst
	if burst <= 0 {
		burst = 1
	}
	return &storePoller{
		errChan:      make(chan error, errorQueueMaxSize),
		eventChan:    make(chan Event, eventQueueMaxSize),
		observables:  map[string]*observableHandler{},
		errorHandler: opts.ErrorHandler,
		rateLimiter:  rate.NewLimiter(rate.Limit(rps), burst),
		mutex:        &sync.RWMutex{},
		wg:           &sync.WaitGroup{},
	}
}

// Start blocks draining the error channel until the poller is stopped.
func (p *storePoller) Start() {
	for {
		err, more := <-p.errChan
		if !more {
			return
		}
		go p.errorHandler(err)
	}
}

// Stop stops all the running observables, waits for their teardown and
// closes the channels.
func (p *storePoller) Stop() {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	for _, obsHandler := range p.observables {
		go obsHandler.stop()
	}
	p.wg.Wait()
	p.eventChan <- QuitEvent{}
	close(p.errChan)
}

// EventChannel returns the channel the observation events are emitted on.
func (p *storePoller) EventChannel() chan Event {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	return p.eventChan
}

// AddObservable starts watching the given Observable, unless one with the
// same key is watched already.
func (p *storePoller) AddObservable(observable Observable) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if _, ok := p.observables[observable.Key()]; !ok {
		obsHandler := newObservableHandler(
			observable,
			p.wg,
			p.eventChan,
			p.errChan,
			p.rateLimiter,
		)

		p.observables[observable.Key()] = obsHandler
		go obsHandler.start()
	}
}

// RemoveObservable stops watching the given Observable. Used on view
// teardown, e.g. when a chat view is closed.
func (p *storePoller) RemoveObservable(observable Observable) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if obsHandler, ok := p.observables[observable.Key()]; ok {
		obsHandler.stop()
		delete(p.observables, observable.Key())
	}
}
