// Package paytimer implements the per-order payment countdown. The timer is
// advisory only: it warns that the payment window is about to close, it never
// cancels the order itself.
package paytimer

import (
	"sync"
	"time"
)

// ExpiryThreshold is how long before the payment deadline the expiry
// callback fires. Firing early instead of at zero is intentional: it gives
// the buyer a last warning while there is still time to complete the payment.
const ExpiryThreshold = 2 * time.Minute

// Timer counts down to a payment deadline at 1 Hz and fires the onExpire
// callback exactly once when the remaining time first drops under the
// expiry threshold.
type Timer struct {
	deadline  time.Time
	threshold time.Duration
	onExpire  func()

	ticker   *time.Ticker
	stopChan chan int

	mutex sync.Mutex
	fired bool
}

// New returns a stopped timer for the given deadline. A nil onExpire is
// allowed and simply disables the expiry side effect.
func New(deadline time.Time, onExpire func()) *Timer {
	return NewWithThreshold(deadline, ExpiryThreshold, onExpire)
}

// NewWithThreshold is like New with a custom expiry threshold.
func NewWithThreshold(
	deadline time.Time, threshold time.Duration, onExpire func(),
) *Timer {
	return &Timer{
		deadline:  deadline,
		threshold: threshold,
		onExpire:  onExpire,
		stopChan:  make(chan int, 1),
	}
}

// Start begins ticking at 1 Hz until Stop is called. The countdown keeps
// running after the expiry fired so that the remaining time stays current
// for display.
func (t *Timer) Start() {
	t.ticker = time.NewTicker(time.Second)
	go func() {
		for {
			select {
			case now := <-t.ticker.C:
				t.evaluate(now)
			case <-t.stopChan:
				t.ticker.Stop()
				return
			}
		}
	}()
}

// Stop tears the timer down. It is safe to call on a timer that already
// fired or was never started after New.
func (t *Timer) Stop() {
	t.stopChan <- 1
}

// Remaining returns the whole minutes and seconds left until the deadline,
// floored at zero.
func (t *Timer) Remaining() (minutes, seconds int) {
	return t.remainingAt(time.Now())
}

func (t *Timer) remainingAt(now time.Time) (minutes, seconds int) {
	left := t.deadline.Sub(now)
	if left < 0 {
		return 0, 0
	}
	total := int(left.Seconds())
	return total / 60, total % 60
}

func (t *Timer) evaluate(now time.Time) {
	if t.deadline.Sub(now) >= t.threshold {
		return
	}

	t.mutex.Lock()
	fired := t.fired
	t.fired = true
	t.mutex.Unlock()

	if !fired && t.onExpire != nil {
		t.onExpire()
	}
}
