package widget

import (
	"errors"
	"sync"
	"time"
)

// ErrInvalidDuration is returned by Start for a duration under one second.
var ErrInvalidDuration = errors.New("please enter a valid number of seconds")

// Countdown is the timer widget: it counts down whole seconds, emitting
// a progress callback every tick. Starting while a countdown is running
// cancels the previous run first, like re-clicking Start on the page.
type Countdown struct {
	mu     sync.Mutex
	cancel chan struct{}

	// tick duration between progress callbacks; overridable in tests.
	tick time.Duration
}

// NewCountdown returns an idle countdown timer.
func NewCountdown() *Countdown {
	return &Countdown{tick: time.Second}
}

// Start begins a countdown of the given number of seconds. onTick is
// called after every elapsed second with the remaining seconds and the
// remaining percentage; onDone is called once when the countdown
// reaches zero. Neither is called after Stop.
func (c *Countdown) Start(seconds int, onTick func(remaining int, percent float64), onDone func()) error {
	if seconds < 1 {
		return ErrInvalidDuration
	}

	c.mu.Lock()
	if c.cancel != nil {
		close(c.cancel)
	}
	cancel := make(chan struct{})
	c.cancel = cancel
	tick := c.tick
	c.mu.Unlock()

	go func() {
		ticker := time.NewTicker(tick)
		defer ticker.Stop()

		remaining := seconds
		for {
			select {
			case <-cancel:
				return
			case <-ticker.C:
				remaining--
				if remaining <= 0 {
					if onDone != nil {
						onDone()
					}
					return
				}
				if onTick != nil {
					onTick(remaining, float64(remaining)/float64(seconds)*100)
				}
			}
		}
	}()

	return nil
}

// Stop cancels the running countdown, if any.
func (c *Countdown) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		close(c.cancel)
		c.cancel = nil
	}
}
