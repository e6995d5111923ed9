package engine

import (
	"sync"
	"time"
)

// clock calls tick on a fixed cadence until it is stopped or tick reports
// that the game is no longer running.
type clock struct {
	stop chan struct{}
	done chan struct{}
	once sync.Once
}

func startClock(interval time.Duration, tick func(*clock) bool) *clock {
	c := &clock{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	go c.run(interval, tick)
	return c
}

func (c *clock) run(interval time.Duration, tick func(*clock) bool) {
	defer close(c.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			if !tick(c) {
				return
			}
		}
	}
}

// Stop asks the clock goroutine to exit. It does not wait, so it is safe to
// call while holding the game lock.
func (c *clock) Stop() {
	c.once.Do(func() { close(c.stop) })
}

// Wait blocks until the clock goroutine has exited
func (c *clock) Wait() {
	<-c.done
}
