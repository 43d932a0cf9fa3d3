// internal/sched/clock.go

package sched

import (
	"sync"
	"sync/atomic"
	"time"
)

// FrameClock emits frame pulses and counts them atomically.
type FrameClock struct {
	Ch       chan struct{}
	count    atomic.Uint64
	stop     chan struct{}
	stopOnce sync.Once
}

// NewFrameClock creates a clock but does not start it.
func NewFrameClock(buffer int) *FrameClock {
	return &FrameClock{
		Ch:   make(chan struct{}, buffer),
		stop: make(chan struct{}),
	}
}

// Start begins emitting pulses at the given interval. If the consumer falls
// behind, pulses are dropped rather than queued so the frame rate never
// accumulates a backlog.
func (c *FrameClock) Start(interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				c.count.Add(1)
				select {
				case c.Ch <- struct{}{}:
				default:
				}
			case <-c.stop:
				close(c.Ch)
				return
			}
		}
	}()
}

// Stop signals the clock to stop emitting pulses.
func (c *FrameClock) Stop() {
	c.stopOnce.Do(func() { close(c.stop) })
}

// Count returns the number of pulses emitted so far.
func (c *FrameClock) Count() uint64 {
	return c.count.Load()
}
