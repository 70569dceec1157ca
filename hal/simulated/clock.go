// Package simulated implements the hal interfaces for host-side testing
// and demos: a manually driven clock, pins that record and replay edges,
// and a scripted boiler that answers requests on the wire. No real time
// passes anywhere; tests advance the clock themselves.
package simulated

import (
	"sync"
	"time"
)

// Clock is a manual monotonic clock. Sleep advances it instead of
// blocking, so transmit busy-waits complete instantly while still
// stamping edges with accurate wire timings.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func NewClock() *Clock {
	return &Clock{now: time.Unix(0, 0)}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Sleep(d time.Duration) {
	c.Advance(d)
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// AdvanceTo moves the clock forward to t. Moving backwards is ignored;
// the clock is monotonic.
func (c *Clock) AdvanceTo(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t.After(c.now) {
		c.now = t
	}
}
