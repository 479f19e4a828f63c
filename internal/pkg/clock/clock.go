// Package clock supplies the current time to share expiry
package clock

import (
	"sync"
	"time"
)

// Clock reports the current time
type Clock interface {
	Now() time.Time
}

// Real reads the system clock in UTC
type Real struct{}

func (Real) Now() time.Time {
	return time.Now().UTC()
}

// New returns the system clock
func New() Clock {
	return Real{}
}

// Fixed stands still until advanced
type Fixed struct {
	mu sync.Mutex
	At time.Time
}

func (c *Fixed) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.At
}

// Advance moves the instant forward by d
func (c *Fixed) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.At = c.At.Add(d)
}
