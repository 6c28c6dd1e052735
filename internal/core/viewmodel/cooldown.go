package viewmodel

import (
	"sync"
	"time"
)

// ResendCooldown is how many seconds must pass before another code can be
// requested.
const ResendCooldown = 60

// Cooldown is a seconds-remaining counter. With a positive tick interval it
// runs its own ticker; with zero it only moves when Tick is called, which is
// what tests do.
type Cooldown struct {
	interval time.Duration

	mu        sync.Mutex
	remaining int
	stop      chan struct{}
}

func NewCooldown(interval time.Duration) *Cooldown {
	return &Cooldown{interval: interval}
}

// Start sets the counter to seconds and restarts the ticker.
func (c *Cooldown) Start(seconds int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopLocked()
	c.remaining = max(seconds, 0)
	if c.interval <= 0 || c.remaining == 0 {
		return
	}
	stop := make(chan struct{})
	c.stop = stop
	go c.run(stop)
}

func (c *Cooldown) run(stop chan struct{}) {
	t := time.NewTicker(c.interval)
	defer t.Stop()
	for {
		select {
		case <-stop:
			return
		case <-t.C:
			if left, live := c.tickIf(stop); !live || left == 0 {
				return
			}
		}
	}
}

// tickIf decrements only while stop still belongs to the running countdown,
// so a tick that raced with a restart cannot eat into the new one.
func (c *Cooldown) tickIf(stop chan struct{}) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stop != stop {
		return c.remaining, false
	}
	if c.remaining > 0 {
		c.remaining--
	}
	if c.remaining == 0 {
		c.stop = nil
	}
	return c.remaining, true
}

// Tick decrements the counter once, never below zero, and returns the new value.
func (c *Cooldown) Tick() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.remaining > 0 {
		c.remaining--
	}
	return c.remaining
}

func (c *Cooldown) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

// Ready reports whether the guarded action may run again.
func (c *Cooldown) Ready() bool { return c.Remaining() == 0 }

// Reset zeroes the counter and stops the ticker.
func (c *Cooldown) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
	c.remaining = 0
}

// Stop halts the ticker and freezes the counter, as when the owning screen
// goes away.
func (c *Cooldown) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

func (c *Cooldown) stopLocked() {
	if c.stop != nil {
		close(c.stop)
		c.stop = nil
	}
}
