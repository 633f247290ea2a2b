package retry

import (
	"context"
	"math/rand/v2"
	"time"
)

// wait sleeps for interval ± jitter*interval. It returns false if ctx is done first.
func wait(ctx context.Context, interval time.Duration, jitter float64) bool {
	if jitter < 0 || jitter >= 1 {
		panic("invalid jitter")
	}

	m := (rand.Float64() * 2) - 1
	d := interval + time.Duration(m*jitter*float64(interval))

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// counter tracks attempts. Zero attempts means an unlimited number.
type counter struct {
	attempted int
	attempts  int
}

func newCounter(attempts int) counter {
	if attempts < 0 {
		panic("attempts can't be < 0")
	}
	return counter{attempts: attempts}
}

func (c *counter) exhausted() bool {
	return c.attempts != 0 && c.attempted >= c.attempts
}

func validJitter(jitter float64) float64 {
	if jitter < 0 {
		panic("jitter can't be < 0")
	}
	if jitter >= 1 {
		panic("jitter can't be >= 1")
	}
	return jitter
}
