package retry

import (
	"context"
	"time"
)

var _ Policy = (*Fixed)(nil)

// Fixed waits the same interval before every retry.
type Fixed struct {
	counter
	interval time.Duration
	jitter   float64
}

func NewFixed(attempts int, interval time.Duration) *Fixed {
	if interval < 0 {
		panic("interval can't be < 0")
	}
	return &Fixed{
		counter:  newCounter(attempts),
		interval: interval,
		jitter:   0.1,
	}
}

func (r *Fixed) WithJitter(jitter float64) *Fixed {
	r.jitter = validJitter(jitter)
	return r
}

func (r *Fixed) Attempt(ctx context.Context) bool {
	if r.exhausted() {
		return false
	}
	if r.attempted > 0 && !wait(ctx, r.interval, r.jitter) {
		return false
	}
	r.attempted++
	return true
}

func (r *Fixed) Derive() Policy {
	return NewFixed(r.attempts, r.interval).WithJitter(r.jitter)
}
