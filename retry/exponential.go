package retry

import (
	"context"
	"math"
	"time"
)

var _ Policy = (*Exponential)(nil)

// Exponential multiplies the interval by base after every retry, up to maxInterval.
type Exponential struct {
	counter
	jitter      float64
	base        float64
	minInterval time.Duration
	maxInterval time.Duration
}

func NewExponential(attempts int, minInterval, maxInterval time.Duration) *Exponential {
	c := newCounter(attempts)
	if minInterval <= 0 {
		panic("minInterval can't be <= 0")
	}
	if minInterval >= maxInterval {
		panic("minInterval can't be >= maxInterval")
	}

	return &Exponential{
		counter:     c,
		minInterval: minInterval,
		maxInterval: maxInterval,
		base:        2,
		jitter:      0.1,
	}
}

func (r *Exponential) WithBase(base float64) *Exponential {
	if base <= 1 {
		panic("base can't be <= 1")
	}
	r.base = base
	return r
}

func (r *Exponential) WithJitter(jitter float64) *Exponential {
	r.jitter = validJitter(jitter)
	return r
}

func (r *Exponential) Attempt(ctx context.Context) bool {
	if r.exhausted() {
		return false
	}
	if r.attempted > 0 && !wait(ctx, r.interval(), r.jitter) {
		return false
	}
	r.attempted++
	return true
}

func (r *Exponential) interval() time.Duration {
	multiplier := math.Pow(r.base, float64(r.attempted-1))
	interval := float64(r.minInterval) * multiplier
	if interval >= float64(r.maxInterval) {
		return r.maxInterval
	}
	return time.Duration(interval)
}

func (r *Exponential) Derive() Policy {
	return NewExponential(r.attempts, r.minInterval, r.maxInterval).
		WithBase(r.base).
		WithJitter(r.jitter)
}
