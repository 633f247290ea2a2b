package retry

import (
	"context"
	"time"
)

var _ Policy = (*Linear)(nil)

// Linear grows the interval by a constant step after every retry, up to maxInterval.
//
// With a finite number of attempts the default step makes the last retry wait maxInterval. With
// unlimited attempts it equals minInterval.
type Linear struct {
	counter
	jitter      float64
	step        time.Duration
	minInterval time.Duration
	maxInterval time.Duration
}

func NewLinear(attempts int, minInterval, maxInterval time.Duration) *Linear {
	c := newCounter(attempts)
	if minInterval <= 0 {
		panic("minInterval can't be <= 0")
	}
	if minInterval >= maxInterval {
		panic("minInterval can't be >= maxInterval")
	}

	var step time.Duration
	switch {
	case attempts == 0:
		step = minInterval
	case attempts > 2:
		step = (maxInterval - minInterval) / time.Duration(attempts-2)
	}

	return &Linear{
		counter:     c,
		minInterval: minInterval,
		maxInterval: maxInterval,
		step:        step,
		jitter:      0.1,
	}
}

func (r *Linear) WithStep(step time.Duration) *Linear {
	if step <= 0 {
		panic("step can't be <= 0")
	}
	r.step = step
	return r
}

func (r *Linear) WithJitter(jitter float64) *Linear {
	r.jitter = validJitter(jitter)
	return r
}

func (r *Linear) Attempt(ctx context.Context) bool {
	if r.exhausted() {
		return false
	}
	if r.attempted > 0 {
		interval := min(r.minInterval+r.step*time.Duration(r.attempted-1), r.maxInterval)
		if !wait(ctx, interval, r.jitter) {
			return false
		}
	}
	r.attempted++
	return true
}

func (r *Linear) Derive() Policy {
	d := NewLinear(r.attempts, r.minInterval, r.maxInterval).WithJitter(r.jitter)
	d.step = r.step
	return d
}
