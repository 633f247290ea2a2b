package retry

import (
	"context"
)

var _ Policy = (*Immediate)(nil)

// Immediate retries without waiting. It relies on the SQLite busy timeout alone to space out
// attempts.
type Immediate struct {
	counter
}

// NewImmediate returns a policy that makes at most attempts attempts, or an unlimited number if
// attempts is 0.
func NewImmediate(attempts int) *Immediate {
	return &Immediate{
		counter: newCounter(attempts),
	}
}

func (r *Immediate) Attempt(ctx context.Context) bool {
	if r.exhausted() || ctx.Err() != nil {
		return false
	}
	r.attempted++
	return true
}

func (r *Immediate) Derive() Policy {
	return NewImmediate(r.attempts)
}
