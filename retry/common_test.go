package retry_test

import (
	"testing"
	"testing/synctest"
	"time"
)

// Amount of time allowed for measurement error.
const epsilon = time.Microsecond * 10

func run(t *testing.T, name string, fn func(t *testing.T)) {
	t.Run(name, func(t *testing.T) {
		t.Helper()
		t.Parallel()
		synctest.Test(t, fn)
	})
}

// delayFunc returns a function that runs fn and fails the test unless fn took delay ± jitter.
func delayFunc(t *testing.T, jitter float64) func(delay time.Duration, fn func()) {
	t.Helper()
	return func(delay time.Duration, fn func()) {
		t.Helper()
		delta := time.Duration(float64(delay) * jitter)
		minDelay := (delay - delta).Truncate(epsilon)
		maxDelay := (delay + delta + epsilon).Truncate(epsilon)

		start := time.Now()
		fn()
		took := time.Since(start).Truncate(epsilon)

		if took < minDelay {
			t.Fatalf("delay %s < min delay %s", took, minDelay)
		}
		if took > maxDelay {
			t.Fatalf("delay %s > max delay %s", took, maxDelay)
		}
	}
}
