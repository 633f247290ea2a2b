// Package retry contains the [Policy] interface and several implementations.
//
// A store retries an operation only when SQLite reports the database as busy or locked. Every
// other error is returned right away.
package retry

import (
	"context"
)

// Policy decides whether a busy operation is attempted again and how long to wait before it.
//
// Implementations are not considered thread-safe. Each operation derives its own instance.
type Policy interface {
	// Attempt reports whether another attempt should be made.
	//
	// The first call returns true immediately. Later calls block for the policy's interval, and
	// return false once attempts are exhausted or ctx is done.
	Attempt(ctx context.Context) bool
	// Derive returns a fresh Policy with the same settings and no attempts made.
	Derive() Policy
}
