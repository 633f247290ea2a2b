package internal

import "math/rand/v2"

// GenerateID returns a random alphanumeric ID. It is used for snapshot IDs and for naming
// in-memory databases, so two stores never share one.
func GenerateID() string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	const n = 16
	b := make([]byte, n)
	for i := range b {
		b[i] = charset[rand.IntN(len(charset))]
	}
	return string(b)
}
