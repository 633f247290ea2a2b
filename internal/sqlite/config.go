package sqlite

import (
	"strings"
	"time"
)

type Config struct {
	file        string
	durable     bool
	workers     int
	busyTimeout time.Duration
}

type ConfigFunc = func(c *Config)

func (c *Config) File(file string) {
	file = strings.TrimSpace(file)
	if file == "" {
		panic("file can't be blank")
	}
	if strings.Contains(file, "?") {
		panic("file can't contain ?")
	}
	c.file = file
}

func (c *Config) Workers(workers int) {
	if workers < 1 {
		panic("workers can't be < 1")
	}
	c.workers = workers
}

// Durable makes every committed transaction synced to disk (`_sync=full`). Ignored for in-memory
// databases.
func (c *Config) Durable(durable bool) {
	c.durable = durable
}

// BusyTimeout sets how long a connection waits for a lock held by another connection before the
// operation fails with [ErrBusy].
func (c *Config) BusyTimeout(timeout time.Duration) {
	if timeout < 0 {
		panic("busy timeout can't be < 0")
	}
	c.busyTimeout = timeout
}
