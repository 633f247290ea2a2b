package store

import (
	"strings"
	"time"

	"github.com/teenjuna/constvec/codec"
	"github.com/teenjuna/constvec/codec/json"
	"github.com/teenjuna/constvec/retry"
)

// Config is a configuration of the [Store].
//
// The zero value is invalid: instances are created by [New], which applies the defaults before
// calling the configuration functions.
type Config[Item any] struct {
	file        string
	durable     bool
	codec       codec.Codec[Item]
	workers     int
	busyTimeout time.Duration
	retryPolicy retry.Policy
	prometheus  *PrometheusConfig
}

// File sets the SQLite file of the store. The special value ":memory:" keeps snapshots in memory.
func (c *Config[Item]) File(file string) {
	file = strings.TrimSpace(file)
	if file == "" {
		panic("file can't be blank")
	}
	if strings.Contains(file, "?") {
		panic("file can't contain ?")
	}
	c.file = file
}

// Durable makes every save synced to disk before it returns. Off by default.
func (c *Config[Item]) Durable(durable bool) {
	c.durable = durable
}

// Codec sets the codec used to encode vec items.
func (c *Config[Item]) Codec(codec codec.Codec[Item]) {
	if codec == nil {
		panic("codec can't be nil")
	}
	c.codec = codec
}

// Workers sets the number of goroutines that encode vecs in [Store.SaveAll] and the number of
// SQLite connections.
func (c *Config[Item]) Workers(workers int) {
	if workers < 1 {
		panic("workers can't be < 1")
	}
	c.workers = workers
}

// BusyTimeout sets how long a single SQLite operation waits for a lock held by another connection
// (for example, another process using the same file) before it fails as busy.
func (c *Config[Item]) BusyTimeout(timeout time.Duration) {
	if timeout < 0 {
		panic("busy timeout can't be < 0")
	}
	c.busyTimeout = timeout
}

// RetryPolicy sets the policy used to retry saving, loading and deleting snapshots when the
// database stays busy longer than [Config.BusyTimeout]. Other errors are never retried.
func (c *Config[Item]) RetryPolicy(policy retry.Policy) {
	if policy == nil {
		panic("retry policy can't be nil")
	}
	c.retryPolicy = policy
}

// Prometheus sets the Prometheus metrics config. See [Prometheus].
func (c *Config[Item]) Prometheus(prometheus *PrometheusConfig) {
	if prometheus == nil {
		panic("prometheus can't be nil")
	}
	c.prometheus = prometheus
}

func newConfig[Item any](configFuncs ...func(*Config[Item])) *Config[Item] {
	c := Config[Item]{}
	c.File(":memory:")
	c.Codec(json.New[Item]())
	c.Workers(1)
	c.BusyTimeout(5 * time.Second)
	c.RetryPolicy(retry.NewFixed(3, 100*time.Millisecond))
	c.Prometheus(Prometheus(nil))
	for _, cf := range configFuncs {
		if cf != nil {
			cf(&c)
		}
	}
	return &c
}
