// Package store persists snapshots of [constvec.Vec] in SQLite and restores them with their
// original capacity.
package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/teenjuna/constvec"
	"github.com/teenjuna/constvec/codec"
	"github.com/teenjuna/constvec/internal/sqlite"
)

var (
	ErrClosed = errors.New("store is closed")
	// ErrNotFound is returned by [Store.Load] when there is no snapshot with the given ID.
	ErrNotFound = sqlite.ErrNotFound
	// ErrCapacityExceeded is returned by [Store.Load] when a snapshot decodes to more items than its
	// recorded capacity.
	ErrCapacityExceeded = codec.ErrCapacityExceeded
	// ErrCorrupted is returned by [Store.Load] when a snapshot decodes to a different number of items
	// than was recorded.
	ErrCorrupted = errors.New("snapshot is corrupted")
	// ErrBusy is wrapped by errors of operations that found the database locked by another
	// connection on every attempt allowed by [Config.RetryPolicy].
	ErrBusy = sqlite.ErrBusy
)

// ID identifies a snapshot.
type ID = sqlite.SnapshotID

// Stats represents statistics about the store.
type Stats = sqlite.Stats

// Store saves and loads vec snapshots. Unlike [constvec.Vec], a Store is safe for concurrent use.
type Store[Item any] struct {
	cfg     *Config[Item]
	storage *sqlite.Storage
	metrics *metrics
	closing *atomic.Bool
}

// New opens a Store with the provided configuration functions.
//
// Default configuration:
//   - File: ":memory:"
//   - Durable: false
//   - Codec: JSON
//   - Workers: 1
//   - BusyTimeout: 5s
//   - RetryPolicy: 3 attempts, 100ms apart
//   - Prometheus: default metrics, not registered
func New[Item any](configFuncs ...func(*Config[Item])) (*Store[Item], error) {
	cfg := newConfig(configFuncs...)

	storage, err := sqlite.New(func(c *sqlite.Config) {
		c.File(cfg.file)
		c.Durable(cfg.durable)
		c.Workers(cfg.workers)
		c.BusyTimeout(cfg.busyTimeout)
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	store := Store[Item]{
		cfg:     cfg,
		storage: storage,
		metrics: cfg.prometheus.metrics(),
		closing: new(atomic.Bool),
	}

	if err := store.refresh(); err != nil {
		_ = storage.Close()
		return nil, fmt.Errorf("get stats from sqlite: %w", err)
	}

	return &store, nil
}

// Save stores a snapshot of the live items of vec and its capacity. The vec is only read.
func (s *Store[Item]) Save(vec *constvec.Vec[Item]) (ID, error) {
	ids, err := s.SaveAll(context.Background(), vec)
	if err != nil {
		return "", err
	}
	return ids[0], nil
}

// SaveAll stores snapshots of vecs in a single transaction. The vecs are encoded concurrently, by
// at most [Config.Workers] goroutines. The returned IDs are in the order of vecs.
//
// Each vec is only read, and only while SaveAll runs; the caller must not modify them
// concurrently.
func (s *Store[Item]) SaveAll(ctx context.Context, vecs ...*constvec.Vec[Item]) (ids []ID, err error) {
	if s.closing.Load() {
		return nil, ErrClosed
	}

	start := time.Now()
	defer func() {
		s.metrics.saveDuration.Observe(time.Since(start).Seconds())
		if err != nil {
			s.metrics.saveErrors.Inc()
		}
	}()

	records := make([]sqlite.Record, len(vecs))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.cfg.workers)

	for i, vec := range vecs {
		items, capacity := vec.Slice(), vec.Cap()
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			data, err := s.cfg.codec.Derive().Encode(slices.Values(items))
			if err != nil {
				return fmt.Errorf("encode vec %d: %w", i, err)
			}
			records[i] = sqlite.Record{
				Data:     data,
				Length:   len(items),
				Capacity: capacity,
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	err = s.retry(ctx, func() (err error) {
		ids, err = s.storage.PutMany(records...)
		return err
	})
	if errors.Is(err, sqlite.ErrClosed) {
		return nil, ErrClosed
	} else if err != nil {
		return nil, fmt.Errorf("put snapshots: %w", err)
	}

	s.metrics.snapshotsSaved.Add(float64(len(ids)))
	if err := s.refresh(); err != nil {
		return nil, fmt.Errorf("get stats from sqlite: %w", err)
	}

	return ids, nil
}

// Load restores the snapshot with the given ID into a new vec with the recorded capacity.
//
// Returns [ErrNotFound] if there is no such snapshot. Stored data is not trusted: a snapshot that
// doesn't fit its capacity is reported as [ErrCapacityExceeded], never as a panic.
func (s *Store[Item]) Load(id ID) (*constvec.Vec[Item], error) {
	if s.closing.Load() {
		return nil, ErrClosed
	}

	var snapshot *sqlite.Snapshot
	err := s.retry(context.Background(), func() (err error) {
		snapshot, err = s.storage.Get(id)
		return err
	})
	if errors.Is(err, sqlite.ErrNotFound) {
		return nil, ErrNotFound
	} else if errors.Is(err, sqlite.ErrClosed) {
		return nil, ErrClosed
	} else if err != nil {
		return nil, fmt.Errorf("get snapshot: %w", err)
	}

	vec := constvec.New[Item](snapshot.Capacity)
	if err := codec.DecodeInto(s.cfg.codec.Derive(), snapshot.Data, vec); err != nil {
		vec.Release()
		return nil, fmt.Errorf("decode snapshot %s: %w", id, err)
	}
	if vec.Len() != snapshot.Length {
		n := vec.Len()
		vec.Release()
		return nil, fmt.Errorf(
			"decode snapshot %s: %w: got %d items, want %d",
			id, ErrCorrupted, n, snapshot.Length,
		)
	}

	s.metrics.snapshotsLoaded.Inc()

	return vec, nil
}

// Delete removes snapshots with the given IDs and returns how many were removed. Unknown IDs are
// ignored.
func (s *Store[Item]) Delete(ids ...ID) (int, error) {
	if s.closing.Load() {
		return 0, ErrClosed
	}

	var n int
	err := s.retry(context.Background(), func() (err error) {
		n, err = s.storage.Delete(ids...)
		return err
	})
	if errors.Is(err, sqlite.ErrClosed) {
		return 0, ErrClosed
	} else if err != nil {
		return 0, fmt.Errorf("delete snapshots: %w", err)
	}

	s.metrics.snapshotsDeleted.Add(float64(n))
	if err := s.refresh(); err != nil {
		return n, fmt.Errorf("get stats from sqlite: %w", err)
	}

	return n, nil
}

// List returns IDs of all snapshots, oldest first.
func (s *Store[Item]) List() ([]ID, error) {
	if s.closing.Load() {
		return nil, ErrClosed
	}

	ids, err := s.storage.List()
	if errors.Is(err, sqlite.ErrClosed) {
		return nil, ErrClosed
	} else if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}

	return ids, nil
}

// Stats returns the number of snapshots, items and slots in the store.
func (s *Store[Item]) Stats() (*Stats, error) {
	if s.closing.Load() {
		return nil, ErrClosed
	}

	stats, err := s.storage.Stats()
	if err != nil {
		return nil, fmt.Errorf("get stats from sqlite: %w", err)
	}

	return stats, nil
}

// Close closes the store. Subsequent calls return [ErrClosed].
func (s *Store[Item]) Close() error {
	if s.closing.Swap(true) {
		return ErrClosed
	}

	errs := make([]error, 0)

	if err := s.storage.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close sqlite: %w", err))
	}

	return errors.Join(errs...)
}

// retry runs fn until it returns an error other than [ErrBusy] or the retry policy gives up.
func (s *Store[Item]) retry(ctx context.Context, fn func() error) error {
	policy := s.cfg.retryPolicy.Derive()
	err := ctx.Err()
	for policy.Attempt(ctx) {
		err = fn()
		if !errors.Is(err, sqlite.ErrBusy) {
			return err
		}
		s.metrics.busyErrors.Inc()
	}
	return err
}

func (s *Store[Item]) refresh() error {
	stats, err := s.storage.Stats()
	if err != nil {
		return err
	}
	s.metrics.snapshots.Set(float64(stats.Snapshots))
	s.metrics.items.Set(float64(stats.Items))
	return nil
}
