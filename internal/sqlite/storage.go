package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/teenjuna/constvec/internal"
)

var (
	// ErrClosed is returned by Storage methods when the storage has been closed.
	ErrClosed = errors.New("storage is closed")
	// ErrNotFound is returned by [Storage.Get] when there is no snapshot with the given ID.
	ErrNotFound = errors.New("snapshot not found")
	// ErrBusy wraps errors caused by a lock that another connection held longer than the busy
	// timeout. Such operations can be retried.
	ErrBusy = errors.New("database is busy")
)

const (
	memory = ":memory:"
)

// Storage is a persistent snapshot storage backed by SQLite.
//
// A snapshot is an encoded sequence of vec items together with the length and the capacity of the
// vec it was taken from.
type Storage struct {
	cfg *Config
	db  *sql.DB
}

// New creates a new Storage with the provided configuration functions.
//
// Default configuration:
//   - File: ":memory:" (in-memory database)
//   - Durable: false
//   - Workers: 1
//   - BusyTimeout: 5s
//
// Returns an error if the SQLite database cannot be opened or initialized.
func New(configFuncs ...ConfigFunc) (*Storage, error) {
	cfg := &Config{}
	cfg.File(memory)
	cfg.Workers(1)
	cfg.BusyTimeout(5 * time.Second)
	for _, cf := range configFuncs {
		cf(cfg)
	}

	db, err := open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}

	if err := setup(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("setup: %w", err)
	}

	storage := Storage{
		cfg: cfg,
		db:  db,
	}

	return &storage, nil
}

// Record is the input of [Storage.Put] and [Storage.PutMany].
type Record struct {
	// Data is the encoded items.
	Data []byte
	// Length is the number of encoded items.
	Length int
	// Capacity is the capacity of the vec the items were taken from.
	Capacity int
}

// Put inserts a new snapshot into the storage and returns its unique ID.
//
// Returns [ErrClosed] if the storage has been closed.
func (s *Storage) Put(record Record) (SnapshotID, error) {
	ids, err := s.PutMany(record)
	if err != nil {
		return "", err
	}
	return ids[0], nil
}

// PutMany inserts snapshots in a single transaction. The returned IDs are in the order of records.
//
// Returns [ErrClosed] if the storage has been closed.
func (s *Storage) PutMany(records ...Record) (ids []SnapshotID, err error) {
	tx, err := s.db.Begin()
	if isClosed(err) {
		return nil, ErrClosed
	} else if err != nil {
		return nil, fmt.Errorf("begin: %w", busy(err))
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	savedAt := toTimestamp(time.Now())
	ids = make([]SnapshotID, len(records))
	for i, r := range records {
		id := internal.GenerateID()
		if _, err := tx.Exec(
			`
			insert into snapshot (
				id,
				data,
				length,
				capacity,
				saved_at
			) values (
				:id,
				:data,
				:length,
				:capacity,
				:saved_at
			)
			`,
			sql.Named("id", id),
			sql.Named("data", r.Data),
			sql.Named("length", r.Length),
			sql.Named("capacity", r.Capacity),
			sql.Named("saved_at", savedAt),
		); err != nil {
			return nil, fmt.Errorf("insert: %w", busy(err))
		}
		ids[i] = id
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", busy(err))
	}

	return ids, nil
}

// Get returns the snapshot with the given ID.
//
// Returns [ErrNotFound] if there is no such snapshot and [ErrClosed] if the storage has been
// closed.
func (s *Storage) Get(id SnapshotID) (*Snapshot, error) {
	var (
		snapshot = Snapshot{ID: id}
		savedAt  int64
	)
	err := s.db.QueryRow(
		`
		select data, length, capacity, saved_at
		from snapshot
		where id = :id
		`,
		sql.Named("id", id),
	).Scan(
		&snapshot.Data,
		&snapshot.Length,
		&snapshot.Capacity,
		&savedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	} else if isClosed(err) {
		return nil, ErrClosed
	} else if err != nil {
		return nil, busy(err)
	}

	snapshot.SavedAt = fromTimestamp(savedAt)

	return &snapshot, nil
}

// List returns the IDs of all snapshots, oldest first.
func (s *Storage) List() ([]SnapshotID, error) {
	rows, err := s.db.Query(
		`
		select id from snapshot
		order by saved_at asc, rowid asc
		`,
	)
	if isClosed(err) {
		return nil, ErrClosed
	} else if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	ids := make([]SnapshotID, 0)
	for rows.Next() {
		var id SnapshotID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}

	return ids, nil
}

// Delete permanently removes one or more snapshots from the storage and returns the number of
// snapshots that were actually removed. Unknown IDs are ignored.
func (s *Storage) Delete(ids ...SnapshotID) (int, error) {
	res, err := s.db.Exec(
		`
		delete from snapshot
		where
			id in (
				select value from json_each(:ids)
			)
		`,
		sql.Named("ids", jsonIDs(ids)),
	)
	if isClosed(err) {
		return 0, ErrClosed
	} else if err != nil {
		return 0, busy(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}

	return int(n), nil
}

// Stats returns current storage statistics.
func (s *Storage) Stats() (*Stats, error) {
	var stats Stats
	err := s.db.QueryRow(
		`
		select
			coalesce(count(*), 0) as snapshots,
			coalesce(sum(length), 0) as items,
			coalesce(sum(capacity), 0) as slots
		from
			snapshot
		`,
	).Scan(
		&stats.Snapshots,
		&stats.Items,
		&stats.Slots,
	)
	if isClosed(err) {
		return nil, ErrClosed
	} else if err != nil {
		return nil, err
	}

	return &stats, nil
}

// Close closes the underlying SQLite database.
//
// After closing, all methods on Storage will return [ErrClosed].
func (s *Storage) Close() error {
	return s.db.Close()
}

// Snapshot represents a stored snapshot.
type Snapshot struct {
	// ID is the unique identifier of this snapshot.
	ID SnapshotID
	// Data is the encoded items.
	Data []byte
	// Length is the number of encoded items.
	Length int
	// Capacity is the capacity of the vec the items were taken from.
	Capacity int
	// SavedAt is the time when the snapshot was saved.
	SavedAt time.Time
}

type SnapshotID = string

// Stats represents statistics about the storage.
type Stats struct {
	// Snapshots is the total number of snapshots in storage.
	Snapshots int
	// Items is the total number of items across all snapshots.
	Items int
	// Slots is the total capacity across all snapshots.
	Slots int
}

func open(cfg *Config) (*sql.DB, error) {
	params := url.Values{}
	params.Add("_txlock", "immediate")
	params.Add("_timeout", strconv.FormatInt(cfg.busyTimeout.Milliseconds(), 10))
	file := cfg.file
	if file == memory {
		file = internal.GenerateID()
		params.Add("mode", "memory")
		params.Add("cache", "shared")
	} else {
		params.Add("_journal", "wal")
		if cfg.durable {
			params.Add("_sync", "full")
		} else {
			params.Add("_sync", "normal")
		}
		params.Add("_cache_size", "-20000") // 20mb
	}

	db, err := sql.Open("sqlite3", "file:"+file+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	db.SetConnMaxIdleTime(0)
	db.SetConnMaxLifetime(0)
	if params.Get("mode") == "memory" {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	} else {
		db.SetMaxOpenConns(cfg.workers)
		db.SetMaxIdleConns(cfg.workers)
	}

	return db, nil
}

func setup(db *sql.DB) error {
	if _, err := db.Exec(
		`
		create table if not exists snapshot (
			id       text primary key,
			data     blob not null,
			length   int not null,
			capacity int not null,
			saved_at int not null,
			check (length >= 0 and length <= capacity)
		) strict
		`,
	); err != nil {
		return fmt.Errorf("create table: %w", err)
	}

	if _, err := db.Exec(
		`
		create index if not exists idx_snapshot_saved_at
		on snapshot (saved_at)
		`,
	); err != nil {
		return fmt.Errorf("create index: %w", err)
	}

	return nil
}

// busy marks err with [ErrBusy] if SQLite gave up waiting for a lock.
func busy(err error) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) &&
		(sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked) {
		return fmt.Errorf("%w: %w", ErrBusy, err)
	}
	return err
}

func isClosed(err error) bool {
	return err != nil && err.Error() == "sql: database is closed"
}

func jsonIDs(ids []SnapshotID) string {
	jsonIDs, _ := json.Marshal(ids)
	return string(jsonIDs)
}

func toTimestamp(time time.Time) int64 {
	return time.UnixNano()
}

func fromTimestamp(timestamp int64) time.Time {
	return time.Unix(0, timestamp)
}
