// Package cache keeps producer results in a key-value store for a fixed time-to-live.
//
// An entry is two store keys: "<key>_cache" holds the JSON payload and
// "<key>_timestamp" the epoch milliseconds it was stored at. Expiry is checked
// lazily on read. Entries are replaced wholesale on a successful produce and
// are never removed on failure.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"teerth-api/internal/metrics"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// DefaultTTL is the validity window of a cache entry.
const DefaultTTL = 24 * time.Hour

// Store is a string key-value store. Get reports ok=false for an absent key.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// WriteError is a failed cache write. It is logged, never returned to callers
// of WithCache, since the produced value is still valid.
type WriteError struct {
	Key string
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("cache write %q: %v", e.Key, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// PayloadKey is the store key of the serialized value of key.
func PayloadKey(key string) string { return key + "_cache" }

// TimestampKey is the store key of the stored-at time of key.
func TimestampKey(key string) string { return key + "_timestamp" }

// Manager wraps producers with a cache entry in a Store.
type Manager struct {
	store      Store
	ttl        time.Duration
	serveStale bool
	now        func() time.Time
	group      singleflight.Group
}

// Option customizes a Manager.
type Option func(*Manager)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithServeStale controls whether an expired entry is returned when the producer fails.
func WithServeStale(serve bool) Option {
	return func(m *Manager) { m.serveStale = serve }
}

// NewManager creates a Manager with the given default TTL. Stale serving is on by default.
func NewManager(store Store, ttl time.Duration, opts ...Option) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	m := &Manager{store: store, ttl: ttl, serveStale: true, now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// TTL returns the default time-to-live.
func (m *Manager) TTL() time.Duration { return m.ttl }

type entry struct {
	payload  string
	storedAt time.Time
	hasTime  bool
}

// read loads the entry of key. A missing or unparsable timestamp leaves
// hasTime false, which makes the entry infinitely old.
func (m *Manager) read(ctx context.Context, key string) (entry, bool) {
	payload, ok, err := m.store.Get(ctx, PayloadKey(key))
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache_read_error")
		return entry{}, false
	}
	if !ok {
		return entry{}, false
	}
	e := entry{payload: payload}

	ts, ok, err := m.store.Get(ctx, TimestampKey(key))
	if err != nil || !ok {
		return e, true
	}
	ms, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		log.Warn().Str("key", key).Str("timestamp", ts).Msg("cache_bad_timestamp")
		return e, true
	}
	e.storedAt = time.UnixMilli(ms)
	e.hasTime = true
	return e, true
}

func (e entry) fresh(now time.Time, ttl time.Duration) bool {
	return e.hasTime && now.Sub(e.storedAt) < ttl
}

// WithCache returns the cached value of key while it is younger than ttl and
// calls producer otherwise. A successful result is stored and returned even if
// storing fails. A producer error leaves the entry untouched; when an expired
// entry exists and stale serving is on, that entry is returned instead of the error.
//
// Concurrent misses on one key share a single producer call, which runs to
// completion even if the caller that started it gives up. All callers of one
// key must use the same T.
func WithCache[T any](ctx context.Context, m *Manager, key string, ttl time.Duration, producer func(context.Context) (T, error)) (T, error) {
	var zero T
	if ttl <= 0 {
		ttl = m.ttl
	}

	cached, found := m.read(ctx, key)
	if found && cached.fresh(m.now(), ttl) {
		var v T
		if err := json.Unmarshal([]byte(cached.payload), &v); err == nil {
			metrics.CacheHitsTotal.WithLabelValues(key).Inc()
			log.Debug().Str("key", key).Msg("cache_hit")
			return v, nil
		}
		log.Warn().Str("key", key).Msg("cache_corrupt_payload")
		found = false
	}
	metrics.CacheMissesTotal.WithLabelValues(key).Inc()
	log.Debug().Str("key", key).Bool("expired", found).Msg("cache_miss")

	shared := context.WithoutCancel(ctx)
	ch := m.group.DoChan(key, func() (interface{}, error) {
		return produce(shared, m, key, producer)
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res = <-ch:
	}

	if res.Err == nil {
		return res.Val.(T), nil
	}

	if found && m.serveStale {
		var v T
		if err := json.Unmarshal([]byte(cached.payload), &v); err == nil {
			metrics.CacheStaleServedTotal.WithLabelValues(key).Inc()
			log.Warn().Err(res.Err).Str("key", key).Msg("cache_serve_stale")
			return v, nil
		}
	}
	return zero, res.Err
}

func produce[T any](ctx context.Context, m *Manager, key string, producer func(context.Context) (T, error)) (T, error) {
	v, err := producer(ctx)
	if err != nil {
		return v, err
	}

	if err := m.write(ctx, key, v); err != nil {
		metrics.CacheWriteFailTotal.WithLabelValues(key).Inc()
		log.Warn().Err(err).Str("key", key).Msg("cache_write_error")
	}
	return v, nil
}

// write stores the payload first and the timestamp second. The two writes are
// not atomic; a payload left without a timestamp reads as expired.
func (m *Manager) write(ctx context.Context, key string, v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return &WriteError{Key: key, Err: err}
	}
	if err := m.store.Set(ctx, PayloadKey(key), string(b)); err != nil {
		return &WriteError{Key: key, Err: err}
	}
	ts := strconv.FormatInt(m.now().UnixMilli(), 10)
	if err := m.store.Set(ctx, TimestampKey(key), ts); err != nil {
		return &WriteError{Key: key, Err: err}
	}
	return nil
}
