package cache

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory Store with switchable failures.
type fakeStore struct {
	mu      sync.Mutex
	data    map[string]string
	failGet bool
	failSet bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: map[string]string{}}
}

func (s *fakeStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failGet {
		return "", false, errors.New("store unavailable")
	}
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *fakeStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSet {
		return errors.New("disk full")
	}
	s.data[key] = value
	return nil
}

func (s *fakeStore) snapshot() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.data))
	for k, v := range s.data {
		out[k] = v
	}
	return out
}

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newClock() *clock {
	return &clock{now: time.UnixMilli(1_700_000_000_000)}
}

// counter returns a producer yielding 1, 2, 3, ... and a call count.
func counter() (func(context.Context) (int, error), *int32) {
	var n int32
	return func(context.Context) (int, error) {
		return int(atomic.AddInt32(&n, 1)), nil
	}, &n
}

func failing(context.Context) (int, error) {
	return 0, errors.New("network down")
}

func TestWithCache_Freshness(t *testing.T) {
	store := newFakeStore()
	clk := newClock()
	m := NewManager(store, time.Hour, WithClock(clk.Now))
	ctx := context.Background()
	producer, calls := counter()

	v, err := WithCache(ctx, m, "places_en", time.Hour, producer)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	clk.Advance(59 * time.Minute)
	v, err = WithCache(ctx, m, "places_en", time.Hour, producer)
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))

	clk.Advance(time.Minute)
	v, err = WithCache(ctx, m, "places_en", time.Hour, producer)
	require.NoError(t, err)
	assert.Equal(t, 2, v, "entry aged exactly ttl is expired")
}

func TestWithCache_StoredLayout(t *testing.T) {
	store := newFakeStore()
	clk := newClock()
	m := NewManager(store, DefaultTTL, WithClock(clk.Now))

	_, err := WithCache(context.Background(), m, "places_hi", 0, func(context.Context) ([]string, error) {
		return []string{"कुंडलपुर"}, nil
	})
	require.NoError(t, err)

	data := store.snapshot()
	assert.Equal(t, `["कुंडलपुर"]`, data["places_hi_cache"])
	assert.Equal(t, strconv.FormatInt(clk.Now().UnixMilli(), 10), data["places_hi_timestamp"])
}

func TestWithCache_ProducerFailure(t *testing.T) {
	tests := []struct {
		name        string
		serveStale  bool
		warm        bool
		expected    int
		expectError bool
	}{
		{name: "stale entry served", serveStale: true, warm: true, expected: 1},
		{name: "stale serving disabled", serveStale: false, warm: true, expectError: true},
		{name: "cold cache", serveStale: true, warm: false, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			clk := newClock()
			m := NewManager(store, time.Hour, WithClock(clk.Now), WithServeStale(tt.serveStale))
			ctx := context.Background()

			if tt.warm {
				producer, _ := counter()
				_, err := WithCache(ctx, m, "images_en", time.Hour, producer)
				require.NoError(t, err)
				clk.Advance(2 * time.Hour)
			}
			before := store.snapshot()

			v, err := WithCache(ctx, m, "images_en", time.Hour, failing)

			if tt.expectError {
				assert.EqualError(t, err, "network down")
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, v)
			}
			assert.Equal(t, before, store.snapshot(), "failure must not modify the entry")
		})
	}
}

func TestWithCache_StaleSurvivesUntilSuccess(t *testing.T) {
	store := newFakeStore()
	clk := newClock()
	m := NewManager(store, time.Hour, WithClock(clk.Now))
	ctx := context.Background()
	producer, _ := counter()

	_, err := WithCache(ctx, m, "k", time.Hour, producer)
	require.NoError(t, err)
	clk.Advance(3 * time.Hour)

	v, err := WithCache(ctx, m, "k", time.Hour, failing)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	v, err = WithCache(ctx, m, "k", time.Hour, producer)
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	v, err = WithCache(ctx, m, "k", time.Hour, failing)
	require.NoError(t, err)
	assert.Equal(t, 2, v, "fresh entry is served without calling the producer")
}

func TestWithCache_BrokenEntries(t *testing.T) {
	now := newClock()
	fresh := strconv.FormatInt(now.Now().UnixMilli(), 10)

	tests := []struct {
		name string
		data map[string]string
	}{
		{name: "payload without timestamp", data: map[string]string{"k_cache": "41"}},
		{name: "unparsable timestamp", data: map[string]string{"k_cache": "41", "k_timestamp": "yesterday"}},
		{name: "corrupt payload", data: map[string]string{"k_cache": "{", "k_timestamp": fresh}},
		{name: "timestamp without payload", data: map[string]string{"k_timestamp": fresh}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			for k, v := range tt.data {
				store.data[k] = v
			}
			m := NewManager(store, time.Hour, WithClock(now.Now))
			producer, calls := counter()

			v, err := WithCache(context.Background(), m, "k", time.Hour, producer)

			require.NoError(t, err)
			assert.Equal(t, 1, v)
			assert.Equal(t, int32(1), atomic.LoadInt32(calls))
			assert.Equal(t, "1", store.snapshot()["k_cache"])
		})
	}
}

func TestWithCache_WriteFailureStillReturnsValue(t *testing.T) {
	store := newFakeStore()
	store.failSet = true
	m := NewManager(store, time.Hour)
	producer, calls := counter()

	v, err := WithCache(context.Background(), m, "k", time.Hour, producer)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	v, err = WithCache(context.Background(), m, "k", time.Hour, producer)
	require.NoError(t, err)
	assert.Equal(t, 2, v)
	assert.Equal(t, int32(2), atomic.LoadInt32(calls))
}

func TestWithCache_ReadFailureFallsThroughToProducer(t *testing.T) {
	store := newFakeStore()
	store.failGet = true
	m := NewManager(store, time.Hour)
	producer, _ := counter()

	v, err := WithCache(context.Background(), m, "k", time.Hour, producer)

	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestWithCache_ConcurrentMissesShareOneProducer(t *testing.T) {
	store := newFakeStore()
	m := NewManager(store, time.Hour)
	release := make(chan struct{})
	var calls int32
	producer := func(context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return "payload", nil
	}

	const n = 8
	var wg sync.WaitGroup
	results := make([]string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := WithCache(context.Background(), m, "shared", time.Hour, producer)
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}
	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	for _, r := range results {
		assert.Equal(t, "payload", r)
	}
}

func TestWithCache_CallerCancelDoesNotAbortStore(t *testing.T) {
	store := newFakeStore()
	m := NewManager(store, time.Hour)
	release := make(chan struct{})
	done := make(chan struct{})
	producer := func(ctx context.Context) (int, error) {
		<-release
		defer close(done)
		return 7, ctx.Err()
	}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, err := WithCache(ctx, m, "k", time.Hour, producer)
		errCh <- err
	}()
	cancel()
	assert.ErrorIs(t, <-errCh, context.Canceled)

	close(release)
	<-done
	assert.Eventually(t, func() bool {
		return store.snapshot()["k_cache"] == "7"
	}, time.Second, 10*time.Millisecond)
}

func TestNewManager_Defaults(t *testing.T) {
	m := NewManager(newFakeStore(), 0)

	assert.Equal(t, DefaultTTL, m.TTL())
	assert.Equal(t, 86_400_000, int(m.TTL().Milliseconds()))
}
