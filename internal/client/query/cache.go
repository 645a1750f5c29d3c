// Package query caches remote collections for the dashboard.
//
// Reads return immediately with whatever is cached and refresh in the
// background. Concurrent fetches for one key are collapsed into a single
// call. A failed fetch keeps the last good data.
package query

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
)

// FetchFunc loads the value for a key.
type FetchFunc func(ctx context.Context) (any, error)

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Snapshot is the state of an entry at one point in time.
type Snapshot struct {
	Data any
	// Err is the result of the latest fetch. Data is kept when it fails.
	Err       error
	Stale     bool
	UpdatedAt time.Time
	Fetching  bool
}

// HasData reports whether a fetch has ever succeeded.
func (s Snapshot) HasData() bool {
	return !s.UpdatedAt.IsZero()
}

type observer struct {
	fn     func(Snapshot)
	active atomic.Bool
}

type entry struct {
	data      any
	err       error
	stale     bool
	updatedAt time.Time
	fetching  bool
	// version is bumped by Invalidate so a fetch that started earlier
	// knows its result may predate a mutation.
	version   uint64
	fetch     FetchFunc
	observers map[int]*observer
}

// Option configures a Cache.
type Option func(*Cache)

// WithStaleTime sets how long a successful result stays fresh. Zero means
// every read refreshes.
func WithStaleTime(d time.Duration) Option {
	return func(c *Cache) { c.staleTime = d }
}

// WithClock replaces the wall clock.
func WithClock(clock Clock) Option {
	return func(c *Cache) { c.clock = clock }
}

// WithLogger sets the logger for fetch failures.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) { c.logger = logger }
}

// Cache stores one entry per key for the lifetime of the cache.
type Cache struct {
	mu         sync.Mutex
	entries    map[Key]*entry
	group      singleflight.Group
	clock      Clock
	staleTime  time.Duration
	logger     *slog.Logger
	observerID int
}

// New creates an empty cache.
func New(opts ...Option) *Cache {
	c := &Cache{
		entries: make(map[Key]*entry),
		clock:   realClock{},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the current snapshot of key without side effects.
func (c *Cache) Get(key Key) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return Snapshot{}
	}
	return e.snapshot()
}

// Read returns the cached snapshot and starts a background fetch when the
// entry is missing or stale and no fetch is already running.
func (c *Cache) Read(ctx context.Context, key Key, fetch FetchFunc) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.entry(key)
	e.fetch = fetch
	if !e.fetching && c.needsFetch(e) {
		c.start(ctx, key, e)
	}
	return e.snapshot()
}

// Fetch is the blocking form of Read. A fresh entry is returned as is;
// otherwise Fetch joins the running fetch for key or starts one, then returns
// the settled snapshot together with its error.
func (c *Cache) Fetch(ctx context.Context, key Key, fetch FetchFunc) (Snapshot, error) {
	c.mu.Lock()
	e := c.entry(key)
	e.fetch = fetch
	if !e.fetching && !c.needsFetch(e) {
		snapshot := e.snapshot()
		c.mu.Unlock()
		return snapshot, snapshot.Err
	}
	done := c.start(ctx, key, e)
	c.mu.Unlock()

	select {
	case <-done:
	case <-ctx.Done():
		return c.Get(key), ctx.Err()
	}
	snapshot := c.Get(key)
	return snapshot, snapshot.Err
}

// Invalidate marks matching entries stale and refetches those that have
// live observers.
func (c *Cache) Invalidate(pattern Pattern) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, e := range c.entries {
		if !pattern.Matches(key) {
			continue
		}
		e.stale = true
		e.version++
		if len(e.observers) > 0 && e.fetch != nil && !e.fetching {
			c.start(context.Background(), key, e)
		}
	}
}

// Observe registers fn for every settled fetch of key, triggers a read, and
// returns a function that removes the observer. Results that settle after
// removal are dropped.
func (c *Cache) Observe(ctx context.Context, key Key, fetch FetchFunc, fn func(Snapshot)) func() {
	o := &observer{fn: fn}
	o.active.Store(true)

	c.mu.Lock()
	e := c.entry(key)
	id := c.observerID
	c.observerID++
	e.observers[id] = o
	c.mu.Unlock()

	c.Read(ctx, key, fetch)

	return func() {
		o.active.Store(false)
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(e.observers, id)
	}
}

func (c *Cache) entry(key Key) *entry {
	e, ok := c.entries[key]
	if !ok {
		e = &entry{observers: make(map[int]*observer)}
		c.entries[key] = e
	}
	return e
}

func (c *Cache) needsFetch(e *entry) bool {
	if e.stale || e.updatedAt.IsZero() {
		return true
	}
	return c.clock.Now().Sub(e.updatedAt) >= c.staleTime
}

// start launches or joins the fetch for key. c.mu must be held.
func (c *Cache) start(ctx context.Context, key Key, e *entry) <-chan singleflight.Result {
	e.fetching = true
	ctx = context.WithoutCancel(ctx)
	return c.group.DoChan(key.String(), func() (any, error) {
		c.run(ctx, key, e)
		return nil, nil
	})
}

// run fetches until a result is not overtaken by an invalidation, then
// publishes it.
func (c *Cache) run(ctx context.Context, key Key, e *entry) {
	for {
		c.mu.Lock()
		version := e.version
		fetch := e.fetch
		c.mu.Unlock()

		data, err := fetch(ctx)

		c.mu.Lock()
		if e.version != version {
			c.mu.Unlock()
			continue
		}
		if err != nil {
			e.err = err
			c.logger.Warn("Query fetch failed", "key", key.String(), "error", err)
		} else {
			e.data = data
			e.err = nil
			e.stale = false
			e.updatedAt = c.clock.Now()
		}
		e.fetching = false
		c.group.Forget(key.String())
		snapshot := e.snapshot()
		observers := make([]*observer, 0, len(e.observers))
		for _, o := range e.observers {
			observers = append(observers, o)
		}
		c.mu.Unlock()

		for _, o := range observers {
			if o.active.Load() {
				o.fn(snapshot)
			}
		}
		return
	}
}

func (e *entry) snapshot() Snapshot {
	return Snapshot{
		Data:      e.data,
		Err:       e.err,
		Stale:     e.stale,
		UpdatedAt: e.updatedAt,
		Fetching:  e.fetching,
	}
}
