package query

import (
	"context"
	"fmt"
	"time"
)

// TypedSnapshot is a Snapshot whose data has a known type.
type TypedSnapshot[T any] struct {
	Data      T
	Err       error
	Stale     bool
	UpdatedAt time.Time
	Fetching  bool
}

// HasData reports whether a fetch has ever succeeded.
func (s TypedSnapshot[T]) HasData() bool {
	return !s.UpdatedAt.IsZero()
}

// Typed is a view of a Cache for entries holding T.
type Typed[T any] struct {
	cache *Cache
}

// NewTyped wraps cache.
func NewTyped[T any](cache *Cache) Typed[T] {
	return Typed[T]{cache: cache}
}

func (t Typed[T]) Read(ctx context.Context, key Key, fetch func(context.Context) (T, error)) TypedSnapshot[T] {
	return convert[T](t.cache.Read(ctx, key, erase(fetch)))
}

func (t Typed[T]) Fetch(ctx context.Context, key Key, fetch func(context.Context) (T, error)) (TypedSnapshot[T], error) {
	snapshot, err := t.cache.Fetch(ctx, key, erase(fetch))
	return convert[T](snapshot), err
}

func (t Typed[T]) Get(key Key) TypedSnapshot[T] {
	return convert[T](t.cache.Get(key))
}

func (t Typed[T]) Observe(ctx context.Context, key Key, fetch func(context.Context) (T, error), fn func(TypedSnapshot[T])) func() {
	return t.cache.Observe(ctx, key, erase(fetch), func(s Snapshot) {
		fn(convert[T](s))
	})
}

func erase[T any](fetch func(context.Context) (T, error)) FetchFunc {
	return func(ctx context.Context) (any, error) {
		return fetch(ctx)
	}
}

func convert[T any](s Snapshot) TypedSnapshot[T] {
	out := TypedSnapshot[T]{
		Err:       s.Err,
		Stale:     s.Stale,
		UpdatedAt: s.UpdatedAt,
		Fetching:  s.Fetching,
	}
	if s.Data == nil {
		return out
	}
	data, ok := s.Data.(T)
	if !ok {
		out.Err = fmt.Errorf("query: cached value is %T, not %T", s.Data, out.Data)
		return out
	}
	out.Data = data
	return out
}
