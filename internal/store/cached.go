package store

import (
	"context"
	"slices"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CachedStore is a read-through LRU in front of another store. Writes go to
// the inner store first and then refresh the cached copy.
type CachedStore struct {
	inner Store
	cache *lru.Cache[string, []byte]
}

// NewCachedStore wraps inner with an LRU of the given capacity
func NewCachedStore(inner Store, size int) (*CachedStore, error) {
	c, err := lru.New[string, []byte](size)
	if err != nil {
		return nil, err
	}
	return &CachedStore{inner: inner, cache: c}, nil
}

func (s *CachedStore) Get(ctx context.Context, key string) ([]byte, error) {
	if v, ok := s.cache.Get(key); ok {
		return slices.Clone(v), nil
	}

	v, err := s.inner.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	s.cache.Add(key, slices.Clone(v))
	return v, nil
}

func (s *CachedStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.inner.Set(ctx, key, value); err != nil {
		s.cache.Remove(key)
		return err
	}
	s.cache.Add(key, slices.Clone(value))
	return nil
}

func (s *CachedStore) Delete(ctx context.Context, key string) error {
	s.cache.Remove(key)
	return s.inner.Delete(ctx, key)
}

// Keys always asks the inner store
func (s *CachedStore) Keys(ctx context.Context) ([]string, error) {
	return s.inner.Keys(ctx)
}

// Len reports the number of cached entries
func (s *CachedStore) Len() int {
	return s.cache.Len()
}

// IsCached reports whether key is currently held in the cache
func (s *CachedStore) IsCached(key string) bool {
	return s.cache.Contains(key)
}

