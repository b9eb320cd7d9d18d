package blobstore

import (
	"context"

	"github.com/nicolas-legroux/tcgaExplorer/internal/cache"
	"golang.org/x/sync/singleflight"
)

// CachingStore wraps a BlobStore and keeps whole blobs in an LRU cache.
// Concurrent opens of the same uncached blob share a single backend read.
type CachingStore struct {
	inner BlobStore
	cache cache.Cache
	group singleflight.Group
}

// NewCachingStore creates a new CachingStore.
func NewCachingStore(inner BlobStore, c cache.Cache) *CachingStore {
	return &CachingStore{
		inner: inner,
		cache: c,
	}
}

// Open returns the cached content of name, reading it from the inner store
// on a miss.
func (s *CachingStore) Open(ctx context.Context, name string) (Blob, error) {
	if data, ok := s.cache.Get(name); ok {
		return &memoryBlob{data: data}, nil
	}

	v, err, _ := s.group.Do(name, func() (any, error) {
		data, err := ReadAll(ctx, s.inner, name)
		if err != nil {
			return nil, err
		}
		s.cache.Set(name, data)
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return &memoryBlob{data: v.([]byte)}, nil
}

// Create passes through to the inner store and drops any cached copy.
func (s *CachingStore) Create(ctx context.Context, name string) (WritableBlob, error) {
	s.invalidate(name)
	return s.inner.Create(ctx, name)
}

// Put passes through to the inner store and drops any cached copy.
func (s *CachingStore) Put(ctx context.Context, name string, data []byte) error {
	s.invalidate(name)
	return s.inner.Put(ctx, name, data)
}

// Delete passes through to the inner store and drops any cached copy.
func (s *CachingStore) Delete(ctx context.Context, name string) error {
	s.invalidate(name)
	return s.inner.Delete(ctx, name)
}

// List passes through to the inner store.
func (s *CachingStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.inner.List(ctx, prefix)
}

func (s *CachingStore) invalidate(name string) {
	s.cache.Invalidate(func(key string) bool {
		return key == name
	})
}
