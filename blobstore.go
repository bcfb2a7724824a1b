package dat

import (
	"bytes"
	"context"
	"fmt"
	"sync"
)

// BlobStore is the minimal interface for durably shipping a dumped
// DoubleArray somewhere: a file, an object store, or anywhere else that
// can hold a named byte slice.
type BlobStore interface {
	Store(ctx context.Context, name string, blob []byte) error
	Load(ctx context.Context, name string) ([]byte, error)
}

// InMemoryBlobStore is a BlobStore backed by a map, useful for tests and
// for single-process use where durability across restarts doesn't matter.
type InMemoryBlobStore struct {
	mu      sync.Mutex
	entries map[string][]byte
}

// NewInMemoryBlobStore returns an empty InMemoryBlobStore.
func NewInMemoryBlobStore() *InMemoryBlobStore {
	return &InMemoryBlobStore{entries: map[string][]byte{}}
}

func (s *InMemoryBlobStore) Store(_ context.Context, name string, blob []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(blob))
	copy(cp, blob)
	s.entries[name] = cp
	return nil
}

func (s *InMemoryBlobStore) Load(_ context.Context, name string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.entries[name]
	if !ok {
		return nil, fmt.Errorf("dat: no blob named %q", name)
	}
	return b, nil
}

// SaveNamed dumps d, computes its digest, and Store's it under that
// digest, skipping the write if cache already knows about it. It
// returns the digest used as the blob's name.
func SaveNamed[V any](ctx context.Context, store BlobStore, cache *BlobCache, d *DoubleArray[V]) (string, error) {
	digest, err := d.Digest()
	if err != nil {
		return "", err
	}
	if cache.seen(digest) {
		return digest, nil
	}
	var buf bytes.Buffer
	if err := d.Dump(&buf); err != nil {
		return "", err
	}
	if err := store.Store(ctx, digest, buf.Bytes()); err != nil {
		return "", err
	}
	cache.markSeen(digest)
	return digest, nil
}

// LoadNamed loads the blob named name from store, decoding it into a
// fresh DoubleArray via codec, or returns the one already cached.
func LoadNamed[V any](ctx context.Context, store BlobStore, cache *ValueCache[V], name string, codec Codec[V]) (*DoubleArray[V], error) {
	if d, ok := cache.get(name); ok {
		return d, nil
	}
	blob, err := store.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	d, err := Load(bytes.NewReader(blob), codec)
	if err != nil {
		return nil, err
	}
	cache.put(name, d)
	return d, nil
}
