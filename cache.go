package dat

import lru "github.com/hashicorp/golang-lru"

// BlobCache tracks which content digests are already known to be
// durably stored, so SaveNamed doesn't re-upload a byte-identical
// DoubleArray it has already shipped once this process.
type BlobCache struct {
	arc *lru.ARCCache
}

// NewBlobCache returns a BlobCache holding up to size digests.
func NewBlobCache(size int) (*BlobCache, error) {
	arc, err := lru.NewARC(size)
	if err != nil {
		return nil, err
	}
	return &BlobCache{arc: arc}, nil
}

func (c *BlobCache) seen(digest string) bool {
	if c == nil {
		return false
	}
	return c.arc.Contains(digest)
}

func (c *BlobCache) markSeen(digest string) {
	if c == nil {
		return
	}
	c.arc.Add(digest, nil)
}

// ValueCache caches fully decoded DoubleArrays by name, so a hot
// LoadNamed path doesn't redecode the binary format on every call.
type ValueCache[V any] struct {
	arc *lru.ARCCache
}

// NewValueCache returns a ValueCache holding up to size decoded
// DoubleArrays.
func NewValueCache[V any](size int) (*ValueCache[V], error) {
	arc, err := lru.NewARC(size)
	if err != nil {
		return nil, err
	}
	return &ValueCache[V]{arc: arc}, nil
}

func (c *ValueCache[V]) get(name string) (*DoubleArray[V], bool) {
	if c == nil {
		return nil, false
	}
	v, ok := c.arc.Get(name)
	if !ok {
		return nil, false
	}
	return v.(*DoubleArray[V]), true
}

func (c *ValueCache[V]) put(name string, d *DoubleArray[V]) {
	if c == nil {
		return
	}
	c.arc.Add(name, d)
}
