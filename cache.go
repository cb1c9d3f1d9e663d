package sstable

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	log "github.com/sirupsen/logrus"
)

// CacheKey identifies a cached byte range: (file_path, position, size).
// Equality and hashing are by this tuple alone; whether the range holds
// an index block is an admission-policy concern, not part of identity,
// so it is deliberately not a field of CacheKey itself (see BlockCache's
// two-tier split below). golang-lru hashes CacheKey as a plain
// comparable struct; no hashing method is needed here.
type CacheKey struct {
	FilePath string
	Position int64
	Size     int32
}

// PositionalReader is the minimal file-system collaborator the cache
// needs: a positional read, satisfied directly by *os.File.
type PositionalReader interface {
	ReadAt(p []byte, off int64) (int, error)
}

// BlockCache memoizes block reads keyed by CacheKey. It is the only
// resource in this package meant to be shared across multiple Readers,
// so its internal maps (via hashicorp/golang-lru) are mutex-guarded.
// Index blocks are kept in a separate, admission-favored tier, so a hot
// index block survives eviction pressure from a large data-block scan.
type BlockCache struct {
	dataTier  *lru.Cache[CacheKey, []byte]
	indexTier *lru.Cache[CacheKey, []byte]
	logger    log.FieldLogger

	hits   int64
	misses int64
}

// NewBlockCache creates a cache with the given per-tier entry capacities.
func NewBlockCache(dataCapacity, indexCapacity int, logger log.FieldLogger) (*BlockCache, error) {
	if dataCapacity < 1 {
		dataCapacity = 1
	}
	if indexCapacity < 1 {
		indexCapacity = 1
	}
	dataTier, err := lru.New[CacheKey, []byte](dataCapacity)
	if err != nil {
		return nil, err
	}
	indexTier, err := lru.New[CacheKey, []byte](indexCapacity)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = defaultLogger
	}
	return &BlockCache{dataTier: dataTier, indexTier: indexTier, logger: logger}, nil
}

// GetBlock returns the byte range [position, position+size) of the file
// identified by path, fetching it through source on a cache miss.
func (c *BlockCache) GetBlock(path string, source PositionalReader, position int64, size int32, isIndex bool) (*MemorySegment, error) {
	key := CacheKey{FilePath: path, Position: position, Size: size}
	tier := c.dataTier
	if isIndex {
		tier = c.indexTier
	}

	if buf, ok := tier.Get(key); ok {
		atomic.AddInt64(&c.hits, 1)
		return WrapMemorySegment(buf), nil
	}
	atomic.AddInt64(&c.misses, 1)

	buf := make([]byte, size)
	if _, err := source.ReadAt(buf, position); err != nil {
		return nil, err
	}
	tier.Add(key, buf)
	return WrapMemorySegment(buf), nil
}

// Hits returns the cumulative number of cache hits across both tiers.
func (c *BlockCache) Hits() int64 { return atomic.LoadInt64(&c.hits) }

// Misses returns the cumulative number of cache misses across both
// tiers.
func (c *BlockCache) Misses() int64 { return atomic.LoadInt64(&c.misses) }

// Purge drops every cached entry from both tiers.
func (c *BlockCache) Purge() {
	c.dataTier.Purge()
	c.indexTier.Purge()
}
