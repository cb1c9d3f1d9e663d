package sstable

import "github.com/spaolacci/murmur3"

// hashKey produces the 64-bit murmur hash used to add and test keys
// against the bloom filter.
func hashKey(key []byte) uint64 {
	return murmur3.Sum64(key)
}
