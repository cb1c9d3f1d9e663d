package sstable

import "github.com/bits-and-blooms/bitset"

// bitSet thinly wraps bits-and-blooms/bitset.BitSet, keeping the
// third-party type out of BloomFilter's exported surface so the bloom
// filter's own on-disk format (raw words, sized by BloomFilterHandle)
// stays independent of the library's own (de)serialization format.
type bitSet struct {
	b *bitset.BitSet
}

func newBitSet(numBits uint) *bitSet {
	return &bitSet{b: bitset.New(numBits)}
}

func bitSetFromWords(words []uint64) *bitSet {
	return &bitSet{b: bitset.From(words)}
}

func (s *bitSet) set(i uint) {
	s.b.Set(i)
}

func (s *bitSet) test(i uint) bool {
	return s.b.Test(i)
}

func (s *bitSet) len() uint {
	return s.b.Len()
}

func (s *bitSet) words() []uint64 {
	return s.b.Bytes()
}
