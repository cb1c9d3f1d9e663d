package sstable

import "math"

// BloomFilter is a probabilistic set over 64-bit key hashes: no false
// negatives, a tunable false-positive rate. Bit storage is delegated to
// bits-and-blooms/bitset; this type owns the hash-to-bit-position scheme
// and the raw on-disk bitset serialization.
type BloomFilter struct {
	bits            *bitSet
	expectedEntries uint32
	sizeBytes       uint32
	hashCount       uint32
}

// NewBloomFilter sizes a fresh bloom filter for expectedEntries items at
// bitsPerEntry bits/entry.
func NewBloomFilter(expectedEntries uint32, bitsPerEntry float64) *BloomFilter {
	if expectedEntries == 0 {
		expectedEntries = 1
	}
	numBits := uint64(float64(expectedEntries) * bitsPerEntry)
	if numBits < 64 {
		numBits = 64
	}
	// round up to a whole number of 64-bit words so the serialized
	// bitset is always word-aligned.
	numBits = ((numBits + 63) / 64) * 64
	sizeBytes := uint32(numBits / 8)

	return &BloomFilter{
		bits:            newBitSet(uint(numBits)),
		expectedEntries: expectedEntries,
		sizeBytes:       sizeBytes,
		hashCount:       hashCountFor(numBits, uint64(expectedEntries)),
	}
}

// NewBloomFilterFromSegment binds a pre-sized memory segment (typically
// loaded through the block cache) as this filter's bitset, for the
// reader path. expectedEntries and sizeBytes come from the on-disk
// BloomFilterHandle.
func NewBloomFilterFromSegment(expectedEntries, sizeBytes uint32, segment *MemorySegment) (*BloomFilter, error) {
	if sizeBytes%8 != 0 || segment.Size() != int(sizeBytes) {
		return nil, ErrCorruptFile
	}
	numWords := int(sizeBytes) / 8
	words := make([]uint64, numWords)
	for i := 0; i < numWords; i++ {
		words[i] = segment.getUint64(i * 8)
	}
	numBits := uint64(sizeBytes) * 8
	return &BloomFilter{
		bits:            bitSetFromWords(words),
		expectedEntries: expectedEntries,
		sizeBytes:       sizeBytes,
		hashCount:       hashCountFor(numBits, uint64(expectedEntries)),
	}, nil
}

func hashCountFor(numBits, expectedEntries uint64) uint32 {
	if expectedEntries == 0 {
		expectedEntries = 1
	}
	k := uint32(math.Round(float64(numBits) / float64(expectedEntries) * math.Ln2))
	if k < 1 {
		k = 1
	}
	return k
}

// AddHash sets the bits derived from h64 using double hashing (Kirsch–
// Mitzenmacher): the two 32-bit halves of h64 seed hashCount derived
// positions.
func (f *BloomFilter) AddHash(h64 uint64) {
	h1, h2 := uint32(h64), uint32(h64>>32)
	nbits := f.bits.len()
	for i := uint32(0); i < f.hashCount; i++ {
		pos := uint((h1 + i*h2)) % nbits
		f.bits.set(pos)
	}
}

// TestHash returns false only when h64 is definitely absent; a true
// result never implies a hit - callers must still verify with a direct
// block scan.
func (f *BloomFilter) TestHash(h64 uint64) bool {
	h1, h2 := uint32(h64), uint32(h64>>32)
	nbits := f.bits.len()
	for i := uint32(0); i < f.hashCount; i++ {
		pos := uint((h1 + i*h2)) % nbits
		if !f.bits.test(pos) {
			return false
		}
	}
	return true
}

// SizeBytes returns the serialized bitset's size in bytes.
func (f *BloomFilter) SizeBytes() uint32 {
	return f.sizeBytes
}

// ExpectedEntries returns the geometry's configured entry count.
func (f *BloomFilter) ExpectedEntries() uint32 {
	return f.expectedEntries
}

// Serialize emits the raw bitset bytes as a memory slice, ready to be
// written after the last data block and before the footer.
func (f *BloomFilter) Serialize() *MemorySlice {
	seg := NewMemorySegment(int(f.sizeBytes))
	words := f.bits.words()
	for i, w := range words {
		seg.putUint64(i*8, w)
	}
	return NewMemorySlice(seg, 0, int(f.sizeBytes))
}
