package sstable

import (
	"hash/crc32"

	log "github.com/sirupsen/logrus"
)

// Reader loads an SST file's footer, index block, and optional bloom
// filter, and serves point Lookup and ordered iteration. Mirrors
// paimon::SstFileReader and teacher sstable.go's Get/loadIndexFromFile
// shape. Not safe for concurrent use on the same instance (the shared
// BlockCache is what may be used concurrently across Readers).
type Reader struct {
	filePath   string
	file       PositionalReader
	cache      *BlockCache
	order      ByteOrder
	comparator Comparator
	logger     log.FieldLogger

	indexReader *BlockReader
	bloom       *BloomFilter
}

// NewReader opens a Reader over a file whose total length is fileLen,
// fetching the footer, bloom filter, and index block through cache.
func NewReader(filePath string, file PositionalReader, fileLen int64, cache *BlockCache, order ByteOrder, comparator Comparator, logger log.FieldLogger) (*Reader, error) {
	if logger == nil {
		logger = defaultLogger
	}
	r := &Reader{
		filePath:   filePath,
		file:       file,
		cache:      cache,
		order:      order,
		comparator: comparator,
		logger:     logger,
	}

	if fileLen < footerEncodedLength {
		return nil, wrapErr(OpReadFooter, ErrCorruptFile)
	}

	footerSeg, err := cache.GetBlock(filePath, file, fileLen-footerEncodedLength, footerEncodedLength, true)
	if err != nil {
		return nil, wrapErr(OpReadFooter, err)
	}
	footerSlice := NewMemorySlice(footerSeg, 0, footerEncodedLength)
	footer, err := ReadFooter(footerSlice.ToInput(order))
	if err != nil {
		return nil, wrapErr(OpReadFooter, err)
	}

	if footer.BloomFilterHandle.IsPresent() {
		bloomSeg, err := cache.GetBlock(filePath, file, int64(footer.BloomFilterHandle.Offset), int32(footer.BloomFilterHandle.Size), true)
		if err != nil {
			return nil, wrapErr(OpReadBloom, err)
		}
		bloom, err := NewBloomFilterFromSegment(footer.BloomFilterHandle.ExpectedEntries, footer.BloomFilterHandle.Size, bloomSeg)
		if err != nil {
			return nil, wrapErr(OpReadBloom, err)
		}
		r.bloom = bloom
	}

	indexReader, err := r.readBlock(footer.IndexBlockHandle, true)
	if err != nil {
		return nil, wrapErr(OpReadIndex, err)
	}
	r.indexReader = indexReader

	return r, nil
}

// readBlock loads and validates the block at handle, decompressing it
// per the trailer's recorded compression kind.
func (r *Reader) readBlock(handle BlockHandle, isIndex bool) (*BlockReader, error) {
	trailerPos := int64(handle.Offset) + int64(handle.Size)
	trailerSeg, err := r.cache.GetBlock(r.filePath, r.file, trailerPos, blockTrailerEncodedLength, isIndex)
	if err != nil {
		return nil, err
	}
	trailerSlice := NewMemorySlice(trailerSeg, 0, blockTrailerEncodedLength)
	trailer, err := ReadBlockTrailer(trailerSlice.ToInput(r.order))
	if err != nil {
		return nil, err
	}

	blockSeg, err := r.cache.GetBlock(r.filePath, r.file, int64(handle.Offset), int32(handle.Size), isIndex)
	if err != nil {
		return nil, err
	}
	stored := blockSeg.Bytes()
	if crc32.ChecksumIEEE(stored) != trailer.CRC32 {
		return nil, ErrCorruptFile
	}

	raw, err := compressorForKind(trailer.CompressionKind).Decode(nil, stored)
	if err != nil {
		return nil, ErrCorruptFile
	}

	return NewBlockReader(WrapBytes(raw), r.order, r.comparator)
}

// Lookup returns the value stored for key, or found=false if the bloom
// filter says absent or the data block's SeekTo lands on a non-equal
// key. Neither case is reported as an error.
func (r *Reader) Lookup(key []byte) (value []byte, found bool, err error) {
	if r.bloom != nil && !r.bloom.TestHash(hashKey(key)) {
		return nil, false, nil
	}

	keySlice := WrapBytes(key)
	indexIt := r.indexReader.Iterator()
	if err := indexIt.SeekTo(keySlice); err != nil {
		return nil, false, wrapErr(OpSeek, err)
	}
	if !indexIt.HasNext() {
		return nil, false, nil
	}

	_, handleValue, _, err := indexIt.Next()
	if err != nil {
		return nil, false, wrapErr(OpSeek, err)
	}
	handle, err := ReadBlockHandle(handleValue.ToInput(r.order))
	if err != nil {
		return nil, false, wrapErr(OpReadIndex, err)
	}

	dataReader, err := r.readBlock(handle, false)
	if err != nil {
		return nil, false, wrapErr(OpReadDataBlock, err)
	}

	dataIt := dataReader.Iterator()
	if err := dataIt.SeekTo(keySlice); err != nil {
		return nil, false, wrapErr(OpSeek, err)
	}
	if !dataIt.HasNext() {
		return nil, false, nil
	}
	foundKey, foundValue, _, err := dataIt.Next()
	if err != nil {
		return nil, false, wrapErr(OpSeek, err)
	}
	if !foundKey.Equal(keySlice) {
		return nil, false, nil
	}
	return foundValue.Bytes(), true, nil
}

// Iterator produces a file-level iterator positioned before the first
// entry of the first data block.
func (r *Reader) Iterator() *Iterator {
	return &Iterator{reader: r, indexIt: r.indexReader.Iterator()}
}

// Iterator advances across all data blocks in key order, lazily loading
// the next data block when the current one is exhausted. Mirrors
// paimon::SstFileIterator. Covers exactly one SST file; scanning across
// multiple files is the caller's job.
type Iterator struct {
	reader  *Reader
	indexIt *BlockIterator
	dataIt  *BlockIterator
}

// advance loads the next data block referenced by the index iterator,
// leaving dataIt nil if the index iterator is exhausted.
func (it *Iterator) advance() error {
	if !it.indexIt.HasNext() {
		it.dataIt = nil
		return nil
	}
	_, handleValue, _, err := it.indexIt.Next()
	if err != nil {
		return err
	}
	handle, err := ReadBlockHandle(handleValue.ToInput(it.reader.order))
	if err != nil {
		return err
	}
	dataReader, err := it.reader.readBlock(handle, false)
	if err != nil {
		return err
	}
	it.dataIt = dataReader.Iterator()
	return nil
}

// HasNext reports whether another entry remains, loading subsequent data
// blocks as needed.
func (it *Iterator) HasNext() (bool, error) {
	for it.dataIt == nil || !it.dataIt.HasNext() {
		if !it.indexIt.HasNext() {
			return false, nil
		}
		if err := it.advance(); err != nil {
			return false, err
		}
	}
	return true, nil
}

// Next returns the next (key, value) pair across the whole file.
func (it *Iterator) Next() (key, value *MemorySlice, err error) {
	ok, err := it.HasNext()
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, ErrOutOfRange
	}
	key, value, _, err = it.dataIt.Next()
	return key, value, err
}

// SeekTo positions the index iterator, then the selected data iterator,
// at the smallest entry whose key is >= target. If the index iterator is
// exhausted after seeking, the file iterator becomes empty.
func (it *Iterator) SeekTo(target []byte) error {
	keySlice := WrapBytes(target)
	if err := it.indexIt.SeekTo(keySlice); err != nil {
		return err
	}
	if !it.indexIt.HasNext() {
		it.dataIt = nil
		return nil
	}
	if err := it.advance(); err != nil {
		return err
	}
	if it.dataIt != nil {
		if err := it.dataIt.SeekTo(keySlice); err != nil {
			return err
		}
	}
	return nil
}
