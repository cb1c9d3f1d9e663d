package sstable

// Comparator orders two keys the way a caller's SST keys are ordered;
// BlockReader uses it for SeekTo's binary search.
type Comparator func(a, b *MemorySlice) int

// BlockReader decodes either block layout (aligned or unaligned) and
// exposes sequential iteration plus binary-search SeekTo, mirroring
// paimon::BlockReader.
type BlockReader struct {
	slice      *MemorySlice
	order      ByteOrder
	comparator Comparator

	aligned     bool
	alignedSize int32
	count       int32
	positions   []int32 // only populated for unaligned blocks
}

const blockTrailerFixedLen = 5 // aligned_size|count:u32 + tag:u8

// NewBlockReader parses a sealed block slice, determining its layout from
// the final tag byte.
func NewBlockReader(slice *MemorySlice, order ByteOrder, comparator Comparator) (*BlockReader, error) {
	n := slice.Length()
	if n < blockTrailerFixedLen {
		return nil, ErrCorruptFile
	}
	tag := blockAlignedType(slice.ReadByte(n - 1))

	r := &BlockReader{slice: slice, order: order, comparator: comparator}

	switch tag {
	case blockAligned:
		in := slice.ToInput(order)
		if err := in.SetPosition(n - blockTrailerFixedLen); err != nil {
			return nil, err
		}
		alignedSize, err := in.ReadUint32()
		if err != nil {
			return nil, err
		}
		if alignedSize == 0 {
			return nil, ErrCorruptFile
		}
		payload := n - blockTrailerFixedLen
		if payload%int(alignedSize) != 0 {
			return nil, ErrCorruptFile
		}
		r.aligned = true
		r.alignedSize = int32(alignedSize)
		r.count = int32(payload / int(alignedSize))
	case blockUnaligned:
		in := slice.ToInput(order)
		if err := in.SetPosition(n - blockTrailerFixedLen); err != nil {
			return nil, err
		}
		count, err := in.ReadUint32()
		if err != nil {
			return nil, err
		}
		positionsStart := n - blockTrailerFixedLen - int(count)*4
		if positionsStart < 0 {
			return nil, ErrCorruptFile
		}
		if err := in.SetPosition(positionsStart); err != nil {
			return nil, err
		}
		positions := make([]int32, count)
		for i := range positions {
			v, err := in.ReadInt32()
			if err != nil {
				return nil, err
			}
			positions[i] = v
		}
		r.aligned = false
		r.count = int32(count)
		r.positions = positions
	default:
		return nil, ErrCorruptFile
	}
	return r, nil
}

// EntryCount returns the number of entries in the block.
func (r *BlockReader) EntryCount() int32 {
	return r.count
}

func (r *BlockReader) entryOffset(index int32) int32 {
	if r.aligned {
		return index * r.alignedSize
	}
	return r.positions[index]
}

// readEntry decodes the entry starting at byte offset pos, returning its
// key slice, value slice, and the offset immediately past the entry.
func (r *BlockReader) readEntry(pos int32) (key, value *MemorySlice, next int32, err error) {
	in := r.slice.ToInput(r.order)
	if err = in.SetPosition(int(pos)); err != nil {
		return nil, nil, 0, err
	}
	keyLen, err := in.ReadVarint32()
	if err != nil {
		return nil, nil, 0, err
	}
	key, err = in.ReadSlice(int(keyLen))
	if err != nil {
		return nil, nil, 0, err
	}
	valLen, err := in.ReadVarint32()
	if err != nil {
		return nil, nil, 0, err
	}
	value, err = in.ReadSlice(int(valLen))
	if err != nil {
		return nil, nil, 0, err
	}
	return key, value, int32(in.Position()), nil
}

func (r *BlockReader) readKeyAt(index int32) (*MemorySlice, error) {
	key, _, _, err := r.readEntry(r.entryOffset(index))
	return key, err
}

// Iterator produces a fresh BlockIterator positioned before the first
// entry.
func (r *BlockReader) Iterator() *BlockIterator {
	return &BlockIterator{reader: r}
}

// BlockIterator is a forward cursor over a BlockReader's entries,
// supporting ordered sequential scan and binary-search SeekTo.
type BlockIterator struct {
	reader  *BlockReader
	nextIdx int32
}

// HasNext reports whether another entry remains to be read.
func (it *BlockIterator) HasNext() bool {
	return it.nextIdx < it.reader.count
}

// Next returns the next (key, value, absoluteIndex) triple and advances
// the cursor.
func (it *BlockIterator) Next() (key, value *MemorySlice, index int32, err error) {
	if !it.HasNext() {
		return nil, nil, 0, ErrOutOfRange
	}
	key, value, _, err = it.reader.readEntry(it.reader.entryOffset(it.nextIdx))
	if err != nil {
		return nil, nil, 0, err
	}
	index = it.nextIdx
	it.nextIdx++
	return key, value, index, nil
}

// SeekTo binary-searches entry starts by decoding only the key and
// comparing. On a hit, the iterator positions at that entry; on a miss,
// it positions at the smallest entry whose key compares >= target. After
// SeekTo, HasNext is true iff such an entry exists.
func (it *BlockIterator) SeekTo(target *MemorySlice) error {
	lo, hi := int32(0), it.reader.count
	for lo < hi {
		mid := lo + (hi-lo)/2
		key, err := it.reader.readKeyAt(mid)
		if err != nil {
			return err
		}
		if it.reader.comparator(key, target) < 0 {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	it.nextIdx = lo
	return nil
}
