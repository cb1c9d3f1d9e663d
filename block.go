package sstable

// blockAlignedType tags whether a block's entries all share one encoded
// length (ALIGNED, offsets computed arithmetically) or not (UNALIGNED,
// offsets stored explicitly). Occupies the final byte of every block.
type blockAlignedType uint8

const (
	blockAligned   blockAlignedType = 0
	blockUnaligned blockAlignedType = 1
)

// BlockWriter buffers ordered (key, value) entries into a single block,
// tracking entry start offsets and detecting a uniform encoded length for
// the aligned fast path. Mirrors paimon::BlockWriter. Not safe for
// concurrent use; one writer per block.
type BlockWriter struct {
	out         *SliceOutput
	positions   []int32
	aligned     bool
	alignedSize int32
	targetSize  int
	order       ByteOrder
}

// NewBlockWriter creates a writer with an initial buffer sized to
// targetSize, the configured block-size target.
func NewBlockWriter(targetSize int, order ByteOrder) *BlockWriter {
	w := &BlockWriter{targetSize: targetSize, order: order}
	w.Reset()
	return w
}

// Write appends one (key, value) entry. Entries are never rejected for
// being duplicate or out-of-order - the caller is responsible for
// supplying keys in ascending order.
func (w *BlockWriter) Write(key, value []byte) error {
	start := int32(w.out.Size())
	if err := w.out.WriteVarint32(int32(len(key))); err != nil {
		return err
	}
	w.out.WriteAllBytes(key)
	if err := w.out.WriteVarint32(int32(len(value))); err != nil {
		return err
	}
	w.out.WriteAllBytes(value)
	end := int32(w.out.Size())

	w.positions = append(w.positions, start)
	if w.aligned {
		size := end - start
		if w.alignedSize == 0 {
			w.alignedSize = size
		} else if w.alignedSize != size {
			w.aligned = false
		}
	}
	return nil
}

// Memory reports the number of bytes buffered so far; callers use this to
// decide when to cut a new block.
func (w *BlockWriter) Memory() int {
	return w.out.Size()
}

// EntryCount reports how many entries have been written since the last
// Reset.
func (w *BlockWriter) EntryCount() int {
	return len(w.positions)
}

// Reset discards any buffered entries and prepares the writer for a new
// block. The writer is unusable between Finish and Reset.
func (w *BlockWriter) Reset() {
	w.positions = w.positions[:0]
	w.out = NewSliceOutput(w.targetSize, w.order)
	w.alignedSize = 0
	w.aligned = true
}

// Finish materializes the positions trailer and alignment tag, returning
// the sealed block as an immutable slice. If zero entries were written,
// the block is always treated as unaligned since a reader could not
// otherwise recover the entry count.
func (w *BlockWriter) Finish() *MemorySlice {
	if len(w.positions) == 0 {
		w.aligned = false
	}
	if w.aligned {
		w.out.WriteUint32(uint32(w.alignedSize))
	} else {
		for _, pos := range w.positions {
			w.out.WriteInt32(pos)
		}
		w.out.WriteUint32(uint32(len(w.positions)))
	}
	if w.aligned {
		w.out.WriteUint8(uint8(blockAligned))
	} else {
		w.out.WriteUint8(uint8(blockUnaligned))
	}
	return w.out.ToSlice()
}
