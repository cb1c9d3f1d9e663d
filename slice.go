package sstable

// MemorySlice is an immutable (segment, offset, length) view sharing its
// backing segment with other slices, mirroring paimon's MemorySlice. The
// segment's lifetime is whichever holder (slice or another slice derived
// from it) outlives the rest; Go's GC keeps the backing array alive via
// the segment pointer, so no explicit refcounting is needed.
type MemorySlice struct {
	segment *MemorySegment
	offset  int
	length  int
}

// NewMemorySlice constructs a slice over segment covering
// [offset, offset+length). Panics if the range is out of bounds - the
// caller is responsible for keeping offset/length within segment.
func NewMemorySlice(segment *MemorySegment, offset, length int) *MemorySlice {
	if offset < 0 || length < 0 || offset+length > segment.Size() {
		panic("sstable: memory slice out of bounds")
	}
	return &MemorySlice{segment: segment, offset: offset, length: length}
}

// WrapBytes wraps a raw byte slice as a MemorySlice over a fresh segment,
// the common path when handing file-read bytes to the slice layer.
func WrapBytes(buf []byte) *MemorySlice {
	seg := WrapMemorySegment(buf)
	return NewMemorySlice(seg, 0, len(buf))
}

// Length returns the slice's length in bytes.
func (s *MemorySlice) Length() int {
	return s.length
}

// ReadByte returns the byte at the given position relative to the
// slice's start.
func (s *MemorySlice) ReadByte(pos int) byte {
	if pos < 0 || pos >= s.length {
		panic("sstable: slice read out of range")
	}
	return s.segment.getByte(s.offset + pos)
}

// Slice produces a sub-slice sharing the same backing segment.
func (s *MemorySlice) Slice(offset, length int) *MemorySlice {
	if offset < 0 || length < 0 || offset+length > s.length {
		panic("sstable: sub-slice out of bounds")
	}
	return &MemorySlice{segment: s.segment, offset: s.offset + offset, length: length}
}

// Bytes returns a fresh copy of the slice's bytes, safe for the caller
// to retain past the segment's lifetime - the copy Lookup hands back.
func (s *MemorySlice) Bytes() []byte {
	out := make([]byte, s.length)
	copy(out, s.segment.buf[s.offset:s.offset+s.length])
	return out
}

// rawView returns the slice's bytes without copying, for internal use
// only (CRC computation, comparator calls) where the caller is known not
// to retain the result past the segment's lifetime.
func (s *MemorySlice) rawView() []byte {
	return s.segment.buf[s.offset : s.offset+s.length]
}

// ToInput produces a fresh SliceInput cursor over the slice, honoring the
// given byte order.
func (s *MemorySlice) ToInput(order ByteOrder) *SliceInput {
	return &SliceInput{slice: s, order: order}
}

// Equal reports whether two slices hold byte-identical content.
func (s *MemorySlice) Equal(other *MemorySlice) bool {
	if s.length != other.length {
		return false
	}
	for i := 0; i < s.length; i++ {
		if s.ReadByte(i) != other.ReadByte(i) {
			return false
		}
	}
	return true
}
