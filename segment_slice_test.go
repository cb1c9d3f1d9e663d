package sstable

import "testing"

func Test_MemorySegmentPutGetRoundTrip(t *testing.T) {
	seg := NewMemorySegment(16)
	seg.putUint32(0, 0xDEADBEEF)
	seg.putUint64(8, 0x0102030405060708)
	if got := seg.getUint32(0); got != 0xDEADBEEF {
		t.Errorf("getUint32 = %x, want DEADBEEF", got)
	}
	if got := seg.getUint64(8); got != 0x0102030405060708 {
		t.Errorf("getUint64 = %x, want 0102030405060708", got)
	}
}

func Test_MemorySegmentCopyTo(t *testing.T) {
	src := NewMemorySegment(8)
	for i := 0; i < 8; i++ {
		src.putByte(i, byte(i+1))
	}
	dst := NewMemorySegment(8)
	src.CopyTo(2, dst, 0, 4)
	for i := 0; i < 4; i++ {
		if dst.getByte(i) != byte(i+3) {
			t.Errorf("dst[%d] = %d, want %d", i, dst.getByte(i), i+3)
		}
	}
}

func Test_NewMemorySlicePanicsOutOfBounds(t *testing.T) {
	seg := NewMemorySegment(4)
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected panic for out-of-bounds slice")
		}
	}()
	NewMemorySlice(seg, 2, 4)
}

func Test_MemorySliceSubSliceSharesSegment(t *testing.T) {
	seg := NewMemorySegment(8)
	for i := 0; i < 8; i++ {
		seg.putByte(i, byte(i))
	}
	whole := NewMemorySlice(seg, 0, 8)
	sub := whole.Slice(2, 3)
	if sub.Length() != 3 {
		t.Fatalf("sub.Length() = %d, want 3", sub.Length())
	}
	for i := 0; i < 3; i++ {
		if sub.ReadByte(i) != byte(i+2) {
			t.Errorf("sub.ReadByte(%d) = %d, want %d", i, sub.ReadByte(i), i+2)
		}
	}
}

func Test_MemorySliceEqual(t *testing.T) {
	a := WrapBytes([]byte("hello"))
	b := WrapBytes([]byte("hello"))
	c := WrapBytes([]byte("world"))
	if !a.Equal(b) {
		t.Errorf("identical byte slices should be Equal")
	}
	if a.Equal(c) {
		t.Errorf("distinct byte slices should not be Equal")
	}
}

func Test_MemorySliceBytesReturnsCopy(t *testing.T) {
	seg := NewMemorySegment(4)
	seg.putByte(0, 1)
	s := NewMemorySlice(seg, 0, 4)
	out := s.Bytes()
	out[0] = 99
	if s.ReadByte(0) != 1 {
		t.Errorf("mutating Bytes() copy affected the underlying slice")
	}
}
