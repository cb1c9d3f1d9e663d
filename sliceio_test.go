package sstable

import "testing"

func Test_Varint32RoundTrip(t *testing.T) {
	values := []int32{0, 1, 127, 128, 16384, 2097151, 2097152, 268435455, 268435456, 2147483647}
	out := NewSliceOutput(64, LittleEndian)
	for _, v := range values {
		if err := out.WriteVarint32(v); err != nil {
			t.Fatalf("WriteVarint32(%d): %v", v, err)
		}
	}

	in := out.ToSlice().ToInput(LittleEndian)
	for _, want := range values {
		got, err := in.ReadVarint32()
		if err != nil {
			t.Fatalf("ReadVarint32: %v", err)
		}
		if got != uint32(want) {
			t.Errorf("ReadVarint32 = %d, want %d", got, want)
		}
	}
}

func Test_Varint64RoundTrip(t *testing.T) {
	values := []int64{0, 1, 127, 128, 1 << 34, 1<<63 - 1}
	out := NewSliceOutput(96, LittleEndian)
	for _, v := range values {
		if err := out.WriteVarint64(v); err != nil {
			t.Fatalf("WriteVarint64(%d): %v", v, err)
		}
	}

	in := out.ToSlice().ToInput(LittleEndian)
	for _, want := range values {
		got, err := in.ReadVarint64()
		if err != nil {
			t.Fatalf("ReadVarint64: %v", err)
		}
		if got != uint64(want) {
			t.Errorf("ReadVarint64 = %d, want %d", got, want)
		}
	}
}

func Test_WriteVarint32RejectsNegative(t *testing.T) {
	out := NewSliceOutput(8, LittleEndian)
	if err := out.WriteVarint32(-1); err != ErrInvalid {
		t.Errorf("WriteVarint32(-1) = %v, want ErrInvalid", err)
	}
}

func Test_WriteVarint64RejectsNegative(t *testing.T) {
	out := NewSliceOutput(8, LittleEndian)
	if err := out.WriteVarint64(-1); err != ErrInvalid {
		t.Errorf("WriteVarint64(-1) = %v, want ErrInvalid", err)
	}
}

func Test_ReadVarint32RejectsOverlongChain(t *testing.T) {
	// 6 continuation bytes: no terminator within the 5-byte bound.
	buf := []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}
	in := WrapBytes(buf).ToInput(LittleEndian)
	if _, err := in.ReadVarint32(); err != ErrInvalid {
		t.Errorf("ReadVarint32 over overlong chain = %v, want ErrInvalid", err)
	}
}

func Test_ReadVarint64RejectsMalformedTenthByte(t *testing.T) {
	// nine continuation bytes, then a tenth byte with bit 1 set (invalid:
	// only bit 0 of the tenth byte may carry information for a 64-bit
	// varint, since 64 = 9*7 + 1).
	buf := []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x02}
	in := WrapBytes(buf).ToInput(LittleEndian)
	if _, err := in.ReadVarint64(); err != ErrInvalid {
		t.Errorf("ReadVarint64 with malformed tenth byte = %v, want ErrInvalid", err)
	}
}

func Test_ReadVarint64AcceptsMaximalTenthByte(t *testing.T) {
	buf := []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x01}
	in := WrapBytes(buf).ToInput(LittleEndian)
	v, err := in.ReadVarint64()
	if err != nil {
		t.Fatalf("ReadVarint64: %v", err)
	}
	if v != 1<<64-1 {
		t.Errorf("ReadVarint64 = %d, want max uint64", v)
	}
}

func Test_SetPositionRejectsOutOfRange(t *testing.T) {
	in := WrapBytes([]byte{1, 2, 3}).ToInput(LittleEndian)
	if err := in.SetPosition(4); err != ErrIndexOutOfRange {
		t.Errorf("SetPosition(4) = %v, want ErrIndexOutOfRange", err)
	}
	if err := in.SetPosition(-1); err != ErrIndexOutOfRange {
		t.Errorf("SetPosition(-1) = %v, want ErrIndexOutOfRange", err)
	}
	if err := in.SetPosition(3); err != nil {
		t.Errorf("SetPosition(3) = %v, want nil", err)
	}
}

func Test_ReadPastEndReturnsErrOutOfRange(t *testing.T) {
	in := WrapBytes([]byte{1, 2}).ToInput(LittleEndian)
	if _, err := in.ReadInt32(); err != ErrOutOfRange {
		t.Errorf("ReadInt32 past end = %v, want ErrOutOfRange", err)
	}
}

func Test_SliceOutputGrowsBeyondEstimate(t *testing.T) {
	out := NewSliceOutput(1, LittleEndian)
	for i := 0; i < 100; i++ {
		out.WriteInt64(int64(i))
	}
	if out.Size() != 800 {
		t.Fatalf("Size() = %d, want 800", out.Size())
	}
	in := out.ToSlice().ToInput(LittleEndian)
	for i := 0; i < 100; i++ {
		v, err := in.ReadInt64()
		if err != nil || v != int64(i) {
			t.Errorf("entry %d: got (%d, %v)", i, v, err)
		}
	}
}

func Test_WriteValueDispatchesByType(t *testing.T) {
	out := NewSliceOutput(16, LittleEndian)
	WriteValue(out, true)
	WriteValue(out, int8(-5))
	WriteValue(out, int32(99999))

	in := out.ToSlice().ToInput(LittleEndian)
	b, err := in.ReadUnsignedByte()
	if err != nil || b != 1 {
		t.Errorf("bool write = (%d, %v), want (1, nil)", b, err)
	}
	i8, err := in.ReadByte()
	if err != nil || i8 != -5 {
		t.Errorf("int8 write = (%d, %v), want (-5, nil)", i8, err)
	}
	i32, err := in.ReadInt32()
	if err != nil || i32 != 99999 {
		t.Errorf("int32 write = (%d, %v), want (99999, nil)", i32, err)
	}
}
