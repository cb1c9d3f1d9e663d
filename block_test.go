package sstable

import (
	"bytes"
	"fmt"
	"testing"
)

func byteSliceComparator(a, b *MemorySlice) int {
	return bytes.Compare(a.rawView(), b.rawView())
}

func Test_BlockWriterUniformLengthEntriesProduceAlignedLayout(t *testing.T) {
	w := NewBlockWriter(4096, LittleEndian)
	n := 10
	for i := 0; i < n; i++ {
		key := []byte(fmt.Sprintf("key%03d", i))   // 6 bytes
		value := []byte(fmt.Sprintf("val%03d", i)) // 6 bytes
		if err := w.Write(key, value); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}
	sealed := w.Finish()

	// Each entry: varint32(6) + 6 + varint32(6) + 6 = 1+6+1+6 = 14 bytes.
	entrySize := 14
	want := n*entrySize + blockTrailerFixedLen
	if sealed.Length() != want {
		t.Errorf("sealed length = %d, want %d", sealed.Length(), want)
	}

	tag := blockAlignedType(sealed.ReadByte(sealed.Length() - 1))
	if tag != blockAligned {
		t.Errorf("tag = %d, want blockAligned", tag)
	}

	r, err := NewBlockReader(sealed, LittleEndian, byteSliceComparator)
	if err != nil {
		t.Fatalf("NewBlockReader: %v", err)
	}
	if int(r.EntryCount()) != n {
		t.Errorf("EntryCount() = %d, want %d", r.EntryCount(), n)
	}
}

func Test_BlockWriterVaryingLengthEntriesProduceUnalignedLayout(t *testing.T) {
	w := NewBlockWriter(4096, LittleEndian)
	entries := [][2]string{{"a", "1"}, {"bb", "22"}, {"ccc", "333333"}}
	for _, e := range entries {
		if err := w.Write([]byte(e[0]), []byte(e[1])); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}
	sealed := w.Finish()
	tag := blockAlignedType(sealed.ReadByte(sealed.Length() - 1))
	if tag != blockUnaligned {
		t.Errorf("tag = %d, want blockUnaligned", tag)
	}

	r, err := NewBlockReader(sealed, LittleEndian, byteSliceComparator)
	if err != nil {
		t.Fatalf("NewBlockReader: %v", err)
	}
	it := r.Iterator()
	for i, e := range entries {
		if !it.HasNext() {
			t.Fatalf("entry %d: HasNext() = false", i)
		}
		key, value, idx, err := it.Next()
		if err != nil {
			t.Fatalf("entry %d: Next: %v", i, err)
		}
		if string(key.Bytes()) != e[0] || string(value.Bytes()) != e[1] {
			t.Errorf("entry %d: got (%s, %s), want (%s, %s)", i, key.Bytes(), value.Bytes(), e[0], e[1])
		}
		if int(idx) != i {
			t.Errorf("entry %d: index = %d, want %d", i, idx, i)
		}
	}
	if it.HasNext() {
		t.Errorf("expected iterator exhausted after %d entries", len(entries))
	}
}

func Test_BlockWriterFinishOnZeroEntriesIsUnaligned(t *testing.T) {
	w := NewBlockWriter(4096, LittleEndian)
	sealed := w.Finish()
	if sealed.Length() != blockTrailerFixedLen {
		t.Fatalf("empty block length = %d, want %d", sealed.Length(), blockTrailerFixedLen)
	}
	r, err := NewBlockReader(sealed, LittleEndian, byteSliceComparator)
	if err != nil {
		t.Fatalf("NewBlockReader on empty block: %v", err)
	}
	if r.EntryCount() != 0 {
		t.Errorf("EntryCount() = %d, want 0", r.EntryCount())
	}
}

func Test_BlockReaderSeekToFindsExactAndNearestGreater(t *testing.T) {
	w := NewBlockWriter(4096, LittleEndian)
	keys := []string{"b", "d", "f", "h", "j"}
	for _, k := range keys {
		if err := w.Write([]byte(k), []byte("v-"+k)); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}
	sealed := w.Finish()
	r, err := NewBlockReader(sealed, LittleEndian, byteSliceComparator)
	if err != nil {
		t.Fatalf("NewBlockReader: %v", err)
	}

	// Exact match.
	it := r.Iterator()
	if err := it.SeekTo(WrapBytes([]byte("f"))); err != nil {
		t.Fatalf("SeekTo: %v", err)
	}
	key, _, _, err := it.Next()
	if err != nil || string(key.Bytes()) != "f" {
		t.Errorf("SeekTo(f) landed on %q, err %v", key.Bytes(), err)
	}

	// Miss between entries lands on nearest-greater.
	it2 := r.Iterator()
	if err := it2.SeekTo(WrapBytes([]byte("e"))); err != nil {
		t.Fatalf("SeekTo: %v", err)
	}
	key2, _, _, err := it2.Next()
	if err != nil || string(key2.Bytes()) != "f" {
		t.Errorf("SeekTo(e) landed on %q, want f", key2.Bytes())
	}

	// Seek past the end yields an exhausted iterator.
	it3 := r.Iterator()
	if err := it3.SeekTo(WrapBytes([]byte("z"))); err != nil {
		t.Fatalf("SeekTo: %v", err)
	}
	if it3.HasNext() {
		t.Errorf("SeekTo(z) should exhaust the iterator")
	}
}
