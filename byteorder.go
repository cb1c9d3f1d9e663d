package sstable

import (
	"encoding/binary"
	"unsafe"
)

// ByteOrder tags the endianness a typed read or write should honor. SST
// files record their byte order in the writer's Options and every reader
// must be told the same order used at write time.
type ByteOrder uint8

const (
	// LittleEndian is the conventional order for SST files produced by
	// this package's default Options.
	LittleEndian ByteOrder = iota
	// BigEndian is supported for interoperability with files written on
	// big-endian-preferring systems.
	BigEndian
)

func (o ByteOrder) String() string {
	if o == BigEndian {
		return "big"
	}
	return "little"
}

// systemByteOrder detects the host's native byte order once at package
// init, mirroring paimon's SystemByteOrder() probe.
var systemByteOrder = detectSystemByteOrder()

func detectSystemByteOrder() ByteOrder {
	var i uint16 = 1
	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 1 {
		return LittleEndian
	}
	return BigEndian
}

func needSwap(order ByteOrder) bool {
	return order != systemByteOrder
}

func swap16(v uint16) uint16 { return (v >> 8) | (v << 8) }

func swap32(v uint32) uint32 {
	return ((v & 0x000000FF) << 24) |
		((v & 0x0000FF00) << 8) |
		((v & 0x00FF0000) >> 8) |
		((v & 0xFF000000) >> 24)
}

func swap64(v uint64) uint64 {
	return ((v & 0x00000000000000FF) << 56) |
		((v & 0x000000000000FF00) << 40) |
		((v & 0x0000000000FF0000) << 24) |
		((v & 0x00000000FF000000) << 8) |
		((v & 0x000000FF00000000) >> 8) |
		((v & 0x0000FF0000000000) >> 24) |
		((v & 0x00FF000000000000) >> 40) |
		((v & 0xFF00000000000000) >> 56)
}

// nativeByteOrder returns the stdlib ByteOrder implementation matching o,
// for handing bytes to encoding/binary helpers. The handle codecs do not
// use it; they encode through SliceOutput/SliceInput.
func nativeByteOrder(o ByteOrder) binary.ByteOrder {
	if o == BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}
