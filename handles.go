package sstable

// Fixed encoded lengths, in bytes, for the metadata records that stitch
// blocks into a file. Used both when writing and when reading trailing
// suffixes (e.g. the footer is always footerEncodedLength bytes at the
// tail of the file).
const (
	blockHandleEncodedLength       = 8 + 4 // offset:u64, size:u32
	blockTrailerEncodedLength      = 1 + 4 // compression_kind:u8, crc32:u32
	bloomFilterHandleEncodedLength = 8 + 4 + 4 // offset:u64, size:u32, expected_entries:u32
	footerEncodedLength            = blockHandleEncodedLength + bloomFilterHandleEncodedLength + 8
)

// fileMagic terminates every SST file. A mismatch on read means the file
// is truncated or otherwise corrupt.
const fileMagic uint64 = 0x53535442be571234

// BlockHandle is a fixed (offset, size) locator into the file.
type BlockHandle struct {
	Offset uint64
	Size   uint32
}

// WriteBlockHandle encodes h into out.
func (h BlockHandle) WriteBlockHandle(out *SliceOutput) {
	out.WriteUint64(h.Offset)
	out.WriteUint32(h.Size)
}

// ReadBlockHandle decodes a BlockHandle from in.
func ReadBlockHandle(in *SliceInput) (BlockHandle, error) {
	offset, err := in.ReadUint64()
	if err != nil {
		return BlockHandle{}, err
	}
	size, err := in.ReadUint32()
	if err != nil {
		return BlockHandle{}, err
	}
	return BlockHandle{Offset: offset, Size: size}, nil
}

// BlockTrailer is the 5-byte record written immediately after each
// block's payload: a compression kind tag and a CRC32 covering only the
// payload.
type BlockTrailer struct {
	CompressionKind uint8
	CRC32           uint32
}

// WriteBlockTrailer encodes t into out.
func (t BlockTrailer) WriteBlockTrailer(out *SliceOutput) {
	out.WriteUint8(t.CompressionKind)
	out.WriteUint32(t.CRC32)
}

// ReadBlockTrailer decodes a BlockTrailer from in.
func ReadBlockTrailer(in *SliceInput) (BlockTrailer, error) {
	kind, err := in.ReadUnsignedByte()
	if err != nil {
		return BlockTrailer{}, err
	}
	crc, err := in.ReadUint32()
	if err != nil {
		return BlockTrailer{}, err
	}
	return BlockTrailer{CompressionKind: kind, CRC32: crc}, nil
}

// BloomFilterHandle locates the bloom filter's bitset within the file and
// records the geometry needed to reconstruct it.
type BloomFilterHandle struct {
	Offset          uint64
	Size            uint32
	ExpectedEntries uint32
}

// IsPresent reports whether a bloom filter was written: the all-zero
// handle is the sentinel for "no bloom filter".
func (h BloomFilterHandle) IsPresent() bool {
	return !(h.Offset == 0 && h.Size == 0 && h.ExpectedEntries == 0)
}

// WriteBloomFilterHandle encodes h into out.
func (h BloomFilterHandle) WriteBloomFilterHandle(out *SliceOutput) {
	out.WriteUint64(h.Offset)
	out.WriteUint32(h.Size)
	out.WriteUint32(h.ExpectedEntries)
}

// ReadBloomFilterHandle decodes a BloomFilterHandle from in.
func ReadBloomFilterHandle(in *SliceInput) (BloomFilterHandle, error) {
	offset, err := in.ReadUint64()
	if err != nil {
		return BloomFilterHandle{}, err
	}
	size, err := in.ReadUint32()
	if err != nil {
		return BloomFilterHandle{}, err
	}
	expected, err := in.ReadUint32()
	if err != nil {
		return BloomFilterHandle{}, err
	}
	return BloomFilterHandle{Offset: offset, Size: size, ExpectedEntries: expected}, nil
}

// Footer is the fixed-size record at the tail of every SST file.
type Footer struct {
	IndexBlockHandle  BlockHandle
	BloomFilterHandle BloomFilterHandle
}

// WriteFooter encodes f into out.
func (f Footer) WriteFooter(out *SliceOutput) {
	f.IndexBlockHandle.WriteBlockHandle(out)
	f.BloomFilterHandle.WriteBloomFilterHandle(out)
	out.WriteUint64(fileMagic)
}

// ReadFooter decodes a Footer from in, failing with ErrCorruptFile when
// the trailing magic does not match.
func ReadFooter(in *SliceInput) (Footer, error) {
	indexHandle, err := ReadBlockHandle(in)
	if err != nil {
		return Footer{}, err
	}
	bloomHandle, err := ReadBloomFilterHandle(in)
	if err != nil {
		return Footer{}, err
	}
	magic, err := in.ReadUint64()
	if err != nil {
		return Footer{}, err
	}
	if magic != fileMagic {
		return Footer{}, ErrCorruptFile
	}
	return Footer{IndexBlockHandle: indexHandle, BloomFilterHandle: bloomHandle}, nil
}
