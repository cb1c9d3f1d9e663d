package sstable

import (
	"hash/crc32"
	"io"

	log "github.com/sirupsen/logrus"
)

// Writer orchestrates data blocks → index block → bloom filter → footer,
// mirroring paimon::SstFileWriter and teacher sstable.go's Dump/
// writeDataAndBuildIndex shape. Not safe for concurrent use - one writer
// per file.
type Writer struct {
	out      io.WriteCloser
	opts     Options
	logger   log.FieldLogger
	dataBW   *BlockWriter
	indexBW  *BlockWriter
	lastKey  []byte
	bloom    *BloomFilter
	offset   int64
	finished bool
}

// NewWriter creates a Writer over out, an append-only sink (typically a
// freshly created file).
func NewWriter(out io.WriteCloser, opts Options) *Writer {
	w := &Writer{
		out:     out,
		opts:    opts,
		logger:  opts.Logger,
		dataBW:  NewBlockWriter(opts.BlockSizeTarget, opts.ByteOrder),
		indexBW: NewBlockWriter(opts.BlockSizeTarget, opts.ByteOrder),
	}
	if w.logger == nil {
		w.logger = defaultLogger
	}
	if opts.bloomEnabled() {
		w.bloom = NewBloomFilter(opts.BloomExpectedEntries, opts.BloomBitsPerEntry)
	}
	return w
}

// Write appends one (key, value) entry. key must be lexicographically
// greater than or equal to every previously written key - the writer
// does not verify this.
func (w *Writer) Write(key, value []byte) error {
	if w.finished {
		return wrapErr(OpWriteData, ErrInvalid)
	}
	if err := w.dataBW.Write(key, value); err != nil {
		return wrapErr(OpWriteData, err)
	}
	w.lastKey = append(w.lastKey[:0], key...)

	if w.dataBW.Memory() > w.opts.BlockSizeTarget {
		if err := w.Flush(); err != nil {
			return err
		}
	}
	if w.bloom != nil {
		w.bloom.AddHash(hashKey(key))
	}
	return nil
}

// Flush seals the active data block (if non-empty) and records its
// handle under lastKey in the index block.
func (w *Writer) Flush() error {
	if w.dataBW.EntryCount() == 0 {
		return nil
	}
	handle, err := w.flushBlockWriter(w.dataBW)
	if err != nil {
		return wrapErr(OpWriteData, err)
	}

	valueOut := NewSliceOutput(blockHandleEncodedLength, w.opts.ByteOrder)
	handle.WriteBlockHandle(valueOut)
	if err := w.indexBW.Write(w.lastKey, valueOut.ToSlice().Bytes()); err != nil {
		return wrapErr(OpWriteIndex, err)
	}
	return nil
}

// flushBlockWriter seals writer's buffered block, compresses it with the
// configured Compressor, writes payload + trailer, and returns a handle
// locating it. The writer is reset on return.
func (w *Writer) flushBlockWriter(writer *BlockWriter) (BlockHandle, error) {
	sealed := writer.Finish()
	raw := sealed.Bytes()

	stored := w.opts.Compressor.Encode(nil, raw)
	crc := crc32.ChecksumIEEE(stored)

	handle := BlockHandle{Offset: uint64(w.offset), Size: uint32(len(stored))}

	if _, err := w.out.Write(stored); err != nil {
		return BlockHandle{}, err
	}
	w.offset += int64(len(stored))

	trailer := BlockTrailer{CompressionKind: w.opts.Compressor.Kind(), CRC32: crc}
	trailerOut := NewSliceOutput(blockTrailerEncodedLength, w.opts.ByteOrder)
	trailer.WriteBlockTrailer(trailerOut)
	trailerBytes := trailerOut.ToSlice().Bytes()
	if _, err := w.out.Write(trailerBytes); err != nil {
		return BlockHandle{}, err
	}
	w.offset += int64(len(trailerBytes))

	writer.Reset()
	return handle, nil
}

// Finish flushes the remaining data block, writes the index block, the
// optional bloom filter, and the footer, then closes the output. The
// footer is the commit point: a crash before Finish returns leaves an
// unfinished file that must be discarded.
func (w *Writer) Finish() (Footer, error) {
	if w.finished {
		return Footer{}, wrapErr(OpWriteFooter, ErrInvalid)
	}
	if err := w.Flush(); err != nil {
		return Footer{}, err
	}

	indexHandle, err := w.flushBlockWriter(w.indexBW)
	if err != nil {
		return Footer{}, wrapErr(OpWriteIndex, err)
	}

	var bloomHandle BloomFilterHandle
	if w.bloom != nil {
		data := w.bloom.Serialize().Bytes()
		bloomHandle = BloomFilterHandle{
			Offset:          uint64(w.offset),
			Size:            uint32(len(data)),
			ExpectedEntries: w.bloom.ExpectedEntries(),
		}
		if _, err := w.out.Write(data); err != nil {
			return Footer{}, wrapErr(OpWriteBloom, err)
		}
		w.offset += int64(len(data))
	}

	footer := Footer{IndexBlockHandle: indexHandle, BloomFilterHandle: bloomHandle}
	footerOut := NewSliceOutput(footerEncodedLength, w.opts.ByteOrder)
	footer.WriteFooter(footerOut)
	footerBytes := footerOut.ToSlice().Bytes()
	if _, err := w.out.Write(footerBytes); err != nil {
		return Footer{}, wrapErr(OpWriteFooter, err)
	}
	w.offset += int64(len(footerBytes))

	w.finished = true
	if err := w.out.Close(); err != nil {
		return Footer{}, wrapErr(OpWriteFooter, err)
	}
	w.logger.WithField("offset", w.offset).Info("sst file finished")
	return footer, nil
}
