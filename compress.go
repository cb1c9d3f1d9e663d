package sstable

import "github.com/golang/snappy"

// Compressor is the block codec hook: the core only needs a one-byte
// compression_kind tag in BlockTrailer and a way to encode/decode a
// block payload. Deeper codec plumbing (registries, per-column codecs)
// is out of scope.
type Compressor interface {
	// Kind is the byte recorded in BlockTrailer.CompressionKind.
	Kind() uint8
	// Encode appends the compressed form of src to dst (which may be
	// nil) and returns the result.
	Encode(dst, src []byte) []byte
	// Decode appends the decompressed form of src to dst (which may be
	// nil) and returns the result.
	Decode(dst, src []byte) ([]byte, error)
}

// NoopCompressor passes payloads through unchanged; Kind() is 0.
type NoopCompressor struct{}

// Kind implements Compressor.
func (NoopCompressor) Kind() uint8 { return 0 }

// Encode implements Compressor.
func (NoopCompressor) Encode(dst, src []byte) []byte {
	return append(dst, src...)
}

// Decode implements Compressor.
func (NoopCompressor) Decode(dst, src []byte) ([]byte, error) {
	return append(dst, src...), nil
}

// SnappyCompressor wraps github.com/golang/snappy; Kind() is 1. It is the
// default Compressor in DefaultOptions, matching the teacher's
// compress/decompress methods in spirit.
type SnappyCompressor struct{}

// Kind implements Compressor.
func (SnappyCompressor) Kind() uint8 { return 1 }

// Encode implements Compressor.
func (SnappyCompressor) Encode(dst, src []byte) []byte {
	return append(dst, snappy.Encode(nil, src)...)
}

// Decode implements Compressor.
func (SnappyCompressor) Decode(dst, src []byte) ([]byte, error) {
	decoded, err := snappy.Decode(nil, src)
	if err != nil {
		return nil, err
	}
	return append(dst, decoded...), nil
}

func compressorForKind(kind uint8) Compressor {
	if kind == (SnappyCompressor{}).Kind() {
		return SnappyCompressor{}
	}
	return NoopCompressor{}
}
