package sstable

import log "github.com/sirupsen/logrus"

// Options configures an SST Writer/Reader pair, following the teacher's
// functional-options DBConfig pattern (db_config.go).
type Options struct {
	BlockSizeTarget      int
	ByteOrder            ByteOrder
	BloomExpectedEntries uint32 // 0 disables the bloom filter
	BloomBitsPerEntry    float64
	Compressor           Compressor
	Logger               log.FieldLogger
}

// Option configures an Options value.
type Option func(*Options)

// WithBlockSizeTarget sets the roughly-target size, in bytes, of a data
// block before it is flushed.
func WithBlockSizeTarget(size int) Option {
	return func(o *Options) { o.BlockSizeTarget = size }
}

// WithByteOrder sets the endianness recorded and honored for every typed
// field in the file.
func WithByteOrder(order ByteOrder) Option {
	return func(o *Options) { o.ByteOrder = order }
}

// WithBloomFilter turns on the bloom filter with the given expected
// entry count and bits-per-entry budget.
func WithBloomFilter(expectedEntries uint32, bitsPerEntry float64) Option {
	return func(o *Options) {
		o.BloomExpectedEntries = expectedEntries
		o.BloomBitsPerEntry = bitsPerEntry
	}
}

// WithCompressor overrides the default block compressor.
func WithCompressor(c Compressor) Option {
	return func(o *Options) { o.Compressor = c }
}

// WithLogger overrides the default package logger.
func WithLogger(l log.FieldLogger) Option {
	return func(o *Options) { o.Logger = l }
}

// DefaultOptions mirrors the teacher's defaultDBSetting(): 4 KiB blocks,
// little-endian, bloom off, snappy compression, the standard logger.
func DefaultOptions() Options {
	return Options{
		BlockSizeTarget:      4 * 1024,
		ByteOrder:            LittleEndian,
		BloomExpectedEntries: 0,
		BloomBitsPerEntry:    10,
		Compressor:           SnappyCompressor{},
		Logger:               defaultLogger,
	}
}

// BuildOptions applies opts over DefaultOptions.
func BuildOptions(opts ...Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// bloomEnabled reports whether the configuration requests a bloom filter.
func (o Options) bloomEnabled() bool {
	return o.BloomExpectedEntries > 0
}
