package kv6

import (
	"encoding/binary"
	"log/slog"

	"github.com/klauspost/compress/zstd"
)

// Option configures decoding, encoding and the file helpers.
type Option func(*options)

type options struct {
	order      binary.ByteOrder
	maxVoxels  uint64
	maxColumns uint64
	maxDecoded uint64
	strict     bool
	level      int
	logger     *slog.Logger
}

func defaultOptions() *options {
	return &options{
		order:      binary.LittleEndian,
		maxDecoded: DefaultMaxDecodedSize,
		logger:     slog.New(slog.DiscardHandler),
	}
}

func applyOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

// WithByteOrder sets the byte order of the header fields and the X index.
// The magic, voxel heights and the Y index keep their fixed order.
func WithByteOrder(order binary.ByteOrder) Option {
	return func(o *options) {
		if order != nil {
			o.order = order
		}
	}
}

// WithMaxVoxels rejects models declaring more than n voxels with
// ErrArithmeticOverflow before any voxel storage is allocated. 0 means no limit.
func WithMaxVoxels(n uint64) Option {
	return func(o *options) {
		o.maxVoxels = n
	}
}

// WithMaxColumns rejects models whose X*Y column count exceeds n with
// ErrArithmeticOverflow. 0 means no limit.
func WithMaxColumns(n uint64) Option {
	return func(o *options) {
		o.maxColumns = n
	}
}

// DefaultMaxDecodedSize bounds the decompressed size of a zstd-packed model.
const DefaultMaxDecodedSize = 1 << 30

// WithMaxDecodedSize bounds how many bytes Unpack and ReadFile may
// decompress from a zstd frame. A frame declaring or producing more fails
// with ErrArithmeticOverflow before the output is allocated. 0 keeps
// DefaultMaxDecodedSize.
func WithMaxDecodedSize(n uint64) Option {
	return func(o *options) {
		if n > 0 {
			o.maxDecoded = n
		}
	}
}

// WithStrict makes Decode fail with ErrTrailingData when bytes other than a
// palette suffix follow the model.
func WithStrict() Option {
	return func(o *options) {
		o.strict = true
	}
}

// WithCompression makes WriteFile emit a zstd frame at the given zstd level
// (1-22, 0 = none).
func WithCompression(level int) Option {
	return func(o *options) {
		if level >= 0 && level <= 22 {
			o.level = level
		}
	}
}

// WithLogger sets the logger used by the file helpers.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func (o *options) encoderLevel() zstd.EncoderLevel {
	return zstd.EncoderLevelFromZstd(o.level)
}
