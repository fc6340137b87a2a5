package kv6

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/klauspost/compress/zstd"
)

// zstdMagic starts every zstd frame.
var zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}

// ReadFile reads, decompresses if needed, decodes and magic-checks the model
// stored at path.
func ReadFile(path string, opts ...Option) (*Model, error) {
	o := applyOptions(opts)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	raw, err := Unpack(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	o.logger.Debug("read model file", "path", path, "bytes", len(data), "decoded_bytes", len(raw))

	m, err := Decode(raw, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := m.CheckMagic(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// WriteFile encodes m and writes it to path, compressed when
// WithCompression selected a level.
func WriteFile(path string, m *Model, opts ...Option) error {
	o := applyOptions(opts)

	data, err := Encode(m, opts...)
	if err != nil {
		return err
	}
	out := data
	if o.level > 0 {
		if out, err = Pack(data, o.level); err != nil {
			return err
		}
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}
	o.logger.Debug("wrote model file", "path", path, "bytes", len(out), "voxels", len(m.Voxels))
	return nil
}

// Pack compresses an encoded model into a single zstd frame.
func Pack(data []byte, level int) ([]byte, error) {
	o := applyOptions([]Option{WithCompression(level)})
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(o.encoderLevel()))
	if err != nil {
		return nil, fmt.Errorf("creating zstd encoder: %w", err)
	}
	defer enc.Close()
	return enc.EncodeAll(data, make([]byte, 0, len(data)/2)), nil
}

// Unpack returns data decompressed if it is a zstd frame, or unchanged.
// The decompressed size is bounded by WithMaxDecodedSize.
func Unpack(data []byte, opts ...Option) ([]byte, error) {
	if !bytes.HasPrefix(data, zstdMagic) {
		return data, nil
	}
	o := applyOptions(opts)

	dec, err := zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderMaxMemory(o.maxDecoded),
	)
	if err != nil {
		return nil, fmt.Errorf("creating zstd decoder: %w", err)
	}
	defer dec.Close()
	out, err := dec.DecodeAll(data, nil)
	if errors.Is(err, zstd.ErrDecoderSizeExceeded) || errors.Is(err, zstd.ErrWindowSizeExceeded) {
		return nil, fmt.Errorf("decompressed size exceeds limit %d: %w: %w", o.maxDecoded, ErrArithmeticOverflow, err)
	}
	if err != nil {
		return nil, fmt.Errorf("decompressing: %w", err)
	}
	return out, nil
}
