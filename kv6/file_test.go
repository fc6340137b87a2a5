package kv6

import (
	"bytes"
	"encoding/binary"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReadFile(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		opts []Option
	}{
		{"plain", nil},
		{"zstd", []Option{WithCompression(3)}},
		{"zstd big endian", []Option{WithCompression(19), WithByteOrder(binary.BigEndian)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".kv6")
			require.NoError(t, WriteFile(path, sampleModel(), tt.opts...))

			m, err := ReadFile(path, tt.opts...)
			require.NoError(t, err)
			assert.Equal(t, sampleModel(), m)
		})
	}
}

func TestWriteFileCompressed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.kv6.zst")
	require.NoError(t, WriteFile(path, sampleModel(), WithCompression(3)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, zstdMagic))

	raw, err := Unpack(data)
	require.NoError(t, err)
	assert.Equal(t, sampleBuffer(t), raw)
}

func TestReadFileChecksMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.kv6")
	buf := sampleBuffer(t)
	copy(buf, "XXXX")
	require.NoError(t, os.WriteFile(path, buf, 0o644))

	_, err := ReadFile(path)
	require.ErrorIs(t, err, ErrMagicMismatch)
}

func TestReadFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadFile(filepath.Join(dir, "missing.kv6"))
	require.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(dir, "short.kv6")
	require.NoError(t, os.WriteFile(path, sampleBuffer(t)[:40], 0o644))
	_, err = ReadFile(path)
	require.ErrorIs(t, err, ErrTruncatedInput)
	assert.Contains(t, err.Error(), path)

	corrupt := filepath.Join(dir, "corrupt.kv6.zst")
	require.NoError(t, os.WriteFile(corrupt, append(bytes.Clone(zstdMagic), 0xFF, 0xFF, 0xFF), 0o644))
	_, err = ReadFile(corrupt)
	require.Error(t, err)
}

func TestWriteFileRejectsBadShape(t *testing.T) {
	m := sampleModel()
	m.XIndex = nil

	path := filepath.Join(t.TempDir(), "bad.kv6")
	require.ErrorIs(t, WriteFile(path, m), ErrIndexShape)
	_, err := os.Stat(path)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFileHelpersLog(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	path := filepath.Join(t.TempDir(), "model.kv6")
	require.NoError(t, WriteFile(path, sampleModel(), WithLogger(logger)))
	_, err := ReadFile(path, WithLogger(logger))
	require.NoError(t, err)

	assert.Contains(t, logs.String(), "wrote model file")
	assert.Contains(t, logs.String(), "read model file")
	assert.Contains(t, logs.String(), "voxels=74")
}

func TestPackUnpack(t *testing.T) {
	raw := sampleBuffer(t)

	packed, err := Pack(raw, 1)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(packed, zstdMagic))

	got, err := Unpack(packed)
	require.NoError(t, err)
	assert.Equal(t, raw, got)

	same, err := Unpack(raw)
	require.NoError(t, err)
	assert.Equal(t, raw, same)
}

func TestUnpackSizeLimit(t *testing.T) {
	// Zeros compress to a tiny frame that declares a large content size.
	big := make([]byte, 4<<20)
	packed, err := Pack(big, 3)
	require.NoError(t, err)
	require.Less(t, len(packed), 1<<10)

	_, err = Unpack(packed, WithMaxDecodedSize(1<<20))
	require.ErrorIs(t, err, ErrArithmeticOverflow)

	got, err := Unpack(packed, WithMaxDecodedSize(8<<20))
	require.NoError(t, err)
	assert.Len(t, got, 4<<20)

	path := filepath.Join(t.TempDir(), "bomb.kv6.zst")
	require.NoError(t, os.WriteFile(path, packed, 0o644))
	_, err = ReadFile(path, WithMaxDecodedSize(1<<20))
	require.ErrorIs(t, err, ErrArithmeticOverflow)
	assert.Contains(t, err.Error(), path)
}

func TestFingerprint(t *testing.T) {
	a, err := sampleModel().Fingerprint()
	require.NoError(t, err)
	b, err := sampleModel().Fingerprint()
	require.NoError(t, err)
	assert.Equal(t, a, b)

	m := sampleModel()
	m.Voxels[0].Normal++
	c, err := m.Fingerprint()
	require.NoError(t, err)
	assert.NotEqual(t, a, c)

	m.XIndex = nil
	_, err = m.Fingerprint()
	require.ErrorIs(t, err, ErrIndexShape)
}
