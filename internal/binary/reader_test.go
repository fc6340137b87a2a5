package binary

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReaderReadUint8(t *testing.T) {
	r := NewReader([]byte{0x42, 0xFF}, DefaultConfig())

	v, err := r.ReadUint8()
	require.NoError(t, err)
	assert.Equal(t, uint8(0x42), v)

	v, err = r.ReadUint8()
	require.NoError(t, err)
	assert.Equal(t, uint8(0xFF), v)

	_, err = r.ReadUint8()
	require.ErrorIs(t, err, ErrTruncated)
}

func TestReaderReadUint16(t *testing.T) {
	// Little-endian: 0x0102 stored as [0x02, 0x01]
	r := NewReader([]byte{0x02, 0x01, 0x02, 0x01}, DefaultConfig())

	v, err := r.ReadUint16()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0102), v)

	v, err = r.ReadUint16With(binary.BigEndian)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0201), v)
}

func TestReaderReadUint32(t *testing.T) {
	tests := []struct {
		name  string
		order binary.ByteOrder
		data  []byte
		want  uint32
	}{
		{"little", binary.LittleEndian, []byte{0x78, 0x56, 0x34, 0x12}, 0x12345678},
		{"big", binary.BigEndian, []byte{0x12, 0x34, 0x56, 0x78}, 0x12345678},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReader(tt.data, Config{ByteOrder: tt.order})
			v, err := r.ReadUint32()
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
			assert.Equal(t, int64(4), r.Pos())
			assert.Zero(t, r.Remaining())
		})
	}
}

func TestReaderReadUint32WithOverridesOrder(t *testing.T) {
	r := NewReader([]byte{'K', 'v', 'x', 'l'}, DefaultConfig())
	v, err := r.ReadUint32With(binary.BigEndian)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x4B76786C), v)
}

func TestReaderReadFloat32(t *testing.T) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], math.Float32bits(2.5))

	r := NewReader(b[:], DefaultConfig())
	v, err := r.ReadFloat32()
	require.NoError(t, err)
	assert.Equal(t, float32(2.5), v)
}

func TestReaderNilOrderDefaultsLittle(t *testing.T) {
	r := NewReader([]byte{0x01, 0x00}, Config{})
	assert.Equal(t, binary.LittleEndian, r.ByteOrder())

	v, err := r.ReadUint16()
	require.NoError(t, err)
	assert.Equal(t, uint16(1), v)
}

func TestReaderShortReadDoesNotAdvance(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02, 0x03}, DefaultConfig())

	_, err := r.ReadUint32()
	require.Error(t, err)

	var rerr *RangeError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, int64(0), rerr.Offset)
	assert.Equal(t, 4, rerr.Need)
	assert.Equal(t, 3, rerr.Have)
	assert.Equal(t, int64(0), r.Pos())
}

func TestReaderReadBytesCopies(t *testing.T) {
	src := []byte{1, 2, 3, 4}
	r := NewReader(src, DefaultConfig())

	b, err := r.ReadBytes(3)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, b)

	src[0] = 9
	assert.Equal(t, byte(1), b[0], "ReadBytes must not alias the source buffer")

	b, err = r.ReadBytes(0)
	require.NoError(t, err)
	assert.Nil(t, b)
}

func TestReaderPeekAndSkip(t *testing.T) {
	r := NewReader([]byte{0x00, 0x01, 0x02, 0x03}, DefaultConfig())

	p, err := r.Peek(2)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x01}, p)
	assert.Equal(t, int64(0), r.Pos())

	require.NoError(t, r.Skip(3))
	assert.Equal(t, 1, r.Remaining())

	require.ErrorIs(t, r.Skip(2), ErrTruncated)
	_, err = r.Peek(2)
	require.ErrorIs(t, err, ErrTruncated)
}

func TestReaderNeed(t *testing.T) {
	r := NewReader(make([]byte, 16), DefaultConfig())

	n, err := r.Need(2, 8)
	require.NoError(t, err)
	assert.Equal(t, 16, n)

	_, err = r.Need(3, 8)
	require.ErrorIs(t, err, ErrTruncated)

	_, err = r.Need(math.MaxUint64, 8)
	require.ErrorIs(t, err, ErrOverflow)
}

func TestMulSize(t *testing.T) {
	tests := []struct {
		name    string
		count   uint64
		width   int
		want    int
		wantErr bool
	}{
		{"zero", 0, 8, 0, false},
		{"voxels", 74, 8, 592, false},
		{"large table", 1 << 20, 2, 2 << 20, false},
		{"wraps uint64", math.MaxUint64/2 + 1, 2, 0, true},
		{"exceeds int", math.MaxInt/2 + 1, 2, 0, true},
		{"negative width", 1, -1, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MulSize(tt.count, tt.width)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrOverflow)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAddSize(t *testing.T) {
	n, err := AddSize(32, 592)
	require.NoError(t, err)
	assert.Equal(t, 624, n)

	_, err = AddSize(math.MaxInt, 1)
	require.ErrorIs(t, err, ErrOverflow)
}
