// Package binary provides the bounds-checked byte cursors used to decode and
// encode KV6 models.
package binary

import (
	"encoding/binary"
	"math"
)

// Reader is a forward-only cursor over an in-memory buffer. Every read is
// checked against the remaining length before any byte is touched, so a
// short buffer yields a *RangeError instead of a panic.
type Reader struct {
	buf   []byte
	order binary.ByteOrder
	pos   int
}

// Config holds cursor configuration.
type Config struct {
	ByteOrder binary.ByteOrder
}

// DefaultConfig returns the conventional KV6 configuration (little-endian).
func DefaultConfig() Config {
	return Config{
		ByteOrder: binary.LittleEndian,
	}
}

// NewReader creates a cursor over buf positioned at offset 0.
// A nil ByteOrder falls back to little-endian.
func NewReader(buf []byte, cfg Config) *Reader {
	order := cfg.ByteOrder
	if order == nil {
		order = binary.LittleEndian
	}
	return &Reader{
		buf:   buf,
		order: order,
	}
}

// Pos returns the current read position.
func (r *Reader) Pos() int64 {
	return int64(r.pos)
}

// Len returns the total length of the underlying buffer.
func (r *Reader) Len() int {
	return len(r.buf)
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.buf) - r.pos
}

// ByteOrder returns the configured byte order.
func (r *Reader) ByteOrder() binary.ByteOrder {
	return r.order
}

// Need reports the number of bytes occupied by count elements of width bytes
// and checks that they are all available. The multiplication is checked
// before the comparison, so a hostile count cannot wrap around.
func (r *Reader) Need(count uint64, width int) (int, error) {
	n, err := MulSize(count, width)
	if err != nil {
		return 0, err
	}
	if n > r.Remaining() {
		return 0, &RangeError{Offset: r.Pos(), Need: n, Have: r.Remaining()}
	}
	return n, nil
}

// next returns the next n bytes of the buffer and advances past them.
// The returned slice aliases the buffer; callers decode out of it immediately.
func (r *Reader) next(n int) ([]byte, error) {
	if n < 0 || n > r.Remaining() {
		return nil, &RangeError{Offset: r.Pos(), Need: n, Have: r.Remaining()}
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// ReadBytes reads exactly n bytes into a freshly allocated slice.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n <= 0 {
		return nil, nil
	}
	b, err := r.next(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b)
	return out, nil
}

// ReadUint8 reads an unsigned 8-bit integer.
func (r *Reader) ReadUint8() (uint8, error) {
	b, err := r.next(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadUint16 reads an unsigned 16-bit integer in the configured order.
func (r *Reader) ReadUint16() (uint16, error) {
	return r.ReadUint16With(r.order)
}

// ReadUint16With reads an unsigned 16-bit integer in the given order,
// regardless of the configured one.
func (r *Reader) ReadUint16With(order binary.ByteOrder) (uint16, error) {
	b, err := r.next(2)
	if err != nil {
		return 0, err
	}
	return order.Uint16(b), nil
}

// ReadUint32 reads an unsigned 32-bit integer in the configured order.
func (r *Reader) ReadUint32() (uint32, error) {
	return r.ReadUint32With(r.order)
}

// ReadUint32With reads an unsigned 32-bit integer in the given order.
func (r *Reader) ReadUint32With(order binary.ByteOrder) (uint32, error) {
	b, err := r.next(4)
	if err != nil {
		return 0, err
	}
	return order.Uint32(b), nil
}

// ReadFloat32 reads an IEEE 754 single-precision float in the configured order.
func (r *Reader) ReadFloat32() (float32, error) {
	v, err := r.ReadUint32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// Skip advances the position by n bytes.
func (r *Reader) Skip(n int) error {
	_, err := r.next(n)
	return err
}

// Peek returns the next n bytes without advancing the position.
func (r *Reader) Peek(n int) ([]byte, error) {
	if n < 0 || n > r.Remaining() {
		return nil, &RangeError{Offset: r.Pos(), Need: n, Have: r.Remaining()}
	}
	return r.buf[r.pos : r.pos+n], nil
}
