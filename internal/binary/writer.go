package binary

import (
	"encoding/binary"
	"math"
)

// Writer appends fixed-width fields to an in-memory buffer. Writers are
// usually created with the exact final size as capacity so encoding
// allocates once.
type Writer struct {
	buf   []byte
	order binary.ByteOrder
}

// NewWriter creates a writer whose buffer has the given capacity.
// A nil ByteOrder falls back to little-endian.
func NewWriter(capacity int, cfg Config) *Writer {
	order := cfg.ByteOrder
	if order == nil {
		order = binary.LittleEndian
	}
	if capacity < 0 {
		capacity = 0
	}
	return &Writer{
		buf:   make([]byte, 0, capacity),
		order: order,
	}
}

// Pos returns the current write position.
func (w *Writer) Pos() int64 {
	return int64(len(w.buf))
}

// Bytes returns the written bytes. The writer must not be used afterwards.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// ByteOrder returns the configured byte order.
func (w *Writer) ByteOrder() binary.ByteOrder {
	return w.order
}

// WriteBytes appends data verbatim.
func (w *Writer) WriteBytes(data []byte) {
	w.buf = append(w.buf, data...)
}

// WriteUint8 writes an unsigned 8-bit integer.
func (w *Writer) WriteUint8(v uint8) {
	w.buf = append(w.buf, v)
}

// WriteUint16 writes an unsigned 16-bit integer in the configured order.
func (w *Writer) WriteUint16(v uint16) {
	w.WriteUint16With(w.order, v)
}

// WriteUint16With writes an unsigned 16-bit integer in the given order.
func (w *Writer) WriteUint16With(order binary.ByteOrder, v uint16) {
	var b [2]byte
	order.PutUint16(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// WriteUint32 writes an unsigned 32-bit integer in the configured order.
func (w *Writer) WriteUint32(v uint32) {
	w.WriteUint32With(w.order, v)
}

// WriteUint32With writes an unsigned 32-bit integer in the given order.
func (w *Writer) WriteUint32With(order binary.ByteOrder, v uint32) {
	var b [4]byte
	order.PutUint32(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// WriteFloat32 writes an IEEE 754 single-precision float in the configured order.
func (w *Writer) WriteFloat32(v float32) {
	w.WriteUint32(math.Float32bits(v))
}

// WriteZeros writes n zero bytes.
func (w *Writer) WriteZeros(n int) {
	for i := 0; i < n; i++ {
		w.buf = append(w.buf, 0)
	}
}
