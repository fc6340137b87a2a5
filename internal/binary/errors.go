package binary

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
)

var (
	// ErrTruncated is returned when fewer bytes remain than a field needs.
	ErrTruncated = errors.New("truncated input")

	// ErrOverflow is returned when a declared element count times its width
	// does not fit in an int, or exceeds a caller-imposed limit.
	ErrOverflow = errors.New("arithmetic overflow")
)

// RangeError records where a read ran past the end of the buffer.
// It matches ErrTruncated under errors.Is.
type RangeError struct {
	Offset int64 // cursor position when the read was attempted
	Need   int   // bytes the read required
	Have   int   // bytes left in the buffer
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%v: need %d bytes at offset %d, have %d", ErrTruncated, e.Need, e.Offset, e.Have)
}

func (e *RangeError) Unwrap() error {
	return ErrTruncated
}

// MulSize returns count*width as an int, failing with ErrOverflow when the
// product does not fit.
func MulSize(count uint64, width int) (int, error) {
	if width < 0 {
		return 0, fmt.Errorf("%w: negative width %d", ErrOverflow, width)
	}
	hi, lo := bits.Mul64(count, uint64(width))
	if hi != 0 || lo > math.MaxInt {
		return 0, fmt.Errorf("%w: %d elements of %d bytes", ErrOverflow, count, width)
	}
	return int(lo), nil
}

// AddSize returns a+b, failing with ErrOverflow when the sum does not fit in an int.
func AddSize(a, b int) (int, error) {
	if a < 0 || b < 0 || a > math.MaxInt-b {
		return 0, fmt.Errorf("%w: %d + %d", ErrOverflow, a, b)
	}
	return a + b, nil
}
