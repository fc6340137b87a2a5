package kv6

import (
	"errors"

	binpkg "github.com/robert-malhotra/go-kv6/internal/binary"
)

// Common errors
var (
	// ErrTruncatedInput is returned when the buffer ends before a field or
	// array is complete.
	ErrTruncatedInput = binpkg.ErrTruncated

	// ErrArithmeticOverflow is returned when a declared count or size would
	// not fit in addressable memory or exceeds a configured limit.
	ErrArithmeticOverflow = binpkg.ErrOverflow

	ErrMagicMismatch = errors.New("magic mismatch: not a KV6 model")
	ErrIndexShape    = errors.New("index tables do not match model size")
	ErrInvalidModel  = errors.New("invalid model")
	ErrTrailingData  = errors.New("trailing data after model")
)
