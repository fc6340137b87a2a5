package kv6

import (
	"encoding/binary"
	"fmt"
	"math"

	binpkg "github.com/robert-malhotra/go-kv6/internal/binary"
)

// Encode serializes m into a newly allocated buffer of exactly
// EncodedSize(m) bytes.
//
// The voxel count written is len(m.Voxels). Encode fails only when the
// index tables do not match SizeX and SizeY, or when the model is too large
// to address.
func Encode(m *Model, opts ...Option) ([]byte, error) {
	o := applyOptions(opts)

	size, err := EncodedSize(m)
	if err != nil {
		return nil, err
	}

	w := binpkg.NewWriter(size, binpkg.Config{ByteOrder: o.order})
	writeHeader(w, m)

	w.WriteUint32(uint32(len(m.Voxels)))
	for _, v := range m.Voxels {
		writeVoxel(w, v)
	}

	for _, v := range m.XIndex {
		w.WriteUint32(v)
	}
	for _, row := range m.YIndex {
		for _, v := range row {
			w.WriteUint16With(binary.LittleEndian, v)
		}
	}

	if m.Palette != nil {
		writePalette(w, m.Palette)
	}
	return w.Bytes(), nil
}

// EncodedSize returns the number of bytes Encode produces for m.
func EncodedSize(m *Model) (int, error) {
	if m == nil {
		return 0, fmt.Errorf("nil model: %w", ErrInvalidModel)
	}
	if err := checkShape(m); err != nil {
		return 0, err
	}
	if uint64(len(m.Voxels)) > math.MaxUint32 {
		return 0, fmt.Errorf("%d voxels do not fit the count field: %w", len(m.Voxels), ErrArithmeticOverflow)
	}

	voxels, err := binpkg.MulSize(uint64(len(m.Voxels)), VoxelSize)
	if err != nil {
		return 0, err
	}
	xIndex, err := binpkg.MulSize(uint64(m.SizeX), XIndexEntry)
	if err != nil {
		return 0, err
	}
	yIndex, err := binpkg.MulSize(uint64(m.SizeX)*uint64(m.SizeY), YIndexEntry)
	if err != nil {
		return 0, err
	}

	size := HeaderSize
	for _, n := range []int{voxels, xIndex, yIndex} {
		if size, err = binpkg.AddSize(size, n); err != nil {
			return 0, err
		}
	}
	if m.Palette != nil {
		if size, err = binpkg.AddSize(size, PaletteSuffix); err != nil {
			return 0, err
		}
	}
	return size, nil
}

func writeHeader(w *binpkg.Writer, m *Model) {
	w.WriteUint32With(binary.BigEndian, m.Magic)
	w.WriteUint32(m.SizeX)
	w.WriteUint32(m.SizeY)
	w.WriteUint32(m.SizeZ)
	w.WriteFloat32(m.Pivot.X)
	w.WriteFloat32(m.Pivot.Y)
	w.WriteFloat32(m.Pivot.Z)
}

// checkShape verifies len(XIndex) == SizeX and that YIndex is SizeX by SizeY.
func checkShape(m *Model) error {
	if uint64(len(m.XIndex)) != uint64(m.SizeX) {
		return fmt.Errorf("x index has %d entries, size x is %d: %w", len(m.XIndex), m.SizeX, ErrIndexShape)
	}
	if uint64(len(m.YIndex)) != uint64(m.SizeX) {
		return fmt.Errorf("y index has %d rows, size x is %d: %w", len(m.YIndex), m.SizeX, ErrIndexShape)
	}
	for x, row := range m.YIndex {
		if uint64(len(row)) != uint64(m.SizeY) {
			return fmt.Errorf("y index row %d has %d entries, size y is %d: %w", x, len(row), m.SizeY, ErrIndexShape)
		}
	}
	return nil
}
