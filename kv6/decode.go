package kv6

import (
	"bytes"
	"encoding/binary"
	"fmt"

	binpkg "github.com/robert-malhotra/go-kv6/internal/binary"
)

// Decode parses a complete KV6 model from data.
//
// The magic is stored as read and not validated; call Model.CheckMagic for
// that. On failure no model is returned. The returned model does not
// reference data.
func Decode(data []byte, opts ...Option) (*Model, error) {
	o := applyOptions(opts)
	r := binpkg.NewReader(data, binpkg.Config{ByteOrder: o.order})

	m := &Model{}
	if err := readHeader(r, m); err != nil {
		return nil, err
	}
	if err := readVoxels(r, m, o); err != nil {
		return nil, err
	}
	if err := readXIndex(r, m); err != nil {
		return nil, err
	}
	if err := readYIndex(r, m, o); err != nil {
		return nil, err
	}
	if err := readSuffix(r, m, o); err != nil {
		return nil, err
	}
	return m, nil
}

func readHeader(r *binpkg.Reader, m *Model) error {
	var err error
	if m.Magic, err = r.ReadUint32With(binary.BigEndian); err != nil {
		return fmt.Errorf("reading magic: %w", err)
	}
	if m.SizeX, err = r.ReadUint32(); err != nil {
		return fmt.Errorf("reading size x: %w", err)
	}
	if m.SizeY, err = r.ReadUint32(); err != nil {
		return fmt.Errorf("reading size y: %w", err)
	}
	if m.SizeZ, err = r.ReadUint32(); err != nil {
		return fmt.Errorf("reading size z: %w", err)
	}
	if m.Pivot.X, err = r.ReadFloat32(); err != nil {
		return fmt.Errorf("reading pivot x: %w", err)
	}
	if m.Pivot.Y, err = r.ReadFloat32(); err != nil {
		return fmt.Errorf("reading pivot y: %w", err)
	}
	if m.Pivot.Z, err = r.ReadFloat32(); err != nil {
		return fmt.Errorf("reading pivot z: %w", err)
	}
	return nil
}

func readVoxels(r *binpkg.Reader, m *Model, o *options) error {
	count, err := r.ReadUint32()
	if err != nil {
		return fmt.Errorf("reading voxel count: %w", err)
	}
	if o.maxVoxels > 0 && uint64(count) > o.maxVoxels {
		return fmt.Errorf("voxel count %d exceeds limit %d: %w", count, o.maxVoxels, ErrArithmeticOverflow)
	}
	if _, err := r.Need(uint64(count), VoxelSize); err != nil {
		return fmt.Errorf("reading %d voxels: %w", count, err)
	}

	m.Voxels = make([]Voxel, count)
	for i := range m.Voxels {
		if m.Voxels[i], err = readVoxel(r); err != nil {
			return fmt.Errorf("reading voxel %d: %w", i, err)
		}
	}
	return nil
}

func readXIndex(r *binpkg.Reader, m *Model) error {
	if _, err := r.Need(uint64(m.SizeX), XIndexEntry); err != nil {
		return fmt.Errorf("reading x index: %w", err)
	}

	m.XIndex = make([]uint32, m.SizeX)
	for i := range m.XIndex {
		v, err := r.ReadUint32()
		if err != nil {
			return fmt.Errorf("reading x index %d: %w", i, err)
		}
		m.XIndex[i] = v
	}
	return nil
}

func readYIndex(r *binpkg.Reader, m *Model, o *options) error {
	columns := uint64(m.SizeX) * uint64(m.SizeY)
	if o.maxColumns > 0 && columns > o.maxColumns {
		return fmt.Errorf("%d columns exceed limit %d: %w", columns, o.maxColumns, ErrArithmeticOverflow)
	}
	if _, err := r.Need(columns, YIndexEntry); err != nil {
		return fmt.Errorf("reading y index: %w", err)
	}

	// One backing array, sliced into SizeX rows.
	backing := make([]uint16, columns)
	for i := range backing {
		v, err := r.ReadUint16With(binary.LittleEndian)
		if err != nil {
			return fmt.Errorf("reading y index %d: %w", i, err)
		}
		backing[i] = v
	}

	sy := uint64(m.SizeY)
	m.YIndex = make([][]uint16, m.SizeX)
	for x := range m.YIndex {
		lo := uint64(x) * sy
		m.YIndex[x] = backing[lo : lo+sy : lo+sy]
	}
	return nil
}

// readSuffix consumes an optional palette suffix. A palette starts with the
// full "SPal" tag; anything else after the Y index is ignored unless strict
// decoding was requested.
func readSuffix(r *binpkg.Reader, m *Model, o *options) error {
	var tag [4]byte
	binary.BigEndian.PutUint32(tag[:], paletteTag)

	if head, err := r.Peek(len(tag)); err == nil && bytes.Equal(head, tag[:]) {
		p, err := readPalette(r)
		if err != nil {
			return err
		}
		m.Palette = p
	}
	if o.strict && r.Remaining() > 0 {
		return fmt.Errorf("%d bytes at offset %d: %w", r.Remaining(), r.Pos(), ErrTrailingData)
	}
	return nil
}
