package kv6

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	binpkg "github.com/robert-malhotra/go-kv6/internal/binary"
)

// Builder assembles a Model from voxels placed at arbitrary coordinates.
// Build sorts them into column-major order and fills both index tables.
type Builder struct {
	sizeX, sizeY, sizeZ uint32
	pivot               Pivot
	palette             *Palette
	cells               map[cell]Voxel
}

type cell struct {
	x, y, z uint32
}

// NewBuilder returns a builder for a model of the given extents.
func NewBuilder(sizeX, sizeY, sizeZ uint32) *Builder {
	return &Builder{
		sizeX: sizeX,
		sizeY: sizeY,
		sizeZ: sizeZ,
		cells: make(map[cell]Voxel),
	}
}

// SetPivot sets the model pivot.
func (b *Builder) SetPivot(p Pivot) {
	b.pivot = p
}

// SetPalette attaches a palette suffix to the built model.
func (b *Builder) SetPalette(p *Palette) {
	b.palette = p
}

// Set places v at (x, y, z), replacing any voxel already there. v.Height is
// overwritten with z.
func (b *Builder) Set(x, y, z uint32, v Voxel) error {
	if x >= b.sizeX || y >= b.sizeY || z >= b.sizeZ {
		return fmt.Errorf("voxel (%d, %d, %d) outside %dx%dx%d: %w", x, y, z, b.sizeX, b.sizeY, b.sizeZ, ErrInvalidModel)
	}
	if z > math.MaxUint16 {
		return fmt.Errorf("height %d does not fit in 16 bits: %w", z, ErrArithmeticOverflow)
	}
	v.Height = uint16(z)
	b.cells[cell{x, y, z}] = v
	return nil
}

// Len returns the number of voxels placed so far.
func (b *Builder) Len() int {
	return len(b.cells)
}

// Build returns a new model holding the placed voxels. The builder can keep
// being used afterwards.
func (b *Builder) Build() (*Model, error) {
	columns := uint64(b.sizeX) * uint64(b.sizeY)
	if _, err := binpkg.MulSize(columns, YIndexEntry); err != nil {
		return nil, err
	}

	keys := make([]cell, 0, len(b.cells))
	for k := range b.cells {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, c cell) int {
		if n := cmp.Compare(a.x, c.x); n != 0 {
			return n
		}
		if n := cmp.Compare(a.y, c.y); n != 0 {
			return n
		}
		return cmp.Compare(a.z, c.z)
	})

	m := &Model{
		Magic:  Magic,
		SizeX:  b.sizeX,
		SizeY:  b.sizeY,
		SizeZ:  b.sizeZ,
		Pivot:  b.pivot,
		Voxels: make([]Voxel, 0, len(keys)),
		XIndex: make([]uint32, b.sizeX),
		YIndex: make([][]uint16, b.sizeX),
	}
	backing := make([]uint16, columns)
	sy := uint64(b.sizeY)
	for x := range m.YIndex {
		lo := uint64(x) * sy
		m.YIndex[x] = backing[lo : lo+sy : lo+sy]
	}

	for _, k := range keys {
		if m.YIndex[k.x][k.y] == math.MaxUint16 {
			return nil, fmt.Errorf("column (%d, %d) holds more than %d voxels: %w", k.x, k.y, math.MaxUint16, ErrArithmeticOverflow)
		}
		m.YIndex[k.x][k.y]++
		m.XIndex[k.x]++
		m.Voxels = append(m.Voxels, b.cells[k])
	}

	if b.palette != nil {
		p := *b.palette
		m.Palette = &p
	}
	return m, nil
}
