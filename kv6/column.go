package kv6

import "fmt"

// ColumnIndex resolves (x, y) columns to their runs in Model.Voxels in
// constant time. Build one with Model.Columns.
type ColumnIndex struct {
	m *Model
	// starts has SizeX*SizeY+1 entries; column c spans starts[c]:starts[c+1].
	starts []int
}

// Columns validates m and precomputes the start of every column's run.
// The index reads the tables as voxel counts per slab and per column.
func (m *Model) Columns() (*ColumnIndex, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	starts := make([]int, 0, uint64(m.SizeX)*uint64(m.SizeY)+1)
	pos := 0
	for _, row := range m.YIndex {
		for _, n := range row {
			starts = append(starts, pos)
			pos += int(n)
		}
	}
	starts = append(starts, pos)

	return &ColumnIndex{m: m, starts: starts}, nil
}

// Offset returns the index in Voxels of the first voxel of column (x, y)
// and the number of voxels in it.
func (ci *ColumnIndex) Offset(x, y uint32) (start, n int, err error) {
	if x >= ci.m.SizeX || y >= ci.m.SizeY {
		return 0, 0, fmt.Errorf("column (%d, %d) outside %dx%d: %w", x, y, ci.m.SizeX, ci.m.SizeY, ErrInvalidModel)
	}
	c := uint64(x)*uint64(ci.m.SizeY) + uint64(y)
	return ci.starts[c], ci.starts[c+1] - ci.starts[c], nil
}

// Run returns the voxels of column (x, y), ordered as stored. The slice
// shares storage with the model.
func (ci *ColumnIndex) Run(x, y uint32) ([]Voxel, error) {
	start, n, err := ci.Offset(x, y)
	if err != nil {
		return nil, err
	}
	return ci.m.Voxels[start : start+n : start+n], nil
}

// SlabStart returns the index in Voxels of the first voxel of slab x.
func (ci *ColumnIndex) SlabStart(x uint32) (int, error) {
	if x >= ci.m.SizeX {
		return 0, fmt.Errorf("slab %d outside size x %d: %w", x, ci.m.SizeX, ErrInvalidModel)
	}
	return ci.starts[uint64(x)*uint64(ci.m.SizeY)], nil
}
