package kv6

import "fmt"

// CheckMagic returns ErrMagicMismatch unless m.Magic is the KV6 tag.
func (m *Model) CheckMagic() error {
	if m == nil {
		return fmt.Errorf("nil model: %w", ErrInvalidModel)
	}
	if m.Magic != Magic {
		return fmt.Errorf("got 0x%08X, want 0x%08X: %w", m.Magic, Magic, ErrMagicMismatch)
	}
	return nil
}

// Validate checks that m is self-consistent under the Build engine's reading
// of the index tables: every slab count equals the sum of its column counts,
// the slab counts add up to len(Voxels), and every height lies in [0, SizeZ).
// Decode and Encode never call it.
func (m *Model) Validate() error {
	if m == nil {
		return fmt.Errorf("nil model: %w", ErrInvalidModel)
	}
	if err := checkShape(m); err != nil {
		return err
	}

	var total uint64
	for x, row := range m.YIndex {
		var slab uint64
		for _, n := range row {
			slab += uint64(n)
		}
		if slab != uint64(m.XIndex[x]) {
			return fmt.Errorf("slab %d: columns hold %d voxels, x index says %d: %w", x, slab, m.XIndex[x], ErrInvalidModel)
		}
		total += slab
	}
	if total != uint64(len(m.Voxels)) {
		return fmt.Errorf("index covers %d voxels, model has %d: %w", total, len(m.Voxels), ErrInvalidModel)
	}

	for i, v := range m.Voxels {
		if uint32(v.Height) >= m.SizeZ {
			return fmt.Errorf("voxel %d: height %d outside [0, %d): %w", i, v.Height, m.SizeZ, ErrInvalidModel)
		}
	}
	return nil
}
