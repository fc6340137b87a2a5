package kv6

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

// sampleHeights returns the z coordinates of column (x, y) in the 6x6x9
// sample: a floor and a ceiling everywhere, plus a middle voxel in two columns.
func sampleHeights(x, y int) []uint16 {
	if (x == 2 && y == 2) || (x == 3 && y == 3) {
		return []uint16{0, 4, 8}
	}
	return []uint16{0, 8}
}

func sampleVoxel(x, y int, z uint16) Voxel {
	return Voxel{
		Red:        uint8(x * 40),
		Green:      uint8(y * 40),
		Blue:       uint8(z * 28),
		Reserved:   ReservedByte,
		Height:     z,
		Visibility: VisibilityMask,
		Normal:     uint8(x + y + int(z)),
	}
}

// sampleBuffer writes the sample model field by field, without going through
// Encode, so layout tests do not depend on the encoder.
func sampleBuffer(t *testing.T) []byte {
	t.Helper()

	var buf bytes.Buffer
	le := binary.LittleEndian
	write := func(v any) {
		require.NoError(t, binary.Write(&buf, le, v))
	}

	buf.WriteString("Kvxl")
	write([]uint32{6, 6, 9})
	write([]float32{2.5, 2.5, 3.5})
	write(uint32(74))

	var xIndex [6]uint32
	var yIndex [6][6]uint16
	for x := 0; x < 6; x++ {
		for y := 0; y < 6; y++ {
			for _, z := range sampleHeights(x, y) {
				v := sampleVoxel(x, y, z)
				buf.Write([]byte{v.Red, v.Green, v.Blue, v.Reserved})
				write(v.Height)
				buf.Write([]byte{v.Visibility, v.Normal})
				xIndex[x]++
				yIndex[x][y]++
			}
		}
	}
	write(xIndex)
	write(yIndex)
	return buf.Bytes()
}

// sampleModel returns the model sampleBuffer encodes.
func sampleModel() *Model {
	m := &Model{
		Magic:  Magic,
		SizeX:  6,
		SizeY:  6,
		SizeZ:  9,
		Pivot:  Pivot{2.5, 2.5, 3.5},
		Voxels: []Voxel{},
		XIndex: make([]uint32, 6),
		YIndex: make([][]uint16, 6),
	}
	for x := 0; x < 6; x++ {
		m.YIndex[x] = make([]uint16, 6)
		for y := 0; y < 6; y++ {
			for _, z := range sampleHeights(x, y) {
				m.Voxels = append(m.Voxels, sampleVoxel(x, y, z))
				m.XIndex[x]++
				m.YIndex[x][y]++
			}
		}
	}
	return m
}

func samplePalette() *Palette {
	p := new(Palette)
	for i := range p {
		p[i] = [3]uint8{uint8(i), uint8(255 - i), uint8(i / 4)}
	}
	return p
}
