package kv6

import (
	"encoding/binary"
	"fmt"

	binpkg "github.com/robert-malhotra/go-kv6/internal/binary"
)

/*
Voxel Record Layout:
Offset  Size  Description
0       1     Red
1       1     Green
2       1     Blue
3       1     Reserved (128)
4       2     Height (little-endian regardless of the model's order)
6       1     Visibility
7       1     Normal index
*/

// DecodeVoxel decodes one voxel record from the front of b.
// It always consumes VoxelSize bytes.
func DecodeVoxel(b []byte, order binary.ByteOrder) (Voxel, int, error) {
	r := binpkg.NewReader(b, binpkg.Config{ByteOrder: order})
	v, err := readVoxel(r)
	if err != nil {
		return Voxel{}, 0, fmt.Errorf("decoding voxel: %w", err)
	}
	return v, VoxelSize, nil
}

// EncodeVoxel encodes v into a new VoxelSize-byte slice. Field values are
// written as given.
func EncodeVoxel(v Voxel, order binary.ByteOrder) []byte {
	w := binpkg.NewWriter(VoxelSize, binpkg.Config{ByteOrder: order})
	writeVoxel(w, v)
	return w.Bytes()
}

func readVoxel(r *binpkg.Reader) (Voxel, error) {
	// Check the whole record up front so a short record reports its full size.
	if _, err := r.Need(1, VoxelSize); err != nil {
		return Voxel{}, err
	}

	var (
		v   Voxel
		err error
	)
	if v.Red, err = r.ReadUint8(); err != nil {
		return Voxel{}, err
	}
	if v.Green, err = r.ReadUint8(); err != nil {
		return Voxel{}, err
	}
	if v.Blue, err = r.ReadUint8(); err != nil {
		return Voxel{}, err
	}
	if v.Reserved, err = r.ReadUint8(); err != nil {
		return Voxel{}, err
	}
	// The height is the only multi-byte field, and its order is fixed.
	if v.Height, err = r.ReadUint16With(binary.LittleEndian); err != nil {
		return Voxel{}, err
	}
	if v.Visibility, err = r.ReadUint8(); err != nil {
		return Voxel{}, err
	}
	if v.Normal, err = r.ReadUint8(); err != nil {
		return Voxel{}, err
	}
	return v, nil
}

func writeVoxel(w *binpkg.Writer, v Voxel) {
	w.WriteUint8(v.Red)
	w.WriteUint8(v.Green)
	w.WriteUint8(v.Blue)
	w.WriteUint8(v.Reserved)
	w.WriteUint16With(binary.LittleEndian, v.Height)
	w.WriteUint8(v.Visibility)
	w.WriteUint8(v.Normal)
}
