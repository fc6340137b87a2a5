package kv6

// Magic is the expected value of Model.Magic: "Kvxl" read big-endian.
const Magic uint32 = 0x4B76786C

// Record sizes in bytes.
const (
	HeaderSize    = 32
	VoxelSize     = 8
	XIndexEntry   = 4
	YIndexEntry   = 2
	PaletteSize   = 256 * 3
	PaletteSuffix = 4 + PaletteSize
)

// ReservedByte is the value Slab6 writes into Voxel.Reserved.
const ReservedByte uint8 = 128

// Face visibility bits of Voxel.Visibility. A set bit means the face is
// exposed to air.
const (
	FaceLeft   uint8 = 1 << iota // -x
	FaceRight                    // +x
	FaceBack                     // -y
	FaceFront                    // +y
	FaceTop                      // -z
	FaceBottom                   // +z

	VisibilityMask uint8 = 0x3F
)

// Model is a decoded KV6 voxel model.
type Model struct {
	// Magic is stored as read; see CheckMagic.
	Magic uint32

	SizeX, SizeY, SizeZ uint32

	Pivot Pivot

	// Voxels holds the surface voxels in on-disk (column-major) order.
	Voxels []Voxel

	// XIndex has SizeX entries, one per slab.
	XIndex []uint32

	// YIndex has SizeX rows of SizeY entries, one per column.
	YIndex [][]uint16

	// Palette is the optional "SPal" suffix, nil when absent.
	Palette *Palette
}

// Pivot is the rotation and placement origin, in voxel units.
type Pivot struct {
	X, Y, Z float32
}

// Voxel is one coloured surface voxel.
type Voxel struct {
	Red, Green, Blue uint8

	// Reserved is normally ReservedByte. It is preserved, never checked.
	Reserved uint8

	// Height is the z coordinate of the voxel within its column.
	Height uint16

	// Visibility carries face flags in its low 6 bits.
	Visibility uint8

	// Normal indexes an external normal table.
	Normal uint8
}

// NewVoxel returns a voxel of the given colour with the conventional
// reserved byte set.
func NewVoxel(r, g, b uint8) Voxel {
	return Voxel{Red: r, Green: g, Blue: b, Reserved: ReservedByte}
}

// Palette is the 256-entry RGB table Slab6 may append to a model.
type Palette [256][3]uint8

// paletteTag is "SPal" read big-endian.
const paletteTag uint32 = 0x5350616C
