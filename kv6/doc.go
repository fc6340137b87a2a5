// Package kv6 decodes and encodes KV6 voxel models.
//
// KV6 is the sparse "chunky" voxel format written by Slab6 and read by the
// Build engine and Voxlap. A model stores, for every (x, y) column, a run of
// coloured surface voxels, plus two tables that let a renderer find the run
// of any column without scanning the voxel stream.
//
// # File Layout
//
//	Offset  Size        Description
//	0       4           Magic "Kvxl" (always big-endian)
//	4       4           Size X
//	8       4           Size Y
//	12      4           Size Z
//	16      4           Pivot X (float32)
//	20      4           Pivot Y (float32)
//	24      4           Pivot Z (float32)
//	28      4           Voxel count N
//	32      8*N         Voxel records
//	...     4*X         X index (one entry per slab)
//	...     2*X*Y       Y index (one entry per column, always little-endian)
//	...     772         Optional palette suffix: "SPal" + 256 RGB triples
//
// Header fields and the X index use the byte order selected with
// [WithByteOrder] (little-endian unless told otherwise). Within a voxel
// record the height is always little-endian.
//
// # Decoding
//
//	m, err := kv6.Decode(buf)
//	if errors.Is(err, kv6.ErrTruncatedInput) {
//	    // buffer ended early
//	}
//	if err := m.CheckMagic(); err != nil {
//	    // not a Kvxl model
//	}
//
// Decode does not check the magic so that variants sharing the layout with a
// different tag still decode. Every count read from the stream is checked
// against the remaining buffer before anything is allocated.
//
// # Encoding
//
//	buf, err := kv6.Encode(m)
//
// The voxel count is always taken from len(m.Voxels). Encoding a model
// whose index tables do not match SizeX and SizeY fails with [ErrIndexShape].
//
// # Columns
//
// [Model.Columns] interprets the index tables the way the Build engine does:
// XIndex[x] is the number of voxels in slab x and YIndex[x][y] the number in
// column (x, y). [Builder] produces models in that shape from loose voxels.
//
// # Files
//
// [ReadFile] and [WriteFile] wrap the codec for callers that work with paths.
// Files may optionally be zstd-compressed; decompression stops at
// [WithMaxDecodedSize] bytes.
package kv6
