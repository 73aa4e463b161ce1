// Package cover implements the tile cover algorithms: a scan-line
// quadrilateral rasterizer for viewport/bounds cover, Fast Voxel Traversal
// for line-string cover, and a scan-line polygon fill composed from it.
package cover

// UnwrappedTileID identifies a tile at zoom Z. X may be negative or exceed
// 2^Z-1, encoding antimeridian-wrapped copies of the world.
type UnwrappedTileID struct {
	Z uint8
	X int32
	Y int32
}

// CanonicalTileID identifies a tile with X, Y wrapped into [0, 2^Z).
type CanonicalTileID struct {
	Z uint8
	X uint32
	Y uint32
}

// Canonical reduces an UnwrappedTileID to its canonical form: X mod 2^Z.
func (t UnwrappedTileID) Canonical() CanonicalTileID {
	tiles := int32(1) << t.Z
	x := t.X % tiles
	if x < 0 {
		x += tiles
	}
	return CanonicalTileID{Z: t.Z, X: uint32(x), Y: uint32(t.Y)}
}
