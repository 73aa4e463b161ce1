package cover

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/geoplat/tilecover/internal/mercator"
)

// convexPentagon is a convex polygon in lon/lat, small enough to stay well
// clear of the Mercator pole limit and the antimeridian.
var convexPentagon = orb.Polygon{orb.Ring{
	{-10, 40},
	{5, 38},
	{12, 45},
	{0, 52},
	{-12, 48},
	{-10, 40},
}}

// projectRingToTileSpace projects a lon/lat ring to tile-space at zoom z.
func projectRingToTileSpace(ring orb.Ring, z uint8) orb.Ring {
	out := make(orb.Ring, len(ring))
	for i, p := range ring {
		proj := mercator.Project(mercator.LatLng{Lat: p[1], Lon: p[0]}, float64(z))
		out[i] = orb.Point{proj.X, proj.Y}
	}
	return out
}

// TestTileCoverGeometryContainsCenters checks that every tile whose center
// falls inside a convex polygon (tested independently via
// orb/planar.PolygonContains in projected tile space) is present in
// TileCoverGeometry's result. This is a one-directional property: the
// scan-line rasterizer may cover additional boundary tiles that no vertex
// or center touches, but it must never miss a tile whose center is inside.
func TestTileCoverGeometryContainsCenters(t *testing.T) {
	const z = uint8(6)

	projected := orb.Polygon{projectRingToTileSpace(convexPentagon[0], z)}
	bound := projected.Bound()

	minX, minY := int(bound.Min[0]), int(bound.Min[1])
	maxX, maxY := int(bound.Max[0])+1, int(bound.Max[1])+1

	got := TileCoverGeometry(convexPentagon, z)
	gotSet := make(map[UnwrappedTileID]bool, len(got))
	for _, id := range got {
		gotSet[id] = true
	}

	checked := 0
	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			center := orb.Point{float64(x) + 0.5, float64(y) + 0.5}
			if !planar.PolygonContains(projected, center) {
				continue
			}
			checked++
			id := UnwrappedTileID{Z: z, X: int32(x), Y: int32(y)}
			if !gotSet[id] {
				t.Errorf("tile %+v center is inside the polygon but missing from cover", id)
			}
		}
	}
	if checked == 0 {
		t.Fatal("test polygon too small for zoom level, no tile centers fell inside it")
	}
}

// TestTileCoverGeometryContainsVertexTiles checks that the tile containing
// each polygon vertex is present in the cover.
func TestTileCoverGeometryContainsVertexTiles(t *testing.T) {
	const z = uint8(6)

	got := TileCoverGeometry(convexPentagon, z)
	gotSet := make(map[UnwrappedTileID]bool, len(got))
	for _, id := range got {
		gotSet[id] = true
	}

	for _, p := range convexPentagon[0] {
		proj := mercator.Project(mercator.LatLng{Lat: p[1], Lon: p[0]}, float64(z))
		id := UnwrappedTileID{Z: z, X: int32(proj.X), Y: int32(proj.Y)}
		if !gotSet[id] {
			t.Errorf("tile %+v contains a polygon vertex but is missing from cover", id)
		}
	}
}
