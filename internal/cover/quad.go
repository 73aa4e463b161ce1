package cover

import "sort"

type quadTile struct {
	x, y   int32
	sqDist float64
}

// quadCover rasterizes the quadrilateral tl-tr-br-bl (already projected to
// tile-space at zoom z) into the set of tiles it covers, ordered by squared
// distance from center c. This is the viewport/bounds cover primitive
// (spec.md §4.3): it must yield tiles nearest the focal point first so
// consumers prioritize visible tiles.
func quadCover(tl, tr, br, bl, c point, z uint8) []UnwrappedTileID {
	tiles := int32(1) << z

	var found []quadTile
	emit := func(x0, x1 int32, y int32) {
		if y < 0 || y > tiles {
			return
		}
		for x := x0; x < x1; x++ {
			dx := float64(x) + 0.5 - c.X
			dy := float64(y) + 0.5 - c.Y
			found = append(found, quadTile{x: x, y: y, sqDist: dx*dx + dy*dy})
		}
	}

	// Split the quad along its diagonal into two triangles:
	// \---+
	// | \ |
	// +---\.
	scanTriangle(tl, tr, br, 0, tiles, emit)
	scanTriangle(br, bl, tl, 0, tiles, emit)

	sort.Slice(found, func(i, j int) bool {
		a, b := found[i], found[j]
		if a.sqDist != b.sqDist {
			return a.sqDist < b.sqDist
		}
		if a.x != b.x {
			return a.x < b.x
		}
		return a.y < b.y
	})

	result := make([]UnwrappedTileID, 0, len(found))
	for i, t := range found {
		// Dedupe adjacent (x, y): the shared diagonal appears in both triangles.
		if i > 0 {
			p := found[i-1]
			if p.x == t.x && p.y == t.y {
				continue
			}
		}
		result = append(result, UnwrappedTileID{Z: z, X: t.x, Y: t.y})
	}
	return result
}
