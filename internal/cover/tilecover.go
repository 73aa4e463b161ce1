package cover

import (
	"math"
	"sort"

	"github.com/paulmach/orb"

	"github.com/geoplat/tilecover/internal/mercator"
)

// Viewport is the minimal surface this package needs from a map's 3D
// transform state: its screen size, and its projection from screen
// coordinates to tile-space at a given zoom. The enclosing transform
// (camera, pitch, bearing, ...) is out of scope here -- only this readable
// projection is (spec.md §1's "out of scope: ... transform state beyond
// the readable projection it exposes").
type Viewport interface {
	Size() (width, height float64)
	FromScreenCoordinate(z uint8, screenX, screenY float64) mercator.Point2D[float64]
}

// TileCoverBounds computes the tile cover of an axis-aligned lon/lat box at
// zoom z (spec.md §4.7). Returns nil for empty bounds or bounds entirely
// outside the Mercator latitude band (polar caps).
func TileCoverBounds(bounds mercator.LatLngBounds, z uint8) []UnwrappedTileID {
	if bounds.IsEmpty() ||
		bounds.South > mercator.LatitudeMax ||
		bounds.North < -mercator.LatitudeMax {
		return nil
	}

	clamped := mercator.LatLngBounds{
		South: math.Max(bounds.South, -mercator.LatitudeMax),
		West:  bounds.West,
		North: math.Min(bounds.North, mercator.LatitudeMax),
		East:  bounds.East,
	}

	zf := float64(z)
	tl := toPoint(mercator.Project(clamped.NorthWest(), zf))
	tr := toPoint(mercator.Project(clamped.NorthEast(), zf))
	br := toPoint(mercator.Project(clamped.SouthEast(), zf))
	bl := toPoint(mercator.Project(clamped.SouthWest(), zf))
	c := toPoint(mercator.Project(clamped.Center(), zf))

	return quadCover(tl, tr, br, bl, c, z)
}

// TileCoverViewport computes the tile cover of a screen-space viewport
// (spec.md §4.7's second overload): the four screen corners and center are
// projected to tile-space via the viewport's own projection, then covered
// the same way as a bounds quad.
func TileCoverViewport(v Viewport, z uint8) []UnwrappedTileID {
	w, h := v.Size()
	tl := toPoint(v.FromScreenCoordinate(z, 0, 0))
	tr := toPoint(v.FromScreenCoordinate(z, w, 0))
	br := toPoint(v.FromScreenCoordinate(z, w, h))
	bl := toPoint(v.FromScreenCoordinate(z, 0, h))
	c := toPoint(v.FromScreenCoordinate(z, w/2, h/2))
	return quadCover(tl, tr, br, bl, c, z)
}

// TileCoverGeometry computes the tile cover of an arbitrary geometry at
// zoom z (spec.md §4.6/§4.7's third overload). Tiles are sorted by (y, x)
// and deduplicated.
func TileCoverGeometry(g orb.Geometry, z uint8) []UnwrappedTileID {
	tiles := geometryDispatch(g, z)

	sort.Slice(tiles, func(i, j int) bool {
		a, b := tiles[i], tiles[j]
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})

	out := make([]UnwrappedTileID, 0, len(tiles))
	for i, t := range tiles {
		if i > 0 && t == tiles[i-1] {
			continue
		}
		out = append(out, UnwrappedTileID{Z: z, X: t.X, Y: t.Y})
	}
	return out
}

// TileCountGeometry is spec.md §4.8's tile_count(Geometry, z).
func TileCountGeometry(g orb.Geometry, z uint8) uint64 {
	return uint64(len(TileCoverGeometry(g, z)))
}

// TileCountBounds is spec.md §4.8's closed-form tile_count(LatLngBounds, z).
func TileCountBounds(bounds mercator.LatLngBounds, z uint8) uint64 {
	if z == 0 {
		return 1
	}
	zf := float64(z)
	sw := mercator.Project(bounds.SouthWest(), zf)
	ne := mercator.Project(bounds.NorthEast(), zf)
	maxTile := math.Exp2(zf)

	x1 := math.Floor(sw.X)
	x2 := math.Ceil(ne.X) - 1
	y1 := clampF(math.Floor(sw.Y), 0, maxTile-1)
	y2 := clampF(math.Floor(ne.Y), 0, maxTile-1)

	var dx float64
	if x1 > x2 {
		dx = (maxTile - x1) + x2
	} else {
		dx = x2 - x1
	}
	// y1 (SW.y) >= y2 (NE.y) in Mercator space since north has smaller y
	// than south; guard with Abs so a reversed bounds doesn't go negative
	// (spec.md §9's documented fragility of this sign).
	dy := math.Abs(y1 - y2)

	return uint64(dx+1) * uint64(dy+1)
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func toPoint(p mercator.Point2D[float64]) point {
	return point{X: p.X, Y: p.Y}
}
