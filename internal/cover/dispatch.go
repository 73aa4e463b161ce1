package cover

import (
	"math"

	"github.com/paulmach/orb"

	"github.com/geoplat/tilecover/internal/mercator"
)

func projectOrbPoint(p orb.Point, z uint8) point {
	pt := mercator.Project(mercator.LatLng{Lon: p.Lon(), Lat: p.Lat()}, float64(z))
	return point{X: pt.X, Y: pt.Y}
}

func projectLine(ls orb.LineString, z uint8) []point {
	out := make([]point, len(ls))
	for i, p := range ls {
		out[i] = projectOrbPoint(p, z)
	}
	return out
}

func projectRing(r orb.Ring, z uint8) []point {
	return projectLine(orb.LineString(r), z)
}

// geometryDispatch implements spec.md §4.6: dispatch over the geometry
// variant to the appropriate coverer, without the final sort/dedupe (the
// caller, TileCoverGeometry, applies that once across the whole geometry tree).
func geometryDispatch(g orb.Geometry, z uint8) []tile {
	switch geom := g.(type) {
	case orb.Point:
		pt := projectOrbPoint(geom, z)
		return []tile{{X: int32(math.Floor(pt.X)), Y: int32(math.Floor(pt.Y))}}

	case orb.MultiPoint:
		out := make([]tile, 0, len(geom))
		for _, p := range geom {
			pt := projectOrbPoint(p, z)
			out = append(out, tile{X: int32(math.Floor(pt.X)), Y: int32(math.Floor(pt.Y))})
		}
		return out

	case orb.LineString:
		return lineCover(projectLine(geom, z), nil)

	case orb.MultiLineString:
		var out []tile
		for _, ls := range geom {
			out = append(out, lineCover(projectLine(ls, z), nil)...)
		}
		return out

	case orb.Polygon:
		rings := make([][]point, len(geom))
		for i, r := range geom {
			rings[i] = projectRing(r, z)
		}
		return polygonCover(rings)

	case orb.MultiPolygon:
		var out []tile
		for _, poly := range geom {
			rings := make([][]point, len(poly))
			for i, r := range poly {
				rings[i] = projectRing(r, z)
			}
			out = append(out, polygonCover(rings)...)
		}
		return out

	case orb.Collection:
		var out []tile
		for _, sub := range geom {
			out = append(out, geometryDispatch(sub, z)...)
		}
		return out

	default:
		return nil
	}
}
