// Package mercator implements the Web Mercator projection used by the tile
// cover engine: lon/lat <-> tile-space conversion, latitude clamping to the
// Mercator pole limit, and the zoom-rounding rule that varies by source type.
package mercator

// LatitudeMax is the Mercator pole limit in degrees. Web Mercator is only
// defined on [-LatitudeMax, +LatitudeMax]; latitudes beyond it project to
// infinity and must be clamped before use.
const LatitudeMax = 85.05112878

// LatLng is a geographic coordinate. Longitude is never canonicalized:
// values beyond +/-180 are preserved so antimeridian-wrapping callers
// round-trip exactly.
type LatLng struct {
	Lat float64
	Lon float64
}

// Point2D is a generic 2D point, used both in projected world space
// (float64) and tile-grid space (int32).
type Point2D[T float64 | int32 | int16] struct {
	X T
	Y T
}

// LatLngBounds is an axis-aligned box in geographic coordinates. West may
// exceed East, encoding an antimeridian-crossing span.
type LatLngBounds struct {
	South, West, North, East float64
	empty                    bool
}

// EmptyBounds returns the canonical empty bounds sentinel.
func EmptyBounds() LatLngBounds {
	return LatLngBounds{South: 1, North: -1, empty: true}
}

// WorldBounds returns bounds spanning the full Mercator-projectable world.
func WorldBounds() LatLngBounds {
	return LatLngBounds{South: -LatitudeMax, West: -180, North: LatitudeMax, East: 180}
}

// SingletonBounds returns a zero-area box at a single point.
func SingletonBounds(p LatLng) LatLngBounds {
	return LatLngBounds{South: p.Lat, West: p.Lon, North: p.Lat, East: p.Lon}
}

// HullBounds computes the oriented span containing both points, preserving
// West > East when the hull crosses the antimeridian.
func HullBounds(a, b LatLng) LatLngBounds {
	south, north := a.Lat, b.Lat
	if south > north {
		south, north = north, south
	}
	return LatLngBounds{South: south, West: a.Lon, North: north, East: b.Lon}
}

// IsEmpty reports whether the bounds is the empty sentinel (south > north).
func (b LatLngBounds) IsEmpty() bool {
	return b.empty || b.South > b.North
}

// Center returns the midpoint of the bounds. For antimeridian-crossing
// bounds (West > East) the midpoint is taken across the +180/-180 seam.
func (b LatLngBounds) Center() LatLng {
	lon := (b.West + b.East) / 2
	if b.West > b.East {
		lon = wrap(lon+180, -180, 180)
	}
	return LatLng{Lat: (b.South + b.North) / 2, Lon: lon}
}

func (b LatLngBounds) NorthWest() LatLng { return LatLng{Lat: b.North, Lon: b.West} }
func (b LatLngBounds) NorthEast() LatLng { return LatLng{Lat: b.North, Lon: b.East} }
func (b LatLngBounds) SouthEast() LatLng { return LatLng{Lat: b.South, Lon: b.East} }
func (b LatLngBounds) SouthWest() LatLng { return LatLng{Lat: b.South, Lon: b.West} }

func wrap(v, lo, hi float64) float64 {
	d := hi - lo
	for v < lo {
		v += d
	}
	for v >= hi {
		v -= d
	}
	return v
}
