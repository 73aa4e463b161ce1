// Package offline implements the offline region catalog: a value object
// describing a style + geometry + zoom range to pre-fetch, its JSON wire
// format, and a DuckDB-backed store for persisted regions.
package offline

import (
	"errors"
	"math"

	"github.com/paulmach/orb"

	"github.com/geoplat/tilecover/internal/cover"
	"github.com/geoplat/tilecover/internal/mercator"
)

// ErrInvalidDefinition is returned when a region's zoom range or pixel
// ratio is out of bounds.
var ErrInvalidDefinition = errors.New("invalid offline region definition")

// Definition describes the area and zoom range of an offline region. It is
// immutable once constructed: NewDefinition validates it up front so every
// other consumer can trust its invariants hold.
type Definition struct {
	StyleURL   string
	Geometry   orb.Geometry
	MinZoom    float64
	MaxZoom    float64
	PixelRatio float32
}

// NewDefinition validates and constructs a Definition from an arbitrary
// geometry. MaxZoom may be +Inf, meaning "no upper bound".
func NewDefinition(styleURL string, geom orb.Geometry, minZoom, maxZoom float64, pixelRatio float32) (Definition, error) {
	d := Definition{StyleURL: styleURL, Geometry: geom, MinZoom: minZoom, MaxZoom: maxZoom, PixelRatio: pixelRatio}
	if err := d.checkValid(); err != nil {
		return Definition{}, err
	}
	return d, nil
}

// NewBoundsDefinition constructs a Definition from an axis-aligned box,
// converting it to the closed polygon ring a bounds-based region always
// produces (west,south -> east,south -> east,north -> west,north -> close).
func NewBoundsDefinition(styleURL string, bounds mercator.LatLngBounds, minZoom, maxZoom float64, pixelRatio float32) (Definition, error) {
	return NewDefinition(styleURL, boundsToGeometry(bounds), minZoom, maxZoom, pixelRatio)
}

func boundsToGeometry(b mercator.LatLngBounds) orb.Geometry {
	if b.IsEmpty() {
		return orb.Polygon{}
	}
	return orb.Polygon{orb.Ring{
		{b.West, b.South},
		{b.East, b.South},
		{b.East, b.North},
		{b.West, b.North},
		{b.West, b.South},
	}}
}

func (d Definition) checkValid() error {
	if d.MinZoom < 0 || d.MaxZoom < 0 || d.MaxZoom < d.MinZoom || d.PixelRatio < 0 ||
		math.IsInf(d.MinZoom, 0) || math.IsNaN(d.MinZoom) || math.IsNaN(d.MaxZoom) ||
		math.IsInf(float64(d.PixelRatio), 0) || math.IsNaN(float64(d.PixelRatio)) {
		return ErrInvalidDefinition
	}
	return nil
}

// TileCover returns the canonical tiles this region covers, across every
// zoom level in its covering zoom range intersected with zoomRange. Each
// zoom level is covered independently, so the work runs concurrently on a
// bounded worker pool and results are reassembled in zoom-ascending order.
func (d Definition) TileCover(t mercator.SourceType, tileSize uint16, zoomRange [2]uint8) []cover.CanonicalTileID {
	minZ, maxZ, ok := d.coveringZoomRange(t, tileSize, zoomRange)
	if !ok {
		return nil
	}

	tasks := make([]cover.ZoomTask, 0, int(maxZ)-int(minZ)+1)
	for z := minZ; z <= maxZ; z++ {
		tasks = append(tasks, cover.ZoomTask{Geometry: d.Geometry, Zoom: z})
	}

	results := cover.NewPool(0).Run(tasks)

	var result []cover.CanonicalTileID
	for _, r := range results {
		for _, id := range r.Tiles {
			result = append(result, id.Canonical())
		}
	}
	return result
}

// TileCount returns the total tile count across the region's covering zoom
// range intersected with zoomRange, without materializing every tile ID.
func (d Definition) TileCount(t mercator.SourceType, tileSize uint16, zoomRange [2]uint8) uint64 {
	minZ, maxZ, ok := d.coveringZoomRange(t, tileSize, zoomRange)
	if !ok {
		return 0
	}

	var result uint64
	for z := minZ; z <= maxZ; z++ {
		result += cover.TileCountGeometry(d.Geometry, z)
	}
	return result
}

// coveringZoomRange intersects the region's own [MinZoom, MaxZoom] --
// rounded per source type via mercator.CoveringZoomLevel -- with the
// caller-supplied hard zoomRange. ok is false when the intersection is
// empty.
func (d Definition) coveringZoomRange(t mercator.SourceType, tileSize uint16, zoomRange [2]uint8) (minZ, maxZ uint8, ok bool) {
	lo := int32(mercator.CoveringZoomLevel(d.MinZoom, t, tileSize))

	var hi int32
	if math.IsInf(d.MaxZoom, 1) {
		hi = math.MaxInt32
	} else {
		hi = mercator.CoveringZoomLevel(d.MaxZoom, t, tileSize)
	}

	if lo < int32(zoomRange[0]) {
		lo = int32(zoomRange[0])
	}
	if hi > int32(zoomRange[1]) {
		hi = int32(zoomRange[1])
	}
	if lo < 0 || hi > 255 || hi < lo {
		return 0, 0, false
	}
	return uint8(lo), uint8(hi), true
}
