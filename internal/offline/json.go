package offline

import (
	"encoding/json"
	"errors"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/geoplat/tilecover/internal/mercator"
)

// ErrMalformedRegion is returned when a region's JSON cannot be decoded
// into a valid Definition.
var ErrMalformedRegion = errors.New("malformed offline region definition")

// wireDefinition is the on-disk/over-the-wire shape of a Definition. Legacy
// clients send "bounds" as a 4-element [south, west, north, east] array;
// current clients send "geometry" as a GeoJSON geometry object. Both are
// accepted on decode; only "geometry" is ever written on encode.
type wireDefinition struct {
	StyleURL   *string           `json:"style_url"`
	Bounds     []float64         `json:"bounds,omitempty"`
	Geometry   *geojson.Geometry `json:"geometry,omitempty"`
	MinZoom    *float64          `json:"min_zoom"`
	MaxZoom    *float64          `json:"max_zoom,omitempty"`
	PixelRatio *float64          `json:"pixel_ratio"`
}

// DecodeDefinition parses an offline region definition from JSON. A legacy
// "bounds" field is honored only when it carries exactly four numbers; any
// other length is rejected as malformed rather than silently accepted,
// which is what the original encoding's length check inverted.
func DecodeDefinition(data []byte) (Definition, error) {
	var w wireDefinition
	if err := json.Unmarshal(data, &w); err != nil {
		return Definition{}, ErrMalformedRegion
	}

	if w.StyleURL == nil || w.MinZoom == nil || w.PixelRatio == nil {
		return Definition{}, ErrMalformedRegion
	}

	hasBounds := len(w.Bounds) == 4
	hasGeometry := w.Geometry != nil
	if !hasBounds && !hasGeometry {
		return Definition{}, ErrMalformedRegion
	}

	var geom orb.Geometry
	if hasBounds {
		b := mercator.HullBounds(
			mercator.LatLng{Lat: w.Bounds[0], Lon: w.Bounds[1]},
			mercator.LatLng{Lat: w.Bounds[2], Lon: w.Bounds[3]},
		)
		geom = boundsToGeometry(b)
	} else {
		geom = w.Geometry.Geometry()
	}

	maxZoom := math.Inf(1)
	if w.MaxZoom != nil {
		maxZoom = *w.MaxZoom
	}

	return NewDefinition(*w.StyleURL, geom, *w.MinZoom, maxZoom, float32(*w.PixelRatio))
}

// EncodeDefinition serializes a Definition as JSON, always using the
// current "geometry" field (never the legacy "bounds" field).
func EncodeDefinition(d Definition) ([]byte, error) {
	w := wireDefinition{
		StyleURL:   &d.StyleURL,
		Geometry:   geojson.NewGeometry(d.Geometry),
		MinZoom:    &d.MinZoom,
		PixelRatio: float64Ptr(float64(d.PixelRatio)),
	}
	if !math.IsInf(d.MaxZoom, 1) {
		w.MaxZoom = &d.MaxZoom
	}
	return json.Marshal(w)
}

func float64Ptr(v float64) *float64 { return &v }
