package api

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/paulmach/orb/geojson"

	"github.com/geoplat/tilecover/internal/cover"
	"github.com/geoplat/tilecover/internal/mercator"
)

// CoverHandler exposes ad-hoc tile cover/count computation over a geometry
// or bounds box supplied directly in the request body, with no persisted
// region.
type CoverHandler struct{}

func NewCoverHandler() *CoverHandler { return &CoverHandler{} }

func (h *CoverHandler) RegisterRoutes(api huma.API) {
	huma.Post(api, "/api/v1/cover", h.Cover, huma.OperationTags("cover"))
	huma.Post(api, "/api/v1/cover/count", h.Count, huma.OperationTags("cover"))
}

// CoverRequest is the shared request body for cover and count: either a
// GeoJSON geometry or a [south, west, north, east] bounds array, plus the
// zoom level to cover it at.
type CoverRequest struct {
	Body struct {
		Geometry *geojson.Geometry `json:"geometry,omitempty" doc:"GeoJSON geometry to cover"`
		Bounds   []float64         `json:"bounds,omitempty" doc:"[south, west, north, east] bounds to cover"`
		Zoom     uint8             `json:"zoom" required:"true" minimum:"0" maximum:"24" doc:"Zoom level"`
	}
}

// bounds reports whether the request carries a valid bounds box and parses
// it, since len(nil) == 0 lets a missing bounds field fall through cleanly.
func (r *CoverRequest) bounds() (mercator.LatLngBounds, bool) {
	if len(r.Body.Bounds) != 4 {
		return mercator.LatLngBounds{}, false
	}
	return mercator.HullBounds(
		mercator.LatLng{Lat: r.Body.Bounds[0], Lon: r.Body.Bounds[1]},
		mercator.LatLng{Lat: r.Body.Bounds[2], Lon: r.Body.Bounds[3]},
	), true
}

// TileIDBody mirrors an UnwrappedTileID on the wire.
type TileIDBody struct {
	Z uint8 `json:"z"`
	X int32 `json:"x"`
	Y int32 `json:"y"`
}

func (h *CoverHandler) Cover(ctx context.Context, input *CoverRequest) (*struct {
	Body struct {
		Tiles []TileIDBody `json:"tiles" doc:"Covering tiles"`
	}
}, error) {
	var ids []cover.UnwrappedTileID
	if b, ok := input.bounds(); ok {
		ids = cover.TileCoverBounds(b, input.Body.Zoom)
	} else if input.Body.Geometry != nil {
		geom := input.Body.Geometry.Geometry()
		if geom == nil {
			return nil, huma.Error400BadRequest("invalid or empty geometry")
		}
		ids = cover.TileCoverGeometry(geom, input.Body.Zoom)
	} else {
		return nil, huma.Error400BadRequest("request must include either bounds or geometry")
	}

	tiles := make([]TileIDBody, len(ids))
	for i, id := range ids {
		tiles[i] = TileIDBody{Z: id.Z, X: id.X, Y: id.Y}
	}

	out := &struct {
		Body struct {
			Tiles []TileIDBody `json:"tiles" doc:"Covering tiles"`
		}
	}{}
	out.Body.Tiles = tiles
	return out, nil
}

func (h *CoverHandler) Count(ctx context.Context, input *CoverRequest) (*struct {
	Body struct {
		Count uint64 `json:"count" doc:"Number of covering tiles"`
	}
}, error) {
	var count uint64
	if b, ok := input.bounds(); ok {
		count = cover.TileCountBounds(b, input.Body.Zoom)
	} else if input.Body.Geometry != nil {
		geom := input.Body.Geometry.Geometry()
		if geom == nil {
			return nil, huma.Error400BadRequest("invalid or empty geometry")
		}
		count = cover.TileCountGeometry(geom, input.Body.Zoom)
	} else {
		return nil, huma.Error400BadRequest("request must include either bounds or geometry")
	}

	out := &struct {
		Body struct {
			Count uint64 `json:"count" doc:"Number of covering tiles"`
		}
	}{}
	out.Body.Count = count
	return out, nil
}
