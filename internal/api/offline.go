package api

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/paulmach/orb/geojson"

	"github.com/geoplat/tilecover/internal/humastar"
	"github.com/geoplat/tilecover/internal/mercator"
	"github.com/geoplat/tilecover/internal/offline"
)

// OfflineHandler exposes CRUD over persisted offline regions, plus their
// tile cover/count at a chosen source type and tile size.
type OfflineHandler struct {
	store *offline.Store
}

func NewOfflineHandler(store *offline.Store) *OfflineHandler {
	return &OfflineHandler{store: store}
}

func (h *OfflineHandler) RegisterRoutes(api huma.API) {
	huma.Post(api, "/api/v1/offline/regions", h.Create, huma.OperationTags("offline"))
	huma.Get(api, "/api/v1/offline/regions", h.List, huma.OperationTags("offline"))
	huma.Get(api, "/api/v1/offline/regions/{id}", h.Get, huma.OperationTags("offline"))
	huma.Delete(api, "/api/v1/offline/regions/{id}", h.Delete, huma.OperationTags("offline"))
	huma.Get(api, "/api/v1/offline/regions/{id}/cover", h.Cover, huma.OperationTags("offline"))
	huma.Get(api, "/api/v1/offline/regions/{id}/count", h.Count, huma.OperationTags("offline"))
	huma.Get(api, "/api/v1/offline/regions/{id}/manifest.pmtiles", h.Manifest, huma.OperationTags("offline"))
}

// RegionIDInput addresses a single persisted region.
type RegionIDInput struct {
	ID int64 `path:"id" doc:"Offline region ID"`
}

// RegionBody is the wire shape of a persisted region.
type RegionBody struct {
	ID         int64             `json:"id" doc:"Region ID" card:"id"`
	Name       string            `json:"name" doc:"Region name"`
	StyleURL   string            `json:"styleUrl" doc:"Style URL"`
	Geometry   *geojson.Geometry `json:"geometry" doc:"Region geometry"`
	MinZoom    float64           `json:"minZoom" doc:"Minimum zoom"`
	MaxZoom    *float64          `json:"maxZoom,omitempty" doc:"Maximum zoom, omitted when unbounded"`
	PixelRatio float32           `json:"pixelRatio" doc:"Pixel ratio"`
}

// Actions implements humastar.Actor, advertising the region's own
// cover/count/delete operations as state-dependent Link headers.
func (b RegionBody) Actions() []humastar.Action {
	id := fmt.Sprintf("%d", b.ID)
	return humastar.ActionsFor(id, []humastar.ActionDef{
		{Rel: "cover", Pattern: "/api/v1/offline/regions/%s/cover", Method: "GET", Title: "Compute cover"},
		{Rel: "count", Pattern: "/api/v1/offline/regions/%s/count", Method: "GET", Title: "Count tiles"},
		{Rel: "manifest", Pattern: "/api/v1/offline/regions/%s/manifest.pmtiles", Method: "GET", Title: "Download cover manifest"},
		{Rel: "delete", Pattern: "/api/v1/offline/regions/%s", Method: "DELETE", Title: "Delete region"},
	})
}

func regionBody(r offline.Region) RegionBody {
	b := RegionBody{
		ID:         r.ID,
		Name:       r.Name,
		StyleURL:   r.Definition.StyleURL,
		Geometry:   geojson.NewGeometry(r.Definition.Geometry),
		MinZoom:    r.Definition.MinZoom,
		PixelRatio: r.Definition.PixelRatio,
	}
	if !math.IsInf(r.Definition.MaxZoom, 1) {
		mz := r.Definition.MaxZoom
		b.MaxZoom = &mz
	}
	return b
}

// RegionCreateBody is the body for creating a new offline region. It is a
// named type (rather than inline) so humastar's schema-driven form
// generator can key its x-datastar extension off RegionCreateBody's
// reflect.Type.
type RegionCreateBody struct {
	Name       string           `json:"name" required:"true" minLength:"1" doc:"Region name" signal:"name"`
	StyleURL   string           `json:"styleUrl" required:"true" doc:"Style URL" signal:"styleurl"`
	Geometry   geojson.Geometry `json:"geometry" required:"true" doc:"Region geometry"`
	MinZoom    float64          `json:"minZoom" required:"true" minimum:"0" doc:"Minimum zoom" signal:"minzoom"`
	MaxZoom    *float64         `json:"maxZoom,omitempty" doc:"Maximum zoom, omitted for unbounded" signal:"maxzoom"`
	PixelRatio float32          `json:"pixelRatio" default:"1.0" minimum:"0" doc:"Pixel ratio" signal:"pixelratio"`
}

// CreateRegionInput is the body for creating a new offline region.
type CreateRegionInput struct {
	Body RegionCreateBody
}

func (h *OfflineHandler) Create(ctx context.Context, input *CreateRegionInput) (*struct{ Body RegionBody }, error) {
	if h.store == nil {
		return nil, huma.Error503ServiceUnavailable("offline region store not available")
	}

	maxZoom := math.Inf(1)
	if input.Body.MaxZoom != nil {
		maxZoom = *input.Body.MaxZoom
	}

	geom := input.Body.Geometry.Geometry()
	if geom == nil {
		return nil, huma.Error400BadRequest("invalid or empty geometry")
	}

	def, err := offline.NewDefinition(input.Body.StyleURL, geom, input.Body.MinZoom, maxZoom, input.Body.PixelRatio)
	if err != nil {
		return nil, huma.Error400BadRequest(err.Error())
	}

	region, err := h.store.Create(ctx, input.Body.Name, def)
	if err != nil {
		return nil, huma.Error500InternalServerError("failed to create region", err)
	}

	return &struct{ Body RegionBody }{Body: regionBody(region)}, nil
}

func (h *OfflineHandler) List(ctx context.Context, input *struct{}) (*struct {
	Body struct {
		Regions []RegionBody `json:"regions"`
	}
}, error) {
	if h.store == nil {
		return nil, huma.Error503ServiceUnavailable("offline region store not available")
	}

	regions, err := h.store.List(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError("failed to list regions", err)
	}

	out := &struct {
		Body struct {
			Regions []RegionBody `json:"regions"`
		}
	}{}
	out.Body.Regions = make([]RegionBody, len(regions))
	for i, r := range regions {
		out.Body.Regions[i] = regionBody(r)
	}
	return out, nil
}

func (h *OfflineHandler) Get(ctx context.Context, input *RegionIDInput) (*struct{ Body RegionBody }, error) {
	if h.store == nil {
		return nil, huma.Error503ServiceUnavailable("offline region store not available")
	}
	region, err := h.store.Get(ctx, input.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, huma.Error404NotFound("region not found")
	}
	if err != nil {
		return nil, huma.Error500InternalServerError("failed to fetch region", err)
	}
	return &struct{ Body RegionBody }{Body: regionBody(region)}, nil
}

func (h *OfflineHandler) Delete(ctx context.Context, input *RegionIDInput) (*struct{ Body MessageBody }, error) {
	if h.store == nil {
		return nil, huma.Error503ServiceUnavailable("offline region store not available")
	}
	if err := h.store.Delete(ctx, input.ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, huma.Error404NotFound("region not found")
		}
		return nil, huma.Error500InternalServerError("failed to delete region", err)
	}
	return &struct{ Body MessageBody }{Body: MessageBody{Message: "Region deleted"}}, nil
}

// RegionZoomInput parameterizes a region's tile cover/count query.
type RegionZoomInput struct {
	RegionIDInput
	SourceType string `query:"sourceType" default:"vector" enum:"vector,raster,rasterdem,geojson,video,image,annotations,customvector" doc:"Source type, controls zoom rounding"`
	TileSize   uint16 `query:"tileSize" default:"512" doc:"Tile size in pixels"`
	MinZoom    uint8  `query:"minZoom" default:"0" doc:"Lower zoom bound to intersect with the region's own range"`
	MaxZoom    uint8  `query:"maxZoom" default:"22" doc:"Upper zoom bound to intersect with the region's own range"`
}

var sourceTypeByName = map[string]mercator.SourceType{
	"vector":       mercator.Vector,
	"raster":       mercator.Raster,
	"rasterdem":    mercator.RasterDEM,
	"geojson":      mercator.GeoJSON,
	"video":        mercator.Video,
	"image":        mercator.Image,
	"annotations":  mercator.Annotations,
	"customvector": mercator.CustomVector,
}

func (h *OfflineHandler) Cover(ctx context.Context, input *RegionZoomInput) (*struct {
	Body struct {
		Tiles []TileIDBody `json:"tiles"`
	}
}, error) {
	region, err := h.fetchRegion(ctx, input.RegionIDInput)
	if err != nil {
		return nil, err
	}

	ids := region.Definition.TileCover(sourceTypeByName[input.SourceType], input.TileSize, [2]uint8{input.MinZoom, input.MaxZoom})
	tiles := make([]TileIDBody, len(ids))
	for i, id := range ids {
		tiles[i] = TileIDBody{Z: id.Z, X: int32(id.X), Y: int32(id.Y)}
	}

	out := &struct {
		Body struct {
			Tiles []TileIDBody `json:"tiles"`
		}
	}{}
	out.Body.Tiles = tiles
	return out, nil
}

func (h *OfflineHandler) Count(ctx context.Context, input *RegionZoomInput) (*struct {
	Body struct {
		Count uint64 `json:"count"`
	}
}, error) {
	region, err := h.fetchRegion(ctx, input.RegionIDInput)
	if err != nil {
		return nil, err
	}

	out := &struct {
		Body struct {
			Count uint64 `json:"count"`
		}
	}{}
	out.Body.Count = region.Definition.TileCount(sourceTypeByName[input.SourceType], input.TileSize, [2]uint8{input.MinZoom, input.MaxZoom})
	return out, nil
}

// Manifest serves a region's cover as a PMTiles-shaped directory with no
// tile bytes attached, so a client can learn the full set of tiles to fetch
// and their count before starting a bulk download.
func (h *OfflineHandler) Manifest(ctx context.Context, input *RegionZoomInput) (*huma.StreamResponse, error) {
	region, err := h.fetchRegion(ctx, input.RegionIDInput)
	if err != nil {
		return nil, err
	}

	tiles := region.Definition.TileCover(sourceTypeByName[input.SourceType], input.TileSize, [2]uint8{input.MinZoom, input.MaxZoom})
	encoded := offline.BuildManifest(region.Definition, tiles).Encode()

	return &huma.StreamResponse{
		Body: func(humaCtx huma.Context) {
			_, w := humago.Unwrap(humaCtx)
			w.Header().Set("Content-Type", "application/octet-stream")
			w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="region-%d.pmtiles"`, region.ID))
			w.WriteHeader(http.StatusOK)
			w.Write(encoded)
		},
	}, nil
}

func (h *OfflineHandler) fetchRegion(ctx context.Context, id RegionIDInput) (offline.Region, error) {
	if h.store == nil {
		return offline.Region{}, huma.Error503ServiceUnavailable("offline region store not available")
	}
	region, err := h.store.Get(ctx, id.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return offline.Region{}, huma.Error404NotFound("region not found")
	}
	if err != nil {
		return offline.Region{}, huma.Error500InternalServerError("failed to fetch region", err)
	}
	return region, nil
}
