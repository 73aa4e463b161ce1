package editor

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"

	"github.com/geoplat/tilecover/internal/humastar"
	"github.com/geoplat/tilecover/internal/mercator"
	"github.com/geoplat/tilecover/internal/offline"
)

// CoverageHandler streams the zoom-by-zoom progress of computing an offline
// region's tile cover, so the editor UI can show a progress bar for large
// regions instead of blocking on the full REST response.
type CoverageHandler struct {
	humastar.Handler
	store *offline.Store
}

// NewCoverageHandler creates a new coverage progress handler.
func NewCoverageHandler(store *offline.Store, renderer *humastar.Renderer) *CoverageHandler {
	return &CoverageHandler{
		Handler: humastar.Handler{Renderer: renderer},
		store:   store,
	}
}

func (h *CoverageHandler) RegisterRoutes(api huma.API) {
	huma.Get(api, "/api/v1/editor/regions/{id}/cover/stream", h.Stream,
		huma.OperationTags("editor"),
	)
	huma.Get(api, "/api/v1/editor/regions/new-form", h.NewForm,
		huma.OperationTags("editor"),
	)
}

// NewForm serves the "region-form" fragment registered by
// humastar.RegisterFormTemplates, for the editor UI to patch into the page
// when the operator opens the "new region" panel.
func (h *CoverageHandler) NewForm(ctx context.Context, input *struct{}) (*huma.StreamResponse, error) {
	return &huma.StreamResponse{
		Body: func(humaCtx huma.Context) {
			_, w := humago.Unwrap(humaCtx)
			if h.Renderer == nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			html, err := h.Renderer.Render("region-form", nil)
			if err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Write([]byte(html))
		},
	}, nil
}

// CoverageStreamInput addresses the region and the zoom range to cover.
type CoverageStreamInput struct {
	ID      int64 `path:"id" doc:"Offline region ID"`
	MinZoom uint8 `query:"minZoom" default:"0" doc:"Lower zoom bound"`
	MaxZoom uint8 `query:"maxZoom" default:"14" doc:"Upper zoom bound"`
}

// Stream emits one datastar signals patch per zoom level computed, with a
// running tile count, then a final "done" signal with the total.
func (h *CoverageHandler) Stream(ctx context.Context, input *CoverageStreamInput) (*huma.StreamResponse, error) {
	return h.Handler.Stream(func(sse humastar.SSE) {
		if h.store == nil {
			sse.Error("offline region store not available")
			return
		}

		region, err := h.store.Get(ctx, input.ID)
		if err != nil {
			sse.Error("region not found: " + err.Error())
			return
		}

		if input.MaxZoom < input.MinZoom {
			sse.Error("maxZoom must be >= minZoom")
			return
		}

		var total uint64
		span := int(input.MaxZoom) - int(input.MinZoom) + 1
		for i, z := 0, input.MinZoom; z <= input.MaxZoom; i, z = i+1, z+1 {
			select {
			case <-ctx.Done():
				return
			default:
			}

			total += region.Definition.TileCount(mercator.Vector, 512, [2]uint8{z, z})
			sse.Signals(map[string]any{
				"coverZoom":     z,
				"coverProgress": (i + 1) * 100 / span,
				"coverCount":    total,
			})

			if z == 255 {
				break
			}
		}

		sse.Signals(map[string]any{
			"coverProgress": 100,
			"coverCount":    total,
			"coverDone":     true,
		})
	}), nil
}
