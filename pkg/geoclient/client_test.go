//go:build integration

// Integration test for the generated client SDK.
// Requires a running server: task run
//
// Run: go test -tags=integration ./pkg/geoclient/
package geoclient_test

import (
	"context"
	"os"
	"testing"

	"github.com/geoplat/tilecover/pkg/geoclient"
)

func baseURL() string {
	if u := os.Getenv("GEO_BASE_URL"); u != "" {
		return u
	}
	return "http://localhost:8086"
}

func client() geoclient.TilecoverAPIClient {
	return geoclient.New(baseURL())
}

func TestHealth(t *testing.T) {
	_, body, err := client().Health(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if body.Status != "ok" {
		t.Fatalf("status=%q, want ok", body.Status)
	}
}

func TestGetInfo(t *testing.T) {
	_, body, err := client().GetInfo(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if body.Name != "tilecover" {
		t.Fatalf("name=%q, want tilecover", body.Name)
	}
}

func TestListTables(t *testing.T) {
	_, _, err := client().ListTables(context.Background())
	if err != nil {
		t.Fatal(err)
	}
}

func TestCover(t *testing.T) {
	c := client()
	ctx := context.Background()

	square := geoclient.Geometry{
		Type:        "Polygon",
		Coordinates: [][][]float64{{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}, {-1, -1}}},
	}

	_, body, err := c.Cover(ctx, geoclient.CoverRequestBody{Geometry: square, Zoom: 4})
	if err != nil {
		t.Fatal("cover:", err)
	}
	if len(body.Tiles) == 0 {
		t.Fatal("cover: expected at least one tile")
	}

	_, countBody, err := c.CoverCount(ctx, geoclient.CoverRequestBody{Geometry: square, Zoom: 4})
	if err != nil {
		t.Fatal("cover count:", err)
	}
	if countBody.Count != uint64(len(body.Tiles)) {
		t.Fatalf("count=%d, want %d", countBody.Count, len(body.Tiles))
	}
}

func TestOfflineRegionLifecycle(t *testing.T) {
	c := client()
	ctx := context.Background()

	_, _, err := c.ListOfflineRegions(ctx)
	if err != nil {
		t.Fatal("list:", err)
	}

	square := geoclient.Geometry{
		Type:        "Polygon",
		Coordinates: [][][]float64{{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}, {-1, -1}}},
	}

	_, created, err := c.CreateOfflineRegion(ctx, geoclient.RegionCreateBody{
		Name:       "Integration Test",
		StyleURL:   "mapbox://styles/mapbox/streets-v11",
		Geometry:   square,
		MinZoom:    0,
		PixelRatio: 1,
	})
	if err != nil {
		t.Fatal("create:", err)
	}

	_, region, err := c.GetOfflineRegion(ctx, created.ID)
	if err != nil {
		t.Fatal("get:", err)
	}
	if region.Name != "Integration Test" {
		t.Fatalf("name=%q, want Integration Test", region.Name)
	}

	_, countBody, err := c.OfflineRegionCount(ctx, created.ID, geoclient.OfflineRegionZoomParams{MinZoom: 0, MaxZoom: 6})
	if err != nil {
		t.Fatal("region count:", err)
	}
	if countBody.Count == 0 {
		t.Fatal("region count: expected at least one tile")
	}

	_, _, err = c.DeleteOfflineRegion(ctx, created.ID)
	if err != nil {
		t.Fatal("delete:", err)
	}
}
