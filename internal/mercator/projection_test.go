package mercator

import (
	"math"
	"testing"
)

func TestProjectWorldCorners(t *testing.T) {
	cases := []struct {
		name string
		in   LatLng
		z    float64
		want Point2D[float64]
	}{
		{"nw", LatLng{Lat: LatitudeMax, Lon: -180}, 0, Point2D[float64]{X: 0, Y: 0}},
		{"se", LatLng{Lat: -LatitudeMax, Lon: 180}, 0, Point2D[float64]{X: 1, Y: 1}},
		{"center", LatLng{Lat: 0, Lon: 0}, 0, Point2D[float64]{X: 0.5, Y: 0.5}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Project(c.in, c.z)
			if math.Abs(got.X-c.want.X) > 1e-9 || math.Abs(got.Y-c.want.Y) > 1e-9 {
				t.Fatalf("Project(%v, %v) = %v, want %v", c.in, c.z, got, c.want)
			}
		})
	}
}

func TestProjectClampsPoles(t *testing.T) {
	a := Project(LatLng{Lat: 90, Lon: 0}, 4)
	b := Project(LatLng{Lat: LatitudeMax, Lon: 0}, 4)
	if a.Y != b.Y {
		t.Fatalf("projecting lat=90 should clamp to LatitudeMax: got y=%v, want %v", a.Y, b.Y)
	}
}

func TestCoveringZoomLevel(t *testing.T) {
	cases := []struct {
		zoom     float64
		typ      SourceType
		tileSize uint16
		want     int32
	}{
		{0.6, Vector, 512, 0},
		{0.6, Raster, 512, 1},
		{0.7, Raster, 512, 1},
		{2, Vector, 512, 2},
		{2, Raster, 512, 2},
	}
	for _, c := range cases {
		got := CoveringZoomLevel(c.zoom, c.typ, c.tileSize)
		if got != c.want {
			t.Errorf("CoveringZoomLevel(%v, %v, %v) = %v, want %v", c.zoom, c.typ, c.tileSize, got, c.want)
		}
	}
}
