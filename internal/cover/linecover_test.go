package cover

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/paulmach/orb"
)

var tenPointLine = orb.LineString{
	{-77.03342914581299, 38.892101707724315},
	{-77.02394485473633, 38.89203490311832},
	{-77.02390193939209, 38.8824811975508},
	{-77.0119285583496, 38.8824811975508},
	{-77.01218605041504, 38.887391829071106},
	{-77.01390266418456, 38.88735842456116},
	{-77.01622009277342, 38.896510672795266},
	{-77.01725006103516, 38.914143795902376},
	{-77.01879501342773, 38.914143795902376},
	{-77.0196533203125, 38.91307524644972},
}

func TestTileCoverGeometryLineZ13(t *testing.T) {
	got := TileCoverGeometry(tenPointLine, 13)
	want := []UnwrappedTileID{
		{Z: 13, X: 2343, Y: 3133}, {Z: 13, X: 2343, Y: 3134},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("line cover z=13 = %v, want %v", got, want)
	}
}

func TestTileCoverGeometryLineZ15(t *testing.T) {
	got := TileCoverGeometry(tenPointLine, 15)
	want := []UnwrappedTileID{
		{Z: 15, X: 9373, Y: 12533},
		{Z: 15, X: 9373, Y: 12534},
		{Z: 15, X: 9372, Y: 12535},
		{Z: 15, X: 9373, Y: 12535},
		{Z: 15, X: 9373, Y: 12536},
		{Z: 15, X: 9374, Y: 12536},
		{Z: 15, X: 9373, Y: 12537},
		{Z: 15, X: 9374, Y: 12537},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("line cover z=15 = %v, want %v", got, want)
	}
}

func TestTileCoverGeometryWrappedLineZ10(t *testing.T) {
	west := orb.LineString{
		{-179.93342914581299, 38.892101707724315},
		{-180.02394485473633, 38.89203490311832},
	}
	got := TileCoverGeometry(west, 10)
	want := []UnwrappedTileID{{Z: 10, X: -1, Y: 391}, {Z: 10, X: 0, Y: 391}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("wrapped west line cover z=10 = %v, want %v", got, want)
	}

	east := orb.LineString{
		{179.93342914581299, 38.892101707724315},
		{180.02394485473633, 38.89203490311832},
	}
	got = TileCoverGeometry(east, 10)
	want = []UnwrappedTileID{{Z: 10, X: 1023, Y: 391}, {Z: 10, X: 1024, Y: 391}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("wrapped east line cover z=10 = %v, want %v", got, want)
	}
}

// TestLineCoverAdjacency is a property test: Fast Voxel Traversal must emit
// a connected chain of tiles where each step moves at most one tile in x
// and one tile in y (spec.md §4.4's adjacency invariant).
func TestLineCoverAdjacency(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	for trial := 0; trial < 200; trial++ {
		n := 2 + rnd.Intn(6)
		pts := make([]point, n)
		for i := range pts {
			pts[i] = point{X: rnd.Float64() * 64, Y: rnd.Float64() * 64}
		}
		tiles := lineCover(pts, nil)
		for i := 1; i < len(tiles); i++ {
			dx := tiles[i].X - tiles[i-1].X
			dy := tiles[i].Y - tiles[i-1].Y
			if dx < -1 || dx > 1 || dy < -1 || dy > 1 {
				t.Fatalf("trial %d: non-adjacent step %v -> %v", trial, tiles[i-1], tiles[i])
			}
		}
	}
}
