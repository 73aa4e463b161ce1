package cover

import (
	"reflect"
	"sort"
	"testing"

	"github.com/geoplat/tilecover/internal/mercator"
)

func ll(lat, lon float64) mercator.LatLng { return mercator.LatLng{Lat: lat, Lon: lon} }

func sortedIDs(ids []UnwrappedTileID) []UnwrappedTileID {
	out := append([]UnwrappedTileID(nil), ids...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].X != out[j].X {
			return out[i].X < out[j].X
		}
		return out[i].Y < out[j].Y
	})
	return out
}

func TestTileCoverBoundsEmpty(t *testing.T) {
	if got := TileCoverBounds(mercator.EmptyBounds(), 0); len(got) != 0 {
		t.Fatalf("empty bounds cover = %v, want []", got)
	}
}

func TestTileCoverBoundsArcticCapClipped(t *testing.T) {
	b := mercator.HullBounds(ll(86, -180), ll(90, 180))
	if got := TileCoverBounds(b, 0); len(got) != 0 {
		t.Fatalf("arctic cap cover = %v, want []", got)
	}
}

func TestTileCoverBoundsAntarcticCapClipped(t *testing.T) {
	b := mercator.HullBounds(ll(-86, -180), ll(-90, 180))
	if got := TileCoverBounds(b, 0); len(got) != 0 {
		t.Fatalf("antarctic cap cover = %v, want []", got)
	}
}

func TestTileCoverBoundsWorld(t *testing.T) {
	got := TileCoverBounds(mercator.WorldBounds(), 0)
	want := []UnwrappedTileID{{Z: 0, X: 0, Y: 0}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("world cover z=0 = %v, want %v", got, want)
	}

	got1 := sortedIDs(TileCoverBounds(mercator.WorldBounds(), 1))
	want1 := sortedIDs([]UnwrappedTileID{
		{Z: 1, X: 0, Y: 0}, {Z: 1, X: 0, Y: 1}, {Z: 1, X: 1, Y: 0}, {Z: 1, X: 1, Y: 1},
	})
	if !reflect.DeepEqual(got1, want1) {
		t.Fatalf("world cover z=1 = %v, want %v", got1, want1)
	}
}

func TestTileCoverBoundsSingleton(t *testing.T) {
	s := mercator.SingletonBounds(ll(0, 0))
	if got := TileCoverBounds(s, 0); len(got) != 0 {
		t.Fatalf("singleton cover z=0 = %v, want []", got)
	}
	if got := TileCoverBounds(s, 1); len(got) != 0 {
		t.Fatalf("singleton cover z=1 = %v, want []", got)
	}
}

func TestTileCoverBoundsSanFrancisco(t *testing.T) {
	sf := mercator.HullBounds(ll(37.6609, -122.5744), ll(37.8271, -122.3204))
	got := sortedIDs(TileCoverBounds(sf, 10))
	want := sortedIDs([]UnwrappedTileID{
		{Z: 10, X: 163, Y: 395}, {Z: 10, X: 163, Y: 396},
		{Z: 10, X: 164, Y: 395}, {Z: 10, X: 164, Y: 396},
	})
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("san francisco cover z=10 = %v, want %v", got, want)
	}
}

func TestTileCoverBoundsAntimeridianWrapPreserved(t *testing.T) {
	sfWrapped := mercator.HullBounds(ll(37.6609, 238.5744), ll(37.8271, 238.3204))
	got := TileCoverBounds(sfWrapped, 0)
	want := []UnwrappedTileID{{Z: 0, X: 1, Y: 0}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("wrapped san francisco cover z=0 = %v, want %v", got, want)
	}
}

func TestTileCountWorld(t *testing.T) {
	if got := TileCountBounds(mercator.WorldBounds(), 0); got != 1 {
		t.Fatalf("tile count world z=0 = %d, want 1", got)
	}
	if got := TileCountBounds(mercator.WorldBounds(), 1); got != 4 {
		t.Fatalf("tile count world z=1 = %d, want 4", got)
	}
}

func TestTileCountSanFranciscoZ22(t *testing.T) {
	sf := mercator.HullBounds(ll(37.6609, -122.5744), ll(37.8271, -122.3204))
	if got := TileCountBounds(sf, 22); got != 7_254_450 {
		t.Fatalf("tile count san francisco z=22 = %d, want 7254450", got)
	}
}

func TestTileCountSanFranciscoZ10(t *testing.T) {
	sf := mercator.HullBounds(ll(37.6609, -122.5744), ll(37.8271, -122.3204))
	if got := TileCountBounds(sf, 10); got != 4 {
		t.Fatalf("tile count san francisco z=10 = %d, want 4", got)
	}
}

func TestTileCountSanFranciscoWrappedZ10(t *testing.T) {
	sfWrapped := mercator.HullBounds(ll(37.6609, 238.5744), ll(37.8271, 238.3204))
	if got := TileCountBounds(sfWrapped, 10); got != 4 {
		t.Fatalf("tile count san francisco wrapped z=10 = %d, want 4", got)
	}
}

func TestTileCountBoundsCrossingAntimeridian(t *testing.T) {
	b := mercator.HullBounds(ll(-20.9615, -214.309), ll(19.477, -155.830))
	cases := []struct {
		z    uint8
		want uint64
	}{
		{0, 1},
		{3, 4},
		{4, 8},
	}
	for _, c := range cases {
		if got := TileCountBounds(b, c.z); got != c.want {
			t.Errorf("tile count crossing antimeridian z=%d = %d, want %d", c.z, got, c.want)
		}
	}
}

func TestTileCoverBoundsCountGESameWhenNoPolarClip(t *testing.T) {
	sf := mercator.HullBounds(ll(37.6609, -122.5744), ll(37.8271, -122.3204))
	for _, z := range []uint8{0, 1, 5, 10, 12} {
		n := len(TileCoverBounds(sf, z))
		c := TileCountBounds(sf, z)
		if uint64(n) > c {
			t.Fatalf("z=%d: cover len %d exceeds count %d", z, n, c)
		}
	}
}
