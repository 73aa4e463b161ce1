package cover

import "sort"

// polygonCover composes lineCover's ring walk (boundary tiles) with a
// scan-line interior fill (spec.md §4.5). rings are already projected to
// tile-space at the target zoom; ring 0 is the outer ring.
func polygonCover(rings [][]point) []tile {
	var tiles []tile
	var intersections []tile

	for _, r := range rings {
		var ring []tile
		tiles = append(tiles, lineCover(r, &ring)...)

		n := len(ring)
		if n == 0 {
			continue
		}
		for j := 0; j < n; j++ {
			k := (j - 1 + n) % n
			m := (j + 1) % n
			y := ring[j].Y
			// Keep ring[j] iff y is not a local extremum and the next
			// vertex doesn't share y (dedupes horizontal runs).
			if (y > ring[k].Y || y > ring[m].Y) && // not local minimum
				(y < ring[k].Y || y < ring[m].Y) && // not local maximum
				y != ring[m].Y {
				intersections = append(intersections, ring[j])
			}
		}
	}

	sort.Slice(intersections, func(i, j int) bool {
		a, b := intersections[i], intersections[j]
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})

	for i := 0; i+1 < len(intersections); i += 2 {
		t0, t1 := intersections[i], intersections[i+1]
		for x := t0.X + 1; x < t1.X; x++ {
			tiles = append(tiles, tile{X: x, Y: t0.Y})
		}
	}

	return tiles
}
