package cover

import "math"

// tile is a tile-grid coordinate (x, y) at an implicit zoom.
type tile struct {
	X, Y int32
}

// ringState is the only stateful element of the core: the previously
// emitted tile, which must persist across segments within one ring so the
// shared vertex between consecutive segments is not re-emitted (spec.md
// §4.4, §9). A fresh ringState must be created per ring.
type ringState struct {
	prevX, prevY int32
	hasPrev      bool
}

// lineCover runs Fast Voxel Traversal over a polyline already projected to
// tile-space at the target zoom. If ring is non-nil, every tile whose row
// (y) differs from the previous tile is also appended to *ring -- this
// feeds the scan-line polygon fill in polygon.go.
func lineCover(coords []point, ring *[]tile) []tile {
	var tiles []tile
	st := ringState{hasPrev: false}
	var lastY int32

	emit := func(x, y int32) {
		tiles = append(tiles, tile{X: x, Y: y})
		if ring != nil && (!st.hasPrev || y != st.prevY) {
			*ring = append(*ring, tile{X: x, Y: y})
		}
		st.prevX, st.prevY, st.hasPrev = x, y, true
		lastY = y
	}

	for i := 1; i < len(coords); i++ {
		p0 := coords[i-1]
		p1 := coords[i]

		dx := p1.X - p0.X
		dy := p1.Y - p0.Y
		if dx == 0 && dy == 0 {
			continue
		}

		xi := sign(dx)
		yi := sign(dy)

		x := int32(math.Floor(p0.X))
		y := int32(math.Floor(p0.Y))

		var tMaxX, tMaxY float64
		if dx == 0 {
			tMaxX = math.Inf(1)
		} else {
			var d0 float64
			if dx > 0 {
				d0 = 1
			}
			tMaxX = math.Abs((d0 + float64(x) - p0.X) / dx)
		}
		if dy == 0 {
			tMaxY = math.Inf(1)
		} else {
			var d0 float64
			if dy > 0 {
				d0 = 1
			}
			tMaxY = math.Abs((d0 + float64(y) - p0.Y) / dy)
		}

		tDeltaX := math.Abs(float64(xi) / dx)
		tDeltaY := math.Abs(float64(yi) / dy)

		if !st.hasPrev || st.prevX != x || st.prevY != y {
			emit(x, y)
		}

		for tMaxX < 1 || tMaxY < 1 {
			if tMaxX < tMaxY {
				tMaxX += tDeltaX
				x += xi
			} else {
				tMaxY += tDeltaY
				y += yi
			}
			emit(x, y)
		}
	}

	if ring != nil && len(*ring) > 0 && lastY == (*ring)[0].Y {
		*ring = (*ring)[:len(*ring)-1]
	}

	return tiles
}

func sign(v float64) int32 {
	if v > 0 {
		return 1
	}
	if v < 0 {
		return -1
	}
	return 0
}
