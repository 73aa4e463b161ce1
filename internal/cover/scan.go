package cover

import "math"

// point is a projected (world-space) point used by the rasterizer. Kept
// distinct from mercator.Point2D so this package has no dependency on the
// projection package -- it only ever sees already-projected coordinates.
type point struct {
	X, Y float64
}

// edge stores a line segment with its lower-y endpoint first, per
// spec.md §4.2: (x0,y0) is the lower-y endpoint, dy is always >= 0.
type edge struct {
	x0, y0, x1, y1 float64
	dx, dy         float64
}

func newEdge(a, b point) edge {
	if a.Y > b.Y {
		a, b = b, a
	}
	return edge{
		x0: a.X, y0: a.Y,
		x1: b.X, y1: b.Y,
		dx: b.X - a.X, dy: b.Y - a.Y,
	}
}

// scanLineFunc receives one horizontal span [x0, x1) at row y.
type scanLineFunc func(x0, x1 int32, y int32)

// scanSpans emits horizontal spans for the region between edges e0 and e1
// over rows [ymin, ymax). The edge-order tie-break below is load-bearing:
// it decides which side of each edge is "outside" and must not be
// paraphrased (spec.md §4.2, §9).
func scanSpans(e0, e1 edge, ymin, ymax int32, emit scanLineFunc) {
	y0 := math.Max(float64(ymin), math.Floor(e1.y0))
	y1 := math.Min(float64(ymax), math.Ceil(e1.y1))

	var swap bool
	if e0.x0 == e1.x0 && e0.y0 == e1.y0 {
		swap = e0.x0+e1.dy/e0.dy*e0.dx < e1.x1
	} else {
		swap = e0.x1-e1.dy/e0.dy*e0.dx < e1.x0
	}
	if swap {
		e0, e1 = e1, e0
	}

	m0 := e0.dx / e0.dy
	m1 := e1.dx / e1.dy
	var d0, d1 float64
	if e0.dx > 0 {
		d0 = 1
	}
	if e1.dx < 0 {
		d1 = 1
	}

	for y := int32(y0); float64(y) < y1; y++ {
		x0 := m0*clamp(float64(y)+d0-e0.y0, 0, e0.dy) + e0.x0
		x1 := m1*clamp(float64(y)+d1-e1.y0, 0, e1.dy) + e1.x0
		emit(int32(math.Floor(x1)), int32(math.Ceil(x0)), y)
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
