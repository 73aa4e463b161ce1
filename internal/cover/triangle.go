package cover

// scanTriangle decomposes a triangle into its three edges, sorts them by
// y-length, and drives scanSpans with the longest edge (the "spine")
// paired against each of the two shorter edges, skipping horizontal edges
// (dy == 0).
func scanTriangle(a, b, c point, ymin, ymax int32, emit scanLineFunc) {
	ab := newEdge(a, b)
	bc := newEdge(b, c)
	ca := newEdge(c, a)

	if ab.dy > bc.dy {
		ab, bc = bc, ab
	}
	if ab.dy > ca.dy {
		ab, ca = ca, ab
	}
	if bc.dy > ca.dy {
		bc, ca = ca, bc
	}

	if ab.dy != 0 {
		scanSpans(ca, ab, ymin, ymax, emit)
	}
	if bc.dy != 0 {
		scanSpans(ca, bc, ymin, ymax, emit)
	}
}
