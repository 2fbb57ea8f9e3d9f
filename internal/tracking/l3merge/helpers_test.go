package l3merge

import (
	"image"

	"github.com/banshee-data/pawlabel/internal/tracking/l1contours"
	"github.com/banshee-data/pawlabel/internal/tracking/l2graph"
)

// block returns the outer border of a size×size block with top-left (x, y).
func block(x, y, size int) l1contours.Blob {
	if size == 1 {
		return l1contours.Blob{Points: []image.Point{{X: x, Y: y}}}
	}
	var p []image.Point
	for r := y; r < y+size; r++ {
		p = append(p, image.Point{X: x, Y: r})
	}
	for c := x + 1; c < x+size; c++ {
		p = append(p, image.Point{X: c, Y: y + size - 1})
	}
	for r := y + size - 2; r >= y; r-- {
		p = append(p, image.Point{X: x + size - 1, Y: r})
	}
	for c := x + size - 2; c > x; c-- {
		p = append(p, image.Point{X: c, Y: y})
	}
	return l1contours.Blob{Points: p}
}

// rawBlock places the same block in every frame of [from, to].
func rawBlock(x, y, size, from, to int) l2graph.RawContact {
	rc := make(l2graph.RawContact)
	for f := from; f <= to; f++ {
		rc[f] = []l1contours.Blob{block(x, y, size)}
	}
	return rc
}
