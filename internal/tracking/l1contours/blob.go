package l1contours

import (
	"image"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Blob is one connected region of non-zero pressure within a single frame,
// stored as its ordered outer boundary. X is the column and Y the row.
type Blob struct {
	Points []image.Point
}

// First returns the first boundary point, which is the top-most, left-most
// pixel of the region.
func (b Blob) First() image.Point {
	return b.Points[0]
}

// Len returns the number of boundary points.
func (b Blob) Len() int {
	return len(b.Points)
}

// Polygon returns the boundary as a ring. A single-point blob gets an
// adjacent second point so that it still forms a valid zero-area polygon.
func (b Blob) Polygon() orb.Ring {
	ring := make(orb.Ring, 0, len(b.Points)+1)
	for _, p := range b.Points {
		ring = append(ring, orb.Point{float64(p.X), float64(p.Y)})
	}
	if len(ring) == 1 {
		ring = append(ring, orb.Point{ring[0][0] + 1, ring[0][1]})
	}
	return ring
}

// BoundingRect returns the axis-aligned rectangle covering every boundary
// pixel. Max is exclusive, so a single pixel yields a 1×1 rectangle.
func (b Blob) BoundingRect() image.Rectangle {
	if len(b.Points) == 0 {
		return image.Rectangle{}
	}
	r := image.Rectangle{Min: b.Points[0], Max: b.Points[0].Add(image.Point{1, 1})}
	for _, p := range b.Points[1:] {
		r = r.Union(image.Rectangle{Min: p, Max: p.Add(image.Point{1, 1})})
	}
	return r
}

// Contains reports whether p lies inside or on the boundary of the blob.
func (b Blob) Contains(p image.Point) bool {
	return ringContains(b.Polygon(), orb.Point{float64(p.X), float64(p.Y)})
}

func ringContains(ring orb.Ring, p orb.Point) bool {
	for _, v := range ring {
		if v == p {
			return true
		}
	}
	return planar.RingContains(ring, p)
}

// Overlaps reports whether any boundary point of the blob with fewer points
// lies inside or on the other blob. The test stops at the first match.
func Overlaps(a, b Blob) bool {
	small, large := a, b
	if b.Len() < a.Len() {
		small, large = b, a
	}
	ring := large.Polygon()
	for _, p := range small.Points {
		if ringContains(ring, orb.Point{float64(p.X), float64(p.Y)}) {
			return true
		}
	}
	return false
}

// FrameBlobs maps a frame index to the blobs found in that frame. Frames
// without pressure are absent rather than present with an empty slice.
type FrameBlobs map[int][]Blob

// Frames returns the populated frame indices in ascending order.
func (fb FrameBlobs) Frames() []int {
	frames := make([]int, 0, len(fb))
	for f := range fb {
		frames = append(frames, f)
	}
	sort.Ints(frames)
	return frames
}

// Count returns the total number of blobs over all frames.
func (fb FrameBlobs) Count() int {
	n := 0
	for _, blobs := range fb {
		n += len(blobs)
	}
	return n
}
