package l1contours

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlob_PolygonDegenerate(t *testing.T) {
	t.Parallel()

	b := Blob{Points: pts(3, 4)}
	ring := b.Polygon()
	assert.Len(t, ring, 2)
	assert.True(t, b.Contains(image.Point{X: 3, Y: 4}))
	assert.False(t, b.Contains(image.Point{X: 3, Y: 5}))
	assert.Equal(t, image.Rect(3, 4, 4, 5), b.BoundingRect())
}

func TestBlob_Contains(t *testing.T) {
	t.Parallel()

	square := Blob{Points: pts(1, 1, 1, 4, 4, 4, 4, 1)}
	assert.True(t, square.Contains(image.Point{X: 2, Y: 2}), "interior")
	assert.True(t, square.Contains(image.Point{X: 1, Y: 3}), "edge")
	assert.True(t, square.Contains(image.Point{X: 4, Y: 4}), "vertex")
	assert.False(t, square.Contains(image.Point{X: 5, Y: 2}))
	assert.False(t, square.Contains(image.Point{X: 0, Y: 0}))
}

func TestOverlaps(t *testing.T) {
	t.Parallel()

	square := Blob{Points: pts(1, 1, 1, 4, 4, 4, 4, 1)}
	inside := Blob{Points: pts(2, 2)}
	touching := Blob{Points: pts(4, 2, 5, 2)}
	apart := Blob{Points: pts(8, 8, 8, 9, 9, 9, 9, 8)}

	assert.True(t, Overlaps(square, inside))
	assert.True(t, Overlaps(inside, square), "overlap is symmetric")
	assert.True(t, Overlaps(square, touching))
	assert.False(t, Overlaps(square, apart))
	assert.True(t, Overlaps(square, square))
}

func TestFrameBlobs_Frames(t *testing.T) {
	t.Parallel()

	fb := FrameBlobs{
		7: {{Points: pts(0, 0)}},
		2: {{Points: pts(0, 0)}, {Points: pts(2, 2)}},
	}
	assert.Equal(t, []int{2, 7}, fb.Frames())
	assert.Equal(t, 3, fb.Count())
}
