package l1contours

import (
	"image"
	"strings"
	"testing"

	"github.com/banshee-data/pawlabel/internal/plate"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// frameFromArt builds a frame from rows of '.' (zero) and '#' (pressure).
func frameFromArt(t *testing.T, art string) *mat.Dense {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(art), "\n")
	rows, cols := len(lines), len(strings.TrimSpace(lines[0]))
	m := mat.NewDense(rows, cols, nil)
	for r, line := range lines {
		line = strings.TrimSpace(line)
		require.Len(t, line, cols, "row %d", r)
		for c, ch := range line {
			if ch == '#' {
				m.Set(r, c, 1)
			}
		}
	}
	return m
}

func pts(xy ...int) []image.Point {
	out := make([]image.Point, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		out = append(out, image.Point{X: xy[i], Y: xy[i+1]})
	}
	return out
}

func TestExtract_EmptyFrame(t *testing.T) {
	t.Parallel()
	assert.Nil(t, Extract(mat.NewDense(3, 3, nil)))
}

func TestExtract_SinglePixel(t *testing.T) {
	t.Parallel()

	blobs := Extract(frameFromArt(t, `
		...
		.#.
		...`))
	require.Len(t, blobs, 1)
	assert.Equal(t, pts(1, 1), blobs[0].Points)
}

func TestExtract_Square(t *testing.T) {
	t.Parallel()

	blobs := Extract(frameFromArt(t, `
		....
		.##.
		.##.
		....`))
	require.Len(t, blobs, 1)
	// Outer borders run counter-clockwise on screen from the top-left pixel.
	if diff := cmp.Diff(pts(1, 1, 1, 2, 2, 2, 2, 1), blobs[0].Points); diff != "" {
		t.Errorf("border mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_HorizontalLine(t *testing.T) {
	t.Parallel()

	blobs := Extract(frameFromArt(t, `
		.....
		.###.
		.....`))
	require.Len(t, blobs, 1)
	assert.Equal(t, pts(1, 1, 2, 1, 3, 1, 2, 1), blobs[0].Points)
}

func TestExtract_RasterOrder(t *testing.T) {
	t.Parallel()

	blobs := Extract(frameFromArt(t, `
		......
		....#.
		.#....
		.#..##
		......`))
	require.Len(t, blobs, 3)
	assert.Equal(t, image.Point{X: 4, Y: 1}, blobs[0].First())
	assert.Equal(t, image.Point{X: 1, Y: 2}, blobs[1].First())
	assert.Equal(t, image.Point{X: 4, Y: 3}, blobs[2].First())
}

func TestExtract_DiagonalIsConnected(t *testing.T) {
	t.Parallel()

	blobs := Extract(frameFromArt(t, `
		....
		.#..
		..#.
		....`))
	require.Len(t, blobs, 1)
	assert.Equal(t, pts(1, 1, 2, 2), blobs[0].Points)
}

func TestExtract_SkipsRegionsInsideHoles(t *testing.T) {
	t.Parallel()

	blobs := Extract(frameFromArt(t, `
		.......
		.#####.
		.#...#.
		.#.#.#.
		.#...#.
		.#####.
		.......`))
	require.Len(t, blobs, 1)
	assert.Equal(t, image.Point{X: 1, Y: 1}, blobs[0].First())
	assert.Equal(t, image.Rect(1, 1, 6, 6), blobs[0].BoundingRect())
	assert.True(t, blobs[0].Contains(image.Point{X: 3, Y: 3}), "island lies inside the outer border")
}

func TestExtract_TouchingFrameBorder(t *testing.T) {
	t.Parallel()

	blobs := Extract(frameFromArt(t, `
		##.
		##.
		...`))
	require.Len(t, blobs, 1)
	assert.Equal(t, pts(0, 0, 0, 1, 1, 1, 1, 0), blobs[0].Points)
}

func TestExtract_Idempotent(t *testing.T) {
	t.Parallel()

	frame := frameFromArt(t, `
		........
		.##...#.
		.###..#.
		..#.....
		.....##.
		........`)
	first := Extract(frame)
	second := Extract(frame)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("extraction not idempotent (-first +second):\n%s", diff)
	}
	assert.Len(t, first, 3)
}

func TestExtractAll_OmitsEmptyFrames(t *testing.T) {
	t.Parallel()

	tn, err := plate.New(3, 3, 3, nil)
	require.NoError(t, err)
	assert.Empty(t, ExtractAll(tn), "all-zero tensor has no blobs in any frame")

	data := make([]float64, 27)
	data[9+4] = 2 // frame 1, centre pixel
	tn, err = plate.New(3, 3, 3, data)
	require.NoError(t, err)

	fb := ExtractAll(tn)
	assert.Equal(t, []int{1}, fb.Frames())
	assert.Equal(t, 1, fb.Count())
	_, ok := fb[0]
	assert.False(t, ok)
}
