package l1contours

import (
	"image"

	"github.com/banshee-data/pawlabel/internal/plate"
	"gonum.org/v1/gonum/mat"
)

// Neighbourhood offsets around a pixel in clockwise order (rows grow
// downwards), starting east.
var (
	dirRow = [8]int{0, 1, 1, 1, 0, -1, -1, -1}
	dirCol = [8]int{1, 1, 0, -1, -1, -1, 0, 1}
)

// Extract returns the outer boundary of every 8-connected region of
// strictly positive readings in frame. Regions lying inside a hole of
// another region are not reported. Blobs are ordered by the raster
// position of their first pixel.
func Extract(frame mat.Matrix) []Blob {
	rows, cols := frame.Dims()
	if rows == 0 || cols == 0 {
		return nil
	}

	bin := make([]bool, rows*cols)
	found := false
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if frame.At(r, c) > 0 {
				bin[r*cols+c] = true
				found = true
			}
		}
	}
	if !found {
		return nil
	}

	g := &grid{rows: rows, cols: cols, bin: bin}
	exterior := g.exteriorBackground()
	labels := make([]int, rows*cols)
	next := 0

	var blobs []Blob
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			i := r*cols + c
			if !bin[i] || labels[i] != 0 {
				continue
			}
			next++
			g.label(labels, r, c, next)

			// The left neighbour of a region's first raster pixel is
			// background; the region is outermost when that background
			// connects to the frame border.
			if c > 0 && !exterior[i-1] {
				continue
			}
			blobs = append(blobs, Blob{Points: g.followBorder(r, c)})
		}
	}
	return blobs
}

// ExtractAll runs Extract over every frame of t. Frames without pressure
// are omitted.
func ExtractAll(t *plate.Tensor) FrameBlobs {
	_, _, frames := t.Dims()
	out := make(FrameBlobs)
	for f := 0; f < frames; f++ {
		if t.FrameSum(f) == 0 {
			continue
		}
		if blobs := Extract(t.Frame(f)); len(blobs) > 0 {
			out[f] = blobs
		}
	}
	return out
}

type grid struct {
	rows, cols int
	bin        []bool
}

func (g *grid) on(r, c int) bool {
	return r >= 0 && r < g.rows && c >= 0 && c < g.cols && g.bin[r*g.cols+c]
}

// label marks the 8-connected region containing (r, c).
func (g *grid) label(labels []int, r, c, id int) {
	queue := []int{r*g.cols + c}
	labels[queue[0]] = id
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		pr, pc := i/g.cols, i%g.cols
		for d := 0; d < 8; d++ {
			nr, nc := pr+dirRow[d], pc+dirCol[d]
			if !g.on(nr, nc) {
				continue
			}
			j := nr*g.cols + nc
			if labels[j] == 0 {
				labels[j] = id
				queue = append(queue, j)
			}
		}
	}
}

// exteriorBackground marks background pixels 4-connected to the frame
// border. Background enclosed by a region (a hole) stays false.
func (g *grid) exteriorBackground() []bool {
	ext := make([]bool, g.rows*g.cols)
	var queue []int
	seed := func(r, c int) {
		i := r*g.cols + c
		if !g.bin[i] && !ext[i] {
			ext[i] = true
			queue = append(queue, i)
		}
	}
	for c := 0; c < g.cols; c++ {
		seed(0, c)
		seed(g.rows-1, c)
	}
	for r := 0; r < g.rows; r++ {
		seed(r, 0)
		seed(r, g.cols-1)
	}
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		r, c := i/g.cols, i%g.cols
		for d := 0; d < 8; d += 2 {
			nr, nc := r+dirRow[d], c+dirCol[d]
			if nr < 0 || nr >= g.rows || nc < 0 || nc >= g.cols {
				continue
			}
			seed(nr, nc)
		}
	}
	return ext
}

// followBorder traces the outer border starting at the region's first
// raster pixel (sr, sc), whose west neighbour is background. It follows
// Suzuki and Abe's border following: one clockwise search to find the
// first neighbour, then counter-clockwise steps until the start pixel is
// re-entered from the same neighbour.
func (g *grid) followBorder(sr, sc int) []image.Point {
	const west = 4
	start := image.Point{X: sc, Y: sr}

	first := -1
	for k := 0; k < 8; k++ {
		d := (west + k) % 8
		if g.on(sr+dirRow[d], sc+dirCol[d]) {
			first = d
			break
		}
	}
	if first < 0 {
		return []image.Point{start}
	}

	p1 := image.Point{X: sc + dirCol[first], Y: sr + dirRow[first]}
	prev := p1
	cur := start
	var pts []image.Point
	for {
		back := direction(cur, prev)
		var nxt image.Point
		for k := 1; k <= 8; k++ {
			d := ((back-k)%8 + 8) % 8
			nr, nc := cur.Y+dirRow[d], cur.X+dirCol[d]
			if g.on(nr, nc) {
				nxt = image.Point{X: nc, Y: nr}
				break
			}
		}
		pts = append(pts, cur)
		if nxt == start && cur == p1 {
			return pts
		}
		prev, cur = cur, nxt
	}
}

// direction returns the neighbourhood index of p as seen from center.
func direction(center, p image.Point) int {
	dr, dc := p.Y-center.Y, p.X-center.X
	for d := 0; d < 8; d++ {
		if dirRow[d] == dr && dirCol[d] == dc {
			return d
		}
	}
	return 0
}
