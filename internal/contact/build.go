package contact

import (
	"errors"
	"image"

	"github.com/banshee-data/pawlabel/internal/plate"
	"github.com/banshee-data/pawlabel/internal/tracking/l1contours"
	"github.com/banshee-data/pawlabel/internal/tracking/l2graph"
)

// ErrEmptyContact is returned when building from a raw contact without
// blobs.
var ErrEmptyContact = errors.New("raw contact has no blobs")

// Options configures contact construction and validation.
type Options struct {
	// Padding is the number of zero rows/columns the tracker added on
	// every spatial side before extraction.
	Padding int
	// StartForcePercentage and EndForcePercentage bound the force in the
	// first and last frame relative to the peak force.
	StartForcePercentage float64
	EndForcePercentage   float64
}

// DefaultOptions returns the production contact options.
func DefaultOptions() Options {
	return Options{
		Padding:              1,
		StartForcePercentage: 0.25,
		EndForcePercentage:   0.25,
	}
}

// Build turns a merged raw contact into a Contact. Blob coordinates and
// padded are in the padded coordinate space; the resulting bounds are in
// plate coordinates. Only readings inside or on a blob boundary of their
// frame are copied, which separates neighbouring contacts whose bounding
// boxes overlap.
func Build(id int, raw l2graph.RawContact, padded *plate.Tensor, opts Options) (*Contact, error) {
	frames := raw.Frames()
	if len(frames) == 0 || raw.BlobCount() == 0 {
		return nil, ErrEmptyContact
	}

	var box image.Rectangle
	first := true
	for _, f := range frames {
		for _, b := range raw[f] {
			if first {
				box = b.BoundingRect()
				first = false
				continue
			}
			box = box.Union(b.BoundingRect())
		}
	}

	rows, cols, depth := box.Dy(), box.Dx(), len(frames)
	data := make([]float64, rows*cols*depth)
	for k, f := range frames {
		for _, b := range raw[f] {
			filterBlob(data, k, rows, cols, box.Min, b, padded, f)
		}
	}
	pixels, err := plate.New(rows, cols, depth, data)
	if err != nil {
		return nil, err
	}

	c := &Contact{
		ID:     id,
		MinX:   box.Min.X - opts.Padding,
		MaxX:   box.Max.X - 1 - opts.Padding,
		MinY:   box.Min.Y - opts.Padding,
		MaxY:   box.Max.Y - 1 - opts.Padding,
		Frames: frames,
		Data:   pixels,
	}

	pr, pc, pf := padded.Dims()
	c.Invalid = IsInvalid(c, pr-2*opts.Padding, pc-2*opts.Padding, pf, opts)
	return c, nil
}

func filterBlob(data []float64, k, rows, cols int, origin image.Point, b l1contours.Blob, padded *plate.Tensor, f int) {
	rect := b.BoundingRect()
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			v := padded.At(y, x, f)
			if v == 0 || !b.Contains(image.Point{X: x, Y: y}) {
				continue
			}
			data[(k*rows+y-origin.Y)*cols+x-origin.X] = v
		}
	}
}

// TouchesEdge reports whether the contact reaches the first or last row or
// column of a rows × cols plate, or the last frame of the recording.
func TouchesEdge(c *Contact, rows, cols, frames int) bool {
	return c.MinY <= 0 || c.MaxY >= rows-1 ||
		c.MinX <= 0 || c.MaxX >= cols-1 ||
		c.MaxFrame() >= frames-1
}

// IncompleteStep reports whether the force at the first or last frame is
// above its percentage of the peak force, meaning the recording caught the
// contact part way through.
func IncompleteStep(force []float64, opts Options) bool {
	if len(force) == 0 {
		return false
	}
	peak := 0.0
	for _, f := range force {
		if f > peak {
			peak = f
		}
	}
	return force[0] > opts.StartForcePercentage*peak ||
		force[len(force)-1] > opts.EndForcePercentage*peak
}

// IsInvalid combines TouchesEdge and IncompleteStep. It depends only on its
// arguments.
func IsInvalid(c *Contact, rows, cols, frames int, opts Options) bool {
	return TouchesEdge(c, rows, cols, frames) || IncompleteStep(c.Force(), opts)
}
