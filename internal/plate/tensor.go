package plate

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrEmptyTensor is returned when a tensor holds no pressure at all.
	ErrEmptyTensor = errors.New("empty or invalid tensor")
	// ErrShape is returned when the dimensions do not describe a 3D array
	// or do not match the supplied data.
	ErrShape = errors.New("invalid tensor shape")
	// ErrNegativeValue is returned when a reading is negative or NaN.
	ErrNegativeValue = errors.New("negative pressure value")
)

// Tensor is an immutable rows × cols × frames array of pressure readings.
// Readings are stored frame-major so that each frame is one contiguous
// rows*cols block in row-major order.
type Tensor struct {
	rows, cols, frames int
	data               []float64
}

// New builds a tensor from frame-major data. A nil data slice creates an
// all-zero tensor. The slice is copied.
func New(rows, cols, frames int, data []float64) (*Tensor, error) {
	if rows <= 0 || cols <= 0 || frames <= 0 {
		return nil, fmt.Errorf("%w: %dx%dx%d", ErrShape, rows, cols, frames)
	}
	n := rows * cols * frames
	t := &Tensor{rows: rows, cols: cols, frames: frames, data: make([]float64, n)}
	if data == nil {
		return t, nil
	}
	if len(data) != n {
		return nil, fmt.Errorf("%w: have %d values, want %d", ErrShape, len(data), n)
	}
	for i, v := range data {
		if v < 0 || v != v {
			return nil, fmt.Errorf("%w: %v at offset %d", ErrNegativeValue, v, i)
		}
	}
	copy(t.data, data)
	return t, nil
}

// NewFromShape is New for callers that carry the shape as a slice, such as
// decoded array headers. Anything but three dimensions is rejected.
func NewFromShape(shape []int, data []float64) (*Tensor, error) {
	if len(shape) != 3 {
		return nil, fmt.Errorf("%w: need 3 dimensions, got %d", ErrShape, len(shape))
	}
	return New(shape[0], shape[1], shape[2], data)
}

// FromSlices builds a tensor from a nested [row][col][frame] slice.
func FromSlices(v [][][]float64) (*Tensor, error) {
	if len(v) == 0 || len(v[0]) == 0 || len(v[0][0]) == 0 {
		return nil, fmt.Errorf("%w: empty nested slice", ErrShape)
	}
	rows, cols, frames := len(v), len(v[0]), len(v[0][0])
	data := make([]float64, rows*cols*frames)
	for r := range v {
		if len(v[r]) != cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrShape, r, len(v[r]), cols)
		}
		for c := range v[r] {
			if len(v[r][c]) != frames {
				return nil, fmt.Errorf("%w: cell (%d,%d) has %d frames, want %d", ErrShape, r, c, len(v[r][c]), frames)
			}
			for f, x := range v[r][c] {
				data[(f*rows+r)*cols+c] = x
			}
		}
	}
	return New(rows, cols, frames, data)
}

// Dims returns rows, cols and frames.
func (t *Tensor) Dims() (rows, cols, frames int) {
	return t.rows, t.cols, t.frames
}

// Shape returns the dimensions as a slice.
func (t *Tensor) Shape() []int {
	return []int{t.rows, t.cols, t.frames}
}

// At returns the reading at (row, col, frame).
func (t *Tensor) At(r, c, f int) float64 {
	return t.data[t.offset(r, c, f)]
}

func (t *Tensor) offset(r, c, f int) int {
	if r < 0 || r >= t.rows || c < 0 || c >= t.cols || f < 0 || f >= t.frames {
		panic(fmt.Sprintf("plate: index (%d,%d,%d) out of range %dx%dx%d", r, c, f, t.rows, t.cols, t.frames))
	}
	return (f*t.rows+r)*t.cols + c
}

// Frame returns a copy of one time slice as a rows × cols matrix.
func (t *Tensor) Frame(f int) *mat.Dense {
	start := t.offset(0, 0, f)
	block := make([]float64, t.rows*t.cols)
	copy(block, t.data[start:start+t.rows*t.cols])
	return mat.NewDense(t.rows, t.cols, block)
}

// FrameSum returns the total pressure in frame f.
func (t *Tensor) FrameSum(f int) float64 {
	start := t.offset(0, 0, f)
	return floats.Sum(t.data[start : start+t.rows*t.cols])
}

// Sum returns the total pressure over the whole recording.
func (t *Tensor) Sum() float64 {
	return floats.Sum(t.data)
}

// IsZero reports whether every reading is zero.
func (t *Tensor) IsZero() bool {
	for _, v := range t.data {
		if v != 0 {
			return false
		}
	}
	return true
}

// Values returns a copy of the frame-major backing data.
func (t *Tensor) Values() []float64 {
	out := make([]float64, len(t.data))
	copy(out, t.data)
	return out
}

// Pad returns a new tensor with n zero rows and columns added on every
// spatial side. The frame axis is left untouched.
func (t *Tensor) Pad(n int) *Tensor {
	if n <= 0 {
		return t
	}
	rows, cols := t.rows+2*n, t.cols+2*n
	out := &Tensor{rows: rows, cols: cols, frames: t.frames, data: make([]float64, rows*cols*t.frames)}
	for f := 0; f < t.frames; f++ {
		for r := 0; r < t.rows; r++ {
			src := (f*t.rows+r)*t.cols
			dst := (f*rows+r+n)*cols + n
			copy(out.data[dst:dst+t.cols], t.data[src:src+t.cols])
		}
	}
	return out
}
