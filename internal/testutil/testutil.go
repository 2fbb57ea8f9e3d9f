// Package testutil provides shared test utilities and fixtures.
//
// This package centralises common test helpers to reduce code duplication
// across test files and improve test maintainability.
package testutil

import (
	"testing"

	"github.com/banshee-data/pawlabel/internal/plate"
)

// AssertNoError fails the test if err is not nil.
func AssertNoError(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t testing.TB, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// Recording builds pressure tensors for tests. Readings are written with
// Stamp and friends; Tensor freezes the result.
type Recording struct {
	Rows, Cols, Frames int
	data               []float64
}

// NewRecording returns an all-zero rows × cols × frames recording.
func NewRecording(rows, cols, frames int) *Recording {
	return &Recording{Rows: rows, Cols: cols, Frames: frames, data: make([]float64, rows*cols*frames)}
}

// Set writes one reading.
func (r *Recording) Set(row, col, frame int, v float64) *Recording {
	r.data[(frame*r.Rows+row)*r.Cols+col] = v
	return r
}

// Stamp fills a height × width block with top-left (row, col) with v in
// every frame of [from, to].
func (r *Recording) Stamp(row, col, height, width, from, to int, v float64) *Recording {
	for f := from; f <= to; f++ {
		for y := row; y < row+height; y++ {
			for x := col; x < col+width; x++ {
				r.Set(y, x, f, v)
			}
		}
	}
	return r
}

// StampProfile fills the block with a per-frame value starting at frame
// from; values[i] is written to frame from+i.
func (r *Recording) StampProfile(row, col, height, width, from int, values []float64) *Recording {
	for i, v := range values {
		r.Stamp(row, col, height, width, from+i, from+i, v)
	}
	return r
}

// Step stamps a block whose load ramps up to peak and back down over
// length frames, which is what a complete paw contact looks like. The
// ramp is quadratic so that, from three frames on, the first and last
// frames stay at or below a quarter of the peak.
func (r *Recording) Step(row, col, height, width, from, length int, peak float64) *Recording {
	half := (length - 1) / 2
	values := make([]float64, length)
	for i := range values {
		d := min(i, length-1-i)
		x := float64(d+1) / float64(half+1)
		values[i] = peak * x * x
	}
	return r.StampProfile(row, col, height, width, from, values)
}

// Tensor returns the recording as an immutable tensor.
func (r *Recording) Tensor(t testing.TB) *plate.Tensor {
	t.Helper()
	tn, err := plate.New(r.Rows, r.Cols, r.Frames, r.data)
	AssertNoError(t, err)
	return tn
}
