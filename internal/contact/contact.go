package contact

import (
	"math"

	"github.com/banshee-data/pawlabel/internal/plate"
	"github.com/paulmach/orb"
)

// Contact is one complete touch-down-to-lift-off event attributed to a
// single paw.
//
// Spatial bounds are inclusive plate coordinates with X the column and Y
// the row. Frames lists the frames the contact is present in; a merged
// contact may skip frames. Data holds the filtered pressure with one layer
// per entry of Frames, so its shape is
// (MaxY-MinY+1) × (MaxX-MinX+1) × len(Frames).
type Contact struct {
	ID int

	MinX, MaxX int
	MinY, MaxY int
	Frames     []int

	Data *plate.Tensor

	Invalid  bool
	Label    Label
	Selected bool
}

// MinFrame returns the first frame of the contact.
func (c *Contact) MinFrame() int { return c.Frames[0] }

// MaxFrame returns the last frame of the contact.
func (c *Contact) MaxFrame() int { return c.Frames[len(c.Frames)-1] }

// Length returns the number of frames the contact is present in.
func (c *Contact) Length() int { return len(c.Frames) }

// Width returns the number of columns covered.
func (c *Contact) Width() int { return c.MaxX - c.MinX + 1 }

// Height returns the number of rows covered.
func (c *Contact) Height() int { return c.MaxY - c.MinY + 1 }

// Force returns the summed pressure per frame.
func (c *Contact) Force() []float64 {
	out := make([]float64, c.Length())
	for k := range out {
		out[k] = c.Data.FrameSum(k)
	}
	return out
}

// MaxForce returns the peak of Force.
func (c *Contact) MaxForce() float64 {
	peak := 0.0
	for _, f := range c.Force() {
		peak = math.Max(peak, f)
	}
	return peak
}

// Surface returns the number of loaded sensors per frame.
func (c *Contact) Surface() []float64 {
	rows, cols, _ := c.Data.Dims()
	out := make([]float64, c.Length())
	for k := range out {
		n := 0
		for r := 0; r < rows; r++ {
			for col := 0; col < cols; col++ {
				if c.Data.At(r, col, k) > 0 {
					n++
				}
			}
		}
		out[k] = float64(n)
	}
	return out
}

// Pressure returns the mean pressure over the loaded sensors per frame.
func (c *Contact) Pressure() []float64 {
	force, surface := c.Force(), c.Surface()
	out := make([]float64, len(force))
	for k := range out {
		if surface[k] > 0 {
			out[k] = force[k] / surface[k]
		}
	}
	return out
}

// CenterOfPressure returns the pressure-weighted centre per frame in plate
// coordinates. Frames without load yield NaN coordinates.
func (c *Contact) CenterOfPressure() []orb.Point {
	rows, cols, _ := c.Data.Dims()
	out := make([]orb.Point, c.Length())
	for k := range out {
		var sum, sx, sy float64
		for r := 0; r < rows; r++ {
			for col := 0; col < cols; col++ {
				v := c.Data.At(r, col, k)
				sum += v
				sx += v * float64(col+c.MinX)
				sy += v * float64(r+c.MinY)
			}
		}
		if sum == 0 {
			out[k] = orb.Point{math.NaN(), math.NaN()}
			continue
		}
		out[k] = orb.Point{sx / sum, sy / sum}
	}
	return out
}

// SetLabel assigns a label. Labeling a contact Invalid also marks it
// invalid.
func (c *Contact) SetLabel(l Label) {
	c.Label = l
	if l == Invalid {
		c.Invalid = true
	}
}

// ToggleInvalid flips the invalid flag. An invalidated contact is
// labeled Invalid; a contact made valid again loses that label.
func (c *Contact) ToggleInvalid() {
	c.Invalid = !c.Invalid
	switch {
	case c.Invalid:
		c.Label = Invalid
	case c.Label == Invalid:
		c.Label = Unlabeled
	}
}

// Sequence hands out contact IDs. IDs are never reused within a session.
type Sequence struct {
	next int
}

// Next returns a fresh ID.
func (s *Sequence) Next() int {
	id := s.next
	s.next++
	return id
}

// Observe records an ID restored from storage so it is not handed out
// again.
func (s *Sequence) Observe(id int) {
	if id >= s.next {
		s.next = id + 1
	}
}
