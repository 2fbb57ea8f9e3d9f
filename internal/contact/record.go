package contact

import (
	"errors"
	"fmt"

	"github.com/banshee-data/pawlabel/internal/plate"
)

// ErrRecordShape is returned when a record's bounds, frames and pixel data
// disagree.
var ErrRecordShape = errors.New("inconsistent contact record")

// Record is the flat, serialisable form of a Contact. Data is the
// frame-major pixel array with shape Shape.
type Record struct {
	ID       int       `json:"contact_id"`
	MinX     int       `json:"min_x"`
	MaxX     int       `json:"max_x"`
	MinY     int       `json:"min_y"`
	MaxY     int       `json:"max_y"`
	MinFrame int       `json:"min_z"`
	MaxFrame int       `json:"max_z"`
	Frames   []int     `json:"frames"`
	Invalid  bool      `json:"invalid"`
	Label    Label     `json:"label"`
	Selected bool      `json:"selected"`
	Shape    []int     `json:"shape"`
	Data     []float64 `json:"data"`
}

// ToDict returns the record form of c.
func (c *Contact) ToDict() Record {
	return Record{
		ID:       c.ID,
		MinX:     c.MinX,
		MaxX:     c.MaxX,
		MinY:     c.MinY,
		MaxY:     c.MaxY,
		MinFrame: c.MinFrame(),
		MaxFrame: c.MaxFrame(),
		Frames:   append([]int(nil), c.Frames...),
		Invalid:  c.Invalid,
		Label:    c.Label,
		Selected: c.Selected,
		Shape:    c.Data.Shape(),
		Data:     c.Data.Values(),
	}
}

// Restore rebuilds a Contact from its record without re-filtering pixels.
func Restore(r Record) (*Contact, error) {
	if len(r.Frames) == 0 {
		return nil, fmt.Errorf("%w: no frames", ErrRecordShape)
	}
	for i := 1; i < len(r.Frames); i++ {
		if r.Frames[i] <= r.Frames[i-1] {
			return nil, fmt.Errorf("%w: frames not strictly increasing at %d", ErrRecordShape, i)
		}
	}
	if r.MinFrame != r.Frames[0] || r.MaxFrame != r.Frames[len(r.Frames)-1] {
		return nil, fmt.Errorf("%w: frame range %d..%d does not match frames", ErrRecordShape, r.MinFrame, r.MaxFrame)
	}
	want := []int{r.MaxY - r.MinY + 1, r.MaxX - r.MinX + 1, len(r.Frames)}
	if len(r.Shape) != 3 || r.Shape[0] != want[0] || r.Shape[1] != want[1] || r.Shape[2] != want[2] {
		return nil, fmt.Errorf("%w: shape %v, bounds imply %v", ErrRecordShape, r.Shape, want)
	}
	data, err := plate.NewFromShape(r.Shape, r.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRecordShape, err)
	}
	if _, err := r.Label.MarshalText(); err != nil {
		return nil, err
	}
	return &Contact{
		ID:       r.ID,
		MinX:     r.MinX,
		MaxX:     r.MaxX,
		MinY:     r.MinY,
		MaxY:     r.MaxY,
		Frames:   append([]int(nil), r.Frames...),
		Data:     data,
		Invalid:  r.Invalid,
		Label:    r.Label,
		Selected: r.Selected,
	}, nil
}
