// Package report renders contacts for review: static PNG curves with
// gonum/plot and an interactive HTML gait timeline with go-echarts.
package report

import (
	"errors"
	"fmt"

	"github.com/banshee-data/pawlabel/internal/contact"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// ErrNoContacts is returned when there is nothing to render.
var ErrNoContacts = errors.New("no contacts to render")

// Series selects the per-frame curve to plot.
type Series int

const (
	Force Series = iota
	Pressure
	Surface
)

func (s Series) String() string {
	switch s {
	case Force:
		return "Force"
	case Pressure:
		return "Pressure"
	case Surface:
		return "Surface"
	}
	return fmt.Sprintf("Series(%d)", int(s))
}

func (s Series) values(c *contact.Contact) ([]float64, error) {
	switch s {
	case Force:
		return c.Force(), nil
	case Pressure:
		return c.Pressure(), nil
	case Surface:
		return c.Surface(), nil
	}
	return nil, fmt.Errorf("unknown series %d", int(s))
}

// ForcePlot saves the force curve of every contact to a PNG at path.
func ForcePlot(contacts []*contact.Contact, path string) error {
	return SeriesPlot(contacts, Force, path)
}

// SeriesPlot saves one curve per contact against the recording frame
// number. Frames a merged contact skips are left out of its line rather
// than drawn as zero. Invalid contacts are drawn dashed.
func SeriesPlot(contacts []*contact.Contact, series Series, path string) error {
	if len(contacts) == 0 {
		return ErrNoContacts
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s per contact", series)
	p.X.Label.Text = "Frame"
	p.Y.Label.Text = series.String()

	for _, c := range contacts {
		values, err := series.values(c)
		if err != nil {
			return err
		}
		pts := make(plotter.XYs, len(values))
		for k, v := range values {
			pts[k] = plotter.XY{X: float64(c.Frames[k]), Y: v}
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("contact %d line: %w", c.ID, err)
		}
		line.Color = labelColor(c.Label)
		line.Width = vg.Points(1)
		if c.Invalid {
			line.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		}
		p.Add(line)
		p.Legend.Add(fmt.Sprintf("#%d %s", c.ID, c.Label), line)
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	if err := p.Save(14*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save %s plot: %w", series, err)
	}
	return nil
}
