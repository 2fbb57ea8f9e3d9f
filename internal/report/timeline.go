package report

import (
	"fmt"
	"io"

	"github.com/banshee-data/pawlabel/internal/contact"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// GaitTimeline writes an HTML page with two charts: a timeline placing
// every present frame of every contact on the row of its label, and a bar
// chart counting contacts per label.
func GaitTimeline(contacts []*contact.Contact, title string, w io.Writer) error {
	if len(contacts) == 0 {
		return ErrNoContacts
	}

	rows := make(map[contact.Label][]opts.ScatterData)
	counts := make(map[contact.Label]int)
	for _, c := range contacts {
		counts[c.Label]++
		for _, f := range c.Frames {
			rows[c.Label] = append(rows[c.Label], opts.ScatterData{
				Value: []interface{}{f, int(c.Label), c.ID},
			})
		}
	}

	names := make([]string, len(contact.Labels))
	for i, l := range contact.Labels {
		names[i] = l.String()
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "100%", Height: "420px"}),
		charts.WithTitleOpts(opts.Title{Title: "Gait timeline", Subtitle: fmt.Sprintf("%s contacts=%d", title, len(contacts))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Frame", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Label", Min: 0, Max: len(contact.Labels) - 1}),
	)
	for _, l := range contact.Labels {
		if len(rows[l]) == 0 {
			continue
		}
		scatter.AddSeries(l.String(), rows[l],
			charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 6}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: hexColor(labelColor(l))}),
		)
	}

	bars := make([]opts.BarData, len(contact.Labels))
	for i, l := range contact.Labels {
		bars[i] = opts.BarData{Value: counts[l]}
	}
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "320px"}),
		charts.WithTitleOpts(opts.Title{Title: "Contacts per label"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(names).
		AddSeries("contacts", bars,
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
		)

	page := components.NewPage()
	page.AddCharts(scatter, bar)
	if err := page.Render(w); err != nil {
		return fmt.Errorf("render gait timeline: %w", err)
	}
	return nil
}
