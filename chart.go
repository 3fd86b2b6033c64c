package gcbench

import (
	"errors"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var ErrNothingToChart = errors.New("no comparable metrics to chart")

// Chart builds a bar chart of the displayed change of every comparable
// metric. Bars above zero favour Green Tea.
func (c Comparison) Chart() (*plot.Plot, error) {
	var names []string
	var values plotter.Values
	for _, ch := range c.Changes() {
		if !ch.Defined || ch.Direction == Neutral {
			continue
		}
		names = append(names, ch.Name)
		values = append(values, ch.Displayed)
	}
	if len(values) == 0 {
		return nil, ErrNothingToChart
	}
	p := plot.New()
	p.Title.Text = "Green Tea GC vs Standard GC"
	p.Y.Label.Text = "change (%, positive is better)"
	p.Add(plotter.NewGrid())
	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return nil, fmt.Errorf("building bar chart: %w", err)
	}
	bars.LineStyle.Width = vg.Length(0)
	bars.Color = color.RGBA{R: 46, G: 139, B: 87, A: 255}
	p.Add(bars)
	p.NominalX(names...)
	p.X.Tick.Label.Rotation = 0.6
	p.X.Tick.Label.XAlign = -1
	return p, nil
}

// WriteChart saves the chart to path; the image format follows the file
// extension (png, svg, pdf, ...).
func (c Comparison) WriteChart(path string) error {
	p, err := c.Chart()
	if err != nil {
		return err
	}
	if err := p.Save(8*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("saving chart %s: %w", path, err)
	}
	return nil
}
