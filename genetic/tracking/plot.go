package tracking

import (
	"errors"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var ErrEmptyHistory = errors.New("tracking: no generations recorded")

// Plot writes a chart of best and mean fitness per generation.
// The image format follows the path extension (png, svg, pdf).
func (h *History) Plot(path, title string) error {
	if len(h.entries) == 0 {
		return ErrEmptyHistory
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Generation"
	p.Y.Label.Text = "Fitness"

	bestPts := make(plotter.XYs, len(h.entries))
	meanPts := make(plotter.XYs, len(h.entries))
	for i, e := range h.entries {
		bestPts[i].X = float64(e.Generation)
		bestPts[i].Y = e.Best
		meanPts[i].X = float64(e.Generation)
		meanPts[i].Y = e.Mean
	}

	bestLine, err := plotter.NewLine(bestPts)
	if err != nil {
		return err
	}
	meanLine, err := plotter.NewLine(meanPts)
	if err != nil {
		return err
	}
	meanLine.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}

	p.Add(plotter.NewGrid(), bestLine, meanLine)
	p.Legend.Add("best", bestLine)
	p.Legend.Add("mean", meanLine)
	p.Legend.Top = true
	p.Legend.Left = true

	return p.Save(8*vg.Inch, 4*vg.Inch, path)
}
