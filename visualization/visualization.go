// Package visualization renders trajectory batches and the optimized
// trajectory for debugging, as terminal profiles or as chart images.
package visualization

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"go.viam.com/mppi/models"
)

var (
	faintGray = color.RGBA{R: 0xb0, G: 0xb0, B: 0xb0, A: 0x60}
	strongRed = color.RGBA{R: 0xd0, G: 0x30, B: 0x30, A: 0xff}
)

// RenderProfiles renders the optimized trajectory's x and y coordinates over
// the horizon as terminal line charts.
func RenderProfiles(optimal []models.Pose) string {
	if len(optimal) == 0 {
		return ""
	}
	xs := make([]float64, len(optimal))
	ys := make([]float64, len(optimal))
	for i, p := range optimal {
		xs[i] = p.X
		ys[i] = p.Y
	}
	var b strings.Builder
	fmt.Fprintln(&b, "x over horizon:")
	fmt.Fprintln(&b, asciigraph.Plot(xs, asciigraph.Height(8)))
	fmt.Fprintln(&b, "y over horizon:")
	fmt.Fprintln(&b, asciigraph.Plot(ys, asciigraph.Height(8)))
	return b.String()
}

// SaveChart writes an x/y chart of the plan, a downsampled slice of the
// sampled trajectory batch, and the optimized trajectory to an image file
// (format chosen by extension: .png, .svg, .pdf).
func SaveChart(path string, plan models.Path, batch *models.Trajectories, optimal []models.Pose, maxBatchLines int) error {
	p := plot.New()
	p.Title.Text = "MPPI trajectories"
	p.X.Label.Text = "x (m)"
	p.Y.Label.Text = "y (m)"

	if plan.Len() > 0 {
		pts := make(plotter.XYs, plan.Len())
		for i := range pts {
			pts[i].X = plan.X[i]
			pts[i].Y = plan.Y[i]
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return errors.Wrap(err, "plotting plan")
		}
		line.Width = vg.Points(2)
		p.Add(line)
		p.Legend.Add("plan", line)
	}

	if batch != nil && maxBatchLines > 0 {
		stride := batch.Batch() / maxBatchLines
		if stride < 1 {
			stride = 1
		}
		for i := 0; i < batch.Batch(); i += stride {
			pts := make(plotter.XYs, batch.Steps())
			for t := range pts {
				pts[t].X = batch.X(i, t)
				pts[t].Y = batch.Y(i, t)
			}
			line, err := plotter.NewLine(pts)
			if err != nil {
				return errors.Wrap(err, "plotting sampled trajectory")
			}
			line.Color = faintGray
			p.Add(line)
		}
	}

	if len(optimal) > 0 {
		pts := make(plotter.XYs, len(optimal))
		for i, pose := range optimal {
			pts[i].X = pose.X
			pts[i].Y = pose.Y
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return errors.Wrap(err, "plotting optimal trajectory")
		}
		line.Width = vg.Points(2)
		line.Color = strongRed
		p.Add(line)
		p.Legend.Add("optimal", line)
	}

	return errors.Wrap(p.Save(6*vg.Inch, 6*vg.Inch, path), "saving chart")
}
