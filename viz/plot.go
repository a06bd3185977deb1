package viz

import (
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/avsim/scenario-extract/callbacks"
	"github.com/avsim/scenario-extract/util"
)

// SaveTrajectoryPlot draws the ground-truth and predicted rollout
// trajectories (cumulative positions from the per-step actions) as two
// lines in one figure.
func SaveTrajectoryPlot(path string, traj *callbacks.Trajectory) error {
	if err := util.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = "Trajectory comparison"
	p.X.Label.Text = "x (m)"
	p.Y.Label.Text = "y (m)"

	series := []struct {
		name    string
		actions [][2]float64
	}{
		{"ground truth", traj.GroundTruth},
		{"predicted", traj.Predicted},
	}
	for i, s := range series {
		points := make(plotter.XYs, len(s.actions)+1)
		x, y := 0.0, 0.0
		for j, a := range s.actions {
			x += a[0]
			y += a[1]
			points[j+1] = plotter.XY{X: x, Y: y}
		}
		line, err := plotter.NewLine(points)
		if err != nil {
			return err
		}
		line.Color = plotutil.Color(i)
		p.Add(line)
		p.Legend.Add(s.name, line)
	}
	return p.Save(8*vg.Inch, 8*vg.Inch, path)
}
