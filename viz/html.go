package viz

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/avsim/scenario-extract/extract"
	"github.com/avsim/scenario-extract/util"
)

// HTMLSink renders one standalone HTML page per scene, plotting the
// packed polygon channels and the agent positions in the ego frame.
type HTMLSink struct{}

var _ ResultSink = HTMLSink{}

func (HTMLSink) Accept(batch *extract.SceneBatch, dest string) error {
	if err := util.EnsureDir(dest); err != nil {
		return err
	}
	for _, scene := range batch.Scenes {
		chart := sceneChart(scene, batch.Props)
		path := filepath.Join(dest, fmt.Sprintf("scene_%d.html", scene.SceneID))
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := chart.Render(f); err != nil {
			f.Close()
			return fmt.Errorf("rendering scene %d: %w", scene.SceneID, err)
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	return nil
}

func sceneChart(scene *extract.SceneFeatures, props extract.Props) *charts.Scatter {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: fmt.Sprintf("Scene %d", scene.SceneID),
			Width:     "900px",
			Height:    "900px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("Scene %d", scene.SceneID),
			Subtitle: fmt.Sprintf("%d agents, ego frame", len(scene.Agents)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "x (m)"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "y (m)"}),
	)

	for i, polyType := range props.PolygonTypes {
		data := make([]opts.ScatterData, 0)
		for elem, valid := range scene.MapValid[i] {
			if !valid {
				continue
			}
			for _, p := range scene.MapPoints[i][elem] {
				data = append(data, opts.ScatterData{Value: []interface{}{p[0], p[1]}})
			}
		}
		scatter.AddSeries(string(polyType), data,
			charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 3}))
	}

	agents := make([]opts.ScatterData, 0, len(scene.Agents))
	for _, a := range scene.Agents {
		agents = append(agents, opts.ScatterData{
			Value: []interface{}{a.Centroid[0], a.Centroid[1], a.Label.String()},
		})
	}
	scatter.AddSeries("agents", agents,
		charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 10}))
	return scatter
}
