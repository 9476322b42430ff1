package server

import (
	"bytes"
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/stepboard/models"
)

// generateCanvasChart draws every canvas polyline as its own series on
// value axes, using the point coordinates as they are.
func generateCanvasChart(canvas models.Canvas) *charts.Line {
	line := charts.NewLine()

	subtitle := "Select users and press Draw"
	if n := len(canvas.Lines); n > 0 {
		subtitle = fmt.Sprintf("%d selected", n)
	}

	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: "macarons"}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("%s Over Time", cases.Title(language.English).String("steps")),
			Subtitle: subtitle,
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Type: "value",
			Name: "day x 15",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type:    "value",
			Scale:   opts.Bool(true),
			Inverse: opts.Bool(true),
		}),
		charts.WithLegendOpts(opts.Legend{
			Show:   opts.Bool(true),
			Bottom: "bottom",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:            opts.Bool(true),
			Trigger:         "item",
			BackgroundColor: "#f5f5f5",
			BorderColor:     "#ccc",
		}),
	)

	for _, pl := range canvas.Lines {
		line.AddSeries(pl.Name, generateLineItems(pl.Points))
	}

	return line
}

// generateLineItems converts points to [x, y] LineData pairs
func generateLineItems(points []models.Point) []opts.LineData {
	items := make([]opts.LineData, 0, len(points))
	for _, p := range points {
		items = append(items, opts.LineData{Value: []int{p.X, p.Y}})
	}
	return items
}

func renderChart(line *charts.Line) (string, error) {
	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		return "", fmt.Errorf("failed to render chart: %w", err)
	}
	return buf.String(), nil
}
