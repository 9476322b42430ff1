package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/stepboard/models"
)

const canvasHeight = 8

// linePalette defines readable trace colors
var linePalette = []string{
	"27",  // Blue
	"29",  // Green
	"124", // Red
	"130", // Orange
	"93",  // Purple
	"172", // Yellow
	"37",  // Cyan
}

// renderCanvas plots each polyline as a trace of dots, one column per point.
// Rows follow canvas orientation: smaller Y is nearer the top.
func renderCanvas(canvas models.Canvas, height int) string {
	minY, maxY, width := 0, 0, 0
	first := true
	for _, pl := range canvas.Lines {
		width = max(width, len(pl.Points))
		for _, p := range pl.Points {
			if first {
				minY, maxY = p.Y, p.Y
				first = false
			}
			minY = min(minY, p.Y)
			maxY = max(maxY, p.Y)
		}
	}
	if first {
		return ""
	}

	grid := make([][]string, height)
	for r := range grid {
		grid[r] = make([]string, width)
		for c := range grid[r] {
			grid[r][c] = " "
		}
	}

	legend := make([]string, 0, len(canvas.Lines))
	for i, pl := range canvas.Lines {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(linePalette[i%len(linePalette)]))
		for c, p := range pl.Points {
			row := 0
			if maxY > minY {
				row = (p.Y - minY) * (height - 1) / (maxY - minY)
			}
			grid[row][c] = style.Render("•")
		}
		legend = append(legend, style.Render("• "+pl.Name))
	}

	var b strings.Builder
	for _, row := range grid {
		b.WriteString(strings.Join(row, ""))
		b.WriteString("\n")
	}
	b.WriteString(strings.Join(legend, "  "))
	return b.String()
}
