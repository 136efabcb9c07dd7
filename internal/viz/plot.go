package viz

import (
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/eggdive/internal/dynamo"
)

// Downsample keeps at most n evenly spaced points of data, always
// including the last one.
func Downsample(data []float64, n int) []float64 {
	if n <= 0 || len(data) <= n {
		return data
	}
	if n == 1 {
		return data[len(data)-1:]
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = data[i*(len(data)-1)/(n-1)]
	}
	return out
}

// PlotTrajectory draws position and velocity against time.
func PlotTrajectory(tr dynamo.Trajectory, width, height int) string {
	if len(tr) == 0 {
		return ""
	}
	width = max(width, 2)

	var b strings.Builder
	for _, series := range []struct {
		data    []float64
		caption string
	}{
		{tr.Positions(), "y (m) vs t"},
		{tr.Velocities(), "v (m/s) vs t"},
	} {
		graph := asciigraph.Plot(Downsample(series.data, width),
			asciigraph.Height(height),
			asciigraph.Width(width),
			asciigraph.Caption(series.caption),
		)
		b.WriteString(graph)
		b.WriteString("\n\n")
	}
	return b.String()
}
