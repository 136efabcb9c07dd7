package viz

import (
	"fmt"
	"strings"

	"github.com/san-kum/eggdive/internal/dive"
)

// Report renders a design, its environment and its score.
func Report(title string, p dive.Params, env dive.Environment, depth float64, reason error) string {
	var s strings.Builder
	s.WriteString(GradientTitle.Render(strings.ToUpper(title)) + "\n\n")

	s.WriteString(Metric("height", fmt.Sprintf("%.4f m", p.Height)) + "\n")
	s.WriteString(Metric("width", fmt.Sprintf("%.4f m", p.Width)) + "\n")
	s.WriteString(Metric("groove angle", fmt.Sprintf("%.4f rad", p.GrooveAngle)) + "\n")
	s.WriteString(Metric("grooves", fmt.Sprintf("%d", int(p.GrooveCount))) + "\n")
	s.WriteString(Metric("groove depth", fmt.Sprintf("%.4f m", p.GrooveDepth)) + "\n")
	s.WriteString(Metric("egg density", fmt.Sprintf("%.1f kg/m³", p.EggDensity)) + "\n")
	s.WriteString(Subtle.Render(fmt.Sprintf("Cd=%.2f  ρ=%.0f  σ=%.4f  θ=%.3f  dt=%g  T=%g",
		env.Fluid.Drag, env.Fluid.Density, env.Fluid.SurfaceTension, env.Fluid.ContactAngle,
		env.Step.Dt, env.Step.Total)) + "\n\n")

	s.WriteString(Metric("dive depth", fmt.Sprintf("%.6f m", depth)) + "\n")
	if reason != nil {
		s.WriteString(StatusFailed.Render("scored zero: "+reason.Error()) + "\n")
	}
	return GlassPanel.Render(s.String())
}
