package viz

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/eggdive/internal/dynamo"
	"github.com/san-kum/eggdive/internal/integrators"
	"github.com/san-kum/eggdive/internal/physics"
)

const (
	width           = 40
	height          = 24
	historyCapacity = 600
	maxStepsFrame   = 1000
)

var (
	canvasStyle      = lipgloss.NewStyle().Padding(1, 2)
	activeParamStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	statsStyle       = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(45)
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model steps a dive a few samples per frame and draws the egg against
// the waterline.
type Model struct {
	body    *integrators.Body
	stepper integrators.Stepper
	cfg     dynamo.StepConfig
	title   string

	cur        dynamo.Sample
	steps      int
	total      int
	maxY       float64
	perFrame   int
	running    bool
	err        error
	positions  []float64
	velocities []float64

	paramKeys []string
	selected  int
	tuneErr   error

	canvas *Canvas
}

// NewModel prepares a live dive. perFrame is the number of integrator
// steps taken per animation frame.
func NewModel(st integrators.Stepper, b *integrators.Body, cfg dynamo.StepConfig, perFrame int, title string) Model {
	if perFrame < 1 {
		perFrame = 1
	}
	keys := make([]string, 0, 6)
	for k := range b.Shape.GetParams() {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	m := Model{
		body:      b,
		stepper:   st,
		cfg:       cfg,
		title:     title,
		perFrame:  perFrame,
		paramKeys: keys,
		canvas:    NewCanvas(width, height),
	}
	m.reset()
	return m
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "tab":
			m.selected = (m.selected + 1) % len(m.paramKeys)
		case "up", "k":
			m.adjustParam(1)
		case "down", "j":
			m.adjustParam(-1)
		case "+", "=":
			m.perFrame = min(m.perFrame*2, maxStepsFrame)
		case "-", "_":
			m.perFrame = max(m.perFrame/2, 1)
		}
	case TickMsg:
		if m.running {
			m.advance(m.perFrame)
		}
		return m, tick()
	}
	return m, nil
}

// advance takes up to n steps. It stops the run once the configured
// duration is reached or the integrator fails.
func (m *Model) advance(n int) {
	for i := 0; i < n; i++ {
		if m.Done() {
			m.running = false
			return
		}
		next, err := m.stepper.Step(m.body, m.cur, m.cfg.Dt)
		if err != nil {
			m.err = &dynamo.SimulationError{Step: m.steps, Time: m.cur.T, Sample: m.cur, Wrapped: err}
			m.running = false
			return
		}
		m.record(next)
	}
}

// adjustParam nudges the selected shape parameter up (dir > 0) or down
// and restarts the dive with the new body. The groove count steps by one,
// everything else by 5%. A change that leaves no valid body is rejected.
func (m *Model) adjustParam(dir int) {
	key := m.paramKeys[m.selected]
	shape := m.body.Shape
	val := shape.GetParams()[key]
	switch {
	case key == "groove_count":
		val = math.Max(val+float64(dir), 1)
	case val == 0:
		val = 1e-3
	case dir > 0:
		val *= 1.05
	default:
		val *= 0.95
	}
	if err := shape.SetParam(key, val); err != nil {
		m.tuneErr = err
		return
	}
	b, err := integrators.NewBody(shape, m.body.Fluid)
	if err != nil {
		m.tuneErr = err
		return
	}
	m.tuneErr = nil
	m.body = b
	m.reset()
}

func (m *Model) record(s dynamo.Sample) {
	m.cur = s
	m.steps++
	m.maxY = math.Max(m.maxY, s.Y)
	m.positions = append(m.positions, s.Y)
	m.velocities = append(m.velocities, s.V)
	if len(m.positions) > historyCapacity {
		m.positions = m.positions[1:]
		m.velocities = m.velocities[1:]
	}
}

func (m *Model) reset() {
	m.cur = m.body.Initial()
	m.steps = 0
	m.total = m.cfg.StepCount()
	m.maxY = math.Inf(-1)
	m.err = nil
	m.running = true
	m.positions = m.positions[:0]
	m.velocities = m.velocities[:0]
	m.record(m.cur)
}

// Done reports whether the run has produced every sample or failed.
func (m Model) Done() bool {
	return m.err != nil || m.steps >= m.total
}

// Sample is the most recent state.
func (m Model) Sample() dynamo.Sample { return m.cur }

// Depth is the current best dive depth, max(y) - height.
func (m Model) Depth() float64 { return m.maxY - m.body.Shape.Height }

func (m Model) Err() error { return m.err }

func (m *Model) draw() {
	DrawDive(m.canvas, m.body.Shape, m.cur.Y)
}

// View renders the TUI interface.
func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(eggStyle.Render(m.canvas.String()))

	var s strings.Builder
	s.WriteString(GradientTitle.Render(strings.ToUpper(m.title)) + "\n")
	switch {
	case m.err != nil:
		s.WriteString(StatusFailed.Render("FAILED") + "\n\n")
	case m.Done():
		s.WriteString(StatusPaused.Render("FINISHED") + "\n\n")
	case m.running:
		s.WriteString(StatusRunning.Render("RUNNING") + "\n\n")
	default:
		s.WriteString(StatusPaused.Render("PAUSED") + "\n\n")
	}

	if len(m.positions) > 1 {
		chart := asciigraph.Plot(Downsample(m.positions, 30), asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("y"))
		s.WriteString(graphStyle.Render(chart) + "\n")
		chart = asciigraph.Plot(Downsample(m.velocities, 30), asciigraph.Height(3), asciigraph.Width(30), asciigraph.Caption("v"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}
	s.WriteString(Metric("Time", fmt.Sprintf("%.3fs / %.3fs", m.cur.T, m.cfg.Total)) + "\n")
	s.WriteString(Metric("Position", fmt.Sprintf("%.5f m", m.cur.Y)) + "\n")
	s.WriteString(Metric("Velocity", fmt.Sprintf("%.5f m/s", m.cur.V)) + "\n")
	s.WriteString(Metric("Depth", fmt.Sprintf("%.5f m", m.Depth())) + "\n")
	s.WriteString(Metric("Steps/frame", fmt.Sprintf("%d", m.perFrame)) + "\n")
	if m.err != nil {
		s.WriteString("\n" + StatusFailed.Render(m.err.Error()) + "\n")
	}

	s.WriteString("\nSHAPE\n")
	params := m.body.Shape.GetParams()
	for i, k := range m.paramKeys {
		line := fmt.Sprintf("%-13s %.4g", k, params[k])
		if i == m.selected {
			s.WriteString(activeParamStyle.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + Subtle.Render(line) + "\n")
		}
	}
	if m.tuneErr != nil {
		s.WriteString(StatusFailed.Render(m.tuneErr.Error()) + "\n")
	}
	s.WriteString(KeyHint.Render("\n─────────────────────\nSP:Pause R:Reset Q:Quit\n+/-:Speed Tab/↑↓:Tune"))

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
}

// DrawDive clears c and draws the egg with its tip at depth y. The
// waterline sits 40% down the canvas and the egg is scaled so that its tip
// can sink two heights below it.
func DrawDive(c *Canvas, s physics.Shape, y float64) {
	c.Clear()
	dotsW, dotsH := c.Width*2, c.Height*4
	water := dotsH * 2 / 5
	c.DrawHLine(water)
	if !(s.Height > 0) {
		return
	}

	scale := float64(dotsH-water) / (2 * s.Height)
	if s.Width > 0 {
		scale = math.Min(scale, 0.9*float64(dotsW)/s.Width)
	}

	c.DrawEgg(s, water+int(math.Round(y*scale)), scale)
}
