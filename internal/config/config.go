package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/eggdive/internal/dive"
	"github.com/san-kum/eggdive/internal/dynamo"
	"github.com/san-kum/eggdive/internal/physics"
)

const (
	DefaultHeight         = 0.05
	DefaultWidth          = 0.05
	DefaultGrooveCount    = 1
	DefaultEggDensity     = 300.0
	DefaultDrag           = 0.5
	DefaultFluidDensity   = 1000.0
	DefaultSurfaceTension = 0.0728
	DefaultDt             = 0.001
	DefaultTotalTime      = 2.2
	DefaultMaxIter        = 100000
	DefaultTolerance      = 1e-8
	DefaultResultsFile    = "outs.csv"
)

// DefaultContactAngle is τ/20.
var DefaultContactAngle = dynamo.Tau / 20

type Config struct {
	Integrator string          `yaml:"integrator"`
	Shape      ShapeConfig     `yaml:"shape"`
	Fluid      FluidConfig     `yaml:"fluid"`
	Time       TimeConfig      `yaml:"time"`
	Optimizer  OptimizerConfig `yaml:"optimizer"`
}

type ShapeConfig struct {
	Height      float64 `yaml:"height"`
	Width       float64 `yaml:"width"`
	GrooveAngle float64 `yaml:"groove_angle"`
	GrooveCount float64 `yaml:"groove_count"`
	EggDensity  float64 `yaml:"egg_density"`
	GrooveDepth float64 `yaml:"groove_depth"`
}

type FluidConfig struct {
	Drag           float64 `yaml:"drag"`
	Density        float64 `yaml:"density"`
	SurfaceTension float64 `yaml:"surface_tension"`
	ContactAngle   float64 `yaml:"contact_angle"`
}

type TimeConfig struct {
	Dt    float64 `yaml:"dt"`
	Total float64 `yaml:"total"`
}

type OptimizerConfig struct {
	MaxIter     int     `yaml:"max_iter"`
	Tolerance   float64 `yaml:"tolerance"`
	Parallel    int     `yaml:"parallel"`
	ResultsFile string  `yaml:"results_file"`
}

func DefaultConfig() *Config {
	return &Config{
		Integrator: "leapfrog",
		Shape: ShapeConfig{
			Height:      DefaultHeight,
			Width:       DefaultWidth,
			GrooveCount: DefaultGrooveCount,
			EggDensity:  DefaultEggDensity,
		},
		Fluid: FluidConfig{
			Drag:           DefaultDrag,
			Density:        DefaultFluidDensity,
			SurfaceTension: DefaultSurfaceTension,
			ContactAngle:   DefaultContactAngle,
		},
		Time: TimeConfig{
			Dt:    DefaultDt,
			Total: DefaultTotalTime,
		},
		Optimizer: OptimizerConfig{
			MaxIter:     DefaultMaxIter,
			Tolerance:   DefaultTolerance,
			Parallel:    4,
			ResultsFile: DefaultResultsFile,
		},
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads path on top of base. Keys missing from the file keep
// their base values. base is modified and returned.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, base); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return base, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Params() dive.Params {
	return dive.Params{
		Height:      c.Shape.Height,
		Width:       c.Shape.Width,
		GrooveAngle: c.Shape.GrooveAngle,
		GrooveCount: c.Shape.GrooveCount,
		EggDensity:  c.Shape.EggDensity,
		GrooveDepth: c.Shape.GrooveDepth,
	}
}

func (c *Config) Environment() dive.Environment {
	return dive.Environment{
		Fluid: physics.Fluid{
			Drag:           c.Fluid.Drag,
			Density:        c.Fluid.Density,
			SurfaceTension: c.Fluid.SurfaceTension,
			ContactAngle:   c.Fluid.ContactAngle,
		},
		Step: dynamo.StepConfig{Dt: c.Time.Dt, Total: c.Time.Total},
	}
}

// SetParams copies a parameter set back into the shape section.
func (c *Config) SetParams(p dive.Params) {
	c.Shape = ShapeConfig{
		Height:      p.Height,
		Width:       p.Width,
		GrooveAngle: p.GrooveAngle,
		GrooveCount: p.GrooveCount,
		EggDensity:  p.EggDensity,
		GrooveDepth: p.GrooveDepth,
	}
}
