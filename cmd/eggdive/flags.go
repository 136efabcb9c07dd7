package main

import (
	"fmt"
	"os"

	"github.com/san-kum/eggdive/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// design holds the flag values shared by every command that simulates a
// single egg.
type design struct {
	configFile string
	preset     string
	integrator string

	height, width, grooveAngle, grooveCount, grooveDepth, eggDensity float64
	drag, fluidDensity, surfaceTension, contactAngle                  float64
	dt, duration                                                      float64
}

func addDesignFlags(fs *pflag.FlagSet, d *design) {
	def := config.DefaultConfig()

	fs.StringVar(&d.configFile, "config", "", "config file path (yaml)")
	fs.StringVar(&d.preset, "preset", "", "use preset configuration")
	fs.StringVar(&d.integrator, "integrator", def.Integrator, "integrator (leapfrog, verlet)")

	fs.Float64Var(&d.height, "height", def.Shape.Height, "egg height (m)")
	fs.Float64Var(&d.width, "width", def.Shape.Width, "egg width (m)")
	fs.Float64Var(&d.grooveAngle, "groove-angle", def.Shape.GrooveAngle, "groove angle (rad)")
	fs.Float64Var(&d.grooveCount, "grooves", def.Shape.GrooveCount, "number of grooves")
	fs.Float64Var(&d.grooveDepth, "groove-depth", def.Shape.GrooveDepth, "groove depth (m)")
	fs.Float64Var(&d.eggDensity, "egg-density", def.Shape.EggDensity, "egg density (kg/m³)")

	fs.Float64Var(&d.drag, "drag", def.Fluid.Drag, "drag coefficient")
	fs.Float64Var(&d.fluidDensity, "fluid-density", def.Fluid.Density, "fluid density (kg/m³)")
	fs.Float64Var(&d.surfaceTension, "surface-tension", def.Fluid.SurfaceTension, "surface tension (N/m)")
	fs.Float64Var(&d.contactAngle, "contact-angle", def.Fluid.ContactAngle, "contact angle (rad)")

	fs.Float64Var(&d.dt, "dt", def.Time.Dt, "timestep")
	fs.Float64Var(&d.duration, "time", def.Time.Total, "duration")
}

// resolve builds the effective configuration: defaults, then the preset,
// then the config file, then any flag set explicitly.
func (d *design) resolve(fs *pflag.FlagSet) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if d.preset != "" {
		cfg = config.GetPreset(d.preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", d.preset, config.ListPresets())
		}
	}

	if d.configFile != "" {
		var err error
		cfg, err = config.LoadOver(d.configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	override := func(name string, dst *float64, v float64) {
		if fs.Changed(name) {
			*dst = v
		}
	}
	if fs.Changed("integrator") {
		cfg.Integrator = d.integrator
	}
	override("height", &cfg.Shape.Height, d.height)
	override("width", &cfg.Shape.Width, d.width)
	override("groove-angle", &cfg.Shape.GrooveAngle, d.grooveAngle)
	override("grooves", &cfg.Shape.GrooveCount, d.grooveCount)
	override("groove-depth", &cfg.Shape.GrooveDepth, d.grooveDepth)
	override("egg-density", &cfg.Shape.EggDensity, d.eggDensity)
	override("drag", &cfg.Fluid.Drag, d.drag)
	override("fluid-density", &cfg.Fluid.Density, d.fluidDensity)
	override("surface-tension", &cfg.Fluid.SurfaceTension, d.surfaceTension)
	override("contact-angle", &cfg.Fluid.ContactAngle, d.contactAngle)
	override("dt", &cfg.Time.Dt, d.dt)
	override("time", &cfg.Time.Total, d.duration)

	return cfg, nil
}

// name labels a run after its preset, or "custom".
func (d *design) name() string {
	if d.preset != "" {
		return d.preset
	}
	return "custom"
}

func newLogger(level string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(lvl)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return l, nil
}

func designCommand(use, short string, args cobra.PositionalArgs, run func(cmd *cobra.Command, cfg *config.Config, d *design, args []string) error) *cobra.Command {
	d := &design{}
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := d.resolve(cmd.Flags())
			if err != nil {
				return err
			}
			return run(cmd, cfg, d, args)
		},
	}
	addDesignFlags(cmd.Flags(), d)
	return cmd
}
