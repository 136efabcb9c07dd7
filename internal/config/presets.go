package config

import (
	"sort"

	"github.com/san-kum/eggdive/internal/dynamo"
)

func preset(mutate func(c *Config)) *Config {
	c := DefaultConfig()
	mutate(c)
	return c
}

var Presets = map[string]*Config{
	// reference grooved design; its groove depth fails the bounds check
	"example": preset(func(c *Config) {
		c.Shape = ShapeConfig{Height: 0.05, Width: 0.05, GrooveAngle: dynamo.Tau / 8, GrooveCount: 8, EggDensity: 300, GrooveDepth: 0.001}
	}),
	"smooth": preset(func(c *Config) {
		c.Shape = ShapeConfig{Height: 0.05, Width: 0.05, GrooveCount: 1, EggDensity: 300}
	}),
	"fluted": preset(func(c *Config) {
		c.Shape = ShapeConfig{Height: 0.08, Width: 0.06, GrooveAngle: dynamo.Tau / 24, GrooveCount: 12, EggDensity: 400}
	}),
	"heavy": preset(func(c *Config) {
		c.Shape = ShapeConfig{Height: 0.1, Width: 0.06, GrooveCount: 1, EggDensity: 950}
		c.Time.Total = 4
	}),
	"long": preset(func(c *Config) {
		c.Shape = ShapeConfig{Height: 0.3, Width: 0.1, GrooveCount: 1, EggDensity: 200}
		c.Time = TimeConfig{Dt: 0.0005, Total: 5}
	}),
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
