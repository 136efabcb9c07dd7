package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, args ...string) (*pflag.FlagSet, *design) {
	t.Helper()
	d := &design{}
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	addDesignFlags(fs, d)
	require.NoError(t, fs.Parse(args))
	return fs, d
}

func TestResolveDefaults(t *testing.T) {
	fs, d := parse(t)
	cfg, err := d.resolve(fs)
	require.NoError(t, err)
	assert.Equal(t, "leapfrog", cfg.Integrator)
	assert.Equal(t, 0.05, cfg.Shape.Height)
	assert.Equal(t, "custom", d.name())
}

func TestResolvePrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("shape:\n  width: 0.07\n  egg_density: 500\ntime:\n  total: 1\n"), 0644))

	fs, d := parse(t, "--preset", "heavy", "--config", path, "--egg-density", "600", "--integrator", "verlet")
	cfg, err := d.resolve(fs)
	require.NoError(t, err)

	assert.Equal(t, 0.1, cfg.Shape.Height, "from preset")
	assert.Equal(t, 0.07, cfg.Shape.Width, "file overrides preset")
	assert.Equal(t, 1.0, cfg.Time.Total, "file overrides preset")
	assert.Equal(t, 600.0, cfg.Shape.EggDensity, "flag overrides file")
	assert.Equal(t, "verlet", cfg.Integrator)
	assert.Equal(t, "heavy", d.name())
}

func TestResolveUnknownPreset(t *testing.T) {
	fs, d := parse(t, "--preset", "nope")
	_, err := d.resolve(fs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "smooth")
}

func TestResolveMissingConfig(t *testing.T) {
	fs, d := parse(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := d.resolve(fs)
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	l, err := newLogger("debug")
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())

	_, err = newLogger("loud")
	assert.Error(t, err)
}
