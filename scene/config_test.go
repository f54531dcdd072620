package scene

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olivierh59500/verlet-sandbox/verlet"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	conf := Default()
	require.NoError(t, conf.Validate())
	assert.Equal(t, "rect", conf.Region.Shape)

	// Default hands out independent copies.
	conf.Simulation.Width = 1
	assert.Equal(t, 800.0, Default().Simulation.Width)
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "scene.toml", `
[simulation]
width = 1024
substeps = 4
gravityY = 500.0

[region]
shape = "circle"
radius = 300.0

[spawn]
batch = 5
`)
	conf, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 1024.0, conf.Simulation.Width)
	assert.Equal(t, 800.0, conf.Simulation.Height, "missing keys keep defaults")
	assert.Equal(t, 4, conf.Simulation.Substeps)
	assert.Equal(t, 500.0, conf.Simulation.GravityY)
	assert.Equal(t, "circle", conf.Region.Shape)
	assert.Equal(t, 300.0, conf.Region.Radius)
	assert.Equal(t, 5, conf.Spawn.Batch)
}

func TestLoadTOMLUnknownKey(t *testing.T) {
	path := writeFile(t, "scene.toml", `
[simulation]
widht = 1024
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "widht")
}

func TestLoadGcfg(t *testing.T) {
	path := writeFile(t, "scene.ini", `
[simulation]
width = 640
height = 480
iterations = 3

[region]
shape = none

[pointer]
radius = 25
`)
	conf, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 640.0, conf.Simulation.Width)
	assert.Equal(t, 480.0, conf.Simulation.Height)
	assert.Equal(t, 3, conf.Simulation.Iterations)
	assert.Equal(t, "none", conf.Region.Shape)
	assert.Equal(t, 25.0, conf.Pointer.Radius)
	assert.Equal(t, 8, conf.Simulation.Substeps)
}

func TestLoadRejects(t *testing.T) {
	table := []struct {
		name, body string
	}{
		{"scene.yaml", "simulation: {}"},
		{"bad.toml", "[simulation]\nsubsteps = 0\n"},
		{"bad.ini", "[region]\nshape = hexagon\n"},
		{"bad.cfg", "[spawn]\nradius = -1\n"},
		{"broken.toml", "[simulation\n"},
		{"nan.toml", "[spawn]\nx = nan\n"},
		{"inf.toml", "[simulation]\ngravityY = inf\n"},
	}

	for i, test := range table {
		_, err := Load(writeFile(t, test.name, test.body))
		assert.Error(t, err, "%d) %s", i+1, test.name)
	}

	_, err := Load(writeFile(t, "nan.toml", "[spawn]\nx = nan\n"))
	assert.ErrorContains(t, err, "spawn.x must be finite")

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	table := []struct {
		desc   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Simulation.Width = 0 }},
		{"no iterations", func(c *Config) { c.Simulation.Iterations = 0 }},
		{"zero time scale", func(c *Config) { c.Simulation.TimeScale = 0 }},
		{"flat rect", func(c *Config) { c.Region.Height = 0 }},
		{"circle without radius", func(c *Config) { c.Region.Shape = "circle"; c.Region.Radius = 0 }},
		{"negative pointer", func(c *Config) { c.Pointer.Radius = -1 }},
		{"zero interval", func(c *Config) { c.Spawn.Interval = 0 }},
		{"zero mass", func(c *Config) { c.Spawn.Mass = 0 }},
		{"negative batch", func(c *Config) { c.Spawn.Batch = -3 }},
		{"zero headless dt", func(c *Config) { c.Headless.Dt = 0 }},
		{"nan gravity", func(c *Config) { c.Simulation.GravityY = math.NaN() }},
		{"infinite impulse", func(c *Config) { c.Spawn.ImpulseX = math.Inf(1) }},
		{"nan spawn y", func(c *Config) { c.Spawn.Y = math.NaN() }},
		{"nan region center", func(c *Config) { c.Region.CenterX = math.NaN() }},
		{"infinite time scale", func(c *Config) { c.Simulation.TimeScale = math.Inf(1) }},
	}

	for _, test := range table {
		conf := Default()
		test.mutate(conf)
		assert.Error(t, conf.Validate(), test.desc)
	}

	conf := Default()
	conf.Region.Shape = " Circle "
	require.NoError(t, conf.Validate())
	assert.Equal(t, "circle", conf.Region.Shape)
}

func TestRegionConstraints(t *testing.T) {
	region := Default().Region
	cs := region.Constraints()
	require.Len(t, cs, 1)
	rect, ok := cs[0].(verlet.RectRegion)
	require.True(t, ok)
	assert.Equal(t, 350.0, rect.HalfExtents.X)

	region.Shape = "circle"
	cs = region.Constraints()
	require.Len(t, cs, 1)
	assert.IsType(t, verlet.CircleRegion{}, cs[0])

	region.Shape = "none"
	assert.Empty(t, region.Constraints())
}

func TestNewSolverFromConfig(t *testing.T) {
	conf := Default()
	s := conf.NewSolver()
	w, h := s.Bounds()
	assert.Equal(t, 800.0, w)
	assert.Equal(t, 800.0, h)
	assert.Equal(t, 1000.0, s.Gravity().Y)

	ptr := conf.PointerAt(true, 10, 20)
	assert.True(t, ptr.Active)
	assert.Equal(t, 100.0, ptr.Radius)
	assert.Equal(t, 20.0, ptr.Pos.Y)
}

func TestBundledScenes(t *testing.T) {
	circle, err := Load("../scenes/circle.toml")
	require.NoError(t, err)
	assert.Equal(t, "circle", circle.Region.Shape)
	assert.Equal(t, 4000, circle.Spawn.Max)

	heavy, err := Load("../scenes/heavy.ini")
	require.NoError(t, err)
	assert.Equal(t, int64(42), heavy.Spawn.Seed)
	assert.Equal(t, 1200, heavy.Headless.Ticks)
}
