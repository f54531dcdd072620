// Package scene wires configuration, spawning and headless runs around the
// verlet solver.
package scene

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/gcfg.v1"
)

// Config holds every tunable of a run. Both file formats use the same
// section and key names.
type Config struct {
	Simulation SimulationConfig
	Region     RegionConfig
	Pointer    PointerConfig
	Spawn      SpawnConfig
	Headless   HeadlessConfig
}

type SimulationConfig struct {
	// Width and Height are the bounds particles are culled against.
	Width, Height float64

	GravityX, GravityY float64

	Substeps   int
	Iterations int

	// TimeScale multiplies wall-clock frame time. MaxFrameTime caps the
	// scaled value (seconds) so a stalled frame cannot explode the step.
	TimeScale    float64
	MaxFrameTime float64
}

// RegionConfig describes the container. Shape is "rect", "circle" or
// "none". Width and Height are full extents; Radius is used by "circle".
type RegionConfig struct {
	Shape            string
	CenterX, CenterY float64
	Width, Height    float64
	Radius           float64
}

type PointerConfig struct {
	Radius float64
}

type SpawnConfig struct {
	Interval float64 // seconds between batches
	Batch    int     // particles per batch
	X, Y     float64 // position of the first particle in a batch
	Spacing  float64 // vertical distance between batch members

	Radius, Mass       float64
	ImpulseX, ImpulseY float64

	Max        int     // 0 means unlimited
	Seed       int64   // colour noise seed
	ColorScale float64 // noise frequency per spawned particle
}

type HeadlessConfig struct {
	Ticks    int
	Dt       float64
	LogEvery int
}

// Default returns the parameters of the reference scene: an 800x800 world
// with a 700x700 box, three particles fired in every 10ms.
func Default() *Config {
	return &Config{
		Simulation: SimulationConfig{
			Width:        800,
			Height:       800,
			GravityX:     0,
			GravityY:     1000,
			Substeps:     8,
			Iterations:   1,
			TimeScale:    1,
			MaxFrameTime: 0.1,
		},
		Region: RegionConfig{
			Shape:   "rect",
			CenterX: 400,
			CenterY: 400,
			Width:   700,
			Height:  700,
			Radius:  400,
		},
		Pointer: PointerConfig{Radius: 100},
		Spawn: SpawnConfig{
			Interval:   0.01,
			Batch:      3,
			X:          100,
			Y:          100,
			Spacing:    50,
			Radius:     4,
			Mass:       1,
			ImpulseX:   300000,
			ImpulseY:   0,
			Seed:       1,
			ColorScale: 0.05,
		},
		Headless: HeadlessConfig{
			Ticks:    600,
			Dt:       0.016,
			LogEvery: 60,
		},
	}
}

// Load reads a config file over the defaults. The format is picked from the
// extension: .toml, or .ini/.gcfg/.cfg for git-config style files.
func Load(path string) (*Config, error) {
	conf := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		md, err := toml.DecodeFile(path, conf)
		if err != nil {
			return nil, err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return nil, fmt.Errorf("%s: unknown keys %s", path, strings.Join(keys, ", "))
		}
	case ".ini", ".gcfg", ".cfg":
		if err := gcfg.ReadFileInto(conf, path); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%s: unsupported config extension %q", path, ext)
	}

	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return conf, nil
}

// Validate reports the first parameter that cannot produce a valid run.
func (conf *Config) Validate() error {
	if err := conf.checkFinite(); err != nil {
		return err
	}

	sim := &conf.Simulation
	if sim.Width <= 0 || sim.Height <= 0 {
		return fmt.Errorf("simulation bounds must be positive, got %gx%g", sim.Width, sim.Height)
	}
	if sim.Substeps < 1 {
		return fmt.Errorf("simulation needs at least one substep, got %d", sim.Substeps)
	}
	if sim.Iterations < 1 {
		return fmt.Errorf("simulation needs at least one iteration, got %d", sim.Iterations)
	}
	if sim.TimeScale <= 0 {
		return fmt.Errorf("time scale must be positive, got %g", sim.TimeScale)
	}
	if sim.MaxFrameTime < 0 {
		return fmt.Errorf("max frame time must not be negative, got %g", sim.MaxFrameTime)
	}

	if err := conf.Region.CheckInit(); err != nil {
		return err
	}

	if conf.Pointer.Radius < 0 {
		return fmt.Errorf("pointer radius must not be negative, got %g", conf.Pointer.Radius)
	}

	sp := &conf.Spawn
	if sp.Interval <= 0 {
		return fmt.Errorf("spawn interval must be positive, got %g", sp.Interval)
	} else if sp.Batch < 0 {
		return fmt.Errorf("spawn batch must not be negative, got %d", sp.Batch)
	} else if sp.Radius <= 0 {
		return fmt.Errorf("spawn radius must be positive, got %g", sp.Radius)
	} else if sp.Mass <= 0 {
		return fmt.Errorf("spawn mass must be positive, got %g", sp.Mass)
	} else if sp.Max < 0 {
		return fmt.Errorf("spawn max must not be negative, got %d", sp.Max)
	}

	hl := &conf.Headless
	if hl.Ticks < 0 || hl.LogEvery < 0 {
		return fmt.Errorf("headless ticks and log interval must not be negative")
	}
	if hl.Dt <= 0 {
		return fmt.Errorf("headless dt must be positive, got %g", hl.Dt)
	}
	return nil
}

// checkFinite rejects NaN and infinities in every float parameter. TOML
// accepts nan and inf literals, and a non-finite position would never be
// culled by the solver.
func (conf *Config) checkFinite() error {
	sim, region, sp := &conf.Simulation, &conf.Region, &conf.Spawn
	for _, param := range []struct {
		name string
		v    float64
	}{
		{"simulation.width", sim.Width},
		{"simulation.height", sim.Height},
		{"simulation.gravityX", sim.GravityX},
		{"simulation.gravityY", sim.GravityY},
		{"simulation.timeScale", sim.TimeScale},
		{"simulation.maxFrameTime", sim.MaxFrameTime},
		{"region.centerX", region.CenterX},
		{"region.centerY", region.CenterY},
		{"region.width", region.Width},
		{"region.height", region.Height},
		{"region.radius", region.Radius},
		{"pointer.radius", conf.Pointer.Radius},
		{"spawn.interval", sp.Interval},
		{"spawn.x", sp.X},
		{"spawn.y", sp.Y},
		{"spawn.spacing", sp.Spacing},
		{"spawn.radius", sp.Radius},
		{"spawn.mass", sp.Mass},
		{"spawn.impulseX", sp.ImpulseX},
		{"spawn.impulseY", sp.ImpulseY},
		{"spawn.colorScale", sp.ColorScale},
		{"headless.dt", conf.Headless.Dt},
	} {
		if math.IsNaN(param.v) || math.IsInf(param.v, 0) {
			return fmt.Errorf("%s must be finite, got %g", param.name, param.v)
		}
	}
	return nil
}

// CheckInit normalises Shape and checks the extents it uses.
func (region *RegionConfig) CheckInit() error {
	region.Shape = strings.ToLower(strings.TrimSpace(region.Shape))
	switch region.Shape {
	case "rect":
		if region.Width <= 0 || region.Height <= 0 {
			return fmt.Errorf(
				"rect region needs a positive size, got %gx%g",
				region.Width, region.Height,
			)
		}
	case "circle":
		if region.Radius <= 0 {
			return fmt.Errorf("circle region needs a positive radius, got %g", region.Radius)
		}
	case "", "none":
		region.Shape = "none"
	default:
		return fmt.Errorf("unknown region shape %q", region.Shape)
	}
	return nil
}
