package scene

import (
	"image/color"

	"github.com/aquilax/go-perlin"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/olivierh59500/verlet-sandbox/verlet"
)

// Adder receives spawned particles. *verlet.Solver implements it.
type Adder interface {
	AddParticle(pos r2.Vec, radius, mass float64, c color.RGBA, impulse r2.Vec) (verlet.ID, error)
}

type lener interface {
	Len() int
}

// Spawner fires a batch of particles every Interval seconds of simulated
// time. Colours follow 1D Perlin noise over the spawn count.
type Spawner struct {
	conf    SpawnConfig
	noise   *perlin.Perlin
	acc     float64
	spawned int
}

func NewSpawner(conf SpawnConfig) *Spawner {
	return &Spawner{
		conf:  conf,
		noise: perlin.NewPerlin(2, 2, 3, conf.Seed),
	}
}

// Spawned returns the number of particles added so far.
func (sp *Spawner) Spawned() int { return sp.spawned }

// Reset zeroes the accumulator. The colour sequence continues.
func (sp *Spawner) Reset() { sp.acc = 0 }

// Tick accumulates dt and, once Interval is reached, adds one batch to dst
// and restarts the accumulator from zero. If dst has a Len method, Max caps
// the live particle count. It returns how many particles were added.
func (sp *Spawner) Tick(dt float64, dst Adder) (int, error) {
	sp.acc += dt
	if sp.acc < sp.conf.Interval {
		return 0, nil
	}
	sp.acc = 0

	n := sp.conf.Batch
	if l, ok := dst.(lener); ok && sp.conf.Max > 0 {
		n = min(n, sp.conf.Max-l.Len())
	}

	impulse := r2.Vec{X: sp.conf.ImpulseX, Y: sp.conf.ImpulseY}
	added := 0
	for i := 0; i < n; i++ {
		pos := r2.Vec{X: sp.conf.X, Y: sp.conf.Y + float64(i)*sp.conf.Spacing}
		if _, err := dst.AddParticle(pos, sp.conf.Radius, sp.conf.Mass, sp.nextColor(), impulse); err != nil {
			return added, err
		}
		added++
	}
	return added, nil
}

func (sp *Spawner) nextColor() color.RGBA {
	// Gradient noise is zero on integer lattice points; sample between them.
	n := sp.noise.Noise1D(float64(sp.spawned)*sp.conf.ColorScale + 0.5)
	sp.spawned++
	return hue((n + 1) * 360)
}
