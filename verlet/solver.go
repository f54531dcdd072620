package verlet

import (
	"fmt"
	"image/color"

	"gonum.org/v1/gonum/spatial/r2"
)

// Options configures a Solver.
type Options struct {
	// Width and Height are the simulation bounds. Particles that leave
	// [-r, Width+r] x [-r, Height+r] are removed.
	Width, Height float64
	Gravity       r2.Vec
	// Regions run after the pointer on every constraint pass.
	Regions []Constraint
}

// Stats are cumulative counters plus the fastest live particle.
type Stats struct {
	Particles int
	Added     uint64
	Culled    uint64
	Ticks     uint64
	// MaxSpeed is in units per second over the last substep.
	MaxSpeed float64
}

// Solver owns the particle collection and steps it. It is not safe for
// concurrent use; between Update calls its state is stable.
type Solver struct {
	opts Options

	particles []Particle
	nextID    ID
	cellSize  float64

	pointer Pointer

	grid      *Grid
	positions []r2.Vec
	neighbors []int

	added, culled, ticks uint64
	lastSub              float64
}

func NewSolver(opts Options) *Solver {
	return &Solver{
		opts: opts,
		grid: NewGrid(opts.Width, opts.Height),
	}
}

// Register stores p and grows the cell size to fit it. The cell size never
// shrinks, even after the largest particle is removed.
func (s *Solver) Register(p Particle) ID {
	s.nextID++
	p.id = s.nextID
	if d := 2 * p.Radius; d > s.cellSize {
		s.cellSize = d
	}
	s.particles = append(s.particles, p)
	s.added++
	return p.id
}

// AddParticle builds a particle, queues impulse as acceleration for the next
// step and registers it.
func (s *Solver) AddParticle(pos r2.Vec, radius, mass float64, c color.RGBA, impulse r2.Vec) (ID, error) {
	p, err := NewParticle(pos, radius, mass, c)
	if err != nil {
		return 0, err
	}
	if !finite(impulse) {
		return 0, fmt.Errorf("%w: got (%g, %g)", ErrInvalidImpulse, impulse.X, impulse.Y)
	}
	p.Accelerate(impulse)
	return s.Register(p), nil
}

// SetPointer sets the pointer state used by the following Update calls.
func (s *Solver) SetPointer(p Pointer) { s.pointer = p }

func (s *Solver) Len() int { return len(s.particles) }

func (s *Solver) CellSize() float64 { return s.cellSize }

func (s *Solver) Bounds() (width, height float64) { return s.opts.Width, s.opts.Height }

func (s *Solver) Gravity() r2.Vec { return s.opts.Gravity }

func (s *Solver) Stats() Stats {
	return Stats{
		Particles: len(s.particles),
		Added:     s.added,
		Culled:    s.culled,
		Ticks:     s.ticks,
		MaxSpeed:  s.MaxSpeed(),
	}
}

// MaxSpeed returns the largest implicit velocity among live particles,
// scaled by the last substep length. It is zero before the first step.
func (s *Solver) MaxSpeed() float64 {
	if s.lastSub <= 0 {
		return 0
	}
	maxStep := 0.0
	for i := range s.particles {
		maxStep = max(maxStep, r2.Norm(s.particles[i].Velocity()))
	}
	return maxStep / s.lastSub
}

// Reset removes every particle. Counters and cell size are kept.
func (s *Solver) Reset() {
	s.particles = s.particles[:0]
}

// Update advances the simulation by dt split into substeps. Each substep
// applies gravity, integrates, culls escaped particles, rebuilds the grid,
// then runs iterations rounds of collisions followed by constraints.
func (s *Solver) Update(dt float64, substeps, iterations int) {
	s.ticks++
	if len(s.particles) == 0 || substeps < 1 {
		return
	}
	if iterations < 1 {
		iterations = 1
	}
	sub := dt / float64(substeps)
	s.lastSub = sub
	for step := 0; step < substeps; step++ {
		s.applyGravity()
		s.updatePositions(sub)
		for it := 0; it < iterations; it++ {
			s.solveCollisions()
			s.applyConstraints()
		}
	}
}

func (s *Solver) applyGravity() {
	for i := range s.particles {
		s.particles[i].Accelerate(s.opts.Gravity)
	}
}

// updatePositions integrates, compacts out-of-bounds particles away keeping
// order, and rebuilds the grid on the surviving positions.
func (s *Solver) updatePositions(dt float64) {
	live := s.particles[:0]
	for i := range s.particles {
		p := s.particles[i]
		p.Integrate(dt)
		if s.outOfBounds(&p) {
			s.culled++
			continue
		}
		live = append(live, p)
	}
	clear(s.particles[len(live):])
	s.particles = live

	if len(s.particles) == 0 {
		return
	}
	s.positions = s.positions[:0]
	for i := range s.particles {
		s.positions = append(s.positions, s.particles[i].Pos)
	}
	s.grid.Rebuild(s.positions, s.cellSize)
}

func (s *Solver) outOfBounds(p *Particle) bool {
	r := p.Radius
	return p.Pos.X < -r || p.Pos.X > s.opts.Width+r ||
		p.Pos.Y < -r || p.Pos.Y > s.opts.Height+r
}

func (s *Solver) solveCollisions() {
	if len(s.particles) < 2 {
		return
	}
	for i := range s.particles {
		s.neighbors = s.grid.Neighbors(s.neighbors[:0], i)
		for _, j := range s.neighbors {
			if j == i {
				continue
			}
			CollidePair(&s.particles[i], &s.particles[j])
		}
	}
}

func (s *Solver) applyConstraints() {
	s.pointer.Apply(s.particles)
	for _, c := range s.opts.Regions {
		c.Apply(s.particles)
	}
}
