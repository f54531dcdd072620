// Package verlet is a 2D position-based particle solver: Verlet integration,
// a uniform grid broad phase and iterative constraint resolution.
package verlet

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

var (
	ErrInvalidRadius   = errors.New("verlet: radius must be positive and finite")
	ErrInvalidMass     = errors.New("verlet: mass must be positive and finite")
	ErrInvalidPosition = errors.New("verlet: position must be finite")
	ErrInvalidImpulse  = errors.New("verlet: impulse must be finite")
)

// ID identifies a particle for as long as it lives in a Solver.
// IDs are never reused.
type ID uint64

// Particle is a circular body. Velocity is implicit: Pos - Prev.
type Particle struct {
	Pos  r2.Vec
	Prev r2.Vec
	acc  r2.Vec

	Radius float64
	Mass   float64
	Color  color.RGBA

	id ID
}

// NewParticle returns a particle at rest at pos.
func NewParticle(pos r2.Vec, radius, mass float64, c color.RGBA) (Particle, error) {
	if !finite(pos) {
		return Particle{}, fmt.Errorf("%w: got (%g, %g)", ErrInvalidPosition, pos.X, pos.Y)
	}
	if !(radius > 0) || math.IsInf(radius, 1) {
		return Particle{}, fmt.Errorf("%w: got %g", ErrInvalidRadius, radius)
	}
	if !(mass > 0) || math.IsInf(mass, 1) {
		return Particle{}, fmt.Errorf("%w: got %g", ErrInvalidMass, mass)
	}
	return Particle{Pos: pos, Prev: pos, Radius: radius, Mass: mass, Color: c}, nil
}

func finite(v r2.Vec) bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// ID returns the handle assigned at registration, zero before that.
func (p *Particle) ID() ID { return p.id }

// Accelerate adds a to the acceleration applied on the next Integrate.
func (p *Particle) Accelerate(a r2.Vec) {
	p.acc = r2.Add(p.acc, a)
}

// Acceleration returns the pending acceleration.
func (p *Particle) Acceleration() r2.Vec { return p.acc }

// Integrate advances the particle by one Störmer-Verlet step of length dt
// and clears the pending acceleration.
func (p *Particle) Integrate(dt float64) {
	vel := r2.Sub(p.Pos, p.Prev)
	p.Prev = p.Pos
	p.Pos = r2.Add(r2.Add(p.Pos, vel), r2.Scale(dt*dt, p.acc))
	p.acc = r2.Vec{}
}

// Velocity is the displacement over the last step.
func (p *Particle) Velocity() r2.Vec { return r2.Sub(p.Pos, p.Prev) }

// SetVelocity rewrites Prev so the next step moves the particle by v.
func (p *Particle) SetVelocity(v r2.Vec) { p.Prev = r2.Sub(p.Pos, v) }
