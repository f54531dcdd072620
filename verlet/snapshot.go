package verlet

import (
	"cmp"
	"image/color"
	"slices"

	"gonum.org/v1/gonum/spatial/r2"
)

// Body is the read-only view of a particle handed to renderers.
type Body struct {
	ID     ID
	Pos    r2.Vec
	Radius float64
	Color  color.RGBA
}

// Snapshot appends every live particle to dst[:0] in insertion order and
// returns it. Reusing dst across frames avoids allocation.
func (s *Solver) Snapshot(dst []Body) []Body {
	dst = dst[:0]
	for i := range s.particles {
		p := &s.particles[i]
		dst = append(dst, Body{ID: p.id, Pos: p.Pos, Radius: p.Radius, Color: p.Color})
	}
	return dst
}

// Particle returns a copy of the particle with the given id. Particles stay
// sorted by id since ids grow and culling keeps order.
func (s *Solver) Particle(id ID) (Particle, bool) {
	i, ok := slices.BinarySearchFunc(s.particles, id, func(p Particle, id ID) int {
		return cmp.Compare(p.id, id)
	})
	if !ok {
		return Particle{}, false
	}
	return s.particles[i], true
}
