package verlet

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Constraint corrects particle positions in place.
type Constraint interface {
	Apply(ps []Particle)
}

// RectRegion keeps every circle inside an axis-aligned rectangle. Each axis
// is clamped independently.
type RectRegion struct {
	Center      r2.Vec
	HalfExtents r2.Vec
}

func (c RectRegion) Apply(ps []Particle) {
	for i := range ps {
		p := &ps[i]
		p.Pos.X = clampAxis(p.Pos.X, c.Center.X-c.HalfExtents.X+p.Radius, c.Center.X+c.HalfExtents.X-p.Radius)
		p.Pos.Y = clampAxis(p.Pos.Y, c.Center.Y-c.HalfExtents.Y+p.Radius, c.Center.Y+c.HalfExtents.Y-p.Radius)
	}
}

// clampAxis snaps v into [lo, hi], checking lo first like a chained if/else
// so an inverted interval resolves to lo.
func clampAxis(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	} else if v > hi {
		return hi
	}
	return v
}

// CircleRegion keeps every circle inside a circle.
type CircleRegion struct {
	Center r2.Vec
	Radius float64
}

func (c CircleRegion) Apply(ps []Particle) {
	for i := range ps {
		p := &ps[i]
		d := r2.Sub(p.Pos, c.Center)
		dist := separation(d)
		if dist > c.Radius-p.Radius {
			n := r2.Scale(1/dist, d)
			p.Pos = r2.Sub(p.Pos, r2.Scale(dist+p.Radius-c.Radius, n))
		}
	}
}

// Pointer pushes particles out of a disc around the cursor while Active.
// The pointer never moves, so each overlap is resolved fully in one pass.
type Pointer struct {
	Active bool
	Pos    r2.Vec
	Radius float64
}

func (c Pointer) Apply(ps []Particle) {
	if !c.Active {
		return
	}
	for i := range ps {
		p := &ps[i]
		threshold := p.Radius + c.Radius
		d := r2.Sub(p.Pos, c.Pos)
		dist := separation(d)
		if dist < threshold {
			n := r2.Scale(1/dist, d)
			p.Pos = r2.Add(p.Pos, r2.Scale(threshold-dist, n))
		}
	}
}

// CollidePair separates two overlapping circles. Each moves by the other's
// share of the total mass, so the heavier one moves less.
func CollidePair(a, b *Particle) {
	threshold := a.Radius + b.Radius
	d := r2.Sub(a.Pos, b.Pos)
	dist := separation(d)
	if dist >= threshold {
		return
	}
	n := r2.Scale(1/dist, d)
	overlap := threshold - dist
	total := a.Mass + b.Mass
	a.Pos = r2.Add(a.Pos, r2.Scale(overlap*(1-a.Mass/total), n))
	b.Pos = r2.Sub(b.Pos, r2.Scale(overlap*(1-b.Mass/total), n))
}

// separation is the length of d, or 1 when d is zero. Coincident centres
// therefore get a zero normal and are left where they are.
func separation(d r2.Vec) float64 {
	sq := r2.Norm2(d)
	if sq == 0 {
		return 1
	}
	return math.Sqrt(sq)
}
