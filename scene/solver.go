package scene

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/olivierh59500/verlet-sandbox/verlet"
)

// NewSolver builds an empty solver for conf. conf should be validated.
func (conf *Config) NewSolver() *verlet.Solver {
	sim := conf.Simulation
	return verlet.NewSolver(verlet.Options{
		Width:   sim.Width,
		Height:  sim.Height,
		Gravity: r2.Vec{X: sim.GravityX, Y: sim.GravityY},
		Regions: conf.Region.Constraints(),
	})
}

// Constraints returns the container constraint, if any.
func (region RegionConfig) Constraints() []verlet.Constraint {
	center := r2.Vec{X: region.CenterX, Y: region.CenterY}
	switch region.Shape {
	case "rect":
		return []verlet.Constraint{verlet.RectRegion{
			Center:      center,
			HalfExtents: r2.Vec{X: region.Width / 2, Y: region.Height / 2},
		}}
	case "circle":
		return []verlet.Constraint{verlet.CircleRegion{Center: center, Radius: region.Radius}}
	}
	return nil
}

// PointerAt converts host input into the solver's pointer constraint.
func (conf *Config) PointerAt(active bool, x, y float64) verlet.Pointer {
	return verlet.Pointer{Active: active, Pos: r2.Vec{X: x, Y: y}, Radius: conf.Pointer.Radius}
}
