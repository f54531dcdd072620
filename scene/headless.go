package scene

import (
	"log"
	"time"

	"github.com/olivierh59500/verlet-sandbox/verlet"
)

// RunHeadless steps the scene for Headless.Ticks fixed ticks without a
// window, logging progress every Headless.LogEvery ticks.
func RunHeadless(conf *Config, logger *log.Logger) (verlet.Stats, error) {
	solver := conf.NewSolver()
	spawner := NewSpawner(conf.Spawn)
	hl := conf.Headless
	sim := conf.Simulation

	start := time.Now()
	for tick := 1; tick <= hl.Ticks; tick++ {
		if _, err := spawner.Tick(hl.Dt, solver); err != nil {
			return solver.Stats(), err
		}
		solver.Update(hl.Dt, sim.Substeps, sim.Iterations)

		if hl.LogEvery > 0 && tick%hl.LogEvery == 0 {
			st := solver.Stats()
			logger.Printf("tick %d: %d particles (%d added, %d culled), max speed %.1f",
				tick, st.Particles, st.Added, st.Culled, st.MaxSpeed)
		}
	}

	st := solver.Stats()
	elapsed := time.Since(start)
	var perTick time.Duration
	if hl.Ticks > 0 {
		perTick = elapsed / time.Duration(hl.Ticks)
	}
	logger.Printf("done: %d ticks in %s (%s/tick), %d particles", hl.Ticks, elapsed, perTick, st.Particles)
	return st, nil
}
