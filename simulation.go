package main

import (
	"fmt"
	"image/color"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/olivierh59500/verlet-sandbox/scene"
	"github.com/olivierh59500/verlet-sandbox/verlet"
)

var (
	backgroundColor = color.RGBA{0, 0, 0, 255}
	regionColor     = color.RGBA{128, 128, 128, 255}
	pointerColor    = color.RGBA{255, 0, 0, 255}
)

// Simulation is the ebiten host around a solver: it drives ticks, samples
// the mouse and draws snapshots.
type Simulation struct {
	conf    *scene.Config
	solver  *verlet.Solver
	spawner *scene.Spawner

	Paused      bool
	Diagnostics bool

	lastTick time.Time
	frameDt  float64
	bodies   []verlet.Body
	pointer  verlet.Pointer
}

// NewSimulation creates a host for conf, which must be valid.
func NewSimulation(conf *scene.Config) *Simulation {
	return &Simulation{
		conf:        conf,
		solver:      conf.NewSolver(),
		spawner:     scene.NewSpawner(conf.Spawn),
		Diagnostics: true,
	}
}

// Update is called each tick by Ebitengine
func (s *Simulation) Update() error {
	now := time.Now()
	if s.lastTick.IsZero() {
		s.lastTick = now
	}
	dt := now.Sub(s.lastTick).Seconds() * s.conf.Simulation.TimeScale
	s.lastTick = now
	if limit := s.conf.Simulation.MaxFrameTime; limit > 0 && dt > limit {
		dt = limit
	}
	s.frameDt = dt

	s.handleInput()

	if s.Paused {
		return nil
	}

	if _, err := s.spawner.Tick(dt, s.solver); err != nil {
		return err
	}
	s.solver.SetPointer(s.pointer)
	s.solver.Update(dt, s.conf.Simulation.Substeps, s.conf.Simulation.Iterations)
	return nil
}

// handleInput processes keyboard and mouse input
func (s *Simulation) handleInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		s.Paused = !s.Paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		s.solver.Reset()
		s.spawner.Reset()
		log.Printf("reset after %d ticks", s.solver.Stats().Ticks)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		s.Diagnostics = !s.Diagnostics
	}

	mx, my := ebiten.CursorPosition()
	s.pointer = s.conf.PointerAt(ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft), float64(mx), float64(my))
}

// Draw is called each frame by Ebitengine
func (s *Simulation) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	s.drawRegion(screen)

	if s.pointer.Active {
		vector.StrokeCircle(screen, float32(s.pointer.Pos.X), float32(s.pointer.Pos.Y),
			float32(s.pointer.Radius), 2, pointerColor, true)
	}

	s.bodies = s.solver.Snapshot(s.bodies)
	for _, b := range s.bodies {
		vector.DrawFilledCircle(screen, float32(b.Pos.X), float32(b.Pos.Y), float32(b.Radius), b.Color, true)
	}

	if s.Diagnostics {
		fps := 0.0
		if s.frameDt > 0 {
			fps = 1 / s.frameDt
		}
		status := ""
		if s.Paused {
			status = "\nPAUSED"
		}
		ebitenutil.DebugPrint(screen, fmt.Sprintf("F.P.S.: %.2f\nD.T.: %.2fms\nParticles: %d\nMax speed: %.1f%s",
			fps, s.frameDt*1000, len(s.bodies), s.solver.MaxSpeed(), status))
	}
}

func (s *Simulation) drawRegion(screen *ebiten.Image) {
	r := s.conf.Region
	switch r.Shape {
	case "rect":
		vector.DrawFilledRect(screen, float32(r.CenterX-r.Width/2), float32(r.CenterY-r.Height/2),
			float32(r.Width), float32(r.Height), regionColor, false)
	case "circle":
		vector.DrawFilledCircle(screen, float32(r.CenterX), float32(r.CenterY), float32(r.Radius), regionColor, true)
	}
}

// Layout returns the screen size
func (s *Simulation) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := s.solver.Bounds()
	return int(w), int(h)
}
