package main

import (
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/olivierh59500/verlet-sandbox/scene"
)

func main() {
	configPath := flag.String("config", "", "path to a .toml or .ini scene file")
	headless := flag.Bool("headless", false, "run the scene without a window and exit")
	flag.Parse()

	conf := scene.Default()
	if *configPath != "" {
		var err error
		if conf, err = scene.Load(*configPath); err != nil {
			log.Fatal(err)
		}
	}

	if *headless {
		if _, err := scene.RunHeadless(conf, log.New(os.Stderr, "verlet: ", log.LstdFlags)); err != nil {
			log.Fatal(err)
		}
		return
	}

	sim := NewSimulation(conf)

	// Set up Ebitengine game
	ebiten.SetWindowSize(int(conf.Simulation.Width), int(conf.Simulation.Height))
	ebiten.SetWindowTitle("Verlet Sandbox")
	ebiten.SetTPS(60)

	if err := ebiten.RunGame(sim); err != nil {
		log.Fatal(err)
	}
}
