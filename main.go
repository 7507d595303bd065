package main

import (
	"context"
	"flag"
	"log"
	"time"

	cfg "github.com/automoto/ledgeline/config"
	"github.com/automoto/ledgeline/launch"
	"github.com/automoto/ledgeline/scenes"
	"github.com/hajimehoshi/ebiten/v2"
)

type Game struct {
	scene scenes.Scene
}

// ChangeScene switches to a new scene
func (g *Game) ChangeScene(scene scenes.Scene) {
	g.scene = scene
}

func NewGame(newSession scenes.SessionFactory) *Game {
	g := &Game{}
	g.scene = scenes.NewPlatformerScene(g, newSession)
	return g
}

func (g *Game) Update() error {
	g.scene.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	return cfg.View.Width, cfg.View.Height
}

func main() {
	var flags launch.Flags
	flags.Register(flag.CommandLine)
	flag.Parse()

	done, err := flags.ApplyConfig()
	if err != nil {
		log.Fatalf("[main] config: %v", err)
	}
	if done {
		return
	}

	src, fetcher, err := flags.Source()
	if err != nil {
		log.Fatalf("[main] %v", err)
	}
	log.Printf("[main] source: %s", src.Kind)

	ebiten.SetWindowSize(cfg.View.Width, cfg.View.Height)
	ebiten.SetWindowTitle("ledgeline")
	ebiten.SetTPS(int(time.Second / cfg.Physics.TickInterval()))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeOnlyFullscreenEnabled)

	newSession := launch.Factory(context.Background(), src, fetcher, flags.Seed)
	if err := ebiten.RunGame(NewGame(newSession)); err != nil {
		log.Fatal(err)
	}
}
