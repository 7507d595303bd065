package scenes

import (
	"fmt"
	"sync"

	cfg "github.com/automoto/ledgeline/config"
	"github.com/automoto/ledgeline/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CompleteScene is shown once the last map of a sequence is cleared.
type CompleteScene struct {
	ecs          *ecs.ECS
	sceneChanger SceneChanger
	newSession   SessionFactory
	final        game.Snapshot
	done         bool
	once         sync.Once
}

// NewCompleteScene creates the completion screen for final.
func NewCompleteScene(sc SceneChanger, newSession SessionFactory, final game.Snapshot) *CompleteScene {
	return &CompleteScene{sceneChanger: sc, newSession: newSession, final: final}
}

func (cs *CompleteScene) Update() {
	cs.once.Do(cs.configure)
	cs.ecs.Update()
}

func (cs *CompleteScene) Draw(screen *ebiten.Image) {
	screen.Fill(cfg.View.BackgroundColor)

	if cs.ecs == nil {
		return
	}
	cs.ecs.Draw(screen)
}

func (cs *CompleteScene) configure() {
	cs.ecs = ecs.NewECS(donburi.NewWorld())
	cs.ecs.AddSystem(cs.updateMenu)
	cs.ecs.AddRenderer(layerDefault, cs.drawComplete)
}

func (cs *CompleteScene) updateMenu(_ *ecs.ECS) {
	gamepadIDs = ebiten.AppendGamepadIDs(gamepadIDs[:0])
	if !cs.done && justPressed(ActionRestart) {
		cs.done = true
		cs.sceneChanger.ChangeScene(NewPlatformerScene(cs.sceneChanger, cs.newSession))
	}
}

func (cs *CompleteScene) drawComplete(_ *ecs.ECS, screen *ebiten.Image) {
	width := float32(screen.Bounds().Dx())
	height := float32(screen.Bounds().Dy())

	vector.FillRect(screen, width/4, height/3, width/2, height/4, cfg.View.VirtualColor, false)

	lines := []string{
		"Complete",
		fmt.Sprintf("%d maps in %d ticks", cs.final.Count, cs.final.Tick),
		"press Enter to play again",
	}
	drawLines(screen, lines, int(width/4)+16, int(height/3)+24, cfg.View.SurfaceColor)
}
