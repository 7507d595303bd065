package scenes

import (
	"image/color"
	"log"
	"sync"

	cfg "github.com/automoto/ledgeline/config"
	"github.com/automoto/ledgeline/game"
	"github.com/automoto/ledgeline/render"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"golang.org/x/image/font/basicfont"
)

const layerDefault ecs.LayerID = 0

// SessionFactory builds a fresh play-through. Pool sources resample on
// every call.
type SessionFactory func() (*game.Session, error)

// PlatformerScene runs one session at the simulation tick rate.
type PlatformerScene struct {
	ecs          *ecs.ECS
	sceneChanger SceneChanger
	newSession   SessionFactory
	session      *game.Session
	camera       *render.Camera
	snap         game.Snapshot
	debug        bool
	done         bool
	err          error
	once         sync.Once
}

// NewPlatformerScene creates a platformer scene that starts a session on its first update.
func NewPlatformerScene(sc SceneChanger, newSession SessionFactory) *PlatformerScene {
	return &PlatformerScene{sceneChanger: sc, newSession: newSession, debug: cfg.View.Debug}
}

func (ps *PlatformerScene) Update() {
	ps.once.Do(ps.configure)
	ps.ecs.Update()
}

func (ps *PlatformerScene) Draw(screen *ebiten.Image) {
	screen.Fill(cfg.View.BackgroundColor)

	if ps.ecs == nil {
		return
	}
	ps.ecs.Draw(screen)
}

func (ps *PlatformerScene) configure() {
	ps.ecs = ecs.NewECS(donburi.NewWorld())
	ps.camera = render.NewCamera(float64(cfg.View.Width), float64(cfg.View.Height), cfg.View.TransitionSecs)

	ps.session, ps.err = ps.newSession()
	if ps.err != nil {
		log.Printf("[scene] start session: %v", ps.err)
		ps.ecs.AddSystem(ps.updateRetry)
		ps.ecs.AddRenderer(layerDefault, ps.drawError)
		return
	}
	ps.snap = ps.session.Snapshot()

	ps.ecs.AddSystem(ps.updateInput)
	ps.ecs.AddSystem(ps.updateSession)
	ps.ecs.AddSystem(ps.updateCamera)

	ps.ecs.AddRenderer(layerDefault, ps.drawSurfaces)
	ps.ecs.AddRenderer(layerDefault, ps.drawPlayer)
	ps.ecs.AddRenderer(layerDefault, ps.drawHUD)
}

// leave closes the session and hands over to next. Systems later in the
// same update see done and skip.
func (ps *PlatformerScene) leave(next Scene) {
	ps.session.Close()
	ps.done = true
	ps.sceneChanger.ChangeScene(next)
}

func (ps *PlatformerScene) updateInput(_ *ecs.ECS) {
	if ps.done {
		return
	}
	pollInput(ps.session.Input())
	if justPressed(ActionToggleDebug) {
		ps.debug = !ps.debug
	}
	if justPressed(ActionRestart) {
		ps.leave(NewPlatformerScene(ps.sceneChanger, ps.newSession))
	}
}

func (ps *PlatformerScene) updateSession(_ *ecs.ECS) {
	if ps.done {
		return
	}
	active := ps.session.Tick()
	ps.snap = ps.session.Snapshot()
	if !active {
		ps.leave(NewCompleteScene(ps.sceneChanger, ps.newSession, ps.snap))
	}
}

func (ps *PlatformerScene) updateRetry(_ *ecs.ECS) {
	gamepadIDs = ebiten.AppendGamepadIDs(gamepadIDs[:0])
	if !ps.done && justPressed(ActionRestart) {
		ps.done = true
		ps.sceneChanger.ChangeScene(NewPlatformerScene(ps.sceneChanger, ps.newSession))
	}
}

func (ps *PlatformerScene) updateCamera(_ *ecs.ECS) {
	ps.camera.Update(ps.snap, 1/float64(ebiten.TPS()))
}

func (ps *PlatformerScene) drawSurfaces(_ *ecs.ECS, screen *ebiten.Image) {
	for _, s := range ps.camera.Segments(ps.snap) {
		clr := cfg.View.SurfaceColor
		if s.Virtual {
			clr = cfg.View.VirtualColor
		}
		vector.StrokeLine(screen, float32(s.X0), float32(s.Y0), float32(s.X1), float32(s.Y1), 2, clr, true)
	}
}

func (ps *PlatformerScene) drawPlayer(_ *ecs.ECS, screen *ebiten.Image) {
	r := ps.camera.PlayerRect(ps.snap)
	vector.FillRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), cfg.View.PlayerColor, false)
}

func (ps *PlatformerScene) drawHUD(_ *ecs.ECS, screen *ebiten.Image) {
	drawLines(screen, []string{render.StatusLine(ps.snap)}, 8, 16, cfg.View.SurfaceColor)
	if ps.debug {
		drawLines(screen, render.DebugLines(ps.snap), 8, 36, cfg.View.DebugTextColor)
	}
}

func (ps *PlatformerScene) drawError(_ *ecs.ECS, screen *ebiten.Image) {
	drawLines(screen, []string{"could not start: " + ps.err.Error(), "press Enter to retry"}, 8, 16, cfg.View.DebugTextColor)
}

func drawLines(screen *ebiten.Image, lines []string, x, y int, clr color.Color) {
	face := basicfont.Face7x13
	for i, line := range lines {
		text.Draw(screen, line, face, x, y+i*(face.Height+4), clr)
	}
}
