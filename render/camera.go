// Package render holds frontend-agnostic view logic shared by the ebiten
// and terminal frontends. It only ever reads game snapshots.
package render

import (
	"math"

	"github.com/automoto/ledgeline/game"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	dmath "github.com/yohamta/donburi/features/math"
)

// Frame returns the camera centre for snap in a view of the given size.
// The camera follows the player; along an axis where the map is larger than
// the view it is kept inside the map, otherwise it centres on the map.
// Vertical clamping is skipped for maps that ask for a free camera.
func Frame(snap game.Snapshot, viewW, viewH float64) dmath.Vec2 {
	box := snap.Map.Box()
	target := dmath.Vec2{X: snap.Player.X, Y: snap.Player.Y}

	if box.Width() > viewW {
		target.X = math.Max(box.LeftX+viewW/2, math.Min(box.RightX-viewW/2, target.X))
	} else {
		target.X = (box.LeftX + box.RightX) / 2
	}

	if !snap.ClampCameraY {
		return target
	}
	if box.Height() > viewH {
		target.Y = math.Max(box.BottomY+viewH/2, math.Min(box.TopY-viewH/2, target.Y))
	} else {
		target.Y = (box.BottomY + box.TopY) / 2
	}
	return target
}

// Camera eases between framings when the player changes map or respawns,
// and follows the framing directly otherwise.
type Camera struct {
	Position dmath.Vec2
	ViewW    float64
	ViewH    float64

	transition float32
	tweenX     *gween.Tween
	tweenY     *gween.Tween
	lastIndex  int
	lastPlayer dmath.Vec2
	started    bool
}

func NewCamera(viewW, viewH, transitionSecs float64) *Camera {
	return &Camera{
		ViewW:      viewW,
		ViewH:      viewH,
		transition: float32(transitionSecs),
	}
}

// Update moves the camera toward snap's framing. dt is in seconds.
func (c *Camera) Update(snap game.Snapshot, dt float64) {
	target := Frame(snap, c.ViewW, c.ViewH)
	player := dmath.Vec2{X: snap.Player.X, Y: snap.Player.Y}

	if !c.started {
		c.started = true
		c.Position = target
		c.lastIndex = snap.Index
		c.lastPlayer = player
		return
	}

	if c.transition > 0 && c.jumped(snap, player) {
		c.tweenX = gween.New(float32(c.Position.X), float32(target.X), c.transition, ease.OutQuad)
		c.tweenY = gween.New(float32(c.Position.Y), float32(target.Y), c.transition, ease.OutQuad)
	}
	c.lastIndex = snap.Index
	c.lastPlayer = player

	if c.tweenX == nil {
		c.Position = target
		return
	}

	x, doneX := c.tweenX.Update(float32(dt))
	y, doneY := c.tweenY.Update(float32(dt))
	c.Position = dmath.Vec2{X: float64(x), Y: float64(y)}
	if doneX && doneY {
		c.tweenX, c.tweenY = nil, nil
		c.Position = target
	}
}

// Transitioning reports whether an eased pan is in progress.
func (c *Camera) Transitioning() bool {
	return c.tweenX != nil
}

// jumped reports a map change or a teleport larger than half the view.
func (c *Camera) jumped(snap game.Snapshot, player dmath.Vec2) bool {
	if snap.Index != c.lastIndex {
		return true
	}
	return math.Abs(player.X-c.lastPlayer.X) > c.ViewW/2 || math.Abs(player.Y-c.lastPlayer.Y) > c.ViewH/2
}

// WorldToScreen maps a world point (y up) to view pixels (y down).
func (c *Camera) WorldToScreen(x, y float64) (float64, float64) {
	return x - c.Position.X + c.ViewW/2, c.ViewH/2 - (y - c.Position.Y)
}

// ScreenToWorld is the inverse of WorldToScreen.
func (c *Camera) ScreenToWorld(sx, sy float64) (float64, float64) {
	return sx + c.Position.X - c.ViewW/2, c.ViewH/2 - sy + c.Position.Y
}
