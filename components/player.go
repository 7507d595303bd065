package components

import (
	"time"

	cfg "github.com/automoto/ledgeline/config"
	"github.com/automoto/ledgeline/shared/geometry"
	"github.com/yohamta/donburi"
)

// PlayerData is the player's kinematic state. X is the body's horizontal
// centre and Y its feet; the body spans [Y, Y+Height].
type PlayerData struct {
	X, Y           float64
	SpeedX, SpeedY float64
	OnGround       bool // recomputed by every movement resolve

	ExtraJump    int
	MaxExtraJump int // cfg.UnlimitedExtraJumps for no cap

	BounceTime    int
	MaxBounceTime int

	WallJumpDeadline time.Time
	Collided         *geometry.Surface // wall remembered for the next bounce
}

var Player = donburi.NewComponentType[PlayerData]()

// NewPlayerData returns a player at rest with full charges.
func NewPlayerData(body cfg.PlayerConfig) PlayerData {
	return PlayerData{
		ExtraJump:     body.MaxExtraJump,
		MaxExtraJump:  body.MaxExtraJump,
		BounceTime:    body.MaxBounceTime,
		MaxBounceTime: body.MaxBounceTime,
	}
}

// UnlimitedJumps reports whether air jumps never run out.
func (p *PlayerData) UnlimitedJumps() bool {
	return p.MaxExtraJump == cfg.UnlimitedExtraJumps
}

// HasAirJump reports a remaining air-jump charge.
func (p *PlayerData) HasAirJump() bool {
	return p.UnlimitedJumps() || p.ExtraJump > 0
}

// InWallContact reports whether now is inside the wall-jump window of a
// remembered wall.
func (p *PlayerData) InWallContact(now time.Time) bool {
	return p.Collided != nil && !now.After(p.WallJumpDeadline)
}

// Land refills charges after touching a floor.
func (p *PlayerData) Land() {
	p.OnGround = true
	p.ExtraJump = p.MaxExtraJump
	p.BounceTime = p.MaxBounceTime
}

// TouchWall opens the wall-jump window for s.
func (p *PlayerData) TouchWall(s geometry.Surface, deadline time.Time) {
	p.WallJumpDeadline = deadline
	p.Collided = &s
}

// PlaceAt moves the body to (x, y) at rest and forgets any wall contact.
// Charges are left alone.
func (p *PlayerData) PlaceAt(x, y float64) {
	p.X, p.Y = x, y
	p.SpeedX, p.SpeedY = 0, 0
	p.OnGround = false
	p.Collided = nil
	p.WallJumpDeadline = time.Time{}
}
