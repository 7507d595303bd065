package systems

import (
	"math"
	"time"

	"github.com/automoto/ledgeline/components"
	cfg "github.com/automoto/ledgeline/config"
	"github.com/automoto/ledgeline/shared/gamemath"
	"github.com/yohamta/donburi"
)

// JumpKind is what a jump press turned into.
type JumpKind int

const (
	JumpNone JumpKind = iota // no press, or a press with nothing to spend
	JumpGround
	JumpAir
	JumpBounce
)

func (k JumpKind) String() string {
	switch k {
	case JumpNone:
		return "none"
	case JumpGround:
		return "ground"
	case JumpAir:
		return "air"
	case JumpBounce:
		return "bounce"
	}
	return "unknown"
}

// UpdateJump spends each player's pending jump press.
func UpdateJump(w donburi.World, now time.Time) {
	_, rules, ok := activeSequence(w)
	if !ok {
		return
	}

	components.Intent.Each(w, func(e *donburi.Entry) {
		if !e.HasComponent(components.Player) {
			return
		}
		HandleJump(components.Player.Get(e), components.Intent.Get(e), rules.Physics, now)
	})
}

// HandleJump consumes intent's jump edge. Inside the wall-contact window
// the press refreshes air jumps and, with a bounce charge left, bounces off
// the remembered wall. Otherwise it is a ground jump, an air jump spending
// a charge, or silently dropped.
func HandleJump(p *components.PlayerData, intent *components.IntentData, phys cfg.PhysicsConfig, now time.Time) JumpKind {
	if !intent.Jumping {
		return JumpNone
	}
	intent.Jumping = false

	if p.InWallContact(now) {
		p.ExtraJump = p.MaxExtraJump
		if p.BounceTime > 0 {
			bounce(p, phys)
			return JumpBounce
		}
	}

	switch {
	case p.OnGround:
		p.SpeedY = phys.JumpSpeed
		return JumpGround
	case p.HasAirJump():
		p.SpeedY = phys.JumpSpeed
		if !p.UnlimitedJumps() {
			p.ExtraJump--
		}
		return JumpAir
	}
	return JumpNone
}

// bounce launches p away from its remembered wall. The horizontal push
// grows with the speed the body carried into the press.
func bounce(p *components.PlayerData, phys cfg.PhysicsConfig) {
	factor := gamemath.BounceFactor(
		p.SpeedX*p.SpeedX+p.SpeedY*p.SpeedY,
		phys.MaxSpeed*phys.MaxSpeed+phys.TerminalFallSpeed*phys.TerminalFallSpeed,
		phys.MinBounceRatio,
		phys.MinBounceFactor,
	)
	p.SpeedY = phys.BounceYSpeed
	p.SpeedX = gamemath.ClampSpeed(math.Cos(p.Collided.Facing)*phys.BounceXSpeed*factor, phys.BounceXSpeed)
	p.BounceTime--
	p.Collided = nil
}
