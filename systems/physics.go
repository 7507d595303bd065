package systems

import (
	"time"

	"github.com/automoto/ledgeline/components"
	"github.com/automoto/ledgeline/shared/gamemath"
	"github.com/yohamta/donburi"
)

// UpdateWalking accelerates toward the held direction's speed cap, or
// decelerates toward zero when neither or both directions are held.
func UpdateWalking(w donburi.World, _ time.Time) {
	_, rules, ok := activeSequence(w)
	if !ok {
		return
	}
	phys := rules.Physics

	components.Intent.Each(w, func(e *donburi.Entry) {
		if !e.HasComponent(components.Player) {
			return
		}
		player := components.Player.Get(e)
		dir := components.Intent.Get(e).Direction()

		if dir == 0 {
			player.SpeedX = gamemath.ApplyFriction(player.SpeedX, phys.Deceleration)
			return
		}
		player.SpeedX = gamemath.Approach(player.SpeedX, float64(dir)*phys.MaxSpeed, phys.Acceleration)
	})
}

// UpdateGravity pulls every player down, capped at the terminal fall speed.
func UpdateGravity(w donburi.World, _ time.Time) {
	_, rules, ok := activeSequence(w)
	if !ok {
		return
	}
	phys := rules.Physics

	components.Player.Each(w, func(e *donburi.Entry) {
		player := components.Player.Get(e)
		player.SpeedY = gamemath.ApplyGravity(player.SpeedY, phys.Gravity, phys.TerminalFallSpeed)
	})
}
