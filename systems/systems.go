package systems

import (
	"time"

	"github.com/automoto/ledgeline/components"
	"github.com/yohamta/donburi"
)

// System advances one concern of the world by a tick.
type System func(w donburi.World, now time.Time)

// Tick is the fixed per-tick order. Gravity runs after movement and before
// jump handling so a same-tick jump overrides it.
var Tick = []System{
	UpdateWalking,
	UpdateMovement,
	UpdateGravity,
	UpdateJump,
	UpdateSequence,
}

// RunTick runs every system in order. Nothing runs once the sequence is
// complete.
func RunTick(w donburi.World, now time.Time) {
	for _, sys := range Tick {
		if _, _, ok := activeSequence(w); !ok {
			return
		}
		sys(w, now)
	}
}

func activeSequence(w donburi.World) (*components.SequenceData, *components.RulesData, bool) {
	e, ok := components.Sequence.First(w)
	if !ok {
		return nil, nil, false
	}
	seq := components.Sequence.Get(e)
	if !seq.Active || seq.Current() == nil {
		return nil, nil, false
	}
	return seq, components.Rules.Get(e), true
}
