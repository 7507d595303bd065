package replay

import (
	"context"
	"time"

	"github.com/automoto/ledgeline/game"
)

// Result summarises a replay.
type Result struct {
	Ticks     uint64  `json:"ticks"`
	Completed bool    `json:"completed"`
	Index     int     `json:"index"`
	Count     int     `json:"count"`
	Map       string  `json:"map"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	OnGround  bool    `json:"onGround"`
}

func resultOf(snap game.Snapshot) Result {
	return Result{
		Ticks:     snap.Tick,
		Completed: !snap.Active,
		Index:     snap.Index,
		Count:     snap.Count,
		Map:       snap.Map.Name(),
		X:         snap.Player.X,
		Y:         snap.Player.Y,
		OnGround:  snap.Player.OnGround,
	}
}

// Fast replays the script as quickly as possible, moving clock by interval
// before every tick. It stops when the script runs out, the sequence
// completes or maxTicks ticks have run (zero means no limit). onTick may be nil.
func Fast(s *game.Session, script Script, clock *game.ManualClock, interval time.Duration, maxTicks uint64, onTick func(game.Snapshot)) Result {
	cur := NewCursor(script)
	for maxTicks == 0 || s.Snapshot().Tick < maxTicks {
		if !cur.Apply(s.Input()) {
			break
		}
		clock.Advance(interval)
		active := s.Tick()
		if onTick != nil {
			onTick(s.Snapshot())
		}
		if !active {
			break
		}
	}
	return resultOf(s.Snapshot())
}

// RealTime replays the script through a GameLoop at interval.
func RealTime(ctx context.Context, s *game.Session, script Script, interval time.Duration, onTick func(game.Snapshot)) (Result, error) {
	cur := NewCursor(script)
	loop := game.NewGameLoop(s, interval)
	if !cur.Apply(s.Input()) {
		return resultOf(s.Snapshot()), nil
	}
	loop.OnTick(func(snap game.Snapshot) {
		if onTick != nil {
			onTick(snap)
		}
		if !cur.Apply(s.Input()) {
			loop.Stop()
		}
	})
	err := loop.Run(ctx)
	return resultOf(s.Snapshot()), err
}
