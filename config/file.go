package config

import (
	"fmt"
	"io"
	"time"

	"github.com/BurntSushi/toml"
)

// LoadFile decodes a TOML file over the current values. Keys missing from
// the file keep whatever they held before.
func LoadFile(path string) error {
	f := Current()
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	if err := f.Validate(); err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	apply(f)
	return nil
}

// Decode is LoadFile for an in-memory document.
func Decode(data string) error {
	f := Current()
	if _, err := toml.Decode(data, &f); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	if err := f.Validate(); err != nil {
		return err
	}
	apply(f)
	return nil
}

// Write encodes the current configuration as TOML.
func Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(Current())
}

// Validate rejects values the simulation cannot run with.
func (f File) Validate() error {
	switch {
	case f.Physics.Gravity < 0:
		return fmt.Errorf("physics.gravity must be >= 0, got %v", f.Physics.Gravity)
	case f.Physics.TerminalFallSpeed <= 0:
		return fmt.Errorf("physics.terminal_fall_speed must be > 0, got %v", f.Physics.TerminalFallSpeed)
	case f.Physics.MaxSpeed <= 0:
		return fmt.Errorf("physics.max_speed must be > 0, got %v", f.Physics.MaxSpeed)
	case f.Physics.MinBounceRatio <= 0 || f.Physics.MinBounceRatio >= 1:
		return fmt.Errorf("physics.min_bounce_ratio must be in (0, 1), got %v", f.Physics.MinBounceRatio)
	case f.Physics.MinBounceFactor < 0 || f.Physics.MinBounceFactor > 1:
		return fmt.Errorf("physics.min_bounce_factor must be in [0, 1], got %v", f.Physics.MinBounceFactor)
	case f.Physics.TickIntervalMS <= 0:
		return fmt.Errorf("physics.tick_interval_ms must be > 0, got %d", f.Physics.TickIntervalMS)
	case f.Physics.BroadPhaseCell <= 0:
		return fmt.Errorf("physics.broad_phase_cell must be > 0, got %d", f.Physics.BroadPhaseCell)
	case f.Player.MaxExtraJump < UnlimitedExtraJumps:
		return fmt.Errorf("player.max_extra_jump must be >= %d, got %d", UnlimitedExtraJumps, f.Player.MaxExtraJump)
	case f.Player.Width <= 0 || f.Player.Height <= 0:
		return fmt.Errorf("player body must be positive, got %vx%v", f.Player.Width, f.Player.Height)
	case f.Sequence.Length <= 0:
		return fmt.Errorf("sequence.length must be > 0, got %d", f.Sequence.Length)
	}
	return nil
}

func apply(f File) {
	Physics = f.Physics
	Player = f.Player
	Sequence = f.Sequence
	View = f.View
}

// WallJumpGrace is the wall-contact window as a duration.
func (p PhysicsConfig) WallJumpGrace() time.Duration {
	return time.Duration(p.WallJumpGraceMS) * time.Millisecond
}

// TickInterval is the simulation period as a duration.
func (p PhysicsConfig) TickInterval() time.Duration {
	return time.Duration(p.TickIntervalMS) * time.Millisecond
}
