package config

import "image/color"

// UnlimitedExtraJumps is the MaxExtraJump sentinel for "never run out of air jumps".
const UnlimitedExtraJumps = -1

// PhysicsConfig contains the per-tick movement constants
type PhysicsConfig struct {
	// Vertical
	Gravity           float64 `toml:"gravity"`
	TerminalFallSpeed float64 `toml:"terminal_fall_speed"`
	JumpSpeed         float64 `toml:"jump_speed"`

	// Horizontal
	MaxSpeed     float64 `toml:"max_speed"`
	Acceleration float64 `toml:"acceleration"`
	Deceleration float64 `toml:"deceleration"` // applied when no (or both) directions are held

	// Wall bounce
	BounceXSpeed      float64 `toml:"bounce_x_speed"`
	BounceYSpeed      float64 `toml:"bounce_y_speed"`
	MinBounceRatio    float64 `toml:"min_bounce_ratio"`  // squared-speed ratio floor fed to the log
	MinBounceFactor   float64 `toml:"min_bounce_factor"` // factor at or below MinBounceRatio
	WallJumpGraceMS   int     `toml:"wall_jump_grace_ms"`
	TickIntervalMS    int     `toml:"tick_interval_ms"`
	BroadPhaseCell    int     `toml:"broad_phase_cell"`
	BroadPhasePadding float64 `toml:"broad_phase_padding"`
}

// PlayerConfig contains the player body and charge caps
type PlayerConfig struct {
	Width         float64 `toml:"width"`
	Height        float64 `toml:"height"`
	MaxExtraJump  int     `toml:"max_extra_jump"` // UnlimitedExtraJumps for no cap
	MaxBounceTime int     `toml:"max_bounce_time"`
}

// SequenceConfig contains map sequence and spawn rules
type SequenceConfig struct {
	Length              int     `toml:"length"` // maps sampled from a pool
	RespawnMargin       float64 `toml:"respawn_margin"`
	SpawnOffsetX        float64 `toml:"spawn_offset_x"`
	SpawnY              float64 `toml:"spawn_y"`
	FeatureSpawnOffsetX float64 `toml:"feature_spawn_offset_x"`
	EntranceWall        bool    `toml:"entrance_wall"`
}

// ViewConfig contains renderer-side values. The simulation never reads it.
type ViewConfig struct {
	Width           int        `toml:"width"`
	Height          int        `toml:"height"`
	TransitionSecs  float64    `toml:"transition_secs"`
	TerminalCellW   float64    `toml:"terminal_cell_w"`
	TerminalCellH   float64    `toml:"terminal_cell_h"`
	Debug           bool       `toml:"debug"`
	BackgroundColor color.RGBA `toml:"-"`
	SurfaceColor    color.RGBA `toml:"-"`
	VirtualColor    color.RGBA `toml:"-"`
	PlayerColor     color.RGBA `toml:"-"`
	DebugTextColor  color.RGBA `toml:"-"`
}

// File is the on-disk layout read by LoadFile and written by Write.
type File struct {
	Physics  PhysicsConfig  `toml:"physics"`
	Player   PlayerConfig   `toml:"player"`
	Sequence SequenceConfig `toml:"sequence"`
	View     ViewConfig     `toml:"view"`
}

// Global configuration instances
var Physics PhysicsConfig
var Player PlayerConfig
var Sequence SequenceConfig
var View ViewConfig

// Shared RGBA color constants
var (
	White = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Black = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	Grey  = color.RGBA{R: 150, G: 150, B: 150, A: 255}
	Red   = color.RGBA{R: 255, G: 0, B: 0, A: 255}
)

func init() {
	Reset()
}

// Reset restores every global to its built-in default.
func Reset() {
	Physics = PhysicsConfig{
		Gravity:           1.5,
		TerminalFallSpeed: 10.0,
		JumpSpeed:         20.0,

		MaxSpeed:     10.0,
		Acceleration: 2.5,
		Deceleration: 5.0,

		BounceXSpeed:      14.0,
		BounceYSpeed:      18.0,
		MinBounceRatio:    0.01,
		MinBounceFactor:   0.5,
		WallJumpGraceMS:   100,
		TickIntervalMS:    20,
		BroadPhaseCell:    32,
		BroadPhasePadding: 2.0,
	}

	Player = PlayerConfig{
		Width:         10,
		Height:        40,
		MaxExtraJump:  1,
		MaxBounceTime: 2,
	}

	Sequence = SequenceConfig{
		Length:              5,
		RespawnMargin:       50,
		SpawnOffsetX:        20,
		SpawnY:              300,
		FeatureSpawnOffsetX: 40,
		EntranceWall:        true,
	}

	View = ViewConfig{
		Width:           800,
		Height:          600,
		TransitionSecs:  0.4,
		TerminalCellW:   10,
		TerminalCellH:   20,
		Debug:           true,
		BackgroundColor: White,
		SurfaceColor:    Black,
		VirtualColor:    Grey,
		PlayerColor:     Black,
		DebugTextColor:  Red,
	}
}

// Current returns a copy of the active configuration.
func Current() File {
	return File{
		Physics:  Physics,
		Player:   Player,
		Sequence: Sequence,
		View:     View,
	}
}
