// Package game owns a running simulation: the donburi world, the shared
// input record, the clock and the fixed-rate loop that ticks them.
package game

import (
	"context"
	"errors"
	"log"
	"math/rand/v2"
	"sync"

	"github.com/automoto/ledgeline/archetypes"
	"github.com/automoto/ledgeline/components"
	"github.com/automoto/ledgeline/level"
	"github.com/automoto/ledgeline/shared/geometry"
	"github.com/automoto/ledgeline/shared/leveldata"
	"github.com/automoto/ledgeline/systems"
	"github.com/yohamta/donburi"
)

var (
	ErrNoMaps        = errors.New("session needs at least one map")
	ErrSessionClosed = errors.New("session closed")
)

// Session is one play-through of a map sequence.
type Session struct {
	mu     sync.Mutex
	world  donburi.World
	player *donburi.Entry
	seq    *donburi.Entry
	input  *InputState
	clock  Clock
	rules  components.RulesData
	ticks  uint64
	closed bool
	final  Snapshot
}

type Option func(*Session)

// WithClock replaces the wall clock, mostly for tests and replays.
func WithClock(c Clock) Option {
	return func(s *Session) { s.clock = c }
}

// WithRules pins rules other than the current global configuration.
func WithRules(r components.RulesData) Option {
	return func(s *Session) { s.rules = r }
}

// NewSession places the player on the first map's spawn point.
func NewSession(maps []*level.GameMap, opts ...Option) (*Session, error) {
	if len(maps) == 0 {
		return nil, ErrNoMaps
	}

	s := &Session{
		world: donburi.NewWorld(),
		input: &InputState{},
		clock: SystemClock,
		rules: components.CurrentRules(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.seq = archetypes.Sequence.Spawn(s.world)
	components.Sequence.SetValue(s.seq, components.SequenceData{
		Maps:   append([]*level.GameMap(nil), maps...),
		Active: true,
	})
	components.Rules.SetValue(s.seq, s.rules)

	s.player = archetypes.Player.Spawn(s.world)
	player := components.NewPlayerData(s.rules.Player)
	systems.Respawn(&player, maps[0], s.rules.Sequence)
	components.Player.SetValue(s.player, player)

	log.Printf("[session] started: %d maps, first %s", len(maps), maps[0].Name())
	return s, nil
}

// Start builds the map sequence described by src and opens a session on it.
func Start(ctx context.Context, src level.Source, f leveldata.Fetcher, rng *rand.Rand, opts ...Option) (*Session, error) {
	maps, err := level.BuildSequence(ctx, src, f, rng)
	if err != nil {
		return nil, err
	}
	return NewSession(maps, opts...)
}

// Input is the record input producers write to.
func (s *Session) Input() *InputState {
	return s.input
}

// Tick runs one simulation step with the intent sampled right now and
// reports whether the sequence is still active. Ticks after completion
// still consume input but change nothing.
func (s *Session) Tick() bool {
	intent := s.input.Take()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}

	seq := components.Sequence.Get(s.seq)
	if !seq.Active {
		return false
	}

	components.Intent.SetValue(s.player, intent)
	systems.RunTick(s.world, s.clock.Now())
	s.ticks++
	return seq.Active
}

// Active reports whether the sequence is still being played.
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	return components.Sequence.Get(s.seq).Active
}

// Snapshot is a read-only copy of everything a renderer needs.
type Snapshot struct {
	Player       components.PlayerData
	Body         geometry.Box // the player's body in world space
	Map          *level.GameMap
	Index        int
	Count        int
	Active       bool
	Tick         uint64
	ClampCameraY bool
}

// Snapshot copies the current state. Map is the last played map once the
// sequence is complete.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return s.final
	}
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	seq := components.Sequence.Get(s.seq)
	p := *components.Player.Get(s.player)

	m := seq.Current()
	if m == nil {
		m = seq.Maps[len(seq.Maps)-1]
	}

	half := s.rules.Player.Width / 2
	return Snapshot{
		Player: p,
		Body: geometry.Box{
			LeftX:   p.X - half,
			RightX:  p.X + half,
			BottomY: p.Y,
			TopY:    p.Y + s.rules.Player.Height,
		},
		Map:          m,
		Index:        seq.Index,
		Count:        len(seq.Maps),
		Active:       seq.Active,
		Tick:         s.ticks,
		ClampCameraY: m.ClampCameraY(),
	}
}

// Closed reports whether Close has been called.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Rules returns the rules the session runs with.
func (s *Session) Rules() components.RulesData {
	return s.rules
}

// Close tears the world down. The last snapshot stays readable; further
// ticks are no-ops.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.final = s.snapshotLocked()
	s.final.Active = false
	s.closed = true

	for _, e := range []*donburi.Entry{s.player, s.seq} {
		if s.world.Valid(e.Entity()) {
			s.world.Remove(e.Entity())
		}
	}
	log.Printf("[session] closed after %d ticks", s.ticks)
}
