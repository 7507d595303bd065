package systems

import (
	"testing"

	"github.com/automoto/ledgeline/components"
	cfg "github.com/automoto/ledgeline/config"
	"github.com/automoto/ledgeline/level"
	"github.com/automoto/ledgeline/shared/geometry"
)

func TestRespawnAfterFalling(t *testing.T) {
	m := mustMap(t, "gap", floorAt(0, 100, 200), floorAt(400, 100, 400))
	tw := newTestWorld(m)
	p := tw.p()
	p.X, p.Y = 300, 55
	p.SpeedX, p.SpeedY = 4, -10
	p.ExtraJump = 0
	p.BounceTime = 1

	tw.run(1, epoch)

	// fell below 100-50 on this tick, so it is back at the spawn point
	wantX, wantY := m.Spawn(cfg.Sequence)
	if p.X != wantX || p.Y != wantY {
		t.Errorf("at (%v, %v), want spawn (%v, %v)", p.X, p.Y, wantX, wantY)
	}
	if p.SpeedX != 0 || p.SpeedY != 0 {
		t.Errorf("speed (%v, %v), want zero", p.SpeedX, p.SpeedY)
	}
	if p.ExtraJump != 0 || p.BounceTime != 1 {
		t.Errorf("charges changed: ExtraJump=%d BounceTime=%d", p.ExtraJump, p.BounceTime)
	}
	if tw.s().Index != 0 {
		t.Errorf("Index = %d, want 0", tw.s().Index)
	}
}

func TestRespawnUsesFeatureOffset(t *testing.T) {
	s := []geometry.Surface{floorAt(0, 0, 400)}
	m, err := level.New("offset", s, []string{level.FeatureSpawnOffset})
	if err != nil {
		t.Fatal(err)
	}

	p := components.NewPlayerData(cfg.Player)
	Respawn(&p, m, cfg.Sequence)
	if p.X != cfg.Sequence.SpawnOffsetX+cfg.Sequence.FeatureSpawnOffsetX {
		t.Errorf("X = %v, want %v", p.X, cfg.Sequence.SpawnOffsetX+cfg.Sequence.FeatureSpawnOffsetX)
	}
	if p.Y != cfg.Sequence.SpawnY {
		t.Errorf("Y = %v, want %v", p.Y, cfg.Sequence.SpawnY)
	}
}

func TestAdvanceToNextMap(t *testing.T) {
	first := mustMap(t, "first", floorAt(0, 0, 400))
	second := mustMap(t, "second", floorAt(1000, 0, 400))
	tw := newTestWorld(first, second)
	p := tw.p()
	p.X, p.Y = 395, 1
	p.SpeedX = 10
	tw.intent().WalkingRight = true

	tw.run(1, epoch)

	seq := tw.s()
	if seq.Index != 1 || !seq.Active {
		t.Fatalf("Index=%d Active=%v, want 1/true", seq.Index, seq.Active)
	}
	wantX, wantY := second.Spawn(cfg.Sequence)
	if p.X != wantX || p.Y != wantY {
		t.Errorf("at (%v, %v), want second map spawn (%v, %v)", p.X, p.Y, wantX, wantY)
	}
}

func TestCompletionFreezesWorld(t *testing.T) {
	only := mustMap(t, "only", floorAt(0, 0, 400))
	tw := newTestWorld(only)
	p := tw.p()
	p.X, p.Y = 395, 1
	p.SpeedX = 10
	tw.intent().WalkingRight = true

	now := tw.run(1, epoch)

	seq := tw.s()
	if seq.Active || seq.Index != 1 || !seq.Complete() || seq.Current() != nil {
		t.Fatalf("Index=%d Active=%v, want complete", seq.Index, seq.Active)
	}

	frozen := *p
	tw.intent().Jumping = true
	tw.intent().WalkingLeft = true
	tw.run(50, now)

	if *p != frozen {
		t.Errorf("player changed after completion: %+v vs %+v", *p, frozen)
	}
	if seq.Index != 1 || seq.Active {
		t.Errorf("Index=%d Active=%v changed after completion", seq.Index, seq.Active)
	}
}
