package replay

import (
	"context"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/automoto/ledgeline/game"
	"github.com/automoto/ledgeline/level"
	"github.com/automoto/ledgeline/shared/geometry"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestParseTrack(t *testing.T) {
	s, err := ParseTrack("R30 rj20 15 LJ1")
	if err != nil {
		t.Fatal(err)
	}
	want := []Step{
		{Ticks: 30, Right: true},
		{Ticks: 20, Right: true, Jump: true},
		{Ticks: 15},
		{Ticks: 1, Left: true, Jump: true},
	}
	if len(s.Steps) != len(want) {
		t.Fatalf("steps = %+v", s.Steps)
	}
	for i := range want {
		if s.Steps[i] != want[i] {
			t.Errorf("step %d = %+v, want %+v", i, s.Steps[i], want[i])
		}
	}
	if s.Ticks() != 66 {
		t.Errorf("Ticks = %d", s.Ticks())
	}

	for _, bad := range []string{"", "R", "X10", "R0"} {
		if _, err := ParseTrack(bad); err == nil {
			t.Errorf("ParseTrack(%q) accepted", bad)
		}
	}
}

func TestDecodeScript(t *testing.T) {
	doc := `
repeat = true

[[step]]
ticks = 5
right = true
jump = true

[[step]]
ticks = 2
`
	s, err := DecodeScript(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}
	if !s.Repeat || len(s.Steps) != 2 || !s.Steps[0].Jump || s.Steps[1].Ticks != 2 {
		t.Errorf("script = %+v", s)
	}

	if _, err := DecodeScript(strings.NewReader("[[step]]\nticks = -1\n")); err == nil {
		t.Error("accepted a negative step")
	}
}

func TestCursor(t *testing.T) {
	var in game.InputState
	c := NewCursor(Script{Steps: []Step{{Ticks: 2, Right: true, Jump: true}, {Ticks: 1, Left: true}}})

	var got []game.Intent
	for c.Apply(&in) {
		got = append(got, in.Take())
	}
	if len(got) != 3 {
		t.Fatalf("applied %d ticks, want 3", len(got))
	}
	if !got[0].Jumping || got[1].Jumping {
		t.Errorf("jump must press on the first tick only: %+v", got)
	}
	if !got[1].WalkingRight || !got[2].WalkingLeft || got[2].WalkingRight {
		t.Errorf("walking = %+v", got)
	}

	rep := NewCursor(Script{Steps: []Step{{Ticks: 1, Jump: true}}, Repeat: true})
	for i := 0; i < 3; i++ {
		if !rep.Apply(&in) || !in.Take().Jumping {
			t.Fatalf("repeat pass %d did not press", i)
		}
	}
}

func flatMaps(t *testing.T, names ...string) []*level.GameMap {
	t.Helper()
	var maps []*level.GameMap
	for _, name := range names {
		m, err := level.New(name, []geometry.Surface{geometry.MustSurface(0, 0, 300, math.Pi/2, false)}, nil)
		if err != nil {
			t.Fatal(err)
		}
		maps = append(maps, m)
	}
	return maps
}

func TestFastCompletes(t *testing.T) {
	clock := game.NewManualClock(epoch)
	s, err := game.NewSession(flatMaps(t, "a", "b"), game.WithClock(clock))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	script, _ := ParseTrack("R500")
	ticks := 0
	res := Fast(s, script, clock, 20*time.Millisecond, 0, func(game.Snapshot) { ticks++ })

	if !res.Completed || res.Index != 2 || res.Map != "b" {
		t.Errorf("result = %+v", res)
	}
	if uint64(ticks) != res.Ticks || res.Ticks >= 500 {
		t.Errorf("ticks = %d, result %d", ticks, res.Ticks)
	}
	if !clock.Now().Equal(epoch.Add(time.Duration(res.Ticks) * 20 * time.Millisecond)) {
		t.Errorf("clock at %v", clock.Now())
	}
}

func TestFastStops(t *testing.T) {
	clock := game.NewManualClock(epoch)
	s, err := game.NewSession(flatMaps(t, "a"), game.WithClock(clock))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	short, _ := ParseTrack("30")
	if res := Fast(s, short, clock, 20*time.Millisecond, 0, nil); res.Ticks != 30 || res.Completed {
		t.Errorf("script end: %+v", res)
	}

	idle := Script{Steps: []Step{{Ticks: 1}}, Repeat: true}
	if res := Fast(s, idle, clock, 20*time.Millisecond, 50, nil); res.Ticks != 50 {
		t.Errorf("max ticks: %+v", res)
	}
}

func TestRealTime(t *testing.T) {
	s, err := game.NewSession(flatMaps(t, "a"))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	script, _ := ParseTrack("R5")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := RealTime(ctx, s, script, time.Millisecond, nil)
	if err != nil {
		t.Fatalf("RealTime: %v", err)
	}
	if res.Ticks < 5 || res.X <= 20 {
		t.Errorf("result = %+v", res)
	}
}
