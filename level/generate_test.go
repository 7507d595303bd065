package level

import (
	"math/rand/v2"
	"testing"

	"github.com/automoto/ledgeline/shared/geometry"
)

func TestGenerateTower(t *testing.T) {
	opts := DefaultTowerOptions()
	l, err := GenerateTower(opts, rand.New(rand.NewPCG(7, 7)))
	if err != nil {
		t.Fatalf("GenerateTower: %v", err)
	}

	m, err := FromLevel(l)
	if err != nil {
		t.Fatalf("FromLevel: %v", err)
	}
	box := m.Box()
	if box.LeftX != 0 || box.RightX != opts.Width {
		t.Errorf("box x = [%v, %v], want [0, %v]", box.LeftX, box.RightX, opts.Width)
	}
	if box.BottomY != opts.BaseY || box.TopY != opts.BaseY+float64(opts.Floors)*opts.FloorGap {
		t.Errorf("box y = [%v, %v]", box.BottomY, box.TopY)
	}

	platforms := 0
	for _, i := range m.Floors() {
		s := m.Surface(i)
		if s.Length != opts.Platform {
			continue
		}
		platforms++
		if s.LeftX < opts.Margin-opts.Platform/2 || s.RightX > opts.Width-opts.Margin+opts.Platform/2 {
			t.Errorf("platform at %v..%v leaves the shaft", s.LeftX, s.RightX)
		}
	}
	if platforms != opts.Floors-1 {
		t.Errorf("platforms = %d, want %d", platforms, opts.Floors-1)
	}
	if len(m.Ceilings()) != opts.Floors-1 {
		t.Errorf("ceilings = %d, want %d", len(m.Ceilings()), opts.Floors-1)
	}
	for _, i := range m.Walls() {
		if s := m.Surface(i); s.Type != geometry.Wall {
			t.Errorf("surface %d classified %v", i, s.Type)
		}
	}
}

func TestGenerateTowerDeterministic(t *testing.T) {
	a, _ := GenerateTower(DefaultTowerOptions(), rand.New(rand.NewPCG(3, 4)))
	b, _ := GenerateTower(DefaultTowerOptions(), rand.New(rand.NewPCG(3, 4)))
	if len(a.Surfaces) != len(b.Surfaces) {
		t.Fatalf("lengths differ: %d vs %d", len(a.Surfaces), len(b.Surfaces))
	}
	for i := range a.Surfaces {
		if a.Surfaces[i] != b.Surfaces[i] {
			t.Fatalf("surface %d differs", i)
		}
	}
}

func TestGenerateTowerRejectsBadOptions(t *testing.T) {
	opts := DefaultTowerOptions()
	opts.Width = 150
	if _, err := GenerateTower(opts, rand.New(rand.NewPCG(1, 1))); err == nil {
		t.Error("expected error for a shaft narrower than its margins")
	}
}
