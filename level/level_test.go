package level

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"runtime"
	"slices"
	"testing"
	"testing/fstest"

	cfg "github.com/automoto/ledgeline/config"
	"github.com/automoto/ledgeline/shared/geometry"
	"github.com/automoto/ledgeline/shared/leveldata"
)

func flatLevel(name string) leveldata.Level {
	return leveldata.Level{
		Name: name,
		Surfaces: []leveldata.SurfaceRecord{
			{StartX: 0, StartY: 300, Length: 800, Facing: math.Pi / 2},
			{StartX: 500, StartY: 400, Length: 400, Facing: 0},
			{StartX: 800, StartY: 500, Length: 800, Facing: 3 * math.Pi / 2},
			{StartX: -2000, StartY: 5000, Length: 10, Facing: 0, Virtual: true},
		},
	}
}

func TestFromLevelBoxAndPartitions(t *testing.T) {
	m, err := FromLevel(flatLevel("flat"))
	if err != nil {
		t.Fatalf("FromLevel: %v", err)
	}

	want := geometry.Box{LeftX: 0, RightX: 800, BottomY: 0, TopY: 500}
	got := m.Box()
	if math.Abs(got.LeftX-want.LeftX) > 1e-9 || math.Abs(got.RightX-want.RightX) > 1e-9 ||
		math.Abs(got.BottomY-want.BottomY) > 1e-9 || math.Abs(got.TopY-want.TopY) > 1e-9 {
		t.Errorf("Box = %+v, want %+v (virtual surfaces must not count)", got, want)
	}

	if !slices.Equal(m.Floors(), []int{0}) || !slices.Equal(m.Walls(), []int{1}) || !slices.Equal(m.Ceilings(), []int{2}) {
		t.Errorf("partitions floors=%v walls=%v ceilings=%v", m.Floors(), m.Walls(), m.Ceilings())
	}
	if m.Len() != 4 || !m.Surface(3).Virtual {
		t.Errorf("virtual surface must stay in the surface list")
	}
}

func TestFromLevelRejectsBadGeometry(t *testing.T) {
	l := flatLevel("bad")
	l.Surfaces = append(l.Surfaces, leveldata.SurfaceRecord{StartX: 0, StartY: 0, Length: -1, Facing: 0})

	_, err := FromLevel(l)
	if !errors.Is(err, geometry.ErrInvalidGeometry) {
		t.Fatalf("err = %v, want ErrInvalidGeometry", err)
	}
}

func TestFromLevelRejectsEmpty(t *testing.T) {
	l := leveldata.Level{
		Name:     "ghost",
		Surfaces: []leveldata.SurfaceRecord{{StartX: 0, StartY: 0, Length: 10, Facing: 0, Virtual: true}},
	}
	if _, err := FromLevel(l); !errors.Is(err, ErrEmptyLevel) {
		t.Fatalf("err = %v, want ErrEmptyLevel", err)
	}
}

func TestCandidates(t *testing.T) {
	m, err := FromLevel(flatLevel("flat"))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		query geometry.Box
		want  []int
	}{
		{"near floor", geometry.Box{LeftX: 35, RightX: 45, BottomY: 291, TopY: 341}, []int{0}},
		{"open air", geometry.Box{LeftX: 35, RightX: 45, BottomY: 400, TopY: 440}, nil},
		{"at wall", geometry.Box{LeftX: 490, RightX: 510, BottomY: 100, TopY: 140}, []int{1}},
		{"wall foot on floor", geometry.Box{LeftX: 490, RightX: 510, BottomY: 290, TopY: 340}, []int{0, 1}},
		{"whole map", m.Box(), []int{0, 1, 2}},
		{"far outside", geometry.Box{LeftX: -5000, RightX: -4000, BottomY: -5000, TopY: -4000}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Candidates(tt.query)
			for _, i := range tt.want {
				if !slices.Contains(got, i) {
					t.Errorf("Candidates = %v, missing %d", got, i)
				}
			}
			if !slices.IsSorted(got) {
				t.Errorf("Candidates = %v, not ascending", got)
			}
			if slices.Contains(got, 3) {
				t.Errorf("virtual surface returned: %v", got)
			}
			if tt.want == nil && len(got) != 0 {
				t.Errorf("Candidates = %v, want none", got)
			}
		})
	}
}

func TestCandidatesNegativeCoordinates(t *testing.T) {
	s := geometry.MustSurface(-1000, -500, 100, math.Pi/2, false)
	m, err := New("below", []geometry.Surface{s}, nil)
	if err != nil {
		t.Fatal(err)
	}
	got := m.Candidates(geometry.Box{LeftX: -960, RightX: -950, BottomY: -510, TopY: -460})
	if !slices.Equal(got, []int{0}) {
		t.Errorf("Candidates = %v, want [0]", got)
	}
}

func allocatedBytes(fn func()) uint64 {
	var before, after runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&before)
	fn()
	runtime.ReadMemStats(&after)
	return after.TotalAlloc - before.TotalAlloc
}

func TestLongDiagonalKeepsIndexSmall(t *testing.T) {
	var m *GameMap
	var err error
	used := allocatedBytes(func() {
		m, err = FromLevel(leveldata.Level{
			Name:     "diagonal",
			Surfaces: []leveldata.SurfaceRecord{{StartX: 0, StartY: 0, Length: 1e6, Facing: 0.75 * math.Pi}},
		})
	})
	if err != nil {
		t.Fatal(err)
	}
	if used > 64<<20 {
		t.Errorf("building the map allocated %d MB", used>>20)
	}

	// a point on the line y = x
	got := m.Candidates(geometry.Box{LeftX: 5000, RightX: 5010, BottomY: 4990, TopY: 5040})
	if !slices.Equal(got, []int{0}) {
		t.Errorf("Candidates = %v, want [0]", got)
	}
}

func TestIndexFallsBackToLinearScan(t *testing.T) {
	tests := []struct {
		name     string
		surfaces []geometry.Surface
	}{
		{"huge extent", []geometry.Surface{
			geometry.MustSurface(0, 0, 1e12, math.Pi/2, false),
			geometry.MustSurface(100, 0, 50, math.Pi, false),
		}},
		{"many spanning surfaces", func() []geometry.Surface {
			var out []geometry.Surface
			for i := 0; i < 64; i++ {
				out = append(out, geometry.MustSurface(float64(i), 0, 1e6, 0.75*math.Pi, false))
			}
			return append(out, geometry.MustSurface(100, 0, 50, math.Pi, false))
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m *GameMap
			var err error
			used := allocatedBytes(func() { m, err = New(tt.name, tt.surfaces, nil) })
			if err != nil {
				t.Fatal(err)
			}
			if used > 64<<20 {
				t.Errorf("building the map allocated %d MB", used>>20)
			}
			if m.index.linear == nil {
				t.Fatal("expected a linear index")
			}

			wall := len(tt.surfaces) - 1
			got := m.Candidates(geometry.Box{LeftX: 95, RightX: 105, BottomY: 10, TopY: 40})
			if !slices.Contains(got, wall) || !slices.IsSorted(got) {
				t.Errorf("Candidates = %v, want ascending and containing %d", got, wall)
			}
			if got := m.Candidates(geometry.Box{LeftX: 5e5, RightX: 5e5 + 10, BottomY: -100, TopY: -50}); len(got) != 0 {
				t.Errorf("Candidates = %v, want none", got)
			}
		})
	}
}

func TestWithEntranceWall(t *testing.T) {
	m, err := FromLevel(flatLevel("flat"))
	if err != nil {
		t.Fatal(err)
	}
	walled := m.WithEntranceWall()

	if walled.Len() != m.Len()+1 || m.Len() != 4 {
		t.Fatalf("len = %d, original %d", walled.Len(), m.Len())
	}
	wall := walled.Surface(walled.Len() - 1)
	if wall.Type != geometry.Wall || !wall.FacesRight() {
		t.Errorf("entrance wall type=%v facesRight=%v", wall.Type, wall.FacesRight())
	}
	if wall.LeftX != m.Box().LeftX || math.Abs(wall.BottomY-m.Box().BottomY) > 1e-9 || wall.TopY != m.Box().TopY {
		t.Errorf("entrance wall box = %+v, map box %+v", wall.Box, m.Box())
	}
	if walled.Box() != m.Box() {
		t.Errorf("box changed: %+v vs %+v", walled.Box(), m.Box())
	}
}

func TestSpawnAndFeatures(t *testing.T) {
	seq := cfg.SequenceConfig{SpawnOffsetX: 20, SpawnY: 300, FeatureSpawnOffsetX: 40}

	l := flatLevel("plain")
	m, err := FromLevel(l)
	if err != nil {
		t.Fatal(err)
	}
	if x, y := m.Spawn(seq); x != 20 || y != 300 {
		t.Errorf("Spawn = (%v, %v), want (20, 300)", x, y)
	}
	if !m.ClampCameraY() {
		t.Error("plain map should clamp camera y")
	}

	l.Features = []string{FeatureSpawnOffset, FeatureFreeCameraY, "somethingElse", FeatureSpawnOffset}
	m, err = FromLevel(l)
	if err != nil {
		t.Fatal(err)
	}
	if x, _ := m.Spawn(seq); x != 60 {
		t.Errorf("Spawn x = %v, want 60", x)
	}
	if m.ClampCameraY() {
		t.Error("freeCameraY map should not clamp camera y")
	}
	if !m.HasFeature("somethingElse") || len(m.Features()) != 3 {
		t.Errorf("Features = %v, unknown flags must be kept once", m.Features())
	}
}

func TestSample(t *testing.T) {
	var pool []*GameMap
	for _, name := range []string{"a", "b", "c"} {
		m, err := FromLevel(flatLevel(name))
		if err != nil {
			t.Fatal(err)
		}
		pool = append(pool, m)
	}

	rng := rand.New(rand.NewPCG(1, 2))
	got := Sample(pool, 5, rng)
	if len(got) != 5 {
		t.Fatalf("len = %d, want 5", len(got))
	}

	// the first three draws exhaust the bag, so they are all distinct
	seen := map[string]bool{}
	for _, m := range got[:3] {
		if seen[m.Name()] {
			t.Errorf("repeat %s before the pool was exhausted", m.Name())
		}
		seen[m.Name()] = true
	}
	if got[3].Name() == got[4].Name() {
		t.Errorf("repeat %s within the refilled bag", got[3].Name())
	}

	if Sample(nil, 5, rng) != nil {
		t.Error("empty pool should sample nothing")
	}
}

const flatJSON = `{"surfaces":[[0,300,800,1.5707963267948966],[800,500,800,4.71238898038469]]}`

func TestBuildSequence(t *testing.T) {
	t.Cleanup(cfg.Reset)
	cfg.Sequence.Length = 4
	cfg.Sequence.EntranceWall = true

	fsys := fstest.MapFS{
		"levels/pool.json": {Data: []byte(`{"values":["one.json","two.json"]}`)},
		"levels/one.json":  {Data: []byte(flatJSON)},
		"levels/two.json":  {Data: []byte(flatJSON)},
		"levels/bad.json":  {Data: []byte(`{"surfaces":[[0,0,-5,0]]}`)},
		"broken/pool.json": {Data: []byte(`{"values":["missing.json"]}`)},
	}
	f := leveldata.FSFetcher{FS: fsys}
	ctx := context.Background()
	rng := rand.New(rand.NewPCG(7, 7))

	t.Run("static", func(t *testing.T) {
		maps, err := BuildSequence(ctx, StaticSource(flatLevel("inline")), f, rng)
		if err != nil {
			t.Fatal(err)
		}
		if len(maps) != 1 || maps[0].Name() != "inline" {
			t.Errorf("maps = %v", maps)
		}
	})

	t.Run("sequential", func(t *testing.T) {
		maps, err := BuildSequence(ctx, SequentialSource("levels/two.json", "levels/one.json"), f, rng)
		if err != nil {
			t.Fatal(err)
		}
		if len(maps) != 2 || maps[0].Name() != "two" || maps[1].Name() != "one" {
			t.Errorf("maps out of order")
		}
	})

	t.Run("pool", func(t *testing.T) {
		maps, err := BuildSequence(ctx, PoolSource("levels/pool.json", 0), f, rng)
		if err != nil {
			t.Fatal(err)
		}
		if len(maps) != 4 {
			t.Fatalf("len = %d, want configured 4", len(maps))
		}
		if maps[0].Len() != 3 {
			t.Errorf("first map has %d surfaces, want entrance wall added", maps[0].Len())
		}
		if maps[1].Len() != 2 {
			t.Errorf("later maps must not get an entrance wall")
		}
	})

	t.Run("bad geometry", func(t *testing.T) {
		_, err := BuildSequence(ctx, SequentialSource("levels/bad.json"), f, rng)
		var loadErr *MapLoadError
		if !errors.As(err, &loadErr) || loadErr.Ref != "levels/bad.json" {
			t.Fatalf("err = %v, want MapLoadError for bad.json", err)
		}
		if !errors.Is(err, geometry.ErrInvalidGeometry) {
			t.Errorf("err = %v, want to wrap ErrInvalidGeometry", err)
		}
	})

	t.Run("missing pool entry", func(t *testing.T) {
		_, err := BuildSequence(ctx, PoolSource("broken/pool.json", 3), f, rng)
		var loadErr *MapLoadError
		if !errors.As(err, &loadErr) || loadErr.Ref != "broken/missing.json" {
			t.Fatalf("err = %v, want MapLoadError for broken/missing.json", err)
		}
	})

	t.Run("missing pool", func(t *testing.T) {
		_, err := BuildSequence(ctx, PoolSource("nowhere/pool.json", 3), f, rng)
		var loadErr *MapLoadError
		if !errors.As(err, &loadErr) {
			t.Fatalf("err = %v, want MapLoadError", err)
		}
	})

	t.Run("empty sequential", func(t *testing.T) {
		if _, err := BuildSequence(ctx, SequentialSource(), f, rng); err == nil {
			t.Fatal("expected error")
		}
	})
}
