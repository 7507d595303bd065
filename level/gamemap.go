// Package level builds immutable GameMaps from decoded level data and
// assembles them into map sequences.
package level

import (
	"errors"
	"fmt"
	"log"
	"math"

	cfg "github.com/automoto/ledgeline/config"
	"github.com/automoto/ledgeline/shared/geometry"
	"github.com/automoto/ledgeline/shared/leveldata"
)

// ErrEmptyLevel is returned for levels without a single solid surface.
var ErrEmptyLevel = errors.New("level has no solid surfaces")

// GameMap is one playable level. It is never mutated after New.
type GameMap struct {
	name     string
	surfaces []geometry.Surface
	features []string
	box      geometry.Box

	walls, floors, ceilings []int
	index                   *surfaceIndex
}

// New builds a map from already-validated surfaces. The bounding box covers
// non-virtual surfaces only.
func New(name string, surfaces []geometry.Surface, features []string) (*GameMap, error) {
	m := &GameMap{
		name:     name,
		surfaces: append([]geometry.Surface(nil), surfaces...),
		features: dedupeFeatures(features),
	}

	solid := 0
	for i, s := range m.surfaces {
		if s.Virtual {
			continue
		}
		if solid == 0 {
			m.box = s.Box
		} else {
			m.box = m.box.Union(s.Box)
		}
		solid++

		switch s.Type {
		case geometry.Wall:
			m.walls = append(m.walls, i)
		case geometry.Floor:
			m.floors = append(m.floors, i)
		case geometry.Ceiling:
			m.ceilings = append(m.ceilings, i)
		}
	}
	if solid == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrEmptyLevel)
	}

	for _, f := range m.features {
		if _, ok := Features[f]; !ok {
			log.Printf("[level] %s: unknown feature %q kept without effect", name, f)
		}
	}

	m.index = newSurfaceIndex(m.surfaces, m.box, cfg.Physics.BroadPhaseCell, cfg.Physics.BroadPhasePadding)
	return m, nil
}

// FromLevel validates every surface record and builds the map.
func FromLevel(l leveldata.Level) (*GameMap, error) {
	surfaces := make([]geometry.Surface, 0, len(l.Surfaces))
	for i, r := range l.Surfaces {
		s, err := geometry.NewSurface(r.StartX, r.StartY, r.Length, r.Facing, r.Virtual)
		if err != nil {
			return nil, fmt.Errorf("%s: surface %d: %w", l.Name, i, err)
		}
		surfaces = append(surfaces, s)
	}
	return New(l.Name, surfaces, l.Features)
}

// WithEntranceWall returns a copy of m with a full-height wall on its left
// edge that stops bodies from walking back out of the map.
func (m *GameMap) WithEntranceWall() *GameMap {
	wall := geometry.MustSurface(m.box.LeftX, m.box.TopY, m.box.Height(), 0, false)
	surfaces := append(append([]geometry.Surface(nil), m.surfaces...), wall)
	// box and feature set are unchanged so this cannot fail
	out, err := New(m.name, surfaces, m.features)
	if err != nil {
		panic(err)
	}
	return out
}

func (m *GameMap) Name() string { return m.name }

// Box is the bounding box of every non-virtual surface.
func (m *GameMap) Box() geometry.Box { return m.box }

// Len is the number of surfaces, virtual ones included.
func (m *GameMap) Len() int { return len(m.surfaces) }

// Surface returns the i-th surface in insertion order.
func (m *GameMap) Surface(i int) geometry.Surface { return m.surfaces[i] }

// Features returns a copy of the map's feature flags.
func (m *GameMap) Features() []string {
	return append([]string(nil), m.features...)
}

func (m *GameMap) HasFeature(flag string) bool {
	for _, f := range m.features {
		if f == flag {
			return true
		}
	}
	return false
}

// Walls, Floors and Ceilings return surface indices of that type in
// insertion order. Virtual surfaces are never included.
func (m *GameMap) Walls() []int    { return m.walls }
func (m *GameMap) Floors() []int   { return m.floors }
func (m *GameMap) Ceilings() []int { return m.ceilings }

// Candidates returns the indices of non-virtual surfaces whose box, grown by
// the broad-phase padding, may touch query. Indices are ascending so callers
// keep insertion-order tie-breaks.
func (m *GameMap) Candidates(query geometry.Box) []int {
	return m.index.query(query)
}

// Spawn is where bodies (re)enter this map. The height is fixed unless the
// whole map sits above it, in which case it is measured from the map bottom.
func (m *GameMap) Spawn(seq cfg.SequenceConfig) (x, y float64) {
	x = m.box.LeftX + seq.SpawnOffsetX
	for _, f := range m.features {
		x += Features[f].SpawnOffsetX(seq)
	}
	return x, seq.SpawnY + math.Max(0, m.box.BottomY)
}

// ClampCameraY reports whether renderers should keep the camera inside the
// map's vertical extent.
func (m *GameMap) ClampCameraY() bool {
	for _, f := range m.features {
		if Features[f].FreeCameraY {
			return false
		}
	}
	return true
}

func dedupeFeatures(in []string) []string {
	var out []string
	seen := make(map[string]bool, len(in))
	for _, f := range in {
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}

// finite reports whether every value is a usable coordinate.
func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
