package systems

import (
	"math"
	"slices"
	"time"

	"github.com/automoto/ledgeline/components"
	cfg "github.com/automoto/ledgeline/config"
	"github.com/automoto/ledgeline/level"
	"github.com/automoto/ledgeline/shared/gamemath"
	"github.com/automoto/ledgeline/shared/geometry"
	"github.com/yohamta/donburi"
)

// snapOffset keeps a resolved body one unit clear of the surface it hit.
const snapOffset = 1.0

// sweepMargin grows the broad-phase query past the body so surfaces a
// clamp can move the body onto are still considered.
const sweepMargin = 2.0

// UpdateMovement advances every player against the active map.
func UpdateMovement(w donburi.World, now time.Time) {
	seq, rules, ok := activeSequence(w)
	if !ok {
		return
	}
	m := seq.Current()
	grace := rules.Physics.WallJumpGrace()

	components.Player.Each(w, func(e *donburi.Entry) {
		ResolveMovement(components.Player.Get(e), m, rules.Player, grace, now)
	})
}

// ResolveMovement moves p by its speed against m's solid surfaces. Walls
// are resolved first, then floors, then ceilings; within each group
// surfaces run in insertion order, so a later surface overrides an earlier
// one. A surface only acts on the tick the body's path crosses it.
func ResolveMovement(p *components.PlayerData, m *level.GameMap, body cfg.PlayerConfig, grace time.Duration, now time.Time) {
	p.OnGround = false

	box := m.Box()
	nextX := math.Max(p.X+p.SpeedX, box.LeftX+1)
	nextY := p.Y + p.SpeedY

	c := newCandidates(m, sweptBody(p.X, p.Y, nextX, nextY, body))

	for i, ok := c.next(-1, geometry.Wall); ok; i, ok = c.next(i, geometry.Wall) {
		nextX = resolveWall(p, m.Surface(i), nextX, nextY, body, now.Add(grace))
		c.cover(sweptBody(p.X, p.Y, nextX, nextY, body))
	}
	for i, ok := c.next(-1, geometry.Floor); ok; i, ok = c.next(i, geometry.Floor) {
		nextY = resolveFloor(p, m.Surface(i), nextX, nextY, body)
		c.cover(sweptBody(p.X, p.Y, nextX, nextY, body))
	}
	for i, ok := c.next(-1, geometry.Ceiling); ok; i, ok = c.next(i, geometry.Ceiling) {
		nextX, nextY = resolveCeiling(p, m.Surface(i), nextX, nextY, body)
		c.cover(sweptBody(p.X, p.Y, nextX, nextY, body))
	}

	p.X, p.Y = nextX, nextY
}

// candidates walks broad-phase results in insertion order. A surface outside
// the queried box cannot act on a body whose sweep stays inside it, so when a
// clamp moves the body out, the box is grown and re-queried and the walk
// resumes after the last surface visited.
type candidates struct {
	m       *level.GameMap
	queried geometry.Box
	list    []int
}

func newCandidates(m *level.GameMap, query geometry.Box) *candidates {
	return &candidates{m: m, queried: query, list: m.Candidates(query)}
}

// next returns the first candidate of type t after index last.
func (c *candidates) next(last int, t geometry.SurfaceType) (int, bool) {
	pos, _ := slices.BinarySearch(c.list, last+1)
	for _, i := range c.list[pos:] {
		if c.m.Surface(i).Type == t {
			return i, true
		}
	}
	return 0, false
}

func (c *candidates) cover(b geometry.Box) {
	if c.queried.Contains(b) {
		return
	}
	c.queried = c.queried.Union(b)
	c.list = c.m.Candidates(c.queried)
}

// sweptBody is the box covering the body at both ends of its move.
func sweptBody(x, y, nextX, nextY float64, body cfg.PlayerConfig) geometry.Box {
	return geometry.Box{
		LeftX:   math.Min(x, nextX) - body.Width - sweepMargin,
		RightX:  math.Max(x, nextX) + body.Width + sweepMargin,
		BottomY: math.Min(y, nextY) - sweepMargin,
		TopY:    math.Max(y, nextY) + body.Height + sweepMargin,
	}
}

// resolveWall stops a crossing of the wall's line in the direction it
// blocks. A wall facing +x blocks bodies moving left from its right side;
// any other wall blocks bodies moving right from its left side.
func resolveWall(p *components.PlayerData, s geometry.Surface, nextX, nextY float64, body cfg.PlayerConfig, deadline time.Time) float64 {
	if p.X > s.RightX && nextX > s.RightX {
		return nextX
	}
	if p.X < s.LeftX && nextX < s.LeftX {
		return nextX
	}
	if p.Y > s.TopY && nextY > s.TopY {
		return nextX
	}
	if p.Y+body.Height < s.BottomY && nextY+body.Height < s.BottomY {
		return nextX
	}

	switch {
	case s.FacesRight() && nextX < s.LeftX:
		nextX = s.LeftX + snapOffset
	case !s.FacesRight() && nextX > s.LeftX:
		nextX = s.LeftX - snapOffset
	default:
		return nextX
	}
	p.TouchWall(s, deadline)
	return nextX
}

// resolveFloor catches a body whose feet cross the floor line this tick.
// The line is extended past the endpoints, which is what lets slopes carry
// a walking body.
func resolveFloor(p *components.PlayerData, s geometry.Surface, nextX, nextY float64, body cfg.PlayerConfig) float64 {
	halfW := body.Width / 2
	if p.X-halfW > s.RightX && nextX-halfW > s.RightX {
		return nextY
	}
	if p.X+halfW < s.LeftX && nextX+halfW < s.LeftX {
		return nextY
	}
	if p.Y > s.TopY && nextY > s.TopY {
		return nextY
	}
	if p.Y < s.BottomY && nextY < s.BottomY {
		return nextY
	}

	curTop := s.HeightAt(p.X)
	nextTop := s.HeightAt(nextX)
	if p.Y > curTop && nextY <= nextTop {
		nextY = gamemath.SnapAbove(nextTop, snapOffset)
		p.Land()
	}
	return nextY
}

// resolveCeiling stops a head crossing the ceiling line from below, or
// pushes a body that already straddles the line and moves sideways back out
// to the nearer end of the ceiling. Bodies dropping onto a ceiling from
// above pass through it.
func resolveCeiling(p *components.PlayerData, s geometry.Surface, nextX, nextY float64, body cfg.PlayerConfig) (float64, float64) {
	head := p.Y + body.Height
	nextHead := nextY + body.Height

	if p.X > s.RightX && nextX > s.RightX {
		return nextX, nextY
	}
	if p.X < s.LeftX && nextX < s.LeftX {
		return nextX, nextY
	}
	if p.Y > s.TopY && nextY > s.TopY {
		return nextX, nextY
	}
	if head < s.BottomY && nextHead < s.BottomY {
		return nextX, nextY
	}

	curBottom := s.HeightAt(p.X)
	nextBottom := s.HeightAt(nextX)
	straddling := p.Y < curBottom && head > curBottom
	switch {
	case head < curBottom && nextHead >= nextBottom:
		nextY = gamemath.SnapBelow(nextBottom, body.Height, snapOffset)
	case straddling && nextX != p.X && nextY <= nextBottom && nextHead > nextBottom:
		if p.X-s.LeftX >= s.RightX-p.X {
			nextX = s.RightX + snapOffset
		} else {
			nextX = s.LeftX - snapOffset
		}
	}
	return nextX, nextY
}
