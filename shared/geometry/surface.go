// Package geometry holds the surface primitive levels are built from. It has
// no dependencies on ebiten, donburi, or resolv.
package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/automoto/ledgeline/shared/gamemath"
)

// ErrInvalidGeometry is returned for surfaces with non-finite values or a
// negative length.
var ErrInvalidGeometry = errors.New("invalid geometry")

// wallEpsilon absorbs float error when a facing is meant to be exactly 0 or π.
const wallEpsilon = 1e-9

type SurfaceType int

const (
	Floor SurfaceType = iota
	Ceiling
	Wall
)

func (t SurfaceType) String() string {
	switch t {
	case Floor:
		return "floor"
	case Ceiling:
		return "ceiling"
	case Wall:
		return "wall"
	}
	return fmt.Sprintf("SurfaceType(%d)", int(t))
}

// Box is an axis-aligned bounding box in world units, y pointing up.
type Box struct {
	LeftX, RightX float64
	BottomY, TopY float64
}

// BoxOf returns the ordered box spanned by two points.
func BoxOf(startX, startY, endX, endY float64) Box {
	return Box{
		LeftX:   math.Min(startX, endX),
		RightX:  math.Max(startX, endX),
		BottomY: math.Min(startY, endY),
		TopY:    math.Max(startY, endY),
	}
}

// Union returns the smallest box containing both.
func (b Box) Union(o Box) Box {
	return Box{
		LeftX:   math.Min(b.LeftX, o.LeftX),
		RightX:  math.Max(b.RightX, o.RightX),
		BottomY: math.Min(b.BottomY, o.BottomY),
		TopY:    math.Max(b.TopY, o.TopY),
	}
}

// Grow returns b extended by d on every side.
func (b Box) Grow(d float64) Box {
	return Box{LeftX: b.LeftX - d, RightX: b.RightX + d, BottomY: b.BottomY - d, TopY: b.TopY + d}
}

// Overlaps reports whether the boxes share any point, edges included.
func (b Box) Overlaps(o Box) bool {
	return b.LeftX <= o.RightX && o.LeftX <= b.RightX &&
		b.BottomY <= o.TopY && o.BottomY <= b.TopY
}

// Contains reports whether o lies entirely inside b.
func (b Box) Contains(o Box) bool {
	return b.LeftX <= o.LeftX && o.RightX <= b.RightX &&
		b.BottomY <= o.BottomY && o.TopY <= b.TopY
}

// Intersect returns the overlap of the boxes, or false if they are disjoint.
func (b Box) Intersect(o Box) (Box, bool) {
	if !b.Overlaps(o) {
		return Box{}, false
	}
	return Box{
		LeftX:   math.Max(b.LeftX, o.LeftX),
		RightX:  math.Min(b.RightX, o.RightX),
		BottomY: math.Max(b.BottomY, o.BottomY),
		TopY:    math.Min(b.TopY, o.TopY),
	}, true
}

func (b Box) Width() float64  { return b.RightX - b.LeftX }
func (b Box) Height() float64 { return b.TopY - b.BottomY }

// NormalizeFacing maps any angle into [0, 2π).
func NormalizeFacing(facing float64) float64 {
	f := math.Mod(facing, 2*math.Pi)
	if f < 0 {
		f += 2 * math.Pi
	}
	if 2*math.Pi-f < wallEpsilon {
		f = 0
	}
	return f
}

// Classify derives the collision role from a facing angle. Facings exactly on
// 0 or π (mod 2π) are walls, the open upper half-turn is floor, the open lower
// half-turn ceiling.
func Classify(facing float64) SurfaceType {
	f := NormalizeFacing(facing)
	switch {
	case f < wallEpsilon, math.Abs(f-math.Pi) < wallEpsilon:
		return Wall
	case f < math.Pi:
		return Floor
	default:
		return Ceiling
	}
}

// Surface is an oriented line segment. Facing is the outward normal: the
// segment runs from the start point in direction Facing − π/2.
type Surface struct {
	StartX, StartY float64
	Length         float64
	Facing         float64
	Virtual        bool

	EndX, EndY float64
	Box
	Type SurfaceType
}

// NewSurface validates the raw parameters and derives the endpoint, box and type.
func NewSurface(startX, startY, length, facing float64, virtual bool) (Surface, error) {
	for _, v := range []float64{startX, startY, length, facing} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Surface{}, fmt.Errorf("%w: non-finite value %v", ErrInvalidGeometry, v)
		}
	}
	if length < 0 {
		return Surface{}, fmt.Errorf("%w: negative length %v", ErrInvalidGeometry, length)
	}

	dir := facing - math.Pi/2
	endX := startX + math.Cos(dir)*length
	endY := startY + math.Sin(dir)*length

	return Surface{
		StartX:  startX,
		StartY:  startY,
		Length:  length,
		Facing:  facing,
		Virtual: virtual,
		EndX:    endX,
		EndY:    endY,
		Box:     BoxOf(startX, startY, endX, endY),
		Type:    Classify(facing),
	}, nil
}

// MustSurface is NewSurface for literals known to be valid.
func MustSurface(startX, startY, length, facing float64, virtual bool) Surface {
	s, err := NewSurface(startX, startY, length, facing, virtual)
	if err != nil {
		panic(err)
	}
	return s
}

// FacesRight reports a wall whose normal points at +x. Such a wall only
// blocks bodies coming from its right side.
func (s Surface) FacesRight() bool {
	return NormalizeFacing(s.Facing) < wallEpsilon
}

// HeightAt is the y of the surface line at x, extended past the endpoints.
func (s Surface) HeightAt(x float64) float64 {
	return gamemath.SurfaceHeightAt(s.StartX, s.StartY, s.Facing, x)
}
