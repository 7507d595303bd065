package render

import (
	"fmt"

	"github.com/automoto/ledgeline/game"
	"github.com/automoto/ledgeline/shared/geometry"
)

// Segment is a surface projected into view pixels.
type Segment struct {
	X0, Y0, X1, Y1 float64
	Type           geometry.SurfaceType
	Virtual        bool
}

// Rect is an axis-aligned box in view pixels, top-left origin.
type Rect struct {
	X, Y, W, H float64
}

// Segments projects every surface of the snapshot's map through c.
func (c *Camera) Segments(snap game.Snapshot) []Segment {
	if snap.Map == nil {
		return nil
	}
	out := make([]Segment, 0, snap.Map.Len())
	for i := 0; i < snap.Map.Len(); i++ {
		s := snap.Map.Surface(i)
		x0, y0 := c.WorldToScreen(s.StartX, s.StartY)
		x1, y1 := c.WorldToScreen(s.EndX, s.EndY)
		out = append(out, Segment{X0: x0, Y0: y0, X1: x1, Y1: y1, Type: s.Type, Virtual: s.Virtual})
	}
	return out
}

// PlayerRect projects the player's body through c.
func (c *Camera) PlayerRect(snap game.Snapshot) Rect {
	x, y := c.WorldToScreen(snap.Body.LeftX, snap.Body.TopY)
	return Rect{X: x, Y: y, W: snap.Body.Width(), H: snap.Body.Height()}
}

// DebugLines is the text overlay shown in debug mode.
func DebugLines(snap game.Snapshot) []string {
	p := snap.Player
	name := ""
	if snap.Map != nil {
		name = snap.Map.Name()
	}
	jumps := fmt.Sprintf("%d/%d", p.ExtraJump, p.MaxExtraJump)
	if p.UnlimitedJumps() {
		jumps = "unlimited"
	}
	return []string{
		fmt.Sprintf("tick %d  map %d/%d %s", snap.Tick, min(snap.Index+1, snap.Count), snap.Count, name),
		fmt.Sprintf("pos %.1f, %.1f", p.X, p.Y),
		fmt.Sprintf("speed %.2f, %.2f", p.SpeedX, p.SpeedY),
		fmt.Sprintf("ground %v  jumps %s  bounces %d/%d", p.OnGround, jumps, p.BounceTime, p.MaxBounceTime),
	}
}

// StatusLine is the one-line summary shown by both frontends.
func StatusLine(snap game.Snapshot) string {
	if !snap.Active {
		return "Complete"
	}
	return fmt.Sprintf("Map %d of %d", snap.Index+1, snap.Count)
}
