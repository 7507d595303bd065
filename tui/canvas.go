package tui

import (
	"math"

	"github.com/automoto/ledgeline/render"
	"github.com/automoto/ledgeline/shared/geometry"
)

// Canvas is a grid of runes addressed in view pixels. Each cell covers
// CellW by CellH pixels.
type Canvas struct {
	Cols, Rows   int
	CellW, CellH float64
	cells        []rune
}

func NewCanvas(cols, rows int, cellW, cellH float64) *Canvas {
	c := &Canvas{Cols: cols, Rows: rows, CellW: cellW, CellH: cellH, cells: make([]rune, cols*rows)}
	c.Clear()
	return c
}

// ViewSize is the pixel extent the canvas covers.
func (c *Canvas) ViewSize() (w, h float64) {
	return float64(c.Cols) * c.CellW, float64(c.Rows) * c.CellH
}

func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = ' '
	}
}

// At returns the rune at a cell, or zero outside the grid.
func (c *Canvas) At(col, row int) rune {
	if col < 0 || row < 0 || col >= c.Cols || row >= c.Rows {
		return 0
	}
	return c.cells[row*c.Cols+col]
}

// Set writes a rune at a cell; writes outside the grid are dropped.
func (c *Canvas) Set(col, row int, r rune) {
	if col < 0 || row < 0 || col >= c.Cols || row >= c.Rows {
		return
	}
	c.cells[row*c.Cols+col] = r
}

func (c *Canvas) cell(x, y float64) (int, int) {
	return int(math.Floor(x / c.CellW)), int(math.Floor(y / c.CellH))
}

// Line plots a pixel-space segment, sampling about once per cell.
func (c *Canvas) Line(x0, y0, x1, y1 float64, r rune) {
	w, h := c.ViewSize()
	x0, y0, x1, y1, ok := clip(x0, y0, x1, y1, 0, 0, w, h)
	if !ok {
		return
	}
	steps := int(math.Ceil(math.Max(math.Abs(x1-x0)/c.CellW, math.Abs(y1-y0)/c.CellH)))
	for i := 0; i <= steps; i++ {
		t := 0.0
		if steps > 0 {
			t = float64(i) / float64(steps)
		}
		col, row := c.cell(x0+(x1-x0)*t, y0+(y1-y0)*t)
		c.Set(col, row, r)
	}
}

// Fill covers every cell the pixel rect touches.
func (c *Canvas) Fill(rect render.Rect, r rune) {
	c0, r0 := c.cell(rect.X, rect.Y)
	c1, r1 := c.cell(rect.X+rect.W-1e-9, rect.Y+rect.H-1e-9)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			c.Set(col, row, r)
		}
	}
}

// Text writes s starting at a cell, clipped to the row.
func (c *Canvas) Text(col, row int, s string) {
	for _, r := range s {
		c.Set(col, row, r)
		col++
	}
}

// SegmentRune picks the glyph for a surface.
func SegmentRune(s render.Segment) rune {
	switch {
	case s.Virtual:
		return '.'
	case s.Type == geometry.Wall:
		return '|'
	case s.Type == geometry.Ceiling:
		return '='
	}
	if math.Abs(s.Y1-s.Y0) > math.Abs(s.X1-s.X0)/4 {
		if (s.Y1 < s.Y0) == (s.X1 > s.X0) {
			return '/'
		}
		return '\\'
	}
	return '_'
}

// clip is Liang-Barsky against the rect [minX, maxX) x [minY, maxY).
func clip(x0, y0, x1, y1, minX, minY, maxX, maxY float64) (float64, float64, float64, float64, bool) {
	dx, dy := x1-x0, y1-y0
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-dx, x0 - minX},
		{dx, maxX - x0},
		{-dy, y0 - minY},
		{dy, maxY - y0},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			t0 = math.Max(t0, t)
		} else {
			t1 = math.Min(t1, t)
		}
		if t0 > t1 {
			return 0, 0, 0, 0, false
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}
