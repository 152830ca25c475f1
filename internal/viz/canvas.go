package viz

import (
	"math"
	"strings"

	"functrace/internal/poly"
)

// Braille patterns pack a 2x4 dot grid into one terminal cell, giving
// the canvas a sub-pixel resolution of (Width*2) x (Height*4).
//
//	1 4
//	2 5
//	3 6
//	7 8
var brailleDots = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

const brailleBase = 0x2800

type Canvas struct {
	Width  int
	Height int
	cells  [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, cells: make([][]rune, h)}
	for i := range c.cells {
		c.cells[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

func (c *Canvas) Clear() {
	for i := range c.cells {
		for j := range c.cells[i] {
			c.cells[i][j] = brailleBase
		}
	}
}

// SetDot lights the sub-pixel at (x, y). Out-of-range dots are dropped.
func (c *Canvas) SetDot(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.cells[row][col] |= brailleDots[y%4][x%2]
}

// Line draws a sub-pixel line segment with Bresenham's algorithm.
func (c *Canvas) Line(x0, y0, x1, y1 int) {
	dx, dy := absInt(x1-x0), absInt(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx - dy
	for {
		c.SetDot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.cells {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// Viewport maps world coordinates onto the canvas sub-pixel grid.
type Viewport struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// FitViewport computes a viewport covering every finite point of the
// given polylines, padded by the given fraction of each axis range.
func FitViewport(lines [][]poly.Point, pad float64) Viewport {
	v := Viewport{MinX: -1, MaxX: 1, MinY: -1, MaxY: 1}
	seen := false
	for _, pts := range lines {
		for _, p := range pts {
			if !p.IsValid() {
				continue
			}
			if !seen {
				v = Viewport{MinX: p.X, MaxX: p.X, MinY: p.Y, MaxY: p.Y}
				seen = true
				continue
			}
			v.MinX = math.Min(v.MinX, p.X)
			v.MaxX = math.Max(v.MaxX, p.X)
			v.MinY = math.Min(v.MinY, p.Y)
			v.MaxY = math.Max(v.MaxY, p.Y)
		}
	}

	// Degenerate ranges blow up projection; widen them.
	if v.MaxX-v.MinX < 1e-9 {
		v.MinX, v.MaxX = v.MinX-1, v.MaxX+1
	}
	if v.MaxY-v.MinY < 1e-9 {
		v.MinY, v.MaxY = v.MinY-1, v.MaxY+1
	}

	px := (v.MaxX - v.MinX) * pad
	py := (v.MaxY - v.MinY) * pad
	v.MinX -= px
	v.MaxX += px
	v.MinY -= py
	v.MaxY += py
	return v
}

// Project maps a world point to sub-pixel canvas coordinates, flipping
// the y-axis so larger values render higher.
func (v Viewport) Project(p poly.Point, c *Canvas) (int, int, bool) {
	if !p.IsValid() {
		return 0, 0, false
	}
	w := float64(c.Width*2 - 1)
	h := float64(c.Height*4 - 1)
	x := (p.X - v.MinX) / (v.MaxX - v.MinX) * w
	y := h - (p.Y-v.MinY)/(v.MaxY-v.MinY)*h
	return int(math.Round(x)), int(math.Round(y)), true
}

// DrawPolyline projects the points and connects consecutive visible
// samples with line segments.
func DrawPolyline(c *Canvas, v Viewport, pts []poly.Point) {
	prevOK := false
	var px, py int
	for _, p := range pts {
		x, y, ok := v.Project(p, c)
		if !ok {
			prevOK = false
			continue
		}
		if prevOK {
			c.Line(px, py, x, y)
		} else {
			c.SetDot(x, y)
		}
		px, py = x, y
		prevOK = true
	}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
