package viz

import (
	"math"
	"strings"

	"github.com/san-kum/eggdive/internal/physics"
)

const brailleBase = 0x2800

// dotBits maps a sub-cell (row, col) to its Braille dot bit.
var dotBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Canvas is a grid of Braille cells. Each cell holds 2x4 dots, so the
// addressable resolution is (Width*2) x (Height*4).
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, Grid: make([][]rune, h)}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Set lights the dot at (x, y). Out of range dots are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 || x >= c.Width*2 || y >= c.Height*4 {
		return
	}
	c.Grid[y/4][x/2] |= dotBits[y%4][x%2]
}

func (c *Canvas) Clear() {
	for _, row := range c.Grid {
		for j := range row {
			row[j] = brailleBase
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx, dy := absInt(x1-x0), absInt(y1-y0)
	sx, sy := 1, 1
	if x1 < x0 {
		sx = -1
	}
	if y1 < y0 {
		sy = -1
	}
	e := dx - dy
	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 > -dy {
			e -= dy
			x0 += sx
		}
		if e2 < dx {
			e += dx
			y0 += sy
		}
	}
}

// DrawHLine draws a dashed horizontal line across the canvas at dot row y.
func (c *Canvas) DrawHLine(y int) {
	for x := 0; x < c.Width*2; x += 2 {
		c.Set(x, y)
	}
}

// DrawEgg draws the egg outline with its tip at dot row tip, blunt end
// up. scale converts metres to dots. Grooves are dotted at their depth
// inside the outline.
func (c *Canvas) DrawEgg(s physics.Shape, tip int, scale float64) {
	cx := c.Width
	rows := int(math.Ceil(s.Height * scale))
	if rows < 1 {
		return
	}
	px, py := 0, tip
	for r := 0; r <= rows; r++ {
		y := math.Min(float64(r)/scale, s.Height)
		hw, err := s.HalfWidth(y)
		if err != nil {
			continue
		}
		x := int(math.Round(hw * scale))
		c.DrawLine(cx-px, py, cx-x, tip-r)
		c.DrawLine(cx+px, py, cx+x, tip-r)
		if g, err := s.GrooveProfile(y); err == nil && s.GrooveDepth > 0 {
			gx := int(math.Round(g * scale))
			c.Set(cx-gx, tip-r)
			c.Set(cx+gx, tip-r)
		}
		px, py = x, tip-r
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
