package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// canvas is a character grid with a parallel color grid. Cells with an
// empty color render unstyled.
type canvas struct {
	w, h   int
	cells  [][]rune
	colors [][]lipgloss.Color
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: w, h: h}
	c.cells = make([][]rune, h)
	c.colors = make([][]lipgloss.Color, h)
	for y := 0; y < h; y++ {
		c.cells[y] = make([]rune, w)
		c.colors[y] = make([]lipgloss.Color, w)
		for x := range c.cells[y] {
			c.cells[y][x] = ' '
		}
	}
	return c
}

func (c *canvas) inBounds(x, y int) bool {
	return x >= 0 && x < c.w && y >= 0 && y < c.h
}

// set writes a cell unconditionally.
func (c *canvas) set(x, y int, r rune, color lipgloss.Color) {
	if !c.inBounds(x, y) {
		return
	}
	c.cells[y][x] = r
	c.colors[y][x] = color
}

// plot writes a cell only if it is empty.
func (c *canvas) plot(x, y int, r rune, color lipgloss.Color) {
	if c.inBounds(x, y) && c.cells[y][x] == ' ' {
		c.set(x, y, r, color)
	}
}

func (c *canvas) at(x, y int) rune {
	if !c.inBounds(x, y) {
		return 0
	}
	return c.cells[y][x]
}

// line draws a Bresenham line between two cells with plot semantics.
// Segments entirely on one side of the canvas are skipped.
func (c *canvas) line(x0, y0, x1, y1 int, r rune, color lipgloss.Color) {
	if (x0 < 0 && x1 < 0) || (y0 < 0 && y1 < 0) ||
		(x0 >= c.w && x1 >= c.w) || (y0 >= c.h && y1 >= c.h) {
		return
	}
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	if dx-dy > 4*(c.w+c.h) {
		return
	}
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy

	for {
		c.plot(x0, y0, r, color)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// circle draws an ellipse-corrected circle outline of radius r cells.
func (c *canvas) circle(cx, cy int, r float64, glyph rune, color lipgloss.Color) {
	if r < 1 {
		return
	}
	steps := int(2 * math.Pi * r)
	if steps < 8 {
		steps = 8
	}
	if steps > 720 {
		steps = 720
	}
	for i := 0; i < steps; i++ {
		theta := 2 * math.Pi * float64(i) / float64(steps)
		x := cx + int(math.Round(r*math.Cos(theta)))
		y := cy - int(math.Round(r*math.Sin(theta)*0.5)) // Aspect ratio correction
		c.plot(x, y, glyph, color)
	}
}

// text writes s starting at (x, y), overwriting only empty or faint cells.
func (c *canvas) text(x, y int, s string, color lipgloss.Color, faint map[rune]bool) {
	if y < 0 || y >= c.h {
		return
	}
	for i, r := range []rune(s) {
		px := x + i
		if px < 0 {
			continue
		}
		if px >= c.w {
			return
		}
		if cur := c.cells[y][px]; cur == ' ' || faint[cur] {
			c.set(px, y, r, color)
		}
	}
}

// String renders the canvas, grouping runs of equal color into one style.
func (c *canvas) String() string {
	var b strings.Builder
	for y := 0; y < c.h; y++ {
		var run strings.Builder
		var runColor lipgloss.Color
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if runColor == "" {
				b.WriteString(run.String())
			} else {
				b.WriteString(lipgloss.NewStyle().Foreground(runColor).Render(run.String()))
			}
			run.Reset()
		}
		for x := 0; x < c.w; x++ {
			col := c.colors[y][x]
			if c.cells[y][x] == ' ' {
				col = ""
			}
			if col != runColor {
				flush()
				runColor = col
			}
			run.WriteRune(c.cells[y][x])
		}
		flush()
		if y < c.h-1 {
			b.WriteRune('\n')
		}
	}
	return b.String()
}

// plain renders the canvas without styling.
func (c *canvas) plain() string {
	lines := make([]string, c.h)
	for y := 0; y < c.h; y++ {
		lines[y] = string(c.cells[y])
	}
	return strings.Join(lines, "\n")
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
