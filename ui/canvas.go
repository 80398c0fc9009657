package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// cellKind picks the style used for a character on the canvas.
type cellKind int

const (
	cellEmpty cellKind = iota
	cellRing
	cellEntry
	cellExit
	cellCar
)

type cell struct {
	ch   rune
	kind cellKind
}

// canvas is a character grid centered on the roundabout. Terminal cells
// are about twice as tall as they are wide, so x is stretched by two.
type canvas struct {
	rows, cols int
	unit       float64 // geometry units per row
	cells      [][]cell
}

func newCanvas(rows int, extent float64) *canvas {
	cols := rows*2 + 1
	c := &canvas{rows: rows, cols: cols, unit: extent / float64(rows/2)}
	c.cells = make([][]cell, rows)
	for r := range c.cells {
		c.cells[r] = make([]cell, cols)
		for k := range c.cells[r] {
			c.cells[r][k] = cell{ch: ' '}
		}
	}
	return c
}

// locate maps a geometry offset from the center to a grid cell.
func (c *canvas) locate(x, y float64) (row, col int, ok bool) {
	row = c.rows/2 + int(math.Round(y/c.unit))
	col = c.cols/2 + int(math.Round(2*x/c.unit))
	ok = row >= 0 && row < c.rows && col >= 0 && col < c.cols
	return row, col, ok
}

func (c *canvas) set(x, y float64, ch rune, kind cellKind) {
	if row, col, ok := c.locate(x, y); ok {
		c.cells[row][col] = cell{ch: ch, kind: kind}
	}
}

// label writes text centered on (x, y), clipped to the grid.
func (c *canvas) label(x, y float64, text string, kind cellKind) {
	row, col, _ := c.locate(x, y)
	if row < 0 || row >= c.rows {
		return
	}
	runes := []rune(text)
	start := col - len(runes)/2
	if start < 0 {
		start = 0
	}
	if start+len(runes) > c.cols {
		start = c.cols - len(runes)
	}
	for i, r := range runes {
		if k := start + i; k >= 0 && k < c.cols {
			c.cells[row][k] = cell{ch: r, kind: kind}
		}
	}
}

func (c *canvas) ring(radius float64) {
	for deg := 0; deg < 360; deg += 3 {
		rad := float64(deg) * math.Pi / 180
		c.set(radius*math.Cos(rad), radius*math.Sin(rad), '·', cellRing)
	}
}

func styleFor(kind cellKind) *lipgloss.Style {
	switch kind {
	case cellRing:
		return &ringStyle
	case cellEntry:
		return &entryStyle
	case cellExit:
		return &exitStyle
	case cellCar:
		return &carStyle
	}
	return nil
}

func (c *canvas) String() string {
	var b strings.Builder
	for r, row := range c.cells {
		for _, cl := range row {
			if s := styleFor(cl.kind); s != nil {
				b.WriteString(s.Render(string(cl.ch)))
			} else {
				b.WriteRune(cl.ch)
			}
		}
		if r < len(c.cells)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
