package viz

import "strings"

// Braille patterns give a 2x4 dot grid per character cell, unicode offset
// 0x2800.
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille dot-matrix of Width x Height character cells, so the
// drawable area is (Width*2) x (Height*4) dots.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	c.Clear()
	return c
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		if c.Grid[i] == nil {
			c.Grid[i] = make([]rune, c.Width)
		}
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
}

// Set lights the dot at (x, y) in dot coordinates.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// DrawLine draws between two dot coordinates with Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
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
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// Projection maps simulation-world coordinates onto canvas dots. World y
// grows downward like screen pixels, matching dot rows, so no axis flip
// is applied.
type Projection struct {
	MinX, MinY float64
	ScaleX     float64
	ScaleY     float64
	DotW, DotH int
}

// NewProjection fits the world rectangle into a canvas of w x h cells.
func NewProjection(minX, minY, maxX, maxY float64, w, h int) Projection {
	dotW := w * 2
	dotH := h * 4
	spanX := maxX - minX
	spanY := maxY - minY
	if spanX <= 0 {
		spanX = 1
	}
	if spanY <= 0 {
		spanY = 1
	}
	return Projection{
		MinX:   minX,
		MinY:   minY,
		ScaleX: float64(dotW-1) / spanX,
		ScaleY: float64(dotH-1) / spanY,
		DotW:   dotW,
		DotH:   dotH,
	}
}

// Dot converts a world coordinate to canvas dot coordinates.
func (p Projection) Dot(x, y float64) (int, int) {
	return int((x - p.MinX) * p.ScaleX), int((y - p.MinY) * p.ScaleY)
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
