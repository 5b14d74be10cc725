package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas is a braille grid with one accumulated RGB light value per cell.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Light         [][][3]float64
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h}
	c.alloc()
	return c
}

func (c *Canvas) alloc() {
	c.Grid = make([][]rune, c.Height)
	c.Light = make([][][3]float64, c.Height)
	for i := range c.Grid {
		c.Grid[i] = make([]rune, c.Width)
		c.Light[i] = make([][3]float64, c.Width)
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
}

// Resize reallocates the grid; contents are discarded.
func (c *Canvas) Resize(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if w == c.Width && h == c.Height {
		return
	}
	c.Width, c.Height = w, h
	c.alloc()
}

// SubWidth and SubHeight are the canvas size in braille dots.
func (c *Canvas) SubWidth() int  { return c.Width * 2 }
func (c *Canvas) SubHeight() int { return c.Height * 4 }

func (c *Canvas) cell(x, y int) (row, col int, ok bool) {
	if x < 0 || y < 0 {
		return 0, 0, false
	}
	col, row = x/2, y/4
	if col >= c.Width || row >= c.Height {
		return 0, 0, false
	}
	return row, col, true
}

// Set lights the dot at sub-pixel (x, y).
func (c *Canvas) Set(x, y int) {
	row, col, ok := c.cell(x, y)
	if !ok {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// Add lights the dot and adds rgb to its cell.
func (c *Canvas) Add(x, y int, r, g, b float64) {
	row, col, ok := c.cell(x, y)
	if !ok {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	l := &c.Light[row][col]
	l[0] += r
	l[1] += g
	l[2] += b
}

// Put lights the dot and overwrites its cell color.
func (c *Canvas) Put(x, y int, r, g, b float64) {
	row, col, ok := c.cell(x, y)
	if !ok {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	c.Light[row][col] = [3]float64{r, g, b}
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Light[i][j] = [3]float64{}
		}
	}
}

// CellColor returns the clamped light of a cell as #rrggbb.
func (c *Canvas) CellColor(row, col int) string {
	l := c.Light[row][col]
	return colorful.Color{R: l[0], G: l[1], B: l[2]}.Clamped().Hex()
}

// String renders the dots without color.
func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render renders the dots with per-cell foreground colors.
func (c *Canvas) Render() string {
	var b strings.Builder
	for i, row := range c.Grid {
		for j, r := range row {
			if r == blank {
				b.WriteRune(' ')
				continue
			}
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(c.CellColor(i, j)))
			b.WriteString(style.Render(string(r)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
