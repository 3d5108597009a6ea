package render

import (
	"math"
	"strconv"

	"github.com/TFMV/forcegraph/models"
)

// Vertex and arc glyphs used on character grids
const (
	GlyphVertex  = 'O'
	GlyphGrabbed = '@'
	GlyphClique  = '#'
	GlyphArc     = '·'
	GlyphPointer = '+'
)

// Projection maps world coordinates onto a character grid
type Projection struct {
	Origin models.Vec2 // world point at the top-left corner of cell (0, 0)
	CellW  float64     // world units per column
	CellH  float64     // world units per row
}

// CenteredProjection puts the world origin in the middle of a cols x rows grid
func CenteredProjection(cols, rows int, cellW, cellH float64) Projection {
	return Projection{
		Origin: models.V(-float64(cols)*cellW/2, -float64(rows)*cellH/2),
		CellW:  cellW,
		CellH:  cellH,
	}
}

// FitProjection scales the snapshot's bounding box, plus margin, into the grid
func FitProjection(snap *models.Snapshot, cols, rows int, margin float64) Projection {
	min, max, ok := snap.Bounds()
	if !ok {
		return CenteredProjection(cols, rows, 10, 20)
	}
	min = min.Sub(models.V(margin, margin))
	max = max.Add(models.V(margin, margin))
	return Projection{
		Origin: min,
		CellW:  (max.X - min.X) / float64(cols),
		CellH:  (max.Y - min.Y) / float64(rows),
	}
}

// Cell returns the grid cell containing world point w
func (p Projection) Cell(w models.Vec2) (int, int) {
	return int(math.Floor((w.X - p.Origin.X) / p.CellW)), int(math.Floor((w.Y - p.Origin.Y) / p.CellH))
}

// World returns the world point at the center of cell (x, y)
func (p Projection) World(x, y int) models.Vec2 {
	return models.V(p.Origin.X+(float64(x)+0.5)*p.CellW, p.Origin.Y+(float64(y)+0.5)*p.CellH)
}

// Canvas is a character grid
type Canvas [][]rune

// NewCanvas returns a blank cols x rows canvas
func NewCanvas(cols, rows int) Canvas {
	c := make(Canvas, rows)
	for i := range c {
		c[i] = make([]rune, cols)
		for j := range c[i] {
			c[i][j] = ' '
		}
	}
	return c
}

// String joins the rows with newlines
func (c Canvas) String() string {
	buf := make([]rune, 0, len(c)*(c.cols()+1))
	for _, row := range c {
		buf = append(buf, row...)
		buf = append(buf, '\n')
	}
	return string(buf)
}

func (c Canvas) cols() int {
	if len(c) == 0 {
		return 0
	}
	return len(c[0])
}

func (c Canvas) inside(x, y int) bool {
	return y >= 0 && y < len(c) && x >= 0 && x < c.cols()
}

// DrawSnapshot draws arcs, then vertices with their ids, onto the canvas
func (c Canvas) DrawSnapshot(snap *models.Snapshot, proj Projection, labels bool) {
	for _, a := range snap.Arcs {
		seg, ok := segmentFor(snap, a)
		if !ok || a.From == a.To {
			continue
		}
		x1, y1 := proj.Cell(seg.From)
		x2, y2 := proj.Cell(seg.To)
		drawLine(c, x1, y1, x2, y2)
	}

	for _, v := range snap.Vertices {
		x, y := proj.Cell(v.Position)
		if !c.inside(x, y) {
			continue
		}
		glyph := GlyphVertex
		switch {
		case snap.IsGrabbed(v.ID):
			glyph = GlyphGrabbed
		case snap.InClique(v.ID):
			glyph = GlyphClique
		}
		c[y][x] = glyph

		if labels {
			label := strconv.Itoa(int(v.ID))
			for i, r := range label {
				if c.inside(x+1+i, y) && !isVertexGlyph(c[y][x+1+i]) {
					c[y][x+1+i] = r
				}
			}
		}
	}
}

// DrawPointer marks the pointer cell unless a vertex occupies it
func (c Canvas) DrawPointer(w models.Vec2, proj Projection) {
	x, y := proj.Cell(w)
	if c.inside(x, y) && !isVertexGlyph(c[y][x]) {
		c[y][x] = GlyphPointer
	}
}

func isVertexGlyph(r rune) bool {
	return r == GlyphVertex || r == GlyphGrabbed || r == GlyphClique
}

// Draw a line on the grid using Bresenham's algorithm
func drawLine(grid Canvas, x1, y1, x2, y2 int) {
	dx := abs(x2 - x1)
	dy := -abs(y2 - y1)
	sx := 1
	if x1 >= x2 {
		sx = -1
	}
	sy := 1
	if y1 >= y2 {
		sy = -1
	}
	err := dx + dy

	// guard against runaway lines from far-off vertices
	for steps := 0; steps < 4096; steps++ {
		if grid.inside(x1, y1) && !isVertexGlyph(grid[y1][x1]) {
			grid[y1][x1] = GlyphArc
		}

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 >= dy {
			if x1 == x2 {
				break
			}
			err += dy
			x1 += sx
		}
		if e2 <= dx {
			if y1 == y2 {
				break
			}
			err += dx
			y1 += sy
		}
	}
}

// Absolute value of an integer
func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
