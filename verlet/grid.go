package verlet

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Grid is a uniform broad-phase grid over [0, width] x [0, height] with a
// one cell halo on every side. It stores dense slot indices, which are only
// valid until the next Rebuild.
type Grid struct {
	width, height float64
	cellSize      float64

	cols, rows int
	cells      [][]int // index = y*cols + x
	slotCell   []int   // cell index of each slot at rebuild time
}

// NewGrid returns an empty grid covering the given bounds.
func NewGrid(width, height float64) *Grid {
	return &Grid{width: width, height: height}
}

// CellSize returns the cell size used by the last Rebuild.
func (g *Grid) CellSize() float64 { return g.cellSize }

// Dims returns the number of columns and rows.
func (g *Grid) Dims() (cols, rows int) { return g.cols, g.rows }

// Cell maps a position to its cell coordinate. The coordinate may be out
// of range; Rebuild rejects such positions.
func (g *Grid) Cell(pos r2.Vec) (x, y int) {
	x = int(math.Floor((pos.X + g.cellSize) / g.cellSize))
	y = int(math.Floor((pos.Y + g.cellSize) / g.cellSize))
	return x, y
}

// Rebuild clears the grid and inserts every position in order. Slot i is
// positions[i]. It panics if cellSize is not positive or a position lies
// outside the padded bounds: callers cull first.
func (g *Grid) Rebuild(positions []r2.Vec, cellSize float64) {
	if !(cellSize > 0) {
		panic(fmt.Sprintf("verlet: grid rebuilt with cell size %g", cellSize))
	}
	cols := int(math.Ceil((g.width + 2*cellSize) / cellSize))
	rows := int(math.Ceil((g.height + 2*cellSize) / cellSize))
	if cols != g.cols || rows != g.rows {
		g.cols, g.rows = cols, rows
		g.cells = make([][]int, cols*rows)
	} else {
		for i := range g.cells {
			g.cells[i] = g.cells[i][:0]
		}
	}
	g.cellSize = cellSize

	g.slotCell = g.slotCell[:0]
	for slot, pos := range positions {
		x, y := g.Cell(pos)
		if x < 0 || x >= g.cols || y < 0 || y >= g.rows {
			panic(fmt.Sprintf("verlet: slot %d at (%g, %g) maps to cell (%d, %d) outside %dx%d grid",
				slot, pos.X, pos.Y, x, y, g.cols, g.rows))
		}
		idx := y*g.cols + x
		g.cells[idx] = append(g.cells[idx], slot)
		g.slotCell = append(g.slotCell, idx)
	}
}

// Len returns the number of slots inserted by the last Rebuild.
func (g *Grid) Len() int { return len(g.slotCell) }

// CellOf returns the cell slot was inserted into.
func (g *Grid) CellOf(slot int) (x, y int) {
	idx := g.slotCell[slot]
	return idx % g.cols, idx / g.cols
}

// Neighbors appends to dst the slots in the 3x3 block around slot's cell,
// clipped at the grid edges. The result includes slot itself.
func (g *Grid) Neighbors(dst []int, slot int) []int {
	cx, cy := g.CellOf(slot)
	for dy := -1; dy <= 1; dy++ {
		y := cy + dy
		if y < 0 || y >= g.rows {
			continue
		}
		for dx := -1; dx <= 1; dx++ {
			x := cx + dx
			if x < 0 || x >= g.cols {
				continue
			}
			dst = append(dst, g.cells[y*g.cols+x]...)
		}
	}
	return dst
}
