package gallery

import (
	"image"

	"github.com/velikanov/thumbgrid/internal/domain"
)

// cellPadding is the extra footprint around each icon (spacing plus the
// filename caption strip a grid client renders under it).
const cellPadding = 20

// relayout recomputes cell bounds from the current path list, icon size and
// grid width. Cells are squares of iconSize+cellPadding flowing left to
// right, wrapping at the grid width.
func (g *Gallery) relayout() {
	side := g.opts.IconSize + cellPadding
	cols := g.gridWidth / side
	if cols < 1 {
		cols = 1
	}

	g.cells = make([]domain.Cell, len(g.paths))
	g.cellIndex = make(map[string]int, len(g.paths))
	for i, path := range g.paths {
		col := i % cols
		row := i / cols
		g.cells[i] = domain.Cell{
			Path:   path,
			Bounds: image.Rect(col*side, row*side, (col+1)*side, (row+1)*side),
		}
		g.cellIndex[path] = i
	}
}

// Cells exposes the current layout, mainly for clients that mirror the grid.
func (g *Gallery) Cells() []domain.Cell {
	return g.cells
}
