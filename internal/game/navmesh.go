package game

// NavGrid is the precomputed 4-neighbour adjacency of a map. Cells are
// addressed by flat index (y*cols + x) so searches can keep per-cell state in
// plain slices instead of maps.
type NavGrid struct {
	cols int
	rows int
	// neighbors[i] holds the in-bounds neighbours of cell i in Moves order,
	// -1 where the move would leave the map.
	neighbors [][4]int32
}

// NewNavGrid builds adjacency for a cols×rows map. Walls are not pruned here:
// whether a wall blocks depends on what the searching role has revealed.
func NewNavGrid(cols, rows int) *NavGrid {
	ng := &NavGrid{
		cols:      cols,
		rows:      rows,
		neighbors: make([][4]int32, cols*rows),
	}
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			i := y*cols + x
			for k, a := range Moves {
				n := a.Dest(C(x, y))
				if n.X < 0 || n.Y < 0 || n.X >= cols || n.Y >= rows {
					ng.neighbors[i][k] = -1
					continue
				}
				ng.neighbors[i][k] = int32(n.Y*cols + n.X) // #nosec G115 -- map sizes are tiny
			}
		}
	}
	return ng
}

// Size returns the number of cells.
func (ng *NavGrid) Size() int { return ng.cols * ng.rows }

// Index converts a cell to its flat index, or -1 when out of bounds.
func (ng *NavGrid) Index(c Cell) int {
	if c.X < 0 || c.Y < 0 || c.X >= ng.cols || c.Y >= ng.rows {
		return -1
	}
	return c.Y*ng.cols + c.X
}

// CellAt converts a flat index back to a cell.
func (ng *NavGrid) CellAt(i int) Cell {
	return C(i%ng.cols, i/ng.cols)
}

// Neighbors returns the neighbour indices of cell i (-1 for none).
func (ng *NavGrid) Neighbors(i int) [4]int32 {
	return ng.neighbors[i]
}
