package game

// Fog tracks which cells a role has seen. Terrain of unrevealed cells is
// unknown to that role: planners treat it as open ground at the default
// cost until it is observed.
type Fog struct {
	cols, rows int
	radius     int
	revealed   []bool
	count      int
}

// NewFog creates fog for a cols×rows map. A negative radius reveals the whole
// map up front.
func NewFog(cols, rows, radius int) *Fog {
	f := &Fog{
		cols:     cols,
		rows:     rows,
		radius:   radius,
		revealed: make([]bool, cols*rows),
	}
	if radius < 0 {
		for i := range f.revealed {
			f.revealed[i] = true
		}
		f.count = len(f.revealed)
	}
	return f
}

// Omniscient reports whether the whole map is always revealed.
func (f *Fog) Omniscient() bool { return f.radius < 0 }

// Radius returns the sight radius in cells.
func (f *Fog) Radius() int { return f.radius }

// Revealed reports whether the terrain at c is known.
func (f *Fog) Revealed(c Cell) bool {
	if c.X < 0 || c.Y < 0 || c.X >= f.cols || c.Y >= f.rows {
		return false
	}
	return f.revealed[c.Y*f.cols+c.X]
}

// RevealCell marks one cell as known. Returns true if it was newly revealed.
func (f *Fog) RevealCell(c Cell) bool {
	if c.X < 0 || c.Y < 0 || c.X >= f.cols || c.Y >= f.rows {
		return false
	}
	i := c.Y*f.cols + c.X
	if f.revealed[i] {
		return false
	}
	f.revealed[i] = true
	f.count++
	return true
}

// Reveal uncovers the square of cells within the sight radius of center
// (Chebyshev distance). Returns the number of newly revealed cells.
func (f *Fog) Reveal(center Cell) int {
	if f.radius < 0 {
		return 0
	}
	n := 0
	for y := center.Y - f.radius; y <= center.Y+f.radius; y++ {
		for x := center.X - f.radius; x <= center.X+f.radius; x++ {
			if f.RevealCell(C(x, y)) {
				n++
			}
		}
	}
	return n
}

// Coverage returns the revealed fraction of the map in [0, 1].
func (f *Fog) Coverage() float64 {
	if len(f.revealed) == 0 {
		return 0
	}
	return float64(f.count) / float64(len(f.revealed))
}
