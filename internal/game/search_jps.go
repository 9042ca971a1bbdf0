package game

import (
	"container/heap"
	"math"
)

// JPS is jump point search over 4-connected moves. Straight runs are skipped
// in one step: a horizontal jump stops at the goal or at a cell with a forced
// neighbour; a vertical jump also stops wherever a horizontal jump from it
// would find something. The jump points are best-first ordered by g + h and
// the resulting path is expanded back into single steps. When no jump point
// route is found it falls back to BFS.
type JPS struct {
	searchBase
}

func NewJPS(d StrategyDeps) *JPS {
	return &JPS{searchBase: newSearchBase(d)}
}

func (*JPS) Name() string { return NameJPS }

func (j *JPS) ActionLevels(s Situation) ActionLevels {
	return j.levels(s, j.Path(s))
}

// Path returns a path of contiguous cells from the role to its target, or nil.
func (j *JPS) Path(s Situation) []Cell {
	start, goal, ok := j.endpoints(s)
	if !ok {
		return nil
	}
	if start == goal {
		return []Cell{s.Self.Pos}
	}
	if points := j.search(s, start, goal); points != nil {
		return expandJumps(points)
	}
	return j.bfs(s, start, goal)
}

func (j *JPS) search(s Situation, start, goal int) []Cell {
	n := j.grid.Size()
	g := make([]float64, n)
	for i := range g {
		g[i] = math.Inf(1)
	}
	closed := make([]bool, n)
	parent := newParents(n)
	dest := j.grid.CellAt(goal)

	g[start] = 0
	seq := 0
	pq := &priorityQueue{{idx: start, pri: j.h(s.Self.Pos, dest)}}
	for pq.Len() > 0 {
		cur := heap.Pop(pq).(queueItem).idx
		if closed[cur] {
			continue
		}
		closed[cur] = true
		if cur == goal {
			return j.retrace(parent, goal)
		}
		from := j.grid.CellAt(cur)
		for _, a := range Moves {
			jp, ok := j.jump(s, from, a.Offset(), dest)
			if !ok {
				continue
			}
			ji := j.grid.Index(jp)
			if closed[ji] {
				continue
			}
			ng := g[cur] + j.runCost(s, from, jp)
			if ng >= g[ji] {
				continue
			}
			g[ji] = ng
			parent[ji] = int32(cur) // #nosec G115 -- map sizes are tiny
			seq++
			heap.Push(pq, queueItem{idx: ji, pri: ng + j.h(jp, dest), seq: seq})
		}
	}
	return nil
}

// jump advances from c in direction d until it finds a jump point.
func (j *JPS) jump(s Situation, c, d, dest Cell) (Cell, bool) {
	if d.Y == 0 {
		return j.jumpHorizontal(s, c, d.X, dest)
	}
	return j.jumpVertical(s, c, d.Y, dest)
}

func (j *JPS) jumpHorizontal(s Situation, c Cell, dx int, dest Cell) (Cell, bool) {
	for {
		c = C(c.X+dx, c.Y)
		if !j.walkableCell(s, c) {
			return Cell{}, false
		}
		if c == dest {
			return c, true
		}
		for _, dy := range [2]int{1, -1} {
			if j.walkableCell(s, C(c.X, c.Y+dy)) && !j.walkableCell(s, C(c.X-dx, c.Y+dy)) {
				return c, true
			}
		}
	}
}

func (j *JPS) jumpVertical(s Situation, c Cell, dy int, dest Cell) (Cell, bool) {
	for {
		c = C(c.X, c.Y+dy)
		if !j.walkableCell(s, c) {
			return Cell{}, false
		}
		if c == dest {
			return c, true
		}
		for _, dx := range [2]int{1, -1} {
			if j.walkableCell(s, C(c.X+dx, c.Y)) && !j.walkableCell(s, C(c.X+dx, c.Y-dy)) {
				return c, true
			}
		}
		if _, ok := j.jumpHorizontal(s, c, 1, dest); ok {
			return c, true
		}
		if _, ok := j.jumpHorizontal(s, c, -1, dest); ok {
			return c, true
		}
	}
}

// runCost is the cost of the straight run from a to b, excluding a.
func (j *JPS) runCost(s Situation, a, b Cell) float64 {
	step := C(sign(b.X-a.X), sign(b.Y-a.Y))
	total := 0.0
	for c := a; c != b; {
		c = c.Add(step)
		total += j.stepCost(s, j.grid.Index(c))
	}
	return total
}

// expandJumps fills in the straight runs between consecutive jump points.
func expandJumps(points []Cell) []Cell {
	if len(points) == 0 {
		return nil
	}
	path := []Cell{points[0]}
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		step := C(sign(b.X-a.X), sign(b.Y-a.Y))
		for c := a; c != b; {
			c = c.Add(step)
			path = append(path, c)
		}
	}
	return path
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
