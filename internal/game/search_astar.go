package game

import "math"

// astarNode is the per-cell search record. One is allocated per cell when
// the strategy is built and reset at the start of every search.
type astarNode struct {
	g, f   float64
	parent int32
	open   bool
	closed bool
}

// AStar is best-first search on f = g + h over a persistent node arena.
// The open set is scanned linearly; on equal f the node that entered the
// open set first wins.
type AStar struct {
	searchBase
	nodes []astarNode
	open  []int
}

func NewAStar(d StrategyDeps) *AStar {
	a := &AStar{searchBase: newSearchBase(d)}
	a.nodes = make([]astarNode, a.grid.Size())
	return a
}

func (*AStar) Name() string { return NameAStar }

func (a *AStar) ActionLevels(s Situation) ActionLevels {
	return a.levels(s, a.Path(s))
}

func (a *AStar) reset() {
	for i := range a.nodes {
		a.nodes[i] = astarNode{g: math.Inf(1), f: math.Inf(1), parent: -1}
	}
	a.open = a.open[:0]
}

// Path returns the cheapest path from the role to its target, or nil.
func (a *AStar) Path(s Situation) []Cell {
	start, goal, ok := a.endpoints(s)
	if !ok {
		return nil
	}
	a.reset()
	dest := a.grid.CellAt(goal)

	a.nodes[start].g = 0
	a.nodes[start].f = a.h(s.Self.Pos, dest)
	a.nodes[start].open = true
	a.open = append(a.open, start)

	for len(a.open) > 0 {
		k := 0
		for j := 1; j < len(a.open); j++ {
			if a.nodes[a.open[j]].f < a.nodes[a.open[k]].f {
				k = j
			}
		}
		cur := a.open[k]
		a.open = append(a.open[:k], a.open[k+1:]...)
		a.nodes[cur].open = false
		a.nodes[cur].closed = true

		if cur == goal {
			return a.retraceNodes(goal)
		}

		for _, n := range a.grid.Neighbors(cur) {
			ni := int(n)
			if ni < 0 || a.nodes[ni].closed || !a.walkable(s, ni) {
				continue
			}
			g := a.nodes[cur].g + a.edgeCost(s, cur, ni)
			if g >= a.nodes[ni].g {
				continue
			}
			nd := &a.nodes[ni]
			nd.g = g
			nd.f = g + a.h(a.grid.CellAt(ni), dest)
			nd.parent = int32(cur) // #nosec G115 -- map sizes are tiny
			if !nd.open {
				nd.open = true
				a.open = append(a.open, ni)
			}
		}
	}
	return nil
}

func (a *AStar) retraceNodes(goal int) []Cell {
	var path []Cell
	for i := goal; i >= 0; i = int(a.nodes[i].parent) {
		path = append(path, a.grid.CellAt(i))
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
