package game

import "container/heap"

// Greedy is best-first search on the heuristic alone. It is fast and usually
// direct but not optimal.
type Greedy struct {
	searchBase
}

func NewGreedy(d StrategyDeps) *Greedy {
	return &Greedy{searchBase: newSearchBase(d)}
}

func (*Greedy) Name() string { return NameGreedy }

func (g *Greedy) ActionLevels(s Situation) ActionLevels {
	return g.levels(s, g.Path(s))
}

// Path returns the first path the heuristic leads to, or nil.
func (g *Greedy) Path(s Situation) []Cell {
	start, goal, ok := g.endpoints(s)
	if !ok {
		return nil
	}
	dest := g.grid.CellAt(goal)
	n := g.grid.Size()
	seen := make([]bool, n)
	parent := newParents(n)

	seen[start] = true
	seq := 0
	pq := &priorityQueue{{idx: start, pri: g.h(s.Self.Pos, dest)}}
	for pq.Len() > 0 {
		cur := heap.Pop(pq).(queueItem).idx
		if cur == goal {
			return g.retrace(parent, goal)
		}
		for _, nb := range g.grid.Neighbors(cur) {
			ni := int(nb)
			if ni < 0 || seen[ni] || !g.walkable(s, ni) {
				continue
			}
			seen[ni] = true
			parent[ni] = int32(cur) // #nosec G115 -- map sizes are tiny
			seq++
			heap.Push(pq, queueItem{idx: ni, pri: g.h(g.grid.CellAt(ni), dest), seq: seq})
		}
	}
	return nil
}
