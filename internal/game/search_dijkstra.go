package game

import (
	"container/heap"
	"math"
)

// Dijkstra expands cells in order of accumulated cost, charged the same way
// as A*. The first time the goal is popped its cost is optimal.
type Dijkstra struct {
	searchBase
}

func NewDijkstra(d StrategyDeps) *Dijkstra {
	return &Dijkstra{searchBase: newSearchBase(d)}
}

func (*Dijkstra) Name() string { return NameDijkstra }

func (d *Dijkstra) ActionLevels(s Situation) ActionLevels {
	return d.levels(s, d.Path(s))
}

// Path returns the minimum-cost path from the role to its target, or nil.
func (d *Dijkstra) Path(s Situation) []Cell {
	start, goal, ok := d.endpoints(s)
	if !ok {
		return nil
	}
	n := d.grid.Size()
	dist := make([]float64, n)
	for i := range dist {
		dist[i] = math.Inf(1)
	}
	done := make([]bool, n)
	parent := newParents(n)

	dist[start] = 0
	seq := 0
	pq := &priorityQueue{{idx: start}}
	for pq.Len() > 0 {
		it := heap.Pop(pq).(queueItem)
		cur := it.idx
		if done[cur] {
			continue
		}
		done[cur] = true
		if cur == goal {
			return d.retrace(parent, goal)
		}
		for _, nb := range d.grid.Neighbors(cur) {
			ni := int(nb)
			if ni < 0 || done[ni] || !d.walkable(s, ni) {
				continue
			}
			nd := dist[cur] + d.edgeCost(s, cur, ni)
			if nd >= dist[ni] {
				continue
			}
			dist[ni] = nd
			parent[ni] = int32(cur) // #nosec G115 -- map sizes are tiny
			seq++
			heap.Push(pq, queueItem{idx: ni, pri: nd, seq: seq})
		}
	}
	return nil
}
