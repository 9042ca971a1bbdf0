package game

// BFS finds the path with the fewest steps, ignoring terrain cost.
type BFS struct {
	searchBase
}

func NewBFS(d StrategyDeps) *BFS {
	return &BFS{searchBase: newSearchBase(d)}
}

func (*BFS) Name() string { return NameBFS }

func (b *BFS) ActionLevels(s Situation) ActionLevels {
	return b.levels(s, b.Path(s))
}

// Path returns a shortest path by step count, or nil.
func (b *BFS) Path(s Situation) []Cell {
	start, goal, ok := b.endpoints(s)
	if !ok {
		return nil
	}
	return b.bfs(s, start, goal)
}

// bfs is shared with JPS as its fallback.
func (b *searchBase) bfs(s Situation, start, goal int) []Cell {
	n := b.grid.Size()
	seen := make([]bool, n)
	parent := newParents(n)
	queue := []int{start}
	seen[start] = true
	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		if cur == goal {
			return b.retrace(parent, goal)
		}
		for _, nb := range b.grid.Neighbors(cur) {
			ni := int(nb)
			if ni < 0 || seen[ni] || !b.walkable(s, ni) {
				continue
			}
			seen[ni] = true
			parent[ni] = int32(cur) // #nosec G115 -- map sizes are tiny
			queue = append(queue, ni)
		}
	}
	return nil
}
