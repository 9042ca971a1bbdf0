package game

// --- shared search plumbing ---

// searchBase holds what every path-finding strategy shares: the map, its
// adjacency, the heuristic, the cost charged for unrevealed cells and the
// most recent path (display only).
type searchBase struct {
	tm          *TileMap
	grid        *NavGrid
	h           HeuristicFunc
	unknownCost float64
	last        []Cell
}

func newSearchBase(d StrategyDeps) searchBase {
	grid := d.Grid
	if grid == nil && d.Map != nil {
		grid = NewNavGrid(d.Map.Cols, d.Map.Rows)
	}
	h := d.Heuristic
	if h == nil {
		h = ManhattanHeuristic
	}
	return searchBase{
		tm:          d.Map,
		grid:        grid,
		h:           h,
		unknownCost: d.Config.DefaultMoveCost(),
	}
}

// LastPath returns the path found on the most recent call, start first.
func (b *searchBase) LastPath() []Cell { return b.last }

// walkable reports whether a search may enter flat index i. Walls the role
// has not seen are optimistically open.
func (b *searchBase) walkable(s Situation, i int) bool {
	c := b.grid.CellAt(i)
	return !(s.Self.Fog.Revealed(c) && b.tm.Wall(c))
}

// walkableCell is walkable for a cell that may be off the map.
func (b *searchBase) walkableCell(s Situation, c Cell) bool {
	i := b.grid.Index(c)
	return i >= 0 && b.walkable(s, i)
}

// stepCost is the cost of entering flat index i: the terrain cost if the
// role has seen it, the unknown-terrain cost otherwise.
func (b *searchBase) stepCost(s Situation, i int) float64 {
	c := b.grid.CellAt(i)
	if s.Self.Fog.Revealed(c) {
		return b.tm.MoveCost(c)
	}
	return b.unknownCost
}

// edgeCost is what A* and Dijkstra charge for moving from index from to
// index to: the heuristic distance between the two cells plus stepCost.
func (b *searchBase) edgeCost(s Situation, from, to int) float64 {
	return b.h(b.grid.CellAt(from), b.grid.CellAt(to)) + b.stepCost(s, to)
}

// endpoints resolves the start and goal indices, or ok=false if either is
// off the map or the goal is a known wall.
func (b *searchBase) endpoints(s Situation) (start, goal int, ok bool) {
	start = b.grid.Index(s.Self.Pos)
	goal = b.grid.Index(s.Target)
	if start < 0 || goal < 0 || !b.walkable(s, goal) {
		return 0, 0, false
	}
	return start, goal, true
}

// levels stores path for display and turns it into action levels.
func (b *searchBase) levels(s Situation, path []Cell) ActionLevels {
	b.last = path
	return pathToLevels(s.Self.Pos, path)
}

// retrace walks parent links back from goal and returns the path start first.
func (b *searchBase) retrace(parent []int32, goal int) []Cell {
	var path []Cell
	for i := goal; i >= 0; i = int(parent[i]) {
		path = append(path, b.grid.CellAt(i))
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// pathToLevels converts a path into a single hard preference: the first step
// at MaxLevel, stay when already there, nothing when there is no path.
func pathToLevels(pos Cell, path []Cell) ActionLevels {
	switch {
	case len(path) == 0:
		return ActionLevels{}
	case len(path) == 1:
		return Only(ActionStay)
	}
	a, err := NextAction(pos, path[1])
	if err != nil {
		return ActionLevels{}
	}
	return Only(a)
}

func newParents(n int) []int32 {
	p := make([]int32, n)
	for i := range p {
		p[i] = -1
	}
	return p
}

// PathCost sums the cost of entering every cell after the first, using the
// true terrain costs. Returns -1 if the path steps into a wall or jumps.
func PathCost(tm *TileMap, path []Cell) float64 {
	total := 0.0
	for i := 1; i < len(path); i++ {
		if Manhattan(path[i-1], path[i]) != 1 || tm.Wall(path[i]) {
			return -1
		}
		total += tm.MoveCost(path[i])
	}
	return total
}

// --- priority queue shared by Dijkstra, Greedy and JPS ---

type queueItem struct {
	idx int
	pri float64
	seq int
}

// priorityQueue orders by priority, then by insertion order so equal
// priorities pop first-in first-out.
type priorityQueue []queueItem

func (pq priorityQueue) Len() int { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool {
	if pq[i].pri != pq[j].pri {
		return pq[i].pri < pq[j].pri
	}
	return pq[i].seq < pq[j].seq
}
func (pq priorityQueue) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *priorityQueue) Push(x interface{}) { *pq = append(*pq, x.(queueItem)) }
func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	it := old[len(old)-1]
	*pq = old[:len(old)-1]
	return it
}
