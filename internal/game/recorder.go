package game

import (
	"fmt"
	"sort"
	"strings"
)

// Frame is the state after one tick.
type Frame struct {
	Step      int
	Agent     Cell
	Enemy     Cell
	EnemyPath []Cell
}

// CheckpointVisit records when the enemy first reached a checkpoint.
type CheckpointVisit struct {
	Index int
	Cell  Cell
	Step  int
}

// TunnelUse records one teleport.
type TunnelUse struct {
	Step int
	Teleport
}

// CellCount pairs a cell with a visit count.
type CellCount struct {
	Cell  Cell
	Count int
}

// Recorder keeps a full history of a game for analysis.
type Recorder struct {
	Frames           []Frame
	CheckpointVisits []CheckpointVisit
	TunnelUses       []TunnelUse
}

func NewRecorder() *Recorder { return &Recorder{} }

// Attach records p's current state as the first frame and every tick after.
func (r *Recorder) Attach(p *Pursuit) {
	r.Frames = append(r.Frames, Frame{Step: p.Steps(), Agent: p.Agent.Pos, Enemy: p.Enemy.Pos})
	p.Observe(r.observe)
}

func (r *Recorder) observe(p *Pursuit, rep TickReport) {
	r.Frames = append(r.Frames, Frame{
		Step:      p.Steps(),
		Agent:     rep.Agent,
		Enemy:     rep.Enemy,
		EnemyPath: append([]Cell(nil), p.Enemy.Path()...),
	})
	for _, i := range rep.Visited {
		r.CheckpointVisits = append(r.CheckpointVisits, CheckpointVisit{Index: i, Cell: p.Checkpoints()[i], Step: p.Steps()})
	}
	for _, t := range rep.Teleports {
		r.TunnelUses = append(r.TunnelUses, TunnelUse{Step: p.Steps(), Teleport: t})
	}
}

// Heatmap counts how many frames the enemy spent on each cell.
func (r *Recorder) Heatmap() map[Cell]int {
	h := make(map[Cell]int)
	for _, f := range r.Frames {
		h[f.Enemy]++
	}
	return h
}

// MostVisited returns the n cells the enemy spent most frames on,
// ties broken by row then column.
func (r *Recorder) MostVisited(n int) []CellCount {
	h := r.Heatmap()
	out := make([]CellCount, 0, len(h))
	for c, k := range h {
		out = append(out, CellCount{Cell: c, Count: k})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		if out[i].Cell.Y != out[j].Cell.Y {
			return out[i].Cell.Y < out[j].Cell.Y
		}
		return out[i].Cell.X < out[j].Cell.X
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// Distances returns the Manhattan distance between the roles per frame.
func (r *Recorder) Distances() []int {
	out := make([]int, len(r.Frames))
	for i, f := range r.Frames {
		out[i] = Manhattan(f.Agent, f.Enemy)
	}
	return out
}

// AveragePathLength is the mean length of the enemy's non-empty paths.
func (r *Recorder) AveragePathLength() float64 {
	total, n := 0, 0
	for _, f := range r.Frames {
		if len(f.EnemyPath) > 0 {
			total += len(f.EnemyPath)
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return float64(total) / float64(n)
}

// Summary formats the recorded history for a report.
func (r *Recorder) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Frames: %d\n", len(r.Frames))
	fmt.Fprintf(&sb, "Avg enemy path length: %.1f\n", r.AveragePathLength())
	if d := r.Distances(); len(d) > 0 {
		lo, hi, sum := d[0], d[0], 0
		for _, v := range d {
			lo, hi, sum = min(lo, v), max(hi, v), sum+v
		}
		fmt.Fprintf(&sb, "Distance: min=%d max=%d avg=%.1f\n", lo, hi, float64(sum)/float64(len(d)))
	}
	for _, v := range r.CheckpointVisits {
		fmt.Fprintf(&sb, "Checkpoint %s %v reached at step %d\n", CheckpointName(v.Index), v.Cell, v.Step)
	}
	for _, t := range r.TunnelUses {
		fmt.Fprintf(&sb, "Tunnel %s %v -> %v at step %d\n", t.Role, t.From, t.To, t.Step)
	}
	top := r.MostVisited(3)
	if len(top) > 0 {
		parts := make([]string, len(top))
		for i, c := range top {
			parts[i] = fmt.Sprintf("%v×%d", c.Cell, c.Count)
		}
		fmt.Fprintf(&sb, "Enemy hot spots: %s\n", strings.Join(parts, " "))
	}
	return sb.String()
}
