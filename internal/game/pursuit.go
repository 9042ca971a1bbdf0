package game

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"slices"
	"sort"
	"strings"
)

var (
	// ErrGameEnded is returned when a finished game is asked to advance.
	ErrGameEnded = errors.New("game has ended")
	// ErrAsymmetricTunnel is returned when a tunnel u→v lacks its v→u pair.
	ErrAsymmetricTunnel = errors.New("tunnel relation is not symmetric")
	// ErrInvalidCell is returned when a role, checkpoint or tunnel is placed
	// off the map or on a wall, or a tunnel end on a checkpoint.
	ErrInvalidCell = errors.New("cell is off the map or a wall")
)

// MaxCheckpoints is how many checkpoints the enemy can be gated on.
const MaxCheckpoints = 2

// PursuitParams is the initial layout of a game.
type PursuitParams struct {
	Map         *TileMap
	Agent       Cell
	Enemy       Cell
	Checkpoints []Cell        // zero, one or two; visited in order by the enemy
	Tunnels     map[Cell]Cell // must be symmetric
	Rng         *rand.Rand
	Log         *SimLog
}

// Teleport records one tunnel use.
type Teleport struct {
	Role     RoleKind
	From, To Cell
}

// TickReport describes what happened during one Tick.
type TickReport struct {
	Tick        int
	AgentAction Action
	EnemyAction Action
	EnemyMoved  bool
	Agent       Cell
	Enemy       Cell
	Teleports   []Teleport
	Visited     []int // checkpoint indices first reached this tick
	Blocked     bool  // overlap that did not count as a capture
	Ended       bool
	Outcome     Outcome
}

// Pursuit is the game state machine. It owns both roles, checkpoint gating,
// the tunnel relation and the step counters. A finished game stays finished;
// start a new Pursuit to play again.
type Pursuit struct {
	cfg       Config
	tm        *TileMap
	grid      *NavGrid
	heuristic HeuristicFunc
	log       *SimLog

	Agent *Role
	Enemy *Role

	checkpoints []Cell
	visited     []bool

	tunnels     map[Cell]Cell
	tunnelOrder []Cell

	tick      int
	steps     int
	goodSteps int
	enemyTurn bool
	ended     bool
	outcome   Outcome

	observers []func(*Pursuit, TickReport)
}

// NewPursuit validates the layout, builds both roles from the config's
// weight tables, and reveals each role's starting surroundings.
func NewPursuit(cfg Config, p PursuitParams) (*Pursuit, error) {
	if p.Map == nil {
		return nil, errors.New("pursuit: nil map")
	}
	if cfg.MaxSteps <= 0 {
		return nil, fmt.Errorf("pursuit: maxSteps must be > 0, got %d", cfg.MaxSteps)
	}
	h, err := cfg.HeuristicFunc()
	if err != nil {
		return nil, err
	}
	tm := p.Map
	for _, c := range []Cell{p.Agent, p.Enemy} {
		if !tm.Valid(c) || tm.Wall(c) {
			return nil, fmt.Errorf("role start %v: %w", c, ErrInvalidCell)
		}
	}
	if len(p.Checkpoints) > MaxCheckpoints {
		return nil, fmt.Errorf("pursuit: %d checkpoints, at most %d allowed", len(p.Checkpoints), MaxCheckpoints)
	}
	for _, c := range p.Checkpoints {
		if !tm.Valid(c) || tm.Wall(c) {
			return nil, fmt.Errorf("checkpoint %v: %w", c, ErrInvalidCell)
		}
	}
	rng := p.Rng
	if rng == nil {
		rng = rand.New(rand.NewSource(1)) // #nosec G404 -- gameplay randomness
	}
	log := p.Log
	if log == nil {
		log = NewSimLog(false)
	}

	ps := &Pursuit{
		cfg:         cfg,
		tm:          tm,
		grid:        NewNavGrid(tm.Cols, tm.Rows),
		heuristic:   h,
		log:         log,
		checkpoints: append([]Cell(nil), p.Checkpoints...),
		visited:     make([]bool, len(p.Checkpoints)),
	}
	if err := ps.SetTunnels(p.Tunnels); err != nil {
		return nil, err
	}

	deps := StrategyDeps{Config: cfg, Map: tm, Grid: ps.grid, Heuristic: h, Rng: rng}
	ps.Agent, err = NewRole(RoleAgent, p.Agent, NewFog(tm.Cols, tm.Rows, cfg.SightRadius), cfg.AgentWeights, deps)
	if err != nil {
		return nil, fmt.Errorf("agent: %w", err)
	}
	ps.Enemy, err = NewRole(RoleEnemy, p.Enemy, NewFog(tm.Cols, tm.Rows, cfg.SightRadius), cfg.EnemyWeights, deps)
	if err != nil {
		return nil, fmt.Errorf("enemy: %w", err)
	}
	ps.Agent.Fog.Reveal(ps.Agent.Pos)
	ps.Enemy.Fog.Reveal(ps.Enemy.Pos)
	return ps, nil
}

// SetTunnels replaces the tunnel relation. Every u→v needs a matching v→u
// and both ends must be open cells that are not checkpoints, since a role
// never rests on a tunnel end.
func (p *Pursuit) SetTunnels(t map[Cell]Cell) error {
	order := make([]Cell, 0, len(t))
	for u, v := range t {
		if back, ok := t[v]; !ok || back != u {
			return fmt.Errorf("tunnel %v->%v: %w", u, v, ErrAsymmetricTunnel)
		}
		if !p.tm.Valid(u) || p.tm.Wall(u) {
			return fmt.Errorf("tunnel end %v: %w", u, ErrInvalidCell)
		}
		if slices.Contains(p.checkpoints, u) {
			return fmt.Errorf("tunnel end %v is a checkpoint: %w", u, ErrInvalidCell)
		}
		order = append(order, u)
	}
	sort.Slice(order, func(i, j int) bool {
		if order[i].Y != order[j].Y {
			return order[i].Y < order[j].Y
		}
		return order[i].X < order[j].X
	})
	p.tunnels = make(map[Cell]Cell, len(t))
	for u, v := range t {
		p.tunnels[u] = v
	}
	p.tunnelOrder = order
	return nil
}

// SetPositions places both roles directly, bypassing strategies. Intended
// for scripted scenarios.
func (p *Pursuit) SetPositions(agent, enemy Cell) error {
	if p.ended {
		return ErrGameEnded
	}
	for _, c := range []Cell{agent, enemy} {
		if !p.tm.Valid(c) || p.tm.Wall(c) {
			return fmt.Errorf("set position %v: %w", c, ErrInvalidCell)
		}
	}
	p.Agent.Pos = agent
	p.Enemy.Pos = enemy
	p.Agent.Fog.Reveal(agent)
	p.Enemy.Fog.Reveal(enemy)
	return nil
}

// Observe registers fn to be called after every tick.
func (p *Pursuit) Observe(fn func(*Pursuit, TickReport)) {
	p.observers = append(p.observers, fn)
}

// Map returns the terrain.
func (p *Pursuit) Map() *TileMap { return p.tm }

// Grid returns the adjacency shared by the search strategies.
func (p *Pursuit) Grid() *NavGrid { return p.grid }

// Config returns the config the game was built with.
func (p *Pursuit) Config() Config { return p.cfg }

// Log returns the event log.
func (p *Pursuit) Log() *SimLog { return p.log }

// TickCount returns how many ticks have been played.
func (p *Pursuit) TickCount() int { return p.tick }

func (p *Pursuit) Steps() int { return p.steps }

func (p *Pursuit) GoodSteps() int { return p.goodSteps }

func (p *Pursuit) Ended() bool { return p.ended }

func (p *Pursuit) Outcome() Outcome { return p.outcome }

// EnemyTurn reports whether the enemy moves on the next tick.
func (p *Pursuit) EnemyTurn() bool { return p.enemyTurn }

// Checkpoints returns the checkpoint cells in visiting order.
func (p *Pursuit) Checkpoints() []Cell { return p.checkpoints }

// Visited reports whether the enemy has reached checkpoint i.
func (p *Pursuit) Visited(i int) bool {
	return i >= 0 && i < len(p.visited) && p.visited[i]
}

// CheckpointFlags renders the gating state as e.g. "A _".
func (p *Pursuit) CheckpointFlags() string {
	if len(p.checkpoints) == 0 {
		return "none"
	}
	parts := make([]string, len(p.checkpoints))
	for i := range p.checkpoints {
		parts[i] = "_"
		if p.visited[i] {
			parts[i] = CheckpointName(i)
		}
	}
	return strings.Join(parts, " ")
}

// CheckpointName is "A", "B", ...
func CheckpointName(i int) string { return string(rune('A' + i)) }

// Tunnels returns the tunnel relation. Callers must not modify it.
func (p *Pursuit) Tunnels() map[Cell]Cell { return p.tunnels }

// TunnelPairs returns each tunnel once, lower end first.
func (p *Pursuit) TunnelPairs() [][2]Cell {
	var out [][2]Cell
	seen := make(map[Cell]bool, len(p.tunnelOrder))
	for _, u := range p.tunnelOrder {
		if seen[u] {
			continue
		}
		v := p.tunnels[u]
		seen[u], seen[v] = true, true
		out = append(out, [2]Cell{u, v})
	}
	return out
}

// CanCapture reports whether an overlap would end the game: every
// configured checkpoint has been visited.
func (p *Pursuit) CanCapture() bool {
	for _, v := range p.visited {
		if !v {
			return false
		}
	}
	return true
}

// EnemyTarget is where the enemy's search strategies head: the first
// unvisited checkpoint, else the agent. A tunnel the enemy has seen replaces
// that goal when going through it is heuristically shorter.
func (p *Pursuit) EnemyTarget() Cell {
	goal := p.Agent.Pos
	for i, cp := range p.checkpoints {
		if !p.visited[i] {
			goal = cp
			break
		}
	}
	from := p.Enemy.Pos
	best, bestD := goal, p.heuristic(from, goal)
	for _, u := range p.tunnelOrder {
		if u == from || !p.Enemy.Fog.Revealed(u) {
			continue
		}
		if d := p.heuristic(from, u) + p.heuristic(p.tunnels[u], goal); d < bestD {
			best, bestD = u, d
		}
	}
	return best
}

// Situation builds what role r sees this tick.
func (p *Pursuit) Situation(r *Role) Situation {
	s := Situation{Map: p.tm, Grid: p.grid, Self: r}
	if r.Kind == RoleEnemy {
		s.Opponent = p.Agent.Pos
		s.Target = p.EnemyTarget()
	} else {
		s.Opponent = p.Enemy.Pos
		s.Target = p.Enemy.Pos
	}
	return s
}

// Tick advances the game by one step: the agent moves, the enemy moves on
// every other tick, then checkpoints, capture and termination are resolved.
func (p *Pursuit) Tick() (TickReport, error) {
	if p.ended {
		return TickReport{}, ErrGameEnded
	}
	p.tick++
	rep := TickReport{Tick: p.tick, EnemyAction: ActionStay}

	rep.AgentAction = p.Agent.Decide(p.Situation(p.Agent))
	p.move(p.Agent, rep.AgentAction, &rep)

	if p.enemyTurn {
		rep.EnemyAction = p.Enemy.Decide(p.Situation(p.Enemy))
		p.move(p.Enemy, rep.EnemyAction, &rep)
		rep.EnemyMoved = true
	}

	p.recordVisits(&rep)

	if p.Agent.Pos == p.Enemy.Pos {
		if p.CanCapture() {
			p.end(OutcomeCaptured)
		} else {
			rep.Blocked = true
			p.log.Add(p.tick, RoleEnemy.Label(), "capture", "blocked",
				fmt.Sprintf("at %v gated %s", p.Enemy.Pos, p.CheckpointFlags()), 0)
		}
	}

	if !p.ended {
		p.steps++
		if p.goodStep() {
			p.goodSteps++
		}
		p.enemyTurn = !p.enemyTurn
		switch {
		case p.Agent.Stuck(p.tm):
			p.end(OutcomeStuck)
		case p.steps >= p.cfg.MaxSteps:
			p.end(OutcomeSurvived)
		}
	}

	rep.Agent, rep.Enemy = p.Agent.Pos, p.Enemy.Pos
	rep.Ended, rep.Outcome = p.ended, p.outcome
	for _, fn := range p.observers {
		fn(p, rep)
	}
	return rep, nil
}

// Run ticks until the game ends and returns the outcome.
func (p *Pursuit) Run() (OutcomeReason, error) {
	for !p.ended {
		if _, err := p.Tick(); err != nil {
			return OutcomeReason{}, err
		}
	}
	return DetermineOutcome(p), nil
}

// move applies action a to role r. A move into an unseen wall reveals it
// and leaves r in place. Landing on a tunnel end teleports to its pair.
func (p *Pursuit) move(r *Role, a Action, rep *TickReport) {
	dest := a.Dest(r.Pos)
	if a != ActionStay && p.tm.Valid(dest) {
		if p.tm.Wall(dest) {
			if r.Fog.RevealCell(dest) {
				p.log.Add(p.tick, r.Kind.Label(), "move", "bump", fmt.Sprintf("wall at %v", dest), 0)
			}
		} else {
			r.Pos = dest
			if exit, ok := p.tunnels[dest]; ok {
				r.Pos = exit
				rep.Teleports = append(rep.Teleports, Teleport{Role: r.Kind, From: dest, To: exit})
				p.log.Add(p.tick, r.Kind.Label(), "tunnel", "teleport", fmt.Sprintf("%v -> %v", dest, exit), 0)
			}
		}
	}
	r.Fog.Reveal(r.Pos)
	p.log.AddVerbose(p.tick, r.Kind.Label(), "move", "position", fmt.Sprintf("%s -> %v", a, r.Pos), 0)
}

func (p *Pursuit) recordVisits(rep *TickReport) {
	for i, cp := range p.checkpoints {
		if p.visited[i] || p.Enemy.Pos != cp {
			continue
		}
		p.visited[i] = true
		rep.Visited = append(rep.Visited, i)
		p.log.Add(p.tick, RoleEnemy.Label(), "checkpoint", "visit",
			fmt.Sprintf("%s %v", CheckpointName(i), cp), float64(p.steps))
	}
}

func (p *Pursuit) goodStep() bool {
	switch p.cfg.ScorePolicy {
	case ScoreUncaught:
		return p.Agent.Pos != p.Enemy.Pos
	case ScoreUngated:
		return !p.CanCapture()
	default:
		return Manhattan(p.Agent.Pos, p.Enemy.Pos) > p.cfg.SafeDistance
	}
}

func (p *Pursuit) end(o Outcome) {
	p.ended = true
	p.outcome = o
	score, _ := p.Score()
	p.log.Add(p.tick, "--", "end", o.String(),
		fmt.Sprintf("steps=%d good=%d score=%d%%", p.steps, p.goodSteps, score), float64(score))
}

// Score is round(goodSteps/steps*100). ok is false until the game ends.
func (p *Pursuit) Score() (score int, ok bool) {
	if !p.ended {
		return 0, false
	}
	return percent(p.goodSteps, p.steps), true
}

func percent(n, d int) int {
	if d == 0 {
		return 0
	}
	return int(math.Round(float64(n) / float64(d) * 100))
}
