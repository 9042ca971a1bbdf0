package game

import (
	"math/rand"
)

// Sim is a headless game builder and runner. Tests, the batch report and the
// viewer all construct games through it so a seed plus a set of options
// always reproduces the same game.
type Sim struct {
	Cfg      Config
	Game     *Pursuit
	SimLog   *SimLog
	Recorder *Recorder

	seed   int64
	rng    *rand.Rand
	rows   []string
	cols   int
	height int

	agent, enemy *Cell
	checkpoints  []Cell
	tunnels      map[Cell]Cell
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra  simOptionKind = iota // config, seed, verbose, map; applied first
	simOptLayout                      // role, checkpoint and tunnel placement
)

// SimOption is a builder function applied to a Sim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*Sim)
}

// WithConfig replaces the whole config. Later config options still apply.
func WithConfig(cfg Config) SimOption {
	return SimOption{simOptInfra, func(s *Sim) { s.Cfg = cfg.Clone() }}
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(s *Sim) { s.seed = seed }}
}

// WithVerbose enables per-tick verbose logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(s *Sim) { s.SimLog = NewSimLog(v) }}
}

// WithMapRows uses a hand-drawn map: top row first, '#' wall, '*' bush.
func WithMapRows(rows ...string) SimOption {
	return SimOption{simOptInfra, func(s *Sim) { s.rows = rows }}
}

// WithOpenMap uses an all-grass map of the given size.
func WithOpenMap(cols, rows int) SimOption {
	return SimOption{simOptInfra, func(s *Sim) { s.cols, s.height = cols, rows }}
}

// WithMaxSteps caps the game length.
func WithMaxSteps(n int) SimOption {
	return SimOption{simOptInfra, func(s *Sim) { s.Cfg.MaxSteps = n }}
}

// WithSightRadius sets both roles' sight radius; negative disables fog.
func WithSightRadius(r int) SimOption {
	return SimOption{simOptInfra, func(s *Sim) { s.Cfg.SightRadius = r }}
}

// WithAgentWeights replaces the agent's strategy weights.
func WithAgentWeights(w map[string]float64) SimOption {
	return SimOption{simOptInfra, func(s *Sim) { s.Cfg.AgentWeights = cloneWeights(w) }}
}

// WithEnemyWeights replaces the enemy's strategy weights.
func WithEnemyWeights(w map[string]float64) SimOption {
	return SimOption{simOptInfra, func(s *Sim) { s.Cfg.EnemyWeights = cloneWeights(w) }}
}

// WithEnemyAlgorithm makes the enemy use a single strategy.
func WithEnemyAlgorithm(name string) SimOption {
	return SimOption{simOptInfra, func(s *Sim) { s.Cfg = s.Cfg.WithEnemyAlgorithm(name) }}
}

// WithScorePolicy selects which steps count as good.
func WithScorePolicy(p ScorePolicy) SimOption {
	return SimOption{simOptInfra, func(s *Sim) { s.Cfg.ScorePolicy = p }}
}

// WithAgentAt places the agent.
func WithAgentAt(x, y int) SimOption {
	return SimOption{simOptLayout, func(s *Sim) {
		c := C(x, y)
		s.agent = &c
	}}
}

// WithEnemyAt places the enemy.
func WithEnemyAt(x, y int) SimOption {
	return SimOption{simOptLayout, func(s *Sim) {
		c := C(x, y)
		s.enemy = &c
	}}
}

// WithCheckpoints sets the checkpoints the enemy must visit before it can capture.
func WithCheckpoints(cells ...Cell) SimOption {
	return SimOption{simOptLayout, func(s *Sim) {
		s.checkpoints = append([]Cell(nil), cells...)
	}}
}

// WithTunnel adds a two-way tunnel between u and v.
func WithTunnel(u, v Cell) SimOption {
	return SimOption{simOptLayout, func(s *Sim) {
		if s.tunnels == nil {
			s.tunnels = make(map[Cell]Cell)
		}
		s.tunnels[u] = v
		s.tunnels[v] = u
	}}
}

// NewSim builds a game from options in two passes: infrastructure, then
// layout. Without a hand-made map the layout is generated from the seed and
// layout options override the generated placement.
func NewSim(opts ...SimOption) (*Sim, error) {
	s := &Sim{
		Cfg:    DefaultConfig(),
		SimLog: NewSimLog(false),
		seed:   1,
	}
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(s)
		}
	}
	s.rng = rand.New(rand.NewSource(s.seed)) // #nosec G404 -- reproducible games
	for _, o := range opts {
		if o.kind == simOptLayout {
			o.fn(s)
		}
	}

	params, err := s.layout()
	if err != nil {
		return nil, err
	}
	params.Rng = s.rng
	params.Log = s.SimLog
	s.Game, err = NewPursuit(s.Cfg, params)
	if err != nil {
		return nil, err
	}
	s.Recorder = NewRecorder()
	s.Recorder.Attach(s.Game)
	return s, nil
}

func (s *Sim) layout() (PursuitParams, error) {
	var p PursuitParams
	switch {
	case len(s.rows) > 0:
		p.Map = ParseTileMap(s.rows, s.Cfg.MoveCost)
	case s.cols > 0 && s.height > 0:
		p.Map = NewTileMap(s.cols, s.height, s.Cfg.MoveCost)
	default:
		if err := s.Cfg.Validate(); err != nil {
			return p, err
		}
		gen, err := GenerateLayout(s.Cfg, s.rng)
		if err != nil {
			return p, err
		}
		p = gen
	}
	if p.Agent == p.Enemy {
		// Hand-made map: default to opposite corners.
		p.Agent = C(p.Map.Cols-1, p.Map.Rows-1)
		p.Enemy = C(0, 0)
	}
	if s.agent != nil {
		p.Agent = *s.agent
	}
	if s.enemy != nil {
		p.Enemy = *s.enemy
	}
	if s.checkpoints != nil {
		p.Checkpoints = s.checkpoints
	}
	if s.tunnels != nil {
		p.Tunnels = s.tunnels
	}
	return p, nil
}

// RunTicks advances the game n ticks or until it ends. Returns the number of
// ticks actually played.
func (s *Sim) RunTicks(n int) int {
	played := 0
	for i := 0; i < n && !s.Game.Ended(); i++ {
		if _, err := s.Game.Tick(); err != nil {
			break
		}
		played++
	}
	return played
}

// RunUntil advances up to maxTicks, stopping early once predicate holds.
// Returns the tick at which it held, or -1.
func (s *Sim) RunUntil(predicate func(*Sim) bool, maxTicks int) int {
	for i := 0; i < maxTicks && !s.Game.Ended(); i++ {
		if _, err := s.Game.Tick(); err != nil {
			break
		}
		if predicate(s) {
			return s.Game.TickCount()
		}
	}
	return -1
}

// RunToEnd plays the game out.
func (s *Sim) RunToEnd() OutcomeReason {
	for !s.Game.Ended() {
		if _, err := s.Game.Tick(); err != nil {
			break
		}
	}
	return DetermineOutcome(s.Game)
}

// SimSnapshot is a lightweight copy of the game state.
type SimSnapshot struct {
	Tick      int
	Agent     Cell
	Enemy     Cell
	Steps     int
	GoodSteps int
	Visited   []bool
	Ended     bool
	Outcome   Outcome
}

// Snapshot captures the current state.
func (s *Sim) Snapshot() SimSnapshot {
	g := s.Game
	snap := SimSnapshot{
		Tick:      g.TickCount(),
		Agent:     g.Agent.Pos,
		Enemy:     g.Enemy.Pos,
		Steps:     g.Steps(),
		GoodSteps: g.GoodSteps(),
		Ended:     g.Ended(),
		Outcome:   g.Outcome(),
	}
	for i := range g.Checkpoints() {
		snap.Visited = append(snap.Visited, g.Visited(i))
	}
	return snap
}
