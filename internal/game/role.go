package game

import "math/rand"

// RoleKind distinguishes the pursued agent from the pursuing enemy.
type RoleKind int

const (
	RoleAgent RoleKind = iota
	RoleEnemy
)

func (k RoleKind) String() string {
	if k == RoleEnemy {
		return "enemy"
	}
	return "agent"
}

// Label is the short tag used in log lines.
func (k RoleKind) Label() string {
	if k == RoleEnemy {
		return "E"
	}
	return "A"
}

// Role is one of the two movers. It owns its position, what it has seen,
// and the weighted strategy mix it decides with. Only the pursuit machine
// moves it.
type Role struct {
	Kind RoleKind
	Pos  Cell
	Fog  *Fog

	strategies []Strategy
	selector   *Selector

	// LastAction and LastLevels describe the most recent decision.
	LastAction Action
	LastLevels ActionLevels
}

// NewRole builds a role whose strategy mix comes from weights.
func NewRole(kind RoleKind, pos Cell, fog *Fog, weights map[string]float64, d StrategyDeps) (*Role, error) {
	strategies, ws, err := BuildMix(weights, d)
	if err != nil {
		return nil, err
	}
	sel, err := NewSelector(ws, d.Rng)
	if err != nil {
		return nil, err
	}
	return &Role{
		Kind:       kind,
		Pos:        pos,
		Fog:        fog,
		strategies: strategies,
		selector:   sel,
		LastAction: ActionStay,
	}, nil
}

// NewRoleWith builds a role from explicit strategies and weights.
func NewRoleWith(kind RoleKind, pos Cell, fog *Fog, strategies []Strategy, weights []float64, rng *rand.Rand) (*Role, error) {
	sel, err := NewSelector(weights, rng)
	if err != nil {
		return nil, err
	}
	return &Role{
		Kind:       kind,
		Pos:        pos,
		Fog:        fog,
		strategies: append([]Strategy(nil), strategies...),
		selector:   sel,
		LastAction: ActionStay,
	}, nil
}

// SetMix replaces the strategy mix, keeping the role's random source.
func (r *Role) SetMix(strategies []Strategy, weights []float64) error {
	sel, err := NewSelector(weights, r.selector.rng)
	if err != nil {
		return err
	}
	r.strategies = append([]Strategy(nil), strategies...)
	r.selector = sel
	return nil
}

// Strategies returns the role's strategy mix in weight order.
func (r *Role) Strategies() []Strategy { return r.strategies }

// Weights returns the weight paired with each strategy.
func (r *Role) Weights() []float64 { return r.selector.Weights() }

// Decide runs every strategy and fuses their levels into one action.
func (r *Role) Decide(s Situation) Action {
	levels := make([]ActionLevels, len(r.strategies))
	for i, st := range r.strategies {
		levels[i] = st.ActionLevels(s)
	}
	r.LastLevels = r.selector.Fuse(levels)
	r.LastAction = r.selector.Highest(levels)
	return r.LastAction
}

// Path returns the most recent path of the highest-weighted path-finding
// strategy in the mix, for display.
func (r *Role) Path() []Cell {
	var best []Cell
	bestW := -1.0
	ws := r.selector.weights
	for i, st := range r.strategies {
		p, ok := st.(Pather)
		if !ok || i >= len(ws) {
			continue
		}
		if ws[i] > bestW {
			bestW = ws[i]
			best = p.LastPath()
		}
	}
	return best
}

// Stuck reports whether the role has no in-bounds, wall-free neighbour.
// This uses the true map, not the role's knowledge.
func (r *Role) Stuck(tm *TileMap) bool {
	for _, a := range Moves {
		n := a.Dest(r.Pos)
		if tm.Valid(n) && !tm.Wall(n) {
			return false
		}
	}
	return true
}
