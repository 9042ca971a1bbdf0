package game

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"
)

// Strategy names as they appear in weight tables.
const (
	NameRandom      = "random"
	NameMoveAway    = "moveAway"
	NameMoveClose   = "moveClose"
	NameWallDensity = "wallDensity"
	NameAStar       = "aStar"
	NameDijkstra    = "dijkstra"
	NameBFS         = "bfs"
	NameGreedy      = "greedy"
	NameJPS         = "jps"
)

// SearchAlgorithms lists the path-finding strategies in report order.
var SearchAlgorithms = []string{NameAStar, NameDijkstra, NameBFS, NameGreedy, NameJPS}

// ErrUnknownStrategy is returned when a weight table names a strategy that
// does not exist.
var ErrUnknownStrategy = errors.New("unknown strategy")

// Situation is everything a strategy may look at on one tick. It is rebuilt
// by the pursuit machine for each decision; strategies must not keep it.
type Situation struct {
	Map  *TileMap
	Grid *NavGrid
	// Self is the deciding role; its Fog limits what it knows about walls.
	Self *Role
	// Opponent is the other role's current cell.
	Opponent Cell
	// Target is where search strategies head: the enemy target for the
	// enemy, the enemy's cell for the agent.
	Target Cell
}

// Strategy scores every action for one tick.
type Strategy interface {
	Name() string
	ActionLevels(s Situation) ActionLevels
}

// Pather is implemented by strategies that compute a path. The path is kept
// for display only.
type Pather interface {
	LastPath() []Cell
}

// deleteInvalid zeroes the level of every action whose destination is off the
// map or a wall the deciding role has already seen. Unrevealed walls stay
// eligible.
func deleteInvalid(l ActionLevels, s Situation) ActionLevels {
	for _, a := range Actions {
		if !canAttempt(s, a.Dest(s.Self.Pos)) {
			l[a] = 0
		}
	}
	return l
}

// canAttempt reports whether a role would try to enter c.
func canAttempt(s Situation, c Cell) bool {
	if !s.Map.Valid(c) {
		return false
	}
	return !(s.Self.Fog.Revealed(c) && s.Map.Wall(c))
}

// StrategyDeps carries the explicit inputs every strategy constructor needs.
type StrategyDeps struct {
	Config    Config
	Map       *TileMap
	Grid      *NavGrid
	Heuristic HeuristicFunc
	Rng       *rand.Rand
}

type strategyFactory func(d StrategyDeps) Strategy

var strategyRegistry = map[string]strategyFactory{
	NameRandom:      func(d StrategyDeps) Strategy { return NewRandomStrategy(d.Rng) },
	NameMoveAway:    func(StrategyDeps) Strategy { return MoveAwayStrategy{} },
	NameMoveClose:   func(StrategyDeps) Strategy { return MoveCloseStrategy{} },
	NameWallDensity: func(StrategyDeps) Strategy { return NewWallDensityStrategy(DefaultDensityRadius) },
	NameAStar:       func(d StrategyDeps) Strategy { return NewAStar(d) },
	NameDijkstra:    func(d StrategyDeps) Strategy { return NewDijkstra(d) },
	NameBFS:         func(d StrategyDeps) Strategy { return NewBFS(d) },
	NameGreedy:      func(d StrategyDeps) Strategy { return NewGreedy(d) },
	NameJPS:         func(d StrategyDeps) Strategy { return NewJPS(d) },
}

// KnownStrategy reports whether name is registered.
func KnownStrategy(name string) bool {
	_, ok := strategyRegistry[name]
	return ok
}

// ResolveStrategyName maps a case-insensitive name such as "astar" to the
// registered spelling.
func ResolveStrategyName(name string) (string, error) {
	if KnownStrategy(name) {
		return name, nil
	}
	for n := range strategyRegistry {
		if strings.EqualFold(n, name) {
			return n, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// StrategyNames returns every registered name, sorted.
func StrategyNames() []string {
	names := make([]string, 0, len(strategyRegistry))
	for n := range strategyRegistry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// NewStrategy builds a strategy by name.
func NewStrategy(name string, d StrategyDeps) (Strategy, error) {
	f, ok := strategyRegistry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
	return f(d), nil
}

// BuildMix instantiates a weight table as parallel strategy and weight
// slices, in sorted name order so a seed always reproduces the same game.
// Zero weights are kept: the strategy still runs (and its path can still be
// shown) but has no say in the fused decision.
func BuildMix(weights map[string]float64, d StrategyDeps) ([]Strategy, []float64, error) {
	names := sortedNames(weights)
	strategies := make([]Strategy, 0, len(names))
	ws := make([]float64, 0, len(names))
	for _, name := range names {
		w := weights[name]
		if w < 0 {
			return nil, nil, fmt.Errorf("%w: %s=%g", ErrNegativeWeight, name, w)
		}
		s, err := NewStrategy(name, d)
		if err != nil {
			return nil, nil, err
		}
		strategies = append(strategies, s)
		ws = append(ws, w)
	}
	return strategies, ws, nil
}
