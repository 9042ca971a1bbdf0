package game

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

// HeuristicFunc estimates the distance between two cells.
type HeuristicFunc func(a, b Cell) float64

// Manhattan heuristic; admissible for 4-connected movement with step costs >= 1.
func ManhattanHeuristic(a, b Cell) float64 { return float64(Manhattan(a, b)) }

// EuclideanHeuristic is the straight-line distance.
func EuclideanHeuristic(a, b Cell) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// ChebyshevHeuristic is max(|dx|, |dy|).
func ChebyshevHeuristic(a, b Cell) float64 {
	return float64(max(absInt(a.X-b.X), absInt(a.Y-b.Y)))
}

var heuristics = map[string]HeuristicFunc{
	"manhattan": ManhattanHeuristic,
	"euclidean": EuclideanHeuristic,
	"chebyshev": ChebyshevHeuristic,
}

// ErrUnknownHeuristic is returned for a heuristic name that is not registered.
var ErrUnknownHeuristic = errors.New("unknown heuristic")

// ErrNegativeWeight is returned when a strategy weight is below zero.
var ErrNegativeWeight = errors.New("negative strategy weight")

// LookupHeuristic resolves a heuristic by name.
func LookupHeuristic(name string) (HeuristicFunc, error) {
	h, ok := heuristics[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownHeuristic, name)
	}
	return h, nil
}

// ScorePolicy decides which steps count as good.
type ScorePolicy int

const (
	// ScoreSafeDistance: the agent is more than SafeDistance cells (Manhattan) from the enemy.
	ScoreSafeDistance ScorePolicy = iota
	// ScoreUncaught: the agent does not share a cell with the enemy.
	ScoreUncaught
	// ScoreUngated: the enemy still has checkpoints to visit, so capture is not yet possible.
	ScoreUngated
)

func (p ScorePolicy) String() string {
	switch p {
	case ScoreSafeDistance:
		return "safeDistance"
	case ScoreUncaught:
		return "uncaught"
	case ScoreUngated:
		return "ungated"
	default:
		return "unknown"
	}
}

// ParseScorePolicy maps a policy name to its value.
func ParseScorePolicy(name string) (ScorePolicy, error) {
	for _, p := range []ScorePolicy{ScoreSafeDistance, ScoreUncaught, ScoreUngated} {
		if p.String() == name {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown score policy %q", name)
}

// Range is an inclusive integer interval.
type Range struct {
	Min, Max int
}

// Config carries every tunable of a game. It is passed by value into setup
// and strategy constructors; nothing reads it from package state.
type Config struct {
	FPS      int
	MaxSteps int

	Width  Range
	Height Range

	WallProb float64
	BushProb float64

	MoveCost map[Terrain]float64
	// UnknownMoveCost is charged for cells a role has not revealed yet.
	// Zero means "same as grass".
	UnknownMoveCost float64

	Heuristic string

	AgentWeights map[string]float64
	EnemyWeights map[string]float64

	// SightRadius is how far (Chebyshev) each role reveals around itself;
	// negative disables fog.
	SightRadius int

	ScorePolicy  ScorePolicy
	SafeDistance int

	Checkpoints bool
	TunnelPairs int
	// MinBlanks is the number of free cells a generated map must have.
	MinBlanks int
	// MaxMapTries bounds map generation retries.
	MaxMapTries int
}

// DefaultConfig mirrors the stock game settings.
func DefaultConfig() Config {
	return Config{
		FPS:      10,
		MaxSteps: 500,
		Width:    Range{Min: 12, Max: 16},
		Height:   Range{Min: 8, Max: 12},
		WallProb: 0.25,
		BushProb: 0.2,
		MoveCost: map[Terrain]float64{
			TerrainGrass: 1,
			TerrainBush:  10,
		},
		Heuristic: "manhattan",
		AgentWeights: map[string]float64{
			NameRandom:      1,
			NameMoveAway:    0,
			NameWallDensity: 0,
		},
		EnemyWeights: map[string]float64{
			NameRandom:      0.2,
			NameAStar:       1,
			NameMoveClose:   0.1,
			NameWallDensity: 0,
		},
		SightRadius:  3,
		ScorePolicy:  ScoreSafeDistance,
		SafeDistance: 2,
		Checkpoints:  true,
		TunnelPairs:  2,
		MinBlanks:    2,
		MaxMapTries:  100,
	}
}

// Clone returns a deep copy; changing it leaves c untouched.
func (c Config) Clone() Config {
	out := c
	out.MoveCost = make(map[Terrain]float64, len(c.MoveCost))
	for k, v := range c.MoveCost {
		out.MoveCost[k] = v
	}
	out.AgentWeights = cloneWeights(c.AgentWeights)
	out.EnemyWeights = cloneWeights(c.EnemyWeights)
	return out
}

func cloneWeights(w map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(w))
	for k, v := range w {
		out[k] = v
	}
	return out
}

// WithEnemyAlgorithm returns a copy whose enemy uses only the named strategy.
// Every other enemy weight, including the search algorithms not chosen, is
// kept at zero so the table still shows what was switched off.
func (c Config) WithEnemyAlgorithm(name string) Config {
	out := c.Clone()
	w := make(map[string]float64, len(out.EnemyWeights)+len(SearchAlgorithms))
	for k := range out.EnemyWeights {
		w[k] = 0
	}
	for _, a := range SearchAlgorithms {
		w[a] = 0
	}
	w[name] = 1
	out.EnemyWeights = w
	return out
}

// Weights returns the weight table for a role.
func (c Config) Weights(kind RoleKind) map[string]float64 {
	if kind == RoleEnemy {
		return c.EnemyWeights
	}
	return c.AgentWeights
}

// HeuristicFunc resolves the configured heuristic; empty means manhattan.
func (c Config) HeuristicFunc() (HeuristicFunc, error) {
	if c.Heuristic == "" {
		return ManhattanHeuristic, nil
	}
	return LookupHeuristic(c.Heuristic)
}

// DefaultMoveCost is the cost planners assume for unrevealed cells.
func (c Config) DefaultMoveCost() float64 {
	if c.UnknownMoveCost > 0 {
		return c.UnknownMoveCost
	}
	if v, ok := c.MoveCost[TerrainGrass]; ok {
		return v
	}
	return 1
}

// Validate checks the config for setup-time errors. Unknown strategy names are
// fatal; there is no silent fallback.
func (c Config) Validate() error {
	if c.MaxSteps <= 0 {
		return fmt.Errorf("maxSteps must be > 0, got %d", c.MaxSteps)
	}
	if c.Width.Min <= 1 || c.Width.Min > c.Width.Max || c.Height.Min <= 1 || c.Height.Min > c.Height.Max {
		return fmt.Errorf("invalid map size %v x %v", c.Width, c.Height)
	}
	if c.WallProb < 0 || c.BushProb < 0 || c.WallProb+c.BushProb > 1 {
		return fmt.Errorf("invalid terrain probabilities wall=%.2f bush=%.2f", c.WallProb, c.BushProb)
	}
	if _, err := c.HeuristicFunc(); err != nil {
		return err
	}
	for _, kind := range []RoleKind{RoleAgent, RoleEnemy} {
		if err := validateWeights(kind, c.Weights(kind)); err != nil {
			return err
		}
	}
	return nil
}

func validateWeights(kind RoleKind, w map[string]float64) error {
	for _, name := range sortedNames(w) {
		if !KnownStrategy(name) {
			return fmt.Errorf("%s weights: %w: %q", kind, ErrUnknownStrategy, name)
		}
		if w[name] < 0 {
			return fmt.Errorf("%s weights: %w: %s=%g", kind, ErrNegativeWeight, name, w[name])
		}
	}
	return nil
}

// EnemyAlgorithmLabel names the enemy's dominant strategy for display:
// the highest positive weight (upper-cased), or MIXED when none is positive.
func (c Config) EnemyAlgorithmLabel() string {
	best := 0.0
	label := "MIXED"
	for _, name := range sortedNames(c.EnemyWeights) {
		if w := c.EnemyWeights[name]; w > best {
			best = w
			label = strings.ToUpper(name)
		}
	}
	return label
}

func sortedNames(w map[string]float64) []string {
	names := make([]string, 0, len(w))
	for k := range w {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
