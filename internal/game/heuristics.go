package game

import (
	"math"
	"math/rand"
)

// RandomStrategy rolls a level for each move and commits to the best roll.
type RandomStrategy struct {
	rng *rand.Rand
}

// NewRandomStrategy uses rng for every roll; nil falls back to a fixed seed.
func NewRandomStrategy(rng *rand.Rand) *RandomStrategy {
	if rng == nil {
		rng = rand.New(rand.NewSource(1)) // #nosec G404 -- gameplay randomness
	}
	return &RandomStrategy{rng: rng}
}

func (*RandomStrategy) Name() string { return NameRandom }

func (r *RandomStrategy) ActionLevels(s Situation) ActionLevels {
	var l ActionLevels
	for _, a := range Actions {
		l[a] = float64(r.rng.Intn(int(MaxLevel) + 1))
	}
	l = deleteInvalid(l, s)
	l[ActionStay] = 0
	// The winning roll becomes a hard preference. Nothing is boosted when
	// every move is blocked.
	if best := l.Best(); l[best] > 0 {
		l[best] = MaxLevel
	}
	return l
}

// MoveAwayStrategy steps along both axes away from the opponent.
type MoveAwayStrategy struct{}

func (MoveAwayStrategy) Name() string { return NameMoveAway }

func (MoveAwayStrategy) ActionLevels(s Situation) ActionLevels {
	var l ActionLevels
	pos, opp := s.Self.Pos, s.Opponent
	if pos.X >= opp.X {
		l[ActionRight] = MaxLevel
	} else {
		l[ActionLeft] = MaxLevel
	}
	if pos.Y >= opp.Y {
		l[ActionUp] = MaxLevel
	} else {
		l[ActionDown] = MaxLevel
	}
	return deleteInvalid(l, s)
}

// MoveCloseStrategy steps along both axes toward the opponent.
type MoveCloseStrategy struct{}

func (MoveCloseStrategy) Name() string { return NameMoveClose }

func (MoveCloseStrategy) ActionLevels(s Situation) ActionLevels {
	var l ActionLevels
	pos, opp := s.Self.Pos, s.Opponent
	switch {
	case pos.X > opp.X:
		l[ActionLeft] = MaxLevel
	case pos.X < opp.X:
		l[ActionRight] = MaxLevel
	}
	switch {
	case pos.Y > opp.Y:
		l[ActionDown] = MaxLevel
	case pos.Y < opp.Y:
		l[ActionUp] = MaxLevel
	}
	return deleteInvalid(l, s)
}

// DefaultDensityRadius is the half-width of the WallDensity scan window.
const DefaultDensityRadius = 5

// WallDensityStrategy prefers directions with fewer known obstacles.
type WallDensityStrategy struct {
	radius int
}

func NewWallDensityStrategy(radius int) *WallDensityStrategy {
	if radius <= 0 {
		radius = DefaultDensityRadius
	}
	return &WallDensityStrategy{radius: radius}
}

func (*WallDensityStrategy) Name() string { return NameWallDensity }

func (w *WallDensityStrategy) ActionLevels(s Situation) ActionLevels {
	var l ActionLevels
	for _, a := range Moves {
		l[a] = (1 - w.Density(s, a)) * MaxLevel
	}
	return deleteInvalid(l, s)
}

// Density returns the smoothed share of blocked cells in the window that
// lies in direction a, rounded to two decimals. A cell is blocked when it is
// off the map or a revealed wall. The result is always in [0, 1].
func (w *WallDensityStrategy) Density(s Situation, a Action) float64 {
	x0, x1, y0, y1 := w.window(s.Self.Pos, a)
	blocked, total := 0, 0
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			total++
			if !canAttempt(s, C(x, y)) {
				blocked++
			}
		}
	}
	d := float64(1+blocked) / float64(1+total)
	return math.Round(d*100) / 100
}

// window returns the half-open scan bounds for a direction.
func (w *WallDensityStrategy) window(p Cell, a Action) (x0, x1, y0, y1 int) {
	r := w.radius
	switch a {
	case ActionLeft:
		return p.X - r, p.X, p.Y - r, p.Y + r
	case ActionRight:
		return p.X, p.X + r, p.Y - r, p.Y + r
	case ActionUp:
		return p.X - r, p.X + r, p.Y, p.Y + r
	case ActionDown:
		return p.X - r, p.X + r, p.Y - r, p.Y
	default:
		return p.X - r, p.X + r, p.Y - r, p.Y + r
	}
}
