package game

import (
	"fmt"
	"math/rand"
)

// Selector fuses several strategies' levels into one action by weighted sum.
// Ties for the top total are broken uniformly at random.
type Selector struct {
	weights []float64
	rng     *rand.Rand
}

// NewSelector validates the weights; they need not sum to 1.
func NewSelector(weights []float64, rng *rand.Rand) (*Selector, error) {
	for i, w := range weights {
		if w < 0 {
			return nil, fmt.Errorf("weight %d: %w: %g", i, ErrNegativeWeight, w)
		}
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1)) // #nosec G404 -- gameplay randomness
	}
	return &Selector{weights: append([]float64(nil), weights...), rng: rng}, nil
}

// EqualSelector weights n strategies equally.
func EqualSelector(n int, rng *rand.Rand) *Selector {
	ws := make([]float64, n)
	for i := range ws {
		ws[i] = 1
	}
	s, _ := NewSelector(ws, rng)
	return s
}

// Weights returns a copy of the weights.
func (s *Selector) Weights() []float64 {
	return append([]float64(nil), s.weights...)
}

// Fuse returns the weighted sum of levels. Levels and weights are paired by
// index; extra entries on either side are ignored.
func (s *Selector) Fuse(levels []ActionLevels) ActionLevels {
	var acc ActionLevels
	n := min(len(levels), len(s.weights))
	for i := 0; i < n; i++ {
		for _, a := range Actions {
			acc[a] += s.weights[i] * levels[i][a]
		}
	}
	return acc
}

// Highest picks the action with the largest fused level. With no strategies
// it returns stay.
func (s *Selector) Highest(levels []ActionLevels) Action {
	if len(levels) == 0 || len(s.weights) == 0 {
		return ActionStay
	}
	acc := s.Fuse(levels)
	best := acc[acc.Best()]
	choices := make([]Action, 0, len(Actions))
	for _, a := range Actions {
		if acc[a] == best {
			choices = append(choices, a)
		}
	}
	return choices[s.rng.Intn(len(choices))]
}
