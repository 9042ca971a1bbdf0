package game

import (
	"errors"
	"fmt"
	"math/rand"
)

// ErrTooFewBlanks is returned when map generation keeps producing maps with
// too little open ground.
var ErrTooFewBlanks = errors.New("map has too few free cells")

const defaultMapTries = 100

// GenerateLayout draws a random map within the configured size ranges and
// places the agent, the enemy, the checkpoints and the tunnel pairs on
// distinct free cells. Map generation is retried up to MaxMapTries times.
func GenerateLayout(cfg Config, rng *rand.Rand) (PursuitParams, error) {
	if cfg.Width.Min <= 1 || cfg.Width.Min > cfg.Width.Max || cfg.Height.Min <= 1 || cfg.Height.Min > cfg.Height.Max {
		return PursuitParams{}, fmt.Errorf("invalid map size %v x %v", cfg.Width, cfg.Height)
	}
	tries := cfg.MaxMapTries
	if tries <= 0 {
		tries = defaultMapTries
	}
	need := max(2, cfg.MinBlanks)

	var tm *TileMap
	var blanks []Cell
	for try := 0; try < tries; try++ {
		w := cfg.Width.Min + rng.Intn(cfg.Width.Max-cfg.Width.Min+1)
		h := cfg.Height.Min + rng.Intn(cfg.Height.Max-cfg.Height.Min+1)
		m := GenerateTileMap(w, h, cfg.WallProb, cfg.BushProb, cfg.MoveCost, rng)
		if b := m.Blanks(); len(b) >= need {
			tm, blanks = m, b
			break
		}
	}
	if tm == nil {
		return PursuitParams{}, fmt.Errorf("%w: need %d after %d tries", ErrTooFewBlanks, need, tries)
	}

	take := func() Cell {
		i := rng.Intn(len(blanks))
		c := blanks[i]
		blanks = append(blanks[:i], blanks[i+1:]...)
		return c
	}

	p := PursuitParams{Map: tm, Rng: rng}
	p.Agent = take()
	p.Enemy = take()
	if cfg.Checkpoints && len(blanks) >= MaxCheckpoints {
		for i := 0; i < MaxCheckpoints; i++ {
			p.Checkpoints = append(p.Checkpoints, take())
		}
	}
	pairs := min(cfg.TunnelPairs, len(blanks)/2)
	if pairs > 0 {
		p.Tunnels = make(map[Cell]Cell, pairs*2)
		for i := 0; i < pairs; i++ {
			u, v := take(), take()
			p.Tunnels[u] = v
			p.Tunnels[v] = u
		}
	}
	return p, nil
}

// NewGame validates cfg and builds a random game from seed.
func NewGame(cfg Config, seed int64, log *SimLog) (*Pursuit, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(seed)) // #nosec G404 -- reproducible games
	p, err := GenerateLayout(cfg, rng)
	if err != nil {
		return nil, err
	}
	p.Log = log
	return NewPursuit(cfg, p)
}
