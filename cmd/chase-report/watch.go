package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"golang.org/x/time/rate"

	"github.com/Garsondee/chase-ai/internal/game"
)

// watch plays one game, writing a frame per tick no faster than limiter
// allows.
func watch(ctx context.Context, cfg game.Config, seed int64, limiter *rate.Limiter, w io.Writer) (game.OutcomeReason, error) {
	sim, err := game.NewSim(game.WithConfig(cfg), game.WithSeed(seed))
	if err != nil {
		return game.OutcomeReason{}, err
	}
	p := sim.Game
	fmt.Fprintf(w, "seed=%d enemy=%s map=%dx%d\n", seed, cfg.EnemyAlgorithmLabel(), p.Map().Cols, p.Map().Rows)
	fmt.Fprint(w, renderFrame(p))
	for !p.Ended() {
		if err := limiter.Wait(ctx); err != nil {
			return game.OutcomeReason{}, err
		}
		if _, err := p.Tick(); err != nil {
			return game.OutcomeReason{}, err
		}
		fmt.Fprint(w, renderFrame(p))
	}
	out := game.DetermineOutcome(p)
	fmt.Fprintf(w, "outcome=%s (%s) score=%d%% steps=%d\n", out.Outcome, out.Description, out.Score, out.Steps)
	return out, nil
}

// renderFrame draws the true map top row first. Legend: A agent, E enemy,
// 1/2 pending checkpoints, O tunnel ends, + enemy path, # wall, * bush.
func renderFrame(p *game.Pursuit) string {
	tm := p.Map()
	marks := make(map[game.Cell]byte)
	for _, c := range p.Enemy.Path() {
		marks[c] = '+'
	}
	for u := range p.Tunnels() {
		marks[u] = 'O'
	}
	for i, cp := range p.Checkpoints() {
		if !p.Visited(i) {
			marks[cp] = byte('1' + i)
		}
	}
	marks[p.Enemy.Pos] = 'E'
	marks[p.Agent.Pos] = 'A'

	var sb strings.Builder
	fmt.Fprintf(&sb, "T=%d steps=%d good=%d checkpoints=%s\n", p.TickCount(), p.Steps(), p.GoodSteps(), p.CheckpointFlags())
	for y := tm.Rows - 1; y >= 0; y-- {
		for x := 0; x < tm.Cols; x++ {
			c := game.C(x, y)
			if m, ok := marks[c]; ok {
				sb.WriteByte(m)
				continue
			}
			switch tm.At(c) {
			case game.TerrainWall:
				sb.WriteByte('#')
			case game.TerrainBush:
				sb.WriteByte('*')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteByte('\n')
	return sb.String()
}
