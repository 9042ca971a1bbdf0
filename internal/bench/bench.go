// Package bench plays batches of headless games to compare enemy search
// algorithms against the same agent and the same seeds.
package bench

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Garsondee/chase-ai/internal/game"
)

// MinBlanks is the free-cell floor for benchmark maps. It is higher than
// the interactive default so every layout has room for checkpoints.
const MinBlanks = 6

// ErrNoRuns is returned when a batch is asked for zero games.
var ErrNoRuns = errors.New("runs must be > 0")

// Options selects what to play.
type Options struct {
	Algorithms []string // enemy strategies; empty means every search algorithm
	Runs       int      // games per algorithm
	SeedBase   int64
	SeedStep   int64
}

// Game is one finished game.
type Game struct {
	Seed     int64
	Outcome  game.Outcome
	Score    int
	Steps    int
	Visited  int
	Duration time.Duration
}

// Result aggregates the games of one algorithm. Wins are games the agent
// survived to the step limit, losses are captures, timeouts are games where
// the agent got boxed in.
type Result struct {
	Algorithm   string
	Label       string
	Games       []Game
	Wins        int
	Losses      int
	Timeouts    int
	AvgScore    float64
	ScoreStdDev float64
	AvgSteps    float64
	AvgTime     time.Duration
}

// Report is one benchmark batch.
type Report struct {
	ID       string
	Started  time.Time
	Elapsed  time.Duration
	Options  Options
	MaxSteps int
	Results  []Result
}

// Seed returns the seed of game i (zero based).
func (o Options) Seed(i int) int64 {
	step := o.SeedStep
	if step == 0 {
		step = 1
	}
	return o.SeedBase + int64(i)*step
}

// Run plays opts.Runs games for every algorithm. Each algorithm gets its own
// copy of cfg so nothing leaks between them. The context is checked between
// games.
func Run(ctx context.Context, cfg game.Config, opts Options) (Report, error) {
	if opts.Runs <= 0 {
		return Report{}, ErrNoRuns
	}
	if len(opts.Algorithms) == 0 {
		opts.Algorithms = append([]string(nil), game.SearchAlgorithms...)
	}
	for _, a := range opts.Algorithms {
		if !game.KnownStrategy(a) {
			return Report{}, fmt.Errorf("algorithm %q: %w", a, game.ErrUnknownStrategy)
		}
	}

	rep := Report{
		ID:       uuid.New().String(),
		Started:  time.Now(),
		Options:  opts,
		MaxSteps: cfg.MaxSteps,
	}
	for _, alg := range opts.Algorithms {
		algCfg := cfg.WithEnemyAlgorithm(alg)
		algCfg.MinBlanks = max(algCfg.MinBlanks, MinBlanks)
		res := Result{Algorithm: alg, Label: algCfg.EnemyAlgorithmLabel()}
		for i := 0; i < opts.Runs; i++ {
			if err := ctx.Err(); err != nil {
				return rep, err
			}
			g, err := playOne(algCfg, opts.Seed(i))
			if err != nil {
				return rep, fmt.Errorf("%s seed %d: %w", alg, opts.Seed(i), err)
			}
			res.Games = append(res.Games, g)
		}
		res.summarise()
		rep.Results = append(rep.Results, res)
	}
	rep.Elapsed = time.Since(rep.Started)
	return rep, nil
}

func playOne(cfg game.Config, seed int64) (Game, error) {
	start := time.Now()
	sim, err := game.NewSim(game.WithConfig(cfg), game.WithSeed(seed))
	if err != nil {
		return Game{}, err
	}
	out := sim.RunToEnd()
	return Game{
		Seed:     seed,
		Outcome:  out.Outcome,
		Score:    out.Score,
		Steps:    out.Steps,
		Visited:  out.Visited,
		Duration: time.Since(start),
	}, nil
}

func (r *Result) summarise() {
	r.Wins, r.Losses, r.Timeouts = 0, 0, 0
	if len(r.Games) == 0 {
		return
	}
	scores := make([]float64, 0, len(r.Games))
	steps := 0
	var total time.Duration
	for _, g := range r.Games {
		switch g.Outcome {
		case game.OutcomeSurvived:
			r.Wins++
		case game.OutcomeCaptured:
			r.Losses++
		case game.OutcomeStuck:
			r.Timeouts++
		}
		scores = append(scores, float64(g.Score))
		steps += g.Steps
		total += g.Duration
	}
	n := len(r.Games)
	r.AvgScore, r.ScoreStdDev = meanStdDev(scores)
	r.AvgSteps = float64(steps) / float64(n)
	r.AvgTime = total / time.Duration(n)
}

// meanStdDev returns the mean and sample (n-1) standard deviation. A single
// value has no spread.
func meanStdDev(xs []float64) (mean, sd float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))
	for _, x := range xs {
		d := x - mean
		sd += d * d
	}
	if len(xs) == 1 {
		return mean, 0
	}
	return mean, math.Sqrt(sd / float64(len(xs)-1))
}

// WinRate is the share of games the agent survived, in percent.
func (r Result) WinRate() float64 {
	if len(r.Games) == 0 {
		return 0
	}
	return float64(r.Wins) / float64(len(r.Games)) * 100
}

// Best returns the result whose enemy let the agent score lowest, i.e. the
// strongest pursuer. ok is false for an empty report.
func (rep Report) Best() (Result, bool) {
	if len(rep.Results) == 0 {
		return Result{}, false
	}
	best := rep.Results[0]
	for _, r := range rep.Results[1:] {
		if r.AvgScore < best.AvgScore || (r.AvgScore == best.AvgScore && r.Losses > best.Losses) {
			best = r
		}
	}
	return best, true
}

// Format renders the report as a plain-text table.
func (rep Report) Format() string {
	var b strings.Builder
	fmt.Fprintf(&b, "=== Algorithm Comparison ===\n")
	fmt.Fprintf(&b, "id=%s runs=%d seed_base=%d seed_step=%d max_steps=%d\n\n",
		rep.ID, rep.Options.Runs, rep.Options.SeedBase, rep.Options.SeedStep, rep.MaxSteps)
	fmt.Fprintf(&b, "%-10s %5s %6s %8s %9s %9s %9s %10s\n",
		"algorithm", "wins", "losses", "timeouts", "avg_score", "score_sd", "avg_steps", "avg_time")
	for _, r := range rep.Results {
		fmt.Fprintf(&b, "%-10s %5d %6d %8d %9.1f %9.2f %9.1f %10s\n",
			r.Label, r.Wins, r.Losses, r.Timeouts, r.AvgScore, r.ScoreStdDev, r.AvgSteps,
			r.AvgTime.Round(time.Microsecond))
	}
	if best, ok := rep.Best(); ok {
		fmt.Fprintf(&b, "\nstrongest_enemy=%s (avg agent score %.1f%%, captures %d/%d)\n",
			best.Label, best.AvgScore, best.Losses, len(best.Games))
	}
	return b.String()
}
