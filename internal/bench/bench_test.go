package bench

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Garsondee/chase-ai/internal/game"
)

func smallConfig() game.Config {
	cfg := game.DefaultConfig()
	cfg.MaxSteps = 60
	return cfg
}

func TestRun_CountsAddUp(t *testing.T) {
	opts := Options{Algorithms: []string{game.NameAStar, game.NameBFS}, Runs: 4, SeedBase: 7, SeedStep: 3}
	rep, err := Run(context.Background(), smallConfig(), opts)
	require.NoError(t, err)

	_, err = uuid.Parse(rep.ID)
	require.NoError(t, err, "report id should be a uuid")
	require.Len(t, rep.Results, 2)

	for _, r := range rep.Results {
		require.Len(t, r.Games, 4)
		assert.Equal(t, 4, r.Wins+r.Losses+r.Timeouts, r.Algorithm)
		assert.GreaterOrEqual(t, r.AvgScore, 0.0)
		assert.LessOrEqual(t, r.AvgScore, 100.0)
		for i, g := range r.Games {
			assert.Equal(t, opts.Seed(i), g.Seed)
			assert.LessOrEqual(t, g.Steps, 60)
		}
	}
	assert.Equal(t, "ASTAR", rep.Results[0].Label)
	assert.Equal(t, "BFS", rep.Results[1].Label)
}

func TestRun_Deterministic(t *testing.T) {
	opts := Options{Algorithms: []string{game.NameJPS}, Runs: 3, SeedBase: 11, SeedStep: 1}
	a, err := Run(context.Background(), smallConfig(), opts)
	require.NoError(t, err)
	b, err := Run(context.Background(), smallConfig(), opts)
	require.NoError(t, err)

	for i := range a.Results[0].Games {
		ga, gb := a.Results[0].Games[i], b.Results[0].Games[i]
		assert.Equal(t, ga.Outcome, gb.Outcome)
		assert.Equal(t, ga.Score, gb.Score)
		assert.Equal(t, ga.Steps, gb.Steps)
	}
	assert.NotEqual(t, a.ID, b.ID)
}

func TestRun_DefaultsToEverySearch(t *testing.T) {
	rep, err := Run(context.Background(), smallConfig(), Options{Runs: 1})
	require.NoError(t, err)
	require.Len(t, rep.Results, len(game.SearchAlgorithms))
	for i, r := range rep.Results {
		assert.Equal(t, game.SearchAlgorithms[i], r.Algorithm)
	}
}

func TestRun_LeavesConfigAlone(t *testing.T) {
	cfg := smallConfig()
	_, err := Run(context.Background(), cfg, Options{Algorithms: []string{game.NameGreedy}, Runs: 1})
	require.NoError(t, err)
	assert.Equal(t, 1.0, cfg.EnemyWeights[game.NameAStar])
	_, ok := cfg.EnemyWeights[game.NameGreedy]
	assert.False(t, ok)
}

func TestRun_Errors(t *testing.T) {
	_, err := Run(context.Background(), smallConfig(), Options{Runs: 0})
	assert.ErrorIs(t, err, ErrNoRuns)

	_, err = Run(context.Background(), smallConfig(), Options{Algorithms: []string{"teleport"}, Runs: 1})
	assert.ErrorIs(t, err, game.ErrUnknownStrategy)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Run(ctx, smallConfig(), Options{Runs: 2})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSummarise(t *testing.T) {
	r := Result{Games: []Game{
		{Outcome: game.OutcomeSurvived, Score: 80, Steps: 60, Duration: 2 * time.Millisecond},
		{Outcome: game.OutcomeCaptured, Score: 40, Steps: 20, Duration: 4 * time.Millisecond},
		{Outcome: game.OutcomeStuck, Score: 60, Steps: 10, Duration: 3 * time.Millisecond},
	}}
	r.summarise()
	assert.Equal(t, 1, r.Wins)
	assert.Equal(t, 1, r.Losses)
	assert.Equal(t, 1, r.Timeouts)
	assert.InDelta(t, 60.0, r.AvgScore, 1e-9)
	assert.InDelta(t, 20.0, r.ScoreStdDev, 1e-9)
	assert.InDelta(t, 30.0, r.AvgSteps, 1e-9)
	assert.Equal(t, 3*time.Millisecond, r.AvgTime)
	assert.InDelta(t, 33.33, r.WinRate(), 0.01)
}

func TestMeanStdDev_SampleDeviation(t *testing.T) {
	mean, sd := meanStdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	assert.InDelta(t, 5.0, mean, 1e-9)
	assert.InDelta(t, 2.138, sd, 0.001)

	mean, sd = meanStdDev([]float64{70})
	assert.Equal(t, 70.0, mean)
	assert.Zero(t, sd)

	mean, sd = meanStdDev(nil)
	assert.Zero(t, mean)
	assert.Zero(t, sd)
}

func TestReport_FormatAndBest(t *testing.T) {
	rep := Report{
		ID:      "x",
		Options: Options{Runs: 2},
		Results: []Result{
			{Label: "ASTAR", AvgScore: 40, Losses: 1, Games: make([]Game, 2)},
			{Label: "GREEDY", AvgScore: 70, Games: make([]Game, 2)},
		},
	}
	best, ok := rep.Best()
	require.True(t, ok)
	assert.Equal(t, "ASTAR", best.Label)

	out := rep.Format()
	assert.True(t, strings.Contains(out, "GREEDY"))
	assert.Contains(t, out, "strongest_enemy=ASTAR")

	_, ok = Report{}.Best()
	assert.False(t, ok)
}
