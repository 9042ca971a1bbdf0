package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Garsondee/chase-ai/internal/game"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_JSONWithCamelCaseKeys(t *testing.T) {
	path := writeFile(t, "config.json", `{
  "fps": 20,
  "maxSteps": 300,
  "mapSize": {"width": {"min": 10, "max": 10}, "height": {"min": 6, "max": 8}},
  "terrainProb": {"wall": 0.1, "bush": 0.3},
  "moveCost": {"grass": 1, "bush": 4},
  "strategyWeights": {
    "agent": {"moveAway": 1, "wallDensity": 0.5},
    "enemy": {"jps": 1}
  }
}`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 20, cfg.FPS)
	assert.Equal(t, 300, cfg.MaxSteps)
	assert.Equal(t, game.Range{Min: 10, Max: 10}, cfg.Width)
	assert.Equal(t, game.Range{Min: 6, Max: 8}, cfg.Height)
	assert.InDelta(t, 0.1, cfg.WallProb, 1e-9)
	assert.InDelta(t, 0.3, cfg.BushProb, 1e-9)
	assert.Equal(t, 4.0, cfg.MoveCost[game.TerrainBush])
	assert.Equal(t, map[string]float64{game.NameMoveAway: 1, game.NameWallDensity: 0.5}, cfg.AgentWeights)
	assert.Equal(t, map[string]float64{game.NameJPS: 1}, cfg.EnemyWeights)
	assert.Equal(t, "JPS", cfg.EnemyAlgorithmLabel())

	// Untouched fields keep their defaults.
	def := Default()
	assert.Equal(t, def.SightRadius, cfg.SightRadius)
	assert.Equal(t, def.Heuristic, cfg.Heuristic)
	assert.Equal(t, def.TunnelPairs, cfg.TunnelPairs)
}

func TestLoad_YAMLExtras(t *testing.T) {
	path := writeFile(t, "config.yaml", `
heuristic: euclidean
sightRadius: -1
scorePolicy: uncaught
checkpoints: false
tunnelPairs: 0
moveCost:
  unknown: 2
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "euclidean", cfg.Heuristic)
	assert.Equal(t, -1, cfg.SightRadius)
	assert.Equal(t, game.ScoreUncaught, cfg.ScorePolicy)
	assert.False(t, cfg.Checkpoints)
	assert.Equal(t, 0, cfg.TunnelPairs)
	assert.Equal(t, 2.0, cfg.DefaultMoveCost())
}

func TestParse_MapSizeKeepsOmittedDimension(t *testing.T) {
	cfg, err := Parse([]byte("mapSize:\n  width: {min: 12, max: 14}\n"))
	require.NoError(t, err)
	assert.Equal(t, game.Range{Min: 12, Max: 14}, cfg.Width)
	assert.Equal(t, Default().Height, cfg.Height)

	cfg, err = Parse([]byte("mapSize:\n  height: {min: 5, max: 5}\n"))
	require.NoError(t, err)
	assert.Equal(t, Default().Width, cfg.Width)
	assert.Equal(t, game.Range{Min: 5, Max: 5}, cfg.Height)
}

func TestParse_EmptyIsDefault(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default().MaxSteps, cfg.MaxSteps)
	assert.Equal(t, Default().EnemyWeights, cfg.EnemyWeights)
}

func TestParse_Errors(t *testing.T) {
	cases := map[string]string{
		"unknown strategy": "strategyWeights:\n  enemy:\n    teleport: 1\n",
		"unknown role":     "strategyWeights:\n  bystander:\n    random: 1\n",
		"unknown key":      "maxStep: 10\n",
		"bad heuristic":    "heuristic: octile\n",
		"bad policy":       "scorePolicy: always\n",
		"wall cost":        "moveCost:\n  wall: 3\n",
		"negative weight":  "strategyWeights:\n  agent:\n    random: -1\n",
		"bad size":         "mapSize:\n  width: {min: 9, max: 4}\n  height: {min: 4, max: 4}\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(body))
			assert.Error(t, err)
		})
	}
}

func TestParse_UnknownStrategyWrapsSentinel(t *testing.T) {
	_, err := Parse([]byte("strategyWeights:\n  enemy:\n    teleport: 1\n"))
	require.ErrorIs(t, err, game.ErrUnknownStrategy)
}

func TestMarshal_RoundTripsThroughParse(t *testing.T) {
	want := Default().WithEnemyAlgorithm(game.NameDijkstra)
	want.SightRadius = 5
	want.UnknownMoveCost = 3
	b, err := Marshal(want)
	require.NoError(t, err)

	got, err := Parse(b)
	require.NoError(t, err)
	assert.Equal(t, want.EnemyWeights, got.EnemyWeights)
	assert.Equal(t, want.AgentWeights, got.AgentWeights)
	assert.Equal(t, want.MoveCost, got.MoveCost)
	assert.Equal(t, 5, got.SightRadius)
	assert.Equal(t, 3.0, got.UnknownMoveCost)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
