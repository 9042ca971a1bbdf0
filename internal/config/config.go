// Package config loads game settings from a YAML or JSON file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Garsondee/chase-ai/internal/game"
)

type rangeSpec struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

func (r rangeSpec) toRange() game.Range { return game.Range{Min: r.Min, Max: r.Max} }

// mapSize leaves a dimension at its default when it is omitted.
type mapSize struct {
	Width  *rangeSpec `yaml:"width"`
	Height *rangeSpec `yaml:"height"`
}

// File mirrors the on-disk layout. Every field is optional; anything left
// out keeps its default.
type File struct {
	FPS             *int                          `yaml:"fps"`
	MaxSteps        *int                          `yaml:"maxSteps"`
	MapSize         *mapSize                      `yaml:"mapSize"`
	TerrainProb     map[string]float64            `yaml:"terrainProb"`
	MoveCost        map[string]float64            `yaml:"moveCost"`
	Heuristic       string                        `yaml:"heuristic"`
	StrategyWeights map[string]map[string]float64 `yaml:"strategyWeights"`
	SightRadius     *int                          `yaml:"sightRadius"`
	ScorePolicy     string                        `yaml:"scorePolicy"`
	SafeDistance    *int                          `yaml:"safeDistance"`
	Checkpoints     *bool                         `yaml:"checkpoints"`
	TunnelPairs     *int                          `yaml:"tunnelPairs"`
	MinBlanks       *int                          `yaml:"minBlanks"`
	MaxMapTries     *int                          `yaml:"maxMapTries"`
}

// unknownCostKey sets the cost planners assume for unrevealed cells.
const unknownCostKey = "unknown"

// Default returns the stock settings.
func Default() game.Config {
	return game.DefaultConfig()
}

// Load reads and validates the config at path. JSON files load too since
// YAML is a superset.
func Load(path string) (game.Config, error) {
	b, err := os.ReadFile(path) // #nosec G304 -- operator-supplied path
	if err != nil {
		return game.Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(b)
	if err != nil {
		return game.Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse applies data over the defaults and validates the result. Unknown
// keys are rejected.
func Parse(data []byte) (game.Config, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return game.Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg, err := f.Apply(Default())
	if err != nil {
		return game.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return game.Config{}, err
	}
	return cfg, nil
}

// Apply overlays the fields set in f onto base.
func (f File) Apply(base game.Config) (game.Config, error) {
	cfg := base.Clone()
	if f.FPS != nil {
		cfg.FPS = *f.FPS
	}
	if f.MaxSteps != nil {
		cfg.MaxSteps = *f.MaxSteps
	}
	if f.MapSize != nil {
		if f.MapSize.Width != nil {
			cfg.Width = f.MapSize.Width.toRange()
		}
		if f.MapSize.Height != nil {
			cfg.Height = f.MapSize.Height.toRange()
		}
	}
	for k, v := range f.TerrainProb {
		switch k {
		case game.TerrainWall.String():
			cfg.WallProb = v
		case game.TerrainBush.String():
			cfg.BushProb = v
		default:
			return cfg, fmt.Errorf("terrainProb: unknown terrain %q", k)
		}
	}
	for k, v := range f.MoveCost {
		if k == unknownCostKey {
			cfg.UnknownMoveCost = v
			continue
		}
		t, ok := game.ParseTerrain(k)
		if !ok || t == game.TerrainWall {
			return cfg, fmt.Errorf("moveCost: unknown terrain %q", k)
		}
		if v <= 0 {
			return cfg, fmt.Errorf("moveCost: %s must be > 0, got %g", k, v)
		}
		cfg.MoveCost[t] = v
	}
	if f.Heuristic != "" {
		cfg.Heuristic = f.Heuristic
	}
	for role, w := range f.StrategyWeights {
		switch role {
		case game.RoleAgent.String():
			cfg.AgentWeights = w
		case game.RoleEnemy.String():
			cfg.EnemyWeights = w
		default:
			return cfg, fmt.Errorf("strategyWeights: unknown role %q", role)
		}
	}
	if f.SightRadius != nil {
		cfg.SightRadius = *f.SightRadius
	}
	if f.ScorePolicy != "" {
		p, err := game.ParseScorePolicy(f.ScorePolicy)
		if err != nil {
			return cfg, err
		}
		cfg.ScorePolicy = p
	}
	if f.SafeDistance != nil {
		cfg.SafeDistance = *f.SafeDistance
	}
	if f.Checkpoints != nil {
		cfg.Checkpoints = *f.Checkpoints
	}
	if f.TunnelPairs != nil {
		cfg.TunnelPairs = *f.TunnelPairs
	}
	if f.MinBlanks != nil {
		cfg.MinBlanks = *f.MinBlanks
	}
	if f.MaxMapTries != nil {
		cfg.MaxMapTries = *f.MaxMapTries
	}
	return cfg, nil
}

// Marshal renders cfg in the file layout, for writing a starting config.
func Marshal(cfg game.Config) ([]byte, error) {
	moveCost := make(map[string]float64, len(cfg.MoveCost)+1)
	for t, v := range cfg.MoveCost {
		moveCost[t.String()] = v
	}
	if cfg.UnknownMoveCost > 0 {
		moveCost[unknownCostKey] = cfg.UnknownMoveCost
	}
	f := File{
		FPS:      &cfg.FPS,
		MaxSteps: &cfg.MaxSteps,
		MapSize: &mapSize{
			Width:  &rangeSpec{Min: cfg.Width.Min, Max: cfg.Width.Max},
			Height: &rangeSpec{Min: cfg.Height.Min, Max: cfg.Height.Max},
		},
		TerrainProb: map[string]float64{
			game.TerrainWall.String(): cfg.WallProb,
			game.TerrainBush.String(): cfg.BushProb,
		},
		MoveCost:  moveCost,
		Heuristic: cfg.Heuristic,
		StrategyWeights: map[string]map[string]float64{
			game.RoleAgent.String(): cfg.AgentWeights,
			game.RoleEnemy.String(): cfg.EnemyWeights,
		},
		SightRadius:  &cfg.SightRadius,
		ScorePolicy:  cfg.ScorePolicy.String(),
		SafeDistance: &cfg.SafeDistance,
		Checkpoints:  &cfg.Checkpoints,
		TunnelPairs:  &cfg.TunnelPairs,
		MinBlanks:    &cfg.MinBlanks,
		MaxMapTries:  &cfg.MaxMapTries,
	}
	return yaml.Marshal(f)
}
