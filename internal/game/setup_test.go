package game

import (
	"errors"
	"math/rand"
	"testing"
)

func TestConfig_WithEnemyAlgorithmIsIndependent(t *testing.T) {
	base := DefaultConfig()
	cfg := base.WithEnemyAlgorithm(NameJPS)
	if cfg.EnemyWeights[NameJPS] != 1 || cfg.EnemyWeights[NameAStar] != 0 || cfg.EnemyWeights[NameRandom] != 0 {
		t.Fatalf("enemy weights: %v", cfg.EnemyWeights)
	}
	if base.EnemyWeights[NameAStar] != 1 || base.EnemyWeights[NameRandom] != 0.2 {
		t.Fatalf("base config was modified: %v", base.EnemyWeights)
	}
	if _, ok := base.EnemyWeights[NameJPS]; ok {
		t.Fatal("base config gained a jps entry")
	}
	if got := cfg.EnemyAlgorithmLabel(); got != "JPS" {
		t.Fatalf("label: want JPS, got %s", got)
	}
}

func TestConfig_LabelMixedWhenNothingPositive(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EnemyWeights = map[string]float64{NameAStar: 0, NameBFS: 0}
	if got := cfg.EnemyAlgorithmLabel(); got != "MIXED" {
		t.Fatalf("want MIXED, got %s", got)
	}
}

func TestConfig_ValidateRejectsUnknownStrategy(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AgentWeights = map[string]float64{"hide": 1}
	if err := cfg.Validate(); !errors.Is(err, ErrUnknownStrategy) {
		t.Fatalf("want ErrUnknownStrategy, got %v", err)
	}
	cfg = DefaultConfig()
	cfg.Heuristic = "octile"
	if err := cfg.Validate(); !errors.Is(err, ErrUnknownHeuristic) {
		t.Fatalf("want ErrUnknownHeuristic, got %v", err)
	}
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestHeuristics_Values(t *testing.T) {
	a, b := C(0, 0), C(3, 4)
	if ManhattanHeuristic(a, b) != 7 || EuclideanHeuristic(a, b) != 5 || ChebyshevHeuristic(a, b) != 4 {
		t.Fatal("heuristic values for (0,0)-(3,4) should be 7, 5, 4")
	}
}

func TestGenerateLayout_DistinctCells(t *testing.T) {
	cfg := DefaultConfig()
	for seed := int64(0); seed < 30; seed++ {
		p, err := GenerateLayout(cfg, rand.New(rand.NewSource(seed))) // #nosec G404 -- test
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if p.Map.Cols < cfg.Width.Min || p.Map.Cols > cfg.Width.Max || p.Map.Rows < cfg.Height.Min || p.Map.Rows > cfg.Height.Max {
			t.Fatalf("seed %d: size %dx%d outside config", seed, p.Map.Cols, p.Map.Rows)
		}
		used := map[Cell]bool{}
		cells := append([]Cell{p.Agent, p.Enemy}, p.Checkpoints...)
		for u := range p.Tunnels {
			cells = append(cells, u)
		}
		for _, c := range cells {
			if used[c] {
				t.Fatalf("seed %d: %v used twice", seed, c)
			}
			if p.Map.Wall(c) {
				t.Fatalf("seed %d: %v is a wall", seed, c)
			}
			used[c] = true
		}
		if len(p.Checkpoints) != MaxCheckpoints || len(p.Tunnels) != 2*cfg.TunnelPairs {
			t.Fatalf("seed %d: %d checkpoints, %d tunnel ends", seed, len(p.Checkpoints), len(p.Tunnels))
		}
	}
}

func TestGenerateLayout_GivesUpOnSolidMaps(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WallProb, cfg.BushProb = 1, 0
	cfg.MaxMapTries = 5
	_, err := GenerateLayout(cfg, rand.New(rand.NewSource(1))) // #nosec G404 -- test
	if !errors.Is(err, ErrTooFewBlanks) {
		t.Fatalf("want ErrTooFewBlanks, got %v", err)
	}
}

func TestNewGame_UnknownStrategyIsFatal(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EnemyWeights[NameAStar] = 0
	cfg.EnemyWeights["teleport"] = 1
	if _, err := NewGame(cfg, 1, nil); !errors.Is(err, ErrUnknownStrategy) {
		t.Fatalf("want ErrUnknownStrategy, got %v", err)
	}
}

func TestRecorder_SeriesLineUp(t *testing.T) {
	s := mustSim(t,
		WithOpenMap(8, 8),
		WithSightRadius(-1),
		WithAgentWeights(idle),
		WithEnemyWeights(map[string]float64{NameAStar: 1}),
		WithAgentAt(7, 7),
		WithEnemyAt(0, 0),
		WithCheckpoints(C(3, 0), C(3, 3)),
	)
	s.RunTicks(20)
	r := s.Recorder
	if len(r.Distances()) != len(r.Frames) {
		t.Fatalf("distance series should have one value per frame")
	}
	if len(r.CheckpointVisits) != 2 || r.CheckpointVisits[0].Index != 0 {
		t.Fatalf("enemy should reach both checkpoints in order: %+v", r.CheckpointVisits)
	}
	if r.AveragePathLength() <= 1 {
		t.Fatalf("enemy paths should be recorded, avg %v", r.AveragePathLength())
	}
	total := 0
	for _, n := range r.Heatmap() {
		total += n
	}
	if total != len(r.Frames) {
		t.Fatalf("heatmap counts %d, frames %d", total, len(r.Frames))
	}
	if top := r.MostVisited(1); len(top) != 1 || top[0].Count < 2 {
		t.Fatalf("enemy waits every other tick so some cell is visited twice: %v", top)
	}
}
