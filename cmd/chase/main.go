package main

import (
	"flag"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/chase-ai/internal/config"
	"github.com/Garsondee/chase-ai/internal/game"
	"github.com/Garsondee/chase-ai/internal/viewer"
)

func main() {
	var configPath string
	var seed int64
	var algorithm string

	flag.StringVar(&configPath, "config", "", "YAML or JSON config file (defaults when empty)")
	flag.Int64Var(&seed, "seed", 0, "game seed (0 = time based)")
	flag.StringVar(&algorithm, "algorithm", "", "run the enemy on a single strategy, e.g. astar, jps")
	flag.Parse()

	cfg, err := loadConfig(configPath, algorithm)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	g, err := viewer.New(cfg, seed)
	if err != nil {
		log.Fatalf("new game: %v", err)
	}
	w, h := viewer.ScreenSize(cfg)
	ebiten.SetWindowTitle("Chase AI - " + cfg.EnemyAlgorithmLabel())
	ebiten.SetWindowSize(w, h)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}

func loadConfig(path, algorithm string) (game.Config, error) {
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return cfg, err
		}
	}
	if algorithm != "" {
		name, err := game.ResolveStrategyName(algorithm)
		if err != nil {
			return cfg, err
		}
		cfg = cfg.WithEnemyAlgorithm(name)
	}
	return cfg, nil
}
