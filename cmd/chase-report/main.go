package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"

	"golang.org/x/time/rate"

	"github.com/Garsondee/chase-ai/internal/bench"
	"github.com/Garsondee/chase-ai/internal/config"
	"github.com/Garsondee/chase-ai/internal/game"
	"github.com/Garsondee/chase-ai/internal/store"
)

type reportOptions struct {
	runs       int
	seedBase   int64
	seedStep   int64
	algorithms string
	configPath string
	dbPath     string
	watch      bool
	history    bool
}

func main() {
	var o reportOptions
	flag.IntVar(&o.runs, "runs", 10, "games per algorithm")
	flag.Int64Var(&o.seedBase, "seed-base", 42, "seed of the first game")
	flag.Int64Var(&o.seedStep, "seed-step", 1, "seed increment between games")
	flag.StringVar(&o.algorithms, "algorithms", "", "comma separated enemy algorithms (default: all searches)")
	flag.StringVar(&o.configPath, "config", "", "YAML or JSON config file")
	flag.StringVar(&o.dbPath, "db", "", "SQLite file to store the report in")
	flag.BoolVar(&o.watch, "watch", false, "play one game (seed-base, first algorithm) as ASCII frames")
	flag.BoolVar(&o.history, "history", false, "print stored per-algorithm totals from -db and exit")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, o, os.Stdout); err != nil {
		log.Fatalf("error: %v", err)
	}
}

func run(ctx context.Context, o reportOptions, w io.Writer) error {
	if o.runs <= 0 {
		return fmt.Errorf("-runs must be > 0")
	}
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return err
		}
	}
	algs, err := parseAlgorithms(o.algorithms)
	if err != nil {
		return err
	}

	if o.history {
		return printHistory(ctx, o.dbPath, w)
	}
	if o.watch {
		if len(algs) > 0 {
			cfg = cfg.WithEnemyAlgorithm(algs[0])
		}
		limiter := rate.NewLimiter(rate.Limit(max(cfg.FPS, 1)), 1)
		_, err := watch(ctx, cfg, o.seedBase, limiter, w)
		return err
	}

	fmt.Fprintf(w, "=== Headless Chase Report ===\n")
	fmt.Fprintf(w, "runs=%d seed_base=%d seed_step=%d max_steps=%d\n\n", o.runs, o.seedBase, o.seedStep, cfg.MaxSteps)

	rep, err := bench.Run(ctx, cfg, bench.Options{
		Algorithms: algs,
		Runs:       o.runs,
		SeedBase:   o.seedBase,
		SeedStep:   o.seedStep,
	})
	if err != nil {
		return err
	}
	for _, r := range rep.Results {
		printResult(w, r)
	}
	fmt.Fprint(w, rep.Format())

	if o.dbPath != "" {
		st := store.New(o.dbPath)
		if err := st.Init(ctx); err != nil {
			return fmt.Errorf("open %s: %w", o.dbPath, err)
		}
		defer st.Close()
		if err := st.SaveReport(ctx, rep); err != nil {
			return err
		}
		fmt.Fprintf(w, "saved report %s to %s\n", rep.ID, o.dbPath)
	}
	return nil
}

// parseAlgorithms splits a comma list into registered strategy names.
func parseAlgorithms(list string) ([]string, error) {
	var out []string
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, err := game.ResolveStrategyName(part)
		if err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, nil
}

func printResult(w io.Writer, r bench.Result) {
	fmt.Fprintf(w, "--- %s ---\n", r.Label)
	for i, g := range r.Games {
		fmt.Fprintf(w, "run=%d seed=%d outcome=%s score=%d%% steps=%d checkpoints=%d time=%s\n",
			i+1, g.Seed, g.Outcome, g.Score, g.Steps, g.Visited, g.Duration)
	}
	fmt.Fprintf(w, "win_rate=%.0f%%\n\n", r.WinRate())
}

func printHistory(ctx context.Context, dbPath string, w io.Writer) error {
	if dbPath == "" {
		return fmt.Errorf("-history needs -db")
	}
	st := store.New(dbPath)
	if err := st.Init(ctx); err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.ListRuns(ctx)
	if err != nil {
		return err
	}
	sum, err := st.SummaryByAlgorithm(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "=== Stored History (%d reports) ===\n", len(runs))
	for _, a := range sum {
		fmt.Fprintf(w, "%-10s games=%d wins=%d losses=%d timeouts=%d avg_score=%.1f avg_steps=%.1f\n",
			strings.ToUpper(a.Algorithm), a.Games, a.Wins, a.Losses, a.Timeouts, a.AvgScore, a.AvgSteps)
	}
	return nil
}
