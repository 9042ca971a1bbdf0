// Package viewer draws a running chase in an ebiten window.
package viewer

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/chase-ai/internal/game"
)

// FogView selects whose knowledge of the map is drawn.
type FogView int

const (
	FogOff FogView = iota // the true map
	FogAgent
	FogEnemy
	fogViewCount
)

func (v FogView) String() string {
	switch v {
	case FogAgent:
		return "agent"
	case FogEnemy:
		return "enemy"
	default:
		return "off"
	}
}

// Game adapts a headless game.Sim to ebiten.Game. One game tick is played
// every TPS/FPS frames.
type Game struct {
	cfg  game.Config
	seed int64

	sim   *game.Sim
	panel *LogPanel

	width, height int

	paused   bool
	fogView  FogView
	showPath bool
	quit     bool
	status   string

	tickAccum float64
	prevKeys  map[ebiten.Key]bool

	// copyText writes to the system clipboard; swapped out in tests.
	copyText func(string) error
}

// New builds a viewer for a random game from seed.
func New(cfg game.Config, seed int64) (*Game, error) {
	w, h := ScreenSize(cfg)
	g := &Game{
		cfg:      cfg.Clone(),
		seed:     seed,
		panel:    NewLogPanel(),
		width:    w,
		height:   h,
		fogView:  FogAgent,
		showPath: true,
		prevKeys: make(map[ebiten.Key]bool),
		copyText: clipboard.WriteAll,
	}
	if err := g.restart(seed); err != nil {
		return nil, err
	}
	return g, nil
}

// Sim exposes the running game.
func (g *Game) Sim() *game.Sim { return g.sim }

// Seed is the seed of the current game.
func (g *Game) Seed() int64 { return g.seed }

func (g *Game) restart(seed int64) error {
	sim, err := game.NewSim(game.WithConfig(g.cfg), game.WithSeed(seed))
	if err != nil {
		return err
	}
	g.sim = sim
	g.seed = seed
	g.tickAccum = 0
	g.panel.Reset()
	g.panel.Add(0, "--", fmt.Sprintf("new game seed=%d %dx%d enemy=%s",
		seed, sim.Game.Map().Cols, sim.Game.Map().Rows, g.cfg.EnemyAlgorithmLabel()))
	g.status = ""
	return nil
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	g.handleInput()
	if g.quit {
		return ebiten.Termination
	}
	g.advance(float64(max(g.cfg.FPS, 1)) / float64(ebiten.DefaultTPS))
	return nil
}

// advance accumulates frac ticks and plays the whole ones.
func (g *Game) advance(frac float64) int {
	if g.paused || g.sim.Game.Ended() {
		return 0
	}
	played := 0
	g.tickAccum += frac
	for g.tickAccum >= 1.0 && !g.sim.Game.Ended() {
		g.tickAccum -= 1.0
		if _, err := g.sim.Game.Tick(); err != nil {
			break
		}
		played++
	}
	g.panel.Pull(g.sim.SimLog)
	return played
}

// handleInput processes key presses (edge-triggered).
func (g *Game) handleInput() {
	currentKeys := map[ebiten.Key]bool{}
	for _, k := range []ebiten.Key{ebiten.KeySpace, ebiten.KeyR, ebiten.KeyQ, ebiten.KeyF, ebiten.KeyP, ebiten.KeyC} {
		currentKeys[k] = ebiten.IsKeyPressed(k)
		if currentKeys[k] && !g.prevKeys[k] {
			g.press(k)
		}
	}
	g.prevKeys = currentKeys
}

// press applies one key.
func (g *Game) press(k ebiten.Key) {
	switch k {
	case ebiten.KeySpace:
		g.paused = !g.paused
	case ebiten.KeyR:
		if err := g.restart(g.seed + 1); err != nil {
			g.status = "restart failed: " + err.Error()
		}
	case ebiten.KeyQ:
		g.quit = true
	case ebiten.KeyF:
		g.fogView = (g.fogView + 1) % fogViewCount
	case ebiten.KeyP:
		g.showPath = !g.showPath
	case ebiten.KeyC:
		if err := g.copyText(g.Summary()); err != nil {
			g.status = "copy failed: " + err.Error()
		} else {
			g.status = "summary copied"
		}
	}
}

// Summary is the text put on the clipboard.
func (g *Game) Summary() string {
	p := g.sim.Game
	s := fmt.Sprintf("seed=%d enemy=%s\n", g.seed, g.cfg.EnemyAlgorithmLabel())
	s += g.sim.SimLog.Summary(p)
	if p.Ended() {
		out := game.DetermineOutcome(p)
		s += fmt.Sprintf("Outcome: %s (%s) score=%d%%\n", out.Outcome, out.Description, out.Score)
	}
	return s + g.sim.Recorder.Summary()
}

// Layout implements ebiten.Game.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}
