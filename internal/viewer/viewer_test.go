package viewer

import (
	"errors"
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Garsondee/chase-ai/internal/game"
)

func newViewer(t *testing.T) *Game {
	t.Helper()
	cfg := game.DefaultConfig()
	cfg.MaxSteps = 50
	g, err := New(cfg, 3)
	require.NoError(t, err)
	return g
}

func TestLogPanel_RingBufferKeepsNewest(t *testing.T) {
	lp := NewLogPanel()
	for i := 0; i < logMaxEntries+5; i++ {
		lp.Add(i, "A", "msg")
	}
	recent := lp.Recent()
	require.Len(t, recent, logMaxEntries)
	assert.Equal(t, 5, recent[0].Tick)
	assert.Equal(t, logMaxEntries+4, recent[len(recent)-1].Tick)

	lp.Reset()
	assert.Empty(t, lp.Recent())
}

func TestLogPanel_PullOnlyNewEntries(t *testing.T) {
	sl := game.NewSimLog(false)
	lp := NewLogPanel()
	sl.Add(1, "E", "checkpoint", "visit", "A (1,1)", 0)
	assert.Equal(t, 1, lp.Pull(sl))
	assert.Equal(t, 0, lp.Pull(sl))
	sl.Add(2, "A", "tunnel", "teleport", "(0,0) -> (3,3)", 0)
	assert.Equal(t, 1, lp.Pull(sl))

	recent := lp.Recent()
	require.Len(t, recent, 2)
	assert.Equal(t, "tunnel/teleport (0,0) -> (3,3)", recent[1].Message)
}

func TestScreenGeometry(t *testing.T) {
	cfg := game.DefaultConfig()
	w, h := ScreenSize(cfg)
	assert.Equal(t, borderWidth*2+cfg.Width.Max*cellPx+logPanelWidth, w)
	assert.GreaterOrEqual(t, h, borderWidth*2+cfg.Height.Max*cellPx)

	// Row 0 is drawn at the bottom.
	_, yBottom := cellOrigin(game.C(0, 0), 10)
	_, yTop := cellOrigin(game.C(0, 9), 10)
	assert.Equal(t, float32(borderWidth), yTop)
	assert.Equal(t, float32(borderWidth+9*cellPx), yBottom)
}

func TestAdvance_PacesTicksAndPauses(t *testing.T) {
	g := newViewer(t)
	// Half a tick per frame: two frames per tick.
	assert.Equal(t, 0, g.advance(0.5))
	assert.Equal(t, 1, g.advance(0.5))
	assert.Equal(t, 1, g.Sim().Game.TickCount())

	g.press(ebiten.KeySpace)
	assert.Equal(t, 0, g.advance(5))
	g.press(ebiten.KeySpace)
	played := g.advance(3)
	assert.Equal(t, 1+played, g.Sim().Game.TickCount())
}

func TestAdvance_StopsAtGameEnd(t *testing.T) {
	g := newViewer(t)
	g.advance(1000)
	require.True(t, g.Sim().Game.Ended())
	assert.Equal(t, 0, g.advance(10))
	assert.Contains(t, g.hudLines()[0], g.Sim().Game.Outcome().String())
}

func TestPress_RestartFogPathQuit(t *testing.T) {
	g := newViewer(t)
	g.advance(4)
	first := g.Sim()

	g.press(ebiten.KeyR)
	assert.Equal(t, int64(4), g.Seed())
	assert.NotSame(t, first, g.Sim())
	assert.Equal(t, 0, g.Sim().Game.TickCount())
	require.Len(t, g.panel.Recent(), 1)
	assert.Contains(t, g.panel.Recent()[0].Message, "seed=4")

	assert.Equal(t, FogAgent, g.fogView)
	g.press(ebiten.KeyF)
	assert.Equal(t, FogEnemy, g.fogView)
	g.press(ebiten.KeyF)
	assert.Equal(t, FogOff, g.fogView)
	assert.Nil(t, g.fogFor())

	g.press(ebiten.KeyP)
	assert.False(t, g.showPath)

	g.press(ebiten.KeyQ)
	assert.True(t, g.quit)
}

func TestPress_CopySummary(t *testing.T) {
	g := newViewer(t)
	var copied string
	g.copyText = func(s string) error { copied = s; return nil }
	g.advance(1000)
	g.press(ebiten.KeyC)
	assert.Equal(t, "summary copied", g.status)
	assert.True(t, strings.HasPrefix(copied, "seed=3 enemy=ASTAR"))
	assert.Contains(t, copied, "Outcome: ")

	g.copyText = func(string) error { return errors.New("no clipboard") }
	g.press(ebiten.KeyC)
	assert.Equal(t, "copy failed: no clipboard", g.status)
}

func TestTileColor_RespectsFogView(t *testing.T) {
	g := newViewer(t)
	enemyFog := g.Sim().Game.Enemy.Fog
	var hidden game.Cell
	found := false
	tm := g.Sim().Game.Map()
	for y := 0; y < tm.Rows && !found; y++ {
		for x := 0; x < tm.Cols; x++ {
			if c := game.C(x, y); !enemyFog.Revealed(c) {
				hidden, found = c, true
				break
			}
		}
	}
	require.True(t, found, "sight radius 3 cannot reveal a whole default map")

	g.fogView = FogEnemy
	assert.Equal(t, unknownColor, g.tileColor(hidden))
	g.fogView = FogOff
	assert.NotEqual(t, unknownColor, g.tileColor(hidden))
}
