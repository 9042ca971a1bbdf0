package viewer

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/chase-ai/internal/game"
)

// borderWidth is the pixel gap between the window edge and the map.
const borderWidth = 24

const (
	cellPx     = 36
	hudHeight  = 72
	hudLineH   = 15
	minScreenH = 360
)

var hudFont = text.NewGoXFace(basicfont.Face7x13)

var (
	agentColor   = color.RGBA{R: 70, G: 130, B: 230, A: 255}
	enemyColor   = color.RGBA{R: 220, G: 70, B: 60, A: 255}
	grassColor   = color.RGBA{R: 58, G: 94, B: 52, A: 255}
	bushColor    = color.RGBA{R: 30, G: 62, B: 28, A: 255}
	wallColor    = color.RGBA{R: 92, G: 88, B: 84, A: 255}
	unknownColor = color.RGBA{R: 16, G: 18, B: 16, A: 255}
	gridColor    = color.RGBA{R: 0, G: 0, B: 0, A: 60}
	pathColor    = color.RGBA{R: 255, G: 140, B: 60, A: 200}
	pendingColor = color.RGBA{R: 240, G: 210, B: 60, A: 255}
	visitedColor = color.RGBA{R: 120, G: 110, B: 60, A: 255}
	textColor    = color.RGBA{R: 220, G: 230, B: 220, A: 255}
)

// tunnelColors tints each tunnel pair.
var tunnelColors = []color.RGBA{
	{R: 170, G: 90, B: 220, A: 255},
	{R: 60, G: 200, B: 200, A: 255},
	{R: 230, G: 120, B: 200, A: 255},
}

// ScreenSize is the window size that fits the largest map cfg can generate.
func ScreenSize(cfg game.Config) (w, h int) {
	w = borderWidth*2 + cfg.Width.Max*cellPx + logPanelWidth
	h = max(borderWidth*2+cfg.Height.Max*cellPx+hudHeight, minScreenH)
	return w, h
}

// cellOrigin is the top-left pixel of c. y grows up on the map and down on
// screen, so rows are flipped.
func cellOrigin(c game.Cell, rows int) (x, y float32) {
	return float32(borderWidth + c.X*cellPx), float32(borderWidth + (rows-1-c.Y)*cellPx)
}

func cellCenter(c game.Cell, rows int) (x, y float32) {
	x, y = cellOrigin(c, rows)
	return x + cellPx/2, y + cellPx/2
}

// fogFor returns the fog to draw, or nil for the true map.
func (g *Game) fogFor() *game.Fog {
	switch g.fogView {
	case FogAgent:
		return g.sim.Game.Agent.Fog
	case FogEnemy:
		return g.sim.Game.Enemy.Fog
	default:
		return nil
	}
}

// tileColor is what a cell looks like under the current fog view.
func (g *Game) tileColor(c game.Cell) color.RGBA {
	if f := g.fogFor(); f != nil && !f.Revealed(c) {
		return unknownColor
	}
	switch g.sim.Game.Map().At(c) {
	case game.TerrainWall:
		return wallColor
	case game.TerrainBush:
		return bushColor
	default:
		return grassColor
	}
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 12, G: 14, B: 12, A: 255})
	g.drawMap(screen)
	g.drawMarkers(screen)
	if g.showPath {
		g.drawPath(screen)
	}
	g.drawRoles(screen)
	g.drawHUD(screen)
	g.panel.Draw(screen, g.width-logPanelWidth, g.height)
}

func (g *Game) drawMap(screen *ebiten.Image) {
	tm := g.sim.Game.Map()
	for y := 0; y < tm.Rows; y++ {
		for x := 0; x < tm.Cols; x++ {
			c := game.C(x, y)
			px, py := cellOrigin(c, tm.Rows)
			vector.FillRect(screen, px, py, cellPx, cellPx, g.tileColor(c), false)
			vector.StrokeRect(screen, px, py, cellPx, cellPx, 1, gridColor, false)
		}
	}
	mw, mh := float32(tm.Cols*cellPx), float32(tm.Rows*cellPx)
	vector.StrokeRect(screen, borderWidth-1, borderWidth-1, mw+2, mh+2, 2.0, color.RGBA{R: 65, G: 90, B: 65, A: 255}, false)
}

func (g *Game) drawMarkers(screen *ebiten.Image) {
	p := g.sim.Game
	rows := p.Map().Rows
	for i, cp := range p.Checkpoints() {
		px, py := cellOrigin(cp, rows)
		col := pendingColor
		if p.Visited(i) {
			col = visitedColor
		}
		vector.StrokeRect(screen, px+3, py+3, cellPx-6, cellPx-6, 2, col, false)
		drawText(screen, int(px)+cellPx/2-3, int(py)+cellPx/2-7, game.CheckpointName(i), col)
	}
	for i, pair := range p.TunnelPairs() {
		col := tunnelColors[i%len(tunnelColors)]
		for _, end := range pair {
			cx, cy := cellCenter(end, rows)
			vector.StrokeCircle(screen, cx, cy, cellPx/2-4, 2, col, false)
		}
	}
}

func (g *Game) drawPath(screen *ebiten.Image) {
	rows := g.sim.Game.Map().Rows
	path := g.sim.Game.Enemy.Path()
	for i := 1; i < len(path); i++ {
		x0, y0 := cellCenter(path[i-1], rows)
		x1, y1 := cellCenter(path[i], rows)
		vector.StrokeLine(screen, x0, y0, x1, y1, 3, pathColor, false)
	}
}

func (g *Game) drawRoles(screen *ebiten.Image) {
	p := g.sim.Game
	rows := p.Map().Rows
	for _, r := range []*game.Role{p.Agent, p.Enemy} {
		col := agentColor
		if r.Kind == game.RoleEnemy {
			col = enemyColor
		}
		cx, cy := cellCenter(r.Pos, rows)
		vector.FillCircle(screen, cx, cy, cellPx/2-6, col, true)
		drawText(screen, int(cx)-3, int(cy)-7, r.Kind.Label(), textColor)
	}
}

// hudLines is the status text under the map.
func (g *Game) hudLines() []string {
	p := g.sim.Game
	state := "RUNNING"
	switch {
	case p.Ended():
		score, _ := p.Score()
		state = fmt.Sprintf("%s score=%d%%", p.Outcome(), score)
	case g.paused:
		state = "PAUSED"
	}
	lines := []string{
		fmt.Sprintf("T=%d steps=%d good=%d  enemy=%s  checkpoints %s  %s",
			p.TickCount(), p.Steps(), p.GoodSteps(), g.cfg.EnemyAlgorithmLabel(), p.CheckpointFlags(), state),
		fmt.Sprintf("seed=%d fog=%s path=%v  SPACE pause  R restart  F fog  P path  C copy  Q quit",
			g.seed, g.fogView, g.showPath),
	}
	if g.status != "" {
		lines = append(lines, g.status)
	}
	return lines
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	y := g.height - hudHeight + 8
	for _, line := range g.hudLines() {
		drawText(screen, borderWidth, y, line, textColor)
		y += hudLineH
	}
}

func drawText(screen *ebiten.Image, x, y int, msg string, clr color.Color) {
	options := &text.DrawOptions{}
	options.GeoM.Translate(float64(x), float64(y))
	options.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, msg, hudFont, options)
}
