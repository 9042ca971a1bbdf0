package viewer

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/chase-ai/internal/game"
)

const (
	logPanelWidth = 320
	logMaxEntries = 60
	logLineHeight = 14
	logTitle      = "EVENT LOG"
)

// LogLine is one row of the event panel.
type LogLine struct {
	Tick    int
	Role    string // "A", "E" or "--"
	Message string
}

// LogPanel is a ring buffer of game events rendered beside the map.
type LogPanel struct {
	entries []LogLine
	head    int
	count   int
	// consumed is how many SimLog entries have been pulled so far.
	consumed int
}

// NewLogPanel creates an empty panel.
func NewLogPanel() *LogPanel {
	return &LogPanel{entries: make([]LogLine, logMaxEntries)}
}

// Add appends a line, dropping the oldest once full.
func (lp *LogPanel) Add(tick int, role, msg string) {
	lp.entries[lp.head] = LogLine{Tick: tick, Role: role, Message: msg}
	lp.head = (lp.head + 1) % logMaxEntries
	if lp.count < logMaxEntries {
		lp.count++
	}
}

// Pull copies SimLog entries added since the last call.
func (lp *LogPanel) Pull(sl *game.SimLog) int {
	all := sl.Entries()
	if lp.consumed > len(all) {
		lp.consumed = 0
	}
	n := 0
	for _, e := range all[lp.consumed:] {
		lp.Add(e.Tick, e.Role, fmt.Sprintf("%s/%s %s", e.Category, e.Key, e.Value))
		n++
	}
	lp.consumed = len(all)
	return n
}

// Reset empties the panel for a new game.
func (lp *LogPanel) Reset() {
	lp.head, lp.count, lp.consumed = 0, 0, 0
}

// Recent returns entries oldest first.
func (lp *LogPanel) Recent() []LogLine {
	result := make([]LogLine, lp.count)
	for i := 0; i < lp.count; i++ {
		idx := (lp.head - lp.count + i + logMaxEntries) % logMaxEntries
		result[i] = lp.entries[idx]
	}
	return result
}

// Draw renders the panel at panelX, newest entry at the bottom.
func (lp *LogPanel) Draw(screen *ebiten.Image, panelX int, panelH int) {
	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), float32(panelH), color.RGBA{R: 10, G: 12, B: 10, A: 248}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1.0, color.RGBA{R: 50, G: 70, B: 50, A: 255}, false)

	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), 16, color.RGBA{R: 20, G: 30, B: 20, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, logTitle, panelX+8, 0)
	vector.StrokeLine(screen, float32(panelX), 16, float32(panelX+logPanelWidth), 16, 1.0, color.RGBA{R: 50, G: 80, B: 50, A: 200}, false)

	entries := lp.Recent()
	maxVisible := (panelH - 24) / logLineHeight
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}

	y := 20
	for i, e := range entries {
		if i >= len(entries)-3 {
			vector.FillRect(screen, float32(panelX+2), float32(y), float32(logPanelWidth-4), float32(logLineHeight), color.RGBA{R: 30, G: 40, B: 30, A: 160}, false)
		}
		vector.FillRect(screen, float32(panelX+5), float32(y+4), 3, 6, roleColor(e.Role), false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%4d [%s] %s", e.Tick, e.Role, e.Message), panelX+12, y-2)
		y += logLineHeight
	}
}

func roleColor(label string) color.RGBA {
	switch label {
	case game.RoleAgent.Label():
		return agentColor
	case game.RoleEnemy.Label():
		return enemyColor
	default:
		return color.RGBA{R: 200, G: 200, B: 200, A: 255}
	}
}
