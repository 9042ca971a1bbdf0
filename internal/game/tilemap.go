package game

import (
	"math/rand"
)

// Terrain identifies what occupies a map cell.
type Terrain uint8

const (
	TerrainGrass Terrain = iota // Default open ground
	TerrainBush                 // Passable, slow
	TerrainWall                 // Impassable
	terrainCount                // sentinel
)

func (t Terrain) String() string {
	switch t {
	case TerrainGrass:
		return "grass"
	case TerrainBush:
		return "bush"
	case TerrainWall:
		return "wall"
	default:
		return "unknown"
	}
}

// ParseTerrain maps a terrain name back to its value.
func ParseTerrain(name string) (Terrain, bool) {
	for t := Terrain(0); t < terrainCount; t++ {
		if t.String() == name {
			return t, true
		}
	}
	return 0, false
}

// TileMap is the authoritative per-cell terrain. It answers the read-only
// queries every strategy makes; fog of war is layered on top by Fog.
type TileMap struct {
	Cols  int
	Rows  int
	Tiles []Terrain // row-major: index = y*Cols + x

	costs [terrainCount]float64
}

// NewTileMap creates an all-grass map with the given move costs.
// Terrains missing from costs fall back to 1.
func NewTileMap(cols, rows int, costs map[Terrain]float64) *TileMap {
	tm := &TileMap{Cols: cols, Rows: rows, Tiles: make([]Terrain, cols*rows)}
	for t := Terrain(0); t < terrainCount; t++ {
		tm.costs[t] = 1
		if c, ok := costs[t]; ok {
			tm.costs[t] = c
		}
	}
	return tm
}

// ParseTileMap builds a map from rows of text, top row first, so the picture
// reads the way it renders: '#' wall, '*' bush, anything else grass.
func ParseTileMap(rows []string, costs map[Terrain]float64) *TileMap {
	h := len(rows)
	w := 0
	for _, r := range rows {
		w = max(w, len(r))
	}
	tm := NewTileMap(w, h, costs)
	for i, r := range rows {
		y := h - 1 - i
		for x := 0; x < len(r); x++ {
			switch r[x] {
			case '#':
				tm.Set(C(x, y), TerrainWall)
			case '*':
				tm.Set(C(x, y), TerrainBush)
			}
		}
	}
	return tm
}

// GenerateTileMap fills a cols×rows map by sampling wall and bush with the
// given probabilities; the rest is grass.
func GenerateTileMap(cols, rows int, wallProb, bushProb float64, costs map[Terrain]float64, rng *rand.Rand) *TileMap {
	tm := NewTileMap(cols, rows, costs)
	for i := range tm.Tiles {
		r := rng.Float64()
		switch {
		case r < wallProb:
			tm.Tiles[i] = TerrainWall
		case r < wallProb+bushProb:
			tm.Tiles[i] = TerrainBush
		}
	}
	return tm
}

// Valid reports whether c lies inside the map.
func (tm *TileMap) Valid(c Cell) bool {
	return c.X >= 0 && c.X < tm.Cols && c.Y >= 0 && c.Y < tm.Rows
}

func (tm *TileMap) index(c Cell) int { return c.Y*tm.Cols + c.X }

// At returns the terrain at c. Out-of-bounds cells read as wall.
func (tm *TileMap) At(c Cell) Terrain {
	if !tm.Valid(c) {
		return TerrainWall
	}
	return tm.Tiles[tm.index(c)]
}

// Set replaces the terrain at c.
func (tm *TileMap) Set(c Cell, t Terrain) {
	if !tm.Valid(c) {
		return
	}
	tm.Tiles[tm.index(c)] = t
}

// Wall reports whether c holds a wall. Callers that plan under fog must
// only trust this for revealed cells.
func (tm *TileMap) Wall(c Cell) bool {
	return tm.At(c) == TerrainWall
}

// MoveCost returns the cost of entering c.
func (tm *TileMap) MoveCost(c Cell) float64 {
	return tm.costs[tm.At(c)]
}

// TerrainCost returns the configured cost for a terrain class.
func (tm *TileMap) TerrainCost(t Terrain) float64 {
	if t >= terrainCount {
		return 1
	}
	return tm.costs[t]
}

// Blanks returns every non-wall cell in row-major order.
func (tm *TileMap) Blanks() []Cell {
	var out []Cell
	for y := 0; y < tm.Rows; y++ {
		for x := 0; x < tm.Cols; x++ {
			if tm.Tiles[y*tm.Cols+x] != TerrainWall {
				out = append(out, C(x, y))
			}
		}
	}
	return out
}
