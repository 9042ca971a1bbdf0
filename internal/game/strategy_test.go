package game

import (
	"errors"
	"math/rand"
	"testing"
)

// situationFor builds a one-off Situation for a role at self heading for
// target. radius < 0 reveals the whole map.
func situationFor(tm *TileMap, self, target Cell, radius int) Situation {
	fog := NewFog(tm.Cols, tm.Rows, radius)
	fog.Reveal(self)
	return Situation{
		Map:      tm,
		Grid:     NewNavGrid(tm.Cols, tm.Rows),
		Self:     &Role{Kind: RoleEnemy, Pos: self, Fog: fog},
		Opponent: target,
		Target:   target,
	}
}

func depsFor(tm *TileMap) StrategyDeps {
	return StrategyDeps{
		Config:    DefaultConfig(),
		Map:       tm,
		Grid:      NewNavGrid(tm.Cols, tm.Rows),
		Heuristic: ManhattanHeuristic,
		Rng:       rand.New(rand.NewSource(3)), // #nosec G404 -- test
	}
}

func TestDeleteInvalid_ZeroesOffMapAndKnownWalls(t *testing.T) {
	tm := ParseTileMap([]string{
		"....",
		".#..",
		"....",
	}, nil)
	full := ActionLevels{7, 7, 7, 7, 7}

	s := situationFor(tm, C(0, 1), C(3, 1), -1)
	got := deleteInvalid(full, s)
	want := ActionLevels{ActionUp: 7, ActionDown: 7, ActionLeft: 0, ActionRight: 0, ActionStay: 7}
	if got != want {
		t.Fatalf("revealed wall: want %v, got %v", want, got)
	}

	// Same position, but the wall has not been seen yet.
	s = situationFor(tm, C(0, 1), C(3, 1), 0)
	got = deleteInvalid(full, s)
	want[ActionRight] = 7
	if got != want {
		t.Fatalf("unrevealed wall: want %v, got %v", want, got)
	}
}

func TestDeleteInvalid_MatchesDestinationRule(t *testing.T) {
	rng := rand.New(rand.NewSource(11)) // #nosec G404 -- test
	tm := GenerateTileMap(8, 6, 0.3, 0.2, nil, rng)
	for _, self := range tm.Blanks() {
		s := situationFor(tm, self, C(0, 0), 2)
		var in ActionLevels
		for _, a := range Actions {
			in[a] = float64(1 + rng.Intn(10))
		}
		out := deleteInvalid(in, s)
		for _, a := range Actions {
			d := a.Dest(self)
			invalid := !tm.Valid(d) || (s.Self.Fog.Revealed(d) && tm.Wall(d))
			if invalid && out[a] != 0 {
				t.Fatalf("%v %s: invalid action kept level %v", self, a, out[a])
			}
			if !invalid && out[a] != in[a] {
				t.Fatalf("%v %s: valid action changed %v -> %v", self, a, in[a], out[a])
			}
		}
	}
}

func TestNewStrategy_UnknownNameIsError(t *testing.T) {
	_, err := NewStrategy("teleport", depsFor(NewTileMap(3, 3, nil)))
	if !errors.Is(err, ErrUnknownStrategy) {
		t.Fatalf("want ErrUnknownStrategy, got %v", err)
	}
}

func TestNewStrategy_EveryRegisteredName(t *testing.T) {
	d := depsFor(NewTileMap(3, 3, nil))
	for _, name := range StrategyNames() {
		s, err := NewStrategy(name, d)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if s.Name() != name {
			t.Fatalf("strategy registered as %q reports %q", name, s.Name())
		}
	}
}

func TestResolveStrategyName_IgnoresCase(t *testing.T) {
	for in, want := range map[string]string{"astar": NameAStar, "JPS": NameJPS, "moveAway": NameMoveAway} {
		got, err := ResolveStrategyName(in)
		if err != nil || got != want {
			t.Fatalf("%q: want %q, got %q (%v)", in, want, got, err)
		}
	}
	if _, err := ResolveStrategyName("teleport"); !errors.Is(err, ErrUnknownStrategy) {
		t.Fatalf("want ErrUnknownStrategy, got %v", err)
	}
}

func TestBuildMix_SortedAndKeepsZeroWeights(t *testing.T) {
	strategies, ws, err := BuildMix(map[string]float64{
		NameMoveClose: 0.1,
		NameAStar:     1,
		NameRandom:    0,
	}, depsFor(NewTileMap(3, 3, nil)))
	if err != nil {
		t.Fatal(err)
	}
	wantNames := []string{NameAStar, NameMoveClose, NameRandom}
	wantWeights := []float64{1, 0.1, 0}
	for i := range wantNames {
		if strategies[i].Name() != wantNames[i] || ws[i] != wantWeights[i] {
			t.Fatalf("entry %d: want %s=%v, got %s=%v", i, wantNames[i], wantWeights[i], strategies[i].Name(), ws[i])
		}
	}
}

func TestBuildMix_NegativeWeight(t *testing.T) {
	_, _, err := BuildMix(map[string]float64{NameBFS: -1}, depsFor(NewTileMap(3, 3, nil)))
	if !errors.Is(err, ErrNegativeWeight) {
		t.Fatalf("want ErrNegativeWeight, got %v", err)
	}
}
