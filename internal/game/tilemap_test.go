package game

import (
	"errors"
	"testing"
)

func TestAction_DestRoundTrip(t *testing.T) {
	src := C(3, 4)
	for _, a := range Actions {
		got, err := NextAction(src, a.Dest(src))
		if err != nil {
			t.Fatalf("NextAction(%v, %v): %v", src, a.Dest(src), err)
		}
		if got != a {
			t.Fatalf("NextAction round trip: want %s, got %s", a, got)
		}
	}
}

func TestAction_UpIncreasesY(t *testing.T) {
	if got := ActionUp.Dest(C(0, 0)); got != C(0, 1) {
		t.Fatalf("up from origin should be (0,1), got %v", got)
	}
	if got := ActionLeft.Dest(C(0, 0)); got != C(-1, 0) {
		t.Fatalf("left from origin should be (-1,0), got %v", got)
	}
}

func TestAction_NextRejectsNonAdjacent(t *testing.T) {
	for _, dst := range []Cell{C(2, 0), C(1, 1), C(-3, 5)} {
		if _, err := NextAction(C(0, 0), dst); !errors.Is(err, ErrNotAdjacent) {
			t.Fatalf("NextAction to %v: want ErrNotAdjacent, got %v", dst, err)
		}
	}
}

func TestActionLevels_BestPrefersScanOrder(t *testing.T) {
	l := ActionLevels{ActionDown: 4, ActionRight: 4, ActionStay: 1}
	if got := l.Best(); got != ActionDown {
		t.Fatalf("want first maximal action down, got %s", got)
	}
	if got := Only(ActionLeft); got[ActionLeft] != MaxLevel || got[ActionUp] != 0 {
		t.Fatalf("Only(left) = %v", got)
	}
}

func TestTileMap_ParseTopRowIsHighestY(t *testing.T) {
	tm := ParseTileMap([]string{
		"#..",
		"..*",
	}, DefaultConfig().MoveCost)
	if tm.Cols != 3 || tm.Rows != 2 {
		t.Fatalf("size: want 3x2, got %dx%d", tm.Cols, tm.Rows)
	}
	if !tm.Wall(C(0, 1)) {
		t.Fatal("wall drawn in the top row should be at y=1")
	}
	if tm.At(C(2, 0)) != TerrainBush {
		t.Fatalf("bush at (2,0): got %s", tm.At(C(2, 0)))
	}
	if tm.MoveCost(C(2, 0)) != 10 || tm.MoveCost(C(1, 0)) != 1 {
		t.Fatalf("move costs: bush=%v grass=%v", tm.MoveCost(C(2, 0)), tm.MoveCost(C(1, 0)))
	}
}

func TestTileMap_OutOfBoundsReadsAsWall(t *testing.T) {
	tm := NewTileMap(4, 4, nil)
	for _, c := range []Cell{C(-1, 0), C(0, -1), C(4, 0), C(0, 4)} {
		if tm.Valid(c) {
			t.Fatalf("%v should be invalid", c)
		}
		if !tm.Wall(c) {
			t.Fatalf("%v should read as wall", c)
		}
	}
}

func TestTileMap_BlanksSkipWalls(t *testing.T) {
	tm := ParseTileMap([]string{
		"##",
		".*",
	}, nil)
	blanks := tm.Blanks()
	if len(blanks) != 2 || blanks[0] != C(0, 0) || blanks[1] != C(1, 0) {
		t.Fatalf("blanks: got %v", blanks)
	}
}

func TestNavGrid_NeighborsInMoveOrder(t *testing.T) {
	ng := NewNavGrid(3, 3)
	nb := ng.Neighbors(ng.Index(C(1, 1)))
	want := []Cell{C(1, 2), C(1, 0), C(0, 1), C(2, 1)}
	for k, w := range want {
		if got := ng.CellAt(int(nb[k])); got != w {
			t.Fatalf("neighbor %d: want %v, got %v", k, w, got)
		}
	}
}

func TestNavGrid_EdgeHasMissingNeighbors(t *testing.T) {
	ng := NewNavGrid(3, 3)
	nb := ng.Neighbors(ng.Index(C(0, 0)))
	if nb[1] != -1 || nb[2] != -1 {
		t.Fatalf("down and left of origin should be -1, got %v", nb)
	}
	if ng.Index(C(3, 0)) != -1 {
		t.Fatal("out-of-bounds index should be -1")
	}
}

func TestFog_RevealSquare(t *testing.T) {
	f := NewFog(10, 10, 1)
	if n := f.Reveal(C(0, 0)); n != 4 {
		t.Fatalf("corner reveal with radius 1: want 4 cells, got %d", n)
	}
	if !f.Revealed(C(1, 1)) || f.Revealed(C(2, 2)) {
		t.Fatal("reveal should cover exactly the Chebyshev square")
	}
	if n := f.Reveal(C(0, 0)); n != 0 {
		t.Fatalf("second reveal should add nothing, got %d", n)
	}
	if got := f.Coverage(); got != 0.04 {
		t.Fatalf("coverage: want 0.04, got %v", got)
	}
}

func TestFog_NegativeRadiusIsOmniscient(t *testing.T) {
	f := NewFog(5, 5, -1)
	if !f.Omniscient() || !f.Revealed(C(4, 4)) || f.Coverage() != 1 {
		t.Fatal("negative radius should reveal the whole map")
	}
	if f.Revealed(C(5, 5)) {
		t.Fatal("off-map cells are never revealed")
	}
}
