package grid

import "testing"

func TestNewGridDefaults(t *testing.T) {
	g, err := New(5, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Rows() != 5 || g.Cols() != 7 {
		t.Fatalf("unexpected extents %dx%d", g.Rows(), g.Cols())
	}
	if g.Start() != (Position{0, 0}) {
		t.Fatalf("unexpected start %v", g.Start())
	}
	if g.Goal() != (Position{4, 6}) {
		t.Fatalf("unexpected goal %v", g.Goal())
	}
	if g.TileAt(g.Start()).Type != Start {
		t.Fatalf("start tile not tagged")
	}
	if g.TileAt(g.Goal()).Type != Goal {
		t.Fatalf("goal tile not tagged")
	}
}

func TestNewGridRejectsBadDimensions(t *testing.T) {
	if _, err := New(0, 5); err == nil {
		t.Fatalf("expected error for zero rows")
	}
	if _, err := New(5, -1); err == nil {
		t.Fatalf("expected error for negative cols")
	}
}

func TestInBoundsAndTileAt(t *testing.T) {
	g, _ := New(3, 3)
	if !g.InBounds(Position{0, 0}) || !g.InBounds(Position{2, 2}) {
		t.Fatalf("corners should be in bounds")
	}
	for _, p := range []Position{{-1, 0}, {0, -1}, {3, 0}, {0, 3}} {
		if g.InBounds(p) {
			t.Fatalf("%v should be out of bounds", p)
		}
		if g.TileAt(p) != nil {
			t.Fatalf("TileAt(%v) should be nil", p)
		}
	}
}

func TestNeighborsExcludeWalls(t *testing.T) {
	g, _ := New(3, 3)
	g.SetTile(Position{0, 1}, Wall, 0)
	g.SetTile(Position{1, 0}, Weight, 3)

	ns := g.Neighbors(Position{0, 0})
	if len(ns) != 1 {
		t.Fatalf("expected 1 neighbor, got %d: %v", len(ns), ns)
	}
	if ns[0].Pos != (Position{1, 0}) || ns[0].Cost != 3 {
		t.Fatalf("unexpected neighbor %v", ns[0])
	}
}

func TestNeighborsAtEdge(t *testing.T) {
	g, _ := New(3, 3)
	ns := g.Neighbors(Position{1, 1})
	if len(ns) != 4 {
		t.Fatalf("center should have 4 neighbors, got %d", len(ns))
	}
	ns = g.Neighbors(Position{0, 0})
	if len(ns) != 2 {
		t.Fatalf("corner should have 2 neighbors, got %d", len(ns))
	}
}

func TestSetStartClearsOldMarker(t *testing.T) {
	g, _ := New(3, 3)
	old := g.Start()
	g.SetStart(Position{1, 1})
	if g.TileAt(old).Type != Empty {
		t.Fatalf("old start tile should be cleared, got %v", g.TileAt(old).Type)
	}
	if g.TileAt(Position{1, 1}).Type != Start {
		t.Fatalf("new start tile not tagged")
	}
}

func TestResetPathfinding(t *testing.T) {
	g, _ := New(2, 2)
	tile := g.TileAt(Position{0, 1})
	tile.Visited = true
	tile.Distance = 4
	tile.Parent = &Position{0, 0}

	g.ResetPathfinding()
	if tile.Visited || tile.Distance != Unreached || tile.Parent != nil {
		t.Fatalf("scratch not reset: %+v", tile)
	}
}

func TestManhattan(t *testing.T) {
	if d := (Position{0, 0}).Manhattan(Position{3, 4}); d != 7 {
		t.Fatalf("expected 7, got %d", d)
	}
	if d := (Position{2, 2}).Manhattan(Position{2, 2}); d != 0 {
		t.Fatalf("expected 0, got %d", d)
	}
}
