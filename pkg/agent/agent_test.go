package agent

import (
	"testing"

	"github.com/sameehj/gridbot/pkg/grid"
)

func openGrid(t *testing.T, rows, cols int) *grid.Grid {
	t.Helper()
	g, err := grid.New(rows, cols)
	if err != nil {
		t.Fatalf("grid: %v", err)
	}
	return g
}

func TestNewAgentStartsAtGridStart(t *testing.T) {
	g := openGrid(t, 5, 5)
	g.SetStart(grid.Position{Row: 2, Col: 2})
	a := New(g)
	if a.Position() != (grid.Position{Row: 2, Col: 2}) {
		t.Fatalf("unexpected start %v", a.Position())
	}
	if a.Facing() != East {
		t.Fatalf("agent should start facing east, got %v", a.Facing())
	}
}

func TestTurnFourTimesIsIdentity(t *testing.T) {
	g := openGrid(t, 3, 3)
	a := New(g)
	start := a.Facing()
	for i := 0; i < 4; i++ {
		a.Right()
	}
	if a.Facing() != start {
		t.Fatalf("four rights should be identity, got %v", a.Facing())
	}
	for i := 0; i < 4; i++ {
		a.Left()
	}
	if a.Facing() != start {
		t.Fatalf("four lefts should be identity, got %v", a.Facing())
	}
}

func TestLeftThenRightCancels(t *testing.T) {
	g := openGrid(t, 3, 3)
	a := New(g)
	a.Left()
	a.Right()
	if a.Facing() != East {
		t.Fatalf("left then right should cancel, got %v", a.Facing())
	}
}

func TestForwardStopsAtWall(t *testing.T) {
	g := openGrid(t, 1, 5)
	g.SetTile(grid.Position{Row: 0, Col: 3}, grid.Wall, 0)
	a := New(g)

	// Two open tiles ahead, then a wall. forward(4) must stop after two.
	if a.Forward(4) {
		t.Fatalf("blocked forward should return false")
	}
	if a.Position() != (grid.Position{Row: 0, Col: 2}) {
		t.Fatalf("agent should stop before the wall, got %v", a.Position())
	}
	if a.Steps() != 2 {
		t.Fatalf("expected 2 completed steps, got %d", a.Steps())
	}
}

func TestForwardBlockedImmediately(t *testing.T) {
	g := openGrid(t, 1, 2)
	g.SetTile(grid.Position{Row: 0, Col: 1}, grid.Wall, 0)
	a := New(g)
	if a.Forward(1) {
		t.Fatalf("expected false when blocked immediately")
	}
	if a.Position() != g.Start() || a.Steps() != 0 {
		t.Fatalf("agent should not have moved: %v steps=%d", a.Position(), a.Steps())
	}
}

func TestForwardZeroStepsSucceeds(t *testing.T) {
	g := openGrid(t, 1, 1)
	a := New(g)
	if !a.Forward(0) {
		t.Fatalf("forward(0) should succeed")
	}
	if a.Steps() != 0 {
		t.Fatalf("forward(0) should not move, steps=%d", a.Steps())
	}
}

func TestScanClassifications(t *testing.T) {
	g := openGrid(t, 3, 4)
	g.SetStart(grid.Position{Row: 1, Col: 0})
	g.SetGoal(grid.Position{Row: 1, Col: 3})
	g.SetTile(grid.Position{Row: 1, Col: 1}, grid.Weight, 2)
	a := New(g)

	if got := a.Scan(); got != "WEIGHT" {
		t.Fatalf("expected WEIGHT, got %q", got)
	}
	a.Forward(1)
	a.Forward(1)
	if got := a.Scan(); got != "GOAL" {
		t.Fatalf("expected GOAL, got %q", got)
	}
}

func TestScanBoundaryAtEdge(t *testing.T) {
	g := openGrid(t, 2, 2)
	a := New(g)
	a.Left() // face north at (0,0)
	if got := a.Scan(); got != "BOUNDARY" {
		t.Fatalf("expected BOUNDARY, got %q", got)
	}
}

func TestAtGoal(t *testing.T) {
	g := openGrid(t, 1, 3)
	a := New(g)
	if a.AtGoal() {
		t.Fatalf("not at goal yet")
	}
	a.Forward(2)
	if !a.AtGoal() {
		t.Fatalf("should be at goal at %v", a.Position())
	}
}

func TestMoveLogRecordsResultingState(t *testing.T) {
	g := openGrid(t, 1, 3)
	a := New(g)
	a.Forward(1)
	a.Right()

	moves := a.Moves()
	if len(moves) != 2 {
		t.Fatalf("expected 2 log entries, got %d", len(moves))
	}
	if moves[0].Action != "forward" || moves[0].Pos != (grid.Position{Row: 0, Col: 1}) {
		t.Fatalf("unexpected first entry %+v", moves[0])
	}
	if moves[1].Action != "right" || moves[1].Facing != South {
		t.Fatalf("unexpected second entry %+v", moves[1])
	}
}

func TestReset(t *testing.T) {
	g := openGrid(t, 1, 3)
	a := New(g)
	a.Forward(2)
	a.Right()
	a.Reset()
	if a.Position() != g.Start() || a.Facing() != East || a.Steps() != 0 || len(a.Moves()) != 0 {
		t.Fatalf("reset incomplete: %+v", a)
	}
}
