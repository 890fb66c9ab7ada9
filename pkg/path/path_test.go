package path

import (
	"testing"

	"github.com/sameehj/gridbot/pkg/grid"
)

func TestShortestPathOpenGrid(t *testing.T) {
	g, err := grid.New(3, 3)
	if err != nil {
		t.Fatalf("grid: %v", err)
	}
	p := ShortestPath(g, g.Start(), g.Goal())
	if p == nil {
		t.Fatalf("expected a path")
	}
	if len(p) != 5 {
		t.Fatalf("expected path of 5 positions on an open 3x3, got %d", len(p))
	}
	if p[0] != g.Start() || p[len(p)-1] != g.Goal() {
		t.Fatalf("path endpoints wrong: %v", p)
	}
	for i := 1; i < len(p); i++ {
		if p[i-1].Manhattan(p[i]) != 1 {
			t.Fatalf("non-adjacent step %v -> %v", p[i-1], p[i])
		}
	}
}

func TestShortestPathAroundWall(t *testing.T) {
	g, _ := grid.New(3, 3)
	// Wall splitting the middle column except the bottom cell.
	g.SetTile(grid.Position{Row: 0, Col: 1}, grid.Wall, 0)
	g.SetTile(grid.Position{Row: 1, Col: 1}, grid.Wall, 0)
	g.SetStart(grid.Position{Row: 0, Col: 0})
	g.SetGoal(grid.Position{Row: 0, Col: 2})

	if got := OptimalSteps(g); got != 6 {
		t.Fatalf("expected 6 steps around the wall, got %d", got)
	}
}

func TestNoPath(t *testing.T) {
	g, _ := grid.New(3, 3)
	for r := 0; r < 3; r++ {
		g.SetTile(grid.Position{Row: r, Col: 1}, grid.Wall, 0)
	}
	g.SetStart(grid.Position{Row: 0, Col: 0})
	g.SetGoal(grid.Position{Row: 0, Col: 2})

	if p := ShortestPath(g, g.Start(), g.Goal()); p != nil {
		t.Fatalf("expected nil path, got %v", p)
	}
	if got := OptimalSteps(g); got != -1 {
		t.Fatalf("expected -1, got %d", got)
	}
}

func TestShortestPathRejectsOutOfBounds(t *testing.T) {
	g, _ := grid.New(2, 2)
	if p := ShortestPath(g, grid.Position{Row: -1, Col: 0}, g.Goal()); p != nil {
		t.Fatalf("expected nil for out-of-bounds start")
	}
}

func TestSearchesAreIndependent(t *testing.T) {
	g, _ := grid.New(4, 4)
	first := OptimalSteps(g)
	second := OptimalSteps(g)
	if first != second {
		t.Fatalf("repeat search differs: %d vs %d", first, second)
	}
}

func TestEfficiencyRating(t *testing.T) {
	cases := []struct {
		actual, optimal int
		want            string
	}{
		{10, 10, "Perfect!"},
		{8, 10, "Perfect!"},
		{12, 10, "Excellent"},
		{15, 10, "Good"},
		{24, 10, "Fair"},
		{100, 10, "Needs work"},
		{0, 10, "Needs work"},
		{5, -1, "No path"},
		{5, 0, "No path"},
	}
	for _, c := range cases {
		if got := EfficiencyRating(c.actual, c.optimal); got != c.want {
			t.Fatalf("EfficiencyRating(%d, %d) = %q, want %q", c.actual, c.optimal, got, c.want)
		}
	}
}
