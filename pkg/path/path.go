// Package path computes the breadth-first shortest path through a grid. It
// is a host-side collaborator used to derive the optimal-step baseline for
// scoring; it is never reachable from inside a script run.
package path

import "github.com/sameehj/gridbot/pkg/grid"

// ShortestPath returns the positions from start to goal inclusive, or nil if
// no path exists. Search scratch is written into the grid's tiles and reset
// before each call.
func ShortestPath(g *grid.Grid, start, goal grid.Position) []grid.Position {
	if !g.InBounds(start) || !g.InBounds(goal) {
		return nil
	}

	g.ResetPathfinding()
	startTile := g.TileAt(start)
	startTile.Visited = true
	startTile.Distance = 0

	queue := []grid.Position{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == goal {
			return reconstruct(g, start, goal)
		}
		for _, n := range g.Neighbors(cur) {
			tile := g.TileAt(n.Pos)
			if tile.Visited {
				continue
			}
			tile.Visited = true
			tile.Distance = g.TileAt(cur).Distance + 1
			parent := cur
			tile.Parent = &parent
			queue = append(queue, n.Pos)
		}
	}
	return nil
}

func reconstruct(g *grid.Grid, start, goal grid.Position) []grid.Position {
	var rev []grid.Position
	for cur := goal; ; {
		rev = append(rev, cur)
		if cur == start {
			break
		}
		cur = *g.TileAt(cur).Parent
	}
	out := make([]grid.Position, len(rev))
	for i, p := range rev {
		out[len(rev)-1-i] = p
	}
	return out
}

// OptimalSteps returns the minimum number of unit moves from the grid's
// start to its goal, or -1 if the goal is unreachable.
func OptimalSteps(g *grid.Grid) int {
	p := ShortestPath(g, g.Start(), g.Goal())
	if p == nil {
		return -1
	}
	return len(p) - 1
}

// EfficiencyRating bands actual steps against the optimal baseline.
func EfficiencyRating(actual, optimal int) string {
	if optimal <= 0 {
		return "No path"
	}
	var efficiency float64
	if actual > 0 {
		efficiency = float64(optimal) / float64(actual)
	}
	switch {
	case efficiency >= 1.0:
		return "Perfect!"
	case efficiency >= 0.8:
		return "Excellent"
	case efficiency >= 0.6:
		return "Good"
	case efficiency >= 0.4:
		return "Fair"
	default:
		return "Needs work"
	}
}
