// Package grid models the maze world: a fixed matrix of typed tiles with one
// start and one goal, bounds-checked lookup, and a wall-aware neighbor query
// used by the pathfinding collaborator.
package grid

import "fmt"

// Position is a (row, col) coordinate pair.
type Position struct {
	Row int
	Col int
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.Row, p.Col)
}

// Manhattan returns the Manhattan distance to another position.
func (p Position) Manhattan(other Position) int {
	return abs(p.Row-other.Row) + abs(p.Col-other.Col)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Neighbor is one reachable adjacent cell and the cost of entering it.
type Neighbor struct {
	Pos  Position
	Cost int
}

// Grid is the maze world. It is plain mutable state owned by the host; the
// sandbox only reads it through the agent.
type Grid struct {
	rows  int
	cols  int
	tiles [][]Tile
	start Position
	goal  Position
}

// New returns a rows x cols grid of empty tiles. Start defaults to the top
// left corner and goal to the bottom right, matching the blank-world layout
// a host overrides via SetStart/SetGoal.
func New(rows, cols int) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("grid dimensions must be positive, got %dx%d", rows, cols)
	}
	tiles := make([][]Tile, rows)
	for r := range tiles {
		tiles[r] = make([]Tile, cols)
		for c := range tiles[r] {
			tiles[r][c] = NewTile(Empty)
		}
	}
	g := &Grid{rows: rows, cols: cols, tiles: tiles}
	g.SetStart(Position{0, 0})
	g.SetGoal(Position{rows - 1, cols - 1})
	return g, nil
}

// Rows returns the row extent.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the column extent.
func (g *Grid) Cols() int { return g.cols }

// Start returns the designated start position.
func (g *Grid) Start() Position { return g.start }

// Goal returns the designated goal position.
func (g *Grid) Goal() Position { return g.goal }

// InBounds reports whether pos lies within [0,rows) x [0,cols).
func (g *Grid) InBounds(pos Position) bool {
	return pos.Row >= 0 && pos.Row < g.rows && pos.Col >= 0 && pos.Col < g.cols
}

// TileAt returns the tile at pos, or nil if pos is out of bounds.
func (g *Grid) TileAt(pos Position) *Tile {
	if !g.InBounds(pos) {
		return nil
	}
	return &g.tiles[pos.Row][pos.Col]
}

// SetTile replaces the tile at pos with one of the given type and cost.
// Out-of-bounds positions are ignored.
func (g *Grid) SetTile(pos Position, t TileType, cost int) {
	if !g.InBounds(pos) {
		return
	}
	tile := NewTile(t)
	if cost > 0 {
		tile.Cost = cost
	}
	g.tiles[pos.Row][pos.Col] = tile
}

// SetStart moves the start marker to pos, clearing the previous start tile.
func (g *Grid) SetStart(pos Position) {
	if !g.InBounds(pos) {
		return
	}
	if old := g.TileAt(g.start); old != nil && old.Type == Start {
		old.Type = Empty
	}
	g.start = pos
	g.tiles[pos.Row][pos.Col].Type = Start
}

// SetGoal moves the goal marker to pos, clearing the previous goal tile.
func (g *Grid) SetGoal(pos Position) {
	if !g.InBounds(pos) {
		return
	}
	if old := g.TileAt(g.goal); old != nil && old.Type == Goal {
		old.Type = Empty
	}
	g.goal = pos
	g.tiles[pos.Row][pos.Col].Type = Goal
}

// Neighbors returns the 4-directionally adjacent, in-bounds, non-wall cells
// of pos together with the cost of entering each.
func (g *Grid) Neighbors(pos Position) []Neighbor {
	deltas := [4][2]int{{-1, 0}, {0, 1}, {1, 0}, {0, -1}}
	out := make([]Neighbor, 0, 4)
	for _, d := range deltas {
		next := Position{pos.Row + d[0], pos.Col + d[1]}
		tile := g.TileAt(next)
		if tile == nil || tile.Type == Wall {
			continue
		}
		out = append(out, Neighbor{Pos: next, Cost: tile.Cost})
	}
	return out
}

// ResetPathfinding clears search scratch on every tile.
func (g *Grid) ResetPathfinding() {
	for r := range g.tiles {
		for c := range g.tiles[r] {
			g.tiles[r][c].ResetPathfinding()
		}
	}
}
