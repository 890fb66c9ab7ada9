// Package agent holds the state machine a sandboxed script drives: a position
// and facing inside a grid, a monotonic step counter, and a move log kept for
// diagnostics and hinting only.
package agent

import "github.com/sameehj/gridbot/pkg/grid"

// Move is one entry of the move log: the action taken and the state it
// resulted in. Control flow never reads the log.
type Move struct {
	Action string
	Pos    grid.Position
	Facing Direction
}

// Agent is the simulated entity scripts control. It is not safe for
// concurrent use; the host serializes runs per agent.
type Agent struct {
	world  *grid.Grid
	pos    grid.Position
	facing Direction
	steps  int
	moves  []Move
}

// New places an agent on g at the grid's start position, facing east.
func New(g *grid.Grid) *Agent {
	return &Agent{world: g, pos: g.Start(), facing: East}
}

// Position returns the current (row, col).
func (a *Agent) Position() grid.Position { return a.pos }

// Facing returns the current direction.
func (a *Agent) Facing() Direction { return a.facing }

// Steps returns the count of completed unit forward moves. Blocked moves do
// not count.
func (a *Agent) Steps() int { return a.steps }

// Moves returns the move log.
func (a *Agent) Moves() []Move { return a.moves }

// Front returns the position directly ahead of the agent.
func (a *Agent) Front() grid.Position {
	dr, dc := a.facing.Delta()
	return grid.Position{Row: a.pos.Row + dr, Col: a.pos.Col + dc}
}

// CanMoveForward reports whether the tile directly ahead is in bounds and
// not a wall.
func (a *Agent) CanMoveForward() bool {
	tile := a.world.TileAt(a.Front())
	return tile != nil && tile.Type.Passable()
}

// Forward attempts steps unit moves in the current facing. It stops at the
// first blocked move and returns true only if every requested move landed.
// The agent stays wherever it reached; nothing is rolled back.
func (a *Agent) Forward(steps int) bool {
	for i := 0; i < steps; i++ {
		if !a.CanMoveForward() {
			return false
		}
		dr, dc := a.facing.Delta()
		a.pos.Row += dr
		a.pos.Col += dc
		a.steps++
		a.moves = append(a.moves, Move{Action: "forward", Pos: a.pos, Facing: a.facing})
	}
	return true
}

// Left turns the agent one step counter-clockwise.
func (a *Agent) Left() {
	a.facing = a.facing.Left()
	a.moves = append(a.moves, Move{Action: "left", Pos: a.pos, Facing: a.facing})
}

// Right turns the agent one step clockwise.
func (a *Agent) Right() {
	a.facing = a.facing.Right()
	a.moves = append(a.moves, Move{Action: "right", Pos: a.pos, Facing: a.facing})
}

// Scan classifies the position directly ahead without moving: "BOUNDARY" if
// it lies outside the grid, otherwise the tile type mapped to "WALL",
// "GOAL", "WEIGHT" or "EMPTY".
func (a *Agent) Scan() string {
	tile := a.world.TileAt(a.Front())
	if tile == nil {
		return "BOUNDARY"
	}
	switch tile.Type {
	case grid.Wall:
		return "WALL"
	case grid.Goal:
		return "GOAL"
	case grid.Weight:
		return "WEIGHT"
	default:
		return "EMPTY"
	}
}

// AtGoal reports whether the agent stands on the grid's goal position.
func (a *Agent) AtGoal() bool {
	return a.pos == a.world.Goal()
}

// Reset returns the agent to the grid's start position facing east and
// clears the step counter and move log.
func (a *Agent) Reset() {
	a.pos = a.world.Start()
	a.facing = East
	a.steps = 0
	a.moves = nil
}
