package level

import (
	"github.com/sameehj/gridbot/pkg/agent"
	"github.com/sameehj/gridbot/pkg/grid"
	"github.com/sameehj/gridbot/pkg/path"
)

// Score rates a finished run against the level's optimal step count. It
// returns the star count (0 to 3) and a message for the learner. The move
// count includes turns, matching what the learner typed, not just distance.
func (l *Level) Score(a *agent.Agent, g *grid.Grid) (int, string) {
	if !a.AtGoal() {
		return 0, "Not at goal yet!"
	}

	optimal := l.OptimalSteps
	if optimal <= 0 {
		optimal = path.OptimalSteps(g)
	}
	if optimal <= 0 {
		return 1, "Completed!"
	}

	moves := len(a.Moves())
	switch {
	case moves <= optimal:
		return 3, "Perfect! Optimal solution!"
	case moves <= optimal+3:
		return 2, "Great job! Very efficient!"
	default:
		return 1, "Good work! Try to be more efficient next time."
	}
}

// Hints inspects the agent's state and move log and returns contextual
// guidance. Empty when nothing stands out.
func (l *Level) Hints(a *agent.Agent) []string {
	var hints []string

	if a.Scan() == "WALL" {
		hints = append(hints, "There's a wall ahead! Try turning left() or right()")
	}

	// A short window of forward moves landing on barely two distinct cells
	// means the agent is pacing back and forth.
	moves := a.Moves()
	var recent []grid.Position
	for _, m := range moves {
		if m.Action == "forward" {
			recent = append(recent, m.Pos)
		}
	}
	if len(recent) > 6 {
		recent = recent[len(recent)-6:]
	}
	if len(recent) >= 4 {
		distinct := map[grid.Position]bool{}
		for _, p := range recent {
			distinct[p] = true
		}
		if len(distinct) <= 2 {
			hints = append(hints, "You might be going in circles. Plan your path carefully!")
		}
	}

	return hints
}
