// Package level loads declarative maze levels from YAML files and turns them
// into playable grids. A level carries the maze layout as ASCII rows, the
// starter code shown to the learner, and the optimal step count used for
// scoring.
package level

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sameehj/gridbot/pkg/grid"
)

// Layout legend used in the Grid rows.
const (
	charWall   = '#'
	charEmpty  = '.'
	charStart  = 'S'
	charGoal   = 'G'
	charWeight = '~'
)

// Level is one declarative maze definition.
type Level struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Grid        []string `yaml:"grid"`

	// StarterCode is the script shown to the learner as a starting point.
	StarterCode string `yaml:"starterCode"`

	// OptimalSteps overrides the BFS baseline for scoring. Zero means
	// compute it from the layout.
	OptimalSteps int `yaml:"optimalSteps"`

	// WeightCost is the traversal cost of '~' tiles. Zero means 2.
	WeightCost int `yaml:"weightCost"`
}

// Load reads a single level file.
func Load(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read level file: %w", err)
	}
	var lv Level
	if err := yaml.Unmarshal(data, &lv); err != nil {
		return nil, fmt.Errorf("parse level %s: %w", filepath.Base(path), err)
	}
	if lv.Name == "" {
		return nil, fmt.Errorf("level %s: missing name", filepath.Base(path))
	}
	if len(lv.Grid) == 0 {
		return nil, fmt.Errorf("level %s: missing grid", filepath.Base(path))
	}
	return &lv, nil
}

// LoadDir loads every *.yaml level in dir, sorted by file name.
func LoadDir(dir string) ([]*Level, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read levels dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if ext := filepath.Ext(e.Name()); ext == ".yaml" || ext == ".yml" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	levels := make([]*Level, 0, len(names))
	for _, name := range names {
		lv, err := Load(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		levels = append(levels, lv)
	}
	return levels, nil
}

// Build materializes the layout into a grid. It requires uniform row widths
// and exactly one start and one goal marker.
func (l *Level) Build() (*grid.Grid, error) {
	rows := len(l.Grid)
	cols := len(l.Grid[0])
	for i, row := range l.Grid {
		if len(row) != cols {
			return nil, fmt.Errorf("level %q: row %d is %d wide, want %d", l.Name, i, len(row), cols)
		}
	}

	g, err := grid.New(rows, cols)
	if err != nil {
		return nil, fmt.Errorf("level %q: %w", l.Name, err)
	}

	weightCost := l.WeightCost
	if weightCost <= 0 {
		weightCost = 2
	}

	var starts, goals []grid.Position
	for r, row := range l.Grid {
		for c, ch := range row {
			pos := grid.Position{Row: r, Col: c}
			switch ch {
			case charEmpty:
				g.SetTile(pos, grid.Empty, 0)
			case charWall:
				g.SetTile(pos, grid.Wall, 0)
			case charWeight:
				g.SetTile(pos, grid.Weight, weightCost)
			case charStart:
				g.SetTile(pos, grid.Empty, 0)
				starts = append(starts, pos)
			case charGoal:
				g.SetTile(pos, grid.Empty, 0)
				goals = append(goals, pos)
			default:
				return nil, fmt.Errorf("level %q: unknown tile %q at (%d, %d)", l.Name, string(ch), r, c)
			}
		}
	}

	if len(starts) != 1 {
		return nil, fmt.Errorf("level %q: want exactly one start, got %d", l.Name, len(starts))
	}
	if len(goals) != 1 {
		return nil, fmt.Errorf("level %q: want exactly one goal, got %d", l.Name, len(goals))
	}
	g.SetStart(starts[0])
	g.SetGoal(goals[0])
	return g, nil
}

// Render returns the layout as a printable block, for the CLI.
func (l *Level) Render() string {
	return strings.Join(l.Grid, "\n")
}
