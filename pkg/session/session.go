// Package session keeps the run history for a working session: every script
// execution gets a uuid, and the store hands history back in submission
// order. State is held by an explicit Store value the host owns, never by
// package globals, and lives only as long as the process.
package session

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sameehj/gridbot/pkg/sandbox"
)

// Run is one recorded script execution.
type Run struct {
	ID        string
	Level     string
	Source    string
	Result    sandbox.Result
	Stars     int
	StartedAt time.Time
	EndedAt   time.Time
}

// Store is an in-memory run history. Safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	runs  map[string]Run
	order []string
}

// NewStore returns an empty run history.
func NewStore() *Store {
	return &Store{runs: make(map[string]Run)}
}

// Add records a run, assigning it a fresh id, and returns the stored copy.
func (s *Store) Add(run Run) Run {
	run.ID = uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[run.ID] = run
	s.order = append(s.order, run.ID)
	return run
}

// Get returns the run with the given id.
func (s *Store) Get(id string) (Run, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, ok := s.runs[id]
	return run, ok
}

// List returns all runs in submission order.
func (s *Store) List() []Run {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Run, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.runs[id])
	}
	return out
}

// Best returns the highest-starred successful run for a level, preferring
// fewer operations on ties.
func (s *Store) Best(level string) (Run, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var candidates []Run
	for _, id := range s.order {
		run := s.runs[id]
		if run.Level == level && run.Result.Success {
			candidates = append(candidates, run)
		}
	}
	if len(candidates) == 0 {
		return Run{}, false
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Stars != candidates[j].Stars {
			return candidates[i].Stars > candidates[j].Stars
		}
		return candidates[i].Result.Operations < candidates[j].Result.Operations
	})
	return candidates[0], true
}

// Clear drops all recorded runs.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs = make(map[string]Run)
	s.order = nil
}
