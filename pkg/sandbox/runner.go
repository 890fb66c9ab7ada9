// Package sandbox executes learner scripts against an agent under a security
// contract: scripts pass a closed-grammar validation before any of it runs,
// see nothing but the six capability bindings while running, and are cut off
// by an operation budget the moment their capability-call volume crosses the
// ceiling.
//
// Known limitation, carried over deliberately from the original engine: the
// budget ticks only on capability calls. A loop of pure computation that
// never touches the API is not bounded by it.
package sandbox

import (
	"errors"
	"log/slog"

	"github.com/sameehj/gridbot/internal/interp"
	"github.com/sameehj/gridbot/pkg/agent"
	"github.com/sameehj/gridbot/pkg/script"
)

// DefaultMaxOperations is the operation ceiling applied when the host does
// not configure one.
const DefaultMaxOperations = 1000

// Runner executes scripts against one agent. It is not reentrant: the host
// must serialize runs per agent instance.
type Runner struct {
	// MaxOperations is the capability-call budget per run.
	MaxOperations int

	// Logger, when set, receives run lifecycle events.
	Logger *slog.Logger

	agent *agent.Agent
	ops   int
	trace []string
}

// NewRunner wraps an agent for script execution with the default budget.
func NewRunner(a *agent.Agent) *Runner {
	return &Runner{MaxOperations: DefaultMaxOperations, agent: a}
}

// Agent returns the agent this runner drives.
func (r *Runner) Agent() *agent.Agent { return r.agent }

// Execute validates source and, if accepted, runs it exactly once to
// completion or failure. Validation failures leave the agent untouched.
// Runtime failures leave whatever state prior capability calls already
// applied; nothing is rolled back. No fault escapes: the returned Result is
// the only outcome channel.
func (r *Runner) Execute(source string) Result {
	r.ops = 0
	r.trace = nil

	prog, err := script.Parse(source)
	if err != nil {
		return Result{Error: (&script.ValidationError{Reason: err.Error()}).Error()}
	}
	if err := script.ValidateTree(prog); err != nil {
		return Result{Error: err.Error()}
	}

	if r.Logger != nil {
		r.Logger.Debug("script accepted", "budget", r.budget())
	}

	globals := interp.NewEnv(nil)
	r.bindAPI(globals)

	runErr := interp.New().Run(prog, globals)
	result := Result{
		Success:    runErr == nil,
		Trace:      append([]string(nil), r.trace...),
		Operations: r.ops,
	}
	if runErr != nil {
		result.Error = runErr.Error()
		var limitErr *LimitError
		if errors.As(runErr, &limitErr) {
			result.LimitExceeded = true
		}
	}

	if r.Logger != nil {
		r.Logger.Info("script finished",
			"success", result.Success,
			"operations", result.Operations,
			"position", r.agent.Position().String(),
			"error", result.Error)
	}
	return result
}

func (r *Runner) budget() int {
	if r.MaxOperations > 0 {
		return r.MaxOperations
	}
	return DefaultMaxOperations
}

// charge counts one capability call against the budget and aborts the run
// on the call that crosses the ceiling.
func (r *Runner) charge() error {
	r.ops++
	if r.ops > r.budget() {
		return &LimitError{Limit: r.budget()}
	}
	return nil
}
