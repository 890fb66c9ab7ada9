package sandbox

import "fmt"

// LimitError aborts a run whose capability-call volume crossed the operation
// ceiling. It is distinguished from other runtime errors so a host can
// present it as a likely infinite loop rather than a script bug.
type LimitError struct {
	Limit int
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("too many operations (>%d): possible infinite loop", e.Limit)
}

// ArgumentError reports a capability call with an out-of-range or
// wrong-typed argument.
type ArgumentError struct {
	Msg string
}

func (e *ArgumentError) Error() string { return e.Msg }
