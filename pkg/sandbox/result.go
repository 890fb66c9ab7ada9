package sandbox

// Result is the structured outcome of one script run.
type Result struct {
	// Success is true when the whole script ran without fault.
	Success bool

	// Error carries the verbatim failure text: a validation reason, an
	// argument error, the operation-limit message, or any other script
	// fault. Empty on success.
	Error string

	// LimitExceeded marks the failure as an operation-budget abort so hosts
	// can present it separately from script bugs.
	LimitExceeded bool

	// Trace is the ordered log of movement capability calls
	// (forward/left/right), kept for diagnostics and hints. Sensing calls
	// charge the budget but are not traced.
	Trace []string

	// Operations is how many capability calls the run charged.
	Operations int
}
