package script

import "fmt"

// SyntaxError reports a script that could not be parsed.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at line %d: %s", e.Line, e.Msg)
}

// ValidationError reports a script that parsed but uses a construct or name
// outside the sandbox's closed grammar and vocabulary. It is always produced
// before any part of the script runs.
type ValidationError struct {
	Line   int
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
	}
	return e.Reason
}
