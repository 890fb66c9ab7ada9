package sandbox

import (
	"fmt"

	"github.com/sameehj/gridbot/internal/interp"
)

// bindAPI installs the six capability entry points into globals. They are
// the only names a script can resolve; each charges one operation against
// the budget before doing anything else, so even a rejected argument counts.
func (r *Runner) bindAPI(globals *interp.Env) {
	bind := func(name string, fn func(call interp.CallArgs) (interp.Value, error)) {
		globals.Bind(name, interp.BuiltinValue(&interp.Builtin{Name: name, Fn: fn}))
	}

	bind("forward", r.apiForward)
	bind("left", r.apiLeft)
	bind("right", r.apiRight)
	bind("scan", r.apiScan)
	bind("at_goal", r.apiAtGoal)
	bind("get_position", r.apiGetPosition)
}

func (r *Runner) apiForward(call interp.CallArgs) (interp.Value, error) {
	if err := r.charge(); err != nil {
		return interp.None, err
	}

	steps := int64(1)
	switch {
	case len(call.Args) == 1 && len(call.Kwargs) == 0:
		v := call.Args[0]
		if v.Tag != interp.TagInt {
			return interp.None, &ArgumentError{Msg: "forward() steps must be an integer between 0 and 100"}
		}
		steps = v.Data.(int64)
	case len(call.Args) == 0 && len(call.Kwargs) == 1:
		v, ok := call.Kwargs["steps"]
		if !ok {
			return interp.None, fmt.Errorf("forward() got an unexpected keyword argument")
		}
		if v.Tag != interp.TagInt {
			return interp.None, &ArgumentError{Msg: "forward() steps must be an integer between 0 and 100"}
		}
		steps = v.Data.(int64)
	case len(call.Args) == 0 && len(call.Kwargs) == 0:
		// default single step
	default:
		return interp.None, fmt.Errorf("forward() takes at most one steps argument")
	}

	if steps < 0 || steps > 100 {
		return interp.None, &ArgumentError{Msg: "forward() steps must be an integer between 0 and 100"}
	}

	ok := r.agent.Forward(int(steps))
	r.trace = append(r.trace, fmt.Sprintf("forward(%d)", steps))
	return interp.Bool(ok), nil
}

func (r *Runner) apiLeft(call interp.CallArgs) (interp.Value, error) {
	if err := r.charge(); err != nil {
		return interp.None, err
	}
	if err := noArgs("left", call); err != nil {
		return interp.None, err
	}
	r.agent.Left()
	r.trace = append(r.trace, "left()")
	return interp.None, nil
}

func (r *Runner) apiRight(call interp.CallArgs) (interp.Value, error) {
	if err := r.charge(); err != nil {
		return interp.None, err
	}
	if err := noArgs("right", call); err != nil {
		return interp.None, err
	}
	r.agent.Right()
	r.trace = append(r.trace, "right()")
	return interp.None, nil
}

func (r *Runner) apiScan(call interp.CallArgs) (interp.Value, error) {
	if err := r.charge(); err != nil {
		return interp.None, err
	}
	if err := noArgs("scan", call); err != nil {
		return interp.None, err
	}
	return interp.Str(r.agent.Scan()), nil
}

func (r *Runner) apiAtGoal(call interp.CallArgs) (interp.Value, error) {
	if err := r.charge(); err != nil {
		return interp.None, err
	}
	if err := noArgs("at_goal", call); err != nil {
		return interp.None, err
	}
	return interp.Bool(r.agent.AtGoal()), nil
}

func (r *Runner) apiGetPosition(call interp.CallArgs) (interp.Value, error) {
	if err := r.charge(); err != nil {
		return interp.None, err
	}
	if err := noArgs("get_position", call); err != nil {
		return interp.None, err
	}
	pos := r.agent.Position()
	return interp.Tuple([]interp.Value{
		interp.Int(int64(pos.Row)),
		interp.Int(int64(pos.Col)),
	}), nil
}

func noArgs(name string, call interp.CallArgs) error {
	if len(call.Args) > 0 || len(call.Kwargs) > 0 {
		return fmt.Errorf("%s() takes no arguments", name)
	}
	return nil
}
