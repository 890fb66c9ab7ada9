package interp

import (
	"fmt"

	"github.com/sameehj/gridbot/pkg/script"
)

// DefaultMaxCallDepth bounds user-function nesting. It stands in for the
// recursion limit the host language would otherwise impose: without it a
// runaway recursive script would overflow the interpreter's own stack.
const DefaultMaxCallDepth = 200

// Note the deliberate absence of any other work bound here: a loop that
// performs no capability call runs unbounded, exactly as in the original
// engine. The operation budget lives in pkg/sandbox and ticks only on
// capability calls.
type Interp struct {
	MaxCallDepth int
	depth        int
}

func New() *Interp {
	return &Interp{MaxCallDepth: DefaultMaxCallDepth}
}

// FuncObject is a user-defined function closed over its defining scope.
type FuncObject struct {
	Def *script.FuncDef
	Env *Env
}

func FuncValue(f *FuncObject) Value { return Value{Tag: TagFunc, Data: f} }

type ctrl int

const (
	ctrlNone ctrl = iota
	ctrlBreak
	ctrlContinue
	ctrlReturn
)

// Run executes a validated program against globals. Any fault surfaces as an
// error; the interpreter never panics on script input.
func (in *Interp) Run(prog *script.Program, globals *Env) error {
	c, _, err := in.execBlock(prog.Stmts, globals)
	if err != nil {
		return err
	}
	switch c {
	case ctrlBreak, ctrlContinue:
		return fmt.Errorf("break or continue outside a loop")
	case ctrlReturn:
		return fmt.Errorf("return outside a function")
	}
	return nil
}

func (in *Interp) execBlock(stmts []script.Node, env *Env) (ctrl, Value, error) {
	for _, stmt := range stmts {
		c, v, err := in.execStmt(stmt, env)
		if err != nil {
			return ctrlNone, None, err
		}
		if c != ctrlNone {
			return c, v, nil
		}
	}
	return ctrlNone, None, nil
}

func (in *Interp) execStmt(n script.Node, env *Env) (ctrl, Value, error) {
	switch stmt := n.(type) {
	case *script.ExprStmt:
		_, err := in.eval(stmt.X, env)
		return ctrlNone, None, err
	case *script.Assign:
		return ctrlNone, None, in.assign(stmt, env)
	case *script.AugAssign:
		cur, err := env.Get(stmt.Name)
		if err != nil {
			return ctrlNone, None, err
		}
		rhs, err := in.eval(stmt.Value, env)
		if err != nil {
			return ctrlNone, None, err
		}
		next, err := binaryOp(stmt.Op, cur, rhs)
		if err != nil {
			return ctrlNone, None, err
		}
		env.Set(stmt.Name, next)
		return ctrlNone, None, nil
	case *script.If:
		cond, err := in.eval(stmt.Cond, env)
		if err != nil {
			return ctrlNone, None, err
		}
		if Truthy(cond) {
			return in.execBlock(stmt.Body, env)
		}
		return in.execBlock(stmt.Else, env)
	case *script.While:
		for {
			cond, err := in.eval(stmt.Cond, env)
			if err != nil {
				return ctrlNone, None, err
			}
			if !Truthy(cond) {
				return ctrlNone, None, nil
			}
			c, v, err := in.execBlock(stmt.Body, env)
			if err != nil {
				return ctrlNone, None, err
			}
			switch c {
			case ctrlBreak:
				return ctrlNone, None, nil
			case ctrlReturn:
				return c, v, nil
			}
		}
	case *script.ForIn:
		return in.execForIn(stmt, env)
	case *script.FuncDef:
		env.Bind(stmt.Name, FuncValue(&FuncObject{Def: stmt, Env: env}))
		return ctrlNone, None, nil
	case *script.Return:
		if stmt.Value == nil {
			return ctrlReturn, None, nil
		}
		v, err := in.eval(stmt.Value, env)
		if err != nil {
			return ctrlNone, None, err
		}
		return ctrlReturn, v, nil
	case *script.Break:
		return ctrlBreak, None, nil
	case *script.Continue:
		return ctrlContinue, None, nil
	case *script.Import:
		// Validation rejects imports before execution; this only fires if a
		// caller skips validation.
		return ctrlNone, None, fmt.Errorf("imports are not allowed")
	default:
		return ctrlNone, None, fmt.Errorf("cannot execute %s node", n.Kind())
	}
}

func (in *Interp) execForIn(stmt *script.ForIn, env *Env) (ctrl, Value, error) {
	iter, err := in.eval(stmt.Iter, env)
	if err != nil {
		return ctrlNone, None, err
	}

	var items []Value
	switch iter.Tag {
	case TagInt:
		n := iter.Data.(int64)
		for i := int64(0); i < n; i++ {
			stop, c, v, err := in.runIteration(stmt, env, Int(i))
			if err != nil || c != ctrlNone {
				return c, v, err
			}
			if stop {
				return ctrlNone, None, nil
			}
		}
		return ctrlNone, None, nil
	case TagList:
		items = append(items, iter.Data.(*ListObject).Elems...)
	case TagTuple:
		items = iter.Data.([]Value)
	case TagStr:
		for _, r := range iter.Data.(string) {
			items = append(items, Str(string(r)))
		}
	case TagMap:
		items = iter.Data.(*MapObject).Keys()
	default:
		return ctrlNone, None, fmt.Errorf("cannot iterate over %s", iter.Tag)
	}

	for _, item := range items {
		stop, c, v, err := in.runIteration(stmt, env, item)
		if err != nil || c != ctrlNone {
			return c, v, err
		}
		if stop {
			break
		}
	}
	return ctrlNone, None, nil
}

// runIteration executes one loop body pass. stop reports a break; a
// continue simply ends the pass.
func (in *Interp) runIteration(stmt *script.ForIn, env *Env, item Value) (bool, ctrl, Value, error) {
	env.Set(stmt.Var, item)
	c, v, err := in.execBlock(stmt.Body, env)
	if err != nil {
		return false, ctrlNone, None, err
	}
	switch c {
	case ctrlBreak:
		return true, ctrlNone, None, nil
	case ctrlReturn:
		return false, c, v, nil
	}
	return false, ctrlNone, None, nil
}

func (in *Interp) assign(stmt *script.Assign, env *Env) error {
	value, err := in.eval(stmt.Value, env)
	if err != nil {
		return err
	}
	switch target := stmt.Target.(type) {
	case *script.Name:
		env.Set(target.Ident, value)
		return nil
	case *script.Index:
		container, err := in.eval(target.X, env)
		if err != nil {
			return err
		}
		index, err := in.eval(target.Index, env)
		if err != nil {
			return err
		}
		return setItem(container, index, value)
	case *script.Attribute:
		return fmt.Errorf("cannot set attribute %q", target.Name)
	default:
		return fmt.Errorf("invalid assignment target %s", stmt.Target.Kind())
	}
}

func setItem(container, index, value Value) error {
	switch container.Tag {
	case TagList:
		list := container.Data.(*ListObject)
		i, err := seqIndex(index, len(list.Elems))
		if err != nil {
			return err
		}
		list.Elems[i] = value
		return nil
	case TagMap:
		return container.Data.(*MapObject).Set(index, value)
	default:
		return fmt.Errorf("%s does not support item assignment", container.Tag)
	}
}

func (in *Interp) eval(n script.Node, env *Env) (Value, error) {
	switch expr := n.(type) {
	case *script.Literal:
		return literalValue(expr)
	case *script.Name:
		return env.Get(expr.Ident)
	case *script.BinaryOp:
		l, err := in.eval(expr.L, env)
		if err != nil {
			return None, err
		}
		r, err := in.eval(expr.R, env)
		if err != nil {
			return None, err
		}
		return binaryOp(expr.Op, l, r)
	case *script.UnaryOp:
		x, err := in.eval(expr.X, env)
		if err != nil {
			return None, err
		}
		return unaryOp(expr.Op, x)
	case *script.BoolOp:
		l, err := in.eval(expr.L, env)
		if err != nil {
			return None, err
		}
		if expr.Op == "and" {
			if !Truthy(l) {
				return l, nil
			}
			return in.eval(expr.R, env)
		}
		if Truthy(l) {
			return l, nil
		}
		return in.eval(expr.R, env)
	case *script.Compare:
		l, err := in.eval(expr.L, env)
		if err != nil {
			return None, err
		}
		r, err := in.eval(expr.R, env)
		if err != nil {
			return None, err
		}
		return compare(expr.Op, l, r)
	case *script.Call:
		return in.evalCall(expr, env)
	case *script.List:
		elems := make([]Value, len(expr.Elems))
		for i, e := range expr.Elems {
			v, err := in.eval(e, env)
			if err != nil {
				return None, err
			}
			elems[i] = v
		}
		return List(elems), nil
	case *script.Tuple:
		elems := make([]Value, len(expr.Elems))
		for i, e := range expr.Elems {
			v, err := in.eval(e, env)
			if err != nil {
				return None, err
			}
			elems[i] = v
		}
		return Tuple(elems), nil
	case *script.Map:
		m := NewMap()
		for i := range expr.Keys {
			k, err := in.eval(expr.Keys[i], env)
			if err != nil {
				return None, err
			}
			v, err := in.eval(expr.Values[i], env)
			if err != nil {
				return None, err
			}
			if err := m.Set(k, v); err != nil {
				return None, err
			}
		}
		return MapValue(m), nil
	case *script.Index:
		container, err := in.eval(expr.X, env)
		if err != nil {
			return None, err
		}
		index, err := in.eval(expr.Index, env)
		if err != nil {
			return None, err
		}
		return getItem(container, index)
	case *script.Slice:
		return in.evalSlice(expr, env)
	case *script.Attribute:
		x, err := in.eval(expr.X, env)
		if err != nil {
			return None, err
		}
		return None, fmt.Errorf("value of type %s has no attribute %q", x.Tag, expr.Name)
	case *script.InterpString:
		var b []byte
		for _, part := range expr.Parts {
			v, err := in.eval(part, env)
			if err != nil {
				return None, err
			}
			b = append(b, Display(v)...)
		}
		return Str(string(b)), nil
	default:
		return None, fmt.Errorf("cannot evaluate %s node", n.Kind())
	}
}

func literalValue(lit *script.Literal) (Value, error) {
	switch v := lit.Value.(type) {
	case nil:
		return None, nil
	case bool:
		return Bool(v), nil
	case int64:
		return Int(v), nil
	case float64:
		return Float(v), nil
	case string:
		return Str(v), nil
	default:
		return None, fmt.Errorf("unsupported literal type %T", lit.Value)
	}
}

func (in *Interp) evalCall(call *script.Call, env *Env) (Value, error) {
	fn, err := in.eval(call.Fun, env)
	if err != nil {
		return None, err
	}

	args := make([]Value, len(call.Args))
	for i, a := range call.Args {
		v, err := in.eval(a, env)
		if err != nil {
			return None, err
		}
		args[i] = v
	}
	var kwargs map[string]Value
	if len(call.Kwargs) > 0 {
		kwargs = make(map[string]Value, len(call.Kwargs))
		for _, kw := range call.Kwargs {
			v, err := in.eval(kw.Value, env)
			if err != nil {
				return None, err
			}
			if _, dup := kwargs[kw.Name]; dup {
				return None, fmt.Errorf("duplicate keyword argument %q", kw.Name)
			}
			kwargs[kw.Name] = v
		}
	}

	switch fn.Tag {
	case TagBuiltin:
		b := fn.Data.(*Builtin)
		return b.Fn(CallArgs{Args: args, Kwargs: kwargs})
	case TagFunc:
		return in.callFunc(fn.Data.(*FuncObject), args, kwargs)
	default:
		return None, fmt.Errorf("%s is not callable", fn.Tag)
	}
}

func (in *Interp) callFunc(fn *FuncObject, args []Value, kwargs map[string]Value) (Value, error) {
	if in.depth >= in.MaxCallDepth {
		return None, fmt.Errorf("maximum call depth exceeded (runaway recursion?)")
	}
	in.depth++
	defer func() { in.depth-- }()

	def := fn.Def
	if len(args) > len(def.Params) {
		return None, fmt.Errorf("%s() takes at most %d arguments (%d given)", def.Name, len(def.Params), len(args))
	}

	local := NewEnv(fn.Env)
	bound := make(map[string]bool, len(def.Params))
	for i, arg := range args {
		local.Bind(def.Params[i].Name, arg)
		bound[def.Params[i].Name] = true
	}
	for name, v := range kwargs {
		known := false
		for _, p := range def.Params {
			if p.Name == name {
				known = true
				break
			}
		}
		if !known {
			return None, fmt.Errorf("%s() got an unexpected keyword argument %q", def.Name, name)
		}
		if bound[name] {
			return None, fmt.Errorf("%s() got multiple values for argument %q", def.Name, name)
		}
		local.Bind(name, v)
		bound[name] = true
	}
	for _, p := range def.Params {
		if bound[p.Name] {
			continue
		}
		if p.Default == nil {
			return None, fmt.Errorf("%s() missing required argument %q", def.Name, p.Name)
		}
		v, err := in.eval(p.Default, fn.Env)
		if err != nil {
			return None, err
		}
		local.Bind(p.Name, v)
	}

	c, v, err := in.execBlock(def.Body, local)
	if err != nil {
		return None, err
	}
	switch c {
	case ctrlReturn:
		return v, nil
	case ctrlBreak, ctrlContinue:
		return None, fmt.Errorf("break or continue outside a loop")
	}
	return None, nil
}

func (in *Interp) evalSlice(expr *script.Slice, env *Env) (Value, error) {
	container, err := in.eval(expr.X, env)
	if err != nil {
		return None, err
	}

	length := 0
	switch container.Tag {
	case TagList:
		length = len(container.Data.(*ListObject).Elems)
	case TagTuple:
		length = len(container.Data.([]Value))
	case TagStr:
		length = len([]rune(container.Data.(string)))
	default:
		return None, fmt.Errorf("%s is not sliceable", container.Tag)
	}

	lo, hi := 0, length
	if expr.Lo != nil {
		v, err := in.eval(expr.Lo, env)
		if err != nil {
			return None, err
		}
		lo, err = sliceBound(v, length)
		if err != nil {
			return None, err
		}
	}
	if expr.Hi != nil {
		v, err := in.eval(expr.Hi, env)
		if err != nil {
			return None, err
		}
		hi, err = sliceBound(v, length)
		if err != nil {
			return None, err
		}
	}
	if lo > hi {
		lo = hi
	}

	switch container.Tag {
	case TagList:
		src := container.Data.(*ListObject).Elems[lo:hi]
		out := make([]Value, len(src))
		copy(out, src)
		return List(out), nil
	case TagTuple:
		src := container.Data.([]Value)[lo:hi]
		out := make([]Value, len(src))
		copy(out, src)
		return Tuple(out), nil
	default:
		runes := []rune(container.Data.(string))
		return Str(string(runes[lo:hi])), nil
	}
}

// sliceBound clamps a slice bound into [0, length], with negative indices
// counted from the end.
func sliceBound(v Value, length int) (int, error) {
	if v.Tag != TagInt {
		return 0, fmt.Errorf("slice bound must be an integer, not %s", v.Tag)
	}
	i := int(v.Data.(int64))
	if i < 0 {
		i += length
	}
	if i < 0 {
		i = 0
	}
	if i > length {
		i = length
	}
	return i, nil
}

// seqIndex resolves an index value against a sequence of the given length,
// supporting negative indices.
func seqIndex(v Value, length int) (int, error) {
	if v.Tag != TagInt {
		return 0, fmt.Errorf("index must be an integer, not %s", v.Tag)
	}
	i := int(v.Data.(int64))
	if i < 0 {
		i += length
	}
	if i < 0 || i >= length {
		return 0, fmt.Errorf("index out of range")
	}
	return i, nil
}

func getItem(container, index Value) (Value, error) {
	switch container.Tag {
	case TagList:
		elems := container.Data.(*ListObject).Elems
		i, err := seqIndex(index, len(elems))
		if err != nil {
			return None, err
		}
		return elems[i], nil
	case TagTuple:
		elems := container.Data.([]Value)
		i, err := seqIndex(index, len(elems))
		if err != nil {
			return None, err
		}
		return elems[i], nil
	case TagStr:
		runes := []rune(container.Data.(string))
		i, err := seqIndex(index, len(runes))
		if err != nil {
			return None, err
		}
		return Str(string(runes[i])), nil
	case TagMap:
		v, ok, err := container.Data.(*MapObject).Get(index)
		if err != nil {
			return None, err
		}
		if !ok {
			return None, fmt.Errorf("key not found: %s", Display(index))
		}
		return v, nil
	default:
		return None, fmt.Errorf("%s is not subscriptable", container.Tag)
	}
}

func binaryOp(op string, l, r Value) (Value, error) {
	// Non-numeric + is concatenation.
	if op == "+" {
		switch {
		case l.Tag == TagStr && r.Tag == TagStr:
			return Str(l.Data.(string) + r.Data.(string)), nil
		case l.Tag == TagList && r.Tag == TagList:
			a := l.Data.(*ListObject).Elems
			b := r.Data.(*ListObject).Elems
			out := make([]Value, 0, len(a)+len(b))
			out = append(out, a...)
			out = append(out, b...)
			return List(out), nil
		case l.Tag == TagTuple && r.Tag == TagTuple:
			a := l.Data.([]Value)
			b := r.Data.([]Value)
			out := make([]Value, 0, len(a)+len(b))
			out = append(out, a...)
			out = append(out, b...)
			return Tuple(out), nil
		}
	}

	if l.Tag == TagInt && r.Tag == TagInt {
		a, b := l.Data.(int64), r.Data.(int64)
		switch op {
		case "+":
			return Int(a + b), nil
		case "-":
			return Int(a - b), nil
		case "*":
			return Int(a * b), nil
		case "/":
			if b == 0 {
				return None, fmt.Errorf("division by zero")
			}
			return Int(a / b), nil
		case "%":
			if b == 0 {
				return None, fmt.Errorf("modulo by zero")
			}
			return Int(a % b), nil
		}
	}

	af, aok := asFloat(l)
	bf, bok := asFloat(r)
	if aok && bok {
		switch op {
		case "+":
			return Float(af + bf), nil
		case "-":
			return Float(af - bf), nil
		case "*":
			return Float(af * bf), nil
		case "/":
			if bf == 0 {
				return None, fmt.Errorf("division by zero")
			}
			return Float(af / bf), nil
		case "%":
			return None, fmt.Errorf("unsupported operand types for %%: %s and %s", l.Tag, r.Tag)
		}
	}
	return None, fmt.Errorf("unsupported operand types for %s: %s and %s", op, l.Tag, r.Tag)
}

func asFloat(v Value) (float64, bool) {
	switch v.Tag {
	case TagInt:
		return float64(v.Data.(int64)), true
	case TagFloat:
		return v.Data.(float64), true
	default:
		return 0, false
	}
}

func unaryOp(op string, x Value) (Value, error) {
	switch op {
	case "not":
		return Bool(!Truthy(x)), nil
	case "-":
		switch x.Tag {
		case TagInt:
			return Int(-x.Data.(int64)), nil
		case TagFloat:
			return Float(-x.Data.(float64)), nil
		}
		return None, fmt.Errorf("bad operand type for unary -: %s", x.Tag)
	default:
		return None, fmt.Errorf("unknown unary operator %q", op)
	}
}

func compare(op string, l, r Value) (Value, error) {
	switch op {
	case "==":
		return Bool(Equal(l, r)), nil
	case "!=":
		return Bool(!Equal(l, r)), nil
	}

	if l.Tag == TagStr && r.Tag == TagStr {
		a, b := l.Data.(string), r.Data.(string)
		return orderedResult(op, a < b, a <= b, a > b, a >= b)
	}
	af, aok := asFloat(l)
	bf, bok := asFloat(r)
	if aok && bok {
		return orderedResult(op, af < bf, af <= bf, af > bf, af >= bf)
	}
	return None, fmt.Errorf("cannot compare %s and %s", l.Tag, r.Tag)
}

func orderedResult(op string, lt, le, gt, ge bool) (Value, error) {
	switch op {
	case "<":
		return Bool(lt), nil
	case "<=":
		return Bool(le), nil
	case ">":
		return Bool(gt), nil
	case ">=":
		return Bool(ge), nil
	default:
		return None, fmt.Errorf("unknown comparison operator %q", op)
	}
}
