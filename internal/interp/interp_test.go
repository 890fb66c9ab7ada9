package interp

import (
	"strings"
	"testing"

	"github.com/sameehj/gridbot/pkg/script"
)

// run executes src with a capture builtin bound as emit(x), returning the
// captured values.
func run(t *testing.T, src string) ([]Value, error) {
	t.Helper()
	prog, err := script.Parse(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var captured []Value
	globals := NewEnv(nil)
	globals.Bind("emit", BuiltinValue(&Builtin{
		Name: "emit",
		Fn: func(call CallArgs) (Value, error) {
			captured = append(captured, call.Args...)
			return None, nil
		},
	}))
	return captured, New().Run(prog, globals)
}

func mustRun(t *testing.T, src string) []Value {
	t.Helper()
	captured, err := run(t, src)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	return captured
}

func wantInts(t *testing.T, got []Value, want ...int64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("captured %d values, want %d: %v", len(got), len(want), got)
	}
	for i, w := range want {
		if got[i].Tag != TagInt || got[i].Data.(int64) != w {
			t.Fatalf("value %d: got %s, want %d", i, Display(got[i]), w)
		}
	}
}

func TestArithmeticAndPrecedence(t *testing.T) {
	got := mustRun(t, "emit(2 + 3 * 4)\nemit((2 + 3) * 4)\nemit(10 / 3)\nemit(10 % 3)\nemit(-2 * 3)")
	wantInts(t, got, 14, 20, 3, 1, -6)
}

func TestFloatArithmetic(t *testing.T) {
	got := mustRun(t, "emit(1.5 + 2)\nemit(7 / 2.0)")
	if got[0].Tag != TagFloat || got[0].Data.(float64) != 3.5 {
		t.Fatalf("expected 3.5, got %s", Display(got[0]))
	}
	if got[1].Tag != TagFloat || got[1].Data.(float64) != 3.5 {
		t.Fatalf("expected 3.5, got %s", Display(got[1]))
	}
}

func TestDivisionByZero(t *testing.T) {
	_, err := run(t, "emit(1 / 0)")
	if err == nil || !strings.Contains(err.Error(), "division by zero") {
		t.Fatalf("expected division by zero, got %v", err)
	}
	_, err = run(t, "x = 5 % 0")
	if err == nil || !strings.Contains(err.Error(), "modulo by zero") {
		t.Fatalf("expected modulo by zero, got %v", err)
	}
}

func TestConditionals(t *testing.T) {
	got := mustRun(t, `
x = 7
if x > 10 {
	emit(1)
} elif x > 5 {
	emit(2)
} else {
	emit(3)
}
`)
	wantInts(t, got, 2)
}

func TestWhileWithBreakAndContinue(t *testing.T) {
	got := mustRun(t, `
i = 0
while true {
	i += 1
	if i == 3 {
		continue
	}
	if i > 5 {
		break
	}
	emit(i)
}
`)
	wantInts(t, got, 1, 2, 4, 5)
}

func TestForOverInt(t *testing.T) {
	got := mustRun(t, "for i in 4 { emit(i) }")
	wantInts(t, got, 0, 1, 2, 3)
}

func TestForOverListWithBreak(t *testing.T) {
	got := mustRun(t, `
for x in [10, 20, 30, 40] {
	if x == 30 {
		break
	}
	emit(x)
}
`)
	wantInts(t, got, 10, 20)
}

func TestForOverString(t *testing.T) {
	got := mustRun(t, `for ch in "ab" { emit(ch) }`)
	if len(got) != 2 || got[0].Data.(string) != "a" || got[1].Data.(string) != "b" {
		t.Fatalf("unexpected %v", got)
	}
}

func TestFunctionsAndReturn(t *testing.T) {
	got := mustRun(t, `
def add(a, b=10) {
	return a + b
}
emit(add(1, 2))
emit(add(1))
emit(add(b=5, a=1))
`)
	wantInts(t, got, 3, 11, 6)
}

func TestFunctionReturnsNoneWithoutReturn(t *testing.T) {
	got := mustRun(t, "def f() { x = 1 }\nemit(f())")
	if len(got) != 1 || got[0].Tag != TagNone {
		t.Fatalf("expected none, got %v", got)
	}
}

func TestClosureSeesDefiningScope(t *testing.T) {
	got := mustRun(t, `
base = 100
def bump() {
	return base + 1
}
emit(bump())
`)
	wantInts(t, got, 101)
}

func TestFunctionArgErrors(t *testing.T) {
	cases := map[string]string{
		"def f(a) { return a }\nf()":            "missing required argument",
		"def f(a) { return a }\nf(1, 2)":        "takes at most",
		"def f(a) { return a }\nf(b=1)":         "unexpected keyword argument",
		"def f(a) { return a }\nf(1, a=2)":      "multiple values",
	}
	for src, want := range cases {
		_, err := run(t, src)
		if err == nil || !strings.Contains(err.Error(), want) {
			t.Fatalf("%q: expected %q error, got %v", src, want, err)
		}
	}
}

func TestRecursionDepthBounded(t *testing.T) {
	_, err := run(t, "def f() { return f() }\nf()")
	if err == nil || !strings.Contains(err.Error(), "call depth") {
		t.Fatalf("expected call depth error, got %v", err)
	}
}

func TestUndefinedName(t *testing.T) {
	_, err := run(t, "emit(nope)")
	if err == nil || !strings.Contains(err.Error(), "not defined") {
		t.Fatalf("expected undefined name error, got %v", err)
	}
}

func TestNoAmbientBuiltins(t *testing.T) {
	// The environment holds only what the caller bound; nothing like len or
	// print leaks in.
	_, err := run(t, `print("hello")`)
	if err == nil || !strings.Contains(err.Error(), "not defined") {
		t.Fatalf("expected undefined name error, got %v", err)
	}
	_, err = run(t, "emit(len([1]))")
	if err == nil || !strings.Contains(err.Error(), "not defined") {
		t.Fatalf("expected undefined name error, got %v", err)
	}
}

func TestListsIndexSliceAndMutation(t *testing.T) {
	got := mustRun(t, `
xs = [1, 2, 3, 4]
xs[0] = 9
emit(xs[0])
emit(xs[-1])
ys = xs[1:3]
emit(ys[0])
emit(ys[1])
`)
	wantInts(t, got, 9, 4, 2, 3)
}

func TestIndexOutOfRange(t *testing.T) {
	_, err := run(t, "xs = [1]\nemit(xs[3])")
	if err == nil || !strings.Contains(err.Error(), "index out of range") {
		t.Fatalf("expected index error, got %v", err)
	}
}

func TestTupleAndMap(t *testing.T) {
	got := mustRun(t, `
pos = (3, 4)
emit(pos[0])
emit(pos[1])
m = {"a": 1, "b": 2}
m["c"] = 3
emit(m["c"])
`)
	wantInts(t, got, 3, 4, 3)
}

func TestMapMissingKey(t *testing.T) {
	_, err := run(t, `m = {"a": 1}` + "\n" + `emit(m["z"])`)
	if err == nil || !strings.Contains(err.Error(), "key not found") {
		t.Fatalf("expected key error, got %v", err)
	}
}

func TestBoolOpsShortCircuit(t *testing.T) {
	// boom is undefined; short circuit must avoid evaluating it.
	got := mustRun(t, "emit(false and boom)\nemit(true or boom)")
	if Truthy(got[0]) || !Truthy(got[1]) {
		t.Fatalf("unexpected short-circuit results %v", got)
	}
}

func TestComparisons(t *testing.T) {
	got := mustRun(t, `
emit(1 < 2)
emit("a" < "b")
emit(2 == 2.0)
emit((1, 2) == (1, 2))
emit([1] != [2])
`)
	for i, v := range got {
		if !Truthy(v) {
			t.Fatalf("comparison %d should be true", i)
		}
	}
}

func TestCompareIncomparableTypes(t *testing.T) {
	_, err := run(t, `x = "a" < 1`)
	if err == nil || !strings.Contains(err.Error(), "cannot compare") {
		t.Fatalf("expected comparison error, got %v", err)
	}
}

func TestStringConcatAndInterp(t *testing.T) {
	got := mustRun(t, `
n = 3
emit("a" + "b")
emit(f"moved {n} steps to {(1, n)}")
`)
	if got[0].Data.(string) != "ab" {
		t.Fatalf("unexpected concat %v", got[0])
	}
	if got[1].Data.(string) != "moved 3 steps to (1, 3)" {
		t.Fatalf("unexpected interpolation %q", got[1].Data)
	}
}

func TestAttributeAccessFailsAtRuntime(t *testing.T) {
	_, err := run(t, "x = (1, 2)\nemit(x.row)")
	if err == nil || !strings.Contains(err.Error(), "has no attribute") {
		t.Fatalf("expected attribute error, got %v", err)
	}
}

func TestCallingNonCallable(t *testing.T) {
	_, err := run(t, "x = 3\nx()")
	if err == nil || !strings.Contains(err.Error(), "not callable") {
		t.Fatalf("expected not-callable error, got %v", err)
	}
}

func TestBreakOutsideLoop(t *testing.T) {
	_, err := run(t, "break")
	if err == nil || !strings.Contains(err.Error(), "outside a loop") {
		t.Fatalf("expected control flow error, got %v", err)
	}
}

func TestPureComputationRunsWithoutBudget(t *testing.T) {
	// The interpreter itself imposes no work bound; a long pure loop simply
	// finishes. The capability budget lives in the sandbox layer.
	got := mustRun(t, `
total = 0
for i in 100000 {
	total += 1
}
emit(total)
`)
	wantInts(t, got, 100000)
}
