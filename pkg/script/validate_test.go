package script

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateAcceptsFullVocabulary(t *testing.T) {
	src := `
total = 0
names = ["a", "b"]
lookup = {"a": 1}
def walk(times=1) {
	for i in times {
		if scan() == "WALL" {
			right()
		} elif at_goal() {
			return true
		} else {
			ok = forward(1)
			if not ok {
				break
			}
		}
	}
	return false
}
while not walk(2) {
	total += 1
	if total > 10 {
		break
	}
}
msg = f"done at {get_position()}"
part = names[0:1]
`
	if err := Validate(src); err != nil {
		t.Fatalf("expected acceptance, got %v", err)
	}
}

func TestValidateRejectsSyntaxError(t *testing.T) {
	err := Validate("if { }")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(verr.Reason, "syntax error") {
		t.Fatalf("reason should carry the syntax error: %v", verr)
	}
}

func TestValidateRejectsImports(t *testing.T) {
	for _, src := range []string{"import os", "forward(1)\nimport sys.path", "import math; forward(1)"} {
		err := Validate(src)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("%q: expected validation error, got %v", src, err)
		}
		if !strings.Contains(verr.Reason, "imports are not allowed") {
			t.Fatalf("%q: unexpected reason %q", src, verr.Reason)
		}
	}
}

func TestValidateRejectsForbiddenNames(t *testing.T) {
	cases := map[string]string{
		`eval`:                 "eval",
		`x = eval`:             "eval",
		`y = 1 + open`:         "open",
		`exec()`:               "exec",
		`getattr(x, "y")`:      "getattr",
		`z = [1, __import__]`:  "__import__",
		`if compile { left() }`: "compile",
	}
	for src, name := range cases {
		err := Validate(src)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("%q: expected validation error, got %v", src, err)
		}
		if !strings.Contains(verr.Reason, "forbidden name: "+name) {
			t.Fatalf("%q: unexpected reason %q", src, verr.Reason)
		}
	}
}

func TestValidateRejectsDunderAttributeAccess(t *testing.T) {
	err := Validate("x = __secrets.value")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(verr.Reason, "access to __secrets is forbidden") {
		t.Fatalf("unexpected reason %q", verr.Reason)
	}
}

func TestValidateAllowsPlainAttributeAccess(t *testing.T) {
	// Statically legal; fails at runtime because script values have no
	// attributes.
	if err := Validate("x = pos.row"); err != nil {
		t.Fatalf("plain attribute access should validate, got %v", err)
	}
}

func TestValidateFirstViolationWins(t *testing.T) {
	err := Validate("x = eval\nimport os")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(verr.Reason, "forbidden name: eval") {
		t.Fatalf("first violation should be reported, got %q", verr.Reason)
	}
}

// unknownNode stands in for a construct outside the closed set; the walk
// must reject it by name rather than fall through.
type unknownNode struct{ base }

func (*unknownNode) Kind() Kind { return Kind(999) }
func (*unknownNode) Children() []Node { return nil }

func TestValidateDefaultDeny(t *testing.T) {
	prog := &Program{Stmts: []Node{&unknownNode{}}}
	err := ValidateTree(prog)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(verr.Reason, "forbidden construct") {
		t.Fatalf("unexpected reason %q", verr.Reason)
	}
}
