package script

import (
	"fmt"
	"strings"
)

// allowedKinds is the closed allowlist of syntax the sandbox accepts. A kind
// missing from this set is rejected by name: default-deny, not default-allow.
var allowedKinds = map[Kind]bool{
	KindProgram:      true,
	KindExprStmt:     true,
	KindAssign:       true,
	KindAugAssign:    true,
	KindIf:           true,
	KindWhile:        true,
	KindForIn:        true,
	KindFuncDef:      true,
	KindReturn:       true,
	KindBreak:        true,
	KindContinue:     true,
	KindCall:         true,
	KindKeywordArg:   true,
	KindName:         true,
	KindLiteral:      true,
	KindBinaryOp:     true,
	KindUnaryOp:      true,
	KindBoolOp:       true,
	KindCompare:      true,
	KindList:         true,
	KindTuple:        true,
	KindMap:          true,
	KindIndex:        true,
	KindSlice:        true,
	KindAttribute:    true,
	KindInterpString: true,
}

// forbiddenNames are identifiers that suggest dynamic evaluation, dynamic
// import, introspection or raw I/O. They are rejected wherever they appear,
// even inside otherwise legal expressions.
var forbiddenNames = map[string]bool{
	"eval":         true,
	"exec":         true,
	"compile":      true,
	"open":         true,
	"input":        true,
	"raw_input":    true,
	"__import__":   true,
	"__builtins__": true,
	"globals":      true,
	"locals":       true,
	"vars":         true,
	"dir":          true,
	"hasattr":      true,
	"getattr":      true,
	"setattr":      true,
	"delattr":      true,
}

// Validate parses source and checks every node of the tree against the
// closed grammar and vocabulary. It returns nil if the script may run, or a
// *ValidationError naming the first violation. Nothing is executed.
func Validate(source string) error {
	prog, err := Parse(source)
	if err != nil {
		return &ValidationError{Reason: err.Error()}
	}
	return ValidateTree(prog)
}

// ValidateTree checks an already-parsed tree. The walk visits every node and
// stops at the first violation.
func ValidateTree(prog *Program) error {
	return Walk(prog, checkNode)
}

func checkNode(n Node) error {
	if n.Kind() == KindImport {
		return &ValidationError{Line: n.Line(), Reason: "imports are not allowed"}
	}
	if !allowedKinds[n.Kind()] {
		return &ValidationError{Line: n.Line(), Reason: fmt.Sprintf("forbidden construct: %s", n.Kind())}
	}

	switch node := n.(type) {
	case *Name:
		if forbiddenNames[node.Ident] {
			return &ValidationError{Line: n.Line(), Reason: fmt.Sprintf("forbidden name: %s", node.Ident)}
		}
	case *Attribute:
		if root, ok := node.X.(*Name); ok && strings.HasPrefix(root.Ident, "__") {
			return &ValidationError{Line: n.Line(), Reason: fmt.Sprintf("access to %s is forbidden", root.Ident)}
		}
	}
	return nil
}
