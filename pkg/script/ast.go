package script

// Kind is the closed tagged set of syntax-tree variants. The validator's
// allowlist and the interpreter's dispatch both range over exactly this set,
// so a construct the interpreter could execute can never slip past
// validation unclassified.
type Kind int

const (
	KindProgram Kind = iota
	KindExprStmt
	KindAssign
	KindAugAssign
	KindIf
	KindWhile
	KindForIn
	KindFuncDef
	KindReturn
	KindBreak
	KindContinue
	KindImport
	KindCall
	KindKeywordArg
	KindName
	KindLiteral
	KindBinaryOp
	KindUnaryOp
	KindBoolOp
	KindCompare
	KindList
	KindTuple
	KindMap
	KindIndex
	KindSlice
	KindAttribute
	KindInterpString
)

var kindNames = map[Kind]string{
	KindProgram:      "Program",
	KindExprStmt:     "ExprStmt",
	KindAssign:       "Assign",
	KindAugAssign:    "AugAssign",
	KindIf:           "If",
	KindWhile:        "While",
	KindForIn:        "ForIn",
	KindFuncDef:      "FuncDef",
	KindReturn:       "Return",
	KindBreak:        "Break",
	KindContinue:     "Continue",
	KindImport:       "Import",
	KindCall:         "Call",
	KindKeywordArg:   "KeywordArg",
	KindName:         "Name",
	KindLiteral:      "Literal",
	KindBinaryOp:     "BinaryOp",
	KindUnaryOp:      "UnaryOp",
	KindBoolOp:       "BoolOp",
	KindCompare:      "Compare",
	KindList:         "List",
	KindTuple:        "Tuple",
	KindMap:          "Map",
	KindIndex:        "Index",
	KindSlice:        "Slice",
	KindAttribute:    "Attribute",
	KindInterpString: "InterpString",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Node is one syntax-tree node. Children returns every directly nested node
// so a walk can visit the whole tree without knowing concrete types.
type Node interface {
	Kind() Kind
	Line() int
	Children() []Node
}

type base struct {
	line int
}

func (b base) Line() int { return b.line }

// Program is the root: an ordered statement sequence.
type Program struct {
	base
	Stmts []Node
}

func (*Program) Kind() Kind { return KindProgram }
func (p *Program) Children() []Node { return p.Stmts }

// ExprStmt is an expression evaluated for its effect.
type ExprStmt struct {
	base
	X Node
}

func (*ExprStmt) Kind() Kind { return KindExprStmt }
func (s *ExprStmt) Children() []Node { return []Node{s.X} }

// Assign binds Value to Target (a Name or Index expression).
type Assign struct {
	base
	Target Node
	Value  Node
}

func (*Assign) Kind() Kind { return KindAssign }
func (s *Assign) Children() []Node { return []Node{s.Target, s.Value} }

// AugAssign is compound assignment on a name: x += e and friends.
type AugAssign struct {
	base
	Name  string
	Op    string
	Value Node
}

func (*AugAssign) Kind() Kind { return KindAugAssign }
func (s *AugAssign) Children() []Node { return []Node{s.Value} }

// If is a conditional branch. An elif chain parses as a nested If as the
// sole statement of Else.
type If struct {
	base
	Cond Node
	Body []Node
	Else []Node
}

func (*If) Kind() Kind { return KindIf }
func (s *If) Children() []Node {
	out := []Node{s.Cond}
	out = append(out, s.Body...)
	out = append(out, s.Else...)
	return out
}

// While is the conditional loop form.
type While struct {
	base
	Cond Node
	Body []Node
}

func (*While) Kind() Kind { return KindWhile }
func (s *While) Children() []Node {
	out := []Node{s.Cond}
	return append(out, s.Body...)
}

// ForIn is the counted loop form: an integer iterates 0..n-1, a
// list/tuple/string iterates its elements.
type ForIn struct {
	base
	Var  string
	Iter Node
	Body []Node
}

func (*ForIn) Kind() Kind { return KindForIn }
func (s *ForIn) Children() []Node {
	out := []Node{s.Iter}
	return append(out, s.Body...)
}

// Param is one function parameter, optionally defaulted.
type Param struct {
	Name    string
	Default Node
}

// FuncDef defines a script-level function with plain positional/keyword
// parameters.
type FuncDef struct {
	base
	Name   string
	Params []Param
	Body   []Node
}

func (*FuncDef) Kind() Kind { return KindFuncDef }
func (s *FuncDef) Children() []Node {
	var out []Node
	for _, p := range s.Params {
		if p.Default != nil {
			out = append(out, p.Default)
		}
	}
	return append(out, s.Body...)
}

// Return exits the enclosing function, optionally with a value.
type Return struct {
	base
	Value Node
}

func (*Return) Kind() Kind { return KindReturn }
func (s *Return) Children() []Node {
	if s.Value == nil {
		return nil
	}
	return []Node{s.Value}
}

// Break exits the enclosing loop.
type Break struct{ base }

func (*Break) Kind() Kind { return KindBreak }
func (*Break) Children() []Node { return nil }

// Continue skips to the next iteration of the enclosing loop.
type Continue struct{ base }

func (*Continue) Kind() Kind { return KindContinue }
func (*Continue) Children() []Node { return nil }

// Import parses so the validator can reject it with a precise reason.
type Import struct {
	base
	Module string
}

func (*Import) Kind() Kind { return KindImport }
func (*Import) Children() []Node { return nil }

// KeywordArg is a name=value argument in a call.
type KeywordArg struct {
	base
	Name  string
	Value Node
}

func (*KeywordArg) Kind() Kind { return KindKeywordArg }
func (a *KeywordArg) Children() []Node { return []Node{a.Value} }

// Call invokes Fun with positional and keyword arguments.
type Call struct {
	base
	Fun    Node
	Args   []Node
	Kwargs []*KeywordArg
}

func (*Call) Kind() Kind { return KindCall }
func (c *Call) Children() []Node {
	out := []Node{c.Fun}
	out = append(out, c.Args...)
	for _, k := range c.Kwargs {
		out = append(out, k)
	}
	return out
}

// Name is a bare identifier reference.
type Name struct {
	base
	Ident string
}

func (*Name) Kind() Kind { return KindName }
func (*Name) Children() []Node { return nil }

// Literal holds int64, float64, string, bool or nil (the none literal).
type Literal struct {
	base
	Value any
}

func (*Literal) Kind() Kind { return KindLiteral }
func (*Literal) Children() []Node { return nil }

// BinaryOp is an arithmetic operation: + - * / %.
type BinaryOp struct {
	base
	Op   string
	L, R Node
}

func (*BinaryOp) Kind() Kind { return KindBinaryOp }
func (b *BinaryOp) Children() []Node { return []Node{b.L, b.R} }

// UnaryOp is negation or logical not.
type UnaryOp struct {
	base
	Op string
	X  Node
}

func (*UnaryOp) Kind() Kind { return KindUnaryOp }
func (u *UnaryOp) Children() []Node { return []Node{u.X} }

// BoolOp is short-circuiting and/or.
type BoolOp struct {
	base
	Op   string
	L, R Node
}

func (*BoolOp) Kind() Kind { return KindBoolOp }
func (b *BoolOp) Children() []Node { return []Node{b.L, b.R} }

// Compare is a single, non-associative comparison.
type Compare struct {
	base
	Op   string
	L, R Node
}

func (*Compare) Kind() Kind { return KindCompare }
func (c *Compare) Children() []Node { return []Node{c.L, c.R} }

// List is a list literal.
type List struct {
	base
	Elems []Node
}

func (*List) Kind() Kind { return KindList }
func (l *List) Children() []Node { return l.Elems }

// Tuple is a tuple literal.
type Tuple struct {
	base
	Elems []Node
}

func (*Tuple) Kind() Kind { return KindTuple }
func (t *Tuple) Children() []Node { return t.Elems }

// Map is a mapping literal with expression keys.
type Map struct {
	base
	Keys   []Node
	Values []Node
}

func (*Map) Kind() Kind { return KindMap }
func (m *Map) Children() []Node {
	out := make([]Node, 0, len(m.Keys)*2)
	for i := range m.Keys {
		out = append(out, m.Keys[i], m.Values[i])
	}
	return out
}

// Index is subscript access: x[i].
type Index struct {
	base
	X     Node
	Index Node
}

func (*Index) Kind() Kind { return KindIndex }
func (i *Index) Children() []Node { return []Node{i.X, i.Index} }

// Slice is range subscript access: x[lo:hi], either bound optional.
type Slice struct {
	base
	X  Node
	Lo Node
	Hi Node
}

func (*Slice) Kind() Kind { return KindSlice }
func (s *Slice) Children() []Node {
	out := []Node{s.X}
	if s.Lo != nil {
		out = append(out, s.Lo)
	}
	if s.Hi != nil {
		out = append(out, s.Hi)
	}
	return out
}

// Attribute is dotted access: x.name.
type Attribute struct {
	base
	X    Node
	Name string
}

func (*Attribute) Kind() Kind { return KindAttribute }
func (a *Attribute) Children() []Node { return []Node{a.X} }

// InterpString is an f-string: literal string parts interleaved with
// embedded expressions.
type InterpString struct {
	base
	Parts []Node
}

func (*InterpString) Kind() Kind { return KindInterpString }
func (s *InterpString) Children() []Node { return s.Parts }

// Walk visits n and every node beneath it in preorder, stopping at the
// first error.
func Walk(n Node, visit func(Node) error) error {
	if err := visit(n); err != nil {
		return err
	}
	for _, child := range n.Children() {
		if err := Walk(child, visit); err != nil {
			return err
		}
	}
	return nil
}
