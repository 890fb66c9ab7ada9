package script

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNewline
	tokIdent
	tokInt
	tokFloat
	tokString
	tokFString

	tokIf
	tokElif
	tokElse
	tokWhile
	tokFor
	tokIn
	tokDef
	tokReturn
	tokBreak
	tokContinue
	tokImport
	tokAnd
	tokOr
	tokNot
	tokTrue
	tokFalse
	tokNone

	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokPercent
	tokAssign
	tokPlusEq
	tokMinusEq
	tokStarEq
	tokSlashEq
	tokPercentEq
	tokEq
	tokNe
	tokLt
	tokLe
	tokGt
	tokGe
	tokLParen
	tokRParen
	tokLBracket
	tokRBracket
	tokLBrace
	tokRBrace
	tokComma
	tokColon
	tokDot
	tokSemicolon
)

var keywords = map[string]tokenKind{
	"if":       tokIf,
	"elif":     tokElif,
	"else":     tokElse,
	"while":    tokWhile,
	"for":      tokFor,
	"in":       tokIn,
	"def":      tokDef,
	"return":   tokReturn,
	"break":    tokBreak,
	"continue": tokContinue,
	"import":   tokImport,
	"and":      tokAnd,
	"or":       tokOr,
	"not":      tokNot,
	"true":     tokTrue,
	"false":    tokFalse,
	"none":     tokNone,
}

type token struct {
	kind tokenKind
	text string
	line int
}

func (t token) describe() string {
	switch t.kind {
	case tokEOF:
		return "end of script"
	case tokNewline:
		return "end of line"
	default:
		return "'" + t.text + "'"
	}
}
