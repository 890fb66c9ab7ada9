package script

import (
	"fmt"
	"strings"
	"unicode"
)

type scanner struct {
	src   []rune
	pos   int
	line  int
	depth int // open parens/brackets; newlines inside are insignificant
	toks  []token
}

func scan(source string) ([]token, error) {
	s := &scanner{src: []rune(source), line: 1}
	for {
		tok, err := s.next()
		if err != nil {
			return nil, err
		}
		if tok.kind == tokNewline && (len(s.toks) == 0 || s.toks[len(s.toks)-1].kind == tokNewline) {
			continue // collapse blank lines
		}
		s.toks = append(s.toks, tok)
		if tok.kind == tokEOF {
			return s.toks, nil
		}
	}
}

func (s *scanner) next() (token, error) {
	for s.pos < len(s.src) {
		ch := s.src[s.pos]
		switch {
		case ch == '\n':
			s.pos++
			line := s.line
			s.line++
			if s.depth > 0 {
				continue
			}
			return token{kind: tokNewline, line: line}, nil
		case ch == ' ' || ch == '\t' || ch == '\r':
			s.pos++
		case ch == '#':
			for s.pos < len(s.src) && s.src[s.pos] != '\n' {
				s.pos++
			}
		default:
			return s.scanToken()
		}
	}
	return token{kind: tokEOF, line: s.line}, nil
}

func (s *scanner) scanToken() (token, error) {
	ch := s.src[s.pos]

	if unicode.IsLetter(ch) || ch == '_' {
		return s.scanIdent()
	}
	if unicode.IsDigit(ch) {
		return s.scanNumber()
	}
	if ch == '"' {
		return s.scanString(false)
	}

	line := s.line
	two := ""
	if s.pos+1 < len(s.src) {
		two = string(s.src[s.pos : s.pos+2])
	}
	switch two {
	case "==", "!=", "<=", ">=", "+=", "-=", "*=", "/=", "%=":
		s.pos += 2
		kinds := map[string]tokenKind{
			"==": tokEq, "!=": tokNe, "<=": tokLe, ">=": tokGe,
			"+=": tokPlusEq, "-=": tokMinusEq, "*=": tokStarEq,
			"/=": tokSlashEq, "%=": tokPercentEq,
		}
		return token{kind: kinds[two], text: two, line: line}, nil
	}

	single := map[rune]tokenKind{
		'+': tokPlus, '-': tokMinus, '*': tokStar, '/': tokSlash, '%': tokPercent,
		'=': tokAssign, '<': tokLt, '>': tokGt,
		'(': tokLParen, ')': tokRParen, '[': tokLBracket, ']': tokRBracket,
		'{': tokLBrace, '}': tokRBrace,
		',': tokComma, ':': tokColon, '.': tokDot, ';': tokSemicolon,
	}
	kind, ok := single[ch]
	if !ok {
		return token{}, &SyntaxError{Line: line, Msg: fmt.Sprintf("unexpected character %q", string(ch))}
	}
	switch ch {
	case '(', '[':
		s.depth++
	case ')', ']':
		if s.depth > 0 {
			s.depth--
		}
	}
	s.pos++
	return token{kind: kind, text: string(ch), line: line}, nil
}

func (s *scanner) scanIdent() (token, error) {
	start := s.pos
	line := s.line
	for s.pos < len(s.src) && (unicode.IsLetter(s.src[s.pos]) || unicode.IsDigit(s.src[s.pos]) || s.src[s.pos] == '_') {
		s.pos++
	}
	text := string(s.src[start:s.pos])

	// f-strings: an f immediately followed by an opening quote.
	if text == "f" && s.pos < len(s.src) && s.src[s.pos] == '"' {
		return s.scanString(true)
	}
	if kind, ok := keywords[text]; ok {
		return token{kind: kind, text: text, line: line}, nil
	}
	return token{kind: tokIdent, text: text, line: line}, nil
}

func (s *scanner) scanNumber() (token, error) {
	start := s.pos
	line := s.line
	for s.pos < len(s.src) && unicode.IsDigit(s.src[s.pos]) {
		s.pos++
	}
	isFloat := false
	if s.pos+1 < len(s.src) && s.src[s.pos] == '.' && unicode.IsDigit(s.src[s.pos+1]) {
		isFloat = true
		s.pos++
		for s.pos < len(s.src) && unicode.IsDigit(s.src[s.pos]) {
			s.pos++
		}
	}
	kind := tokInt
	if isFloat {
		kind = tokFloat
	}
	return token{kind: kind, text: string(s.src[start:s.pos]), line: line}, nil
}

// scanString consumes a double-quoted string. Interpolation braces inside
// f-strings are left untouched here; the parser splits them.
func (s *scanner) scanString(interpolated bool) (token, error) {
	line := s.line
	s.pos++ // opening quote
	var b strings.Builder
	for {
		if s.pos >= len(s.src) || s.src[s.pos] == '\n' {
			return token{}, &SyntaxError{Line: line, Msg: "unterminated string"}
		}
		ch := s.src[s.pos]
		if ch == '"' {
			s.pos++
			kind := tokString
			if interpolated {
				kind = tokFString
			}
			return token{kind: kind, text: b.String(), line: line}, nil
		}
		if ch == '\\' {
			if s.pos+1 >= len(s.src) {
				return token{}, &SyntaxError{Line: line, Msg: "unterminated string"}
			}
			esc := s.src[s.pos+1]
			switch esc {
			case 'n':
				b.WriteRune('\n')
			case 't':
				b.WriteRune('\t')
			case '\\':
				b.WriteRune('\\')
			case '"':
				b.WriteRune('"')
			default:
				return token{}, &SyntaxError{Line: line, Msg: fmt.Sprintf("unknown escape \\%s", string(esc))}
			}
			s.pos += 2
			continue
		}
		b.WriteRune(ch)
		s.pos++
	}
}
