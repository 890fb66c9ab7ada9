package script

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse turns source text into a syntax tree or a *SyntaxError.
func Parse(source string) (*Program, error) {
	toks, err := scan(source)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	return p.parseProgram()
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) advance() token {
	tok := p.toks[p.pos]
	if tok.kind != tokEOF {
		p.pos++
	}
	return tok
}

func (p *parser) match(kind tokenKind) bool {
	if p.peek().kind == kind {
		p.advance()
		return true
	}
	return false
}

func (p *parser) expect(kind tokenKind, what string) (token, error) {
	tok := p.peek()
	if tok.kind != kind {
		return token{}, &SyntaxError{Line: tok.line, Msg: fmt.Sprintf("expected %s, found %s", what, tok.describe())}
	}
	return p.advance(), nil
}

func (p *parser) skipSeparators() {
	for p.peek().kind == tokNewline || p.peek().kind == tokSemicolon {
		p.advance()
	}
}

func (p *parser) parseProgram() (*Program, error) {
	prog := &Program{base: base{line: 1}}
	p.skipSeparators()
	for p.peek().kind != tokEOF {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		prog.Stmts = append(prog.Stmts, stmt)
		if err := p.endStatement(); err != nil {
			return nil, err
		}
		p.skipSeparators()
	}
	return prog, nil
}

// endStatement requires a separator (or a block/script boundary) after a
// statement.
func (p *parser) endStatement() error {
	switch p.peek().kind {
	case tokNewline, tokSemicolon:
		p.advance()
		return nil
	case tokEOF, tokRBrace:
		return nil
	default:
		return &SyntaxError{Line: p.peek().line, Msg: fmt.Sprintf("unexpected %s after statement", p.peek().describe())}
	}
}

func (p *parser) parseStatement() (Node, error) {
	tok := p.peek()
	switch tok.kind {
	case tokIf:
		return p.parseIf()
	case tokWhile:
		return p.parseWhile()
	case tokFor:
		return p.parseFor()
	case tokDef:
		return p.parseFuncDef()
	case tokReturn:
		return p.parseReturn()
	case tokBreak:
		p.advance()
		return &Break{base: base{line: tok.line}}, nil
	case tokContinue:
		p.advance()
		return &Continue{base: base{line: tok.line}}, nil
	case tokImport:
		return p.parseImport()
	default:
		return p.parseSimpleStatement()
	}
}

func (p *parser) parseSimpleStatement() (Node, error) {
	line := p.peek().line
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	switch p.peek().kind {
	case tokAssign:
		p.advance()
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		switch expr.Kind() {
		case KindName, KindIndex, KindAttribute:
			return &Assign{base: base{line: line}, Target: expr, Value: value}, nil
		default:
			return nil, &SyntaxError{Line: line, Msg: "invalid assignment target"}
		}
	case tokPlusEq, tokMinusEq, tokStarEq, tokSlashEq, tokPercentEq:
		op := p.advance()
		name, ok := expr.(*Name)
		if !ok {
			return nil, &SyntaxError{Line: line, Msg: fmt.Sprintf("%s requires a plain name on the left", op.text)}
		}
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &AugAssign{base: base{line: line}, Name: name.Ident, Op: strings.TrimSuffix(op.text, "="), Value: value}, nil
	default:
		return &ExprStmt{base: base{line: line}, X: expr}, nil
	}
}

func (p *parser) parseBlock() ([]Node, error) {
	if _, err := p.expect(tokLBrace, "'{'"); err != nil {
		return nil, err
	}
	var stmts []Node
	p.skipSeparators()
	for p.peek().kind != tokRBrace {
		if p.peek().kind == tokEOF {
			return nil, &SyntaxError{Line: p.peek().line, Msg: "unexpected end of script, expected '}'"}
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
		if err := p.endStatement(); err != nil {
			return nil, err
		}
		p.skipSeparators()
	}
	p.advance() // '}'
	return stmts, nil
}

func (p *parser) parseIf() (Node, error) {
	line := p.advance().line // if / elif
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	stmt := &If{base: base{line: line}, Cond: cond, Body: body}

	switch p.peek().kind {
	case tokElif:
		nested, err := p.parseIf()
		if err != nil {
			return nil, err
		}
		stmt.Else = []Node{nested}
	case tokElse:
		p.advance()
		stmt.Else, err = p.parseBlock()
		if err != nil {
			return nil, err
		}
	}
	return stmt, nil
}

func (p *parser) parseWhile() (Node, error) {
	line := p.advance().line
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &While{base: base{line: line}, Cond: cond, Body: body}, nil
}

func (p *parser) parseFor() (Node, error) {
	line := p.advance().line
	name, err := p.expect(tokIdent, "loop variable")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokIn, "'in'"); err != nil {
		return nil, err
	}
	iter, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ForIn{base: base{line: line}, Var: name.text, Iter: iter, Body: body}, nil
}

func (p *parser) parseFuncDef() (Node, error) {
	line := p.advance().line
	name, err := p.expect(tokIdent, "function name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokLParen, "'('"); err != nil {
		return nil, err
	}

	var params []Param
	seenDefault := false
	for p.peek().kind != tokRParen {
		pname, err := p.expect(tokIdent, "parameter name")
		if err != nil {
			return nil, err
		}
		param := Param{Name: pname.text}
		if p.match(tokAssign) {
			param.Default, err = p.parseExpr()
			if err != nil {
				return nil, err
			}
			seenDefault = true
		} else if seenDefault {
			return nil, &SyntaxError{Line: pname.line, Msg: "parameter without default follows defaulted parameter"}
		}
		for _, existing := range params {
			if existing.Name == param.Name {
				return nil, &SyntaxError{Line: pname.line, Msg: fmt.Sprintf("duplicate parameter %q", param.Name)}
			}
		}
		params = append(params, param)
		if !p.match(tokComma) {
			break
		}
	}
	if _, err := p.expect(tokRParen, "')'"); err != nil {
		return nil, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &FuncDef{base: base{line: line}, Name: name.text, Params: params, Body: body}, nil
}

func (p *parser) parseReturn() (Node, error) {
	line := p.advance().line
	stmt := &Return{base: base{line: line}}
	switch p.peek().kind {
	case tokNewline, tokSemicolon, tokRBrace, tokEOF:
		return stmt, nil
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	stmt.Value = value
	return stmt, nil
}

func (p *parser) parseImport() (Node, error) {
	line := p.advance().line
	name, err := p.expect(tokIdent, "module name")
	if err != nil {
		return nil, err
	}
	module := name.text
	for p.match(tokDot) {
		part, err := p.expect(tokIdent, "module name")
		if err != nil {
			return nil, err
		}
		module += "." + part.text
	}
	return &Import{base: base{line: line}, Module: module}, nil
}

// Expressions, loosest binding first.

func (p *parser) parseExpr() (Node, error) { return p.parseOr() }

func (p *parser) parseOr() (Node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokOr {
		line := p.advance().line
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &BoolOp{base: base{line: line}, Op: "or", L: left, R: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (Node, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokAnd {
		line := p.advance().line
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = &BoolOp{base: base{line: line}, Op: "and", L: left, R: right}
	}
	return left, nil
}

func (p *parser) parseNot() (Node, error) {
	if p.peek().kind == tokNot {
		line := p.advance().line
		x, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &UnaryOp{base: base{line: line}, Op: "not", X: x}, nil
	}
	return p.parseComparison()
}

func (p *parser) parseComparison() (Node, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	switch p.peek().kind {
	case tokEq, tokNe, tokLt, tokLe, tokGt, tokGe:
		op := p.advance()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		return &Compare{base: base{line: op.line}, Op: op.text, L: left, R: right}, nil
	}
	return left, nil
}

func (p *parser) parseAdditive() (Node, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokPlus || p.peek().kind == tokMinus {
		op := p.advance()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &BinaryOp{base: base{line: op.line}, Op: op.text, L: left, R: right}
	}
	return left, nil
}

func (p *parser) parseMultiplicative() (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokStar || p.peek().kind == tokSlash || p.peek().kind == tokPercent {
		op := p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &BinaryOp{base: base{line: op.line}, Op: op.text, L: left, R: right}
	}
	return left, nil
}

func (p *parser) parseUnary() (Node, error) {
	if p.peek().kind == tokMinus {
		line := p.advance().line
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryOp{base: base{line: line}, Op: "-", X: x}, nil
	}
	return p.parsePostfix()
}

func (p *parser) parsePostfix() (Node, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek().kind {
		case tokLParen:
			expr, err = p.parseCall(expr)
		case tokLBracket:
			expr, err = p.parseSubscript(expr)
		case tokDot:
			line := p.advance().line
			name, nerr := p.expect(tokIdent, "attribute name")
			if nerr != nil {
				return nil, nerr
			}
			expr = &Attribute{base: base{line: line}, X: expr, Name: name.text}
		default:
			return expr, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

func (p *parser) parseCall(fun Node) (Node, error) {
	line := p.advance().line // '('
	call := &Call{base: base{line: line}, Fun: fun}
	for p.peek().kind != tokRParen {
		// name=value is a keyword argument; anything else positional.
		if p.peek().kind == tokIdent && p.toks[p.pos+1].kind == tokAssign {
			name := p.advance()
			p.advance() // '='
			value, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			call.Kwargs = append(call.Kwargs, &KeywordArg{base: base{line: name.line}, Name: name.text, Value: value})
		} else {
			if len(call.Kwargs) > 0 {
				return nil, &SyntaxError{Line: p.peek().line, Msg: "positional argument follows keyword argument"}
			}
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			call.Args = append(call.Args, arg)
		}
		if !p.match(tokComma) {
			break
		}
	}
	if _, err := p.expect(tokRParen, "')'"); err != nil {
		return nil, err
	}
	return call, nil
}

func (p *parser) parseSubscript(x Node) (Node, error) {
	line := p.advance().line // '['
	var lo, hi Node
	var err error
	isSlice := false

	if p.peek().kind != tokColon {
		lo, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}
	if p.match(tokColon) {
		isSlice = true
		if p.peek().kind != tokRBracket {
			hi, err = p.parseExpr()
			if err != nil {
				return nil, err
			}
		}
	}
	if _, err := p.expect(tokRBracket, "']'"); err != nil {
		return nil, err
	}

	if isSlice {
		return &Slice{base: base{line: line}, X: x, Lo: lo, Hi: hi}, nil
	}
	if lo == nil {
		return nil, &SyntaxError{Line: line, Msg: "empty subscript"}
	}
	return &Index{base: base{line: line}, X: x, Index: lo}, nil
}

func (p *parser) parsePrimary() (Node, error) {
	tok := p.peek()
	switch tok.kind {
	case tokInt:
		p.advance()
		n, err := strconv.ParseInt(tok.text, 10, 64)
		if err != nil {
			return nil, &SyntaxError{Line: tok.line, Msg: fmt.Sprintf("integer literal %s out of range", tok.text)}
		}
		return &Literal{base: base{line: tok.line}, Value: n}, nil
	case tokFloat:
		p.advance()
		f, err := strconv.ParseFloat(tok.text, 64)
		if err != nil {
			return nil, &SyntaxError{Line: tok.line, Msg: fmt.Sprintf("bad number literal %s", tok.text)}
		}
		return &Literal{base: base{line: tok.line}, Value: f}, nil
	case tokString:
		p.advance()
		return &Literal{base: base{line: tok.line}, Value: tok.text}, nil
	case tokFString:
		p.advance()
		return p.parseInterpString(tok)
	case tokTrue:
		p.advance()
		return &Literal{base: base{line: tok.line}, Value: true}, nil
	case tokFalse:
		p.advance()
		return &Literal{base: base{line: tok.line}, Value: false}, nil
	case tokNone:
		p.advance()
		return &Literal{base: base{line: tok.line}, Value: nil}, nil
	case tokIdent:
		p.advance()
		return &Name{base: base{line: tok.line}, Ident: tok.text}, nil
	case tokLParen:
		return p.parseParenExpr()
	case tokLBracket:
		return p.parseListLiteral()
	case tokLBrace:
		return p.parseMapLiteral()
	default:
		return nil, &SyntaxError{Line: tok.line, Msg: fmt.Sprintf("unexpected %s", tok.describe())}
	}
}

// parseParenExpr handles grouping, the empty tuple and tuple literals.
func (p *parser) parseParenExpr() (Node, error) {
	line := p.advance().line // '('
	if p.match(tokRParen) {
		return &Tuple{base: base{line: line}}, nil
	}
	first, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if !p.match(tokComma) {
		if _, err := p.expect(tokRParen, "')'"); err != nil {
			return nil, err
		}
		return first, nil
	}
	tuple := &Tuple{base: base{line: line}, Elems: []Node{first}}
	for p.peek().kind != tokRParen {
		elem, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		tuple.Elems = append(tuple.Elems, elem)
		if !p.match(tokComma) {
			break
		}
	}
	if _, err := p.expect(tokRParen, "')'"); err != nil {
		return nil, err
	}
	return tuple, nil
}

func (p *parser) parseListLiteral() (Node, error) {
	line := p.advance().line // '['
	list := &List{base: base{line: line}}
	for p.peek().kind != tokRBracket {
		elem, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		list.Elems = append(list.Elems, elem)
		if !p.match(tokComma) {
			break
		}
	}
	if _, err := p.expect(tokRBracket, "']'"); err != nil {
		return nil, err
	}
	return list, nil
}

func (p *parser) parseMapLiteral() (Node, error) {
	line := p.advance().line // '{'
	m := &Map{base: base{line: line}}
	for p.peek().kind != tokRBrace {
		key, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokColon, "':'"); err != nil {
			return nil, err
		}
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		m.Keys = append(m.Keys, key)
		m.Values = append(m.Values, value)
		if !p.match(tokComma) {
			break
		}
	}
	if _, err := p.expect(tokRBrace, "'}'"); err != nil {
		return nil, err
	}
	return m, nil
}

// parseInterpString splits an f-string body into literal parts and embedded
// expressions. Doubled braces escape literal braces.
func (p *parser) parseInterpString(tok token) (Node, error) {
	node := &InterpString{base: base{line: tok.line}}
	runes := []rune(tok.text)
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			node.Parts = append(node.Parts, &Literal{base: base{line: tok.line}, Value: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		switch ch {
		case '{':
			if i+1 < len(runes) && runes[i+1] == '{' {
				lit.WriteRune('{')
				i++
				continue
			}
			depth := 1
			j := i + 1
			for j < len(runes) && depth > 0 {
				switch runes[j] {
				case '{':
					depth++
				case '}':
					depth--
				}
				j++
			}
			if depth != 0 {
				return nil, &SyntaxError{Line: tok.line, Msg: "unterminated interpolation in f-string"}
			}
			exprSrc := string(runes[i+1 : j-1])
			if strings.TrimSpace(exprSrc) == "" {
				return nil, &SyntaxError{Line: tok.line, Msg: "empty interpolation in f-string"}
			}
			expr, err := parseEmbeddedExpr(exprSrc, tok.line)
			if err != nil {
				return nil, err
			}
			flush()
			node.Parts = append(node.Parts, expr)
			i = j - 1
		case '}':
			if i+1 < len(runes) && runes[i+1] == '}' {
				lit.WriteRune('}')
				i++
				continue
			}
			return nil, &SyntaxError{Line: tok.line, Msg: "single '}' in f-string"}
		default:
			lit.WriteRune(ch)
		}
	}
	flush()
	return node, nil
}

func parseEmbeddedExpr(source string, line int) (Node, error) {
	toks, err := scan(source)
	if err != nil {
		return nil, &SyntaxError{Line: line, Msg: fmt.Sprintf("bad interpolation: %v", err)}
	}
	sub := &parser{toks: toks}
	expr, err := sub.parseExpr()
	if err != nil {
		return nil, &SyntaxError{Line: line, Msg: fmt.Sprintf("bad interpolation: %v", err)}
	}
	sub.skipSeparators()
	if sub.peek().kind != tokEOF {
		return nil, &SyntaxError{Line: line, Msg: "bad interpolation: trailing tokens"}
	}
	return expr, nil
}
