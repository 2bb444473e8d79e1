package parser

import (
	"fmt"
	"strconv"

	"github.com/SPSarkar88/NovaLang-sub001/ast"
	"github.com/SPSarkar88/NovaLang-sub001/token"
)

// parseExpression is the entry point for any expression context; NovaLang
// has no comma operator, so this is simply the lowest precedence level,
// assignment (spec.md §4.2 precedence table, level 1).
func (p *Parser) parseExpression() ast.Expression { return p.parseAssignment() }

var assignOps = map[token.Kind]string{
	token.ASSIGN:         "=",
	token.PLUS_ASSIGN:    "+=",
	token.MINUS_ASSIGN:   "-=",
	token.STAR_ASSIGN:    "*=",
	token.SLASH_ASSIGN:   "/=",
	token.PERCENT_ASSIGN: "%=",
}

func (p *Parser) parseAssignment() ast.Expression {
	left := p.parseConditional()

	op, isAssign := assignOps[p.current().Kind]
	if !isAssign {
		return left
	}
	p.advance()
	value := p.parseAssignment() // right-associative

	if op == "=" {
		switch left.(type) {
		case *ast.ArrayExpr, *ast.ObjectExpr:
			pattern := p.exprToPattern(left)
			return &ast.AssignmentExpr{Op: op, Pattern: pattern, Value: value, Rng: token.Range{Start: left.Range().Start, End: value.Range().End}}
		}
	}
	if !isAssignable(left) {
		p.fail("invalid assignment target")
	}
	return &ast.AssignmentExpr{Op: op, Target: left, Value: value, Rng: token.Range{Start: left.Range().Start, End: value.Range().End}}
}

func isAssignable(e ast.Expression) bool {
	switch e.(type) {
	case *ast.Identifier, *ast.MemberExpr:
		return true
	default:
		return false
	}
}

func (p *Parser) parseConditional() ast.Expression {
	test := p.parseNullish()
	if !p.match(token.QUESTION) {
		return test
	}
	then := p.parseAssignment()
	p.consume(token.COLON, "expected ':' in conditional expression")
	elseExpr := p.parseAssignment()
	return &ast.ConditionalExpr{Test: test, Then: then, Else: elseExpr, Rng: token.Range{Start: test.Range().Start, End: elseExpr.Range().End}}
}

func (p *Parser) parseNullish() ast.Expression {
	left := p.parseLogicalOr()
	for p.match(token.NULLISH) {
		right := p.parseLogicalOr()
		left = &ast.LogicalExpr{Op: "??", Left: left, Right: right, Rng: token.Range{Start: left.Range().Start, End: right.Range().End}}
	}
	return left
}

func (p *Parser) parseLogicalOr() ast.Expression {
	left := p.parseLogicalAnd()
	for p.match(token.OR_OR) {
		right := p.parseLogicalAnd()
		left = &ast.LogicalExpr{Op: "||", Left: left, Right: right, Rng: token.Range{Start: left.Range().Start, End: right.Range().End}}
	}
	return left
}

func (p *Parser) parseLogicalAnd() ast.Expression {
	left := p.parseEquality()
	for p.match(token.AND_AND) {
		right := p.parseEquality()
		left = &ast.LogicalExpr{Op: "&&", Left: left, Right: right, Rng: token.Range{Start: left.Range().Start, End: right.Range().End}}
	}
	return left
}

func (p *Parser) parseEquality() ast.Expression {
	left := p.parseRelational()
	for {
		var op string
		switch p.current().Kind {
		case token.EQ:
			op = "=="
		case token.NEQ:
			op = "!="
		case token.EQ_EQ_EQ:
			op = "==="
		case token.NEQ_EQ:
			op = "!=="
		default:
			return left
		}
		p.advance()
		right := p.parseRelational()
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right, Rng: token.Range{Start: left.Range().Start, End: right.Range().End}}
	}
}

func (p *Parser) parseRelational() ast.Expression {
	left := p.parseAdditive()
	for {
		var op string
		switch p.current().Kind {
		case token.LT:
			op = "<"
		case token.LTE:
			op = "<="
		case token.GT:
			op = ">"
		case token.GTE:
			op = ">="
		default:
			return left
		}
		p.advance()
		right := p.parseAdditive()
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right, Rng: token.Range{Start: left.Range().Start, End: right.Range().End}}
	}
}

func (p *Parser) parseAdditive() ast.Expression {
	left := p.parseMultiplicative()
	for {
		var op string
		switch p.current().Kind {
		case token.PLUS:
			op = "+"
		case token.MINUS:
			op = "-"
		default:
			return left
		}
		p.advance()
		right := p.parseMultiplicative()
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right, Rng: token.Range{Start: left.Range().Start, End: right.Range().End}}
	}
}

func (p *Parser) parseMultiplicative() ast.Expression {
	left := p.parseExponent()
	for {
		var op string
		switch p.current().Kind {
		case token.STAR:
			op = "*"
		case token.SLASH:
			op = "/"
		case token.PERCENT:
			op = "%"
		default:
			return left
		}
		p.advance()
		right := p.parseExponent()
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right, Rng: token.Range{Start: left.Range().Start, End: right.Range().End}}
	}
}

// parseExponent is right-associative: 2 ** 3 ** 2 == 2 ** (3 ** 2).
func (p *Parser) parseExponent() ast.Expression {
	left := p.parseUnary()
	if p.match(token.STAR_STAR) {
		right := p.parseExponent()
		return &ast.BinaryExpr{Op: "**", Left: left, Right: right, Rng: token.Range{Start: left.Range().Start, End: right.Range().End}}
	}
	return left
}

func (p *Parser) parseUnary() ast.Expression {
	var op string
	switch p.current().Kind {
	case token.BANG:
		op = "!"
	case token.MINUS:
		op = "-"
	case token.PLUS:
		op = "+"
	default:
		return p.parseCallMemberChain()
	}
	start := p.current().Range.Start
	p.advance()
	operand := p.parseUnary()
	return &ast.UnaryExpr{Op: op, Operand: operand, Rng: token.Range{Start: start, End: operand.Range().End}}
}

func (p *Parser) parseCallMemberChain() ast.Expression {
	expr := p.parsePrimary()
	for {
		switch {
		case p.match(token.DOT):
			name := p.consume(token.IDENT, "expected property name after '.'")
			expr = &ast.MemberExpr{
				Object: expr, Property: &ast.Identifier{Name: name.Lexeme, Rng: name.Range}, Computed: false,
				Rng: token.Range{Start: expr.Range().Start, End: name.Range.End},
			}
		case p.match(token.LBRACKET):
			prop := p.parseExpression()
			end := p.consume(token.RBRACKET, "expected ']' after computed member expression").Range.End
			expr = &ast.MemberExpr{Object: expr, Property: prop, Computed: true, Rng: token.Range{Start: expr.Range().Start, End: end}}
		case p.check(token.LPAREN):
			args, end := p.parseArgs()
			expr = &ast.CallExpr{Callee: expr, Args: args, Rng: token.Range{Start: expr.Range().Start, End: end}}
		default:
			return expr
		}
	}
}

func (p *Parser) parseArgs() ([]ast.Expression, token.Position) {
	p.consume(token.LPAREN, "expected '('")
	var args []ast.Expression
	for !p.check(token.RPAREN) {
		if p.match(token.ELLIPSIS) {
			start := p.tokens[p.pos-1].Range.Start
			arg := p.parseAssignment()
			args = append(args, &ast.SpreadExpr{Argument: arg, Rng: token.Range{Start: start, End: arg.Range().End}})
		} else {
			args = append(args, p.parseAssignment())
		}
		if !p.match(token.COMMA) {
			break
		}
	}
	end := p.consume(token.RPAREN, "expected ')' after arguments").Range.End
	return args, end
}

func (p *Parser) parsePrimary() ast.Expression {
	if p.isArrowAhead() {
		return p.parseArrowFunction()
	}

	t := p.current()
	switch t.Kind {
	case token.NUMBER:
		p.advance()
		f, err := strconv.ParseFloat(t.Lexeme, 64)
		if err != nil {
			p.fail(fmt.Sprintf("invalid number literal %q", t.Lexeme))
		}
		return &ast.Literal{Kind: ast.NumberLiteral, Number: f, Rng: t.Range}
	case token.STRING:
		p.advance()
		return &ast.Literal{Kind: ast.StringLiteral, Str: t.Lexeme, Rng: t.Range}
	case token.TEMPLATE_STRING:
		p.advance()
		return &ast.TemplateLiteral{Raw: t.Lexeme, Rng: t.Range}
	case token.TRUE:
		p.advance()
		return &ast.Literal{Kind: ast.BooleanLiteral, Bool: true, Rng: t.Range}
	case token.FALSE:
		p.advance()
		return &ast.Literal{Kind: ast.BooleanLiteral, Bool: false, Rng: t.Range}
	case token.NULL:
		p.advance()
		return &ast.Literal{Kind: ast.NullLiteral, Rng: t.Range}
	case token.UNDEFINED:
		p.advance()
		return &ast.Literal{Kind: ast.UndefinedLiteral, Rng: t.Range}
	case token.IDENT:
		p.advance()
		return &ast.Identifier{Name: t.Lexeme, Rng: t.Range}
	case token.LPAREN:
		p.advance()
		expr := p.parseExpression()
		p.consume(token.RPAREN, "expected ')' to close parenthesized expression")
		return expr
	case token.LBRACKET:
		return p.parseArrayLiteral()
	case token.LBRACE:
		return p.parseObjectLiteral()
	case token.FUNCTION:
		return p.parseFunctionExpr()
	default:
		p.fail(fmt.Sprintf("expected an expression, got %s", t))
		panic("unreachable")
	}
}

func (p *Parser) parseArrayLiteral() *ast.ArrayExpr {
	start := p.consume(token.LBRACKET, "expected '['").Range.Start
	var elements []ast.Expression
	for !p.check(token.RBRACKET) {
		if p.check(token.COMMA) {
			elements = append(elements, nil) // hole
			p.advance()
			continue
		}
		if p.match(token.ELLIPSIS) {
			spreadStart := p.tokens[p.pos-1].Range.Start
			arg := p.parseAssignment()
			elements = append(elements, &ast.SpreadExpr{Argument: arg, Rng: token.Range{Start: spreadStart, End: arg.Range().End}})
		} else {
			elements = append(elements, p.parseAssignment())
		}
		if !p.match(token.COMMA) {
			break
		}
	}
	end := p.consume(token.RBRACKET, "expected ']' to close array literal").Range.End
	return &ast.ArrayExpr{Elements: elements, Rng: token.Range{Start: start, End: end}}
}

func (p *Parser) parseObjectLiteral() *ast.ObjectExpr {
	start := p.consume(token.LBRACE, "expected '{'").Range.Start
	var props []ast.ObjectProperty
	for !p.check(token.RBRACE) {
		if p.match(token.ELLIPSIS) {
			arg := p.parseAssignment()
			props = append(props, ast.ObjectProperty{Spread: arg})
			if !p.match(token.COMMA) {
				break
			}
			continue
		}

		var key string
		var keyRng token.Range
		var computed bool
		var keyExpr ast.Expression
		identKey := false
		switch {
		case p.match(token.LBRACKET):
			computed = true
			keyExpr = p.parseAssignment()
			p.consume(token.RBRACKET, "expected ']' after computed property key")
		case p.check(token.STRING):
			tk := p.advance()
			key, keyRng = tk.Lexeme, tk.Range
		default:
			tk := p.consume(token.IDENT, "expected property key")
			key, keyRng = tk.Lexeme, tk.Range
			identKey = true
		}

		var value ast.Expression
		if p.match(token.COLON) {
			value = p.parseAssignment()
		} else {
			// Shorthand `{ x }` ≡ `{ x: x }` (spec.md §4.2 "Patterns"); only
			// valid for plain identifier keys.
			if !identKey {
				p.fail("shorthand property requires an identifier key")
			}
			value = &ast.Identifier{Name: key, Rng: keyRng}
		}
		props = append(props, ast.ObjectProperty{Key: key, Computed: computed, KeyExpr: keyExpr, Value: value})
		if !p.match(token.COMMA) {
			break
		}
	}
	end := p.consume(token.RBRACE, "expected '}' to close object literal").Range.End
	return &ast.ObjectExpr{Properties: props, Rng: token.Range{Start: start, End: end}}
}

func (p *Parser) parseFunctionExpr() *ast.FunctionExpr {
	start := p.consume(token.FUNCTION, "expected 'function'").Range.Start
	name := ""
	if p.check(token.IDENT) {
		name = p.advance().Lexeme
	}
	params := p.parseParamList()
	body := p.parseBlock()
	return &ast.FunctionExpr{Name: name, Params: params, Body: body, Rng: token.Range{Start: start, End: body.Rng.End}}
}

// isArrowAhead performs bounded lookahead to disambiguate `(params) => body`
// and `identifier => body` from a parenthesized expression or a bare
// identifier reference (spec.md §4.2 "Arrow functions").
func (p *Parser) isArrowAhead() bool {
	if p.check(token.IDENT) && p.peek(1).Kind == token.ARROW {
		return true
	}
	if !p.check(token.LPAREN) {
		return false
	}
	depth := 0
	for i := p.pos; i < len(p.tokens); i++ {
		switch p.tokens[i].Kind {
		case token.LPAREN:
			depth++
		case token.RPAREN:
			depth--
			if depth == 0 {
				return i+1 < len(p.tokens) && p.tokens[i+1].Kind == token.ARROW
			}
		case token.EOF:
			return false
		}
	}
	return false
}

func (p *Parser) parseArrowFunction() *ast.ArrowFunctionExpr {
	start := p.current().Range.Start
	var params []ast.Pattern
	if p.check(token.IDENT) {
		t := p.advance()
		params = []ast.Pattern{&ast.Identifier{Name: t.Lexeme, Rng: t.Range}}
	} else {
		params = p.parseParamList()
	}
	p.consume(token.ARROW, "expected '=>'")

	if p.check(token.LBRACE) {
		body := p.parseBlock()
		return &ast.ArrowFunctionExpr{Params: params, Body: body, ExprBody: false, Rng: token.Range{Start: start, End: body.Rng.End}}
	}
	body := p.parseAssignment()
	return &ast.ArrowFunctionExpr{Params: params, Body: body, ExprBody: true, Rng: token.Range{Start: start, End: body.Range().End}}
}
