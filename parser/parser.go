// Package parser implements NovaLang's recursive-descent, precedence-climbing
// parser (spec.md §4.2): token stream in, *ast.Program out, or a single
// diagnostic pinned to the offending token.
//
// Grounded in the teacher's pkgs/parser/parser.go: a flat token slice with a
// cursor, current()/peek()/advance()/match()/consume() helpers, and errors
// reported with the current token's position. Two things were generalized
// for a full expression grammar the teacher's command-line dialect never
// needed: a 13-level precedence-climbing expression parser (the teacher has
// only a handful of expression forms) and on-demand expression→pattern
// conversion for destructuring. The teacher collects multiple errors via
// addError/synchronize; spec.md §4.2 explicitly asks for none of that ("no
// panic-mode recovery required in this tier"), so this parser stops at the
// first structural error instead, propagated via Go panic/recover scoped to
// Parse — the same non-local-exit idiom the standard library's own
// go/parser uses for exactly this reason.
package parser

import (
	"fmt"

	"github.com/SPSarkar88/NovaLang-sub001/ast"
	"github.com/SPSarkar88/NovaLang-sub001/diagnostic"
	"github.com/SPSarkar88/NovaLang-sub001/lexer"
	"github.com/SPSarkar88/NovaLang-sub001/token"
)

// Parser holds a token slice and a cursor into it.
type Parser struct {
	source string
	file   string
	tokens []token.Token
	pos    int
}

// parseError is the panic payload used to unwind to Parse on the first
// structural error.
type parseError struct {
	diag *diagnostic.Diagnostic
}

// Parse tokenizes and parses source into a Program, or returns a single
// diagnostic describing the first lexical or structural error encountered.
func Parse(source string) (*ast.Program, *diagnostic.Diagnostic) {
	return ParseFile(source, "")
}

// ParseFile is Parse with a file name attached to diagnostics for
// multi-file host embeddings.
func ParseFile(source string, file string) (prog *ast.Program, diag *diagnostic.Diagnostic) {
	tokens, lexDiag := lexer.Tokenize(source)
	if lexDiag != nil {
		lexDiag.File = file
		lexDiag.Source = source
		return nil, lexDiag
	}

	p := &Parser{source: source, file: file, tokens: tokens}

	defer func() {
		if r := recover(); r != nil {
			pe, ok := r.(parseError)
			if !ok {
				panic(r)
			}
			pe.diag.File = file
			pe.diag.Source = source
			prog, diag = nil, pe.diag
		}
	}()

	return p.parseProgram(), nil
}

func (p *Parser) parseProgram() *ast.Program {
	start := p.current().Range.Start
	var statements []ast.Statement
	for !p.atEnd() {
		statements = append(statements, p.parseStatement())
	}
	end := p.previousRangeEnd(start)
	return &ast.Program{Statements: statements, Rng: token.Range{Start: start, End: end}}
}

func (p *Parser) previousRangeEnd(fallback token.Position) token.Position {
	if p.pos == 0 {
		return fallback
	}
	return p.tokens[p.pos-1].Range.End
}

// --- token-stream helpers ---

func (p *Parser) current() token.Token { return p.tokens[p.pos] }

func (p *Parser) peek(offset int) token.Token {
	idx := p.pos + offset
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF
	}
	return p.tokens[idx]
}

func (p *Parser) atEnd() bool { return p.current().Kind == token.EOF }

func (p *Parser) advance() token.Token {
	t := p.current()
	if !p.atEnd() {
		p.pos++
	}
	return t
}

func (p *Parser) check(kind token.Kind) bool { return p.current().Kind == kind }

func (p *Parser) match(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(kind token.Kind, message string) token.Token {
	if p.check(kind) {
		return p.advance()
	}
	p.fail(fmt.Sprintf("%s, got %s", message, p.current()))
	panic("unreachable")
}

func (p *Parser) fail(message string) {
	panic(parseError{diag: diagnostic.New(diagnostic.ParseError, message, p.current().Range)})
}

// consumeSemi accepts an explicit `;`, or treats a `}`/EOF as an implicit
// statement boundary (spec.md §4.1: "automatic-semicolon-insertion is NOT
// performed; statement terminators are explicit `;` or inferred only by
// block boundaries").
func (p *Parser) consumeSemi() {
	if p.match(token.SEMI) {
		return
	}
	if p.check(token.RBRACE) || p.atEnd() {
		return
	}
	p.fail(fmt.Sprintf("expected ';', got %s", p.current()))
}

// --- statements ---

func (p *Parser) parseStatement() ast.Statement {
	switch p.current().Kind {
	case token.LET, token.CONST:
		return p.parseVariableDeclaration()
	case token.FUNCTION:
		return p.parseFunctionDeclaration()
	case token.LBRACE:
		return p.parseBlock()
	case token.IF:
		return p.parseIfStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.DO:
		return p.parseDoWhileStatement()
	case token.FOR:
		return p.parseForStatement()
	case token.RETURN:
		return p.parseReturnStatement()
	case token.BREAK:
		return p.parseBreakStatement()
	case token.CONTINUE:
		return p.parseContinueStatement()
	case token.SWITCH:
		return p.parseSwitchStatement()
	case token.TRY:
		return p.parseTryStatement()
	case token.THROW:
		return p.parseThrowStatement()
	case token.IMPORT, token.EXPORT:
		p.fail(fmt.Sprintf("%s is not supported in this tier (module resolution is a host concern)", p.current().Kind))
		panic("unreachable")
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseVariableDeclaration() *ast.VariableDeclaration {
	start := p.current().Range.Start
	kind := ast.LetDecl
	if p.current().Kind == token.CONST {
		kind = ast.ConstDecl
	}
	p.advance()

	var decls []ast.Declarator
	for {
		target := p.parseBindingPattern()
		var init ast.Expression
		if p.match(token.ASSIGN) {
			init = p.parseAssignment()
		} else if kind == ast.ConstDecl {
			p.fail("const declarations require an initializer")
		}
		decls = append(decls, ast.Declarator{Target: target, Initializer: init})
		if !p.match(token.COMMA) {
			break
		}
	}
	end := p.previousRangeEnd(start)
	p.consumeSemi()
	return &ast.VariableDeclaration{Kind: kind, Declarators: decls, Rng: token.Range{Start: start, End: end}}
}

func (p *Parser) parseFunctionDeclaration() *ast.FunctionDeclaration {
	start := p.current().Range.Start
	p.consume(token.FUNCTION, "expected 'function'")
	name := p.consume(token.IDENT, "expected function name").Lexeme
	params := p.parseParamList()
	body := p.parseBlock()
	return &ast.FunctionDeclaration{Name: name, Params: params, Body: body, Rng: token.Range{Start: start, End: body.Rng.End}}
}

func (p *Parser) parseParamList() []ast.Pattern {
	p.consume(token.LPAREN, "expected '('")
	var params []ast.Pattern
	for !p.check(token.RPAREN) {
		if p.match(token.ELLIPSIS) {
			start := p.tokens[p.pos-1].Range.Start
			rest := p.parseBindingPattern()
			params = append(params, &ast.RestElement{Target: rest, Rng: token.Range{Start: start, End: rest.Range().End}})
			break
		}
		target := p.parseBindingPattern()
		if p.match(token.ASSIGN) {
			def := p.parseAssignment()
			target = &ast.AssignmentPattern{Target: target, Default: def, Rng: token.Range{Start: target.Range().Start, End: def.Range().End}}
		}
		params = append(params, target)
		if !p.match(token.COMMA) {
			break
		}
	}
	p.consume(token.RPAREN, "expected ')' after parameters")
	return params
}

func (p *Parser) parseBlock() *ast.BlockStatement {
	start := p.consume(token.LBRACE, "expected '{'").Range.Start
	var statements []ast.Statement
	for !p.check(token.RBRACE) && !p.atEnd() {
		statements = append(statements, p.parseStatement())
	}
	end := p.consume(token.RBRACE, "expected '}'").Range.End
	return &ast.BlockStatement{Statements: statements, Rng: token.Range{Start: start, End: end}}
}

func (p *Parser) parseIfStatement() *ast.IfStatement {
	start := p.consume(token.IF, "expected 'if'").Range.Start
	p.consume(token.LPAREN, "expected '(' after 'if'")
	test := p.parseExpression()
	p.consume(token.RPAREN, "expected ')' after condition")
	then := p.parseStatement()
	end := then.Range().End
	var elseBranch ast.Statement
	if p.match(token.ELSE) {
		elseBranch = p.parseStatement()
		end = elseBranch.Range().End
	}
	return &ast.IfStatement{Test: test, Then: then, Else: elseBranch, Rng: token.Range{Start: start, End: end}}
}

func (p *Parser) parseWhileStatement() *ast.WhileStatement {
	start := p.consume(token.WHILE, "expected 'while'").Range.Start
	p.consume(token.LPAREN, "expected '(' after 'while'")
	test := p.parseExpression()
	p.consume(token.RPAREN, "expected ')' after condition")
	body := p.parseStatement()
	return &ast.WhileStatement{Test: test, Body: body, Rng: token.Range{Start: start, End: body.Range().End}}
}

func (p *Parser) parseDoWhileStatement() *ast.DoWhileStatement {
	start := p.consume(token.DO, "expected 'do'").Range.Start
	body := p.parseStatement()
	p.consume(token.WHILE, "expected 'while' after do-block")
	p.consume(token.LPAREN, "expected '(' after 'while'")
	test := p.parseExpression()
	end := p.consume(token.RPAREN, "expected ')' after condition").Range.End
	p.consumeSemi()
	return &ast.DoWhileStatement{Body: body, Test: test, Rng: token.Range{Start: start, End: end}}
}

func (p *Parser) parseForStatement() *ast.ForStatement {
	start := p.consume(token.FOR, "expected 'for'").Range.Start
	p.consume(token.LPAREN, "expected '(' after 'for'")

	var init ast.Node
	if !p.check(token.SEMI) {
		if p.check(token.LET) || p.check(token.CONST) {
			init = p.parseForVariableDeclaration()
		} else {
			init = p.parseExpression()
		}
	}
	p.consume(token.SEMI, "expected ';' after for-init")

	var test ast.Expression
	if !p.check(token.SEMI) {
		test = p.parseExpression()
	}
	p.consume(token.SEMI, "expected ';' after for-test")

	var update ast.Expression
	if !p.check(token.RPAREN) {
		update = p.parseExpression()
	}
	p.consume(token.RPAREN, "expected ')' after for-clauses")

	body := p.parseStatement()
	return &ast.ForStatement{Init: init, Test: test, Update: update, Body: body, Rng: token.Range{Start: start, End: body.Range().End}}
}

// parseForVariableDeclaration parses the `let`/`const` init clause of a
// `for` header without consuming a trailing `;` (the caller does, as part of
// the standard three-clause header rather than the statement form).
func (p *Parser) parseForVariableDeclaration() *ast.VariableDeclaration {
	start := p.current().Range.Start
	kind := ast.LetDecl
	if p.current().Kind == token.CONST {
		kind = ast.ConstDecl
	}
	p.advance()
	var decls []ast.Declarator
	for {
		target := p.parseBindingPattern()
		var init ast.Expression
		if p.match(token.ASSIGN) {
			init = p.parseAssignment()
		} else if kind == ast.ConstDecl {
			p.fail("const declarations require an initializer")
		}
		decls = append(decls, ast.Declarator{Target: target, Initializer: init})
		if !p.match(token.COMMA) {
			break
		}
	}
	end := p.previousRangeEnd(start)
	return &ast.VariableDeclaration{Kind: kind, Declarators: decls, Rng: token.Range{Start: start, End: end}}
}

func (p *Parser) parseReturnStatement() *ast.ReturnStatement {
	start := p.consume(token.RETURN, "expected 'return'").Range.Start
	var arg ast.Expression
	end := p.previousRangeEnd(start)
	if !p.check(token.SEMI) && !p.check(token.RBRACE) && !p.atEnd() {
		arg = p.parseExpression()
		end = arg.Range().End
	}
	p.consumeSemi()
	return &ast.ReturnStatement{Argument: arg, Rng: token.Range{Start: start, End: end}}
}

func (p *Parser) parseBreakStatement() *ast.BreakStatement {
	rng := p.consume(token.BREAK, "expected 'break'").Range
	p.consumeSemi()
	return &ast.BreakStatement{Rng: rng}
}

func (p *Parser) parseContinueStatement() *ast.ContinueStatement {
	rng := p.consume(token.CONTINUE, "expected 'continue'").Range
	p.consumeSemi()
	return &ast.ContinueStatement{Rng: rng}
}

func (p *Parser) parseSwitchStatement() *ast.SwitchStatement {
	start := p.consume(token.SWITCH, "expected 'switch'").Range.Start
	p.consume(token.LPAREN, "expected '(' after 'switch'")
	discriminant := p.parseExpression()
	p.consume(token.RPAREN, "expected ')' after switch discriminant")
	p.consume(token.LBRACE, "expected '{' to open switch body")

	var cases []ast.SwitchCase
	for !p.check(token.RBRACE) && !p.atEnd() {
		var test ast.Expression
		if p.match(token.CASE) {
			test = p.parseExpression()
		} else {
			p.consume(token.DEFAULT, "expected 'case' or 'default'")
		}
		p.consume(token.COLON, "expected ':' after case label")
		var body []ast.Statement
		for !p.check(token.CASE) && !p.check(token.DEFAULT) && !p.check(token.RBRACE) && !p.atEnd() {
			body = append(body, p.parseStatement())
		}
		cases = append(cases, ast.SwitchCase{Test: test, Consequent: body})
	}
	end := p.consume(token.RBRACE, "expected '}' to close switch body").Range.End
	return &ast.SwitchStatement{Discriminant: discriminant, Cases: cases, Rng: token.Range{Start: start, End: end}}
}

func (p *Parser) parseTryStatement() *ast.TryStatement {
	start := p.consume(token.TRY, "expected 'try'").Range.Start
	block := p.parseBlock()
	end := block.Rng.End

	var catch *ast.CatchClause
	if p.match(token.CATCH) {
		var param ast.Pattern
		if p.match(token.LPAREN) {
			param = p.parseBindingPattern()
			p.consume(token.RPAREN, "expected ')' after catch parameter")
		}
		body := p.parseBlock()
		catch = &ast.CatchClause{Param: param, Body: body}
		end = body.Rng.End
	}

	var finally *ast.BlockStatement
	if p.match(token.FINALLY) {
		finally = p.parseBlock()
		end = finally.Rng.End
	}

	if catch == nil && finally == nil {
		p.fail("'try' must be followed by 'catch' and/or 'finally'")
	}
	return &ast.TryStatement{Block: block, Catch: catch, Finally: finally, Rng: token.Range{Start: start, End: end}}
}

func (p *Parser) parseThrowStatement() *ast.ThrowStatement {
	start := p.consume(token.THROW, "expected 'throw'").Range.Start
	arg := p.parseExpression()
	end := arg.Range().End
	p.consumeSemi()
	return &ast.ThrowStatement{Argument: arg, Rng: token.Range{Start: start, End: end}}
}

func (p *Parser) parseExpressionStatement() *ast.ExpressionStatement {
	expr := p.parseExpression()
	end := expr.Range().End
	p.consumeSemi()
	return &ast.ExpressionStatement{Expr: expr, Rng: token.Range{Start: expr.Range().Start, End: end}}
}
