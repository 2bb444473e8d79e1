package parser

import (
	"fmt"

	"github.com/SPSarkar88/NovaLang-sub001/ast"
	"github.com/SPSarkar88/NovaLang-sub001/token"
)

// parseBindingPattern parses a pattern appearing in a declaration position:
// a variable declarator target, a function parameter, or a catch binding
// (spec.md §4.2 "Patterns").
func (p *Parser) parseBindingPattern() ast.Pattern {
	switch p.current().Kind {
	case token.LBRACKET:
		return p.parseArrayPattern()
	case token.LBRACE:
		return p.parseObjectPattern()
	case token.IDENT:
		t := p.advance()
		return &ast.Identifier{Name: t.Lexeme, Rng: t.Range}
	default:
		p.fail(fmt.Sprintf("expected a binding target, got %s", p.current()))
		panic("unreachable")
	}
}

func (p *Parser) parseArrayPattern() *ast.ArrayPattern {
	start := p.consume(token.LBRACKET, "expected '['").Range.Start
	var elements []ast.ArrayPatternElement
	var rest ast.Pattern
	for !p.check(token.RBRACKET) {
		if p.check(token.COMMA) {
			elements = append(elements, ast.ArrayPatternElement{}) // hole
			p.advance()
			continue
		}
		if p.match(token.ELLIPSIS) {
			rest = p.parseBindingPattern()
			break
		}
		target := p.parseBindingPattern()
		var def ast.Expression
		if p.match(token.ASSIGN) {
			def = p.parseAssignment()
		}
		elements = append(elements, ast.ArrayPatternElement{Target: target, Default: def})
		if !p.match(token.COMMA) {
			break
		}
	}
	end := p.consume(token.RBRACKET, "expected ']' to close array pattern").Range.End
	return &ast.ArrayPattern{Elements: elements, Rest: rest, Rng: token.Range{Start: start, End: end}}
}

func (p *Parser) parseObjectPattern() *ast.ObjectPattern {
	start := p.consume(token.LBRACE, "expected '{'").Range.Start
	var props []ast.ObjectPatternProperty
	var rest ast.Pattern
	for !p.check(token.RBRACE) {
		if p.match(token.ELLIPSIS) {
			rest = p.parseBindingPattern()
			break
		}
		keyTok := p.consume(token.IDENT, "expected property name")
		key := keyTok.Lexeme

		var target ast.Pattern
		shorthand := true
		if p.match(token.COLON) {
			shorthand = false
			target = p.parseBindingPattern()
		} else {
			target = &ast.Identifier{Name: key, Rng: keyTok.Range}
		}

		var def ast.Expression
		if p.match(token.ASSIGN) {
			def = p.parseAssignment()
		}
		props = append(props, ast.ObjectPatternProperty{Key: key, Target: target, Shorthand: shorthand, Default: def})
		if !p.match(token.COMMA) {
			break
		}
	}
	end := p.consume(token.RBRACE, "expected '}' to close object pattern").Range.End
	return &ast.ObjectPattern{Properties: props, Rest: rest, Rng: token.Range{Start: start, End: end}}
}

// exprToPattern re-interprets an already-parsed array/object literal
// expression as a destructuring pattern, for assignment targets like
// `[a, b] = pair;` (spec.md §4.2 "Patterns": array/object literals on the
// left of `=` are reinterpreted on demand).
func (p *Parser) exprToPattern(e ast.Expression) ast.Pattern {
	switch v := e.(type) {
	case *ast.Identifier:
		return v
	case *ast.ArrayExpr:
		var elements []ast.ArrayPatternElement
		var rest ast.Pattern
		for _, el := range v.Elements {
			if el == nil {
				elements = append(elements, ast.ArrayPatternElement{})
				continue
			}
			if sp, ok := el.(*ast.SpreadExpr); ok {
				rest = p.exprToPattern(sp.Argument)
				continue
			}
			if asn, ok := el.(*ast.AssignmentExpr); ok && asn.Op == "=" {
				elements = append(elements, ast.ArrayPatternElement{Target: p.exprToPattern(asn.Target), Default: asn.Value})
				continue
			}
			elements = append(elements, ast.ArrayPatternElement{Target: p.exprToPattern(el)})
		}
		return &ast.ArrayPattern{Elements: elements, Rest: rest, Rng: v.Rng}
	case *ast.ObjectExpr:
		var props []ast.ObjectPatternProperty
		var rest ast.Pattern
		for _, prop := range v.Properties {
			if prop.Spread != nil {
				rest = p.exprToPattern(prop.Spread)
				continue
			}
			value := prop.Value
			var def ast.Expression
			if asn, ok := value.(*ast.AssignmentExpr); ok && asn.Op == "=" {
				value = asn.Target
				def = asn.Value
			}
			shorthand := false
			if id, ok := value.(*ast.Identifier); ok && id.Name == prop.Key {
				shorthand = true
			}
			props = append(props, ast.ObjectPatternProperty{
				Key: prop.Key, Target: p.exprToPattern(value), Shorthand: shorthand, Default: def,
			})
		}
		return &ast.ObjectPattern{Properties: props, Rest: rest, Rng: v.Rng}
	default:
		p.fail("invalid destructuring assignment target")
		panic("unreachable")
	}
}
