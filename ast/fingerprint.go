package ast

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// Fingerprint is a content hash of a parsed program's structure, independent
// of source positions. It gives tooling and tests a cheap structural-equality
// check (spec.md §8 invariant 2: repeated parsing is deterministic) without a
// full reflect.DeepEqual traversal.
//
// Grounded in the teacher's core/planfmt/canonical.go, which builds a
// CanonicalPlan and SHA-256s its canonical CBOR encoding for
// content-addressed, deterministic plan IDs; Program.Fingerprint applies the
// same two-step recipe (canonicalize, then hash) to an AST instead of a plan.
func (p *Program) Fingerprint() (string, error) {
	canonical := canonicalize(p)
	mode, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return "", fmt.Errorf("fingerprint: build cbor mode: %w", err)
	}
	encoded, err := mode.Marshal(canonical)
	if err != nil {
		return "", fmt.Errorf("fingerprint: encode canonical form: %w", err)
	}
	sum := sha256.Sum256(encoded)
	return hex.EncodeToString(sum[:]), nil
}

// canonicalize projects a Node into a position-free shape of plain maps,
// slices and scalars suitable for canonical CBOR encoding. The "$" key holds
// the Go type name so structurally distinct nodes never collide.
func canonicalize(n Node) interface{} {
	if n == nil {
		return nil
	}
	switch v := n.(type) {
	case *Program:
		return node("Program", map[string]interface{}{"statements": stmtList(v.Statements)})

	case *Literal:
		return node("Literal", map[string]interface{}{
			"kind": int(v.Kind), "number": v.Number, "str": v.Str, "bool": v.Bool,
		})
	case *TemplateLiteral:
		return node("TemplateLiteral", map[string]interface{}{"raw": v.Raw})
	case *Identifier:
		return node("Identifier", map[string]interface{}{"name": v.Name})
	case *UnaryExpr:
		return node("UnaryExpr", map[string]interface{}{"op": v.Op, "operand": canonicalize(v.Operand)})
	case *BinaryExpr:
		return node("BinaryExpr", map[string]interface{}{"op": v.Op, "left": canonicalize(v.Left), "right": canonicalize(v.Right)})
	case *LogicalExpr:
		return node("LogicalExpr", map[string]interface{}{"op": v.Op, "left": canonicalize(v.Left), "right": canonicalize(v.Right)})
	case *AssignmentExpr:
		return node("AssignmentExpr", map[string]interface{}{
			"op": v.Op, "target": canonicalize(v.Target), "pattern": canonicalize(v.Pattern), "value": canonicalize(v.Value),
		})
	case *ConditionalExpr:
		return node("ConditionalExpr", map[string]interface{}{
			"test": canonicalize(v.Test), "then": canonicalize(v.Then), "else": canonicalize(v.Else),
		})
	case *CallExpr:
		return node("CallExpr", map[string]interface{}{"callee": canonicalize(v.Callee), "args": exprList(v.Args)})
	case *MemberExpr:
		return node("MemberExpr", map[string]interface{}{
			"object": canonicalize(v.Object), "property": canonicalize(v.Property), "computed": v.Computed,
		})
	case *ArrayExpr:
		return node("ArrayExpr", map[string]interface{}{"elements": exprList(v.Elements)})
	case *ObjectExpr:
		props := make([]interface{}, len(v.Properties))
		for i, p := range v.Properties {
			props[i] = map[string]interface{}{
				"key": p.Key, "computed": p.Computed, "keyExpr": canonicalize(p.KeyExpr),
				"value": canonicalize(p.Value), "spread": canonicalize(p.Spread),
			}
		}
		return node("ObjectExpr", map[string]interface{}{"properties": props})
	case *FunctionExpr:
		return node("FunctionExpr", map[string]interface{}{
			"name": v.Name, "params": patternList(v.Params), "body": canonicalize(v.Body),
		})
	case *ArrowFunctionExpr:
		var body interface{}
		if v.ExprBody {
			body = canonicalize(v.Body.(Expression))
		} else {
			body = canonicalize(v.Body.(*BlockStatement))
		}
		return node("ArrowFunctionExpr", map[string]interface{}{
			"params": patternList(v.Params), "exprBody": v.ExprBody, "body": body,
		})
	case *SpreadExpr:
		return node("SpreadExpr", map[string]interface{}{"argument": canonicalize(v.Argument)})

	case *ExpressionStatement:
		return node("ExpressionStatement", map[string]interface{}{"expr": canonicalize(v.Expr)})
	case *VariableDeclaration:
		decls := make([]interface{}, len(v.Declarators))
		for i, d := range v.Declarators {
			decls[i] = map[string]interface{}{"target": canonicalize(d.Target), "init": canonicalize(d.Initializer)}
		}
		return node("VariableDeclaration", map[string]interface{}{"kind": int(v.Kind), "declarators": decls})
	case *FunctionDeclaration:
		return node("FunctionDeclaration", map[string]interface{}{
			"name": v.Name, "params": patternList(v.Params), "body": canonicalize(v.Body),
		})
	case *BlockStatement:
		return node("BlockStatement", map[string]interface{}{"statements": stmtList(v.Statements)})
	case *IfStatement:
		return node("IfStatement", map[string]interface{}{
			"test": canonicalize(v.Test), "then": canonicalize(v.Then), "else": canonicalize(v.Else),
		})
	case *WhileStatement:
		return node("WhileStatement", map[string]interface{}{"test": canonicalize(v.Test), "body": canonicalize(v.Body)})
	case *DoWhileStatement:
		return node("DoWhileStatement", map[string]interface{}{"body": canonicalize(v.Body), "test": canonicalize(v.Test)})
	case *ForStatement:
		var init interface{}
		if v.Init != nil {
			init = canonicalize(v.Init)
		}
		return node("ForStatement", map[string]interface{}{
			"init": init, "test": canonicalize(v.Test), "update": canonicalize(v.Update), "body": canonicalize(v.Body),
		})
	case *ReturnStatement:
		return node("ReturnStatement", map[string]interface{}{"argument": canonicalize(v.Argument)})
	case *BreakStatement:
		return node("BreakStatement", map[string]interface{}{})
	case *ContinueStatement:
		return node("ContinueStatement", map[string]interface{}{})
	case *SwitchStatement:
		cases := make([]interface{}, len(v.Cases))
		for i, c := range v.Cases {
			cases[i] = map[string]interface{}{"test": canonicalize(c.Test), "consequent": stmtList(c.Consequent)}
		}
		return node("SwitchStatement", map[string]interface{}{"discriminant": canonicalize(v.Discriminant), "cases": cases})
	case *TryStatement:
		var catch interface{}
		if v.Catch != nil {
			catch = map[string]interface{}{"param": canonicalize(v.Catch.Param), "body": canonicalize(v.Catch.Body)}
		}
		var finally interface{}
		if v.Finally != nil {
			finally = canonicalize(v.Finally)
		}
		return node("TryStatement", map[string]interface{}{
			"block": canonicalize(v.Block), "catch": catch, "finally": finally,
		})
	case *ThrowStatement:
		return node("ThrowStatement", map[string]interface{}{"argument": canonicalize(v.Argument)})

	case *ArrayPattern:
		elems := make([]interface{}, len(v.Elements))
		for i, e := range v.Elements {
			elems[i] = map[string]interface{}{"target": canonicalize(e.Target), "default": canonicalize(e.Default)}
		}
		return node("ArrayPattern", map[string]interface{}{"elements": elems, "rest": canonicalize(v.Rest)})
	case *ObjectPattern:
		props := make([]interface{}, len(v.Properties))
		for i, p := range v.Properties {
			props[i] = map[string]interface{}{
				"key": p.Key, "target": canonicalize(p.Target), "shorthand": p.Shorthand, "default": canonicalize(p.Default),
			}
		}
		return node("ObjectPattern", map[string]interface{}{"properties": props, "rest": canonicalize(v.Rest)})
	case *RestElement:
		return node("RestElement", map[string]interface{}{"target": canonicalize(v.Target)})
	case *AssignmentPattern:
		return node("AssignmentPattern", map[string]interface{}{"target": canonicalize(v.Target), "default": canonicalize(v.Default)})
	default:
		return node("Unknown", map[string]interface{}{"type": fmt.Sprintf("%T", v)})
	}
}

func node(kind string, fields map[string]interface{}) map[string]interface{} {
	fields["$"] = kind
	return fields
}

func stmtList(stmts []Statement) []interface{} {
	out := make([]interface{}, len(stmts))
	for i, s := range stmts {
		out[i] = canonicalize(s)
	}
	return out
}

func exprList(exprs []Expression) []interface{} {
	out := make([]interface{}, len(exprs))
	for i, e := range exprs {
		if e == nil {
			continue // array literal hole
		}
		out[i] = canonicalize(e)
	}
	return out
}

func patternList(patterns []Pattern) []interface{} {
	out := make([]interface{}, len(patterns))
	for i, p := range patterns {
		out[i] = canonicalize(p)
	}
	return out
}
