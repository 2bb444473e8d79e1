// Package eval implements NovaLang's tree-walking evaluator (spec.md §4.3):
// AST in, a runtime Value or a diagnostic out, dispatching by Go type switch
// the same way the AST and object packages do.
//
// Grounded in the teacher's runtime/executor/tree_runner.go executeTreeIO:
// a type switch over node kinds, each case recursing into its children and
// threading a result (there, a shell exit code; here, a Completion). The
// teacher's AndNode/OrNode short-circuit-by-exit-code pairing is the same
// shape as NovaLang's && / || short-circuit-by-truthiness.
package eval

import (
	"io"

	"github.com/SPSarkar88/NovaLang-sub001/ast"
	"github.com/SPSarkar88/NovaLang-sub001/diagnostic"
	"github.com/SPSarkar88/NovaLang-sub001/env"
	"github.com/SPSarkar88/NovaLang-sub001/internal/invariant"
	"github.com/SPSarkar88/NovaLang-sub001/object"
	"github.com/SPSarkar88/NovaLang-sub001/token"
)

// ctrlKind tags a statement's completion (spec.md §4.3 "Control signals").
type ctrlKind int

const (
	ctrlNormal ctrlKind = iota
	ctrlReturn
	ctrlBreak
	ctrlContinue
	ctrlThrow
)

type completion struct {
	kind  ctrlKind
	value object.Value // meaningful for Return and Throw
	rng   token.Range  // where the signal originated, for top-level diagnostics
}

var normalCompletion = completion{kind: ctrlNormal}

// DefaultMaxDepth bounds user-function call nesting so a runaway recursive
// program surfaces as a diagnostic instead of crashing the host process via
// a Go stack overflow (spec.md §5).
const DefaultMaxDepth = 512

// Evaluator walks a parsed Program against a global frame, writing
// console.log output to Out.
type Evaluator struct {
	Out      io.Writer
	MaxDepth int
	depth    int
}

// New creates an Evaluator writing console output to out.
func New(out io.Writer) *Evaluator {
	return &Evaluator{Out: out, MaxDepth: DefaultMaxDepth}
}

// Run executes prog against global, returning the value of the last
// top-level expression statement (spec.md §1's "final value"), or a
// diagnostic pinned to the failing range.
func (e *Evaluator) Run(prog *ast.Program, global *env.Frame) (object.Value, *diagnostic.Diagnostic) {
	if err := e.hoistFunctions(prog.Statements, global); err != nil {
		return nil, toDiagnostic(err)
	}

	var last object.Value = object.Undefined{}
	for _, stmt := range prog.Statements {
		if es, ok := stmt.(*ast.ExpressionStatement); ok {
			v, err := e.evalExpr(es.Expr, global)
			if err != nil {
				return nil, toDiagnostic(err)
			}
			last = v
			continue
		}
		c := e.evalStatement(stmt, global)
		switch c.kind {
		case ctrlNormal:
			continue
		case ctrlThrow:
			return nil, diagnostic.New(diagnostic.RuntimeError, throwMessage(c.value), rangeOr(c.rng, prog.Rng))
		default:
			return nil, diagnostic.New(diagnostic.RuntimeError, "illegal break/continue/return outside a function or loop", rangeOr(c.rng, prog.Rng))
		}
	}
	return last, nil
}

// rangeOr prefers a completion's own origin range, falling back when the
// signal carried none.
func rangeOr(rng, fallback token.Range) token.Range {
	if rng.Start.Line == 0 {
		return fallback
	}
	return rng
}

func toDiagnostic(err error) *diagnostic.Diagnostic {
	ts, ok := err.(*ThrowSignal)
	invariant.Invariant(ok, "evalExpr returned a non-ThrowSignal error: %v", err)
	return diagnostic.New(diagnostic.RuntimeError, throwMessage(ts.Value), ts.Range)
}

// hoistFunctions binds every function declaration in stmts before any
// statement executes (spec.md §4.3 "Binding semantics"). A duplicate
// declaration in the same block surfaces as a throw, the same redeclaration
// error a let/const collision produces.
func (e *Evaluator) hoistFunctions(stmts []ast.Statement, frame *env.Frame) error {
	for _, stmt := range stmts {
		fd, ok := stmt.(*ast.FunctionDeclaration)
		if !ok {
			continue
		}
		fn := &object.Function{Name: fd.Name, Params: fd.Params, Body: fd.Body}
		fn.Closure = frame
		if err := frame.Declare(fd.Name, fn, false); err != nil {
			return throwf(fd.Rng, "%s", err.Error())
		}
	}
	return nil
}

// execStatements hoists then runs stmts in frame, stopping at the first
// non-normal completion.
func (e *Evaluator) execStatements(stmts []ast.Statement, frame *env.Frame) completion {
	if err := e.hoistFunctions(stmts, frame); err != nil {
		return e.throwCompletion(err)
	}
	for _, stmt := range stmts {
		c := e.evalStatement(stmt, frame)
		if c.kind != ctrlNormal {
			return c
		}
	}
	return normalCompletion
}

func (e *Evaluator) evalBlockStatement(block *ast.BlockStatement, parent *env.Frame) completion {
	return e.execStatements(block.Statements, parent.NewChild())
}

func (e *Evaluator) throwCompletion(err error) completion {
	ts, ok := err.(*ThrowSignal)
	invariant.Invariant(ok, "non-ThrowSignal error reached throwCompletion: %v", err)
	return completion{kind: ctrlThrow, value: ts.Value, rng: ts.Range}
}

func (e *Evaluator) evalStatement(stmt ast.Statement, frame *env.Frame) completion {
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		_, err := e.evalExpr(s.Expr, frame)
		if err != nil {
			return e.throwCompletion(err)
		}
		return normalCompletion

	case *ast.VariableDeclaration:
		return e.evalVariableDeclaration(s, frame)

	case *ast.FunctionDeclaration:
		return normalCompletion // already hoisted

	case *ast.BlockStatement:
		return e.evalBlockStatement(s, frame)

	case *ast.IfStatement:
		test, err := e.evalExpr(s.Test, frame)
		if err != nil {
			return e.throwCompletion(err)
		}
		if test.Truthy() {
			return e.evalStatement(s.Then, frame)
		}
		if s.Else != nil {
			return e.evalStatement(s.Else, frame)
		}
		return normalCompletion

	case *ast.WhileStatement:
		return e.evalWhile(s, frame)

	case *ast.DoWhileStatement:
		return e.evalDoWhile(s, frame)

	case *ast.ForStatement:
		return e.evalFor(s, frame)

	case *ast.ReturnStatement:
		if s.Argument == nil {
			return completion{kind: ctrlReturn, value: object.Undefined{}, rng: s.Rng}
		}
		v, err := e.evalExpr(s.Argument, frame)
		if err != nil {
			return e.throwCompletion(err)
		}
		return completion{kind: ctrlReturn, value: v, rng: s.Rng}

	case *ast.BreakStatement:
		return completion{kind: ctrlBreak, rng: s.Rng}

	case *ast.ContinueStatement:
		return completion{kind: ctrlContinue, rng: s.Rng}

	case *ast.SwitchStatement:
		return e.evalSwitch(s, frame)

	case *ast.TryStatement:
		return e.evalTry(s, frame)

	case *ast.ThrowStatement:
		v, err := e.evalExpr(s.Argument, frame)
		if err != nil {
			return e.throwCompletion(err)
		}
		return completion{kind: ctrlThrow, value: v, rng: s.Rng}

	default:
		invariant.Invariant(false, "unknown statement type %T", stmt)
		return normalCompletion
	}
}

func (e *Evaluator) evalVariableDeclaration(s *ast.VariableDeclaration, frame *env.Frame) completion {
	constant := s.Kind == ast.ConstDecl
	for _, d := range s.Declarators {
		var value object.Value = object.Undefined{}
		if d.Initializer != nil {
			v, err := e.evalExpr(d.Initializer, frame)
			if err != nil {
				return e.throwCompletion(err)
			}
			value = v
		}
		if err := e.bindPattern(d.Target, value, frame, constant, false); err != nil {
			return e.throwCompletion(err)
		}
	}
	return normalCompletion
}

func (e *Evaluator) evalWhile(s *ast.WhileStatement, frame *env.Frame) completion {
	for {
		test, err := e.evalExpr(s.Test, frame)
		if err != nil {
			return e.throwCompletion(err)
		}
		if !test.Truthy() {
			return normalCompletion
		}
		c := e.evalStatement(s.Body, frame)
		switch c.kind {
		case ctrlBreak:
			return normalCompletion
		case ctrlContinue, ctrlNormal:
			continue
		default:
			return c
		}
	}
}

func (e *Evaluator) evalDoWhile(s *ast.DoWhileStatement, frame *env.Frame) completion {
	for {
		c := e.evalStatement(s.Body, frame)
		switch c.kind {
		case ctrlBreak:
			return normalCompletion
		case ctrlContinue, ctrlNormal:
			// fall through to test
		default:
			return c
		}
		test, err := e.evalExpr(s.Test, frame)
		if err != nil {
			return e.throwCompletion(err)
		}
		if !test.Truthy() {
			return normalCompletion
		}
	}
}

func (e *Evaluator) evalFor(s *ast.ForStatement, frame *env.Frame) completion {
	forFrame := frame.NewChild()

	if s.Init != nil {
		switch init := s.Init.(type) {
		case *ast.VariableDeclaration:
			if c := e.evalVariableDeclaration(init, forFrame); c.kind != ctrlNormal {
				return c
			}
		case ast.Expression:
			if _, err := e.evalExpr(init, forFrame); err != nil {
				return e.throwCompletion(err)
			}
		}
	}

	for {
		if s.Test != nil {
			test, err := e.evalExpr(s.Test, forFrame)
			if err != nil {
				return e.throwCompletion(err)
			}
			if !test.Truthy() {
				return normalCompletion
			}
		}

		c := e.evalStatement(s.Body, forFrame)
		switch c.kind {
		case ctrlBreak:
			return normalCompletion
		case ctrlContinue, ctrlNormal:
			// continue to update clause
		default:
			return c
		}

		if s.Update != nil {
			if _, err := e.evalExpr(s.Update, forFrame); err != nil {
				return e.throwCompletion(err)
			}
		}
	}
}

func (e *Evaluator) evalSwitch(s *ast.SwitchStatement, frame *env.Frame) completion {
	discriminant, err := e.evalExpr(s.Discriminant, frame)
	if err != nil {
		return e.throwCompletion(err)
	}

	switchFrame := frame.NewChild()
	matched := -1
	defaultIdx := -1
	for i, c := range s.Cases {
		if c.Test == nil {
			defaultIdx = i
			continue
		}
		testVal, err := e.evalExpr(c.Test, switchFrame)
		if err != nil {
			return e.throwCompletion(err)
		}
		if object.Equals(discriminant, testVal) {
			matched = i
			break
		}
	}
	if matched == -1 {
		matched = defaultIdx
	}
	if matched == -1 {
		return normalCompletion
	}

	for _, c := range s.Cases[matched:] {
		cc := e.execStatements(c.Consequent, switchFrame)
		if cc.kind == ctrlBreak {
			return normalCompletion
		}
		if cc.kind != ctrlNormal {
			return cc
		}
	}
	return normalCompletion
}

func (e *Evaluator) evalTry(s *ast.TryStatement, frame *env.Frame) completion {
	result := e.evalBlockStatement(s.Block, frame)

	if result.kind == ctrlThrow && s.Catch != nil {
		catchFrame := frame.NewChild()
		if s.Catch.Param != nil {
			if err := e.bindPattern(s.Catch.Param, result.value, catchFrame, false, false); err != nil {
				result = e.throwCompletion(err)
			} else {
				result = e.execStatements(s.Catch.Body.Statements, catchFrame)
			}
		} else {
			result = e.execStatements(s.Catch.Body.Statements, catchFrame)
		}
	}

	if s.Finally != nil {
		finallyResult := e.evalBlockStatement(s.Finally, frame)
		if finallyResult.kind != ctrlNormal {
			return finallyResult
		}
	}
	return result
}
