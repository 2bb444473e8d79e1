package eval

import (
	"math"

	"github.com/SPSarkar88/NovaLang-sub001/ast"
	"github.com/SPSarkar88/NovaLang-sub001/config"
	"github.com/SPSarkar88/NovaLang-sub001/env"
	"github.com/SPSarkar88/NovaLang-sub001/internal/invariant"
	"github.com/SPSarkar88/NovaLang-sub001/object"
	"github.com/SPSarkar88/NovaLang-sub001/token"
)

// evalExpr dispatches on AST expression type, per spec.md §4.3. Every branch
// returns either a Value or an error (always a *ThrowSignal — a user `throw`
// or a host-side dynamic runtime error wrapped in the same Error shape).
func (e *Evaluator) evalExpr(expr ast.Expression, frame *env.Frame) (object.Value, error) {
	switch n := expr.(type) {
	case *ast.Literal:
		return literalValue(n), nil

	case *ast.TemplateLiteral:
		// Interpolation splicing is deferred to a later tier (spec.md §4.1, §9);
		// the raw literal text between backticks is the value.
		return object.String(n.Raw), nil

	case *ast.Identifier:
		if v, ok := frame.Get(n.Name); ok {
			return v, nil
		}
		return nil, e.undefinedVariable(n, frame)

	case *ast.UnaryExpr:
		return e.evalUnary(n, frame)

	case *ast.BinaryExpr:
		return e.evalBinary(n, frame)

	case *ast.LogicalExpr:
		return e.evalLogical(n, frame)

	case *ast.AssignmentExpr:
		return e.evalAssignment(n, frame)

	case *ast.ConditionalExpr:
		test, err := e.evalExpr(n.Test, frame)
		if err != nil {
			return nil, err
		}
		if test.Truthy() {
			return e.evalExpr(n.Then, frame)
		}
		return e.evalExpr(n.Else, frame)

	case *ast.CallExpr:
		return e.evalCall(n, frame)

	case *ast.MemberExpr:
		return e.evalMemberGet(n, frame)

	case *ast.ArrayExpr:
		return e.evalArrayLiteral(n, frame)

	case *ast.ObjectExpr:
		return e.evalObjectLiteral(n, frame)

	case *ast.FunctionExpr:
		return &object.Function{Name: n.Name, Params: n.Params, Body: n.Body, Closure: frame}, nil

	case *ast.ArrowFunctionExpr:
		fn := &object.Function{Params: n.Params, Closure: frame}
		if n.ExprBody {
			fn.ExprBody = n.Body.(ast.Expression)
		} else {
			fn.Body = n.Body.(*ast.BlockStatement)
		}
		return fn, nil

	case *ast.SpreadExpr:
		return nil, throwf(n.Rng, "unexpected spread operator outside a call, array, or object literal")

	default:
		invariant.Invariant(false, "unknown expression type %T", expr)
		return nil, nil
	}
}

func literalValue(l *ast.Literal) object.Value {
	switch l.Kind {
	case ast.NumberLiteral:
		return object.Number(l.Number)
	case ast.StringLiteral:
		return object.String(l.Str)
	case ast.BooleanLiteral:
		return object.Boolean(l.Bool)
	case ast.NullLiteral:
		return object.Null{}
	case ast.UndefinedLiteral:
		return object.Undefined{}
	default:
		invariant.Invariant(false, "unknown literal kind %d", l.Kind)
		return object.Undefined{}
	}
}

// undefinedVariable raises "undefined variable 'x'" enriched with a "did you
// mean" suggestion over every name visible from frame (eval/errors.go,
// grounded in the teacher's decorator-typo suggestions).
func (e *Evaluator) undefinedVariable(id *ast.Identifier, frame *env.Frame) error {
	msg := "undefined variable '" + id.Name + "'"
	if suggestion := findClosestMatch(id.Name, frame.Names()); suggestion != "" {
		msg += ", did you mean '" + suggestion + "'?"
	}
	return throwf(id.Rng, "%s", msg)
}

func (e *Evaluator) evalUnary(n *ast.UnaryExpr, frame *env.Frame) (object.Value, error) {
	v, err := e.evalExpr(n.Operand, frame)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case "!":
		return object.Boolean(!v.Truthy()), nil
	case "-":
		return object.Number(-object.ToNumber(v)), nil
	case "+":
		return object.Number(object.ToNumber(v)), nil
	default:
		invariant.Invariant(false, "unknown unary operator %q", n.Op)
		return nil, nil
	}
}

func (e *Evaluator) evalBinary(n *ast.BinaryExpr, frame *env.Frame) (object.Value, error) {
	left, err := e.evalExpr(n.Left, frame)
	if err != nil {
		return nil, err
	}
	right, err := e.evalExpr(n.Right, frame)
	if err != nil {
		return nil, err
	}
	return applyBinaryOp(n.Op, left, right)
}

// applyBinaryOp implements spec.md §4.3 "Arithmetic and coercion",
// "Equality" and "Ordering".
func applyBinaryOp(op string, left, right object.Value) (object.Value, error) {
	switch op {
	case "+":
		if object.ConcatsAsString(left) || object.ConcatsAsString(right) {
			return object.String(left.ConcatString() + right.ConcatString()), nil
		}
		return object.Number(object.ToNumber(left) + object.ToNumber(right)), nil
	case "-":
		return object.Number(object.ToNumber(left) - object.ToNumber(right)), nil
	case "*":
		return object.Number(object.ToNumber(left) * object.ToNumber(right)), nil
	case "/":
		return object.Number(object.ToNumber(left) / object.ToNumber(right)), nil
	case "%":
		return object.Number(math.Mod(object.ToNumber(left), object.ToNumber(right))), nil
	case "**":
		return object.Number(math.Pow(object.ToNumber(left), object.ToNumber(right))), nil
	case "==":
		return object.Boolean(object.LooseEquals(left, right)), nil
	case "!=":
		return object.Boolean(!object.LooseEquals(left, right)), nil
	case "===":
		return object.Boolean(object.Equals(left, right)), nil
	case "!==":
		return object.Boolean(!object.Equals(left, right)), nil
	case "<", "<=", ">", ">=":
		cmp, ok := object.Compare(left, right)
		if !ok {
			return object.Boolean(false), nil // NaN comparisons are always false
		}
		switch op {
		case "<":
			return object.Boolean(cmp < 0), nil
		case "<=":
			return object.Boolean(cmp <= 0), nil
		case ">":
			return object.Boolean(cmp > 0), nil
		default:
			return object.Boolean(cmp >= 0), nil
		}
	default:
		invariant.Invariant(false, "unknown binary operator %q", op)
		return nil, nil
	}
}

// evalLogical implements short-circuit &&, || and ?? (spec.md §4.3): the
// right operand is never evaluated when the left side already decides the
// result.
func (e *Evaluator) evalLogical(n *ast.LogicalExpr, frame *env.Frame) (object.Value, error) {
	left, err := e.evalExpr(n.Left, frame)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case "&&":
		if !left.Truthy() {
			return left, nil
		}
		return e.evalExpr(n.Right, frame)
	case "||":
		if left.Truthy() {
			return left, nil
		}
		return e.evalExpr(n.Right, frame)
	case "??":
		if _, isNull := left.(object.Null); isNull {
			return e.evalExpr(n.Right, frame)
		}
		if _, isUndef := left.(object.Undefined); isUndef {
			return e.evalExpr(n.Right, frame)
		}
		return left, nil
	default:
		invariant.Invariant(false, "unknown logical operator %q", n.Op)
		return nil, nil
	}
}

func (e *Evaluator) evalArrayLiteral(n *ast.ArrayExpr, frame *env.Frame) (object.Value, error) {
	var elements []object.Value
	for _, el := range n.Elements {
		if el == nil {
			elements = append(elements, object.Undefined{}) // elided hole
			continue
		}
		if sp, ok := el.(*ast.SpreadExpr); ok {
			v, err := e.evalExpr(sp.Argument, frame)
			if err != nil {
				return nil, err
			}
			arr, ok := v.(*object.Array)
			if !ok {
				return nil, throwf(sp.Rng, "spread element is not an array")
			}
			elements = append(elements, arr.Elements...)
			continue
		}
		v, err := e.evalExpr(el, frame)
		if err != nil {
			return nil, err
		}
		elements = append(elements, v)
	}
	return object.NewArray(elements), nil
}

func (e *Evaluator) evalObjectLiteral(n *ast.ObjectExpr, frame *env.Frame) (object.Value, error) {
	obj := object.NewObject()
	for _, prop := range n.Properties {
		if prop.Spread != nil {
			v, err := e.evalExpr(prop.Spread, frame)
			if err != nil {
				return nil, err
			}
			src, ok := v.(*object.Object)
			if !ok {
				return nil, throwf(n.Rng, "spread source is not an object")
			}
			for _, k := range src.Keys() {
				val, _ := src.Get(k)
				obj.Set(k, val)
			}
			continue
		}
		key := prop.Key
		if prop.Computed {
			kv, err := e.evalExpr(prop.KeyExpr, frame)
			if err != nil {
				return nil, err
			}
			key = kv.ConcatString()
		}
		v, err := e.evalExpr(prop.Value, frame)
		if err != nil {
			return nil, err
		}
		obj.Set(key, v)
	}
	return obj, nil
}

// --- member access ---------------------------------------------------------

func (e *Evaluator) evalMemberGet(n *ast.MemberExpr, frame *env.Frame) (object.Value, error) {
	obj, err := e.evalExpr(n.Object, frame)
	if err != nil {
		return nil, err
	}
	return e.getMember(obj, n, frame)
}

func (e *Evaluator) getMember(obj object.Value, n *ast.MemberExpr, frame *env.Frame) (object.Value, error) {
	if n.Computed {
		key, err := e.evalExpr(n.Property, frame)
		if err != nil {
			return nil, err
		}
		return indexValue(obj, key, n.Rng)
	}
	name := n.Property.(*ast.Identifier).Name
	switch v := obj.(type) {
	case *object.Array:
		if name == "length" {
			return object.Number(len(v.Elements)), nil
		}
		return object.Undefined{}, nil
	case *object.Object:
		if val, ok := v.Get(name); ok {
			return val, nil
		}
		return object.Undefined{}, nil
	case object.String:
		if name == "length" {
			return object.Number(len(v)), nil
		}
		return object.Undefined{}, nil
	default:
		return nil, throwf(n.Rng, "cannot read property '%s' of %s", name, displayForError(obj))
	}
}

// indexValue implements computed member access `o[e]` (spec.md §4.3 "Member
// access"): arrays accept integer indices returning Undefined out of range;
// objects accept any string key, Undefined for missing keys.
func indexValue(obj, key object.Value, rng token.Range) (object.Value, error) {
	switch v := obj.(type) {
	case *object.Array:
		idx, ok := toIndex(key)
		if !ok {
			return object.Undefined{}, nil
		}
		return v.Get(idx), nil
	case *object.Object:
		val, ok := v.Get(key.ConcatString())
		if !ok {
			return object.Undefined{}, nil
		}
		return val, nil
	case object.String:
		idx, ok := toIndex(key)
		if !ok || idx < 0 || idx >= len(v) {
			return object.Undefined{}, nil
		}
		return object.String(v[idx : idx+1]), nil
	default:
		return nil, throwf(rng, "%s is not indexable", displayForError(obj))
	}
}

func toIndex(v object.Value) (int, bool) {
	f := object.ToNumber(v)
	if math.IsNaN(f) || f != math.Trunc(f) || f < 0 {
		return 0, false
	}
	return int(f), true
}

func displayForError(v object.Value) string {
	if v == nil {
		return "undefined"
	}
	return v.Kind().String()
}

// --- assignment --------------------------------------------------------

func (e *Evaluator) evalAssignment(n *ast.AssignmentExpr, frame *env.Frame) (object.Value, error) {
	value, err := e.evalExpr(n.Value, frame)
	if err != nil {
		return nil, err
	}

	if n.Pattern != nil {
		if err := e.bindPattern(n.Pattern, value, frame, false, true); err != nil {
			return nil, err
		}
		return value, nil
	}

	if n.Op != "=" {
		current, err := e.evalExpr(n.Target, frame)
		if err != nil {
			return nil, err
		}
		arith := n.Op[:len(n.Op)-1] // "+=" -> "+"
		value, err = applyBinaryOp(arith, current, value)
		if err != nil {
			return nil, err
		}
	}

	switch target := n.Target.(type) {
	case *ast.Identifier:
		if err := frame.Assign(target.Name, value); err != nil {
			return nil, throwf(target.Rng, "%s", err.Error())
		}
		return value, nil
	case *ast.MemberExpr:
		if err := e.setMember(target, value, frame); err != nil {
			return nil, err
		}
		return value, nil
	default:
		invariant.Invariant(false, "unassignable target %T reached evalAssignment", n.Target)
		return nil, nil
	}
}

func (e *Evaluator) setMember(n *ast.MemberExpr, value object.Value, frame *env.Frame) error {
	obj, err := e.evalExpr(n.Object, frame)
	if err != nil {
		return err
	}

	var key object.Value
	if n.Computed {
		key, err = e.evalExpr(n.Property, frame)
		if err != nil {
			return err
		}
	} else {
		key = object.String(n.Property.(*ast.Identifier).Name)
	}

	switch v := obj.(type) {
	case *object.Array:
		idx, ok := toIndex(key)
		if !ok {
			return throwf(n.Rng, "array index must be a non-negative integer")
		}
		v.Set(idx, value)
		return nil
	case *object.Object:
		v.Set(key.ConcatString(), value)
		return nil
	default:
		return throwf(n.Rng, "cannot assign property of %s", displayForError(obj))
	}
}

// --- function calls ------------------------------------------------------

func (e *Evaluator) evalCall(n *ast.CallExpr, frame *env.Frame) (object.Value, error) {
	callee, err := e.evalExpr(n.Callee, frame)
	if err != nil {
		return nil, err
	}
	args, err := e.evalArgs(n.Args, frame)
	if err != nil {
		return nil, err
	}

	switch fn := callee.(type) {
	case *object.Function:
		return e.callFunction(fn, args, n.Rng)
	case *object.NativeFunction:
		if fn.Schema != nil {
			jsonArgs := make([]any, len(args))
			for i, a := range args {
				jsonArgs[i] = object.ToJSON(a)
			}
			if err := config.ValidateArgs(fn.Schema, jsonArgs); err != nil {
				return nil, throwf(n.Rng, "%s: %s", fn.Name, err.Error())
			}
		}
		v, nerr := fn.Fn(args, frame)
		if nerr != nil {
			if ts, ok := nerr.(*ThrowSignal); ok {
				return nil, ts
			}
			return nil, throwf(n.Rng, "%s", nerr.Error())
		}
		return v, nil
	default:
		return nil, e.notCallable(n, frame)
	}
}

func (e *Evaluator) notCallable(n *ast.CallExpr, frame *env.Frame) error {
	msg := "value is not callable"
	if id, ok := n.Callee.(*ast.Identifier); ok {
		msg = "'" + id.Name + "' is not callable"
		if suggestion := findClosestMatch(id.Name, callableNames(frame)); suggestion != "" {
			msg += ", did you mean '" + suggestion + "'?"
		}
	}
	return throwf(n.Rng, "%s", msg)
}

// callableNames collects names bound to a Function/NativeFunction value,
// visible from frame, for the "did you mean" suggestion on a not-callable
// error (eval/errors.go, grounded in the teacher's decorator-typo matching).
func callableNames(frame *env.Frame) []string {
	var out []string
	for _, name := range frame.Names() {
		v, ok := frame.Get(name)
		if !ok {
			continue
		}
		switch v.(type) {
		case *object.Function, *object.NativeFunction:
			out = append(out, name)
		}
	}
	return out
}

func (e *Evaluator) evalArgs(exprs []ast.Expression, frame *env.Frame) ([]object.Value, error) {
	var out []object.Value
	for _, a := range exprs {
		if sp, ok := a.(*ast.SpreadExpr); ok {
			v, err := e.evalExpr(sp.Argument, frame)
			if err != nil {
				return nil, err
			}
			arr, ok := v.(*object.Array)
			if !ok {
				return nil, throwf(sp.Rng, "spread argument is not an array")
			}
			out = append(out, arr.Elements...)
			continue
		}
		v, err := e.evalExpr(a, frame)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (e *Evaluator) maxDepth() int {
	if e.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return e.MaxDepth
}

// callFunction implements spec.md §4.3 "Function calls": a new frame is
// created whose parent is the function's captured frame, parameters are
// bound by pattern, then the body executes.
func (e *Evaluator) callFunction(fn *object.Function, args []object.Value, rng token.Range) (object.Value, error) {
	e.depth++
	defer func() { e.depth-- }()
	if e.depth > e.maxDepth() {
		return nil, throwf(rng, "stack overflow: call depth exceeded")
	}

	parentFrame, ok := fn.Closure.(*env.Frame)
	invariant.Invariant(ok, "function closure is not an *env.Frame")
	callFrame := parentFrame.NewChild()

	if err := e.bindParams(fn.Params, args, callFrame); err != nil {
		return nil, err
	}

	if fn.ExprBody != nil {
		return e.evalExpr(fn.ExprBody, callFrame)
	}

	c := e.execStatements(fn.Body.Statements, callFrame)
	switch c.kind {
	case ctrlReturn:
		return c.value, nil
	case ctrlThrow:
		return nil, &ThrowSignal{Value: c.value, Range: rangeOr(c.rng, rng)}
	case ctrlNormal:
		return object.Undefined{}, nil
	default:
		return nil, throwf(rng, "illegal break/continue outside a loop")
	}
}

// bindParams binds the evaluated call arguments to a function's formal
// parameter patterns, expanding a trailing rest parameter (spec.md §4.3
// "Function calls": "extra positional discarded unless a rest parameter
// collects them").
func (e *Evaluator) bindParams(params []ast.Pattern, args []object.Value, frame *env.Frame) error {
	for i, p := range params {
		if rest, ok := p.(*ast.RestElement); ok {
			var restVals []object.Value
			if i < len(args) {
				restVals = append(restVals, args[i:]...)
			}
			return e.bindPattern(rest.Target, object.NewArray(restVals), frame, false, false)
		}
		var v object.Value = object.Undefined{}
		if i < len(args) {
			v = args[i]
		}
		if err := e.bindPattern(p, v, frame, false, false); err != nil {
			return err
		}
	}
	return nil
}

// --- pattern binding -------------------------------------------------------

// bindPattern binds value to pat in frame. When isAssignment is false this
// is a declaration (variable declarators, function params, catch bindings);
// when true it is a destructuring assignment expression (`[a, b] = pair`),
// which reassigns existing bindings instead of declaring new ones (spec.md
// §4.2 "Patterns", §4.3 "Binding semantics").
func (e *Evaluator) bindPattern(pat ast.Pattern, value object.Value, frame *env.Frame, constant bool, isAssignment bool) error {
	switch p := pat.(type) {
	case *ast.Identifier:
		if isAssignment {
			if err := frame.Assign(p.Name, value); err != nil {
				return throwf(p.Rng, "%s", err.Error())
			}
			return nil
		}
		if err := frame.Declare(p.Name, value, constant); err != nil {
			return throwf(p.Rng, "%s", err.Error())
		}
		return nil

	case *ast.AssignmentPattern:
		v := value
		if isUndefined(value) {
			dv, err := e.evalExpr(p.Default, frame)
			if err != nil {
				return err
			}
			v = dv
		}
		return e.bindPattern(p.Target, v, frame, constant, isAssignment)

	case *ast.RestElement:
		return e.bindPattern(p.Target, value, frame, constant, isAssignment)

	case *ast.ArrayPattern:
		return e.bindArrayPattern(p, value, frame, constant, isAssignment)

	case *ast.ObjectPattern:
		return e.bindObjectPattern(p, value, frame, constant, isAssignment)

	default:
		invariant.Invariant(false, "unknown pattern type %T", pat)
		return nil
	}
}

func isUndefined(v object.Value) bool {
	_, ok := v.(object.Undefined)
	return ok
}

func (e *Evaluator) bindArrayPattern(p *ast.ArrayPattern, value object.Value, frame *env.Frame, constant, isAssignment bool) error {
	arr, ok := value.(*object.Array)
	if !ok {
		return throwf(p.Rng, "cannot destructure non-array value")
	}
	for i, el := range p.Elements {
		if el.Target == nil {
			continue // elided hole
		}
		v := arr.Get(i)
		if isUndefined(v) && el.Default != nil {
			dv, err := e.evalExpr(el.Default, frame)
			if err != nil {
				return err
			}
			v = dv
		}
		if err := e.bindPattern(el.Target, v, frame, constant, isAssignment); err != nil {
			return err
		}
	}
	if p.Rest != nil {
		var restVals []object.Value
		if len(arr.Elements) > len(p.Elements) {
			restVals = append(restVals, arr.Elements[len(p.Elements):]...)
		}
		if err := e.bindPattern(p.Rest, object.NewArray(restVals), frame, constant, isAssignment); err != nil {
			return err
		}
	}
	return nil
}

func (e *Evaluator) bindObjectPattern(p *ast.ObjectPattern, value object.Value, frame *env.Frame, constant, isAssignment bool) error {
	obj, ok := value.(*object.Object)
	if !ok {
		return throwf(p.Rng, "cannot destructure non-object value")
	}
	used := make(map[string]bool, len(p.Properties))
	for _, prop := range p.Properties {
		used[prop.Key] = true
		v, present := obj.Get(prop.Key)
		if !present {
			v = object.Undefined{}
		}
		if isUndefined(v) && prop.Default != nil {
			dv, err := e.evalExpr(prop.Default, frame)
			if err != nil {
				return err
			}
			v = dv
		}
		if err := e.bindPattern(prop.Target, v, frame, constant, isAssignment); err != nil {
			return err
		}
	}
	if p.Rest != nil {
		rest := object.NewObject()
		for _, k := range obj.Keys() {
			if used[k] {
				continue
			}
			v, _ := obj.Get(k)
			rest.Set(k, v)
		}
		if err := e.bindPattern(p.Rest, rest, frame, constant, isAssignment); err != nil {
			return err
		}
	}
	return nil
}
