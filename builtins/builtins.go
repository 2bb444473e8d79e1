// Package builtins constructs NovaLang's global environment: the
// console/Math/Array/typeof surface spec.md §4.4 calls out, plus the
// register_native host hook of §6 ("inject a native function into the
// global frame before evaluation").
//
// Grounded in the teacher's core/decorators/registry.go Registry: a name ->
// callable map with collision detection on registration. NovaLang's global
// frame plays the same role for native bindings, generalized from decorator
// names (`@env`, `@retry`) to ordinary identifiers (`console`, `Math`,
// `typeof`) a script references directly.
package builtins

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/SPSarkar88/NovaLang-sub001/env"
	"github.com/SPSarkar88/NovaLang-sub001/object"
)

// New constructs a fresh global frame pre-populated with spec.md §4.4's
// built-ins, writing console.log output to out. Each call returns an
// independent frame so hosts can isolate scripts from one another (spec.md
// §9 "Global mutable state").
func New(out io.Writer) *env.Frame {
	global := env.NewGlobal()

	must(global.Declare("console", consoleObject(out), true))
	must(global.Declare("Math", mathObject(), true))
	must(global.Declare("Array", arrayObject(), true))
	must(global.Declare("typeof", native("typeof", typeofFn), true))

	return global
}

// RegisterNative implements spec.md §6's `register_native(name, callable)`
// host hook: inject an additional native function into global before
// evaluation begins. Re-registering an existing name replaces it, the same
// "last registration wins" policy a host embedding expects from an ordinary
// rebindable global.
func RegisterNative(global *env.Frame, name string, fn func(args []object.Value, scope object.Scope) (object.Value, error)) {
	register(global, &object.NativeFunction{Name: name, Fn: fn})
}

// RegisterNativeSchema is RegisterNative with a JSON Schema attached: the
// evaluator validates each call's argument list (as a JSON array) against
// schema before fn runs, raising a catchable RuntimeError on mismatch. See
// config.ValidateArgs.
func RegisterNativeSchema(global *env.Frame, name string, schema any, fn func(args []object.Value, scope object.Scope) (object.Value, error)) {
	register(global, &object.NativeFunction{Name: name, Fn: fn, Schema: schema})
}

func register(global *env.Frame, nf *object.NativeFunction) {
	if _, exists := global.Get(nf.Name); exists {
		must(global.Assign(nf.Name, nf))
		return
	}
	must(global.Declare(nf.Name, nf, false))
}

func must(err error) {
	if err != nil {
		panic("builtins: " + err.Error())
	}
}

func native(name string, fn func(args []object.Value, scope object.Scope) (object.Value, error)) *object.NativeFunction {
	return &object.NativeFunction{Name: name, Fn: fn}
}

func arg(args []object.Value, i int) object.Value {
	if i < 0 || i >= len(args) {
		return object.Undefined{}
	}
	return args[i]
}

// --- console -----------------------------------------------------------

func consoleObject(out io.Writer) *object.Object {
	console := object.NewObject()
	console.Set("log", native("console.log", func(args []object.Value, _ object.Scope) (object.Value, error) {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = a.Display()
		}
		fmt.Fprintln(out, strings.Join(parts, " "))
		return object.Undefined{}, nil
	}))
	return console
}

// --- Math ----------------------------------------------------------------

func mathObject() *object.Object {
	m := object.NewObject()
	m.Set("PI", object.Number(math.Pi))
	m.Set("E", object.Number(math.E))
	m.Set("abs", mathUnary("Math.abs", math.Abs))
	m.Set("floor", mathUnary("Math.floor", math.Floor))
	m.Set("ceil", mathUnary("Math.ceil", math.Ceil))
	m.Set("round", mathUnary("Math.round", math.Round))
	m.Set("sqrt", mathUnary("Math.sqrt", math.Sqrt))
	m.Set("pow", native("Math.pow", func(args []object.Value, _ object.Scope) (object.Value, error) {
		return object.Number(math.Pow(object.ToNumber(arg(args, 0)), object.ToNumber(arg(args, 1)))), nil
	}))
	m.Set("min", native("Math.min", func(args []object.Value, _ object.Scope) (object.Value, error) {
		return object.Number(reduceNumbers(args, math.Inf(1), math.Min)), nil
	}))
	m.Set("max", native("Math.max", func(args []object.Value, _ object.Scope) (object.Value, error) {
		return object.Number(reduceNumbers(args, math.Inf(-1), math.Max)), nil
	}))
	return m
}

func mathUnary(name string, fn func(float64) float64) *object.NativeFunction {
	return native(name, func(args []object.Value, _ object.Scope) (object.Value, error) {
		return object.Number(fn(object.ToNumber(arg(args, 0)))), nil
	})
}

func reduceNumbers(args []object.Value, seed float64, combine func(a, b float64) float64) float64 {
	result := seed
	for _, a := range args {
		result = combine(result, object.ToNumber(a))
	}
	return result
}

// --- Array -----------------------------------------------------------------

func arrayObject() *object.Object {
	a := object.NewObject()
	a.Set("isArray", native("Array.isArray", func(args []object.Value, _ object.Scope) (object.Value, error) {
		_, ok := arg(args, 0).(*object.Array)
		return object.Boolean(ok), nil
	}))
	a.Set("from", native("Array.from", func(args []object.Value, _ object.Scope) (object.Value, error) {
		switch v := arg(args, 0).(type) {
		case *object.Array:
			elements := make([]object.Value, len(v.Elements))
			copy(elements, v.Elements)
			return object.NewArray(elements), nil
		case object.String:
			elements := make([]object.Value, len(v))
			for i := range v {
				elements[i] = object.String(v[i : i+1])
			}
			return object.NewArray(elements), nil
		default:
			return object.NewArray(nil), nil
		}
	}))
	return a
}

// --- typeof ----------------------------------------------------------------

func typeofFn(args []object.Value, _ object.Scope) (object.Value, error) {
	v := arg(args, 0)
	if v == nil {
		return object.String("undefined"), nil
	}
	return object.String(v.Kind().String()), nil
}
