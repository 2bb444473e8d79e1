// Package object defines NovaLang's uniform runtime value model (spec.md §3):
// numbers, strings, booleans, null, undefined, arrays, objects, and callable
// functions (both user-defined and native).
package object

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/SPSarkar88/NovaLang-sub001/ast"
)

// Kind tags the dynamic type of a Value.
type Kind int

const (
	NumberKind Kind = iota
	StringKind
	BooleanKind
	NullKind
	UndefinedKind
	ArrayKind
	ObjectKind
	FunctionKind
	NativeFunctionKind
)

func (k Kind) String() string {
	switch k {
	case NumberKind:
		return "number"
	case StringKind:
		return "string"
	case BooleanKind:
		return "boolean"
	case NullKind:
		return "null"
	case UndefinedKind:
		return "undefined"
	case ArrayKind:
		return "array"
	case ObjectKind:
		return "object"
	case FunctionKind, NativeFunctionKind:
		return "function"
	default:
		return "unknown"
	}
}

// Value is any NovaLang runtime value.
type Value interface {
	Kind() Kind
	// Truthy implements spec.md §3's truthiness rule.
	Truthy() bool
	// Display renders the value for console.log / REPL output: numbers use
	// shortest round-trip decimal, booleans/null/undefined use their names,
	// arrays print bracketed and comma-space-joined (spec.md §8 scenario 4:
	// `console.log(r)` on `[3, 4]` prints "[3, 4]"), objects print as
	// "{k: v, ...}".
	Display() string
	// ConcatString renders the value the way the `+` operator coerces a
	// non-string operand (spec.md §4.3, §8 boundary). This differs from
	// Display only for compound values: arrays comma-join their elements
	// with no brackets and no spaces (`[] + []` is `""`, `[1,2] + ""` is
	// `"1,2"`), and objects always become the fixed tag "[object Object]"
	// (`[] + {}` is `"[object Object]"`). Resolving spec.md §4.4's claim
	// that console.log uses "the same string form as + coercion" in favor
	// of the literal §8 scenarios, which disagree for compound values — see
	// DESIGN.md.
	ConcatString() string
}

// Number is an IEEE-754 double.
type Number float64

func (Number) Kind() Kind { return NumberKind }
func (n Number) Truthy() bool {
	f := float64(n)
	return f != 0 && !math.IsNaN(f)
}
func (n Number) Display() string {
	f := float64(n)
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	default:
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
}
func (n Number) ConcatString() string { return n.Display() }

// String is immutable text.
type String string

func (String) Kind() Kind            { return StringKind }
func (s String) Truthy() bool        { return len(s) > 0 }
func (s String) Display() string     { return string(s) }
func (s String) ConcatString() string { return string(s) }

// Boolean is true or false.
type Boolean bool

func (Boolean) Kind() Kind            { return BooleanKind }
func (b Boolean) Truthy() bool        { return bool(b) }
func (b Boolean) Display() string     { return strconv.FormatBool(bool(b)) }
func (b Boolean) ConcatString() string { return b.Display() }

// Null is the singleton `null` value.
type Null struct{}

func (Null) Kind() Kind          { return NullKind }
func (Null) Truthy() bool        { return false }
func (Null) Display() string     { return "null" }
func (Null) ConcatString() string { return "null" }

// Undefined is the singleton `undefined` value.
type Undefined struct{}

func (Undefined) Kind() Kind           { return UndefinedKind }
func (Undefined) Truthy() bool         { return false }
func (Undefined) Display() string      { return "undefined" }
func (Undefined) ConcatString() string { return "undefined" }

// Shared singletons so callers can compare against a single instance when
// convenient; equality never depends on pointer identity for these two.
var (
	Null_      = Null{}
	Undefined_ = Undefined{}
)

// Scope is the lookup/bind surface a closure needs from its defining
// environment. It is declared here, not in the env package, so that Function
// can hold a reference to its captured frame without object importing env
// (which itself must import object for Value) — the interface lives with its
// consumer instead of its implementation, the usual way Go breaks this kind
// of two-package cycle.
type Scope interface {
	Get(name string) (Value, bool)
	Declare(name string, v Value, constant bool) error
	Assign(name string, v Value) error
}

// Function is a user-defined closure: a parameter list, a body, and the
// frame it was defined in (spec.md §4.3 "Function calls" — closures capture
// by reference). Exactly one of Body/ExprBody is set: Body for `function`
// declarations/expressions and block-bodied arrows, ExprBody for an arrow
// whose body is a single implicitly-returned expression.
type Function struct {
	Name     string
	Params   []ast.Pattern
	Body     *ast.BlockStatement
	ExprBody ast.Expression
	Closure  Scope
}

func (*Function) Kind() Kind     { return FunctionKind }
func (*Function) Truthy() bool   { return true }
func (f *Function) Display() string {
	if f.Name != "" {
		return fmt.Sprintf("[function %s]", f.Name)
	}
	return "[function anonymous]"
}
func (f *Function) ConcatString() string { return f.Display() }

// NativeFunction is a host-provided callable exposed as an ordinary binding
// (spec.md §4.4 "Built-ins and Global Environment"). Fn receives the
// evaluated argument list and the calling environment, per spec.md §4.3
// "Function calls": "Native functions receive the argument list and current
// environment and return a value directly."
type NativeFunction struct {
	Name   string
	Fn     func(args []Value, env Scope) (Value, error)
	Schema any // optional JSON Schema validated against args before Fn runs; see config.ValidateArgs
}

func (*NativeFunction) Kind() Kind   { return NativeFunctionKind }
func (*NativeFunction) Truthy() bool { return true }
func (n *NativeFunction) Display() string {
	return fmt.Sprintf("[native function %s]", n.Name)
}
func (n *NativeFunction) ConcatString() string { return n.Display() }

// Array is an ordered, mutable sequence of values shared by reference
// (spec.md §5 "Shared resources").
type Array struct {
	Elements []Value
}

func NewArray(elements []Value) *Array { return &Array{Elements: elements} }

func (*Array) Kind() Kind   { return ArrayKind }
func (*Array) Truthy() bool { return true }
func (a *Array) Display() string {
	parts := make([]string, len(a.Elements))
	for i, el := range a.Elements {
		parts[i] = displayElement(el)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// ConcatString comma-joins the array's elements with no brackets and no
// separating spaces, matching the boundary tests `[] + []` → `""` and
// `[1,2] + ""` → `"1,2"`.
func (a *Array) ConcatString() string {
	parts := make([]string, len(a.Elements))
	for i, el := range a.Elements {
		parts[i] = el.ConcatString()
	}
	return strings.Join(parts, ",")
}

// Get returns the element at index, or Undefined if out of range.
func (a *Array) Get(index int) Value {
	if index < 0 || index >= len(a.Elements) {
		return Undefined{}
	}
	return a.Elements[index]
}

// Set assigns index, growing the array with Undefined holes when index is
// past the current length (spec.md §4.3 "Member access").
func (a *Array) Set(index int, value Value) {
	if index < 0 {
		return
	}
	if index >= len(a.Elements) {
		grown := make([]Value, index+1)
		copy(grown, a.Elements)
		for i := len(a.Elements); i < index; i++ {
			grown[i] = Undefined{}
		}
		a.Elements = grown
	}
	a.Elements[index] = value
}

// Object is an insertion-ordered string-keyed map, mutable and shared by
// reference.
type Object struct {
	keys   []string
	values map[string]Value
}

func NewObject() *Object {
	return &Object{values: make(map[string]Value)}
}

func (*Object) Kind() Kind   { return ObjectKind }
func (*Object) Truthy() bool { return true }

func (o *Object) Display() string {
	parts := make([]string, 0, len(o.keys))
	for _, k := range o.keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, displayElement(o.values[k])))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// ConcatString is the fixed ECMAScript-style tag used when an object is
// coerced by `+` (spec.md §8 boundary: `[] + {}` → `"[object Object]"`).
func (*Object) ConcatString() string { return "[object Object]" }

// Get returns the value bound to key and whether it was present.
func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Set binds key to value, appending to the insertion order on first write.
func (o *Object) Set(key string, value Value) {
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// Keys returns the object's keys in insertion order.
func (o *Object) Keys() []string {
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// displayElement renders a value nested inside an array or object's Display
// form. Unlike ConcatString, Display is a full recursive inspection (the
// console.log / REPL form), so nested arrays and objects print their own
// contents rather than collapsing to "[object Object]" — that collapse is
// reserved for `+` coercion (spec.md §8 boundary).
func displayElement(v Value) string {
	if v == nil {
		return "undefined"
	}
	return v.Display()
}
