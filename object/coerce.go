package object

import (
	"math"
	"strconv"
	"strings"
)

// ToNumber implements spec.md §4.3's numeric coercion: non-numeric strings
// become NaN, true/false become 1/0, null becomes 0, undefined becomes NaN.
func ToNumber(v Value) float64 {
	switch t := v.(type) {
	case Number:
		return float64(t)
	case String:
		s := strings.TrimSpace(string(t))
		if s == "" {
			return 0
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	case Boolean:
		if t {
			return 1
		}
		return 0
	case Null:
		return 0
	case Undefined:
		return math.NaN()
	default:
		return math.NaN()
	}
}

// ConcatsAsString reports whether a `+` operand forces the string-
// concatenation branch: strings do (spec.md §4.3 "Arithmetic and coercion"),
// and compound values do because they have no numeric form — `[] + []` is ""
// and `[] + {}` is "[object Object]" (spec.md §8 boundary).
func ConcatsAsString(v Value) bool {
	switch v.(type) {
	case String, *Array, *Object, *Function, *NativeFunction:
		return true
	default:
		return false
	}
}

// Equals implements `===`/`!==`: same kind required, value-equal payload for
// scalars, reference identity for arrays/objects/functions (spec.md §4.3
// "Equality").
func Equals(a, b Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case Number:
		bv := b.(Number)
		return float64(av) == float64(bv)
	case String:
		return av == b.(String)
	case Boolean:
		return av == b.(Boolean)
	case Null:
		return true
	case Undefined:
		return true
	case *Array:
		bv, ok := b.(*Array)
		return ok && av == bv
	case *Object:
		bv, ok := b.(*Object)
		return ok && av == bv
	case *Function:
		bv, ok := b.(*Function)
		return ok && av == bv
	case *NativeFunction:
		bv, ok := b.(*NativeFunction)
		return ok && av == bv
	default:
		return false
	}
}

// LooseEquals implements `==`/`!=`: a restricted coercing equality
// (spec.md §4.3). number<->string compares after numeric coercion of the
// string; booleans coerce to number; null == undefined; everything else
// falls back to strict equality.
func LooseEquals(a, b Value) bool {
	if a.Kind() == b.Kind() {
		return Equals(a, b)
	}
	_, aNull := a.(Null)
	_, aUndef := a.(Undefined)
	_, bNull := b.(Null)
	_, bUndef := b.(Undefined)
	if (aNull || aUndef) && (bNull || bUndef) {
		return true
	}
	if isNumberOrString(a) && isNumberOrString(b) {
		return ToNumber(a) == ToNumber(b)
	}
	if _, ok := a.(Boolean); ok {
		return ToNumber(a) == ToNumber(b)
	}
	if _, ok := b.(Boolean); ok {
		return ToNumber(a) == ToNumber(b)
	}
	return Equals(a, b)
}

func isNumberOrString(v Value) bool {
	switch v.(type) {
	case Number, String:
		return true
	default:
		return false
	}
}

// Compare implements `<`,`<=`,`>`,`>=` ordering: lexicographic when both
// operands are strings, otherwise numeric coercion of both sides
// (spec.md §4.3 "Ordering"). Returns -1, 0, or 1; NaN comparisons report a
// false ok so callers can treat every relational operator as false.
func Compare(a, b Value) (cmp int, ok bool) {
	if as, aok := a.(String); aok {
		if bs, bok := b.(String); bok {
			switch {
			case as < bs:
				return -1, true
			case as > bs:
				return 1, true
			default:
				return 0, true
			}
		}
	}
	af, bf := ToNumber(a), ToNumber(b)
	if math.IsNaN(af) || math.IsNaN(bf) {
		return 0, false
	}
	switch {
	case af < bf:
		return -1, true
	case af > bf:
		return 1, true
	default:
		return 0, true
	}
}
