package eval

import (
	"fmt"
	"sort"

	"github.com/SPSarkar88/NovaLang-sub001/object"
	"github.com/SPSarkar88/NovaLang-sub001/token"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// ThrowSignal is the error type every evaluation path that can raise a
// NovaLang exception returns: either a user `throw expr`, or a host-side
// runtime error (not callable, undefined variable, bad destructure, ...)
// wrapped in the same Error value shape so `catch` sees one uniform payload.
type ThrowSignal struct {
	Value object.Value
	Range token.Range
}

func (t *ThrowSignal) Error() string {
	return fmt.Sprintf("uncaught exception: %s", t.Value.Display())
}

// newErrorValue builds the built-in Error wrapper used as the default Throw
// payload for dynamic runtime errors (spec.md §4.3, §7): an ordinary Object
// with name, message, and a stack field rendering the origin position, so
// user code can inspect it in a catch block like any other value.
func newErrorValue(message string, rng token.Range) object.Value {
	err := object.NewObject()
	err.Set("name", object.String("Error"))
	err.Set("message", object.String(message))
	err.Set("stack", object.String(fmt.Sprintf("at %d:%d", rng.Start.Line, rng.Start.Column)))
	return err
}

func throwf(rng token.Range, format string, args ...interface{}) error {
	return &ThrowSignal{Value: newErrorValue(fmt.Sprintf(format, args...), rng), Range: rng}
}

// throwMessage renders a thrown value for a top-level RuntimeError
// diagnostic. The evaluator's own Error wrappers unwrap to their message so
// `const x = 1; x = 2;` surfaces as "assignment to constant 'x'" rather than
// a printed object; any other thrown value keeps the uncaught-exception
// prefix.
func throwMessage(v object.Value) string {
	if obj, ok := v.(*object.Object); ok {
		name, _ := obj.Get("name")
		msg, hasMsg := obj.Get("message")
		if ns, ok := name.(object.String); ok && ns == "Error" && hasMsg {
			if ms, ok := msg.(object.String); ok {
				return string(ms)
			}
		}
	}
	return "uncaught exception: " + v.Display()
}

// findClosestMatch suggests a "did you mean" candidate for an undefined
// variable, grounded in the teacher's runtime/planner/planner.go
// findClosestMatch, which ranks decorator-name typos the same way.
func findClosestMatch(target string, candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}
	ranks := fuzzy.RankFindFold(target, candidates)
	if len(ranks) == 0 {
		return ""
	}
	sort.Sort(ranks)
	return ranks[0].Target
}
