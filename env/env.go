// Package env implements NovaLang's lexical environment: a chain of frames
// mapping names to values, one frame per block/function/for-header (spec.md
// §4.3 "Binding semantics").
//
// Grounded in the teacher's runtime/planner/scope_graph.go ScopeGraph/Scope:
// the parent-pointer chain, shadowing-by-traversal, and a per-entry metadata
// field (there, VarClass/VarTaint for transport security; here, a single
// `constant` bit for NovaLang's immutable const bindings) all carry over.
// The security-boundary machinery (sealedFromParent, imports,
// TransportBoundaryError) has no counterpart in a single-process language
// runtime and was dropped.
package env

import (
	"fmt"

	"github.com/SPSarkar88/NovaLang-sub001/object"
)

type binding struct {
	value    object.Value
	constant bool
}

// Frame is one lexical scope: a map of its own bindings plus a pointer to
// the enclosing frame. Frame implements object.Scope so a Function can
// capture one as its closure.
type Frame struct {
	vars   map[string]binding
	parent *Frame
}

// NewGlobal creates a frame with no parent, the root of an evaluation.
func NewGlobal() *Frame {
	return &Frame{vars: make(map[string]binding)}
}

// NewChild creates a frame nested inside f, used when entering a block,
// function body, or for-header (spec.md §4.3 "Binding semantics").
func (f *Frame) NewChild() *Frame {
	return &Frame{vars: make(map[string]binding), parent: f}
}

// Declare binds name in this frame. Re-declaring a name already present in
// this frame (not an ancestor) is an error.
func (f *Frame) Declare(name string, v object.Value, constant bool) error {
	if _, exists := f.vars[name]; exists {
		return fmt.Errorf("redeclaration of '%s' in the same scope", name)
	}
	f.vars[name] = binding{value: v, constant: constant}
	return nil
}

// Get looks up name by walking from f up through its ancestors.
func (f *Frame) Get(name string) (object.Value, bool) {
	for frame := f; frame != nil; frame = frame.parent {
		if b, ok := frame.vars[name]; ok {
			return b.value, true
		}
	}
	return nil, false
}

// Assign rebinds an existing name to a new value, walking up the chain to
// find the frame that declared it. Assigning to a const is an error, as is
// assigning to a name that was never declared.
func (f *Frame) Assign(name string, v object.Value) error {
	for frame := f; frame != nil; frame = frame.parent {
		if b, ok := frame.vars[name]; ok {
			if b.constant {
				return fmt.Errorf("assignment to constant '%s'", name)
			}
			frame.vars[name] = binding{value: v, constant: false}
			return nil
		}
	}
	return fmt.Errorf("undefined variable '%s'", name)
}

// Names collects every name visible from f, walking up through its
// ancestors, for "did you mean" diagnostics on an undefined variable.
func (f *Frame) Names() []string {
	seen := make(map[string]bool)
	var out []string
	for frame := f; frame != nil; frame = frame.parent {
		for name := range frame.vars {
			if !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		}
	}
	return out
}

var _ object.Scope = (*Frame)(nil)
