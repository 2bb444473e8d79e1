// Package novalang is the host surface spec.md §1 and §6 describe: embedders
// call Evaluate/Parse and inject natives through Options.Natives (or
// NewGlobalEnv) instead of wiring the lexer, parser and evaluator together
// themselves. The CLI's REPL pairs NewGlobalEnv with an eval.Evaluator so one
// global frame persists across lines.
package novalang

import (
	"io"
	"os"

	"github.com/SPSarkar88/NovaLang-sub001/ast"
	"github.com/SPSarkar88/NovaLang-sub001/builtins"
	"github.com/SPSarkar88/NovaLang-sub001/diagnostic"
	"github.com/SPSarkar88/NovaLang-sub001/env"
	"github.com/SPSarkar88/NovaLang-sub001/eval"
	"github.com/SPSarkar88/NovaLang-sub001/object"
	"github.com/SPSarkar88/NovaLang-sub001/parser"
)

// Native is the signature a host provides to RegisterNative: the evaluated
// argument list and the environment the call executed in (spec.md §4.3
// "Function calls").
type Native = func(args []object.Value, scope object.Scope) (object.Value, error)

// Options configures a single Evaluate call. Every field is optional.
type Options struct {
	// Out receives console.log output; defaults to os.Stdout.
	Out io.Writer
	// File attaches a file name to any diagnostic produced.
	File string
	// MaxCallDepth bounds user-function recursion (spec.md §5); zero uses
	// eval.DefaultMaxDepth.
	MaxCallDepth int
	// Natives are injected into the global frame before evaluation begins,
	// implementing spec.md §6's register_native hook.
	Natives map[string]Native
}

// Parse tokenizes and parses source into a Program, for tooling that wants
// the AST only (spec.md §6 `parse(source) -> Result<Program, Diagnostic>`).
func Parse(source string) (*ast.Program, *diagnostic.Diagnostic) {
	return parser.Parse(source)
}

// Evaluate tokenizes, parses and evaluates source against a fresh global
// environment, implementing spec.md §6's
// `evaluate(source) -> Result<Value, Diagnostic>`. Each call builds its own
// global frame (spec.md §9 "Global mutable state" — no process-wide
// singleton), so concurrent or repeated calls never share script state.
func Evaluate(source string, opts Options) (object.Value, *diagnostic.Diagnostic) {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	prog, diag := parser.ParseFile(source, opts.File)
	if diag != nil {
		return nil, diag
	}

	global := NewGlobalEnv(out, opts.Natives)

	ev := eval.New(out)
	if opts.MaxCallDepth > 0 {
		ev.MaxDepth = opts.MaxCallDepth
	}

	value, diag := ev.Run(prog, global)
	if diag != nil {
		diag.File = opts.File
		diag.Source = source
		return nil, diag
	}
	return value, nil
}

// NewGlobalEnv builds the global frame builtins.New constructs and layers
// any host-provided natives on top, the shape both Evaluate and the CLI's
// REPL loop need.
func NewGlobalEnv(out io.Writer, natives map[string]Native) *env.Frame {
	global := builtins.New(out)
	for name, fn := range natives {
		builtins.RegisterNative(global, name, fn)
	}
	return global
}
