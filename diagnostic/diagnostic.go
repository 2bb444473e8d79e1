// Package diagnostic defines the single error shape shared by the lexer,
// parser and evaluator, modeled on the teacher's ParseError (runtime/parser/errors.go):
// a message pinned to a token range, renderable either as a compact one-liner
// for the §6 host contract or as a Rust/Clang-style source snippet.
package diagnostic

import (
	"fmt"
	"strings"

	"github.com/SPSarkar88/NovaLang-sub001/token"
)

// Kind categorizes where in the pipeline a Diagnostic originated.
type Kind string

const (
	LexError     Kind = "LexError"
	ParseError   Kind = "ParseError"
	RuntimeError Kind = "RuntimeError"
)

// Diagnostic is a single pipeline failure pinned to a source range.
type Diagnostic struct {
	Kind    Kind
	Message string
	Range   token.Range
	File    string // empty for in-memory/REPL sources
	Source  string // full source text, used only to render a snippet
}

// New constructs a Diagnostic without a snippet-capable source.
func New(kind Kind, message string, rng token.Range) *Diagnostic {
	return &Diagnostic{Kind: kind, Message: message, Range: rng}
}

// Error implements the error interface using the §6 one-line format:
// "<file>:<line>:<column>: <kind>: <message>".
func (d *Diagnostic) Error() string {
	file := d.File
	if file == "" {
		file = "<input>"
	}
	return fmt.Sprintf("%s:%d:%d: %s: %s", file, d.Range.Start.Line, d.Range.Start.Column, d.Kind, d.Message)
}

// Snippet renders a caret-annotated source excerpt the way the teacher's
// ParseError.createCodeSnippet does, for human-facing CLI output.
func (d *Diagnostic) Snippet() string {
	if d.Source == "" || d.Range.Start.Line == 0 {
		return ""
	}
	lines := strings.Split(d.Source, "\n")
	if d.Range.Start.Line > len(lines) {
		return ""
	}
	lineContent := lines[d.Range.Start.Line-1]

	var b strings.Builder
	fmt.Fprintf(&b, "  --> %d:%d\n", d.Range.Start.Line, d.Range.Start.Column)
	b.WriteString("   |\n")
	fmt.Fprintf(&b, "%2d | %s\n", d.Range.Start.Line, lineContent)
	b.WriteString("   | ")
	if d.Range.Start.Column > 0 && d.Range.Start.Column <= len(lineContent)+1 {
		b.WriteString(strings.Repeat(" ", d.Range.Start.Column-1) + "^")
	}
	return b.String()
}
