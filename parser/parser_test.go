package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/SPSarkar88/NovaLang-sub001/ast"
)

func TestParseVariableDeclaration(t *testing.T) {
	prog, diag := Parse("let x = 1 + 2;")
	require.Nil(t, diag)
	require.Len(t, prog.Statements, 1)

	decl, ok := prog.Statements[0].(*ast.VariableDeclaration)
	require.True(t, ok)
	require.Equal(t, ast.LetDecl, decl.Kind)
	require.Len(t, decl.Declarators, 1)

	ident, ok := decl.Declarators[0].Target.(*ast.Identifier)
	require.True(t, ok)
	require.Equal(t, "x", ident.Name)

	bin, ok := decl.Declarators[0].Initializer.(*ast.BinaryExpr)
	require.True(t, ok)
	require.Equal(t, "+", bin.Op)
}

func TestParseConstRequiresInitializer(t *testing.T) {
	_, diag := Parse("const x;")
	require.NotNil(t, diag)
}

func TestParseFunctionDeclaration(t *testing.T) {
	prog, diag := Parse("function add(a, b) { return a + b; }")
	require.Nil(t, diag)
	fn, ok := prog.Statements[0].(*ast.FunctionDeclaration)
	require.True(t, ok)
	require.Equal(t, "add", fn.Name)
	require.Len(t, fn.Params, 2)
}

func TestParseIfElse(t *testing.T) {
	prog, diag := Parse("if (x > 0) { y = 1; } else { y = -1; }")
	require.Nil(t, diag)
	stmt, ok := prog.Statements[0].(*ast.IfStatement)
	require.True(t, ok)
	require.NotNil(t, stmt.Then)
	require.NotNil(t, stmt.Else)
}

func TestParseArrowFunctionExpressionBody(t *testing.T) {
	prog, diag := Parse("let f = (a, b) => a + b;")
	require.Nil(t, diag)
	decl := prog.Statements[0].(*ast.VariableDeclaration)
	arrow, ok := decl.Declarators[0].Initializer.(*ast.ArrowFunctionExpr)
	require.True(t, ok)
	require.True(t, arrow.ExprBody)
}

func TestParseArrowFunctionBlockBody(t *testing.T) {
	prog, diag := Parse("let f = (a) => { return a; };")
	require.Nil(t, diag)
	decl := prog.Statements[0].(*ast.VariableDeclaration)
	arrow, ok := decl.Declarators[0].Initializer.(*ast.ArrowFunctionExpr)
	require.True(t, ok)
	require.False(t, arrow.ExprBody)
}

func TestParseArrayDestructuringAssignmentTarget(t *testing.T) {
	prog, diag := Parse("let pair = [1, 2]; [a, b] = pair;")
	require.Nil(t, diag)
	stmt := prog.Statements[1].(*ast.ExpressionStatement)
	assign, ok := stmt.Expr.(*ast.AssignmentExpr)
	require.True(t, ok)
	require.NotNil(t, assign.Pattern)
	_, ok = assign.Pattern.(*ast.ArrayPattern)
	require.True(t, ok)
}

func TestParseRejectsImport(t *testing.T) {
	_, diag := Parse(`import "x";`)
	require.NotNil(t, diag)
}

func TestParseUnexpectedTokenReportsDiagnostic(t *testing.T) {
	_, diag := Parse("let = 1;")
	require.NotNil(t, diag)
	require.Equal(t, "ParseError", string(diag.Kind))
}
