package ast

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"github.com/SPSarkar88/NovaLang-sub001/token"
)

func numberLit(n float64) *Literal {
	return &Literal{Kind: NumberLiteral, Number: n}
}

func TestFingerprintStableAcrossPositions(t *testing.T) {
	progA := &Program{Statements: []Statement{
		&ExpressionStatement{Expr: &BinaryExpr{Op: "+", Left: numberLit(1), Right: numberLit(2), Rng: token.Range{Start: token.Position{Line: 1, Column: 1}}}},
	}}
	progB := &Program{Statements: []Statement{
		&ExpressionStatement{Expr: &BinaryExpr{Op: "+", Left: numberLit(1), Right: numberLit(2), Rng: token.Range{Start: token.Position{Line: 9, Column: 9}}}},
	}}

	fpA, err := progA.Fingerprint()
	require.NoError(t, err)
	fpB, err := progB.Fingerprint()
	require.NoError(t, err)
	require.Equal(t, fpA, fpB, "fingerprint must ignore source positions")
}

func TestFingerprintDiffersOnSemanticChange(t *testing.T) {
	plus := &Program{Statements: []Statement{
		&ExpressionStatement{Expr: &BinaryExpr{Op: "+", Left: numberLit(1), Right: numberLit(2)}},
	}}
	minus := &Program{Statements: []Statement{
		&ExpressionStatement{Expr: &BinaryExpr{Op: "-", Left: numberLit(1), Right: numberLit(2)}},
	}}

	fpPlus, err := plus.Fingerprint()
	require.NoError(t, err)
	fpMinus, err := minus.Fingerprint()
	require.NoError(t, err)
	require.NotEqual(t, fpPlus, fpMinus)
}

// TestProgramStructurallyEqualIgnoringPositions complements the fingerprint
// tests above with a direct AST diff: require.Equal would fail here purely
// on the differing token.Range positions, so go-cmp is used with those
// fields stripped out to assert the trees are otherwise identical.
func TestProgramStructurallyEqualIgnoringPositions(t *testing.T) {
	progA := &Program{Statements: []Statement{
		&ExpressionStatement{Expr: &BinaryExpr{Op: "+", Left: numberLit(1), Right: numberLit(2), Rng: token.Range{Start: token.Position{Line: 1, Column: 1}}}},
	}}
	progB := &Program{Statements: []Statement{
		&ExpressionStatement{Expr: &BinaryExpr{Op: "+", Left: numberLit(1), Right: numberLit(2), Rng: token.Range{Start: token.Position{Line: 9, Column: 9}}}},
	}}

	if diff := cmp.Diff(progA, progB, cmpopts.IgnoreTypes(token.Range{})); diff != "" {
		t.Errorf("programs differ beyond source position (-A +B):\n%s", diff)
	}
}

// TestProgramDiffReportsOperatorChange shows go-cmp earning its keep where
// require.Equal would only say "not equal": the diff names the exact field
// that diverged.
func TestProgramDiffReportsOperatorChange(t *testing.T) {
	plus := &Program{Statements: []Statement{
		&ExpressionStatement{Expr: &BinaryExpr{Op: "+", Left: numberLit(1), Right: numberLit(2)}},
	}}
	minus := &Program{Statements: []Statement{
		&ExpressionStatement{Expr: &BinaryExpr{Op: "-", Left: numberLit(1), Right: numberLit(2)}},
	}}

	diff := cmp.Diff(plus, minus, cmpopts.IgnoreTypes(token.Range{}))
	require.NotEmpty(t, diff)
	require.Contains(t, diff, "Op")
}

func TestFingerprintIsHexSHA256(t *testing.T) {
	prog := &Program{Statements: []Statement{
		&ExpressionStatement{Expr: numberLit(42)},
	}}
	fp, err := prog.Fingerprint()
	require.NoError(t, err)
	require.Len(t, fp, 64)
}
