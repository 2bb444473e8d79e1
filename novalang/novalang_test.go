package novalang

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/SPSarkar88/NovaLang-sub001/diagnostic"
	"github.com/SPSarkar88/NovaLang-sub001/object"
)

func TestEvaluateReturnsLastExpressionValue(t *testing.T) {
	var out bytes.Buffer
	value, diag := Evaluate("1 + 2;", Options{Out: &out})
	require.Nil(t, diag)
	require.Equal(t, object.Number(3), value)
}

func TestEvaluateSurfacesParseDiagnosticWithFileAttached(t *testing.T) {
	_, diag := Evaluate("let = ;", Options{File: "broken.nova"})
	require.NotNil(t, diag)
	require.Equal(t, diagnostic.ParseError, diag.Kind)
	require.Equal(t, "broken.nova", diag.File)
}

func TestEvaluateSurfacesRuntimeDiagnostic(t *testing.T) {
	_, diag := Evaluate("undefinedName;", Options{File: "x.nova"})
	require.NotNil(t, diag)
	require.Equal(t, diagnostic.RuntimeError, diag.Kind)
	require.Equal(t, "x.nova", diag.File)
}

func TestEvaluateInjectsRegisteredNatives(t *testing.T) {
	var out bytes.Buffer
	value, diag := Evaluate("hostDouble(21);", Options{
		Out: &out,
		Natives: map[string]Native{
			"hostDouble": func(args []object.Value, _ object.Scope) (object.Value, error) {
				return object.Number(2 * object.ToNumber(args[0])), nil
			},
		},
	})
	require.Nil(t, diag)
	require.Equal(t, object.Number(42), value)
}

func TestEvaluateIsolatesGlobalStateAcrossCalls(t *testing.T) {
	_, diag := Evaluate("let x = 1;", Options{})
	require.Nil(t, diag)

	// x from the previous call must not leak into a fresh Evaluate call.
	_, diag = Evaluate("x;", Options{})
	require.NotNil(t, diag)
	require.Equal(t, diagnostic.RuntimeError, diag.Kind)
}

func TestEvaluateRespectsMaxCallDepth(t *testing.T) {
	_, diag := Evaluate(`
		function recurse(n) { return recurse(n + 1); }
		recurse(0);
	`, Options{MaxCallDepth: 8})
	require.NotNil(t, diag)
	require.Equal(t, diagnostic.RuntimeError, diag.Kind)
}

func TestParseReturnsProgramWithoutEvaluating(t *testing.T) {
	prog, diag := Parse("1 + 2;")
	require.Nil(t, diag)
	require.Len(t, prog.Statements, 1)
}

func TestNewGlobalEnvLayersNativesOverBuiltins(t *testing.T) {
	global := NewGlobalEnv(&bytes.Buffer{}, map[string]Native{
		"hostFn": func(args []object.Value, _ object.Scope) (object.Value, error) {
			return object.String("ok"), nil
		},
	})

	_, ok := global.Get("console")
	require.True(t, ok, "builtins should still be present")

	v, ok := global.Get("hostFn")
	require.True(t, ok)
	nf, ok := v.(*object.NativeFunction)
	require.True(t, ok)
	result, err := nf.Fn(nil, nil)
	require.NoError(t, err)
	require.Equal(t, object.String("ok"), result)
}
