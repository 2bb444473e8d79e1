package builtins

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/SPSarkar88/NovaLang-sub001/object"
)

func callMethod(t *testing.T, recv *object.Object, name string, args ...object.Value) object.Value {
	t.Helper()
	fn, ok := recv.Get(name)
	require.True(t, ok, "missing method %s", name)
	nf, ok := fn.(*object.NativeFunction)
	require.True(t, ok, "%s is not a native function", name)
	v, err := nf.Fn(args, nil)
	require.NoError(t, err)
	return v
}

func TestNewDeclaresGlobals(t *testing.T) {
	global := New(&bytes.Buffer{})

	for _, name := range []string{"console", "Math", "Array", "typeof"} {
		_, ok := global.Get(name)
		require.True(t, ok, "expected global %q to be declared", name)
	}
}

func TestConsoleLogJoinsArgsWithSpaces(t *testing.T) {
	var out bytes.Buffer
	global := New(&out)
	console, _ := global.Get("console")

	callMethod(t, console.(*object.Object), "log", object.String("a"), object.Number(1), object.Boolean(true))

	require.Equal(t, "a 1 true\n", out.String())
}

func TestMathOperations(t *testing.T) {
	global := New(&bytes.Buffer{})
	m, _ := global.Get("Math")
	mathObj := m.(*object.Object)

	pi, _ := mathObj.Get("PI")
	require.Equal(t, object.Number(3.141592653589793), pi)

	require.Equal(t, object.Number(4), callMethod(t, mathObj, "abs", object.Number(-4)))
	require.Equal(t, object.Number(2), callMethod(t, mathObj, "floor", object.Number(2.9)))
	require.Equal(t, object.Number(3), callMethod(t, mathObj, "ceil", object.Number(2.1)))
	require.Equal(t, object.Number(8), callMethod(t, mathObj, "pow", object.Number(2), object.Number(3)))
	require.Equal(t, object.Number(1), callMethod(t, mathObj, "min", object.Number(3), object.Number(1), object.Number(2)))
	require.Equal(t, object.Number(3), callMethod(t, mathObj, "max", object.Number(3), object.Number(1), object.Number(2)))
}

func TestArrayIsArrayAndFrom(t *testing.T) {
	global := New(&bytes.Buffer{})
	a, _ := global.Get("Array")
	arr := a.(*object.Object)

	require.Equal(t, object.Boolean(true), callMethod(t, arr, "isArray", object.NewArray([]object.Value{object.Number(1)})))
	require.Equal(t, object.Boolean(false), callMethod(t, arr, "isArray", object.String("nope")))

	from := callMethod(t, arr, "from", object.String("hi"))
	fromArr, ok := from.(*object.Array)
	require.True(t, ok)
	require.Equal(t, []object.Value{object.String("h"), object.String("i")}, fromArr.Elements)
}

func TestTypeofFn(t *testing.T) {
	require.Equal(t, object.String("number"), mustCall(t, typeofFn, object.Number(1)))
	require.Equal(t, object.String("string"), mustCall(t, typeofFn, object.String("x")))
	require.Equal(t, object.String("boolean"), mustCall(t, typeofFn, object.Boolean(false)))
	require.Equal(t, object.String("undefined"), mustCall(t, typeofFn, object.Undefined{}))
}

func mustCall(t *testing.T, fn func([]object.Value, object.Scope) (object.Value, error), args ...object.Value) object.Value {
	t.Helper()
	v, err := fn(args, nil)
	require.NoError(t, err)
	return v
}

func TestRegisterNativeAddsThenReplaces(t *testing.T) {
	global := New(&bytes.Buffer{})

	calls := 0
	RegisterNative(global, "hostFn", func(args []object.Value, _ object.Scope) (object.Value, error) {
		calls++
		return object.Number(1), nil
	})
	v, ok := global.Get("hostFn")
	require.True(t, ok)
	nf := v.(*object.NativeFunction)
	result, err := nf.Fn(nil, nil)
	require.NoError(t, err)
	require.Equal(t, object.Number(1), result)
	require.Equal(t, 1, calls)

	RegisterNative(global, "hostFn", func(args []object.Value, _ object.Scope) (object.Value, error) {
		return object.Number(2), nil
	})
	v, ok = global.Get("hostFn")
	require.True(t, ok)
	result, err = v.(*object.NativeFunction).Fn(nil, nil)
	require.NoError(t, err)
	require.Equal(t, object.Number(2), result, "re-registering the same name should replace the previous native")
}
