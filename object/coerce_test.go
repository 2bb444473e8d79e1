package object

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToNumber(t *testing.T) {
	require.Equal(t, 0.0, ToNumber(String("")))
	require.Equal(t, 42.0, ToNumber(String(" 42 ")))
	require.True(t, math.IsNaN(ToNumber(String("abc"))))
	require.Equal(t, 1.0, ToNumber(Boolean(true)))
	require.Equal(t, 0.0, ToNumber(Boolean(false)))
	require.Equal(t, 0.0, ToNumber(Null{}))
	require.True(t, math.IsNaN(ToNumber(Undefined{})))
}

func TestConcatsAsString(t *testing.T) {
	require.True(t, ConcatsAsString(String("x")))
	require.True(t, ConcatsAsString(NewArray(nil)))
	require.True(t, ConcatsAsString(NewObject()))
	require.False(t, ConcatsAsString(Number(1)))
	require.False(t, ConcatsAsString(Boolean(true)))
	require.False(t, ConcatsAsString(Null{}))
	require.False(t, ConcatsAsString(Undefined{}))
}

func TestEqualsReferenceIdentityForCompoundTypes(t *testing.T) {
	a := NewArray([]Value{Number(1)})
	b := NewArray([]Value{Number(1)})
	require.False(t, Equals(a, b), "distinct arrays with equal contents are not === equal")
	require.True(t, Equals(a, a))
}

func TestEqualsScalarsByValue(t *testing.T) {
	require.True(t, Equals(Number(1), Number(1)))
	require.False(t, Equals(Number(1), Number(2)))
	require.True(t, Equals(String("x"), String("x")))
	require.False(t, Equals(Number(1), String("1")), "=== requires matching kind")
}

func TestLooseEqualsCoercion(t *testing.T) {
	require.True(t, LooseEquals(Number(1), String("1")))
	require.True(t, LooseEquals(Null{}, Undefined{}))
	require.True(t, LooseEquals(Boolean(true), Number(1)))
	require.False(t, LooseEquals(Number(0), String("abc")))
}

func TestCompareStringsLexicographic(t *testing.T) {
	cmp, ok := Compare(String("apple"), String("banana"))
	require.True(t, ok)
	require.Equal(t, -1, cmp)
}

func TestCompareNaNAlwaysFalse(t *testing.T) {
	_, ok := Compare(Undefined{}, Number(1))
	require.False(t, ok)
}
