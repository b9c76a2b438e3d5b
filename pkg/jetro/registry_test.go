/*
 * Copyright 2024 jetro Authors
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package jetro

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func callBuiltin(t *testing.T, name string, value *Value, args ...FuncArg) (*Value, error) {
	t.Helper()
	ip := NewInterpreter(DefaultRegistry(), DefaultFormatter())
	return ip.registry.Call(&FuncSpec{Name: name, Args: args}, value, ip)
}

func TestCallReverse(t *testing.T) {
	out, err := callBuiltin(t, "reverse", NewSequence(NewInt(1), NewInt(2), NewInt(3)))
	require.NoError(t, err)
	require.Equal(t, []int64{3, 2, 1}, intValues(out))
}

func TestCallReverseRejectsNonSequence(t *testing.T) {
	_, err := callBuiltin(t, "reverse", NewInt(1))
	require.Error(t, err)
}

func TestCallLenOnSequenceAndMapping(t *testing.T) {
	out, err := callBuiltin(t, "len", NewSequence(NewInt(1), NewInt(2)))
	require.NoError(t, err)
	require.Equal(t, int64(2), out.IntValue())

	m := NewMapping()
	m.Set("a", NewInt(1))
	m.Set("b", NewInt(2))
	m.Set("c", NewInt(3))
	out, err = callBuiltin(t, "len", m)
	require.NoError(t, err)
	require.Equal(t, int64(3), out.IntValue())
}

func TestCallSumIntAndFloatPromotion(t *testing.T) {
	out, err := callBuiltin(t, "sum", NewSequence(NewInt(1), NewInt(2), NewInt(3)))
	require.NoError(t, err)
	require.Equal(t, Int, out.Kind)
	require.Equal(t, int64(6), out.IntValue())

	out, err = callBuiltin(t, "sum", NewSequence(NewInt(1), NewFloat(2.5)))
	require.NoError(t, err)
	require.Equal(t, Float, out.Kind)
	require.InDelta(t, 3.5, out.FloatValue(), 0.0001)
}

func TestCallSumOneLevelRecursiveIntoSequences(t *testing.T) {
	nested := NewSequence(NewInt(1), NewSequence(NewInt(2), NewInt(3)), NewSequence(NewSequence(NewInt(100))))
	out, err := callBuiltin(t, "sum", nested)
	require.NoError(t, err)
	// only one level of nested-sequence flattening: the doubly-nested 100
	// is never reached.
	require.Equal(t, int64(6), out.IntValue())
}

func TestCallHeadAndTail(t *testing.T) {
	seq := NewSequence(NewInt(1), NewInt(2), NewInt(3))
	head, err := callBuiltin(t, "head", seq)
	require.NoError(t, err)
	require.Equal(t, int64(1), head.IntValue())

	tail, err := callBuiltin(t, "tail", seq)
	require.NoError(t, err)
	require.Equal(t, []int64{2, 3}, intValues(tail))
}

func TestCallHeadOnEmptySequenceErrors(t *testing.T) {
	_, err := callBuiltin(t, "head", NewSequence())
	require.Error(t, err)
}

func TestCallTailOnSingleElementIsEmpty(t *testing.T) {
	out, err := callBuiltin(t, "tail", NewSequence(NewInt(1)))
	require.NoError(t, err)
	require.Equal(t, 0, out.Len())
}

func TestCallAllOneLevelRecursion(t *testing.T) {
	out, err := callBuiltin(t, "all", NewSequence(NewBool(true), NewBool(true)))
	require.NoError(t, err)
	require.True(t, out.BoolValue())

	out, err = callBuiltin(t, "all", NewSequence(NewBool(true), NewSequence(NewBool(true), NewBool(false))))
	require.NoError(t, err)
	require.False(t, out.BoolValue())
}

func TestCallKeysAndValues(t *testing.T) {
	m := NewMapping()
	m.Set("a", NewInt(1))
	m.Set("b", NewInt(2))

	keys, err := callBuiltin(t, "keys", m)
	require.NoError(t, err)
	require.Len(t, keys.Elements(), 2)
	require.Equal(t, "a", keys.Elements()[0].StringValue())

	values, err := callBuiltin(t, "values", m)
	require.NoError(t, err)
	require.Equal(t, []int64{1, 2}, intValues(values))
}

func TestCallMapPlainFieldAccess(t *testing.T) {
	entry1 := NewMapping()
	entry1.Set("name", NewString("gearbox"))
	entry2 := NewMapping()
	entry2.Set("name", NewString("steam"))
	seq := NewSequence(entry1, entry2)

	stmt := &MapStmt{ArgName: "x", Body: []Filter{{Kind: FilterChild, ChildName: "name"}}}
	out, err := callBuiltin(t, "map", seq, FuncArg{Kind: ArgMapStmt, MapStmt: stmt})
	require.NoError(t, err)
	require.Len(t, out.Elements(), 2)
	require.Equal(t, "gearbox", out.Elements()[0].StringValue())
	require.Equal(t, "steam", out.Elements()[1].StringValue())
}

func TestCallMapMethodCallInvokesRegistryFunction(t *testing.T) {
	entry1 := NewMapping()
	entry1.Set("tags", NewSequence(NewString("a"), NewString("b")))
	entry2 := NewMapping()
	entry2.Set("tags", NewSequence(NewString("a")))
	seq := NewSequence(entry1, entry2)

	stmt := &MapStmt{
		ArgName:      "x",
		Body:         []Filter{{Kind: FilterChild, ChildName: "tags"}},
		IsMethodCall: true,
		MethodName:   "len",
	}
	out, err := callBuiltin(t, "map", seq, FuncArg{Kind: ArgMapStmt, MapStmt: stmt})
	require.NoError(t, err)
	require.Equal(t, []int64{2, 1}, intValues(out))
}

func TestCallMinMax(t *testing.T) {
	seq := NewSequence(NewInt(3), NewInt(1), NewFloat(2.5))
	min, err := callBuiltin(t, "min", seq)
	require.NoError(t, err)
	require.Equal(t, float64(1), min.NumberValue())

	max, err := callBuiltin(t, "max", seq)
	require.NoError(t, err)
	require.Equal(t, float64(3), max.NumberValue())
}

func TestCallFormatsRequiresAlias(t *testing.T) {
	obj := NewMapping()
	obj.Set("a", NewString("hi"))
	_, err := callBuiltin(t, "formats", obj, FuncArg{Kind: ArgString, Str: "{}"}, FuncArg{Kind: ArgString, Str: "a"})
	require.Error(t, err)
}

func TestCallUnknownFunction(t *testing.T) {
	ip := NewInterpreter(DefaultRegistry(), DefaultFormatter())
	_, err := ip.registry.Call(&FuncSpec{Name: "nope"}, NewInt(1), ip)
	require.Error(t, err)
	jerr, ok := err.(*Error)
	require.True(t, ok)
	require.Equal(t, FuncEvalErr, jerr.Kind)
}

func intValues(v *Value) []int64 {
	out := make([]int64, len(v.Elements()))
	for i, e := range v.Elements() {
		out[i] = e.IntValue()
	}
	return out
}
