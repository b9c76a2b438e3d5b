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

func TestParseChain(t *testing.T) {
	filters, err := Parse(">/foo/bar")
	require.NoError(t, err)
	require.Equal(t, []Filter{
		{Kind: FilterRoot},
		{Kind: FilterChild, ChildName: "foo"},
		{Kind: FilterChild, ChildName: "bar"},
	}, filters)
}

func TestParseReversedRoot(t *testing.T) {
	filters, err := Parse("</foo")
	require.NoError(t, err)
	require.Equal(t, FilterRoot, filters[0].Kind)
}

func TestParseAnyChild(t *testing.T) {
	filters, err := Parse(">/*")
	require.NoError(t, err)
	require.Equal(t, []Filter{
		{Kind: FilterRoot},
		{Kind: FilterAnyChild},
	}, filters)
}

func TestParseDescendantSingle(t *testing.T) {
	filters, err := Parse(">/foo/..within")
	require.NoError(t, err)
	require.Equal(t, Filter{
		Kind:           FilterDescendantChild,
		DescendantKind: DescendantSingle,
		DescendantName: "within",
	}, filters[2])
}

func TestParseDescendantPair(t *testing.T) {
	filters, err := Parse(">/..('name'='gearbox')")
	require.NoError(t, err)
	require.Equal(t, DescendantPair, filters[1].DescendantKind)
	require.Equal(t, "name", filters[1].DescendantName)
	require.Equal(t, Literal{Kind: LiteralString, Str: "gearbox"}, filters[1].DescendantLiteral)
}

func TestParseArraySubscript(t *testing.T) {
	cases := []struct {
		expr string
		want Filter
	}{
		{">/a/[0]", Filter{Kind: FilterArrayIndex, Index: 0}},
		{">/a/[2:]", Filter{Kind: FilterArrayFrom, Index: 2}},
		{">/a/[:3]", Filter{Kind: FilterArrayTo, Index: 3}},
		{">/a/[1:3]", Filter{Kind: FilterSlice, SliceFrom: 1, SliceTo: 3}},
	}
	for _, tc := range cases {
		t.Run(tc.expr, func(t *testing.T) {
			filters, err := Parse(tc.expr)
			require.NoError(t, err)
			require.Equal(t, tc.want, filters[2])
		})
	}
}

func TestParseGroupedChild(t *testing.T) {
	filters, err := Parse(">/entry/('foo' | 'bar' | 'another')")
	require.NoError(t, err)
	require.Equal(t, []string{"foo", "bar", "another"}, filters[2].GroupNames)
}

func TestParsePick(t *testing.T) {
	filters, err := Parse(">/#pick('a' as 'foo', >/..object)")
	require.NoError(t, err)
	require.Equal(t, FilterPick, filters[1].Kind)
	require.Len(t, filters[1].PickItems, 2)

	first := filters[1].PickItems[0]
	require.Equal(t, PickKeyedLiteral, first.Kind)
	require.Equal(t, "a", first.Key)
	require.Equal(t, "foo", first.Alias)

	second := filters[1].PickItems[1]
	require.Equal(t, PickSubExpr, second.Kind)
	require.False(t, second.Reverse)
	require.Equal(t, []Filter{
		{Kind: FilterRoot},
		{Kind: FilterDescendantChild, DescendantKind: DescendantSingle, DescendantName: "object"},
	}, second.SubExpr)
}

func TestParsePickReverseSubExpr(t *testing.T) {
	filters, err := Parse(">/#pick(</..object)")
	require.NoError(t, err)
	item := filters[1].PickItems[0]
	require.Equal(t, PickSubExpr, item.Kind)
	require.True(t, item.Reverse)
	require.Equal(t, []Filter{
		{Kind: FilterRoot},
		{Kind: FilterDescendantChild, DescendantKind: DescendantSingle, DescendantName: "object"},
	}, item.SubExpr)
}

func TestParseFilterCall(t *testing.T) {
	filters, err := Parse(">/values/#filter('priority' == 2)")
	require.NoError(t, err)
	require.Equal(t, FilterMultiFilter, filters[2].Kind)
	require.Equal(t, FilterInner{Key: "priority", Op: OpEq, Right: Literal{Kind: LiteralInt, Int: 2}}, filters[2].Tree.Leaf)
	require.Equal(t, LogicalNone, filters[2].Tree.Op)
}

func TestParseFilterCallConjunction(t *testing.T) {
	filters, err := Parse(">/values/#filter('priority' == 2 and 'name' == 'steam')")
	require.NoError(t, err)
	tree := filters[2].Tree
	require.Equal(t, LogicalAnd, tree.Op)
	require.NotNil(t, tree.Right)
	require.Equal(t, "name", tree.Right.Leaf.Key)
}

func TestParseNiladicFunctionNoParens(t *testing.T) {
	filters, err := Parse(">/..priority/#len")
	require.NoError(t, err)
	require.Equal(t, FilterFunction, filters[2].Kind)
	require.Equal(t, "len", filters[2].Func.Name)
	require.Empty(t, filters[2].Func.Args)
}

func TestParseFunctionArrowDeref(t *testing.T) {
	filters, err := Parse(">/#formats('{} {}','a','b')->*'out'")
	require.NoError(t, err)
	require.Len(t, filters, 3)
	require.Equal(t, FilterFunction, filters[1].Kind)
	require.True(t, filters[1].Func.Deref)
	require.Equal(t, "out", filters[1].Func.Alias)
	require.Equal(t, FilterPick, filters[2].Kind)
	require.Equal(t, []PickItem{{Kind: PickKeyedLiteral, Key: "out", Alias: "out"}}, filters[2].PickItems)
}

func TestParseFunctionPlainArrowNoDerefPick(t *testing.T) {
	filters, err := Parse(">/#formats('{}','a')->'out'")
	require.NoError(t, err)
	require.Len(t, filters, 2)
	require.False(t, filters[1].Func.Deref)
	require.True(t, filters[1].Func.HasAlias)
	require.Equal(t, "out", filters[1].Func.Alias)
}

func TestParseEmptyExpression(t *testing.T) {
	_, err := Parse("")
	require.Error(t, err)
	jerr, ok := err.(*Error)
	require.True(t, ok)
	require.Equal(t, EmptyQuery, jerr.Kind)
}

func TestParseMissingRoot(t *testing.T) {
	_, err := Parse("/foo")
	require.Error(t, err)
	jerr, ok := err.(*Error)
	require.True(t, ok)
	require.Equal(t, ParseErr, jerr.Kind)
}

func TestParseMapStmt(t *testing.T) {
	filters, err := Parse(">/..values/#map(x: x.name)")
	require.NoError(t, err)
	require.Equal(t, FilterFunction, filters[2].Kind)
	require.Equal(t, "map", filters[2].Func.Name)
	require.Len(t, filters[2].Func.Args, 1)
	arg := filters[2].Func.Args[0]
	require.Equal(t, ArgMapStmt, arg.Kind)
	require.Equal(t, "x", arg.MapStmt.ArgName)
	require.Equal(t, []Filter{{Kind: FilterChild, ChildName: "name"}}, arg.MapStmt.Body)
	require.False(t, arg.MapStmt.IsMethodCall)
}

func TestParseMapStmtMethodCall(t *testing.T) {
	filters, err := Parse(">/..values/#map(x: x.tags.len())")
	require.NoError(t, err)
	arg := filters[2].Func.Args[0]
	require.Equal(t, []Filter{{Kind: FilterChild, ChildName: "tags"}}, arg.MapStmt.Body)
	require.True(t, arg.MapStmt.IsMethodCall)
	require.Equal(t, "len", arg.MapStmt.MethodName)
}
