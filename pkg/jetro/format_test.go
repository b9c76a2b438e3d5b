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

func TestSimpleCurlyFormatterFormat(t *testing.T) {
	obj := NewMapping()
	obj.Set("a", NewString("hello"))
	obj.Set("b", NewInt(42))

	f := DefaultFormatter()
	out, ok := f.Format("{} world {}", obj, []string{"a", "b"})
	require.True(t, ok)
	require.Equal(t, "hello world 42", out)
}

func TestSimpleCurlyFormatterMissingKeyLeavesPlaceholder(t *testing.T) {
	obj := NewMapping()
	obj.Set("a", NewString("hello"))

	f := DefaultFormatter()
	out, ok := f.Format("{} {}", obj, []string{"a", "missing"})
	require.True(t, ok)
	require.Equal(t, "hello {}", out)
}

func TestSimpleCurlyFormatterEvalInsertsAlias(t *testing.T) {
	obj := NewMapping()
	obj.Set("a", NewString("hello"))

	f := DefaultFormatter()
	out, ok := f.Eval(obj, "say {}", []string{"a"}, "greeting")
	require.True(t, ok)

	greeting, has := out.Get("greeting")
	require.True(t, has)
	require.Equal(t, "say hello", greeting.StringValue())

	// original untouched
	_, hasOnOriginal := obj.Get("greeting")
	require.False(t, hasOnOriginal)
}

func TestSimpleCurlyFormatterEvalRejectsNonMapping(t *testing.T) {
	f := DefaultFormatter()
	_, ok := f.Eval(NewInt(5), "{}", []string{"a"}, "out")
	require.False(t, ok)
}
