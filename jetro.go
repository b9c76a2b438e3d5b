/*
 * Copyright 2024 jetro Authors
 *
 * SPDX-License-Identifier: Apache-2.0
 */

// Package jetro is the public facade over github.com/mitghi/jetro/pkg/jetro,
// mirroring the teacher's root-level find.go thin wrapper over pkg/yamlpath.
package jetro

import pkgjetro "github.com/mitghi/jetro/pkg/jetro"

// Value, Filter and Results are re-exported so callers never need to
// import pkg/jetro directly.
type (
	Value     = pkgjetro.Value
	Filter    = pkgjetro.Filter
	Results   = pkgjetro.Results
	Error     = pkgjetro.Error
	ErrorKind = pkgjetro.ErrorKind
)

// Error kind constants, re-exported so callers can type-switch on
// jetro.Error.Kind without importing pkg/jetro directly.
const (
	EmptyQuery   = pkgjetro.EmptyQuery
	ParseErr     = pkgjetro.ParseErr
	EvalErr      = pkgjetro.EvalErr
	FuncEvalErr  = pkgjetro.FuncEvalErr
)

// Parse turns expr into its filter sequence.
func Parse(expr string) ([]Filter, error) {
	return pkgjetro.Parse(expr)
}

// Collect parses expr and evaluates it against v.
func Collect(v *Value, expr string) (*Results, error) {
	return pkgjetro.Collect(v, expr)
}

// CollectFilters evaluates an already-parsed filter sequence against v.
func CollectFilters(v *Value, filters []Filter) (*Results, error) {
	return pkgjetro.CollectFilters(v, filters)
}

// FromJSON decodes data as JSON into a Value tree.
func FromJSON(data []byte) (*Value, error) {
	return pkgjetro.FromJSON(data)
}

// FromYAML decodes data as YAML into a Value tree.
func FromYAML(data []byte) (*Value, error) {
	return pkgjetro.FromYAML(data)
}

// FromIndex removes the value at index i from r and deserializes it
// into T, returning false on an out-of-range index or a type mismatch.
// Exposed as a free function rather than a generic method, since Go
// does not permit a method to carry its own type parameter.
func FromIndex[T any](r *Results, i int) (T, bool) {
	return pkgjetro.FromIndex[T](r, i)
}
