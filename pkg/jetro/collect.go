/*
 * Copyright 2024 jetro Authors
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package jetro

// Parse turns expr into its filter sequence, or returns a *Error of
// kind EmptyQuery or ParseErr (spec.md §4.1, §7).
func Parse(expr string) ([]Filter, error) {
	filters, err := parseExpr(expr)
	if err != nil {
		return nil, err
	}
	return filters, nil
}

// Collect parses expr and evaluates it against v using the default
// function registry and key formatter, returning the accumulated
// Results or the first error encountered (spec.md §6).
func Collect(v *Value, expr string) (*Results, error) {
	filters, err := Parse(expr)
	if err != nil {
		return nil, err
	}
	return CollectFilters(v, filters)
}

// CollectFilters evaluates an already-parsed filter sequence against v,
// using the default function registry and key formatter. Callers that
// parse once up front (to report a parse error separately from an
// evaluation error, as the demo server does) use this to avoid
// re-parsing the same expression.
func CollectFilters(v *Value, filters []Filter) (*Results, error) {
	ip := NewInterpreter(DefaultRegistry(), DefaultFormatter())
	values, err := ip.Collect(v, filters)
	if err != nil {
		return nil, err
	}
	return NewResults(values), nil
}
