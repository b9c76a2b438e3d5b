/*
 * Copyright 2024 jetro Authors
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package jetro

import (
	"strconv"
	"strings"
)

// parseArraySubscript turns the text between [ and ] (e.g. "3", "1:",
// ":4", "1:4") into the corresponding Filter, adapting the teacher's
// slicer.go index-splitting approach. Unlike the teacher's YAMLPath
// slices, jetro's are non-negative and half-open only (spec.md §3), so
// there is no union ("1,3") or negative-index/step handling to carry
// over.
func parseArraySubscript(subscript string) (Filter, error) {
	subscript = strings.TrimSpace(subscript)
	if !strings.Contains(subscript, ":") {
		i, err := strconv.Atoi(subscript)
		if err != nil || i < 0 {
			return Filter{}, newError(ParseErr, -1, "invalid array index %q", subscript)
		}
		return Filter{Kind: FilterArrayIndex, Index: i}, nil
	}

	parts := strings.SplitN(subscript, ":", 2)
	left, right := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])

	switch {
	case left == "" && right == "":
		return Filter{}, newError(ParseErr, -1, "malformed array slice %q", subscript)

	case right == "":
		i, err := strconv.Atoi(left)
		if err != nil || i < 0 {
			return Filter{}, newError(ParseErr, -1, "invalid array slice %q", subscript)
		}
		return Filter{Kind: FilterArrayFrom, Index: i}, nil

	case left == "":
		j, err := strconv.Atoi(right)
		if err != nil || j < 0 {
			return Filter{}, newError(ParseErr, -1, "invalid array slice %q", subscript)
		}
		return Filter{Kind: FilterArrayTo, Index: j}, nil

	default:
		i, err1 := strconv.Atoi(left)
		j, err2 := strconv.Atoi(right)
		if err1 != nil || err2 != nil || i < 0 || j < 0 {
			return Filter{}, newError(ParseErr, -1, "invalid array slice %q", subscript)
		}
		return Filter{Kind: FilterSlice, SliceFrom: i, SliceTo: j}, nil
	}
}

// sliceBounds computes the half-open [from, to) bound of a filter
// against a sequence of the given length, per spec.md invariant 5
// ("Slice(i, j) with i >= j or j > len emits nothing"). ok is false when
// the filter produces no elements.
func sliceBounds(f Filter, length int) (from, to int, ok bool) {
	switch f.Kind {
	case FilterArrayIndex:
		if f.Index < 0 || f.Index >= length {
			return 0, 0, false
		}
		return f.Index, f.Index + 1, true

	case FilterArrayFrom:
		if f.Index < 0 || f.Index > length {
			return 0, 0, false
		}
		return f.Index, length, true

	case FilterArrayTo:
		if f.Index < 0 || f.Index > length {
			return 0, 0, false
		}
		return 0, f.Index, true

	case FilterSlice:
		if f.SliceFrom < 0 || f.SliceTo < 0 || f.SliceFrom >= f.SliceTo || f.SliceTo > length {
			return 0, 0, false
		}
		return f.SliceFrom, f.SliceTo, true

	default:
		return 0, 0, false
	}
}
