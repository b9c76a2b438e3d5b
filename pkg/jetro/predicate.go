/*
 * Copyright 2024 jetro Authors
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package jetro

// evalLeaf evaluates one FilterInner leaf against an object, per
// spec.md §4.3: absent key or type mismatch is false, never an error.
func evalLeaf(o *Value, leaf FilterInner) bool {
	if o.Kind != Mapping {
		return false
	}
	fv, ok := o.Get(leaf.Key)
	if !ok {
		return false
	}
	if leaf.Op == OpApprox {
		return approxMatch(fv, leaf.Right)
	}
	return acceptsComparison(leaf.Op, compareValueToLiteral(fv, leaf.Right))
}

// evalPredicateTree walks a PredicateNode chain left to right, folding
// with the AND/OR the node between each pair of leaves specifies
// (spec.md §4.3, §9's "left-associative is normative regardless of
// representation"). The leaves are pure lookups with no side effects,
// so a literal left-fold is equivalent to short-circuiting and is what
// this does.
func evalPredicateTree(o *Value, node *PredicateNode) bool {
	result := evalLeaf(o, node.Leaf)
	for node.Op != LogicalNone && node.Right != nil {
		rightVal := evalLeaf(o, node.Right.Leaf)
		if node.Op == LogicalAnd {
			result = result && rightVal
		} else {
			result = result || rightVal
		}
		node = node.Right
	}
	return result
}

// applyPredicateSeq implements Filter/MultiFilter against a sequence:
// keep every object element satisfying node, emit the retained sequence
// only if non-empty. Per spec.md §9's resolved open question, a
// non-sequence input emits nothing rather than erroring.
func applyPredicateSeq(v *Value, node *PredicateNode) *Value {
	if v.Kind != Sequence {
		return nil
	}
	var kept []*Value
	for _, e := range v.Elements() {
		if e.Kind == Mapping && evalPredicateTree(e, node) {
			kept = append(kept, e)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	return NewSequence(kept...)
}
