/*
 * Copyright 2024 jetro Authors
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package jetro

// evalPick builds the object a Pick filter produces, per spec.md §4.3.
func (ip *Interpreter) evalPick(v *Value, items []PickItem) (*Value, error) {
	out := NewMapping()
	for _, item := range items {
		switch item.Kind {
		case PickLiteral:
			if cv, ok := lookupField(v, item.Key); ok {
				mergeInto(out, item.Key, cv)
			}

		case PickKeyedLiteral:
			if cv, ok := lookupField(v, item.Key); ok {
				mergeInto(out, item.Alias, cv)
			}

		case PickSubExpr, PickKeyedSubExpr:
			root := v
			if item.Reverse {
				root = ip.docRoot
			}
			subResults, err := ip.collectSub(root, item.SubExpr)
			if err != nil {
				return nil, err
			}
			key := "descendant"
			if item.Kind == PickKeyedSubExpr {
				key = item.Alias
			}
			for _, x := range subResults {
				mergeInto(out, key, x)
			}
		}
	}
	return out, nil
}

// lookupField reads a literal pick key. Per spec.md §4.3, literal (not
// nested-sub-expression) pick items are only well-defined against an
// object input.
func lookupField(v *Value, key string) (*Value, bool) {
	if v.Kind != Mapping {
		return nil, false
	}
	return v.Get(key)
}

// mergeInto folds one produced sub-result x into the object being built
// at key, per spec.md §4.3's merge rules.
func mergeInto(out *Value, key string, x *Value) {
	if x.Kind == Mapping {
		for _, k := range x.Keys() {
			cv, _ := x.Get(k)
			out.Set(k, cv)
		}
		return
	}

	switch x.Kind {
	case String, Int, Float:
		existing, has := out.Get(key)
		if !has {
			out.Set(key, x)
			return
		}
		switch existing.Kind {
		case Sequence:
			// Build a new sequence: existing may alias a sequence of the
			// input document, which must not be mutated.
			elems := append(append([]*Value{}, existing.Elements()...), x)
			out.Set(key, NewSequence(elems...))
		case String, Int, Float:
			out.Set(key, NewSequence(existing, x))
		default:
			out.Set(key, x)
		}
	default: // Bool, Sequence, Null: overwrite unconditionally
		out.Set(key, x)
	}
}
