/*
 * Copyright 2024 jetro Authors
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package jetro

// frame is one entry of the interpreter's work stack: a value paired
// with the filters still to apply to it. Grounded in
// original_source/src/context.rs's StackItem, but — per spec.md §9's
// resolved open question — without the shared-mutable back-reference to
// the stack the Rust source carries (Rc<RefCell<Vec<StackItem>>>): the
// Go interpreter owns its stack slice exclusively.
type frame struct {
	value   *Value
	filters []Filter
}

// Interpreter is the stack machine driving a filter sequence against a
// JSON value (spec.md §4.2).
type Interpreter struct {
	stack       []frame
	results     []*Value
	stepResults []*Value
	docRoot     *Value

	registry  *FunctionRegistry
	formatter KeyFormatter
}

// NewInterpreter builds an interpreter around the given function
// registry and key formatter. Both collaborators are consumed through
// their interfaces only (spec.md §1's "external collaborators").
func NewInterpreter(registry *FunctionRegistry, formatter KeyFormatter) *Interpreter {
	return &Interpreter{registry: registry, formatter: formatter}
}

// Collect runs filters against root and returns the accumulated result
// vector, or the first FuncEval error encountered. It owns its stack,
// results vector and side-buffer exclusively for the duration of the
// call (spec.md §5).
func (ip *Interpreter) Collect(root *Value, filters []Filter) ([]*Value, error) {
	ip.docRoot = root
	return ip.run(root, filters)
}

// collectSub runs an independent, nested evaluation — used by Pick's
// sub-expression items and #map's per-element body — sharing this
// interpreter's registry, formatter and document root but none of its
// mutable evaluation state.
func (ip *Interpreter) collectSub(root *Value, filters []Filter) ([]*Value, error) {
	sub := &Interpreter{registry: ip.registry, formatter: ip.formatter, docRoot: ip.docRoot}
	return sub.run(root, filters)
}

func (ip *Interpreter) run(root *Value, filters []Filter) ([]*Value, error) {
	ip.stack = []frame{{value: root, filters: filters}}
	ip.results = nil
	ip.stepResults = nil

	for len(ip.stack) > 0 {
		fr := ip.pop()
		if len(fr.filters) == 0 {
			// A fan-out filter (AnyChild, a DescendantChild match) that was
			// the last filter of its path pushed this child with nothing left
			// to apply: the child is a finished result.
			ip.results = append(ip.results, fr.value)
			continue
		}
		head := fr.filters[0]
		tail := fr.filters[1:]
		if err := ip.apply(fr.value, head, tail); err != nil {
			return nil, err
		}
	}

	if len(ip.stepResults) > 0 {
		// The source's step_results buffer fills in reverse-of-source
		// order under a naive LIFO walk and is reversed once at the end
		// to restore it; this interpreter already restores source order
		// at every fan-out by pushing children in reverse (spec.md §4.5's "implementations
		// may push in reverse to restore source order"), so step_results
		// is already forward-ordered here and needs no further reversal.
		ip.results = append(ip.results, NewSequence(ip.stepResults...))
		ip.stepResults = nil
	}

	return ip.results, nil
}

func (ip *Interpreter) push(v *Value, filters []Filter) {
	ip.stack = append(ip.stack, frame{value: v, filters: filters})
}

func (ip *Interpreter) pop() frame {
	n := len(ip.stack) - 1
	fr := ip.stack[n]
	ip.stack = ip.stack[:n]
	return fr
}

// emitOrPush implements §4.5's general emission rule: a filter that
// produces a derived value emits it directly if no filters remain, or
// pushes it back onto the stack to keep going.
func (ip *Interpreter) emitOrPush(v *Value, tail []Filter) {
	if len(tail) == 0 {
		ip.results = append(ip.results, v)
		return
	}
	ip.push(v, tail)
}

// pushReversed pushes children in reverse so that, popped off the LIFO
// stack, they are visited (and, since each child's own sub-traversal
// fully unwinds before the next sibling is popped, ultimately emitted)
// in forward/source order — spec.md §4.5's "implementations may push in
// reverse to restore source order".
func (ip *Interpreter) pushReversed(children []*Value, filters []Filter) {
	for i := len(children) - 1; i >= 0; i-- {
		ip.push(children[i], filters)
	}
}

func prependFilter(f Filter, tail []Filter) []Filter {
	out := make([]Filter, 0, len(tail)+1)
	out = append(out, f)
	out = append(out, tail...)
	return out
}

func (ip *Interpreter) apply(v *Value, f Filter, tail []Filter) error {
	switch f.Kind {
	case FilterRoot:
		ip.emitOrPush(v, tail)

	case FilterChild:
		ip.applyChild(v, f, tail)

	case FilterAnyChild:
		ip.applyAnyChild(v, tail)

	case FilterDescendantChild:
		ip.applyDescendant(v, f, tail)

	case FilterGroupedChild:
		ip.applyGroupedChild(v, f, tail)

	case FilterArrayIndex, FilterArrayFrom, FilterArrayTo, FilterSlice:
		ip.applySlice(v, f, tail)

	case FilterPick:
		out, err := ip.evalPick(v, f.PickItems)
		if err != nil {
			return err
		}
		ip.emitOrPush(out, tail)

	case FilterPredicate:
		node := &PredicateNode{Leaf: *f.Predicate}
		if out := applyPredicateSeq(v, node); out != nil {
			ip.emitOrPush(out, tail)
		}

	case FilterMultiFilter:
		if out := applyPredicateSeq(v, f.Tree); out != nil {
			ip.emitOrPush(out, tail)
		}

	case FilterFunction:
		out, err := ip.registry.Call(f.Func, v, ip)
		if err != nil {
			return err
		}
		ip.emitOrPush(out, tail)
	}
	return nil
}

// applyChild implements Child(k): field lookup on an object, with the
// source's one documented leniency (spec.md §9) of passing numbers
// through unchanged rather than treating them as a type mismatch.
func (ip *Interpreter) applyChild(v *Value, f Filter, tail []Filter) {
	switch v.Kind {
	case Mapping:
		if cv, ok := v.Get(f.ChildName); ok {
			ip.emitOrPush(cv, tail)
		}
	case Int, Float:
		ip.emitOrPush(v, tail)
	}
}

func (ip *Interpreter) applyAnyChild(v *Value, tail []Filter) {
	switch v.Kind {
	case Mapping:
		ip.pushReversed(v.Values(), tail)
	case Sequence:
		ip.pushReversed(v.Elements(), tail)
	}
}

func (ip *Interpreter) applyDescendant(v *Value, f Filter, tail []Filter) {
	switch f.DescendantKind {
	case DescendantSingle:
		ip.applyDescendantSingle(v, f, tail)
	case DescendantPair:
		ip.applyDescendantPair(v, f, tail)
	}
}

func (ip *Interpreter) applyDescendantSingle(v *Value, f Filter, tail []Filter) {
	switch v.Kind {
	case Mapping:
		keys := v.Keys()
		for i := len(keys) - 1; i >= 0; i-- {
			ck := keys[i]
			cv, _ := v.Get(ck)
			if ck == f.DescendantName {
				ip.push(cv, tail)
			} else {
				ip.push(cv, prependFilter(f, tail))
			}
		}
	case Sequence:
		elems := v.Elements()
		for i := len(elems) - 1; i >= 0; i-- {
			ip.push(elems[i], prependFilter(f, tail))
		}
	}
}

// applyDescendantPair implements DescendantChild(Pair): matches are
// recorded into the side-buffer (never via tail — the side-buffer is
// flushed once, at the very end of the whole evaluation) and descent
// continues unconditionally into every child.
func (ip *Interpreter) applyDescendantPair(v *Value, f Filter, tail []Filter) {
	if v.Kind == Mapping {
		if fv, ok := v.Get(f.DescendantName); ok && fv.Equal(f.DescendantLiteral.ToValue()) {
			ip.stepResults = append(ip.stepResults, v)
		}
	}

	switch v.Kind {
	case Mapping:
		keys := v.Keys()
		for i := len(keys) - 1; i >= 0; i-- {
			cv, _ := v.Get(keys[i])
			ip.push(cv, prependFilter(f, tail))
		}
	case Sequence:
		elems := v.Elements()
		for i := len(elems) - 1; i >= 0; i-- {
			ip.push(elems[i], prependFilter(f, tail))
		}
	}
}

func (ip *Interpreter) applyGroupedChild(v *Value, f Filter, tail []Filter) {
	if v.Kind != Mapping {
		return
	}
	for _, name := range f.GroupNames {
		if cv, ok := v.Get(name); ok && !cv.IsNull() {
			ip.emitOrPush(cv, tail)
			return
		}
	}
}

func (ip *Interpreter) applySlice(v *Value, f Filter, tail []Filter) {
	if v.Kind != Sequence {
		return
	}
	elems := v.Elements()
	from, to, ok := sliceBounds(f, len(elems))
	if !ok {
		return
	}
	if f.Kind == FilterArrayIndex {
		ip.emitOrPush(elems[from], tail)
		return
	}
	ip.emitOrPush(NewSequence(elems[from:to]...), tail)
}

// reduceToCount folds and clears the current results vector, counting
// its numeric entries — the aggregation primitive behind #len called on
// a primitive (spec.md §4.2, §4.5).
func (ip *Interpreter) reduceToCount() int64 {
	var n int64
	for _, r := range ip.results {
		if r.IsNumber() {
			n++
		}
	}
	ip.results = nil
	return n
}

// reduceToAllTruth folds and clears the current results vector, ANDing
// its booleans (recursing one level into sequences, matching #all).
func (ip *Interpreter) reduceToAllTruth() bool {
	truth := allTruthOneLevel(ip.results)
	ip.results = nil
	return truth
}

// reduceToSum folds and clears the current results vector using the Sum
// accumulator (matching #sum).
func (ip *Interpreter) reduceToSum() *Value {
	var acc sumAccumulator
	acc.addSequence(ip.results)
	ip.results = nil
	return acc.toValue()
}
