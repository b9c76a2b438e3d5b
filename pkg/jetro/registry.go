/*
 * Copyright 2024 jetro Authors
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package jetro

// Callable is a single named function the interpreter can invoke for a
// Function filter. Grounded in original_source/src/func.rs's Callable
// trait; kept to one method, per spec.md §9 ("a small trait/interface
// with one method suffices; avoid reflection").
type Callable interface {
	Call(spec *FuncSpec, value *Value, ip *Interpreter) (*Value, error)
}

// CallableFunc adapts a plain function to Callable.
type CallableFunc func(spec *FuncSpec, value *Value, ip *Interpreter) (*Value, error)

func (f CallableFunc) Call(spec *FuncSpec, value *Value, ip *Interpreter) (*Value, error) {
	return f(spec, value, ip)
}

// FunctionRegistry maps function names to Callables. It is the Go
// analogue of func.rs's FuncRegistry (a name -> Callable map, populated
// at construction rather than discovered via reflection).
type FunctionRegistry struct {
	callables map[string]Callable
}

func NewFunctionRegistry() *FunctionRegistry {
	return &FunctionRegistry{callables: make(map[string]Callable)}
}

func (r *FunctionRegistry) Register(name string, c Callable) {
	r.callables[name] = c
}

func (r *FunctionRegistry) Call(spec *FuncSpec, value *Value, ip *Interpreter) (*Value, error) {
	c, ok := r.callables[spec.Name]
	if !ok {
		return nil, funcEvalErr("unknown function %q", spec.Name)
	}
	return c.Call(spec, value, ip)
}

// DefaultRegistry pre-registers every built-in named in spec.md §4.4,
// mirroring func.rs's default_registry()/FuncRegistry::default().
func DefaultRegistry() *FunctionRegistry {
	r := NewFunctionRegistry()
	r.Register("reverse", CallableFunc(callReverse))
	r.Register("len", CallableFunc(callLen))
	r.Register("sum", CallableFunc(callSum))
	r.Register("head", CallableFunc(callHead))
	r.Register("tail", CallableFunc(callTail))
	r.Register("all", CallableFunc(callAll))
	r.Register("keys", CallableFunc(callKeys))
	r.Register("values", CallableFunc(callValues))
	r.Register("min", CallableFunc(callMin))
	r.Register("max", CallableFunc(callMax))
	r.Register("map", CallableFunc(callMap))
	r.Register("formats", CallableFunc(callFormats))
	return r
}

func callReverse(spec *FuncSpec, value *Value, ip *Interpreter) (*Value, error) {
	if value.Kind != Sequence {
		return nil, funcEvalErr("reverse: expected a sequence, got %s", value.Kind)
	}
	elems := value.Elements()
	out := make([]*Value, len(elems))
	for i, e := range elems {
		out[len(elems)-1-i] = e
	}
	return NewSequence(out...), nil
}

// callLen implements spec.md §4.4's overloaded len: the length of a
// sequence or mapping, or — when called on a primitive — one plus the
// count of numbers currently folded out of the results vector
// (§4.5's "reduce_to_count" fold, which is what lets a fan-out like
// ">/..priority/#len" converge to a single count).
func callLen(spec *FuncSpec, value *Value, ip *Interpreter) (*Value, error) {
	switch value.Kind {
	case Sequence:
		return NewInt(int64(len(value.Elements()))), nil
	case Mapping:
		return NewInt(int64(value.Len())), nil
	default:
		return NewInt(ip.reduceToCount() + 1), nil
	}
}

func callSum(spec *FuncSpec, value *Value, ip *Interpreter) (*Value, error) {
	if value.Kind != Sequence {
		return nil, funcEvalErr("sum: expected a sequence, got %s", value.Kind)
	}
	var acc sumAccumulator
	acc.addSequence(value.Elements())
	return acc.toValue(), nil
}

func callHead(spec *FuncSpec, value *Value, ip *Interpreter) (*Value, error) {
	if value.Kind != Sequence {
		return nil, funcEvalErr("head: expected a sequence, got %s", value.Kind)
	}
	elems := value.Elements()
	if len(elems) == 0 {
		return nil, funcEvalErr("head: sequence is empty")
	}
	return elems[0], nil
}

func callTail(spec *FuncSpec, value *Value, ip *Interpreter) (*Value, error) {
	if value.Kind != Sequence {
		return nil, funcEvalErr("tail: expected a sequence, got %s", value.Kind)
	}
	elems := value.Elements()
	if len(elems) <= 1 {
		return NewSequence(), nil
	}
	return NewSequence(elems[1:]...), nil
}

func callAll(spec *FuncSpec, value *Value, ip *Interpreter) (*Value, error) {
	if value.Kind != Sequence {
		return nil, funcEvalErr("all: expected a sequence, got %s", value.Kind)
	}
	return NewBool(allTruthOneLevel(value.Elements())), nil
}

func callKeys(spec *FuncSpec, value *Value, ip *Interpreter) (*Value, error) {
	if value.Kind != Mapping {
		return nil, funcEvalErr("keys: expected a mapping, got %s", value.Kind)
	}
	keys := value.Keys()
	out := make([]*Value, len(keys))
	for i, k := range keys {
		out[i] = NewString(k)
	}
	return NewSequence(out...), nil
}

func callValues(spec *FuncSpec, value *Value, ip *Interpreter) (*Value, error) {
	if value.Kind != Mapping {
		return nil, funcEvalErr("values: expected a mapping, got %s", value.Kind)
	}
	return NewSequence(value.Values()...), nil
}

func callMin(spec *FuncSpec, value *Value, ip *Interpreter) (*Value, error) {
	return numericExtreme(value, false)
}

func callMax(spec *FuncSpec, value *Value, ip *Interpreter) (*Value, error) {
	return numericExtreme(value, true)
}

func numericExtreme(value *Value, wantMax bool) (*Value, error) {
	if value.Kind != Sequence {
		return nil, funcEvalErr("min/max: expected a sequence, got %s", value.Kind)
	}
	var best *Value
	for _, e := range value.Elements() {
		if !e.IsNumber() {
			continue
		}
		if best == nil {
			best = e
			continue
		}
		if wantMax && e.NumberValue() > best.NumberValue() {
			best = e
		}
		if !wantMax && e.NumberValue() < best.NumberValue() {
			best = e
		}
	}
	if best == nil {
		return NewSequence(), nil
	}
	return best, nil
}

// callMap implements #map(argName: argName.a.b[.method()]): for each
// element of value, evaluates the MapStmt body (a plain Child chain
// with no leading Root) against that element and collects the results.
// When the statement ends in a method-call marker, the navigated value
// is additionally passed through the named registry function instead
// of treating the trailing segment as a further child access.
func callMap(spec *FuncSpec, value *Value, ip *Interpreter) (*Value, error) {
	if value.Kind != Sequence {
		return nil, funcEvalErr("map: expected a sequence, got %s", value.Kind)
	}
	if len(spec.Args) != 1 || spec.Args[0].Kind != ArgMapStmt {
		return nil, funcEvalErr("map: expected a single map statement argument")
	}
	stmt := spec.Args[0].MapStmt

	out := make([]*Value, 0, len(value.Elements()))
	for _, e := range value.Elements() {
		results, err := ip.collectSub(e, stmt.Body)
		if err != nil {
			return nil, err
		}
		if stmt.IsMethodCall {
			for _, r := range results {
				called, err := ip.registry.Call(&FuncSpec{Name: stmt.MethodName}, r, ip)
				if err != nil {
					return nil, err
				}
				out = append(out, called)
			}
			continue
		}
		out = append(out, results...)
	}
	return NewSequence(out...), nil
}

// callFormats implements #formats('template','key1','key2',...) ->
// 'alias': interpolates the template against the current object's
// fields and inserts alias -> interpolated.
func callFormats(spec *FuncSpec, value *Value, ip *Interpreter) (*Value, error) {
	if !spec.HasAlias {
		return nil, funcEvalErr("formats: requires a '-> alias'")
	}
	if value.Kind != Mapping {
		return nil, funcEvalErr("formats: expected a mapping, got %s", value.Kind)
	}
	if len(spec.Args) == 0 || spec.Args[0].Kind != ArgString {
		return nil, funcEvalErr("formats: expected a string template as the first argument")
	}
	template := spec.Args[0].Str
	keys := make([]string, 0, len(spec.Args)-1)
	for _, a := range spec.Args[1:] {
		if a.Kind != ArgString {
			return nil, funcEvalErr("formats: key arguments must be string literals")
		}
		keys = append(keys, a.Str)
	}
	out, ok := ip.formatter.Eval(value, template, keys, spec.Alias)
	if !ok {
		return nil, funcEvalErr("formats: template interpolation failed")
	}
	return out, nil
}

// allTruthOneLevel ANDs every boolean found at the top level of elems
// and, one level deep, inside any element that is itself a sequence
// (spec.md §4.4's "recursing one level into sequences"). Non-boolean
// leaves are ignored, consistent with the engine's soft-navigation
// philosophy.
func allTruthOneLevel(elems []*Value) bool {
	truth := true
	for _, e := range elems {
		switch e.Kind {
		case Bool:
			truth = truth && e.BoolValue()
		case Sequence:
			for _, inner := range e.Elements() {
				if inner.Kind == Bool {
					truth = truth && inner.BoolValue()
				}
			}
		}
	}
	return truth
}

// sumAccumulator is spec.md §3's Sum accumulator: an integer that
// promotes to float on first float addition, and stays float
// thereafter.
type sumAccumulator struct {
	i       int64
	f       float64
	isFloat bool
}

func (a *sumAccumulator) addValue(v *Value) {
	switch v.Kind {
	case Int:
		if a.isFloat {
			a.f += float64(v.IntValue())
		} else {
			a.i += v.IntValue()
		}
	case Float:
		if !a.isFloat {
			a.f = float64(a.i)
			a.isFloat = true
		}
		a.f += v.FloatValue()
	}
}

// addSequence folds elems one level deep only, matching sum's
// "one-level-recursive into sequences" semantics: a numeric element is
// added directly, a nested sequence has its own numeric elements added,
// but no deeper nesting is followed.
func (a *sumAccumulator) addSequence(elems []*Value) {
	for _, e := range elems {
		if e.IsNumber() {
			a.addValue(e)
			continue
		}
		if e.Kind == Sequence {
			for _, inner := range e.Elements() {
				if inner.IsNumber() {
					a.addValue(inner)
				}
			}
		}
	}
}

func (a *sumAccumulator) toValue() *Value {
	if a.isFloat {
		return NewFloat(a.f)
	}
	return NewInt(a.i)
}
