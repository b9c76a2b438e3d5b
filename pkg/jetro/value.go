/*
 * Copyright 2024 jetro Authors
 *
 * SPDX-License-Identifier: Apache-2.0
 */

// Package jetro implements the jetro query language: a parser and
// stack-machine interpreter for navigating, projecting and filtering
// in-memory JSON values.
package jetro

import "fmt"

// Kind identifies the concrete shape of a Value.
type Kind int

const (
	Null Kind = iota
	Bool
	Int
	Float
	String
	Sequence
	Mapping
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Float:
		return "float"
	case String:
		return "string"
	case Sequence:
		return "sequence"
	case Mapping:
		return "mapping"
	default:
		return "unknown"
	}
}

// Value is the JSON node type the interpreter operates over. It mirrors
// the shape of a yaml.Node (a Kind tag plus ordered Content) but keeps
// scalars as distinct Go-typed fields so that Sum promotion and ordering
// comparisons don't need to re-parse strings.
type Value struct {
	Kind Kind

	boolVal   bool
	intVal    int64
	floatVal  float64
	stringVal string

	seq []*Value
	mp  *OrderedMap
}

func NewNull() *Value { return &Value{Kind: Null} }

func NewBool(b bool) *Value { return &Value{Kind: Bool, boolVal: b} }

func NewInt(i int64) *Value { return &Value{Kind: Int, intVal: i} }

func NewFloat(f float64) *Value { return &Value{Kind: Float, floatVal: f} }

func NewString(s string) *Value { return &Value{Kind: String, stringVal: s} }

func NewSequence(items ...*Value) *Value {
	return &Value{Kind: Sequence, seq: items}
}

func NewMapping() *Value {
	return &Value{Kind: Mapping, mp: NewOrderedMap()}
}

func (v *Value) IsNull() bool { return v == nil || v.Kind == Null }

func (v *Value) BoolValue() bool { return v.boolVal }

func (v *Value) IntValue() int64 { return v.intVal }

func (v *Value) FloatValue() float64 { return v.floatVal }

func (v *Value) StringValue() string { return v.stringVal }

// IsNumber reports whether v is an Int or a Float.
func (v *Value) IsNumber() bool {
	return v != nil && (v.Kind == Int || v.Kind == Float)
}

// NumberValue returns v's numeric value as a float64, regardless of
// whether it is stored as Int or Float.
func (v *Value) NumberValue() float64 {
	if v.Kind == Int {
		return float64(v.intVal)
	}
	return v.floatVal
}

// Elements returns the elements of a Sequence value, or nil otherwise.
func (v *Value) Elements() []*Value {
	if v == nil || v.Kind != Sequence {
		return nil
	}
	return v.seq
}

// Len returns the number of elements in a Sequence or key/value pairs in
// a Mapping. Any other kind reports zero.
func (v *Value) Len() int {
	if v == nil {
		return 0
	}
	switch v.Kind {
	case Sequence:
		return len(v.seq)
	case Mapping:
		return v.mp.Len()
	default:
		return 0
	}
}

// Get looks up key in a Mapping value.
func (v *Value) Get(key string) (*Value, bool) {
	if v == nil || v.Kind != Mapping {
		return nil, false
	}
	return v.mp.Get(key)
}

// Set inserts or overwrites key in a Mapping value, preserving the
// existing position on overwrite and appending on insert.
func (v *Value) Set(key string, val *Value) {
	if v.Kind != Mapping {
		panic("jetro: Set called on a non-mapping Value")
	}
	v.mp.Set(key, val)
}

// Keys returns the ordered keys of a Mapping value.
func (v *Value) Keys() []string {
	if v == nil || v.Kind != Mapping {
		return nil
	}
	return v.mp.Keys()
}

// Values returns the ordered values of a Mapping value.
func (v *Value) Values() []*Value {
	if v == nil || v.Kind != Mapping {
		return nil
	}
	return v.mp.Values()
}

// Append adds val to the end of a Sequence value.
func (v *Value) Append(val *Value) {
	if v.Kind != Sequence {
		panic("jetro: Append called on a non-sequence Value")
	}
	v.seq = append(v.seq, val)
}

// Clone deep-copies v. The interpreter never mutates the input document;
// every derived value handed to a caller is built via Clone + Set/Append
// rather than in place.
func (v *Value) Clone() *Value {
	if v == nil {
		return nil
	}
	switch v.Kind {
	case Sequence:
		out := make([]*Value, len(v.seq))
		for i, e := range v.seq {
			out[i] = e.Clone()
		}
		return &Value{Kind: Sequence, seq: out}
	case Mapping:
		return &Value{Kind: Mapping, mp: v.mp.Clone()}
	default:
		cp := *v
		return &cp
	}
}

// Equal reports whether two values represent the same JSON data,
// comparing Int and Float numerically rather than by kind.
func (v *Value) Equal(o *Value) bool {
	if v.IsNull() || o.IsNull() {
		return v.IsNull() == o.IsNull()
	}
	if v.IsNumber() && o.IsNumber() {
		return v.NumberValue() == o.NumberValue()
	}
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case Bool:
		return v.boolVal == o.boolVal
	case String:
		return v.stringVal == o.stringVal
	case Sequence:
		if len(v.seq) != len(o.seq) {
			return false
		}
		for i := range v.seq {
			if !v.seq[i].Equal(o.seq[i]) {
				return false
			}
		}
		return true
	case Mapping:
		if v.mp.Len() != o.mp.Len() {
			return false
		}
		for _, k := range v.mp.Keys() {
			a, _ := v.mp.Get(k)
			b, ok := o.mp.Get(k)
			if !ok || !a.Equal(b) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

func (v *Value) String() string {
	if v == nil {
		return "<nil>"
	}
	switch v.Kind {
	case Null:
		return "null"
	case Bool:
		return fmt.Sprintf("%t", v.boolVal)
	case Int:
		return fmt.Sprintf("%d", v.intVal)
	case Float:
		return fmt.Sprintf("%g", v.floatVal)
	case String:
		return v.stringVal
	case Sequence:
		return fmt.Sprintf("%v", v.seq)
	case Mapping:
		return fmt.Sprintf("%v", v.mp)
	default:
		return "?"
	}
}

// ToInterface converts v into a plain Go value (map[string]any, []any,
// string, bool, int64, float64, or nil) suitable for re-marshaling with
// encoding/json or gopkg.in/yaml.v3.
func (v *Value) ToInterface() any {
	if v.IsNull() {
		return nil
	}
	switch v.Kind {
	case Bool:
		return v.boolVal
	case Int:
		return v.intVal
	case Float:
		return v.floatVal
	case String:
		return v.stringVal
	case Sequence:
		out := make([]any, len(v.seq))
		for i, e := range v.seq {
			out[i] = e.ToInterface()
		}
		return out
	case Mapping:
		out := make(map[string]any, v.mp.Len())
		for _, k := range v.mp.Keys() {
			e, _ := v.mp.Get(k)
			out[k] = e.ToInterface()
		}
		return out
	default:
		return nil
	}
}
