/*
 * Copyright 2024 jetro Authors
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package jetro

import "strings"

// KeyFormatter interpolates a template against fields of a JSON object,
// grounded in original_source/src/fmt.rs's KeyFormater trait. The Rust
// side delegates the actual substitution to the dynfmt crate's
// SimpleCurlyFormat; no library in the retrieved corpus offers
// {}-positional templating (checked across every go.mod under
// _examples/other_examples/manifests), so this is a direct, narrow
// stdlib port of that one function rather than a hand-rolled invention
// (see DESIGN.md).
type KeyFormatter interface {
	// Format fills {} placeholders in template, left to right, from
	// value[keys[0]], value[keys[1]], .... A missing key skips that
	// placeholder (the {} is left untouched).
	Format(template string, value *Value, keys []string) (string, bool)

	// Eval runs Format with template and keys, and returns a copy of
	// value with alias -> interpolated inserted.
	Eval(value *Value, template string, keys []string, alias string) (*Value, bool)
}

type simpleCurlyFormatter struct{}

// DefaultFormatter returns the formatter used by DefaultRegistry's
// "formats" built-in.
func DefaultFormatter() KeyFormatter { return simpleCurlyFormatter{} }

func (simpleCurlyFormatter) Format(template string, value *Value, keys []string) (string, bool) {
	var b strings.Builder
	keyIdx := 0
	for i := 0; i < len(template); i++ {
		if template[i] == '{' && i+1 < len(template) && template[i+1] == '}' {
			if keyIdx < len(keys) {
				if fv, ok := value.Get(keys[keyIdx]); ok {
					b.WriteString(fv.String())
				} else {
					b.WriteString("{}")
				}
			} else {
				b.WriteString("{}")
			}
			keyIdx++
			i++
			continue
		}
		b.WriteByte(template[i])
	}
	return b.String(), true
}

func (f simpleCurlyFormatter) Eval(value *Value, template string, keys []string, alias string) (*Value, bool) {
	if value.Kind != Mapping {
		return nil, false
	}
	interpolated, ok := f.Format(template, value, keys)
	if !ok {
		return nil, false
	}
	out := value.Clone()
	out.Set(alias, NewString(interpolated))
	return out, true
}
