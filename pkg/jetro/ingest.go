/*
 * Copyright 2024 jetro Authors
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package jetro

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// FromJSON decodes data as JSON into a Value tree. JSON is a YAML
// subset, so this delegates to FromYAML's yaml.Node walk rather than
// round-tripping through map[string]any: Go's map iteration order is
// randomized, which would scramble the insertion order OrderedMap is
// built to preserve. The yaml.Node walk is positional and keeps object
// keys in source order.
func FromJSON(data []byte) (*Value, error) {
	v, err := FromYAML(data)
	if err != nil {
		return nil, fmt.Errorf("jetro: invalid JSON: %w", err)
	}
	return v, nil
}

// FromYAML decodes data as YAML into a Value tree by walking the
// resulting yaml.Node the way the teacher's path.go walks it (switching
// on Kind/Tag/Content), rather than round-tripping through interface{}.
// Since JSON is a YAML subset this also accepts plain JSON documents.
func FromYAML(data []byte) (*Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("jetro: invalid YAML: %w", err)
	}
	if len(doc.Content) == 0 {
		return NewNull(), nil
	}
	return fromYAMLNode(doc.Content[0])
}

func fromYAMLNode(n *yaml.Node) (*Value, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return scalarFromYAML(n)

	case yaml.SequenceNode:
		items := make([]*Value, len(n.Content))
		for i, c := range n.Content {
			v, err := fromYAMLNode(c)
			if err != nil {
				return nil, err
			}
			items[i] = v
		}
		return NewSequence(items...), nil

	case yaml.MappingNode:
		m := NewMapping()
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i]
			val := n.Content[i+1]
			v, err := fromYAMLNode(val)
			if err != nil {
				return nil, err
			}
			m.Set(key.Value, v)
		}
		return m, nil

	case yaml.AliasNode:
		return fromYAMLNode(n.Alias)

	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return NewNull(), nil
		}
		return fromYAMLNode(n.Content[0])

	default:
		return nil, fmt.Errorf("jetro: unsupported yaml node kind %v", n.Kind)
	}
}

func scalarFromYAML(n *yaml.Node) (*Value, error) {
	switch n.Tag {
	case "!!null":
		return NewNull(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, err
		}
		return NewBool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			return nil, err
		}
		return NewInt(i), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, err
		}
		return NewFloat(f), nil
	default:
		return NewString(n.Value), nil
	}
}
