package config

import (
	"fmt"
	"iter"
	"slices"

	"gopkg.in/yaml.v3"
)

// LabelKey is reserved for the computed label. Emitters always inject it
// themselves and skip any declared value.
const LabelKey = "label"

// Appearance is an ordered set of style attributes. Keys keep the position
// of their first declaration; overwriting a key does not move it.
//
// The zero value is an empty, usable Appearance.
type Appearance struct {
	keys   []string
	values map[string]string
}

// NewAppearance builds an Appearance from alternating key/value pairs.
// A trailing key without a value is ignored.
func NewAppearance(kv ...string) Appearance {
	var a Appearance
	for i := 0; i+1 < len(kv); i += 2 {
		a.Set(kv[i], kv[i+1])
	}
	return a
}

// Set stores v under k, appending k if it is new.
func (a *Appearance) Set(k, v string) {
	if a.values == nil {
		a.values = make(map[string]string)
	}
	if _, ok := a.values[k]; !ok {
		a.keys = append(a.keys, k)
	}
	a.values[k] = v
}

// Get returns the value stored under k.
func (a Appearance) Get(k string) (string, bool) {
	v, ok := a.values[k]
	return v, ok
}

// Len returns the number of keys.
func (a Appearance) Len() int { return len(a.keys) }

// Keys returns the keys in declaration order.
func (a Appearance) Keys() []string { return slices.Clone(a.keys) }

// All iterates key/value pairs in declaration order.
func (a Appearance) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, k := range a.keys {
			if !yield(k, a.values[k]) {
				return
			}
		}
	}
}

// Clone returns an independent copy.
func (a Appearance) Clone() Appearance {
	var c Appearance
	for k, v := range a.All() {
		c.Set(k, v)
	}
	return c
}

// Merge returns a copy of a with every key of over written on top.
// Keys already present keep their position; new keys are appended in
// over's order. Neither receiver nor argument is modified.
func (a Appearance) Merge(over Appearance) Appearance {
	m := a.Clone()
	for k, v := range over.All() {
		m.Set(k, v)
	}
	return m
}

// Equal reports whether both appearances hold the same pairs in the same order.
func (a Appearance) Equal(b Appearance) bool {
	if !slices.Equal(a.keys, b.keys) {
		return false
	}
	for _, k := range a.keys {
		if a.values[k] != b.values[k] {
			return false
		}
	}
	return true
}

// UnmarshalYAML decodes a mapping of scalars, keeping declaration order.
// Scalar values are kept exactly as written in the source document.
func (a *Appearance) UnmarshalYAML(node *yaml.Node) error {
	*a = Appearance{}
	if node == nil {
		return nil
	}
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	if node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null" {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: appearance must be a mapping", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		if val.Kind == yaml.AliasNode && val.Alias != nil {
			val = val.Alias
		}
		if val.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: appearance value for %q must be a scalar", val.Line, key.Value)
		}
		a.Set(key.Value, val.Value)
	}
	return nil
}

// MarshalYAML encodes the appearance as an ordered mapping.
func (a Appearance) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for k, v := range a.All() {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v},
		)
	}
	return node, nil
}
