package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/felipe/pkg/errors"
)

// Load reads the configuration document at path and resolves it.
// Every error it returns is fatal for a run.
func Load(path string) (*Set, error) {
	doc, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Resolve(doc)
}

// ReadFile reads and decodes the configuration document at path without
// resolving it. The format is chosen with [FormatFromPath].
func ReadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "configuration %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read configuration %s", path)
	}
	return Decode(data, FormatFromPath(path))
}

type componentOut struct {
	Base       string     `yaml:"base,omitempty"`
	UniqueKeys []string   `yaml:"unique_keys,flow"`
	LabelKeys  []string   `yaml:"label_keys,flow"`
	Appearance Appearance `yaml:"appearance"`
}

type relationOut struct {
	Base       string     `yaml:"base,omitempty"`
	Direction  string     `yaml:"direction"`
	Appearance Appearance `yaml:"appearance"`
}

// Marshal renders the resolved set as a YAML document in the same shape as
// the input, with every type flattened.
func Marshal(s *Set) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}

	add := func(key string, v any) error {
		var n yaml.Node
		if err := n.Encode(v); err != nil {
			return err
		}
		root.Content = append(root.Content, scalar(key), &n)
		return nil
	}

	bc := s.BaseComponent()
	if err := add("base_component", componentOut{
		UniqueKeys: bc.UniqueKeys,
		LabelKeys:  bc.LabelKeys,
		Appearance: bc.Appearance,
	}); err != nil {
		return nil, err
	}

	components := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range s.componentNames {
		t := s.components[name]
		var n yaml.Node
		if err := n.Encode(componentOut{
			Base:       t.Base,
			UniqueKeys: t.UniqueKeys,
			LabelKeys:  t.LabelKeys,
			Appearance: t.Appearance,
		}); err != nil {
			return nil, err
		}
		components.Content = append(components.Content, scalar(name), &n)
	}
	root.Content = append(root.Content, scalar("components"), components)

	br := s.BaseRelation()
	if err := add("base_relation", relationOut{
		Direction:  string(br.Direction),
		Appearance: br.Appearance,
	}); err != nil {
		return nil, err
	}

	relations := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range s.relationNames {
		t := s.relations[name]
		var n yaml.Node
		if err := n.Encode(relationOut{
			Base:       t.Base,
			Direction:  string(t.Direction),
			Appearance: t.Appearance,
		}); err != nil {
			return nil, err
		}
		relations.Content = append(relations.Content, scalar(name), &n)
	}
	root.Content = append(root.Content, scalar("relations"), relations)

	return yaml.Marshal(root)
}

func scalar(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}
