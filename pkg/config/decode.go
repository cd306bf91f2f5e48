package config

import (
	"bytes"
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/felipe/pkg/errors"
)

// Format identifies the syntax of a configuration document.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the format from the file extension.
// Anything other than .toml is read as YAML.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// Decode parses a configuration document without resolving it.
func Decode(data []byte, format Format) (*Document, error) {
	var (
		doc *Document
		err error
	)
	switch format {
	case FormatTOML:
		doc, err = decodeTOML(data)
	default:
		doc, err = decodeYAML(data)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode %s configuration", format)
	}
	if err := checkNames(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func checkNames(doc *Document) error {
	seen := make(map[string]bool)
	for _, t := range doc.Components {
		if t.Name == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "component type name must not be empty")
		}
		if seen[t.Name] {
			return errors.New(errors.ErrCodeInvalidConfig, "component type %q declared twice", t.Name)
		}
		seen[t.Name] = true
	}
	clear(seen)
	for _, t := range doc.Relations {
		if t.Name == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "relation type name must not be empty")
		}
		if seen[t.Name] {
			return errors.New(errors.ErrCodeInvalidConfig, "relation type %q declared twice", t.Name)
		}
		seen[t.Name] = true
	}
	return nil
}

// =============================================================================
// YAML
// =============================================================================

type yamlDocument struct {
	BaseComponent yamlComponent `yaml:"base_component"`
	Components    yaml.Node     `yaml:"components"`
	BaseRelation  yamlRelation  `yaml:"base_relation"`
	Relations     yaml.Node     `yaml:"relations"`
}

type yamlComponent struct {
	Base       string     `yaml:"base"`
	UniqueKeys []string   `yaml:"unique_keys"`
	LabelKeys  []string   `yaml:"label_keys"`
	Appearance Appearance `yaml:"appearance"`
}

type yamlRelation struct {
	Base       string     `yaml:"base"`
	Direction  string     `yaml:"direction"`
	Appearance Appearance `yaml:"appearance"`
}

func decodeYAML(data []byte) (*Document, error) {
	var raw yamlDocument
	if len(bytes.TrimSpace(data)) > 0 {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	}

	doc := &Document{
		BaseComponent: ComponentType{
			UniqueKeys: raw.BaseComponent.UniqueKeys,
			LabelKeys:  raw.BaseComponent.LabelKeys,
			Appearance: raw.BaseComponent.Appearance,
		},
		BaseRelation: RelationType{
			Direction:  Direction(raw.BaseRelation.Direction),
			Appearance: raw.BaseRelation.Appearance,
		},
	}

	err := eachEntry(&raw.Components, "components", func(name string, n *yaml.Node) error {
		var c yamlComponent
		if err := n.Decode(&c); err != nil {
			return fmt.Errorf("component %q: %w", name, err)
		}
		doc.Components = append(doc.Components, ComponentType{
			Name:       name,
			Base:       c.Base,
			UniqueKeys: c.UniqueKeys,
			LabelKeys:  c.LabelKeys,
			Appearance: c.Appearance,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = eachEntry(&raw.Relations, "relations", func(name string, n *yaml.Node) error {
		var r yamlRelation
		if err := n.Decode(&r); err != nil {
			return fmt.Errorf("relation %q: %w", name, err)
		}
		doc.Relations = append(doc.Relations, RelationType{
			Name:       name,
			Base:       r.Base,
			Direction:  Direction(r.Direction),
			Appearance: r.Appearance,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// eachEntry calls fn for every key of a mapping node in document order.
// An absent or null node has no entries.
func eachEntry(node *yaml.Node, field string, fn func(string, *yaml.Node) error) error {
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	switch {
	case node.Kind == 0:
		return nil
	case node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null":
		return nil
	case node.Kind != yaml.MappingNode:
		return fmt.Errorf("line %d: %s must be a mapping", node.Line, field)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if err := fn(node.Content[i].Value, node.Content[i+1]); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// TOML
// =============================================================================

type tomlDocument struct {
	BaseComponent tomlComponent            `toml:"base_component"`
	Components    map[string]tomlComponent `toml:"components"`
	BaseRelation  tomlRelation             `toml:"base_relation"`
	Relations     map[string]tomlRelation  `toml:"relations"`
}

type tomlComponent struct {
	Base       string         `toml:"base"`
	UniqueKeys []string       `toml:"unique_keys"`
	LabelKeys  []string       `toml:"label_keys"`
	Appearance map[string]any `toml:"appearance"`
}

type tomlRelation struct {
	Base       string         `toml:"base"`
	Direction  string         `toml:"direction"`
	Appearance map[string]any `toml:"appearance"`
}

// tomlOrder recovers declaration order from TOML metadata, which the
// decoded Go maps lose.
type tomlOrder struct {
	keys []toml.Key
}

// children returns the names directly below prefix in declaration order,
// followed by any names in known that the metadata did not list, sorted.
func (o tomlOrder) children(known []string, prefix ...string) []string {
	var names []string
	seen := make(map[string]bool)
	for _, k := range o.keys {
		if len(k) != len(prefix)+1 || !slices.Equal(k[:len(prefix)], prefix) {
			continue
		}
		name := k[len(prefix)]
		if !seen[name] && slices.Contains(known, name) {
			seen[name] = true
			names = append(names, name)
		}
	}
	var rest []string
	for _, name := range known {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	slices.Sort(rest)
	return append(names, rest...)
}

func (o tomlOrder) appearance(m map[string]any, prefix ...string) (Appearance, error) {
	var a Appearance
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	for _, k := range o.children(keys, append(prefix, "appearance")...) {
		v, err := tomlScalar(m[k])
		if err != nil {
			return Appearance{}, fmt.Errorf("%s.appearance.%s: %w", strings.Join(prefix, "."), k, err)
		}
		a.Set(k, v)
	}
	return a, nil
}

func tomlScalar(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case bool:
		return strconv.FormatBool(x), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), nil
	case map[string]any, []any:
		return "", fmt.Errorf("appearance values must be scalars")
	default:
		return fmt.Sprint(x), nil
	}
}

func decodeTOML(data []byte) (*Document, error) {
	var raw tomlDocument
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, err
	}
	order := tomlOrder{keys: md.Keys()}

	doc := &Document{
		BaseComponent: ComponentType{
			UniqueKeys: raw.BaseComponent.UniqueKeys,
			LabelKeys:  raw.BaseComponent.LabelKeys,
		},
		BaseRelation: RelationType{Direction: Direction(raw.BaseRelation.Direction)},
	}
	if doc.BaseComponent.Appearance, err = order.appearance(raw.BaseComponent.Appearance, "base_component"); err != nil {
		return nil, err
	}
	if doc.BaseRelation.Appearance, err = order.appearance(raw.BaseRelation.Appearance, "base_relation"); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(raw.Components))
	for name := range raw.Components {
		names = append(names, name)
	}
	for _, name := range order.children(names, "components") {
		c := raw.Components[name]
		a, err := order.appearance(c.Appearance, "components", name)
		if err != nil {
			return nil, err
		}
		doc.Components = append(doc.Components, ComponentType{
			Name:       name,
			Base:       c.Base,
			UniqueKeys: c.UniqueKeys,
			LabelKeys:  c.LabelKeys,
			Appearance: a,
		})
	}

	names = names[:0]
	for name := range raw.Relations {
		names = append(names, name)
	}
	for _, name := range order.children(names, "relations") {
		r := raw.Relations[name]
		a, err := order.appearance(r.Appearance, "relations", name)
		if err != nil {
			return nil, err
		}
		doc.Relations = append(doc.Relations, RelationType{
			Name:       name,
			Base:       r.Base,
			Direction:  Direction(r.Direction),
			Appearance: a,
		})
	}
	return doc, nil
}
