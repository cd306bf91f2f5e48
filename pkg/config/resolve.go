package config

import (
	"slices"
	"strings"

	"github.com/matzehuels/felipe/pkg/errors"
)

// Set is the read-only result of resolving a [Document]. Every type it
// holds is fully flattened. Callers must treat returned types as immutable.
type Set struct {
	baseComponent ComponentType
	baseRelation  RelationType

	components     map[string]*ComponentType
	relations      map[string]*RelationType
	componentNames []string
	relationNames  []string
}

// Resolve flattens every component and relation type in d.
// It fails with a configuration error on the first dangling base, base
// cycle, or component type that resolves to neither unique nor label keys.
func Resolve(d *Document) (*Set, error) {
	s := &Set{
		baseComponent: d.BaseComponent.Clone(),
		baseRelation:  d.BaseRelation.Clone(),
		components:    make(map[string]*ComponentType, len(d.Components)),
		relations:     make(map[string]*RelationType, len(d.Relations)),
	}

	for _, t := range d.Components {
		rt, err := d.ResolveComponent(t.Name)
		if err != nil {
			return nil, err
		}
		s.components[t.Name] = &rt
		s.componentNames = append(s.componentNames, t.Name)
	}
	for _, t := range d.Relations {
		rt, err := d.ResolveRelation(t.Name)
		if err != nil {
			return nil, err
		}
		s.relations[t.Name] = &rt
		s.relationNames = append(s.relationNames, t.Name)
	}
	return s, nil
}

// ResolveComponent flattens the component type called name.
//
// The default component is the starting point. Each type of the base chain
// is then applied from the root down to name: a non-empty key list replaces
// the inherited one, and appearance keys overwrite inherited keys one by one.
func (d *Document) ResolveComponent(name string) (ComponentType, error) {
	types := d.componentIndex()
	t, ok := types[name]
	if !ok {
		return ComponentType{}, errors.New(errors.ErrCodeInvalidConfig, "component type %q is not declared", name)
	}

	chain, err := lineage(KindComponent, name, func(n string) (string, bool) {
		c, ok := types[n]
		return c.Base, ok
	})
	if err != nil {
		return ComponentType{}, err
	}

	acc := d.BaseComponent.Clone()
	for _, n := range chain {
		c := types[n]
		if len(c.UniqueKeys) > 0 {
			acc.UniqueKeys = slices.Clone(c.UniqueKeys)
		}
		if len(c.LabelKeys) > 0 {
			acc.LabelKeys = slices.Clone(c.LabelKeys)
		}
		acc.Appearance = acc.Appearance.Merge(c.Appearance)
	}
	acc.Name = t.Name
	acc.Base = t.Base

	if len(acc.UniqueKeys) == 0 && len(acc.LabelKeys) == 0 {
		return ComponentType{}, errors.New(errors.ErrCodeInvalidConfig,
			"component type %q resolves to no unique_keys and no label_keys", name)
	}
	return acc, nil
}

// ResolveRelation flattens the relation type called name.
//
// Appearance is merged along the base chain like component appearance.
// Direction is not inherited from ancestors: a type keeps its own direction
// and falls back to the default relation's direction only when unset.
func (d *Document) ResolveRelation(name string) (RelationType, error) {
	types := d.relationIndex()
	t, ok := types[name]
	if !ok {
		return RelationType{}, errors.New(errors.ErrCodeInvalidConfig, "relation type %q is not declared", name)
	}

	chain, err := lineage(KindRelation, name, func(n string) (string, bool) {
		r, ok := types[n]
		return r.Base, ok
	})
	if err != nil {
		return RelationType{}, err
	}

	acc := d.BaseRelation.Clone()
	for _, n := range chain {
		acc.Appearance = acc.Appearance.Merge(types[n].Appearance)
	}
	acc.Name = t.Name
	acc.Base = t.Base
	if t.Direction != DirectionDefault {
		acc.Direction = t.Direction
	}
	return acc, nil
}

// lineage walks the base chain starting at name and returns it root first.
// A name seen twice in the chain is a cycle; a base that baseOf does not
// know is dangling.
func lineage(kind, name string, baseOf func(string) (string, bool)) ([]string, error) {
	visited := make(map[string]bool)
	var chain []string
	for cur := name; cur != ""; {
		if visited[cur] {
			path := strings.Join(append(chain, cur), " -> ")
			return nil, errors.New(errors.ErrCodeConfigCycle, "%s type %q has a base cycle: %s", kind, name, path)
		}
		visited[cur] = true

		base, ok := baseOf(cur)
		if !ok {
			return nil, errors.New(errors.ErrCodeConfigDanglingBase,
				"%s type %q has base %q which is not declared", kind, chain[len(chain)-1], cur)
		}
		chain = append(chain, cur)
		cur = base
	}
	slices.Reverse(chain)
	return chain, nil
}

// Component returns the resolved component type called name.
func (s *Set) Component(name string) (*ComponentType, bool) {
	t, ok := s.components[name]
	return t, ok
}

// Relation returns the resolved relation type called name.
func (s *Set) Relation(name string) (*RelationType, bool) {
	t, ok := s.relations[name]
	return t, ok
}

// BaseComponent returns the default component configuration.
func (s *Set) BaseComponent() ComponentType { return s.baseComponent.Clone() }

// BaseRelation returns the default relation configuration.
func (s *Set) BaseRelation() RelationType { return s.baseRelation.Clone() }

// ComponentNames returns component type names in document order.
func (s *Set) ComponentNames() []string { return slices.Clone(s.componentNames) }

// RelationNames returns relation type names in document order.
func (s *Set) RelationNames() []string { return slices.Clone(s.relationNames) }
