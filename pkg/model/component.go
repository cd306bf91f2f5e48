package model

import (
	"strings"

	"github.com/matzehuels/felipe/pkg/config"
	"github.com/matzehuels/felipe/pkg/errors"
)

const (
	// IDSeparator joins the type name and unique-key values of an identity.
	IDSeparator = "/"
	// LabelSeparator joins label-key values. It is the two characters
	// backslash and n, which DOT renders as a line break.
	LabelSeparator = `\n`
)

// Component is one component instance. ID and Label are computed once at
// construction; only the dependency edges grow afterwards.
type Component struct {
	Type       *config.ComponentType
	ID         string
	Label      string
	Attributes Attributes

	edges []*Edge
	index map[string]*Edge
}

// Edge collects every relation from a component to one dependency.
type Edge struct {
	Target    *Component
	Relations []*Relation
}

// Identity derives the identity of a component of type t with attrs:
// the type name followed by each unique-key value, joined by "/".
func Identity(t *config.ComponentType, attrs Attributes) string {
	parts := make([]string, 0, len(t.UniqueKeys)+1)
	parts = append(parts, t.Name)
	for _, k := range t.UniqueKeys {
		parts = append(parts, attrs.String(k))
	}
	return strings.Join(parts, IDSeparator)
}

// Label derives the display label of a component of type t with attrs.
func Label(t *config.ComponentType, attrs Attributes) string {
	parts := make([]string, 0, len(t.LabelKeys))
	for _, k := range t.LabelKeys {
		parts = append(parts, attrs.String(k))
	}
	return strings.Join(parts, LabelSeparator)
}

// BuildComponent creates a component from one record entry. The entry's
// "type" must name a component type in set. Dependencies are not followed.
func BuildComponent(set *config.Set, attrs Attributes) (*Component, error) {
	name := attrs.Type()
	if name == "" {
		return nil, errors.New(errors.ErrCodeInvalidRecord, "component entry has no type")
	}
	t, ok := set.Component(name)
	if !ok {
		return nil, errors.Wrap(errors.ErrCodeUnknownType,
			&errors.UnknownTypeError{Kind: config.KindComponent, Name: name}, "build component")
	}
	return &Component{
		Type:       t,
		ID:         Identity(t, attrs),
		Label:      Label(t, attrs),
		Attributes: attrs,
	}, nil
}

// Kind reports KindComponent.
func (c *Component) Kind() Kind { return KindComponent }

// TypeName returns the name of the component's resolved type.
func (c *Component) TypeName() string { return c.Type.Name }

// RelateTo records that c depends on target through rels. Relations to a
// target already seen are appended to its existing edge, so each target
// identity has exactly one edge. An empty rels still records the edge.
func (c *Component) RelateTo(target *Component, rels ...*Relation) {
	if c.index == nil {
		c.index = make(map[string]*Edge)
	}
	e, ok := c.index[target.ID]
	if !ok {
		e = &Edge{Target: target}
		c.index[target.ID] = e
		c.edges = append(c.edges, e)
	}
	e.Relations = append(e.Relations, rels...)
}

// Edges returns the dependency edges in the order their targets were
// first related.
func (c *Component) Edges() []*Edge {
	out := make([]*Edge, len(c.edges))
	copy(out, c.edges)
	return out
}

// Dependencies returns the direct dependencies, one per edge.
func (c *Component) Dependencies() []*Component {
	out := make([]*Component, len(c.edges))
	for i, e := range c.edges {
		out[i] = e.Target
	}
	return out
}
