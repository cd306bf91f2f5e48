package dot

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/matzehuels/felipe/pkg/config"
	"github.com/matzehuels/felipe/pkg/errors"
	"github.com/matzehuels/felipe/pkg/model"
)

// Indent prefixes every statement inside the graph body.
const Indent = "    "

const (
	preamble = "digraph G {\n" + Indent + "rankdir=LR\n" + Indent + "fontsize=11.0\n"
	closing  = "}\n"
)

// Component renders c and its direct dependencies as a complete document.
func Component(set *config.Set, c *model.Component) (string, error) {
	var buf bytes.Buffer
	if err := WriteComponent(&buf, set, c); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Group renders every member of g into one flat document. Members are
// looked up in reg by identity so that their dependencies come from the
// record that declared them; a member missing from reg (or a nil reg) is
// rendered from the group's own copy, which has no dependencies.
func Group(set *config.Set, g *model.Group, reg *model.Registry) (string, error) {
	var buf bytes.Buffer
	if err := WriteGroup(&buf, set, g, reg); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Document renders a component or group document.
func Document(set *config.Set, doc model.Document, reg *model.Registry) (string, error) {
	switch d := doc.(type) {
	case *model.Component:
		return Component(set, d)
	case *model.Group:
		return Group(set, d, reg)
	default:
		return "", errors.New(errors.ErrCodeInternal, "cannot render document of type %T", doc)
	}
}

// WriteComponent writes the document for c to w. Nothing is written when
// the document cannot be built.
func WriteComponent(w io.Writer, set *config.Set, c *model.Component) error {
	e := &emitter{set: set}
	e.buf.WriteString(preamble)
	if err := e.component(c); err != nil {
		return err
	}
	e.buf.WriteString(closing)
	return e.flush(w)
}

// WriteGroup writes the document for g to w. Nothing is written when the
// document cannot be built.
func WriteGroup(w io.Writer, set *config.Set, g *model.Group, reg *model.Registry) error {
	e := &emitter{set: set}
	e.buf.WriteString(preamble)
	for _, m := range g.Components() {
		c := m
		if reg != nil {
			if r, ok := reg.Lookup(m.ID); ok {
				c = r
			}
		}
		if err := e.component(c); err != nil {
			return err
		}
	}
	e.buf.WriteString(closing)
	return e.flush(w)
}

// FormatAttrs formats an appearance map as a DOT attribute list. Pairs
// keep the map's order and label is always appended last; a "label" key
// in the map is ignored. Values are written as is.
func FormatAttrs(label string, a config.Appearance) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for k, v := range a.All() {
		if k == config.LabelKey {
			continue
		}
		sb.WriteString(k)
		sb.WriteString(" = ")
		sb.WriteString(v)
		sb.WriteByte(' ')
	}
	sb.WriteString(config.LabelKey)
	sb.WriteString(` = "`)
	sb.WriteString(label)
	sb.WriteString(`"]`)
	return sb.String()
}

type emitter struct {
	set *config.Set
	buf bytes.Buffer
}

func (e *emitter) flush(w io.Writer) error {
	if _, err := w.Write(e.buf.Bytes()); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write document")
	}
	return nil
}

// component writes the node of c, the nodes of its dependencies, then one
// edge per relation.
func (e *emitter) component(c *model.Component) error {
	if err := e.node(c); err != nil {
		return err
	}
	edges := c.Edges()
	for _, edge := range edges {
		if err := e.node(edge.Target); err != nil {
			return err
		}
	}
	for _, edge := range edges {
		for _, r := range edge.Relations {
			if err := e.edge(c, edge.Target, r); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *emitter) node(c *model.Component) error {
	t, ok := e.set.Component(c.TypeName())
	if !ok {
		return errors.New(errors.ErrCodeInternal, "component type %q is not in the configuration", c.TypeName())
	}
	fmt.Fprintf(&e.buf, "%s\"%s\" %s;\n", Indent, c.ID, FormatAttrs(c.Label, t.Appearance))
	return nil
}

// edge writes owner -> dep for forward relations and dep -> owner for
// every other direction.
func (e *emitter) edge(owner, dep *model.Component, r *model.Relation) error {
	t, ok := e.set.Relation(r.TypeName())
	if !ok {
		return errors.New(errors.ErrCodeInternal, "relation type %q is not in the configuration", r.TypeName())
	}
	src, dst := dep.ID, owner.ID
	if t.Direction.Forward() {
		src, dst = owner.ID, dep.ID
	}
	fmt.Fprintf(&e.buf, "%s\"%s\" -> \"%s\" %s;\n", Indent, src, dst, FormatAttrs("", t.Appearance))
	return nil
}
