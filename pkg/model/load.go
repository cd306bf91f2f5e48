package model

import (
	"fmt"

	"github.com/matzehuels/felipe/pkg/config"
	"github.com/matzehuels/felipe/pkg/errors"
)

// Document is the model object built from one record: a *Component or a
// *Group.
type Document interface {
	Kind() Kind
}

// Load builds the model object for rec according to its kind.
// A record of any other kind yields (nil, nil): the caller skips it.
func Load(set *config.Set, rec *Record) (Document, error) {
	switch rec.Kind {
	case KindComponent:
		return LoadComponent(set, rec)
	case KindGroup:
		return LoadGroup(set, rec)
	default:
		return nil, nil
	}
}

// LoadComponent builds the record's root component and relates it to each
// declared dependency through the dependency's relations.
func LoadComponent(set *config.Set, rec *Record) (*Component, error) {
	if rec.Component == nil {
		return nil, errors.New(errors.ErrCodeInvalidRecord, "component record has no component")
	}
	root, err := BuildComponent(set, rec.Component)
	if err != nil {
		return nil, err
	}

	for i, entry := range rec.Dependencies {
		rawRels, err := relations(entry)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidRecord, err, "dependency %d", i)
		}
		dep, err := BuildComponent(set, entry.without(relationsKey))
		if err != nil {
			return nil, fmt.Errorf("dependency %d: %w", i, err)
		}

		rels := make([]*Relation, 0, len(rawRels))
		for j, ra := range rawRels {
			r, err := BuildRelation(set, ra)
			if err != nil {
				return nil, fmt.Errorf("dependency %d relation %d: %w", i, j, err)
			}
			rels = append(rels, r)
		}
		root.RelateTo(dep, rels...)
	}
	return root, nil
}

// LoadGroup builds one component per group member, without dependencies,
// and appends them in declaration order.
func LoadGroup(set *config.Set, rec *Record) (*Group, error) {
	if rec.Group == nil {
		return nil, errors.New(errors.ErrCodeInvalidRecord, "group record has no group")
	}
	g := NewGroup()
	for i, entry := range rec.Group.Components {
		c, err := BuildComponent(set, entry)
		if err != nil {
			return nil, fmt.Errorf("group member %d: %w", i, err)
		}
		g.Append(c)
	}
	return g, nil
}
