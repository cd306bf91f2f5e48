package model

import (
	"github.com/matzehuels/felipe/pkg/config"
	"github.com/matzehuels/felipe/pkg/errors"
)

// Relation is one declared relation between a component and a dependency.
type Relation struct {
	Type       *config.RelationType
	Attributes Attributes
}

// BuildRelation creates a relation from one record entry. The entry's
// "type" must name a relation type in set.
func BuildRelation(set *config.Set, attrs Attributes) (*Relation, error) {
	name := attrs.Type()
	if name == "" {
		return nil, errors.New(errors.ErrCodeInvalidRecord, "relation entry has no type")
	}
	t, ok := set.Relation(name)
	if !ok {
		return nil, errors.Wrap(errors.ErrCodeUnknownType,
			&errors.UnknownTypeError{Kind: config.KindRelation, Name: name}, "build relation")
	}
	return &Relation{Type: t, Attributes: attrs}, nil
}

// TypeName returns the name of the relation's resolved type.
func (r *Relation) TypeName() string { return r.Type.Name }
