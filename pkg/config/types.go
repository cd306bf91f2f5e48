package config

import "slices"

// Kind names the two flavours of type configuration.
const (
	KindComponent = "component"
	KindRelation  = "relation"
)

// Direction controls which end of a relation edge is drawn as the tail.
type Direction string

const (
	// DirectionForward draws the owning component as the tail.
	DirectionForward Direction = "->"
	// DirectionReverse draws the dependency as the tail.
	DirectionReverse Direction = "<-"
	// DirectionDefault leaves the direction unset. Emitters treat it like
	// DirectionReverse.
	DirectionDefault Direction = ""
)

// Forward reports whether the owning component is the edge tail.
// Every value other than DirectionForward draws the dependency as the tail.
func (d Direction) Forward() bool { return d == DirectionForward }

// ComponentType describes how one kind of component is identified,
// labelled and styled. Before resolution the fields hold only what the
// type itself declares; after resolution they hold the flattened values
// and Base is kept as provenance only.
type ComponentType struct {
	Name       string
	Base       string
	UniqueKeys []string
	LabelKeys  []string
	Appearance Appearance
}

// Clone returns a deep copy of t.
func (t ComponentType) Clone() ComponentType {
	return ComponentType{
		Name:       t.Name,
		Base:       t.Base,
		UniqueKeys: slices.Clone(t.UniqueKeys),
		LabelKeys:  slices.Clone(t.LabelKeys),
		Appearance: t.Appearance.Clone(),
	}
}

// Equal reports whether t and o are field-for-field identical.
func (t ComponentType) Equal(o ComponentType) bool {
	return t.Name == o.Name &&
		t.Base == o.Base &&
		slices.Equal(t.UniqueKeys, o.UniqueKeys) &&
		slices.Equal(t.LabelKeys, o.LabelKeys) &&
		t.Appearance.Equal(o.Appearance)
}

// RelationType describes how one kind of relation is styled and which way
// its edges point.
type RelationType struct {
	Name       string
	Base       string
	Direction  Direction
	Appearance Appearance
}

// Clone returns a deep copy of t.
func (t RelationType) Clone() RelationType {
	return RelationType{
		Name:       t.Name,
		Base:       t.Base,
		Direction:  t.Direction,
		Appearance: t.Appearance.Clone(),
	}
}

// Equal reports whether t and o are field-for-field identical.
func (t RelationType) Equal(o RelationType) bool {
	return t.Name == o.Name &&
		t.Base == o.Base &&
		t.Direction == o.Direction &&
		t.Appearance.Equal(o.Appearance)
}

// Document is a decoded, unresolved configuration document. Components
// and Relations keep the order in which the document declares them.
type Document struct {
	BaseComponent ComponentType
	Components    []ComponentType
	BaseRelation  RelationType
	Relations     []RelationType
}

func (d *Document) componentIndex() map[string]ComponentType {
	m := make(map[string]ComponentType, len(d.Components))
	for _, t := range d.Components {
		m[t.Name] = t
	}
	return m
}

func (d *Document) relationIndex() map[string]RelationType {
	m := make(map[string]RelationType, len(d.Relations))
	for _, t := range d.Relations {
		m[t.Name] = t
	}
	return m
}
