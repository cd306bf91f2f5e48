package model

// Group is a set of components rendered into one document. Members keep
// the position of their first declaration; appending a component whose
// identity is already present replaces the earlier one.
type Group struct {
	ids     []string
	members map[string]*Component
}

// NewGroup returns an empty group.
func NewGroup() *Group {
	return &Group{members: make(map[string]*Component)}
}

// Kind reports KindGroup.
func (g *Group) Kind() Kind { return KindGroup }

// Append adds c, overwriting any member with the same identity.
func (g *Group) Append(c *Component) {
	if _, ok := g.members[c.ID]; !ok {
		g.ids = append(g.ids, c.ID)
	}
	g.members[c.ID] = c
}

// Get returns the member with identity id.
func (g *Group) Get(id string) (*Component, bool) {
	c, ok := g.members[id]
	return c, ok
}

// Components returns the members in declaration order.
func (g *Group) Components() []*Component {
	out := make([]*Component, len(g.ids))
	for i, id := range g.ids {
		out[i] = g.members[id]
	}
	return out
}

// Len returns the number of distinct members.
func (g *Group) Len() int { return len(g.ids) }
