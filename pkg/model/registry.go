package model

// Registry maps identities to the components loaded during a run. It is
// filled while records load and frozen before documents are emitted.
//
// Registry is not safe for concurrent use.
type Registry struct {
	components map[string]*Component
	frozen     bool
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{components: make(map[string]*Component)}
}

// Register stores c under its identity; a later registration of the same
// identity wins. It panics once the registry is frozen.
func (r *Registry) Register(c *Component) {
	if r.frozen {
		panic("model: Register called on frozen registry")
	}
	r.components[c.ID] = c
}

// Lookup returns the component registered under id.
func (r *Registry) Lookup(id string) (*Component, bool) {
	c, ok := r.components[id]
	return c, ok
}

// Freeze ends the loading phase.
func (r *Registry) Freeze() { r.frozen = true }

// Frozen reports whether Freeze was called.
func (r *Registry) Frozen() bool { return r.frozen }

// Len returns the number of registered identities.
func (r *Registry) Len() int { return len(r.components) }
