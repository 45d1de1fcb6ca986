package tool

import "sort"

// Registry maps tool names to implementations. It is populated once at
// startup and treated as read-only afterwards, which makes lookups safe
// for concurrent use by multiple in-flight runs without locking. Handlers
// are invoked, never mutated, by dispatch.
type Registry struct {
	tools map[string]Tool
}

// NewRegistry builds a registry from the given tools. Later tools replace
// earlier ones with the same name.
func NewRegistry(tools ...Tool) *Registry {
	r := &Registry{tools: make(map[string]Tool, len(tools))}
	for _, t := range tools {
		r.tools[t.Name()] = t
	}
	return r
}

// Register adds a tool. Call only during startup, before the registry is
// shared with running workflows.
func (r *Registry) Register(t Tool) {
	r.tools[t.Name()] = t
}

// Lookup returns the tool registered under name.
func (r *Registry) Lookup(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// Names returns the registered tool names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns the registered tools keyed by name. The returned map is a
// copy; mutating it does not affect the registry.
func (r *Registry) All() map[string]Tool {
	out := make(map[string]Tool, len(r.tools))
	for name, t := range r.tools {
		out[name] = t
	}
	return out
}

// Len returns the number of registered tools.
func (r *Registry) Len() int { return len(r.tools) }
